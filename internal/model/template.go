package model

// CriticityLevel ranks how severely a missing control point affects the
// document verdict. The order is total: Critical > Major > Minor > Info.
type CriticityLevel int

const (
	CriticityInfo     CriticityLevel = 0
	CriticityMinor    CriticityLevel = 1
	CriticityMajor    CriticityLevel = 2
	CriticityCritical CriticityLevel = 3
)

func (c CriticityLevel) String() string {
	switch c {
	case CriticityCritical:
		return "critical"
	case CriticityMajor:
		return "major"
	case CriticityMinor:
		return "minor"
	default:
		return "info"
	}
}

// ParseCriticity maps a string form back to a CriticityLevel.
// Unknown values map to CriticityInfo.
func ParseCriticity(s string) CriticityLevel {
	switch s {
	case "critical":
		return CriticityCritical
	case "major":
		return CriticityMajor
	case "minor":
		return CriticityMinor
	default:
		return CriticityInfo
	}
}

// MarshalYAML renders the level as its string form in template files.
func (c CriticityLevel) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML accepts the string form used in template files.
func (c *CriticityLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*c = ParseCriticity(s)
	return nil
}

// ControlPoint is one fact a template expects to find in a document.
// Immutable once the owning template is constructed.
type ControlPoint struct {
	Name        string         `json:"name" yaml:"name"`                   // Unique within a template
	Description string         `json:"description" yaml:"description"`     // What the point verifies
	Criticity   CriticityLevel `json:"criticity" yaml:"criticity"`         // Severity if missing
	Synonyms    []string       `json:"synonyms,omitempty" yaml:"synonyms"` // Alternate phrasings for matching
}

// DocumentTemplate describes one document category's expectations.
// Owned by the registry; read-only to all consumers.
type DocumentTemplate struct {
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description" yaml:"description"`
	Category      string         `json:"category" yaml:"category"` // Stable registry key
	ControlPoints []ControlPoint `json:"control_points" yaml:"control_points"`
}
