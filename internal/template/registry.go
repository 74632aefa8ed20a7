package template

import (
	"fmt"
	"sync"

	"github.com/ndelorme/conforma/internal/model"
)

// Registry holds document templates keyed by category. Populated once at
// startup, read-only afterwards; callers must not mutate returned
// templates since they are shared configuration.
type Registry struct {
	mu         sync.RWMutex
	templates  map[string]*model.DocumentTemplate
	categories []string // Registration order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*model.DocumentTemplate),
	}
}

// Register adds a template. Returns ErrDuplicateCategory if its category
// is already present; the registry is left unchanged in that case.
func (r *Registry) Register(t *model.DocumentTemplate) error {
	if t.Category == "" {
		return &model.ConfigurationError{Field: "category", Message: "must not be empty"}
	}
	if err := validateControlPoints(t); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[t.Category]; exists {
		return fmt.Errorf("%w: %s", model.ErrDuplicateCategory, t.Category)
	}

	r.templates[t.Category] = t
	r.categories = append(r.categories, t.Category)
	return nil
}

// Get returns the template for a category, or ErrUnknownTemplate.
func (r *Registry) Get(category string) (*model.DocumentTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownTemplate, category)
	}
	return t, nil
}

// Categories returns registered category identifiers in registration
// order. The returned slice is a copy and safe to iterate repeatedly.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// validateControlPoints rejects templates with no points or duplicate
// point names, both of which would make extraction results ambiguous.
func validateControlPoints(t *model.DocumentTemplate) error {
	if len(t.ControlPoints) == 0 {
		return &model.ConfigurationError{
			Field:   "control_points",
			Message: fmt.Sprintf("template %q has no control points", t.Category),
		}
	}
	seen := make(map[string]bool, len(t.ControlPoints))
	for _, cp := range t.ControlPoints {
		if cp.Name == "" {
			return &model.ConfigurationError{
				Field:   "control_points",
				Message: fmt.Sprintf("template %q has a control point with no name", t.Category),
			}
		}
		if seen[cp.Name] {
			return &model.ConfigurationError{
				Field:   "control_points",
				Message: fmt.Sprintf("template %q has duplicate control point %q", t.Category, cp.Name),
			}
		}
		seen[cp.Name] = true
	}
	return nil
}
