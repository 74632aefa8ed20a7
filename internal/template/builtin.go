package template

import "github.com/ndelorme/conforma/internal/model"

// Built-in templates for the three supported datasheet families. The
// synonym lists mix French and English because supplier datasheets do.

var agroTemplate = &model.DocumentTemplate{
	Name:        "Fiche Technique Agro-alimentaire",
	Description: "Food-industry product datasheet",
	Category:    "agro",
	ControlPoints: []model.ControlPoint{
		{
			Name:        "Intitulé du produit",
			Description: "Legal denomination of the product",
			Criticity:   model.CriticityMinor,
			Synonyms:    []string{"Dénomination légale", "Nom du produit", "Nom commercial", "Produit"},
		},
		{
			Name:        "Estampille",
			Description: "Sanitary approval number",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Estampille sanitaire", "N° d'agrément", "Agrément sanitaire", "FR", "CE"},
		},
		{
			Name:        "Composition",
			Description: "Ingredient list and composition",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Ingrédients", "Ingredients", "Composition", "Recette"},
		},
		{
			Name:        "DLC / DLUO",
			Description: "Shelf life and use-by date",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Durée de vie", "Date limite", "Use by", "DDM", "DLC"},
		},
		{
			Name:        "Température",
			Description: "Storage temperature conditions",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Température de conservation", "Storage temperature", "À conserver à"},
		},
		{
			Name:        "Origine",
			Description: "Country of origin",
			Criticity:   model.CriticityMajor,
			Synonyms:    []string{"Pays d'origine", "Origine", "Provenance"},
		},
		{
			Name:        "Conditionnement",
			Description: "Packaging type",
			Criticity:   model.CriticityMajor,
			Synonyms:    []string{"Packaging", "Emballage", "Colisage", "Type de contenant"},
		},
		{
			Name:        "Fournisseur",
			Description: "Supplier contact details",
			Criticity:   model.CriticityMinor,
			Synonyms:    []string{"Adresse fournisseur", "Fabricant", "Contact"},
		},
		{
			Name:        "Certifications",
			Description: "Quality certifications",
			Criticity:   model.CriticityMinor,
			Synonyms:    []string{"VRF", "VVF", "BIO", "VPF", "Label"},
		},
		{
			Name:        "Critères microbiologiques",
			Description: "Microbiological standards",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Microbiologie", "Germes", "Bactéries"},
		},
	},
}

var electronicsTemplate = &model.DocumentTemplate{
	Name:        "Fiche Technique Électronique",
	Description: "Electronic component datasheet",
	Category:    "electronique",
	ControlPoints: []model.ControlPoint{
		{
			Name:        "Référence produit",
			Description: "Part reference number",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Part Number", "Référence", "PN", "SKU"},
		},
		{
			Name:        "Spécifications électriques",
			Description: "Electrical characteristics",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Electrical Characteristics", "Specs", "Tension", "Courant"},
		},
		{
			Name:        "Dimensions",
			Description: "Physical dimensions",
			Criticity:   model.CriticityMajor,
			Synonyms:    []string{"Package", "Footprint", "Dimensions", "Taille"},
		},
		{
			Name:        "Plage de température",
			Description: "Operating temperature range",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Operating Temperature", "Température", "Range"},
		},
		{
			Name:        "Conformité RoHS",
			Description: "Environmental compliance",
			Criticity:   model.CriticityMajor,
			Synonyms:    []string{"RoHS", "REACH", "Conformité", "Environmental"},
		},
		{
			Name:        "Datasheet version",
			Description: "Document revision",
			Criticity:   model.CriticityMinor,
			Synonyms:    []string{"Revision", "Version", "Date"},
		},
	},
}

var chemicalTemplate = &model.DocumentTemplate{
	Name:        "Fiche de Sécurité Chimique",
	Description: "Chemical safety datasheet (SDS)",
	Category:    "chimie",
	ControlPoints: []model.ControlPoint{
		{
			Name:        "Identification",
			Description: "Substance identification",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Product Identifier", "Identification", "Nom chimique", "CAS"},
		},
		{
			Name:        "Danger",
			Description: "Hazard identification",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Hazards", "Pictogrammes", "H-phrases", "Danger"},
		},
		{
			Name:        "Composition",
			Description: "Chemical composition",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Composition", "Substances", "Mélange", "Ingrédients"},
		},
		{
			Name:        "Premiers secours",
			Description: "First-aid measures",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"First Aid", "Secours", "Intervention"},
		},
		{
			Name:        "Manipulation",
			Description: "Handling and storage precautions",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"Handling", "Storage", "Manipulation", "Stockage"},
		},
		{
			Name:        "Protection",
			Description: "Protective equipment",
			Criticity:   model.CriticityCritical,
			Synonyms:    []string{"PPE", "Protection", "EPC", "Gants", "Lunettes"},
		},
	},
}

// NewBuiltinRegistry returns a registry pre-loaded with the built-in
// templates.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, t := range []*model.DocumentTemplate{agroTemplate, electronicsTemplate, chemicalTemplate} {
		// Built-ins are known valid; a failure here is a programming error.
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}
