package prompt

import (
	"fmt"

	"dialogsynth/internal/types"
)

// Kind identifies what a template is used for.
type Kind string

const (
	KindGeneration      Kind = "generation"
	KindValidation      Kind = "validation"
	KindServicePersona  Kind = "service_persona"
	KindCustomerPersona Kind = "customer_persona"
	KindInitialMessage  Kind = "initial_message"
	KindRetrieval       Kind = "retrieval"
	KindDrafting        Kind = "drafting"
	KindCritic          Kind = "critic"
	KindSummary         Kind = "summary"
	KindJudge           Kind = "judge"
)

// Scenario variants that select persona templates.
const (
	VariantDefault      = "default"
	VariantAggressive   = "aggressive"
	VariantAggressiveEN = "aggressive_en"
)

type key struct {
	kind    Kind
	variant string
	lang    string
}

// Catalog is a read-only set of templates keyed by kind, variant and language.
type Catalog struct {
	templates map[key]Template
}

// TemplateNotFoundError is returned when no template exists for a selection.
type TemplateNotFoundError struct {
	Kind    Kind
	Variant string
	Lang    string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("no %s template for variant %q lang %q", e.Kind, e.Variant, e.Lang)
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{templates: map[key]Template{}}
}

// Register adds or replaces a template.
func (c *Catalog) Register(kind Kind, variant, lang string, t Template) {
	c.templates[key{kind, variant, lang}] = t
}

// Lookup is the only place a template is chosen. Kinds that do not vary by
// variant or language are registered with empty strings for those parts.
func (c *Catalog) Lookup(kind Kind, variant, lang string) (Template, error) {
	if t, ok := c.templates[key{kind, variant, lang}]; ok {
		return t, nil
	}
	return Template{}, &TemplateNotFoundError{Kind: kind, Variant: variant, Lang: lang}
}

// Generation selects the resolved or unresolved call script prompt.
func (c *Catalog) Generation(v types.Variant, lang string) (Template, error) {
	return c.Lookup(KindGeneration, string(v), lang)
}

// Validation selects the correction prompt.
func (c *Catalog) Validation(lang string) (Template, error) {
	return c.Lookup(KindValidation, "", lang)
}

// Persona selects the system prompt of the service or customer persona.
func (c *Catalog) Persona(role types.Role, variant string) (Template, error) {
	if role == types.RoleService {
		return c.Lookup(KindServicePersona, variant, "")
	}
	return c.Lookup(KindCustomerPersona, variant, "")
}

// Default returns the catalog with every built-in template.
func Default() *Catalog {
	c := NewCatalog()

	c.Register(KindGeneration, string(types.Resolved), "en", generationResolvedEN)
	c.Register(KindGeneration, string(types.Unresolved), "en", generationUnresolvedEN)
	c.Register(KindGeneration, string(types.Resolved), "de", generationResolvedDE)
	c.Register(KindGeneration, string(types.Unresolved), "de", generationUnresolvedDE)
	c.Register(KindValidation, "", "en", validationEN)
	c.Register(KindValidation, "", "de", validationDE)

	c.Register(KindServicePersona, VariantDefault, "", servicePersonaDefault)
	c.Register(KindServicePersona, VariantAggressive, "", servicePersonaAggressive)
	c.Register(KindServicePersona, VariantAggressiveEN, "", servicePersonaAggressiveEN)
	c.Register(KindCustomerPersona, VariantDefault, "", customerPersonaDefault)
	c.Register(KindCustomerPersona, VariantAggressive, "", customerPersonaAggressive)
	c.Register(KindCustomerPersona, VariantAggressiveEN, "", customerPersonaAggressiveEN)
	c.Register(KindInitialMessage, VariantDefault, "", initialMessageDE)
	c.Register(KindInitialMessage, VariantAggressive, "", initialMessageDE)
	c.Register(KindInitialMessage, VariantAggressiveEN, "", initialMessageEN)

	c.Register(KindRetrieval, "", "", retrievalTemplate)
	c.Register(KindDrafting, "", "", draftingTemplate)
	c.Register(KindCritic, "", "", criticTemplate)

	c.Register(KindSummary, "", "", summaryTemplate)
	c.Register(KindJudge, "", "", judgeTemplate)
	return c
}
