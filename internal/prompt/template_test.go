package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogsynth/internal/llm"
	"dialogsynth/internal/types"
)

func TestRenderSubstitutesDeclaredPlaceholders(t *testing.T) {
	tmpl := Template{
		Name:         "t",
		System:       "Topic: {topic}",
		User:         `Example: {example_json} literal {"a": {b}}`,
		Placeholders: []string{"topic", "example_json"},
	}

	system, user, err := tmpl.Render(Bindings{
		"topic":        "Hypotheken",
		"example_json": `{"x": "{topic}"}`,
		"unused":       "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "Topic: Hypotheken", system)
	// bound values are not re-scanned and undeclared braces stay literal
	assert.Equal(t, `Example: {"x": "{topic}"} literal {"a": {b}}`, user)
}

func TestRenderReportsMissingBindings(t *testing.T) {
	tmpl := Template{Name: "t", User: "{b} {a}", Placeholders: []string{"b", "a"}}

	_, _, err := tmpl.Render(Bindings{})
	var missing *MissingBindingsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"a", "b"}, missing.Missing)
	assert.Contains(t, err.Error(), "unresolved placeholders")
}

func TestMessagesOmitsEmptyParts(t *testing.T) {
	msgs := Messages("", "hello")
	require.Len(t, msgs, 1)
	assert.Equal(t, llm.RoleUser, msgs[0].Role)

	msgs = Messages("sys", "hello")
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
}

func TestMerge(t *testing.T) {
	got := Merge(Bindings{"a": "1", "b": "2"}, Bindings{"b": "3"})
	assert.Equal(t, Bindings{"a": "1", "b": "3"}, got)
}

func sampleScenario() types.ScenarioParameters {
	return types.ScenarioParameters{
		Bank:             "Kantonalbank",
		CustomerName:     "Anna Muster",
		ServiceAgentName: "Lukas",
		Topic:            "Hypotheken",
		Task:             "Zinssatz anfragen",
		MediaType:        "phone call",
		MediaDescription: "spoken conversation",
		Service: types.AgentProfile{
			Characteristic: "patient",
			Style:          types.Trait{Description: "formal", Detail: "uses Sie"},
			Emotion:        types.Trait{Description: "calm", Detail: "relaxed"},
			Experience:     "ten years",
			Goal:           "resolve the request",
		},
		Customer: types.AgentProfile{
			Characteristic: "impatient",
			Style:          types.Trait{Description: "direct", Detail: "short sentences"},
			Emotion:        types.Trait{Description: "annoyed", Detail: "waited long"},
			Experience:     "little",
			Goal:           "get a lower rate",
		},
	}
}

func TestScenarioBindingsPerRole(t *testing.T) {
	s := sampleScenario()

	svc := ScenarioBindings(s, types.RoleService)
	assert.Equal(t, "Lukas", svc[PHName])
	assert.Equal(t, "patient", svc[PHCharacteristic])

	cust := ScenarioBindings(s, types.RoleCustomer)
	assert.Equal(t, "Anna Muster", cust[PHName])
	assert.Equal(t, "annoyed", cust[PHEmotionDescription])
	assert.Equal(t, "Zinssatz anfragen", cust[PHTask])
}

func TestDefaultCatalogRendersEveryTemplate(t *testing.T) {
	c := Default()
	s := sampleScenario()
	extra := Bindings{
		PHStructure:    "{}",
		PHExample:      "{}",
		PHTopic:        "Hypotheken",
		PHScript:       "{}",
		PHQuery:        "Wie hoch ist der Zins?",
		PHPassages:     "none",
		PHTranscript:   "customer: hi",
		PHConversation: "customer: hi",
	}

	for k, tmpl := range c.templates {
		t.Run(tmpl.Name, func(t *testing.T) {
			role := types.RoleService
			if k.kind == KindCustomerPersona || k.kind == KindInitialMessage {
				role = types.RoleCustomer
			}
			system, user, err := tmpl.Render(Merge(ScenarioBindings(s, role), extra))
			require.NoError(t, err)
			assert.NotEmpty(t, system+user)
			for _, name := range tmpl.Placeholders {
				assert.False(t, strings.Contains(system+user, "{"+name+"}"), "placeholder %s left in output", name)
			}
		})
	}
}

func TestCatalogSelection(t *testing.T) {
	c := Default()

	tmpl, err := c.Generation(types.Unresolved, "de")
	require.NoError(t, err)
	assert.Equal(t, "generation_unresolved_de", tmpl.Name)

	tmpl, err = c.Persona(types.RoleService, VariantAggressive)
	require.NoError(t, err)
	assert.Equal(t, "service_persona_aggressive", tmpl.Name)

	_, err = c.Validation("fr")
	var notFound *TemplateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, KindValidation, notFound.Kind)
}

func TestPersonaTemplatesAskForTerminationToken(t *testing.T) {
	c := Default()
	for _, v := range []string{VariantDefault, VariantAggressive, VariantAggressiveEN} {
		for _, r := range []types.Role{types.RoleService, types.RoleCustomer} {
			tmpl, err := c.Persona(r, v)
			require.NoError(t, err)
			assert.Contains(t, tmpl.System, `"TERMINATE"`)
		}
	}
}
