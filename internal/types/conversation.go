// internal/types/conversation.go
package types

// --------------------------------------------
// Roles of the two simulated parties
// --------------------------------------------
type Role string

const (
	RoleCustomer Role = "customer"
	RoleService  Role = "service"
)

// Cleaned-up role labels written to published corpora.
const (
	LabelCallCenterAgent = "call_center_agent"
	LabelCustomer        = "customer"
)

// --------------------------------------------
// Scenario parameters sampled per simulation
// --------------------------------------------
type Trait struct {
	Description string `json:"description" yaml:"description"`
	Detail      string `json:"detail" yaml:"detail"`
}

type AgentProfile struct {
	Characteristic string `json:"characteristic"`
	Style          Trait  `json:"style"`
	Emotion        Trait  `json:"emotion"`
	Experience     string `json:"experience"`
	Goal           string `json:"goal"`
}

type ScenarioParameters struct {
	Bank             string       `json:"selected_bank"`
	CustomerName     string       `json:"selected_customer_name"`
	ServiceAgentName string       `json:"selected_service_agent_name"`
	Topic            string       `json:"selected_topic"`
	Task             string       `json:"selected_task"`
	MediaType        string       `json:"selected_media_type"`
	MediaDescription string       `json:"selected_media_description"`
	Service          AgentProfile `json:"service_agent"`
	Customer         AgentProfile `json:"customer_agent"`
}

// Profile returns the persona for a role.
func (s ScenarioParameters) Profile(r Role) AgentProfile {
	if r == RoleService {
		return s.Service
	}
	return s.Customer
}

// --------------------------------------------
// Transcript of one simulated conversation
// --------------------------------------------
type Turn struct {
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// SimulationRecord is one conversation as written to the simulation output files.
type SimulationRecord struct {
	CallID          string             `json:"call_id,omitempty"`
	InputSettings   ScenarioParameters `json:"input_settings"`
	Messages        []Turn             `json:"messages"`
	SummaryPrompt   string             `json:"summary_prompt,omitempty"`
	Summary         string             `json:"summary"`
	Cost            float64            `json:"cost"`
	AgentType       string             `json:"agent_type"`
	Scenario        string             `json:"scenario,omitempty"`
	Model           string             `json:"model,omitempty"`
	Status          string             `json:"status,omitempty"`
	LLMRating       *float64           `json:"llm_rating,omitempty"`
	LLMRatingParsed *bool              `json:"llm_rating_parsed,omitempty"`
}
