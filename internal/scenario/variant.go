package scenario

import "fmt"

// Variant selects the persona pools, the task language and the prompts used
// for a simulation.
type Variant string

const (
	Default      Variant = "default"
	Aggressive   Variant = "aggressive"
	AggressiveEN Variant = "aggressive_en"
)

// PhoneCall is the only medium of the English variant.
const PhoneCall = "phone call"

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Default, Aggressive, AggressiveEN:
		return v, nil
	}
	return "", fmt.Errorf("unknown scenario %q (want default, aggressive or aggressive_en)", s)
}

// ProfileDir is the config subdirectory holding the persona pools.
func (v Variant) ProfileDir() string {
	if v == Default {
		return "default"
	}
	return "aggressive"
}

func (v Variant) TasksFile() string {
	if v == AggressiveEN {
		return "tasks_en.yaml"
	}
	return "tasks_de.yaml"
}

// BotAgents reports whether the service agent is named from the bot pool.
func (v Variant) BotAgents() bool {
	return v != Default
}

// FixedMedium returns the medium type a variant is pinned to, if any.
func (v Variant) FixedMedium() (string, bool) {
	if v == AggressiveEN {
		return PhoneCall, true
	}
	return "", false
}
