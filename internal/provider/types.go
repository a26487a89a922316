package provider

// Role identifies the sender of a conversation turn.
type Role string

// Role constants for conversation turns.
const (
	RoleUser      Role = "user"
	RoleCounselor Role = "counselor"
)

// Turn is a single prior exchange in a conversation, oldest first.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is the input to a Provider.Generate call.
type Request struct {
	// Prompt is the current user message.
	Prompt string `json:"prompt"`

	// SystemInstruction frames the counselor persona and constraints.
	SystemInstruction string `json:"system_instruction"`

	// Facts are retrieved knowledge snippets. Providers append them to
	// the system instruction so the model can weave them into its reply.
	Facts []string `json:"facts,omitempty"`

	// History holds up to the 10 most recent conversation turns in
	// chronological order. Providers convert it to their own message
	// format.
	History []Turn `json:"history,omitempty"`

	// MaxTokens caps the generated output. Zero means provider default.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature overrides the provider's default sampling temperature.
	Temperature *float64 `json:"temperature,omitempty"`
}

// Result is the outcome of a cascade invocation. It is a value, not an
// error: the cascade never propagates provider failures as Go errors to
// its caller, because the caller always has a deterministic fallback.
type Result struct {
	// Success reports whether any provider produced a response.
	Success bool `json:"success"`

	// Response is the generated text when Success is true.
	Response string `json:"response,omitempty"`

	// Provider names the provider that succeeded, for observability.
	Provider string `json:"provider,omitempty"`

	// Err carries the final failure when Success is false. It wraps
	// ErrAllProviders together with the last provider error.
	Err error `json:"-"`
}

// FactsBlock renders the facts as a system-instruction suffix. All
// providers share this format so the same request produces comparable
// prompts regardless of which provider answers it.
func (r Request) FactsBlock() string {
	if len(r.Facts) == 0 {
		return ""
	}
	block := "\n\nUSE THESE FACTS TO INFORM YOUR RESPONSE:"
	for _, f := range r.Facts {
		block += "\n" + f
	}
	return block
}
