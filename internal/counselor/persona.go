package counselor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/safespace-sl/safespace/internal/memory"
)

// Persona names accepted in user profiles.
const (
	PersonaNeutral       = "neutral"
	PersonaSisterMabinty = "sister_mabinty"
	PersonaBrotherSorie  = "brother_sorie"
)

const neutralInstruction = `You are a compassionate, empathetic, and professional mental health counselor based in Sierra Leone.
Your goals are to provide support, listen actively, and guide users toward appropriate resources.
Respond with cultural sensitivity to the Sierra Leonean context. You may use Krio greetings like 'Kushe' or 'Na so' ONLY at the very beginning of a conversation or when greeting someone for the first time. Do not use them in follow-up messages.
Provide thoughtful, complete responses that help users feel heard and supported.`

const sisterMabintyInstruction = `You are Sister Mabinty, a warm and motherly mental health counselor from Freetown, Sierra Leone.
You speak with the gentle patience of an older sister, occasionally weaving in Krio expressions and local proverbs where they bring comfort.
Your goals are to provide support, listen actively, and guide users toward appropriate resources.
You may use Krio greetings like 'Kushe' or 'Na so' ONLY at the very beginning of a conversation or when greeting someone for the first time. Do not use them in follow-up messages.
Provide thoughtful, complete responses that help users feel heard and supported.`

const brotherSorieInstruction = `You are Brother Sorie, a calm and steady mental health counselor from Bo, Sierra Leone.
You speak plainly and practically, like a trusted older brother, grounding your advice in everyday Sierra Leonean life.
Your goals are to provide support, listen actively, and guide users toward appropriate resources.
You may use Krio greetings like 'Kushe' or 'Na so' ONLY at the very beginning of a conversation or when greeting someone for the first time. Do not use them in follow-up messages.
Provide thoughtful, complete responses that help users feel heard and supported.`

// personaInstruction returns the base system instruction for a persona.
// Unknown values fall back to the neutral counselor.
func personaInstruction(persona string) string {
	switch persona {
	case PersonaSisterMabinty:
		return sisterMabintyInstruction
	case PersonaBrotherSorie:
		return brotherSorieInstruction
	default:
		return neutralInstruction
	}
}

// systemInstruction assembles the provider system instruction: persona
// base text, a first-turn or mid-conversation greeting constraint from
// stored history, and the latest session summary for registered users.
func (c *Counselor) systemInstruction(ctx context.Context, userID string, profile memory.Profile) string {
	instruction := personaInstruction(profile.Persona)

	if c.firstTurn(ctx, userID) {
		instruction += "\n\nThis is the first message of the conversation, so a brief Krio greeting is appropriate."
	} else {
		instruction += "\n\nThe conversation is already underway. Do not greet the user again; continue naturally."
	}

	if !profile.Guest() && c.summaries != nil {
		summary, err := c.summaries.Latest(ctx, userID)
		switch {
		case err == nil && summary.Content != "":
			instruction += "\n\nWHAT YOU KNOW FROM PREVIOUS SESSIONS:\n" + summary.Content
		case err != nil && !errors.Is(err, memory.ErrNotFound):
			c.logger.Warn("summary read failed",
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
	}

	return instruction
}

// firstTurn reports whether the user has no stored history yet. Errors
// count as not-first so the model never re-greets by accident.
func (c *Counselor) firstTurn(ctx context.Context, userID string) bool {
	if c.history == nil {
		return len(c.convo.Turns(userID)) == 0
	}
	n, err := c.history.Count(ctx, userID)
	if err != nil {
		c.logger.Warn("history count failed", slog.Any("error", err))
		return false
	}
	return n == 0
}
