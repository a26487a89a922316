package counselor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/safespace-sl/safespace/internal/memory"
	"github.com/safespace-sl/safespace/internal/provider"
)

// summarizeTimeout bounds one background summarization run.
const summarizeTimeout = 45 * time.Second

const summarizerInstruction = `You are an expert mental health counselor's assistant.
Your task is to provide a concise, professional, and empathetic summary of the preceding conversation.
Focus on:
1. The user's primary concerns (e.g., anxiety, grief, relationship issues).
2. Any progress made or coping strategies discussed.
3. The general mood and tone of the user.
4. Key facts mentioned (e.g., "User lost their job").

Keep the summary to 3-4 sentences maximum. Write it in the third person.`

// maybeSummarize kicks off background summarization when a registered
// user has accumulated enough unsummarized messages. Guests never get
// summaries. The work runs detached from the request context so a
// completed HTTP request does not cancel it.
func (c *Counselor) maybeSummarize(userID string, profile memory.Profile) {
	if profile.Guest() || c.history == nil || c.summaries == nil {
		return
	}

	c.tasks.Add(1)
	go func() {
		defer c.tasks.Done()

		ctx, cancel := context.WithTimeout(context.Background(), summarizeTimeout)
		defer cancel()

		if err := c.summarize(ctx, userID); err != nil {
			c.logger.Warn("summarization failed",
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
	}()
}

// summarize checks the unsummarized backlog and, past the threshold,
// asks the cascade for a fresh summary covering everything so far.
func (c *Counselor) summarize(ctx context.Context, userID string) error {
	total, err := c.history.Count(ctx, userID)
	if err != nil {
		return fmt.Errorf("count messages: %w", err)
	}

	summarized := 0
	last, err := c.summaries.Latest(ctx, userID)
	if err == nil {
		summarized = last.MessageCount
	} else if !errors.Is(err, memory.ErrNotFound) {
		return fmt.Errorf("read latest summary: %w", err)
	}

	if total-summarized <= c.config.SummaryThreshold {
		return nil
	}

	msgs, err := c.history.Recent(ctx, userID, total-summarized)
	if err != nil {
		return fmt.Errorf("read messages: %w", err)
	}

	var transcript strings.Builder
	for _, msg := range msgs {
		role := "User"
		if msg.Sender == memory.SenderCounselor {
			role = "Counselor"
		}
		transcript.WriteString(role)
		transcript.WriteString(": ")
		transcript.WriteString(msg.Content)
		transcript.WriteString("\n")
	}

	result := c.cascade.Generate(ctx, provider.Request{
		Prompt:            "Summarize the following conversation between a user and their counselor:\n\n" + transcript.String(),
		SystemInstruction: summarizerInstruction,
	})
	if !result.Success {
		return fmt.Errorf("generate summary: %w", result.Err)
	}

	if err := c.summaries.Save(ctx, memory.Summary{
		UserID:       userID,
		Content:      result.Response,
		MessageCount: total,
	}); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}

	c.logger.Info("conversation summarized",
		slog.String("user_id", userID),
		slog.Int("messages", total))
	return nil
}
