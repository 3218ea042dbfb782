package bump

import (
	"strings"

	"github.com/LucasLR2/1ebot/internal/domain"
)

// Classifier tags inbound channel events. Classification is pure: it never
// mutates state, the Tracker applies all effects based on the returned tag.
type Classifier struct {
	watchedChannelID string
	trackedCommand   string
	manualTrigger    string
	successPhrases   []string
}

// NewClassifier builds a classifier for the watched channel. trackedCommand
// is the slash-command name ("bump"), manualTrigger the literal phrase a
// regular user may type instead ("/bump"), successPhrases the known
// confirmation substrings (already lowercase).
func NewClassifier(watchedChannelID, trackedCommand, manualTrigger string, successPhrases []string) *Classifier {
	lowered := make([]string, len(successPhrases))
	for i, p := range successPhrases {
		lowered[i] = strings.ToLower(p)
	}
	return &Classifier{
		watchedChannelID: watchedChannelID,
		trackedCommand:   strings.ToLower(trackedCommand),
		manualTrigger:    strings.ToLower(manualTrigger),
		successPhrases:   lowered,
	}
}

// Classify applies the priority rules:
//
//  1. outside the watched channel → irrelevant
//  2. service message with an invocation name → rejection when it is not
//     the tracked command, invocation otherwise; an invocation whose
//     message already has visible blocks is additionally evaluated as a
//     confirmation candidate in the same pass
//  3. service message without invocation name but with rich blocks →
//     confirmation, outcome by phrase match
//  4. any other service message → irrelevant
//  5. regular user typing the manual trigger → manual trigger
//  6. anything else → irrelevant
func (c *Classifier) Classify(ev domain.ChannelEvent) domain.Classification {
	if ev.ChannelID != c.watchedChannelID {
		return domain.Classification{Kind: domain.KindIrrelevant}
	}

	if ev.FromService {
		return c.classifyService(ev)
	}

	if strings.ToLower(strings.TrimSpace(ev.Content)) == c.manualTrigger {
		return domain.Classification{
			Kind:        domain.KindManualTrigger,
			InitiatorID: ev.AuthorID,
		}
	}

	return domain.Classification{Kind: domain.KindIrrelevant}
}

func (c *Classifier) classifyService(ev domain.ChannelEvent) domain.Classification {
	if ev.InvocationName != "" {
		if strings.ToLower(ev.InvocationName) != c.trackedCommand {
			return domain.Classification{Kind: domain.KindRejection}
		}

		result := domain.Classification{
			Kind:        domain.KindInvocation,
			InitiatorID: ev.InvocationUserID,
		}
		// The visible confirmation usually arrives as a separate later
		// message, but some responses carry it inline.
		if len(ev.RichBlocks) > 0 {
			confirmation := c.classifyConfirmation(ev)
			result.AlsoConfirmation = &confirmation
		}
		return result
	}

	if len(ev.RichBlocks) > 0 {
		return c.classifyConfirmation(ev)
	}

	return domain.Classification{Kind: domain.KindIrrelevant}
}

func (c *Classifier) classifyConfirmation(ev domain.ChannelEvent) domain.Classification {
	block := ev.RichBlocks[0]
	text := strings.ToLower(block.Title + " " + block.Description)

	for _, phrase := range c.successPhrases {
		if strings.Contains(text, phrase) {
			return domain.Classification{Kind: domain.KindConfirmation, Success: true}
		}
	}
	return domain.Classification{Kind: domain.KindConfirmation, Success: false}
}
