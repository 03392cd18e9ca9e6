package sales

import (
	"time"

	"github.com/Brighttier/Chatbot-Peptides-sub001/models"
)

// NewMatches pins each detected keyword to the message it was found in.
func NewMatches(keywords []string, msg models.Message) []models.KeywordMatch {
	ts := time.Now()
	if msg.CreatedAt != nil {
		ts = *msg.CreatedAt
	}
	out := make([]models.KeywordMatch, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, models.KeywordMatch{
			Keyword:   kw,
			MessageID: msg.MessageID,
			Timestamp: ts,
		})
	}
	return out
}

// MergeMatches appends incoming matches to existing ones, skipping pairs
// already recorded. Re-flagging the same message with the same keyword is a
// no-op, which keeps evidence updates idempotent.
func MergeMatches(existing, incoming []models.KeywordMatch) []models.KeywordMatch {
	seen := map[string]bool{}
	for _, m := range existing {
		seen[m.Keyword+"\x00"+m.MessageID] = true
	}
	out := existing
	for _, m := range incoming {
		key := m.Keyword + "\x00" + m.MessageID
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// BuildTranscript filters history down to the most recent window messages
// (all of them when there are fewer) and summarizes each one.
func BuildTranscript(history []models.Message, window int) []models.TranscriptLine {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}
	out := make([]models.TranscriptLine, 0, len(history))
	for _, m := range history {
		ts := time.Time{}
		if m.CreatedAt != nil {
			ts = *m.CreatedAt
		}
		out = append(out, models.TranscriptLine{
			MessageID: m.MessageID,
			Sender:    m.Sender,
			Text:      m.Text,
			Timestamp: ts,
		})
	}
	return out
}

// BuildEvidence assembles a fresh evidence record for a sale.
func BuildEvidence(saleID int64, matches []models.KeywordMatch, history []models.Message, window int) models.SaleEvidence {
	ev := models.SaleEvidence{SaleID: saleID}
	ev.SetMatches(matches)
	ev.SetTranscript(BuildTranscript(history, window))
	return ev
}
