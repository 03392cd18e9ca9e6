package models

import (
	"encoding/json"
	"time"
)

// KeywordMatch pins one detected keyword to the message it came from.
type KeywordMatch struct {
	Keyword   string    `json:"keyword"`
	MessageID string    `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
}

// TranscriptLine is one message summary inside the evidence snapshot.
type TranscriptLine struct {
	MessageID string    `json:"message_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleEvidence is the supporting snapshot behind a flagged sale: every
// keyword match accumulated so far plus the transcript excerpt from the last
// flag. One row per sale; keyword accumulation updates it in place.
//
// Matches and transcript are stored as JSON in text columns; they are read
// and written whole, never queried by field.
type SaleEvidence struct {
	ID                 int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	SaleID             int64      `gorm:"not null;unique_index" json:"sale_id"`
	KeywordsFound      string     `gorm:"type:text" json:"keywords_found"`
	TranscriptSnapshot string     `gorm:"type:text" json:"transcript_snapshot"`
	MessageCount       int        `gorm:"default:0" json:"message_count"`
	CreatedAt          *time.Time `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

func (e SaleEvidence) Matches() []KeywordMatch {
	var out []KeywordMatch
	if e.KeywordsFound == "" {
		return out
	}
	_ = json.Unmarshal([]byte(e.KeywordsFound), &out)
	return out
}

func (e SaleEvidence) Transcript() []TranscriptLine {
	var out []TranscriptLine
	if e.TranscriptSnapshot == "" {
		return out
	}
	_ = json.Unmarshal([]byte(e.TranscriptSnapshot), &out)
	return out
}

func (e *SaleEvidence) SetMatches(matches []KeywordMatch) {
	b, _ := json.Marshal(matches)
	e.KeywordsFound = string(b)
}

func (e *SaleEvidence) SetTranscript(lines []TranscriptLine) {
	b, _ := json.Marshal(lines)
	e.TranscriptSnapshot = string(b)
	e.MessageCount = len(lines)
}
