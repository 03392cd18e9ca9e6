package models

import (
	"encoding/json"
	"time"
)

/************************************************
/**** MARK: AUDIT ACTIONS ****/
/************************************************/
const AUDIT_ACTION_VERIFIED = "verified"
const AUDIT_ACTION_DISPUTED = "disputed"
const AUDIT_ACTION_REJECTED = "rejected"
const AUDIT_ACTION_AMOUNT_CHANGED = "amount_changed"

// SaleSnapshot is the {status, saleAmount} tuple captured on both sides of
// every audited mutation.
type SaleSnapshot struct {
	Status     string  `json:"status"`
	SaleAmount float64 `json:"sale_amount"`
}

// SaleAuditLog is append-only: exactly one entry per status transition or
// amount change. It is the sole source of truth for a sale's history.
type SaleAuditLog struct {
	ID     int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	SaleID int64  `gorm:"not null;index" json:"sale_id"`
	Action string `gorm:"not null;index" json:"action"`

	PerformedByUID   string `gorm:"default:''" json:"performed_by_uid"`
	PerformedByName  string `gorm:"default:''" json:"performed_by_name"`
	PerformedByEmail string `gorm:"default:''" json:"performed_by_email"`
	PerformedByRole  string `gorm:"default:''" json:"performed_by_role"`

	PreviousValue string `gorm:"type:text" json:"previous_value"`
	NewValue      string `gorm:"type:text" json:"new_value"`
	Reason        string `gorm:"type:text" json:"reason"`

	CreatedAt *time.Time `json:"created_at"`
}

func (l SaleAuditLog) Previous() SaleSnapshot {
	var s SaleSnapshot
	if l.PreviousValue != "" {
		_ = json.Unmarshal([]byte(l.PreviousValue), &s)
	}
	return s
}

func (l SaleAuditLog) New() SaleSnapshot {
	var s SaleSnapshot
	if l.NewValue != "" {
		_ = json.Unmarshal([]byte(l.NewValue), &s)
	}
	return s
}

func (l *SaleAuditLog) SetPrevious(s SaleSnapshot) {
	b, _ := json.Marshal(s)
	l.PreviousValue = string(b)
}

func (l *SaleAuditLog) SetNew(s SaleSnapshot) {
	b, _ := json.Marshal(s)
	l.NewValue = string(b)
}
