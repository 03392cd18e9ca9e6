package models

import "time"

/************************************************
/**** MARK: SALE STATUS ****/
/************************************************/
const SALE_STATUS_POTENTIAL = "potential"
const SALE_STATUS_PENDING = "pending"
const SALE_STATUS_VERIFIED = "verified"
const SALE_STATUS_DISPUTED = "disputed"
const SALE_STATUS_REJECTED = "rejected"

/************************************************
/**** MARK: SALE CHANNELS ****/
/************************************************/
const CHANNEL_INSTAGRAM = "instagram"
const CHANNEL_WEBSITE = "website"
const CHANNEL_SMS = "sms"
const CHANNEL_OTHER = "other"

/************************************************
/**** MARK: DETECTION METHODS ****/
/************************************************/
const DETECTION_METHOD_KEYWORD = "keyword"
const DETECTION_METHOD_MANUAL = "manual"

// Sale is one commission-bearing sale tied to a conversation. The record
// holds current state only; history lives in SaleAuditLog. Sales are never
// deleted, rejected ones stay for audit.
type Sale struct {
	ID             int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ConversationID int64 `gorm:"not null;index" json:"conversation_id"`

	CustomerName      string `gorm:"default:''" json:"customer_name"`
	CustomerPhone     string `gorm:"default:''" json:"customer_phone"`
	CustomerInstagram string `gorm:"default:''" json:"customer_instagram"`

	Channel string `gorm:"not null;default:'other';index" json:"channel"`

	// CommissionRate is fixed at creation time from the channel; it does not
	// follow later channel changes. CommissionAmount is always
	// round(SaleAmount*CommissionRate, 2).
	SaleAmount       float64 `gorm:"default:0" json:"sale_amount"`
	CommissionRate   float64 `gorm:"default:0" json:"commission_rate"`
	CommissionAmount float64 `gorm:"default:0" json:"commission_amount"`

	Status          string `gorm:"not null;default:'potential';index" json:"status"`
	DetectionMethod string `gorm:"not null;default:'keyword'" json:"detection_method"`

	RepName        string `gorm:"default:''" json:"rep_name"`
	RepPhoneNumber string `gorm:"default:''" json:"rep_phone_number"`

	Notes          string `gorm:"type:text" json:"notes"`
	ProductDetails string `gorm:"type:text" json:"product_details"`

	DisputeReason string     `gorm:"type:text" json:"dispute_reason"`
	DisputedAt    *time.Time `json:"disputed_at"`
	DisputedBy    string     `gorm:"default:''" json:"disputed_by"`

	VerifiedAt *time.Time `json:"verified_at"`
	VerifiedBy string     `gorm:"default:''" json:"verified_by"`

	SaleDate  time.Time  `gorm:"index" json:"sale_date"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func IsValidSaleStatus(s string) bool {
	switch s {
	case SALE_STATUS_POTENTIAL, SALE_STATUS_PENDING, SALE_STATUS_VERIFIED,
		SALE_STATUS_DISPUTED, SALE_STATUS_REJECTED:
		return true
	}
	return false
}

func IsValidChannel(s string) bool {
	switch s {
	case CHANNEL_INSTAGRAM, CHANNEL_WEBSITE, CHANNEL_SMS, CHANNEL_OTHER:
		return true
	}
	return false
}
