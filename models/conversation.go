package models

import (
	"strings"
	"time"
)

/************************************************
/**** MARK: CONVERSATION SOURCES ****/
/************************************************/
const INSTAGRAM_NUMBER_PREFIX = "instagram-"

// Conversation is one customer thread (widget or Instagram DM relay).
// The sale-tracking fields are mutated only by the sales pipeline.
type Conversation struct {
	ID               int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserMobileNumber string     `gorm:"not null;index" json:"user_mobile_number"`
	CustomerName     string     `gorm:"default:''" json:"customer_name"`
	RepName          string     `gorm:"default:''" json:"rep_name"`
	RepPhoneNumber   string     `gorm:"default:''" json:"rep_phone_number"`

	HasPotentialSale  bool       `gorm:"default:false" json:"has_potential_sale"`
	SaleStatus        *string    `gorm:"index" json:"sale_status"`
	SaleKeywordsCount int        `gorm:"default:0" json:"sale_keywords_count"`
	LastSaleKeywordAt *time.Time `json:"last_sale_keyword_at"`
	SaleID            *int64     `gorm:"index" json:"sale_id"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Channel infers the acquisition channel from the mobile-number convention:
// Instagram-originated conversations carry an "instagram-" prefix instead of
// a real phone number.
func (c Conversation) Channel() string {
	if strings.HasPrefix(strings.TrimSpace(c.UserMobileNumber), INSTAGRAM_NUMBER_PREFIX) {
		return CHANNEL_INSTAGRAM
	}
	return CHANNEL_WEBSITE
}
