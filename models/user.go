package models

import (
	"time"

	"github.com/Brighttier/Chatbot-Peptides-sub001/tools"
)

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

/************************************************
/**** MARK: USER ROLES ****/
/************************************************/
const USER_ROLE_ADMIN = "admin"
const USER_ROLE_REP = "rep"
const USER_ROLE_VIEWER = "viewer"

// User is a dashboard operator. The identity fields (id/name/email/role)
// are what gets stamped onto every sale audit entry.
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Email     string     `gorm:"not null;unique" json:"email" form:"email"`
	Password  string     `gorm:"not null" json:"-" form:"password"`
	Phone     string     `gorm:"default:''" json:"phone" form:"phone"`
	Role      string     `gorm:"default:'viewer'" json:"role" form:"role"`
	Admin     bool       `gorm:"not null;default:false" json:"admin" form:"admin"`
	Status    int        `gorm:"default:0" json:"status" form:"status"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	}
	return ""
}
