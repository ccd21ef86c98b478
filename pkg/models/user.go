// pkg/models/user.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultTimezone         = "UTC"
	DefaultSubscriptionTier = "free"
)

// UserPreferences is stored as a JSON document on the user row.
type UserPreferences struct {
	CommunicationTone   string `json:"communication_tone"`
	ReminderAdvanceDays int    `json:"reminder_advance_days"`
}

// DefaultPreferences are assigned at signup.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		CommunicationTone:   "friendly",
		ReminderAdvanceDays: 3,
	}
}

// User is an account holder. UserID is the application-generated id that every
// other collection references; ID is the storage-native key and never leaves the service.
type User struct {
	ID               uint                                `json:"-" gorm:"primaryKey"`
	UserID           string                              `json:"user_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	Email            string                              `json:"email" gorm:"type:varchar(320);uniqueIndex;not null"`
	PasswordHash     string                              `json:"-" gorm:"column:password;type:varchar(255);not null"`
	Name             string                              `json:"name" gorm:"type:varchar(200);not null"`
	Timezone         string                              `json:"timezone" gorm:"type:varchar(64);not null"`
	SubscriptionTier string                              `json:"subscription_tier" gorm:"type:varchar(30);not null"`
	Preferences      datatypes.JSONType[UserPreferences] `json:"preferences"`
	CreatedAt        time.Time                           `json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// SignupRequest is the API input.
type SignupRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Timezone *string `json:"timezone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// ProfileView is the /auth/me projection of a User.
type ProfileView struct {
	UserID           string `json:"user_id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Timezone         string `json:"timezone"`
	SubscriptionTier string `json:"subscription_tier"`
}

func (u *User) Profile() ProfileView {
	tz := u.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	tier := u.SubscriptionTier
	if tier == "" {
		tier = DefaultSubscriptionTier
	}
	return ProfileView{
		UserID:           u.UserID,
		Email:            u.Email,
		Name:             u.Name,
		Timezone:         tz,
		SubscriptionTier: tier,
	}
}
