package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contact is an address-book entry owned by exactly one user.
type Contact struct {
	ID               uint                        `json:"-" gorm:"primaryKey"`
	ContactID        string                      `json:"contact_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID           string                      `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Name             string                      `json:"name" gorm:"type:varchar(200);not null"`
	Email            *string                     `json:"email" gorm:"type:varchar(320)"`
	Phone            *string                     `json:"phone" gorm:"type:varchar(50)"`
	Birthday         *string                     `json:"birthday" gorm:"type:varchar(40)"`
	Relationship     *string                     `json:"relationship" gorm:"type:varchar(100)"`
	Notes            *string                     `json:"notes" gorm:"type:text"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
	CustomFields     datatypes.JSONMap           `json:"custom_fields"`
	LastContacted    *time.Time                  `json:"last_contacted" gorm:"index"`
	ContactFrequency int                         `json:"contact_frequency" gorm:"not null"`
	CreatedAt        time.Time                   `json:"created_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ContactRequest is the API input for create.
type ContactRequest struct {
	Name         string                 `json:"name"`
	Email        *string                `json:"email,omitempty"`
	Phone        *string                `json:"phone,omitempty"`
	Birthday     *string                `json:"birthday,omitempty"`
	Relationship *string                `json:"relationship,omitempty"`
	Notes        *string                `json:"notes,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	CustomFields map[string]interface{} `json:"custom_fields,omitempty"`
}

// ContactUpdateRequest is a partial update; nil fields are left untouched.
type ContactUpdateRequest struct {
	Name         *string                 `json:"name,omitempty"`
	Email        *string                 `json:"email,omitempty"`
	Phone        *string                 `json:"phone,omitempty"`
	Birthday     *string                 `json:"birthday,omitempty"`
	Relationship *string                 `json:"relationship,omitempty"`
	Notes        *string                 `json:"notes,omitempty"`
	Tags         *[]string               `json:"tags,omitempty"`
	CustomFields *map[string]interface{} `json:"custom_fields,omitempty"`
}
