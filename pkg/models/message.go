package models

import "time"

// Message is a generated outreach draft. GeneratedMessage is never empty.
type Message struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	MessageID        string    `json:"message_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID           string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	ContactID        string    `json:"contact_id" gorm:"type:varchar(36);index;not null"`
	OccasionType     string    `json:"occasion_type" gorm:"type:varchar(30);not null"`
	Tone             string    `json:"tone" gorm:"type:varchar(30);not null"`
	GeneratedMessage string    `json:"generated_message" gorm:"type:text;not null"`
	Source           string    `json:"source" gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageGenerateRequest is the API input.
type MessageGenerateRequest struct {
	ContactID     string  `json:"contact_id"`
	OccasionType  string  `json:"occasion_type"`
	Tone          string  `json:"tone"`
	CustomContext *string `json:"custom_context,omitempty"`
}

// EmailSendRequest is the API input for the email placeholder.
type EmailSendRequest struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
