package models

import "time"

type OccasionType string

const (
	OccasionBirthday    OccasionType = "birthday"
	OccasionAnniversary OccasionType = "anniversary"
	OccasionFollowUp    OccasionType = "follow-up"
	OccasionCustom      OccasionType = "custom"
)

// Valid reports whether o is one of the known occasion types.
func (o OccasionType) Valid() bool {
	switch o {
	case OccasionBirthday, OccasionAnniversary, OccasionFollowUp, OccasionCustom:
		return true
	}
	return false
}

type ReminderStatus string

const (
	ReminderStatusActive   ReminderStatus = "active"
	ReminderStatusInactive ReminderStatus = "inactive"
)

const DefaultReminderDaysBefore = 3

// Reminder marks an occasion for a contact. OccasionDate is kept as the
// client-supplied calendar date string; it is parsed when projecting.
// ContactID is a soft reference: reads never join on it.
type Reminder struct {
	ID                 uint           `json:"-" gorm:"primaryKey"`
	ReminderID         string         `json:"reminder_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID             string         `json:"user_id" gorm:"type:varchar(36);index:idx_reminders_user_status;not null"`
	ContactID          string         `json:"contact_id" gorm:"type:varchar(36);index;not null"`
	OccasionType       OccasionType   `json:"occasion_type" gorm:"type:varchar(30);not null"`
	OccasionDate       string         `json:"occasion_date" gorm:"type:varchar(40);not null"`
	ReminderDaysBefore int            `json:"reminder_days_before" gorm:"not null"`
	CustomMessage      *string        `json:"custom_message" gorm:"type:text"`
	IsRecurring        bool           `json:"is_recurring" gorm:"not null"`
	Status             ReminderStatus `json:"status" gorm:"type:varchar(20);index:idx_reminders_user_status;not null"`
	CreatedAt          time.Time      `json:"created_at"`
}

func (Reminder) TableName() string {
	return "reminders"
}

// ReminderRequest is the API input.
type ReminderRequest struct {
	ContactID          string  `json:"contact_id"`
	OccasionType       string  `json:"occasion_type"`
	OccasionDate       string  `json:"occasion_date"`
	ReminderDaysBefore *int    `json:"reminder_days_before,omitempty"`
	CustomMessage      *string `json:"custom_message,omitempty"`
	IsRecurring        *bool   `json:"is_recurring,omitempty"`
}

// UpcomingReminder is a reminder annotated for the upcoming view.
type UpcomingReminder struct {
	Reminder
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	DaysUntil    int    `json:"days_until"`
}
