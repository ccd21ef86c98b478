package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"remindme-service/internal/upcoming"
	"remindme-service/pkg/models"
)

type ReminderService struct {
	db       *gorm.DB
	contacts *ContactService
	log      *zap.Logger
}

func NewReminderService(db *gorm.DB, contacts *ContactService, log *zap.Logger) *ReminderService {
	return &ReminderService{db: db, contacts: contacts, log: log.Named("reminders")}
}

// Create checks the contact belongs to the user before storing the reminder.
func (s *ReminderService) Create(ctx context.Context, userID string, req *models.ReminderRequest) (*models.Reminder, error) {
	occasion := models.OccasionType(strings.TrimSpace(req.OccasionType))
	if !occasion.Valid() {
		return nil, invalid("occasion_type must be one of birthday, anniversary, follow-up, custom")
	}
	date := strings.TrimSpace(req.OccasionDate)
	if _, err := upcoming.ParseDate(date); err != nil {
		return nil, invalid("occasion_date must be a calendar date (YYYY-MM-DD)")
	}
	daysBefore := models.DefaultReminderDaysBefore
	if req.ReminderDaysBefore != nil {
		daysBefore = *req.ReminderDaysBefore
	}
	if daysBefore < 0 {
		return nil, invalid("reminder_days_before must not be negative")
	}
	recurring := true
	if req.IsRecurring != nil {
		recurring = *req.IsRecurring
	}

	if _, err := s.contacts.Get(ctx, userID, req.ContactID); err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		ReminderID:         uuid.NewString(),
		UserID:             userID,
		ContactID:          req.ContactID,
		OccasionType:       occasion,
		OccasionDate:       date,
		ReminderDaysBefore: daysBefore,
		CustomMessage:      optional(req.CustomMessage),
		IsRecurring:        recurring,
		Status:             models.ReminderStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	s.log.Info("[REMINDERS] created",
		zap.String("user_id", userID),
		zap.String("reminder_id", reminder.ReminderID),
		zap.String("contact_id", reminder.ContactID))
	return reminder, nil
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&reminders).Error
	return reminders, err
}

func (s *ReminderService) Get(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := s.db.WithContext(ctx).
		Where("reminder_id = ? AND user_id = ?", reminderID, userID).
		First(&reminder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find reminder: %w", err)
	}
	return &reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, reminderID string) error {
	result := s.db.WithContext(ctx).
		Where("reminder_id = ? AND user_id = ?", reminderID, userID).
		Delete(&models.Reminder{})
	if result.Error != nil {
		return fmt.Errorf("delete reminder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive implements upcoming.ReminderSource.
func (s *ReminderService) ListActive(ctx context.Context, userID string) ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.ReminderStatusActive).
		Order("id ASC").
		Find(&reminders).Error
	return reminders, err
}

func (s *ReminderService) CountActive(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("user_id = ? AND status = ?", userID, models.ReminderStatusActive).
		Count(&n).Error
	return n, err
}

var _ upcoming.ReminderSource = (*ReminderService)(nil)
