package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"remindme-service/internal/composer"
	"remindme-service/pkg/models"
)

// Composer produces message text; it never fails.
type Composer interface {
	Compose(ctx context.Context, in composer.Input) composer.Result
}

type MessageService struct {
	db       *gorm.DB
	contacts *ContactService
	composer Composer
	log      *zap.Logger
}

func NewMessageService(db *gorm.DB, contacts *ContactService, c Composer, log *zap.Logger) *MessageService {
	return &MessageService{db: db, contacts: contacts, composer: c, log: log.Named("messages")}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Generate drafts a message for one of the user's contacts and stores it,
// whether the text came from the model or the fallback.
func (s *MessageService) Generate(ctx context.Context, userID string, req *models.MessageGenerateRequest) (*models.Message, error) {
	occasion := strings.TrimSpace(req.OccasionType)
	if occasion == "" {
		return nil, invalid("occasion_type is required")
	}
	tone := strings.TrimSpace(req.Tone)
	if tone == "" {
		tone = string(composer.ToneFriendly)
	}

	contact, err := s.contacts.Get(ctx, userID, req.ContactID)
	if err != nil {
		return nil, err
	}

	result := s.composer.Compose(ctx, composer.Input{
		ContactName:   contact.Name,
		Relationship:  deref(contact.Relationship),
		Notes:         deref(contact.Notes),
		Occasion:      models.OccasionType(occasion),
		Tone:          tone,
		CustomContext: strings.TrimSpace(deref(req.CustomContext)),
	})

	msg := &models.Message{
		MessageID:        uuid.NewString(),
		UserID:           userID,
		ContactID:        contact.ContactID,
		OccasionType:     occasion,
		Tone:             tone,
		GeneratedMessage: result.Text,
		Source:           result.Source,
	}
	// the request context may already be spent on a slow model call
	if err := s.db.WithContext(context.WithoutCancel(ctx)).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}
	s.log.Info("[MESSAGES] generated",
		zap.String("user_id", userID),
		zap.String("message_id", msg.MessageID),
		zap.String("source", msg.Source))
	return msg, nil
}

// List returns the user's messages newest first, optionally for one contact.
func (s *MessageService) List(ctx context.Context, userID, contactID string) ([]models.Message, error) {
	messages := []models.Message{}
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if contactID != "" {
		q = q.Where("contact_id = ?", contactID)
	}
	err := q.Order("created_at DESC, id DESC").Find(&messages).Error
	return messages, err
}
