package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"remindme-service/internal/upcoming"
	"remindme-service/pkg/models"
)

type ContactService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewContactService(db *gorm.DB, log *zap.Logger) *ContactService {
	return &ContactService{db: db, log: log.Named("contacts")}
}

// optional turns a blank optional field into nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func newContact(userID string, req *models.ContactRequest) (*models.Contact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("Name is required")
	}
	email := optional(req.Email)
	if email != nil && !models.ValidEmail(*email) {
		return nil, invalid("Invalid email address")
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	fields := req.CustomFields
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return &models.Contact{
		ContactID:    uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Email:        email,
		Phone:        optional(req.Phone),
		Birthday:     optional(req.Birthday),
		Relationship: optional(req.Relationship),
		Notes:        optional(req.Notes),
		Tags:         datatypes.JSONSlice[string](tags),
		CustomFields: datatypes.JSONMap(fields),
	}, nil
}

func (s *ContactService) Create(ctx context.Context, userID string, req *models.ContactRequest) (*models.Contact, error) {
	contact, err := newContact(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	s.log.Info("[CONTACTS] created", zap.String("user_id", userID), zap.String("contact_id", contact.ContactID))
	return contact, nil
}

func (s *ContactService) List(ctx context.Context, userID string) ([]models.Contact, error) {
	contacts := []models.Contact{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&contacts).Error
	return contacts, err
}

// Get returns ErrNotFound both for unknown ids and for contacts of other users.
func (s *ContactService) Get(ctx context.Context, userID, contactID string) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.WithContext(ctx).
		Where("contact_id = ? AND user_id = ?", contactID, userID).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return &contact, nil
}

// Update applies the non-nil fields of req. Owner and ids are never changed.
func (s *ContactService) Update(ctx context.Context, userID, contactID string, req *models.ContactUpdateRequest) (*models.Contact, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("Name must not be empty")
		}
		updates["name"] = name
	}
	if req.Email != nil {
		email := optional(req.Email)
		if email != nil && !models.ValidEmail(*email) {
			return nil, invalid("Invalid email address")
		}
		updates["email"] = email
	}
	if req.Phone != nil {
		updates["phone"] = optional(req.Phone)
	}
	if req.Birthday != nil {
		updates["birthday"] = optional(req.Birthday)
	}
	if req.Relationship != nil {
		updates["relationship"] = optional(req.Relationship)
	}
	if req.Notes != nil {
		updates["notes"] = optional(req.Notes)
	}
	if req.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](*req.Tags)
	}
	if req.CustomFields != nil {
		updates["custom_fields"] = datatypes.JSONMap(*req.CustomFields)
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}

	result := s.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("contact_id = ? AND user_id = ?", contactID, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("update contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, userID, contactID)
}

// Delete removes the contact and every reminder that references it.
func (s *ContactService) Delete(ctx context.Context, userID, contactID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("contact_id = ? AND user_id = ?", contactID, userID).Delete(&models.Contact{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("contact_id = ?", contactID).Delete(&models.Reminder{}).Error
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete contact: %w", err)
	}
	if err == nil {
		s.log.Info("[CONTACTS] deleted", zap.String("user_id", userID), zap.String("contact_id", contactID))
	}
	return err
}

// Import inserts every row in one transaction and returns the number created.
func (s *ContactService) Import(ctx context.Context, userID string, rows []models.ContactRequest) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	contacts := make([]*models.Contact, 0, len(rows))
	for i := range rows {
		c, err := newContact(userID, &rows[i])
		if err != nil {
			return 0, err
		}
		contacts = append(contacts, c)
	}
	if err := s.db.WithContext(ctx).CreateInBatches(contacts, 100).Error; err != nil {
		return 0, fmt.Errorf("import contacts: %w", err)
	}
	s.log.Info("[CONTACTS] imported", zap.String("user_id", userID), zap.Int("count", len(contacts)))
	return len(contacts), nil
}

// Stale lists contacts never contacted or last contacted before cutoff.
func (s *ContactService) Stale(ctx context.Context, userID string, cutoff time.Time) ([]models.Contact, error) {
	contacts := []models.Contact{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND (last_contacted IS NULL OR last_contacted < ?)", userID, cutoff).
		Order("id ASC").
		Find(&contacts).Error
	return contacts, err
}

func (s *ContactService) Count(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Contact{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// Card implements upcoming.ContactDirectory. The lookup is by contact id
// alone and any failure degrades to the Unknown placeholder.
func (s *ContactService) Card(ctx context.Context, contactID string) upcoming.ContactCard {
	var contact models.Contact
	err := s.db.WithContext(ctx).
		Select("name", "email").
		Where("contact_id = ?", contactID).
		First(&contact).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("[CONTACTS] enrichment lookup failed", zap.String("contact_id", contactID), zap.Error(err))
		}
		return upcoming.UnknownContact
	}
	card := upcoming.ContactCard{Name: contact.Name}
	if contact.Email != nil {
		card.Email = *contact.Email
	}
	return card
}

var _ upcoming.ContactDirectory = (*ContactService)(nil)
