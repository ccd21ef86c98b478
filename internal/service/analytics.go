package service

import (
	"context"
	"fmt"
	"time"

	"remindme-service/internal/upcoming"
)

const (
	DashboardUpcomingDays = 7
	DashboardStaleMonths  = 3
)

// StaleCutoff approximates a month as 30 days.
func StaleCutoff(now time.Time, months int) time.Time {
	return now.UTC().AddDate(0, 0, -30*months)
}

type Dashboard struct {
	TotalContacts       int64 `json:"total_contacts"`
	TotalReminders      int64 `json:"total_reminders"`
	UpcomingEventsCount int   `json:"upcoming_events_count"`
	StaleContactsCount  int   `json:"stale_contacts_count"`
}

type AnalyticsService struct {
	contacts  *ContactService
	reminders *ReminderService
	projector *upcoming.Projector
}

func NewAnalyticsService(contacts *ContactService, reminders *ReminderService, projector *upcoming.Projector) *AnalyticsService {
	return &AnalyticsService{contacts: contacts, reminders: reminders, projector: projector}
}

// Dashboard counts the user's contacts and active reminders, events in the
// next week, and contacts not reached in three months.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID string, now time.Time) (*Dashboard, error) {
	totalContacts, err := s.contacts.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	totalReminders, err := s.reminders.CountActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count reminders: %w", err)
	}
	proj, err := s.projector.Project(ctx, userID, DashboardUpcomingDays, upcoming.Day(now.UTC()))
	if err != nil {
		return nil, err
	}
	stale, err := s.contacts.Stale(ctx, userID, StaleCutoff(now, DashboardStaleMonths))
	if err != nil {
		return nil, fmt.Errorf("stale contacts: %w", err)
	}
	return &Dashboard{
		TotalContacts:       totalContacts,
		TotalReminders:      totalReminders,
		UpcomingEventsCount: len(proj.Upcoming),
		StaleContactsCount:  len(stale),
	}, nil
}
