// Package upcoming computes which reminders surface within a lookahead window.
package upcoming

import (
	"context"
	"fmt"
	"sort"
	"time"

	"remindme-service/pkg/models"
)

// DefaultWindowDays is the lookahead used when the caller gives none.
const DefaultWindowDays = 30

// ReminderSource lists a user's active reminders.
type ReminderSource interface {
	ListActive(ctx context.Context, userID string) ([]models.Reminder, error)
}

// ContactCard is the display data attached to an upcoming reminder.
type ContactCard struct {
	Name  string
	Email string
}

// UnknownContact is the placeholder used when a referenced contact is gone.
var UnknownContact = ContactCard{Name: "Unknown", Email: ""}

// ContactDirectory resolves a contact id to display data. It is best-effort
// enrichment, not an authorization check: lookups are not scoped to the
// reminder's owner and a missing contact yields UnknownContact.
type ContactDirectory interface {
	Card(ctx context.Context, contactID string) ContactCard
}

// Evaluation is the per-reminder result of computing a trigger date.
// Exactly one of Trigger or Err is meaningful.
type Evaluation struct {
	Reminder models.Reminder
	Trigger  time.Time
	Err      error
}

// Evaluate computes occasion_date minus reminder_days_before.
func Evaluate(r models.Reminder) Evaluation {
	occasion, err := ParseDate(r.OccasionDate)
	if err != nil {
		return Evaluation{Reminder: r, Err: fmt.Errorf("reminder %s: %w", r.ReminderID, err)}
	}
	return Evaluation{Reminder: r, Trigger: occasion.AddDate(0, 0, -r.ReminderDaysBefore)}
}

// Skipped records a reminder left out because its date could not be parsed.
type Skipped struct {
	ReminderID   string
	OccasionDate string
	Err          error
}

// Projection is the outcome of a window query.
type Projection struct {
	Upcoming []models.UpcomingReminder
	Skipped  []Skipped
}

// Select keeps evaluations whose trigger falls within [today, today+windowDays]
// and returns them ordered by days until trigger. Failed evaluations are
// returned separately and never abort the selection.
func Select(evals []Evaluation, today time.Time, windowDays int) (kept []Evaluation, skipped []Skipped) {
	today = Day(today)
	last := today.AddDate(0, 0, windowDays)
	for _, e := range evals {
		if e.Err != nil {
			skipped = append(skipped, Skipped{
				ReminderID:   e.Reminder.ReminderID,
				OccasionDate: e.Reminder.OccasionDate,
				Err:          e.Err,
			})
			continue
		}
		if e.Trigger.Before(today) || e.Trigger.After(last) {
			continue
		}
		kept = append(kept, e)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Trigger.Before(kept[j].Trigger)
	})
	return kept, skipped
}

// Projector joins a user's active reminders with contact display data.
type Projector struct {
	reminders ReminderSource
	contacts  ContactDirectory
}

func NewProjector(reminders ReminderSource, contacts ContactDirectory) *Projector {
	return &Projector{reminders: reminders, contacts: contacts}
}

// Today is the current UTC calendar date.
func Today() time.Time {
	return Day(time.Now().UTC())
}

// Project returns the user's active reminders triggering within windowDays of
// today. Recurring reminders are evaluated against their stored occasion date only.
func (p *Projector) Project(ctx context.Context, userID string, windowDays int, today time.Time) (Projection, error) {
	reminders, err := p.reminders.ListActive(ctx, userID)
	if err != nil {
		return Projection{}, fmt.Errorf("list active reminders: %w", err)
	}

	evals := make([]Evaluation, 0, len(reminders))
	for _, r := range reminders {
		evals = append(evals, Evaluate(r))
	}

	today = Day(today)
	kept, skipped := Select(evals, today, windowDays)

	out := make([]models.UpcomingReminder, 0, len(kept))
	for _, e := range kept {
		card := p.contacts.Card(ctx, e.Reminder.ContactID)
		out = append(out, models.UpcomingReminder{
			Reminder:     e.Reminder,
			ContactName:  card.Name,
			ContactEmail: card.Email,
			DaysUntil:    daysBetween(today, e.Trigger),
		})
	}
	return Projection{Upcoming: out, Skipped: skipped}, nil
}
