package upcoming

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindme-service/pkg/models"
)

type stubReminders struct {
	items []models.Reminder
	err   error
}

func (s stubReminders) ListActive(_ context.Context, _ string) ([]models.Reminder, error) {
	return s.items, s.err
}

type stubDirectory map[string]ContactCard

func (d stubDirectory) Card(_ context.Context, contactID string) ContactCard {
	if c, ok := d[contactID]; ok {
		return c
	}
	return UnknownContact
}

var fixedNow = time.Date(2024, 6, 10, 22, 30, 0, 0, time.UTC)

func newTestProjector(items []models.Reminder, dir stubDirectory) *Projector {
	return NewProjector(stubReminders{items: items}, dir)
}

func reminder(id, contactID, date string, daysBefore int) models.Reminder {
	return models.Reminder{
		ReminderID:         id,
		ContactID:          contactID,
		OccasionType:       models.OccasionBirthday,
		OccasionDate:       date,
		ReminderDaysBefore: daysBefore,
		Status:             models.ReminderStatusActive,
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-06-15",
		"2024-06-15T00:00:00",
		"2024-06-15T18:45:10.123",
		"2024-06-15 09:00:00",
		"2024-06-15T23:00:00-05:00",
		" 2024-06-15 ",
	} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}

	for _, in := range []string{"", "15/06/2024", "2024-13-01", "tomorrow"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestUpcomingWindowIsInclusive(t *testing.T) {
	items := []models.Reminder{
		reminder("today", "c1", "2024-06-13", 3),
		reminder("tomorrow", "c1", "2024-06-11", 0),
		reminder("yesterday", "c1", "2024-06-09", 0),
	}
	p := newTestProjector(items, stubDirectory{"c1": {Name: "Ann", Email: "ann@example.com"}})

	proj, err := p.Project(context.Background(), "u1", 0, fixedNow)
	require.NoError(t, err)
	require.Len(t, proj.Upcoming, 1)
	assert.Equal(t, "today", proj.Upcoming[0].ReminderID)
	assert.Equal(t, 0, proj.Upcoming[0].DaysUntil)

	proj, err = p.Project(context.Background(), "u1", 1, fixedNow)
	require.NoError(t, err)
	require.Len(t, proj.Upcoming, 2)
	assert.Equal(t, "today", proj.Upcoming[0].ReminderID)
	assert.Equal(t, "tomorrow", proj.Upcoming[1].ReminderID)
	assert.Equal(t, 1, proj.Upcoming[1].DaysUntil)
}

func TestUpcomingSortsByDaysUntil(t *testing.T) {
	items := []models.Reminder{
		reminder("five", "c1", "2024-06-15", 0),
		reminder("zero", "c1", "2024-06-10", 0),
		reminder("three", "c1", "2024-06-16", 3),
	}
	p := newTestProjector(items, stubDirectory{})

	proj, err := p.Project(context.Background(), "u1", DefaultWindowDays, fixedNow)
	require.NoError(t, err)

	var order []int
	for _, u := range proj.Upcoming {
		order = append(order, u.DaysUntil)
	}
	assert.Equal(t, []int{0, 3, 5}, order)
}

func TestUpcomingKeepsInputOrderForTies(t *testing.T) {
	items := []models.Reminder{
		reminder("b", "c1", "2024-06-12", 0),
		reminder("a", "c1", "2024-06-14", 2),
	}
	p := newTestProjector(items, stubDirectory{})

	proj, err := p.Project(context.Background(), "u1", 7, fixedNow)
	require.NoError(t, err)
	require.Len(t, proj.Upcoming, 2)
	assert.Equal(t, "b", proj.Upcoming[0].ReminderID)
	assert.Equal(t, "a", proj.Upcoming[1].ReminderID)
}

func TestUpcomingSkipsUnparseableDates(t *testing.T) {
	items := []models.Reminder{
		reminder("bad", "c1", "not-a-date", 0),
		reminder("good", "c1", "2024-06-12", 0),
	}
	p := newTestProjector(items, stubDirectory{})

	proj, err := p.Project(context.Background(), "u1", 7, fixedNow)
	require.NoError(t, err)
	require.Len(t, proj.Upcoming, 1)
	assert.Equal(t, "good", proj.Upcoming[0].ReminderID)
	require.Len(t, proj.Skipped, 1)
	assert.Equal(t, "bad", proj.Skipped[0].ReminderID)
	assert.Error(t, proj.Skipped[0].Err)
}

func TestUpcomingMissingContactIsUnknown(t *testing.T) {
	items := []models.Reminder{
		reminder("r1", "known", "2024-06-11", 0),
		reminder("r2", "deleted", "2024-06-12", 0),
	}
	p := newTestProjector(items, stubDirectory{"known": {Name: "Ann", Email: "ann@example.com"}})

	proj, err := p.Project(context.Background(), "u1", 7, fixedNow)
	require.NoError(t, err)
	require.Len(t, proj.Upcoming, 2)
	assert.Equal(t, "Ann", proj.Upcoming[0].ContactName)
	assert.Equal(t, "ann@example.com", proj.Upcoming[0].ContactEmail)
	assert.Equal(t, "Unknown", proj.Upcoming[1].ContactName)
	assert.Equal(t, "", proj.Upcoming[1].ContactEmail)
}

func TestUpcomingTriggerAlreadyPassed(t *testing.T) {
	// occasion is in the future but its trigger date was yesterday
	items := []models.Reminder{reminder("r1", "c1", "2024-06-12", 3)}
	p := newTestProjector(items, stubDirectory{})

	proj, err := p.Project(context.Background(), "u1", 30, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, proj.Upcoming)
}

func TestUpcomingSourceError(t *testing.T) {
	p := NewProjector(stubReminders{err: errors.New("db down")}, stubDirectory{})
	_, err := p.Project(context.Background(), "u1", 7, fixedNow)
	assert.ErrorContains(t, err, "db down")
}
