package composer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remindme-service/internal/config"
	"remindme-service/internal/llm"
	"remindme-service/pkg/models"
)

type fakeLLM struct {
	text string
	err  error
	got  llm.Request
}

func (f *fakeLLM) Generate(_ context.Context, req llm.Request) (string, error) {
	f.got = req
	return f.text, f.err
}

func (f *fakeLLM) GetModel() string { return "fake" }

func TestClean(t *testing.T) {
	tests := map[string]string{
		"Here's: Happy Birthday John!":        "Happy Birthday John!",
		"  Subject: Hello\n":                   "Hello",
		"Message:  : Hey Ann":                  "Hey Ann",
		"Here is a note for you":               "a note for you",
		"Subject: Here's: nested":              "nested",
		"Happy Birthday! Here's to more years": "Happy Birthday! Here's to more years",
		"   ":                                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Clean(in), "input %q", in)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Input{
		ContactName:   "John",
		Relationship:  "Friend",
		Notes:         "Loves hiking",
		Occasion:      models.OccasionBirthday,
		Tone:          "warm",
		CustomContext: "turning 30",
	})

	assert.Equal(t, systemInstructions[ToneWarm], p.System)
	assert.True(t, strings.HasPrefix(p.User, "Write a warm birthday message for John."))
	assert.Contains(t, p.User, " They are my friend.")
	assert.Contains(t, p.User, " Context about them: Loves hiking")
	assert.Contains(t, p.User, " Additional context: turning 30")
	assert.Contains(t, p.User, " Make it heartfelt and emotional.")
	assert.True(t, strings.HasSuffix(p.User, "Just write the message content itself."))
}

func TestBuildPromptDefaults(t *testing.T) {
	p := BuildPrompt(Input{ContactName: "Ann", Occasion: "graduation", Tone: "sarcastic"})

	assert.Equal(t, systemInstructions[ToneFriendly], p.System)
	assert.True(t, strings.HasPrefix(p.User, "Write a sarcastic personalized message for Ann."))
	assert.NotContains(t, p.User, "They are my")
	assert.NotContains(t, p.User, "Context about them")
	assert.Contains(t, p.User, "like talking to a friend")
}

func TestBuildPromptEmptyToneReadsFriendly(t *testing.T) {
	p := BuildPrompt(Input{ContactName: "Ann", Occasion: models.OccasionBirthday})

	assert.True(t, strings.HasPrefix(p.User, "Write a friendly birthday message for Ann."))
	assert.Equal(t, systemInstructions[ToneFriendly], p.System)
}

func TestBuildPromptTruncatesNotes(t *testing.T) {
	notes := strings.Repeat("é", 250)
	p := BuildPrompt(Input{ContactName: "Ann", Occasion: models.OccasionFollowUp, Notes: notes})

	assert.Contains(t, p.User, "Context about them: "+strings.Repeat("é", 200)+" ")
	assert.NotContains(t, p.User, strings.Repeat("é", 201))
}

func TestComposeUsesModelOutput(t *testing.T) {
	fake := &fakeLLM{text: "Here's: Happy Birthday John!"}
	g := NewGenerator(fake, FallbackGeneric, nil)

	res := g.Compose(context.Background(), Input{ContactName: "John", Occasion: models.OccasionBirthday, Tone: "friendly"})
	assert.Equal(t, Result{Text: "Happy Birthday John!", Source: SourceModel}, res)
	assert.Equal(t, SessionTag(Input{ContactName: "John", Occasion: models.OccasionBirthday}), fake.got.SessionID)
	assert.True(t, strings.HasPrefix(fake.got.SessionID, "message_gen_birthday_"))
}

func TestComposeFallsBackOnError(t *testing.T) {
	g := NewGenerator(&fakeLLM{err: errors.New("unavailable")}, FallbackGeneric, nil)

	res := g.Compose(context.Background(), Input{ContactName: "John", Occasion: models.OccasionBirthday})
	assert.Equal(t, "Hi John! Hope you're doing well. Looking forward to catching up soon!", res.Text)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestComposeFallsBackOnEmptyOutput(t *testing.T) {
	g := NewGenerator(&fakeLLM{text: "Subject:   "}, FallbackGeneric, nil)

	res := g.Compose(context.Background(), Input{ContactName: "Ann"})
	assert.Equal(t, SourceFallback, res.Source)
	assert.NotEmpty(t, res.Text)
}

func TestComposeMissingKey(t *testing.T) {
	gen, err := llm.NewFromConfig(&config.Config{LLMProvider: "gemini"}, nil)
	require.NoError(t, err)
	g := NewGenerator(gen, FallbackOccasion, nil)

	res := g.Compose(context.Background(), Input{ContactName: "Ann", Occasion: models.OccasionAnniversary, Tone: "concise"})
	assert.Equal(t, "Happy Anniversary Ann! 💕", res.Text)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestOccasionFallback(t *testing.T) {
	tests := []struct {
		occasion models.OccasionType
		tone     string
		want     string
	}{
		{models.OccasionBirthday, "concise", "Happy Birthday Sam! Best wishes! 🎂"},
		{models.OccasionBirthday, "professional", "Dear Sam, Wishing you a very happy birthday and continued success in the year ahead."},
		{models.OccasionFollowUp, "concise", "Hi Sam, let's catch up soon!"},
		{models.OccasionCustom, "warm", "Hi Sam, I've been thinking about you and wanted to check in. Hope all is well with you!"},
		{"Birthday", "concise", "Happy Birthday Sam! Best wishes! 🎂"},
		{"FOLLOW-UP", "concise", "Hi Sam, let's catch up soon!"},
		{models.OccasionAnniversary, "unknown", "Happy Anniversary Sam! 🎊 Wishing you many more years of happiness together!"},
	}
	for _, tt := range tests {
		got := Fallback(FallbackOccasion, Input{ContactName: "Sam", Occasion: tt.occasion, Tone: tt.tone})
		assert.Equal(t, tt.want, got)
	}
}
