// Package composer turns a contact and an occasion into a short outreach message.
package composer

import (
	"strings"
	"unicode/utf8"

	"remindme-service/pkg/models"
)

type Tone string

const (
	ToneFriendly     Tone = "friendly"
	ToneProfessional Tone = "professional"
	ToneWarm         Tone = "warm"
	ToneConcise      Tone = "concise"
)

// NormalizeTone maps anything unrecognised to friendly.
func NormalizeTone(s string) Tone {
	switch t := Tone(strings.ToLower(strings.TrimSpace(s))); t {
	case ToneFriendly, ToneProfessional, ToneWarm, ToneConcise:
		return t
	}
	return ToneFriendly
}

var systemInstructions = map[Tone]string{
	ToneFriendly:     "You are a friendly and casual message writer. Write warm, approachable messages that feel personal and genuine.",
	ToneProfessional: "You are a professional message writer. Write polite, respectful messages suitable for business contexts.",
	ToneWarm:         "You are a warm and affectionate message writer. Write heartfelt, caring messages that express genuine emotion.",
	ToneConcise:      "You are a concise message writer. Write brief, to-the-point messages that are friendly but efficient.",
}

var toneGuidance = map[Tone]string{
	ToneFriendly:     " Make it casual and warm, like talking to a friend.",
	ToneProfessional: " Keep it professional and appropriate for business.",
	ToneWarm:         " Make it heartfelt and emotional.",
	ToneConcise:      " Keep it under 2 sentences.",
}

const closingInstruction = " Do not include greetings like 'Subject:' or email formatting. Just write the message content itself."

const maxNotesRunes = 200

// Input is everything the composer needs about one request.
type Input struct {
	ContactName   string
	Relationship  string
	Notes         string
	Occasion      models.OccasionType
	Tone          string
	CustomContext string
}

// Prompt is the pair sent to the model.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the system instruction and user prompt for in.
func BuildPrompt(in Input) Prompt {
	tone := NormalizeTone(in.Tone)

	var sb strings.Builder
	sb.WriteString(occasionPrompt(in.Occasion, toneWording(in.Tone), in.ContactName))
	if in.Relationship != "" {
		sb.WriteString(" They are my ")
		sb.WriteString(strings.ToLower(in.Relationship))
		sb.WriteString(".")
	}
	if in.Notes != "" {
		sb.WriteString(" Context about them: ")
		sb.WriteString(truncateRunes(in.Notes, maxNotesRunes))
	}
	if in.CustomContext != "" {
		sb.WriteString(" Additional context: ")
		sb.WriteString(in.CustomContext)
	}
	sb.WriteString(toneGuidance[tone])
	sb.WriteString(closingInstruction)

	return Prompt{System: systemInstructions[tone], User: sb.String()}
}

// toneWording is the tone as the caller phrased it. Only the system
// instruction and guidance fall back to friendly.
func toneWording(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return string(ToneFriendly)
	}
	return s
}

func occasionPrompt(o models.OccasionType, tone, name string) string {
	switch o {
	case models.OccasionBirthday:
		return "Write a " + tone + " birthday message for " + name + "."
	case models.OccasionAnniversary:
		return "Write a " + tone + " anniversary message for " + name + "."
	case models.OccasionFollowUp:
		return "Write a " + tone + " follow-up/check-in message for " + name + " to reconnect and see how they're doing."
	default:
		return "Write a " + tone + " personalized message for " + name + "."
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
