package composer

import (
	"strings"

	"remindme-service/pkg/models"
)

// FallbackMode selects the text used when the model cannot produce a message.
type FallbackMode string

const (
	// FallbackGeneric always uses one friendly catch-up line.
	FallbackGeneric FallbackMode = "generic"
	// FallbackOccasion picks a template by occasion and tone.
	FallbackOccasion FallbackMode = "occasion"
)

func genericFallback(name string) string {
	return "Hi " + name + "! Hope you're doing well. Looking forward to catching up soon!"
}

var occasionTemplates = map[models.OccasionType]map[Tone]string{
	models.OccasionBirthday: {
		ToneFriendly:     "Happy Birthday {name}! 🎉 Hope you have an amazing day filled with joy and laughter!",
		ToneProfessional: "Dear {name}, Wishing you a very happy birthday and continued success in the year ahead.",
		ToneWarm:         "Happy Birthday dear {name}! May this special day bring you endless happiness and wonderful memories.",
		ToneConcise:      "Happy Birthday {name}! Best wishes! 🎂",
	},
	models.OccasionFollowUp: {
		ToneFriendly:     "Hey {name}! It's been a while since we last connected. Hope you're doing great! Would love to catch up soon.",
		ToneProfessional: "Hello {name}, I wanted to reach out and see how things are going. Looking forward to reconnecting.",
		ToneWarm:         "Hi {name}, I've been thinking about you and wanted to check in. Hope all is well with you!",
		ToneConcise:      "Hi {name}, let's catch up soon!",
	},
	models.OccasionAnniversary: {
		ToneFriendly:     "Happy Anniversary {name}! 🎊 Wishing you many more years of happiness together!",
		ToneProfessional: "Dear {name}, Congratulations on your anniversary. Wishing you continued happiness.",
		ToneWarm:         "Happy Anniversary dear {name}! May your love continue to grow stronger with each passing year.",
		ToneConcise:      "Happy Anniversary {name}! 💕",
	},
}

// occasionFallback uses follow-up templates for occasions without their own set.
func occasionFallback(o models.OccasionType, tone Tone, name string) string {
	set, ok := occasionTemplates[models.OccasionType(strings.ToLower(string(o)))]
	if !ok {
		set = occasionTemplates[models.OccasionFollowUp]
	}
	return strings.ReplaceAll(set[tone], "{name}", name)
}

// Fallback returns the non-model message for in under mode.
func Fallback(mode FallbackMode, in Input) string {
	if mode == FallbackOccasion {
		return occasionFallback(in.Occasion, NormalizeTone(in.Tone), in.ContactName)
	}
	return genericFallback(in.ContactName)
}
