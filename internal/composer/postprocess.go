package composer

import "strings"

var leadingLabels = []string{"Subject:", "Message:", "Here's", "Here is"}

// Clean trims model output and strips a leading label such as "Subject:" or
// "Here's:". Labels are tried in order and each is stripped at most once.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	for _, label := range leadingLabels {
		if strings.HasPrefix(text, label) {
			text = strings.TrimSpace(strings.TrimPrefix(text, label))
			if strings.HasPrefix(text, ":") {
				text = strings.TrimSpace(text[1:])
			}
		}
	}
	return text
}
