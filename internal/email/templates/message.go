package templates

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"
	"time"
)

//go:embed message.html
var messageHTML string

var messageTmpl = template.Must(template.New("message").Parse(messageHTML))

// MessageData is a plain-text outreach message wrapped for HTML mail.
type MessageData struct {
	Subject  string
	Body     string
	FromName string
	Year     int // Auto-set if 0
}

// RenderMessageEmail escapes Body and splits it into paragraphs on blank lines.
func RenderMessageEmail(data MessageData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.FromName == "" {
		data.FromName = "ReMindMe"
	}

	var paragraphs []string
	for _, p := range strings.Split(strings.ReplaceAll(data.Body, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var buf bytes.Buffer
	err := messageTmpl.Execute(&buf, struct {
		MessageData
		Paragraphs []string
	}{data, paragraphs})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
