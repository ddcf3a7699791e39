package mailer

import "strings"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// Normalize lower-cases the template name and makes sure Data carries the
// recipient address under Email and RecipientEmail.
func (j *EmailJob) Normalize() {
	j.Template = strings.ToLower(strings.TrimSpace(j.Template))
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	for _, k := range []string{"Email", "RecipientEmail"} {
		if v, ok := j.Data[k].(string); !ok || v == "" {
			j.Data[k] = j.To
		}
	}
}
