package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) Configured() bool {
	return s.Host != "" && s.User != "" && s.Password != ""
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(
	`Hi {{.Name}},

{{.Body}}

— The team`))

// FallbackBody is used when the drafting service is unavailable. The email
// still goes out; only the copy is generic.
func FallbackBody(industry string) string {
	return fmt.Sprintf(
		"Thanks for signing up! We received your details and will be in touch with updates relevant to the %s space.",
		industry,
	)
}

// SendConfirmation sends exactly one email per call.
func (s *EmailSender) SendConfirmation(to, name, industry, body string) error {
	data := ConfirmationEmailData{
		Name:     name,
		Industry: industry,
		Body:     body,
	}

	var rendered bytes.Buffer
	if err := confirmationTemplate.Execute(&rendered, data); err != nil {
		return fmt.Errorf("failed to render confirmation template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Thanks for signing up, %s!", name))
	m.SetBody("text/plain", rendered.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}
