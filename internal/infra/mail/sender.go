package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/dental-crm/internal/infra/queue"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

type notificationData struct {
	Name        string
	DentistName string
	Pipeline    string
	FromStage   string
	ToStage     string
	Decision    string
	Notes       string
	Moved       bool
}

func (s *EmailSender) SendCardNotification(to, name string, payload queue.CardEventPayload) error {
	data := notificationData{
		Name:        name,
		DentistName: payload.DentistName,
		Pipeline:    payload.Pipeline,
		FromStage:   payload.FromStage,
		ToStage:     payload.ToStage,
		Decision:    payload.Decision,
		Notes:       payload.Notes,
		Moved:       payload.Event == queue.EventCardMoved,
	}

	tmplPath := filepath.Join("templates", "card_notification.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("read mail template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("render mail template: %w", err)
	}

	subject := fmt.Sprintf("Atualização no lead %s", payload.DentistName)
	if !data.Moved {
		subject = fmt.Sprintf("Cadastro do lead %s: %s", payload.DentistName, payload.Decision)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
