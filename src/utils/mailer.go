package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer sends account notification emails. When SMTP_HOST is not configured
// every send is a no-op, so it is always safe to construct and call.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	siteURL  string
}

func NewMailerFromEnv() *Mailer {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
		siteURL:  siteURL,
	}
}

// SendWelcomeEmail notifies a newly created author account of its temporary
// credentials and the password reset link. Failures are logged, never returned:
// record saving must not depend on email delivery.
func (m *Mailer) SendWelcomeEmail(email, username, tempPassword string) {
	if m.host == "" {
		log.Printf("mailer disabled (SMTP_HOST not set), skipping welcome email for %s", email)
		return
	}

	body := fmt.Sprintf(
		"Subject: You have been added as an author on ShareLand\r\n"+
			"From: %s\r\nTo: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n"+
			"An account has been created for you on ShareLand because you were listed\r\n"+
			"as an author of a research project.\r\n\r\n"+
			"Username: %s\r\nTemporary password: %s\r\n\r\n"+
			"Please set your own password here: %s/password-reset/\r\n",
		m.from, email, username, tempPassword, m.siteURL)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{email}, []byte(body)); err != nil {
		log.Printf("failed to send welcome email to %s: %v", email, err)
	}
}
