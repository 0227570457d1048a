// Package mail delivers account verification mails. The Mailer interface is
// injected wherever mail is sent so tests can substitute it.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends a verification code to a newly registered account
type Mailer interface {
	SendVerificationCode(to, code, verificationURL string) error
}

// SMTPMailer implements Mailer over plain SMTP with STARTTLS
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

// SendVerificationCode mails the 6-digit verification code, with an optional
// verification link when verificationURL is set.
func (m *SMTPMailer) SendVerificationCode(to, code, verificationURL string) error {
	body := fmt.Sprintf("Welcome to UniHelp!\n\nYour verification code is: %s\n\nEnter this code to complete your registration.", code)
	if verificationURL != "" {
		body = fmt.Sprintf("Welcome to UniHelp! Click the link below to verify your account:\n\n%s\n\nIf you were not expecting this mail, please ignore it.\n\nYour verification code is: %s", verificationURL, code)
	}

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: UniHelp Account Verification",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending verification mail failed: %w", err)
	}
	return nil
}

// NoopMailer discards mail. Used when SMTP is not configured and in tests.
type NoopMailer struct{}

// SendVerificationCode does nothing
func (NoopMailer) SendVerificationCode(to, code, verificationURL string) error {
	return nil
}
