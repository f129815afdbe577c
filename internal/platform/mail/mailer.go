// Copyright (c) 2026 VideoTube. All rights reserved.

/*
Package mail provides outbound email delivery over SMTP.

It wraps gomail with the small set of transactional messages the platform
sends: account verification links and password-reset OTP codes.

Core Responsibilities:

  - Transport: SMTP dialing with credentials from configuration.
  - Templating: Inline HTML bodies for verification and OTP mails.
  - Isolation: Domain services depend on a narrow Mailer interface, never on gomail.
*/
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email via SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// Email represents a single outbound message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// NewMailer creates a new Mailer from SMTP connection settings.
func NewMailer(host string, port int, username, password, from string) (*Mailer, error) {
	if host == "" {
		return nil, fmt.Errorf("mail: SMTP host must not be empty")
	}
	if from == "" {
		return nil, fmt.Errorf("mail: sender address must not be empty")
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}, nil
}

// Send delivers a single email.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("mail: no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: failed to send to %v: %w", email.To, err)
	}

	return nil
}

// SendVerificationLink emails a one-click account verification link.
func (m *Mailer) SendVerificationLink(to, fullName, verifyURL string) error {
	htmlBody := fmt.Sprintf(verificationTemplate, fullName, verifyURL, verifyURL)
	return m.Send(Email{
		To:       []string{to},
		Subject:  "Verify your VideoTube account",
		HTMLBody: htmlBody,
		Body:     fmt.Sprintf("Hi %s,\n\nVerify your account: %s\n\nThe link expires in 10 minutes.", fullName, verifyURL),
	})
}

// SendOTP emails a six-digit password reset code.
func (m *Mailer) SendOTP(to, fullName, otp string) error {
	htmlBody := fmt.Sprintf(otpTemplate, fullName, otp)
	return m.Send(Email{
		To:       []string{to},
		Subject:  "Your VideoTube password reset code",
		HTMLBody: htmlBody,
		Body:     fmt.Sprintf("Hi %s,\n\nYour password reset code is %s. It expires in 10 minutes.", fullName, otp),
	})
}

const verificationTemplate = `<div style="font-family:sans-serif;max-width:480px;margin:0 auto">
  <h2>Welcome to VideoTube</h2>
  <p>Hi %s,</p>
  <p>Click the button below to verify your email address. The link expires in 10 minutes.</p>
  <p><a href="%s" style="display:inline-block;padding:12px 24px;background:#e53935;color:#fff;text-decoration:none;border-radius:4px">Verify account</a></p>
  <p>Or copy this link into your browser: %s</p>
</div>`

const otpTemplate = `<div style="font-family:sans-serif;max-width:480px;margin:0 auto">
  <h2>Password reset</h2>
  <p>Hi %s,</p>
  <p>Use this code to reset your password. It expires in 10 minutes.</p>
  <p style="font-size:32px;letter-spacing:8px;font-weight:bold">%s</p>
  <p>If you did not request a reset, you can ignore this email.</p>
</div>`
