package otp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-otp-register/internal/domain"
)

// EmailSender is satisfied by both the SMTP mailer and the SNS publisher.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// MailNotifier renders the verification email and hands it to an EmailSender.
type MailNotifier struct {
	sender EmailSender
	ttl    time.Duration
}

func NewMailNotifier(sender EmailSender, ttl time.Duration) *MailNotifier {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MailNotifier{sender: sender, ttl: ttl}
}

func (n *MailNotifier) Notify(ctx context.Context, u *domain.User, code string) error {
	subject, body := renderMessage(u.Nama, code, n.ttl)
	return n.sender.SendEmail(ctx, u.Email, subject, body)
}

const rule = "--------------------------------------------------"

func renderMessage(nama, code string, ttl time.Duration) (subject, body string) {
	subject = fmt.Sprintf("[%s] Your OTP verification code", code)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("      ACCOUNT VERIFICATION\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Hello %s,\n\n", nama)
	b.WriteString("Thank you for registering! To complete your\n")
	b.WriteString("registration, use the OTP code below:\n\n")
	fmt.Fprintf(&b, "YOUR OTP CODE: %s\n\n", code)
	fmt.Fprintf(&b, "This code is valid for %s.\n", strings.ToUpper(validity(ttl)))
	b.WriteString("Please do not share this code with anyone.\n\n")
	b.WriteString("If you did not sign up, please ignore this email.\n")
	b.WriteString(rule + "\n")
	return subject, b.String()
}

func validity(ttl time.Duration) string {
	if ttl%time.Minute != 0 {
		return ttl.String()
	}
	m := int(ttl / time.Minute)
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
