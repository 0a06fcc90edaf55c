// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package notify

import (
	"bytes"
	"context"
	"embed"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"

	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl"))
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl"))
)

// Subjects.
const (
	SubjectPasswordReset = "CareHaven password reset"
	subjectContactPrefix = "New Contact Form Submission: "
)

// Mailer renders CareHaven notifications and hands them to a Sender.
type Mailer struct {
	sender       Sender
	adminAddress string
	logger       *slog.Logger
}

// MailerOption configures a Mailer.
type MailerOption func(*Mailer)

// WithAdminAddress sets the recipient of contact-form notifications.
func WithAdminAddress(addr string) MailerOption {
	return func(m *Mailer) { m.adminAddress = addr }
}

// WithLogger sets the mailer logger.
func WithLogger(logger *slog.Logger) MailerOption {
	return func(m *Mailer) { m.logger = logger }
}

// NewMailer creates a Mailer.
func NewMailer(sender Sender, opts ...MailerOption) (*Mailer, error) {
	if sender == nil {
		return nil, oops.Code("MAIL_CONFIG_INVALID").Errorf("sender is required")
	}
	m := &Mailer{sender: sender, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m, nil
}

type resetData struct {
	Name      string
	URL       string
	ExpiresIn string
}

// SendPasswordReset mails resetURL to the account holder.
func (m *Mailer) SendPasswordReset(ctx context.Context, account *auth.Account, resetURL string) error {
	data := resetData{
		Name:      account.FirstName,
		URL:       resetURL,
		ExpiresIn: auth.ResetTokenExpiry.String(),
	}
	text, err := renderText("password_reset.txt.tmpl", data)
	if err != nil {
		return err
	}
	html, err := renderHTML("password_reset.html.tmpl", data)
	if err != nil {
		return err
	}

	if err := m.sender.Send(ctx, Message{
		To:      account.Email,
		Subject: SubjectPasswordReset,
		Text:    text,
		HTML:    html,
	}); err != nil {
		return oops.Code("RESET_EMAIL_SEND_FAILED").With("account_id", account.ID.String()).Wrap(err)
	}
	return nil
}

// NotifyContact forwards a contact-form submission to the administrator.
// Without an admin address the notification is skipped.
func (m *Mailer) NotifyContact(ctx context.Context, msg *care.ContactMessage) error {
	if m.adminAddress == "" {
		m.logger.DebugContext(ctx, "contact notification skipped, no admin address",
			"contact_id", msg.ID.String())
		return nil
	}

	text, err := renderText("contact.txt.tmpl", msg)
	if err != nil {
		return err
	}
	if err := m.sender.Send(ctx, Message{
		To:      m.adminAddress,
		ReplyTo: msg.Email,
		Subject: subjectContactPrefix + msg.Subject,
		Text:    text,
	}); err != nil {
		return oops.Code("CONTACT_NOTIFY_FAILED").With("contact_id", msg.ID.String()).Wrap(err)
	}
	return nil
}

func renderText(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", oops.Code("MAIL_TEMPLATE_FAILED").With("template", name).Wrap(err)
	}
	return buf.String(), nil
}

func renderHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", oops.Code("MAIL_TEMPLATE_FAILED").With("template", name).Wrap(err)
	}
	return buf.String(), nil
}

var (
	_ auth.ResetNotifier    = (*Mailer)(nil)
	_ care.ContactNotifier = (*Mailer)(nil)
)
