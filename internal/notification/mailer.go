/*
Copyright 2025 Vejbill Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notification

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/mkroghdk/vejbill/config"
)

// maxSendRetries bounds the delivery retries for one message. Mail failure
// is never fatal to a batch, so we give up quickly and report instead.
const maxSendRetries = 3

// Email is one caseworker notification. The body is an HTML fragment; the
// observer address is blind-copied on every message.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	BCC      string
}

// MailSender delivers a single notification message.
type MailSender interface {
	Send(ctx context.Context, email Email) error
}

// SendGridMailer sends caseworker notifications through SendGrid.
type SendGridMailer struct {
	client *sendgrid.Client
	cfg    config.MailConfig
}

func NewSendGridMailer(cnf *config.Configuration) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cnf.Mail.SendGridKey),
		cfg:    cnf.Mail,
	}
}

// buildMail assembles the SendGrid message: fixed sender, one recipient,
// the observer BCC, and a plain-text alternative for non-HTML clients.
func buildMail(cfg config.MailConfig, email Email) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(cfg.FromName, cfg.FromAddress))
	m.Subject = email.Subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", email.To))
	if email.BCC != "" {
		personalization.AddBCCs(mail.NewEmail("", email.BCC))
	}
	m.AddPersonalizations(personalization)

	m.AddContent(mail.NewContent("text/plain", "Please enable HTML to view this message."))
	m.AddContent(mail.NewContent("text/html", email.HTMLBody))
	return m
}

// Send delivers one message, retrying transient failures a few times with
// exponential backoff before giving up.
func (s *SendGridMailer) Send(ctx context.Context, email Email) error {
	message := buildMail(s.cfg, email)

	operation := func() error {
		response, err := s.client.SendWithContext(ctx, message)
		if err != nil {
			return err
		}
		if response.StatusCode >= 400 {
			return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxSendRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("sending notification to %s: %w", email.To, err)
	}

	logrus.Infof("Notification sent to %s: %s", email.To, email.Subject)
	return nil
}
