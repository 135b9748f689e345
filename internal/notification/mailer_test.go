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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkroghdk/vejbill/config"
)

func TestBuildMail(t *testing.T) {
	cfg := config.MailConfig{
		FromName:    "VejmanFakturaRobot",
		FromAddress: "noreply@aarhus.dk",
	}

	email := Email{
		To:       "caseworker@aarhus.dk",
		Subject:  "Uoverensstemmelser for fakturering på tilladelse 24/001",
		HTMLBody: "<p>body</p>",
		BCC:      "observer@aarhus.dk",
	}

	m := buildMail(cfg, email)

	assert.Equal(t, "VejmanFakturaRobot", m.From.Name)
	assert.Equal(t, "noreply@aarhus.dk", m.From.Address)
	assert.Equal(t, email.Subject, m.Subject)

	assert.Len(t, m.Personalizations, 1)
	p := m.Personalizations[0]
	assert.Len(t, p.To, 1)
	assert.Equal(t, "caseworker@aarhus.dk", p.To[0].Address)
	assert.Len(t, p.BCC, 1)
	assert.Equal(t, "observer@aarhus.dk", p.BCC[0].Address)

	// Plain-text alternative first, then the HTML body
	assert.Len(t, m.Content, 2)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "text/html", m.Content[1].Type)
	assert.Equal(t, "<p>body</p>", m.Content[1].Value)
}

func TestBuildMailWithoutBCC(t *testing.T) {
	cfg := config.MailConfig{
		FromName:    "VejmanFakturaRobot",
		FromAddress: "noreply@aarhus.dk",
	}

	m := buildMail(cfg, Email{To: "caseworker@aarhus.dk", Subject: "s", HTMLBody: "b"})

	assert.Len(t, m.Personalizations, 1)
	assert.Empty(t, m.Personalizations[0].BCC)
}
