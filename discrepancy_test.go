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
package vejbill

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mkroghdk/vejbill/model"
)

func TestPriceMatches_Boundaries(t *testing.T) {
	expected := decimal.RequireFromString("250.00")

	tests := []struct {
		name     string
		recorded string
		match    bool
	}{
		{"exact", "250.00", true},
		{"within tolerance", "250.005", true},
		{"at tolerance", "250.01", true},
		{"just outside", "250.015", false},
		{"clearly off", "200.00", false},
		{"below within tolerance", "249.995", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorded := decimal.RequireFromString(tt.recorded)
			assert.Equal(t, tt.match, priceMatches(expected, recorded))
		})
	}
}

func TestPriceMatches_ZeroExpectedIsDefined(t *testing.T) {
	assert.True(t, priceMatches(decimal.Zero, decimal.Zero))
	assert.False(t, priceMatches(decimal.Zero, decimal.RequireFromString("5.00")))
}

func TestImpliedLength(t *testing.T) {
	tests := []struct {
		name     string
		recorded string
		ref      string
		expected string
	}{
		{"even ratio", "50.00", "10.00", "5"},
		{"rounded to two decimals", "10.00", "3.00", "3.33"},
		{"zero reference yields zero", "50.00", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := impliedLength(decimal.RequireFromString(tt.recorded), decimal.RequireFromString(tt.ref))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", got, tt.expected)
		})
	}
}

func TestReport_RenderJoinsNarratives(t *testing.T) {
	report := &Report{}
	assert.True(t, report.Empty())
	assert.Equal(t, "", report.Render())

	report.Append(model.KindMissingCVR, "first")
	report.Append(model.KindRuleContext, "second")

	assert.False(t, report.Empty())
	assert.Equal(t, 2, report.Len())
	assert.Equal(t, "first<br><br>second", report.Render())
	assert.Equal(t, model.KindMissingCVR, report.Items()[0].Kind)
}

func TestDayCountNarrative_EndDateWording(t *testing.T) {
	// Auto-completed cases keep the planned end date, so the narrative
	// must cite the end date, not a completion date.
	plan := datePlan{
		start:     date(2024, 1, 1),
		end:       date(2024, 1, 5),
		chosenEnd: date(2024, 1, 5),
		defined:   true,
	}

	kind, message := dayCountNarrative(decimal.NewFromInt(4), plan, 5)
	assert.Equal(t, model.KindDayCountMismatch, kind)
	assert.Contains(t, message, "angivet til 4 i fakturalinjen")
	assert.Contains(t, message, "startdato og slutdato")
	assert.Contains(t, message, "fra 01-01-2024 til og med 05-01-2024")
	assert.Contains(t, message, "5 dage")
	assert.NotContains(t, message, "færdigmeldingsdato")
}

func TestDayCountNarrative_CompletionWording(t *testing.T) {
	plan := datePlan{
		start:     date(2024, 1, 1),
		end:       date(2024, 1, 5),
		chosenEnd: date(2024, 1, 3),
		defined:   true,
	}

	kind, message := dayCountNarrative(decimal.NewFromInt(5), plan, 3)
	assert.Equal(t, model.KindDayCountMismatch, kind)
	assert.Contains(t, message, "færdigmeldingsdato")
	assert.Contains(t, message, "fra 01-01-2024 til og med 03-01-2024")
	assert.Contains(t, message, "Færdigmeldingsdatoen 03-01-2024 benyttes")
	assert.Contains(t, message, "slutdatoen som er sat til 05-01-2024")
}

func TestLengthNarrative(t *testing.T) {
	kind, message := lengthNarrative(
		decimal.NewFromInt(5),
		decimal.RequireFromString("7.5"),
		decimal.RequireFromString("10.00"))

	assert.Equal(t, model.KindLengthMismatch, kind)
	assert.Contains(t, message, "opgivet til 5")
	assert.Contains(t, message, "til at være 7.5")
	assert.Contains(t, message, `"Relateret sag"`)
}

func TestCVRNarratives(t *testing.T) {
	link := "https://vejman.test/permissions/update.jsp?caseid=1001"

	kind, message := missingCVRNarrative(link, "24/00123")
	assert.Equal(t, model.KindMissingCVR, kind)
	assert.Contains(t, message, `<a href="`+link+`">24/00123</a>`)
	assert.Contains(t, message, "intet CVR nummer")

	kind, message = malformedCVRNarrative(link, "24/00123", "1234-5678")
	assert.Equal(t, model.KindMalformedCVR, kind)
	assert.Contains(t, message, "angivet som 1234-5678")
	assert.Contains(t, message, "udelukkende 8 cifre")
}

func TestMailFraming(t *testing.T) {
	assert.Equal(t,
		"Uoverensstemmelser for fakturering på tilladelse 24/00123",
		mailSubject("24/00123"))

	preamble := mailPreamble("https://vejman.test/permissions/update.jsp?caseid=1001", "24/00123")
	assert.Contains(t, preamble, "Der er fundet uoverensstemmelser")
	assert.Contains(t, preamble, "Vejmankassen")
	assert.True(t, strings.HasSuffix(preamble, "<br><br>"), "preamble must end with the separator")
}
