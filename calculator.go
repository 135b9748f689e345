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
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkroghdk/vejbill/model"
)

// numberPattern grabs the first number out of the free-text connected-case
// field, after normalizing the Danish decimal comma.
var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// datePlan holds the dates one billing line is charged over. chosenEnd is
// the effective end of the charge period; defined is false when either
// endpoint is missing, in which case no day count exists and no price
// comparison is performed.
type datePlan struct {
	start     time.Time
	end       time.Time
	chosenEnd time.Time
	defined   bool
}

// usedCompletion reports whether the completion date cut the charge period
// short of the permit's planned end date.
func (p datePlan) usedCompletion() bool {
	return !p.chosenEnd.Equal(p.end)
}

// resolveDates picks the charge period for a billing line. A previously
// persisted record pins both dates for good. Otherwise the period runs from
// the permit start to the planned end, unless the case was reported finished
// early: then the completion date wins. An auto-completed case keeps the
// planned end date, since its completion date was never entered by hand.
func resolveDates(pc *model.PermitCase, prior *model.BillingRecord) datePlan {
	if prior != nil {
		return datePlan{
			start:     prior.StartDate,
			end:       prior.EndDate,
			chosenEnd: prior.EndDate,
			defined:   !prior.StartDate.IsZero() && !prior.EndDate.IsZero(),
		}
	}

	plan := datePlan{start: pc.StartDate, end: pc.EndDate, chosenEnd: pc.EndDate}
	if !pc.AutoCompleted && pc.CompletionDate != nil && !pc.EndDate.IsZero() {
		if pc.CompletionDate.Before(pc.EndDate) {
			plan.chosenEnd = *pc.CompletionDate
		}
	}
	plan.defined = !plan.start.IsZero() && !plan.chosenEnd.IsZero()
	return plan
}

// dayCount is the number of charged days from start to end, counting both
// endpoints. Times of day are ignored.
func dayCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// expectedPrice is days × unitPrice × length, rounded to two decimals.
func expectedPrice(days int, unitPrice, length decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(days)).Mul(unitPrice).Mul(length).Round(2)
}

// parseLength extracts the measured length or area from the connected-case
// free text: the first number found, decimal comma normalized. Anything
// unparseable counts as zero.
func parseLength(connectedCase string) decimal.Decimal {
	normalized := strings.ReplaceAll(connectedCase, ",", ".")
	match := numberPattern.FindString(normalized)
	if match == "" {
		return decimal.Zero
	}
	length, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return length
}
