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
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingRecord is the canonical persisted snapshot of one matched billing
// line, keyed uniquely by DetailID. StartDate and EndDate are written once
// on insert and never overwritten by later passes.
type BillingRecord struct {
	ID           int64           `json:"-"`
	CaseID       int64           `json:"case_id"`
	DetailID     int64           `json:"detail_id"`
	Applicant    string          `json:"applicant"`
	Address      string          `json:"address"`
	PermitNumber string          `json:"permit_number"`
	CVRNumber    string          `json:"cvr_number"`
	Category     string          `json:"category"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Length       decimal.Decimal `json:"length"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Attention    string          `json:"attention"`

	// Skip flags are owned by the invoicing side and read-only here.
	Invoiced           bool `json:"invoiced"`
	QueuedForInvoicing bool `json:"queued_for_invoicing"`
	DoNotInvoice       bool `json:"do_not_invoice"`
}

// Skip reports whether the line already left the reconciliation flow:
// invoiced, queued for invoicing, or marked never-invoice.
func (r *BillingRecord) Skip() bool {
	return r.Invoiced || r.QueuedForInvoicing || r.DoNotInvoice
}

// DiscrepancyKind classifies a single narrative in a case report.
type DiscrepancyKind string

const (
	KindMissingCVR       DiscrepancyKind = "missing_cvr"
	KindMalformedCVR     DiscrepancyKind = "malformed_cvr"
	KindDetailMismatch   DiscrepancyKind = "detail_mismatch"
	KindLengthMismatch   DiscrepancyKind = "length_mismatch"
	KindDayCountMismatch DiscrepancyKind = "day_count_mismatch"
	KindRuleContext      DiscrepancyKind = "rule_context"
)

// Discrepancy is one discrete narrative line. The report for a case is an
// ordered sequence of these, rendered to a single HTML body only at send time.
type Discrepancy struct {
	Kind    DiscrepancyKind `json:"kind"`
	Message string          `json:"message"`
}

// CaseOutcome aggregates what one reconciliation pass did with one case.
type CaseOutcome struct {
	CaseID         int64  `json:"case_id"`
	CaseNumber     string `json:"case_number"`
	MatchedDetails int    `json:"matched_details"`
	SkippedDetails int    `json:"skipped_details"`
	NewRecords     int    `json:"new_records"`
	Discrepancies  int    `json:"discrepancies"`
	Notified       bool   `json:"notified"`
}
