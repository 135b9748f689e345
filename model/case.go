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
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PermitCase is one road-work permit as returned by the Vejman case list.
// Dates are parsed at the fetch boundary; a missing completion date is nil.
type PermitCase struct {
	ID              int64      `json:"case_id"`
	CaseNumber      string     `json:"case_number"`
	Applicant       string     `json:"applicant"`
	StreetName      string     `json:"street_name"`
	ReferenceMarker string     `json:"authority_reference_number"`
	Initials        string     `json:"initials"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	CompletionDate  *time.Time `json:"completion_date"`
	AutoCompleted   bool       `json:"auto_completed"`
}

// CaseDetail is the full case payload fetched per case. It carries the
// invoice lines, the contacts used to resolve the invoice recipient, and
// the free-text connected-case field that encodes the measured length/m2.
type CaseDetail struct {
	CaseID          int64           `json:"case_id"`
	CaseworkerEmail string          `json:"caseworker_email"`
	HasInvoice      bool            `json:"has_invoice"`
	InvoiceRoleID   int64           `json:"invoice_role_id"`
	ConnectedCase   string          `json:"connected_case"`
	Contacts        []Contact       `json:"contacts"`
	Details         []InvoiceDetail `json:"details"`
}

type Contact struct {
	GivenName  string  `json:"given_name"`
	MiddleName string  `json:"middle_name"`
	Surname    string  `json:"surname"`
	CVRNumber  string  `json:"cvr_number"`
	RoleIDs    []int64 `json:"role_ids"`
}

// FullName joins the non-empty name parts with single spaces.
func (c Contact) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.GivenName, c.MiddleName, c.Surname} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// HasRole reports whether the contact carries the given role id.
func (c Contact) HasRole(roleID int64) bool {
	for _, id := range c.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// InvoiceDetail is one billing line on a permit case. UnitPrice may arrive
// on the wire as a decimal-comma string; it is normalized before it gets here.
type InvoiceDetail struct {
	ID        int64           `json:"id"`
	Text      string          `json:"text"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Units     decimal.Decimal `json:"units"`
	Price     decimal.Decimal `json:"price"`
}
