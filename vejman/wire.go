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
package vejman

import (
	"encoding/json"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/mkroghdk/vejbill/model"
)

// wireDateLayout is the day-first format Vejman uses in list responses.
const wireDateLayout = "02-01-2006"

// autoCompletedMarker is the value Vejman writes to auto_completed when a
// permit was closed automatically rather than reported finished by hand.
const autoCompletedMarker = "AF"

// wireDate is a dd-mm-yyyy date that may be absent or empty on the wire.
type wireDate struct {
	t  time.Time
	ok bool
}

func (w *wireDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(wireDateLayout, raw)
	if err != nil {
		return err
	}
	w.t = t
	w.ok = true
	return nil
}

// flexDecimal accepts a JSON number or a string, tolerating the Danish
// decimal comma that Vejman emits for some unit prices.
type flexDecimal struct {
	decimal.Decimal
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
		if raw == "" {
			f.Decimal = decimal.Zero
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return err
		}
		f.Decimal = d
		return nil
	}
	return f.Decimal.UnmarshalJSON(b)
}

// flexString accepts a JSON string or a bare number, since the connected-case
// field holds whatever the caseworker typed and sometimes arrives numeric.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(strings.Trim(string(b), `"`))
	return nil
}

type caseDTO struct {
	ID              int64    `json:"case_id"`
	CaseNumber      string   `json:"case_number"`
	Applicant       string   `json:"applicant"`
	StreetName      string   `json:"street_name"`
	ReferenceMarker string   `json:"authority_reference_number"`
	Initials        string   `json:"initials"`
	StartDate       wireDate `json:"start_date"`
	EndDate         wireDate `json:"end_date"`
	CompletionDate  wireDate `json:"completion_date"`
	AutoCompleted   string   `json:"auto_completed"`
}

func (d caseDTO) validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.CaseNumber, validation.Required),
	)
}

func (d caseDTO) toModel() *model.PermitCase {
	pc := &model.PermitCase{
		ID:              d.ID,
		CaseNumber:      d.CaseNumber,
		Applicant:       d.Applicant,
		StreetName:      d.StreetName,
		ReferenceMarker: d.ReferenceMarker,
		Initials:        d.Initials,
		AutoCompleted:   d.AutoCompleted == autoCompletedMarker,
	}
	if d.StartDate.ok {
		pc.StartDate = d.StartDate.t
	}
	if d.EndDate.ok {
		pc.EndDate = d.EndDate.t
	}
	if d.CompletionDate.ok {
		t := d.CompletionDate.t
		pc.CompletionDate = &t
	}
	return pc
}

type casesResponse struct {
	Cases []caseDTO `json:"cases"`
}

type roleRefDTO struct {
	Role struct {
		ID int64 `json:"id"`
	} `json:"role"`
}

type contactDTO struct {
	GivenName  string       `json:"given_name"`
	MiddleName string       `json:"middle_name"`
	Surname    string       `json:"surname"`
	CVRNumber  string       `json:"cvr_number"`
	Roles      []roleRefDTO `json:"roles"`
}

func (d contactDTO) toModel() model.Contact {
	contact := model.Contact{
		GivenName:  d.GivenName,
		MiddleName: d.MiddleName,
		Surname:    d.Surname,
		CVRNumber:  d.CVRNumber,
	}
	for _, r := range d.Roles {
		contact.RoleIDs = append(contact.RoleIDs, r.Role.ID)
	}
	return contact
}

type detailDTO struct {
	ID        int64       `json:"id"`
	Text      string      `json:"text"`
	UnitPrice flexDecimal `json:"unit_price"`
	Units     flexDecimal `json:"units"`
	Price     flexDecimal `json:"price"`
}

type invoiceDTO struct {
	Role struct {
		ID int64 `json:"id"`
	} `json:"role"`
	Details []detailDTO `json:"details"`
}

type caseDetailDTO struct {
	AuthEmail     string       `json:"authEmail"`
	ConnectedCase flexString   `json:"connected_case"`
	Invoice       *invoiceDTO  `json:"invoice"`
	Contacts      []contactDTO `json:"contacts"`
}

type caseDetailResponse struct {
	Data *caseDetailDTO `json:"data"`
}

func (d caseDetailDTO) toModel(caseID int64) *model.CaseDetail {
	detail := &model.CaseDetail{
		CaseID:          caseID,
		CaseworkerEmail: d.AuthEmail,
		ConnectedCase:   string(d.ConnectedCase),
	}
	for _, c := range d.Contacts {
		detail.Contacts = append(detail.Contacts, c.toModel())
	}
	if d.Invoice != nil && (d.Invoice.Role.ID != 0 || len(d.Invoice.Details) > 0) {
		detail.HasInvoice = true
		detail.InvoiceRoleID = d.Invoice.Role.ID
		for _, line := range d.Invoice.Details {
			detail.Details = append(detail.Details, model.InvoiceDetail{
				ID:        line.ID,
				Text:      line.Text,
				UnitPrice: line.UnitPrice.Decimal,
				Units:     line.Units.Decimal,
				Price:     line.Price.Decimal,
			})
		}
	}
	return detail
}

type pricebookDTO struct {
	Text      string      `json:"text"`
	UnitPrice flexDecimal `json:"unit_price"`
}

type pricebookResponse struct {
	Data []pricebookDTO `json:"data"`
}
