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
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWireDate(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected time.Time
		present  bool
		wantErr  bool
	}{
		{"day first format", `"05-01-2024"`, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true, false},
		{"empty string absent", `""`, time.Time{}, false, false},
		{"null absent", `null`, time.Time{}, false, false},
		{"whitespace absent", `"  "`, time.Time{}, false, false},
		{"wrong format rejected", `"2024-01-05"`, time.Time{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d wireDate
			err := json.Unmarshal([]byte(tt.payload), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.present, d.ok)
			if tt.present {
				assert.Equal(t, tt.expected, d.t)
			}
		})
	}
}

func TestFlexDecimal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"plain number", `12.5`, "12.5"},
		{"integer number", `250`, "250"},
		{"dot string", `"10.00"`, "10"},
		{"danish comma string", `"10,50"`, "10.5"},
		{"empty string zero", `""`, "0"},
		{"null zero", `null`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexDecimal
			err := json.Unmarshal([]byte(tt.payload), &f)
			assert.NoError(t, err)
			assert.True(t, f.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", f.String(), tt.expected)
		})
	}
}

func TestFlexString(t *testing.T) {
	var f flexString

	assert.NoError(t, json.Unmarshal([]byte(`"Længde 5,5"`), &f))
	assert.Equal(t, "Længde 5,5", string(f))

	assert.NoError(t, json.Unmarshal([]byte(`5.5`), &f))
	assert.Equal(t, "5.5", string(f))

	assert.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.Equal(t, "", string(f))
}

func TestCaseDTO_Validate(t *testing.T) {
	valid := caseDTO{ID: 1001, CaseNumber: "24/00123"}
	assert.NoError(t, valid.validate())

	assert.Error(t, caseDTO{CaseNumber: "24/00123"}.validate())
	assert.Error(t, caseDTO{ID: 1001}.validate())
}

func TestCaseDetailDTO_InvoiceRoleDefaultsToZero(t *testing.T) {
	// A role the payload never names is left at zero here; the engine
	// substitutes the configured default recipient role.
	var dto caseDetailDTO
	err := json.Unmarshal([]byte(`{
		"authEmail": "worker@aarhus.dk",
		"invoice": {"details": [{"id": 42, "text": "Container"}]}
	}`), &dto)
	assert.NoError(t, err)

	detail := dto.toModel(1001)
	assert.True(t, detail.HasInvoice)
	assert.Equal(t, int64(0), detail.InvoiceRoleID)
}

func TestCaseDetailDTO_EmptyInvoiceObject(t *testing.T) {
	var dto caseDetailDTO
	err := json.Unmarshal([]byte(`{"authEmail": "worker@aarhus.dk", "invoice": {}}`), &dto)
	assert.NoError(t, err)

	detail := dto.toModel(1001)
	assert.False(t, detail.HasInvoice, "an empty invoice object is no invoice")
}
