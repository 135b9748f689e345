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

// RuleGroup is the configured billing category for one equipment type:
// the ordered text fragments that identify its invoice lines, plus the
// earliest start/end dates bounding the case fetch window.
type RuleGroup struct {
	EquipmentType int64     `json:"equipment_type"`
	Fragments     []string  `json:"fragments"`
	StartDateFrom time.Time `json:"start_date_from"`
	EndDateFrom   time.Time `json:"end_date_from"`
}

// PricebookEntry is a reference unit price keyed by the exact billing
// description text.
type PricebookEntry struct {
	Text      string          `json:"text"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
