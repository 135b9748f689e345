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

package database

import (
	"context"
	"time"

	"github.com/mkroghdk/vejbill/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	billingRecord // Interface for billing record operations
	ruleGroup     // Interface for billing category rule operations
	syncState     // Interface for batch bookkeeping
}

// billingRecord defines methods for the canonical reconciliation records.
type billingRecord interface {
	UpsertBillingRecord(ctx context.Context, record *model.BillingRecord) error          // Inserts or refreshes a record, preserving dates on update
	GetBillingRecord(ctx context.Context, detailID int64) (*model.BillingRecord, error)  // Retrieves a record by billing-line identifier
	GetBillingRecords(ctx context.Context) (map[int64]*model.BillingRecord, error)       // Loads the full snapshot keyed by billing-line identifier
	GetBillingRecordsByCase(ctx context.Context, caseID int64) ([]*model.BillingRecord, error) // Retrieves all records for one permit case
}

// ruleGroup defines methods for the configured billing categories.
type ruleGroup interface {
	GetRuleGroups(ctx context.Context) ([]*model.RuleGroup, error) // Loads fragments aggregated per equipment type
}

// syncState defines methods for batch run bookkeeping.
type syncState interface {
	RecordSyncTime(ctx context.Context, name string, syncedAt time.Time) error // Upserts the last successful batch timestamp
	GetSyncTime(ctx context.Context, name string) (time.Time, error)           // Reads the last successful batch timestamp
}
