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
package mocks

import (
	"context"
	"time"

	"github.com/mkroghdk/vejbill/model"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

// Billing record methods

func (m *MockDataSource) UpsertBillingRecord(ctx context.Context, record *model.BillingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDataSource) GetBillingRecord(ctx context.Context, detailID int64) (*model.BillingRecord, error) {
	args := m.Called(ctx, detailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BillingRecord), args.Error(1)
}

func (m *MockDataSource) GetBillingRecords(ctx context.Context) (map[int64]*model.BillingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*model.BillingRecord), args.Error(1)
}

func (m *MockDataSource) GetBillingRecordsByCase(ctx context.Context, caseID int64) ([]*model.BillingRecord, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BillingRecord), args.Error(1)
}

// Rule group methods

func (m *MockDataSource) GetRuleGroups(ctx context.Context) ([]*model.RuleGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RuleGroup), args.Error(1)
}

// Sync state methods

func (m *MockDataSource) RecordSyncTime(ctx context.Context, name string, syncedAt time.Time) error {
	args := m.Called(ctx, name, syncedAt)
	return args.Error(0)
}

func (m *MockDataSource) GetSyncTime(ctx context.Context, name string) (time.Time, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(time.Time), args.Error(1)
}
