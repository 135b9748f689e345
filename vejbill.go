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
	"context"
	"time"

	"github.com/mkroghdk/vejbill/config"
	"github.com/mkroghdk/vejbill/database"
	"github.com/mkroghdk/vejbill/internal/notification"
	"github.com/mkroghdk/vejbill/model"
	"github.com/mkroghdk/vejbill/vejman"
)

// CaseSource is the upstream permissions system as the engine sees it:
// case lists per equipment type, full case payloads, and the pricebook.
type CaseSource interface {
	GetCases(ctx context.Context, equipmentType int64, startFrom, endFrom time.Time) ([]*model.PermitCase, error)
	GetCase(ctx context.Context, caseID int64) (*model.CaseDetail, error)
	GetPricebook(ctx context.Context) (map[string]model.PricebookEntry, error)
	CaseLink(caseID int64) string
}

// Vejbill is the reconciliation engine. It matches invoice lines against
// the configured billing categories, derives expected charges, reports
// discrepancies to caseworkers and keeps the canonical record store current.
type Vejbill struct {
	datasource database.IDataSource
	cases      CaseSource
	mailer     notification.MailSender
	conf       *config.Configuration
}

func NewVejbill(db database.IDataSource) (*Vejbill, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	vejbill := &Vejbill{
		datasource: db,
		cases:      vejman.NewClient(configuration.Vejman),
		mailer:     notification.NewSendGridMailer(configuration),
		conf:       configuration,
	}

	return vejbill, nil
}
