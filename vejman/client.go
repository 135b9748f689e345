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
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mkroghdk/vejbill/config"
	"github.com/mkroghdk/vejbill/internal/recerr"
	"github.com/mkroghdk/vejbill/model"
)

const (
	queryDateLayout = "2006-01-02"

	// caseListFields pins the columns the list endpoint returns. The set
	// matches what the reconciliation pass reads and nothing more.
	caseListFields = "state,type,case_number,authority_reference_number,start_date,street_name,cvr_number,applicant,end_date,completion_date,auto_completedcontractor,initials"
)

// Client talks to the Vejman permissions API. All calls are token
// authenticated query-string style, the way the upstream service expects.
type Client struct {
	client *resty.Client
	conf   config.VejmanConfig
}

func NewClient(conf config.VejmanConfig) *Client {
	c := resty.New().
		SetBaseURL(conf.Url).
		SetTimeout(time.Duration(conf.TimeoutSec) * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{client: c, conf: conf}
}

// GetCases fetches the open permit cases for one equipment type whose start
// and end dates fall inside the fetch window.
func (c *Client) GetCases(ctx context.Context, equipmentType int64, startFrom, endFrom time.Time) ([]*model.PermitCase, error) {
	var out casesResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"pmCaseStates":          c.conf.CaseState,
			"pmCaseFields":          caseListFields,
			"pmCaseWorker":          "all",
			"pmCaseTypes":           "'rovm'",
			"pmCaseVariant":         "all",
			"pmCaseTags":            "ignorerTags",
			"pmCaseShowAttachments": "false",
			"dontincludemap":        "1",
			"authority":             strconv.FormatInt(c.conf.Authority, 10),
			"equipmentType":         strconv.FormatInt(equipmentType, 10),
			"startDateFrom":         startFrom.Format(queryDateLayout),
			"startDateTo":           time.Now().Format(queryDateLayout),
			"endDateFrom":           endFrom.Format(queryDateLayout),
			"token":                 c.conf.Token,
		}).
		SetResult(&out).
		Get("/permissions/getcases")

	if err != nil {
		return nil, recerr.New(recerr.ErrUpstream, "failed to fetch case list", err)
	}
	if resp.IsError() {
		return nil, recerr.New(recerr.ErrUpstream, fmt.Sprintf("case list fetch returned %s", resp.Status()), resp.String())
	}

	cases := make([]*model.PermitCase, 0, len(out.Cases))
	for _, dto := range out.Cases {
		if err := dto.validate(); err != nil {
			return nil, recerr.New(recerr.ErrInvalidInput, "invalid case in list response", err)
		}
		cases = append(cases, dto.toModel())
	}

	return cases, nil
}

// GetCase fetches the full payload for one case: caseworker email, contacts,
// the connected-case free text and the invoice lines.
func (c *Client) GetCase(ctx context.Context, caseID int64) (*model.CaseDetail, error) {
	var out caseDetailResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"caseid": strconv.FormatInt(caseID, 10),
			"token":  c.conf.Token,
		}).
		SetResult(&out).
		Get("/permissions/getcase")

	if err != nil {
		return nil, recerr.New(recerr.ErrUpstream, "failed to fetch case", err)
	}
	if resp.IsError() {
		return nil, recerr.New(recerr.ErrUpstream, fmt.Sprintf("case fetch returned %s", resp.Status()), resp.String())
	}
	if out.Data == nil {
		return nil, recerr.New(recerr.ErrUpstream, "case response carried no data", nil)
	}

	return out.Data.toModel(caseID), nil
}

// GetPricebook loads the active pricebook, keyed by the exact billing-line
// text the caseworkers pick from.
func (c *Client) GetPricebook(ctx context.Context) (map[string]model.PricebookEntry, error) {
	var out pricebookResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"table": "v_h_pm_pricebook",
			"token": c.conf.Token,
		}).
		SetResult(&out).
		Get("/services/data.do")

	if err != nil {
		return nil, recerr.New(recerr.ErrUpstream, "failed to fetch pricebook", err)
	}
	if resp.IsError() {
		return nil, recerr.New(recerr.ErrUpstream, fmt.Sprintf("pricebook fetch returned %s", resp.Status()), resp.String())
	}

	pricebook := make(map[string]model.PricebookEntry, len(out.Data))
	for _, entry := range out.Data {
		pricebook[entry.Text] = model.PricebookEntry{
			Text:      entry.Text,
			UnitPrice: entry.UnitPrice.Decimal,
		}
	}

	return pricebook, nil
}

// CaseLink renders the caseworker-facing permit URL used in notifications.
func (c *Client) CaseLink(caseID int64) string {
	return fmt.Sprintf("%s/permissions/update.jsp?caseid=%d", c.conf.Url, caseID)
}
