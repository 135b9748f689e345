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
	"fmt"
	"regexp"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mkroghdk/vejbill/database"
	"github.com/mkroghdk/vejbill/internal/notification"
	"github.com/mkroghdk/vejbill/model"
	"github.com/mkroghdk/vejbill/vejman"
)

const (
	// sentinelCVR is persisted when the case has no usable CVR number, so
	// the record exists but the invoicing side can spot it.
	sentinelCVR = "00000000"

	// syncStateName keys the last-finished-batch timestamp in the store.
	syncStateName = "VejmanKassenSynkroniseret"
)

var cvrPattern = regexp.MustCompile(`^\d{8}$`)

// equipmentAliases maps a rule group's equipment type to the set of Vejman
// equipment types it covers. Types 9 and 7 are legacy variants of 1 and 2.
var equipmentAliases = map[int64][]int64{
	1: {1, 9},
	2: {2, 7},
}

func expandEquipmentTypes(equipmentType int64) []int64 {
	if aliases, ok := equipmentAliases[equipmentType]; ok {
		return aliases
	}
	return []int64{equipmentType}
}

// batchState is the shared read-mostly state loaded once per batch run:
// the pricebook and the snapshot of already persisted records. The record
// map is updated in place as upserts happen, so a detail seen again under
// another equipment type counts as already recorded.
type batchState struct {
	pricebook map[string]model.PricebookEntry
	records   map[int64]*model.BillingRecord
}

// RunBatch executes one full reconciliation pass: every rule group, every
// aliased equipment type, every case. A failing group is reported and does
// not stop the remaining groups. Returns the batch identifier.
func (v *Vejbill) RunBatch(ctx context.Context) (string, error) {
	batchID := database.GenerateUUIDWithSuffix("batch")
	logrus.Infof("Starting reconciliation batch %s", batchID)

	groups, err := v.datasource.GetRuleGroups(ctx)
	if err != nil {
		return batchID, err
	}
	if len(groups) == 0 {
		logrus.Warn("No rule groups configured, nothing to reconcile")
		return batchID, nil
	}

	pricebook, err := v.cases.GetPricebook(ctx)
	if err != nil {
		return batchID, err
	}
	records, err := v.datasource.GetBillingRecords(ctx)
	if err != nil {
		return batchID, err
	}
	state := &batchState{pricebook: pricebook, records: records}

	var batchErr error
	for _, group := range groups {
		outcomes, err := v.ReconcileGroup(ctx, group, state)
		if err != nil {
			groupErr := fmt.Errorf("equipment type %d: %w", group.EquipmentType, err)
			notification.NotifyError(groupErr)
			batchErr = multierror.Append(batchErr, groupErr)
			continue
		}
		logGroupSummary(group.EquipmentType, outcomes)
	}

	if err := v.datasource.RecordSyncTime(ctx, syncStateName, time.Now()); err != nil {
		batchErr = multierror.Append(batchErr, err)
	}

	logrus.Infof("Finished reconciliation batch %s", batchID)
	return batchID, batchErr
}

// ReconcileGroup processes one rule group: fetch the case list for each
// aliased equipment type, filter it, and reconcile the surviving cases in
// order. Any fetch or store failure aborts the whole group.
func (v *Vejbill) ReconcileGroup(ctx context.Context, group *model.RuleGroup, state *batchState) ([]*model.CaseOutcome, error) {
	var outcomes []*model.CaseOutcome

	for _, equipmentType := range expandEquipmentTypes(group.EquipmentType) {
		cases, err := v.cases.GetCases(ctx, equipmentType, group.StartDateFrom, group.EndDateFrom)
		if err != nil {
			return nil, err
		}

		cases = vejman.FilterCases(cases, v.conf.Robot.Initials)
		if len(cases) == 0 {
			logrus.Infof("No cases for equipment type %d from %s / %s",
				equipmentType,
				group.StartDateFrom.Format("2006-01-02"),
				group.EndDateFrom.Format("2006-01-02"))
			continue
		}

		for _, pc := range cases {
			outcome, err := v.reconcileCase(ctx, pc, group, equipmentType, state)
			if err != nil {
				return nil, err
			}
			outcomes = append(outcomes, outcome)
		}
	}

	return outcomes, nil
}

// reconcileCase runs the per-case pipeline: resolve the invoice recipient,
// walk the invoice lines against the group's fragments, compare expected
// and recorded charges, persist the canonical records, and notify the
// caseworker at most once.
func (v *Vejbill) reconcileCase(ctx context.Context, pc *model.PermitCase, group *model.RuleGroup, equipmentType int64, state *batchState) (*model.CaseOutcome, error) {
	logrus.Infof("Checking %s - %s", pc.CaseNumber, v.cases.CaseLink(pc.ID))

	detail, err := v.cases.GetCase(ctx, pc.ID)
	if err != nil {
		return nil, err
	}

	outcome := &model.CaseOutcome{CaseID: pc.ID, CaseNumber: pc.CaseNumber}
	if !detail.HasInvoice {
		logrus.Infof("No invoice found for case %s", pc.CaseNumber)
		return outcome, nil
	}

	link := v.cases.CaseLink(pc.ID)
	report := &Report{}
	attention, cvr := v.resolveRecipient(detail, report, link, pc.CaseNumber)

	newlyRecorded := false
	for _, line := range detail.Details {
		prior := state.records[line.ID]
		if prior != nil && prior.Skip() {
			logrus.Infof("Line %d already invoiced, queued or excluded, skipping", line.ID)
			outcome.SkippedDetails++
			continue
		}

		fragment, ok := MatchFragment(line.Text, group.Fragments)
		if !ok {
			continue
		}
		outcome.MatchedDetails++

		length := parseLength(detail.ConnectedCase)
		refUnit := state.pricebook[line.Text].UnitPrice
		plan := resolveDates(pc, prior)
		if !plan.defined {
			logrus.Warnf("Case %s line %d has no usable charge period, skipping comparison", pc.CaseNumber, line.ID)
			continue
		}

		days := dayCount(plan.start, plan.chosenEnd)
		expected := expectedPrice(days, refUnit, length)

		// Only lines without a persisted record contribute narratives;
		// the mail already went out once for everything else.
		if prior == nil && !priceMatches(expected, line.Price) {
			report.Append(detailMismatchNarrative(link, pc.CaseNumber, fragment))

			implied := impliedLength(line.UnitPrice, refUnit)
			if !length.Equal(implied) {
				report.Append(lengthNarrative(length, implied, refUnit))
			}
			if !line.Units.Equal(decimal.NewFromInt(int64(days))) {
				report.Append(dayCountNarrative(line.Units, plan, days))
			}
			report.Append(ruleContextNarrative(equipmentType, fragment))
		}

		record := &model.BillingRecord{
			CaseID:       pc.ID,
			DetailID:     line.ID,
			Applicant:    pc.Applicant,
			Address:      pc.StreetName,
			PermitNumber: pc.CaseNumber,
			CVRNumber:    cvr,
			Category:     fragment,
			UnitPrice:    refUnit,
			Length:       length,
			StartDate:    plan.start,
			EndDate:      plan.chosenEnd,
			Attention:    attention,
		}
		if err := v.datasource.UpsertBillingRecord(ctx, record); err != nil {
			return nil, err
		}
		if prior == nil {
			outcome.NewRecords++
			newlyRecorded = true
		} else {
			// The store keeps the original dates on update; mirror that in
			// the in-memory snapshot.
			record.StartDate = prior.StartDate
			record.EndDate = prior.EndDate
		}
		state.records[line.ID] = record
	}

	outcome.Discrepancies = report.Len()
	if !report.Empty() && newlyRecorded {
		outcome.Notified = v.notifyCaseworker(ctx, detail.CaseworkerEmail, pc, link, report)
	}

	return outcome, nil
}

// resolveRecipient finds the contact carrying the case's invoice role and
// returns the attention line and the CVR number to persist. A missing or
// malformed CVR gets a narrative and the sentinel value.
func (v *Vejbill) resolveRecipient(detail *model.CaseDetail, report *Report, link, permitNumber string) (string, string) {
	roleID := detail.InvoiceRoleID
	if roleID == 0 {
		roleID = v.conf.Robot.InvoiceRoleID
	}

	attention := "Intet navn angivet"
	cvr := ""
	for _, contact := range detail.Contacts {
		if !contact.HasRole(roleID) {
			continue
		}
		if name := contact.FullName(); name != "" {
			attention = "Att: " + name
		}
		cvr = contact.CVRNumber
		break
	}

	if cvr == "" {
		logrus.Info("No CVR number on invoice recipient")
		report.Append(missingCVRNarrative(link, permitNumber))
		return attention, sentinelCVR
	}
	if !cvrPattern.MatchString(cvr) {
		logrus.Infof("Malformed CVR number %q on invoice recipient", cvr)
		report.Append(malformedCVRNarrative(link, permitNumber, cvr))
		return attention, sentinelCVR
	}
	return attention, cvr
}

// notifyCaseworker sends the discrepancy mail. Delivery failure is logged
// and reported but never fails the case.
func (v *Vejbill) notifyCaseworker(ctx context.Context, to string, pc *model.PermitCase, link string, report *Report) bool {
	if to == "" {
		logrus.Warnf("Case %s has no caseworker email, discrepancy report dropped", pc.CaseNumber)
		return false
	}

	email := notification.Email{
		To:       to,
		Subject:  mailSubject(pc.CaseNumber),
		HTMLBody: mailPreamble(link, pc.CaseNumber) + report.Render(),
		BCC:      v.conf.Mail.ObserverEmail,
	}
	if err := v.mailer.Send(ctx, email); err != nil {
		logrus.Errorf("Failed to notify %s about case %s: %v", to, pc.CaseNumber, err)
		notification.NotifyError(err)
		return false
	}
	return true
}

func logGroupSummary(equipmentType int64, outcomes []*model.CaseOutcome) {
	var matched, skipped, created, notified int
	for _, outcome := range outcomes {
		matched += outcome.MatchedDetails
		skipped += outcome.SkippedDetails
		created += outcome.NewRecords
		if outcome.Notified {
			notified++
		}
	}
	logrus.Infof("Equipment type %d: %d cases, %d matched lines, %d skipped, %d new records, %d notifications",
		equipmentType, len(outcomes), matched, skipped, created, notified)
}
