package database

import (
	"context"
	"database/sql"

	"github.com/mkroghdk/vejbill/internal/recerr"
	"github.com/mkroghdk/vejbill/model"
)

// UpsertBillingRecord inserts a new billing record or refreshes an existing
// one. The conditional update deliberately leaves start_date and end_date
// alone: once a billing line has been recorded, its dates are fixed.
func (d Datasource) UpsertBillingRecord(ctx context.Context, record *model.BillingRecord) error {
	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO billing_records(
			detail_id, case_id, applicant, address, permit_number, cvr_number,
			category, unit_price, length_m, start_date, end_date, attention
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (detail_id) DO UPDATE SET
			case_id = EXCLUDED.case_id,
			applicant = EXCLUDED.applicant,
			address = EXCLUDED.address,
			permit_number = EXCLUDED.permit_number,
			cvr_number = EXCLUDED.cvr_number,
			category = EXCLUDED.category,
			unit_price = EXCLUDED.unit_price,
			length_m = EXCLUDED.length_m,
			attention = EXCLUDED.attention,
			updated_at = NOW()
	`,
		record.DetailID, record.CaseID, record.Applicant, record.Address,
		record.PermitNumber, record.CVRNumber, record.Category,
		record.UnitPrice, record.Length, record.StartDate, record.EndDate,
		record.Attention,
	)
	if err != nil {
		return recerr.New(recerr.ErrInternal, "failed to upsert billing record", err)
	}

	return nil
}

// GetBillingRecord retrieves one billing record by its billing-line identifier.
func (d Datasource) GetBillingRecord(ctx context.Context, detailID int64) (*model.BillingRecord, error) {
	record := &model.BillingRecord{}
	err := d.Conn.QueryRowContext(ctx, `
		SELECT id, detail_id, case_id, applicant, address, permit_number, cvr_number,
			category, unit_price, length_m, start_date, end_date, attention,
			invoiced, queued_for_invoicing, do_not_invoice
		FROM billing_records
		WHERE detail_id = $1
	`, detailID).Scan(
		&record.ID, &record.DetailID, &record.CaseID, &record.Applicant,
		&record.Address, &record.PermitNumber, &record.CVRNumber,
		&record.Category, &record.UnitPrice, &record.Length,
		&record.StartDate, &record.EndDate, &record.Attention,
		&record.Invoiced, &record.QueuedForInvoicing, &record.DoNotInvoice,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, recerr.New(recerr.ErrNotFound, "billing record not found", err)
		}
		return nil, recerr.New(recerr.ErrInternal, "failed to fetch billing record", err)
	}

	return record, nil
}

// GetBillingRecords loads the full point-in-time snapshot of billing records,
// keyed by billing-line identifier. The orchestrator reads this once per
// batch run for the date-immutability and skip-flag checks.
func (d Datasource) GetBillingRecords(ctx context.Context) (map[int64]*model.BillingRecord, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, detail_id, case_id, applicant, address, permit_number, cvr_number,
			category, unit_price, length_m, start_date, end_date, attention,
			invoiced, queued_for_invoicing, do_not_invoice
		FROM billing_records
	`)
	if err != nil {
		return nil, recerr.New(recerr.ErrInternal, "failed to fetch billing records", err)
	}
	defer rows.Close()

	records := make(map[int64]*model.BillingRecord)

	for rows.Next() {
		record := &model.BillingRecord{}
		err = rows.Scan(
			&record.ID, &record.DetailID, &record.CaseID, &record.Applicant,
			&record.Address, &record.PermitNumber, &record.CVRNumber,
			&record.Category, &record.UnitPrice, &record.Length,
			&record.StartDate, &record.EndDate, &record.Attention,
			&record.Invoiced, &record.QueuedForInvoicing, &record.DoNotInvoice,
		)
		if err != nil {
			return nil, recerr.New(recerr.ErrInternal, "failed to scan billing record", err)
		}

		records[record.DetailID] = record
	}

	return records, nil
}

// GetBillingRecordsByCase retrieves all billing records carrying the given
// permit case as informational attribute.
func (d Datasource) GetBillingRecordsByCase(ctx context.Context, caseID int64) ([]*model.BillingRecord, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, detail_id, case_id, applicant, address, permit_number, cvr_number,
			category, unit_price, length_m, start_date, end_date, attention,
			invoiced, queued_for_invoicing, do_not_invoice
		FROM billing_records
		WHERE case_id = $1
		ORDER BY detail_id
	`, caseID)
	if err != nil {
		return nil, recerr.New(recerr.ErrInternal, "failed to fetch billing records by case", err)
	}
	defer rows.Close()

	var records []*model.BillingRecord

	for rows.Next() {
		record := &model.BillingRecord{}
		err = rows.Scan(
			&record.ID, &record.DetailID, &record.CaseID, &record.Applicant,
			&record.Address, &record.PermitNumber, &record.CVRNumber,
			&record.Category, &record.UnitPrice, &record.Length,
			&record.StartDate, &record.EndDate, &record.Attention,
			&record.Invoiced, &record.QueuedForInvoicing, &record.DoNotInvoice,
		)
		if err != nil {
			return nil, recerr.New(recerr.ErrInternal, "failed to scan billing record", err)
		}

		records = append(records, record)
	}

	return records, nil
}
