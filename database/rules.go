package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mkroghdk/vejbill/internal/recerr"
	"github.com/mkroghdk/vejbill/model"
)

// GetRuleGroups loads the configured billing categories, aggregating the
// fragments of each equipment type in configured (insertion) order together
// with the earliest fetch-window dates.
func (d Datasource) GetRuleGroups(ctx context.Context) ([]*model.RuleGroup, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT equipment_type,
			STRING_AGG(fragment, ',' ORDER BY id) AS fragments,
			MIN(start_date_from) AS start_date_from,
			MIN(end_date_from) AS end_date_from
		FROM rule_fragments
		GROUP BY equipment_type
		ORDER BY equipment_type
	`)
	if err != nil {
		return nil, recerr.New(recerr.ErrInternal, "failed to fetch rule groups", err)
	}
	defer rows.Close()

	var groups []*model.RuleGroup

	for rows.Next() {
		group := &model.RuleGroup{}
		var fragments string
		err = rows.Scan(&group.EquipmentType, &fragments, &group.StartDateFrom, &group.EndDateFrom)
		if err != nil {
			return nil, recerr.New(recerr.ErrInternal, "failed to scan rule group", err)
		}

		group.Fragments = SplitFragments(fragments)
		groups = append(groups, group)
	}

	return groups, nil
}

// SplitFragments turns the comma-joined fragment list into ordered,
// whitespace-trimmed fragments, dropping empties.
func SplitFragments(joined string) []string {
	var fragments []string
	for _, fragment := range strings.Split(joined, ",") {
		fragment = strings.TrimSpace(fragment)
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return fragments
}

// RecordSyncTime upserts the timestamp of the last finished batch run.
func (d Datasource) RecordSyncTime(ctx context.Context, name string, syncedAt time.Time) error {
	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO sync_state(name, synced_at) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET synced_at = EXCLUDED.synced_at
	`, name, syncedAt)
	if err != nil {
		return recerr.New(recerr.ErrInternal, "failed to record sync time", err)
	}

	return nil
}

// GetSyncTime reads the timestamp of the last finished batch run.
func (d Datasource) GetSyncTime(ctx context.Context, name string) (time.Time, error) {
	var syncedAt time.Time
	err := d.Conn.QueryRowContext(ctx, `
		SELECT synced_at FROM sync_state WHERE name = $1
	`, name).Scan(&syncedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, recerr.New(recerr.ErrNotFound, "no sync time recorded", err)
		}
		return time.Time{}, recerr.New(recerr.ErrInternal, "failed to fetch sync time", err)
	}

	return syncedAt, nil
}
