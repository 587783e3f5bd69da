package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mes-golang/internal/storage"
)

// FetchSetupActivity returns setup/changeover records in [from, to], optionally
// narrowed to one machine.
func (s *Storage) FetchSetupActivity(ctx context.Context, from, to time.Time, machineID string) ([]*storage.SetupActivityEntry, error) {
	const op = "storage.mysql.FetchSetupActivity"

	stmt := `
		SELECT
			id, setter_id, machine_id, work_order_id, item_code,
			activity_date, setup_start_time, setup_end_time,
			setup_duration_min, first_piece_approval_time
		FROM setup_activity
		WHERE activity_date BETWEEN ? AND ?
	`
	args := []any{from.Format("2006-01-02"), to.Format("2006-01-02")}

	if machineID != "" {
		stmt += " AND machine_id = ?"
		args = append(args, machineID)
	}
	stmt += " ORDER BY activity_date, setup_start_time"

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query failed: %w", op, err)
	}
	defer rows.Close()

	var entries []*storage.SetupActivityEntry

	for rows.Next() {
		var (
			e           storage.SetupActivityEntry
			workOrderID sql.NullString
			itemCode    sql.NullString
			start       sql.NullTime
			end         sql.NullTime
			approval    sql.NullTime
		)

		err := rows.Scan(
			&e.ID, &e.SetterID, &e.MachineID, &workOrderID, &itemCode,
			&e.ActivityDate, &start, &end,
			&e.SetupDurationMinutes, &approval,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}

		e.WorkOrderID = workOrderID.String
		e.ItemCode = itemCode.String
		if start.Valid {
			e.SetupStartTime = &start.Time
		}
		if end.Valid {
			e.SetupEndTime = &end.Time
		}
		if approval.Valid {
			e.FirstPieceApprovalTime = &approval.Time
		}

		entries = append(entries, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return entries, nil
}
