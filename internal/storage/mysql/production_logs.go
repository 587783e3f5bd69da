package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mes-golang/internal/storage"
)

// FetchProductionLogs returns every shift-level log record whose date falls
// inside [from, to]. Filtering by machine/operator/etc. happens in the metrics
// service so the filter dropdowns can still see the whole window.
func (s *Storage) FetchProductionLogs(ctx context.Context, from, to time.Time) ([]*storage.ProductionLogEntry, error) {
	const op = "storage.mysql.FetchProductionLogs"

	stmt := `
		SELECT
			id, log_date, shift, machine_id, operator_id, work_order_id,
			actual_qty, ok_qty, target_qty, total_rejection_qty, rework_qty,
			actual_runtime_min, total_downtime_min,
			shift_start_time, shift_end_time, cycle_time_sec, setup_duration_min,
			rej_dimension, rej_tool_mark, rej_setting, rej_burr, rej_material_defect,
			rej_facing, rej_threading, rej_drilling, rej_rust, rej_handling,
			downtime_events, process_code, customer_code, item_description
		FROM production_logs
		WHERE log_date BETWEEN ? AND ?
		ORDER BY log_date, shift, machine_id
	`

	rows, err := s.db.QueryContext(ctx, stmt, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("%s: query failed: %w", op, err)
	}
	defer rows.Close()

	var entries []*storage.ProductionLogEntry

	for rows.Next() {
		var (
			e              storage.ProductionLogEntry
			operatorID     sql.NullString
			workOrderID    sql.NullString
			shiftStart     sql.NullString
			shiftEnd       sql.NullString
			cycleTime      sql.NullFloat64
			downtimeEvents sql.NullString
			processCode    sql.NullString
			customerCode   sql.NullString
			itemDesc       sql.NullString
		)

		err := rows.Scan(
			&e.ID, &e.Date, &e.Shift, &e.MachineID, &operatorID, &workOrderID,
			&e.ActualQuantity, &e.OKQuantity, &e.TargetQuantity, &e.TotalRejectionQuantity, &e.ReworkQuantity,
			&e.ActualRuntimeMinutes, &e.TotalDowntimeMinutes,
			&shiftStart, &shiftEnd, &cycleTime, &e.SetupDurationMinutes,
			&e.Rejections.Dimension, &e.Rejections.ToolMark, &e.Rejections.Setting,
			&e.Rejections.Burr, &e.Rejections.MaterialDefect, &e.Rejections.Facing,
			&e.Rejections.Threading, &e.Rejections.Drilling, &e.Rejections.Rust,
			&e.Rejections.Handling,
			&downtimeEvents, &processCode, &customerCode, &itemDesc,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}

		e.OperatorID = operatorID.String
		e.WorkOrderID = workOrderID.String
		e.ShiftStartTime = shiftStart.String
		e.ShiftEndTime = shiftEnd.String
		e.CycleTimeSeconds = cycleTime.Float64
		e.ProcessCode = processCode.String
		e.CustomerCode = customerCode.String
		e.ItemDescription = itemDesc.String
		e.DowntimeEvents = storage.NormalizeDowntimeEvents([]byte(downtimeEvents.String))

		entries = append(entries, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return entries, nil
}
