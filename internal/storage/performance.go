package storage

import (
	"encoding/json"
	"time"
)

// ProductionLogEntry is one shift-level record per machine/operator/date/shift,
// as stored by the log store. Absent numeric columns are read as 0.
type ProductionLogEntry struct {
	ID                     int64           `json:"id"`
	Date                   time.Time       `json:"date"`
	Shift                  string          `json:"shift"`
	MachineID              string          `json:"machine_id"`
	OperatorID             string          `json:"operator_id"`
	WorkOrderID            string          `json:"work_order_id"`
	ActualQuantity         int             `json:"actual_quantity"`
	OKQuantity             int             `json:"ok_quantity"`
	TargetQuantity         int             `json:"target_quantity"`
	TotalRejectionQuantity int             `json:"total_rejection_quantity"`
	ReworkQuantity         int             `json:"rework_quantity"`
	ActualRuntimeMinutes   int             `json:"actual_runtime_minutes"`
	TotalDowntimeMinutes   int             `json:"total_downtime_minutes"`
	ShiftStartTime         string          `json:"shift_start_time"` // "HH:MM", empty when not recorded
	ShiftEndTime           string          `json:"shift_end_time"`
	CycleTimeSeconds       float64         `json:"cycle_time_seconds"`
	SetupDurationMinutes   int             `json:"setup_duration_minutes"`
	Rejections             RejectionCounts `json:"rejections"`
	DowntimeEvents         []DowntimeEvent `json:"downtime_events"`
	ProcessCode            string          `json:"process_code"`
	CustomerCode           string          `json:"customer_code"`
	ItemDescription        string          `json:"item_description"`
}

// EfficiencyPercent derives per-entry efficiency from actual vs target output.
// Entries without a target report 0 and are excluded from running averages.
func (e *ProductionLogEntry) EfficiencyPercent() float64 {
	if e.TargetQuantity <= 0 {
		return 0
	}
	return float64(e.ActualQuantity) / float64(e.TargetQuantity) * 100
}

// RejectionCounts is the fixed set of rejection-reason counters kept on every log entry.
type RejectionCounts struct {
	Dimension      int `json:"dimension"`
	ToolMark       int `json:"tool_mark"`
	Setting        int `json:"setting"`
	Burr           int `json:"burr"`
	MaterialDefect int `json:"material_defect"`
	Facing         int `json:"facing"`
	Threading      int `json:"threading"`
	Drilling       int `json:"drilling"`
	Rust           int `json:"rust"`
	Handling       int `json:"handling"`
}

// ByReason returns the counters keyed by display label, in a stable order.
func (r RejectionCounts) ByReason() []RejectionCount {
	return []RejectionCount{
		{"Dimension", r.Dimension},
		{"Tool Mark", r.ToolMark},
		{"Setting", r.Setting},
		{"Burr", r.Burr},
		{"Material Defect", r.MaterialDefect},
		{"Facing", r.Facing},
		{"Threading", r.Threading},
		{"Drilling", r.Drilling},
		{"Rust", r.Rust},
		{"Handling", r.Handling},
	}
}

type RejectionCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type DowntimeEvent struct {
	Reason          string `json:"reason"`
	DurationMinutes int    `json:"duration_minutes"`
}

// rawDowntimeEvent mirrors the schemaless JSON column: older rows use "type"
// instead of "reason" and "minutes" instead of "durationMinutes".
type rawDowntimeEvent struct {
	Reason          string   `json:"reason"`
	Type            string   `json:"type"`
	DurationMinutes *float64 `json:"durationMinutes"`
	Minutes         *float64 `json:"minutes"`
}

// NormalizeDowntimeEvents decodes the embedded downtime_events JSON column into
// a uniform shape. Unreadable payloads normalize to no events rather than failing
// the whole row.
func NormalizeDowntimeEvents(raw []byte) []DowntimeEvent {
	if len(raw) == 0 {
		return nil
	}

	var rawEvents []rawDowntimeEvent
	if err := json.Unmarshal(raw, &rawEvents); err != nil {
		return nil
	}

	events := make([]DowntimeEvent, 0, len(rawEvents))
	for _, re := range rawEvents {
		reason := re.Reason
		if reason == "" {
			reason = re.Type
		}
		if reason == "" {
			reason = "Other"
		}

		var minutes float64
		switch {
		case re.DurationMinutes != nil:
			minutes = *re.DurationMinutes
		case re.Minutes != nil:
			minutes = *re.Minutes
		}

		events = append(events, DowntimeEvent{
			Reason:          reason,
			DurationMinutes: int(minutes),
		})
	}

	return events
}

// SetupActivityEntry is one machine setup/changeover record.
type SetupActivityEntry struct {
	ID                     int64      `json:"id"`
	SetterID               string     `json:"setter_id"`
	MachineID              string     `json:"machine_id"`
	WorkOrderID            string     `json:"work_order_id"`
	ItemCode               string     `json:"item_code"`
	ActivityDate           time.Time  `json:"activity_date"`
	SetupStartTime         *time.Time `json:"setup_start_time"`
	SetupEndTime           *time.Time `json:"setup_end_time"`
	SetupDurationMinutes   int        `json:"setup_duration_minutes"`
	FirstPieceApprovalTime *time.Time `json:"first_piece_approval_time"`
}

// Machine is a reference row used for name resolution and admin listings.
type Machine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
