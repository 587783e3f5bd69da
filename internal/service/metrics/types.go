package metrics

// PerformanceReport is the full analytics payload for one date window. It is
// rebuilt from scratch on every request and never persisted.
type PerformanceReport struct {
	LogCount  int       `json:"log_count"`
	DateRange DateRange `json:"date_range"`

	Summary Summary `json:"summary"`

	ByDate     []GroupTotals `json:"by_date"`
	ByShift    []GroupTotals `json:"by_shift"`
	ByMachine  []GroupTotals `json:"by_machine"`
	ByOperator []GroupTotals `json:"by_operator"`
	ByItem     []GroupTotals `json:"by_item"`
	ByProcess  []GroupTotals `json:"by_process"`

	DowntimeLosses     []DowntimeLoss     `json:"downtime_losses"`
	DowntimeByMachine  []MachineDowntime  `json:"downtime_by_machine"`
	DowntimeByShift    []ShiftDowntime    `json:"downtime_by_shift"`
	DowntimeByCategory []CategoryDowntime `json:"downtime_by_category"`

	RejectionLosses []RejectionLoss `json:"rejection_losses"`

	MachinePerformance  []MachinePerformance  `json:"machine_performance"`
	OperatorPerformance []OperatorPerformance `json:"operator_performance"`
	ItemPerformance     []ItemPerformance     `json:"item_performance"`
	SetterPerformance   []SetterPerformance   `json:"setter_performance"`

	RepeatDowntimeOffenders  []RepeatDowntimeOffender  `json:"repeat_downtime_offenders"`
	RepeatRejectionOffenders []RepeatRejectionOffender `json:"repeat_rejection_offenders"`

	SetupAnalysis   SetupAnalysis   `json:"setup_analysis"`
	FinancialImpact FinancialImpact `json:"financial_impact"`

	Filters FilterOptions `json:"filters"`
}

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Summary struct {
	TotalOutput     int     `json:"total_output"`
	TotalOK         int     `json:"total_ok"`
	TotalTarget     int     `json:"total_target"`
	TotalRejections int     `json:"total_rejections"`
	TotalRework     int     `json:"total_rework"`
	EfficiencyPct   float64 `json:"efficiency_pct"`
	RejectionRate   float64 `json:"rejection_rate"`

	TotalPaidCapacityMinutes  int     `json:"total_paid_capacity_minutes"`
	ActivePaidCapacityMinutes int     `json:"active_paid_capacity_minutes"`
	IdleTimeMinutes           int     `json:"idle_time_minutes"`
	TotalRuntimeMinutes       int     `json:"total_runtime_minutes"`
	TotalDowntimeMinutes      int     `json:"total_downtime_minutes"`
	UtilizationPct            float64 `json:"utilization_pct"`
}

// GroupTotals is one bucket of the multi-key aggregation (a date, a shift, a
// machine and so on). AvgEfficiency is a running mean over entries whose
// efficiency is above zero; entries without it still count toward LogCount.
type GroupTotals struct {
	Key           string  `json:"key"`
	Label         string  `json:"label,omitempty"`
	Output        int     `json:"output"`
	Target        int     `json:"target"`
	Rejections    int     `json:"rejections"`
	Runtime       int     `json:"runtime_minutes"`
	Downtime      int     `json:"downtime_minutes"`
	LogCount      int     `json:"log_count"`
	AvgEfficiency float64 `json:"avg_efficiency"`

	effCount int
}

type DowntimeLoss struct {
	Reason        string  `json:"reason"`
	Category      string  `json:"category"`
	Minutes       int     `json:"minutes"`
	Hours         float64 `json:"hours"`
	PctOfDowntime float64 `json:"pct_of_downtime"`
	PctOfCapacity float64 `json:"pct_of_capacity"`
	Occurrences   int     `json:"occurrences"`
}

type MachineDowntime struct {
	MachineID     string  `json:"machine_id"`
	MachineName   string  `json:"machine_name"`
	Minutes       int     `json:"minutes"`
	Occurrences   int     `json:"occurrences"`
	TopReason     string  `json:"top_reason"`
	PctOfDowntime float64 `json:"pct_of_downtime"`
}

type ShiftDowntime struct {
	Shift         string  `json:"shift"`
	Minutes       int     `json:"minutes"`
	Occurrences   int     `json:"occurrences"`
	TopReason     string  `json:"top_reason"`
	PctOfDowntime float64 `json:"pct_of_downtime"`
}

type CategoryDowntime struct {
	Category      string  `json:"category"`
	Minutes       int     `json:"minutes"`
	Occurrences   int     `json:"occurrences"`
	PctOfDowntime float64 `json:"pct_of_downtime"`
}

type RejectionLoss struct {
	Reason          string  `json:"reason"`
	Quantity        int     `json:"quantity"`
	PctOfRejections float64 `json:"pct_of_rejections"`
}

type MachinePerformance struct {
	MachineID           string  `json:"machine_id"`
	MachineName         string  `json:"machine_name"`
	Output              int     `json:"output"`
	Rejections          int     `json:"rejections"`
	RuntimeMinutes      int     `json:"runtime_minutes"`
	DowntimeMinutes     int     `json:"downtime_minutes"`
	PaidCapacityMinutes int     `json:"paid_capacity_minutes"`
	UtilizationPct      float64 `json:"utilization_pct"`
	AvgEfficiency       float64 `json:"avg_efficiency"`
	LogCount            int     `json:"log_count"`
	Rank                string  `json:"rank"`
}

type OperatorPerformance struct {
	OperatorID    string  `json:"operator_id"`
	OperatorName  string  `json:"operator_name"`
	Output        int     `json:"output"`
	Rejections    int     `json:"rejections"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	LogCount      int     `json:"log_count"`
	Rank          string  `json:"rank"`
}

// ItemPerformance is ranked worst-first: QualityPct is 100 minus the item's
// rejection rate, sorted ascending so problem items surface at the top.
type ItemPerformance struct {
	Item       string  `json:"item"`
	Output     int     `json:"output"`
	Rejections int     `json:"rejections"`
	QualityPct float64 `json:"quality_pct"`
	LogCount   int     `json:"log_count"`
	Rank       string  `json:"rank"`
}

type SetterPerformance struct {
	SetterID         string  `json:"setter_id"`
	SetterName       string  `json:"setter_name"`
	SetupCount       int     `json:"setup_count"`
	AvgSetupMinutes  float64 `json:"avg_setup_minutes"`
	AvgApprovalDelay float64 `json:"avg_approval_delay_minutes"`
	RepeatCount      int     `json:"repeat_count"`
	EfficiencyScore  float64 `json:"efficiency_score"`
	Rank             string  `json:"rank"`
}

type RepeatDowntimeOffender struct {
	MachineID   string `json:"machine_id"`
	MachineName string `json:"machine_name"`
	Occurrences int    `json:"occurrences"`
	TotalMin    int    `json:"total_minutes"`
}

type RepeatRejectionOffender struct {
	Item            string `json:"item"`
	TotalRejections int    `json:"total_rejections"`
	LogCount        int    `json:"log_count"`
}

type SetupAnalysis struct {
	TotalSetupMinutes int     `json:"total_setup_minutes"`
	SetupCount        int     `json:"setup_count"`
	AvgSetupMinutes   float64 `json:"avg_setup_minutes"`
	RepeatSetupCount  int     `json:"repeat_setup_count"`
	PctOfCapacity     float64 `json:"pct_of_capacity"`
}

type FinancialImpact struct {
	RejectionCost float64 `json:"rejection_cost"`
	DowntimeCost  float64 `json:"downtime_cost"`
	ReworkCost    float64 `json:"rework_cost"`
	TotalLoss     float64 `json:"total_loss"`
}

type NamedOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FilterOptions always reflects the whole date window, not the filtered subset,
// so UI dropdowns stay stable while filters are applied.
type FilterOptions struct {
	Machines  []NamedOption `json:"machines"`
	Operators []NamedOption `json:"operators"`
	Items     []string      `json:"items"`
	Processes []string      `json:"processes"`
	Shifts    []string      `json:"shifts"`
}
