package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"mes-golang/internal/storage"
)

// PerformanceStorage is the data-source contract the engine consumes. A failed
// production-log fetch fails the whole report; setup activity and name
// resolution only degrade it.
type PerformanceStorage interface {
	FetchProductionLogs(ctx context.Context, from, to time.Time) ([]*storage.ProductionLogEntry, error)
	FetchSetupActivity(ctx context.Context, from, to time.Time, machineID string) ([]*storage.SetupActivityEntry, error)
	ResolveNames(ctx context.Context, machineIDs, personIDs []string) (map[string]string, error)
}

type PerformanceService struct {
	storage PerformanceStorage
	log     *slog.Logger

	defaultShiftMinutes int
	costs               CostRates
}

// Options carries the engine's named constants, normally filled from config.
type Options struct {
	DefaultShiftMinutes int
	Costs               CostRates
}

func NewPerformanceService(storage PerformanceStorage, log *slog.Logger, opts Options) *PerformanceService {
	if opts.DefaultShiftMinutes <= 0 {
		opts.DefaultShiftMinutes = DefaultShiftMinutes
	}

	return &PerformanceService{
		storage:             storage,
		log:                 log,
		defaultShiftMinutes: opts.DefaultShiftMinutes,
		costs:               opts.Costs,
	}
}

// ReportRequest selects the date window and the optional equality filters.
// Filters narrow the aggregation but never the filter-option lists.
type ReportRequest struct {
	Range    string
	DateFrom string
	DateTo   string

	MachineID   string
	OperatorID  string
	ProcessCode string
	ItemSearch  string
	Shift       string
}

// BuildReport runs one full computation: resolve the window, fetch the record
// streams, aggregate in a single pass and assemble the report.
func (s *PerformanceService) BuildReport(ctx context.Context, req ReportRequest) (*PerformanceReport, error) {
	const op = "service.metrics.BuildReport"

	from, to, err := ResolveDateRange(req.Range, req.DateFrom, req.DateTo, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		logs     []*storage.ProductionLogEntry
		setups   []*storage.SetupActivityEntry
		setupErr error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.storage.FetchProductionLogs(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("production logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Setup activity is an enrichment source: a failure here empties the
		// setter sections instead of failing the report.
		setups, setupErr = s.storage.FetchSetupActivity(gCtx, from, to, req.MachineID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if setupErr != nil {
		s.log.Warn("setup activity unavailable, setter sections will be empty",
			slog.String("op", op), slog.String("error", setupErr.Error()))
		setups = nil
	}

	report := newEmptyReport(from, to)

	if len(logs) == 0 {
		return report, nil
	}

	names := s.resolveNames(ctx, logs, setups)

	// Filter options reflect the full date window, before any filter narrows
	// the set.
	report.Filters = buildFilterOptions(logs, names)

	filtered := applyFilters(logs, req)
	report.LogCount = len(filtered)

	if len(filtered) == 0 {
		return report, nil
	}

	s.aggregate(report, filtered, setups, names)

	return report, nil
}

// aggregate folds the filtered entries once through the grouping aggregator,
// the capacity calculator and the downtime analyzer, then finalizes every
// derived section.
func (s *PerformanceService) aggregate(report *PerformanceReport, entries []*storage.ProductionLogEntry, setups []*storage.SetupActivityEntry, names nameLookup) {
	byDate := newGroupAccumulator(func(e *storage.ProductionLogEntry) string { return e.Date.Format(dateLayout) })
	byShift := newGroupAccumulator(func(e *storage.ProductionLogEntry) string { return e.Shift })
	byMachine := newGroupAccumulator(func(e *storage.ProductionLogEntry) string { return e.MachineID })
	byOperator := newGroupAccumulator(func(e *storage.ProductionLogEntry) string { return e.OperatorID })
	byItem := newGroupAccumulator(func(e *storage.ProductionLogEntry) string { return e.ItemDescription })
	byProcess := newGroupAccumulator(func(e *storage.ProductionLogEntry) string { return e.ProcessCode })

	downtime := newDowntimeAnalyzer()

	var global GroupTotals
	var totalOK, totalRework, totalSetupMinutes, totalPaidCapacity int
	machineCapacity := make(map[string]int)
	rejectionTotals := make(map[string]int)

	for _, e := range entries {
		global = global.add(e)

		byDate.add(e)
		byShift.add(e)
		byMachine.add(e)
		byOperator.add(e)
		byItem.add(e)
		byProcess.add(e)

		downtime.add(e)

		totalOK += e.OKQuantity
		totalRework += e.ReworkQuantity
		totalSetupMinutes += e.SetupDurationMinutes

		capacity := paidCapacityMinutes(e, s.defaultShiftMinutes)
		totalPaidCapacity += capacity
		machineCapacity[e.MachineID] += capacity

		for _, rc := range e.Rejections.ByReason() {
			rejectionTotals[rc.Reason] += rc.Count
		}
	}

	activeCapacity := totalPaidCapacity - global.Downtime
	idle := activeCapacity - global.Runtime
	if idle < 0 {
		idle = 0
	}

	report.Summary = Summary{
		TotalOutput:     global.Output,
		TotalOK:         totalOK,
		TotalTarget:     global.Target,
		TotalRejections: global.Rejections,
		TotalRework:     totalRework,
		EfficiencyPct:   round1(global.AvgEfficiency),
		RejectionRate:   rejectionRate(totalOK, global.Rejections),

		TotalPaidCapacityMinutes:  totalPaidCapacity,
		ActivePaidCapacityMinutes: activeCapacity,
		IdleTimeMinutes:           idle,
		TotalRuntimeMinutes:       global.Runtime,
		TotalDowntimeMinutes:      global.Downtime,
		UtilizationPct:            utilizationPercent(global.Runtime, totalPaidCapacity),
	}

	report.ByDate = byDate.finalize()
	report.ByShift = byShift.finalize()
	report.ByMachine = labelGroups(byMachine.finalize(), names)
	report.ByOperator = labelGroups(byOperator.finalize(), names)
	report.ByItem = byItem.finalize()
	report.ByProcess = byProcess.finalize()

	report.DowntimeLosses = downtime.losses(totalPaidCapacity)
	report.DowntimeByMachine = downtime.machineBreakdown(names)
	report.DowntimeByShift = downtime.shiftBreakdown()
	report.DowntimeByCategory = downtime.categoryBreakdown()

	report.RejectionLosses = rejectionPareto(rejectionTotals, global.Rejections)

	report.MachinePerformance = machineRanking(report.ByMachine, machineCapacity)
	report.OperatorPerformance = operatorRanking(report.ByOperator)
	report.ItemPerformance = itemRanking(report.ByItem)
	report.SetterPerformance = scoreSetters(setups, names)

	report.RepeatDowntimeOffenders = repeatDowntimeOffenders(report.DowntimeByMachine)
	report.RepeatRejectionOffenders = repeatRejectionOffenders(report.ByItem)

	report.SetupAnalysis = setupAnalysis(totalSetupMinutes, totalPaidCapacity, setups, report.SetterPerformance)
	report.FinancialImpact = estimateFinancialImpact(global.Rejections, global.Downtime, totalRework, s.costs)
}

// resolveNames gathers every machine and person id seen in the window. A
// lookup failure degrades to "Unknown" names, it never fails the report.
func (s *PerformanceService) resolveNames(ctx context.Context, logs []*storage.ProductionLogEntry, setups []*storage.SetupActivityEntry) nameLookup {
	const op = "service.metrics.resolveNames"

	machineIDs := lo.Map(logs, func(e *storage.ProductionLogEntry, _ int) string { return e.MachineID })
	personIDs := lo.Map(logs, func(e *storage.ProductionLogEntry, _ int) string { return e.OperatorID })

	for _, su := range setups {
		machineIDs = append(machineIDs, su.MachineID)
		personIDs = append(personIDs, su.SetterID)
	}

	machineIDs = lo.Compact(lo.Uniq(machineIDs))
	personIDs = lo.Compact(lo.Uniq(personIDs))

	names, err := s.storage.ResolveNames(ctx, machineIDs, personIDs)
	if err != nil {
		s.log.Warn("name resolution unavailable, falling back to ids",
			slog.String("op", op), slog.String("error", err.Error()))
		return nameLookup{}
	}

	return nameLookup(names)
}

type nameLookup map[string]string

func (n nameLookup) resolve(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return "Unknown"
}

func applyFilters(entries []*storage.ProductionLogEntry, req ReportRequest) []*storage.ProductionLogEntry {
	itemSearch := strings.ToLower(req.ItemSearch)

	return lo.Filter(entries, func(e *storage.ProductionLogEntry, _ int) bool {
		if req.MachineID != "" && e.MachineID != req.MachineID {
			return false
		}
		if req.OperatorID != "" && e.OperatorID != req.OperatorID {
			return false
		}
		if req.ProcessCode != "" && e.ProcessCode != req.ProcessCode {
			return false
		}
		if req.Shift != "" && e.Shift != req.Shift {
			return false
		}
		if itemSearch != "" && !strings.Contains(strings.ToLower(e.ItemDescription), itemSearch) {
			return false
		}
		return true
	})
}

func buildFilterOptions(logs []*storage.ProductionLogEntry, names nameLookup) FilterOptions {
	machineIDs := lo.Compact(lo.Uniq(lo.Map(logs, func(e *storage.ProductionLogEntry, _ int) string { return e.MachineID })))
	operatorIDs := lo.Compact(lo.Uniq(lo.Map(logs, func(e *storage.ProductionLogEntry, _ int) string { return e.OperatorID })))

	machines := lo.Map(machineIDs, func(id string, _ int) NamedOption {
		return NamedOption{ID: id, Name: names.resolve(id)}
	})
	operators := lo.Map(operatorIDs, func(id string, _ int) NamedOption {
		return NamedOption{ID: id, Name: names.resolve(id)}
	})

	sort.Slice(machines, func(i, j int) bool { return machines[i].ID < machines[j].ID })
	sort.Slice(operators, func(i, j int) bool { return operators[i].ID < operators[j].ID })

	return FilterOptions{
		Machines:  machines,
		Operators: operators,
		Items:     sortedDistinct(logs, func(e *storage.ProductionLogEntry) string { return e.ItemDescription }),
		Processes: sortedDistinct(logs, func(e *storage.ProductionLogEntry) string { return e.ProcessCode }),
		Shifts:    sortedDistinct(logs, func(e *storage.ProductionLogEntry) string { return e.Shift }),
	}
}

func sortedDistinct(logs []*storage.ProductionLogEntry, pick func(*storage.ProductionLogEntry) string) []string {
	values := lo.Compact(lo.Uniq(lo.Map(logs, func(e *storage.ProductionLogEntry, _ int) string { return pick(e) })))
	sort.Strings(values)
	return values
}

func labelGroups(groups []GroupTotals, names nameLookup) []GroupTotals {
	for i := range groups {
		groups[i].Label = names.resolve(groups[i].Key)
	}
	return groups
}

func rejectionPareto(totals map[string]int, totalRejections int) []RejectionLoss {
	out := make([]RejectionLoss, 0, len(totals))
	for reason, qty := range totals {
		if qty <= 0 {
			continue
		}
		out = append(out, RejectionLoss{
			Reason:          reason,
			Quantity:        qty,
			PctOfRejections: pctOf(qty, totalRejections),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Reason < out[j].Reason
	})

	return out
}

// machineRanking ranks machines by descending utilization.
func machineRanking(byMachine []GroupTotals, capacity map[string]int) []MachinePerformance {
	out := make([]MachinePerformance, 0, len(byMachine))
	for _, g := range byMachine {
		paidCap := capacity[g.Key]
		out = append(out, MachinePerformance{
			MachineID:           g.Key,
			MachineName:         g.Label,
			Output:              g.Output,
			Rejections:          g.Rejections,
			RuntimeMinutes:      g.Runtime,
			DowntimeMinutes:     g.Downtime,
			PaidCapacityMinutes: paidCap,
			UtilizationPct:      utilizationPercent(g.Runtime, paidCap),
			AvgEfficiency:       g.AvgEfficiency,
			LogCount:            g.LogCount,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UtilizationPct != out[j].UtilizationPct {
			return out[i].UtilizationPct > out[j].UtilizationPct
		}
		return out[i].MachineID < out[j].MachineID
	})

	for i := range out {
		out[i].Rank = tertileRank(i, len(out))
	}

	return out
}

// operatorRanking ranks operators by descending average efficiency.
func operatorRanking(byOperator []GroupTotals) []OperatorPerformance {
	out := make([]OperatorPerformance, 0, len(byOperator))
	for _, g := range byOperator {
		out = append(out, OperatorPerformance{
			OperatorID:    g.Key,
			OperatorName:  g.Label,
			Output:        g.Output,
			Rejections:    g.Rejections,
			AvgEfficiency: g.AvgEfficiency,
			LogCount:      g.LogCount,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgEfficiency != out[j].AvgEfficiency {
			return out[i].AvgEfficiency > out[j].AvgEfficiency
		}
		return out[i].OperatorID < out[j].OperatorID
	})

	for i := range out {
		out[i].Rank = tertileRank(i, len(out))
	}

	return out
}

// itemRanking ranks items ascending by rejection-derived quality so the worst
// items come first.
func itemRanking(byItem []GroupTotals) []ItemPerformance {
	out := make([]ItemPerformance, 0, len(byItem))
	for _, g := range byItem {
		out = append(out, ItemPerformance{
			Item:       g.Key,
			Output:     g.Output,
			Rejections: g.Rejections,
			QualityPct: round1(100 - rejectionRate(g.Output, g.Rejections)),
			LogCount:   g.LogCount,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].QualityPct != out[j].QualityPct {
			return out[i].QualityPct < out[j].QualityPct
		}
		return out[i].Item < out[j].Item
	})

	for i := range out {
		out[i].Rank = tertileRank(i, len(out))
	}

	return out
}

func setupAnalysis(totalSetupMinutes, totalPaidCapacity int, setups []*storage.SetupActivityEntry, setters []SetterPerformance) SetupAnalysis {
	var durations []float64
	for _, su := range setups {
		if su.SetupDurationMinutes > 0 {
			durations = append(durations, float64(su.SetupDurationMinutes))
		}
	}

	var repeatCount int
	for _, sp := range setters {
		repeatCount += sp.RepeatCount
	}

	return SetupAnalysis{
		TotalSetupMinutes: totalSetupMinutes,
		SetupCount:        len(setups),
		AvgSetupMinutes:   round1(mean(durations)),
		RepeatSetupCount:  repeatCount,
		PctOfCapacity:     pctOf(totalSetupMinutes, totalPaidCapacity),
	}
}

// newEmptyReport is the zero-valued report for an empty window: every slice is
// present and empty, never null.
func newEmptyReport(from, to time.Time) *PerformanceReport {
	return &PerformanceReport{
		DateRange: DateRange{
			From: from.Format(dateLayout),
			To:   to.Format(dateLayout),
		},
		ByDate:     []GroupTotals{},
		ByShift:    []GroupTotals{},
		ByMachine:  []GroupTotals{},
		ByOperator: []GroupTotals{},
		ByItem:     []GroupTotals{},
		ByProcess:  []GroupTotals{},

		DowntimeLosses:     []DowntimeLoss{},
		DowntimeByMachine:  []MachineDowntime{},
		DowntimeByShift:    []ShiftDowntime{},
		DowntimeByCategory: []CategoryDowntime{},

		RejectionLosses: []RejectionLoss{},

		MachinePerformance:  []MachinePerformance{},
		OperatorPerformance: []OperatorPerformance{},
		ItemPerformance:     []ItemPerformance{},
		SetterPerformance:   []SetterPerformance{},

		RepeatDowntimeOffenders:  []RepeatDowntimeOffender{},
		RepeatRejectionOffenders: []RepeatRejectionOffender{},

		Filters: FilterOptions{
			Machines:  []NamedOption{},
			Operators: []NamedOption{},
			Items:     []string{},
			Processes: []string{},
			Shifts:    []string{},
		},
	}
}
