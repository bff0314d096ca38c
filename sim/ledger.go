package sim

// MaintenancePeriodMinutes is the billing period for the "monthly" maintenance
// charge. The port model uses 60 simulated minutes, not a calendar month.
const MaintenancePeriodMinutes = 60

// FinancialSeries holds the minute-aligned financial time series.
type FinancialSeries struct {
	Minutes []int
	Income  []float64
	Cost    []float64
	Profit  []float64
}

// FinancialLedger accumulates income and cost. Both totals are monotonically
// non-decreasing: income grows only by billed containers, cost grows by
// billed containers and by periodic maintenance.
type FinancialLedger struct {
	TotalIncome      float64
	TotalCost        float64
	ContainerCost    float64 // part of TotalCost from container handling
	MaintenanceCost  float64 // part of TotalCost from maintenance
	ContainersBilled float64

	monthlyMaintenance    float64
	lastMaintenanceMinute int

	Series FinancialSeries
}

// NewFinancialLedger creates a zeroed ledger charging monthlyMaintenance per period.
func NewFinancialLedger(monthlyMaintenance float64) *FinancialLedger {
	return &FinancialLedger{monthlyMaintenance: monthlyMaintenance}
}

// RecordContainerThroughput bills containers at the given unit prices.
// Non-positive counts are ignored.
func (l *FinancialLedger) RecordContainerThroughput(containers, incomePerContainer, costPerContainer float64) {
	if containers <= 0 {
		return
	}
	cost := containers * costPerContainer
	l.TotalIncome += containers * incomePerContainer
	l.TotalCost += cost
	l.ContainerCost += cost
	l.ContainersBilled += containers
}

// ApplyMaintenance charges one period of maintenance if at least
// MaintenancePeriodMinutes have elapsed since the last charge, and advances
// the marker to minute. Fires at most once per call. Reports whether it charged.
func (l *FinancialLedger) ApplyMaintenance(minute int) bool {
	if minute-l.lastMaintenanceMinute < MaintenancePeriodMinutes {
		return false
	}
	l.TotalCost += l.monthlyMaintenance
	l.MaintenanceCost += l.monthlyMaintenance
	l.lastMaintenanceMinute = minute
	return true
}

// Profit is TotalIncome - TotalCost.
func (l *FinancialLedger) Profit() float64 {
	return l.TotalIncome - l.TotalCost
}

// RecordPoint appends the current totals to the series, whether or not they changed.
func (l *FinancialLedger) RecordPoint(minute int) {
	l.Series.Minutes = append(l.Series.Minutes, minute)
	l.Series.Income = append(l.Series.Income, l.TotalIncome)
	l.Series.Cost = append(l.Series.Cost, l.TotalCost)
	l.Series.Profit = append(l.Series.Profit, l.Profit())
}
