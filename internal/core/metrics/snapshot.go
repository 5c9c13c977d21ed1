package metrics

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrEmptyDataset is returned by Report when no Sale was ever folded
// in. Every metric is a maximum over an aggregate, which is undefined
// for an empty dataset; reporting zeros instead would be
// indistinguishable from a real (if quiet) trading year.
var ErrEmptyDataset = errors.New("no transactions ingested")

// DayVolume pairs a calendar date with its cumulative unit count.
type DayVolume struct {
	Date   Date  `json:"date"`
	Volume int64 `json:"volume"`
}

// DayValue pairs a calendar date with its cumulative sales value.
type DayValue struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// ProductVolume pairs a product ID with its cumulative unit count.
type ProductVolume struct {
	ProductID string `json:"product_id"`
	Volume    int64  `json:"volume"`
}

// MonthlyStaff names the top-selling staff member of one calendar
// month, with the unit volume they sold that month.
type MonthlyStaff struct {
	Month   YearMonth `json:"month"`
	StaffID string    `json:"staff_id"`
	Volume  int64     `json:"volume"`
}

// HourAverage pairs an hour of day (0-23) with the average
// per-transaction unit volume observed in that hour.
type HourAverage struct {
	Hour    int             `json:"hour"`
	Average decimal.Decimal `json:"average"`
}

// Snapshot is the read-only bundle of derived metrics. It is plain
// structured data: all formatting (currency symbols, month names, hour
// ranges) belongs to the presentation layer.
type Snapshot struct {
	PeakVolumeDay   DayVolume      `json:"peak_volume_day"`
	PeakValueDay    DayValue       `json:"peak_value_day"`
	TopProduct      ProductVolume  `json:"top_product"`
	TopStaffByMonth []MonthlyStaff `json:"top_staff_by_month"`
	PeakHour        HourAverage    `json:"peak_hour"`

	// Dataset totals, for run summaries and sanity checks.
	Transactions int64           `json:"transactions"`
	TotalVolume  int64           `json:"total_volume"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// Report derives the metrics snapshot from the current aggregates. It
// is a pure read: calling it repeatedly without intervening Updates
// yields identical snapshots, and it never mutates engine state.
//
// Tie-break rule: the highest value wins; when several keys share the
// maximum, the smallest key wins (earliest date, lexicographically
// smallest product or staff ID, lowest hour). This keeps the output
// deterministic regardless of map iteration order.
func (e *Engine) Report() (*Snapshot, error) {
	if e.sales == 0 {
		return nil, ErrEmptyDataset
	}

	peakVolDate, peakVol := maxTally(e.dailyVolume, Date.Before)
	peakValDate, peakVal := maxDecimal(e.dailyValue, Date.Before)
	topProductID, topProductVol := maxTally(e.productVolume, stringLess)

	months := make([]MonthlyStaff, 0, len(e.monthlyStaff))
	for month, staff := range e.monthlyStaff {
		staffID, volume := maxTally(staff, stringLess)
		months = append(months, MonthlyStaff{Month: month, StaffID: staffID, Volume: volume})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month.Before(months[j].Month) })

	averages := make(map[int]decimal.Decimal, len(e.hourlyVolumes))
	for hour, volumes := range e.hourlyVolumes {
		// An hour only has an entry if at least one transaction landed
		// in it, so the divisor is never zero.
		var sum int64
		for _, v := range volumes {
			sum += v
		}
		averages[hour] = decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(volumes))))
	}
	peakHour, peakAvg := maxDecimal(averages, intLess)

	return &Snapshot{
		PeakVolumeDay:   DayVolume{Date: peakVolDate, Volume: peakVol},
		PeakValueDay:    DayValue{Date: peakValDate, Value: peakVal},
		TopProduct:      ProductVolume{ProductID: topProductID, Volume: topProductVol},
		TopStaffByMonth: months,
		PeakHour:        HourAverage{Hour: peakHour, Average: peakAvg},
		Transactions:    e.sales,
		TotalVolume:     e.totalVolume,
		TotalValue:      e.totalValue,
	}, nil
}

func stringLess(a, b string) bool { return a < b }
func intLess(a, b int) bool       { return a < b }

// maxTally returns the key with the maximum count. Ties go to the
// smaller key under keyLess.
func maxTally[K comparable](t tally[K], keyLess func(a, b K) bool) (K, int64) {
	var bestKey K
	var bestVal int64
	first := true
	for key, val := range t {
		if first || val > bestVal || (val == bestVal && keyLess(key, bestKey)) {
			bestKey, bestVal = key, val
			first = false
		}
	}
	return bestKey, bestVal
}

// maxDecimal is maxTally for decimal-valued aggregates.
func maxDecimal[K comparable](m map[K]decimal.Decimal, keyLess func(a, b K) bool) (K, decimal.Decimal) {
	var bestKey K
	bestVal := decimal.Zero
	first := true
	for key, val := range m {
		if first || val.GreaterThan(bestVal) || (val.Equal(bestVal) && keyLess(key, bestKey)) {
			bestKey, bestVal = key, val
			first = false
		}
	}
	return bestKey, bestVal
}
