package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/monielab/monieshop-analytics/internal/core/sale"
)

// tally is an upsert-on-add counter map. Every integer aggregate in the
// engine goes through this one accumulation primitive instead of five
// ad hoc get-or-default-then-increment blocks.
type tally[K comparable] map[K]int64

func (t tally[K]) add(key K, n int64) {
	t[key] += n
}

func (t tally[K]) merge(other tally[K]) {
	for key, n := range other {
		t[key] += n
	}
}

// Engine folds parsed Sales into five running aggregates. State grows
// monotonically: no entry is ever removed or decremented, and each Sale
// touches every aggregate exactly once. The engine is not safe for
// concurrent use; parallel ingestion runs one Engine per shard and
// merges the partials (see Merge).
type Engine struct {
	sales       int64
	totalVolume int64
	totalValue  decimal.Decimal

	dailyVolume   tally[Date]
	dailyValue    map[Date]decimal.Decimal
	productVolume tally[string]
	monthlyStaff  map[YearMonth]tally[string]
	hourlyVolumes map[int][]int64
}

// NewEngine returns an Engine with all aggregates empty.
func NewEngine() *Engine {
	return &Engine{
		totalValue:    decimal.Zero,
		dailyVolume:   make(tally[Date]),
		dailyValue:    make(map[Date]decimal.Decimal),
		productVolume: make(tally[string]),
		monthlyStaff:  make(map[YearMonth]tally[string]),
		hourlyVolumes: make(map[int][]int64),
	}
}

// Update folds one Sale into every aggregate. It never fails for a Sale
// produced by the parser: all numeric conversions were validated there.
func (e *Engine) Update(s sale.Sale) {
	volume := s.Volume()
	date := DateOf(s.Timestamp)
	month := YearMonthOf(s.Timestamp)
	hour := s.Timestamp.Hour()

	e.sales++
	e.totalVolume += volume
	e.totalValue = e.totalValue.Add(s.Amount)

	e.dailyVolume.add(date, volume)
	e.dailyValue[date] = e.dailyValue[date].Add(s.Amount)

	for _, p := range s.Products {
		e.productVolume.add(p.ID, int64(p.Quantity))
	}

	staff, ok := e.monthlyStaff[month]
	if !ok {
		staff = make(tally[string])
		e.monthlyStaff[month] = staff
	}
	staff.add(s.StaffID, volume)

	e.hourlyVolumes[hour] = append(e.hourlyVolumes[hour], volume)
}

// Merge folds the aggregates of another Engine into this one. All five
// aggregates are commutative, associative accumulations (sums for the
// maps, concatenation for the hourly sequences), so partials computed
// independently over shards of the input merge pairwise into the same
// state a single sequential pass would have produced. The other engine
// is left untouched.
func (e *Engine) Merge(other *Engine) {
	e.sales += other.sales
	e.totalVolume += other.totalVolume
	e.totalValue = e.totalValue.Add(other.totalValue)

	e.dailyVolume.merge(other.dailyVolume)
	for date, value := range other.dailyValue {
		e.dailyValue[date] = e.dailyValue[date].Add(value)
	}
	e.productVolume.merge(other.productVolume)

	for month, staff := range other.monthlyStaff {
		existing, ok := e.monthlyStaff[month]
		if !ok {
			existing = make(tally[string])
			e.monthlyStaff[month] = existing
		}
		existing.merge(staff)
	}

	for hour, volumes := range other.hourlyVolumes {
		e.hourlyVolumes[hour] = append(e.hourlyVolumes[hour], volumes...)
	}
}

// Sales returns the number of transactions folded in so far.
func (e *Engine) Sales() int64 {
	return e.sales
}
