// Package report renders a metrics snapshot for humans and machines.
// All formatting lives here: the engine's snapshot is plain structured
// data and carries no currency symbols, month names or rounding.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/monielab/monieshop-analytics/internal/core/metrics"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Monetary values are rendered to 2 decimal places, rounded half away
// from zero. This is presentation-only: the engine accumulates at full
// decimal precision.
const moneyPlaces = 2

// View is the presentation shape of a snapshot: every value already
// formatted as a string where precision or labels apply.
type View struct {
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	PeakVolumeDay DayMetric     `json:"peak_volume_day" yaml:"peak_volume_day"`
	PeakValueDay  DayMetric     `json:"peak_value_day" yaml:"peak_value_day"`
	TopProduct    ProductMetric `json:"top_product" yaml:"top_product"`
	TopStaff      []StaffMetric `json:"top_staff_by_month" yaml:"top_staff_by_month"`
	PeakHour      HourMetric    `json:"peak_hour" yaml:"peak_hour"`

	Transactions int64  `json:"transactions" yaml:"transactions"`
	TotalVolume  int64  `json:"total_volume" yaml:"total_volume"`
	TotalValue   string `json:"total_value" yaml:"total_value"`
}

// DayMetric is a date paired with either a unit count or a formatted
// monetary value.
type DayMetric struct {
	Date   string `json:"date" yaml:"date"`
	Volume int64  `json:"volume,omitempty" yaml:"volume,omitempty"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
}

// ProductMetric is a product paired with its total unit count.
type ProductMetric struct {
	ProductID string `json:"product_id" yaml:"product_id"`
	Volume    int64  `json:"volume" yaml:"volume"`
}

// StaffMetric names one month's top staff member.
type StaffMetric struct {
	Month   string `json:"month" yaml:"month"`   // "2025-01"
	Label   string `json:"label" yaml:"label"`   // "January 2025"
	StaffID string `json:"staff_id" yaml:"staff_id"`
	Volume  int64  `json:"volume" yaml:"volume"`
}

// HourMetric is an hour range paired with its average per-transaction
// volume.
type HourMetric struct {
	Hour    int    `json:"hour" yaml:"hour"`
	Range   string `json:"range" yaml:"range"` // "16:00-16:59"
	Average string `json:"average" yaml:"average"`
}

// NewView converts an engine snapshot into its presentation shape.
// runID may be empty when the caller has no ingest run to attribute.
func NewView(snap *metrics.Snapshot, runID string) View {
	v := View{
		RunID: runID,
		PeakVolumeDay: DayMetric{
			Date:   snap.PeakVolumeDay.Date.String(),
			Volume: snap.PeakVolumeDay.Volume,
		},
		PeakValueDay: DayMetric{
			Date:  snap.PeakValueDay.Date.String(),
			Value: snap.PeakValueDay.Value.StringFixed(moneyPlaces),
		},
		TopProduct: ProductMetric{
			ProductID: snap.TopProduct.ProductID,
			Volume:    snap.TopProduct.Volume,
		},
		PeakHour: HourMetric{
			Hour:    snap.PeakHour.Hour,
			Range:   fmt.Sprintf("%d:00-%d:59", snap.PeakHour.Hour, snap.PeakHour.Hour),
			Average: snap.PeakHour.Average.StringFixed(moneyPlaces),
		},
		Transactions: snap.Transactions,
		TotalVolume:  snap.TotalVolume,
		TotalValue:   snap.TotalValue.StringFixed(moneyPlaces),
	}
	for _, m := range snap.TopStaffByMonth {
		v.TopStaff = append(v.TopStaff, StaffMetric{
			Month:   m.Month.String(),
			Label:   fmt.Sprintf("%s %d", m.Month.Month, m.Month.Year),
			StaffID: m.StaffID,
			Volume:  m.Volume,
		})
	}
	return v
}

// Text renders the classic five-line report.
func (v View) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "1. Highest sales volume in a day: %d units on %s\n",
		v.PeakVolumeDay.Volume, v.PeakVolumeDay.Date)
	fmt.Fprintf(&b, "2. Highest sales value in a day: $%s on %s\n",
		v.PeakValueDay.Value, v.PeakValueDay.Date)
	fmt.Fprintf(&b, "3. Most sold product ID: %s with %d units\n",
		v.TopProduct.ProductID, v.TopProduct.Volume)
	b.WriteString("4. Highest sales staff ID for each month:\n")
	for _, m := range v.TopStaff {
		fmt.Fprintf(&b, "    %s: Staff ID %s with %d units\n", m.Label, m.StaffID, m.Volume)
	}
	fmt.Fprintf(&b, "5. Peak hour by average transaction volume: %s with an average transaction volume of %s\n",
		v.PeakHour.Range, v.PeakHour.Average)
	return b.String()
}

// Write renders the view to w in the requested format.
func Write(w io.Writer, format string, v View) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, v.Text())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
