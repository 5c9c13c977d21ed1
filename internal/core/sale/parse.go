package sale

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record line shape:
//
//	staffId,ISO8601-timestamp,[productId:qty|productId:qty|...],amount
//
// e.g. "4,2025-01-01T16:58:53,[726107:5|553776:5],2114.235"
//
// The top-level split on ',' is positional and deliberately naive: the
// product list uses '|' and ':' internally precisely so that no field
// ever contains a comma. Timestamps are local wall-clock values with no
// zone designator.
const (
	fieldCount      = 4
	timestampLayout = "2006-01-02T15:04:05"
	productSep      = "|"
	quantitySep     = ":"
)

// ParseRecord decodes one raw transaction line into a Sale. It fails
// with a *MalformedRecordError on any structural violation: wrong field
// count, unparseable timestamp, missing product brackets, a product
// entry that does not split into id:quantity, a non-integer or negative
// quantity, or an unparseable or negative amount. It never returns a
// partially populated Sale.
func ParseRecord(line string) (Sale, error) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return Sale{}, NewFieldCountError(line, len(fields))
	}

	staffID := strings.TrimSpace(fields[0])
	if staffID == "" {
		return Sale{}, NewFieldError(line, FieldStaffID, "staff id must not be empty")
	}

	ts, err := time.Parse(timestampLayout, strings.TrimSpace(fields[1]))
	if err != nil {
		return Sale{}, NewFieldError(line, FieldTimestamp,
			fmt.Sprintf("not an ISO-8601 local date-time: %v", err))
	}

	products, perr := parseProducts(line, strings.TrimSpace(fields[2]))
	if perr != nil {
		return Sale{}, perr
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return Sale{}, NewFieldError(line, FieldAmount,
			fmt.Sprintf("not a decimal value: %v", err))
	}
	if amount.IsNegative() {
		return Sale{}, NewFieldError(line, FieldAmount, "amount must not be negative")
	}

	return Sale{
		StaffID:   staffID,
		Timestamp: ts,
		Products:  products,
		Amount:    amount,
	}, nil
}

// parseProducts decodes the bracketed product blob: "[id:qty|id:qty]".
func parseProducts(line, blob string) ([]Product, *MalformedRecordError) {
	if len(blob) < 2 || blob[0] != '[' || blob[len(blob)-1] != ']' {
		return nil, NewFieldError(line, FieldProducts, "product list must be wrapped in [ ]")
	}

	entries := strings.Split(blob[1:len(blob)-1], productSep)
	products := make([]Product, 0, len(entries))
	for _, entry := range entries {
		id, qty, ok := strings.Cut(entry, quantitySep)
		if !ok || strings.Contains(qty, quantitySep) {
			return nil, NewFieldError(line, FieldProducts,
				fmt.Sprintf("product entry %q must be id:quantity", entry))
		}
		if id == "" {
			return nil, NewFieldError(line, FieldProducts,
				fmt.Sprintf("product entry %q has an empty id", entry))
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, NewFieldError(line, FieldProducts,
				fmt.Sprintf("quantity %q is not an integer", qty))
		}
		if n < 0 {
			return nil, NewFieldError(line, FieldProducts,
				fmt.Sprintf("quantity %q must not be negative", qty))
		}
		products = append(products, Product{ID: id, Quantity: n})
	}
	return products, nil
}
