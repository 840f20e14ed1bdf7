package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// maxPlausibleQty bounds quantities inferred from bare numbers; anything at
// or above it is a stray code, not an order quantity.
const maxPlausibleQty = 100000

// itemRegion isolates the physical lines of the item table: everything
// after the header row naming the model column and a quantity/price column,
// up to the first subtotal-like line.
func itemRegion(d *Document) []string {
	start := -1
	for i, ln := range d.Lines {
		if itemHeaderModelRx.MatchString(ln) && itemHeaderQtyRx.MatchString(ln) {
			start = i + 1
			break
		}
	}
	if start == -1 || start >= len(d.Lines) {
		return nil
	}
	end := len(d.Lines)
	for i := start; i < len(d.Lines); i++ {
		if subtotalRx.MatchString(d.Lines[i]) {
			end = i
			break
		}
	}
	if end <= start {
		return nil
	}
	return d.Lines[start:end]
}

// ItemRows reconstructs logical item rows from the table region. Physical
// lines accumulate into a buffer until one carries at least two monetary
// tokens (unit price and line amount, the two numeric columns that end
// every row); the buffer then flushes as one row. A leftover buffer joins
// the last completed row, or becomes its own row when none exists.
func ItemRows(d *Document) []string {
	region := itemRegion(d)
	if region == nil {
		return nil
	}
	var rows []string
	var buf []string
	for _, ln := range region {
		buf = append(buf, ln)
		if len(moneyTokens(ln)) >= 2 {
			rows = append(rows, collapseWs(strings.Join(buf, " ")))
			buf = nil
		}
	}
	if len(buf) > 0 {
		leftover := collapseWs(strings.Join(buf, " "))
		if len(rows) > 0 {
			rows[len(rows)-1] += " " + leftover
		} else {
			rows = append(rows, leftover)
		}
	}
	return rows
}

// rowQuantity infers one row's purchased quantity.
//
// Priority:
//  1. a number immediately followed by a unit-of-measure token
//  2. the right-most plain number strictly before the row's first monetary
//     token, within [0, maxPlausibleQty)
//
// The second rule can misfire on a stray code printed before a price; that
// is a known trait of the source layout, kept as-is.
func rowQuantity(row string) (float64, bool) {
	if m := qtyUnitRx.FindStringSubmatch(row); m != nil {
		if q, err := strconv.ParseFloat(m[1], 64); err == nil {
			return q, true
		}
	}

	boundary := len(row)
	for _, idx := range moneyRx.FindAllStringIndex(row, -1) {
		if _, ok := NormalizeMoney(row[idx[0]:idx[1]]); ok {
			boundary = idx[0]
			break
		}
	}
	nums := plainNumRx.FindAllString(row[:boundary], -1)
	for i := len(nums) - 1; i >= 0; i-- {
		q, err := strconv.ParseFloat(nums[i], 64)
		if err == nil && q >= 0 && q < maxPlausibleQty {
			return q, true
		}
	}
	return 0, false
}

// QuantityTotal sums the inferred quantities of all rows, rendered with up
// to two decimals and trailing zeros stripped (3.00 -> "3", 3.50 -> "3.5").
// Returns "" when no row yields a quantity: "not found" is distinct from
// "found to be zero".
func QuantityTotal(rows []string) string {
	sum := 0.0
	found := false
	for _, row := range rows {
		if q, ok := rowQuantity(row); ok {
			sum += q
			found = true
		}
	}
	if !found {
		return ""
	}
	s := fmt.Sprintf("%.2f", sum)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// itemIdentity derives the item code and description, but only for
// single-row blocks: multi-item orders report just their summed quantity,
// never per-line decomposition.
func itemIdentity(rows []string) (id, desc string) {
	if len(rows) != 1 {
		return "", ""
	}
	row := rows[0]
	for _, cand := range modelCodeRx.FindAllString(row, -1) {
		if _, unit := unitKeywords[cand]; !unit && len(cand) >= 6 {
			id = cand
			break
		}
	}
	desc = row
	if id != "" {
		desc = strings.Replace(desc, id, "", 1)
	}
	desc = collapseWs(descTailRx.ReplaceAllString(desc, ""))
	return id, desc
}
