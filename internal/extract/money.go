package extract

import "strings"

// totalWindow is the number of non-blank lines scanned after the totals
// anchor. The issuer's totals block (subtotal, tax, total) always fits.
const totalWindow = 20

// NormalizeMoney canonicalizes a monetary literal to `integer.fraction` with
// `.` as the decimal separator and no thousands separators. The second
// return is false for tokens without any fractional part: those are page or
// line numbers, not money.
//
// Separator disambiguation: when both `,` and `.` appear, the rightmost one
// is the decimal point. A lone `,` is taken as a decimal point (non-US
// locale).
func NormalizeMoney(tok string) (string, bool) {
	v := strings.ReplaceAll(tok, " ", "")
	comma := strings.Contains(v, ",")
	dot := strings.Contains(v, ".")
	switch {
	case comma && dot:
		if strings.LastIndex(v, ",") > strings.LastIndex(v, ".") {
			v = strings.ReplaceAll(v, ".", "")
			v = strings.ReplaceAll(v, ",", ".")
		} else {
			v = strings.ReplaceAll(v, ",", "")
		}
	case comma:
		v = strings.ReplaceAll(v, ",", ".")
	}
	if !strings.Contains(v, ".") {
		return "", false
	}
	return v, true
}

// moneyTokens extracts every normalized monetary token from s, in order.
func moneyTokens(s string) []string {
	var out []string
	for _, m := range moneyRx.FindAllString(s, -1) {
		if v, ok := NormalizeMoney(m); ok {
			out = append(out, v)
		}
	}
	return out
}

// TotalAmount resolves the grand total from the totals block.
//
// The anchor is the first subtotal line, falling back to the first
// standalone "Total" line that is not the item-count phrasing. From the
// anchor, every monetary token inside a 20-line window is collected in
// document order; the issuer's fixed layout puts subtotal, tax and total on
// three successive monetary lines, so the 3rd token is the grand total.
// With fewer than three tokens the last one wins. Trailing bare integers
// (page numbers) never qualify as monetary tokens, so they cannot displace
// the result.
func TotalAmount(d *Document) string {
	start := -1
	for i, ln := range d.Lines {
		if subtotalRx.MatchString(ln) {
			start = i
			break
		}
	}
	if start == -1 {
		for i, ln := range d.Lines {
			if totalRx.MatchString(ln) && !totalItemCountRx.MatchString(ln) {
				start = i
				break
			}
		}
	}
	if start == -1 {
		return ""
	}

	end := start + totalWindow
	if end > len(d.Lines) {
		end = len(d.Lines)
	}
	var monies []string
	for _, ln := range d.Lines[start:end] {
		monies = append(monies, moneyTokens(ln)...)
	}
	switch {
	case len(monies) >= 3:
		return monies[2]
	case len(monies) > 0:
		return monies[len(monies)-1]
	default:
		return ""
	}
}
