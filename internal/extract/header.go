package extract

import (
	"strings"
	"time"
)

// headerScan caps how deep into the document the quote-number hint search
// goes; the number always sits in the letterhead.
const headerScan = 30

// signatureWindow caps the forward scan below the closing keyword.
const signatureWindow = 8

// strategy is one step of a field's fallback chain: best-effort, "" on miss.
type strategy func(d *Document) string

func firstOf(d *Document, chain ...strategy) string {
	for _, try := range chain {
		if v := try(d); v != "" {
			return v
		}
	}
	return ""
}

// QuoteNumber finds the 4-8 digit quotation number. Near-label anchoring in
// the letterhead is preferred over raw label regexes to keep dates and
// phone fragments out.
func QuoteNumber(d *Document) string {
	return firstOf(d, quoteNumNearHint, quoteNumLabeled, quoteNumBareTop)
}

func quoteNumNearHint(d *Document) string {
	top := d.Lines
	if len(top) > headerScan {
		top = top[:headerScan]
	}
	for i, ln := range top {
		if !quoteHintRx.MatchString(ln) {
			continue
		}
		lo, hi := i-3, i+6
		if lo < 0 {
			lo = 0
		}
		if hi > len(d.Lines) {
			hi = len(d.Lines)
		}
		for _, cand := range d.Lines[lo:hi] {
			if bareQuoteNumRx.MatchString(strings.TrimSpace(cand)) {
				return strings.TrimSpace(cand)
			}
		}
	}
	return ""
}

func quoteNumLabeled(d *Document) string {
	for _, rx := range quoteNumLabelRxs {
		if m := rx.FindStringSubmatch(d.Raw); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

func quoteNumBareTop(d *Document) string {
	top := d.Lines
	if len(top) > headerScan {
		top = top[:headerScan]
	}
	for _, ln := range top {
		if bareQuoteNumRx.MatchString(ln) {
			return ln
		}
	}
	return ""
}

// QuoteDate finds the first dd/mm/yyyy token and reformats it to
// mm/dd/yyyy. Calendar-invalid dates yield "".
func QuoteDate(d *Document) string {
	m := dateRx.FindStringSubmatch(d.Raw)
	if m == nil {
		return ""
	}
	t, err := time.Parse("02/01/2006", m[1])
	if err != nil {
		return ""
	}
	return t.Format("01/02/2006")
}

// Company resolves the client name from the "Cliente" label: the same-line
// remainder, or the following line when the remainder is too short.
func Company(d *Document) string {
	return firstOf(d, companyFromLines, companyFromRaw)
}

func companyFromLines(d *Document) string {
	for i, ln := range d.Lines {
		loc := companyLabelRx.FindStringIndex(ln)
		if loc == nil {
			continue
		}
		val := collapseWs(ln[loc[1]:])
		if len(val) < 3 && i+1 < len(d.Lines) {
			val = collapseWs(d.Lines[i+1])
		}
		if companyPlausible(val) {
			return val
		}
	}
	return ""
}

func companyFromRaw(d *Document) string {
	m := companyRx.FindStringSubmatch(d.Raw)
	if m == nil {
		return ""
	}
	val := m[1]
	if val == "" {
		val = m[2]
	}
	val = collapseWs(val)
	if companyPlausible(val) {
		return val
	}
	return ""
}

func companyPlausible(val string) bool {
	return val != "" && !companyNoiseRx.MatchString(val) && !urlishRx.MatchString(val)
}

// ContactName resolves the buyer contact and splits it into first token and
// remainder. Inline parenthetical notes and trailing field labels are cut.
func ContactName(d *Document) (first, last string) {
	full := firstOf(d, contactInline, contactNearValidity, contactLeftOfSeller)
	return splitName(full)
}

func contactInline(d *Document) string {
	m := contactInlineRx.FindStringSubmatch(d.Raw)
	if m == nil {
		return ""
	}
	val := m[1]
	if val == "" {
		val = m[2]
	}
	return cleanContact(val)
}

// contactNearValidity handles template revisions where the contact sits in
// a block headed by the quote-validity field.
func contactNearValidity(d *Document) string {
	anchor := -1
	for i, ln := range d.Lines {
		if validityAnchorRx.MatchString(ln) {
			anchor = i
			break
		}
	}
	if anchor == -1 {
		return ""
	}
	hi := anchor + 13
	if hi > len(d.Lines) {
		hi = len(d.Lines)
	}
	for i := anchor + 1; i < hi; i++ {
		loc := contactLabelRx.FindStringIndex(d.Lines[i])
		if loc == nil {
			continue
		}
		val := d.Lines[i][loc[1]:]
		if collapseWs(val) == "" && i+1 < len(d.Lines) {
			val = d.Lines[i+1]
		}
		if v := cleanContact(val); v != "" {
			return v
		}
	}
	return ""
}

// contactLeftOfSeller takes the phrase printed left of the "Vendedor" label
// in collapsed single-line layouts. Weakest strategy: unrelated preceding
// prose can slip through when no stronger anchor exists.
func contactLeftOfSeller(d *Document) string {
	for _, ln := range d.Lines {
		m := sellerLeadRx.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		lead := collapseWs(currencyLabelRx.ReplaceAllString(m[1], " "))
		if plausibleName(lead) {
			return titleCase(lead)
		}
	}
	return ""
}

func cleanContact(val string) string {
	val = contactStopRx.ReplaceAllString(val, "")
	val = collapseWs(val)
	if val == "" {
		return ""
	}
	return titleCase(val)
}

// ReferralManager extracts the signer below the last closing keyword
// ("Atentamente" and equivalents): the longest plausible name phrase in a
// short forward window, bounded by the "visit us" footer line, falling back
// to a short scan above the keyword.
func ReferralManager(d *Document) string {
	anchor := -1
	for i, ln := range d.Lines {
		if signatureAnchorRx.MatchString(ln) {
			anchor = i
		}
	}
	if anchor == -1 {
		return ""
	}

	hi := anchor + 1 + signatureWindow
	if hi > len(d.Lines) {
		hi = len(d.Lines)
	}
	var window []string
	for _, ln := range d.Lines[anchor+1 : hi] {
		if visitStopRx.MatchString(ln) {
			break
		}
		window = append(window, ln)
	}
	if v := bestNamePhrase(window); v != "" {
		return v
	}

	lo := anchor - 3
	if lo < 0 {
		lo = 0
	}
	return bestNamePhrase(d.Lines[lo:anchor])
}

func bestNamePhrase(lines []string) string {
	best := ""
	for _, ln := range lines {
		cand := collapseWs(ln)
		if plausibleName(cand) && len(cand) > len(best) {
			best = cand
		}
	}
	if best == "" {
		return ""
	}
	return titleCase(best)
}

// CityAndPhone resolves the "<city> TEL. <digits>" line, preferring
// occurrences after the Cliente anchor, then anywhere, then a labelled
// phone with no city. Extension suffixes are stripped before formatting.
func CityAndPhone(d *Document) (city, phone string) {
	anchor := 0
	for i, ln := range d.Lines {
		if companyLabelRx.MatchString(ln) {
			anchor = i
			break
		}
	}
	if c, p := cityPhoneIn(d.Lines[anchor:]); p != "" {
		return c, p
	}
	if c, p := cityPhoneIn(d.Lines); p != "" {
		return c, p
	}
	if m := phoneLabelRx.FindStringSubmatch(d.Raw); m != nil {
		return "", FormatPhone(extensionRx.ReplaceAllString(m[1], ""))
	}
	return "", ""
}

func cityPhoneIn(lines []string) (city, phone string) {
	for _, ln := range lines {
		m := cityPhoneRx.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		digits := digitsOnly(extensionRx.ReplaceAllString(m[2], ""))
		if len(digits) < 7 {
			continue
		}
		city = collapseWs(m[1])
		if !letterRx.MatchString(city) {
			city = ""
		}
		return city, FormatPhone(digits)
	}
	return "", ""
}

// CurrencyCode returns the 3-letter code after the "Moneda" label.
func CurrencyCode(d *Document) string {
	m := currencyRx.FindStringSubmatch(d.Raw)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// CountryFromCurrency derives the country: the issuer only quotes domestic
// orders in MXN.
func CountryFromCurrency(code string) string {
	if code == "MXN" {
		return "Mexico"
	}
	return ""
}
