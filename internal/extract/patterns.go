package extract

import "regexp"

// Compiled anchors and token patterns for the FINSA quote template family.
// Everything here is immutable after init and safe to share across workers.
var (
	// dd/mm/yyyy anywhere in the document.
	dateRx = regexp.MustCompile(`\b([0-3]\d/[01]\d/\d{4})\b`)

	// Header hint that a quote number is nearby.
	quoteHintRx = regexp.MustCompile(`(?i)\bCotizaci[oó]n\b`)

	// Label-value quote number forms seen across template revisions.
	quoteNumLabelRxs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\bN[uú]mero(?:\s+de\s+cotizaci[oó]n)?|No\.?|N°)\s*:?\s*\n?(\d{4,8})`),
		regexp.MustCompile(`(?i)(\d{4,8})\s*\nN[uú]mero\s*:`),
	}
	bareQuoteNumRx = regexp.MustCompile(`^\d{4,8}$`)

	companyLabelRx = regexp.MustCompile(`(?i)\bCliente\b\s*:?\s*`)
	companyRx      = regexp.MustCompile(`(?i)(?:Cliente\s*:\s*([^\n]+)|Cliente\s*\n([^\n]+))`)

	contactInlineRx   = regexp.MustCompile(`(?i)(?:Contacto\s*:\s*([^\n]+)|AT'N\s*\n([^\n]+))`)
	contactLabelRx    = regexp.MustCompile(`(?i)\bContacto\b\s*:?\s*`)
	validityAnchorRx  = regexp.MustCompile(`(?i)\bVigencia\b`)
	sellerLeadRx      = regexp.MustCompile(`(?i)^(.*?)\bVendedor\s*:`)
	currencyLabelRx   = regexp.MustCompile(`(?i)\bMoneda\s*:?\s*(?:[A-Z]{3})?`)
	phoneLabelRx      = regexp.MustCompile(`(?i)Tel[eé]fono\s*:\s*([^\n]+)`)
	currencyRx        = regexp.MustCompile(`(?i)Moneda\s*:\s*([A-Za-z]{3})`)
	signatureAnchorRx = regexp.MustCompile(`(?i)\b(?:Atentamente|Sincerely|Cordialmente)\b`)
	visitStopRx       = regexp.MustCompile(`(?i)\bVis[ií]t`)

	// Inline tokens that terminate a contact value: the labels that follow
	// the contact field on the same physical line in collapsed layouts.
	contactStopRx = regexp.MustCompile(`(?i)\s*(?:\(|\bd[ií]as\b|\bclasificaci[oó]n\b|\bunidad\b|\bmodelo\b|\bprecio\b|\bimporte\b|\bmoneda\b|\bvendedor\b|\btel[eé]fono\b).*$`)

	// "<city> TEL. 81 8345 6789" with optional extension tail.
	cityPhoneRx = regexp.MustCompile(`(?i)^(.*?)\s*\bTEL(?:S)?(?:[EÉ]FONOS?)?\s*[.:]+\s*(.+)$`)
	extensionRx = regexp.MustCompile(`(?i)\bEXT(?:ENSI[OÓ]N)?\.?\s*:?\s*\d*.*$`)
	nonDigitRx  = regexp.MustCompile(`\D`)

	// Item table region: header row naming the model column plus a
	// quantity/price column, through the first subtotal-like line.
	itemHeaderModelRx = regexp.MustCompile(`(?i)\b(?:MODELO|ART[IÍ]CULO)\b`)
	itemHeaderQtyRx   = regexp.MustCompile(`(?i)\b(?:CANTIDAD|PRECIO|QTY)\b`)
	subtotalRx        = regexp.MustCompile(`(?i)\bSub[\s-]?Total\b`)
	totalRx           = regexp.MustCompile(`(?i)\bTotal\b`)
	totalItemCountRx  = regexp.MustCompile(`(?i)Total\s*de\s*Art`)

	// Monetary literal: leading digits, optional 3-digit groups, and the
	// mandatory 2-digit fraction tail that separates money from bare
	// integers. The head accepts ungrouped runs ("55496.00") as well as
	// grouped ones ("55,496.00"); the issuer prints both.
	moneyRx = regexp.MustCompile(`\b\d+(?:[.,]\d{3})*(?:[.,]\d{2})\b`)

	// Quantity immediately followed by a unit-of-measure token.
	qtyUnitRx  = regexp.MustCompile(`(?i)(?:^|\s)(\d+(?:\.\d{1,2})?)\s+(?:PZA|PZAS|KIT|SET|UND|PCS)\b`)
	plainNumRx = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// Model codes: uppercase alphanumeric with dashes, 6+ chars.
	modelCodeRx = regexp.MustCompile(`([A-Z0-9][A-Z0-9\-]{5,})`)
	// Trailing qty/price columns of a single-row description.
	descTailRx = regexp.MustCompile(`(?i)\s+\d+(?:\.\d{2})?\s*(?:PZA|PZAS|KIT|SET|UND|PCS)?\s*[\d, ]*\.\d{2}.*$`)

	urlishRx  = regexp.MustCompile(`(?i)(?:https?://|www\.|\.com\b|\.mx\b|@)`)
	letterRx  = regexp.MustCompile(`[A-Za-zÁÉÍÓÚÜÑáéíóúüñ]`)
	multiWsRx = regexp.MustCompile(`\s+`)
)

// unitKeywords are the unit-of-measure abbreviations the issuer prints after
// quantities; also used to reject unit tokens misread as model codes.
var unitKeywords = map[string]struct{}{
	"PZA": {}, "PZAS": {}, "KIT": {}, "SET": {}, "UND": {}, "PCS": {},
}

// companyNoiseRx rejects a "Cliente" value that is actually the next
// field's label bleeding into the search window.
var companyNoiseRx = regexp.MustCompile(`(?i)^(?:contacto|vendedor|tel[eé]fono|tels?\.|moneda|fecha|firma|at'n)\b`)

// nameBlacklist rejects footer/boilerplate phrases that superficially look
// like person names around the signature anchor.
var nameBlacklist = []string{
	"www", "http", ".com", "subtotal", "total", "observaciones",
	"terminos", "términos", "telefono", "teléfono", "tel.", "iva",
	"importe", "precio", "moneda", "vendedor", "visite", "email", "@",
}
