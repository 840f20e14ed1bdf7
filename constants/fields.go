package constants

// DefaultFields is the canonical output column set, in export order.
// A caller-supplied mapping header replaces it wholesale.
var DefaultFields = []string{
	"ReferralManager", "ReferralEmail", "Brand", "QuoteNumber", "QuoteDate",
	"Company", "FirstName", "LastName", "ContactEmail", "ContactPhone",
	"CurrencyCode", "ContactName", "Country", "manufacturer_Name", "item_id",
	"item_desc", "Quantity", "TotalSales", "PDF", "CustomerNumber",
	"UnitSales", "Unit_Cost", "sales_cost", "cust_type", "QuoteComment",
	"Created_By", "quote_line_no", "DemoQuote",
}

// RequiredFields are flagged during review when blank; extraction itself
// never fails on their absence.
var RequiredFields = []string{"QuoteNumber", "Company", "QuoteDate", "TotalSales"}

// ErrorField carries the per-document error note in the staged payload of
// rows whose parsing failed outright.
const ErrorField = "_ERROR"
