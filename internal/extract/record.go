package extract

import (
	"strings"

	"github.com/mgarciaq/finsa-quotes/constants"
)

// Record is one document's flat output: every schema field mapped to a
// string, "" when not found. Field order is the schema's order.
type Record struct {
	schema []string
	values map[string]string
}

// NewRecord builds a blank record over the given field names.
func NewRecord(schema []string) *Record {
	r := &Record{
		schema: append([]string(nil), schema...),
		values: make(map[string]string, len(schema)),
	}
	for _, f := range r.schema {
		r.values[f] = ""
	}
	return r
}

// Set stores a value for a known field; unknown fields are ignored, so
// extractors stay schema-agnostic.
func (r *Record) Set(field, value string) {
	if _, ok := r.values[field]; ok {
		r.values[field] = value
	}
}

// Get returns a field's value, "" for unknown fields.
func (r *Record) Get(field string) string {
	return r.values[field]
}

// Has reports whether the field is part of the record's schema.
func (r *Record) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Fields returns the field names in schema order.
func (r *Record) Fields() []string {
	return append([]string(nil), r.schema...)
}

// Map returns a copy of the field->value mapping.
func (r *Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Values returns the values in schema order.
func (r *Record) Values() []string {
	out := make([]string, len(r.schema))
	for i, f := range r.schema {
		out[i] = r.values[f]
	}
	return out
}

// DefaultSchema returns the canonical column list.
func DefaultSchema() []string {
	return append([]string(nil), constants.DefaultFields...)
}

// Parse runs every extractor over one document's text and assembles the
// record for the requested schema. It never fails: an empty or unreadable
// blob produces an all-blank record.
func Parse(fileName, raw string, schema []string) *Record {
	if len(schema) == 0 {
		schema = DefaultSchema()
	}
	d := NewDocument(raw)
	rec := NewRecord(schema)

	// An unreadable or empty source still yields one record, but nothing is
	// stamped into it beyond the source name: every extracted field and the
	// constant issuer fields stay blank.
	if len(d.Lines) == 0 {
		rec.Set("PDF", fileName)
		return rec
	}

	qnum := QuoteNumber(d)
	first, last := ContactName(d)
	currency := CurrencyCode(d)
	city, phone := CityAndPhone(d)
	rows := ItemRows(d)
	itemID, itemDesc := itemIdentity(rows)

	rec.Set("ReferralManager", ReferralManager(d))
	rec.Set("Brand", "Finsa")
	rec.Set("QuoteNumber", qnum)
	rec.Set("QuoteDate", QuoteDate(d))
	rec.Set("Company", Company(d))
	rec.Set("FirstName", first)
	rec.Set("LastName", last)
	rec.Set("ContactPhone", phone)
	rec.Set("CurrencyCode", currency)
	rec.Set("ContactName", strings.TrimSpace(first+" "+last))
	rec.Set("Country", CountryFromCurrency(currency))
	rec.Set("City", city)
	rec.Set("manufacturer_Name", "FINSA")
	rec.Set("item_id", itemID)
	rec.Set("item_desc", itemDesc)
	rec.Set("Quantity", QuantityTotal(rows))
	rec.Set("TotalSales", TotalAmount(d))
	rec.Set("PDF", DerivedFileName(qnum, fileName))
	return rec
}

// DerivedFileName names the document's derived artifact: FINSA_<n>.pdf when
// a quote number was found, else the original input name.
func DerivedFileName(quoteNumber, original string) string {
	if quoteNumber != "" {
		return "FINSA_" + quoteNumber + ".pdf"
	}
	return original
}
