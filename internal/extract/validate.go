package extract

import (
	"fmt"
	"strings"

	"github.com/mgarciaq/finsa-quotes/constants"
)

// Review flags required fields that came back blank. Warnings only: a
// missing field never fails the extraction call, the caller decides whether
// to surface or ignore them. Required fields the caller's mapping excludes
// are not reviewed, so a restricted schema never reports columns it was
// never asked to produce.
func Review(rec *Record) []string {
	var problems []string
	for _, field := range constants.RequiredFields {
		if !rec.Has(field) {
			continue
		}
		if strings.TrimSpace(rec.Get(field)) == "" {
			problems = append(problems, fmt.Sprintf("missing %q", field))
		}
	}
	return problems
}
