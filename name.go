package distmeta

import (
	"regexp"
	"strings"
)

var nameSeparatorRE = regexp.MustCompile(`[-_.]+`)

// NormalizeName returns the canonical form of a project name: lowercased,
// with runs of dashes, underscores and dots collapsed to a single dash.
//
// Two names that normalize equal refer to the same project. All matching in
// this package (shadowing, [GetDistribution]) compares normalized names.
func NormalizeName(name string) string {
	return strings.ToLower(nameSeparatorRE.ReplaceAllString(name, "-"))
}
