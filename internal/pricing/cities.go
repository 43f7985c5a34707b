package pricing

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// The capital and the largest city are always offered first in selection
// UIs, in this fixed order, regardless of where they sit in the rate table.
var primaryCities = [2]string{"Астана", "Алматы"}

// OrderCities returns the city list in presentation order: the two primary
// cities first, then every remaining city sorted with Russian collation.
// Duplicates are dropped. Downstream selection UIs depend on this ordering
// being stable, so it is part of the contract rather than a UI nicety.
func OrderCities(cities []string) []string {
	isPrimary := map[string]bool{primaryCities[0]: true, primaryCities[1]: true}

	seen := make(map[string]bool, len(cities))
	rest := make([]string, 0, len(cities))
	for _, c := range cities {
		if c == "" || isPrimary[c] || seen[c] {
			continue
		}
		seen[c] = true
		rest = append(rest, c)
	}

	collate.New(language.Russian).SortStrings(rest)

	out := make([]string, 0, len(rest)+2)
	out = append(out, primaryCities[0], primaryCities[1])
	return append(out, rest...)
}
