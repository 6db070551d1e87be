// Package normalizer collapses the product-name spelling variants found in
// point-of-sale reports to canonical catalog names and classifies each
// canonical name into the closed set of buckets the parsers accumulate.
package normalizer

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/felipedavolta/bolodebolo/internal/domain/report/catalog"
)

// SliceKind identifies one of the four slice counters.
type SliceKind int

const (
	SliceRegular SliceKind = iota // FATIA DE BOLO and its mini/promo variants
	SliceWholeGrain
	SliceCassava
	SliceSquare // QUADRADINHO
)

// CondimentKind identifies one of the five fixed condiment output slots of
// the Kiosk dialect.
type CondimentKind int

const (
	CondimentGanache200 CondimentKind = iota
	CondimentGanache100
	CondimentGanache200Delivery
	CondimentGanache100Delivery
	CondimentBrigadeiro
)

// Class is the tag of a classified product name.
type Class int

const (
	ClassUnrecognized Class = iota
	ClassStoreCake
	ClassDeliveryCake
	ClassSpecial
	ClassCondiment
	ClassSlice
)

// Classification is the closed tagged result of classifying a canonical
// product name. Exactly the fields relevant to its Class are meaningful.
type Classification struct {
	Class     Class
	Name      string
	Slice     SliceKind
	Condiment CondimentKind
}

// Normalize uppercases a raw product name and collapses known spelling
// variants (slice names, the whole-grain banana cake) to canonical form.
func Normalize(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return ""
	}

	switch n {
	case "FATIA DE BOLO", "FATIA MINI", "FATIA PROMO":
		return "FATIA DE BOLO"
	case "FATIA INTEGRAL", "FATIA DE BOLO INTEGRAL", "FATIA BOLO INTEGRAL":
		return "FATIA INTEGRAL"
	case "FATIA AIPIM", "FATIA DE AIPIM", "FATIA DE BOLO DE AIPIM", "FATIA BOLO AIPIM":
		return "FATIA AIPIM"
	case "BOLO INTEGRAL BANANA E AVEIA":
		return "BOLO BANANA AVEIA"
	case "BOLO INTEGRAL BANANA E AVEIA I":
		return "BOLO BANANA AVEIA I"
	}

	if strings.Contains(n, "FATIA") && strings.Contains(n, "BOLO") &&
		!strings.Contains(n, "INTEGRAL") && !strings.Contains(n, "AIPIM") {
		return "FATIA DE BOLO"
	}

	return n
}

// Classify maps a canonical name into the accumulator bucket it belongs
// to. Cake names outside the catalog still classify as cakes (they
// accumulate but never reach an output slot); everything else is
// ClassUnrecognized and must not alter any counter.
func Classify(name string) Classification {
	switch name {
	case "FATIA DE BOLO":
		return Classification{Class: ClassSlice, Name: name, Slice: SliceRegular}
	case "FATIA INTEGRAL":
		return Classification{Class: ClassSlice, Name: name, Slice: SliceWholeGrain}
	case "FATIA AIPIM":
		return Classification{Class: ClassSlice, Name: name, Slice: SliceCassava}
	case "QUADRADINHO":
		return Classification{Class: ClassSlice, Name: name, Slice: SliceSquare}
	case "GANACHE 200G":
		return Classification{Class: ClassCondiment, Name: name, Condiment: CondimentGanache200}
	case "GANACHE 100G":
		return Classification{Class: ClassCondiment, Name: name, Condiment: CondimentGanache100}
	case "GANACHE 200G I":
		return Classification{Class: ClassCondiment, Name: name, Condiment: CondimentGanache200Delivery}
	case "GANACHE 100G I":
		return Classification{Class: ClassCondiment, Name: name, Condiment: CondimentGanache100Delivery}
	case "BRIGADEIRO":
		return Classification{Class: ClassCondiment, Name: name, Condiment: CondimentBrigadeiro}
	}

	for _, s := range catalog.Specials {
		if name == s {
			return Classification{Class: ClassSpecial, Name: name}
		}
	}

	if strings.HasPrefix(name, "BOLO ") {
		if strings.HasSuffix(name, " I") {
			return Classification{Class: ClassDeliveryCake, Name: name}
		}
		return Classification{Class: ClassStoreCake, Name: name}
	}

	return Classification{Class: ClassUnrecognized, Name: name}
}

// NormalizeStoreDialect adjusts Store/iFood-dialect cake names toward the
// catalog: "BOLO SF ..." items are uppercased and bare "SF ..." items gain
// the "BOLO " prefix.
func NormalizeStoreDialect(name string) string {
	name = strings.TrimSpace(name)
	upper := strings.ToUpper(name)
	switch {
	case strings.HasPrefix(upper, "BOLO SF"):
		return upper
	case strings.HasPrefix(upper, "SF"):
		return "BOLO " + upper
	}
	return name
}

// NearestStoreName resolves a name to a canonical catalog store name.
// Exact matches win; otherwise a single-edit Levenshtein match absorbs
// accent and case slips ("BOLO FUBA" -> "BOLO FUBÁ"). Returns "" when
// nothing is close enough.
func NearestStoreName(name string) string {
	if catalog.IsStoreName(name) {
		return name
	}
	best := ""
	bestDist := 2
	for _, candidate := range catalog.StoreNames() {
		d := fuzzy.LevenshteinDistance(name, candidate)
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}
