// Package catalog holds the canonical product vocabulary shared by both
// report dialects. Entry order is contractual: the spreadsheet output
// block lists paired products first, in declared order, then the special
// store-only products.
package catalog

// Entry pairs a store-channel product name with its delivery-channel
// (iFood) counterpart. Delivery names carry a trailing " I" in reports.
type Entry struct {
	StoreName    string
	DeliveryName string
}

// Pairs is the ordered list of products sold through both channels.
var Pairs = []Entry{
	{"BOLO AIPIM", "BOLO AIPIM I"},
	{"BOLO AMENDOIM", "BOLO AMENDOIM I"},
	{"BOLO AMENDOIM MINI", "BOLO AMENDOIM MINI I"},
	{"BOLO BANANA AVEIA", "BOLO BANANA AVEIA I"},
	{"BOLO BANANA", "BOLO BANANA I"},
	{"BOLO BANANA MINI", "BOLO BANANA MINI I"},
	{"BOLO BOLO", "BOLO BOLO I"},
	{"BOLO BOLO MINI", "BOLO BOLO MINI I"},
	{"BOLO CACAU INTEGRAL", "BOLO CACAU INTEGRAL I"},
	{"BOLO CENOURA", "BOLO CENOURA I"},
	{"BOLO CENOURA MINI", "BOLO CENOURA MINI I"},
	{"BOLO CENOURA C", "BOLO CENOURA C I"},
	{"BOLO CHOCOLATE", "BOLO CHOCOLATE I"},
	{"BOLO CHOCOLATE MINI", "BOLO CHOCOLATE MINI I"},
	{"BOLO CHOCOLATE C", "BOLO CHOCOLATE C I"},
	{"BOLO CHUVA", "BOLO CHUVA I"},
	{"BOLO CHUVA MINI", "BOLO CHUVA MINI I"},
	{"BOLO COCO", "BOLO COCO I"},
	{"BOLO COCO MINI", "BOLO COCO MINI I"},
	{"BOLO FORMIGUEIRO", "BOLO FORMIGUEIRO I"},
	{"BOLO FORMIGUEIRO MINI", "BOLO FORMIGUEIRO MINI I"},
	{"BOLO FUBÁ", "BOLO FUBÁ I"},
	{"BOLO FUBÁ MINI", "BOLO FUBÁ MINI I"},
	{"BOLO FUBÁ C", "BOLO FUBÁ C I"},
	{"BOLO LARANJA", "BOLO LARANJA I"},
	{"BOLO LARANJA MINI", "BOLO LARANJA MINI I"},
	{"BOLO LARANJA C", "BOLO LARANJA C I"},
	{"BOLO LIMÃO", "BOLO LIMÃO I"},
	{"BOLO LIMÃO MINI", "BOLO LIMÃO MINI I"},
	{"BOLO MESCLADO", "BOLO MESCLADO I"},
	{"BOLO MESCLADO MINI", "BOLO MESCLADO MINI I"},
	{"BOLO MILHO", "BOLO MILHO I"},
	{"BOLO MILHO MINI", "BOLO MILHO MINI I"},
	{"BOLO NOZES", "BOLO NOZES I"},
	{"BOLO NOZES MINI", "BOLO NOZES MINI I"},
}

// Specials are store-only products with no delivery variant, appended to
// the output block after the paired entries.
var Specials = []string{
	"BOLO SF BOLO DE BOLO",
	"BOLO SF CENOURA",
	"BOLO SF CHOCOLATE",
	"BOLO SF NOZES",
	"BOLO AIPIM TABULEIRO",
	"BOLINHO PRESENTE",
}

// StoreNames returns every canonical store-channel name, paired entries
// first, in output order.
func StoreNames() []string {
	names := make([]string, 0, len(Pairs)+len(Specials))
	for _, p := range Pairs {
		names = append(names, p.StoreName)
	}
	names = append(names, Specials...)
	return names
}

// IsStoreName reports whether name is a canonical store-channel product,
// paired or special.
func IsStoreName(name string) bool {
	for _, p := range Pairs {
		if p.StoreName == name {
			return true
		}
	}
	for _, s := range Specials {
		if s == name {
			return true
		}
	}
	return false
}
