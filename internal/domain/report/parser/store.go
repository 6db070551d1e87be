package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/felipedavolta/bolodebolo/internal/domain/report/catalog"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/normalizer"
	"github.com/felipedavolta/bolodebolo/pkg/brl"
)

var (
	vendasRe        = regexp.MustCompile(`(?i)Vendas\s*:\s*([\d.,]+)`)
	storeDescontoRe = regexp.MustCompile(`(?i)Desconto\s*:\s*([\d.,]+)`)
	storeAcrescRe   = regexp.MustCompile(`(?i)Acr[ée]scimo\s*:\s*([\d.,]+)`)

	dataInicialRe = regexp.MustCompile(`(?i)Data\s*Inicial[^\n]*\n\s*(\d{1,2}/\d{1,2}/\d{4})`)
	dataFinalRe   = regexp.MustCompile(`(?i)Data\s*Final[^\n]*\n\s*(\d{1,2}/\d{1,2}/\d{4})`)

	// An item is a four-line block: name, quantity (with an optional
	// alternate count that is ignored), unit price, and the line total.
	storeItemRe = regexp.MustCompile(`(?m)^(.*?)\nQuantidade: ([\d,]+)(?:\s*Qtd: ([\d,]+))?\nValor Unitário: [\d,]+\n([\d.,]+)`)

	// A section ends at the next indented heading line.
	storeSectionEndRe = regexp.MustCompile(`^ {1,2}\w`)
)

// storeSectionHeadings maps each accumulator to the indented heading that
// opens its block in the report.
var storeSectionHeadings = map[string]string{
	"bolos":     "BOLO",
	"bolosI":    "BOLOS IFOOD",
	"fatias":    "FATIA DE BOLO",
	"alimentos": "ALIMENTOS",
	"bebidas":   "BEBIDAS",
	"artigos":   "ARTIGOS DE FESTA",
}

// caldaSlots is the fixed condiment output order of the Store dialect.
var caldaSlots = []string{
	"CALDA POTE 200g",
	"CALDA POTE 100G",
	"CALDA POTE 200g I",
	"CALDA POTE 100G I",
	"BRIGADEIRO DE COLHER",
}

type storeItem struct {
	name     string
	quantity float64
	value    float64
}

type cakeTally struct {
	qty   float64
	value float64
}

// ParseStoreReport parses a Store/iFood report. The report must carry
// either a "Vendas:" summary or at least one priced item block; otherwise
// ErrMissingTotals is returned.
func ParseStoreReport(text string, now func() time.Time) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("erro ao processar relatório: %v", r)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	vendasMatch := vendasRe.FindStringSubmatch(text)
	if vendasMatch == nil && !strings.Contains(text, "Valor Unitário:") {
		return nil, ErrMissingTotals
	}

	var vendas, desconto, acrescimo float64
	if vendasMatch != nil {
		vendas = brl.ParseValue(vendasMatch[1])
	}
	if m := storeDescontoRe.FindStringSubmatch(text); m != nil {
		desconto = brl.ParseValue(m[1])
	}
	if m := storeAcrescRe.FindStringSubmatch(text); m != nil {
		acrescimo = brl.ParseValue(m[1])
	}

	dateStart, dateEnd, day := storeDates(text, now)

	sections := make(map[string][]storeItem, len(storeSectionHeadings))
	for key, heading := range storeSectionHeadings {
		sections[key] = parseStoreItems(storeSectionBody(text, heading))
	}

	cakes := make(map[string]*cakeTally, len(catalog.Pairs)+len(catalog.Specials))
	for _, pair := range catalog.Pairs {
		cakes[pair.StoreName] = &cakeTally{}
	}
	for _, special := range catalog.Specials {
		cakes[special] = &cakeTally{}
	}

	var unrecognized []string
	noticed := make(map[string]bool)
	notice := func(name string) {
		if !noticed[name] {
			noticed[name] = true
			unrecognized = append(unrecognized, name)
		}
	}

	// Store-channel quantities replace, delivery quantities add onto the
	// same cake after stripping the delivery suffix.
	for _, item := range sections["bolos"] {
		name := normalizer.NormalizeStoreDialect(item.name)
		tally, ok := cakes[name]
		if !ok {
			if nearest := normalizer.NearestStoreName(name); nearest != "" {
				tally, ok = cakes[nearest]
			}
		}
		if !ok {
			notice(name)
			continue
		}
		tally.qty = item.quantity
		tally.value = item.value
	}
	for _, item := range sections["bolosI"] {
		name := strings.TrimSuffix(strings.TrimSpace(item.name), " I")
		tally, ok := cakes[name]
		if !ok {
			if nearest := normalizer.NearestStoreName(name); nearest != "" {
				tally, ok = cakes[nearest]
			}
		}
		if !ok {
			notice(item.name)
			continue
		}
		tally.qty += item.quantity
		tally.value += item.value
	}

	caldas := make(map[string]float64, len(caldaSlots))
	for _, item := range sections["alimentos"] {
		name := strings.TrimSpace(item.name)
		for _, slot := range caldaSlots {
			if name == slot {
				caldas[slot] = item.quantity
				break
			}
		}
	}

	var fatiaTotal float64
	for _, item := range sections["fatias"] {
		switch item.name {
		case "FATIA DE BOLO", "FATIA PROMO", "FATIA MINI":
			fatiaTotal += item.quantity
		}
	}
	fatiaExact := func(name string) float64 {
		for _, item := range sections["fatias"] {
			if item.name == name {
				return item.quantity
			}
		}
		return 0
	}

	var bolosValor float64
	for _, tally := range cakes {
		bolosValor += tally.value
	}

	rev := Revenue{
		Bebidas:   storeSectionRevenue(text, "BEBIDAS"),
		Alimentos: storeSectionRevenue(text, "ALIMENTOS"),
		Bolos:     storeSectionRevenue(text, "BOLO") + storeSectionRevenue(text, "BOLOS IFOOD"),
		Artigos:   storeSectionRevenue(text, "ARTIGOS DE FESTA"),
		Fatias:    storeSectionRevenue(text, "FATIA DE BOLO"),
		Acrescimo: acrescimo,
		Desconto:  -desconto,
	}
	rev.Total = brl.SumAmounts(rev.Bebidas, rev.Alimentos, rev.Bolos, rev.Artigos,
		rev.Fatias, rev.Acrescimo, rev.Desconto)

	lines := make([]string, 0, len(catalog.Pairs)+len(catalog.Specials)+17)
	for _, pair := range catalog.Pairs {
		lines = append(lines, brl.FormatQuantity(cakes[pair.StoreName].qty))
	}
	for _, special := range catalog.Specials {
		lines = append(lines, brl.FormatQuantity(cakes[special].qty))
	}
	lines = append(lines, "")
	for _, slot := range caldaSlots {
		lines = append(lines, brl.FormatQuantity(caldas[slot]))
	}
	lines = append(lines,
		brl.FormatQuantity(fatiaTotal),
		brl.FormatQuantity(fatiaExact("FATIA INTEGRAL")),
		brl.FormatQuantity(fatiaExact("FATIA DE AIPIM")),
		brl.FormatQuantity(fatiaExact("QUADRADINHO")),
	)
	lines = append(lines, "", day, "")
	lines = append(lines,
		brl.FormatAmount(rev.Total),
		brl.FormatAmount(rev.Bebidas),
		brl.FormatAmount(rev.Alimentos),
		brl.FormatAmount(rev.Bolos),
		brl.FormatAmount(rev.Artigos),
		brl.FormatAmount(rev.Fatias),
		brl.FormatAmount(rev.Acrescimo),
		brl.FormatAmount(rev.Desconto),
	)

	var dateRange *DateRange
	if dateStart != "" && dateEnd != "" {
		dateRange = &DateRange{Start: dateStart, End: dateEnd}
	}

	return &Result{
		Lines: lines,
		Stats: Stats{
			TotalSales: vendas,
			BolosValor: bolosValor,
			DateRange:  dateRange,
			Revenue:    rev,
		},
		Unrecognized: unrecognized,
	}, nil
}

// storeDates extracts the filter dates printed under "Data Inicial" and
// "Data Final". The day of month prefers the final date, then the initial
// one, then today.
func storeDates(text string, now func() time.Time) (start, end, day string) {
	var di, df string
	if m := dataInicialRe.FindStringSubmatch(text); m != nil {
		di = m[1]
	}
	if m := dataFinalRe.FindStringSubmatch(text); m != nil {
		df = m[1]
	}
	start = brl.ToISODate(di)
	end = brl.ToISODate(df)
	switch {
	case df != "":
		day = brl.DayOfMonth(df)
	case di != "":
		day = brl.DayOfMonth(di)
	default:
		day = brl.CurrentDay(now)
	}
	return start, end, day
}

// storeSectionBody returns the lines between an indented heading and the
// next indented heading.
func storeSectionBody(text, heading string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var body []string
	inSection := false
	for _, line := range lines {
		if !inSection {
			if strings.HasPrefix(line, " ") && strings.TrimSpace(line) == heading {
				inSection = true
			}
			continue
		}
		if storeSectionEndRe.MatchString(line) {
			break
		}
		body = append(body, line)
	}
	return strings.Join(body, "\n")
}

// storeSectionRevenue reads the section total: the numeric line printed
// directly under the heading.
func storeSectionRevenue(text, heading string) float64 {
	body := storeSectionBody(text, heading)
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if pureNumberLine(trimmed) {
			return brl.ParseValue(trimmed)
		}
		return 0
	}
	return 0
}

var pureNumberLineRe = regexp.MustCompile(`^[\d.,]+$`)

func pureNumberLine(s string) bool {
	return pureNumberLineRe.MatchString(s)
}

func parseStoreItems(body string) []storeItem {
	if body == "" {
		return nil
	}
	var items []storeItem
	for _, m := range storeItemRe.FindAllStringSubmatch(body, -1) {
		items = append(items, storeItem{
			name:     strings.TrimSpace(m[1]),
			quantity: brl.ParseValue(m[2]),
			value:    brl.ParseValue(m[4]),
		})
	}
	return items
}
