package parser

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/felipedavolta/bolodebolo/internal/domain/report/catalog"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/extract"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/normalizer"
	"github.com/felipedavolta/bolodebolo/pkg/brl"
)

var (
	kioskDateRe = regexp.MustCompile(
		`(?i)Data:\s*(\d{1,2}/\d{1,2}/\d{4})\s*-\s*\d{2}:\d{2}:\d{2}\s*à\s*(\d{1,2}/\d{1,2}/\d{4})\s*-\s*\d{2}:\d{2}:\d{2}`)

	surchargeBlockRe = regexp.MustCompile(
		`(?is)Acréscimos e Descontos(.*?)(?:Total da Operação|Total Geral|Nome Fantasia|$)`)
	surchargeBlockAltRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)Acréscimos(.*?)(?:Total|Nome Fantasia|$)`),
		regexp.MustCompile(`(?is)Descontos(.*?)(?:Total|Nome Fantasia|$)`),
	}

	surchargeValueRe = regexp.MustCompile(`(?i)Valor\s+total\s+de\s+acr[ée]scimo\s+de\s+pedidos[^\d]+([\d.,]+)`)
	discountValueRe  = regexp.MustCompile(`(?i)Valor\s+total\s+de\s+desconto\s+de\s+pedidos[^\d]+([\d.,]+)`)

	totalGeralLooseRe  = regexp.MustCompile(`(?i)Total\s+Geral\s*[:\-]?\s*([\d.,]+)`)
	totalGeralStrictRe = regexp.MustCompile(`(?i)Total\s+Geral[^\d]+((?:\d{1,3}\.)*\d{1,3},\d{2})`)

	numericTokenOnlyRe = regexp.MustCompile(`^\d+[,.]?\d*$`)
	digitsOnlyRe       = regexp.MustCompile(`^\d+$`)
)

// kioskSectionPrefixes start a new section when a line begins with one of
// them. Order matters: "BOLOS IFOOD" must win over "BOLOS".
var kioskSectionPrefixes = []string{
	"PRODUTOS VENDIDOS", "ALIMENTOS", "BEBIDAS", "BOLOS IFOOD", "BOLOS", "FATIA", "ARTIGOS",
}

// kioskState holds the accumulators for a single Kiosk parse. Each call to
// ProcessSalesReport builds a fresh one.
type kioskState struct {
	store    map[string]float64
	delivery map[string]float64

	slices     [4]float64
	condiments [5]float64

	bebidas, alimentos, bolos, artigos, fatias float64
	acrescimo, desconto, totalGeral            float64

	dateStart, dateEnd, day string

	unrecognized []string
	noticed      map[string]bool
}

func newKioskState() *kioskState {
	return &kioskState{
		store:    make(map[string]float64),
		delivery: make(map[string]float64),
		noticed:  make(map[string]bool),
	}
}

// ProcessSalesReport parses a Kiosk/Mall report. Per-field extraction
// degrades to zero; only an unexpected internal failure aborts, surfaced
// as a wrapped error.
func ProcessSalesReport(text string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("erro ao processar relatório: %v", r)
		}
	}()

	st := newKioskState()
	st.extractDates(text)
	st.extractRevenues(text)
	st.extractSurchargeDiscount(text)
	st.extractTotalGeral(text)

	for _, section := range splitKioskSections(text) {
		st.processSectionRows(section)
	}

	return &Result{
		Lines:        st.assembleOutput(),
		Stats:        st.stats(),
		Unrecognized: st.unrecognized,
	}, nil
}

// extractDates pulls the header date range. Malformed dates degrade to
// empty values, never abort.
func (st *kioskState) extractDates(text string) {
	m := kioskDateRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	st.dateStart = brl.ToISODate(m[1])
	st.dateEnd = brl.ToISODate(m[2])
	if day := brl.DayOfMonth(m[2]); day != "" {
		st.day = day
	} else if day := brl.DayOfMonth(m[1]); day != "" {
		st.day = day
	}
}

// surchargeBlock isolates the "Acréscimos e Descontos" section, trying the
// primary anchor, then the alternatives, then falling back to the whole
// report.
func surchargeBlock(text string) string {
	if m := surchargeBlockRe.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1])
	}
	for _, re := range surchargeBlockAltRes {
		if m := re.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return text
}

// extractRevenues runs the three escalating tiers of category revenue
// extraction: the dedicated category scanner, then section totals, then
// label search over spelling variants.
func (st *kioskState) extractRevenues(text string) {
	st.bebidas = firstNonZero(
		extract.CategoryRevenue(text, "BEBIDAS"),
		extract.CategoryRevenue(text, "BEBIDA"))
	st.alimentos = firstNonZero(
		extract.CategoryRevenue(text, "ALIMENTOS"),
		extract.CategoryRevenue(text, "ALIMENTO"))
	bolosLoja := extract.CategoryRevenue(text, "BOLOS")
	bolosIfood := firstNonZero(
		extract.CategoryRevenue(text, "BOLOS IFOOD"),
		extract.CategoryRevenue(text, "BOLOS I"))
	st.bolos = bolosLoja + bolosIfood
	st.artigos = firstNonZero(
		extract.CategoryRevenue(text, "ARTIGOS FESTA"),
		extract.CategoryRevenue(text, "ARTIGOS DE FESTA"))
	st.fatias = firstNonZero(
		extract.CategoryRevenue(text, "FATIAS"),
		extract.CategoryRevenue(text, "FATIA"))

	if st.bebidas == 0 && st.alimentos == 0 && st.bolos == 0 {
		st.bebidas = extract.SectionValue(text, "BEBIDAS")
		st.alimentos = extract.SectionValue(text, "ALIMENTOS")
		st.bolos = extract.SectionValue(text, "BOLOS") + extract.SectionValue(text, "BOLOS IFOOD")
		st.artigos = firstNonZero(
			extract.SectionValue(text, "ARTIGOS FESTA"),
			extract.SectionValue(text, "ARTIGOS DE FESTA"))
		st.fatias = firstNonZero(
			extract.SectionValue(text, "FATIA"),
			extract.SectionValue(text, "FATIAS"))
	}

	if st.bebidas == 0 && st.alimentos == 0 && st.bolos == 0 {
		st.extractRevenuesByLabel(text)
	}
}

// categoryLabelVariants lists the case and accent spellings tried by the
// last-resort label tier, per category.
var categoryLabelVariants = []struct {
	apply    func(st *kioskState, v float64)
	variants []string
}{
	{func(st *kioskState, v float64) {
		if st.bebidas == 0 {
			st.bebidas = v
		}
	}, []string{"BEBIDAS", "BEBIDA", "Bebidas", "Bebida"}},
	{func(st *kioskState, v float64) {
		if st.alimentos == 0 {
			st.alimentos = v
		}
	}, []string{"ALIMENTOS", "ALIMENTO", "Alimentos", "Alimento"}},
	// Store and delivery cake revenues add up; this tier only runs when
	// the cake total is still zero.
	{func(st *kioskState, v float64) { st.bolos += v }, []string{"BOLOS", "BOLO", "Bolos", "Bolo"}},
	{func(st *kioskState, v float64) { st.bolos += v }, []string{"BOLOS IFOOD", "BOLO IFOOD", "BOLOS I", "BOLO I"}},
	{func(st *kioskState, v float64) {
		if st.artigos == 0 {
			st.artigos = v
		}
	}, []string{"ARTIGOS FESTA", "ARTIGOS DE FESTA", "ARTIGO FESTA", "ARTIGO DE FESTA"}},
	{func(st *kioskState, v float64) {
		if st.fatias == 0 {
			st.fatias = v
		}
	}, []string{"FATIAS", "FATIA", "Fatias", "Fatia"}},
}

func (st *kioskState) extractRevenuesByLabel(text string) {
	for _, category := range categoryLabelVariants {
		var value float64
		for _, variant := range category.variants {
			if value = extract.ValueByLabel(text, variant); value > 0 {
				break
			}
		}
		category.apply(st, value)
	}
}

// extractSurchargeDiscount reads the order surcharge and discount amounts
// from their anchored phrases, falling back to label variants within the
// surcharges/discounts block.
func (st *kioskState) extractSurchargeDiscount(text string) {
	if m := surchargeValueRe.FindStringSubmatch(text); m != nil {
		st.acrescimo = brl.ParseValue(m[1])
	}
	if m := discountValueRe.FindStringSubmatch(text); m != nil {
		st.desconto = brl.ParseValue(m[1])
	}
	if st.acrescimo != 0 || st.desconto != 0 {
		return
	}

	block := surchargeBlock(text)
	for _, variant := range []string{"ACRÉSCIMO", "ACRESCIMO", "Total de Acréscimos", "Acréscimos", "acréscimo", "acrescimo"} {
		if v := extract.ValueByLabel(block, variant); v > 0 {
			st.acrescimo = v
			break
		}
	}
	for _, variant := range []string{"DESCONTO", "Total de Descontos", "Descontos", "desconto"} {
		if v := extract.ValueByLabel(block, variant); v > 0 {
			st.desconto = v
			break
		}
	}
}

// extractTotalGeral resolves the grand total through its fallback chain; a
// strict thousands-grouped match overrides the permissive ones when
// present, and the "Valor total de produtos vendidos" line is the last
// resort.
func (st *kioskState) extractTotalGeral(text string) {
	st.totalGeral = firstNonZero(
		extract.TotalizadorValue(text, "Total Geral"),
		totalGeralLoose(text),
		extract.TotalizadorValue(text, "total de produtos vendidos"),
		extract.ValueByLabel(text, "Total Geral"))

	if m := totalGeralStrictRe.FindStringSubmatch(text); m != nil {
		if v := brl.ParseValue(m[1]); v > 0 {
			st.totalGeral = v
		}
	}

	if st.totalGeral == 0 {
		for _, line := range strings.Split(text, "\n") {
			if strings.Contains(line, "Valor total de produtos vendidos") {
				fields := strings.Fields(strings.TrimSpace(line))
				if len(fields) > 0 {
					st.totalGeral = brl.ParseValue(fields[len(fields)-1])
				}
				break
			}
		}
	}
}

func totalGeralLoose(text string) float64 {
	if m := totalGeralLooseRe.FindStringSubmatch(text); m != nil {
		return brl.ParseValue(m[1])
	}
	return 0
}

// splitKioskSections splits the report on lines that start a known
// category keyword. The leading chunk (report header plus its product
// table) is a section like any other.
func splitKioskSections(text string) [][]string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var sections [][]string
	current := []string{}

	for _, line := range lines {
		if startsKioskSection(strings.TrimSpace(line)) && len(current) > 0 {
			sections = append(sections, current)
			current = []string{}
		}
		current = append(current, line)
	}
	sections = append(sections, current)
	return sections
}

func startsKioskSection(trimmed string) bool {
	for _, prefix := range kioskSectionPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// processSectionRows feeds every tabular product row of a section into the
// accumulators. Rows start with a numeric product code and carry at least
// five whitespace-separated tokens.
func (st *kioskState) processSectionRows(lines []string) {
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "Impresso em") || strings.Contains(line, "Código Produto") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 5 && digitsOnlyRe.MatchString(parts[0]) {
			st.processProductRow(parts)
		}
	}
}

// processProductRow parses one tabular row: name tokens before the "UNID"
// marker (numeric tokens skipped), quantity and total value after it. The
// quantity prefers a "Qtd:"-prefixed token; otherwise it is the
// second-to-last token, with the total value last.
func (st *kioskState) processProductRow(parts []string) {
	var nameParts []string
	unitIdx := -1
	for i, p := range parts {
		if strings.ToUpper(p) == "UNID" {
			unitIdx = i
			break
		}
		if numericTokenOnlyRe.MatchString(p) {
			continue
		}
		nameParts = append(nameParts, p)
	}

	name := normalizer.Normalize(strings.Join(nameParts, " "))
	if name == "" {
		return
	}

	var quantity float64
	valueData := parts
	if unitIdx >= 0 {
		valueData = parts[unitIdx+1:]
	}
	if len(valueData) >= 2 {
		qtdIdx := -1
		for i, v := range valueData {
			if strings.HasPrefix(v, "Qtd:") {
				qtdIdx = i
				break
			}
		}
		if qtdIdx >= 0 {
			quantity = brl.ParseValue(strings.TrimPrefix(valueData[qtdIdx], "Qtd:"))
		} else {
			quantity = brl.ParseValue(valueData[len(valueData)-2])
		}
	}

	st.accumulate(name, quantity)
}

func (st *kioskState) accumulate(name string, quantity float64) {
	c := normalizer.Classify(name)
	switch c.Class {
	case normalizer.ClassSlice:
		st.slices[c.Slice] += quantity
	case normalizer.ClassCondiment:
		st.condiments[c.Condiment] += quantity
	case normalizer.ClassSpecial:
		st.store[name] += quantity
	case normalizer.ClassStoreCake:
		st.store[name] += quantity
		if !catalogStoreCake(name) {
			st.notice(name)
		}
	case normalizer.ClassDeliveryCake:
		st.delivery[name] += quantity
		if !catalogDeliveryCake(name) {
			st.notice(name)
		}
	default:
		st.notice(name)
	}
}

func (st *kioskState) notice(name string) {
	if st.noticed[name] {
		return
	}
	st.noticed[name] = true
	st.unrecognized = append(st.unrecognized, name)
}

func catalogStoreCake(name string) bool {
	return catalog.IsStoreName(name)
}

func catalogDeliveryCake(name string) bool {
	for _, p := range catalog.Pairs {
		if p.DeliveryName == name {
			return true
		}
	}
	return false
}

// assembleOutput builds the fixed-position block: catalog-order combined
// quantities, special products, condiments, slice counters, the report
// day, then the revenue breakdown. Every position holds a string.
func (st *kioskState) assembleOutput() []string {
	lines := make([]string, 0, len(catalog.Pairs)+len(catalog.Specials)+17)

	for _, pair := range catalog.Pairs {
		lines = append(lines, brl.FormatQuantity(st.store[pair.StoreName]+st.delivery[pair.DeliveryName]))
	}
	for _, special := range catalog.Specials {
		lines = append(lines, brl.FormatQuantity(st.store[special]))
	}

	lines = append(lines, "")
	for _, q := range st.condiments {
		lines = append(lines, brl.FormatQuantity(q))
	}
	for _, q := range st.slices {
		lines = append(lines, brl.FormatQuantity(q))
	}

	lines = append(lines, "", st.day, "")

	total := st.totalGeral
	if total <= 0 {
		total = st.computedTotal()
	}
	lines = append(lines,
		brl.FormatAmount(total),
		brl.FormatAmount(st.bebidas),
		brl.FormatAmount(st.alimentos),
		brl.FormatAmount(st.bolos),
		brl.FormatAmount(st.artigos),
		brl.FormatAmount(st.fatias),
		brl.FormatAmount(st.acrescimo),
		brl.FormatAmount(-math.Abs(st.desconto)),
	)
	return lines
}

func (st *kioskState) computedTotal() float64 {
	return brl.SumAmounts(st.bebidas, st.alimentos, st.bolos, st.artigos, st.fatias,
		st.acrescimo, -math.Abs(st.desconto))
}

func (st *kioskState) stats() Stats {
	var loja, ifood float64
	for _, pair := range catalog.Pairs {
		loja += st.store[pair.StoreName]
		ifood += st.delivery[pair.DeliveryName]
	}
	for _, special := range catalog.Specials {
		loja += st.store[special]
	}

	var grandes, mini, cVariant, especiais float64
	for name, qty := range st.store {
		switch {
		case strings.Contains(name, "SF") || strings.Contains(name, "TABULEIRO"):
			especiais += qty
		case strings.Contains(name, "MINI"):
			mini += qty
		case strings.Contains(name, " C"):
			cVariant += qty
		default:
			grandes += qty
		}
	}

	var dateRange *DateRange
	if st.dateStart != "" && st.dateEnd != "" {
		dateRange = &DateRange{Start: st.dateStart, End: st.dateEnd}
	}

	total := st.totalGeral
	if total <= 0 {
		total = st.computedTotal()
	}

	return Stats{
		TotalSales:     total,
		BolosLoja:      loja,
		BolosIfood:     ifood,
		BolosGrandes:   grandes,
		BolosMini:      mini,
		BolosC:         cVariant,
		BolosEspeciais: especiais,
		TotalFatias:    st.slices[0] + st.slices[1] + st.slices[2] + st.slices[3],
		DateRange:      dateRange,
		Revenue: Revenue{
			Total:     total,
			Bebidas:   st.bebidas,
			Alimentos: st.alimentos,
			Bolos:     st.bolos,
			Artigos:   st.artigos,
			Fatias:    st.fatias,
			Acrescimo: st.acrescimo,
			Desconto:  -math.Abs(st.desconto),
		},
	}
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
