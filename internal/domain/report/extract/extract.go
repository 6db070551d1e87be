// Package extract locates numeric values tied to labels and section
// headings inside loosely formatted report text. Reports are formatted for
// print, not for machines: column alignment drifts and section boundaries
// are irregular, so every lookup is a cascade of named strategies combined
// first-success-wins, and every function degrades to 0 instead of failing.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/felipedavolta/bolodebolo/pkg/brl"
)

var (
	numberTokenRe = regexp.MustCompile(`[\d.,]+`)
	pureNumberRe  = regexp.MustCompile(`^[\d.,]+$`)
	trailingNumRe = regexp.MustCompile(`([\d.,]+)$`)
	totalInlineRe = regexp.MustCompile(`(?i)total[\s.:]*[\d.,]+\s*[\d.,]*\s*([\d.,]+)`)
	totalLeadRe   = regexp.MustCompile(`(?i)total[\s.:]*([\d.,]+)`)
	// Section-like lines: uppercase letters and spaces only, e.g. "ARTIGOS FESTA".
	sectionLineRe = regexp.MustCompile(`^[A-ZÁÉÍÓÚÀÂÊÔÃÇ\s]+$`)
)

const lookaheadLines = 3

// headerLine reports whether a line belongs to a tabular header rather
// than data ("Código  Produto  Unidade ...").
func headerLine(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "código") ||
		strings.Contains(l, "produto") ||
		strings.Contains(l, "unidade")
}

func headerOrQtyLine(line string) bool {
	return headerLine(line) || strings.Contains(strings.ToLower(line), "qtd")
}

// sectionBoundary reports whether a line looks like the start of another
// all-caps section.
func sectionBoundary(line string) bool {
	l := strings.ToLower(line)
	return sectionLineRe.MatchString(line) && utf8.RuneCountInString(line) > 5 &&
		!strings.Contains(l, "total") && !strings.Contains(l, "impresso")
}

func lastNumberToken(line string) (string, bool) {
	tokens := numberTokenRe.FindAllString(line, -1)
	if len(tokens) == 0 {
		return "", false
	}
	return tokens[len(tokens)-1], true
}

// lineOutcome is the verdict of one line strategy: a value was found, the
// line should be skipped entirely (tabular header), or try the next
// strategy on the same line.
type lineOutcome int

const (
	outcomeNext lineOutcome = iota
	outcomeFound
	outcomeSkipLine
)

// lineStrategy inspects a single line for a value associated with label.
type lineStrategy func(line, label string) (float64, lineOutcome)

// labelAnchored matches "LABEL - 123,45", "LABEL: 123,45" or "LABEL 123,45"
// at the start of a line, tolerating a parenthetical percentage suffix.
func labelAnchored(line, label string) (float64, lineOutcome) {
	re := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(label) +
		`\s*(?:-|–|:|\s)\s*([\d.,]+(?:\s*\([\d.,%]+\))?)`)
	if m := re.FindStringSubmatch(line); m != nil {
		return brl.ParseValue(m[1]), outcomeFound
	}
	return 0, outcomeNext
}

// labelContained handles lines that merely contain the label. Lines that
// also carry "total" yield the token after it (or the last of three or
// more numeric tokens); tabular header lines are skipped outright;
// otherwise the last positive numeric token wins.
func labelContained(line, label string) (float64, lineOutcome) {
	if !strings.Contains(strings.ToUpper(line), strings.ToUpper(label)) {
		return 0, outcomeNext
	}

	if strings.Contains(strings.ToLower(line), "total") {
		if m := totalInlineRe.FindStringSubmatch(line); m != nil {
			if v := brl.ParseValue(m[1]); v > 0 {
				return v, outcomeFound
			}
		}
		if tokens := numberTokenRe.FindAllString(line, -1); len(tokens) >= 3 {
			if v := brl.ParseValue(tokens[len(tokens)-1]); v > 0 {
				return v, outcomeFound
			}
		}
	}

	if headerLine(line) {
		return 0, outcomeSkipLine
	}

	if tok, ok := lastNumberToken(line); ok {
		if v := brl.ParseValue(tok); v > 0 {
			return v, outcomeFound
		}
	}
	return 0, outcomeNext
}

// labelSpaced matches the label followed by punctuation or spacing and a
// numeric token anywhere in the line.
func labelSpaced(line, label string) (float64, lineOutcome) {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `[\s.\-–]*([\d.,]+)`)
	if m := re.FindStringSubmatch(line); m != nil {
		return brl.ParseValue(m[1]), outcomeFound
	}
	return 0, outcomeNext
}

// lineStrategies is the ordered cascade applied to each line in turn.
var lineStrategies = []lineStrategy{labelAnchored, labelContained, labelSpaced}

// ValueByLabel searches line-split text for the value associated with a
// label. Each line runs the strategy cascade in order; if no line matches,
// a multi-line pass looks for the label on one line and a "total" line or
// a pure-numeric line within the next three. Returns 0 when nothing
// matches.
func ValueByLabel(text, label string) float64 {
	if text == "" || label == "" {
		return 0
	}
	lines := splitLines(text)

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, strat := range lineStrategies {
			v, outcome := strat(line, label)
			if outcome == outcomeFound {
				return v
			}
			if outcome == outcomeSkipLine {
				break
			}
		}
	}

	return valueByLabelLookahead(lines, label)
}

// valueByLabelLookahead is the multi-line strategy: label on one line, the
// value on a "total" or pure-numeric line shortly after.
func valueByLabelLookahead(lines []string, label string) float64 {
	upperLabel := strings.ToUpper(label)
	for i := 0; i < len(lines)-lookaheadLines; i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(strings.ToUpper(line), upperLabel) {
			continue
		}
		for j := i + 1; j <= i+lookaheadLines && j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if strings.Contains(strings.ToLower(next), "total") {
				if m := totalLeadRe.FindStringSubmatch(next); m != nil {
					return brl.ParseValue(m[1])
				}
			}
			if pureNumberRe.MatchString(next) {
				return brl.ParseValue(next)
			}
		}
	}
	return 0
}

// SectionValue finds a line equal (case-insensitively) to sectionName and
// returns the last numeric token of the first "total " line inside the
// section that carries at least three numeric tokens. The scan skips
// tabular header lines and stops at the next section-like line.
func SectionValue(text, sectionName string) float64 {
	lines := splitLines(text)
	inSection := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.EqualFold(line, sectionName) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}

		if headerOrQtyLine(line) {
			continue
		}
		if sectionBoundary(line) {
			break
		}
		if strings.HasPrefix(strings.ToLower(line), "total ") {
			if tokens := numberTokenRe.FindAllString(line, -1); len(tokens) >= 3 {
				return brl.ParseValue(tokens[len(tokens)-1])
			}
			break
		}
	}
	return 0
}

// TotalizadorValue finds a labeled value within the "Totalizadores Gerais"
// block of a Kiosk report. The block ends at the print footer.
func TotalizadorValue(text, itemName string) float64 {
	lines := splitLines(text)
	inBlock := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, "Totalizadores Gerais") {
			inBlock = true
			continue
		}
		if !inBlock {
			continue
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, strings.ToLower(itemName)) {
			if m := trailingNumRe.FindStringSubmatch(line); m != nil {
				return brl.ParseValue(m[1])
			}
			if tok, ok := lastNumberToken(line); ok {
				return brl.ParseValue(tok)
			}
		}
		if strings.Contains(lower, "impresso em") || strings.Contains(lower, "página") {
			break
		}
	}
	return 0
}

// faturamentoScanLimit bounds the forward scan from a category heading to
// its "Total" line.
const faturamentoScanLimit = 15

// CategoryRevenue extracts a Kiosk category's revenue. Strategy one finds
// the exact category heading line and scans forward for a "total " line
// with at least three numeric tokens, stopping early at the next
// section-like line. Strategy two accepts a single line carrying both the
// category and "total".
func CategoryRevenue(text, categoria string) float64 {
	lines := splitLines(text)

	for i := 0; i < len(lines)-1; i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.EqualFold(line, categoria) {
			continue
		}
		limit := i + faturamentoScanLimit
		for j := i + 1; j < len(lines) && j <= limit; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if headerOrQtyLine(next) {
				continue
			}
			if next != line && sectionBoundary(next) {
				break
			}
			if strings.HasPrefix(strings.ToLower(next), "total ") {
				if tokens := numberTokenRe.FindAllString(next, -1); len(tokens) >= 3 {
					if v := brl.ParseValue(tokens[len(tokens)-1]); v > 0 {
						return v
					}
				}
			}
		}
	}

	lowerCat := strings.ToLower(categoria)
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)
		if strings.Contains(lower, lowerCat) && strings.Contains(lower, "total") &&
			!strings.Contains(lower, "código") && !strings.Contains(lower, "produto") {
			if tok, ok := lastNumberToken(line); ok {
				return brl.ParseValue(tok)
			}
		}
	}
	return 0
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
