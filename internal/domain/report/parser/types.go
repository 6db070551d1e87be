// Package parser implements the two report-dialect pipelines: the
// Kiosk/Mall export (ProcessSalesReport) and the Store/iFood export
// (ParseStoreReport). Both are pure functions from report text to a
// fixed-position output block plus dashboard stats; all per-call state is
// local, so concurrent parses never interfere.
package parser

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyInput is returned when the report text is blank.
	ErrEmptyInput = errors.New("relatório vazio")

	// ErrMissingTotals is returned by the Store parser when neither a
	// "Vendas:" total nor any "Valor Unitário:" item marker exists.
	ErrMissingTotals = errors.New("não foi possível encontrar os dados do relatório (Vendas ou Itens)")
)

// Revenue is the categorized revenue breakdown shared by both dialects.
// Desconto always carries the sign-normalized (non-positive) value.
type Revenue struct {
	Total     float64 `json:"total"`
	Bebidas   float64 `json:"bebidas"`
	Alimentos float64 `json:"alimentos"`
	Bolos     float64 `json:"bolos"`
	Artigos   float64 `json:"artigos"`
	Fatias    float64 `json:"fatias"`
	Acrescimo float64 `json:"acrescimo"`
	Desconto  float64 `json:"desconto"`
}

// DateRange is the report's header date span in ISO form.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Stats is the dashboard summary. Quantity fields are float64 because
// weighed products report fractional quantities.
type Stats struct {
	TotalSales     float64    `json:"total_sales"`
	BolosLoja      float64    `json:"bolos_loja"`
	BolosIfood     float64    `json:"bolos_ifood"`
	BolosGrandes   float64    `json:"bolos_grandes"`
	BolosMini      float64    `json:"bolos_mini"`
	BolosC         float64    `json:"bolos_c"`
	BolosEspeciais float64    `json:"bolos_especiais"`
	TotalFatias    float64    `json:"total_fatias"`
	BolosValor     float64    `json:"bolos_valor"`
	DateRange      *DateRange `json:"date_range,omitempty"`
	Revenue        Revenue    `json:"revenue"`
}

// Result is a parsed report: the fixed-position output block, the stats
// record, and any product names the catalog does not know (surfaced so
// the caller can report new items; they never alter a counter).
type Result struct {
	Lines        []string `json:"lines"`
	Stats        Stats    `json:"stats"`
	Unrecognized []string `json:"unrecognized,omitempty"`
}

// Output renders the block ready for spreadsheet pasting. Every position
// holds a string; blank separator rows are intentional.
func (r *Result) Output() string {
	return strings.Join(r.Lines, "\n")
}
