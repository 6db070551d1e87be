// Package exporter renders a parsed report as an XLSX workbook: one sheet
// with the spreadsheet column ready to paste, one with the dashboard
// numbers.
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/felipedavolta/bolodebolo/internal/domain/report/catalog"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/parser"
)

const (
	blockSheet = "Planilha"
	statsSheet = "Resumo"
)

// Workbook renders res into an in-memory workbook and returns its bytes.
func Workbook(res *parser.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", blockSheet)
	if err := writeBlock(f, res); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, err
	}
	if err := writeStats(f, res); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBlock fills column B with the fixed-position output block and
// column A with the product name each position stands for.
func writeBlock(f *excelize.File, res *parser.Result) error {
	labels := blockLabels()
	for i, value := range res.Lines {
		row := i + 1
		if i < len(labels) {
			if err := f.SetCellValue(blockSheet, fmt.Sprintf("A%d", row), labels[i]); err != nil {
				return err
			}
		}
		if err := f.SetCellValue(blockSheet, fmt.Sprintf("B%d", row), value); err != nil {
			return err
		}
	}
	return f.SetColWidth(blockSheet, "A", "A", 30)
}

func writeStats(f *excelize.File, res *parser.Result) error {
	rows := [][2]any{
		{"Vendas totais", res.Stats.TotalSales},
		{"Bolos loja", res.Stats.BolosLoja},
		{"Bolos iFood", res.Stats.BolosIfood},
		{"Bolos grandes", res.Stats.BolosGrandes},
		{"Bolos mini", res.Stats.BolosMini},
		{"Bolos cobertura", res.Stats.BolosC},
		{"Bolos especiais", res.Stats.BolosEspeciais},
		{"Fatias", res.Stats.TotalFatias},
		{"Valor em bolos", res.Stats.BolosValor},
		{"Faturamento bebidas", res.Stats.Revenue.Bebidas},
		{"Faturamento alimentos", res.Stats.Revenue.Alimentos},
		{"Faturamento bolos", res.Stats.Revenue.Bolos},
		{"Faturamento artigos", res.Stats.Revenue.Artigos},
		{"Faturamento fatias", res.Stats.Revenue.Fatias},
		{"Acréscimos", res.Stats.Revenue.Acrescimo},
		{"Descontos", res.Stats.Revenue.Desconto},
		{"Faturamento total", res.Stats.Revenue.Total},
	}
	if res.Stats.DateRange != nil {
		rows = append(rows,
			[2]any{"Início", res.Stats.DateRange.Start},
			[2]any{"Fim", res.Stats.DateRange.End},
		)
	}
	for i, u := range res.Unrecognized {
		rows = append(rows, [2]any{fmt.Sprintf("Não reconhecido %d", i+1), u})
	}

	for i, r := range rows {
		row := i + 1
		if err := f.SetCellValue(statsSheet, fmt.Sprintf("A%d", row), r[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(statsSheet, fmt.Sprintf("B%d", row), r[1]); err != nil {
			return err
		}
	}
	return f.SetColWidth(statsSheet, "A", "A", 24)
}

// blockLabels names each fixed position of the output block, in order.
func blockLabels() []string {
	labels := make([]string, 0, 64)
	for _, p := range catalog.Pairs {
		labels = append(labels, p.StoreName)
	}
	labels = append(labels, catalog.Specials...)
	labels = append(labels, "",
		"GANACHE 200G", "GANACHE 100G", "GANACHE 200G I", "GANACHE 100G I", "BRIGADEIRO",
		"FATIAS", "FATIA INTEGRAL", "FATIA DE AIPIM", "QUADRADINHO",
		"", "Dia", "",
		"Total", "Bebidas", "Alimentos", "Bolos", "Artigos", "Fatias", "Acréscimos", "Descontos",
	)
	return labels
}
