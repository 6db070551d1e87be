package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipedavolta/bolodebolo/internal/domain/report/catalog"
)

const kioskSample = `Relatório Gerencial
Data: 01/03/2024 - 00:00:00 à 05/03/2024 - 23:59:59
Página 1 de 2

PRODUTOS VENDIDOS
Código Produto Unidade Qtd Valor
101 BOLO AIPIM UNID 2 90,00
102 BOLO CENOURA UNID Qtd:3 135,00
110 BOLO AIPIM I UNID 1 45,00
111 FATIA DE BOLO UNID 4 48,00
112 GANACHE 200G UNID 2 30,00
113 BOLO FOFO UNID 1 40,00

BEBIDAS
Código Produto Unidade Qtd Valor
201 SUCO LARANJA UNID 2 16,00
Total 1 2 16,00

ALIMENTOS
Código Produto Unidade Qtd Valor
Total 0 0 120,50

BOLOS
Código Produto Unidade Qtd Valor
Total 2 5 225,00

BOLOS IFOOD
Código Produto Unidade Qtd Valor
Total 1 1 45,00

ARTIGOS FESTA
Total 1 1 10,00

FATIAS
Total 1 4 48,00

Acréscimos e Descontos
Valor total de acréscimo de pedidos: 12,00
Valor total de desconto de pedidos: 5,50
Total da Operação

Totalizadores Gerais
Total Geral 459,00
Impresso em 06/03/2024
`

// Fixed positions inside the output block, counted from zero.
const (
	posBlank1    = len35pairs + 6 // after pairs and specials
	len35pairs   = 35
	posDay       = posBlank1 + 1 + 5 + 4 + 1
	posTotal     = posDay + 2
	posBebidas   = posTotal + 1
	posAlimentos = posTotal + 2
	posBolos     = posTotal + 3
	posArtigos   = posTotal + 4
	posFatias    = posTotal + 5
	posAcrescimo = posTotal + 6
	posDesconto  = posTotal + 7
)

func pairIndex(t *testing.T, storeName string) int {
	t.Helper()
	for i, p := range catalog.Pairs {
		if p.StoreName == storeName {
			return i
		}
	}
	t.Fatalf("produto %q fora do catálogo", storeName)
	return -1
}

func TestProcessSalesReport(t *testing.T) {
	res, err := ProcessSalesReport(kioskSample)
	require.NoError(t, err)
	require.Len(t, res.Lines, posDesconto+1)

	t.Run("quantidades combinam loja e delivery", func(t *testing.T) {
		assert.Equal(t, "3", res.Lines[pairIndex(t, "BOLO AIPIM")])
		assert.Equal(t, "3", res.Lines[pairIndex(t, "BOLO CENOURA")])
		assert.Equal(t, "0", res.Lines[pairIndex(t, "BOLO NOZES")])
	})

	t.Run("condimentos e fatias", func(t *testing.T) {
		assert.Equal(t, "2", res.Lines[posBlank1+1]) // GANACHE 200G
		assert.Equal(t, "0", res.Lines[posBlank1+2])
		assert.Equal(t, "4", res.Lines[posBlank1+6]) // FATIA DE BOLO
		assert.Equal(t, "0", res.Lines[posBlank1+9]) // QUADRADINHO
	})

	t.Run("dia do relatório vem da data final", func(t *testing.T) {
		assert.Equal(t, "5", res.Lines[posDay])
	})

	t.Run("faturamento por categoria", func(t *testing.T) {
		assert.Equal(t, "459.00", res.Lines[posTotal])
		assert.Equal(t, "16.00", res.Lines[posBebidas])
		assert.Equal(t, "120.50", res.Lines[posAlimentos])
		assert.Equal(t, "270.00", res.Lines[posBolos])
		assert.Equal(t, "10.00", res.Lines[posArtigos])
		assert.Equal(t, "48.00", res.Lines[posFatias])
		assert.Equal(t, "12.00", res.Lines[posAcrescimo])
		assert.Equal(t, "-5.50", res.Lines[posDesconto])
	})

	t.Run("estatísticas", func(t *testing.T) {
		assert.Equal(t, 459.0, res.Stats.TotalSales)
		assert.Equal(t, 5.0, res.Stats.BolosLoja)
		assert.Equal(t, 1.0, res.Stats.BolosIfood)
		assert.Equal(t, 4.0, res.Stats.TotalFatias)
		require.NotNil(t, res.Stats.DateRange)
		assert.Equal(t, "2024-03-01", res.Stats.DateRange.Start)
		assert.Equal(t, "2024-03-05", res.Stats.DateRange.End)
		assert.Equal(t, 270.0, res.Stats.Revenue.Bolos)
		assert.Equal(t, -5.50, res.Stats.Revenue.Desconto)
	})

	t.Run("produtos fora do catálogo são listados sem somar no bloco", func(t *testing.T) {
		assert.Equal(t, []string{"BOLO FOFO", "SUCO LARANJA"}, res.Unrecognized)
		for i := range catalog.Pairs {
			if i != pairIndex(t, "BOLO AIPIM") && i != pairIndex(t, "BOLO CENOURA") {
				assert.Equal(t, "0", res.Lines[i], "posição %d", i)
			}
		}
	})
}

func TestProcessSalesReportDegradesToZero(t *testing.T) {
	res, err := ProcessSalesReport("Relatório sem nenhuma seção reconhecível\nPágina 1 de 2\n")
	require.NoError(t, err)
	require.Len(t, res.Lines, posDesconto+1)

	assert.Equal(t, "0.00", res.Lines[posTotal])
	assert.Equal(t, "0.00", res.Lines[posBebidas])
	assert.Equal(t, "", res.Lines[posDay])
	for i := 0; i < len35pairs; i++ {
		assert.Equal(t, "0", res.Lines[i])
	}
}

func TestProcessSalesReportTotalFallback(t *testing.T) {
	t.Run("soma das categorias quando não há Total Geral", func(t *testing.T) {
		text := `BEBIDAS
Total 1 2 16,00
ALIMENTOS
Total 1 1 4,00
`
		res, err := ProcessSalesReport(text)
		require.NoError(t, err)
		assert.Equal(t, "20.00", res.Lines[posTotal])
	})

	t.Run("Total Geral solto sem nenhuma seção de categoria", func(t *testing.T) {
		res, err := ProcessSalesReport("Total Geral 6.741,01\n")
		require.NoError(t, err)
		assert.Equal(t, 6741.01, res.Stats.TotalSales)
		assert.Equal(t, "6741.01", res.Lines[posTotal])
		assert.Equal(t, "0.00", res.Lines[posBebidas])
		assert.Equal(t, "0.00", res.Lines[posAlimentos])
		assert.Equal(t, "0.00", res.Lines[posBolos])
	})

	t.Run("Total Geral estrito prevalece sobre a soma", func(t *testing.T) {
		text := `BEBIDAS
Total 1 2 16,00

Totalizadores Gerais
Total Geral 1.500,00
Impresso em 06/03/2024
`
		res, err := ProcessSalesReport(text)
		require.NoError(t, err)
		assert.Equal(t, "1500.00", res.Lines[posTotal])
	})
}

func TestProcessSalesReportDiscountIsAlwaysNegative(t *testing.T) {
	text := `Acréscimos e Descontos
Valor total de acréscimo de pedidos: 0,00
Valor total de desconto de pedidos: 7,25
Total da Operação
`
	res, err := ProcessSalesReport(text)
	require.NoError(t, err)
	assert.Equal(t, "-7.25", res.Lines[posDesconto])
	assert.True(t, strings.HasPrefix(res.Lines[posDesconto], "-"))
}

func TestProcessSalesReportQtdTokenWins(t *testing.T) {
	text := `PRODUTOS VENDIDOS
101 BOLO CHUVA UNID Qtd:7 90,00
`
	res, err := ProcessSalesReport(text)
	require.NoError(t, err)
	assert.Equal(t, "7", res.Lines[pairIndex(t, "BOLO CHUVA")])
}
