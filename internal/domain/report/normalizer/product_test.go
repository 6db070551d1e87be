package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bolo aipim", "BOLO AIPIM"},
		{"  BOLO CENOURA  ", "BOLO CENOURA"},
		{"FATIA MINI", "FATIA DE BOLO"},
		{"FATIA PROMO", "FATIA DE BOLO"},
		{"FATIA DE BOLO INTEGRAL", "FATIA INTEGRAL"},
		{"FATIA DE BOLO DE AIPIM", "FATIA AIPIM"},
		{"BOLO INTEGRAL BANANA E AVEIA", "BOLO BANANA AVEIA"},
		{"BOLO INTEGRAL BANANA E AVEIA I", "BOLO BANANA AVEIA I"},
		// Variante não listada, mas com FATIA e BOLO no nome.
		{"FATIA BOLO FESTA", "FATIA DE BOLO"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Classification
	}{
		{"FATIA DE BOLO", Classification{Class: ClassSlice, Name: "FATIA DE BOLO", Slice: SliceRegular}},
		{"FATIA INTEGRAL", Classification{Class: ClassSlice, Name: "FATIA INTEGRAL", Slice: SliceWholeGrain}},
		{"FATIA AIPIM", Classification{Class: ClassSlice, Name: "FATIA AIPIM", Slice: SliceCassava}},
		{"QUADRADINHO", Classification{Class: ClassSlice, Name: "QUADRADINHO", Slice: SliceSquare}},
		{"GANACHE 200G", Classification{Class: ClassCondiment, Name: "GANACHE 200G", Condiment: CondimentGanache200}},
		{"GANACHE 100G I", Classification{Class: ClassCondiment, Name: "GANACHE 100G I", Condiment: CondimentGanache100Delivery}},
		{"BRIGADEIRO", Classification{Class: ClassCondiment, Name: "BRIGADEIRO", Condiment: CondimentBrigadeiro}},
		{"BOLO SF NOZES", Classification{Class: ClassSpecial, Name: "BOLO SF NOZES"}},
		{"BOLINHO PRESENTE", Classification{Class: ClassSpecial, Name: "BOLINHO PRESENTE"}},
		{"BOLO AIPIM", Classification{Class: ClassStoreCake, Name: "BOLO AIPIM"}},
		{"BOLO AIPIM I", Classification{Class: ClassDeliveryCake, Name: "BOLO AIPIM I"}},
		{"BOLO FOFO", Classification{Class: ClassStoreCake, Name: "BOLO FOFO"}},
		{"SUCO LARANJA", Classification{Class: ClassUnrecognized, Name: "SUCO LARANJA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
		})
	}
}

func TestNormalizeStoreDialect(t *testing.T) {
	assert.Equal(t, "BOLO SF CENOURA", NormalizeStoreDialect("SF Cenoura"))
	assert.Equal(t, "BOLO SF CHOCOLATE", NormalizeStoreDialect("bolo sf chocolate"))
	assert.Equal(t, "BOLO AIPIM", NormalizeStoreDialect(" BOLO AIPIM "))
}

func TestNearestStoreName(t *testing.T) {
	t.Run("exato", func(t *testing.T) {
		assert.Equal(t, "BOLO CENOURA", NearestStoreName("BOLO CENOURA"))
	})
	t.Run("um erro de digitação", func(t *testing.T) {
		assert.Equal(t, "BOLO FUBÁ", NearestStoreName("BOLO FUBA"))
		assert.Equal(t, "BOLO AIPIM", NearestStoreName("BOLO AIPIN"))
	})
	t.Run("longe demais", func(t *testing.T) {
		assert.Equal(t, "", NearestStoreName("TORTA HOLANDESA"))
		assert.Equal(t, "", NearestStoreName("BOLO DE ROLO RECHEADO"))
	})
}
