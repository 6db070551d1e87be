// Package sniffer decides which report dialect a pasted text belongs to
// before any parsing happens. Detection is marker based: each dialect has
// a small set of phrases that only its point-of-sale system prints.
package sniffer

import (
	"github.com/cloudflare/ahocorasick"
)

// Dialect identifies the point-of-sale system that printed a report.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectKiosk
	DialectStore
)

func (d Dialect) String() string {
	switch d {
	case DialectKiosk:
		return "kiosk"
	case DialectStore:
		return "store"
	default:
		return "unknown"
	}
}

// kioskMarkers are phrases printed only by the mall kiosk system.
var kioskMarkers = []string{
	"Total Geral",
	"Totalizadores Gerais",
	"Impresso em",
	"Página 1 de 2",
}

// storeMarkers are phrases printed only by the street-store system.
var storeMarkers = []string{
	"Vendas:",
	"Valor Unitário:",
	"Produtos Vendidos",
}

// Sniffer matches dialect markers against report text. The zero value is
// not usable; build one with New.
type Sniffer struct {
	kiosk *ahocorasick.Matcher
	store *ahocorasick.Matcher
}

func New() *Sniffer {
	return &Sniffer{
		kiosk: ahocorasick.NewStringMatcher(kioskMarkers),
		store: ahocorasick.NewStringMatcher(storeMarkers),
	}
}

// Detect returns the dialect of text. Kiosk markers take precedence when
// both systems' phrases appear; a text with neither is DialectUnknown.
func (s *Sniffer) Detect(text string) Dialect {
	if s.kiosk.Contains([]byte(text)) {
		return DialectKiosk
	}
	if s.store.Contains([]byte(text)) {
		return DialectStore
	}
	return DialectUnknown
}
