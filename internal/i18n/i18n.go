// Package i18n separa los textos visibles al usuario de la lógica de agregación.
// Las claves son el texto en inglés; el catálogo ruso replica el formato del
// bot original. Se apoya en golang.org/x/text/message.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Key clave de mensaje (el propio texto en inglés con sus verbos de formato).
type Key string

// Printer formatea mensajes en un idioma concreto.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter construye un Printer para el tag dado.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{tag: tag, p: message.NewPrinter(tag)}
}

// Parse convierte "ru"/"en" (o cualquier BCP 47) en un tag soportado; ruso por defecto.
func Parse(s string) language.Tag {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.Russian
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Russian
	}
	base, _ := tag.Base()
	if en, _ := language.English.Base(); base == en {
		return language.English
	}
	return language.Russian
}

// Tag devuelve el idioma del printer.
func (p *Printer) Tag() language.Tag { return p.tag }

// T traduce y formatea la clave.
func (p *Printer) T(key Key, args ...any) string {
	return p.p.Sprintf(string(key), args...)
}
