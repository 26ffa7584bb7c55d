package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/DenisZev/wildberries-bot/internal/i18n"
)

func TestParse_PorDefectoRuso(t *testing.T) {
	assert.Equal(t, language.Russian, i18n.Parse(""))
	assert.Equal(t, language.Russian, i18n.Parse("no-es-un-tag-valido-!!"))
	assert.Equal(t, language.Russian, i18n.Parse("ru-RU"))
	assert.Equal(t, language.English, i18n.Parse("en"))
	assert.Equal(t, language.English, i18n.Parse("en-GB"))
}

func TestPrinter_TraduceAlRuso(t *testing.T) {
	p := i18n.NewPrinter(language.Russian)
	assert.Equal(t, "Чистая прибыль: 220,00 руб.", p.T(i18n.ReportProfit, "220,00"))
	assert.Equal(t, "Детализация", p.T(i18n.SheetDetail))
	assert.Equal(t, "В пути", p.T(i18n.SheetInTransit))
}

func TestPrinter_InglesUsaLaClave(t *testing.T) {
	p := i18n.NewPrinter(language.English)
	assert.Equal(t, "Net profit: 220,00 RUB", p.T(i18n.ReportProfit, "220,00"))
	assert.Equal(t, "- a1: 5 pcs", p.T(i18n.ReportTopLine, "a1", 5))
}
