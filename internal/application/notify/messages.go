package notify

import (
	"strings"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
)

const separator = "------------------------------"

// OrderMessage aviso de una orden nueva enriquecido con su tarjeta (puede ser nil).
func OrderMessage(p *i18n.Printer, o entity.NewOrder, card *entity.CatalogCard) string {
	notSpecified := p.T(i18n.OrderNotSpecified)
	name, vendorCode, size, sku := notSpecified, notSpecified, "", notSpecified
	photo := p.T(i18n.OrderNoPhoto)

	if card != nil {
		if card.Title != "" {
			name = card.Title
		}
		if card.VendorCode != "" {
			vendorCode = card.VendorCode
		}
		for _, s := range card.Sizes {
			if s.ChrtID == o.ChrtID {
				if len(s.SKUs) > 0 && s.SKUs[0] != "" {
					sku = s.SKUs[0]
				}
				size = s.WBSize
				break
			}
		}
		if card.Photo != "" {
			photo = card.Photo
		}
	}
	if vendorCode == notSpecified && o.Article != "" {
		vendorCode = o.Article
	}

	lines := []string{
		p.T(i18n.OrderNew),
		p.T(i18n.OrderID, o.ID),
		p.T(i18n.OrderArticle, vendorCode),
		p.T(i18n.OrderName, name),
	}
	if size != "" {
		lines = append(lines, p.T(i18n.OrderSize, size))
	}
	lines = append(lines,
		p.T(i18n.OrderBarcode, sku),
		p.T(i18n.OrderPrice, o.SalePrice.String()),
		p.T(i18n.OrderPhoto, photo),
	)
	return strings.Join(lines, "\n")
}

// OrdersListMessage lista breve de órdenes nuevas.
func OrdersListMessage(p *i18n.Printer, orders []entity.NewOrder) string {
	if len(orders) == 0 {
		return p.T(i18n.OrdersNone)
	}
	lines := []string{p.T(i18n.OrdersHeader)}
	for _, o := range orders {
		article := o.Article
		if article == "" {
			article = p.T(i18n.Unknown)
		}
		price := p.T(i18n.OrderNotSpecified)
		if o.SalePrice != 0 {
			price = o.SalePrice.String()
		}
		lines = append(lines,
			p.T(i18n.OrdersItemID, o.ID),
			p.T(i18n.OrdersItemSKUs, strings.Join(o.SKUs, ", ")),
			p.T(i18n.OrderArticle, article),
			p.T(i18n.OrderPrice, price),
			separator,
		)
	}
	return strings.Join(lines, "\n")
}
