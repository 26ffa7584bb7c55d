package wildberries

import (
	"context"
	"net/http"

	"github.com/DenisZev/wildberries-bot/internal/application/costs"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
)

var _ costs.CatalogSource = (*Client)(nil)

const cardsPath = "/content/v2/get/cards/list"

type cardCursor struct {
	Limit     int    `json:"limit"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	NmID      int64  `json:"nmID,omitempty"`
}

type cardsRequest struct {
	Settings struct {
		Cursor cardCursor `json:"cursor"`
		Filter struct {
			TextSearch string `json:"textSearch,omitempty"`
			WithPhoto  int    `json:"withPhoto"`
		} `json:"filter"`
	} `json:"settings"`
}

type cardDTO struct {
	NmID       int64  `json:"nmID"`
	VendorCode string `json:"vendorCode"`
	Title      string `json:"title"`
	Brand      string `json:"brand"`
	Subject    string `json:"subjectName"`
	Photos     []struct {
		Big string `json:"big"`
	} `json:"photos"`
	Sizes []struct {
		ChrtID int64    `json:"chrtID"`
		WBSize string   `json:"wbSize"`
		SKUs   []string `json:"skus"`
	} `json:"sizes"`
}

type cardsResponse struct {
	Cards  []cardDTO `json:"cards"`
	Cursor *struct {
		UpdatedAt string `json:"updatedAt"`
		NmID      int64  `json:"nmID"`
		Total     int    `json:"total"`
	} `json:"cursor"`
}

func (d cardDTO) toEntity() entity.CatalogCard {
	c := entity.CatalogCard{
		NmID:       d.NmID,
		VendorCode: d.VendorCode,
		Title:      d.Title,
		Brand:      d.Brand,
		Subject:    d.Subject,
	}
	if len(d.Photos) > 0 {
		c.Photo = d.Photos[0].Big
	}
	for _, s := range d.Sizes {
		c.Sizes = append(c.Sizes, entity.CardSize{ChrtID: s.ChrtID, WBSize: s.WBSize, SKUs: s.SKUs})
	}
	return c
}

// Cards recorre todo el catálogo con paginación por cursor.
func (c *Client) Cards(ctx context.Context, token string) ([]entity.CatalogCard, error) {
	var (
		all    []entity.CatalogCard
		cursor = cardCursor{Limit: cardsPageLimit}
	)
	for {
		var req cardsRequest
		req.Settings.Cursor = cursor
		req.Settings.Filter.WithPhoto = -1

		var resp cardsResponse
		if err := c.do(ctx, http.MethodPost, c.cfg.ContentURL, cardsPath, token, nil, req, &resp); err != nil {
			return nil, err
		}
		for _, d := range resp.Cards {
			all = append(all, d.toEntity())
		}
		if len(resp.Cards) < cursor.Limit || resp.Cursor == nil {
			break
		}
		cursor = cardCursor{Limit: cardsPageLimit, UpdatedAt: resp.Cursor.UpdatedAt, NmID: resp.Cursor.NmID}
	}
	c.log.Info().Int("cards", len(all)).Msg("catálogo descargado")
	return all, nil
}

// CardByArticle busca la tarjeta cuyo vendorCode coincide con el artículo.
// Devuelve (nil, nil) si no aparece.
func (c *Client) CardByArticle(ctx context.Context, token, article string) (*entity.CatalogCard, error) {
	var req cardsRequest
	req.Settings.Cursor = cardCursor{Limit: cardsPageLimit}
	req.Settings.Filter.TextSearch = article
	req.Settings.Filter.WithPhoto = -1

	var resp cardsResponse
	if err := c.do(ctx, http.MethodPost, c.cfg.ContentURL, cardsPath, token, nil, req, &resp); err != nil {
		return nil, err
	}
	want := entity.NormalizeArticle(article)
	for _, d := range resp.Cards {
		if entity.NormalizeArticle(d.VendorCode) == want {
			card := d.toEntity()
			return &card, nil
		}
	}
	return nil, nil
}
