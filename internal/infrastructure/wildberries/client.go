// Package wildberries adaptador de las APIs del marketplace: estadísticas
// (ventas y saldos), marketplace (órdenes) y contenido (tarjetas).
package wildberries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

const (
	DefaultStatisticsURL  = "https://statistics-api.wildberries.ru"
	DefaultMarketplaceURL = "https://marketplace-api.wildberries.ru"
	DefaultContentURL     = "https://content-api.wildberries.ru"

	maxBodyBytes = 64 << 20
)

// ErrUnauthorized el marketplace rechazó el token.
var ErrUnauthorized = fmt.Errorf("wildberries: token rechazado: %w", domain.ErrUnauthorized)

// Config URLs base, timeout por solicitud y límite de solicitudes por minuto.
type Config struct {
	StatisticsURL  string
	MarketplaceURL string
	ContentURL     string
	Timeout        time.Duration
	RatePerMinute  int
}

// Client cliente HTTP compartido por todos los vendedores; el token viaja por llamada.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// NewClient aplica valores por defecto a lo que venga vacío.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.StatisticsURL == "" {
		cfg.StatisticsURL = DefaultStatisticsURL
	}
	if cfg.MarketplaceURL == "" {
		cfg.MarketplaceURL = DefaultMarketplaceURL
	}
	if cfg.ContentURL == "" {
		cfg.ContentURL = DefaultContentURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		log:        log,
	}
}

// StatusError respuesta no 2xx del marketplace.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wildberries: %s %s: HTTP %d: %s", e.Method, e.URL, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// do envía la solicitud y decodifica el JSON en out. Un cuerpo vacío o
// "null" deja out sin tocar.
func (c *Client) do(ctx context.Context, method, base, path, token string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wildberries: límite de solicitudes: %w", err)
	}

	u := strings.TrimRight(base, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("wildberries: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("wildberries: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("wildberries: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("wildberries: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("wildberries: leer respuesta: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("wildberries request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(raw)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return &StatusError{Method: method, URL: path, Status: resp.StatusCode, Body: snippet}
	}

	trimmed := bytes.TrimSpace(raw)
	if out == nil || len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("wildberries: decodificar %s: %w", path, err)
	}
	return nil
}
