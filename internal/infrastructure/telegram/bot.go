// Package telegram envía mensajes y archivos con la Bot API de Telegram.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/DenisZev/wildberries-bot/internal/application/notify"
)

const (
	DefaultAPIURL = "https://api.telegram.org"
	// límite de la Bot API por mensaje
	maxMessageRunes = 4096
)

var _ notify.Notifier = (*Bot)(nil)

// Bot cliente mínimo de la Bot API.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewBot apiURL vacío usa la API pública.
func NewBot(token, apiURL string) *Bot {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Bot{
		token:      token,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage divide el texto si supera el límite de la API.
func (b *Bot) SendMessage(ctx context.Context, chatID, text string) error {
	for _, part := range splitMessage(text, maxMessageRunes) {
		payload, err := json.Marshal(map[string]string{"chat_id": chatID, "text": part})
		if err != nil {
			return fmt.Errorf("telegram: serializar mensaje: %w", err)
		}
		if err := b.call(ctx, "sendMessage", "application/json", bytes.NewReader(payload)); err != nil {
			return err
		}
	}
	return nil
}

// SendDocument sube un archivo como documento.
func (b *Bot) SendDocument(ctx context.Context, chatID, fileName string, data []byte, caption string) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", chatID); err != nil {
		return err
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile("document", fileName)
	if err != nil {
		return fmt.Errorf("telegram: adjunto: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("telegram: adjunto: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("telegram: adjunto: %w", err)
	}
	return b.call(ctx, "sendDocument", w.FormDataContentType(), &body)
}

func (b *Bot) call(ctx context.Context, method, contentType string, body io.Reader) error {
	if b.token == "" {
		return errors.New("telegram: TELEGRAM_BOT_TOKEN no configurado")
	}
	url := fmt.Sprintf("%s/bot%s/%s", b.apiURL, b.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("telegram: crear request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("telegram: timeout o cancelación: %w", ctx.Err())
		}
		// el error de net/http incluye la URL con el token
		return fmt.Errorf("telegram: %s: llamada HTTP fallida", method)
	}
	defer resp.Body.Close()

	var out apiResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	_ = json.Unmarshal(raw, &out)
	if resp.StatusCode != http.StatusOK || !out.OK {
		return fmt.Errorf("telegram: %s: HTTP %d: %s", method, resp.StatusCode, out.Description)
	}
	return nil
}

// splitMessage corta por líneas sin pasar de limit runas por parte.
func splitMessage(text string, limit int) []string {
	if len([]rune(text)) <= limit {
		return []string{text}
	}
	var (
		parts []string
		cur   []rune
	)
	for _, line := range strings.SplitAfter(text, "\n") {
		r := []rune(line)
		for len(r) > limit {
			if len(cur) > 0 {
				parts = append(parts, string(cur))
				cur = nil
			}
			parts = append(parts, string(r[:limit]))
			r = r[limit:]
		}
		if len(cur)+len(r) > limit {
			parts = append(parts, string(cur))
			cur = nil
		}
		cur = append(cur, r...)
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}
