package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	defaultTelegramAPI = "https://api.telegram.org"
	maxMessageLength   = 4000
)

// TelegramReporter posts events to a Telegram chat through the Bot API.
// Sends happen in the background; failures are only logged.
type TelegramReporter struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	wg      sync.WaitGroup
}

type TelegramOption func(*TelegramReporter)

// WithBaseURL points the reporter at a different Bot API host.
func WithBaseURL(u string) TelegramOption {
	return func(r *TelegramReporter) { r.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) TelegramOption {
	return func(r *TelegramReporter) { r.client = c }
}

func NewTelegramReporter(token, chatID string, logger *slog.Logger, opts ...TelegramOption) *TelegramReporter {
	if logger == nil {
		logger = slog.Default()
	}
	r := &TelegramReporter{
		token:   token,
		chatID:  chatID,
		baseURL: defaultTelegramAPI,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TelegramReporter) Report(_ context.Context, event string, fields map[string]any) {
	text := formatMessage(event, fields)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.send(ctx, text); err != nil {
			r.logger.Warn("telegram report failed",
				slog.String("event", event),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Close waits for in-flight sends to finish.
func (r *TelegramReporter) Close() {
	r.wg.Wait()
}

func (r *TelegramReporter) send(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{
		"chat_id": r.chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", r.baseURL, r.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram api returned status %d", resp.StatusCode)
	}
	return nil
}

func formatMessage(event string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(event)
	for _, k := range sortedFieldKeys(fields) {
		fmt.Fprintf(&b, "\n%s: %v", k, fields[k])
	}
	msg := b.String()
	if utf8.RuneCountInString(msg) <= maxMessageLength {
		return msg
	}
	// the Bot API limit counts characters
	n := 0
	for i := range msg {
		if n == maxMessageLength {
			return msg[:i]
		}
		n++
	}
	return msg
}
