// internal/tts/google.go
package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// DefaultEndpoint は Google 翻訳の読み上げエンドポイントです (APIキー不要)。
const DefaultEndpoint = "https://translate.google.com/translate_tts"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// ErrEmptyText は読み上げるテキストが空の場合のエラーです。
var ErrEmptyText = errors.New("tts: empty text")

// Client はテキストを mp3 に変換し、結果をディスクにキャッシュします。
type Client struct {
	endpoint   string
	cacheDir   string
	httpClient *http.Client
	logger     *slog.Logger
	mu         sync.Mutex
}

// NewClient は Client を作ります。cacheDir が空ならキャッシュしません。
func NewClient(endpoint, cacheDir string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cacheDir != "" {
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("tts.NewClient: create cache dir: %w", err)
		}
	}
	return &Client{
		endpoint:   endpoint,
		cacheDir:   cacheDir,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

func cacheKey(text, lang string) string {
	h := sha256.Sum256([]byte(lang + ":" + text))
	return hex.EncodeToString(h[:16])
}

// Synthesize は text を lang (例: "fr") で読み上げた mp3 を返します。
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	var cachePath string
	if c.cacheDir != "" {
		cachePath = filepath.Join(c.cacheDir, cacheKey(text, lang)+".mp3")
		if data, err := os.ReadFile(cachePath); err == nil {
			return data, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// ロック取得後にもう一度キャッシュを確認
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			return data, nil
		}
	}

	data, err := c.fetch(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	// 失敗はキャッシュしない
	if cachePath != "" {
		if err := os.WriteFile(cachePath, data, 0o644); err != nil {
			c.logger.Warn("Failed to write tts cache", "path", cachePath, "error", err)
		}
	}
	return data, nil
}

func (c *Client) fetch(ctx context.Context, text, lang string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", strconv.Itoa(len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("tts: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts: fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts: unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts: read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("tts: empty audio response")
	}
	c.logger.Debug("Synthesized speech", "lang", lang, "bytes", len(data))
	return data, nil
}
