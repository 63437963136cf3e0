// internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/model"
)

// TransportError はバックエンドとの通信失敗 (ネットワークエラー、2xx 以外) です。
type TransportError struct {
	Op         string
	StatusCode int // レスポンスがない場合は 0
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is は model.ErrTransport との比較を true にします。
func (e *TransportError) Is(target error) bool {
	return target == model.ErrTransport
}

// Client は語彙バックエンドの REST API クライアントです。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient は baseURL (例: http://localhost:8000/api) のクライアントを作ります。
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListCategories は全カテゴリを取得します。
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.getJSON(ctx, "ListCategories", "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListVocabulary は指定カテゴリの語彙を取得します。categoryIDs が空の呼び出しは想定しません。
func (c *Client) ListVocabulary(ctx context.Context, categoryIDs []uint) ([]model.Vocabulary, error) {
	q := url.Values{}
	for _, id := range categoryIDs {
		q.Add("category", strconv.FormatUint(uint64(id), 10))
	}
	var vocab []model.Vocabulary
	if err := c.getJSON(ctx, "ListVocabulary", "/vocabulary/", q, &vocab); err != nil {
		return nil, err
	}
	return vocab, nil
}

type ttsResponse struct {
	Success bool   `json:"success"`
	Audio   string `json:"audio"`
	Text    string `json:"text"`
	Error   string `json:"error"`
}

// FetchAudio は語の発音音声 (mp3) を取得します。
// バックエンドが音声を返せない場合は model.ErrAudioUnavailable を返します。
func (c *Client) FetchAudio(ctx context.Context, wordID uint) (*model.Audio, error) {
	q := url.Values{}
	q.Set("word_id", strconv.FormatUint(uint64(wordID), 10))

	resp, err := c.do(ctx, "FetchAudio", http.MethodGet, "/tts/", q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body ttsResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 404/400 は JSON でエラー理由が返る
		if decodeErr == nil && body.Error != "" && resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %s", model.ErrAudioUnavailable, body.Error)
		}
		return nil, &TransportError{Op: "FetchAudio", StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	if decodeErr != nil {
		return nil, &TransportError{Op: "FetchAudio", StatusCode: resp.StatusCode, Err: decodeErr}
	}
	if !body.Success || body.Audio == "" {
		return nil, fmt.Errorf("%w: %s", model.ErrAudioUnavailable, body.Error)
	}

	data, err := base64.StdEncoding.DecodeString(body.Audio)
	if err != nil {
		return nil, fmt.Errorf("%w: decode audio: %v", model.ErrAudioUnavailable, err)
	}
	return &model.Audio{Data: data, ContentType: "audio/mpeg", Text: body.Text}, nil
}

// performanceRow は POST /performance/ が受け付ける1回答分の行です。
type performanceRow struct {
	Vocabulary      uint      `json:"vocabulary"`
	Direction       string    `json:"direction"`
	UserAnswer      string    `json:"user_answer"`
	SimilarityScore float64   `json:"similarity_score"`
	IsCorrect       bool      `json:"is_correct"`
	Timestamp       time.Time `json:"timestamp"`
}

func newPerformanceRow(a model.AnswerRecord) performanceRow {
	// 完全一致で採点するため類似度は 0 か 1
	score := 0.0
	if a.IsCorrect {
		score = 1.0
	}
	return performanceRow{
		Vocabulary:      a.VocabularyID,
		Direction:       a.Direction,
		UserAnswer:      a.UserAnswer,
		SimilarityScore: score,
		IsCorrect:       a.IsCorrect,
		Timestamp:       a.AnsweredAt,
	}
}

// RecordPerformance は回答ごとに1行ずつ成績を送信します。
// 途中で失敗しても残りの行は送信し、失敗はまとめて返します。
func (c *Client) RecordPerformance(ctx context.Context, record *model.PerformanceRecord) error {
	var errs []error
	for _, a := range record.Answers {
		if err := c.postPerformanceRow(ctx, newPerformanceRow(a)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Client) postPerformanceRow(ctx context.Context, row performanceRow) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("backend.RecordPerformance: %w", err)
	}
	resp, err := c.do(ctx, "RecordPerformance", http.MethodPost, "/performance/", nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: "RecordPerformance", StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, dst any) error {
	resp, err := c.do(ctx, op, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, body io.Reader) (*http.Response, error) {
	logger := middleware.GetLogger(ctx)

	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Backend request failed", "op", op, "url", target, "error", err)
		return nil, &TransportError{Op: op, Err: err}
	}
	logger.Debug("Backend request completed",
		"op", op,
		"status", resp.StatusCode,
		"latency_ms", float64(time.Since(start).Nanoseconds())/1e6,
	)
	return resp, nil
}
