package backend

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go_5_vocab_quiz/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", 2*time.Second)
}

func TestClient_ListCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Tiere"},{"id":2,"name":"Essen"}]`))
	})

	categories, err := client.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Category{{ID: 1, Name: "Tiere"}, {ID: 2, Name: "Essen"}}, categories)
}

func TestClient_ListVocabulary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vocabulary/", r.URL.Path)
		assert.Equal(t, []string{"1", "3"}, r.URL.Query()["category"])
		w.Write([]byte(`[{"id":7,"french_word":"chat","german_word":"Katze","category":1,"category_name":"Tiere"}]`))
	})

	vocab, err := client.ListVocabulary(context.Background(), []uint{1, 3})

	require.NoError(t, err)
	require.Len(t, vocab, 1)
	assert.Equal(t, uint(7), vocab[0].ID)
	assert.Equal(t, "chat", vocab[0].SourceText)
	assert.Equal(t, "Katze", vocab[0].TargetText)
	assert.Equal(t, uint(1), vocab[0].CategoryID)
	assert.Equal(t, "Tiere", vocab[0].CategoryName)
}

func TestClient_TransportErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "異常系: 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "異常系: 壊れたJSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"id":`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.ListCategories(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrTransport)
			var te *TransportError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, "ListCategories", te.Op)
			assert.Equal(t, tt.wantStatus, te.StatusCode)
		})
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second)
	_, err := client.ListVocabulary(context.Background(), []uint{1})

	assert.ErrorIs(t, err, model.ErrTransport)
}

func TestClient_FetchAudio(t *testing.T) {
	mp3 := []byte{0xff, 0xfb, 0x90, 0x64}

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantData  []byte
		wantError error
	}{
		{
			name: "正常系: 音声取得",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "7", r.URL.Query().Get("word_id"))
				json.NewEncoder(w).Encode(map[string]any{
					"success": true,
					"audio":   base64.StdEncoding.EncodeToString(mp3),
					"text":    "chat",
				})
			},
			wantData: mp3,
		},
		{
			name: "異常系: 単語が存在しない",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":"Vocabulary not found"}`))
			},
			wantError: model.ErrAudioUnavailable,
		},
		{
			name: "異常系: success=false",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"error":"tts failed"}`))
			},
			wantError: model.ErrAudioUnavailable,
		},
		{
			name: "異常系: サーバーエラー",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"boom"}`))
			},
			wantError: model.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			audio, err := client.FetchAudio(context.Background(), 7)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, audio)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, audio.Data)
			assert.Equal(t, "audio/mpeg", audio.ContentType)
			assert.Equal(t, "chat", audio.Text)
		})
	}
}

func TestClient_RecordPerformance(t *testing.T) {
	answeredAt := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	var mu sync.Mutex
	var received []map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/performance/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var row map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		mu.Lock()
		received = append(received, row)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})

	err := client.RecordPerformance(context.Background(), &model.PerformanceRecord{
		QuizID:         uuid.New(),
		TotalQuestions: 2,
		Answers: []model.AnswerRecord{
			{VocabularyID: 7, Direction: model.DirectionSourceToTarget, UserAnswer: "Katze", IsCorrect: true, Phase: "initial", AnsweredAt: answeredAt},
			{VocabularyID: 8, Direction: model.DirectionSourceToTarget, UserAnswer: "Hunt", IsCorrect: false, Phase: "initial", AnsweredAt: answeredAt},
		},
	})

	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, map[string]any{
		"vocabulary":       float64(7),
		"direction":        "fr_de",
		"user_answer":      "Katze",
		"similarity_score": float64(1),
		"is_correct":       true,
		"timestamp":        "2026-10-01T09:30:00Z",
	}, received[0])
	assert.Equal(t, float64(8), received[1]["vocabulary"])
	assert.Equal(t, float64(0), received[1]["similarity_score"])
	assert.Equal(t, false, received[1]["is_correct"])
}

func TestClient_RecordPerformanceFailure(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})

	err := client.RecordPerformance(context.Background(), &model.PerformanceRecord{
		Answers: []model.AnswerRecord{{VocabularyID: 1}, {VocabularyID: 2}},
	})

	assert.ErrorIs(t, err, model.ErrTransport)
	assert.Equal(t, 2, calls, "失敗後も残りの行を送信する")
}
