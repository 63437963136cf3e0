// internal/handlers/helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_5_vocab_quiz/internal/handlers"
	"go_5_vocab_quiz/internal/model"
	"go_5_vocab_quiz/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestRouter は /api/v1 配下にクイズAPIを登録したルーターを返します。
func newTestRouter(svc service.QuizService) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api/v1", handlers.NewQuizHandler(svc, testLogger).Routes)
	return router
}

// doRequest はルーターにリクエストを送り、レスポンスを返します。body が string ならそのまま送ります。
func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp.Error
}
