// internal/webutil/webutil_test.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_5_vocab_quiz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFound", model.ErrNotFound, http.StatusNotFound},
		{"InvalidInput", model.ErrInvalidInput, http.StatusBadRequest},
		{"Conflict", model.ErrConflict, http.StatusConflict},
		{"Unprocessable", model.ErrUnprocessable, http.StatusUnprocessableEntity},
		{"Transport", fmt.Errorf("wrapped: %w", model.ErrTransport), http.StatusBadGateway},
		{"AudioUnavailable", model.ErrAudioUnavailable, http.StatusServiceUnavailable},
		{"AppError は内側のエラーで判定", model.NewAppError("X", "x", "", model.ErrConflict), http.StatusConflict},
		{"不明なエラー", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Run("正常系: AppError の詳細を返す", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleError(rr, testLogger, model.NewAppError("QUIZ_NOT_FOUND", "クイズが見つかりません。", "quiz_id", model.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "QUIZ_NOT_FOUND", resp.Error.Code)
		assert.Equal(t, "quiz_id", resp.Error.Field)
	})

	t.Run("異常系: 予期せぬエラーは詳細を隠す", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleError(rr, testLogger, errors.New("dial tcp 10.0.0.1:5432: secret detail"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "secret detail")
		assert.Contains(t, rr.Body.String(), "INTERNAL_SERVER_ERROR")
	})
}

type startRequest struct {
	CategoryIDs   []uint `json:"category_ids" validate:"required,min=1,dive,gt=0"`
	QuestionCount *int   `json:"question_count,omitempty" validate:"omitempty,gt=0"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantField   string
		wantMessage string
	}{
		{name: "正常系", body: `{"category_ids":[1,2],"question_count":5}`},
		{name: "異常系: 空ボディ", body: ``, wantCode: "INVALID_REQUEST_BODY"},
		{name: "異常系: 未知のフィールド", body: `{"category_ids":[1],"x":1}`, wantCode: "INVALID_REQUEST_BODY"},
		{name: "異常系: 必須", body: `{"question_count":5}`, wantCode: "VALIDATION_ERROR", wantField: "category_ids", wantMessage: "カテゴリは必須項目です。"},
		{name: "異常系: 空のスライス", body: `{"category_ids":[]}`, wantCode: "VALIDATION_ERROR", wantField: "category_ids", wantMessage: "カテゴリは1件以上選択してください。"},
		{name: "異常系: 0以下の値", body: `{"category_ids":[1],"question_count":0}`, wantCode: "VALIDATION_ERROR", wantField: "question_count", wantMessage: "問題数は0より大きい値を指定してください。"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst startRequest

			err := DecodeAndValidate(req, &dst)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, []uint{1, 2}, dst.CategoryIDs)
				return
			}
			var appErr *model.AppError
			require.True(t, errors.As(err, &appErr), "got %v", err)
			assert.Equal(t, tt.wantCode, appErr.Detail.Code)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, appErr.Detail.Field)
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, appErr.Detail.Message)
			}
		})
	}
}
