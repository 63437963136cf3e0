// internal/handlers/quiz_handler_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"go_5_vocab_quiz/internal/model"
	"go_5_vocab_quiz/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func sampleQuiz(id uuid.UUID) *model.QuizResponse {
	return &model.QuizResponse{
		QuizID:         id,
		Phase:          "initial",
		Length:         5,
		TotalQuestions: 5,
		Question:       &model.QuestionResponse{VocabularyID: 3, Prompt: "chat", CategoryID: 1},
	}
}

func TestQuizHandler_GetCategories(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mocks.QuizService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 一覧取得",
			setupMock: func(m *mocks.QuizService) {
				m.On("ListCategories", mock.Anything).Return([]model.Category{{ID: 1, Name: "Tiere"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "異常系: バックエンド障害は502",
			setupMock: func(m *mocks.QuizService) {
				m.On("ListCategories", mock.Anything).
					Return(nil, model.NewAppError("BACKEND_UNAVAILABLE", "単語データを取得できませんでした。", "", model.ErrTransport)).Once()
			},
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "BACKEND_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewQuizService(t)
			tt.setupMock(svc)

			rr := doRequest(t, newTestRouter(svc), http.MethodGet, "/api/v1/categories", nil)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rr).Code)
				return
			}
			var got []model.Category
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, "Tiere", got[0].Name)
		})
	}
}

func TestQuizHandler_PostQuiz(t *testing.T) {
	quizID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.QuizService)
		expectedStatus int
		expectedCode   string
		expectedField  string
	}{
		{
			name: "正常系: クイズ開始",
			body: model.StartQuizRequest{CategoryIDs: []uint{1, 2}, QuestionCount: intPtr(5)},
			setupMock: func(m *mocks.QuizService) {
				m.On("StartQuiz", mock.Anything, &model.StartQuizRequest{CategoryIDs: []uint{1, 2}, QuestionCount: intPtr(5)}).
					Return(sampleQuiz(quizID), nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: カテゴリ未指定",
			body:           map[string]interface{}{"question_count": 5},
			setupMock:      func(m *mocks.QuizService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedField:  "category_ids",
		},
		{
			name:           "異常系: 不正なJSON",
			body:           `{"category_ids": [1`,
			setupMock:      func(m *mocks.QuizService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:           "異常系: 未知のフィールド",
			body:           `{"category_ids":[1],"level":"hard"}`,
			setupMock:      func(m *mocks.QuizService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name: "異常系: 出題数が範囲外",
			body: model.StartQuizRequest{CategoryIDs: []uint{1}, QuestionCount: intPtr(50)},
			setupMock: func(m *mocks.QuizService) {
				m.On("StartQuiz", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("INVALID_QUESTION_COUNT", "問題数は5から30の範囲で指定してください。", "question_count", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_QUESTION_COUNT",
			expectedField:  "question_count",
		},
		{
			name: "異常系: 単語が0件は422",
			body: model.StartQuizRequest{CategoryIDs: []uint{9}},
			setupMock: func(m *mocks.QuizService) {
				m.On("StartQuiz", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("NO_VOCABULARY", "選択したカテゴリに単語がありません。", "category_ids", model.ErrUnprocessable)).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "NO_VOCABULARY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewQuizService(t)
			tt.setupMock(svc)

			rr := doRequest(t, newTestRouter(svc), http.MethodPost, "/api/v1/quizzes", tt.body)

			require.Equal(t, tt.expectedStatus, rr.Code, "body: %s", rr.Body.String())
			if tt.expectedCode != "" {
				detail := decodeError(t, rr)
				assert.Equal(t, tt.expectedCode, detail.Code)
				assert.NotEmpty(t, detail.Message)
				if tt.expectedField != "" {
					assert.Equal(t, tt.expectedField, detail.Field)
				}
				return
			}
			var got model.QuizResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, quizID, got.QuizID)
			assert.Equal(t, "/api/v1/quizzes/"+quizID.String(), rr.Header().Get("Location"))
		})
	}
}

func TestQuizHandler_PostAnswer(t *testing.T) {
	quizID := uuid.New()
	path := fmt.Sprintf("/api/v1/quizzes/%s/answer", quizID)

	tests := []struct {
		name           string
		path           string
		body           interface{}
		setupMock      func(m *mocks.QuizService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 正解",
			path: path,
			body: model.SubmitAnswerRequest{Answer: strPtr("Katze")},
			setupMock: func(m *mocks.QuizService) {
				m.On("SubmitAnswer", mock.Anything, quizID, "Katze").
					Return(&model.AnswerResponse{Correct: true, Expected: "Katze", Submitted: "Katze", Quiz: sampleQuiz(quizID)}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: answer がない",
			path:           path,
			body:           map[string]interface{}{},
			setupMock:      func(m *mocks.QuizService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "異常系: 空白だけの回答",
			path: path,
			body: model.SubmitAnswerRequest{Answer: strPtr("  ")},
			setupMock: func(m *mocks.QuizService) {
				m.On("SubmitAnswer", mock.Anything, quizID, "  ").
					Return(nil, model.NewAppError("EMPTY_ANSWER", "回答を入力してください。", "answer", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "EMPTY_ANSWER",
		},
		{
			name: "異常系: 回答済み",
			path: path,
			body: model.SubmitAnswerRequest{Answer: strPtr("Hund")},
			setupMock: func(m *mocks.QuizService) {
				m.On("SubmitAnswer", mock.Anything, quizID, "Hund").
					Return(nil, model.NewAppError("ALREADY_ANSWERED", "この問題には回答済みです。", "", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "ALREADY_ANSWERED",
		},
		{
			name:           "異常系: quiz_id が不正",
			path:           "/api/v1/quizzes/not-a-uuid/answer",
			body:           model.SubmitAnswerRequest{Answer: strPtr("Katze")},
			setupMock:      func(m *mocks.QuizService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_URL_PARAM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewQuizService(t)
			tt.setupMock(svc)

			rr := doRequest(t, newTestRouter(svc), http.MethodPost, tt.path, tt.body)

			require.Equal(t, tt.expectedStatus, rr.Code, "body: %s", rr.Body.String())
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rr).Code)
				return
			}
			var got model.AnswerResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.True(t, got.Correct)
			assert.Equal(t, "Katze", got.Expected)
		})
	}
}

func TestQuizHandler_QuizLifecycleRoutes(t *testing.T) {
	quizID := uuid.New()
	base := "/api/v1/quizzes/" + quizID.String()
	notFound := model.NewAppError("QUIZ_NOT_FOUND", "クイズが見つかりません。", "quiz_id", model.ErrNotFound)

	tests := []struct {
		name           string
		method         string
		path           string
		setupMock      func(m *mocks.QuizService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "正常系: 状態取得",
			method: http.MethodGet,
			path:   base,
			setupMock: func(m *mocks.QuizService) {
				m.On("GetQuiz", mock.Anything, quizID).Return(sampleQuiz(quizID), nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "異常系: 存在しないクイズ",
			method: http.MethodGet,
			path:   base,
			setupMock: func(m *mocks.QuizService) {
				m.On("GetQuiz", mock.Anything, quizID).Return(nil, notFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "QUIZ_NOT_FOUND",
		},
		{
			name:   "正常系: 次へ進む",
			method: http.MethodPost,
			path:   base + "/advance",
			setupMock: func(m *mocks.QuizService) {
				m.On("Advance", mock.Anything, quizID).Return(sampleQuiz(quizID), nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "異常系: 未回答で次へ",
			method: http.MethodPost,
			path:   base + "/advance",
			setupMock: func(m *mocks.QuizService) {
				m.On("Advance", mock.Anything, quizID).
					Return(nil, model.NewAppError("NOT_ANSWERED", "先に回答してください。", "", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "NOT_ANSWERED",
		},
		{
			name:   "正常系: 結果取得",
			method: http.MethodGet,
			path:   base + "/summary",
			setupMock: func(m *mocks.QuizService) {
				m.On("GetSummary", mock.Anything, quizID).Return(&model.SummaryResponse{
					QuizID:         quizID,
					TotalQuestions: 5,
					StillIncorrect: 1,
					MissedWords:    []model.MissedWordResponse{{VocabularyID: 3, SourceText: "chat", TargetText: "Katze"}},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "異常系: 終了前の結果取得",
			method: http.MethodGet,
			path:   base + "/summary",
			setupMock: func(m *mocks.QuizService) {
				m.On("GetSummary", mock.Anything, quizID).
					Return(nil, model.NewAppError("QUIZ_NOT_FINISHED", "クイズはまだ終了していません。", "", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "QUIZ_NOT_FINISHED",
		},
		{
			name:   "正常系: 破棄",
			method: http.MethodDelete,
			path:   base,
			setupMock: func(m *mocks.QuizService) {
				m.On("DiscardQuiz", mock.Anything, quizID).Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "異常系: 破棄済み",
			method: http.MethodDelete,
			path:   base,
			setupMock: func(m *mocks.QuizService) {
				m.On("DiscardQuiz", mock.Anything, quizID).Return(notFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "QUIZ_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewQuizService(t)
			tt.setupMock(svc)

			rr := doRequest(t, newTestRouter(svc), tt.method, tt.path, nil)

			require.Equal(t, tt.expectedStatus, rr.Code, "body: %s", rr.Body.String())
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rr).Code)
			}
		})
	}
}

func TestQuizHandler_GetAudio(t *testing.T) {
	quizID := uuid.New()
	path := "/api/v1/quizzes/" + quizID.String() + "/audio"

	t.Run("正常系: 音声データを返す", func(t *testing.T) {
		svc := mocks.NewQuizService(t)
		svc.On("GetAudio", mock.Anything, quizID).Return(&model.Audio{Data: []byte("ID3mp3"), ContentType: "audio/mpeg"}, nil).Once()

		rr := doRequest(t, newTestRouter(svc), http.MethodGet, path, nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "audio/mpeg", rr.Header().Get("Content-Type"))
		assert.Equal(t, "6", rr.Header().Get("Content-Length"))
		assert.Equal(t, []byte("ID3mp3"), rr.Body.Bytes())
	})

	t.Run("異常系: 音声取得不可は503", func(t *testing.T) {
		svc := mocks.NewQuizService(t)
		svc.On("GetAudio", mock.Anything, quizID).
			Return(nil, model.NewAppError("AUDIO_UNAVAILABLE", "音声を再生できません。", "", model.ErrAudioUnavailable)).Once()

		rr := doRequest(t, newTestRouter(svc), http.MethodGet, path, nil)

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "AUDIO_UNAVAILABLE", decodeError(t, rr).Code)
	})
}
