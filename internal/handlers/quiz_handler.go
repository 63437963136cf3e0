// internal/handlers/quiz_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_5_vocab_quiz/internal/model"
	"go_5_vocab_quiz/internal/service"
	"go_5_vocab_quiz/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type QuizHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewQuizHandler(s service.QuizService, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		service: s,
		logger:  logger,
	}
}

// Routes はクイズAPIのルートを登録します。
func (h *QuizHandler) Routes(r chi.Router) {
	r.Get("/categories", h.GetCategories)
	r.Route("/quizzes", func(r chi.Router) {
		r.Post("/", h.PostQuiz)
		r.Route("/{quiz_id}", func(r chi.Router) {
			r.Get("/", h.GetQuiz)
			r.Delete("/", h.DeleteQuiz)
			r.Post("/answer", h.PostAnswer)
			r.Post("/advance", h.PostAdvance)
			r.Get("/summary", h.GetSummary)
			r.Get("/audio", h.GetAudio)
		})
	})
}

// GetCategories は選択可能なカテゴリ一覧を返します
func (h *QuizHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategories"))

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Categories listed successfully", slog.Int("count", len(categories)))
	webutil.RespondWithJSON(w, http.StatusOK, categories, logger)
}

// PostQuiz は新しいクイズを開始します
func (h *QuizHandler) PostQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostQuiz"))

	var req model.StartQuizRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid start request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	quiz, err := h.service.StartQuiz(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz created successfully", slog.String("quiz_id", quiz.QuizID.String()), slog.Int("length", quiz.Length))
	w.Header().Set("Location", "/api/v1/quizzes/"+quiz.QuizID.String())
	webutil.RespondWithJSON(w, http.StatusCreated, quiz, logger)
}

// GetQuiz はクイズの現在の状態を返します
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuiz"))

	quizID, ok := h.quizIDParam(w, r, logger)
	if !ok {
		return
	}

	quiz, err := h.service.GetQuiz(r.Context(), quizID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, quiz, logger)
}

// PostAnswer は現在の問題に回答します
func (h *QuizHandler) PostAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostAnswer"))

	quizID, ok := h.quizIDParam(w, r, logger)
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid answer request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.service.SubmitAnswer(r.Context(), quizID, *req.Answer)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Answer submitted", slog.String("quiz_id", quizID.String()), slog.Bool("correct", result.Correct))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// PostAdvance は次の問題に進みます
func (h *QuizHandler) PostAdvance(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostAdvance"))

	quizID, ok := h.quizIDParam(w, r, logger)
	if !ok {
		return
	}

	quiz, err := h.service.Advance(r.Context(), quizID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, quiz, logger)
}

// GetSummary は終了したクイズの結果を返します
func (h *QuizHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSummary"))

	quizID, ok := h.quizIDParam(w, r, logger)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(r.Context(), quizID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// GetAudio は現在の問題の音声を返します
func (h *QuizHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAudio"))

	quizID, ok := h.quizIDParam(w, r, logger)
	if !ok {
		return
	}

	audio, err := h.service.GetAudio(r.Context(), quizID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	contentType := audio.ContentType
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio.Data); err != nil {
		logger.Warn("Failed to write audio body", slog.Any("error", err))
	}
}

// DeleteQuiz はクイズを破棄します
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteQuiz"))

	quizID, ok := h.quizIDParam(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.DiscardQuiz(r.Context(), quizID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuizHandler) quizIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	quizIDStr := chi.URLParam(r, "quiz_id")
	quizID, err := uuid.Parse(quizIDStr)
	if err != nil {
		logger.Warn("Invalid quiz ID format in URL", slog.String("quiz_id_str", quizIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "quiz_idの形式が正しくありません。", "quiz_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return quizID, true
}
