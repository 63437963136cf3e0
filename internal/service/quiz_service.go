//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go_5_vocab_quiz/internal/config"
	"go_5_vocab_quiz/internal/middleware"
	"go_5_vocab_quiz/internal/model"
	"go_5_vocab_quiz/internal/quiz"

	"github.com/google/uuid"
)

// QuizService は進行中のクイズをメモリ上で管理します。HTTP API と TUI の両方から使います。
type QuizService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	StartQuiz(ctx context.Context, req *model.StartQuizRequest) (*model.QuizResponse, error)
	GetQuiz(ctx context.Context, quizID uuid.UUID) (*model.QuizResponse, error)
	SubmitAnswer(ctx context.Context, quizID uuid.UUID, answer string) (*model.AnswerResponse, error)
	Advance(ctx context.Context, quizID uuid.UUID) (*model.QuizResponse, error)
	GetSummary(ctx context.Context, quizID uuid.UUID) (*model.SummaryResponse, error)
	GetAudio(ctx context.Context, quizID uuid.UUID) (*model.Audio, error)
	DiscardQuiz(ctx context.Context, quizID uuid.UUID) error
	// Shutdown は以降の成績送信を止め、送信中の記録の完了を待ちます。
	Shutdown(ctx context.Context) error
}

// liveSession は1つのクイズと、その操作を直列化するロックです。
type liveSession struct {
	mu       sync.Mutex
	session  *quiz.Session
	recorded bool

	lastUsed time.Time // quizService.mu で保護
}

type quizService struct {
	provider VocabularyProvider
	audio    AudioSource         // nil なら音声なし
	recorder PerformanceRecorder // nil なら記録しない

	limits           quiz.Limits
	defaultQuestions int
	sessionTTL       time.Duration
	recordTimeout    time.Duration
	logger           *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*liveSession
	sampler  *quiz.Sampler // mu で保護
	now      func() time.Time
	closed   bool // Shutdown 後は成績を送信しない。mu で保護

	wg sync.WaitGroup
}

// QuizServiceOption は主にテスト用の差し替えです。
type QuizServiceOption func(*quizService)

func WithSampler(sampler *quiz.Sampler) QuizServiceOption {
	return func(s *quizService) { s.sampler = sampler }
}

func WithClock(now func() time.Time) QuizServiceOption {
	return func(s *quizService) { s.now = now }
}

func NewQuizService(provider VocabularyProvider, audio AudioSource, recorder PerformanceRecorder, cfg config.Config, logger *slog.Logger, opts ...QuizServiceOption) QuizService {
	s := &quizService{
		provider: provider,
		audio:    audio,
		recorder: recorder,
		limits: quiz.Limits{
			MinQuestions: cfg.Quiz.MinQuestions,
			MaxQuestions: cfg.Quiz.MaxQuestions,
		},
		defaultQuestions: cfg.Quiz.DefaultQuestions,
		sessionTTL:       cfg.Quiz.SessionTTL,
		recordTimeout:    cfg.Performance.Timeout,
		logger:           logger,
		sessions:         make(map[uuid.UUID]*liveSession),
		now:              time.Now,
	}
	if s.defaultQuestions <= 0 {
		s.defaultQuestions = config.DefaultQuestions
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = config.DefaultSessionTTL
	}
	if s.recordTimeout <= 0 {
		s.recordTimeout = config.DefaultPerformanceTimeout
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sampler == nil {
		s.sampler = quiz.NewSampler(nil)
	}
	return s
}

func (s *quizService) ListCategories(ctx context.Context) ([]model.Category, error) {
	logger := middleware.GetLogger(ctx)
	categories, err := s.provider.ListCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", "error", err)
		return nil, providerError(err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (s *quizService) StartQuiz(ctx context.Context, req *model.StartQuizRequest) (*model.QuizResponse, error) {
	logger := middleware.GetLogger(ctx)

	count := s.defaultQuestions
	if req.QuestionCount != nil {
		count = *req.QuestionCount
	}
	cfg := quiz.Config{CategoryIDs: dedupeIDs(req.CategoryIDs), QuestionCount: count}

	// 語彙を取りに行く前に設定を検証する
	if err := cfg.Validate(s.limits); err != nil {
		return nil, s.quizError(err)
	}

	vocab, err := s.provider.ListVocabulary(ctx, cfg.CategoryIDs)
	if err != nil {
		logger.Error("Failed to load vocabulary", "error", err, "category_ids", cfg.CategoryIDs)
		return nil, providerError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sess, err := quiz.Start(vocab, cfg, s.sampler, s.limits)
	if err != nil {
		logger.Warn("Quiz could not be started", "error", err, "category_ids", cfg.CategoryIDs, "vocabulary", len(vocab))
		return nil, s.quizError(err)
	}

	quizID := uuid.New()
	s.sessions[quizID] = &liveSession{session: sess, lastUsed: now}

	snap := sess.Snapshot()
	logger.Info("Quiz started",
		"quiz_id", quizID.String(),
		"category_ids", cfg.CategoryIDs,
		"question_count", cfg.QuestionCount,
		"total_questions", snap.TotalQuestions,
	)
	return toQuizResponse(quizID, snap), nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID uuid.UUID) (*model.QuizResponse, error) {
	entry, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return toQuizResponse(quizID, entry.session.Snapshot()), nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, quizID uuid.UUID, answer string) (*model.AnswerResponse, error) {
	logger := middleware.GetLogger(ctx)
	entry, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result, err := entry.session.SubmitAnswer(answer)
	if err != nil {
		return nil, s.quizError(err)
	}
	logger.Debug("Answer graded",
		"quiz_id", quizID.String(),
		"vocabulary_id", result.Entry.ID,
		"correct", result.Correct,
		"phase", result.Phase.String(),
	)
	return &model.AnswerResponse{
		Correct:   result.Correct,
		Expected:  result.Expected,
		Submitted: result.Submitted,
		Quiz:      toQuizResponse(quizID, entry.session.Snapshot()),
	}, nil
}

func (s *quizService) Advance(ctx context.Context, quizID uuid.UUID) (*model.QuizResponse, error) {
	logger := middleware.GetLogger(ctx)
	entry, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	before := entry.session.Phase()
	if err := entry.session.Advance(); err != nil {
		entry.mu.Unlock()
		return nil, s.quizError(err)
	}
	snap := entry.session.Snapshot()

	var record *model.PerformanceRecord
	if snap.Phase == quiz.PhaseFinished && !entry.recorded {
		entry.recorded = true
		record = buildPerformanceRecord(quizID, entry.session, s.now())
	}
	entry.mu.Unlock()

	if snap.Phase != before {
		logger.Info("Quiz phase changed", "quiz_id", quizID.String(), "from", before.String(), "to", snap.Phase.String())
	}
	if record != nil {
		s.dispatchRecord(logger, record)
	}
	return toQuizResponse(quizID, snap), nil
}

func (s *quizService) GetSummary(ctx context.Context, quizID uuid.UUID) (*model.SummaryResponse, error) {
	entry, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	summary, err := entry.session.Summary()
	entry.mu.Unlock()
	if err != nil {
		return nil, s.quizError(err)
	}

	missed := make([]model.MissedWordResponse, 0, len(summary.Missed))
	for _, v := range summary.Missed {
		missed = append(missed, model.MissedWordResponse{
			VocabularyID: v.ID,
			SourceText:   v.SourceText,
			TargetText:   v.TargetText,
		})
	}
	return &model.SummaryResponse{
		QuizID:            quizID,
		TotalQuestions:    summary.TotalQuestions,
		CorrectFirstTry:   summary.CorrectFirstTry,
		CorrectedOnReview: summary.CorrectedOnReview,
		StillIncorrect:    summary.StillIncorrect,
		MissedWords:       missed,
	}, nil
}

// GetAudio は出題中の語の音声を取得します。取得中はセッションをロックしません。
func (s *quizService) GetAudio(ctx context.Context, quizID uuid.UUID) (*model.Audio, error) {
	logger := middleware.GetLogger(ctx)
	entry, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	question, err := entry.session.CurrentQuestion()
	entry.mu.Unlock()
	if err != nil {
		return nil, s.quizError(err)
	}

	if s.audio == nil {
		return nil, audioError(fmt.Errorf("%w: audio disabled", model.ErrAudioUnavailable))
	}
	audio, err := s.audio.FetchAudio(ctx, question.ID)
	if err != nil {
		logger.Warn("Audio unavailable", "quiz_id", quizID.String(), "vocabulary_id", question.ID, "error", err)
		return nil, audioError(err)
	}
	return audio, nil
}

func (s *quizService) DiscardQuiz(ctx context.Context, quizID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[quizID]; !ok {
		return quizNotFound(quizID)
	}
	delete(s.sessions, quizID)
	logger.Info("Quiz discarded", "quiz_id", quizID.String())
	return nil
}

func (s *quizService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *quizService) lookup(quizID uuid.UUID) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[quizID]
	if !ok {
		return nil, quizNotFound(quizID)
	}
	now := s.now()
	if now.Sub(entry.lastUsed) > s.sessionTTL {
		delete(s.sessions, quizID)
		return nil, quizNotFound(quizID)
	}
	entry.lastUsed = now
	return entry, nil
}

// sweepLocked は期限切れのセッションを削除します。s.mu を保持して呼びます。
func (s *quizService) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if now.Sub(entry.lastUsed) > s.sessionTTL {
			delete(s.sessions, id)
			s.logger.Debug("Expired quiz removed", "quiz_id", id.String())
		}
	}
}

// dispatchRecord は成績をバックグラウンドで送信します。失敗はログに残すだけです。
func (s *quizService) dispatchRecord(logger *slog.Logger, record *model.PerformanceRecord) {
	if s.recorder == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logger.Warn("Performance not recorded after shutdown", "quiz_id", record.QuizID.String())
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.recordTimeout)
		defer cancel()
		ctx = middleware.WithLogger(ctx, logger)

		if err := s.recorder.RecordPerformance(ctx, record); err != nil {
			logger.Warn("Failed to record performance", "quiz_id", record.QuizID.String(), "error", err)
			return
		}
		logger.Info("Performance recorded", "quiz_id", record.QuizID.String(), "answers", len(record.Answers))
	}()
}

func buildPerformanceRecord(quizID uuid.UUID, sess *quiz.Session, completedAt time.Time) *model.PerformanceRecord {
	summary, _ := sess.Summary()
	history := sess.Answers()
	answers := make([]model.AnswerRecord, 0, len(history))
	for _, a := range history {
		answers = append(answers, model.AnswerRecord{
			VocabularyID: a.Entry.ID,
			Direction:    model.DirectionSourceToTarget,
			UserAnswer:   a.Submitted,
			IsCorrect:    a.Correct,
			Phase:        a.Phase.String(),
			AnsweredAt:   a.AnsweredAt,
		})
	}
	return &model.PerformanceRecord{
		QuizID:            quizID,
		CategoryIDs:       sess.Config().CategoryIDs,
		TotalQuestions:    summary.TotalQuestions,
		CorrectFirstTry:   summary.CorrectFirstTry,
		CorrectedOnReview: summary.CorrectedOnReview,
		StillIncorrect:    summary.StillIncorrect,
		CompletedAt:       completedAt,
		Answers:           answers,
	}
}

func toQuizResponse(quizID uuid.UUID, snap quiz.Snapshot) *model.QuizResponse {
	resp := &model.QuizResponse{
		QuizID:         quizID,
		Phase:          snap.Phase.String(),
		Position:       snap.Position,
		Length:         snap.Length,
		TotalQuestions: snap.TotalQuestions,
		Answered:       snap.Answered,
		Tally: model.TallyResponse{
			Correct:           snap.Tally.Correct,
			Incorrect:         snap.Tally.Incorrect,
			CorrectedOnReview: snap.Tally.CorrectedOnReview,
		},
	}
	if snap.Question != nil {
		resp.Question = &model.QuestionResponse{
			VocabularyID: snap.Question.ID,
			Prompt:       snap.Question.SourceText,
			CategoryID:   snap.Question.CategoryID,
		}
	}
	return resp
}

func dedupeIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func quizNotFound(quizID uuid.UUID) error {
	return model.NewAppError("QUIZ_NOT_FOUND", "クイズが見つかりません。", "quiz_id",
		fmt.Errorf("quiz %s: %w", quizID, model.ErrNotFound))
}

func providerError(err error) error {
	if errors.Is(err, model.ErrTransport) {
		return model.NewAppError("BACKEND_UNAVAILABLE", "単語データを取得できませんでした。時間をおいて再度お試しください。", "", err)
	}
	return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "",
		fmt.Errorf("%w: %w", model.ErrInternalServer, err))
}

func audioError(err error) error {
	if !errors.Is(err, model.ErrAudioUnavailable) {
		err = fmt.Errorf("%w: %w", model.ErrAudioUnavailable, err)
	}
	return model.NewAppError("AUDIO_UNAVAILABLE", "音声を再生できません。", "", err)
}

// quizError はクイズのエラーを HTTP で返せる AppError に変換します。元のエラーも errors.Is で辿れます。
func (s *quizService) quizError(err error) error {
	wrap := func(class error) error { return fmt.Errorf("%w: %w", class, err) }
	limits := s.limits
	if limits.MinQuestions <= 0 {
		limits.MinQuestions = quiz.MinQuestionCount
	}
	if limits.MaxQuestions <= 0 {
		limits.MaxQuestions = quiz.MaxQuestionCount
	}

	switch {
	case errors.Is(err, quiz.ErrEmptyAnswer):
		return model.NewAppError("EMPTY_ANSWER", "回答を入力してください。", "answer", wrap(model.ErrInvalidInput))
	case errors.Is(err, quiz.ErrInvalidQuestionCount):
		return model.NewAppError("INVALID_QUESTION_COUNT",
			fmt.Sprintf("問題数は%dから%dの範囲で指定してください。", limits.MinQuestions, limits.MaxQuestions),
			"question_count", wrap(model.ErrInvalidInput))
	case errors.Is(err, quiz.ErrNoCategories):
		return model.NewAppError("NO_CATEGORIES", "カテゴリを1つ以上選択してください。", "category_ids", wrap(model.ErrInvalidInput))
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		return model.NewAppError("ALREADY_ANSWERED", "この問題には回答済みです。", "", wrap(model.ErrConflict))
	case errors.Is(err, quiz.ErrNotAnswered):
		return model.NewAppError("NOT_ANSWERED", "先に回答してください。", "", wrap(model.ErrConflict))
	case errors.Is(err, quiz.ErrSessionFinished):
		return model.NewAppError("QUIZ_FINISHED", "クイズは終了しています。", "", wrap(model.ErrConflict))
	case errors.Is(err, quiz.ErrSessionNotFinished):
		return model.NewAppError("QUIZ_NOT_FINISHED", "クイズはまだ終了していません。", "", wrap(model.ErrConflict))
	case errors.Is(err, quiz.ErrData):
		return model.NewAppError("NO_VOCABULARY", "選択したカテゴリに単語がありません。", "category_ids", wrap(model.ErrUnprocessable))
	default:
		return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", wrap(model.ErrInternalServer))
	}
}
