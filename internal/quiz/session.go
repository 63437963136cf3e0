package quiz

import (
	"time"

	"go_5_vocab_quiz/internal/model"
)

// 出題数の既定の範囲
const (
	MinQuestionCount = 5
	MaxQuestionCount = 30
)

// Phase はセッションの段階です。Initial -> Review -> Finished、または Initial -> Finished の一方向にだけ進みます。
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseReview
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseReview:
		return "review"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Config はクイズ開始時の設定です。開始後は変更しません。
type Config struct {
	CategoryIDs   []uint
	QuestionCount int
}

// Limits は出題数の許容範囲です。ゼロ値なら MinQuestionCount..MaxQuestionCount を使います。
type Limits struct {
	MinQuestions int
	MaxQuestions int
}

func (l Limits) orDefault() Limits {
	if l.MinQuestions <= 0 {
		l.MinQuestions = MinQuestionCount
	}
	if l.MaxQuestions <= 0 {
		l.MaxQuestions = MaxQuestionCount
	}
	return l
}

// Validate は設定値を検証します。
func (c Config) Validate(limits Limits) error {
	limits = limits.orDefault()
	if len(c.CategoryIDs) == 0 {
		return ErrNoCategories
	}
	if c.QuestionCount < limits.MinQuestions || c.QuestionCount > limits.MaxQuestions {
		return ErrInvalidQuestionCount
	}
	return nil
}

type Tally struct {
	Correct           int
	Incorrect         int
	CorrectedOnReview int
}

// AnswerResult は1回の採点結果です。
type AnswerResult struct {
	Entry      model.Vocabulary
	Submitted  string
	Expected   string
	Correct    bool
	Phase      Phase
	AnsweredAt time.Time
}

type Summary struct {
	TotalQuestions    int
	CorrectFirstTry   int
	CorrectedOnReview int
	StillIncorrect    int
	Missed            []model.Vocabulary
}

// Snapshot は描画側が読む状態のコピーです。
type Snapshot struct {
	Phase          Phase
	Position       int
	Length         int
	TotalQuestions int
	Answered       bool
	Question       *model.Vocabulary
	Tally          Tally
	LastAnswer     *AnswerResult
}

// Session は1回のクイズの状態機械です。
// ロックは持たないので、呼び出し側が1つのゴルーチンから操作してください。
type Session struct {
	cfg      Config
	phase    Phase
	active   []model.Vocabulary
	position int
	mistakes []model.Vocabulary
	tally    Tally
	answered bool
	total    int
	history  []AnswerResult
	now      func() time.Time
}

// Start は設定を検証し、語彙から出題リストを作ってセッションを開始します。
// sampler が nil の場合は時刻シードの Sampler を使います。
func Start(vocabulary []model.Vocabulary, cfg Config, sampler *Sampler, limits Limits) (*Session, error) {
	if err := cfg.Validate(limits); err != nil {
		return nil, err
	}
	if len(vocabulary) == 0 {
		return nil, ErrNoVocabulary
	}
	if sampler == nil {
		sampler = NewSampler(nil)
	}

	active, err := sampler.Sample(vocabulary, cfg.QuestionCount)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(cfg.CategoryIDs))
	copy(ids, cfg.CategoryIDs)
	cfg.CategoryIDs = ids

	return &Session{
		cfg:    cfg,
		phase:  PhaseInitial,
		active: active,
		total:  len(active),
		now:    time.Now,
	}, nil
}

func (s *Session) Config() Config {
	ids := make([]uint, len(s.cfg.CategoryIDs))
	copy(ids, s.cfg.CategoryIDs)
	return Config{CategoryIDs: ids, QuestionCount: s.cfg.QuestionCount}
}

func (s *Session) Phase() Phase {
	return s.phase
}

// CurrentQuestion は出題中の語を返します。
func (s *Session) CurrentQuestion() (model.Vocabulary, error) {
	if s.phase == PhaseFinished {
		return model.Vocabulary{}, ErrSessionFinished
	}
	return s.active[s.position], nil
}

// SubmitAnswer は現在の問題を採点します。空回答の場合は状態を変えずにエラーを返します。
func (s *Session) SubmitAnswer(text string) (AnswerResult, error) {
	if s.phase == PhaseFinished {
		return AnswerResult{}, ErrSessionFinished
	}
	if s.answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}

	entry := s.active[s.position]
	correct, err := Grade(text, entry.TargetText)
	if err != nil {
		return AnswerResult{}, err
	}

	if correct {
		s.tally.Correct++
		if s.phase == PhaseReview {
			s.tally.CorrectedOnReview++
		}
	} else {
		s.tally.Incorrect++
		s.mistakes = append(s.mistakes, entry)
	}
	s.answered = true

	result := AnswerResult{
		Entry:      entry,
		Submitted:  text,
		Expected:   entry.TargetText,
		Correct:    correct,
		Phase:      s.phase,
		AnsweredAt: s.now(),
	}
	s.history = append(s.history, result)
	return result, nil
}

// Advance は次の問題へ進みます。リストの最後では復習段階に入るか終了します。
func (s *Session) Advance() error {
	if s.phase == PhaseFinished {
		return ErrSessionFinished
	}
	if !s.answered {
		return ErrNotAnswered
	}
	s.answered = false

	if s.position < len(s.active)-1 {
		s.position++
		return nil
	}

	// 復習は1回だけ
	if s.phase == PhaseInitial && len(s.mistakes) > 0 {
		s.phase = PhaseReview
		s.active = s.mistakes
		s.mistakes = nil
		s.position = 0
		return nil
	}

	// mistakes は集計のため残す
	s.phase = PhaseFinished
	s.active = nil
	s.position = 0
	return nil
}

// Summary は終了したセッションの集計を返します。
func (s *Session) Summary() (Summary, error) {
	if s.phase != PhaseFinished {
		return Summary{}, ErrSessionNotFinished
	}
	missed := make([]model.Vocabulary, len(s.mistakes))
	copy(missed, s.mistakes)
	return Summary{
		TotalQuestions:    s.total,
		CorrectFirstTry:   s.tally.Correct - s.tally.CorrectedOnReview,
		CorrectedOnReview: s.tally.CorrectedOnReview,
		StillIncorrect:    len(s.mistakes),
		Missed:            missed,
	}, nil
}

// Answers はこれまでの採点結果を古い順に返します。
func (s *Session) Answers() []AnswerResult {
	out := make([]AnswerResult, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:          s.phase,
		Position:       s.position,
		Length:         len(s.active),
		TotalQuestions: s.total,
		Answered:       s.answered,
		Tally:          s.tally,
	}
	if s.phase != PhaseFinished {
		q := s.active[s.position]
		snap.Question = &q
	}
	if s.answered && len(s.history) > 0 {
		last := s.history[len(s.history)-1]
		snap.LastAnswer = &last
	}
	return snap
}
