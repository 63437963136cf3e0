// internal/tui/model.go
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go_5_vocab_quiz/internal/model"
	"go_5_vocab_quiz/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type screen int

const (
	screenCategories screen = iota
	screenQuestion
	screenSummary
)

// Options は画面の初期値です。
type Options struct {
	MinQuestions     int
	MaxQuestions     int
	DefaultQuestions int
	// AudioDir は取得した音声の保存先です。空なら OS の一時ディレクトリ。
	AudioDir string
}

type categoriesLoadedMsg struct{ categories []model.Category }

type quizStartedMsg struct{ quiz *model.QuizResponse }

type answeredMsg struct{ result *model.AnswerResponse }

type advancedMsg struct{ quiz *model.QuizResponse }

type summaryLoadedMsg struct{ summary *model.SummaryResponse }

type audioSavedMsg struct{ path string }

type discardedMsg struct{}

// errMsg の quizID はクイズ操作の失敗でだけ設定されます。
type errMsg struct {
	err    error
	quizID uuid.UUID
}

// Model は QuizService を操作する bubbletea のモデルです。
type Model struct {
	svc  service.QuizService
	ctx  context.Context
	opts Options

	screen     screen
	categories []model.Category
	cursor     int
	selected   map[uint]bool
	count      int

	quiz       *model.QuizResponse
	lastAnswer *model.AnswerResponse
	summary    *model.SummaryResponse

	input textinput.Model
	// pending は回答または次へ進む操作の応答待ちです。
	pending bool
	status  string
	err     error
}

func New(ctx context.Context, svc service.QuizService, opts Options) Model {
	if opts.MinQuestions <= 0 {
		opts.MinQuestions = 5
	}
	if opts.MaxQuestions < opts.MinQuestions {
		opts.MaxQuestions = opts.MinQuestions
	}
	if opts.DefaultQuestions < opts.MinQuestions || opts.DefaultQuestions > opts.MaxQuestions {
		opts.DefaultQuestions = opts.MinQuestions
	}

	ti := textinput.New()
	ti.Placeholder = "Type the German word and press Enter..."
	ti.CharLimit = 80
	ti.Width = 50
	ti.Prompt = "> "

	return Model{
		svc:      svc,
		ctx:      ctx,
		opts:     opts,
		screen:   screenCategories,
		selected: make(map[uint]bool),
		count:    opts.DefaultQuestions,
		input:    ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCategoriesCmd(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case categoriesLoadedMsg:
		m.categories = msg.categories
		if m.cursor >= len(m.categories) {
			m.cursor = 0
		}
		m.err = nil
		return m, nil
	case quizStartedMsg:
		m.pending = false
		m.quiz = msg.quiz
		m.lastAnswer = nil
		m.summary = nil
		m.status = ""
		m.err = nil
		m.screen = screenQuestion
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case answeredMsg:
		if !m.isCurrent(msg.result.Quiz.QuizID) {
			return m, nil
		}
		m.pending = false
		m.lastAnswer = msg.result
		m.quiz = msg.result.Quiz
		m.err = nil
		m.input.Blur()
		return m, nil
	case advancedMsg:
		if !m.isCurrent(msg.quiz.QuizID) {
			return m, nil
		}
		m.quiz = msg.quiz
		m.lastAnswer = nil
		m.status = ""
		m.err = nil
		if m.quiz.Phase == "finished" {
			// 結果の取得が終わるまで pending のまま
			return m, m.summaryCmd()
		}
		m.pending = false
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case summaryLoadedMsg:
		m.pending = false
		m.summary = msg.summary
		m.screen = screenSummary
		m.input.Blur()
		return m, nil
	case audioSavedMsg:
		m.status = "Audio saved: " + msg.path
		return m, nil
	case discardedMsg:
		m.backToCategories()
		return m, nil
	case errMsg:
		if msg.quizID != uuid.Nil && !m.isCurrent(msg.quizID) {
			return m, nil
		}
		m.pending = false
		m.err = msg.err
		return m, nil
	}

	switch m.screen {
	case screenCategories:
		return m.updateCategories(msg)
	case screenQuestion:
		return m.updateQuestion(msg)
	case screenSummary:
		return m.updateSummary(msg)
	}
	return m, nil
}

func (m Model) updateCategories(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.categories)-1 {
			m.cursor++
		}
	case " ":
		if len(m.categories) > 0 {
			id := m.categories[m.cursor].ID
			m.selected[id] = !m.selected[id]
		}
	case "+", "=":
		if m.count < m.opts.MaxQuestions {
			m.count++
		}
	case "-":
		if m.count > m.opts.MinQuestions {
			m.count--
		}
	case "r":
		return m, m.loadCategoriesCmd()
	case "enter":
		ids := m.selectedIDs()
		if len(ids) == 0 {
			m.status = "Select at least one category."
			return m, nil
		}
		m.status = ""
		m.err = nil
		return m, m.startQuizCmd(ids, m.count)
	}
	return m, nil
}

func (m Model) updateQuestion(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, m.discardCmd()
		case "ctrl+p":
			return m, m.audioCmd()
		case "enter":
			if m.quiz == nil || m.pending {
				return m, nil
			}
			m.pending = true
			if m.quiz.Answered {
				return m, m.advanceCmd()
			}
			return m, m.submitCmd(m.input.Value())
		}
		if m.pending || (m.quiz != nil && m.quiz.Answered) {
			// 応答待ちと回答後は入力を受け付けない
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "enter", "esc":
		var cmd tea.Cmd
		if m.quiz != nil {
			cmd = m.discardCmd()
		}
		m.backToCategories()
		return m, cmd
	}
	return m, nil
}

func (m *Model) backToCategories() {
	m.screen = screenCategories
	m.quiz = nil
	m.lastAnswer = nil
	m.summary = nil
	m.pending = false
	m.status = ""
	m.err = nil
	m.input.SetValue("")
	m.input.Blur()
}

// isCurrent は quizID が表示中のクイズかを返します。破棄後に届いた応答は捨てます。
func (m Model) isCurrent(quizID uuid.UUID) bool {
	return m.quiz != nil && m.quiz.QuizID == quizID
}

// selectedIDs は一覧の並び順で選択中のカテゴリIDを返します。
func (m Model) selectedIDs() []uint {
	var ids []uint
	for _, c := range m.categories {
		if m.selected[c.ID] {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func (m Model) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		categories, err := m.svc.ListCategories(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return categoriesLoadedMsg{categories}
	}
}

func (m Model) startQuizCmd(ids []uint, count int) tea.Cmd {
	req := &model.StartQuizRequest{CategoryIDs: ids, QuestionCount: &count}
	return func() tea.Msg {
		quiz, err := m.svc.StartQuiz(m.ctx, req)
		if err != nil {
			return errMsg{err: err}
		}
		return quizStartedMsg{quiz}
	}
}

func (m Model) submitCmd(answer string) tea.Cmd {
	quizID := m.quiz.QuizID
	return func() tea.Msg {
		result, err := m.svc.SubmitAnswer(m.ctx, quizID, answer)
		if err != nil {
			return errMsg{err: err, quizID: quizID}
		}
		return answeredMsg{result}
	}
}

func (m Model) advanceCmd() tea.Cmd {
	quizID := m.quiz.QuizID
	return func() tea.Msg {
		quiz, err := m.svc.Advance(m.ctx, quizID)
		if err != nil {
			return errMsg{err: err, quizID: quizID}
		}
		return advancedMsg{quiz}
	}
}

func (m Model) summaryCmd() tea.Cmd {
	quizID := m.quiz.QuizID
	return func() tea.Msg {
		summary, err := m.svc.GetSummary(m.ctx, quizID)
		if err != nil {
			return errMsg{err: err, quizID: quizID}
		}
		return summaryLoadedMsg{summary}
	}
}

func (m Model) discardCmd() tea.Cmd {
	if m.quiz == nil {
		return func() tea.Msg { return discardedMsg{} }
	}
	quizID := m.quiz.QuizID
	return func() tea.Msg {
		// 期限切れなどで既に無い場合も一覧に戻る
		if err := m.svc.DiscardQuiz(m.ctx, quizID); err != nil && !errors.Is(err, model.ErrNotFound) {
			return errMsg{err: err}
		}
		return discardedMsg{}
	}
}

// audioCmd は出題中の語の音声を一時ファイルに保存します。
func (m Model) audioCmd() tea.Cmd {
	if m.quiz == nil || m.quiz.Question == nil {
		return nil
	}
	quizID := m.quiz.QuizID
	dir := m.opts.AudioDir
	return func() tea.Msg {
		audio, err := m.svc.GetAudio(m.ctx, quizID)
		if err != nil {
			return errMsg{err: err}
		}
		f, err := os.CreateTemp(dir, "vocab-quiz-*.mp3")
		if err != nil {
			return errMsg{err: fmt.Errorf("save audio: %w", err)}
		}
		defer f.Close()
		if _, err := f.Write(audio.Data); err != nil {
			return errMsg{err: fmt.Errorf("save audio: %w", err)}
		}
		return audioSavedMsg{f.Name()}
	}
}
