// internal/tui/view.go
package tui

import (
	"errors"
	"fmt"
	"strings"

	"go_5_vocab_quiz/internal/model"
)

func (m Model) View() string {
	var b strings.Builder
	switch m.screen {
	case screenCategories:
		b.WriteString(m.viewCategories())
	case screenQuestion:
		b.WriteString(m.viewQuestion())
	case screenSummary:
		b.WriteString(m.viewSummary())
	}
	if m.status != "" {
		b.WriteString("\n" + styleSubtle.Render(m.status))
	}
	if m.err != nil {
		b.WriteString("\n" + styleError.Render(errorText(m.err)))
	}
	return b.String() + "\n"
}

func (m Model) viewCategories() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Choose categories") + "\n\n")
	if len(m.categories) == 0 {
		b.WriteString(styleSubtle.Render("  No categories loaded (r: reload)") + "\n")
	}
	for i, c := range m.categories {
		cursor := "  "
		if i == m.cursor {
			cursor = styleCursor.Render("> ")
		}
		check := "[ ]"
		if m.selected[c.ID] {
			check = styleCorrect.Render("[x]")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, check, c.Name)
	}
	fmt.Fprintf(&b, "\nQuestions: %d (%d-%d)\n", m.count, m.opts.MinQuestions, m.opts.MaxQuestions)
	b.WriteString(styleSubtle.Render("space: select  +/-: count  enter: start  q: quit"))
	return b.String()
}

func (m Model) viewQuestion() string {
	if m.quiz == nil || m.quiz.Question == nil {
		return styleSubtle.Render("Loading...")
	}
	var b strings.Builder

	phase := "Round 1"
	if m.quiz.Phase == "review" {
		phase = styleReview.Render("Review")
	}
	header := fmt.Sprintf("%s  %d/%d", phase, m.quiz.Position+1, m.quiz.Length)
	b.WriteString(styleHeader.Render(header) + "\n")
	b.WriteString(stylePrompt.Render(m.quiz.Question.Prompt) + "\n")

	if m.lastAnswer == nil {
		b.WriteString(m.input.View() + "\n\n")
		b.WriteString(styleSubtle.Render("enter: answer  ctrl+p: pronunciation  esc: abandon"))
	} else {
		if m.lastAnswer.Correct {
			b.WriteString(styleCorrect.Render("Correct!") + "\n")
		} else {
			b.WriteString(styleIncorrect.Render("Incorrect.") + " Correct answer: " + m.lastAnswer.Expected + "\n")
		}
		b.WriteString("\n" + styleSubtle.Render("enter: next  ctrl+p: pronunciation  esc: abandon"))
	}

	t := m.quiz.Tally
	fmt.Fprintf(&b, "\n%s %d  %s %d",
		styleCorrect.Render("✓"), t.Correct,
		styleIncorrect.Render("✗"), t.Incorrect)
	if t.CorrectedOnReview > 0 {
		fmt.Fprintf(&b, "  %s %d", styleReview.Render("↺"), t.CorrectedOnReview)
	}
	return b.String()
}

func (m Model) viewSummary() string {
	s := m.summary
	if s == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render("Results") + "\n\n")

	lines := []string{
		fmt.Sprintf("Questions:            %d", s.TotalQuestions),
		styleCorrect.Render(fmt.Sprintf("Correct first try:    %d", s.CorrectFirstTry)),
		styleReview.Render(fmt.Sprintf("Corrected on review:  %d", s.CorrectedOnReview)),
		styleIncorrect.Render(fmt.Sprintf("Still incorrect:      %d", s.StillIncorrect)),
	}
	b.WriteString(styleBox.Render(strings.Join(lines, "\n")) + "\n")

	if len(s.MissedWords) > 0 {
		b.WriteString("\nWords to practice:\n")
		for _, w := range s.MissedWords {
			fmt.Fprintf(&b, "  %s = %s\n", w.SourceText, w.TargetText)
		}
	}
	b.WriteString("\n" + styleSubtle.Render("enter: new round  q: quit"))
	return b.String()
}

func errorText(err error) string {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return appErr.Detail.Message
	}
	return "Error: " + err.Error()
}
