package quiz

import (
	"errors"
	"fmt"
)

// エラーの分類。個々のエラーはどちらかをラップしているので errors.Is で判定できます。
var (
	ErrValidation = errors.New("quiz: validation error")
	ErrData       = errors.New("quiz: data error")
)

var (
	ErrEmptyAnswer          = fmt.Errorf("%w: answer is empty", ErrValidation)
	ErrAlreadyAnswered      = fmt.Errorf("%w: current question already answered", ErrValidation)
	ErrNotAnswered          = fmt.Errorf("%w: current question not answered yet", ErrValidation)
	ErrSessionFinished      = fmt.Errorf("%w: session is finished", ErrValidation)
	ErrSessionNotFinished   = fmt.Errorf("%w: session is not finished", ErrValidation)
	ErrInvalidQuestionCount = fmt.Errorf("%w: question count out of range", ErrValidation)
	ErrNoCategories         = fmt.Errorf("%w: no category selected", ErrValidation)

	ErrEmptyVocabulary = fmt.Errorf("%w: vocabulary is empty", ErrData)
	ErrNoVocabulary    = fmt.Errorf("%w: no vocabulary for the selected categories", ErrData)
)
