package journey

import "fmt"

// Question types
const (
	QuestionMultipleChoice = "multipleChoice"
	QuestionTrueFalse      = "trueFalse"
)

// QuizQuestion is one question of a lesson quiz
type QuizQuestion struct {
	ID            string       `json:"_id"`
	Type          string       `json:"type"`
	Question      string       `json:"question"`
	Options       []QuizOption `json:"options"`        // multiple choice
	CorrectAnswer bool         `json:"correct_answer"` // true/false
	Feedback      string       `json:"feedback"`
}

// QuizOption is one selectable option of a multiple-choice question
type QuizOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuizAnswer is a user's answer to one question: an option index for
// multiple choice, a boolean for true/false. Both nil means the
// question is unanswered.
type QuizAnswer struct {
	OptionIndex *int  `json:"option_index,omitempty"`
	BoolAnswer  *bool `json:"bool_answer,omitempty"`
}

// Answered reports whether the user has answered the question
func (a QuizAnswer) Answered() bool {
	return a.OptionIndex != nil || a.BoolAnswer != nil
}

// QuestionResult is the graded outcome of one question
type QuestionResult struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// QuizResult is the graded outcome of an explicit quiz submit
type QuizResult struct {
	Results    []QuestionResult `json:"results"`
	TotalScore int              `json:"total_score"`
	MaxScore   int              `json:"max_score"`
}

// GradeQuiz grades a full set of answers against the stored questions.
// Grading happens only on explicit submit and is rejected while any
// question is unanswered or the answer shape does not match the
// question type.
func GradeQuiz(questions []QuizQuestion, answers []QuizAnswer) (QuizResult, error) {
	if len(answers) != len(questions) {
		return QuizResult{}, fmt.Errorf("expected %d answers, got %d", len(questions), len(answers))
	}

	result := QuizResult{
		Results:  make([]QuestionResult, len(questions)),
		MaxScore: len(questions),
	}

	for i, q := range questions {
		a := answers[i]
		if !a.Answered() {
			return QuizResult{}, fmt.Errorf("question %d is unanswered", i+1)
		}

		correct := false
		switch q.Type {
		case QuestionTrueFalse:
			if a.BoolAnswer == nil {
				return QuizResult{}, fmt.Errorf("question %d expects a true/false answer", i+1)
			}
			correct = *a.BoolAnswer == q.CorrectAnswer
		default: // multiple choice
			if a.OptionIndex == nil {
				return QuizResult{}, fmt.Errorf("question %d expects an option index", i+1)
			}
			idx := *a.OptionIndex
			if idx < 0 || idx >= len(q.Options) {
				return QuizResult{}, fmt.Errorf("question %d: option index %d out of range", i+1, idx)
			}
			correct = q.Options[idx].IsCorrect
		}

		result.Results[i] = QuestionResult{Correct: correct, Feedback: q.Feedback}
		if correct {
			result.TotalScore++
		}
	}

	return result, nil
}
