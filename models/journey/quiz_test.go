package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestGradeQuizMultipleChoice(t *testing.T) {
	questions := []QuizQuestion{
		{
			Type:     QuestionMultipleChoice,
			Options:  []QuizOption{{Text: "A", IsCorrect: false}, {Text: "B", IsCorrect: true}},
			Feedback: "B is right because of compounding.",
		},
	}

	result, err := GradeQuiz(questions, []QuizAnswer{{OptionIndex: intPtr(1)}})
	require.NoError(t, err)
	assert.True(t, result.Results[0].Correct)
	assert.Equal(t, "B is right because of compounding.", result.Results[0].Feedback)
	assert.Equal(t, 1, result.TotalScore)

	result, err = GradeQuiz(questions, []QuizAnswer{{OptionIndex: intPtr(0)}})
	require.NoError(t, err)
	assert.False(t, result.Results[0].Correct)
	assert.Equal(t, 0, result.TotalScore)
}

func TestGradeQuizTrueFalse(t *testing.T) {
	questions := []QuizQuestion{
		{Type: QuestionTrueFalse, CorrectAnswer: true, Feedback: "Credit scores update monthly."},
	}

	result, err := GradeQuiz(questions, []QuizAnswer{{BoolAnswer: boolPtr(false)}})
	require.NoError(t, err)
	assert.False(t, result.Results[0].Correct)

	result, err = GradeQuiz(questions, []QuizAnswer{{BoolAnswer: boolPtr(true)}})
	require.NoError(t, err)
	assert.True(t, result.Results[0].Correct)
}

func TestGradeQuizFourQuestionsThreeCorrect(t *testing.T) {
	questions := []QuizQuestion{
		{Type: QuestionMultipleChoice, Options: []QuizOption{{IsCorrect: true}, {IsCorrect: false}}, Feedback: "fb1"},
		{Type: QuestionMultipleChoice, Options: []QuizOption{{IsCorrect: false}, {IsCorrect: true}}, Feedback: "fb2"},
		{Type: QuestionTrueFalse, CorrectAnswer: false, Feedback: "fb3"},
		{Type: QuestionTrueFalse, CorrectAnswer: true, Feedback: "fb4"},
	}
	answers := []QuizAnswer{
		{OptionIndex: intPtr(0)},   // correct
		{OptionIndex: intPtr(1)},   // correct
		{BoolAnswer: boolPtr(false)}, // correct
		{BoolAnswer: boolPtr(false)}, // wrong
	}

	result, err := GradeQuiz(questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalScore)
	assert.Equal(t, 4, result.MaxScore)

	for i, want := range []string{"fb1", "fb2", "fb3", "fb4"} {
		assert.Equal(t, want, result.Results[i].Feedback)
	}
}

func TestGradeQuizBlocksIncompleteSubmission(t *testing.T) {
	questions := []QuizQuestion{
		{Type: QuestionMultipleChoice, Options: []QuizOption{{IsCorrect: true}}},
		{Type: QuestionTrueFalse, CorrectAnswer: true},
	}

	// Unanswered second question
	_, err := GradeQuiz(questions, []QuizAnswer{{OptionIndex: intPtr(0)}, {}})
	assert.Error(t, err)

	// Wrong answer count
	_, err = GradeQuiz(questions, []QuizAnswer{{OptionIndex: intPtr(0)}})
	assert.Error(t, err)

	// Out-of-range option index
	_, err = GradeQuiz(questions, []QuizAnswer{{OptionIndex: intPtr(5)}, {BoolAnswer: boolPtr(true)}})
	assert.Error(t, err)

	// Wrong answer shape for a true/false question
	_, err = GradeQuiz(questions, []QuizAnswer{{OptionIndex: intPtr(0)}, {OptionIndex: intPtr(0)}})
	assert.Error(t, err)
}
