package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregatePercent(t *testing.T) {
	tests := []struct {
		name       string
		lessonIDs  []string
		completion CompletionMap
		want       int
	}{
		{"empty lesson set is zero", nil, CompletionMap{"a": true}, 0},
		{"nothing completed", []string{"a", "b"}, CompletionMap{}, 0},
		{"everything completed", []string{"a", "b", "c"}, CompletionMap{"a": true, "b": true, "c": true}, 100},
		{"half completed", []string{"a", "b"}, CompletionMap{"a": true}, 50},
		{"one third rounds down", []string{"a", "b", "c"}, CompletionMap{"a": true}, 33},
		{"two thirds rounds up", []string{"a", "b", "c"}, CompletionMap{"a": true, "b": true}, 67},
		{"missing rows read as incomplete", []string{"a", "b"}, CompletionMap{"a": true, "unrelated": true}, 50},
		{"explicit false counts as incomplete", []string{"a", "b"}, CompletionMap{"a": true, "b": false}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregatePercent(tt.lessonIDs, tt.completion))
		})
	}
}

func TestLessonIDsAndFindLesson(t *testing.T) {
	path := testTree()[0]

	assert.Equal(t, []string{"lesson-1", "lesson-2", "lesson-3", "lesson-4"}, path.LessonIDs())

	path.Modules[0].Lessons[1].Slug = "budgeting-basics"
	lesson, found := path.FindLesson("budgeting-basics")
	assert.True(t, found)
	assert.Equal(t, "lesson-2", lesson.ID)

	_, found = path.FindLesson("no-such-lesson")
	assert.False(t, found)
}
