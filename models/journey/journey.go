package journey

// Types for the content tree fetched from the headless content store.
// These are not database models; the content store owns this data and
// the backend only ever reads it.

// Path levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelAllLevels    = "all-levels"
)

// Lesson types
const (
	LessonTypeVideo      = "video"
	LessonTypeReading    = "reading"
	LessonTypeQuiz       = "quiz"
	LessonTypeExercise   = "exercise"
	LessonTypeAssessment = "assessment"
)

// Path is a top-level course (a "journey path")
type Path struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description []Block     `json:"description"`
	Duration    string      `json:"duration"`
	Level       string      `json:"level"`
	IsPremium   bool        `json:"is_premium"`
	UserType    AudienceTag `json:"user_type"`
	Modules     []Module    `json:"modules"`
}

// Module is an ordered section within a path
type Module struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    string      `json:"duration"`
	OrderIndex  int         `json:"order_index"`
	UserType    AudienceTag `json:"user_type"`
	Lessons     []Lesson    `json:"lessons"`
}

// Lesson is a single unit of content within a module
type Lesson struct {
	ID         string      `json:"_id"`
	Title      string      `json:"title"`
	Slug       string      `json:"slug"`
	Type       string      `json:"type"`
	OrderIndex int         `json:"order_index"`
	Duration   string      `json:"duration"`
	UserType   AudienceTag `json:"user_type"`

	// Type-specific payload; only the sections the lesson has are set
	Intro     []Block        `json:"intro"`
	Learn     []Block        `json:"learn"`
	Takeaways []string       `json:"takeaways"`
	Actions   []Task         `json:"actions"`
	Questions []QuizQuestion `json:"questions"`
	VideoURL  string         `json:"video_url"`
}

// Block is one rich-text block as projected by the content query
type Block struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

// Task is an action-section deliverable. Optional tasks never gate
// lesson completion.
type Task struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Optional bool   `json:"optional"`
}

// RequiredTaskKeys returns the keys of all non-optional tasks
func (l Lesson) RequiredTaskKeys() []string {
	var keys []string
	for _, t := range l.Actions {
		if !t.Optional {
			keys = append(keys, t.Key)
		}
	}
	return keys
}

// LessonIDs flattens a path into the ids of all its lessons
func (p Path) LessonIDs() []string {
	var ids []string
	for _, m := range p.Modules {
		for _, l := range m.Lessons {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// FindLesson looks a lesson up by slug across all modules of a path
func (p Path) FindLesson(slug string) (Lesson, bool) {
	for _, m := range p.Modules {
		for _, l := range m.Lessons {
			if l.Slug == slug {
				return l, true
			}
		}
	}
	return Lesson{}, false
}
