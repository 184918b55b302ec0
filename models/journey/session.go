package journey

import "fmt"

// Page is one screen of the lesson viewer
type Page string

const (
	PageIntro     Page = "intro"
	PageLearn     Page = "learn"
	PageTakeaways Page = "takeaways"
	PageActions   Page = "actions"
	PageQuiz      Page = "quiz"
)

// pageOrder is the fixed forward order of viewer pages
var pageOrder = []Page{PageIntro, PageLearn, PageTakeaways, PageActions, PageQuiz}

// Session is the in-memory state of one lesson viewing session: the
// active page subset, the current position, the set of checked-off
// tasks and the quiz sub-state. It carries no persistence of its own;
// completion is written through the progress endpoints.
type Session struct {
	Lesson         Lesson
	ActivePages    []Page
	current        int
	CompletedTasks map[string]bool
	Quiz           *QuizState
}

// NewSession builds a session for a lesson. Only the pages whose
// content sections exist are active; intro is always present.
func NewSession(lesson Lesson) *Session {
	active := []Page{PageIntro}
	if len(lesson.Learn) > 0 || lesson.VideoURL != "" {
		active = append(active, PageLearn)
	}
	if len(lesson.Takeaways) > 0 {
		active = append(active, PageTakeaways)
	}
	if len(lesson.Actions) > 0 {
		active = append(active, PageActions)
	}

	s := &Session{
		Lesson:         lesson,
		ActivePages:    active,
		CompletedTasks: make(map[string]bool),
	}
	if len(lesson.Questions) > 0 {
		s.ActivePages = append(s.ActivePages, PageQuiz)
		s.Quiz = NewQuizState(lesson.Questions)
	}
	return s
}

// CurrentPage returns the page the session is on
func (s *Session) CurrentPage() Page {
	return s.ActivePages[s.current]
}

// Next moves forward within the active subset. Returns false at the
// last page.
func (s *Session) Next() bool {
	if s.current >= len(s.ActivePages)-1 {
		return false
	}
	s.current++
	return true
}

// Previous moves backward within the active subset. Returns false at
// the first page.
func (s *Session) Previous() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Jump selects any active page directly. There is no completion
// gating on navigation; a user may open the quiz straight away.
func (s *Session) Jump(page Page) error {
	for i, p := range s.ActivePages {
		if p == page {
			s.current = i
			return nil
		}
	}
	return fmt.Errorf("page %q is not active for this lesson", page)
}

// ToggleTask flips a task key in the completed set
func (s *Session) ToggleTask(key string) {
	if s.CompletedTasks[key] {
		delete(s.CompletedTasks, key)
		return
	}
	s.CompletedTasks[key] = true
}

// MissingRequiredTasks returns the non-optional task keys not yet in
// the completed set, in lesson order.
func (s *Session) MissingRequiredTasks() []string {
	return MissingRequiredTasks(s.Lesson, s.CompletedTasks)
}

// CanComplete reports whether "mark complete" is permitted: every
// non-optional task is checked off. Optional tasks never gate.
func (s *Session) CanComplete() bool {
	return len(s.MissingRequiredTasks()) == 0
}

// MissingRequiredTasks is the server-side form of the completion
// gate, shared with the mark-complete endpoint.
func MissingRequiredTasks(lesson Lesson, completed map[string]bool) []string {
	var missing []string
	for _, key := range lesson.RequiredTaskKeys() {
		if !completed[key] {
			missing = append(missing, key)
		}
	}
	return missing
}

// QuizState holds per-question answers and the graded outcome of the
// session's quiz. Grading happens only on explicit submit.
type QuizState struct {
	Questions []QuizQuestion
	Answers   []QuizAnswer
	Result    *QuizResult
}

// NewQuizState starts an ungraded quiz with all questions unanswered
func NewQuizState(questions []QuizQuestion) *QuizState {
	return &QuizState{
		Questions: questions,
		Answers:   make([]QuizAnswer, len(questions)),
	}
}

// SetAnswer records the answer for one question. Answers can change
// freely until submit.
func (q *QuizState) SetAnswer(index int, answer QuizAnswer) error {
	if index < 0 || index >= len(q.Answers) {
		return fmt.Errorf("question index %d out of range", index)
	}
	q.Answers[index] = answer
	return nil
}

// AllAnswered reports whether every question has an answer
func (q *QuizState) AllAnswered() bool {
	for _, a := range q.Answers {
		if !a.Answered() {
			return false
		}
	}
	return true
}

// Submit grades the quiz. Blocked while any question is unanswered.
func (q *QuizState) Submit() (QuizResult, error) {
	result, err := GradeQuiz(q.Questions, q.Answers)
	if err != nil {
		return QuizResult{}, err
	}
	q.Result = &result
	return result, nil
}

// Retake resets all answers to unanswered and clears the graded state
func (q *QuizState) Retake() {
	q.Answers = make([]QuizAnswer, len(q.Questions))
	q.Result = nil
}
