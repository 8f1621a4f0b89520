// Package practice drives a single learner through an ordered list of
// exercises: the multi-attempt retry protocol, streak tracking, review
// navigation, and the per-session statistics derived from the results.
package practice

import (
	"github.com/google/uuid"

	"github.com/karim/itqan/internal/content"
	"github.com/karim/itqan/internal/hints"
)

// Outcome tags the terminal state of the current exercise, replacing
// overlapping showing-feedback/is-retrying booleans with one variant.
type Outcome int

const (
	// OutcomeNone: awaiting an answer for the current exercise.
	OutcomeNone Outcome = iota
	// OutcomeCorrect: answered correctly, feedback showing.
	OutcomeCorrect
	// OutcomeRetryable: answered incorrectly with attempts remaining;
	// the caller triggers the retry.
	OutcomeRetryable
	// OutcomeExhausted: incorrect on the final attempt; full answer
	// disclosed and feedback showing.
	OutcomeExhausted
)

// RetryState exists only while an exercise is mid-retry.
type RetryState struct {
	AttemptCount        int // 1..hints.MaxRetryAttempts
	Hint                hints.Hint
	LastIncorrectAnswer string
	CorrectAnswer       string
}

// AnswerMeta is optional self-reported metadata attached to one answer.
type AnswerMeta struct {
	Confidence     int  // 1-3, 0 if unrated
	NoHints        bool // answered without using hints
	ResponseTimeMs int
}

// Result records one attempt. Every attempt appends a result, retries
// included; results never shrink for the lifetime of a session.
type Result struct {
	ExerciseID string
	Correct    bool
	UserAnswer string
	WasRetry   bool
	Meta       *AnswerMeta
}

// Session is the practice state machine for one learner's one attempt
// sequence. It owns all mutable state; persistence of Results into the
// strength store is the caller's job.
type Session struct {
	ID        string
	Exercises []content.Exercise

	CurrentIndex int
	ViewIndex    int
	Results      []Result
	Streak       int
	BestStreak   int
	Retry        *RetryState
	Outcome      Outcome
	LastAnswer   string

	retrySignal int
}

// NewSession creates a session over an already-selected, already-ordered
// exercise list. An empty list yields an immediately complete session.
func NewSession(exercises []content.Exercise) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Exercises: exercises,
	}
}

// IsComplete reports whether every exercise has been advanced past.
func (s *Session) IsComplete() bool {
	return s.CurrentIndex >= len(s.Exercises)
}

// Current returns the exercise awaiting an answer, nil when complete.
func (s *Session) Current() *content.Exercise {
	if s.IsComplete() {
		return nil
	}
	return &s.Exercises[s.CurrentIndex]
}

// Viewed returns the exercise under the review cursor.
func (s *Session) Viewed() *content.Exercise {
	if s.ViewIndex < 0 || s.ViewIndex >= len(s.Exercises) {
		return nil
	}
	return &s.Exercises[s.ViewIndex]
}

// InReview reports whether the caller is inspecting a past exercise.
func (s *Session) InReview() bool {
	return s.ViewIndex < s.CurrentIndex
}

// ShowingFeedback reports whether a terminal outcome is displayed for
// the current exercise. True for both correct and exhausted outcomes.
func (s *Session) ShowingFeedback() bool {
	return s.Outcome == OutcomeCorrect || s.Outcome == OutcomeExhausted
}

// Retrying reports whether retry state is populated. At exhaustion this
// holds alongside ShowingFeedback.
func (s *Session) Retrying() bool {
	return s.Retry != nil
}

// CurrentHint returns the active hint, or nil outside a retry.
func (s *Session) CurrentHint() *hints.Hint {
	if s.Retry == nil {
		return nil
	}
	return &s.Retry.Hint
}

// RetrySignal is an opaque counter the consumer watches to reset
// per-attempt input state.
func (s *Session) RetrySignal() int {
	return s.retrySignal
}
