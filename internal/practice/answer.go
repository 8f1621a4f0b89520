package practice

import "github.com/karim/itqan/internal/hints"

// RecordAnswer processes one answer for the current exercise.
//
// It is a silent no-op when the session is complete, or when terminal
// feedback is showing without retry state (double submission). Every
// accepted call appends exactly one Result. A wrong answer with
// attempts remaining resets the streak (first miss only) and raises a
// hint at the new attempt number; a wrong answer on the final attempt
// discloses the full answer and shows feedback.
func (s *Session) RecordAnswer(correct bool, userAnswer string, meta *AnswerMeta) {
	if s.IsComplete() {
		return
	}
	if s.ShowingFeedback() && !s.Retrying() {
		return
	}

	ex := s.Exercises[s.CurrentIndex]

	attemptNumber := 1
	if s.Retry != nil {
		attemptNumber = s.Retry.AttemptCount + 1
	}
	// Past the bound (answering from the exhausted state) behaves like
	// the final attempt rather than erroring.
	if attemptNumber > hints.MaxRetryAttempts {
		attemptNumber = hints.MaxRetryAttempts
	}

	s.Results = append(s.Results, Result{
		ExerciseID: ex.ID,
		Correct:    correct,
		UserAnswer: userAnswer,
		WasRetry:   attemptNumber > 1,
		Meta:       meta,
	})

	if correct {
		s.Streak++
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}
		s.Retry = nil
		s.Outcome = OutcomeCorrect
		s.LastAnswer = userAnswer
		return
	}

	if attemptNumber == 1 {
		s.Streak = 0
	}

	arabic := hints.IsArabicText(ex.Answer)
	s.Retry = &RetryState{
		AttemptCount:        attemptNumber,
		Hint:                hints.RetryHint(ex.Answer, attemptNumber, arabic),
		LastIncorrectAnswer: userAnswer,
		CorrectAnswer:       ex.Answer,
	}
	s.LastAnswer = userAnswer

	if attemptNumber >= hints.MaxRetryAttempts {
		// Terminal miss: the hint stays populated while feedback shows.
		s.Outcome = OutcomeExhausted
		return
	}
	s.Outcome = OutcomeRetryable
}

// RetryExercise signals the consumer to reset per-attempt input state.
// No-op unless a retry is pending.
func (s *Session) RetryExercise() {
	if s.Outcome != OutcomeRetryable {
		return
	}
	s.retrySignal++
}

// AdvanceToNext clears feedback and retry state, moves to the next
// exercise (entering completion past the end), and pulls the review
// cursor back to the active exercise.
func (s *Session) AdvanceToNext() {
	if s.IsComplete() {
		return
	}
	s.Retry = nil
	s.Outcome = OutcomeNone
	s.LastAnswer = ""
	s.CurrentIndex++
	s.ViewIndex = s.CurrentIndex
}

// Restart resets every piece of session state to initial values.
func (s *Session) Restart() {
	s.CurrentIndex = 0
	s.ViewIndex = 0
	s.Results = nil
	s.Streak = 0
	s.BestStreak = 0
	s.Retry = nil
	s.Outcome = OutcomeNone
	s.LastAnswer = ""
	s.retrySignal = 0
}

// GoToPrevious moves the review cursor back one exercise, clearing any
// active feedback or retry state.
func (s *Session) GoToPrevious() {
	if s.ViewIndex <= 0 {
		return
	}
	s.ViewIndex--
	s.Retry = nil
	s.Outcome = OutcomeNone
}

// GoToNext moves the review cursor forward, never past the active
// exercise.
func (s *Session) GoToNext() {
	if s.ViewIndex >= s.CurrentIndex {
		return
	}
	s.ViewIndex++
	s.Retry = nil
	s.Outcome = OutcomeNone
}
