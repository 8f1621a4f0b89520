package practice

import (
	"math"

	"github.com/karim/itqan/internal/content"
)

// confidenceExpected maps each confidence rating (1-3) to the accuracy
// a well-calibrated learner would show at that rating.
var confidenceExpected = [3]float64{0.33, 0.66, 0.90}

// MinRatedForCalibration is the minimum number of confidence-rated
// answers before the calibration score is meaningful.
const MinRatedForCalibration = 3

// ResultForExercise returns the last recorded result for the exercise
// at index, paired with its correct answer. Later retries supersede
// earlier attempts for display.
func (s *Session) ResultForExercise(index int) (Result, string, bool) {
	if index < 0 || index >= len(s.Exercises) {
		return Result{}, "", false
	}
	ex := s.Exercises[index]
	for i := len(s.Results) - 1; i >= 0; i-- {
		if s.Results[i].ExerciseID == ex.ID {
			return s.Results[i], ex.Answer, true
		}
	}
	return Result{}, ex.Answer, false
}

// IncorrectExercises returns the exercises whose final recorded outcome
// was incorrect, in first-attempt order. An exercise retried to success
// is not included.
func (s *Session) IncorrectExercises() []content.Exercise {
	final := make(map[string]bool)
	var order []string
	for _, r := range s.Results {
		if _, seen := final[r.ExerciseID]; !seen {
			order = append(order, r.ExerciseID)
		}
		final[r.ExerciseID] = r.Correct
	}

	byID := make(map[string]content.Exercise, len(s.Exercises))
	for _, ex := range s.Exercises {
		byID[ex.ID] = ex
	}

	var out []content.Exercise
	for _, id := range order {
		if final[id] {
			continue
		}
		if ex, ok := byID[id]; ok {
			out = append(out, ex)
		}
	}
	return out
}

// CorrectCount counts every correct result record; retries count
// separately.
func (s *Session) CorrectCount() int {
	n := 0
	for _, r := range s.Results {
		if r.Correct {
			n++
		}
	}
	return n
}

// IncorrectCount counts every incorrect result record.
func (s *Session) IncorrectCount() int {
	return len(s.Results) - s.CorrectCount()
}

// Accuracy returns the rounded percentage of correct results, 0 when
// nothing has been answered.
func (s *Session) Accuracy() int {
	if len(s.Results) == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectCount()) / float64(len(s.Results)) * 100))
}

// GenerationRate returns the fraction of answers given without hints
// that were correct, the generation-effect payoff. 0 when no unhinted
// answers were recorded.
func (s *Session) GenerationRate() float64 {
	total, correct := 0, 0
	for _, r := range s.Results {
		if r.Meta == nil || !r.Meta.NoHints {
			continue
		}
		total++
		if r.Correct {
			correct++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// ConfidenceCalibration scores how well self-reported confidence (1-3)
// tracks actual accuracy: the mean absolute error between each rated
// level's accuracy and its expected accuracy, converted to [0,1] via
// 1 − meanError. Reports 0 with fewer than three rated answers.
func (s *Session) ConfidenceCalibration() float64 {
	var total [3]int
	var correct [3]int
	rated := 0
	for _, r := range s.Results {
		if r.Meta == nil || r.Meta.Confidence < 1 || r.Meta.Confidence > 3 {
			continue
		}
		rated++
		idx := r.Meta.Confidence - 1
		total[idx]++
		if r.Correct {
			correct[idx]++
		}
	}
	if rated < MinRatedForCalibration {
		return 0
	}

	sumErr, levels := 0.0, 0
	for i := 0; i < 3; i++ {
		if total[i] == 0 {
			continue
		}
		actual := float64(correct[i]) / float64(total[i])
		sumErr += math.Abs(actual - confidenceExpected[i])
		levels++
	}
	if levels == 0 {
		return 0
	}
	score := 1 - sumErr/float64(levels)
	if score < 0 {
		return 0
	}
	return score
}
