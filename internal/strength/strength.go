// Package strength implements the bounded mastery score per item:
// its update rules on correct and incorrect answers, the higher-stakes
// challenge variant, and time decay between practice sessions.
package strength

import "math"

const (
	// MaxScore is the upper bound of the strength scale.
	MaxScore = 100

	// CorrectGain and IncorrectPenalty are the normal-mode deltas.
	CorrectGain      = 10
	IncorrectPenalty = 20

	// ChallengeGain and ChallengePenalty are the challenge-mode deltas.
	ChallengeGain    = 15
	ChallengePenalty = 30

	// ChallengeThreshold is the score at which challenge exercises unlock.
	ChallengeThreshold = 80

	// GraceDays is how long a score holds before decay sets in.
	// Items that have proven mastery get a longer grace period.
	GraceDays       = 3
	ProvenGraceDays = 5

	// DecayPerDay is the score lost per day past the grace period.
	DecayPerDay = 5
)

// Change returns the updated strength after a normal-mode answer.
func Change(current int, correct bool) int {
	if correct {
		return clampScore(current + CorrectGain)
	}
	return clampScore(current - IncorrectPenalty)
}

// ChallengeChange returns the updated strength after a challenge-mode
// answer. Higher reward, higher penalty.
func ChallengeChange(current int, correct bool) int {
	if correct {
		return clampScore(current + ChallengeGain)
	}
	return clampScore(current - ChallengePenalty)
}

// ShouldTriggerChallenge reports whether an item is strong enough for
// the challenge exercise variant.
func ShouldTriggerChallenge(strength int) bool {
	return strength >= ChallengeThreshold
}

// Decay returns the strength after daysSincePractice days without
// practice. Nothing is lost within the grace period.
func Decay(strength, daysSincePractice int, hasProvenMastery bool) int {
	grace := GraceDays
	if hasProvenMastery {
		grace = ProvenGraceDays
	}
	if daysSincePractice <= grace {
		return strength
	}
	return clampScore(strength - DecayPerDay*(daysSincePractice-grace))
}

// LessonStrength aggregates a lesson-level score from its component
// averages: vocabulary weighs most, then grammar, then raw exercise
// accuracy.
func LessonStrength(avgVocab, avgGrammar, exerciseAccuracy float64) int {
	return int(math.Round(0.5*avgVocab + 0.3*avgGrammar + 0.2*exerciseAccuracy))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
