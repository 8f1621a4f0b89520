package content

// ExerciseKind identifies what an exercise asks the learner to do.
// Behavior keys off the kind, so no exercise carries fields it never uses.
type ExerciseKind string

const (
	KindTranslation ExerciseKind = "translation"
	KindVocabulary  ExerciseKind = "vocabulary"
	KindListening   ExerciseKind = "listening"
	KindFillBlank   ExerciseKind = "fill-blank"
	KindChallenge   ExerciseKind = "challenge"
)

// AllKinds returns the exercise kinds in display order.
func AllKinds() []ExerciseKind {
	return []ExerciseKind{
		KindTranslation,
		KindVocabulary,
		KindListening,
		KindFillBlank,
		KindChallenge,
	}
}

// Exercise is a single practice task. ItemIDs lists the knowledge items
// it exercises; strength updates and credit propagation key off those ids.
type Exercise struct {
	ID      string       `json:"id"`
	Kind    ExerciseKind `json:"kind"`
	ItemIDs []string     `json:"item_ids"`
	Prompt  string       `json:"prompt"`
	Answer  string       `json:"answer"`
	Choices []string     `json:"choices,omitempty"`
}

// IsChallenge reports whether this exercise uses the higher-stakes
// scoring variant.
func (e Exercise) IsChallenge() bool {
	return e.Kind == KindChallenge
}

// Lesson is one unit of a book: the items it teaches plus its exercises.
// Book and Lesson are 1-based positions within the curriculum.
type Lesson struct {
	ID            string     `json:"id"`
	Book          int        `json:"book"`
	Lesson        int        `json:"lesson"`
	Vocabulary    []string   `json:"vocabulary"`
	GrammarPoints []string   `json:"grammar_points"`
	Exercises     []Exercise `json:"exercises"`
}

// ItemIDs returns all item ids taught by the lesson, vocabulary first.
func (l Lesson) ItemIDs() []string {
	ids := make([]string, 0, len(l.Vocabulary)+len(l.GrammarPoints))
	ids = append(ids, l.Vocabulary...)
	ids = append(ids, l.GrammarPoints...)
	return ids
}
