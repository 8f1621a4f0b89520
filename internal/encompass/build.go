package encompass

import (
	"sort"

	"github.com/karim/itqan/internal/content"
)

// ManualEdge is an authored override edge, applied after all derived
// edges and never dropped by the weight threshold.
type ManualEdge struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Options configures graph construction.
type Options struct {
	// IncludeLessonEncompassing toggles lesson→lesson edges
	// (adjacent-lesson and cross-book). Lesson→item and item↔item
	// edges are always built.
	IncludeLessonEncompassing bool

	// AdjacentLessonWeight is the base weight toward the immediately
	// preceding lesson; earlier lessons decay linearly with distance.
	AdjacentLessonWeight float64

	// MinWeight drops derived edges below this threshold.
	MinWeight float64

	// SameLessonItemWeight is the weak mutual credit between items
	// taught together in one lesson.
	SameLessonItemWeight float64

	// CrossBookWeight is the flat weight from a later book's lessons
	// to every lesson of every earlier book.
	CrossBookWeight float64

	// ManualOverrides are applied last with threshold 0.
	ManualOverrides []ManualEdge
}

// DefaultOptions returns the curriculum defaults.
func DefaultOptions() Options {
	return Options{
		IncludeLessonEncompassing: true,
		AdjacentLessonWeight:      0.5,
		MinWeight:                 0.1,
		SameLessonItemWeight:      0.3,
		CrossBookWeight:           0.2,
	}
}

// BuildGraph constructs the encompassing graph over a lesson catalog.
// Each call produces a fresh, immutable graph.
func BuildGraph(lessons []content.Lesson, opts Options) *Graph {
	b := NewBuilder()

	ordered := make([]content.Lesson, len(lessons))
	copy(ordered, lessons)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Book != ordered[j].Book {
			return ordered[i].Book < ordered[j].Book
		}
		return ordered[i].Lesson < ordered[j].Lesson
	})

	if opts.IncludeLessonEncompassing {
		addLessonEdges(b, ordered, opts)
	}

	for _, l := range ordered {
		items := l.ItemIDs()

		// A lesson fully encompasses its own items.
		for _, item := range items {
			b.AddEdge(l.ID, item, 1.0, opts.MinWeight)
		}

		// Items taught together lend each other weak mutual credit.
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				b.AddEdge(items[i], items[j], opts.SameLessonItemWeight, opts.MinWeight)
				b.AddEdge(items[j], items[i], opts.SameLessonItemWeight, opts.MinWeight)
			}
		}
	}

	// Overrides bypass the threshold but still obey the max-weight merge.
	for _, m := range opts.ManualOverrides {
		b.AddEdge(m.From, m.To, m.Weight, 0)
	}

	return b.Finalize()
}

// addLessonEdges emits the lesson→lesson hierarchy: linear decay with
// topical distance within a book, a flat weight across book boundaries.
func addLessonEdges(b *Builder, ordered []content.Lesson, opts Options) {
	for i, l := range ordered {
		for j := 0; j < i; j++ {
			earlier := ordered[j]
			if earlier.Book == l.Book {
				distance := l.Lesson - earlier.Lesson
				if distance <= 0 {
					continue
				}
				b.AddEdge(l.ID, earlier.ID, opts.AdjacentLessonWeight/float64(distance), opts.MinWeight)
			} else {
				b.AddEdge(l.ID, earlier.ID, opts.CrossBookWeight, opts.MinWeight)
			}
		}
	}
}
