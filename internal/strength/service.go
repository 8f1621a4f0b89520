package strength

import (
	"math"
	"sort"
	"time"

	"github.com/karim/itqan/internal/encompass"
)

// ImplicitCreditScale converts an encompassing edge weight into the
// score bump granted when a related item is practiced.
const ImplicitCreditScale = 5

// ImplicitCreditThreshold is the minimum edge weight that earns credit.
const ImplicitCreditThreshold = 0.5

// Record is the per-item strength state handed back to the persistence
// collaborator after every update.
type Record struct {
	ItemID        string
	Score         int
	LastPracticed time.Time
	ProvenMastery bool
}

// Service manages strength records for all items a learner has touched.
// It holds caller-provided state only; persistence stays external.
type Service struct {
	records map[string]*Record
}

// NewService creates a strength service seeded with previously stored
// records.
func NewService(records []Record) *Service {
	s := &Service{records: make(map[string]*Record, len(records))}
	for i := range records {
		r := records[i]
		s.records[r.ItemID] = &r
	}
	return s
}

// Get returns the record for an item, creating a zero-score record on
// first touch.
func (s *Service) Get(itemID string) *Record {
	if r, ok := s.records[itemID]; ok {
		return r
	}
	r := &Record{ItemID: itemID}
	s.records[itemID] = r
	return r
}

// RecordAnswer applies one answer to an item's strength. Challenge
// answers use the higher-stakes deltas. Crossing the challenge
// threshold marks mastery as proven; the flag is never cleared by a
// later drop.
func (s *Service) RecordAnswer(itemID string, correct, challenge bool, now time.Time) *Record {
	r := s.Get(itemID)
	if challenge {
		r.Score = ChallengeChange(r.Score, correct)
	} else {
		r.Score = Change(r.Score, correct)
	}
	r.LastPracticed = now
	if r.Score >= ChallengeThreshold {
		r.ProvenMastery = true
	}
	return r
}

// ApplyDecay evaluates time decay for every record and returns the ids
// whose score changed.
func (s *Service) ApplyDecay(now time.Time) []string {
	var changed []string
	for id, r := range s.records {
		if r.LastPracticed.IsZero() {
			continue
		}
		days := int(now.Sub(r.LastPracticed).Hours() / 24)
		decayed := Decay(r.Score, days, r.ProvenMastery)
		if decayed != r.Score {
			r.Score = decayed
			changed = append(changed, id)
		}
	}
	sort.Strings(changed)
	return changed
}

// ApplyImplicitCredit grants partial credit to every item directly
// encompassed by the practiced item. The bump scales with the edge
// weight; it neither refreshes LastPracticed nor proves mastery, so
// credited items still decay and must be challenged directly.
// Returns the ids that received credit.
func (s *Service) ApplyImplicitCredit(itemID string, g *encompass.Graph) []string {
	if g == nil {
		return nil
	}
	var credited []string
	for _, e := range g.Encompasses[itemID] {
		if e.Weight < ImplicitCreditThreshold {
			continue
		}
		bump := int(math.Round(e.Weight * ImplicitCreditScale))
		if bump == 0 {
			continue
		}
		r := s.Get(e.Target)
		next := r.Score + bump
		if next > MaxScore {
			next = MaxScore
		}
		if next != r.Score {
			r.Score = next
			credited = append(credited, e.Target)
		}
	}
	sort.Strings(credited)
	return credited
}

// Records exports all records sorted by item id, for persistence.
func (s *Service) Records() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Reset drops every record. Used only by an explicit learner reset.
func (s *Service) Reset() {
	s.records = make(map[string]*Record)
}
