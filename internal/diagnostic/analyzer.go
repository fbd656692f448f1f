package diagnostic

import (
	"math"
	"strings"
	"sync/atomic"

	"healprint/internal/models"

	"github.com/google/uuid"
)

var NextSteps = []string{
	"Continue tracking symptoms daily",
	"Consider consulting a healthcare provider for testing",
	"Implement recommended lifestyle changes",
	"Schedule follow-up analysis in 2 weeks",
}

// Analyzer scores symptom reports against the current rule table.
// The table can be swapped while requests are served.
type Analyzer struct {
	table     atomic.Pointer[Table]
	threshold float64
	newID     func() string
}

func NewAnalyzer(table *Table, threshold float64) *Analyzer {
	if table == nil {
		table = DefaultTable()
	}
	a := &Analyzer{
		threshold: threshold,
		newID:     func() string { return "analysis_" + uuid.NewString() },
	}
	a.table.Store(table)
	return a
}

func (a *Analyzer) Swap(t *Table) {
	a.table.Store(t)
}

func (a *Analyzer) Patterns() map[string]Pattern {
	return a.table.Load().Patterns
}

func (a *Analyzer) Analyze(report models.SymptomReport) models.DiagnosticResult {
	t := a.table.Load()
	acc := newAccumulator()

	apply := func(category string, inputs []string) {
		for _, input := range inputs {
			symptom := strings.ToLower(input)
			for _, rule := range t.Rules[category] {
				if !matches(symptom, rule.Keywords) {
					continue
				}
				acc.concerns.add(rule.Concern)
				if p, ok := t.Patterns[rule.Pattern]; ok {
					acc.causes.add(p.Triggers...)
					acc.recommendations.add(p.Recommendations...)
				}
				acc.causes.add(rule.Cause)
				acc.recommendations.add(rule.Recommendation)
				acc.score += rule.Weight
				break
			}
		}
	}
	apply(CategorySkin, report.SkinSymptoms)
	apply(CategoryHair, report.HairSymptoms)
	apply(CategoryLifestyle, report.LifestyleFactors)

	score := math.Min(math.Round(acc.score*100)/100, 1.0)
	return models.DiagnosticResult{
		AnalysisID:        a.newID(),
		UserID:            report.UserID,
		PrimaryConcerns:   acc.concerns.items,
		LikelyCauses:      acc.causes.items,
		Recommendations:   acc.recommendations.items,
		ConfidenceScore:   score,
		NextSteps:         append([]string(nil), NextSteps...),
		ReferralSuggested: score >= a.threshold,
	}
}

func matches(symptom string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(symptom, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

type accumulator struct {
	concerns, causes, recommendations *orderedSet
	score                             float64
}

func newAccumulator() *accumulator {
	return &accumulator{
		concerns:        newOrderedSet(),
		causes:          newOrderedSet(),
		recommendations: newOrderedSet(),
	}
}

// orderedSet 중복 제거, 최초 등장 순서 유지
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]bool{}, items: []string{}}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if v == "" || s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}
