/**
* Name: 			rules.go
* Description: 		증상 키워드 -> 패턴 매칭 규칙 테이블
* Workflow: 		기본 테이블, JSON 파일 로드 및 검증
 */

package diagnostic

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	CategorySkin      = "skin"
	CategoryHair      = "hair"
	CategoryLifestyle = "lifestyle"
)

type Pattern struct {
	Triggers        []string `json:"triggers"`
	Recommendations []string `json:"recommendations"`
}

// Rule fires when any keyword is a substring of the lower-cased symptom.
// A rule either points at a pattern (concern plus pattern triggers) or
// carries a direct cause and recommendation.
type Rule struct {
	Keywords       []string `json:"keywords"`
	Concern        string   `json:"concern,omitempty"`
	Pattern        string   `json:"pattern,omitempty"`
	Cause          string   `json:"cause,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Weight         float64  `json:"weight"`
}

type Table struct {
	Patterns map[string]Pattern `json:"patterns"`
	Rules    map[string][]Rule  `json:"rules"`
}

// DefaultTable 기본 진단 패턴
func DefaultTable() *Table {
	return &Table{
		Patterns: map[string]Pattern{
			"acne": {
				Triggers:        []string{"stress", "hormonal", "diet", "gut_health"},
				Recommendations: []string{"Check hormone levels", "Improve gut health", "Manage stress", "Review diet"},
			},
			"hair_loss": {
				Triggers:        []string{"iron_deficiency", "thyroid", "stress", "hormonal"},
				Recommendations: []string{"Iron level test", "Thyroid function test", "Stress management", "Nutritional support"},
			},
			"dry_skin": {
				Triggers:        []string{"dehydration", "thyroid", "vitamin_deficiency", "environmental"},
				Recommendations: []string{"Increase water intake", "Check thyroid", "Vitamin D test", "Humidifier use"},
			},
		},
		Rules: map[string][]Rule{
			CategorySkin: {
				{Keywords: []string{"acne", "pimple"}, Concern: "Acne/breakouts", Pattern: "acne", Weight: 0.3},
				{Keywords: []string{"dry"}, Concern: "Dry skin", Pattern: "dry_skin", Weight: 0.2},
			},
			CategoryHair: {
				{Keywords: []string{"loss", "thin"}, Concern: "Hair loss/thinning", Pattern: "hair_loss", Weight: 0.3},
			},
			CategoryLifestyle: {
				{Keywords: []string{"stress"}, Cause: "High stress levels", Recommendation: "Implement stress management techniques", Weight: 0.1},
				{Keywords: []string{"poor_diet", "junk"}, Cause: "Nutritional deficiencies", Recommendation: "Improve diet quality and consider supplements", Weight: 0.1},
			},
		},
	}
}

// Validate rejects tables that reference unknown patterns or carry no keywords.
func (t *Table) Validate() error {
	if len(t.Rules) == 0 {
		return errors.New("table has no rules")
	}
	var errs []error
	for category, rules := range t.Rules {
		switch category {
		case CategorySkin, CategoryHair, CategoryLifestyle:
		default:
			errs = append(errs, fmt.Errorf("unknown category %q", category))
		}
		for i, r := range rules {
			if len(r.Keywords) == 0 {
				errs = append(errs, fmt.Errorf("%s rule %d has no keywords", category, i))
			}
			if r.Pattern != "" {
				if _, ok := t.Patterns[r.Pattern]; !ok {
					errs = append(errs, fmt.Errorf("%s rule %d references unknown pattern %q", category, i, r.Pattern))
				}
			}
			if r.Weight < 0 {
				errs = append(errs, fmt.Errorf("%s rule %d has a negative weight", category, i))
			}
		}
	}
	return errors.Join(errs...)
}

func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadTableFile(): %w", err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("LoadTableFile(): invalid JSON: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("LoadTableFile(): %w", err)
	}
	return &t, nil
}
