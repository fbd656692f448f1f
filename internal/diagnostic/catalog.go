package diagnostic

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

type SymptomCategory struct {
	Category          string   `json:"category"`
	Symptoms          []string `json:"symptoms"`
	SeverityLevels    []string `json:"severity_levels"`
	AssociatedFactors []string `json:"associated_factors"`
}

type Question struct {
	QuestionID        string   `json:"question_id"`
	Question          string   `json:"question"`
	Category          string   `json:"category"`
	ResponseType      string   `json:"response_type"`
	Options           []string `json:"options,omitempty"`
	FollowUpQuestions []string `json:"follow_up_questions,omitempty"`
}

type HealthFactor struct {
	Factor          string   `json:"factor"`
	ImpactLevel     string   `json:"impact_level"`
	RelatedSymptoms []string `json:"related_symptoms"`
	Recommendations []string `json:"recommendations"`
}

type PatternDetail struct {
	Symptoms            []string `json:"symptoms"`
	LikelyCauses        []string `json:"likely_causes"`
	ConfidenceThreshold float64  `json:"confidence_threshold"`
}

// Catalog 채팅 에이전트가 참고하는 진단 데이터
type Catalog struct {
	SymptomCategories   map[string]SymptomCategory          `json:"symptom_categories"`
	DiagnosticQuestions []Question                          `json:"diagnostic_questions"`
	HealthFactors       map[string]HealthFactor             `json:"health_factors"`
	DiagnosticPatterns  map[string]map[string]PatternDetail `json:"diagnostic_patterns"`
	RecommendedTests    map[string][]string                 `json:"recommended_tests"`
}

// LoadCatalog reads path, or returns the built-in catalog when path is empty
// or the file does not exist.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("LoadCatalog(): %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("LoadCatalog(): invalid JSON: %w", err)
	}
	if len(c.SymptomCategories) == 0 {
		return nil, errors.New("LoadCatalog(): catalog has no symptom categories")
	}
	return &c, nil
}

// HealthFactorsFor returns the factors whose related symptoms intersect
// symptoms, ordered by factor key.
func (c *Catalog) HealthFactorsFor(symptoms []string) []HealthFactor {
	wanted := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		wanted[s] = true
	}
	keys := make([]string, 0, len(c.HealthFactors))
	for k := range c.HealthFactors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	factors := make([]HealthFactor, 0)
	for _, k := range keys {
		f := c.HealthFactors[k]
		for _, s := range f.RelatedSymptoms {
			if wanted[s] {
				factors = append(factors, f)
				break
			}
		}
	}
	return factors
}

// CategoryKeys 카테고리 키 정렬 목록
func (c *Catalog) CategoryKeys() []string {
	keys := make([]string, 0, len(c.SymptomCategories))
	for k := range c.SymptomCategories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func DefaultCatalog() *Catalog {
	severity := []string{"mild", "moderate", "severe"}
	return &Catalog{
		SymptomCategories: map[string]SymptomCategory{
			"skin_conditions": {
				Category: "Skin Conditions",
				Symptoms: []string{
					"acne", "blackheads", "whiteheads", "cysts", "nodules",
					"dry_skin", "oily_skin", "sensitive_skin", "redness", "inflammation",
					"rashes", "eczema", "psoriasis", "dermatitis", "rosacea",
					"hyperpigmentation", "dark_spots", "melasma", "age_spots",
					"wrinkles", "fine_lines", "sagging", "dull_skin", "uneven_texture",
				},
				SeverityLevels:    severity,
				AssociatedFactors: []string{"hormonal", "dietary", "stress", "environmental", "genetic"},
			},
			"hair_conditions": {
				Category: "Hair Conditions",
				Symptoms: []string{
					"hair_loss", "thinning", "bald_patches", "receding_hairline",
					"dry_hair", "oily_hair", "brittle_hair", "split_ends",
					"dandruff", "scalp_irritation", "scalp_psoriasis", "scalp_eczema",
					"slow_growth", "excessive_shedding", "breakage", "frizz",
				},
				SeverityLevels:    severity,
				AssociatedFactors: []string{"nutritional", "hormonal", "stress", "genetic", "environmental"},
			},
			"internal_health": {
				Category: "Internal Health Indicators",
				Symptoms: []string{
					"digestive_issues", "bloating", "constipation", "diarrhea", "acid_reflux",
					"fatigue", "low_energy", "sleep_issues", "insomnia", "poor_sleep_quality",
					"mood_swings", "anxiety", "depression", "irritability", "brain_fog",
					"weight_changes", "unexplained_weight_gain", "unexplained_weight_loss",
					"hormonal_imbalances", "irregular_cycles", "pms_symptoms", "menopause_symptoms",
				},
				SeverityLevels:    severity,
				AssociatedFactors: []string{"lifestyle", "dietary", "stress", "genetic", "environmental"},
			},
		},
		DiagnosticQuestions: []Question{
			{QuestionID: "skin_primary_concern", Question: "What is your primary skin concern right now?", Category: "skin_conditions", ResponseType: "multiple_choice",
				Options: []string{"acne", "dryness", "oily skin", "sensitivity", "aging", "pigmentation", "other"}, FollowUpQuestions: []string{"skin_severity", "skin_duration"}},
			{QuestionID: "hair_primary_concern", Question: "What is your main hair concern?", Category: "hair_conditions", ResponseType: "multiple_choice",
				Options: []string{"hair loss", "thinning", "dryness", "dandruff", "slow growth", "breakage", "other"}, FollowUpQuestions: []string{"hair_severity", "hair_duration"}},
			{QuestionID: "stress_level", Question: "How would you rate your current stress level?", Category: "internal_health", ResponseType: "scale",
				Options: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, FollowUpQuestions: []string{"stress_sources", "stress_management"}},
			{QuestionID: "sleep_quality", Question: "How would you describe your sleep quality?", Category: "internal_health", ResponseType: "multiple_choice",
				Options: []string{"excellent", "good", "fair", "poor", "very poor"}, FollowUpQuestions: []string{"sleep_duration", "sleep_issues"}},
			{QuestionID: "diet_quality", Question: "How would you rate your current diet?", Category: "internal_health", ResponseType: "multiple_choice",
				Options: []string{"excellent", "good", "fair", "poor", "very poor"}, FollowUpQuestions: []string{"diet_details", "supplements"}},
			{QuestionID: "digestive_health", Question: "Do you experience any digestive issues?", Category: "internal_health", ResponseType: "yes_no",
				FollowUpQuestions: []string{"digestive_symptoms", "digestive_frequency"}},
			{QuestionID: "hormonal_changes", Question: "Have you noticed any hormonal changes recently?", Category: "internal_health", ResponseType: "yes_no",
				FollowUpQuestions: []string{"hormonal_symptoms", "cycle_changes"}},
		},
		HealthFactors: map[string]HealthFactor{
			"nutritional": {
				Factor: "Nutritional Deficiencies", ImpactLevel: "high",
				RelatedSymptoms: []string{"hair_loss", "dry_skin", "fatigue", "brittle_hair", "slow_healing"},
				Recommendations: []string{
					"Get comprehensive blood work (iron, B12, vitamin D, zinc)",
					"Increase protein intake",
					"Add omega-3 fatty acids",
					"Consider multivitamin supplement",
					"Eat more leafy greens and colorful vegetables",
				},
			},
			"hormonal": {
				Factor: "Hormonal Imbalances", ImpactLevel: "high",
				RelatedSymptoms: []string{"acne", "hair_loss", "mood_swings", "weight_changes", "irregular_cycles"},
				Recommendations: []string{
					"Get hormone panel testing (thyroid, sex hormones)",
					"Track menstrual cycles",
					"Manage stress levels",
					"Consider adaptogenic herbs",
					"Consult endocrinologist if severe",
				},
			},
			"stress": {
				Factor: "Chronic Stress", ImpactLevel: "high",
				RelatedSymptoms: []string{"acne", "hair_loss", "fatigue", "sleep_issues", "inflammation"},
				Recommendations: []string{
					"Implement stress management techniques",
					"Practice meditation or yoga",
					"Get adequate sleep",
					"Consider therapy or counseling",
					"Engage in regular physical activity",
				},
			},
			"digestive": {
				Factor: "Gut Health Issues", ImpactLevel: "medium",
				RelatedSymptoms: []string{"acne", "skin_inflammation", "bloating", "fatigue", "mood_issues"},
				Recommendations: []string{
					"Get gut health testing",
					"Eliminate inflammatory foods",
					"Add probiotics and prebiotics",
					"Manage stress",
					"Consider elimination diet",
				},
			},
			"environmental": {
				Factor: "Environmental Factors", ImpactLevel: "medium",
				RelatedSymptoms: []string{"dry_skin", "sensitivity", "premature_aging", "inflammation"},
				Recommendations: []string{
					"Use gentle, fragrance-free products",
					"Protect skin from UV damage",
					"Improve indoor air quality",
					"Use humidifier",
					"Avoid harsh chemicals",
				},
			},
		},
		DiagnosticPatterns: map[string]map[string]PatternDetail{
			"acne_patterns": {
				"hormonal_acne": {
					Symptoms:            []string{"acne_along_jawline", "cystic_acne", "irregular_cycles", "mood_swings"},
					LikelyCauses:        []string{"hormonal_imbalance", "pcos", "thyroid_issues"},
					ConfidenceThreshold: 0.8,
				},
				"stress_acne": {
					Symptoms:            []string{"acne_during_stress", "inflammation", "poor_sleep", "anxiety"},
					LikelyCauses:        []string{"cortisol_imbalance", "inflammation", "poor_immune_function"},
					ConfidenceThreshold: 0.7,
				},
				"dietary_acne": {
					Symptoms:            []string{"acne_after_meals", "digestive_issues", "bloating", "inflammation"},
					LikelyCauses:        []string{"food_sensitivities", "gut_dysbiosis", "inflammation"},
					ConfidenceThreshold: 0.6,
				},
			},
			"hair_loss_patterns": {
				"nutritional_hair_loss": {
					Symptoms:            []string{"overall_thinning", "brittle_hair", "fatigue", "pale_skin"},
					LikelyCauses:        []string{"iron_deficiency", "b12_deficiency", "protein_deficiency"},
					ConfidenceThreshold: 0.8,
				},
				"hormonal_hair_loss": {
					Symptoms:            []string{"thinning_at_crown", "irregular_cycles", "weight_changes", "mood_swings"},
					LikelyCauses:        []string{"thyroid_issues", "pcos", "menopause", "hormonal_imbalance"},
					ConfidenceThreshold: 0.8,
				},
				"stress_hair_loss": {
					Symptoms:            []string{"sudden_shedding", "stress_events", "poor_sleep", "anxiety"},
					LikelyCauses:        []string{"telogen_effluvium", "cortisol_imbalance", "inflammation"},
					ConfidenceThreshold: 0.7,
				},
			},
		},
		RecommendedTests: map[string][]string{
			"basic_panel": {
				"Complete Blood Count (CBC)",
				"Comprehensive Metabolic Panel (CMP)",
				"Iron studies (ferritin, TIBC, iron saturation)",
				"Vitamin D (25-hydroxyvitamin D)",
				"B12 and folate levels",
			},
			"hormonal_panel": {
				"Thyroid function (TSH, T3, T4, reverse T3)",
				"Sex hormones (estradiol, progesterone, testosterone)",
				"Cortisol (AM and PM levels)",
				"Insulin and glucose levels",
			},
			"advanced_panel": {
				"Food sensitivity testing",
				"Gut microbiome analysis",
				"Inflammatory markers (CRP, ESR)",
				"Heavy metal testing",
				"Nutrient absorption testing",
			},
		},
	}
}
