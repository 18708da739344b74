package models

// MatchResult is a single taxonomy entry matched against input text.
// Similarity is cosine similarity in [0,1], rounded to 3 decimals.
type MatchResult struct {
	URI          string  `json:"uri"`
	Name         string  `json:"name"`
	Similarity   float64 `json:"similarity"`
	MatchedToken string  `json:"matched_token,omitempty"`
}

// SkillCoverage is the fraction of an occupation's skill requirements covered
// by the candidate's matched skills, split by relation kind.
type SkillCoverage struct {
	Essential float64 `json:"essential"`
	Optional  float64 `json:"optional"`
}

// JobMatch scores one occupation against a matched skill set.
type JobMatch struct {
	URI              string        `json:"uri"`
	Name             string        `json:"name"`
	ISCOGroup        string        `json:"isco_group,omitempty"`
	Description      string        `json:"description,omitempty"`
	MatchScore       float64       `json:"match_score"`
	MatchedSkills    []string      `json:"matched_skills"`
	MissingEssential []string      `json:"missing_essential"`
	MissingOptional  []string      `json:"missing_optional"`
	Coverage         SkillCoverage `json:"skill_coverage"`
}

// CareerOpportunity is an occupation reachable with a small essential-skill gap.
type CareerOpportunity struct {
	Job           JobMatch `json:"job"`
	SkillsToGain  []string `json:"skills_to_gain"`
	EffortLevel   string   `json:"effort_level"`   // low, medium, high
	EstimatedTime string   `json:"estimated_time"` // e.g. "3-6 months"
	CategoryFocus []string `json:"category_focus"`
}

// DemandCount is a (name, frequency) pair used in gap summaries.
type DemandCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SkillGapSummary aggregates recurring gaps across top career opportunities.
type SkillGapSummary struct {
	CurrentCategories       map[string]int `json:"current_skill_categories"`
	MostDemandedSkills      []DemandCount  `json:"most_demanded_skills"`
	MostDemandedCategories  []DemandCount  `json:"most_demanded_categories"`
	CategoryRecommendations []string       `json:"category_recommendations"`
}

// CareerOption is an LLM-suggested role direction.
type CareerOption struct {
	Role      string `json:"role"`
	Why       string `json:"why"`
	FirstStep string `json:"first_step"`
}

// RoleFit is an LLM-written one-paragraph fit assessment for a matched role.
type RoleFit struct {
	Role       string `json:"role"`
	FitSummary string `json:"fit_summary"`
}
