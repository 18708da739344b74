package dto

import "careerscope/internal/models"

type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// AnalysisResponse is the full CV analysis document: extracted skills, job
// matches, career opportunities, gap summary, heuristic recommendations and
// the optional LLM narrative.
type AnalysisResponse struct {
	ID       string `json:"id,omitempty"`
	Source   string `json:"source"`
	FileName string `json:"file_name,omitempty"`

	Overview        AnalysisOverview           `json:"cv_analysis"`
	Skills          []models.MatchResult       `json:"extracted_skills"`
	JobMatches      []models.JobMatch          `json:"current_job_matches"`
	Opportunities   []models.CareerOpportunity `json:"career_opportunities"`
	SkillGaps       models.SkillGapSummary     `json:"skill_gap_analysis"`
	Recommendations []string                   `json:"recommendations"`
	Narrative       *AnalysisNarrative         `json:"narrative,omitempty"`
}

type AnalysisOverview struct {
	TextLength      int            `json:"text_length"`
	TokensAnalyzed  int            `json:"tokens_analyzed"`
	SkillsFound     int            `json:"total_skills_identified"`
	SkillCategories map[string]int `json:"skill_categories"`
}

// AnalysisNarrative is LLM-generated and best-effort: extraction results are
// complete and valid without it.
type AnalysisNarrative struct {
	CareerOptions   []models.CareerOption `json:"career_options,omitempty"`
	RoleFitOverview []models.RoleFit      `json:"role_fit_overview,omitempty"`
	Recommendations []string              `json:"recommendations,omitempty"`
}

type AnalysisSummary struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	FileName    string `json:"file_name,omitempty"`
	TextLength  int    `json:"text_length"`
	SkillsFound int    `json:"skills_found"`
	CreatedAt   string `json:"created_at"`
}
