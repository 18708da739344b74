package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"careerscope/internal/dto"
	"careerscope/internal/models"
	"careerscope/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

type NarrativeService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	config *config.GigaChatConfig
	logger *zap.Logger
}

// buildSystemInstruction creates the system instruction for career narrative generation
func buildSystemInstruction() string {
	return `You are a professional career advisor. You receive structured results of a CV analysis: skills detected in the text, occupations the candidate already matches, and career opportunities within reach.

Your task is to turn those structured results into short, concrete guidance.

Rules:
- Base every statement on the data you are given. Never invent skills or occupations that are not in the input.
- Be specific and practical. Avoid generic advice like "keep learning".
- Always return valid JSON in exactly the format requested, with no markdown fences and no commentary before or after the JSON.
- Keep each text field under 300 characters.`
}

func NewNarrativeService(cfg *config.GigaChatConfig, logger *zap.Logger) (*NarrativeService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	return &NarrativeService{
		client: client,
		model:  model,
		config: cfg,
		logger: logger,
	}, nil
}

// GenerateNarrative produces advisory text for an analysis. Failures are
// reported to the caller so the analysis can proceed without a narrative.
func (s *NarrativeService) GenerateNarrative(
	ctx context.Context,
	skills []models.MatchResult,
	jobMatches []models.JobMatch,
	opportunities []models.CareerOpportunity,
	gaps *models.SkillGapSummary,
) (*dto.AnalysisNarrative, error) {
	prompt := s.buildPrompt(skills, jobMatches, opportunities, gaps)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate narrative: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from LLM")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	payload, err := parseNarrative(content)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Career narrative generated",
		zap.Int("career_options", len(payload.CareerOptions)),
		zap.Int("recommendations", len(payload.Recommendations)),
	)

	return payload, nil
}

func (s *NarrativeService) buildPrompt(
	skills []models.MatchResult,
	jobMatches []models.JobMatch,
	opportunities []models.CareerOpportunity,
	gaps *models.SkillGapSummary,
) string {
	var b strings.Builder

	b.WriteString("Analysis results for a candidate CV.\n\nDetected skills:\n")
	for _, skill := range skills {
		fmt.Fprintf(&b, "- %s (similarity %.3f)\n", skill.Name, skill.Similarity)
	}

	b.WriteString("\nOccupations the candidate already matches:\n")
	for _, match := range jobMatches {
		fmt.Fprintf(&b, "- %s (match score %.3f, missing essential: %s)\n",
			match.Name, match.MatchScore, strings.Join(match.MissingEssential, ", "))
	}

	b.WriteString("\nCareer opportunities within reach:\n")
	for _, opp := range opportunities {
		fmt.Fprintf(&b, "- %s (effort %s, estimated time %s, skills to gain: %s)\n",
			opp.Job.Name, opp.EffortLevel, opp.EstimatedTime, strings.Join(opp.SkillsToGain, ", "))
	}

	if gaps != nil && len(gaps.MostDemandedSkills) > 0 {
		b.WriteString("\nMost demanded skills across those opportunities:\n")
		for _, demand := range gaps.MostDemandedSkills {
			fmt.Fprintf(&b, "- %s (demanded by %d occupations)\n", demand.Name, demand.Count)
		}
	}

	b.WriteString(`
Return a JSON object in exactly this format:
{
  "career_options": [
    {"role": "occupation name", "why": "why it fits this candidate", "first_step": "concrete first action"}
  ],
  "role_fit_overview": [
    {"role": "occupation name", "fit_summary": "one sentence on current fit"}
  ],
  "recommendations": ["concrete recommendation"]
}

Provide at most 3 career options, at most 3 role fit entries, and 2 to 4 recommendations.
Return ONLY the JSON object, with no markdown fences and no text before or after it.`)

	return b.String()
}

// parseNarrative extracts the JSON object from the model output, tolerating
// markdown fences and surrounding commentary.
func parseNarrative(content string) (*dto.AnalysisNarrative, error) {
	jsonStart := strings.Index(content, "{")
	jsonEnd := strings.LastIndex(content, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return nil, fmt.Errorf("invalid narrative format: %s", content)
	}

	jsonStr := content[jsonStart : jsonEnd+1]

	var payload dto.AnalysisNarrative
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		jsonStr = strings.TrimSpace(jsonStr)
		jsonStr = strings.TrimPrefix(jsonStr, "```json")
		jsonStr = strings.TrimPrefix(jsonStr, "```")
		jsonStr = strings.TrimSuffix(jsonStr, "```")
		jsonStr = strings.TrimSpace(jsonStr)

		if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse narrative JSON: %w, content: %s", err, content)
		}
	}

	return &payload, nil
}

func (s *NarrativeService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
