package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"careerscope/internal/dto"
	"careerscope/internal/embeddings"
	"careerscope/internal/esco"
	"careerscope/internal/models"
	"careerscope/internal/repository"
	"careerscope/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisService runs the full CV pipeline: extract skills, match against
// occupations, predict reachable career moves, aggregate skill gaps and
// optionally add an LLM narrative. Results are persisted per user.
type AnalysisService struct {
	catalog      *CatalogService
	matcher      *esco.Matcher
	pdfService   *PDFService
	narrative    *NarrativeService
	analysisRepo *repository.AnalysisRepository
	escoCfg      *config.ESCOConfig
	policy       esco.MatchPolicy
	logger       *zap.Logger
}

func NewAnalysisService(
	catalog *CatalogService,
	provider embeddings.Provider,
	pdfService *PDFService,
	narrative *NarrativeService,
	analysisRepo *repository.AnalysisRepository,
	escoCfg *config.ESCOConfig,
	matchingCfg *config.MatchingConfig,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		catalog:      catalog,
		matcher:      esco.NewMatcher(provider),
		pdfService:   pdfService,
		narrative:    narrative,
		analysisRepo: analysisRepo,
		escoCfg:      escoCfg,
		policy:       matchPolicy(matchingCfg),
		logger:       logger,
	}
}

func matchPolicy(cfg *config.MatchingConfig) esco.MatchPolicy {
	return esco.MatchPolicy{
		EssentialWeight: cfg.EssentialWeight,
		OptionalWeight:  cfg.OptionalWeight,
		MaxSkillGap:     cfg.MaxSkillGap,
		LowEffortMax:    cfg.LowEffortMax,
		MediumEffortMax: cfg.MediumEffortMax,
		DemandCutoff:    cfg.DemandCutoff,
		CurrentCutoff:   cfg.CurrentCutoff,
	}
}

// AnalyzeText runs the pipeline on raw text and stores the result.
func (s *AnalysisService) AnalyzeText(ctx context.Context, userID uuid.UUID, text string) (*dto.AnalysisResponse, error) {
	response, err := s.analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	response.Source = string(models.AnalysisSourceText)

	if err := s.persist(ctx, userID, response, len(text), ""); err != nil {
		return nil, err
	}
	return response, nil
}

// AnalyzePDF extracts text from the uploaded PDF and runs the same pipeline.
func (s *AnalysisService) AnalyzePDF(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*dto.AnalysisResponse, error) {
	text, err := s.pdfService.ExtractTextFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("pdf extraction: %w", err)
	}
	text = sanitizeUTF8(text)

	response, err := s.analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	response.Source = string(models.AnalysisSourcePDF)
	response.FileName = fileName

	if err := s.persist(ctx, userID, response, len(text), fileName); err != nil {
		return nil, err
	}
	return response, nil
}

func (s *AnalysisService) analyze(ctx context.Context, text string) (*dto.AnalysisResponse, error) {
	catalog := s.catalog.Catalog()
	phrases := esco.Tokenize(text)

	// Analysis uses a wider skill cap than the extraction endpoints: job
	// matching needs the candidate's whole profile, not a display list.
	skills, err := s.matcher.Match(ctx, phrases, catalog.Skills, s.escoCfg.SkillsThreshold, s.escoCfg.AnalysisMaxSkills)
	if err != nil {
		return nil, fmt.Errorf("skill extraction: %w", err)
	}

	skillURIs := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skillURIs[skill.URI] = true
	}

	career := esco.NewCareer(catalog.Store, catalog.Graph, s.policy)
	jobMatches := career.FindJobMatches(skillURIs)
	if len(jobMatches) > 10 {
		jobMatches = jobMatches[:10]
	}
	opportunities := career.PredictOpportunities(skillURIs)
	if len(opportunities) > 15 {
		opportunities = opportunities[:15]
	}

	// Gap aggregation considers only the nearest opportunities so that
	// long-shot roles do not skew the demand counts.
	topOpportunities := opportunities
	if len(topOpportunities) > 10 {
		topOpportunities = topOpportunities[:10]
	}
	gaps := career.AggregateSkillGaps(topOpportunities, skillURIs)
	recommendations := career.Recommendations(skillURIs, opportunities)

	for i := range jobMatches {
		jobMatches[i] = shapeJobMatch(jobMatches[i])
	}
	for i := range opportunities {
		opportunities[i].Job = shapeJobMatch(opportunities[i].Job)
	}

	response := &dto.AnalysisResponse{
		Overview: dto.AnalysisOverview{
			TextLength:      len(text),
			TokensAnalyzed:  len(phrases),
			SkillsFound:     len(skills),
			SkillCategories: s.categoryCounts(catalog, skills),
		},
		Skills:          skills,
		JobMatches:      jobMatches,
		Opportunities:   opportunities,
		SkillGaps:       gaps,
		Recommendations: recommendations,
	}

	// The narrative is best effort. Extraction results stand on their own
	// when the LLM is unavailable or returns garbage.
	if s.narrative != nil {
		narrative, err := s.narrative.GenerateNarrative(ctx, skills, jobMatches, opportunities, &gaps)
		if err != nil {
			s.logger.Warn("Narrative generation failed, returning analysis without it", zap.Error(err))
		} else {
			response.Narrative = narrative
		}
	}

	s.logger.Info("CV analysis completed",
		zap.Int("text_length", len(text)),
		zap.Int("skills", len(skills)),
		zap.Int("job_matches", len(jobMatches)),
		zap.Int("opportunities", len(opportunities)),
	)

	return response, nil
}

// shapeJobMatch trims a job match down to its response form: score rounded to
// three decimals, at most five missing-optional names, description capped at
// 200 characters.
func shapeJobMatch(m models.JobMatch) models.JobMatch {
	m.MatchScore = math.Round(m.MatchScore*1000) / 1000
	if len(m.MissingOptional) > 5 {
		m.MissingOptional = m.MissingOptional[:5]
	}
	if len(m.Description) > 200 {
		m.Description = m.Description[:200] + "..."
	}
	return m
}

func (s *AnalysisService) categoryCounts(catalog *esco.Catalog, skills []models.MatchResult) map[string]int {
	counts := make(map[string]int)
	for _, skill := range skills {
		cats := catalog.Store.SkillCategories(skill.URI)
		if len(cats) == 0 {
			cats = []string{"general"}
		}
		for _, cat := range cats {
			counts[cat]++
		}
	}
	return counts
}

func (s *AnalysisService) persist(ctx context.Context, userID uuid.UUID, response *dto.AnalysisResponse, textLength int, fileName string) error {
	result, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	analysis := &models.Analysis{
		ID:          uuid.New(),
		UserID:      userID,
		Source:      models.AnalysisSource(response.Source),
		FileName:    fileName,
		TextLength:  textLength,
		SkillsFound: len(response.Skills),
		Result:      result,
		CreatedAt:   time.Now(),
	}

	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}

	response.ID = analysis.ID.String()
	return nil
}

// ListAnalyses returns the user's analysis history, newest first.
func (s *AnalysisService) ListAnalyses(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.AnalysisSummary, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	analyses, err := s.analysisRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.analysisRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]dto.AnalysisSummary, 0, len(analyses))
	for _, analysis := range analyses {
		summaries = append(summaries, dto.AnalysisSummary{
			ID:          analysis.ID.String(),
			Source:      string(analysis.Source),
			FileName:    analysis.FileName,
			TextLength:  analysis.TextLength,
			SkillsFound: analysis.SkillsFound,
			CreatedAt:   analysis.CreatedAt.Format(time.RFC3339),
		})
	}

	return summaries, total, nil
}

// GetAnalysis returns one stored analysis document for the requesting user.
func (s *AnalysisService) GetAnalysis(ctx context.Context, userID, analysisID uuid.UUID) (*dto.AnalysisResponse, error) {
	analysis, err := s.analysisRepo.GetByID(ctx, analysisID, userID)
	if err != nil {
		return nil, err
	}

	var response dto.AnalysisResponse
	if err := json.Unmarshal(analysis.Result, &response); err != nil {
		return nil, fmt.Errorf("decode stored analysis: %w", err)
	}
	response.ID = analysis.ID.String()
	return &response, nil
}

// Reload swaps in a freshly built taxonomy catalog.
func (s *AnalysisService) Reload(ctx context.Context) error {
	return s.catalog.Reload(ctx)
}
