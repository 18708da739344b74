package repository

import (
	"context"

	"careerscope/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AnalysisRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAnalysisRepository(db *pgxpool.Pool, logger *zap.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	query := squirrel.Insert("analyses").
		Columns("id", "user_id", "source", "file_name", "text_length", "skills_found", "result", "created_at").
		Values(analysis.ID, analysis.UserID, analysis.Source, analysis.FileName,
			analysis.TextLength, analysis.SkillsFound, analysis.Result, analysis.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Analysis, error) {
	query := squirrel.Select("id", "user_id", "source", "file_name", "text_length", "skills_found", "result", "created_at").
		From("analyses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var analysis models.Analysis
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&analysis.ID, &analysis.UserID, &analysis.Source, &analysis.FileName,
		&analysis.TextLength, &analysis.SkillsFound, &analysis.Result, &analysis.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &analysis, nil
}

func (r *AnalysisRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Analysis, error) {
	query := squirrel.Select("id", "user_id", "source", "file_name", "text_length", "skills_found", "result", "created_at").
		From("analyses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		var analysis models.Analysis
		if err := rows.Scan(
			&analysis.ID, &analysis.UserID, &analysis.Source, &analysis.FileName,
			&analysis.TextLength, &analysis.SkillsFound, &analysis.Result, &analysis.CreatedAt,
		); err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}

	return analyses, rows.Err()
}

func (r *AnalysisRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("analyses").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
