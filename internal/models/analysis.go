package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisSource string

const (
	AnalysisSourceText AnalysisSource = "text"
	AnalysisSourcePDF  AnalysisSource = "pdf"
)

// Analysis is a persisted record of one completed CV analysis.
// Result holds the full response document as JSON.
type Analysis struct {
	ID          uuid.UUID      `db:"id"`
	UserID      uuid.UUID      `db:"user_id"`
	Source      AnalysisSource `db:"source"`
	FileName    string         `db:"file_name"`
	TextLength  int            `db:"text_length"`
	SkillsFound int            `db:"skills_found"`
	Result      []byte         `db:"result"`
	CreatedAt   time.Time      `db:"created_at"`
}
