package esco

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"careerscope/internal/models"
)

// ErrNotFound is returned by store lookups for unknown URIs. Callers that
// enrich match results skip the entry instead of failing the request.
var ErrNotFound = errors.New("esco: not found")

// Taxonomy data files, relative to the ESCO dataset directory.
const (
	skillsFile      = "skills_en.csv"
	occupationsFile = "occupations_en.csv"
	relationsFile   = "occupationSkillRelations_en.csv"
)

// categoryFiles maps category tags to the ESCO collection CSVs defining them.
// Loaded in this fixed order so a skill's category list is deterministic.
var categoryFiles = []struct {
	tag  string
	file string
}{
	{"digital", "digitalSkillsCollection_en.csv"},
	{"green", "greenSkillsCollection_en.csv"},
	{"transversal", "transversalSkillsCollection_en.csv"},
	{"language", "languageSkillsCollection_en.csv"},
	{"research", "researchSkillsCollection_en.csv"},
	{"digComp", "digCompSkillsCollection_en.csv"},
}

// Store holds the loaded taxonomy. Read-only after Load, safe for concurrent use.
type Store struct {
	skills      map[string]*models.Skill
	occupations map[string]*models.Occupation

	skillOrder      []string // file row order, drives index alignment
	occupationOrder []string
}

// LoadStore reads the skill and occupation CSVs plus the category collection
// files from dir. Category files that are absent are skipped; the two concept
// files are required.
func LoadStore(dir string) (*Store, error) {
	s := &Store{
		skills:      make(map[string]*models.Skill),
		occupations: make(map[string]*models.Occupation),
	}

	if err := forEachRow(filepath.Join(dir, skillsFile), func(row record) error {
		uri := row.get("conceptUri")
		if uri == "" {
			return nil
		}
		s.skills[uri] = &models.Skill{
			URI:          uri,
			Name:         row.get("preferredLabel"),
			Alternatives: splitAltLabels(row.get("altLabels")),
			Description:  row.get("description"),
			Type:         row.get("skillType"),
			ReuseLevel:   row.get("reuseLevel"),
		}
		s.skillOrder = append(s.skillOrder, uri)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}

	if err := forEachRow(filepath.Join(dir, occupationsFile), func(row record) error {
		uri := row.get("conceptUri")
		if uri == "" {
			return nil
		}
		s.occupations[uri] = &models.Occupation{
			URI:          uri,
			Name:         row.get("preferredLabel"),
			Alternatives: splitAltLabels(row.get("altLabels")),
			Description:  row.get("description"),
			ISCOGroup:    row.get("iscoGroup"),
		}
		s.occupationOrder = append(s.occupationOrder, uri)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load occupations: %w", err)
	}

	for _, entry := range categoryFiles {
		path := filepath.Join(dir, entry.file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cat := entry.tag
		if err := forEachRow(path, func(row record) error {
			if skill, ok := s.skills[row.get("conceptUri")]; ok {
				skill.Categories = append(skill.Categories, cat)
			}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("load %s categories: %w", cat, err)
		}
	}

	return s, nil
}

// Skill returns the skill for uri, or ErrNotFound.
func (s *Store) Skill(uri string) (*models.Skill, error) {
	skill, ok := s.skills[uri]
	if !ok {
		return nil, fmt.Errorf("skill %q: %w", uri, ErrNotFound)
	}
	return skill, nil
}

// Occupation returns the occupation for uri, or ErrNotFound.
func (s *Store) Occupation(uri string) (*models.Occupation, error) {
	occ, ok := s.occupations[uri]
	if !ok {
		return nil, fmt.Errorf("occupation %q: %w", uri, ErrNotFound)
	}
	return occ, nil
}

// SkillName resolves a skill URI to its display name.
func (s *Store) SkillName(uri string) (string, bool) {
	skill, ok := s.skills[uri]
	if !ok {
		return "", false
	}
	return skill.Name, true
}

// SkillCategories returns the category tags for a skill URI, nil when unknown.
func (s *Store) SkillCategories(uri string) []string {
	skill, ok := s.skills[uri]
	if !ok {
		return nil
	}
	return skill.Categories
}

// SkillURIs returns skill URIs in file row order.
func (s *Store) SkillURIs() []string { return s.skillOrder }

// OccupationURIs returns occupation URIs in file row order.
func (s *Store) OccupationURIs() []string { return s.occupationOrder }

// SkillCount and OccupationCount report taxonomy sizes for health reporting.
func (s *Store) SkillCount() int      { return len(s.skills) }
func (s *Store) OccupationCount() int { return len(s.occupations) }

// CategorySummary counts skills per category collection.
func (s *Store) CategorySummary() models.CategorySummary {
	counts := make(map[string]int)
	withCategories := 0
	for _, skill := range s.skills {
		if len(skill.Categories) > 0 {
			withCategories++
		}
		for _, c := range skill.Categories {
			counts[c]++
		}
	}
	return models.CategorySummary{
		Categories:                counts,
		TotalSkillsWithCategories: withCategories,
		TotalSkills:               len(s.skills),
	}
}

// record is one CSV row with access by header name. Missing optional columns
// read as empty strings, not errors.
type record struct {
	header map[string]int
	fields []string
}

func (r record) get(column string) string {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func forEachRow(path string, fn func(record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headerRow, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", filepath.Base(path), err)
	}
	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.TrimSpace(name)] = i
	}

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		if err := fn(record{header: header, fields: fields}); err != nil {
			return err
		}
	}
}

// splitAltLabels parses the newline-delimited altLabels column.
func splitAltLabels(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var labels []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}
