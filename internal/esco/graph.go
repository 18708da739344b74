package esco

import (
	"fmt"
	"path/filepath"

	"careerscope/internal/models"
)

// Graph is the occupation-skill relationship graph: two inverted indices built
// from the relations CSV. Read-only after load, safe for concurrent use.
type Graph struct {
	occEssential map[string][]string
	occOptional  map[string][]string
	skillUsage   map[string][]models.SkillUsage

	occupationOrder []string // first-seen file order, drives deterministic ranking
}

// NewGraph builds a Graph from an edge list. A duplicate (occupation, skill)
// pair keeps the kind of the last edge, deterministically in slice order.
// Unknown relation kinds fail construction; malformed graph data is a startup
// error, never a query-time one.
func NewGraph(edges []models.RelationEdge) (*Graph, error) {
	type key struct{ occ, skill string }

	kinds := make(map[key]models.RelationKind, len(edges))
	occSkillOrder := make(map[string][]string)
	var occOrder []string

	for i, e := range edges {
		if e.Kind != models.RelationEssential && e.Kind != models.RelationOptional {
			return nil, fmt.Errorf("relation %d (%s -> %s): unknown kind %q", i, e.OccupationURI, e.SkillURI, e.Kind)
		}
		k := key{e.OccupationURI, e.SkillURI}
		if _, seen := kinds[k]; !seen {
			if _, ok := occSkillOrder[e.OccupationURI]; !ok {
				occOrder = append(occOrder, e.OccupationURI)
			}
			occSkillOrder[e.OccupationURI] = append(occSkillOrder[e.OccupationURI], e.SkillURI)
		}
		kinds[k] = e.Kind // last write wins
	}

	g := &Graph{
		occEssential:    make(map[string][]string, len(occOrder)),
		occOptional:     make(map[string][]string, len(occOrder)),
		skillUsage:      make(map[string][]models.SkillUsage),
		occupationOrder: occOrder,
	}

	for _, occ := range occOrder {
		for _, skill := range occSkillOrder[occ] {
			kind := kinds[key{occ, skill}]
			switch kind {
			case models.RelationEssential:
				g.occEssential[occ] = append(g.occEssential[occ], skill)
			case models.RelationOptional:
				g.occOptional[occ] = append(g.occOptional[occ], skill)
			}
			g.skillUsage[skill] = append(g.skillUsage[skill], models.SkillUsage{
				OccupationURI: occ,
				Kind:          kind,
			})
		}
	}

	return g, nil
}

// LoadGraph reads the occupation-skill relations CSV from dir.
func LoadGraph(dir string) (*Graph, error) {
	var edges []models.RelationEdge
	err := forEachRow(filepath.Join(dir, relationsFile), func(row record) error {
		occ := row.get("occupationUri")
		skill := row.get("skillUri")
		if occ == "" || skill == "" {
			return nil
		}
		edges = append(edges, models.RelationEdge{
			OccupationURI: occ,
			SkillURI:      skill,
			Kind:          models.RelationKind(row.get("relationType")),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load relations: %w", err)
	}
	return NewGraph(edges)
}

// Occupations returns occupation URIs in first-seen file order.
func (g *Graph) Occupations() []string { return g.occupationOrder }

// EssentialSkills returns the essential skill URIs of an occupation.
func (g *Graph) EssentialSkills(occURI string) []string { return g.occEssential[occURI] }

// OptionalSkills returns the optional skill URIs of an occupation.
func (g *Graph) OptionalSkills(occURI string) []string { return g.occOptional[occURI] }

// SkillUsage returns the occupations using a skill, with relation kinds.
func (g *Graph) SkillUsage(skillURI string) []models.SkillUsage { return g.skillUsage[skillURI] }

// EdgeCount reports the number of distinct (occupation, skill) relations.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, usages := range g.skillUsage {
		n += len(usages)
	}
	return n
}
