package esco

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"careerscope/internal/embeddings"
	"careerscope/internal/models"
)

// detailListCap truncates skill lists inside detail responses.
const detailListCap = 10

// Catalog bundles one consistent generation of taxonomy data: store, graph and
// the two embedding indexes. Built once, immutable afterwards; hot reloads
// build a fresh Catalog and swap the whole thing atomically so no request ever
// observes a half-loaded generation.
type Catalog struct {
	Store       *Store
	Graph       *Graph
	Skills      *Index
	Occupations *Index
}

// CatalogConfig locates the taxonomy data and its embedding caches.
type CatalogConfig struct {
	DataDir  string // ESCO CSV directory
	CacheDir string // embedding cache directory
	Version  string // taxonomy version, part of the cache key
}

// LoadCatalog loads the CSV taxonomy and the embedding indexes. Cached indexes
// are used when their (model, version) key matches the configured provider;
// anything else (missing file, stale key, different model) falls through to
// a full rebuild via the provider, and the fresh index is written back.
func LoadCatalog(ctx context.Context, cfg CatalogConfig, provider embeddings.Provider) (*Catalog, error) {
	store, err := LoadStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	graph, err := LoadGraph(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	skillIndex, err := loadOrBuildIndex(ctx, cfg, provider, "skills", store.SkillURIs(), func(uri string) string {
		skill, _ := store.Skill(uri)
		return skill.Name
	})
	if err != nil {
		return nil, fmt.Errorf("skill index: %w", err)
	}

	occIndex, err := loadOrBuildIndex(ctx, cfg, provider, "occupations", store.OccupationURIs(), func(uri string) string {
		occ, _ := store.Occupation(uri)
		return occ.Name
	})
	if err != nil {
		return nil, fmt.Errorf("occupation index: %w", err)
	}

	if skillIndex.Dims != 0 && occIndex.Dims != 0 && skillIndex.Dims != occIndex.Dims {
		return nil, fmt.Errorf("index dimensionality mismatch: skills %d vs occupations %d",
			skillIndex.Dims, occIndex.Dims)
	}

	return &Catalog{
		Store:       store,
		Graph:       graph,
		Skills:      skillIndex,
		Occupations: occIndex,
	}, nil
}

func loadOrBuildIndex(ctx context.Context, cfg CatalogConfig, provider embeddings.Provider, kind string, uris []string, label func(string) string) (*Index, error) {
	path := CachePath(cfg.CacheDir, kind, provider.Model(), cfg.Version)

	ix, err := ReadIndexCache(path, provider.Model(), cfg.Version)
	if err == nil {
		return ix, nil
	}
	if !os.IsNotExist(err) && !errors.Is(err, ErrCacheMismatch) {
		return nil, err
	}

	labels := make([]string, len(uris))
	for i, uri := range uris {
		labels[i] = label(uri)
	}
	ix, err = BuildIndex(ctx, provider, cfg.Version, uris, labels)
	if err != nil {
		return nil, err
	}
	if werr := WriteIndexCache(path, ix); werr != nil {
		// A failed cache write costs a rebuild next start, nothing more.
		return ix, nil
	}
	return ix, nil
}

// CachePath names an embedding cache file by kind, model and taxonomy version.
func CachePath(cacheDir, kind, model, version string) string {
	safeModel := strings.NewReplacer("/", "_", ":", "_").Replace(model)
	return filepath.Join(cacheDir, fmt.Sprintf("%s_embeddings_%s_%s.gob", kind, safeModel, version))
}

// SkillDetail returns the cross-referenced view of a skill: categories plus
// how widely occupations require it.
func (c *Catalog) SkillDetail(uri string) (models.SkillDetail, error) {
	skill, err := c.Store.Skill(uri)
	if err != nil {
		return models.SkillDetail{}, err
	}

	usage := c.Graph.SkillUsage(uri)
	summary := models.SkillUsageSummary{Count: len(usage)}
	for _, u := range usage {
		if u.Kind == models.RelationEssential {
			summary.Essential++
		} else {
			summary.Optional++
		}
		if len(summary.Examples) < 3 {
			if occ, err := c.Store.Occupation(u.OccupationURI); err == nil {
				summary.Examples = append(summary.Examples, occ.Name)
			}
		}
	}

	return models.SkillDetail{Skill: *skill, UsedInOccupations: summary}, nil
}

// OccupationDetail returns the cross-referenced view of an occupation: its
// skill requirements (truncated lists, full totals) and the category
// breakdown of everything it requires.
func (c *Catalog) OccupationDetail(uri string) (models.OccupationDetail, error) {
	occ, err := c.Store.Occupation(uri)
	if err != nil {
		return models.OccupationDetail{}, err
	}

	essentialURIs := c.Graph.EssentialSkills(uri)
	optionalURIs := c.Graph.OptionalSkills(uri)

	essential := c.resolveNames(essentialURIs)
	optional := c.resolveNames(optionalURIs)

	breakdown := make(map[string]int)
	for _, skillURI := range append(append([]string{}, essentialURIs...), optionalURIs...) {
		cats := c.Store.SkillCategories(skillURI)
		if len(cats) == 0 {
			cats = []string{"general"}
		}
		for _, cat := range cats {
			breakdown[cat]++
		}
	}

	detail := models.OccupationDetail{
		Occupation: *occ,
		RequiredSkills: models.RequiredSkills{
			Essential:      capList(essential, detailListCap),
			Optional:       capList(optional, detailListCap),
			TotalEssential: len(essential),
			TotalOptional:  len(optional),
		},
		CategoryBreakdown: breakdown,
	}
	return detail, nil
}

func (c *Catalog) resolveNames(uris []string) []string {
	names := make([]string, 0, len(uris))
	for _, uri := range uris {
		if name, ok := c.Store.SkillName(uri); ok {
			names = append(names, name)
		}
	}
	return names
}

func capList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
