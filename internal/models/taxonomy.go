package models

// Skill is a single ESCO skill concept, immutable after load.
type Skill struct {
	URI          string   `json:"uri"`
	Name         string   `json:"name"`
	Alternatives []string `json:"alternatives,omitempty"`
	Description  string   `json:"description,omitempty"`
	Type         string   `json:"type,omitempty"` // knowledge, skill/competence, language, attitude
	ReuseLevel   string   `json:"reuse_level,omitempty"`
	Categories   []string `json:"categories,omitempty"` // digital, green, transversal, ...
}

// Occupation is a single ESCO occupation concept, immutable after load.
type Occupation struct {
	URI          string   `json:"uri"`
	Name         string   `json:"name"`
	Alternatives []string `json:"alternatives,omitempty"`
	Description  string   `json:"description,omitempty"`
	ISCOGroup    string   `json:"isco_group,omitempty"`
}

// RelationKind classifies how necessary a skill is for an occupation.
type RelationKind string

const (
	RelationEssential RelationKind = "essential"
	RelationOptional  RelationKind = "optional"
)

// RelationEdge is one row of the occupation-skill relationship data.
type RelationEdge struct {
	OccupationURI string       `json:"occupation_uri"`
	SkillURI      string       `json:"skill_uri"`
	Kind          RelationKind `json:"relation_kind"`
}

// SkillUsage describes one occupation that uses a given skill.
type SkillUsage struct {
	OccupationURI string       `json:"occupation_uri"`
	Kind          RelationKind `json:"relation_kind"`
}

// SkillDetail is the cross-referenced view of a skill returned by detail lookups.
type SkillDetail struct {
	Skill
	UsedInOccupations SkillUsageSummary `json:"used_in_occupations"`
}

// SkillUsageSummary aggregates how widely a skill is required across occupations.
type SkillUsageSummary struct {
	Count     int      `json:"count"`
	Examples  []string `json:"examples,omitempty"`
	Essential int      `json:"essential"`
	Optional  int      `json:"optional"`
}

// OccupationDetail is the cross-referenced view of an occupation.
type OccupationDetail struct {
	Occupation
	RequiredSkills    RequiredSkills `json:"required_skills"`
	CategoryBreakdown map[string]int `json:"skill_categories,omitempty"`
}

// RequiredSkills lists an occupation's skill requirements by relation kind.
// Essential and Optional are truncated for API responses; totals keep real sizes.
type RequiredSkills struct {
	Essential      []string `json:"essential"`
	Optional       []string `json:"optional"`
	TotalEssential int      `json:"total_essential"`
	TotalOptional  int      `json:"total_optional"`
}

// CategorySummary reports how many skills belong to each category collection.
type CategorySummary struct {
	Categories                map[string]int `json:"categories"`
	TotalSkillsWithCategories int            `json:"total_skills_with_categories"`
	TotalSkills               int            `json:"total_skills"`
}
