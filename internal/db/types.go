package db

import "fmt"

// Kind identifies one of the resume item categories.
type Kind string

const (
	KindSkill          Kind = "skill"
	KindAccomplishment Kind = "accomplishment"
	KindSummary        Kind = "summary"
	KindExperience     Kind = "experience"
	KindEducation      Kind = "education"
	KindProject        Kind = "project"
)

// kindSpec maps a kind onto its table. Each kind has its own table with a
// uniquely-constrained text column; accomplishments additionally carry an
// optional reference to a work-experience row.
type kindSpec struct {
	wireName   string
	table      string
	textColumn string
	hasParent  bool
}

var kindSpecs = map[Kind]kindSpec{
	KindSkill:          {wireName: "skills", table: "skills", textColumn: "skill_text"},
	KindAccomplishment: {wireName: "accomplishments", table: "accomplishments", textColumn: "accomplishment_text", hasParent: true},
	KindSummary:        {wireName: "professional_summaries", table: "professional_summaries", textColumn: "summary_text"},
	KindExperience:     {wireName: "work_experience", table: "work_experience", textColumn: "experience_text"},
	KindEducation:      {wireName: "education", table: "education", textColumn: "education_text"},
	KindProject:        {wireName: "technical_projects", table: "technical_projects", textColumn: "project_text"},
}

// Kinds lists every kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindSkill, KindAccomplishment, KindSummary, KindExperience, KindEducation, KindProject}
}

// KindFromWireName resolves the plural path segment used by the API
// ("skills", "work_experience", ...) to a kind.
func KindFromWireName(name string) (Kind, bool) {
	for kind, spec := range kindSpecs {
		if spec.wireName == name {
			return kind, true
		}
	}
	return "", false
}

// WireName returns the plural name the API uses for this kind.
func (k Kind) WireName() string {
	return kindSpecs[k].wireName
}

// Valid reports whether the kind is one of the known categories.
func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// Item is one stored resume entry. Embedding holds the JSON-encoded vector
// exactly as the embedding service produced it; it is decoded only at ranking
// time. ParentID is set only for accomplishments linked to an experience.
type Item struct {
	ID        int    `json:"id"`
	Kind      Kind   `json:"kind"`
	Text      string `json:"text"`
	Embedding string `json:"-"`
	ParentID  *int   `json:"work_experience_id,omitempty"`
}

// PublicID is the identifier exposed over the API, e.g. "skill-3". Numeric
// IDs alone are ambiguous across kinds.
func (i Item) PublicID() string {
	return fmt.Sprintf("%s-%d", i.Kind, i.ID)
}

// DuplicateError reports an insert that collided with the per-kind unique
// constraint on the raw text.
type DuplicateError struct {
	Kind Kind
	Text string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s entry already exists: %q", e.Kind, e.Text)
}

// NotFoundError reports an operation against a row that does not exist.
type NotFoundError struct {
	Kind Kind
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}
