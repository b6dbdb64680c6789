// Package scoring computes the weighted resume/job-description match score.
// Each category compares the keyword-restricted views of both texts with a
// two-document TF-IDF cosine; quantifiable metrics are a binary flag on the
// raw resume text. Category weights are fixed and sum to exactly 100.
package scoring

// Category identifies one of the five fixed scoring categories.
type Category string

// The five scoring categories. The set is closed: the breakdown always
// contains exactly these keys.
const (
	CategoryHardSkills    Category = "hard_skills"
	CategoryTools         Category = "tools"
	CategorySoftSkills    Category = "soft_skills"
	CategoryActionVerbs   Category = "action_verbs"
	CategoryQuantifiable  Category = "quantifiable_metrics"
)

// CategoryWeights maps each category to its integer percentage weight.
// Invariant: the values sum to 100.
var CategoryWeights = map[Category]int{
	CategoryHardSkills:   50,
	CategoryTools:        20,
	CategorySoftSkills:   15,
	CategoryActionVerbs:  10,
	CategoryQuantifiable: 5,
}

// Keyword lists per category. These should eventually move to configuration;
// for now they match the curated defaults the scoring model was tuned with.
var (
	hardSkillKeywords = []string{
		"python", "django", "react", "sql", "agile",
		"database management", "financial modeling",
	}
	toolKeywords = []string{
		"aws", "jira", "git", "salesforce", "figma", "tableau",
	}
	softSkillKeywords = []string{
		"leadership", "communication", "teamwork", "problem-solving",
	}
	actionVerbKeywords = []string{
		"developed", "managed", "engineered", "proven", "working",
		"orchestrated", "quantified", "streamlined",
	}
)

// KeywordsFor returns the keyword list for a category, or nil for
// quantifiable_metrics, which is not keyword-driven.
func KeywordsFor(cat Category) []string {
	switch cat {
	case CategoryHardSkills:
		return hardSkillKeywords
	case CategoryTools:
		return toolKeywords
	case CategorySoftSkills:
		return softSkillKeywords
	case CategoryActionVerbs:
		return actionVerbKeywords
	default:
		return nil
	}
}
