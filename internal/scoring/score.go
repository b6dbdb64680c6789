package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/resume-builder/internal/textproc"
)

// CategoryScore is one row of the score breakdown. All values are integer
// percentages on a 0-100 scale; Contribution is expressed against the
// overall 100-point scale, so the contributions sum (within rounding) to
// the overall score.
type CategoryScore struct {
	Score        int `json:"score"`
	Weight       int `json:"weight"`
	Contribution int `json:"contribution"`
}

// Result holds the overall weighted match score and its per-category
// breakdown. The breakdown always contains exactly the five fixed categories.
type Result struct {
	OverallScore int                        `json:"overallScore"`
	Breakdown    map[Category]CategoryScore `json:"breakdown"`
}

// ExtractCategoryKeywords keeps only the tokens of text that appear in the
// keyword list, joined by spaces. Duplicates are preserved so they count
// toward term frequency. Text is expected to be preprocessed already.
func ExtractCategoryKeywords(text string, keywords []string) string {
	keywordSet := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		keywordSet[kw] = true
	}

	var found []string
	for _, tok := range strings.Fields(text) {
		if keywordSet[tok] {
			found = append(found, tok)
		}
	}
	return strings.Join(found, " ")
}

// CategoryScoreFor computes the similarity between the keyword-restricted
// views of resume and job-description text for one category. If either
// extraction is empty the score is 0.0 without computing TF-IDF: a category
// absent from either side is a zero match by definition, not a failure.
func CategoryScoreFor(resumeText, jdText string, keywords []string) float64 {
	resumeKeywords := ExtractCategoryKeywords(resumeText, keywords)
	jdKeywords := ExtractCategoryKeywords(jdText, keywords)

	if resumeKeywords == "" || jdKeywords == "" {
		return 0.0
	}

	return tfidfCosine(resumeKeywords, jdKeywords)
}

// Calculate computes the weighted match score between raw resume text and a
// raw job description. Both are preprocessed for the keyword categories; the
// quantifiable check runs on the raw resume text so digits survive. A failed
// sub-computation degrades its category to 0.0 instead of aborting.
func Calculate(resumeText, jdText string) Result {
	processedResume := textproc.Normalize(resumeText)
	processedJD := textproc.Normalize(jdText)

	scores := map[Category]float64{
		CategoryHardSkills:   safeCategoryScore(processedResume, processedJD, hardSkillKeywords),
		CategoryTools:        safeCategoryScore(processedResume, processedJD, toolKeywords),
		CategorySoftSkills:   safeCategoryScore(processedResume, processedJD, softSkillKeywords),
		CategoryActionVerbs:  safeCategoryScore(processedResume, processedJD, actionVerbKeywords),
		CategoryQuantifiable: QuantifiableScore(resumeText),
	}

	overall := 0.0
	breakdown := make(map[Category]CategoryScore, len(CategoryWeights))
	for category, weight := range CategoryWeights {
		score := scores[category]
		weighted := score * float64(weight) / 100.0
		overall += weighted
		breakdown[category] = CategoryScore{
			Score:        int(math.Round(score * 100)),
			Weight:       weight,
			Contribution: int(math.Round(weighted * 100)),
		}
	}

	return Result{
		OverallScore: int(math.Round(overall * 100)),
		Breakdown:    breakdown,
	}
}

// safeCategoryScore shields Calculate from any panic inside the vector math
// so a single bad category degrades to zero rather than failing the request.
func safeCategoryScore(resumeText, jdText string, keywords []string) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = 0.0
		}
	}()
	return CategoryScoreFor(resumeText, jdText, keywords)
}
