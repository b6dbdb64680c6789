package rendering

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, doc Document) *goquery.Document {
	t.Helper()
	html, err := RenderHTML(doc)
	require.NoError(t, err)

	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	return parsed
}

func sampleDocument() Document {
	return Document{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "555-0100",
		LinkedIn: "linkedin.com/in/ada",
		Summary:  "Backend engineer focused on data systems.",
		Skills:   []string{"Go", "PostgreSQL"},
		Experience: []Experience{
			{
				JobTitle:        "Senior Engineer",
				Company:         "Analytical Engines",
				Location:        "London",
				Dates:           "2020 - Present",
				Description:     "Platform team.\nOwned the storage layer.",
				Accomplishments: []string{"Cut query latency by 40%", "Mentored two juniors"},
			},
		},
		Projects: []Project{
			{Name: "diffsync", Description: "Delta sync library", Tools: "Go, gRPC"},
		},
		Education: []Education{
			{Degree: "BSc Mathematics", Institution: "University of London"},
		},
	}
}

func TestRenderHTMLSections(t *testing.T) {
	doc := renderDoc(t, sampleDocument())

	assert.Equal(t, "Ada Lovelace", doc.Find("h1").Text())

	headings := doc.Find("h3").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Equal(t, []string{"Summary", "Skills", "Work Experience", "Technical Projects", "Education"}, headings)

	assert.Contains(t, doc.Find("body").Text(), "Backend engineer focused on data systems.")
}

func TestRenderHTMLContactLineSkipsEmptyFields(t *testing.T) {
	doc := renderDoc(t, sampleDocument())

	contact := doc.Find("div p").First().Text()
	assert.Equal(t, "ada@example.com | 555-0100 | linkedin.com/in/ada", contact)
}

func TestRenderHTMLSkillsAsSpans(t *testing.T) {
	doc := renderDoc(t, sampleDocument())

	skills := doc.Find("span").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Equal(t, []string{"Go", "PostgreSQL"}, skills)
}

func TestRenderHTMLExperienceGrouping(t *testing.T) {
	doc := renderDoc(t, sampleDocument())

	assert.Contains(t, doc.Find("h4").First().Text(), "Senior Engineer | Analytical Engines - London")

	bullets := doc.Find("li").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Equal(t, []string{"Cut query latency by 40%", "Mentored two juniors"}, bullets)

	// Multiline description splits into separate paragraphs.
	text := doc.Find("body").Text()
	assert.Contains(t, text, "Platform team.")
	assert.Contains(t, text, "Owned the storage layer.")
}

func TestRenderHTMLEscapesUserContent(t *testing.T) {
	d := sampleDocument()
	d.Summary = `<script>alert("x")</script>`

	doc := renderDoc(t, d)
	assert.Zero(t, doc.Find("script").Length())
	assert.Contains(t, doc.Find("body").Text(), `<script>`)
}

func TestRenderHTMLEmptyDocument(t *testing.T) {
	doc := renderDoc(t, Document{})

	assert.Equal(t, "Your Name", doc.Find("h1").Text())
	assert.Equal(t, "", doc.Find("div p").First().Text())
	assert.Zero(t, doc.Find("li").Length())
}
