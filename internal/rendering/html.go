// Package rendering turns a structured resume document into the standalone
// HTML page that the PDF converter consumes. html/template handles escaping,
// so user content cannot break out of the markup.
package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Document is the full renderable resume.
type Document struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	LinkedIn   string       `json:"linkedin"`
	GitHub     string       `json:"github"`
	Location   string       `json:"location"`
	Portfolio  string       `json:"portfolio"`
	Summary    string       `json:"summary"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Education  []Education  `json:"education"`
}

// Experience is one work-history entry with its accomplishment bullets
// already grouped under it.
type Experience struct {
	JobTitle        string   `json:"job_title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Dates           string   `json:"dates"`
	Description     string   `json:"description"`
	Accomplishments []string `json:"accomplishments"`
}

// DescriptionLines splits the free-form description on newlines for the
// template, which renders each line as its own paragraph.
func (e Experience) DescriptionLines() []string {
	if strings.TrimSpace(e.Description) == "" {
		return nil
	}
	return strings.Split(e.Description, "\n")
}

// Project is one technical-project entry.
type Project struct {
	Name        string `json:"project_name"`
	Description string `json:"description"`
	Tools       string `json:"tools"`
}

// DescriptionLines mirrors Experience.DescriptionLines for projects.
func (p Project) DescriptionLines() []string {
	if strings.TrimSpace(p.Description) == "" {
		return nil
	}
	return strings.Split(p.Description, "\n")
}

// Education is one education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
}

// DisplayName falls back to a placeholder so an unnamed draft still renders.
func (d Document) DisplayName() string {
	if strings.TrimSpace(d.Name) == "" {
		return "Your Name"
	}
	return d.Name
}

// ContactLine joins the non-empty contact fields with pipes.
func (d Document) ContactLine() string {
	fields := []string{d.Email, d.Phone, d.LinkedIn, d.GitHub, d.Location, d.Portfolio}
	var present []string
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			present = append(present, f)
		}
	}
	return strings.Join(present, " | ")
}

var resumeTemplate = template.Must(template.New("resume").Parse(`<html><head><style>body { font-family: sans-serif; font-size: 11pt; } h1, h2, h3, h4, p { margin: 0; padding: 0; } hr { border: none; border-top: 1px solid #ccc; margin: 15px 0; }</style></head>
<body>
<div style="text-align: center;"><h1 style="font-size: 2.5em;">{{.DisplayName}}</h1><p>{{.ContactLine}}</p></div><hr>
<div><h3>Summary</h3><p>{{.Summary}}</p></div><hr>
<div><h3>Skills</h3><p>{{range .Skills}}<span style="background-color: #eee; padding: 2px 6px; border-radius: 4px; margin-right: 5px;">{{.}}</span>{{end}}</p></div><hr>
<div><h3>Work Experience</h3>
{{range .Experience}}<div style="margin-bottom: 15px;">
<div style="display: flex; justify-content: space-between; align-items: baseline;">
<h4 style="margin: 0; font-size: 1.1em; font-weight: bold;">{{.JobTitle}} | {{.Company}} - {{.Location}}</h4>
<p style="margin: 0; font-style: italic;">{{.Dates}}</p>
</div>
{{if .DescriptionLines}}<div style="margin-left: 20px; font-style: italic; font-size: 0.9em; color: #555;">{{range .DescriptionLines}}<p>{{.}}</p>{{end}}</div>{{end}}
<ul style="margin-top: 5px; list-style-position: inside;">{{range .Accomplishments}}<li style="margin-bottom: 5px;">{{.}}</li>{{end}}</ul>
</div>
{{end}}</div><hr>
<div><h3>Technical Projects</h3>
{{range .Projects}}<div style="margin-bottom: 15px;">
<h4 style="margin: 0; font-size: 1.1em;">{{.Name}}</h4>
{{range .DescriptionLines}}<p style="margin-top: 5px;">{{.}}</p>{{end}}
<p><b>Tools:</b> {{.Tools}}</p>
</div>
{{end}}</div><hr>
<div><h3>Education</h3>{{range .Education}}<p>{{.Degree}} - {{.Institution}}</p>{{end}}</div>
</body></html>`))

// RenderHTML renders the document into the page handed to the PDF converter.
func RenderHTML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render resume HTML: %w", err)
	}
	return buf.Bytes(), nil
}
