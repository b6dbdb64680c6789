// Package atsgen produces a plain-text, single-column resume aimed at
// applicant tracking systems, which parse unstyled text far more reliably
// than formatted documents.
package atsgen

import "strings"

// Resume is the input to the text generator.
type Resume struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	LinkedIn   string      `json:"linkedin"`
	Summary    string      `json:"summary"`
	Skills     []string    `json:"skills"`
	Experience []Job       `json:"experience"`
	Education  []Education `json:"education"`
}

// Job is one work-experience entry.
type Job struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Dates   string   `json:"dates"`
	Bullets []string `json:"bullets"`
}

// Education is one education entry.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Dates  string `json:"dates"`
}

// Generate renders the resume as plain text. Sections with no content are
// omitted entirely rather than left as empty headings.
func Generate(r Resume) string {
	var out []string

	out = append(out, r.Name)
	var contact []string
	for _, field := range []string{r.Email, r.Phone, r.LinkedIn} {
		if field != "" {
			contact = append(contact, field)
		}
	}
	out = append(out, strings.Join(contact, " | "))
	out = append(out, "\n"+strings.Repeat("=", 80)+"\n")

	if r.Summary != "" {
		out = append(out, "SUMMARY", r.Summary, "\n")
	}

	if len(r.Skills) > 0 {
		out = append(out, "SKILLS", strings.Join(r.Skills, ", "), "\n")
	}

	if len(r.Experience) > 0 {
		out = append(out, "WORK EXPERIENCE")
		for _, job := range r.Experience {
			out = append(out, "\n"+job.Title)
			out = append(out, job.Company+" | "+job.Dates)
			for _, bullet := range job.Bullets {
				out = append(out, "- "+bullet)
			}
		}
		out = append(out, "\n")
	}

	if len(r.Education) > 0 {
		out = append(out, "EDUCATION")
		for _, edu := range r.Education {
			out = append(out, "\n"+edu.Degree)
			out = append(out, edu.School+" | "+edu.Dates)
		}
	}

	return strings.Join(out, "\n")
}
