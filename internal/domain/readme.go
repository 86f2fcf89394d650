package domain

import "strings"

// ReadmeAnswers holds the learner's answers to the README questionnaire.
// Every field is optional.
type ReadmeAnswers struct {
	ProjectName string
	Tagline     string
	Problem     string
	Solution    string
	HowItWorks  string
	Results     string
	TechStack   string
	Status      string
}

// DefaultProjectName is used when the learner skips the name question.
const DefaultProjectName = "Project Name"

// Render builds the README.md content. Sections whose answer is empty are
// left out entirely.
func (a ReadmeAnswers) Render() string {
	name := strings.TrimSpace(a.ProjectName)
	if name == "" {
		name = DefaultProjectName
	}

	parts := []string{"# " + name}
	if t := strings.TrimSpace(a.Tagline); t != "" {
		parts = append(parts, "\n"+t)
	}

	sections := []struct {
		title, body string
	}{
		{"The Problem", a.Problem},
		{"The Solution", a.Solution},
		{"How It Works", a.HowItWorks},
		{"Results", a.Results},
		{"Tech Stack", a.TechStack},
		{"Status", a.Status},
	}
	for _, s := range sections {
		body := strings.TrimSpace(s.body)
		if body == "" {
			continue
		}
		parts = append(parts, "\n## "+s.title+"\n\n"+body)
	}

	return strings.Join(parts, "\n") + "\n"
}
