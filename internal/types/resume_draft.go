// Package types provides type definitions for structured data used throughout the resume-importer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeDraft is the structured record the parser extracts from plain resume text.
// Absent values are empty strings and empty slices, never nil.
type ResumeDraft struct {
	FullName    string       `json:"fullName"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Location    string       `json:"location"`
	Summary     string       `json:"summary"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Skills      string       `json:"skills"` // Comma-joined, in order of appearance
}

// Experience represents a single work-experience entry
type Experience struct {
	ID          string `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Period      string `json:"period"`      // Free-form, typically "<start> - <end>"
	Description string `json:"description"` // Newline-joined lines
}

// Education represents a single education entry
type Education struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"` // Single year or "<start> - <end>"
}

// Language represents a spoken language and proficiency level
type Language struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Certification represents a course or certificate
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// ResumeData is the complete editable resume record. The parser never fills
// languages, certifications or the photo; they exist so a draft can be merged
// over a record where every field is present.
type ResumeData struct {
	ResumeDraft
	Languages      []Language      `json:"languages"`
	Certifications []Certification `json:"certifications"`
	PhotoURL       string          `json:"photoUrl"`
}

// NewResumeDraft returns a draft with every field empty and every list non-nil.
func NewResumeDraft() ResumeDraft {
	return ResumeDraft{
		Experiences: []Experience{},
		Education:   []Education{},
	}
}

// DefaultResumeData returns the fully-populated empty record drafts are merged over.
func DefaultResumeData() ResumeData {
	return ResumeData{
		ResumeDraft:    NewResumeDraft(),
		Languages:      []Language{},
		Certifications: []Certification{},
	}
}

// MergeDraft overlays every draft field onto base. Fields the draft does not
// carry (languages, certifications, photo) keep their base values.
func MergeDraft(base ResumeData, draft ResumeDraft) ResumeData {
	merged := base
	merged.ResumeDraft = draft
	if merged.Experiences == nil {
		merged.Experiences = []Experience{}
	}
	if merged.Education == nil {
		merged.Education = []Education{}
	}
	if merged.Languages == nil {
		merged.Languages = []Language{}
	}
	if merged.Certifications == nil {
		merged.Certifications = []Certification{}
	}
	return merged
}
