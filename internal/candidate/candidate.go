package candidate

import "strings"

// Record is the structured form of a single resume. It is produced once by
// the extraction step and never mutated afterwards.
type Record struct {
	Name           string           `json:"name"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Location       string           `json:"location,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Skills         []string         `json:"skills"`
	Experience     []WorkExperience `json:"experience"`
	Education      []Education      `json:"education"`
	Certifications []string         `json:"certifications,omitempty"`
}

type WorkExperience struct {
	Title            string   `json:"job_title"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration,omitempty"`
	Years            float64  `json:"years"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// TotalYears sums the duration of all work history entries. Overlapping
// periods are not detected.
func (r *Record) TotalYears() float64 {
	var total float64
	for _, exp := range r.Experience {
		if exp.Years > 0 {
			total += exp.Years
		}
	}
	return total
}

// DisplayName returns the candidate name or a placeholder when the resume
// carried none.
func (r *Record) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return "Unknown"
}
