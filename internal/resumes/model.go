package resumes

import "time"

// Resume is a stored resume owned by a user. Skills are the flat name list
// consumed by counselling skill extraction; the file fields are set only for
// uploaded resumes.
type Resume struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	Name             string     `json:"name"`
	Skills           []string   `json:"skills"`
	WorkExperience   []string   `json:"workExperience,omitempty"`
	Projects         []string   `json:"projects,omitempty"`
	Education        []string   `json:"education,omitempty"`
	FileName         string     `json:"fileName,omitempty"`
	StorageKey       string     `json:"-"`
	ExtractedTextKey string     `json:"-"`
	ExtractedAt      *time.Time `json:"extractedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Summary is the listing shape returned at counselling session start.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summarize reduces a resume to its listing shape.
func Summarize(r Resume) Summary {
	return Summary{
		ID:        r.ID,
		Name:      r.Name,
		Skills:    r.Skills,
		CreatedAt: r.CreatedAt,
	}
}
