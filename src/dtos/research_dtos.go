package dtos

// AuthorSpec describes one research author as submitted by the frontend.
// Exactly one of the resolution paths is used: the submitter themselves,
// an existing user id, or name/email details for lookup-or-create.
type AuthorSpec struct {
	IsSelf      bool   `json:"isSelf"`
	UserID      *int   `json:"userId"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Orcid       string `json:"orcid"`
}

// ResearchInput carries the fields accepted on research create and update.
type ResearchInput struct {
	Title     string       `json:"title"`
	Year      string       `json:"year"`
	Keywords  string       `json:"keywords"`
	Abstract  string       `json:"abstract"`
	Type      string       `json:"type"`
	Geometry  string       `json:"geometry"`
	Author    AuthorSpec   `json:"author"`
	Coauthors []AuthorSpec `json:"coauthors"`
}

// ResearchSummaryDTO is the list-page projection of a research record.
type ResearchSummaryDTO struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Year          string `json:"year"`
	Type          string `json:"type"`
	Keywords      string `json:"keywords"`
	SubmitterName string `json:"submitterName,omitempty"`
	AuthorNames   string `json:"authorNames,omitempty"`
	SiteCount     int64  `json:"siteCount"`
	EvidenceCount int64  `json:"evidenceCount"`
	CanEdit       bool   `json:"canEdit"`
}

// HomeStatsDTO backs the landing page counters.
type HomeStatsDTO struct {
	ResearchCount int64 `json:"researchCount"`
	SiteCount     int64 `json:"siteCount"`
	EvidenceCount int64 `json:"evidenceCount"`
	UserCount     int64 `json:"userCount"`
}
