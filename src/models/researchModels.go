package models

type Research struct {
	Id            int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string `json:"title" gorm:"column:title;type:varchar(255)"`
	Year          string `json:"year" gorm:"column:year;type:varchar(4)"`
	Keywords      string `json:"keywords" gorm:"column:keywords;type:varchar(255)"`
	Abstract      string `json:"abstract" gorm:"column:abstract;type:text"`
	Type          string `json:"type" gorm:"column:type;type:varchar(255)"`
	// Study-area polygon in the ((lon,lat),(lon,lat),...) wire format.
	Geometry    string `json:"geometry" gorm:"column:geometry;type:text"`
	SubmittedBy *int   `json:"submittedBy" gorm:"column:submitted_by"`
	Submitter   *User  `json:"submitter,omitempty" gorm:"foreignKey:SubmittedBy;references:Id"`
}

func (Research) TableName() string { return "research" }

// ResearchAuthor links a research to one of its authors. Authors are Users
// (the legacy standalone author table was consolidated into users/profile).
// The (research, author) pair is unique.
type ResearchAuthor struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	IdResearch *int      `json:"idResearch" gorm:"column:id_research;uniqueIndex:uniq_research_author"`
	Research   *Research `json:"research,omitempty" gorm:"foreignKey:IdResearch;references:Id;constraint:OnDelete:CASCADE"`
	IdAuthor   *int      `json:"idAuthor" gorm:"column:id_author;uniqueIndex:uniq_research_author"`
	Author     *User     `json:"author,omitempty" gorm:"foreignKey:IdAuthor;references:Id;constraint:OnDelete:CASCADE"`
}

func (ResearchAuthor) TableName() string { return "research_author" }
