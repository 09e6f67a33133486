package models

// Bibliography, documentary sources and images are shared child record types
// attached to sites and evidences through their junction tables. They carry no
// identity across edits: updates replace the whole collection.

type Bibliography struct {
	Id     int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title  string `json:"title" gorm:"column:title;type:varchar(255)"`
	Author string `json:"author" gorm:"column:author;type:varchar(255)"`
	Year   *int   `json:"year" gorm:"column:year"`
	Doi    string `json:"doi" gorm:"column:doi;type:text"`
	Tipo   string `json:"tipo" gorm:"column:tipo;type:text"`
}

func (Bibliography) TableName() string { return "bibliography" }

type Sources struct {
	Id               int          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string       `json:"name" gorm:"column:name;type:text"`
	IdChronology     *int         `json:"idChronology" gorm:"column:id_chronology"`
	Chronology       *Chronology  `json:"chronology,omitempty" gorm:"foreignKey:IdChronology;references:Id"`
	IdSourcesTypology *int        `json:"idSourcesTypology" gorm:"column:id_sources_typology"`
	SourcesTypology  *SourcesType `json:"sourcesTypology,omitempty" gorm:"foreignKey:IdSourcesTypology;references:Id"`
}

func (Sources) TableName() string { return "sources" }

// Image metadata; SourceURL holds either an external URL or the /media path of
// an uploaded file.
type Image struct {
	Id                       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	FileName                 string `json:"fileName" gorm:"column:file_name;type:text"`
	AcquisitionDate          string `json:"acquisitionDate" gorm:"column:acquisition_date;type:text"`
	DescImage                string `json:"descImage" gorm:"column:desc_image;type:text"`
	IdImageScale             *int   `json:"idImageScale" gorm:"column:id_image_scale"`
	IdImageType              *int   `json:"idImageType" gorm:"column:id_image_type"`
	Format                   string `json:"format" gorm:"column:format;type:text"`
	Projection               string `json:"projection" gorm:"column:projection;type:text"`
	SpatialResolution        string `json:"spatialResolution" gorm:"column:spatial_resolution;type:text"`
	Author                   string `json:"author" gorm:"column:author;type:text"`
	SourceURL                string `json:"sourceUrl" gorm:"column:source_url;type:text"`
	KeyWords                 string `json:"keyWords" gorm:"column:key_words;type:text"`
	IdSite                   *int   `json:"idSite" gorm:"column:id_site"`
	Site                     *Site  `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
	IdArchaeologicalEvidence *int   `json:"idArchaeologicalEvidence" gorm:"column:id_archaeological_evidence"`
}

func (Image) TableName() string { return "image" }
