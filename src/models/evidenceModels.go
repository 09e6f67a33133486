package models

type ArchaeologicalEvidenceTypology struct {
	Id                                 int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescTypologyArchaeologicalEvidence string `json:"descTypologyArchaeologicalEvidence" gorm:"column:desc_typology_archaeological_evidence;type:text"`
}

func (ArchaeologicalEvidenceTypology) TableName() string { return "archaeological_evidence_typology" }

// ArchaeologicalEvidence is a find not necessarily tied to one site. It links
// to sites through SiteArchEvidence and to research both directly
// (ArchEvResearch) and transitively through sites.
type ArchaeologicalEvidence struct {
	Id                       int                             `json:"id" gorm:"primaryKey;autoIncrement"`
	EvidenceName             string                          `json:"evidenceName" gorm:"column:evidence_name;type:varchar(255)"`
	Description              string                          `json:"description" gorm:"column:description;type:text"`
	IdTypology               int                             `json:"idTypology" gorm:"column:id_archaeological_evidence_typology;not null"`
	EvidenceTypology         *ArchaeologicalEvidenceTypology `json:"evidenceTypology,omitempty" gorm:"foreignKey:IdTypology;references:Id"`
	Elevation                *int                            `json:"elevation" gorm:"column:elevation"`
	AdditionalTopography     string                          `json:"additionalTopography" gorm:"column:additional_topography;type:text"`
	LocalityName             string                          `json:"localityName" gorm:"column:locality_name;type:varchar(255)"`
	Lat                      *float64                        `json:"lat" gorm:"column:lat"`
	Lon                      *float64                        `json:"lon" gorm:"column:lon"`
	Geometry                 string                          `json:"geometry" gorm:"column:geometry;type:text;not null"`
	Notes                    string                          `json:"notes" gorm:"column:notes;type:text"`
	IdChronology             *int                            `json:"idChronology" gorm:"column:id_chronology"`
	Chronology               *Chronology                     `json:"chronology,omitempty" gorm:"foreignKey:IdChronology;references:Id"`
	ChronologyCertaintyLevel int                             `json:"chronologyCertaintyLevel" gorm:"column:chronology_certainty_level;default:1"`

	IdCountry              *int                  `json:"idCountry" gorm:"column:id_country"`
	Country                *Country              `json:"country,omitempty" gorm:"foreignKey:IdCountry;references:Id"`
	IdRegion               *int                  `json:"idRegion" gorm:"column:id_region"`
	Region                 *Region               `json:"region,omitempty" gorm:"foreignKey:IdRegion;references:IdRegion"`
	IdProvince             *int                  `json:"idProvince" gorm:"column:id_province"`
	Province               *Province             `json:"province,omitempty" gorm:"foreignKey:IdProvince;references:Id"`
	IdMunicipality         *int                  `json:"idMunicipality" gorm:"column:id_municipality"`
	Municipality           *Municipality         `json:"municipality,omitempty" gorm:"foreignKey:IdMunicipality;references:Id"`
	IdPhysiography         *int                  `json:"idPhysiography" gorm:"column:id_physiography"`
	Physiography           *Physiography         `json:"physiography,omitempty" gorm:"foreignKey:IdPhysiography;references:Id"`
	IdBaseMap              *int                  `json:"idBaseMap" gorm:"column:id_base_map"`
	BaseMap                *BaseMap              `json:"baseMap,omitempty" gorm:"foreignKey:IdBaseMap;references:Id"`
	IdPositioningMode      *int                  `json:"idPositioningMode" gorm:"column:id_positioning_mode"`
	PositioningMode        *PositioningMode      `json:"positioningMode,omitempty" gorm:"foreignKey:IdPositioningMode;references:Id"`
	IdPositionalAccuracy   *int                  `json:"idPositionalAccuracy" gorm:"column:id_positional_accuracy"`
	PositionalAccuracy     *PositionalAccuracy   `json:"positionalAccuracy,omitempty" gorm:"foreignKey:IdPositionalAccuracy;references:Id"`
	IdFirstDiscoveryMethod *int                  `json:"idFirstDiscoveryMethod" gorm:"column:id_first_discovery_method"`
	FirstDiscoveryMethod   *FirstDiscoveryMethod `json:"firstDiscoveryMethod,omitempty" gorm:"foreignKey:IdFirstDiscoveryMethod;references:Id"`
	IdInvestigation        *int                  `json:"idInvestigation" gorm:"column:id_investigation"`
	Investigation          *Investigation        `json:"investigation,omitempty" gorm:"foreignKey:IdInvestigation;references:Id"`
}

func (ArchaeologicalEvidence) TableName() string { return "archaeological_evidence" }

// SiteArchEvidence implements the 0..n / 0..n relation between site and evidence.
type SiteArchEvidence struct {
	Id                       int                     `json:"id" gorm:"primaryKey;autoIncrement"`
	IdSite                   int                     `json:"idSite" gorm:"column:id_site"`
	Site                     *Site                   `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
	IdArchaeologicalEvidence int                     `json:"idArchaeologicalEvidence" gorm:"column:id_archaeological_evidence"`
	Evidence                 *ArchaeologicalEvidence `json:"-" gorm:"foreignKey:IdArchaeologicalEvidence;references:Id;constraint:OnDelete:CASCADE"`
}

func (SiteArchEvidence) TableName() string { return "site_arch_evidence" }

type ArchEvResearch struct {
	Id                       int                     `json:"id" gorm:"primaryKey;autoIncrement"`
	IdArchaeologicalEvidence *int                    `json:"idArchaeologicalEvidence" gorm:"column:id_archaeological_evidence"`
	Evidence                 *ArchaeologicalEvidence `json:"-" gorm:"foreignKey:IdArchaeologicalEvidence;references:Id;constraint:OnDelete:CASCADE"`
	IdResearch               int                     `json:"idResearch" gorm:"column:id_research"`
}

func (ArchEvResearch) TableName() string { return "arch_ev_research" }

type ArchEvBiblio struct {
	Id                       int                     `json:"id" gorm:"primaryKey;autoIncrement"`
	IdArchaeologicalEvidence *int                    `json:"idArchaeologicalEvidence" gorm:"column:id_archaeological_evidence"`
	Evidence                 *ArchaeologicalEvidence `json:"-" gorm:"foreignKey:IdArchaeologicalEvidence;references:Id;constraint:OnDelete:CASCADE"`
	IdBibliography           *int                    `json:"idBibliography" gorm:"column:id_bibliography"`
	Bibliography             *Bibliography           `json:"bibliography,omitempty" gorm:"foreignKey:IdBibliography;references:Id;constraint:OnDelete:CASCADE"`
}

func (ArchEvBiblio) TableName() string { return "arch_ev_biblio" }

type ArchEvSources struct {
	Id                       int                     `json:"id" gorm:"primaryKey;autoIncrement"`
	IdArchaeologicalEvidence *int                    `json:"idArchaeologicalEvidence" gorm:"column:id_archaeological_evidence"`
	Evidence                 *ArchaeologicalEvidence `json:"-" gorm:"foreignKey:IdArchaeologicalEvidence;references:Id;constraint:OnDelete:CASCADE"`
	IdSources                *int                    `json:"idSources" gorm:"column:id_sources"`
	Sources                  *Sources                `json:"sources,omitempty" gorm:"foreignKey:IdSources;references:Id;constraint:OnDelete:CASCADE"`
}

func (ArchEvSources) TableName() string { return "arch_ev_sources" }

type ArchEvRelatedDoc struct {
	Id                       int                     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                     string                  `json:"name" gorm:"column:name;type:text"`
	Author                   string                  `json:"author" gorm:"column:author;type:text"`
	Year                     *int                    `json:"year" gorm:"column:year"`
	IdArchaeologicalEvidence *int                    `json:"idArchaeologicalEvidence" gorm:"column:id_archaeological_evidence"`
	Evidence                 *ArchaeologicalEvidence `json:"-" gorm:"foreignKey:IdArchaeologicalEvidence;references:Id;constraint:OnDelete:CASCADE"`
}

func (ArchEvRelatedDoc) TableName() string { return "arch_ev_related_doc" }
