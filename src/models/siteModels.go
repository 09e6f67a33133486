package models

type Site struct {
	Id                          int      `json:"id" gorm:"primaryKey;autoIncrement"`
	SiteName                    string   `json:"siteName" gorm:"column:site_name;type:varchar(255);not null"`
	SiteEnvironmentRelationship string   `json:"siteEnvironmentRelationship" gorm:"column:site_environment_relationship;type:text"`
	AdditionalTopography        string   `json:"additionalTopography" gorm:"column:additional_topography;type:text"`
	Elevation                   *int     `json:"elevation" gorm:"column:elevation"`
	LocalityName                string   `json:"localityName" gorm:"column:locality_name;type:varchar(255)"`
	Lat                         *float64 `json:"lat" gorm:"column:lat"`
	Lon                         *float64 `json:"lon" gorm:"column:lon"`
	Geometry                    string   `json:"geometry" gorm:"column:geometry;type:text"`
	Description                 string   `json:"description" gorm:"column:description;type:text"`
	Notes                       string   `json:"notes" gorm:"column:notes;type:text"`

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
}

func (Site) TableName() string { return "site" }

// SiteToponymy holds the historical and modern place names of a site.
// At most one row per site.
type SiteToponymy struct {
	Id                    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	AncientPlaceName      string `json:"ancientPlaceName" gorm:"column:ancient_place_name;type:text"`
	ContemporaryPlaceName string `json:"contemporaryPlaceName" gorm:"column:contemporary_place_name;type:text"`
	IdSite                *int   `json:"idSite" gorm:"column:id_site;uniqueIndex"`
	Site                  *Site  `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
}

func (SiteToponymy) TableName() string { return "site_toponymy" }

// Interpretation is a researcher's classification of a site: functional class,
// typology and chronology with a certainty level 1-3.
type Interpretation struct {
	Id                       int              `json:"id" gorm:"primaryKey;autoIncrement"`
	IdSite                   *int             `json:"idSite" gorm:"column:id_site;uniqueIndex"`
	Site                     *Site            `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
	IdFunctionalClass        *int             `json:"idFunctionalClass" gorm:"column:id_functional_class"`
	FunctionalClass          *FunctionalClass `json:"functionalClass,omitempty" gorm:"foreignKey:IdFunctionalClass;references:Id"`
	IdTypology               *int             `json:"idTypology" gorm:"column:id_typology"`
	Typology                 *Typology        `json:"typology,omitempty" gorm:"foreignKey:IdTypology;references:Id"`
	IdTypologyDetail         *int             `json:"idTypologyDetail" gorm:"column:id_typology_detail"`
	TypologyDetail           *TypologyDetail  `json:"typologyDetail,omitempty" gorm:"foreignKey:IdTypologyDetail;references:Id"`
	IdChronology             *int             `json:"idChronology" gorm:"column:id_chronology"`
	Chronology               *Chronology      `json:"chronology,omitempty" gorm:"foreignKey:IdChronology;references:Id"`
	ChronologyCertaintyLevel int              `json:"chronologyCertaintyLevel" gorm:"column:chronology_certainty_level;default:1"`
	Notes                    string           `json:"notes" gorm:"column:notes;type:text"`
}

func (Interpretation) TableName() string { return "interpretation" }

type Investigation struct {
	Id                  int                `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectName         string             `json:"projectName" gorm:"column:project_name;type:text"`
	Period              string             `json:"period" gorm:"column:period;type:text"`
	IdInvestigationType *int               `json:"idInvestigationType" gorm:"column:id_investigation_type"`
	InvestigationType   *InvestigationType `json:"investigationType,omitempty" gorm:"foreignKey:IdInvestigationType;references:Id"`
}

func (Investigation) TableName() string { return "investigation" }

// SiteInvestigation links a site to its investigation. The schema permits many
// rows per site; the application keeps at most one by replacing links on update.
type SiteInvestigation struct {
	Id              int            `json:"id" gorm:"primaryKey;autoIncrement"`
	IdSite          *int           `json:"idSite" gorm:"column:id_site"`
	Site            *Site          `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
	IdInvestigation *int           `json:"idInvestigation" gorm:"column:id_investigation"`
	Investigation   *Investigation `json:"investigation,omitempty" gorm:"foreignKey:IdInvestigation;references:Id;constraint:OnDelete:CASCADE"`
}

func (SiteInvestigation) TableName() string { return "site_investigation" }

// SiteResearch pairs are unique.
type SiteResearch struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	IdSite     int       `json:"idSite" gorm:"column:id_site;uniqueIndex:uniq_site_research"`
	Site       *Site     `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
	IdResearch int       `json:"idResearch" gorm:"column:id_research;uniqueIndex:uniq_site_research"`
	Research   *Research `json:"research,omitempty" gorm:"foreignKey:IdResearch;references:Id;constraint:OnDelete:CASCADE"`
}

func (SiteResearch) TableName() string { return "site_research" }

type SiteBibliography struct {
	Id             int           `json:"id" gorm:"primaryKey;autoIncrement"`
	IdSite         *int          `json:"idSite" gorm:"column:id_site"`
	Site           *Site         `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
	IdBibliography *int          `json:"idBibliography" gorm:"column:id_bibliography"`
	Bibliography   *Bibliography `json:"bibliography,omitempty" gorm:"foreignKey:IdBibliography;references:Id;constraint:OnDelete:CASCADE"`
}

func (SiteBibliography) TableName() string { return "site_bibliography" }

type SiteSources struct {
	Id        int      `json:"id" gorm:"primaryKey;autoIncrement"`
	IdSite    *int     `json:"idSite" gorm:"column:id_site"`
	Site      *Site    `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
	IdSources *int     `json:"idSources" gorm:"column:id_sources"`
	Sources   *Sources `json:"sources,omitempty" gorm:"foreignKey:IdSources;references:Id;constraint:OnDelete:CASCADE"`
}

func (SiteSources) TableName() string { return "site_sources" }

type SiteRelatedDocumentation struct {
	Id     int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name   string `json:"name" gorm:"column:name;type:text"`
	Author string `json:"author" gorm:"column:author;type:text"`
	Year   *int   `json:"year" gorm:"column:year"`
	IdSite *int   `json:"idSite" gorm:"column:id_site"`
	Site   *Site  `json:"-" gorm:"foreignKey:IdSite;references:Id;constraint:OnDelete:CASCADE"`
}

func (SiteRelatedDocumentation) TableName() string { return "site_related_documentation" }
