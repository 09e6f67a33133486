package dtos

// Child collection inputs shared by site and evidence forms. The frontend
// submits them as indexed multipart fields; the controllers collect them into
// these slices before handing off to the services.

type BibliographyInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   *int   `json:"year"`
	Doi    string `json:"doi"`
	Tipo   string `json:"tipo"`
}

func (b BibliographyInput) Empty() bool {
	return b.Title == "" && b.Author == "" && b.Year == nil && b.Doi == "" && b.Tipo == ""
}

type SourceInput struct {
	Name         string `json:"name"`
	ChronologyID *int   `json:"chronologyId"`
	SourceTypeID *int   `json:"sourceTypeId"`
}

func (s SourceInput) Empty() bool {
	return s.Name == "" && s.ChronologyID == nil && s.SourceTypeID == nil
}

type DocInput struct {
	Name   string `json:"name"`
	Author string `json:"author"`
	Year   *int   `json:"year"`
}

func (d DocInput) Empty() bool {
	return d.Name == "" && d.Author == "" && d.Year == nil
}

// ImageInput resolves to an Image row; SourceURL is either the submitted
// external URL or the /media path of the uploaded file, settled by the
// controller before the service runs.
type ImageInput struct {
	TypeID            *int   `json:"typeId"`
	ScaleID           *int   `json:"scaleId"`
	FileName          string `json:"fileName"`
	AcquisitionDate   string `json:"acquisitionDate"`
	Desc              string `json:"desc"`
	Format            string `json:"format"`
	Projection        string `json:"projection"`
	SpatialResolution string `json:"spatialResolution"`
	Author            string `json:"author"`
	SourceURL         string `json:"sourceUrl"`
	KeyWords          string `json:"keyWords"`
}

func (i ImageInput) Empty() bool {
	return i.TypeID == nil && i.ScaleID == nil && i.FileName == "" &&
		i.AcquisitionDate == "" && i.Desc == "" && i.Format == "" &&
		i.Projection == "" && i.SpatialResolution == "" && i.Author == "" &&
		i.SourceURL == "" && i.KeyWords == ""
}

// SiteInput carries everything accepted on site create and update: the site
// scalars, the singleton toponymy/interpretation/investigation sections and
// the repeated child collections.
type SiteInput struct {
	SiteName                    string   `json:"siteName"`
	SiteEnvironmentRelationship string   `json:"siteEnvironmentRelationship"`
	AdditionalTopography        string   `json:"additionalTopography"`
	Elevation                   *int     `json:"elevation"`
	LocalityName                string   `json:"localityName"`
	Lat                         *float64 `json:"lat"`
	Lon                         *float64 `json:"lon"`
	Geometry                    string   `json:"geometry"`
	Description                 string   `json:"description"`
	Notes                       string   `json:"notes"`

	CountryID              *int `json:"countryId"`
	RegionID               *int `json:"regionId"`
	ProvinceID             *int `json:"provinceId"`
	MunicipalityID         *int `json:"municipalityId"`
	PhysiographyID         *int `json:"physiographyId"`
	BaseMapID              *int `json:"baseMapId"`
	PositioningModeID      *int `json:"positioningModeId"`
	PositionalAccuracyID   *int `json:"positionalAccuracyId"`
	FirstDiscoveryMethodID *int `json:"firstDiscoveryMethodId"`

	AncientPlaceName      string `json:"ancientPlaceName"`
	ContemporaryPlaceName string `json:"contemporaryPlaceName"`

	FunctionalClassID        *int `json:"functionalClassId"`
	TypologyID               *int `json:"typologyId"`
	TypologyDetailID         *int `json:"typologyDetailId"`
	ChronologyID             *int `json:"chronologyId"`
	ChronologyCertaintyLevel int  `json:"chronologyCertaintyLevel"`

	ProjectName         string `json:"projectName"`
	Periodo             string `json:"periodo"`
	InvestigationTypeID *int   `json:"investigationTypeId"`

	Bibliographies []BibliographyInput `json:"bibliographies"`
	Sources        []SourceInput       `json:"sources"`
	Docs           []DocInput          `json:"docs"`
	Images         []ImageInput        `json:"images"`
}
