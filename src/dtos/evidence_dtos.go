package dtos

// EvidenceInput carries the fields accepted on archaeological evidence create
// and update. Typology is the only required relation; the chronology certainty
// level defaults to 1 when the form omits it.
type EvidenceInput struct {
	EvidenceName             string   `json:"evidenceName"`
	Description              string   `json:"description"`
	TypologyID               int      `json:"typologyId"`
	Elevation                *int     `json:"elevation"`
	AdditionalTopography     string   `json:"additionalTopography"`
	LocalityName             string   `json:"localityName"`
	Lat                      *float64 `json:"lat"`
	Lon                      *float64 `json:"lon"`
	Geometry                 string   `json:"geometry"`
	Notes                    string   `json:"notes"`
	ChronologyID             *int     `json:"chronologyId"`
	ChronologyCertaintyLevel int      `json:"chronologyCertaintyLevel"`

	CountryID              *int `json:"countryId"`
	RegionID               *int `json:"regionId"`
	ProvinceID             *int `json:"provinceId"`
	MunicipalityID         *int `json:"municipalityId"`
	PhysiographyID         *int `json:"physiographyId"`
	BaseMapID              *int `json:"baseMapId"`
	PositioningModeID      *int `json:"positioningModeId"`
	PositionalAccuracyID   *int `json:"positionalAccuracyId"`
	FirstDiscoveryMethodID *int `json:"firstDiscoveryMethodId"`
	InvestigationID        *int `json:"investigationId"`

	Bibliographies []BibliographyInput `json:"bibliographies"`
	Sources        []SourceInput       `json:"sources"`
	Docs           []DocInput          `json:"docs"`
	Images         []ImageInput        `json:"images"`
}
