package dtos

import "github.com/ergin84/ShareLand/src/models"

// SiteDetailDTO aggregates a site with its singleton sections, child
// collections and linked evidences for the detail pages.
type SiteDetailDTO struct {
	Site           models.Site                       `json:"site"`
	Toponymy       *models.SiteToponymy              `json:"toponymy,omitempty"`
	Interpretation *models.Interpretation            `json:"interpretation,omitempty"`
	Investigation  *models.SiteInvestigation         `json:"investigation,omitempty"`
	Bibliographies []models.SiteBibliography         `json:"bibliographies"`
	Sources        []models.SiteSources              `json:"sources"`
	Docs           []models.SiteRelatedDocumentation `json:"docs"`
	Images         []models.Image                    `json:"images"`
	Evidences      []models.ArchaeologicalEvidence   `json:"evidences"`
	Coordinates    [][2]float64                      `json:"coordinates,omitempty"`
	Center         *[2]float64                       `json:"center,omitempty"`
	CanEdit        bool                              `json:"canEdit"`
	Warnings       []string                          `json:"warnings,omitempty"`
}

// EvidenceDetailDTO aggregates an evidence with its child collections.
type EvidenceDetailDTO struct {
	Evidence       models.ArchaeologicalEvidence `json:"evidence"`
	Bibliographies []models.ArchEvBiblio         `json:"bibliographies"`
	Sources        []models.ArchEvSources        `json:"sources"`
	Docs           []models.ArchEvRelatedDoc     `json:"docs"`
	Images         []models.Image                `json:"images"`
	Coordinates    [][2]float64                  `json:"coordinates,omitempty"`
	Center         *[2]float64                   `json:"center,omitempty"`
	CanEdit        bool                          `json:"canEdit"`
	Warnings       []string                      `json:"warnings,omitempty"`
}

// ResearchDetailDTO is the full research tree: sites with their details plus
// evidences linked directly to the research.
type ResearchDetailDTO struct {
	Research        models.Research     `json:"research"`
	Authors         []models.Profile    `json:"authors"`
	Sites           []SiteDetailDTO     `json:"sites"`
	DirectEvidences []EvidenceDetailDTO `json:"directEvidences"`
	Coordinates     [][2]float64        `json:"coordinates,omitempty"`
	Center          *[2]float64         `json:"center,omitempty"`
	CanEdit         bool                `json:"canEdit"`
	Warnings        []string            `json:"warnings,omitempty"`
}
