package models

// Static reference tables. Rows come from seed data and are never edited
// through the application.

type Country struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	NameCountry string `json:"nameCountry" gorm:"column:name_country;type:varchar(255)"`
}

func (Country) TableName() string { return "country" }

type Region struct {
	IdRegion               int    `json:"id" gorm:"column:id_region;primaryKey;autoIncrement"`
	RipartizioneGeografica string `json:"ripartizioneGeografica" gorm:"column:ripartizione_geografica;type:text"`
	CodiceRegione          string `json:"codiceRegione" gorm:"column:codice_regione;type:text"`
	DenominazioneRegione   string `json:"denominazioneRegione" gorm:"column:denominazione_regione;type:text"`
	TipologiaRegione       string `json:"tipologiaRegione" gorm:"column:tipologia_regione;type:text"`
	SuperficieKmq          string `json:"superficieKmq" gorm:"column:superficie_kmq;type:text"`
}

func (Region) TableName() string { return "region" }

type Province struct {
	Id                     int      `json:"id" gorm:"primaryKey;autoIncrement"`
	CodiceRegione          int      `json:"codiceRegione" gorm:"column:codice_regione;not null"`
	Region                 Region   `json:"region,omitempty" gorm:"foreignKey:CodiceRegione;references:IdRegion"`
	SiglaProvincia         string   `json:"siglaProvincia" gorm:"column:sigla_provincia;type:text"`
	DenominazioneProvincia string   `json:"denominazioneProvincia" gorm:"column:denominazione_provincia;type:text"`
	SuperficieKmq          *float64 `json:"superficieKmq" gorm:"column:superficie_kmq"`
	CodiceSovracomunale    *int     `json:"codiceSovracomunale" gorm:"column:codice_sovracomunale"`
}

func (Province) TableName() string { return "province" }

type Municipality struct {
	Id                  int      `json:"id" gorm:"primaryKey;autoIncrement"`
	DenominazioneComune string   `json:"denominazioneComune" gorm:"column:denominazione_comune;type:text"`
	Lat                 *float64 `json:"lat" gorm:"column:lat"`
	Lon                 *float64 `json:"lon" gorm:"column:lon"`
	SiglaProvincia      string   `json:"siglaProvincia" gorm:"column:sigla_provincia;type:varchar(10)"`
	IdProvince          *int     `json:"idProvince" gorm:"column:id_province"`
	Province            Province `json:"province,omitempty" gorm:"foreignKey:IdProvince;references:Id"`
}

func (Municipality) TableName() string { return "municipality" }

type BaseMap struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescBaseMap string `json:"descBaseMap" gorm:"column:desc_base_map;type:text"`
}

func (BaseMap) TableName() string { return "base_map" }

type Physiography struct {
	Id               int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescPhysiography string `json:"descPhysiography" gorm:"column:desc_physiography;type:text"`
}

func (Physiography) TableName() string { return "physiography" }

type PositioningMode struct {
	Id                  int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescPositioningMode string `json:"descPositioningMode" gorm:"column:desc_positioning_mode;type:text"`
}

func (PositioningMode) TableName() string { return "positioning_mode" }

type PositionalAccuracy struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Degree       *int   `json:"degree" gorm:"column:degree"`
	Description  string `json:"description" gorm:"column:description;type:text"`
	PositionType string `json:"positionType" gorm:"column:position_type;type:text"`
}

func (PositionalAccuracy) TableName() string { return "positional_accuracy" }

type FirstDiscoveryMethod struct {
	Id                       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescFirstDiscoveryMethod string `json:"descFirstDiscoveryMethod" gorm:"column:desc_first_discovery_method;type:varchar(255)"`
}

func (FirstDiscoveryMethod) TableName() string { return "first_discovery_method" }

type Chronology struct {
	Id                  int    `json:"id" gorm:"primaryKey;autoIncrement"`
	ChronologicalPeriod string `json:"chronologicalPeriod" gorm:"column:chronological_period;type:varchar(255)"`
	Start               *int   `json:"start" gorm:"column:start"`
	Stop                *int   `json:"stop" gorm:"column:stop"`
}

func (Chronology) TableName() string { return "chronology" }

type FunctionalClass struct {
	Id                  int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescFunctionalClass string `json:"descFunctionalClass" gorm:"column:desc_functional_class;type:text"`
}

func (FunctionalClass) TableName() string { return "functional_class" }

type Typology struct {
	Id                int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescTypology      string `json:"descTypology" gorm:"column:desc_typology;type:text"`
	IdFunctionalClass *int   `json:"idFunctionalClass" gorm:"column:id_functional_class"`
}

func (Typology) TableName() string { return "typology" }

type TypologyDetail struct {
	Id                 int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescTypologyDetail string `json:"descTypologyDetail" gorm:"column:desc_typology_detail;type:text"`
	IdTypology         *int   `json:"idTypology" gorm:"column:id_typology"`
	IdFunctionalClass  *int   `json:"idFunctionalClass" gorm:"column:id_functional_class"`
}

func (TypologyDetail) TableName() string { return "typology_detail" }

type SourcesType struct {
	Id              int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescSourcesType string `json:"descSourcesType" gorm:"column:desc_sources_type;type:text"`
}

func (SourcesType) TableName() string { return "sources_type" }

type ImageType struct {
	Id            int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescImageType string `json:"descImageType" gorm:"column:desc_image_type;type:text"`
}

func (ImageType) TableName() string { return "image_type" }

type ImageScale struct {
	Id             int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescImageScale string `json:"descImageScale" gorm:"column:desc_image_scale;type:text"`
}

func (ImageScale) TableName() string { return "image_scale" }

type InvestigationType struct {
	Id                    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	DescInvestigationType string `json:"descInvestigationType" gorm:"column:desc_investigation_type;type:text"`
}

func (InvestigationType) TableName() string { return "investigation_type" }
