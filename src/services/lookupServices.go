package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/ergin84/ShareLand/src/models"
	"gorm.io/gorm"
)

// Cache entry
type CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// LookupService serves the static reference tables. Full-table reads are
// cached in memory since the rows only change on reseed.
type LookupService struct {
	db    *gorm.DB
	cache map[string]*CacheEntry
	mutex sync.RWMutex
}

func NewLookupService(db *gorm.DB) *LookupService {
	service := &LookupService{
		db:    db,
		cache: make(map[string]*CacheEntry),
	}

	// Clean up cache every 30 minutes
	go service.cleanupCache()

	return service
}

func (s *LookupService) cleanupCache() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for key, entry := range s.cache {
			if now.After(entry.ExpiresAt) {
				delete(s.cache, key)
			}
		}
		s.mutex.Unlock()
	}
}

func (s *LookupService) setCache(key string, data interface{}, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cache[key] = &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(duration),
	}
}

func (s *LookupService) getCache(key string) (interface{}, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.cache[key]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

const lookupCacheTTL = 1 * time.Hour

func cachedList[T any](s *LookupService, key, order string) ([]T, error) {
	if cached, ok := s.getCache(key); ok {
		if rows, ok := cached.([]T); ok {
			return rows, nil
		}
	}
	var rows []T
	if err := s.db.Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	s.setCache(key, rows, lookupCacheTTL)
	return rows, nil
}

func (s *LookupService) GetCountries() ([]models.Country, error) {
	return cachedList[models.Country](s, "countries", "name_country")
}

func (s *LookupService) GetRegions() ([]models.Region, error) {
	return cachedList[models.Region](s, "regions", "denominazione_regione")
}

func (s *LookupService) GetProvinces() ([]models.Province, error) {
	return cachedList[models.Province](s, "provinces", "denominazione_provincia")
}

func (s *LookupService) GetMunicipalities() ([]models.Municipality, error) {
	return cachedList[models.Municipality](s, "municipalities", "denominazione_comune")
}

func (s *LookupService) GetBaseMaps() ([]models.BaseMap, error) {
	return cachedList[models.BaseMap](s, "base_maps", "id")
}

func (s *LookupService) GetPhysiographies() ([]models.Physiography, error) {
	return cachedList[models.Physiography](s, "physiographies", "id")
}

func (s *LookupService) GetPositioningModes() ([]models.PositioningMode, error) {
	return cachedList[models.PositioningMode](s, "positioning_modes", "id")
}

func (s *LookupService) GetPositionalAccuracies() ([]models.PositionalAccuracy, error) {
	return cachedList[models.PositionalAccuracy](s, "positional_accuracies", "id")
}

func (s *LookupService) GetFirstDiscoveryMethods() ([]models.FirstDiscoveryMethod, error) {
	return cachedList[models.FirstDiscoveryMethod](s, "first_discovery_methods", "id")
}

func (s *LookupService) GetChronologies() ([]models.Chronology, error) {
	return cachedList[models.Chronology](s, "chronologies", "id")
}

func (s *LookupService) GetFunctionalClasses() ([]models.FunctionalClass, error) {
	return cachedList[models.FunctionalClass](s, "functional_classes", "id")
}

func (s *LookupService) GetSourcesTypes() ([]models.SourcesType, error) {
	return cachedList[models.SourcesType](s, "sources_types", "id")
}

func (s *LookupService) GetImageTypes() ([]models.ImageType, error) {
	return cachedList[models.ImageType](s, "image_types", "id")
}

func (s *LookupService) GetImageScales() ([]models.ImageScale, error) {
	return cachedList[models.ImageScale](s, "image_scales", "id")
}

func (s *LookupService) GetInvestigationTypes() ([]models.InvestigationType, error) {
	return cachedList[models.InvestigationType](s, "investigation_types", "id")
}

func (s *LookupService) GetEvidenceTypologies() ([]models.ArchaeologicalEvidenceTypology, error) {
	return cachedList[models.ArchaeologicalEvidenceTypology](s, "evidence_typologies", "id")
}

// TypologiesByFunctionalClass backs the cascading typology dropdown.
func (s *LookupService) TypologiesByFunctionalClass(functionalClassID int) ([]models.Typology, error) {
	key := fmt.Sprintf("typologies_fc_%d", functionalClassID)
	if cached, ok := s.getCache(key); ok {
		if rows, ok := cached.([]models.Typology); ok {
			return rows, nil
		}
	}
	var rows []models.Typology
	err := s.db.Where("id_functional_class = ?", functionalClassID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	s.setCache(key, rows, lookupCacheTTL)
	return rows, nil
}

// TypologyDetailsByTypology backs the cascading sub-typology dropdown.
func (s *LookupService) TypologyDetailsByTypology(typologyID int) ([]models.TypologyDetail, error) {
	key := fmt.Sprintf("typology_details_%d", typologyID)
	if cached, ok := s.getCache(key); ok {
		if rows, ok := cached.([]models.TypologyDetail); ok {
			return rows, nil
		}
	}
	var rows []models.TypologyDetail
	err := s.db.Where("id_typology = ?", typologyID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	s.setCache(key, rows, lookupCacheTTL)
	return rows, nil
}

// ProvincesByRegion filters provinces by the ISTAT region code.
func (s *LookupService) ProvincesByRegion(codiceRegione int) ([]models.Province, error) {
	var rows []models.Province
	err := s.db.Where("codice_regione = ?", codiceRegione).
		Order("denominazione_provincia").Find(&rows).Error
	return rows, err
}

// MunicipalitiesByProvince filters municipalities by province id.
func (s *LookupService) MunicipalitiesByProvince(provinceID int) ([]models.Municipality, error) {
	var rows []models.Municipality
	err := s.db.Where("id_province = ?", provinceID).
		Order("denominazione_comune").Find(&rows).Error
	return rows, err
}
