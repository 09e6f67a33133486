package services

import (
	"testing"

	"github.com/ergin84/ShareLand/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCountriesUsesCache(t *testing.T) {
	db := newTestDB(t)
	service := NewLookupService(db)

	require.NoError(t, db.Create(&models.Country{NameCountry: "Italia"}).Error)

	countries, err := service.GetCountries()
	require.NoError(t, err)
	require.Len(t, countries, 1)

	// A row added after the first read is not visible until the cache expires.
	require.NoError(t, db.Create(&models.Country{NameCountry: "Grecia"}).Error)
	countries, err = service.GetCountries()
	require.NoError(t, err)
	assert.Len(t, countries, 1)
}

func TestTypologiesByFunctionalClass(t *testing.T) {
	db := newTestDB(t)
	service := NewLookupService(db)

	settlement := models.FunctionalClass{DescFunctionalClass: "Settlement"}
	funerary := models.FunctionalClass{DescFunctionalClass: "Funerary"}
	require.NoError(t, db.Create(&settlement).Error)
	require.NoError(t, db.Create(&funerary).Error)
	require.NoError(t, db.Create(&models.Typology{DescTypology: "Village", IdFunctionalClass: &settlement.Id}).Error)
	require.NoError(t, db.Create(&models.Typology{DescTypology: "Necropolis", IdFunctionalClass: &funerary.Id}).Error)

	typologies, err := service.TypologiesByFunctionalClass(settlement.Id)
	require.NoError(t, err)
	require.Len(t, typologies, 1)
	assert.Equal(t, "Village", typologies[0].DescTypology)
}

func TestProvincesByRegion(t *testing.T) {
	db := newTestDB(t)
	service := NewLookupService(db)

	require.NoError(t, db.Create(&models.Region{IdRegion: 12, DenominazioneRegione: "Lazio"}).Error)
	require.NoError(t, db.Create(&models.Region{IdRegion: 9, DenominazioneRegione: "Toscana"}).Error)
	require.NoError(t, db.Create(&models.Province{CodiceRegione: 12, DenominazioneProvincia: "Roma"}).Error)
	require.NoError(t, db.Create(&models.Province{CodiceRegione: 12, DenominazioneProvincia: "Latina"}).Error)
	require.NoError(t, db.Create(&models.Province{CodiceRegione: 9, DenominazioneProvincia: "Firenze"}).Error)

	provinces, err := service.ProvincesByRegion(12)
	require.NoError(t, err)
	require.Len(t, provinces, 2)
	assert.Equal(t, "Latina", provinces[0].DenominazioneProvincia)
	assert.Equal(t, "Roma", provinces[1].DenominazioneProvincia)
}

func TestMunicipalitiesByProvince(t *testing.T) {
	db := newTestDB(t)
	service := NewLookupService(db)

	require.NoError(t, db.Create(&models.Region{IdRegion: 12, DenominazioneRegione: "Lazio"}).Error)
	province := models.Province{CodiceRegione: 12, DenominazioneProvincia: "Roma"}
	require.NoError(t, db.Create(&province).Error)
	require.NoError(t, db.Create(&models.Municipality{DenominazioneComune: "Fiumicino", IdProvince: &province.Id}).Error)
	require.NoError(t, db.Create(&models.Municipality{DenominazioneComune: "Anzio"}).Error)

	municipalities, err := service.MunicipalitiesByProvince(province.Id)
	require.NoError(t, err)
	require.Len(t, municipalities, 1)
	assert.Equal(t, "Fiumicino", municipalities[0].DenominazioneComune)
}
