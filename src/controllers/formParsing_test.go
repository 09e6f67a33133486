package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formContext(t *testing.T, values url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ctx.Request = req
	return ctx
}

func TestCollectBibliographiesStopsAtGap(t *testing.T) {
	ctx := formContext(t, url.Values{
		"biblio_title_0":  {"First"},
		"biblio_author_0": {"Rossi"},
		"biblio_year_0":   {"1999"},
		"biblio_title_1":  {"Second"},
		// Index 2 is missing; index 3 must not be read.
		"biblio_title_3": {"Unreachable"},
	})

	entries := collectBibliographies(ctx, "")
	require.Len(t, entries, 2)
	assert.Equal(t, "First", entries[0].Title)
	require.NotNil(t, entries[0].Year)
	assert.Equal(t, 1999, *entries[0].Year)
	assert.Equal(t, "Second", entries[1].Title)
	assert.Nil(t, entries[1].Year)
}

func TestCollectBibliographiesEvidencePrefix(t *testing.T) {
	ctx := formContext(t, url.Values{
		"ev_biblio_title_0": {"Evidence biblio"},
		"biblio_title_0":    {"Site biblio"},
	})

	entries := collectBibliographies(ctx, "ev_")
	require.Len(t, entries, 1)
	assert.Equal(t, "Evidence biblio", entries[0].Title)
}

func TestCollectSourcesAndDocs(t *testing.T) {
	ctx := formContext(t, url.Values{
		"source_name_0":       {"Tabula Peutingeriana"},
		"source_chronology_0": {"4"},
		"source_type_0":       {"not a number"},
		"doc_name_0":          {"Excavation diary"},
		"doc_year_0":          {"1962"},
	})

	sources := collectSources(ctx, "")
	require.Len(t, sources, 1)
	require.NotNil(t, sources[0].ChronologyID)
	assert.Equal(t, 4, *sources[0].ChronologyID)
	assert.Nil(t, sources[0].SourceTypeID)

	docs := collectDocs(ctx, "")
	require.Len(t, docs, 1)
	assert.Equal(t, "Excavation diary", docs[0].Name)
}

func TestCollectImagesURLEntry(t *testing.T) {
	ctx := formContext(t, url.Values{
		"image_type_0":        {"2"},
		"image_file_name_0":   {"aerial.jpg"},
		"image_source_url_0":  {"https://example.org/aerial.jpg"},
		"image_upload_type_0": {"url"},
	})

	entries := collectImages(ctx, "", "image_type", "site_images")
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.org/aerial.jpg", entries[0].SourceURL)
	require.NotNil(t, entries[0].TypeID)
	assert.Equal(t, 2, *entries[0].TypeID)
}

func TestParseAuthorSpecLegacyIDFallback(t *testing.T) {
	ctx := formContext(t, url.Values{
		"author_name":    {"Anna"},
		"author_surname": {"Verdi"},
		"author_id":      {"42"},
	})

	spec := parseAuthorSpec(ctx, "author_", "")
	assert.Equal(t, "Anna", spec.Name)
	require.NotNil(t, spec.UserID)
	assert.Equal(t, 42, *spec.UserID)
}

func TestParseAuthorSpecUserIDWins(t *testing.T) {
	ctx := formContext(t, url.Values{
		"coauthor_user_id_0": {"7"},
		"coauthor_id_0":      {"42"},
	})

	spec := parseAuthorSpec(ctx, "coauthor_", "_0")
	require.NotNil(t, spec.UserID)
	assert.Equal(t, 7, *spec.UserID)
}

func TestFormHelpers(t *testing.T) {
	ctx := formContext(t, url.Values{
		"elevation": {" 120 "},
		"lat":       {"41.95"},
		"bad":       {"abc"},
	})

	require.NotNil(t, formIntPtr(ctx, "elevation"))
	assert.Equal(t, 120, *formIntPtr(ctx, "elevation"))
	assert.Nil(t, formIntPtr(ctx, "bad"))
	assert.Nil(t, formIntPtr(ctx, "missing"))
	assert.Equal(t, 0, formInt(ctx, "missing"))

	require.NotNil(t, formFloatPtr(ctx, "lat"))
	assert.InDelta(t, 41.95, *formFloatPtr(ctx, "lat"), 1e-9)
}
