package controllers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ergin84/ShareLand/src/dtos"
	"github.com/ergin84/ShareLand/src/utils"
	"github.com/gin-gonic/gin"
)

// Helpers for the multipart forms the frontend submits. Repeated child
// sections arrive as indexed fields (biblio_title_0, biblio_title_1, ...);
// the loop ends at the first index where the discriminating field is absent.

func formIntPtr(ctx *gin.Context, key string) *int {
	raw := strings.TrimSpace(ctx.PostForm(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func formFloatPtr(ctx *gin.Context, key string) *float64 {
	raw := strings.TrimSpace(ctx.PostForm(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func formInt(ctx *gin.Context, key string) int {
	if value := formIntPtr(ctx, key); value != nil {
		return *value
	}
	return 0
}

func queryIntPtr(ctx *gin.Context, key string) *int {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func collectBibliographies(ctx *gin.Context, prefix string) []dtos.BibliographyInput {
	entries := []dtos.BibliographyInput{}
	for index := 0; ; index++ {
		key := fmt.Sprintf("%sbiblio_title_%d", prefix, index)
		if _, ok := ctx.GetPostForm(key); !ok {
			break
		}
		entries = append(entries, dtos.BibliographyInput{
			Title:  ctx.PostForm(key),
			Author: ctx.PostForm(fmt.Sprintf("%sbiblio_author_%d", prefix, index)),
			Year:   formIntPtr(ctx, fmt.Sprintf("%sbiblio_year_%d", prefix, index)),
			Doi:    ctx.PostForm(fmt.Sprintf("%sbiblio_doi_%d", prefix, index)),
			Tipo:   ctx.PostForm(fmt.Sprintf("%sbiblio_tipo_%d", prefix, index)),
		})
	}
	return entries
}

func collectSources(ctx *gin.Context, prefix string) []dtos.SourceInput {
	entries := []dtos.SourceInput{}
	for index := 0; ; index++ {
		key := fmt.Sprintf("%ssource_name_%d", prefix, index)
		if _, ok := ctx.GetPostForm(key); !ok {
			break
		}
		entries = append(entries, dtos.SourceInput{
			Name:         ctx.PostForm(key),
			ChronologyID: formIntPtr(ctx, fmt.Sprintf("%ssource_chronology_%d", prefix, index)),
			SourceTypeID: formIntPtr(ctx, fmt.Sprintf("%ssource_type_%d", prefix, index)),
		})
	}
	return entries
}

func collectDocs(ctx *gin.Context, prefix string) []dtos.DocInput {
	entries := []dtos.DocInput{}
	for index := 0; ; index++ {
		key := fmt.Sprintf("%sdoc_name_%d", prefix, index)
		if _, ok := ctx.GetPostForm(key); !ok {
			break
		}
		entries = append(entries, dtos.DocInput{
			Name:   ctx.PostForm(key),
			Author: ctx.PostForm(fmt.Sprintf("%sdoc_author_%d", prefix, index)),
			Year:   formIntPtr(ctx, fmt.Sprintf("%sdoc_year_%d", prefix, index)),
		})
	}
	return entries
}

// collectImages walks the indexed image entries. sentinel names the field
// whose absence ends the loop (the site form leads with the image type, the
// evidence form with the file name). Uploaded files are stored under
// MEDIA_ROOT/<subfolder>; a failed upload drops the file but keeps the entry.
func collectImages(ctx *gin.Context, prefix, sentinel, subfolder string) []dtos.ImageInput {
	entries := []dtos.ImageInput{}
	for index := 0; ; index++ {
		if _, ok := ctx.GetPostForm(fmt.Sprintf("%s%s_%d", prefix, sentinel, index)); !ok {
			break
		}

		entry := dtos.ImageInput{
			TypeID:            formIntPtr(ctx, fmt.Sprintf("%simage_type_%d", prefix, index)),
			ScaleID:           formIntPtr(ctx, fmt.Sprintf("%simage_scale_%d", prefix, index)),
			FileName:          ctx.PostForm(fmt.Sprintf("%simage_file_name_%d", prefix, index)),
			AcquisitionDate:   ctx.PostForm(fmt.Sprintf("%simage_acquisition_date_%d", prefix, index)),
			Desc:              ctx.PostForm(fmt.Sprintf("%simage_desc_%d", prefix, index)),
			Format:            ctx.PostForm(fmt.Sprintf("%simage_format_%d", prefix, index)),
			Projection:        ctx.PostForm(fmt.Sprintf("%simage_projection_%d", prefix, index)),
			SpatialResolution: ctx.PostForm(fmt.Sprintf("%simage_spatial_resolution_%d", prefix, index)),
			Author:            ctx.PostForm(fmt.Sprintf("%simage_author_%d", prefix, index)),
			KeyWords:          ctx.PostForm(fmt.Sprintf("%simage_key_words_%d", prefix, index)),
		}

		uploadType := ctx.DefaultPostForm(fmt.Sprintf("%simage_upload_type_%d", prefix, index), "url")
		if uploadType == "url" {
			entry.SourceURL = ctx.PostForm(fmt.Sprintf("%simage_source_url_%d", prefix, index))
		} else {
			file, err := ctx.FormFile(fmt.Sprintf("%simage_file_%d", prefix, index))
			if err == nil && file != nil {
				url, err := utils.SaveUploadedImage(file, subfolder)
				if err != nil {
					log.Printf("image upload rejected: %v", err)
				} else {
					entry.SourceURL = url
				}
			}
		}

		entries = append(entries, entry)
	}
	return entries
}

func parseAuthorSpec(ctx *gin.Context, prefix, suffix string) dtos.AuthorSpec {
	field := func(name string) string {
		return prefix + name + suffix
	}
	spec := dtos.AuthorSpec{
		Name:        ctx.PostForm(field("name")),
		Surname:     ctx.PostForm(field("surname")),
		Email:       ctx.PostForm(field("email")),
		Affiliation: ctx.PostForm(field("affiliation")),
		Orcid:       ctx.PostForm(field("orcid")),
	}
	if id := formIntPtr(ctx, field("user_id")); id != nil {
		spec.UserID = id
	} else if id := formIntPtr(ctx, field("id")); id != nil {
		// Legacy author ids map onto user ids since the consolidation.
		spec.UserID = id
	}
	return spec
}
