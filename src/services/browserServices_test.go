package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickDisplayColumnPriority(t *testing.T) {
	columns := []ColumnInfo{
		{Name: "id", DataType: "integer"},
		{Name: "site_name", DataType: "text"},
		{Name: "name", DataType: "text"},
		{Name: "description", DataType: "text"},
	}
	got, ok := pickDisplayColumn(columns)
	require.True(t, ok)
	assert.Equal(t, "name", got)
}

func TestPickDisplayColumnFallsBackToFirstTextColumn(t *testing.T) {
	columns := []ColumnInfo{
		{Name: "id", DataType: "integer"},
		{Name: "created_at", DataType: "timestamp"},
		{Name: "label", DataType: "character varying"},
		{Name: "other", DataType: "text"},
	}
	got, ok := pickDisplayColumn(columns)
	require.True(t, ok)
	assert.Equal(t, "label", got)
}

func TestPickDisplayColumnNoCandidate(t *testing.T) {
	columns := []ColumnInfo{
		{Name: "id", DataType: "integer"},
		{Name: "count", DataType: "bigint"},
	}
	_, ok := pickDisplayColumn(columns)
	assert.False(t, ok)
}

func TestDisplayColumnRank(t *testing.T) {
	rank, ok := displayColumnRank("name")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	rank, ok = displayColumnRank("denominazione_comune")
	require.True(t, ok)
	assert.Equal(t, 6, rank)

	_, ok = displayColumnRank("random_column")
	assert.False(t, ok)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"site"`, quoteIdent("site"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}
