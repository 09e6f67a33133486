package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrUnknownTable is returned when a browse request names a table that does
// not exist in the public schema.
var ErrUnknownTable = errors.New("unknown table")

// BrowserService implements the staff-only ad-hoc database browser. It is
// Postgres-specific: tables and columns are discovered from
// information_schema and foreign keys are resolved to a human-readable
// display column via LEFT JOINs.
type BrowserService struct {
	db *gorm.DB
}

func NewBrowserService(db *gorm.DB) *BrowserService {
	return &BrowserService{db: db}
}

const browserPageSize = 100

type ColumnInfo struct {
	Name     string `json:"name"`
	DataType string `json:"dataType"`
}

type ForeignKeyInfo struct {
	Column           string `json:"column"`
	ReferencedTable  string `json:"referencedTable"`
	ReferencedColumn string `json:"referencedColumn"`
	DisplayColumn    string `json:"displayColumn"`
}

// BrowserCell is one rendered cell: foreign key cells carry both the raw
// value and the resolved display text.
type BrowserCell struct {
	Value   interface{} `json:"value"`
	Display interface{} `json:"display,omitempty"`
	IsFK    bool        `json:"isFk"`
	FKTable string      `json:"fkTable,omitempty"`
}

type BrowserPage struct {
	SelectedTable string                    `json:"selectedTable"`
	Columns       []ColumnInfo              `json:"columns"`
	ColumnNames   []string                  `json:"columnNames"`
	ForeignKeys   map[string]ForeignKeyInfo `json:"foreignKeys"`
	Rows          [][]BrowserCell           `json:"rows"`
	TotalRows     int64                     `json:"totalRows"`
	Page          int                       `json:"page"`
	PageSize      int                       `json:"pageSize"`
	TotalPages    int                       `json:"totalPages"`
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// displayColumnRank orders the candidate display columns; lower is better.
// Unlisted candidates are rejected.
func displayColumnRank(column string) (int, bool) {
	switch column {
	case "name":
		return 1, true
	case "title":
		return 2, true
	case "site_name":
		return 3, true
	case "denominazione_regione":
		return 4, true
	case "denominazione_provincia":
		return 5, true
	case "denominazione_comune":
		return 6, true
	case "description", "desc_positioning_mode", "desc_physiography",
		"desc_base_map", "desc_first_discovery_method", "desc_investigation_type",
		"chronological_period", "name_country", "username", "surname":
		return 10, true
	}
	return 0, false
}

func isTextType(dataType string) bool {
	switch dataType {
	case "text", "character varying", "varchar", "char", "character":
		return true
	}
	return false
}

// pickDisplayColumn chooses the column of a referenced table shown in place
// of a raw foreign key id: the best-ranked known column, else the first text
// column, else nothing.
func pickDisplayColumn(columns []ColumnInfo) (string, bool) {
	best := ""
	bestRank := 0
	for _, col := range columns {
		rank, ok := displayColumnRank(col.Name)
		if !ok {
			continue
		}
		if best == "" || rank < bestRank {
			best = col.Name
			bestRank = rank
		}
	}
	if best != "" {
		return best, true
	}
	for _, col := range columns {
		if isTextType(col.DataType) {
			return col.Name, true
		}
	}
	return "", false
}

// ListTables enumerates the public base tables.
func (s *BrowserService) ListTables() ([]string, error) {
	var tables []string
	err := s.db.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`).Scan(&tables).Error
	return tables, err
}

func (s *BrowserService) tableColumns(table string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := s.db.Raw(`
		SELECT column_name AS name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public'
		AND table_name = ?
		ORDER BY ordinal_position`, table).Scan(&columns).Error
	return columns, err
}

func (s *BrowserService) foreignKeys(table string) (map[string]ForeignKeyInfo, error) {
	var relations []struct {
		FkColumn         string
		ReferencedTable  string
		ReferencedColumn string
	}
	err := s.db.Raw(`
		SELECT
			kcu.column_name AS fk_column,
			ccu.table_name AS referenced_table,
			ccu.column_name AS referenced_column
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_name = ?
			AND tc.table_schema = 'public'`, table).Scan(&relations).Error
	if err != nil {
		return nil, err
	}

	fks := map[string]ForeignKeyInfo{}
	for _, rel := range relations {
		info := ForeignKeyInfo{
			Column:           rel.FkColumn,
			ReferencedTable:  rel.ReferencedTable,
			ReferencedColumn: rel.ReferencedColumn,
			DisplayColumn:    rel.ReferencedColumn,
		}
		refColumns, err := s.tableColumns(rel.ReferencedTable)
		if err != nil {
			return nil, err
		}
		if display, ok := pickDisplayColumn(refColumns); ok {
			info.DisplayColumn = display
		}
		fks[rel.FkColumn] = info
	}
	return fks, nil
}

// BrowseTable returns one page of a table with foreign keys resolved. The
// table name must come from ListTables.
func (s *BrowserService) BrowseTable(table string, page int) (*BrowserPage, error) {
	tables, err := s.ListTables()
	if err != nil {
		return nil, err
	}
	known := false
	for _, t := range tables {
		if t == table {
			known = true
			break
		}
	}
	if !known {
		return nil, ErrUnknownTable
	}
	if page < 1 {
		page = 1
	}

	columns, err := s.tableColumns(table)
	if err != nil {
		return nil, err
	}
	fks, err := s.foreignKeys(table)
	if err != nil {
		return nil, err
	}

	var totalRows int64
	if err := s.db.Raw("SELECT COUNT(*) FROM " + quoteIdent(table)).Scan(&totalRows).Error; err != nil {
		return nil, err
	}

	selectParts := []string{quoteIdent(table) + ".*"}
	joinParts := []string{}
	for _, fk := range fks {
		alias := "fk_" + fk.Column
		selectParts = append(selectParts, fmt.Sprintf("%s.%s AS %s",
			quoteIdent(alias), quoteIdent(fk.DisplayColumn), quoteIdent(fk.Column+"_display")))
		joinParts = append(joinParts, fmt.Sprintf("LEFT JOIN %s AS %s ON %s.%s = %s.%s",
			quoteIdent(fk.ReferencedTable), quoteIdent(alias),
			quoteIdent(table), quoteIdent(fk.Column),
			quoteIdent(alias), quoteIdent(fk.ReferencedColumn)))
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT %d OFFSET ?",
		strings.Join(selectParts, ", "), quoteIdent(table),
		strings.Join(joinParts, " "), browserPageSize)

	rows, err := s.db.Raw(query, (page-1)*browserPageSize).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &BrowserPage{
		SelectedTable: table,
		Columns:       columns,
		ForeignKeys:   fks,
		Rows:          [][]BrowserCell{},
		TotalRows:     totalRows,
		Page:          page,
		PageSize:      browserPageSize,
		TotalPages:    int((totalRows + browserPageSize - 1) / browserPageSize),
	}
	for _, name := range colNames {
		if !strings.HasSuffix(name, "_display") {
			result.ColumnNames = append(result.ColumnNames, name)
		}
	}

	for rows.Next() {
		values := make([]interface{}, len(colNames))
		pointers := make([]interface{}, len(colNames))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		byName := map[string]interface{}{}
		for i, name := range colNames {
			if b, ok := values[i].([]byte); ok {
				byName[name] = string(b)
			} else {
				byName[name] = values[i]
			}
		}

		row := make([]BrowserCell, 0, len(result.ColumnNames))
		for _, name := range result.ColumnNames {
			cell := BrowserCell{Value: byName[name]}
			if fk, ok := fks[name]; ok {
				cell.IsFK = true
				cell.FKTable = fk.ReferencedTable
				cell.Display = byName[name+"_display"]
			}
			row = append(row, cell)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
