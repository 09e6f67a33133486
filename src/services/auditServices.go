package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/ergin84/ShareLand/src/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new instance of AuditService
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// AuditFilter narrows log queries; zero values mean no filtering on that
// dimension.
type AuditFilter struct {
	Operation string
	Model     string
	Username  string
	Days      int
}

// truncate caps s at n characters, not bytes, so a multi-byte rune is never
// cut mid-sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

// DiffValues computes the change set between two snapshots: only fields
// present in both with differing stringified values are reported, each value
// capped at 100 characters.
func DiffValues(oldValues, newValues map[string]interface{}) map[string][2]string {
	changes := map[string][2]string{}
	if oldValues == nil || newValues == nil {
		return changes
	}
	for key, newVal := range newValues {
		oldVal, ok := oldValues[key]
		if !ok {
			continue
		}
		oldStr := fmt.Sprintf("%v", oldVal)
		newStr := fmt.Sprintf("%v", newVal)
		if oldStr != newStr {
			changes[key] = [2]string{truncate(oldStr, 100), truncate(newStr, 100)}
		}
	}
	return changes
}

// LogOperation appends an audit record. It never fails the calling operation:
// any error is logged and swallowed.
func (s *AuditService) LogOperation(userID *int, operation, modelName string, objectID int, objectStr string, oldValues, newValues map[string]interface{}, ip, userAgent string) {
	entry := models.AuditLog{
		UserID:    userID,
		Operation: operation,
		ModelName: modelName,
		ObjectID:  fmt.Sprintf("%d", objectID),
		ObjectStr: truncate(objectStr, 500),
		IPAddress: ip,
		UserAgent: truncate(userAgent, 500),
	}

	changes := DiffValues(oldValues, newValues)
	if raw, err := json.Marshal(changes); err == nil {
		entry.Changes = raw
	}
	if oldValues != nil {
		if raw, err := json.Marshal(oldValues); err == nil {
			entry.OldValues = raw
		}
	}
	if newValues != nil {
		if raw, err := json.Marshal(newValues); err == nil {
			entry.NewValues = raw
		}
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("audit log write failed for %s %s #%d: %v", operation, modelName, objectID, err)
	}
}

func (s *AuditService) filtered(filter AuditFilter) *gorm.DB {
	query := s.db.Model(&models.AuditLog{})
	switch filter.Operation {
	case models.OpCreate, models.OpUpdate, models.OpDelete, models.OpView:
		query = query.Where("operation = ?", filter.Operation)
	}
	if filter.Model != "" {
		query = query.Where("LOWER(model_name) LIKE ?", "%"+strings.ToLower(filter.Model)+"%")
	}
	if filter.Username != "" {
		query = query.Where("user_id IN (?)",
			s.db.Model(&models.User{}).Select("id").
				Where("LOWER(username) LIKE ?", "%"+strings.ToLower(filter.Username)+"%"))
	}
	if filter.Days > 0 {
		since := time.Now().AddDate(0, 0, -filter.Days)
		query = query.Where("timestamp >= ?", since)
	}
	return query
}

// ListLogs returns one page of matching logs, newest first, plus the total
// match count.
func (s *AuditService) ListLogs(filter AuditFilter, page, pageSize int) ([]models.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var total int64
	if err := s.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := s.filtered(filter).
		Preload("User").
		Order("timestamp DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Stats returns overall operation counters for the audit dashboard.
func (s *AuditService) Stats() (map[string]int64, error) {
	stats := map[string]int64{}
	var total int64
	if err := s.db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, err
	}
	stats["total"] = total
	for _, op := range []string{models.OpCreate, models.OpUpdate, models.OpDelete} {
		var count int64
		if err := s.db.Model(&models.AuditLog{}).Where("operation = ?", op).Count(&count).Error; err != nil {
			return nil, err
		}
		stats[op] = count
	}
	return stats, nil
}

// ModelNames lists the distinct model names seen in the log, for the filter
// dropdown.
func (s *AuditService) ModelNames() ([]string, error) {
	var names []string
	err := s.db.Model(&models.AuditLog{}).
		Distinct("model_name").
		Order("model_name").
		Pluck("model_name", &names).Error
	return names, err
}

var auditExportHeader = []string{"Timestamp", "User", "Operation", "Model", "Object ID", "Object", "Changes", "IP Address"}

func auditExportRow(entry models.AuditLog) []string {
	username := "Anonymous"
	if entry.User != nil {
		username = entry.User.Username
	}
	ip := entry.IPAddress
	if ip == "" {
		ip = "N/A"
	}
	return []string{
		entry.Timestamp.Format("2006-01-02 15:04:05"),
		username,
		entry.Operation,
		entry.ModelName,
		entry.ObjectID,
		entry.ObjectStr,
		entry.ChangesDisplay(),
		ip,
	}
}

// ExportCSV streams the filtered logs as CSV, newest first.
func (s *AuditService) ExportCSV(w io.Writer, filter AuditFilter) error {
	var logs []models.AuditLog
	err := s.filtered(filter).Preload("User").Order("timestamp DESC").Find(&logs).Error
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(auditExportHeader); err != nil {
		return err
	}
	for _, entry := range logs {
		if err := writer.Write(auditExportRow(entry)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportXLSX builds a spreadsheet with the same columns as the CSV export.
func (s *AuditService) ExportXLSX(filter AuditFilter) (*excelize.File, error) {
	var logs []models.AuditLog
	err := s.filtered(filter).Preload("User").Order("timestamp DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Audit Logs"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range auditExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	for row, entry := range logs {
		for col, value := range auditExportRow(entry) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
