package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gorm.io/datatypes"
)

// Audit operation kinds.
const (
	OpCreate = "CREATE"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
	OpView   = "VIEW"
)

// AuditLog is an append-only record of a user operation: what was changed, by
// whom and when. Changes holds a JSON object mapping field name to the
// [old, new] pair of truncated string values.
type AuditLog struct {
	Id        int            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    *int           `json:"userId" gorm:"column:user_id;index:idx_audit_user_ts,priority:1"`
	User      *User          `json:"user,omitempty" gorm:"foreignKey:UserID;references:Id;constraint:OnDelete:SET NULL"`
	Operation string         `json:"operation" gorm:"column:operation;type:varchar(10);not null;index:idx_audit_op_ts,priority:1"`
	ModelName string         `json:"modelName" gorm:"column:model_name;type:varchar(100);not null;index:idx_audit_model_ts,priority:1"`
	ObjectID  string         `json:"objectId" gorm:"column:object_id;type:varchar(255)"`
	ObjectStr string         `json:"objectStr" gorm:"column:object_str;type:varchar(500)"`
	Changes   datatypes.JSON `json:"changes" gorm:"column:changes"`
	OldValues datatypes.JSON `json:"oldValues" gorm:"column:old_values"`
	NewValues datatypes.JSON `json:"newValues" gorm:"column:new_values"`
	Timestamp time.Time      `json:"timestamp" gorm:"column:timestamp;autoCreateTime;index;index:idx_audit_user_ts,priority:2;index:idx_audit_op_ts,priority:2;index:idx_audit_model_ts,priority:2"`
	IPAddress string         `json:"ipAddress" gorm:"column:ip_address;type:varchar(45)"`
	UserAgent string         `json:"userAgent" gorm:"column:user_agent;type:text"`
}

func (AuditLog) TableName() string { return "audit_log" }

// ChangesDisplay renders the change set as "field: 'old' -> 'new'" pairs in
// stable field order, for list pages and CSV export.
func (a *AuditLog) ChangesDisplay() string {
	changes := map[string][2]string{}
	if len(a.Changes) == 0 {
		return "No changes recorded"
	}
	if err := json.Unmarshal(a.Changes, &changes); err != nil || len(changes) == 0 {
		return "No changes recorded"
	}
	fields := make([]string, 0, len(changes))
	for f := range changes {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s: '%s' -> '%s'", f, changes[f][0], changes[f][1])
	}
	return out
}

// AccessLog tracks page visits by authenticated users.
type AccessLog struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    *int      `json:"userId" gorm:"column:user_id;index:idx_access_user_ts,priority:1"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:Id;constraint:OnDelete:SET NULL"`
	Page      string    `json:"page" gorm:"column:page;type:varchar(255);not null"`
	ViewName  string    `json:"viewName" gorm:"column:view_name;type:varchar(255)"`
	Timestamp time.Time `json:"timestamp" gorm:"column:timestamp;autoCreateTime;index;index:idx_access_user_ts,priority:2"`
	IPAddress string    `json:"ipAddress" gorm:"column:ip_address;type:varchar(45)"`
	UserAgent string    `json:"userAgent" gorm:"column:user_agent;type:text"`
}

func (AccessLog) TableName() string { return "access_log" }
