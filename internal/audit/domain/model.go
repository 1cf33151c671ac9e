package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog is an append-only record of a mutation. Rows are never updated
// or deleted.
type AuditLog struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorID   *string           `gorm:"column:actor_id;type:text" json:"actor_id,omitempty"`
	Action    string            `gorm:"not null" json:"action"`
	TableName string            `gorm:"column:table_name;not null" json:"table_name"`
	RecordID  *string           `gorm:"column:record_id;type:text" json:"record_id,omitempty"`
	OldData   datatypes.JSONMap `gorm:"column:old_data;type:jsonb" json:"old_data,omitempty"`
	NewData   datatypes.JSONMap `gorm:"column:new_data;type:jsonb" json:"new_data,omitempty"`
	IPAddress string            `gorm:"column:ip_address;not null;default:''" json:"ip_address"`
	UserAgent string            `gorm:"column:user_agent;not null;default:''" json:"user_agent"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// AuditCursor positions a descending (created_at, id) scan.
type AuditCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type ListFilter struct {
	Action    string
	TableName string
	RecordID  string
	StartAt   *time.Time
	EndAt     *time.Time
	Cursor    *AuditCursor
	Limit     int
}
