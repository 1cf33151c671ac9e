package domain

import (
	"context"
	"errors"
	"time"

	"github.com/artmafra/notas/pkg/db/pagination"
)

// RecordRequest describes one mutation to append. OldData and NewData are
// snapshots of the row before and after the change.
type RecordRequest struct {
	Action    string
	TableName string
	RecordID  string
	OldData   map[string]any
	NewData   map[string]any
}

type ListAuditLogRequest struct {
	pagination.Pagination
	Action    string
	TableName string
	RecordID  string
	StartAt   *time.Time
	EndAt     *time.Time
}

type ListAuditLogResponse struct {
	pagination.PageInfo
	AuditLogs []AuditLog `json:"audit_logs"`
}

type Service interface {
	// Record appends an audit entry. Failures are logged and swallowed so a
	// missing audit row never fails the mutation it describes.
	Record(ctx context.Context, req RecordRequest)
	List(ctx context.Context, req ListAuditLogRequest) (ListAuditLogResponse, error)
}

var (
	ErrInvalidPageToken = errors.New("invalid page token")
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrInvalidAction    = errors.New("invalid action")
)
