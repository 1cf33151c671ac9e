package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	"github.com/artmafra/notas/pkg/db/pagination"
)

const dateOnlyLayout = "2006-01-02"

func (s *Server) ListAuditLogs(c *gin.Context) {
	pageSize, err := parseOptionalInt(c.Query("page_size"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	startAt, err := parseOptionalTime(c.Query("start_time"), false)
	if err != nil {
		AbortWithError(c, auditdomain.ErrInvalidTimeRange)
		return
	}
	endAt, err := parseOptionalTime(c.Query("end_time"), true)
	if err != nil {
		AbortWithError(c, auditdomain.ErrInvalidTimeRange)
		return
	}

	resp, err := s.auditsvc.List(c.Request.Context(), auditdomain.ListAuditLogRequest{
		Pagination: pagination.Pagination{
			PageToken: c.Query("page_token"),
			PageSize:  pageSize,
		},
		Action:    c.Query("action"),
		TableName: c.Query("table_name"),
		RecordID:  c.Query("record_id"),
		StartAt:   startAt,
		EndAt:     endAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func parseOptionalInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	return strconv.Atoi(trimmed)
}

func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, trimmed)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	} else {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &parsed, nil
}
