package service

import (
	"context"
	"strings"
	"time"

	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	"github.com/artmafra/notas/internal/audit/masking"
	"github.com/artmafra/notas/internal/auditcontext"
	"github.com/artmafra/notas/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  auditdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  auditdomain.Repository
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, req auditdomain.RecordRequest) {
	action := strings.TrimSpace(req.Action)
	if action == "" {
		s.log.Warn("audit entry dropped: empty action")
		return
	}

	tableName := strings.TrimSpace(req.TableName)
	if tableName == "" {
		tableName = "unknown"
	}

	entry := auditdomain.AuditLog{
		ID:        s.genID.Generate(),
		ActorID:   s.resolveActor(ctx),
		Action:    action,
		TableName: tableName,
		OldData:   datatypes.JSONMap(masking.RedactSensitive(req.OldData)),
		NewData:   datatypes.JSONMap(masking.RedactSensitive(req.NewData)),
		IPAddress: auditcontext.IPAddressFromContext(ctx),
		UserAgent: auditcontext.UserAgentFromContext(ctx),
		CreatedAt: time.Now().UTC(),
	}
	if recordID := strings.TrimSpace(req.RecordID); recordID != "" {
		entry.RecordID = &recordID
	}

	// Best effort: a failed audit write never fails the mutation.
	if err := s.repo.Insert(ctx, s.db, &entry); err != nil {
		s.log.Warn("failed to write audit log",
			zap.String("action", action),
			zap.String("table", tableName),
			zap.Error(err),
		)
	}
}

func (s *Service) List(ctx context.Context, req auditdomain.ListAuditLogRequest) (auditdomain.ListAuditLogResponse, error) {
	if req.StartAt != nil && req.EndAt != nil && req.StartAt.After(*req.EndAt) {
		return auditdomain.ListAuditLogResponse{}, auditdomain.ErrInvalidTimeRange
	}

	var cursor *auditdomain.AuditCursor
	if strings.TrimSpace(req.PageToken) != "" {
		decoded, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return auditdomain.ListAuditLogResponse{}, auditdomain.ErrInvalidPageToken
		}
		createdAt, err := time.Parse(time.RFC3339, decoded.CreatedAt)
		if err != nil {
			return auditdomain.ListAuditLogResponse{}, auditdomain.ErrInvalidPageToken
		}
		id, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
		if err != nil || id == 0 {
			return auditdomain.ListAuditLogResponse{}, auditdomain.ErrInvalidPageToken
		}
		cursor = &auditdomain.AuditCursor{
			ID:        id,
			CreatedAt: createdAt,
		}
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 250 {
		pageSize = 250
	}

	items, err := s.repo.List(ctx, s.db, auditdomain.ListFilter{
		Action:    req.Action,
		TableName: req.TableName,
		RecordID:  req.RecordID,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Cursor:    cursor,
		Limit:     pageSize,
	})
	if err != nil {
		return auditdomain.ListAuditLogResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int32(pageSize), func(item *auditdomain.AuditLog) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	logs := make([]auditdomain.AuditLog, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		logs = append(logs, *item)
	}

	resp := auditdomain.ListAuditLogResponse{AuditLogs: logs}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) resolveActor(ctx context.Context) *string {
	actorID, _ := auditcontext.ActorFromContext(ctx)
	if actorID == "" {
		return nil
	}
	return &actorID
}
