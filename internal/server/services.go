package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	servicedomain "github.com/artmafra/notas/internal/service/domain"
)

func (s *Server) ListServices(c *gin.Context) {
	services, err := s.servicesvc.List(c.Request.Context(), servicedomain.ListServiceRequest{
		Description: c.Query("description"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (s *Server) CreateService(c *gin.Context) {
	var req servicedomain.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.servicesvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditsvc.Record(c.Request.Context(), auditdomain.RecordRequest{
		Action:    "service.create",
		TableName: "services",
		RecordID:  created.Code,
		NewData:   snapshot(created),
	})

	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateService(c *gin.Context) {
	var req servicedomain.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	previous, prevErr := s.servicesvc.GetByCode(c.Request.Context(), servicedomain.GetServiceRequest{Code: req.Code})

	updated, err := s.servicesvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	record := auditdomain.RecordRequest{
		Action:    "service.update",
		TableName: "services",
		RecordID:  updated.Code,
		NewData:   snapshot(updated),
	}
	if prevErr == nil {
		record.OldData = snapshot(previous)
	}
	s.auditsvc.Record(c.Request.Context(), record)

	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteService(c *gin.Context) {
	var req servicedomain.DeleteServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	previous, prevErr := s.servicesvc.GetByCode(c.Request.Context(), servicedomain.GetServiceRequest{Code: req.Code})

	if err := s.servicesvc.Delete(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	record := auditdomain.RecordRequest{
		Action:    "service.delete",
		TableName: "services",
		RecordID:  req.Code,
	}
	if prevErr == nil {
		record.OldData = snapshot(previous)
	}
	s.auditsvc.Record(c.Request.Context(), record)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
