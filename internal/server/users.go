package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	authdomain "github.com/artmafra/notas/internal/auth/domain"
)

func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.authsvc.ListUsers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) CreateUser(c *gin.Context) {
	var req authdomain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.authsvc.CreateUser(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditsvc.Record(c.Request.Context(), auditdomain.RecordRequest{
		Action:    "user.create",
		TableName: "users",
		RecordID:  created.ID.String(),
		NewData:   snapshot(created),
	})

	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateUser(c *gin.Context) {
	var req authdomain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	previous, prevErr := s.authsvc.GetUser(c.Request.Context(), authdomain.GetUserRequest{ID: req.ID})

	updated, err := s.authsvc.UpdateUser(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	record := auditdomain.RecordRequest{
		Action:    "user.update",
		TableName: "users",
		RecordID:  updated.ID.String(),
		NewData:   snapshot(updated),
	}
	if prevErr == nil {
		record.OldData = snapshot(previous)
	}
	s.auditsvc.Record(c.Request.Context(), record)

	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteUser(c *gin.Context) {
	var req authdomain.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	previous, prevErr := s.authsvc.GetUser(c.Request.Context(), authdomain.GetUserRequest{ID: req.ID})

	if err := s.authsvc.DeleteUser(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}

	record := auditdomain.RecordRequest{
		Action:    "user.delete",
		TableName: "users",
		RecordID:  req.ID,
	}
	if prevErr == nil {
		record.OldData = snapshot(previous)
	}
	s.auditsvc.Record(c.Request.Context(), record)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
