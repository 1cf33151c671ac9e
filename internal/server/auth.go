package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/artmafra/notas/internal/audit/domain"
	authdomain "github.com/artmafra/notas/internal/auth/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	email := strings.TrimSpace(req.Email)
	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		s.auditsvc.Record(c.Request.Context(), auditdomain.RecordRequest{
			Action:    "user.login_failed",
			TableName: "users",
			NewData:   map[string]any{"email": email},
		})
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	s.auditsvc.Record(c.Request.Context(), auditdomain.RecordRequest{
		Action:    "user.login",
		TableName: "users",
		RecordID:  result.User.ID.String(),
		NewData:   map[string]any{"email": result.User.Email},
	})

	c.JSON(http.StatusOK, result.User)
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Clear(c)

	s.auditsvc.Record(c.Request.Context(), auditdomain.RecordRequest{
		Action:    "user.logout",
		TableName: "users",
	})

	c.Status(http.StatusNoContent)
}

func (s *Server) Me(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := s.authsvc.UserByID(c.Request.Context(), sess.UserID)
	if err != nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, user)
}
