package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/artmafra/notas/internal/auditcontext"
)

const contextUserIDKey = "user_id"

// SessionRequired authenticates the request from the session cookie and
// records the acting user for audit enrichment. Missing, expired or revoked
// sessions never reach a handler.
func (s *Server) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
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

		ctx := auditcontext.WithActor(c.Request.Context(), user.ID.String(), user.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextUserIDKey, user.ID.String())
		c.Next()
	}
}

// RateLimit throttles by client IP. Applies independently of session
// validity; a burst of bad logins is throttled like any other burst.
func (s *Server) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil || !s.limiter.Enabled() {
			c.Next()
			return
		}

		res, err := s.limiter.AllowIP(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.recordRateLimitDecision(false)
			AbortWithError(c, ErrServiceUnavailable)
			return
		}

		if !res.Allowed {
			s.recordRateLimitDecision(false)
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			AbortWithError(c, ErrRateLimited)
			return
		}

		s.recordRateLimitDecision(true)
		c.Next()
	}
}

func (s *Server) recordRateLimitDecision(allowed bool) {
	if s.obsMetrics == nil {
		return
	}
	s.obsMetrics.RecordRateLimitDecision("ip", allowed)
}
