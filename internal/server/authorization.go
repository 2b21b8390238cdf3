package server

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) authorizeClubAction(object string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.authorizeClubActionWithContext(c, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func (s *Server) authorizeClubActionWithContext(c *gin.Context, object string, action string) error {
	identity, ok := s.identityFromContext(c)
	if !ok {
		return ErrUnauthorized
	}

	clubID, err := s.clubIDFromRequest(c)
	if err != nil {
		return err
	}

	if s.authzSvc == nil {
		return ErrForbidden
	}
	actor := fmt.Sprintf("user:%s", identity.UserID.String())
	return s.authzSvc.Authorize(c.Request.Context(), actor, clubID.String(), strings.TrimSpace(object), strings.TrimSpace(action))
}
