package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/clubhub/internal/auth/domain"
	"github.com/smallbiznis/clubhub/internal/clubcontext"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
	"go.uber.org/zap"
)

const (
	sessionCookieName  = "clubhub_session"
	HeaderClub         = "X-Club-ID"
	contextIdentityKey = "identity"
)

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, zap.Error(last.Err))
		}
		log.Info("request", fields...)
	}
}

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookieName)
		if err != nil || strings.TrimSpace(sid) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity, err := s.authsvc.Authenticate(c.Request.Context(), sid)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextIdentityKey, identity)
		c.Next()
	}
}

// ClubContext resolves the active club for the request. Super admins
// select a club through the X-Club-ID header; everyone else is bound
// to the club on their user record.
func (s *Server) ClubContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := s.identityFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		var clubID snowflake.ID
		if identity.Role == userdomain.RoleSuperAdmin {
			raw := strings.TrimSpace(c.GetHeader(HeaderClub))
			if raw != "" {
				parsed, err := snowflake.ParseString(raw)
				if err != nil || parsed == 0 {
					AbortWithError(c, newValidationError("club_id", "invalid_club", "invalid club"))
					return
				}
				clubID = parsed
			}
		} else {
			if identity.ClubID == nil || *identity.ClubID == 0 {
				AbortWithError(c, ErrForbidden)
				return
			}
			clubID = *identity.ClubID
		}

		if clubID != 0 {
			ctx := clubcontext.WithClubID(c.Request.Context(), clubID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func (s *Server) identityFromContext(c *gin.Context) (*authdomain.Identity, bool) {
	value, ok := c.Get(contextIdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*authdomain.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// clubIDFromRequest returns the active club or fails. Handlers that
// operate on club-scoped resources require it.
func (s *Server) clubIDFromRequest(c *gin.Context) (snowflake.ID, error) {
	clubID, ok := clubcontext.ClubIDFromContext(c.Request.Context())
	if !ok || clubID == 0 {
		return 0, newValidationError("club_id", "invalid_club", "club not resolved")
	}
	return clubID, nil
}
