package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the JWT and puts the current user into the
// request context. The token is taken from the Authorization header, the
// ?token= query parameter (downloads) or the ssapi_token cookie.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			if cookie, err := c.Cookie("ssapi_token"); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "no autenticado")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "la sesión expiró, inicie sesión nuevamente")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "el usuario no existe")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "error al consultar el usuario")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentUserID returns the authenticated user's id, or nil.
func CurrentUserID(c *gin.Context) *uint {
	user := CurrentUser(c)
	if user == nil {
		return nil
	}
	id := user.ID
	return &id
}
