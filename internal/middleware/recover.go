package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/esrickpics/ProyectoSSAPI/internal/util"

	"github.com/gin-gonic/gin"
)

// ErrorRecovery catches unhandled panics, logs them with request context
// (acting user, method, path, client IP, user agent) and answers with a
// generic failure. In debug mode the panic detail is returned to the
// caller; in release mode it stays in the log.
func ErrorRecovery(verbose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				userInfo := "anónimo"
				if user := CurrentUser(c); user != nil {
					userInfo = fmt.Sprintf("%s (ID: %d)", user.Username, user.ID)
				}

				log.Printf("error no manejado en %s %s - usuario: %s - IP: %s - UA: %s - error: %v\n%s",
					c.Request.Method, c.Request.URL.Path,
					userInfo, c.ClientIP(), c.Request.UserAgent(),
					r, debug.Stack())

				msg := "ha ocurrido un error interno, contacte al administrador"
				if verbose {
					msg = fmt.Sprintf("%v", r)
				}
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, msg)
				c.Abort()
			}
		}()
		c.Next()
	}
}
