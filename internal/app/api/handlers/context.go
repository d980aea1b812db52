package handlers

import (
	mw "github.com/atomictrack/atomictrack/internal/app/api/middleware"

	"github.com/gin-gonic/gin"
)

// userIDFrom reads the authenticated user set by the auth middleware. Routes
// using it are always registered behind that middleware.
func userIDFrom(c *gin.Context) string {
	return mw.UserID(c)
}
