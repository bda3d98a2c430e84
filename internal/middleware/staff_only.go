// staff_only.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaffOnly corta el paso a quien no pertenece al personal del laboratorio.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isStaff") {
			c.JSON(http.StatusForbidden, gin.H{"error": "staff privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
