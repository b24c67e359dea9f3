package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AccessCodeMiddleware gates the API behind a shared static access code.
// codeHash is a bcrypt hash of the code (see cmd/hash-access-code); an empty
// hash disables the gate, for local development.
func AccessCodeMiddleware(codeHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if codeHash == "" {
			c.Next()
			return
		}

		code := c.GetHeader("X-Access-Code")
		if code == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing access code"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(code)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid access code"})
			return
		}

		c.Next()
	}
}
