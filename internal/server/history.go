package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetClientHistory(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		AbortWithError(c, newValidationError("email", "email_required", "email is required"))
		return
	}

	resp, err := s.historySvc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RebuildHistories(c *gin.Context) {
	count, err := s.historySvc.RebuildAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"rebuilt": count}})
}
