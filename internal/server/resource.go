package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListResourceSchemas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.resourceSvc.ListResources()})
}

func (s *Server) ListResourceRecords(c *gin.Context) {
	key := strings.TrimSpace(c.Param("resource"))
	resp, err := s.resourceSvc.List(c.Request.Context(), key)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetResourceRecord(c *gin.Context) {
	key := strings.TrimSpace(c.Param("resource"))
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.resourceSvc.GetByID(c.Request.Context(), key, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateResourceRecord(c *gin.Context) {
	key := strings.TrimSpace(c.Param("resource"))

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.resourceSvc.Create(c.Request.Context(), key, payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateResourceRecord(c *gin.Context) {
	key := strings.TrimSpace(c.Param("resource"))
	id := strings.TrimSpace(c.Param("id"))

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.resourceSvc.Update(c.Request.Context(), key, id, payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteResourceRecord(c *gin.Context) {
	key := strings.TrimSpace(c.Param("resource"))
	id := strings.TrimSpace(c.Param("id"))
	if err := s.resourceSvc.Delete(c.Request.Context(), key, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
