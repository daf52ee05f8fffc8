package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ReportTotalPaidByClient(c *gin.Context) {
	resp, err := s.reportSvc.TotalPaidByClient(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReportPendingInvoices(c *gin.Context) {
	resp, err := s.reportSvc.PendingInvoices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReportTransactionsByPlatform(c *gin.Context) {
	platform := strings.TrimSpace(c.Query("platform"))
	resp, err := s.reportSvc.TransactionsByPlatform(c.Request.Context(), platform)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
