package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadMigrationFile receives one spreadsheet and runs the migration
// pipeline on it. The stored copy is removed by the service regardless of
// outcome.
func (s *Server) UploadMigrationFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "file_required", "file is required"))
		return
	}

	cfg := s.importCfg.Get()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensionAllowed(ext, cfg.AllowedExtensions) {
		AbortWithError(c, newValidationError("file", "unsupported_format",
			"unsupported file format, expected one of: "+strings.Join(cfg.AllowedExtensions, ", ")))
		return
	}

	if header.Size > cfg.MaxUploadBytes {
		AbortWithError(c, newValidationError("file", "file_too_large", "file exceeds the maximum allowed size"))
		return
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		AbortWithError(c, err)
		return
	}

	dst := filepath.Join(s.cfg.UploadDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(header, dst); err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.importSvc.Migrate(c.Request.Context(), dst)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func extensionAllowed(ext string, allowed []string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}
