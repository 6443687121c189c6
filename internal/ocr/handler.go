package ocr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-backend/internal/shared/server/respond"
)

// StatusHandler reports whether document extraction is configured, so the
// UI can warn before a user uploads files that will not be processed.
type StatusHandler struct {
	Provider string
	Region   string
}

// NewStatusHandler constructs a StatusHandler.
func NewStatusHandler(provider, region string) *StatusHandler {
	return &StatusHandler{Provider: provider, Region: region}
}

// RegisterRoutes attaches the OCR status route.
func (h *StatusHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ocr/status", h.status)
}

func (h *StatusHandler) status(c *gin.Context) {
	enabled := h.Provider != "" && h.Provider != "disabled"
	resp := gin.H{
		"enabled":  enabled,
		"provider": h.Provider,
	}
	if h.Region != "" {
		resp["region"] = h.Region
	}
	if !enabled {
		resp["message"] = "OCR is not configured. Uploaded documents are stored but not processed."
	}
	respond.JSON(c, http.StatusOK, resp)
}
