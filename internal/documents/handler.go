package documents

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"property-backend/internal/properties"
	"property-backend/internal/shared/server/middleware"
	"property-backend/internal/shared/server/respond"
)

// Multipart overhead on top of the file size limit enforced by the service.
const maxUploadBytes = 6 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties/:propertyId/documents", h.upload)
	rg.GET("/properties/:propertyId/documents", h.list)
	rg.GET("/properties/:propertyId/documents/:documentId", h.get)
	rg.DELETE("/properties/:propertyId/documents/:documentId", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	propertyID := c.Param("propertyId")
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	documentType := c.PostForm("documentType")
	if documentType == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentType is required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	doc, err := h.Svc.Upload(c.Request.Context(), userID, propertyID, documentType, fileHeader.Filename, fileBytes)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "documentType must be one of the supported document types", nil)
		case errors.Is(err, ErrUnsupportedFile):
			respond.Error(c, http.StatusBadRequest, "validation_error", "only PDF, PNG, JPEG, and TIFF files are accepted", nil)
		case errors.Is(err, ErrFileTooLarge):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds the 5MB limit", nil)
		case errors.Is(err, ErrEmptyFile):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file is empty", nil)
		case errors.Is(err, properties.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "property not found", nil)
		case errors.Is(err, properties.ErrVersionConflict):
			respond.Error(c, http.StatusConflict, "conflict", "property was modified concurrently, retry the upload", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process document", nil)
		}
		return
	}

	c.Set("propertyId", propertyID)
	c.Set("documentId", doc.ID)
	c.Set("extractionStatus", string(doc.Extraction.Status))
	respond.JSON(c, http.StatusCreated, properties.ToDocumentResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	propertyID := c.Param("propertyId")

	docs, err := h.Svc.List(c.Request.Context(), userID, propertyID)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "property not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		}
		return
	}

	resp := make([]properties.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, properties.ToDocumentResponse(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	propertyID := c.Param("propertyId")
	documentID := c.Param("documentId")

	doc, err := h.Svc.Get(c.Request.Context(), userID, propertyID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, properties.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, properties.ToDocumentResponse(doc))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	propertyID := c.Param("propertyId")
	documentID := c.Param("documentId")

	if err := h.Svc.Delete(c.Request.Context(), userID, propertyID, documentID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, properties.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, properties.ErrVersionConflict):
			respond.Error(c, http.StatusConflict, "conflict", "property was modified concurrently, retry the request", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}

	c.Set("propertyId", propertyID)
	c.Set("documentId", documentID)
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true, "documentId": documentID})
}
