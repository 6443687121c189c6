package properties

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"property-backend/internal/shared/server/middleware"
	"property-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches property routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties", h.create)
	rg.GET("/properties", h.list)
	rg.GET("/properties/:propertyId", h.get)
	rg.PATCH("/properties/:propertyId", h.update)
	rg.DELETE("/properties/:propertyId", h.remove)
}

type addressRequest struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type createRequest struct {
	Name          string           `json:"name"`
	Address       addressRequest   `json:"address"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	CurrentValue  *decimal.Decimal `json:"currentValue"`
}

type updateRequest struct {
	Name          *string          `json:"name"`
	Address       *addressRequest  `json:"address"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	CurrentValue  *decimal.Decimal `json:"currentValue"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		Name:          req.Name,
		Address:       Address(req.Address),
		PurchasePrice: req.PurchasePrice,
		CurrentValue:  req.CurrentValue,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required and purchase price must not be negative", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create property", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, ToResponse(p))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	props, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list properties", nil)
		return
	}

	resp := make([]PropertyResponse, 0, len(props))
	for _, p := range props {
		resp = append(resp, ToResponse(p))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	propertyID := c.Param("propertyId")

	p, err := h.Svc.Get(c.Request.Context(), userID, propertyID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "property not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch property", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, ToResponse(p))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	propertyID := c.Param("propertyId")

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	in := UpdateInput{
		Name:          req.Name,
		PurchasePrice: req.PurchasePrice,
		CurrentValue:  req.CurrentValue,
	}
	if req.Address != nil {
		addr := Address(*req.Address)
		in.Address = &addr
	}

	p, err := h.Svc.Update(c.Request.Context(), userID, propertyID, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "property not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name must not be blank and purchase price must not be negative", nil)
		case errors.Is(err, ErrVersionConflict):
			respond.Error(c, http.StatusConflict, "conflict", "property was modified concurrently, retry the request", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update property", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, ToResponse(p))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	propertyID := c.Param("propertyId")

	if err := h.Svc.Delete(c.Request.Context(), userID, propertyID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "property not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete property", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"deleted": true, "propertyId": propertyID})
}
