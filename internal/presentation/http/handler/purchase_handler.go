package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/daybook-api/internal/application/service"
	"github.com/sangkips/daybook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/daybook-api/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles GET /api/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	purchases, err := h.purchaseService.ListPurchases(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, purchases)
}

// Create handles POST /api/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, purchase)
}

// Delete handles DELETE /api/purchases/:id
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
