package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/daybook-api/internal/application/service"
	"github.com/sangkips/daybook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/daybook-api/internal/presentation/http/dto/response"
)

// SaleHandler handles daily sale HTTP requests
type SaleHandler struct {
	saleService  *service.SaleService
	upsertByDate bool
}

// NewSaleHandler creates a new sale handler. With upsertByDate a create for a
// day that already has a sale overwrites it.
func NewSaleHandler(saleService *service.SaleService, upsertByDate bool) *SaleHandler {
	return &SaleHandler{saleService: saleService, upsertByDate: upsertByDate}
}

// List handles GET /api/daily-sales
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.saleService.ListSales(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sales)
}

// GetByDate handles GET /api/daily-sales/:date
func (h *SaleHandler) GetByDate(c *gin.Context) {
	sale, err := h.saleService.GetSaleByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sale)
}

// Create handles POST /api/daily-sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if h.upsertByDate {
		sale, created, err := h.saleService.UpsertSale(c.Request.Context(), req.ToInput())
		if err != nil {
			response.Error(c, err)
			return
		}
		if created {
			response.Created(c, sale)
		} else {
			response.OK(c, sale)
		}
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sale)
}

// Update handles PUT /api/daily-sales/:id
func (h *SaleHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateSaleRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sale)
}
