package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/recipebook-backend/internal/http/response"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/services"
)

type PantryHandler struct {
	log    *logger.Logger
	pantry services.PantryService
}

func NewPantryHandler(log *logger.Logger, pantry services.PantryService) *PantryHandler {
	return &PantryHandler{
		log:    log.With("handler", "PantryHandler"),
		pantry: pantry,
	}
}

// GET /api/pantry
func (h *PantryHandler) ListPantryItems(c *gin.Context) {
	out, err := h.pantry.ListPantryItems(requestDBC(c))
	if err != nil {
		response.RespondServiceError(c, "list_pantry_failed", err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/pantry/:id
func (h *PantryHandler) GetPantryItem(c *gin.Context) {
	id, ok := pathID(c, "invalid_pantry_item_id")
	if !ok {
		return
	}
	item, err := h.pantry.GetPantryItem(requestDBC(c), id)
	if err != nil {
		response.RespondServiceError(c, "get_pantry_item_failed", err)
		return
	}
	response.RespondOK(c, item)
}

// POST /api/pantry
// An item whose name already exists is merged: quantities add, the unit is replaced.
func (h *PantryHandler) CreatePantryItem(c *gin.Context) {
	var req services.PantryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, merged, err := h.pantry.CreatePantryItem(requestDBC(c), req)
	if err != nil {
		response.RespondServiceError(c, "create_pantry_item_failed", err)
		return
	}
	if merged {
		h.log.Debug("Pantry create merged into existing item", "pantry_item_id", item.ID)
	}
	response.RespondCreated(c, item)
}

// PUT /api/pantry/:id
func (h *PantryHandler) UpdatePantryItem(c *gin.Context) {
	id, ok := pathID(c, "invalid_pantry_item_id")
	if !ok {
		return
	}
	var req services.PantryItemUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.pantry.UpdatePantryItem(requestDBC(c), id, req)
	if err != nil {
		response.RespondServiceError(c, "update_pantry_item_failed", err)
		return
	}
	response.RespondOK(c, item)
}

// DELETE /api/pantry/:id
func (h *PantryHandler) DeletePantryItem(c *gin.Context) {
	id, ok := pathID(c, "invalid_pantry_item_id")
	if !ok {
		return
	}
	if err := h.pantry.DeletePantryItem(requestDBC(c), id); err != nil {
		response.RespondServiceError(c, "delete_pantry_item_failed", err)
		return
	}
	response.RespondNoContent(c)
}
