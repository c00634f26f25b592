package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/recipebook-backend/internal/http/response"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/services"
)

const maxShoppingListBody = 1 << 20

type ShoppingListHandler struct {
	log      *logger.Logger
	shopping services.ShoppingListService
}

func NewShoppingListHandler(log *logger.Logger, shopping services.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{
		log:      log.With("handler", "ShoppingListHandler"),
		shopping: shopping,
	}
}

// POST /api/shopping-list
// body: [1, 2, 2] or {"recipe_ids": [1, 2, 2]}
func (h *ShoppingListHandler) GenerateShoppingList(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxShoppingListBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "request_too_large",
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ids, err := decodeRecipeIDs(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lines, err := h.shopping.GenerateShoppingList(c.Request.Context(), ids)
	if err != nil {
		response.RespondServiceError(c, "shopping_list_failed", err)
		return
	}
	response.RespondOK(c, lines)
}

// decodeRecipeIDs accepts any JSON integers. Ids no recipe can carry are
// passed through and skipped like unknown ones.
func decodeRecipeIDs(raw []byte) ([]int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("request body is required")
	}
	switch raw[0] {
	case '[':
		var ids []int64
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, fmt.Errorf("recipe ids must be integers: %w", err)
		}
		return ids, nil
	case '{':
		var body struct {
			RecipeIDs *[]int64 `json:"recipe_ids"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("recipe ids must be integers: %w", err)
		}
		if body.RecipeIDs == nil {
			return nil, errors.New("recipe_ids is required")
		}
		return *body.RecipeIDs, nil
	default:
		return nil, errors.New("body must be a JSON array of recipe ids or an object with recipe_ids")
	}
}
