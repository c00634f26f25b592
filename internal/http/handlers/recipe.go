package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/recipebook-backend/internal/http/response"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/services"
)

type RecipeHandler struct {
	log     *logger.Logger
	recipes services.RecipeService
}

func NewRecipeHandler(log *logger.Logger, recipes services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		log:     log.With("handler", "RecipeHandler"),
		recipes: recipes,
	}
}

// GET /api/recipes?skip=&limit=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	skip, err := queryInt(c, "skip")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_pagination", err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_pagination", err)
		return
	}
	out, err := h.recipes.ListRecipes(requestDBC(c), skip, limit)
	if err != nil {
		response.RespondServiceError(c, "list_recipes_failed", err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/recipes/search?q=
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	out, err := h.recipes.SearchRecipes(requestDBC(c), c.Query("q"))
	if err != nil {
		response.RespondServiceError(c, "search_recipes_failed", err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "invalid_recipe_id")
	if !ok {
		return
	}
	r, err := h.recipes.GetRecipe(requestDBC(c), id)
	if err != nil {
		response.RespondServiceError(c, "get_recipe_failed", err)
		return
	}
	response.RespondOK(c, r)
}

// POST /api/recipes
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req services.RecipeCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	r, err := h.recipes.CreateRecipe(requestDBC(c), req)
	if err != nil {
		response.RespondServiceError(c, "create_recipe_failed", err)
		return
	}
	response.RespondCreated(c, r)
}

// PUT /api/recipes/:id
// body: any subset of the create fields; ingredients/steps replace the whole list.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "invalid_recipe_id")
	if !ok {
		return
	}
	var req services.RecipeUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	r, err := h.recipes.UpdateRecipe(requestDBC(c), id, req)
	if err != nil {
		response.RespondServiceError(c, "update_recipe_failed", err)
		return
	}
	response.RespondOK(c, r)
}

// DELETE /api/recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "invalid_recipe_id")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(requestDBC(c), id); err != nil {
		response.RespondServiceError(c, "delete_recipe_failed", err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/recipes/:id/scale?factor=
func (h *RecipeHandler) ScaleRecipe(c *gin.Context) {
	id, ok := pathID(c, "invalid_recipe_id")
	if !ok {
		return
	}
	raw, present := c.GetQuery("factor")
	if !present {
		response.RespondError(c, http.StatusBadRequest, "invalid_scale_factor", errors.New("factor is required"))
		return
	}
	factor, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_scale_factor", errors.New("factor must be a number"))
		return
	}
	out, err := h.recipes.ScaleRecipe(requestDBC(c), id, factor)
	if err != nil {
		response.RespondServiceError(c, "scale_recipe_failed", err)
		return
	}
	response.RespondOK(c, out)
}
