package recipe

import (
	"net/http"
	"strconv"

	"recipe-forge/internal/api/handlers"
	recipeService "recipe-forge/internal/core/recipe"
	"recipe-forge/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 以食材生成食譜
type GenerateRequest struct {
	Ingredients []string `json:"ingredients"`
	Dietary     string   `json:"dietary"`  // 逗號分隔，例如 "Vegan, Gluten-Free"
	Servings    int      `json:"servings"` // 小於 1 時使用預設 4 人份
}

// ScaleRequest 調整份數
type ScaleRequest struct {
	RecipeID    string `json:"recipeId"`
	NewServings int    `json:"newServings"`
}

// ShareResponse 分享內容
type ShareResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Handler 食譜處理程序
type Handler struct {
	recipeService *recipeService.RecipeService
	debug         bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(svc *recipeService.RecipeService, debug bool) *Handler {
	return &Handler{
		recipeService: svc,
		debug:         debug,
	}
}

// Generate POST /recipes/generate
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "Invalid request format")
		return
	}

	dietary, err := recipeService.ParseDietary(req.Dietary)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("ingredients", len(req.Ingredients)),
		zap.String("dietary", req.Dietary),
	)

	rec, err := h.recipeService.Generate(c.Request.Context(), recipeService.GenerateInput{
		Ingredients: req.Ingredients,
		Dietary:     dietary,
		Servings:    req.Servings,
	})
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// List GET /recipes
func (h *Handler) List(c *gin.Context) {
	records, err := h.recipeService.List(c.Request.Context())
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Get GET /recipes/:id
func (h *Handler) Get(c *gin.Context) {
	rec, err := h.recipeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Scale POST /recipes/scale
func (h *Handler) Scale(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "Invalid request format")
		return
	}
	if req.RecipeID == "" {
		handlers.BadRequest(c, "recipeId is required")
		return
	}

	rec, err := h.recipeService.Scale(c.Request.Context(), req.RecipeID, req.NewServings)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Share GET /recipes/:id/share
func (h *Handler) Share(c *gin.Context) {
	rec, ok := h.loadView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ShareResponse{
		Title: rec.Title,
		Text:  recipeService.ShareText(*rec),
	})
}

// Print GET /recipes/:id/print
func (h *Handler) Print(c *gin.Context) {
	rec, ok := h.loadView(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "print.html", rec)
}

// loadView 取得食譜，有 servings 參數時回傳縮放後的版本
func (h *Handler) loadView(c *gin.Context) (*recipeService.Record, bool) {
	id := c.Param("id")

	raw := c.Query("servings")
	if raw == "" {
		rec, err := h.recipeService.Get(c.Request.Context(), id)
		if err != nil {
			handlers.WriteError(c, err, h.debug)
			return nil, false
		}
		return rec, true
	}

	servings, err := strconv.Atoi(raw)
	if err != nil {
		handlers.BadRequest(c, "servings must be an integer")
		return nil, false
	}
	rec, err := h.recipeService.Scale(c.Request.Context(), id, servings)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return nil, false
	}
	return rec, true
}
