package saved

import (
	"net/http"
	"strings"

	"recipe-forge/internal/api/handlers"
	"recipe-forge/internal/core/recipe"
	savedStore "recipe-forge/internal/core/saved"

	"github.com/gin-gonic/gin"
)

// SessionHeader 識別收藏清單擁有者的標頭
const SessionHeader = "X-Session-ID"

// Handler 收藏清單處理程序
type Handler struct {
	store savedStore.Store
	debug bool
}

// NewHandler 創建收藏清單處理程序
func NewHandler(store savedStore.Store, debug bool) *Handler {
	return &Handler{store: store, debug: debug}
}

func (h *Handler) session(c *gin.Context) (string, bool) {
	session := c.GetHeader(SessionHeader)
	if session == "" {
		handlers.BadRequest(c, SessionHeader+" header is required")
		return "", false
	}
	return session, true
}

// List GET /saved
func (h *Handler) List(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	records, err := h.store.List(c.Request.Context(), session)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Add POST /saved；新加入回 201，已存在回 200
func (h *Handler) Add(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var rec recipe.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		handlers.BadRequest(c, "Invalid request format")
		return
	}
	if rec.Title == "" {
		handlers.BadRequest(c, "title is required")
		return
	}

	added, err := h.store.Add(c.Request.Context(), session, rec)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"saved": true, "added": added, "title": rec.Title})
}

// Remove DELETE /saved/*title；標題可包含 "/"
func (h *Handler) Remove(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	title := strings.TrimPrefix(c.Param("title"), "/")
	if title == "" {
		handlers.BadRequest(c, "title is required")
		return
	}
	if err := h.store.Remove(c.Request.Context(), session, title); err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}
	c.Status(http.StatusNoContent)
}
