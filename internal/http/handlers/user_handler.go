// README: User profile handlers (preferences, location).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jetzy/internal/modules/usercontext"
)

type UserHandler struct {
	store usercontext.Store
}

func NewUserHandler(store usercontext.Store) *UserHandler {
	return &UserHandler{store: store}
}

// GetPreferences handles GET /api/user/:id/preferences.
func (h *UserHandler) GetPreferences(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("id"))
	if userID == "" {
		writeError(c, http.StatusBadRequest, "missing user id")
		return
	}

	uc, err := h.store.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"user_id":     userID,
		"preferences": uc.Preferences,
	})
}

// UpdatePreferences handles PUT /api/user/:id/preferences. Keys in the
// body are merged over existing preferences.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("id"))
	if userID == "" {
		writeError(c, http.StatusBadRequest, "missing user id")
		return
	}

	var prefs map[string]string
	if err := c.ShouldBindJSON(&prefs); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	uc, err := h.store.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	for k, v := range prefs {
		uc.Preferences[k] = v
	}
	if err := h.store.Put(c.Request.Context(), uc); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"user_id":     userID,
		"preferences": uc.Preferences,
		"message":     "Preferences updated successfully",
	})
}

type locationReq struct {
	City string `json:"city"`
}

// UpdateLocation handles PUT /api/user/:id/location.
func (h *UserHandler) UpdateLocation(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("id"))
	if userID == "" {
		writeError(c, http.StatusBadRequest, "missing user id")
		return
	}

	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.City = strings.TrimSpace(req.City)
	if req.City == "" {
		writeError(c, http.StatusBadRequest, "missing city")
		return
	}

	uc, err := h.store.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	uc.Location = req.City
	if err := h.store.Put(c.Request.Context(), uc); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"user_id":  userID,
		"location": uc.Location,
		"message":  "Location updated successfully",
	})
}
