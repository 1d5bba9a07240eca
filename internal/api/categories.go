package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
	"github.com/erazemk/zaloga/internal/validation"
)

// CategoriesHandler handles category endpoints.
type CategoriesHandler struct {
	DB        *sql.DB
	Validator *validation.Validator
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type updateCategoryRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := store.ListCategories(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if msg := h.Validator.CategoryName(name); msg != "" {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]map[string]string{
			"errors": {"name": msg},
		})
		return
	}

	c, err := store.CreateCategory(r.Context(), h.DB, name)
	if err != nil {
		slog.Error("failed to create category", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	slog.Info("category created", "user", GetClaims(r.Context()).Username, "category", c.ID, "name", c.Name)
	jsonResponse(w, http.StatusCreated, c)
}

// Update handles PUT /api/categories/{id}.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	errs := map[string]string{}
	if msg := h.Validator.CategoryName(name); msg != "" {
		errs["name"] = msg
	}
	if req.Status == "" {
		req.Status = model.CategoryStatusActive
	}
	if req.Status != model.CategoryStatusActive && req.Status != model.CategoryStatusInactive {
		errs["status"] = "The selected status is invalid."
	}
	if len(errs) > 0 {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]map[string]string{"errors": errs})
		return
	}

	err = store.UpdateCategory(r.Context(), h.DB, id, name, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		slog.Error("failed to update category", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	slog.Info("category updated", "user", GetClaims(r.Context()).Username, "category", id, "name", name)
	c, _ := store.GetCategory(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, c)
}

// Delete handles DELETE /api/categories/{id}. Categories still used by
// live items cannot be deleted.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	err = store.DeleteCategory(r.Context(), h.DB, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "category not found")
		return
	case errors.Is(err, store.ErrCategoryInUse):
		slog.Warn("category delete refused", "category", id, "error", err)
		jsonError(w, http.StatusConflict, "category is still used by inventory items")
		return
	case err != nil:
		slog.Error("failed to delete category", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	slog.Info("category deleted", "user", GetClaims(r.Context()).Username, "category", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
