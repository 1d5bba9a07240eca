package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/zaloga/internal/form"
	"github.com/erazemk/zaloga/internal/imaging"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

// maxUpdateBody bounds the body of an update request.
const maxUpdateBody = 1 << 20

type editPage struct {
	PageData
	Item *model.InventoryItem
	Form *form.Form
}

type errorResponse struct {
	Errors form.Errors `json:"errors"`
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func itemCrumbs(item *model.InventoryItem, extra ...Breadcrumb) []Breadcrumb {
	crumbs := []Breadcrumb{
		{Title: "Inventory", Href: "/inventory"},
		{Title: item.Name, Href: form.Path(item.ID)},
	}
	return append(crumbs, extra...)
}

// InventoryPage handles GET /inventory.
func (s *Server) InventoryPage(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if _, err := model.ParseStatus(status); err != nil {
			status = ""
		}
	}

	items, err := store.ListInventoryItems(r.Context(), s.DB, status)
	if err != nil {
		slog.Error("failed to list inventory", "error", err)
	}

	s.Templates.Render(w, "inventory.html", &struct {
		PageData
		Items    []model.InventoryItem
		Status   string
		Statuses []model.Status
	}{
		PageData: PageData{
			Title:       "Inventory",
			Session:     SessionFrom(r),
			Breadcrumbs: []Breadcrumb{{Title: "Inventory", Href: "/inventory"}},
		},
		Items:    items,
		Status:   status,
		Statuses: model.Statuses,
	})
}

// InventoryDetailPage handles GET /inventory/{id}.
func (s *Server) InventoryDetailPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetInventoryItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get inventory item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil || item.DeletedAt != nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "inventory_detail.html", &struct {
		PageData
		Item *model.InventoryItem
	}{
		PageData: PageData{
			Title:       item.Name,
			Session:     SessionFrom(r),
			Breadcrumbs: itemCrumbs(item),
		},
		Item: item,
	})
}

// loadEdit loads the item and category options for the edit form. It
// writes the error response itself and returns nil when the page cannot
// be served.
func (s *Server) loadEdit(w http.ResponseWriter, r *http.Request) (*model.InventoryItem, []model.Category) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, nil
	}

	item, err := store.GetInventoryItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get inventory item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil
	}
	if item == nil || item.DeletedAt != nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return nil, nil
	}

	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil
	}
	return item, categories
}

func (s *Server) renderEdit(w http.ResponseWriter, r *http.Request, status int, f *form.Form) {
	item := f.Record()
	s.Templates.RenderStatus(w, status, "inventory_edit.html", &editPage{
		PageData: PageData{
			Title:       "Edit " + item.Name,
			Session:     SessionFrom(r),
			Breadcrumbs: itemCrumbs(item, Breadcrumb{Title: "Edit", Href: form.Path(item.ID) + "/edit"}),
		},
		Item: item,
		Form: f,
	})
}

// InventoryEditPage handles GET /inventory/{id}/edit.
func (s *Server) InventoryEditPage(w http.ResponseWriter, r *http.Request) {
	if !SessionFrom(r).CanEdit() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	item, categories := s.loadEdit(w, r)
	if item == nil {
		return
	}
	s.renderEdit(w, r, http.StatusOK, form.New(item, categories))
}

// InventoryUpdate handles PUT /inventory/{id}. The body carries the full
// field set, either as JSON or as a url-encoded HTML form. On success the
// caller is redirected to the item; on validation failure JSON callers get
// the field error map and browsers get the form back with errors inline.
func (s *Server) InventoryUpdate(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r)
	if !session.CanEdit() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	item, categories := s.loadEdit(w, r)
	if item == nil {
		return
	}

	f := form.New(item, categories)
	r.Body = http.MaxBytesReader(w, r.Body, maxUpdateBody)

	asJSON := isJSON(r)
	errs := form.Errors{}
	if asJSON {
		if err := json.NewDecoder(r.Body).Decode(&f.Values); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		errs = f.Decode(r.PostForm)
	}

	checked, err := s.Validator.Inventory(r.Context(), f.Values, func(ctx context.Context, id int64) (bool, error) {
		return store.CategoryExists(ctx, s.DB, id)
	})
	if err != nil {
		slog.Error("failed to validate inventory update", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	for field, msg := range checked {
		if _, ok := errs[field]; !ok {
			errs[field] = msg
		}
	}

	if len(errs) > 0 {
		slog.Info("inventory update rejected", "user", session.Username, "item", item.ID, "fields", len(errs))
		if asJSON {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Errors: errs})
			return
		}
		f.Complete(errs)
		s.renderEdit(w, r, http.StatusUnprocessableEntity, f)
		return
	}

	err = store.UpdateInventoryItem(r.Context(), s.DB, item.ID, f.Values.Item())
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to update inventory item", "error", err)
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	slog.Info("inventory item updated", "user", session.Username, "item", item.ID, "name", f.Values.Name)
	http.Redirect(w, r, form.Path(item.ID), http.StatusSeeOther)
}

// InventoryImageSubmit handles POST /inventory/{id}/image.
func (s *Server) InventoryImageSubmit(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r)
	if !session.CanEdit() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+(1<<10))
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := imaging.Process(file, imaging.ProductPhoto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = store.SetInventoryItemImage(r.Context(), s.DB, id, result.Data, result.MIME)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to save image", "error", err)
		http.Error(w, "failed to save image", http.StatusInternalServerError)
		return
	}

	slog.Info("item image uploaded", "user", session.Username, "item", id, "width", result.Width, "height", result.Height)
	http.Redirect(w, r, fmt.Sprintf("/inventory/%d", id), http.StatusSeeOther)
}

// InventoryImageGet handles GET /inventory/{id}/image.
func (s *Server) InventoryImageGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetInventoryItemImage(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get image", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
