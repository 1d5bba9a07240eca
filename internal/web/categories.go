package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

type categoriesPage struct {
	PageData
	Categories []model.Category
	Name       string
}

func (s *Server) renderCategories(w http.ResponseWriter, r *http.Request, status int, page categoriesPage) {
	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
	}
	page.Title = "Categories"
	page.Session = SessionFrom(r)
	page.Breadcrumbs = []Breadcrumb{{Title: "Categories", Href: "/categories"}}
	page.Categories = categories
	s.Templates.RenderStatus(w, status, "categories.html", &page)
}

// CategoriesPage handles GET /categories.
func (s *Server) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	if !SessionFrom(r).CanEdit() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	s.renderCategories(w, r, http.StatusOK, categoriesPage{})
}

// CategoryCreateSubmit handles POST /categories.
func (s *Server) CategoryCreateSubmit(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r)
	if !session.CanEdit() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if msg := s.Validator.CategoryName(name); msg != "" {
		page := categoriesPage{Name: name}
		page.Error = msg
		s.renderCategories(w, r, http.StatusUnprocessableEntity, page)
		return
	}

	c, err := store.CreateCategory(r.Context(), s.DB, name)
	if err != nil {
		slog.Error("failed to create category", "error", err)
		page := categoriesPage{Name: name}
		page.Error = "Could not create the category."
		s.renderCategories(w, r, http.StatusInternalServerError, page)
		return
	}

	slog.Info("category created", "user", session.Username, "category", c.ID, "name", c.Name)
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}
