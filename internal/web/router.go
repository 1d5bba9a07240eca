package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/zaloga/internal/validation"
	webembed "github.com/erazemk/zaloga/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string, cookieSecure bool) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:           db,
		Templates:    templates,
		JWTSecret:    jwtSecret,
		Validator:    validation.New(),
		CookieSecure: cookieSecure,
	}

	mux := http.NewServeMux()
	authed := AuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", http.RedirectHandler("/inventory", http.StatusSeeOther))

	mux.Handle("GET /inventory", authed(http.HandlerFunc(s.InventoryPage)))
	mux.Handle("GET /inventory/{id}", authed(http.HandlerFunc(s.InventoryDetailPage)))
	mux.Handle("PUT /inventory/{id}", authed(http.HandlerFunc(s.InventoryUpdate)))
	mux.Handle("GET /inventory/{id}/edit", authed(http.HandlerFunc(s.InventoryEditPage)))
	mux.Handle("POST /inventory/{id}/image", authed(http.HandlerFunc(s.InventoryImageSubmit)))
	mux.Handle("GET /inventory/{id}/image", authed(http.HandlerFunc(s.InventoryImageGet)))

	mux.Handle("GET /categories", authed(http.HandlerFunc(s.CategoriesPage)))
	mux.Handle("POST /categories", authed(http.HandlerFunc(s.CategoryCreateSubmit)))

	return MethodOverride(mux), nil
}
