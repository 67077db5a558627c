// Package dashboard serves the staff web UI: login via one-time code,
// the complaints table with filters and pagination, and the create/edit
// forms. It is presentation only — all data flows through the query
// orchestrator and the submission pipeline.
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ravshan77/shikoyatlar-web/internal/api"
	"github.com/ravshan77/shikoyatlar-web/internal/format"
	"github.com/ravshan77/shikoyatlar-web/internal/models"
	"github.com/ravshan77/shikoyatlar-web/internal/pipeline"
	"github.com/ravshan77/shikoyatlar-web/internal/query"
	"github.com/ravshan77/shikoyatlar-web/internal/session"
)

// App bundles the components the dashboard renders from. OnLogin and
// OnLogout let the composition root react to session changes (swap the
// bearer credential, persist/clear the token file).
type App struct {
	Store   *session.Store
	Queries *query.Orchestrator
	API     *api.Client
	Pipe    *pipeline.Pipeline

	// RefreshInterval drives the auto-refresh meta tag on the list page.
	RefreshInterval time.Duration

	OnLogin  func(models.Session)
	OnLogout func()
}

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	App  *App
	Port int
	Out  io.Writer
}

// Start launches the dashboard HTTP server. It blocks until ctx is
// cancelled, then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.App == nil {
		return fmt.Errorf("dashboard: app is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	router, err := newRouter(opts.App)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// newRouter builds the gin engine with templates and routes. Split out
// so tests can drive it with httptest.
func newRouter(app *App) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	registerRoutes(router, app)
	return router, nil
}

// parseTemplates loads the embedded HTML templates with the display
// helpers the pages rely on.
func parseTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(template.FuncMap{
		"statusLabel": format.StatusLabel,
		"truncate":    format.Truncate,
		"phone":       format.Phone,
		"selStatus":   func(p *string, v string) bool { return p != nil && *p == v },
		"selBranch":   func(p *int, id int) bool { return p != nil && *p == id },
		"fieldErr":    func(m map[string]string, k string) string { return m[k] },
	})
	tmpl, err := tmpl.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
