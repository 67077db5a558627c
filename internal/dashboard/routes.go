package dashboard

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ravshan77/shikoyatlar-web/internal/api"
	"github.com/ravshan77/shikoyatlar-web/internal/format"
	"github.com/ravshan77/shikoyatlar-web/internal/models"
	"github.com/ravshan77/shikoyatlar-web/internal/query"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// isInvalidCode distinguishes a rejected code from a transport failure
// so the login page can word the inline message accordingly.
func isInvalidCode(err error) bool {
	return errors.Is(err, api.ErrInvalidCode)
}

// complaintsPage is the cached value for one list key.
type complaintsPage struct {
	List []models.Complaint
	Pg   models.Pagination
}

// registerRoutes sets up all dashboard routes on the gin router.
func registerRoutes(router *gin.Engine, app *App) {
	// Embedded static assets (served from assets/ subdir of the embed.FS).
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	router.GET("/login", handleLoginPage(app))
	router.POST("/login", handleLogin(app))

	// Everything else sits behind the auth gate.
	gated := router.Group("", requireSession(app))
	gated.GET("/", handleIndex(app))
	gated.POST("/filters", handleFilters(app))
	gated.GET("/page/:n", handlePage(app))
	gated.POST("/refresh", handleRefresh(app))
	gated.POST("/auto-refresh", handleAutoRefresh(app))
	gated.GET("/complaints/new", handleNewForm(app))
	gated.POST("/complaints/new", handleCreate(app))
	gated.GET("/complaints/:id", handleView(app))
	gated.GET("/complaints/:id/edit", handleEditForm(app))
	gated.POST("/complaints/:id/edit", handleUpdate(app))
	gated.POST("/logout", handleLogout(app))
}

// requireSession redirects unauthenticated requests to the login page.
// Data views never render without a session.
func requireSession(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !app.Store.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func handleLoginPage(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.Store.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		c.HTML(http.StatusOK, "login.html", gin.H{})
	}
}

// handleLogin exchanges the submitted 6-digit code for a session. A
// rejected code and a transport failure both land back on the login
// page with an inline message and a cleared input; only the wording
// differs.
func handleLogin(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.PostForm("code")
		if !codePattern.MatchString(code) {
			c.HTML(http.StatusBadRequest, "login.html", gin.H{
				"Error": "6 raqamli kodni kiriting",
			})
			return
		}

		sess, err := app.API.Authenticate(c.Request.Context(), code)
		if err != nil {
			status := http.StatusBadGateway
			msg := "Xatolik yuz berdi. Qaytadan urinib ko'ring."
			if isInvalidCode(err) {
				status = http.StatusUnauthorized
				msg = "Noto'g'ri kod. Qaytadan urinib ko'ring."
			}
			c.HTML(status, "login.html", gin.H{"Error": msg})
			return
		}

		app.Store.SetSession(sess)
		if app.OnLogin != nil {
			app.OnLogin(sess)
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func handleIndex(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := app.Store.Snapshot()
		ctx := c.Request.Context()

		branches, err := query.Fetch(ctx, app.Queries, query.KeyBranches, app.API.Branches)
		if err != nil {
			branches = nil
		}

		key := query.ComplaintsKey(snap.Page, snap.Filters)
		page, err := query.Fetch(ctx, app.Queries, key, func(ctx2 context.Context) (complaintsPage, error) {
			list, pg, err := app.API.Complaints(ctx2, snap.Page, snap.Filters)
			if err != nil {
				return complaintsPage{}, err
			}
			return complaintsPage{List: list, Pg: pg}, nil
		})

		data := gin.H{
			"Session":     snap.Session,
			"Filters":     snap.Filters,
			"Branches":    branches,
			"AutoRefresh": snap.AutoRefresh,
		}
		if snap.AutoRefresh && app.RefreshInterval > 0 {
			data["RefreshSeconds"] = int(app.RefreshInterval.Seconds())
		}
		if err != nil {
			data["Error"] = "Ma'lumotlarni yuklab bo'lmadi. Qaytadan urinib ko'ring."
			c.HTML(http.StatusOK, "index.html", data)
			return
		}

		data["Complaints"] = page.List
		data["Pagination"] = page.Pg
		data["Pages"] = format.PageWindow(page.Pg.CurrentPage, page.Pg.LastPage)
		c.HTML(http.StatusOK, "index.html", data)
	}
}

// handleFilters replaces the active filters; the store resets the page
// to 1 as part of the same operation.
func handleFilters(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f models.Filters
		if s := c.PostForm("status"); s == models.StatusInProgress || s == models.StatusCompleted {
			f.Status = &s
		}
		if b := c.PostForm("branch"); b != "" && b != "0" {
			if id, err := strconv.Atoi(b); err == nil && id > 0 {
				f.BranchID = &id
			}
		}
		app.Store.SetFilters(f)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func handlePage(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := strconv.Atoi(c.Param("n"))
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		app.Store.SetPage(n)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// RefreshList refetches the currently selected list page, keeping the
// cache warm for the next render. Racing refreshes are safe: they
// collapse into one request.
func (a *App) RefreshList(ctx context.Context) error {
	snap := a.Store.Snapshot()
	key := query.ComplaintsKey(snap.Page, snap.Filters)
	_, err := query.Refetch(ctx, a.Queries, key, func(ctx context.Context) (complaintsPage, error) {
		list, pg, err := a.API.Complaints(ctx, snap.Page, snap.Filters)
		if err != nil {
			return complaintsPage{}, err
		}
		return complaintsPage{List: list, Pg: pg}, nil
	})
	return err
}

// handleRefresh forces a refetch of the current list key.
func handleRefresh(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.RefreshList(c.Request.Context())
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func handleAutoRefresh(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		app.Store.SetAutoRefresh(!app.Store.AutoRefresh())
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// handleLogout clears the session, the token file (via OnLogout) and
// every cached query result before redirecting, so nothing fetched
// under the old identity can be served to the next one.
func handleLogout(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.OnLogout != nil {
			app.OnLogout()
		}
		app.Store.Reset()
		app.Queries.Clear()
		c.Redirect(http.StatusSeeOther, "/login")
	}
}
