package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ravshan77/shikoyatlar-web/internal/format"
	"github.com/ravshan77/shikoyatlar-web/internal/models"
	"github.com/ravshan77/shikoyatlar-web/internal/pipeline"
	"github.com/ravshan77/shikoyatlar-web/internal/query"
)

const genericFailure = "Xatolik yuz berdi. Qaytadan urinib ko'ring."
const completedNotice = "Yakunlangan shikoyatni tahrirlash mumkin emas!"

// maxUploadBytes bounds a whole multipart submission.
const maxUploadBytes = 32 << 20

func handleNewForm(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "form.html", gin.H{
			"Mode":     "create",
			"Branches": fetchBranches(c, app),
			"Form":     pipeline.Form{},
		})
	}
}

// handleCreate runs the submission pipeline in create mode. Validation
// failures re-render the form with the entered values intact so the
// user can fix and resubmit without retyping; any other failure shows a
// blocking generic notice, also keeping the form.
func handleCreate(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, closers, err := parseComplaintForm(c)
		defer runClosers(closers)
		if err != nil {
			c.HTML(http.StatusBadRequest, "form.html", gin.H{
				"Mode": "create", "Branches": fetchBranches(c, app),
				"Form": form, "Error": genericFailure,
			})
			return
		}

		sess, _ := app.Store.Session()
		err = app.Pipe.Submit(c.Request.Context(), pipeline.Create{}, form, sess)
		if err != nil {
			renderSubmitError(c, app, "create", nil, form, err)
			return
		}

		app.Queries.Invalidate(query.ComplaintsPrefix)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func handleView(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		cm, ok := fetchComplaint(c, app)
		if !ok {
			return
		}
		c.HTML(http.StatusOK, "view.html", gin.H{"Complaint": cm})
	}
}

// handleEditForm refuses completed complaints with a blocking notice;
// they are reachable read-only through the view route.
func handleEditForm(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		cm, ok := fetchComplaint(c, app)
		if !ok {
			return
		}
		if cm.Completed() {
			c.HTML(http.StatusForbidden, "view.html", gin.H{
				"Complaint": cm,
				"Notice":    completedNotice,
			})
			return
		}

		phoneTwo := ""
		if cm.ClientPhoneTwo != nil {
			phoneTwo = *cm.ClientPhoneTwo
		}
		c.HTML(http.StatusOK, "form.html", gin.H{
			"Mode":     "edit",
			"ID":       cm.ID,
			"Branches": fetchBranches(c, app),
			"Images":   cm.Images,
			"Form": pipeline.Form{
				ClientName:     cm.ClientName,
				ClientPhoneOne: cm.ClientPhoneOne,
				ClientPhoneTwo: phoneTwo,
				ComplaintText:  cm.ComplaintText,
				RentNumber:     cm.RentNumber,
				BranchID:       cm.BranchID,
			},
		})
	}
}

func handleUpdate(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		cm, ok := fetchComplaint(c, app)
		if !ok {
			return
		}

		mode, err := pipeline.EditModeFor(cm)
		if err != nil {
			c.HTML(http.StatusForbidden, "view.html", gin.H{
				"Complaint": cm,
				"Notice":    completedNotice,
			})
			return
		}

		form, closers, perr := parseComplaintForm(c)
		defer runClosers(closers)
		if perr != nil {
			renderSubmitError(c, app, "edit", &cm, form, perr)
			return
		}

		sess, _ := app.Store.Session()
		if err := app.Pipe.Submit(c.Request.Context(), mode, form, sess); err != nil {
			renderSubmitError(c, app, "edit", &cm, form, err)
			return
		}

		app.Queries.Invalidate(query.ComplaintsPrefix)
		app.Queries.Invalidate(query.ComplaintKey(cm.ID))
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// parseComplaintForm reads the multipart submission into a pipeline
// form. Phone inputs are normalized to the canonical format before
// validation. The returned closers release the uploaded file handles.
func parseComplaintForm(c *gin.Context) (pipeline.Form, []func(), error) {
	var closers []func()
	// A submission with no files may arrive urlencoded.
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return pipeline.Form{}, closers, err
	}

	branchID, _ := strconv.Atoi(c.PostForm("branch_id"))
	form := pipeline.Form{
		ClientName:     c.PostForm("client_name"),
		ClientPhoneOne: format.Phone(c.PostForm("client_phone_one")),
		ComplaintText:  c.PostForm("complaint_text"),
		RentNumber:     c.PostForm("rent_number"),
		BranchID:       branchID,
	}
	if p := c.PostForm("client_phone_two"); p != "" {
		form.ClientPhoneTwo = format.Phone(p)
	}

	if c.Request.MultipartForm != nil {
		for _, fh := range c.Request.MultipartForm.File["images"] {
			f, err := fh.Open()
			if err != nil {
				continue
			}
			closers = append(closers, func() { f.Close() })
			form.Images = append(form.Images, pipeline.Image{Filename: fh.Filename, Data: f})
		}
	}
	return form, closers, nil
}

func runClosers(closers []func()) {
	for _, fn := range closers {
		fn()
	}
}

// fetchComplaint resolves the :id route param through the orchestrator.
// On failure it renders the not-found page and reports !ok.
func fetchComplaint(c *gin.Context, app *App) (models.Complaint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return models.Complaint{}, false
	}

	cm, err := query.Fetch(c.Request.Context(), app.Queries, query.ComplaintKey(id), func(ctx context.Context) (models.Complaint, error) {
		return app.API.Complaint(ctx, id)
	})
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return models.Complaint{}, false
	}
	return cm, true
}

func fetchBranches(c *gin.Context, app *App) []models.Branch {
	branches, err := query.Fetch(c.Request.Context(), app.Queries, query.KeyBranches, app.API.Branches)
	if err != nil {
		return nil
	}
	return branches
}

// renderSubmitError maps a pipeline failure onto the form page: field
// messages for validation errors, a generic blocking notice otherwise.
func renderSubmitError(c *gin.Context, app *App, mode string, cm *models.Complaint, form pipeline.Form, err error) {
	data := gin.H{
		"Mode":     mode,
		"Branches": fetchBranches(c, app),
		"Form":     form,
	}
	if cm != nil {
		data["ID"] = cm.ID
		data["Images"] = cm.Images
	}

	var verr *pipeline.ValidationError
	if errors.As(err, &verr) {
		data["FieldErrors"] = verr.Fields
		c.HTML(http.StatusBadRequest, "form.html", data)
		return
	}
	data["Error"] = genericFailure
	c.HTML(http.StatusBadGateway, "form.html", data)
}
