// Package pipeline sequences complaint submission: client-side
// validation, per-image upload, then a single create or update of the
// record. Images travel individually before the record write; the
// record payload carries server-assigned URLs only.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

var (
	// ErrViewOnly is returned when Submit is invoked with the view
	// mode, which exists for read-only rendering and can never write.
	ErrViewOnly = errors.New("pipeline: view mode cannot submit")
	// ErrCompleted is returned when an edit is attempted on a completed
	// complaint. Completed records are immutable client-side.
	ErrCompleted = errors.New("pipeline: completed complaints cannot be edited")
)

// Uploader stores image files and returns their URLs.
type Uploader interface {
	UploadImage(ctx context.Context, filename string, file io.Reader) (string, error)
}

// Recorder writes complaint records.
type Recorder interface {
	CreateComplaint(ctx context.Context, payload models.ComplaintRequest) error
	UpdateComplaint(ctx context.Context, id int, payload models.ComplaintRequest) error
}

// Mode is the tagged form variant. Only Create and Edit can reach the
// record write; View has no associated data and Submit refuses it.
type Mode interface {
	isMode()
}

// Create registers a new complaint.
type Create struct{}

// Edit updates complaint ID, keeping its already-uploaded images.
type Edit struct {
	ID             int
	ExistingImages []string
}

// View renders a complaint read-only.
type View struct{}

func (Create) isMode() {}
func (Edit) isMode()   {}
func (View) isMode()   {}

// EditModeFor returns the edit mode for a complaint, refusing completed
// records with ErrCompleted.
func EditModeFor(c models.Complaint) (Mode, error) {
	if c.Completed() {
		return nil, ErrCompleted
	}
	return Edit{ID: c.ID, ExistingImages: c.Images}, nil
}

// Image is a newly attached local file, not yet uploaded.
type Image struct {
	Filename string
	Data     io.Reader
}

// Form carries user input for a complaint submission.
type Form struct {
	ClientName     string
	ClientPhoneOne string
	ClientPhoneTwo string
	ComplaintText  string
	RentNumber     string
	BranchID       int
	Images         []Image
}

// Pipeline wires the uploader and recorder; both are satisfied by
// *api.Client.
type Pipeline struct {
	uploads Uploader
	records Recorder
}

// New creates a Pipeline.
func New(uploads Uploader, records Recorder) *Pipeline {
	return &Pipeline{uploads: uploads, records: records}
}

// Submit validates the form, uploads new images sequentially, then
// dispatches the record write for the given mode. An individual upload
// failure is logged and the image dropped — the record is still
// submitted with whichever images succeeded. The record write itself is
// a single call: it either lands or the whole submission fails.
func (p *Pipeline) Submit(ctx context.Context, mode Mode, form Form, author models.Session) error {
	var edit *Edit
	switch m := mode.(type) {
	case Create:
	case Edit:
		edit = &m
	case View:
		return ErrViewOnly
	default:
		return fmt.Errorf("pipeline: unknown mode %T", mode)
	}

	if err := Validate(form); err != nil {
		return err
	}

	var uploaded []string
	for _, img := range form.Images {
		url, err := p.uploads.UploadImage(ctx, img.Filename, img.Data)
		if err != nil {
			log.Printf("pipeline: image %s dropped: %v", img.Filename, err)
			continue
		}
		uploaded = append(uploaded, url)
	}

	images := []string{}
	if edit != nil {
		images = append(images, edit.ExistingImages...)
	}
	images = append(images, uploaded...)

	var phoneTwo *string
	if form.ClientPhoneTwo != "" {
		phoneTwo = &form.ClientPhoneTwo
	}
	payload := models.ComplaintRequest{
		ClientName:     form.ClientName,
		ClientPhoneOne: form.ClientPhoneOne,
		ClientPhoneTwo: phoneTwo,
		ComplaintText:  form.ComplaintText,
		RentNumber:     form.RentNumber,
		BranchID:       form.BranchID,
		Images:         images,
		WorkerID:       author.WorkerID,
		WorkerName:     author.WorkerName,
	}

	if edit != nil {
		if err := p.records.UpdateComplaint(ctx, edit.ID, payload); err != nil {
			return fmt.Errorf("pipeline: update complaint %d: %w", edit.ID, err)
		}
		return nil
	}
	if err := p.records.CreateComplaint(ctx, payload); err != nil {
		return fmt.Errorf("pipeline: create complaint: %w", err)
	}
	return nil
}
