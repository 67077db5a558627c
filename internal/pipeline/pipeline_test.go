package pipeline

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// fakeAPI implements Uploader and Recorder, scripting upload results
// per filename and recording the dispatched writes.
type fakeAPI struct {
	uploadURLs map[string]string // filename -> URL; missing means fail
	uploads    []string

	created *models.ComplaintRequest
	updated *models.ComplaintRequest
	updatedID int
	writeErr  error
}

func (f *fakeAPI) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	f.uploads = append(f.uploads, filename)
	url, ok := f.uploadURLs[filename]
	if !ok {
		return "", errors.New("upload failed")
	}
	return url, nil
}

func (f *fakeAPI) CreateComplaint(ctx context.Context, payload models.ComplaintRequest) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.created = &payload
	return nil
}

func (f *fakeAPI) UpdateComplaint(ctx context.Context, id int, payload models.ComplaintRequest) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.updatedID = id
	f.updated = &payload
	return nil
}

func validForm() Form {
	return Form{
		ClientName:     "Aziz Karimov",
		ClientPhoneOne: "+998 90 123 45 67",
		ComplaintText:  "Xizmat juda sekin ko'rsatildi",
		BranchID:       3,
	}
}

var author = models.Session{WorkerID: 7, WorkerName: "Dilnoza"}

func TestSubmit_Create(t *testing.T) {
	api := &fakeAPI{uploadURLs: map[string]string{"a.jpg": "url-a"}}
	p := New(api, api)

	form := validForm()
	form.Images = []Image{{Filename: "a.jpg", Data: strings.NewReader("x")}}

	if err := p.Submit(context.Background(), Create{}, form, author); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if api.created == nil {
		t.Fatal("create was not dispatched")
	}
	if api.created.WorkerID != 7 || api.created.WorkerName != "Dilnoza" {
		t.Errorf("author stamp = %d/%q", api.created.WorkerID, api.created.WorkerName)
	}
	if !reflect.DeepEqual(api.created.Images, []string{"url-a"}) {
		t.Errorf("images = %v", api.created.Images)
	}
	if api.created.ClientPhoneTwo != nil {
		t.Error("empty second phone must serialize as null")
	}
}

// A failed upload is dropped, not fatal: the record is still written
// with whichever images succeeded, after the existing ones.
func TestSubmit_PartialUploadFailureTolerated(t *testing.T) {
	api := &fakeAPI{uploadURLs: map[string]string{"ok.jpg": "url-A"}}
	p := New(api, api)

	form := validForm()
	form.Images = []Image{
		{Filename: "ok.jpg", Data: strings.NewReader("x")},
		{Filename: "bad.jpg", Data: strings.NewReader("y")},
	}

	mode := Edit{ID: 42, ExistingImages: []string{"url-old"}}
	if err := p.Submit(context.Background(), mode, form, author); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if api.updated == nil || api.updatedID != 42 {
		t.Fatalf("update not dispatched: %+v id=%d", api.updated, api.updatedID)
	}
	if !reflect.DeepEqual(api.updated.Images, []string{"url-old", "url-A"}) {
		t.Errorf("images = %v, want [url-old url-A]", api.updated.Images)
	}
	// Both uploads were attempted, in order.
	if !reflect.DeepEqual(api.uploads, []string{"ok.jpg", "bad.jpg"}) {
		t.Errorf("uploads = %v", api.uploads)
	}
}

func TestSubmit_ViewModeRefused(t *testing.T) {
	api := &fakeAPI{}
	p := New(api, api)

	err := p.Submit(context.Background(), View{}, validForm(), author)
	if !errors.Is(err, ErrViewOnly) {
		t.Fatalf("err = %v, want ErrViewOnly", err)
	}
	if len(api.uploads) != 0 || api.created != nil || api.updated != nil {
		t.Error("view mode must not touch the network")
	}
}

func TestSubmit_ValidationBeforeNetwork(t *testing.T) {
	api := &fakeAPI{}
	p := New(api, api)

	form := validForm()
	form.ComplaintText = "qisqa"
	form.Images = []Image{{Filename: "a.jpg", Data: strings.NewReader("x")}}

	err := p.Submit(context.Background(), Create{}, form, author)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := verr.Fields["complaint_text"]; !ok {
		t.Errorf("fields = %v, want complaint_text", verr.Fields)
	}
	if len(api.uploads) != 0 {
		t.Error("invalid form must not upload images")
	}
}

func TestSubmit_RecordWriteFailureSurfaces(t *testing.T) {
	api := &fakeAPI{writeErr: errors.New("503")}
	p := New(api, api)

	if err := p.Submit(context.Background(), Create{}, validForm(), author); err == nil {
		t.Fatal("expected error when the record write fails")
	}
}

func TestEditModeFor(t *testing.T) {
	open := models.Complaint{ID: 5, Status: models.StatusInProgress, Images: []string{"u"}}
	mode, err := EditModeFor(open)
	if err != nil {
		t.Fatalf("EditModeFor(open): %v", err)
	}
	edit, ok := mode.(Edit)
	if !ok || edit.ID != 5 || !reflect.DeepEqual(edit.ExistingImages, []string{"u"}) {
		t.Errorf("mode = %#v", mode)
	}

	done := models.Complaint{ID: 6, Status: models.StatusCompleted}
	if _, err := EditModeFor(done); !errors.Is(err, ErrCompleted) {
		t.Errorf("EditModeFor(completed) err = %v, want ErrCompleted", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Form)
		wantField string
	}{
		{"valid", func(f *Form) {}, ""},
		{"short name", func(f *Form) { f.ClientName = "A" }, "client_name"},
		{"bad phone", func(f *Form) { f.ClientPhoneOne = "990 123" }, "client_phone_one"},
		{"bad second phone", func(f *Form) { f.ClientPhoneTwo = "123" }, "client_phone_two"},
		{"empty second phone ok", func(f *Form) { f.ClientPhoneTwo = "" }, ""},
		{"short text", func(f *Form) { f.ComplaintText = "qisqa" }, "complaint_text"},
		{"long text", func(f *Form) { f.ComplaintText = strings.Repeat("a", 1001) }, "complaint_text"},
		{"no branch", func(f *Form) { f.BranchID = 0 }, "branch_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			err := Validate(form)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want %s", verr.Fields, tt.wantField)
			}
		})
	}
}
