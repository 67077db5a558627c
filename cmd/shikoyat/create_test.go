package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recordHandler serves auth plus the write endpoints and captures the
// submitted record payload.
func recordHandler(t *testing.T, got *map[string]any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/call-center-complaint-code":
			w.Write([]byte(`{"status":true,"data":{"worker_id":3,"worker_name":"Dilshod","token":"tok-3"}}`))
		case r.URL.Path == "/call-center-complaint-image-store":
			w.Write([]byte(`{"status":true,"result":"https://cdn.example/up.png"}`))
		case r.URL.Path == "/call-center-complaint" && r.Method == http.MethodPost:
			json.NewDecoder(r.Body).Decode(got)
			w.Write([]byte(`{"status":true}`))
		case strings.HasPrefix(r.URL.Path, "/call-center-complaint/") && r.Method == http.MethodPut:
			json.NewDecoder(r.Body).Decode(got)
			w.Write([]byte(`{"status":true}`))
		case r.URL.Path == "/call-center-complaint-index":
			w.Write([]byte(`{"status":true,"data":[
				{"id":9,"status":"in_progress","client_name":"Karim","client_phone_one":"+998 90 111 22 33","complaint_text":"Mashina juda kech keldi","branch_id":1,"branch_name":"Chilonzor","images":["https://cdn.example/old.png"],"created_at":"2026-08-20"},
				{"id":12,"status":"completed","client_name":"Laylo","client_phone_one":"+998 90 444 55 66","complaint_text":"Hujjatlar yo'qolgan edi","branch_id":2,"branch_name":"Yunusobod","created_at":"2026-08-21"}],
				"pagination":{"current_page":1,"last_page":1,"per_page":10,"total":2}}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func login(t *testing.T, configPath string) {
	t.Helper()
	if _, err := runCmd(t, "login", "-c", configPath, "--code", "123456"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestCreateCmd(t *testing.T) {
	var got map[string]any
	configPath, _ := setupEnv(t, recordHandler(t, &got))
	login(t, configPath)

	img := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(img, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "create", "-c", configPath,
		"--name", "Bobur",
		"--phone", "998901234567",
		"--text", "Xizmat sifatidan norozi bo'ldim",
		"--branch", "1",
		"--image", img,
	)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out, "Complaint filed") {
		t.Errorf("output = %q", out)
	}

	if got["client_name"] != "Bobur" {
		t.Errorf("client_name = %v", got["client_name"])
	}
	if got["client_phone_one"] != "+998 90 123 45 67" {
		t.Errorf("phone not normalized: %v", got["client_phone_one"])
	}
	if got["worker_id"] != float64(3) || got["worker_name"] != "Dilshod" {
		t.Errorf("author stamp missing: worker_id=%v worker_name=%v", got["worker_id"], got["worker_name"])
	}
	images, _ := got["images"].([]any)
	if len(images) != 1 || images[0] != "https://cdn.example/up.png" {
		t.Errorf("images = %v", got["images"])
	}
}

func TestCreateCmd_RequiresLogin(t *testing.T) {
	configPath, _ := setupEnv(t, recordHandler(t, nil))

	_, err := runCmd(t, "create", "-c", configPath,
		"--name", "Bobur",
		"--phone", "998901234567",
		"--text", "Xizmat sifatidan norozi bo'ldim",
		"--branch", "1",
	)
	if err == nil {
		t.Fatal("expected login-required error")
	}
	if !strings.Contains(err.Error(), "login required") {
		t.Errorf("error = %v", err)
	}
}

func TestEditCmd_MergesUnsetFlags(t *testing.T) {
	var got map[string]any
	configPath, _ := setupEnv(t, recordHandler(t, &got))
	login(t, configPath)

	out, err := runCmd(t, "edit", "9", "-c", configPath, "--text", "Mashina kech keldi, hali ham javob yo'q")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !strings.Contains(out, "Complaint #9 updated") {
		t.Errorf("output = %q", out)
	}

	if got["complaint_text"] != "Mashina kech keldi, hali ham javob yo'q" {
		t.Errorf("complaint_text = %v", got["complaint_text"])
	}
	// Untouched fields keep their current values.
	if got["client_name"] != "Karim" {
		t.Errorf("client_name = %v", got["client_name"])
	}
	if got["branch_id"] != float64(1) {
		t.Errorf("branch_id = %v", got["branch_id"])
	}
	// Already-attached images survive the edit.
	images, _ := got["images"].([]any)
	if len(images) != 1 || images[0] != "https://cdn.example/old.png" {
		t.Errorf("images = %v", got["images"])
	}
}

func TestEditCmd_RefusesCompleted(t *testing.T) {
	configPath, _ := setupEnv(t, recordHandler(t, nil))
	login(t, configPath)

	_, err := runCmd(t, "edit", "12", "-c", configPath, "--text", "Bu yozuvni o'zgartirib bo'lmaydi")
	if err == nil {
		t.Fatal("expected error for completed complaint")
	}
}
