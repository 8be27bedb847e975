package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pawtrack/internal/domain/models"
)

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid object", `{"name":"Buddy"}`, false},
		{"malformed", `{"name":`, true},
		{"empty body", ``, true},
		{"oversized body", `{"name":"` + strings.Repeat("x", 2<<20) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dest payload
			err := ParseJSON(rec, req, &dest)

			if tt.wantErr {
				if err == nil {
					t.Error("ParseJSON() expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseJSON() unexpected error: %v", err)
			}
			if dest.Name != "Buddy" {
				t.Errorf("ParseJSON() name = %q, want Buddy", dest.Name)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "Pet not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Message != "Pet not found" {
		t.Errorf("message = %q, want %q", body.Message, "Pet not found")
	}
}

func TestPrincipalRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)

	if p := GetPrincipal(req); p.ID != "" {
		t.Errorf("GetPrincipal() on a bare request = %+v, want zero", p)
	}

	req = WithPrincipal(req, models.Principal{ID: "user-1", Role: models.RoleUser})
	if p := GetPrincipal(req); p.ID != "user-1" || p.Role != models.RoleUser {
		t.Errorf("GetPrincipal() = %+v, want id user-1 role user", p)
	}
}
