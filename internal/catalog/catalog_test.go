package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const presetYAML = `
stars:
  - index: 0
    proper_name: Sol
    spectral_type: G2V
    luminosity: 1
    presets:
      mass: 1
      radius: 1
      temperature: 5772
  - index: 32263
    hip_id: 32349
    proper_name: Sirius
    constellation: CMa
    spectral_type: A0m...
    luminosity: 25.4
  - index: 99
    gliese: Gl 440
    spectral_type: DQ6
    luminosity: 0.0002
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseYAML(t *testing.T) {
	src, err := ParseYAML(strings.NewReader(presetYAML))
	if err != nil {
		t.Fatalf("ParseYAML returned error: %v", err)
	}

	sol, err := src.LookupByIndex(context.Background(), 0)
	if err != nil {
		t.Fatalf("LookupByIndex(0) returned error: %v", err)
	}
	if sol.SpectralType != "G2V" || sol.Presets.Temperature == nil || *sol.Presets.Temperature != 5772 {
		t.Errorf("unexpected Sol entry: %+v", sol)
	}

	sirius, err := src.LookupByIndex(context.Background(), 32263)
	if err != nil {
		t.Fatalf("LookupByIndex(32263) returned error: %v", err)
	}
	if sirius.HipID != 32349 || sirius.Presets.Mass != nil {
		t.Errorf("unexpected Sirius entry: %+v", sirius)
	}

	rows := src.Rows()
	if len(rows) != 3 || rows[0].Index != 0 || rows[2].Index != 32263 {
		t.Errorf("rows not ordered by index: %+v", rows)
	}
}

func TestParseYAMLRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "duplicate index", doc: "stars:\n  - {index: 1, spectral_type: G2V, luminosity: 1}\n  - {index: 1, spectral_type: K0V, luminosity: 0.5}\n"},
		{name: "missing luminosity", doc: "stars:\n  - {index: 1, spectral_type: G2V}\n"},
		{name: "missing spectral type", doc: "stars:\n  - {index: 1, luminosity: 1}\n"},
		{name: "unknown field", doc: "stars:\n  - {index: 1, spectral_type: G2V, luminosity: 1, colour: red}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML(strings.NewReader(tt.doc)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestFileSourceNotFound(t *testing.T) {
	src, err := NewFileSource(nil)
	if err != nil {
		t.Fatalf("NewFileSource returned error: %v", err)
	}
	if _, err := src.LookupByIndex(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(presetYAML), 0o600); err != nil {
		t.Fatalf("failed to write preset file: %v", err)
	}

	src, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if len(src.Rows()) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(src.Rows()))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRowName(t *testing.T) {
	tests := []struct {
		row  Row
		want string
	}{
		{row: Row{Index: 1, ProperName: "Vega", HipID: 91262}, want: "Vega"},
		{row: Row{Index: 2, Gliese: "Gl 551"}, want: "Gl 551"},
		{row: Row{Index: 3, HipID: 70890}, want: "HIP 70890"},
		{row: Row{Index: 4, HDID: 48915}, want: "HD 48915"},
		{row: Row{Index: 5}, want: "Catalog 5"},
	}

	for _, tt := range tests {
		if got := tt.row.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token form: %v", err)
		}
		if r.Form.Get("grant_type") != "client_credentials" {
			t.Errorf("unexpected grant type %q", r.Form.Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "catalog-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /stars/{index}", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer catalog-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.PathValue("index") {
		case "0":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(Row{Index: 0, ProperName: "Sol", SpectralType: "G2V", Luminosity: 1})
		case "13":
			_ = json.NewEncoder(w).Encode(Row{Index: 14, SpectralType: "G2V", Luminosity: 1})
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteSource(t *testing.T) {
	srv := newCatalogServer(t)

	src, err := NewRemoteSource(context.Background(), RemoteConfig{
		BaseURL:      srv.URL + "/",
		TokenURL:     srv.URL + "/oauth/token",
		ClientID:     "starforge",
		ClientSecret: "secret",
		Scopes:       []string{"catalog:read"},
	}, discardLogger())
	if err != nil {
		t.Fatalf("NewRemoteSource returned error: %v", err)
	}

	row, err := src.LookupByIndex(context.Background(), 0)
	if err != nil {
		t.Fatalf("LookupByIndex returned error: %v", err)
	}
	if row.ProperName != "Sol" || row.SpectralType != "G2V" {
		t.Errorf("unexpected row: %+v", row)
	}

	if _, err := src.LookupByIndex(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := src.LookupByIndex(context.Background(), 500); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected a server error, got %v", err)
	}
	if _, err := src.LookupByIndex(context.Background(), 13); err == nil {
		t.Error("expected an error for a mismatched index")
	}
}

func TestNewRemoteSourceRejectsBadURL(t *testing.T) {
	if _, err := NewRemoteSource(context.Background(), RemoteConfig{BaseURL: "not a url"}, discardLogger()); err == nil {
		t.Fatal("expected an error")
	}
}
