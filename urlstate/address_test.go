package urlstate

import (
	"net/url"
	"testing"
)

func TestParseAddressForms(t *testing.T) {
	tests := []struct {
		raw       string
		wantQuery string
		wantPath  string
	}{
		{"?q=parque", "parque", ""},
		{"q=parque", "parque", ""},
		{"/participativos/?q=parque", "parque", "/participativos/"},
		{"https://example.org/app/?q=parque#mapa", "parque", "/app/"},
		{"q=a:b", "a:b", ""},
		{"q=http://example.com", "http://example.com", ""},
		{"q=javascript://x&cat=Movilidad", "javascript://x", ""},
		{"?q=https://example.com/a", "https://example.com/a", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		a, err := ParseAddress(tt.raw)
		if err != nil {
			t.Fatalf("ParseAddress(%q): %v", tt.raw, err)
		}
		if got := a.Params().Get("q"); got != tt.wantQuery {
			t.Errorf("ParseAddress(%q) q: got %q, want %q", tt.raw, got, tt.wantQuery)
		}
		if a.base.Path != tt.wantPath {
			t.Errorf("ParseAddress(%q) path: got %q, want %q", tt.raw, a.base.Path, tt.wantPath)
		}
	}
}

func TestIsLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.org/?q=x", true},
		{"/presupuestos?q=x", true},
		{"?q=x", false},
		{"q=http://example.com", false},
		{"cat=Movilidad&q=/ruta", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLocation(tt.raw); got != tt.want {
			t.Errorf("IsLocation(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestAddressReplace(t *testing.T) {
	a, err := ParseAddress("https://example.org/app/?q=viejo&cat=Urbanismo")
	if err != nil {
		t.Fatal(err)
	}

	a.Replace(url.Values{"q": {"parque"}})
	if got := a.String(); got != "/app/?q=parque" {
		t.Errorf("String: got %q", got)
	}
	if got := a.ShareURL(); got != "https://example.org/app/?q=parque" {
		t.Errorf("ShareURL: got %q", got)
	}
	if !a.HasActiveParams() {
		t.Error("HasActiveParams: got false")
	}

	a.Clear()
	if got := a.ShareURL(); got != "https://example.org/app/" {
		t.Errorf("ShareURL after Clear: got %q", got)
	}
	if a.HasActiveParams() {
		t.Error("HasActiveParams after Clear: got true")
	}
}

func TestAddressParamsIsCopy(t *testing.T) {
	a, _ := ParseAddress("?q=uno")
	p := a.Params()
	p.Set("q", "dos")
	if got := a.Params().Get("q"); got != "uno" {
		t.Errorf("Params leaked a reference: %q", got)
	}
}
