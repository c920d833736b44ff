package ftl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"English", "English"},
		{"name {placeholder}", "name {{placeholder}}"},
		{"{{", "{{{{"},
	}
	for _, tc := range tests {
		if got := Escape(tc.in); got != tc.want {
			t.Fatalf("Escape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteResource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i18n", "lang.ftl")
	entries := []Entry{
		{Tag: "fr", Name: "français"},
		{Tag: "en", Name: "English {US}"},
	}

	if err := WriteResource(path, "es-fluent-lang", entries); err != nil {
		t.Fatalf("WriteResource error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := "es-fluent-lang-en = English {{US}}\nes-fluent-lang-fr = français\n"
	if string(data) != want {
		t.Fatalf("output = %q, want %q", data, want)
	}
}

func TestWriteSupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supported.txt")

	if err := WriteSupported(path, []string{"fr", "de", "en"}); err != nil {
		t.Fatalf("WriteSupported error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "de\nen\nfr\n" {
		t.Fatalf("output = %q", data)
	}
}

func TestEntries(t *testing.T) {
	got := Entries(map[string]string{"fr": "français", "de": "Deutsch"})
	want := []Entry{{Tag: "de", Name: "Deutsch"}, {Tag: "fr", Name: "français"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Entries = %v, want %v", got, want)
	}
}
