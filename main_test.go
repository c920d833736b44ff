package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stayhydated/langgen/cldr"
	"github.com/stayhydated/langgen/config"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		width   int
		want    string
	}{
		{
			name:    "clamps below zero",
			percent: -10,
			width:   4,
			want:    colorRed + "░░░░" + colorReset + "   0%",
		},
		{
			name:    "mid range uses yellow",
			percent: 50,
			width:   4,
			want:    colorYellow + "██░░" + colorReset + "  50%",
		},
		{
			name:    "clamps above hundred",
			percent: 120,
			width:   4,
			want:    colorGreen + "████" + colorReset + " 100%",
		},
	}

	for _, tc := range tests {
		if got := progressBar(tc.percent, tc.width); got != tc.want {
			t.Fatalf("%s: progressBar() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestGenerateArgsApply(t *testing.T) {
	cfg := &config.File{
		Release:    "48.0.0",
		Output:     config.DefaultOutput,
		Policy:     config.PolicyMerge,
		AllLocales: true,
	}

	a := generateArgs{
		output:        "custom.ftl",
		policy:        config.PolicyQualify,
		allLocales:    false,
		allLocalesSet: true,
	}
	a.apply(cfg)

	if cfg.Output != "custom.ftl" {
		t.Fatalf("Output = %q", cfg.Output)
	}
	if cfg.Policy != config.PolicyQualify {
		t.Fatalf("Policy = %q", cfg.Policy)
	}
	if cfg.AllLocales {
		t.Fatal("AllLocales should have been overridden to false")
	}
	// Untouched fields survive.
	if cfg.Release != "48.0.0" || cfg.SupportedOutput != "" {
		t.Fatalf("unexpected config mutation: %+v", cfg)
	}
}

func TestGenerateArgsApplyLeavesDefaults(t *testing.T) {
	cfg := &config.File{
		Output:     config.DefaultOutput,
		AllLocales: true,
	}

	// allLocales=false without allLocalesSet means the flag was never
	// passed; the config value must win.
	generateArgs{allLocales: false}.apply(cfg)

	if cfg.Output != config.DefaultOutput {
		t.Fatalf("Output = %q", cfg.Output)
	}
	if !cfg.AllLocales {
		t.Fatal("AllLocales must keep its config value")
	}
}

// writePolicyTree lays out a cldr-json directory with English language and
// territory tables plus a partial French territory table.
func writePolicyTree(t *testing.T) *cldr.Tree {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"cldr-localenames-full/main/en/languages.json": `{
			"main": {"en": {"localeDisplayNames": {
				"languages": {"fr": "French"}
			}}}
		}`,
		"cldr-localenames-full/main/en/territories.json": `{
			"main": {"en": {"localeDisplayNames": {
				"territories": {"CA": "Canada", "CH": "Switzerland"}
			}}}
		}`,
		"cldr-localenames-full/main/fr/territories.json": `{
			"main": {"fr": {"localeDisplayNames": {
				"territories": {"CH": "Suisse"}
			}}}
		}`,
	}

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return cldr.New(root)
}

func TestApplyPolicyQualifyTerritoryOverlay(t *testing.T) {
	tree := writePolicyTree(t)
	entries := map[string]string{
		"fr":    "français",
		"fr-CA": "français",
		"fr-CH": "français",
	}

	t.Run("display locale territories win over reference", func(t *testing.T) {
		got, err := applyPolicy(tree, config.PolicyQualify, "fr", entries)
		if err != nil {
			t.Fatalf("applyPolicy error: %v", err)
		}
		want := map[string]string{
			"fr":    "français",
			"fr-CA": "français (Canada)",
			"fr-CH": "français (Suisse)",
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("applyPolicy = %v, want %v", got, want)
		}
	})

	t.Run("autonym mode uses reference territories only", func(t *testing.T) {
		got, err := applyPolicy(tree, config.PolicyQualify, "", entries)
		if err != nil {
			t.Fatalf("applyPolicy error: %v", err)
		}
		if got["fr-CH"] != "français (Switzerland)" {
			t.Fatalf("fr-CH = %q, want français (Switzerland)", got["fr-CH"])
		}
	})

	t.Run("unknown policy is an error", func(t *testing.T) {
		if _, err := applyPolicy(tree, "squash", "", entries); err == nil {
			t.Fatal("expected error for unknown policy")
		}
	})
}
