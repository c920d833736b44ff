// langgen — generates locale display-name tables from CLDR data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stayhydated/langgen/cldr"
	"github.com/stayhydated/langgen/collapse"
	"github.com/stayhydated/langgen/config"
	"github.com/stayhydated/langgen/ftl"
	"github.com/stayhydated/langgen/i18n"
	"github.com/stayhydated/langgen/locale"
	"github.com/stayhydated/langgen/release"
	"github.com/stayhydated/langgen/resolve"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "langgen",
		Short: "Generate locale display-name tables (FTL) from CLDR data",
		Long: `langgen — generates locale display-name tables from CLDR data.

Derives one human-readable name per CLDR locale (autonyms by default, or
all names in one display locale), collapses or qualifies duplicate
regional entries, and writes a Fluent resource plus a supported-locales
index. Configuration lives in .langgen.yaml; flags override it per run.

Commands:
  generate    Build the FTL resource and supported-locales index
  update      Check for a new CLDR release, bump the config, regenerate
  version     Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newGenerateCmd(),
		newUpdateCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("langgen version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// generate
// ---------------------------------------------------------------------------

func newGenerateCmd() *cobra.Command {
	var a generateArgs

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the FTL resource and supported-locales index",
		Long: `Build locale display-name outputs from CLDR data.

Downloads the pinned CLDR archive (cached under the cache directory),
extracts it, resolves one display name per locale, applies the collapse
policy, and writes the FTL resource plus the supported-locales index.
Unless --display-locale is given, names are autonyms and a per-locale
i18n tree is also written (disable with --all-locales=false).

Examples:
  # Autonyms plus the full per-locale i18n tree
  langgen generate

  # One run localized into French, qualify instead of merging
  langgen generate --display-locale fr --policy qualify

  # Reuse an already downloaded archive
  langgen generate --cldr-zip ./cldr-48.0.0-json-full.zip`,
		Run: func(cmd *cobra.Command, args []string) {
			a.allLocalesSet = cmd.Flags().Changed("all-locales")
			runWithInterrupt(func(ctx context.Context) error {
				return runGenerate(ctx, a)
			})
		},
	}

	cmd.Flags().StringVarP(&a.output, "output", "o", "", "Destination FTL file")
	cmd.Flags().StringVar(&a.supportedOutput, "supported-output", "", "Destination supported-locales index file")
	cmd.Flags().StringVar(&a.i18nDir, "i18n-dir", "", "Destination directory for per-locale i18n files")
	cmd.Flags().StringVar(&a.prefix, "prefix", "", "Message id prefix in generated resources")
	cmd.Flags().StringVar(&a.policy, "policy", "", "Collapse policy: merge or qualify")
	cmd.Flags().StringVar(&a.displayLocale, "display-locale", "", "Locale used to translate names (default: autonyms)")
	cmd.Flags().StringVar(&a.cldrZip, "cldr-zip", "", "Path to an existing CLDR archive (skips download)")
	cmd.Flags().BoolVar(&a.allLocales, "all-locales", true, "Write per-locale i18n files for every CLDR locale")

	_ = cmd.RegisterFlagCompletionFunc("policy", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			config.PolicyMerge + "\tCollapse duplicate regional entries into one",
			config.PolicyQualify + "\tKeep regional entries, qualify name collisions",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

type generateArgs struct {
	output, supportedOutput, i18nDir string
	prefix, policy, displayLocale    string
	cldrZip                          string
	allLocales                       bool
	allLocalesSet                    bool
}

// apply overlays non-empty flag values onto the loaded configuration.
func (a generateArgs) apply(cfg *config.File) {
	if a.output != "" {
		cfg.Output = a.output
	}
	if a.supportedOutput != "" {
		cfg.SupportedOutput = a.supportedOutput
	}
	if a.i18nDir != "" {
		cfg.I18nDir = a.i18nDir
	}
	if a.prefix != "" {
		cfg.Prefix = a.prefix
	}
	if a.policy != "" {
		cfg.Policy = a.policy
	}
	if a.displayLocale != "" {
		cfg.DisplayLocale = a.displayLocale
	}
	if a.cldrZip != "" {
		cfg.CLDRZip = a.cldrZip
	}
	if a.allLocalesSet {
		cfg.AllLocales = a.allLocales
	}
}

func runGenerate(ctx context.Context, a generateArgs) error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	a.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	archivePath, err := ensureArchive(ctx, cfg)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "langgen-cldr-")
	if err != nil {
		return fmt.Errorf("creating extraction directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	logInfo(i18n.T("Extracting %s..."), filepath.Base(archivePath))
	if err := cldr.Extract(archivePath, tmpDir); err != nil {
		return err
	}

	tree := cldr.New(tmpDir)
	if err := tree.Validate(); err != nil {
		return err
	}

	likely, err := tree.LikelySubtags()
	if err != nil {
		return err
	}
	available, err := tree.AvailableLocales()
	if err != nil {
		return err
	}

	// Primary outputs: the main resource and the supported-locales index.
	if err := generateTable(tree, cfg, likely, available, cfg.DisplayLocale, cfg.Output, cfg.SupportedOutput); err != nil {
		return err
	}

	// Per-locale i18n tree: one file per display locale.
	var displayLocales []string
	switch {
	case cfg.DisplayLocale != "":
		displayLocales = []string{cfg.DisplayLocale}
	case cfg.AllLocales:
		displayLocales, err = tree.DisplayLocales()
		if err != nil {
			return err
		}
	}

	if len(displayLocales) > 0 {
		logInfo(i18n.T("Writing per-locale i18n files to %s..."), cfg.I18nDir)
		seen := make(map[string]bool)
		written := 0
		for _, loc := range displayLocales {
			if err := ctx.Err(); err != nil {
				return err
			}
			canonical := locale.Canonicalize(loc)
			if canonical == "root" || seen[canonical] {
				continue
			}
			seen[canonical] = true

			outputPath := filepath.Join(cfg.I18nDir, canonical, cfg.Prefix+".ftl")
			if err := generateTable(tree, cfg, likely, available, canonical, outputPath, ""); err != nil {
				return err
			}
			written++
		}
		logInfo("Wrote %d i18n locales", written)
	}

	logSuccess(i18n.T("Generation complete!"))
	return nil
}

// ensureArchive returns the path of the CLDR archive to use, downloading
// it into the cache directory when nothing usable exists yet.
func ensureArchive(ctx context.Context, cfg *config.File) (string, error) {
	if cfg.CLDRZip != "" {
		logInfo(i18n.T("Using existing CLDR archive: %s"), cfg.CLDRZip)
		return cfg.CLDRZip, nil
	}

	cached := filepath.Join(rootDir, cfg.CacheDir, cldr.ArchiveName(cfg.Release))
	if fileExists(cached) {
		logInfo(i18n.T("Using cached CLDR archive: %s"), cached)
		return cached, nil
	}

	url := cldr.ArchiveURL(cfg.Release)
	logInfo(i18n.T("Downloading %s..."), url)
	if err := cldr.Download(ctx, url, cached, downloadProgress()); err != nil {
		return "", err
	}
	fmt.Fprintln(os.Stderr)
	return cached, nil
}

// generateTable runs one resolve-collapse-write pass. An empty
// displayLocale resolves autonyms; an empty supportedPath skips the
// supported-locales index.
func generateTable(tree *cldr.Tree, cfg *config.File, likely map[string]string, available []string, displayLocale, outputPath, supportedPath string) error {
	if displayLocale == "" {
		logInfo(i18n.T("Collecting locale entries (autonyms)..."))
	} else {
		logInfo(i18n.T("Collecting locale entries (display locale: %s)..."), displayLocale)
	}

	entries, err := resolve.Collect(tree, resolve.Options{
		LikelySubtags: likely,
		Available:     available,
		DisplayLocale: displayLocale,
	})
	if err != nil {
		return err
	}

	logInfo(i18n.T("Collapsing %d entries..."), len(entries))
	final, err := applyPolicy(tree, cfg.Policy, displayLocale, entries)
	if err != nil {
		return err
	}

	list := ftl.Entries(final)
	logInfo(i18n.T("Writing %d locales to %s..."), len(list), outputPath)
	if err := ftl.WriteResource(outputPath, cfg.Prefix, list); err != nil {
		return err
	}

	if supportedPath != "" {
		tags := make([]string, len(list))
		for i, entry := range list {
			tags[i] = entry.Tag
		}
		logInfo(i18n.T("Writing %d supported locales to %s..."), len(tags), supportedPath)
		if err := ftl.WriteSupported(supportedPath, tags); err != nil {
			return err
		}
	}
	return nil
}

// applyPolicy post-processes resolved entries with the configured
// collapse policy. The qualify policy compares against reference-table
// base names and, in display-locale mode, prefers the display locale's
// own territory names for the parenthetical qualifier.
func applyPolicy(tree *cldr.Tree, policy, displayLocale string, entries map[string]string) (map[string]string, error) {
	switch policy {
	case config.PolicyMerge:
		return collapse.Merge(entries), nil

	case config.PolicyQualify:
		refNames, err := tree.LanguageNames(resolve.ReferenceLocale)
		if err != nil {
			return nil, err
		}
		territories, err := tree.TerritoryNames(resolve.ReferenceLocale)
		if err != nil {
			return nil, err
		}
		if displayLocale != "" {
			local, err := tree.TerritoryNames(locale.Canonicalize(displayLocale))
			if err != nil {
				return nil, err
			}
			if local != nil {
				merged := make(map[string]string, len(territories)+len(local))
				for code, name := range territories {
					merged[code] = name
				}
				for code, name := range local {
					merged[code] = name
				}
				territories = merged
			}
		}
		return collapse.Qualify(entries, refNames, territories), nil
	}

	return nil, fmt.Errorf("unknown policy %q", policy)
}

// ---------------------------------------------------------------------------
// update (CLDR release check + regenerate)
// ---------------------------------------------------------------------------

func newUpdateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for a new CLDR release, bump the config, regenerate",
		Long: `Check unicode-org/cldr-json for a newer release than the one pinned
in .langgen.yaml. When one exists, bump the config and regenerate all
outputs. With --check-only, report without touching anything.

When $GITHUB_OUTPUT is set (GitHub Actions), previous_release,
latest_release, and updated are appended to it.`,
		Run: func(cmd *cobra.Command, args []string) {
			runWithInterrupt(func(ctx context.Context) error {
				return runUpdate(ctx, checkOnly)
			})
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "Report the latest release without updating")

	return cmd
}

func runUpdate(ctx context.Context, checkOnly bool) error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	client := &release.Client{}
	latest, err := client.Latest(ctx)
	if err != nil {
		return err
	}

	newer, err := release.IsNewer(cfg.Release, latest)
	if err != nil {
		return err
	}

	if !newer {
		logInfo(i18n.T("CLDR %s is already the latest release"), cfg.Release)
		return writeUpdateOutputs(cfg.Release, latest, false)
	}

	logInfo(i18n.T("New CLDR release %s available (current: %s)"), latest, cfg.Release)
	if checkOnly {
		return writeUpdateOutputs(cfg.Release, latest, false)
	}

	previous := cfg.Release
	cfg.Release = latest
	if err := cfg.Save(); err != nil {
		return err
	}

	if err := runGenerate(ctx, generateArgs{}); err != nil {
		return err
	}
	if err := writeUpdateOutputs(previous, latest, true); err != nil {
		return err
	}

	logSuccess("Updated CLDR %s -> %s", previous, latest)
	return nil
}

func writeUpdateOutputs(previous, latest string, updated bool) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}
	return release.WriteGitHubOutput(path, []release.Output{
		{Key: "previous_release", Value: previous},
		{Key: "latest_release", Value: latest},
		{Key: "updated", Value: fmt.Sprintf("%t", updated)},
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// runWithInterrupt runs fn with a context cancelled on SIGINT.
func runWithInterrupt(fn func(ctx context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logWarning("Interrupted, stopping...")
		cancel()
	}()

	if err := fn(ctx); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// progressBar renders a colored fixed-width bar for a 0-100 percentage.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	color := colorGreen
	if percent < 50 {
		color = colorRed
	} else if percent < 100 {
		color = colorYellow
	}

	filled := percent * width / 100
	return fmt.Sprintf("%s%s%s%s %3d%%",
		color,
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		colorReset,
		percent)
}

// downloadProgress redraws a progress bar on stderr as bytes arrive.
func downloadProgress() func(done, total int64) {
	last := -1
	return func(done, total int64) {
		if total <= 0 {
			return
		}
		percent := int(done * 100 / total)
		if percent == last {
			return
		}
		last = percent
		fmt.Fprintf(os.Stderr, "\r  %s", progressBar(percent, 30))
	}
}
