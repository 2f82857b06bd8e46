// Package cli provides the cobra command tree for redline.
// It is a driving adapter: commands wire the core services together
// and hand control to the TUI or the MCP server.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/redline-labs/redline-cli/internal/adapters/driven/config/file"
	"github.com/redline-labs/redline-cli/internal/adapters/driven/docsource/html"
	"github.com/redline-labs/redline-cli/internal/adapters/driven/layout/text"
	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/services"
	"github.com/redline-labs/redline-cli/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// verbose enables debug logging.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "Terminal document review",
	Long: `redline is a terminal tool for reviewing similarity-checked documents.

It loads an exported review bundle, lists matched sources, and lets a
reviewer navigate matches, manage the inclusion set, and annotate the
document with comments and point markers. An MCP server exposes the
same session to AI assistants.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// reviewStack bundles the core services wired for one review session.
type reviewStack struct {
	session    *services.Session
	placer     *services.Placer
	reconciler *services.Reconciler
	geometry   *services.Geometry
	assistant  *services.AssistantDispatcher
	source     *html.Source
	oracle     *text.Oracle
	settings   *domain.AppSettings
}

// buildStack loads settings and the bundle and wires the core services.
func buildStack(bundlePath string) (*reviewStack, error) {
	settings := loadSettings()

	source, err := html.NewSource(bundlePath)
	if err != nil {
		return nil, err
	}

	session := services.NewSession(nil, settings)
	oracle := text.NewOracle()
	reconciler := services.NewReconciler(session, oracle, &settings.Margin)

	return &reviewStack{
		session:    session,
		placer:     services.NewPlacer(session),
		reconciler: reconciler,
		geometry:   services.NewGeometry(session, reconciler, oracle),
		assistant:  services.NewAssistantDispatcher(session, &settings.Assistant),
		source:     source,
		oracle:     oracle,
		settings:   settings,
	}, nil
}

// loadSettings reads the config file, falling back to defaults when it
// is absent or unreadable.
func loadSettings() *domain.AppSettings {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		logger.Warn("Config unavailable, using defaults: %v", err)
		return domain.DefaultAppSettings()
	}
	return services.NewSettingsService(store).Get()
}

func bundleArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one bundle path argument")
	}
	return args[0], nil
}
