package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/redline-labs/redline-cli/internal/adapters/driving/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review <bundle.html>",
	Short: "Open a review bundle in the interactive terminal UI",
	Long: `Open an exported review bundle in the interactive terminal UI.

The left pane shows the document with similarity highlights; the right
margin shows comment cards laid out next to their anchors. The bundle
file is watched for changes, so highlights injected after the initial
export appear without restarting.

Controls:
  tab       - Cycle sources / review / comments
  ↑/k, ↓/j  - Navigate
  x         - Include/exclude a source
  a         - Place a point annotation
  c         - Comment
  ?         - Help
  q         - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	// Panic recovery keeps a stack trace visible after the alt screen
	// is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	bundlePath, err := bundleArg(args)
	if err != nil {
		return err
	}

	stack, err := buildStack(bundlePath)
	if err != nil {
		return err
	}
	defer stack.reconciler.Close()

	app, err := tui.NewApp(&tui.Ports{
		Session:   stack.session,
		Placement: stack.placer,
		Layout:    stack.reconciler,
		Geometry:  stack.geometry,
		Source:    stack.source,
		Oracle:    stack.oracle,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
