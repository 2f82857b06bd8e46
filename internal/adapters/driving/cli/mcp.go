package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redline-labs/redline-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve <bundle.html>",
	Short: "Start the MCP server over a review bundle",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server loads the bundle into a review session and exposes tools to
add comments, navigate matches, and switch tabs, plus resources for the
document text, matched sources, and navigation state.

By default the server communicates over stdio using JSON-RPC. Use
--port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  redline mcp serve paper.html

  # HTTP mode (for MCP Inspector, remote access)
  redline mcp serve paper.html --port 8080`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	bundlePath, err := bundleArg(args)
	if err != nil {
		return err
	}

	stack, err := buildStack(bundlePath)
	if err != nil {
		return err
	}
	defer stack.reconciler.Close()

	bundle, err := stack.source.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading bundle: %w", err)
	}
	stack.session.SetBundle(bundle)

	server, err := mcp.NewServer(&mcp.Ports{
		Assistant: stack.assistant,
		Session:   stack.session,
		Source:    stack.source,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
