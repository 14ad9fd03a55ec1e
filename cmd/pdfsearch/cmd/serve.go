package cmd

import (
	"github.com/spf13/cobra"

	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/extract"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/mcp"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/search"
)

func newServeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tolerant document search over MCP (stdio)",
		Long: `Serve the loaded document's text over the Model Context Protocol.

AI clients get two tools: search_text (first occurrence per page) and
search_all_text (every occurrence), both returning exact fragment
sub-ranges suitable for highlighting and citation.

stdout carries JSON-RPC exclusively; diagnostics go to the log file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := extract.Load(file)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(search.NewEngine(), doc)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Document to serve: text content JSON export or plain text (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
