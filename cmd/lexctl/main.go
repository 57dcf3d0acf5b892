// Command lexctl searches and inspects local legal documents without a server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/lexsearch/internal/version"
)

func main() {
	if err := rootCMD().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCMD() *cobra.Command {
	var root = &cobra.Command{
		Use:          "lexctl",
		Short:        "Search legal documents and extract their metadata",
		Version:      version.String(),
		SilenceUsage: true,
	}

	root.AddCommand(searchCMD(), extractCMD(), chunkCMD())
	return root
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
