package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lexsearch "github.com/kailas-cloud/lexsearch/pkg/sdk"
)

func extractCMD() *cobra.Command {
	var docType string
	var extract = &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the legal metadata of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readFile(args[0])
			if err != nil {
				return err
			}
			client, err := lexsearch.New()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), client.Extract(content, docType))
		},
	}
	extract.Flags().StringVar(&docType, "type", "", "document type used when none is detected")

	return extract
}

func chunkCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "chunk <file>",
		Short: "Print the section-labelled paragraphs of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readFile(args[0])
			if err != nil {
				return err
			}
			client, err := lexsearch.New()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), client.Chunk(content))
		},
	}
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
