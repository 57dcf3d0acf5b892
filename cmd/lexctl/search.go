package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	lexsearch "github.com/kailas-cloud/lexsearch/pkg/sdk"
)

const defaultModel = "text-embedding-3-small"

func searchCMD() *cobra.Command {
	var (
		query       string
		searchMode  string
		model       string
		baseURL     string
		concurrency int
		abort       bool
		timeout     time.Duration
	)
	var search = &cobra.Command{
		Use:   "search --query <text> [--mode exact|fuzzy|ai] <file>...",
		Short: "Search files; each file is one document named after its base name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDocuments(args)
			if err != nil {
				return err
			}

			opts := []lexsearch.Option{
				lexsearch.WithMaxConcurrency(concurrency),
				lexsearch.WithTimeout(timeout),
			}
			if abort {
				opts = append(opts, lexsearch.WithFailurePolicy(lexsearch.FailureAbort))
			}
			if key := os.Getenv("OPENAI_API_KEY"); key != "" {
				opts = append(opts, lexsearch.WithOpenAI(key, baseURL, model))
			}

			client, err := lexsearch.New(opts...)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			resp, err := client.Search(ctx, query, lexsearch.Mode(searchMode), docs)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	search.Flags().StringVarP(&query, "query", "q", "", "search query")
	search.Flags().StringVarP(&searchMode, "mode", "m", string(lexsearch.ModeExact), "search mode: exact, fuzzy or ai")
	search.Flags().StringVar(&model, "model", getenv("LEXSEARCH_EMBEDDING_MODEL", defaultModel), "embedding model")
	search.Flags().StringVar(&baseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI-compatible API base URL")
	search.Flags().IntVar(&concurrency, "concurrency", 0, "documents ranked at once (0 = default)")
	search.Flags().BoolVar(&abort, "abort", false, "fail the search when any document fails to embed")
	search.Flags().DurationVar(&timeout, "timeout", 0, "semantic search timeout (0 = none)")
	_ = search.MarkFlagRequired("query")

	return search
}

// readDocuments loads each path as a document identified by its base name.
func readDocuments(paths []string) ([]lexsearch.Document, error) {
	docs := make([]lexsearch.Document, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat document: %w", err)
		}
		doc := lexsearch.Text(filepath.Base(p), string(b))
		doc.UploadedAt = info.ModTime().UTC().Format(time.RFC3339)
		docs = append(docs, doc)
	}
	return docs, nil
}
