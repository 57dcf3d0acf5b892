// Package lexsearch is an in-process client for searching legal documents
// and extracting their metadata.
//
// Three search modes are supported:
//   - exact: case-insensitive substring match, no embeddings
//   - fuzzy and ai: embedding-based ranking by cosine similarity
//
// # Exact search
//
//	client, _ := lexsearch.New()
//	resp, _ := client.Search(ctx, "breach of contract", lexsearch.ModeExact, docs)
//
// # Semantic search
//
//	client, _ := lexsearch.New(
//	    lexsearch.WithOpenAI(os.Getenv("OPENAI_API_KEY"), "", "text-embedding-3-small"),
//	    lexsearch.WithMaxConcurrency(4),
//	)
//	resp, _ := client.Search(ctx, "negligent supervision", lexsearch.ModeAI, docs)
//	for _, r := range resp.Results {
//	    fmt.Println(r.ID, r.Relevance, r.Section)
//	}
//
// Metadata extraction and chunking are pure and need no embedder:
//
//	md := client.Extract(content, "")
//	chunks := client.Chunk(content)
package lexsearch
