// Package mock provides deterministic ai.Embedder implementations.
//
// MockEmbedder serves two purposes: as a test double with injectable behavior
// and call counting, and as the offline "hash" embedding provider, which
// feature-hashes word tokens into a unit vector. The hash provider needs no
// network access, so the CLI can rank a sheet without a running model server.
//
// # Usage in Tests
//
//	embedder := mock.NewMockEmbedder()
//	vec, err := embedder.EmbedText(ctx, "backend engineer")
//
//	// Custom behavior injection
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("model unavailable")
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
package mock
