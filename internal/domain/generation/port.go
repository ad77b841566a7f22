package generation

import "context"

// Gateway port (interface untuk inference server)
type Gateway interface {
	// Generate sends a single synchronous generation request and returns the
	// raw response text. See errors.go for the failure taxonomy.
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// Probe reports whether the inference server is reachable. It never
	// returns an error; any failure collapses to false.
	Probe(ctx context.Context) bool

	// ListModels fetches the model catalog, best-effort: on failure it logs
	// and returns an empty slice.
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// ArchiveStore port (interface untuk penyimpanan generated text)
type ArchiveStore interface {
	Archive(ctx context.Context, key string, content string) (string, error)
}
