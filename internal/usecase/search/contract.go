package search

import (
	"context"

	"github.com/kailas-cloud/iskwet/internal/domain/word"
)

// Repository defines the read contract of the dictionary store.
type Repository interface {
	Get(ctx context.Context, uuid string) (word.Word, error)
	SearchDefinitions(ctx context.Context, lang, def string) ([]word.Word, error)
}

// Recorder receives one observation per lookup. result is "hit", "miss" or "error";
// n is the number of words returned.
type Recorder interface {
	RecordLookup(op, result string, n int)
}
