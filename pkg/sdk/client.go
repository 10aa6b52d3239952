package iskwet

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/iskwet/internal/domain/word"
	"github.com/kailas-cloud/iskwet/internal/repository/dictionary"
	searchuc "github.com/kailas-cloud/iskwet/internal/usecase/search"
)

// Word is a dictionary entry.
type Word = word.Word

type searchUseCase interface {
	Get(ctx context.Context, uuid string) (word.Word, error)
	ByDefinition(ctx context.Context, lang, def string) ([]word.Word, error)
}

// Client answers lookups against an in-process dictionary snapshot.
type Client struct {
	store  *dictionary.Store
	search searchUseCase
	obs    *observer
}

// Open loads the dictionary file at path.
// Unreadable or malformed files are rejected; errors.Is(err, ErrInvalidDictionary) tells parse failures apart.
func Open(path string, opts ...Option) (*Client, error) {
	store, err := dictionary.Load(path)
	if err != nil {
		return nil, fmt.Errorf("iskwet: %w", err)
	}
	return newClient(store, opts)
}

// FromWords builds a client over words already in memory. The words are copied.
func FromWords(words []Word, opts ...Option) (*Client, error) {
	return newClient(dictionary.New(words), opts)
}

func newClient(store *dictionary.Store, opts []Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:  store,
		search: searchuc.New(store, nil),
		obs:    obs,
	}, nil
}

// Len returns the number of words in the dictionary.
func (c *Client) Len() int { return c.store.Len() }

// Words returns a copy of every word in dictionary order.
func (c *Client) Words() []Word { return c.store.Words() }

// Get returns the word with the given identifier, or ErrWordNotFound.
func (c *Client) Get(ctx context.Context, uuid string) (w Word, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opGet, start, err) }()

	w, err = c.search.Get(ctx, uuid)
	if err != nil {
		return Word{}, fmt.Errorf("get: %w", err)
	}
	return w, nil
}

// ByDefinition returns every word listing def among its definitions for lang, in dictionary order.
// Words without lang are skipped; no match yields an empty slice.
func (c *Client) ByDefinition(ctx context.Context, lang, def string) (ws []Word, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opByDefinition, start, err) }()

	ws, err = c.search.ByDefinition(ctx, lang, def)
	if err != nil {
		return nil, fmt.Errorf("by definition: %w", err)
	}
	return ws, nil
}
