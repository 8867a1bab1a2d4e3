package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores compiled expressions by [cacheKey].
var globalCache sync.Map

// cacheKey identifies a compilation. The hash spreads keys across the map;
// source and opts make equal keys imply equal inputs.
type cacheKey struct {
	hash   uint64
	source string
	opts   optionsKey
}

// entry compiles its source exactly once.
type entry struct {
	once sync.Once
	expr *Expression
	err  error
}

// makeCacheKey hashes the gob encoding of opts followed by source with xxh3.
func makeCacheKey(source string, opts optionsKey) cacheKey {
	var buf bytes.Buffer

	_ = gob.NewEncoder(&buf).Encode(opts.maxDepth)
	buf.WriteString(source)

	return cacheKey{hash: xxh3.Hash(buf.Bytes()), source: source, opts: opts}
}

// CompileReader reads all of r and compiles it.
func CompileReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Expression, error) {
	// Wrap reader with async read-ahead so reads overlap with buffering.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return CompileCached(ctx, string(data), opts...)
}

// CompileCached is [Compile] with memoization. Compiled trees are immutable,
// so every caller with the same source and options shares one tree. The
// returned Expression uses the caller's logger.
func CompileCached(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Expression, error) {
	var tmp Expression

	applyDefaults(&tmp)
	applyOptions(&tmp, opts...)

	key := makeCacheKey(source, tmp.opts)

	value, hit := globalCache.LoadOrStore(key, new(entry))

	cached, ok := value.(*entry)
	if !ok {
		return nil, ErrReadInput.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	tmp.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", strconv.FormatUint(key.hash, 16)),
		slog.Bool("cache_hit", hit),
	)

	cached.once.Do(func() {
		cached.expr, cached.err = Compile(ctx, source, opts...)
	})

	if cached.err != nil {
		return nil, cached.err
	}

	e := *cached.expr
	e.logger = tmp.logger

	return &e, nil
}

// ClearCache removes all cached expressions.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Range(func(key, _ any) bool {
		globalCache.Delete(key)

		return true
	})
}
