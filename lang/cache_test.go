package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestCompileCached(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	a, err := CompileCached(t.Context(), "1 + $n")
	if err != nil {
		t.Fatal(err)
	}

	b, err := CompileCached(t.Context(), "1 + $n")
	if err != nil {
		t.Fatal(err)
	}

	if a == b {
		t.Error("callers should receive distinct Expression values")
	}

	if a.Root() != b.Root() {
		t.Error("cached tree was not shared")
	}

	c, err := CompileCached(t.Context(), "1 + $n", WithMaxDepth(2))
	if err != nil {
		t.Fatal(err)
	}

	if c.Root() == a.Root() {
		t.Error("different options should not share a tree")
	}
}

func TestCompileCached_Error(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	for range 2 {
		if _, err := CompileCached(t.Context(), `"open`); !errors.Is(err, ErrEOL) {
			t.Fatalf("error = %v, want EOL", err)
		}
	}
}

func TestCompileReader(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	expr, err := CompileReader(t.Context(), strings.NewReader("2 * 21\n"))
	if err != nil {
		t.Fatal(err)
	}

	v, err := expr.Evaluate(t.Context(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if n, _ := v.Num(); n != 42 {
		t.Errorf("result = %v", v.Quote())
	}
}

func BenchmarkCompileCached(b *testing.B) {
	ClearCache()

	for b.Loop() {
		_, _ = CompileCached(b.Context(), `"Gold: " + round($gold * 1.5)`)
	}
}

func TestCompileCached_HashCollision(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	key := makeCacheKey("2 + 2", optionsKey{maxDepth: DefaultMaxDepth})

	other, err := Compile(t.Context(), "1")
	if err != nil {
		t.Fatal(err)
	}

	// An entry whose hash matches but whose input differs.
	stale := &entry{expr: other}
	stale.once.Do(func() {})
	globalCache.Store(cacheKey{hash: key.hash, source: "1", opts: key.opts}, stale)

	expr, err := CompileCached(t.Context(), "2 + 2")
	if err != nil {
		t.Fatal(err)
	}

	v, err := expr.Evaluate(t.Context(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if n, _ := v.Num(); n != 4 {
		t.Errorf("result = %s, want 4", v.Quote())
	}
}
