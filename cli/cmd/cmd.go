package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"

	"github.com/ardnew/yarnspin/log"
	"github.com/ardnew/yarnspin/pkg"
)

type (
	contextKey     struct{}
	streamsKey     struct{}
	sourcesKey     struct{}
	environmentKey struct{}
)

// WithContext returns a copy of ctx carrying ktx.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// Streams are the standard streams used by commands. Nil fields default to
// the process streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams returns a copy of ctx carrying s.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// source is one loaded script.
type source struct {
	name string
	text string
}

type sources struct {
	names []string
	dirs  []string
}

// WithSources returns a copy of ctx naming the script sources given on the
// command line. Relative names resolve against dirs and the search path.
func WithSources(ctx context.Context, names, dirs []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, sources{names: names, dirs: dirs})
}

// searchDirsFrom returns the extra search directories stored by
// [WithSources].
func searchDirsFrom(ctx context.Context) []string {
	s, _ := ctx.Value(sourcesKey{}).(sources)

	return s.dirs
}

// fileKey identifies a file by device and inode, so one file named through
// a symlink, a relative path or an absolute path is loaded once.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// sourcesFrom loads the sources stored by [WithSources], plus any extra
// names. Duplicate files are loaded once. Standard input, named by
// [pkg.Stdin], is read last. With no names at all, standard input is the
// only source.
func sourcesFrom(ctx context.Context, extra ...string) ([]source, error) {
	s, _ := ctx.Value(sourcesKey{}).(sources)

	names := append(append([]string{}, s.names...), extra...)
	if len(names) == 0 {
		names = []string{pkg.Stdin}
	}

	var (
		out      []source
		hasStdin bool
		seen     = make(map[fileKey]struct{})
	)

	for _, name := range names {
		if name == pkg.Stdin {
			hasStdin = true

			continue
		}

		path, err := pkg.Resolve(name, s.dirs...)
		if err != nil {
			return nil, ErrReadSource.Wrap(err).With(slog.String("source", name))
		}

		src, ok, err := readUnique(path, seen)
		if err != nil {
			return nil, ErrReadSource.Wrap(err).With(slog.String("source", path))
		}

		if !ok {
			log.DebugContext(ctx, "skipping duplicate source", slog.String("source", path))

			continue
		}

		out = append(out, src)
	}

	if hasStdin {
		text, err := readAll(streamsFrom(ctx).In)
		if err != nil {
			return nil, ErrReadSource.Wrap(err).With(slog.String("source", pkg.Stdin))
		}

		out = append(out, source{name: pkg.Stdin, text: text})
	}

	return out, nil
}

// readUnique reads path unless a file with the same identity is in seen.
func readUnique(path string, seen map[fileKey]struct{}) (source, bool, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return source{}, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return source{}, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, dup := seen[key]; dup {
			return source{}, false, nil
		}

		seen[key] = struct{}{}
	}

	f, err := os.Open(resolved)
	if err != nil {
		return source{}, false, err
	}
	defer f.Close()

	text, err := readAll(f)
	if err != nil {
		return source{}, false, err
	}

	return source{name: path, text: text}, true, nil
}

func readAll(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	b, err := io.ReadAll(ra)

	return string(b), err
}
