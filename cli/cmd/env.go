package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/builtin"
	"github.com/ardnew/yarnspin/log"
	"github.com/ardnew/yarnspin/pkg"
)

// Environment is everything an expression is compiled and evaluated with.
type Environment struct {
	Variables lang.Variables
	Functions lang.Functions
	MaxDepth  int
}

// envFile is the YAML layout of an environment file:
//
//	variables:
//	  gold: 12
//	  name: Mae
//	functions:
//	  max: "args[0] > args[1] ? args[0] : args[1]"
//	max_depth: 32
type envFile struct {
	Variables map[string]any    `yaml:"variables"`
	Functions map[string]string `yaml:"functions"`
	MaxDepth  *int              `yaml:"max_depth"`
}

// NewEnvironment returns an environment holding only the builtin functions.
func NewEnvironment() *Environment {
	return &Environment{
		Variables: lang.Variables{},
		Functions: builtin.Functions(),
		MaxDepth:  lang.DefaultMaxDepth,
	}
}

// LoadEnvironment reads each environment file in order on top of
// [NewEnvironment]. Later files override earlier ones.
func LoadEnvironment(ctx context.Context, paths ...string) (*Environment, error) {
	env := NewEnvironment()

	for _, path := range paths {
		if err := env.load(ctx, path); err != nil {
			return nil, ErrLoadEnvironment.Wrap(err).With(slog.String("file", path))
		}
	}

	return env, nil
}

func (env *Environment) load(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var f envFile
	if err := yaml.UnmarshalContext(ctx, data, &f, yaml.Strict()); err != nil {
		return err
	}

	for name, raw := range f.Variables {
		v, ok := lang.ValueOf(raw)
		if !ok || !v.Valid() {
			return ErrInvalidVariable.With(
				slog.String("name", name),
				slog.Any("value", raw),
			)
		}

		env.Variables[name] = v
	}

	funcs, err := builtin.Exprs(f.Functions)
	if err != nil {
		return err
	}

	env.Functions = env.Functions.Merge(funcs)

	if f.MaxDepth != nil {
		env.MaxDepth = *f.MaxDepth
	}

	log.DebugContext(ctx, "loaded environment",
		slog.String("file", path),
		slog.Int("variables", len(f.Variables)),
		slog.Int("functions", len(f.Functions)),
	)

	return nil
}

// Set assigns name the value guessed from text by [lang.ParseValue].
func (env *Environment) Set(name, text string) {
	env.Variables[name] = lang.ParseValue(text)
}

// Options returns the compile options for env.
func (env *Environment) Options() []lang.Option {
	return []lang.Option{
		lang.WithMaxDepth(env.MaxDepth),
		lang.WithLogger(log.Default()),
	}
}

// WithEnvironment returns a copy of ctx naming the environment files given
// on the command line.
func WithEnvironment(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, environmentKey{}, paths)
}

// environmentFrom loads the environment files stored by [WithEnvironment].
// Relative names resolve against the search path.
func environmentFrom(ctx context.Context) (*Environment, error) {
	names, _ := ctx.Value(environmentKey{}).([]string)

	paths := make([]string, 0, len(names))

	for _, name := range names {
		path, err := pkg.Resolve(name, searchDirsFrom(ctx)...)
		if err != nil {
			return nil, ErrLoadEnvironment.Wrap(err).With(slog.String("file", name))
		}

		paths = append(paths, path)
	}

	return LoadEnvironment(ctx, paths...)
}

// Evaluate compiles source, through the compile cache, and evaluates it.
// The returned error is the compile or evaluation error, if any.
func (env *Environment) Evaluate(ctx context.Context, source string) (lang.Result, error) {
	e, err := lang.CompileCached(ctx, source, env.Options()...)

	var v lang.Value
	if err == nil {
		v, err = e.Evaluate(ctx, env.Variables, env.Functions)
	}

	return lang.NewResult(source, e, v, err), err
}
