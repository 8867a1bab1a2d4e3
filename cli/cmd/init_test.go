package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create_new_config",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				Env []string `short:"e"`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse([]string{"-e", "world.yaml"})
			if err != nil {
				t.Fatal(err)
			}

			err = (&Init{Force: tt.force}).Run(WithContext(t.Context(), kctx))
			if tt.wantErr != nil {
				if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, tt.wantErr) {
					t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			want := map[string]any{"env": []any{"world.yaml"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestInitFlagValues tests which flags are written and how they are keyed.
func TestInitFlagValues(t *testing.T) {
	t.Parallel()

	var cli struct {
		Verbose  bool     `name:"verbose"`
		Output   string   `name:"output"`
		Empty    string   `name:"empty"`
		Count    int      `name:"count"`
		LogLevel string   `name:"log-level"`
		Dirs     []string `name:"dirs"`
		Secret   string   `hidden:""          name:"secret"`
		Pprof    string   `name:"pprof-mode"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse([]string{
		"--verbose", "--output=test.txt", "--count=5", "--log-level=debug",
		"--secret=x", "--pprof-mode=cpu",
	})
	if err != nil {
		t.Fatal(err)
	}

	got := map[string]any{}
	for _, item := range flagValues(kctx) {
		got[item.Key.(string)] = item.Value
	}

	want := map[string]any{
		"verbose":   true,
		"output":    "test.txt",
		"count":     5,
		"log_level": "debug",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flagValues() mismatch (-want +got):\n%s", diff)
	}
}

// TestInitWithInvalidPath tests init with an invalid file path.
func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	invalidPath := filepath.Join(t.TempDir(), "missing", "config.yaml")

	var cli struct{}

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: invalidPath})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := (&Init{}).Run(WithContext(t.Context(), kctx)); !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Init.Run() error = %v, want ErrWriteConfig", err)
	}
}
