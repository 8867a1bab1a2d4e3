package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// runWith returns a context whose streams write to the returned buffers.
func runWith(ctx context.Context, stdin string) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	var out, errs bytes.Buffer

	return WithStreams(ctx, Streams{In: strings.NewReader(stdin), Out: &out, Err: &errs}), &out, &errs
}

func TestEval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		eval     Eval
		stdin    string
		want     []string
		wantErrs []string
		wantErr  bool
	}{
		{
			name: "arguments",
			eval: Eval{Output: output{Format: "text"}, Exprs: []string{"1 + 2", `"a" + 1`}},
			want: []string{"3\n", `"a1"` + "\n"},
		},
		{
			name: "variables",
			eval: Eval{
				Output: output{Format: "text"},
				Var:    map[string]string{"gold": "12", "name": "Mae"},
				Exprs:  []string{`$name + ": " + round($gold / 5)`},
			},
			want: []string{`"Mae: 2"`},
		},
		{
			name:  "stdin lines",
			eval:  Eval{Output: output{Format: "text"}},
			stdin: "1 < 2\n\n  \ndice(0)\r\n",
			want:  []string{"true\n0\n"},
		},
		{
			name:     "error snippet",
			eval:     Eval{Output: output{Format: "text"}, Exprs: []string{"1 + $x", "2"}},
			want:     []string{"2\n"},
			wantErrs: []string{"VariableNotDeclared", "  1 | 1 + $x\n", "^"},
			wantErr:  true,
		},
		{
			name: "json",
			eval: Eval{Output: output{Format: "json"}, Exprs: []string{"1 == 1"}},
			want: []string{`"value":true`, `"type":"BOOL"`, `"tree":"(1 == 1)"`},
		},
		{
			name: "json infinity",
			eval: Eval{Output: output{Format: "json"}, Exprs: []string{"1 / 0", "2"}},
			want: []string{`"value":"+Inf"`, `"value":2`},
		},
		{
			name:    "yaml error",
			eval:    Eval{Output: output{Format: "yaml", Indent: 2}, Exprs: []string{"1 +"}},
			want:    []string{"source:", "error:", "UnexpectedToken"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, out, errs := runWith(t.Context(), tt.stdin)

			err := tt.eval.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrEvaluate) {
				t.Errorf("Run() error = %v, want ErrEvaluate", err)
			}

			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("stdout missing %q:\n%s", w, out.String())
				}
			}

			for _, w := range tt.wantErrs {
				if !strings.Contains(errs.String(), w) {
					t.Errorf("stderr missing %q:\n%s", w, errs.String())
				}
			}
		})
	}
}

func TestEval_Environment(t *testing.T) {
	t.Parallel()

	paths := writeFiles(t, t.TempDir(), map[string]string{
		"env.yaml": "variables: {gold: 7}\nfunctions: {double: \"args[0] * 2\"}\n",
	})

	ctx, out, _ := runWith(WithEnvironment(t.Context(), []string{paths["env.yaml"]}), "")

	e := Eval{Output: output{Format: "text"}, Exprs: []string{"double($gold)"}}
	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if out.String() != "14\n" {
		t.Errorf("output = %q, want %q", out.String(), "14\n")
	}
}
