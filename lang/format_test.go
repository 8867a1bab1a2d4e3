package lang_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/lexer"
)

func TestTokenRecords(t *testing.T) {
	t.Parallel()

	got := lang.TokenRecords(lexer.Tokenize("$a==1"))
	want := []lang.TokenRecord{
		{Type: "start-line"},
		{Type: "$", Text: "$", Length: 1},
		{Type: "word", Text: "a", Col: 1, Offset: 1, Length: 1},
		{Type: "==", Text: "==", Col: 2, Offset: 2, Length: 2},
		{Type: "word", Text: "1", Col: 4, Offset: 4, Length: 1},
		{Type: "end-line", Col: 5, Offset: 5},
		{Type: "eof", Line: 1, Offset: 5},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TokenRecords() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	expr, err := lang.Compile(t.Context(), `"a" + 1`)
	if err != nil {
		t.Fatal(err)
	}

	v, err := expr.Evaluate(t.Context(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := lang.NewResult(`"a" + 1`, expr, v, nil)

	tests := []struct {
		name  string
		write func(*bytes.Buffer) error
		want  []string
	}{
		{
			name: "json",
			write: func(b *bytes.Buffer) error {
				return lang.FormatJSON(t.Context(), b, res, 0)
			},
			want: []string{`"value":"a1"`, `"type":"STRING"`, `"tree":"(\"a\" + 1)"`},
		},
		{
			name: "yaml",
			write: func(b *bytes.Buffer) error {
				return lang.FormatYAML(t.Context(), b, res, 2)
			},
			want: []string{"value: a1", "type: STRING"},
		},
		{
			name: "tokens",
			write: func(b *bytes.Buffer) error {
				return lang.FormatTokens(t.Context(), b, expr.Tokens())
			},
			want: []string{"0:0", "start-line", `"a"`, "eof"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.write(&buf); err != nil {
				t.Fatal(err)
			}

			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}

	if res.String() != `"a1"` {
		t.Errorf("Result.String() = %s", res.String())
	}
}

func TestFormatJSON_NonFinite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   string
	}{
		{"1 / 0", `"value":"+Inf"`},
		{"-1 / 0", `"value":"-Inf"`},
		{"0 / 0", `"value":"NaN"`},
	}

	results := make([]lang.Result, 0, len(tests))

	for _, tt := range tests {
		expr, err := lang.Compile(t.Context(), tt.source)
		if err != nil {
			t.Fatal(err)
		}

		v, err := expr.Evaluate(t.Context(), nil, nil)
		if err != nil {
			t.Fatalf("%s error = %v", tt.source, err)
		}

		results = append(results, lang.NewResult(tt.source, expr, v, nil))
	}

	var buf bytes.Buffer
	if err := lang.FormatJSON(t.Context(), &buf, results, 0); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	for _, tt := range tests {
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("output missing %q:\n%s", tt.want, buf.String())
		}
	}
}

func TestFormatJSON_NoEscape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	recs := lang.TokenRecords(lexer.Tokenize("<<a -> b>>"))
	if err := lang.FormatJSON(t.Context(), &buf, recs, 0); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{`"type":"<<"`, `"type":"->"`, `"type":">>"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}

	if strings.Contains(buf.String(), `\u003c`) {
		t.Errorf("output escapes HTML characters:\n%s", buf.String())
	}
}
