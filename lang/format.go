package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/yarnspin/lang/token"
)

// TokenRecord is the serializable form of a [token.Token].
type TokenRecord struct {
	Type   string `json:"type"   yaml:"type"`
	Text   string `json:"text"   yaml:"text"`
	Line   int    `json:"line"   yaml:"line"`
	Col    int    `json:"col"    yaml:"col"`
	Offset int    `json:"offset" yaml:"offset"`
	Length int    `json:"length" yaml:"length"`
}

// TokenRecords converts every token in s.
func TokenRecords(s *token.Stream) []TokenRecord {
	out := make([]TokenRecord, 0, s.Len())

	for _, t := range s.All() {
		out = append(out, TokenRecord{
			Type:   t.Type.String(),
			Text:   t.Text(),
			Line:   t.Line,
			Col:    t.Col,
			Offset: t.Offset,
			Length: t.Length,
		})
	}

	return out
}

// Result is the serializable outcome of evaluating one expression.
type Result struct {
	Source string `json:"source"          yaml:"source"`
	Tree   string `json:"tree,omitempty"  yaml:"tree,omitempty"`
	Type   string `json:"type"            yaml:"type"`
	Value  Value  `json:"value"           yaml:"value"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewResult builds a Result from an evaluation.
func NewResult(source string, e *Expression, v Value, err error) Result {
	r := Result{Source: source, Type: v.Type().String(), Value: v}
	if e != nil {
		r.Tree = e.String()
	}

	if err != nil {
		r.Error = err.Error()
	}

	return r
}

func (r Result) String() string {
	if r.Error != "" {
		return r.Error
	}

	return r.Value.Quote()
}

// FormatTokens writes one aligned line per token: position, type, text.
func FormatTokens(_ context.Context, w io.Writer, s *token.Stream) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, t := range s.All() {
		_, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i, t.Position, t.Type, strconv.Quote(t.Text()))
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

// FormatJSON writes v as JSON to the writer. HTML characters are not
// escaped, so operators such as << and -> print literally.
func FormatJSON(_ context.Context, w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(v)
}

// FormatYAML writes v as YAML to the writer.
func FormatYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
