package lang

type state uint8

const (
	stateFailed state = iota
	stateParsed
	stateErrored
)

// Outcome is the result of attempting one grammar rule at a token offset.
//
// A Parsed outcome carries the node and the offset of the first token after
// it. A Failed outcome means the rule does not apply at that offset and an
// alternative may be tried. An errored outcome means the rule matched but
// the input is malformed; it must be propagated without further attempts.
type Outcome struct {
	node  Node
	err   error
	next  int
	state state
}

var failed = Outcome{}

func parsedAt(node Node, next int) Outcome {
	return Outcome{node: node, next: next, state: stateParsed}
}

func errored(err *Error) Outcome {
	return Outcome{err: err, state: stateErrored}
}

// Parsed reports whether the rule produced a node.
func (o Outcome) Parsed() bool { return o.state == stateParsed }

// Failed reports whether the rule did not apply.
func (o Outcome) Failed() bool { return o.state == stateFailed }

// Err returns the error of an errored outcome, or nil.
func (o Outcome) Err() error { return o.err }

// Node returns the parsed node, or nil.
func (o Outcome) Node() Node { return o.node }

// Next returns the offset of the first token after the parsed node.
func (o Outcome) Next() int { return o.next }
