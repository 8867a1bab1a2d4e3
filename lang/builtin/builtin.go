// Package builtin provides the native functions available to dialogue
// expressions: dice rolls, random numbers and rounding helpers.
package builtin

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/ardnew/yarnspin/lang"
	"github.com/ardnew/yarnspin/lang/token"
)

type config struct {
	rand source
}

// Option configures the registry returned by [Functions].
type Option func(*config)

// WithRand sets the random number generator used by dice, random and
// random_range. Calls are serialized, so r may be shared.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rand = &lockedRand{r: r}
		}
	}
}

type source interface {
	Float64() float64
}

// globalRand uses the top-level math/rand/v2 functions, which are safe for
// concurrent use.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.Float64()
}

// Functions returns a new registry holding every builtin function.
func Functions(opts ...Option) lang.Functions {
	c := config{rand: globalRand{}}
	for _, opt := range opts {
		opt(&c)
	}

	return lang.Functions{
		"dice":         dice(c.rand),
		"random":       random(c.rand),
		"random_range": randomRange(c.rand),
		"round":        unary(math.Round),
		"round_places": lang.FunctionFunc(roundPlaces),
		"floor":        unary(math.Floor),
		"ceil":         unary(math.Ceil),
		"inc":          unary(inc),
		"dec":          unary(dec),
		"decimal":      unary(decimal),
	}
}

// dice rolls a number in [0, sides], rounded to an integer.
func dice(r source) lang.Function {
	return lang.FunctionFunc(func(args []lang.Value, pos token.Position) (lang.Value, error) {
		sides, err := number(args, 0, pos)
		if err != nil {
			return lang.Value{}, err
		}

		return lang.NumberValue(math.Round(r.Float64() * sides)), nil
	})
}

// random returns a number in [0, 1).
func random(r source) lang.Function {
	return lang.FunctionFunc(func([]lang.Value, token.Position) (lang.Value, error) {
		return lang.NumberValue(r.Float64()), nil
	})
}

// randomRange returns a number between its two arguments.
func randomRange(r source) lang.Function {
	return lang.FunctionFunc(func(args []lang.Value, pos token.Position) (lang.Value, error) {
		lo, err := number(args, 0, pos)
		if err != nil {
			return lang.Value{}, err
		}

		hi, err := number(args, 1, pos)
		if err != nil {
			return lang.Value{}, err
		}

		return lang.NumberValue(lo + r.Float64()*(hi-lo)), nil
	})
}

func roundPlaces(args []lang.Value, pos token.Position) (lang.Value, error) {
	v, err := number(args, 0, pos)
	if err != nil {
		return lang.Value{}, err
	}

	places, err := number(args, 1, pos)
	if err != nil {
		return lang.Value{}, err
	}

	scale := math.Pow(10, math.Trunc(places))

	return lang.NumberValue(math.Round(v*scale) / scale), nil
}

// inc rounds a fractional number up, or adds one to a whole number.
func inc(v float64) float64 {
	if _, frac := math.Modf(v); frac != 0 {
		return math.Ceil(v)
	}

	return v + 1
}

// dec rounds a fractional number down, or subtracts one from a whole number.
func dec(v float64) float64 {
	if _, frac := math.Modf(v); frac != 0 {
		return math.Floor(v)
	}

	return v - 1
}

func decimal(v float64) float64 { return v - math.Floor(v) }
