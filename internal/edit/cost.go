package edit

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode"
)

// Operation is a single edit step.
type Operation uint8

const (
	Substitute Operation = iota
	Delete
	Insert
)

func (o Operation) String() string {
	switch o {
	case Substitute:
		return "substitute"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return fmt.Sprintf("Operation(%d)", uint8(o))
	}
}

// Cost prices one edit. For Delete only a is meaningful and for Insert only
// b; the absent side is the zero value of T. Costs must be non-negative;
// math.Inf(1) forbids the move.
type Cost[T any] func(a, b T, op Operation) float64

// DefaultSpacePenalty is the Procrustes cost of inserting or deleting a
// whitespace character.
const DefaultSpacePenalty = 0.5

// Procrustes is the cost model used for projection. Whitespace may only be
// matched against whitespace (any two whitespace characters match for free),
// and inserting or deleting whitespace costs
// spacePenalty instead of 1, so re-segmenting at word boundaries is cheaper
// than editing inside a word.
func Procrustes(spacePenalty float64) Cost[rune] {
	return func(a, b rune, op Operation) float64 {
		switch op {
		case Insert:
			if unicode.IsSpace(b) {
				return spacePenalty
			}
			return 1
		case Delete:
			if unicode.IsSpace(a) {
				return spacePenalty
			}
			return 1
		default:
			spaceA, spaceB := unicode.IsSpace(a), unicode.IsSpace(b)
			switch {
			case a == b, spaceA && spaceB:
				return 0
			case spaceA || spaceB:
				return math.Inf(1)
			default:
				return 1
			}
		}
	}
}

// Levenshtein charges 1 for every edit except an exact match.
func Levenshtein[T comparable]() Cost[T] {
	return func(a, b T, op Operation) float64 {
		if op == Substitute && a == b {
			return 0
		}
		return 1
	}
}

// LCS charges 2 for a substitution of unequal elements, so the cheapest path
// only ever matches, inserts and deletes.
func LCS[T comparable]() Cost[T] {
	return func(a, b T, op Operation) float64 {
		if op != Substitute {
			return 1
		}
		if a == b {
			return 0
		}
		return 2
	}
}

// Dual prices the substitution of two tokens by their Levenshtein distance
// over runes, normalized by the longer token. Insertions and deletions cost 1.
func Dual() Cost[string] {
	inner := Levenshtein[rune]()
	return func(a, b string, op Operation) float64 {
		if op != Substitute {
			return 1
		}
		if a == b {
			return 0
		}
		ra, rb := []rune(a), []rune(b)
		// Levenshtein never forbids a move, so Distance cannot fail here.
		d, _ := Distance(ra, rb, inner)
		return d / float64(max(len(ra), len(rb)))
	}
}

// Logged wraps cost and logs every priced move at debug level.
func Logged[T any](cost Cost[T], logger *slog.Logger) Cost[T] {
	return func(a, b T, op Operation) float64 {
		c := cost(a, b, op)
		switch op {
		case Insert:
			logger.Debug("edit move", slog.String("op", op.String()), slog.String("add", describe(b)), slog.Float64("cost", c))
		case Delete:
			logger.Debug("edit move", slog.String("op", op.String()), slog.String("remove", describe(a)), slog.Float64("cost", c))
		default:
			logger.Debug("edit move",
				slog.String("op", op.String()),
				slog.String("from", describe(a)),
				slog.String("to", describe(b)),
				slog.Float64("cost", c),
			)
		}
		return c
	}
}

func describe(v any) string {
	if r, ok := v.(rune); ok {
		return string(r)
	}
	return fmt.Sprint(v)
}

// Cost function names accepted by LookupCost.
const (
	CostProcrustes  = "procrustes-levenshtein"
	CostLevenshtein = "levenshtein"
	CostLCS         = "lcs"
	CostDual        = "dual"
	CostDebug       = "debug"
)

// CostNames lists the canonical cost function names.
func CostNames() []string {
	return []string{CostDebug, CostDual, CostLCS, CostLevenshtein, CostProcrustes}
}

// LookupCost resolves a cost function name to a character cost model.
// spacePenalty only affects the Procrustes policy.
func LookupCost(name string, spacePenalty float64) (Cost[rune], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CostProcrustes, "procrustes", "":
		return Procrustes(spacePenalty), nil
	case CostLevenshtein:
		return Levenshtein[rune](), nil
	case CostLCS:
		return LCS[rune](), nil
	case CostDual:
		dual := Dual()
		return func(a, b rune, op Operation) float64 {
			return dual(string(a), string(b), op)
		}, nil
	case CostDebug:
		return Logged(Levenshtein[rune](), slog.Default()), nil
	default:
		return nil, fmt.Errorf("cost function %q (expected %s): %w",
			name, strings.Join(CostNames(), "|"), errors.ErrUnsupported)
	}
}
