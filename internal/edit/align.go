// Package edit computes minimum-cost edit alignments between two sequences.
//
// The engine is the Wagner–Fischer dynamic program: a cost table of
// (len(source)+1) × (len(target)+1) cells filled row by row, plus a parallel
// pointer table recording which edit produced each cell. Walking the pointers
// back from the goal cell yields the substitution steps, which form the
// Alignment handed to the representation projectors.
package edit

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoPath is returned when every path from the start cell to the goal
	// cell has infinite cost. It only happens with a cost model that forbids
	// a transition no path can avoid.
	ErrNoPath = errors.New("no finite-cost alignment path")

	// ErrInvalidCost is returned when a cost model prices a move below zero
	// or as NaN.
	ErrInvalidCost = errors.New("invalid edit cost")
)

// Pair links source index Source to target index Target.
type Pair struct {
	Source int
	Target int
}

// Alignment is an ordered list of pairs, strictly increasing in both
// coordinates. Only substitutions (including exact matches) contribute pairs.
type Alignment []Pair

// Lookup returns the target index aligned to source index i.
func (a Alignment) Lookup(i int) (int, bool) {
	lo, hi := 0, len(a)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case a[mid].Source == i:
			return a[mid].Target, true
		case a[mid].Source < i:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}

// Result is the outcome of Align.
type Result struct {
	Cost  float64
	Pairs Alignment
}

// Align computes the minimum-cost edit path turning source into target and
// returns its total cost and the substitution pairs along it.
//
// When two or more moves reach a cell at equal cost, substitution wins over
// deletion and deletion over insertion.
func Align[T any](source, target []T, cost Cost[T]) (Result, error) {
	m, n := len(source), len(target)
	width := n + 1
	table := make([]float64, (m+1)*width)
	pointers := make([]Operation, (m+1)*width)

	for i := 1; i <= m; i++ {
		c, err := price(cost, source[i-1], zero[T](), Delete)
		if err != nil {
			return Result{}, err
		}
		table[i*width] = table[(i-1)*width] + c
		pointers[i*width] = Delete
	}
	for j := 1; j <= n; j++ {
		c, err := price(cost, zero[T](), target[j-1], Insert)
		if err != nil {
			return Result{}, err
		}
		table[j] = table[j-1] + c
		pointers[j] = Insert
	}

	for i := 1; i <= m; i++ {
		row, prev := i*width, (i-1)*width
		del, err := price(cost, source[i-1], zero[T](), Delete)
		if err != nil {
			return Result{}, err
		}
		for j := 1; j <= n; j++ {
			sub, err := price(cost, source[i-1], target[j-1], Substitute)
			if err != nil {
				return Result{}, err
			}
			ins, err := price(cost, zero[T](), target[j-1], Insert)
			if err != nil {
				return Result{}, err
			}

			best, op := table[prev+j-1]+sub, Substitute
			if c := table[prev+j] + del; c < best {
				best, op = c, Delete
			}
			if c := table[row+j-1] + ins; c < best {
				best, op = c, Insert
			}
			table[row+j] = best
			pointers[row+j] = op
		}
	}

	goal := table[m*width+n]
	if math.IsInf(goal, 1) {
		return Result{}, fmt.Errorf("align %d×%d: %w", m, n, ErrNoPath)
	}

	return Result{Cost: goal, Pairs: backtrace(pointers, width, m, n)}, nil
}

// backtrace walks the pointer table from (m, n) to the origin and returns the
// substitution pairs in increasing order.
func backtrace(pointers []Operation, width, m, n int) Alignment {
	var pairs Alignment
	i, j := m, n
	for i > 0 || j > 0 {
		switch pointers[i*width+j] {
		case Substitute:
			i--
			j--
			pairs = append(pairs, Pair{Source: i, Target: j})
		case Delete:
			i--
		case Insert:
			j--
		}
	}
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}

// Distance returns the minimum edit cost between source and target without
// recovering the path. It keeps two rows instead of the full table.
func Distance[T any](source, target []T, cost Cost[T]) (float64, error) {
	n := len(target)
	prev := make([]float64, n+1)
	curr := make([]float64, n+1)

	for j := 1; j <= n; j++ {
		c, err := price(cost, zero[T](), target[j-1], Insert)
		if err != nil {
			return 0, err
		}
		prev[j] = prev[j-1] + c
	}

	for i := 1; i <= len(source); i++ {
		del, err := price(cost, source[i-1], zero[T](), Delete)
		if err != nil {
			return 0, err
		}
		curr[0] = prev[0] + del
		for j := 1; j <= n; j++ {
			sub, err := price(cost, source[i-1], target[j-1], Substitute)
			if err != nil {
				return 0, err
			}
			ins, err := price(cost, zero[T](), target[j-1], Insert)
			if err != nil {
				return 0, err
			}
			curr[j] = min(prev[j-1]+sub, prev[j]+del, curr[j-1]+ins)
		}
		prev, curr = curr, prev
	}

	if math.IsInf(prev[n], 1) {
		return 0, fmt.Errorf("distance %d×%d: %w", len(source), n, ErrNoPath)
	}
	return prev[n], nil
}

func price[T any](cost Cost[T], a, b T, op Operation) (float64, error) {
	c := cost(a, b, op)
	if math.IsNaN(c) || c < 0 {
		return 0, fmt.Errorf("%w: %s priced at %v", ErrInvalidCost, op, c)
	}
	return c, nil
}

func zero[T any]() T {
	var z T
	return z
}
