// Package zipper pairs annotated records with forced lines.
package zipper

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/example/go-procrustes/internal/text"
)

// Record is one annotated line and the forced line it is re-tokenized to.
type Record struct {
	Source string
	Target string
}

// Zipper reads both inputs and pairs their contents into records.
type Zipper func(source, target io.Reader) ([]Record, error)

// Zipper names accepted by Lookup.
const (
	ZipLine = "line"
	ZipFile = "file"
)

// Line pairs line i of source with line i of target and stops at the end of
// the shorter input. Line terminators are stripped.
func Line(source, target io.Reader) ([]Record, error) {
	src, tgt := bufio.NewReader(source), bufio.NewReader(target)
	var records []Record
	for n := 1; ; n++ {
		s, errS := readLine(src)
		t, errT := readLine(tgt)
		if errors.Is(errS, io.EOF) || errors.Is(errT, io.EOF) {
			return records, nil
		}
		if errS != nil {
			return nil, fmt.Errorf("read source line %d: %w", n, errS)
		}
		if errT != nil {
			return nil, fmt.Errorf("read target line %d: %w", n, errT)
		}
		records = append(records, Record{Source: s, Target: t})
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned with a nil error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// File reads each input whole and pairs them as a single record, with line
// breaks and tabs folded into single spaces.
func File(source, target io.Reader) ([]Record, error) {
	s, err := io.ReadAll(source)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	t, err := io.ReadAll(target)
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}
	return []Record{{Source: text.Flatten(string(s)), Target: text.Flatten(string(t))}}, nil
}

// Lookup resolves a zipper name. The empty name selects Line.
func Lookup(name string) (Zipper, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ZipLine, "":
		return Line, nil
	case ZipFile:
		return File, nil
	default:
		return nil, fmt.Errorf("zipper %q (expected %s|%s): %w", name, ZipFile, ZipLine, errors.ErrUnsupported)
	}
}
