package text

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplitAfter_DividingPunctuation(t *testing.T) {
	segment, err := SplitAfter(DividingPunctuation)
	if err != nil {
		t.Fatalf("SplitAfter returned error: %v", err)
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single sentence",
			text: "Hello world.",
			want: []string{"Hello world."},
		},
		{
			name: "splits after terminator and keeps whitespace",
			text: "Hello. World! Bye",
			want: []string{"Hello. ", "World! ", "Bye"},
		},
		{
			name: "terminator without whitespace does not split",
			text: "a.b. c",
			want: []string{"a.", "b. ", "c"},
		},
		{
			name: "colon and semicolon divide",
			text: "one: two; three",
			want: []string{"one: ", "two; ", "three"},
		},
		{
			name: "commas do not divide",
			text: "one, two",
			want: []string{"one, two"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segment(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("segment(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if strings.Join(got, "") != tt.text {
				t.Errorf("segments %q do not reassemble %q", got, tt.text)
			}
		})
	}
}

func TestSplitAfter_Punctuation(t *testing.T) {
	segment, err := LookupSegmenter(SegmentPunctuation)
	if err != nil {
		t.Fatalf("LookupSegmenter returned error: %v", err)
	}

	got := segment("one, two] three")
	want := []string{"one, ", "two] ", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("segment = %q, want %q", got, want)
	}
}

func TestSplitAfter_NoDelimiters(t *testing.T) {
	if _, err := SplitAfter(""); err == nil {
		t.Fatal("expected error for empty delimiter set")
	}
}

func TestLookupSegmenter(t *testing.T) {
	for _, name := range []string{SegmentIdentity, SegmentDividingPunctuation, SegmentPunctuation, " Identity "} {
		seg, err := LookupSegmenter(name)
		if err != nil {
			t.Errorf("LookupSegmenter(%q) returned error: %v", name, err)
		}
		if seg == nil {
			t.Errorf("LookupSegmenter(%q) returned nil segmenter", name)
		}
	}

	seg, err := LookupSegmenter("")
	if err != nil || seg != nil {
		t.Errorf("LookupSegmenter(\"\") = %v, %v; want nil, nil", seg, err)
	}

	if _, err := LookupSegmenter("sentences"); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
