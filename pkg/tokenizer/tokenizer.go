// Package tokenizer splits template source into an ordered list of slices,
// alternating between literal text and template tags. The split is lossless:
// concatenating the slices reproduces the source byte for byte. Slices carry
// their byte offsets so later stages can report positions against the
// original template.
package tokenizer

import (
	"regexp"
	"strings"

	"github.com/walteh/goliquid/pkg/position"
)

// TemplatePattern matches template tags: {% ... %} blocks, {{ ... }} outputs,
// and their unterminated opener forms. The output alternative accepts a
// single closing brace, so "{{ x }" still tokenizes as one tag; the
// diagnostic layer reports that form as malformed rather than rejecting it
// here.
var TemplatePattern = regexp.MustCompile(`\{%.*?%\}|\{\{.*?\}\}?|\{\{|\{%`)

type SliceKind int

const (
	// SliceLiteral is plain text between tags, emitted verbatim by a renderer.
	SliceLiteral SliceKind = iota
	// SliceTag is one {% ... %} or {{ ... }} tag including its delimiters.
	SliceTag
)

func (k SliceKind) String() string {
	switch k {
	case SliceLiteral:
		return "literal"
	case SliceTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Slice is one segment of the template: the covered text, its offset, and
// whether it is literal text or a tag.
type Slice struct {
	position.RawPosition
	Kind SliceKind
}

type Tokenizer struct {
	source string
}

func New(source string) *Tokenizer {
	return &Tokenizer{source: source}
}

// Tokenize splits the source on pattern and returns the slice texts in
// source order. An empty source yields a single empty string, a source
// without matches yields itself unsplit.
func (t *Tokenizer) Tokenize(pattern *regexp.Regexp) []string {
	slices := t.Slices(pattern)

	tokens := make([]string, 0, len(slices))
	for _, s := range slices {
		tokens = append(tokens, s.Text)
	}
	return tokens
}

// Slices splits the source on pattern, keeping offsets and kinds. Pattern
// matches become tag slices and the gaps around them become literal slices.
// The result is ordered, non-overlapping, and covers the whole source.
func (t *Tokenizer) Slices(pattern *regexp.Regexp) []Slice {
	tags := pattern.FindAllStringIndex(t.source, -1)
	if len(tags) == 0 {
		return []Slice{{
			RawPosition: position.NewBasicPosition(t.source, 0),
			Kind:        SliceLiteral,
		}}
	}

	slices := make([]Slice, 0, len(tags)*2+1)
	prev := 0
	for _, loc := range tags {
		if loc[0] > prev {
			slices = append(slices, t.slice(prev, loc[0], SliceLiteral))
		}
		slices = append(slices, t.slice(loc[0], loc[1], SliceTag))
		prev = loc[1]
	}
	if prev < len(t.source) {
		slices = append(slices, t.slice(prev, len(t.source), SliceLiteral))
	}

	return slices
}

func (t *Tokenizer) slice(start, end int, kind SliceKind) Slice {
	return Slice{
		RawPosition: position.NewBasicPosition(t.source[start:end], start),
		Kind:        kind,
	}
}

// TagInterior strips the delimiters from a tag slice's text. It accepts the
// closed forms {% ... %} and {{ ... }}, the single-brace form {{ ... }, and
// the bare openers {{ and {%. The returned offset is where the interior
// starts within text. ok is false for text that is not a tag.
func TagInterior(text string) (interior string, offset int, ok bool) {
	switch {
	case len(text) >= 4 && strings.HasPrefix(text, "{%") && strings.HasSuffix(text, "%}"):
		return text[2 : len(text)-2], 2, true
	case len(text) >= 4 && strings.HasPrefix(text, "{{") && strings.HasSuffix(text, "}}"):
		return text[2 : len(text)-2], 2, true
	case len(text) >= 3 && strings.HasPrefix(text, "{{") && strings.HasSuffix(text, "}"):
		return text[2 : len(text)-1], 2, true
	case text == "{{" || text == "{%":
		return "", 2, true
	default:
		return "", 0, false
	}
}
