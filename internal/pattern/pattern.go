// Package pattern builds matchers describing the byte sequences a grammar
// node accepts.
//
// Patterns are expressed over the lowercase hex encoding of the data, so
// arbitrary binary values stay valid regular-expression text: one data byte
// is two pattern positions. Node kinds combine patterns structurally:
// aggregates concatenate, alternatives branch, repetitions loop. Executing
// a pattern against data is the caller's concern; Compile and Find are the
// integration hooks for that.
package pattern

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Pattern is an immutable matcher fragment.
type Pattern struct {
	expr string
}

// Empty returns the neutral pattern. It matches the empty byte sequence and
// is the identity of Concat.
func Empty() Pattern {
	return Pattern{}
}

// Fixed returns a pattern matching exactly value.
func Fixed(value []byte) Pattern {
	return Pattern{expr: "(" + hex.EncodeToString(value) + ")"}
}

// Variable returns a pattern matching any run of min up to max bytes.
// A max below min means unbounded.
func Variable(min, max int) Pattern {
	if min < 0 {
		min = 0
	}
	if max < min {
		return Pattern{expr: fmt.Sprintf("(.{%d,})", 2*min)}
	}
	return Pattern{expr: fmt.Sprintf("(.{%d,%d})", 2*min, 2*max)}
}

// Concat returns the ordered concatenation of ps. Empty patterns are
// neutral and contribute nothing.
func Concat(ps ...Pattern) Pattern {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString(p.expr)
	}
	return Pattern{expr: b.String()}
}

// Alternate returns a pattern matching any one of ps, tried in order.
func Alternate(ps ...Pattern) Pattern {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		if p.IsEmpty() {
			continue
		}
		parts = append(parts, p.expr)
	}
	if len(parts) == 0 {
		return Empty()
	}
	return Pattern{expr: "(?:" + strings.Join(parts, "|") + ")"}
}

// Loop returns a pattern matching min up to max consecutive occurrences
// of p. A max below min means unbounded.
func Loop(p Pattern, min, max int) Pattern {
	if p.IsEmpty() {
		return Empty()
	}
	if min < 0 {
		min = 0
	}
	if max < min {
		return Pattern{expr: fmt.Sprintf("(?:%s){%d,}", p.expr, min)}
	}
	return Pattern{expr: fmt.Sprintf("(?:%s){%d,%d}", p.expr, min, max)}
}

// IsEmpty reports whether p is the neutral pattern.
func (p Pattern) IsEmpty() bool {
	return p.expr == ""
}

// Expr returns the regular-expression fragment for p, in the hex domain.
func (p Pattern) Expr() string {
	return p.expr
}

// Compile turns p into an executable matcher over hex-encoded text.
func (p Pattern) Compile() (*regexp.Regexp, error) {
	return regexp.Compile(p.expr)
}

// Find returns the byte ranges of data where p matches. Hits landing on a
// half-byte boundary in the hex domain are discarded.
func (p Pattern) Find(data []byte) ([][2]int, error) {
	re, err := p.Compile()
	if err != nil {
		return nil, err
	}
	encoded := hex.EncodeToString(data)
	var spans [][2]int
	for _, loc := range re.FindAllStringIndex(encoded, -1) {
		if loc[0]%2 != 0 || loc[1]%2 != 0 {
			continue
		}
		spans = append(spans, [2]int{loc[0] / 2, loc[1] / 2})
	}
	return spans, nil
}

// Match reports whether data, in its entirety, is accepted by p.
func (p Pattern) Match(data []byte) (bool, error) {
	re, err := regexp.Compile("^(?:" + p.expr + ")$")
	if err != nil {
		return false, err
	}
	return re.MatchString(hex.EncodeToString(data)), nil
}
