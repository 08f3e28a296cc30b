package sentence

import (
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultPatternSource matches either a ==highlighted== run or a sentence.
//
// A sentence starts at a character that is not whitespace or terminal
// punctuation, and not a list bullet followed by whitespace. It runs across
// terminal punctuation that is directly followed by more text, and ends at
// optional terminal punctuation plus an optional closing quote, just before
// whitespace or end of line.
const DefaultPatternSource = `(==(.*?)==)|(?![-*+]\s)[^.!?\s][^.!?]*(?:[.!?](?!['"]?\s|$)[^.!?]*)*[.!?]?['"]?(?=\s|$)`

// DefaultMatchTimeout bounds a single match attempt so that a pathological
// user pattern cannot hang the editor.
const DefaultMatchTimeout = 250 * time.Millisecond

const compileOptions = regexp2.ECMAScript | regexp2.Multiline

// Pattern is a compiled sentence pattern. It is immutable and safe for
// concurrent use.
type Pattern struct {
	source string
	re     *regexp2.Regexp
}

// Compile compiles a sentence pattern. A blank source is rejected with
// ErrEmptyPattern; a source that does not compile is rejected with a
// *PatternError.
func Compile(source string) (*Pattern, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &PatternError{Source: source, Err: ErrEmptyPattern}
	}
	re, err := regexp2.Compile(source, compileOptions)
	if err != nil {
		return nil, &PatternError{Source: source, Err: err}
	}
	re.MatchTimeout = DefaultMatchTimeout
	return &Pattern{source: source, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string) *Pattern {
	p, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return p
}

var defaultPattern = sync.OnceValue(func() *Pattern {
	return MustCompile(DefaultPatternSource)
})

// Default returns the compiled default pattern.
func Default() *Pattern {
	return defaultPattern()
}

// Source returns the text the pattern was compiled from.
func (p *Pattern) Source() string {
	return p.source
}

// IsDefault reports whether p was compiled from DefaultPatternSource.
func (p *Pattern) IsDefault() bool {
	return p.source == DefaultPatternSource
}

// String implements fmt.Stringer.
func (p *Pattern) String() string {
	return p.source
}

// Validate reports whether source would compile, without keeping the result.
func Validate(source string) error {
	_, err := Compile(source)
	return err
}
