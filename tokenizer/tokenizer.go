package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Tokenize transforms the input string into a flat sequence of Tokens plus a
// list of non-fatal Diagnostics. The scan is a single left-to-right pass,
// linear in the input length, and always terminates with exactly one EOF
// token whose Start and End equal len(input).
//
// Malformed input never stops the scan: the tokenizer reports a Diagnostic
// and resynchronizes past the next '>' (or to end of input).
func Tokenize(input string, opts Options) ([]Token, []Diagnostic) {
	s := &scanner{
		input: input,
		opts:  opts,
		line:  1,
		col:   1,

		// guessing the token number to minimize the number of the slice resizes
		tokens: make([]Token, 0, len(input)/8+1),
	}

	for !s.eof() {
		if s.cur() == '<' {
			s.scanTag()
		} else {
			s.scanText()
		}
	}

	s.tokens = append(s.tokens, Token{
		Kind:   KindEOF,
		Start:  len(input),
		End:    len(input),
		Line:   s.line,
		Column: s.col,
	})

	return s.tokens, s.diags
}

// scanner holds all mutable state of a single Tokenize invocation.
// Nothing here outlives the call, so concurrent invocations never share
// hidden state.
type scanner struct {
	input string
	opts  Options

	// i is the byte offset of the scan cursor; line and col are the
	// 1-based position of the character at i.
	i    int
	line int
	col  int

	tokens []Token
	diags  []Diagnostic
}

// pos is a snapshot of the cursor, taken at the start of a token or of a
// problematic region.
type pos struct {
	offset int
	line   int
	col    int
}

func (s *scanner) mark() pos {
	return pos{offset: s.i, line: s.line, col: s.col}
}

func (s *scanner) eof() bool {
	return s.i >= len(s.input)
}

// cur returns the byte under the cursor, or 0 at end of input. All
// delimiters the scanner dispatches on are single-byte ASCII, so byte
// inspection is safe even inside multi-byte runes.
func (s *scanner) cur() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.i]
}

// peek returns the byte at offset n after the cursor, or 0 past the end.
func (s *scanner) peek(n int) byte {
	if s.i+n >= len(s.input) {
		return 0
	}
	return s.input[s.i+n]
}

// rem returns the unconsumed remainder of the input.
func (s *scanner) rem() string {
	return s.input[s.i:]
}

// advance consumes one character and keeps the line/column bookkeeping
// consistent: a newline increments line and resets column to 1, any other
// character increments column.
func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, w := utf8.DecodeRuneInString(s.input[s.i:])
	s.i += w

	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

// advanceTo consumes characters until the cursor reaches the byte offset
// target. The target must lie on a rune boundary at or after the cursor.
func (s *scanner) advanceTo(target int) {
	for s.i < target {
		s.advance()
	}
}

// advanceBy consumes n bytes worth of characters.
func (s *scanner) advanceBy(n int) {
	s.advanceTo(s.i + n)
}

// resync consumes input up to and including the next '>', or to the end of
// input. It is the recovery step after a malformed tag and guarantees the
// main loop always makes progress.
func (s *scanner) resync() {
	for !s.eof() {
		b := s.cur()
		s.advance()
		if b == '>' {
			return
		}
	}
}

func (s *scanner) skipWhitespace() {
	for isWhitespace(s.cur()) {
		s.advance()
	}
}

func (s *scanner) emit(t Token) {
	s.tokens = append(s.tokens, t)
}

func (s *scanner) report(issue Issue, sev Severity, at pos, msg string) {
	s.diags = append(s.diags, Diagnostic{
		Issue:    issue,
		Severity: sev,
		Message:  msg,
		Line:     at.line,
		Column:   at.col,
		Start:    at.offset,
		End:      s.i,
	})
}

// scanText accumulates characters into a text run until '<' or end of
// input. Whitespace-only runs are still emitted, flagged via IsWhitespace,
// so downstream stages decide retention.
func (s *scanner) scanText() {
	start := s.mark()

	for !s.eof() && s.cur() != '<' {
		s.advance()
	}

	val := s.input[start.offset:s.i]

	s.emit(Token{
		Kind:         KindText,
		Start:        start.offset,
		End:          s.i,
		Line:         start.line,
		Column:       start.col,
		Text:         val,
		IsWhitespace: strings.TrimSpace(val) == "",
	})
}

// scanTag dispatches on the first character(s) after '<'. The cursor is on
// the '<' when this is called.
func (s *scanner) scanTag() {
	start := s.mark()

	switch b := s.peek(1); {
	case b == '/':
		s.scanEndTag(start)
	case isNameStart(b):
		s.scanStartTag(start)
	case b == '!':
		s.scanDeclaration(start)
	default:
		// a lone '<', "<?", "< " and similar; skip to the next '>'
		s.advance()
		s.resync()
		s.report(IssueMalformedTag, SeverityError, start, "malformed tag: '<' is not followed by a tag name")
	}
}

// readName consumes a run of name characters ([A-Za-z0-9:-]) and returns it
// lowercased.
func (s *scanner) readName() string {
	start := s.i
	for !s.eof() && isNameByte(s.cur()) {
		s.advance()
	}
	return strings.ToLower(s.input[start:s.i])
}

// splitName separates the colon namespace prefix from a tag name when
// XMLMode is enabled. Without a colon (or outside XML mode) the namespace
// is empty.
func (s *scanner) splitName(name string) (ns, local string) {
	if !s.opts.XMLMode {
		return "", name
	}

	if prefix, rest, ok := strings.Cut(name, ":"); ok && prefix != "" && rest != "" {
		return prefix, rest
	}

	return "", name
}

func isNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isNameByte(b byte) bool {
	return isNameStart(b) || b >= '0' && b <= '9' || b == ':' || b == '-'
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
