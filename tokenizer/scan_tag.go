package tokenizer

// scanStartTag processes "<name attr=value ...>" with the cursor on '<'.
//
// Attribute names are lowercased on storage and a later duplicate
// overwrites the earlier value. A '/' immediately before '>' marks the tag
// self-closing. Another '<' before the closing '>' is treated as a runaway
// unterminated tag: the token is emitted as scanned and the '<' is left for
// the main loop.
func (s *scanner) scanStartTag(start pos) {
	s.advance() // '<'

	ns, name := s.splitName(s.readName())

	tok := Token{
		Kind:      KindStartTag,
		Start:     start.offset,
		Line:      start.line,
		Column:    start.col,
		Name:      name,
		Namespace: ns,
	}

	for {
		s.skipWhitespace()

		if s.eof() {
			if !s.opts.AllowUnclosedTags {
				s.report(IssueUnterminatedTag, SeverityError, start, "unterminated start tag <"+name+">: reached end of input")
			}
			break
		}

		b := s.cur()

		if b == '>' {
			s.advance()
			break
		}

		if b == '<' {
			// runaway tag guard: do not consume, the main loop picks it up
			if !s.opts.AllowUnclosedTags {
				s.report(IssueUnterminatedTag, SeverityError, start, "unterminated start tag <"+name+">: found '<' before '>'")
			}
			break
		}

		if b == '/' {
			s.advance()
			if s.cur() == '>' {
				tok.SelfClosing = true
				s.advance()
				break
			}

			s.report(IssueStraySlash, SeverityWarning, start, "stray '/' inside start tag <"+name+">")
			continue
		}

		s.scanAttribute(&tok)
	}

	tok.End = s.i
	s.emit(tok)
}

// scanAttribute reads one attrName[=value] pair and stores it on the token.
// The cursor is on the first byte of the attribute name.
func (s *scanner) scanAttribute(tok *Token) {
	nameStart := s.i
	for !s.eof() && !isAttrNameEnd(s.cur()) {
		s.advance()
	}

	if s.i == nameStart {
		// a byte that can neither start a name nor close the tag, e.g.
		// a stray quote; consume it so the loop makes progress
		at := s.mark()
		s.advance()
		s.report(IssueMalformedTag, SeverityWarning, at, "unexpected character in start tag: "+s.input[at.offset:s.i])
		return
	}

	name := lower(s.input[nameStart:s.i])

	s.skipWhitespace()

	if s.cur() != '=' {
		// attribute without a value
		tok.Attrs = setAttr(tok.Attrs, name, "")
		return
	}

	s.advance() // '='
	s.skipWhitespace()

	tok.Attrs = setAttr(tok.Attrs, name, s.scanAttributeValue())
}

// scanAttributeValue reads a quoted or unquoted attribute value. A quoted
// value is everything up to the matching quote; the quote is consumed. An
// unquoted value runs to the next whitespace or '>'.
func (s *scanner) scanAttributeValue() string {
	if q := s.cur(); q == '"' || q == '\'' {
		at := s.mark()
		s.advance()

		valStart := s.i
		for !s.eof() && s.cur() != q {
			s.advance()
		}
		val := s.input[valStart:s.i]

		if s.eof() {
			s.report(IssueUnterminatedAttribute, SeverityError, at, "unterminated attribute value: missing closing quote")
		} else {
			s.advance() // closing quote
		}

		return val
	}

	valStart := s.i
	for !s.eof() && !isWhitespace(s.cur()) && s.cur() != '>' && s.cur() != '<' {
		s.advance()
	}

	return s.input[valStart:s.i]
}

// scanEndTag processes "</name>" with the cursor on '<'. A missing closing
// '>' is reported but the scanner still advances past the first '>' found
// (or to end of input) to avoid infinite loops.
func (s *scanner) scanEndTag(start pos) {
	s.advance() // '<'
	s.advance() // '/'

	ns, name := s.splitName(s.readName())

	if name == "" {
		s.resync()
		s.report(IssueMissingTagName, SeverityError, start, "end tag is missing a name")
		return
	}

	s.skipWhitespace()

	if s.cur() == '>' {
		s.advance()
	} else {
		s.resync()
		s.report(IssueUnterminatedTag, SeverityError, start, "end tag </"+name+"> is missing its closing '>'")
	}

	s.emit(Token{
		Kind:      KindEndTag,
		Start:     start.offset,
		End:       s.i,
		Line:      start.line,
		Column:    start.col,
		Name:      name,
		Namespace: ns,
	})
}

// isAttrNameEnd reports whether b terminates an attribute name.
func isAttrNameEnd(b byte) bool {
	return isWhitespace(b) || b == '=' || b == '>' || b == '/' || b == '<' || b == '"' || b == '\''
}

// lower is a cheap ASCII-only strings.ToLower for attribute names.
// Non-ASCII bytes pass through untouched.
func lower(v string) string {
	out := []byte(v)
	changed := false

	for i, b := range out {
		if b >= 'A' && b <= 'Z' {
			out[i] = b + ('a' - 'A')
			changed = true
		}
	}

	if !changed {
		return v
	}

	return string(out)
}
