package tokenizer

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
	doctypeOpen  = "<!DOCTYPE"
	condOpen     = "<!["
	condClose    = "]>"
)

// scanDeclaration processes markup declarations: comments, CDATA sections,
// doctypes and (optionally) downlevel-revealed conditional comments. The
// cursor is on '<' and the next byte is '!'.
func (s *scanner) scanDeclaration(start pos) {
	rem := s.rem()

	switch {
	case strings.HasPrefix(rem, commentOpen):
		s.scanComment(start)

	case s.opts.RecognizeCDATA && strings.HasPrefix(rem, cdataOpen):
		s.scanCDATA(start)

	case len(rem) >= len(doctypeOpen) && strings.EqualFold(rem[:len(doctypeOpen)], doctypeOpen):
		s.scanDoctype(start)

	case s.opts.RecognizeConditionalComments && strings.HasPrefix(rem, condOpen):
		s.scanConditionalComment(start)

	default:
		s.advance() // '<'
		s.resync()
		s.report(IssueMalformedTag, SeverityError, start, "unrecognized markup declaration")
	}
}

// scanComment consumes "<!-- ... -->" verbatim. The stored body is trimmed.
// A missing "-->" is reported and the rest of the input is consumed as the
// comment body.
func (s *scanner) scanComment(start pos) {
	s.advanceBy(len(commentOpen))

	bodyStart := s.i

	if idx := strings.Index(s.rem(), commentClose); idx >= 0 {
		s.advanceBy(idx)
		body := s.input[bodyStart:s.i]
		s.advanceBy(len(commentClose))
		s.emitComment(start, body)
		return
	}

	s.advanceTo(len(s.input))
	s.report(IssueUnterminatedComment, SeverityError, start, "comment is missing its closing '-->'")
	s.emitComment(start, s.input[bodyStart:])
}

// scanCDATA consumes "<![CDATA[ ... ]]>". The content is kept raw,
// untrimmed.
func (s *scanner) scanCDATA(start pos) {
	s.advanceBy(len(cdataOpen))

	bodyStart := s.i

	idx := strings.Index(s.rem(), cdataClose)
	if idx < 0 {
		s.advanceTo(len(s.input))
		s.report(IssueUnterminatedCDATA, SeverityError, start, "CDATA section is missing its closing ']]>'")
	} else {
		s.advanceBy(idx)
	}

	body := s.input[bodyStart:s.i]

	if idx >= 0 {
		s.advanceBy(len(cdataClose))
	}

	s.emit(Token{
		Kind:   KindCDATA,
		Start:  start.offset,
		End:    s.i,
		Line:   start.line,
		Column: start.col,
		Text:   body,
	})
}

// scanDoctype consumes "<!DOCTYPE name ...>" (case-insensitive keyword),
// keeping only the name token. Everything up to the closing '>' is skipped.
func (s *scanner) scanDoctype(start pos) {
	s.advanceBy(len(doctypeOpen))
	s.skipWhitespace()

	name := s.readName()
	if name == "" {
		s.report(IssueMalformedDoctype, SeverityWarning, start, "doctype is missing a name")
	}

	s.resync()

	s.emit(Token{
		Kind:   KindDoctype,
		Start:  start.offset,
		End:    s.i,
		Line:   start.line,
		Column: start.col,
		Name:   name,
	})
}

// scanConditionalComment consumes "<![if ...]>" / "<![endif]>" style
// conditionals and emits them as comment tokens, body trimmed.
func (s *scanner) scanConditionalComment(start pos) {
	s.advanceBy(len(condOpen))

	bodyStart := s.i

	if idx := strings.Index(s.rem(), condClose); idx >= 0 {
		s.advanceBy(idx)
		body := s.input[bodyStart:s.i]
		s.advanceBy(len(condClose))
		s.emitComment(start, body)
		return
	}

	s.advanceTo(len(s.input))
	s.report(IssueUnterminatedComment, SeverityError, start, "conditional comment is missing its closing ']>'")
	s.emitComment(start, s.input[bodyStart:])
}

func (s *scanner) emitComment(start pos, body string) {
	s.emit(Token{
		Kind:   KindComment,
		Start:  start.offset,
		End:    s.i,
		Line:   start.line,
		Column: start.col,
		Text:   strings.TrimSpace(body),
	})
}
