package tokenizer

// Options controls optional tokenizer behaviour. The zero value is the
// default HTML-ish mode: no namespace splitting, no CDATA sections, no
// conditional comments, whitespace-only text flagged but not preserved.
type Options struct {
	// XMLMode enables colon-namespace splitting on tag names:
	// "svg:rect" is stored as Namespace "svg", Name "rect".
	XMLMode bool `json:"xml_mode"`

	// RecognizeCDATA enables "<![CDATA[ ... ]]>" sections. When disabled
	// such input is reported as a malformed tag and skipped.
	RecognizeCDATA bool `json:"recognize_cdata"`

	// RecognizeConditionalComments enables downlevel-revealed conditional
	// comments of the form "<![if ...]>" / "<![endif]>", emitted as
	// comment tokens.
	RecognizeConditionalComments bool `json:"recognize_conditional_comments"`

	// PreserveWhitespace marks whitespace-only text runs as significant
	// so the tree builder retains them. The tokenizer emits such runs
	// either way, flagged via [Token.IsWhitespace].
	PreserveWhitespace bool `json:"preserve_whitespace"`

	// AllowUnclosedTags suppresses the diagnostic for a start tag that is
	// interrupted by another "<" before its closing ">".
	AllowUnclosedTags bool `json:"allow_unclosed_tags"`
}
