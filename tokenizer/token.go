package tokenizer

import (
	"encoding/json"
	"fmt"
)

// Kind defines the kind of a Token, e.g. start tag, end tag, text.
type Kind int

const (
	KindStartTag Kind = iota
	KindEndTag
	KindText
	KindComment
	KindDoctype
	KindCDATA
	KindEOF
)

// kindNames maps token kinds to their serialized names.
var kindNames = [...]string{
	KindStartTag: "start_tag",
	KindEndTag:   "end_tag",
	KindText:     "text",
	KindComment:  "comment",
	KindDoctype:  "doctype",
	KindCDATA:    "cdata",
	KindEOF:      "eof",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalJSON serializes the Kind as its string name so the tokens
// remain readable in API responses and stored results.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for i, n := range kindNames {
		if n == name {
			*k = Kind(i)
			return nil
		}
	}

	return fmt.Errorf("unknown token kind: %q", name)
}

// Attr is a single name/value attribute pair of a start tag.
// Names are stored lowercased. Order of attributes follows their
// first appearance in the tag.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Token is the result of the first stage processing of a part of the input string.
//
// Start and End define the half-open byte range [Start, End) of the token in
// the original input. Line and Column are 1-based and point at the first
// character of the token; Column resets to 1 after every consumed newline.
type Token struct {
	Kind Kind `json:"kind"`

	Start int `json:"start"`
	End   int `json:"end"`

	Line   int `json:"line"`
	Column int `json:"column"`

	// Name is the lowercased tag name for start/end tags and the name
	// token for doctypes. Empty for other kinds.
	Name string `json:"name,omitempty"`

	// Namespace is the colon prefix of the tag name, split off only when
	// the tokenizer runs with [Options.XMLMode] enabled.
	Namespace string `json:"namespace,omitempty"`

	// Attrs holds the start tag's attributes in insertion order.
	// A duplicate attribute name overwrites the earlier value in place.
	Attrs []Attr `json:"attrs,omitempty"`

	// SelfClosing is true when the start tag ends with "/>".
	SelfClosing bool `json:"self_closing,omitempty"`

	// Text is the raw content for text and CDATA tokens and the trimmed
	// body for comment tokens.
	Text string `json:"text,omitempty"`

	// IsWhitespace is true for text tokens whose content is empty or
	// consists of whitespace only.
	IsWhitespace bool `json:"is_whitespace,omitempty"`
}

// Attr returns the value of the named attribute and whether it is present.
// The name is matched as stored, i.e. lowercased.
func (t Token) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// setAttr appends the attribute or, if the name is already present,
// replaces its value in place so the last duplicate wins while the
// original position is kept.
func setAttr(attrs []Attr, name, value string) []Attr {
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return attrs
		}
	}

	return append(attrs, Attr{Name: name, Value: value})
}
