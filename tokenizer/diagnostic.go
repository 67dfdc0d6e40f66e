package tokenizer

import (
	"encoding/json"
	"fmt"
)

// Issue describes the category of a problem detected during tokenization,
// e.g. a malformed tag, an unterminated comment, a missing tag name.
type Issue int

const (
	IssueMalformedTag Issue = iota
	IssueMissingTagName
	IssueUnterminatedTag
	IssueUnterminatedComment
	IssueUnterminatedCDATA
	IssueUnterminatedAttribute
	IssueStraySlash
	IssueMalformedDoctype
)

var issueNames = [...]string{
	IssueMalformedTag:          "malformed_tag",
	IssueMissingTagName:        "missing_tag_name",
	IssueUnterminatedTag:       "unterminated_tag",
	IssueUnterminatedComment:   "unterminated_comment",
	IssueUnterminatedCDATA:     "unterminated_cdata",
	IssueUnterminatedAttribute: "unterminated_attribute",
	IssueStraySlash:            "stray_slash",
	IssueMalformedDoctype:      "malformed_doctype",
}

func (i Issue) String() string {
	if i < 0 || int(i) >= len(issueNames) {
		return fmt.Sprintf("Issue(%d)", int(i))
	}
	return issueNames[i]
}

func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Issue) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for j, n := range issueNames {
		if n == name {
			*i = Issue(j)
			return nil
		}
	}

	return fmt.Errorf("unknown tokenizer issue: %q", name)
}

// Severity grades a Diagnostic. Neither severity ever aborts the scan;
// tokenization is total over any input.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	switch name {
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity: %q", name)
	}

	return nil
}

// Diagnostic represents details about a non-fatal issue detected while
// scanning the input. Tokenization still succeeded and produced a token
// stream, but something about the input was malformed.
//
// Start and End are byte offsets covering the problematic region; Line and
// Column are the 1-based position where the region starts.
type Diagnostic struct {
	Issue    Issue    `json:"issue"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
}
