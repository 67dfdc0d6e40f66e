package dom

import (
	"encoding/json"
	"fmt"
)

// Issue describes the category of a recoverable problem detected while
// applying a token to the tree under construction.
type Issue int

const (
	// IssueUnmatchedEndTag marks an end tag with no matching open
	// element anywhere on the stack. The token is ignored.
	IssueUnmatchedEndTag Issue = iota

	// IssueInvalidNode marks a token whose payload could not be turned
	// into a node, e.g. a start tag with an empty name.
	IssueInvalidNode
)

var issueNames = [...]string{
	IssueUnmatchedEndTag: "unmatched_end_tag",
	IssueInvalidNode:     "invalid_node",
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

	return fmt.Errorf("unknown build issue: %q", name)
}

// BuildError represents details about a token that could not be applied to
// the current tree state. It is recoverable: the builder records it and
// continues with the next token.
type BuildError struct {
	Issue Issue `json:"issue"`

	// Pos is the byte offset of the offending token in the input.
	Pos    int `json:"pos"`
	Line   int `json:"line"`
	Column int `json:"column"`

	Description string `json:"description"`
}

func (e BuildError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Issue, e.Description)
}
