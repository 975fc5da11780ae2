package commitmsg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	// ErrNotConventional is returned for messages not matching the conventional commit grammar.
	ErrNotConventional = errors.New("expected conventional commit message")
	// ErrUnknownType is returned when the type token is not a known category.
	ErrUnknownType = errors.New("unknown conventional commit type")
	// ErrAlreadyAnnotated is returned in strict mode for messages that already contain an emoji.
	ErrAlreadyAnnotated = errors.New("expected conventional commit to not have emojis already in it")
	// ErrMissingEmoji is reported by the range check when require_emoji is set.
	ErrMissingEmoji = errors.New("expected emoji after the type prefix")
)

// commitFailure holds the violations of a single commit.
type commitFailure struct {
	commit     *object.Commit
	violations []RuleViolation
}

// formatViolationError creates a detailed error message for rule violations.
func formatViolationError(ref string, failures []commitFailure) error {
	var sb strings.Builder

	for i, failure := range failures {
		if i > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "Commit %s in %s failed validation:\n", failure.commit.Hash.String()[:7], ref)
		fmt.Fprintf(&sb, "Commit message: %s\n\n", getFirstLine(failure.commit.Message))

		sb.WriteString("Rule violations:\n")
		for j, v := range failure.violations {
			fmt.Fprintf(&sb, "  %d. [%s] %v\n", j+1, v.Rule, v.Err)
		}
	}

	return errors.New(strings.TrimRight(sb.String(), "\n"))
}
