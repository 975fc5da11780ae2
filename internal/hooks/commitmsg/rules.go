package commitmsg

import (
	"errors"
	"fmt"
	"strings"
)

// Rule names a check applied to existing commits.
type Rule string

const (
	// RuleConventional fails if the message does not match the grammar.
	RuleConventional Rule = "conventional"
	// RuleKnownType fails if the type is not a known category.
	RuleKnownType Rule = "known-type"
	// RuleEmoji fails if the category emoji is missing after the delimiter.
	RuleEmoji Rule = "emoji"
)

// RuleViolation represents a failed rule check.
type RuleViolation struct {
	Rule Rule
	Err  error
}

// EvaluateRules checks a commit message and returns the violated rules
// (empty if all rules pass).
func EvaluateRules(settings Settings, message string) []RuleViolation {
	validated, err := Validate(message)
	if err != nil {
		rule := RuleConventional
		if errors.Is(err, ErrUnknownType) {
			rule = RuleKnownType
		}

		return []RuleViolation{{Rule: rule, Err: err}}
	}

	if !settings.RequireEmoji {
		return nil
	}

	header := validated.Header()
	if !sameEmoji(header.Emoji, header.Type.Emoji()) {
		return []RuleViolation{{
			Rule: RuleEmoji,
			Err:  fmt.Errorf("%w: %s", ErrMissingEmoji, header.Type.Emoji()),
		}}
	}

	return nil
}

// shouldSkipMessage reports whether a message is passed through untouched.
func shouldSkipMessage(settings Settings, message string) (bool, string) {
	title := getFirstLine(message)

	if settings.skipMerge() && strings.HasPrefix(title, "Merge ") {
		return true, "merge commit"
	}

	for _, re := range settings.skipPatterns {
		if re.MatchString(title) {
			return true, "skip pattern " + re.String()
		}
	}

	return false, ""
}

// shouldSkipAuthor checks if a commit author should be skipped based on patterns.
func shouldSkipAuthor(name string, email string, settings Settings) bool {
	for _, re := range settings.skipAuthors {
		// Check if pattern matches either name or email
		if re.MatchString(name) || re.MatchString(email) {
			return true
		}
	}

	return false
}
