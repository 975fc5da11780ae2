package commitmsg

import (
	"fmt"
	"regexp"
	"strings"
)

// wordClass matches a Unicode word character: letters, marks, decimal and
// letter numbers, connector punctuation and the zero width (non-)joiner.
const wordClass = `\p{L}\p{M}\p{Nd}\p{Nl}\p{Pc}\x{200C}\x{200D}`

var (
	// headerRegex matches `type(scope)!: ` at the start of a message.
	headerRegex = regexp.MustCompile(`^([` + wordClass + `]+)(\([` + wordClass + `\-.]+\))?(!)?: `)

	// subjectRegex requires at least one word or space character.
	subjectRegex = regexp.MustCompile(`^[` + wordClass + ` ]+`)
)

// Header is the conventional commit prefix of a validated message.
type Header struct {
	Type     Category
	Scope    string
	Breaking bool
	// Emoji is the emoji found directly after the ": " delimiter, if any.
	Emoji   string
	Subject string
}

// ValidatedMessage is a commit message that matched the conventional commit
// grammar and carries a known category. It is only produced by Validate.
type ValidatedMessage struct {
	raw    string
	header Header
}

// Raw returns the message exactly as it was validated.
func (m ValidatedMessage) Raw() string {
	return m.raw
}

// Header returns the parsed prefix of the message.
func (m ValidatedMessage) Header() Header {
	return m.header
}

// Validate checks raw against the conventional commit grammar and classifies
// it by the first category label that prefixes the message.
//
// The message must start with a type token, an optional parenthesized scope,
// an optional breaking change marker '!' and the delimiter ": ", followed by
// a subject of at least one word or space character. Anything may follow
// the subject, including further lines.
//
// An emoji in the subject slot is accepted, so previously annotated
// messages still validate.
func Validate(raw string) (ValidatedMessage, error) {
	match := headerRegex.FindStringSubmatch(raw)
	if match == nil {
		return ValidatedMessage{}, fmt.Errorf("%w: %q", ErrNotConventional, getFirstLine(raw))
	}

	subject := raw[len(match[0]):]

	emoji, afterEmoji, ok := leadingEmoji(subject)
	if ok {
		subject = afterEmoji
	}

	if !subjectRegex.MatchString(subject) {
		return ValidatedMessage{}, fmt.Errorf("%w: %q", ErrNotConventional, getFirstLine(raw))
	}

	category, ok := ClassifyMessage(raw)
	if !ok {
		return ValidatedMessage{}, fmt.Errorf("%w %q", ErrUnknownType, match[1])
	}

	scope := match[2]
	if scope != "" {
		scope = scope[1 : len(scope)-1]
	}

	return ValidatedMessage{
		raw: raw,
		header: Header{
			Type:     category,
			Scope:    scope,
			Breaking: match[3] == "!",
			Emoji:    emoji,
			Subject:  getFirstLine(subject),
		},
	}, nil
}

// getFirstLine extracts and returns the first line of a commit message.
func getFirstLine(message string) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")

	line, _, _ := strings.Cut(message, "\n")

	return strings.TrimSpace(line)
}
