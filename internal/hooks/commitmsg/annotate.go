package commitmsg

import (
	"fmt"
	"strings"
)

// Mode selects how Annotate treats messages that already contain an emoji.
type Mode string

const (
	// ModeStrict refuses any message containing an emoji.
	ModeStrict Mode = "strict"
	// ModeIdempotent returns a message with an emoji after the delimiter unchanged.
	// Emoji elsewhere in the message do not prevent annotation.
	ModeIdempotent Mode = "idempotent"
)

// ParseMode converts the textual representation of a mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, ModeIdempotent:
		return Mode(s), nil

	default:
		return "", fmt.Errorf("mode must be '%s' or '%s', got %q", ModeStrict, ModeIdempotent, s)
	}
}

// AnnotatedMessage is a commit message with the category emoji in place.
type AnnotatedMessage struct {
	message string
	changed bool
}

// String returns the annotated message.
func (m AnnotatedMessage) String() string {
	return m.message
}

// Changed reports whether Annotate inserted an emoji.
func (m AnnotatedMessage) Changed() bool {
	return m.changed
}

// Annotate inserts a space and the category emoji directly after the first
// ':' of the message, e.g. "feat: add login" becomes "feat: ✨ add login".
func Annotate(msg ValidatedMessage, mode Mode) (AnnotatedMessage, error) {
	idx := strings.IndexByte(msg.raw, ':')
	if idx < 0 {
		panic("commitmsg: validated message without ':' delimiter")
	}

	switch mode {
	case ModeStrict:
		if containsEmoji(msg.raw) {
			return AnnotatedMessage{}, fmt.Errorf("%w: %q", ErrAlreadyAnnotated, getFirstLine(msg.raw))
		}

	case ModeIdempotent:
		if msg.header.Emoji != "" {
			return AnnotatedMessage{message: msg.raw, changed: false}, nil
		}

	default:
		return AnnotatedMessage{}, fmt.Errorf("unknown annotation mode %q", mode)
	}

	var sb strings.Builder
	sb.Grow(len(msg.raw) + len(" ") + len(msg.header.Type.Emoji()))
	sb.WriteString(msg.raw[:idx+1])
	sb.WriteString(" ")
	sb.WriteString(msg.header.Type.Emoji())
	sb.WriteString(msg.raw[idx+1:])

	return AnnotatedMessage{message: sb.String(), changed: true}, nil
}

// Process validates raw and annotates it according to mode.
func Process(raw string, mode Mode) (string, error) {
	validated, err := Validate(raw)
	if err != nil {
		return "", err
	}

	annotated, err := Annotate(validated, mode)
	if err != nil {
		return "", err
	}

	return annotated.String(), nil
}
