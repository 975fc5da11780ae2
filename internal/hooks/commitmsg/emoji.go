package commitmsg

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

const variationSelector16 = "\ufe0f"

// isEmoji reports whether a single grapheme cluster is an emoji.
// Plain ASCII never counts, although digits, '#' and '*' carry the Unicode
// Emoji property.
func isEmoji(cluster string) bool {
	if cluster == "" || isASCII(cluster) {
		return false
	}

	for _, category := range categories {
		if sameEmoji(cluster, category.Emoji()) {
			return true
		}
	}

	return gomoji.ContainsEmoji(cluster)
}

// containsEmoji scans the whole message for an emoji grapheme cluster.
func containsEmoji(message string) bool {
	state := -1
	rest := message

	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)

		if isEmoji(cluster) {
			return true
		}
	}

	return false
}

// leadingEmoji splits an emoji grapheme cluster off the start of text.
func leadingEmoji(text string) (emoji string, rest string, ok bool) {
	if text == "" {
		return "", text, false
	}

	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	if !isEmoji(cluster) {
		return "", text, false
	}

	return cluster, rest, true
}

// sameEmoji compares two emoji ignoring an optional emoji presentation selector.
func sameEmoji(a string, b string) bool {
	return strings.TrimSuffix(a, variationSelector16) == strings.TrimSuffix(b, variationSelector16)
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= 0x80 {
			return false
		}
	}

	return true
}
