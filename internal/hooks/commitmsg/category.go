package commitmsg

import (
	"slices"
	"strings"
)

// Category is the conventional commit type of a message.
type Category string

const (
	// CategoryBuild is used for changes to the build system or dependencies.
	CategoryBuild Category = "build"
	// CategoryChore is used for maintenance that touches neither src nor tests.
	CategoryChore Category = "chore"
	// CategoryCI is used for changes to CI configuration.
	CategoryCI Category = "ci"
	// CategoryDocs is used for documentation only changes.
	CategoryDocs Category = "docs"
	// CategoryFeat is used for new features.
	CategoryFeat Category = "feat"
	// CategoryFix is used for bug fixes.
	CategoryFix Category = "fix"
	// CategoryPerf is used for performance improvements.
	CategoryPerf Category = "perf"
	// CategoryRefactor is used for changes that neither fix a bug nor add a feature.
	CategoryRefactor Category = "refactor"
	// CategoryRevert is used for reverted commits.
	CategoryRevert Category = "revert"
	// CategoryStyle is used for formatting changes.
	CategoryStyle Category = "style"
	// CategoryTest is used for adding or correcting tests.
	CategoryTest Category = "test"
)

// categories lists all known categories in lookup order.
var categories = []Category{
	CategoryBuild,
	CategoryChore,
	CategoryCI,
	CategoryDocs,
	CategoryFeat,
	CategoryFix,
	CategoryPerf,
	CategoryRefactor,
	CategoryRevert,
	CategoryStyle,
	CategoryTest,
}

// Categories returns all known categories in lookup order.
func Categories() []Category {
	return slices.Clone(categories)
}

// ClassifyMessage returns the first category whose label prefixes message.
// The test is case-sensitive. No label is a prefix of another, so at most
// one category matches.
func ClassifyMessage(message string) (Category, bool) {
	for _, category := range categories {
		if strings.HasPrefix(message, string(category)) {
			return category, true
		}
	}

	return "", false
}

// Emoji returns the glyph inserted for the category.
// It returns an empty string for unknown categories.
func (c Category) Emoji() string {
	switch c {
	case CategoryBuild:
		return "📦"
	case CategoryChore:
		return "🔧"
	case CategoryCI:
		return "👷"
	case CategoryDocs:
		return "📚"
	case CategoryFeat:
		return "✨"
	case CategoryFix:
		return "🐛"
	case CategoryPerf:
		return "⚡"
	case CategoryRefactor:
		return "🔄"
	case CategoryRevert:
		return "⏪"
	case CategoryStyle:
		return "🎨"
	case CategoryTest:
		return "🧪"
	default:
		return ""
	}
}

func (c Category) String() string {
	return string(c)
}
