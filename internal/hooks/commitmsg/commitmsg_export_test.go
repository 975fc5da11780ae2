package commitmsg

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

// Test helpers - exported for testing only

// Options exposes the parsed command-line arguments for testing.
type Options struct {
	Message string
	File    string
	Edit    bool
	BaseRef string
	HeadRef string
	Mode    string
	Verbose bool
}

// ParseArgsForTesting exposes parseArgs for testing.
func ParseArgsForTesting(config *Config, args []string) (Options, error) {
	opts, err := parseArgs(config, args)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Message: opts.message,
		File:    opts.file,
		Edit:    opts.edit,
		BaseRef: opts.baseRef,
		HeadRef: opts.headRef,
		Mode:    opts.mode,
		Verbose: opts.verbose,
	}, nil
}

// ResolveModeForTesting exposes resolveMode for testing.
func ResolveModeForTesting(config *Config, args []string) (Mode, error) {
	opts, err := parseArgs(config, args)
	if err != nil {
		return "", err
	}

	return resolveMode(config, opts)
}

// ResolveRefOrSHAForTesting exposes resolveRefOrSHA for testing.
func ResolveRefOrSHAForTesting(repo *git.Repository, refOrSHA string) (*object.Commit, error) {
	return resolveRefOrSHA(repo, refOrSHA)
}

// RewriteMessageFileForTesting exposes rewriteMessageFile for testing.
func RewriteMessageFileForTesting(config *Config, fs billy.Filesystem, name string, mode Mode) error {
	return rewriteMessageFile(config, fs, name, mode, zerolog.Nop())
}

// ShouldSkipMessageForTesting exposes shouldSkipMessage for testing.
func ShouldSkipMessageForTesting(settings Settings, message string) bool {
	skip, _ := shouldSkipMessage(settings, message)
	return skip
}

// ContainsEmojiForTesting exposes containsEmoji for testing.
func ContainsEmojiForTesting(text string) bool {
	return containsEmoji(text)
}
