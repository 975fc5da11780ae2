package commitmsg

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/rs/zerolog"
)

const (
	// commitEditMsgFile is the file git stores the message being committed in.
	commitEditMsgFile = "COMMIT_EDITMSG"

	messageFilePerm = 0o644
)

// options holds the parsed command-line arguments.
type options struct {
	message string
	file    string
	edit    bool
	baseRef string
	headRef string
	mode    string
	verbose bool
}

// parseArgs parses command-line arguments. Exactly one input source is
// accepted: a positional message, -file, -edit or a ref range.
func parseArgs(config *Config, args []string) (*options, error) {
	if len(args) == 0 {
		return nil, errors.New("expected commit message as a command-line argument")
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Don't print default error messages

	var opts options
	fs.StringVar(&opts.file, "file", "", "Commit message file to rewrite in place")
	fs.BoolVar(&opts.edit, "edit", false, "Rewrite COMMIT_EDITMSG of the current repository")
	fs.StringVar(&opts.baseRef, "base-ref", "", "Base ref or SHA to check from")
	fs.StringVar(&opts.headRef, "head-ref", "", "Head ref or SHA to check to")
	fs.StringVar(&opts.mode, "mode", "", "Annotation mode: strict or idempotent")
	fs.BoolVar(&opts.verbose, "v", false, "Enable debug logging")

	err := fs.Parse(args[1:])
	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected a single commit message argument, got %d", fs.NArg())
	}

	if fs.NArg() == 1 {
		opts.message = fs.Arg(0)
	}

	if opts.mode != "" {
		_, err = ParseMode(opts.mode)
		if err != nil {
			return nil, fmt.Errorf("invalid --mode: %w", err)
		}
	}

	// If only head-ref is provided, default base-ref to main
	if opts.baseRef == "" && opts.headRef != "" {
		opts.baseRef = config.Settings.MainRef
	}

	// If only base-ref is provided, error (need head-ref)
	if opts.baseRef != "" && opts.headRef == "" {
		return nil, errors.New("--head-ref is required when using --base-ref")
	}

	sources := 0
	for _, set := range []bool{fs.NArg() == 1, opts.file != "", opts.edit, opts.headRef != ""} {
		if set {
			sources++
		}
	}

	switch {
	case sources == 0:
		return nil, errors.New("expected commit message as a command-line argument")
	case sources > 1:
		return nil, errors.New("only one of message argument, --file, --edit or --head-ref may be given")
	}

	return &opts, nil
}

// resolveMode picks the annotation mode. Filtering a message argument is
// strict, rewriting a message file is idempotent since git may run the hook
// again on amend. The config file and then the --mode flag override this.
func resolveMode(config *Config, opts *options) (Mode, error) {
	mode := ModeStrict
	if opts.file != "" || opts.edit {
		mode = ModeIdempotent
	}

	if config.Settings.Mode != "" {
		mode = config.Settings.Mode
	}

	if opts.mode != "" {
		parsed, err := ParseMode(opts.mode)
		if err != nil {
			return "", fmt.Errorf("invalid --mode: %w", err)
		}

		mode = parsed
	}

	return mode, nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	return zerolog.New(output).Level(level)
}

// Run annotates a commit message with the emoji of its conventional commit
// type, or checks a range of existing commits if a head ref is given.
func Run(args []string, stdout io.Writer, stderr io.Writer) error {
	// Load configuration from .commit-msg-emoji.yml
	config, err := LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Parse command-line arguments
	opts, err := parseArgs(config, args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, opts.verbose)

	// Dispatch based on input mode
	if opts.headRef != "" {
		repo, openErr := git.PlainOpen(".")
		if openErr != nil {
			return fmt.Errorf("failed to open git repository: %w", openErr)
		}

		return runArgsMode(config, repo, opts.baseRef, opts.headRef, logger)
	}

	mode, err := resolveMode(config, opts)
	if err != nil {
		return err
	}

	logger.Debug().Str("mode", string(mode)).Msg("annotation mode selected")

	switch {
	case opts.edit:
		return runEditMode(config, mode, logger)

	case opts.file != "":
		return runFileMode(config, opts.file, mode, logger)

	default:
		result, processErr := processMessage(config, opts.message, mode, logger)
		if processErr != nil {
			return processErr
		}

		_, err = fmt.Fprintln(stdout, result)
		return err
	}
}

// processMessage runs the classifier on a message unless the message is skipped.
func processMessage(config *Config, message string, mode Mode, logger zerolog.Logger) (string, error) {
	skip, reason := shouldSkipMessage(config.Settings, message)
	if skip {
		logger.Debug().Str("reason", reason).Msg("message skipped")
		return message, nil
	}

	validated, err := Validate(message)
	if err != nil {
		return "", err
	}

	header := validated.Header()
	logger.Debug().
		Str("type", header.Type.String()).
		Str("scope", header.Scope).
		Bool("breaking", header.Breaking).
		Msg("message classified")

	annotated, err := Annotate(validated, mode)
	if err != nil {
		return "", err
	}

	if !annotated.Changed() {
		logger.Debug().Msg("message already annotated")
	}

	return annotated.String(), nil
}

// rewriteMessageFile annotates the message stored in name. The file is only
// written once the message was processed successfully and actually changed.
func rewriteMessageFile(config *Config, fs billy.Filesystem, name string, mode Mode, logger zerolog.Logger) error {
	data, err := util.ReadFile(fs, name)
	if err != nil {
		return fmt.Errorf("failed to read commit message file: %w", err)
	}

	message := string(data)

	result, err := processMessage(config, message, mode, logger)
	if err != nil {
		return err
	}

	if result == message {
		logger.Debug().Str("file", fs.Join(fs.Root(), name)).Msg("commit message unchanged")
		return nil
	}

	err = util.WriteFile(fs, name, []byte(result), messageFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write commit message file: %w", err)
	}

	logger.Debug().Str("file", fs.Join(fs.Root(), name)).Msg("commit message annotated")

	return nil
}

// runFileMode rewrites the message file given by path, as passed to the
// commit-msg hook by git.
func runFileMode(config *Config, path string, mode Mode, logger zerolog.Logger) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fs := osfs.New(filepath.Dir(absPath))

	return rewriteMessageFile(config, fs, filepath.Base(absPath), mode, logger)
}

// runEditMode rewrites COMMIT_EDITMSG in the git directory of the repository
// containing the working directory.
func runEditMode(config *Config, mode Mode, logger zerolog.Logger) error {
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open git repository: %w", err)
	}

	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return errors.New("git repository is not backed by a filesystem")
	}

	return rewriteMessageFile(config, storage.Filesystem(), commitEditMsgFile, mode, logger)
}

// resolveRefOrSHA resolves a ref name or SHA to a commit object.
// Tries as ref first (branches, tags, HEAD), then as SHA.
func resolveRefOrSHA(repo *git.Repository, refOrSHA string) (*object.Commit, error) {
	// Try as ref name first (handles branches, remotes, tags, HEAD, HEAD^, etc.)
	hash, err := repo.ResolveRevision(plumbing.Revision(refOrSHA))
	if err == nil {
		commit, err := repo.CommitObject(*hash)
		if err == nil {
			return commit, nil
		}
	}

	// Try as direct SHA
	commit, err := repo.CommitObject(plumbing.NewHash(refOrSHA))
	if err == nil {
		return commit, nil
	}

	return nil, fmt.Errorf("failed to resolve '%s' as ref or SHA", refOrSHA)
}

// validateCommits checks a list of commits against the rules.
func validateCommits(config *Config, commits []*object.Commit, refName string, logger zerolog.Logger) error {
	var failures []commitFailure

	for _, commit := range commits {
		// Skip merge commits if configured
		if config.Settings.skipMerge() && len(commit.ParentHashes) > 1 {
			continue
		}

		// Skip by author pattern if configured
		if shouldSkipAuthor(commit.Author.Name, commit.Author.Email, config.Settings) {
			logger.Debug().Str("commit", commit.Hash.String()).Str("author", commit.Author.Name).Msg("author skipped")
			continue
		}

		skip, reason := shouldSkipMessage(config.Settings, commit.Message)
		if skip {
			logger.Debug().Str("commit", commit.Hash.String()).Str("reason", reason).Msg("commit skipped")
			continue
		}

		violations := EvaluateRules(config.Settings, commit.Message)
		if len(violations) == 0 {
			continue
		}

		failures = append(failures, commitFailure{commit: commit, violations: violations})
		if config.Settings.FailFast {
			break
		}
	}

	logger.Debug().Int("commits", len(commits)).Int("failed", len(failures)).Str("range", refName).Msg("commits checked")

	if len(failures) > 0 {
		return formatViolationError(refName, failures)
	}

	return nil
}

// runArgsMode checks commits between base and head refs/SHAs.
func runArgsMode(config *Config, repo *git.Repository, baseRef string, headRef string, logger zerolog.Logger) error {
	// Resolve base and head to commits
	baseCommit, err := resolveRefOrSHA(repo, baseRef)
	if err != nil {
		if baseRef == config.Settings.MainRef {
			return fmt.Errorf("%w (hint: use --base-ref to specify a different base)", err)
		}

		return err
	}

	headCommit, err := resolveRefOrSHA(repo, headRef)
	if err != nil {
		return err
	}

	// Get commits in range base..head
	commits, err := getCommitsInRange(baseCommit, headCommit)
	if err != nil {
		return fmt.Errorf("failed to get commits: %w", err)
	}

	refName := fmt.Sprintf("%s..%s", baseRef, headRef)
	return validateCommits(config, commits, refName, logger)
}

// getCommitsInRange returns all commits reachable from newCommit but not from oldCommit.
func getCommitsInRange(oldCommit *object.Commit, newCommit *object.Commit) ([]*object.Commit, error) {
	// Create a set of old commits to exclude
	oldCommits := make(map[plumbing.Hash]bool)
	oldIter := object.NewCommitIterCTime(oldCommit, nil, nil)
	err := oldIter.ForEach(func(c *object.Commit) error {
		oldCommits[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate old commits: %w", err)
	}

	// Get commits from new that are not in old
	var commits []*object.Commit
	newIter := object.NewCommitIterCTime(newCommit, oldCommits, nil)
	err = newIter.ForEach(func(c *object.Commit) error {
		if !oldCommits[c.Hash] {
			commits = append(commits, c)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate new commits: %w", err)
	}

	return commits, nil
}
