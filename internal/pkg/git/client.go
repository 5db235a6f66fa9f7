// Package git wraps the git CLI operations Memo needs.
package git

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/memocli/memo/internal/pkg/errors"
)

const (
	commandTimeout = 10 * time.Second
	// Editor sessions are interactive, so give the user room.
	editorTimeout = 60 * time.Minute
)

// Client defines the git operations used by Memo.
type Client interface {
	// IsRepository checks whether the working directory is inside a git repo.
	IsRepository(ctx context.Context) bool

	// HasStagedChanges reports whether the index differs from HEAD.
	HasStagedChanges(ctx context.Context) (bool, error)

	// StagedDiff returns the staged diff, failing if nothing is staged.
	StagedDiff(ctx context.Context) (string, error)

	// StagedFiles lists the paths of staged files.
	StagedFiles(ctx context.Context) ([]string, error)

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// CommitWithEditor creates a commit seeded with the message and opens
	// the user's editor to refine it.
	CommitWithEditor(ctx context.Context, message string) error

	// RecentSubjects returns up to limit recent commit subject lines,
	// newest first.
	RecentSubjects(ctx context.Context, limit int) ([]string, error)
}

// CommandClient implements Client by shelling out to the git binary.
type CommandClient struct {
	workDir string
}

// NewClient creates a CommandClient for the current working directory.
func NewClient() *CommandClient {
	return &CommandClient{}
}

// NewClientWithDir creates a CommandClient rooted at the given directory.
func NewClientWithDir(workDir string) *CommandClient {
	return &CommandClient{workDir: workDir}
}

func (c *CommandClient) IsRepository(ctx context.Context) bool {
	out, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

func (c *CommandClient) HasStagedChanges(ctx context.Context) (bool, error) {
	// diff --cached --quiet exits 1 when the index differs from HEAD.
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	cmd.Dir = c.workDir
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		return false, apperrors.NewTimeoutError(ctx.Err())
	}
	return false, apperrors.NewGitError(err, "")
}

func (c *CommandClient) StagedDiff(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "diff", "--cached")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", apperrors.NewNoStagedChangesError()
	}
	return out, nil
}

func (c *CommandClient) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

func (c *CommandClient) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)
	return err
}

func (c *CommandClient) CommitWithEditor(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, editorTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "commit", "--edit", "-m", message)
	cmd.Dir = c.workDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		// An aborted editor session (empty message) exits non-zero. The
		// caller decides how to present that, so keep the raw failure.
		return apperrors.NewGitError(err, "")
	}
	return nil
}

func (c *CommandClient) RecentSubjects(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	out, err := c.run(ctx, "log", "--max-count="+strconv.Itoa(limit), "--pretty=format:%s")
	if err != nil {
		// A repository with no commits yet has no history to analyze.
		return nil, nil
	}
	var subjects []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			subjects = append(subjects, line)
		}
	}
	return subjects, nil
}

// run executes a git subcommand with a timeout and returns combined output.
func (c *CommandClient) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.workDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(ctx.Err())
		}
		return "", apperrors.NewGitError(err, string(out))
	}
	return string(out), nil
}
