// Package git is the version-control transport around the working tree:
// cloning the backup remote into a scratch directory, committing and
// pushing a snapshot, and probing a remote branch. It shells out to the
// git binary.
package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/syncd/pkg/errors"
	"github.com/arthur-debert/syncd/pkg/logging"
)

// Client is what the commands need from version control.
type Client interface {
	// Clone checks out branch of url into dir, creating the branch when
	// the remote does not have it yet.
	Clone(ctx context.Context, url, branch, dir string) error
	// CommitAndPush stages everything in dir, commits and pushes branch.
	// It reports false when there was nothing to commit.
	CommitAndPush(ctx context.Context, dir, message, branch string) (bool, error)
	// VerifyRemote fails unless url has branch.
	VerifyRemote(ctx context.Context, url, branch string) error
}

// CLI implements Client with the git executable.
type CLI struct {
	// Binary defaults to "git" on PATH
	Binary string
}

// New returns a Client using the git binary on PATH.
func New() *CLI {
	return &CLI{Binary: "git"}
}

// Clone implements Client.
func (c *CLI) Clone(ctx context.Context, url, branch, dir string) error {
	logger := logging.GetLogger("git.clone")

	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, errors.ErrGitClone, "failed cleaning repo directory %s", dir)
	}

	if _, err := c.run(ctx, "", "clone", "--branch", branch, "--single-branch", url, dir); err != nil {
		logger.Debug().Err(err).Str("branch", branch).Msg("Branch clone failed, falling back to a plain clone")

		if err := os.RemoveAll(dir); err != nil {
			return errors.Wrapf(err, errors.ErrGitClone, "failed cleaning repo directory %s", dir)
		}
		if _, err := c.run(ctx, "", "clone", url, dir); err != nil {
			return errors.Wrapf(err, errors.ErrGitClone, "failed to clone %s", url).
				WithDetail("url", url)
		}
	}

	return c.ensureBranch(ctx, dir, branch)
}

// ensureBranch leaves dir on branch. An empty remote clones with an unborn
// HEAD on whatever default branch git picks, so the branch may have to be
// created.
func (c *CLI) ensureBranch(ctx context.Context, dir, branch string) error {
	if current, err := c.run(ctx, dir, "symbolic-ref", "--short", "HEAD"); err == nil && strings.TrimSpace(current) == branch {
		return nil
	}
	if _, err := c.run(ctx, dir, "checkout", branch); err == nil {
		return nil
	}

	logger := logging.GetLogger("git.clone")
	logger.Info().Str("branch", branch).Msg("Branch missing on remote, creating it")
	if _, err := c.run(ctx, dir, "checkout", "-b", branch); err != nil {
		return errors.Wrapf(err, errors.ErrGitClone, "failed to create branch %s", branch).
			WithDetail("branch", branch)
	}
	return nil
}

// CommitAndPush implements Client.
func (c *CLI) CommitAndPush(ctx context.Context, dir, message, branch string) (bool, error) {
	logger := logging.GetLogger("git.commit")

	if _, err := c.run(ctx, dir, "add", "--all", "."); err != nil {
		return false, errors.Wrap(err, errors.ErrGitCommit, "failed to stage changes")
	}
	if err := c.cleanGitlinks(ctx, dir); err != nil {
		return false, err
	}

	if _, err := c.run(ctx, dir, "commit", "-m", message); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			logger.Info().Msg("No changes to commit")
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrGitCommit, "git commit failed")
	}

	if _, err := c.run(ctx, dir, "push", "origin", branch); err != nil {
		return true, errors.Wrapf(err, errors.ErrGitPush, "failed to push branch %s", branch).
			WithDetail("branch", branch)
	}
	return true, nil
}

// VerifyRemote implements Client.
func (c *CLI) VerifyRemote(ctx context.Context, url, branch string) error {
	if _, err := c.run(ctx, "", "ls-remote", "--exit-code", url, branch); err != nil {
		return errors.Wrapf(err, errors.ErrGitRemote,
			"git ls-remote could not find branch '%s' on %s", branch, url).
			WithDetail("url", url).
			WithDetail("branch", branch)
	}
	return nil
}

// cleanGitlinks turns staged nested repositories (mode 160000) back into
// regular content.
func (c *CLI) cleanGitlinks(ctx context.Context, dir string) error {
	listing, err := c.run(ctx, dir, "ls-files", "--stage")
	if err != nil {
		return errors.Wrap(err, errors.ErrGitCommit, "failed to list staged files")
	}
	logger := logging.GetLogger("git.commit")
	for _, path := range parseGitlinks(listing) {
		logger.Warn().Str("path", path).Msg("Replacing staged gitlink with its content")
		if _, err := c.run(ctx, dir, "rm", "--cached", path); err != nil {
			return errors.Wrapf(err, errors.ErrGitCommit, "failed to unstage gitlink %s", path)
		}
		if _, err := c.run(ctx, dir, "add", "--force", "--all", path); err != nil {
			return errors.Wrapf(err, errors.ErrGitCommit, "failed to stage %s", path)
		}
	}
	return nil
}

// parseGitlinks extracts gitlink paths from `git ls-files --stage` output.
func parseGitlinks(listing string) []string {
	var out []string
	for _, line := range strings.Split(listing, "\n") {
		prefix, path, ok := strings.Cut(line, "\t")
		if ok && strings.HasPrefix(prefix, "160000 ") {
			out = append(out, path)
		}
	}
	return out
}

func (c *CLI) run(ctx context.Context, dir string, args ...string) (string, error) {
	binary := c.Binary
	if binary == "" {
		binary = "git"
	}
	logging.LogCommand(binary, args)

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), &commandError{args: args, stderr: strings.TrimSpace(stderr.String()), err: err}
	}
	return stdout.String(), nil
}

type commandError struct {
	args   []string
	stderr string
	err    error
}

func (e *commandError) Error() string {
	if e.stderr == "" {
		return fmt.Sprintf("git %s: %v", strings.Join(e.args, " "), e.err)
	}
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.args, " "), e.err, e.stderr)
}

func (e *commandError) Unwrap() error {
	return e.err
}
