package utils

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	log "github.com/sirupsen/logrus"
)

// GoGitClient implements core.VersionControl on go-git, so no git binary is
// needed. When Author is nil commits take the identity from git config.
type GoGitClient struct {
	repo   *git.Repository
	root   string
	Author *object.Signature
}

// OpenGitRepository opens the repository containing path, searching parent
// directories for the .git directory.
func OpenGitRepository(path string) (*GoGitClient, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository at %s has no worktree: %w", path, err)
	}
	return &GoGitClient{repo: repo, root: worktree.Filesystem.Root()}, nil
}

// CurrentBranch returns the short branch name, or "" on a detached HEAD.
func (c *GoGitClient) CurrentBranch() (string, error) {
	head, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

func (c *GoGitClient) CreateBranch(name string) error {
	worktree, err := c.repo.Worktree()
	if err != nil {
		return err
	}
	// The new branch starts at HEAD, so keeping the index and working tree
	// carries local changes over unchanged.
	err = worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

func (c *GoGitClient) SwitchBranch(name string) error {
	worktree, err := c.repo.Worktree()
	if err != nil {
		return err
	}
	err = worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	if err != nil {
		return fmt.Errorf("failed to switch to branch %s: %w", name, err)
	}
	return nil
}

// Add stages path, which may be absolute or relative to the working
// directory of the process.
func (c *GoGitClient) Add(path string) error {
	worktree, err := c.repo.Worktree()
	if err != nil {
		return err
	}
	rel, err := c.worktreePath(path)
	if err != nil {
		return err
	}
	if _, err := worktree.Add(rel); err != nil {
		return fmt.Errorf("failed to stage %s: %w", rel, err)
	}
	return nil
}

func (c *GoGitClient) Commit(message string) error {
	worktree, err := c.repo.Worktree()
	if err != nil {
		return err
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{Author: c.Author})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	log.Debugf("Created commit %s", hash)
	return nil
}

func (c *GoGitClient) worktreePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(c.root, abs)
	if err != nil {
		return "", fmt.Errorf("%s is outside the repository: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}
