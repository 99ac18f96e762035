// Package sync commits dashboard data changes to the surrounding git repo
// after a successful run.
package sync

import (
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// GitManager handles git operations on the repository containing the data
// directory.
type GitManager struct {
	RepoPath string
	DataPath string // path of the data directory relative to the repo root
}

// NewGitManager creates a new GitManager.
func NewGitManager(repoPath, dataPath string) *GitManager {
	return &GitManager{RepoPath: repoPath, DataPath: dataPath}
}

// Commit stages the data directory and commits it. A clean worktree is not an
// error; the commit is simply skipped.
func (g *GitManager) Commit(message string) error {
	r, err := git.PlainOpen(g.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to open repo: %w", err)
	}

	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	if _, err := w.Add(g.DataPath); err != nil {
		return fmt.Errorf("failed to add changes: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	if message == "" {
		message = fmt.Sprintf("Update dashboard data - %s", time.Now().Format("2006-01-02"))
	}

	_, err = w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Life Pilot",
			Email: "pilot@life.local",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Push pushes committed changes to the remote, trying the default SSH key
// first and falling back to whatever ambient auth go-git finds.
func (g *GitManager) Push() error {
	r, err := git.PlainOpen(g.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to open repo: %w", err)
	}

	home, _ := os.UserHomeDir()
	sshKeyPath := fmt.Sprintf("%s/.ssh/id_rsa", home)

	var pushErr error
	publicKeys, err := ssh.NewPublicKeysFromFile("git", sshKeyPath, "")
	if err != nil {
		pushErr = r.Push(&git.PushOptions{})
	} else {
		pushErr = r.Push(&git.PushOptions{Auth: publicKeys})
	}

	if pushErr != nil {
		if pushErr == git.NoErrAlreadyUpToDate {
			return nil
		}
		return fmt.Errorf("failed to push: %w", pushErr)
	}
	return nil
}
