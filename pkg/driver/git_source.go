package driver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/pkg/errors"
)

// LoadGitSource clones program.Git in memory, checks out the pinned
// revision and reads program.Main from the worktree.
func LoadGitSource(ctx context.Context, program *ProgramSpec) (*Source, error) {
	candidates, descriptor, err := gitRevisionFromSpec(program)
	if err != nil {
		return nil, err
	}

	fs := memfs.New()
	repo, err := git.CloneContext(ctx, memory.NewStorage(), fs, &git.CloneOptions{
		URL:  program.Git,
		Tags: git.AllTags,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "git clone %s", program.Git)
	}

	var hash *plumbing.Hash
	for _, candidate := range candidates {
		hash, err = repo.ResolveRevision(candidate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "resolve revision %s", descriptor)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return nil, errors.Wrapf(err, "git checkout %s", descriptor)
	}

	file, err := fs.Open(program.Main)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s at %s", program.Main, descriptor)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", program.Main)
	}

	origin := fmt.Sprintf("git+%s@%s:%s", program.Git, hash.String(), program.Main)
	return NewSource(program.Name, origin, string(data)), nil
}

// gitRevisionFromSpec lists the revisions to try for the program's pin.
// Branches other than the remote HEAD only exist as remote-tracking refs.
func gitRevisionFromSpec(program *ProgramSpec) ([]plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(program.Rev); rev != "" {
		return []plumbing.Revision{plumbing.Revision(rev)}, rev, nil
	}
	if tag := strings.TrimSpace(program.Tag); tag != "" {
		return []plumbing.Revision{plumbing.Revision("refs/tags/" + tag)}, tag, nil
	}
	if branch := strings.TrimSpace(program.Branch); branch != "" {
		return []plumbing.Revision{
			plumbing.Revision("refs/heads/" + branch),
			plumbing.Revision("refs/remotes/origin/" + branch),
		}, branch, nil
	}
	return nil, "", fmt.Errorf("git programs require rev, tag, or branch")
}
