package docset

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// lastCommitTimes returns the committer time of the newest commit touching each relative
// path. Outside a repository, or in a repository without commits, it returns an empty map.
// Untracked files are absent from the result.
func lastCommitTimes(ctx context.Context, root string, rels []string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(rels))

	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return out, nil
	}
	if err != nil {
		return out, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no files to date.
		return out, nil
	}
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return out, nil
	}
	if err != nil {
		return out, err
	}

	prefix, err := repoPrefix(wt.Filesystem.Root(), root)
	if err != nil {
		return out, err
	}

	for _, rel := range rels {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		name := path.Join(prefix, rel)
		iter, err := repo.Log(&git.LogOptions{From: head.Hash(), FileName: &name})
		if err != nil {
			return out, err
		}
		c, err := iter.Next()
		iter.Close()
		if errors.Is(err, io.EOF) {
			continue
		}
		if err != nil {
			return out, err
		}
		out[rel] = c.Committer.When
	}
	return out, nil
}

// repoPrefix returns root relative to the worktree top as a slash path ("." when equal).
func repoPrefix(top, root string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(top); err == nil {
		top = resolved
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(top, root)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
