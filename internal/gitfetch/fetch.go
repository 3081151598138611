// Package gitfetch clones or updates the upstream documentation repository
// the migration reads from.
package gitfetch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	ggit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/open-constructs/docmigrate/internal/config"
	"github.com/open-constructs/docmigrate/internal/errors"
)

// Result captures the outcome of a fetch, with pre/post head commits for
// change detection.
type Result struct {
	Path     string
	PreHead  string // empty on fresh clone
	PostHead string
	Updated  bool // clone happened or head moved
}

// Fetch ensures the upstream repository is present at up.Path: a fresh clone
// when the directory has no repository, a pull of up.Ref otherwise.
func Fetch(ctx context.Context, up config.UpstreamConfig) (Result, error) {
	if up.URL == "" {
		return Result{}, errors.New(errors.CategoryGit, "upstream url is not configured")
	}
	if repoExists(up.Path) {
		return update(ctx, up)
	}
	return clone(ctx, up)
}

func repoExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

func clone(ctx context.Context, up config.UpstreamConfig) (Result, error) {
	slog.Info("cloning upstream repository", "url", up.URL, "ref", up.Ref, "path", up.Path)
	opts := &ggit.CloneOptions{URL: up.URL}
	if up.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(up.Ref)
		opts.SingleBranch = true
	}
	repo, err := ggit.PlainCloneContext(ctx, up.Path, false, opts)
	if err != nil {
		return Result{}, errors.Wrap(err, errors.CategoryGit, "clone upstream repository").
			WithContext("url", up.URL)
	}
	res := Result{Path: up.Path, Updated: true}
	if head, herr := repo.Head(); herr == nil {
		res.PostHead = head.Hash().String()
	}
	slog.Info("upstream repository cloned", "path", up.Path, "head", short(res.PostHead))
	return res, nil
}

func update(ctx context.Context, up config.UpstreamConfig) (Result, error) {
	repo, err := ggit.PlainOpen(up.Path)
	if err != nil {
		return Result{}, errors.Wrap(err, errors.CategoryGit, "open upstream repository").
			WithContext("path", up.Path)
	}
	res := Result{Path: up.Path}
	if head, herr := repo.Head(); herr == nil {
		res.PreHead = head.Hash().String()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return Result{}, errors.Wrap(err, errors.CategoryGit, "open worktree")
	}
	slog.Info("updating upstream repository", "path", up.Path, "ref", up.Ref)
	pull := &ggit.PullOptions{RemoteName: "origin"}
	if up.Ref != "" {
		pull.ReferenceName = plumbing.NewBranchReferenceName(up.Ref)
		pull.SingleBranch = true
	}
	switch err := wt.PullContext(ctx, pull); err {
	case nil, ggit.NoErrAlreadyUpToDate:
	default:
		return Result{}, errors.Wrap(err, errors.CategoryGit, "pull upstream repository").
			WithContext("url", up.URL)
	}
	if head, herr := repo.Head(); herr == nil {
		res.PostHead = head.Hash().String()
	}
	res.Updated = res.PreHead != res.PostHead
	if res.Updated {
		slog.Info("upstream repository updated", "from", short(res.PreHead), "to", short(res.PostHead))
	} else {
		slog.Info("upstream repository already up to date", "head", short(res.PostHead))
	}
	return res, nil
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
