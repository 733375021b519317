package gittree

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/workspace"
)

const (
	remoteName      = "origin"
	workspacePrefix = "dependents-tree"
)

// Options configures listing.
type Options struct {
	Token    string      // sent as HTTP basic auth to http(s) remotes when set
	Progress io.Writer   // receives the remote's sideband progress (optional)
	Logger   *log.Logger // debug output and workspace cleanup warnings (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Listing is the file set of one branch head.
type Listing struct {
	Commit string   // resolved commit hash, empty when the branch did not resolve
	Paths  []string // blob paths, unique under case folding
}

// Empty reports whether the listing has no files.
func (l *Listing) Empty() bool { return len(l.Paths) == 0 }

// ListFiles returns the file paths on branch of the repository at cloneURL.
func ListFiles(ctx context.Context, cloneURL, branch string) ([]string, error) {
	l, err := List(ctx, cloneURL, branch, Options{})
	if err != nil {
		return nil, err
	}
	return l.Paths, nil
}

// List fetches cloneURL into a temporary bare repository and walks the tree
// of origin/<branch>. The workspace is removed before List returns.
func List(ctx context.Context, cloneURL, branch string, opts Options) (*Listing, error) {
	opts = opts.WithDefaults()

	var listing *Listing
	err := workspace.With(workspacePrefix, opts.Logger, func(dir string) error {
		var err error
		listing, err = list(ctx, dir, cloneURL, branch, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func list(ctx context.Context, dir, cloneURL, branch string, opts Options) (*Listing, error) {
	repo, err := gogit.PlainInit(dir, true)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "init object store")
	}

	remote, err := repo.CreateRemote(&config.RemoteConfig{
		Name: remoteName,
		URLs: []string{cloneURL},
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "add remote %s", cloneURL)
	}

	start := time.Now()
	err = remote.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   remote.Config().Fetch,
		Auth:       auth(cloneURL, opts.Token),
		Progress:   opts.Progress,
	})
	switch {
	case err == nil, errors.Is(err, gogit.NoErrAlreadyUpToDate):
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		opts.Logger.Debug("remote has no commits", "url", cloneURL)
		return &Listing{}, nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", cloneURL)
	}
	opts.Logger.Debug("fetched", "url", cloneURL, "elapsed", time.Since(start).Round(time.Millisecond))

	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, branch), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		opts.Logger.Debug("branch not found", "url", cloneURL, "branch", branch)
		return &Listing{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "resolve %s/%s", remoteName, branch)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		// Branch points at something other than a commit.
		opts.Logger.Debug("branch does not resolve to a commit", "branch", branch, "err", err)
		return &Listing{}, nil
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read tree of %s", commit.Hash)
	}

	set, err := Walk(repo.Storer, tree)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "walk tree of %s", commit.Hash)
	}
	return &Listing{Commit: commit.Hash.String(), Paths: set.Paths()}, nil
}

func auth(cloneURL, token string) transport.AuthMethod {
	if token == "" || !strings.HasPrefix(cloneURL, "http") {
		return nil
	}
	return &githttp.BasicAuth{Username: "x-access-token", Password: token}
}
