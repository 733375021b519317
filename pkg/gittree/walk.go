package gittree

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Walk collects every blob path reachable from root. Subtrees are loaded from
// s. Git trees are acyclic, so no visited set is kept.
func Walk(s storer.EncodedObjectStorer, root *object.Tree) (*PathSet, error) {
	set := NewPathSet()
	var segments []string
	if err := walkTree(s, root, &segments, set); err != nil {
		return nil, err
	}
	return set, nil
}

func walkTree(s storer.EncodedObjectStorer, tree *object.Tree, segments *[]string, set *PathSet) error {
	for _, entry := range tree.Entries {
		*segments = append(*segments, entry.Name)

		switch entry.Mode {
		case filemode.Regular, filemode.Deprecated, filemode.Executable, filemode.Symlink:
			set.Add(strings.Join(*segments, "/"))
		case filemode.Dir:
			sub, err := object.GetTree(s, entry.Hash)
			if err != nil {
				return err
			}
			if err := walkTree(s, sub, segments, set); err != nil {
				return err
			}
		case filemode.Submodule:
			// Not resolvable without fetching the linked repository.
		}

		*segments = (*segments)[:len(*segments)-1]
	}
	return nil
}
