// Package gittree lists the files of a remote git branch without checking
// out a working tree.
//
// # Overview
//
// [List] initializes a bare object store in a temporary workspace, registers
// the remote as "origin", fetches it with the default ref-specs
// (+refs/heads/*:refs/remotes/origin/*), resolves origin/<branch>, and walks
// the commit's tree depth-first:
//
//   - blobs (regular, executable and symlink entries) are emitted as
//     slash-joined paths
//   - subtrees are descended into
//   - submodule links are skipped, since resolving them needs another fetch
//
// Paths are collected in a case-insensitive [PathSet]: two entries that
// differ only by letter case collapse to the first one seen.
//
// # Outcomes
//
// A branch that does not exist, or a remote with no commits, yields an empty
// listing rather than an error. Fetch failures are reported with
// [errors.ErrCodeNetwork] and are not retried here.
//
//	listing, err := gittree.List(ctx, "https://github.com/NuGet/NuGet.Client.git", "dev", gittree.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(listing.Commit, len(listing.Paths))
package gittree
