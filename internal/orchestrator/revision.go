package orchestrator

import (
	"github.com/go-git/go-git/v5"
)

// contentRevision returns the HEAD commit of the git work tree holding
// contentPath, or "" when there is none.
func contentRevision(contentPath string) string {
	repo, err := git.PlainOpenWithOptions(contentPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	return ref.Hash().String()
}
