package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// RepositoryRef identifies a GitHub repository
type RepositoryRef struct {
	Owner string
	Name  string
}

// ParseRepositoryRef parses an "owner/name" identifier such as GITHUB_REPOSITORY
func ParseRepositoryRef(s string) (RepositoryRef, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepositoryRef{}, goerr.Wrap(ErrInvalidRepository, "failed to parse repository", goerr.V("repository", s))
	}

	return RepositoryRef{Owner: owner, Name: name}, nil
}

func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}
