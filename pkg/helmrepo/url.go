package helmrepo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// IndexFile is the name of the index document at the root of a repository.
const IndexFile = "index.yaml"

var (
	ErrRepoURLEmpty   = errors.New("repo URL is empty")
	ErrInvalidRepoURL = errors.New("invalid repo URL")
)

// ResolveIndexURL returns the URL of the index document for the repository at
// source. [IndexFile] is appended unless the path already ends with it,
// ignoring a trailing slash.
func ResolveIndexURL(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", ErrRepoURLEmpty
	}

	u, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRepoURL, err)
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return "", fmt.Errorf("%w: %q: unsupported scheme %q", ErrInvalidRepoURL, source, u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("%w: %q: missing host", ErrInvalidRepoURL, source)
	}

	if p := strings.TrimSuffix(u.Path, "/"); strings.HasSuffix(p, "/"+IndexFile) {
		u.Path = p
		u.RawPath = strings.TrimSuffix(u.RawPath, "/")

		return u.String(), nil
	}

	return u.JoinPath(IndexFile).String(), nil
}
