package helmrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"helm.sh/helm/v3/pkg/getter"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/macropower/helm-list-charts/pkg/listerrors"
	"github.com/macropower/helm-list-charts/pkg/version"
)

const DefaultTimeout = 30 * time.Second

var (
	// DefaultMaxIndexSize is the largest index document [Fetcher] accepts by
	// default.
	DefaultMaxIndexSize = resource.MustParse("20Mi")

	ErrIndexTooLarge = errors.New("index exceeds maximum size")
)

// IndexGetter retrieves the raw bytes of an index document.
// See [Fetcher] for an implementation.
type IndexGetter interface {
	Fetch(ctx context.Context, indexURL string) ([]byte, error)
}

// FetchError is returned by [Fetcher.Fetch]. It matches
// [listerrors.ErrFetch] as well as the underlying cause.
type FetchError struct {
	Err error
	URL string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%v %q: %v", listerrors.ErrFetch, e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{listerrors.ErrFetch, e.Err}
}

// Fetcher issues a single GET for an index document. It never retries.
// Create instances with [NewFetcher].
type Fetcher struct {
	providers    getter.Providers
	MaxIndexSize resource.Quantity
	UserAgent    string
	Timeout      time.Duration
}

type FetcherOpt func(*Fetcher)

// WithTimeout bounds the whole request, including reading the body.
func WithTimeout(timeout time.Duration) FetcherOpt {
	return func(f *Fetcher) {
		f.Timeout = timeout
	}
}

// WithMaxIndexSize rejects index documents larger than size. A zero quantity
// disables the check. The check runs after the body has been read, so it
// bounds what is accepted, not how much is downloaded.
func WithMaxIndexSize(size resource.Quantity) FetcherOpt {
	return func(f *Fetcher) {
		f.MaxIndexSize = size
	}
}

func WithUserAgent(userAgent string) FetcherOpt {
	return func(f *Fetcher) {
		f.UserAgent = userAgent
	}
}

// NewFetcher creates a new [Fetcher] serving http and https URLs.
func NewFetcher(opts ...FetcherOpt) *Fetcher {
	f := &Fetcher{
		providers: getter.Providers{
			getter.Provider{
				Schemes: []string{"http", "https"},
				New:     getter.NewHTTPGetter,
			},
		},
		MaxIndexSize: DefaultMaxIndexSize,
		UserAgent:    "helm-list-charts/" + version.Version,
		Timeout:      DefaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves the document at indexURL. All failures are returned as a
// [*FetchError].
func (f *Fetcher) Fetch(ctx context.Context, indexURL string) ([]byte, error) {
	u, err := url.Parse(indexURL)
	if err != nil {
		return nil, &FetchError{URL: indexURL, Err: err}
	}

	g, err := f.providers.ByScheme(u.Scheme)
	if err != nil {
		return nil, &FetchError{URL: indexURL, Err: err}
	}

	logger := slog.With(slog.String("url", indexURL))
	logger.DebugContext(ctx, "fetching index",
		slog.Duration("timeout", f.Timeout),
		slog.String("user_agent", f.UserAgent),
	)

	type result struct {
		err error
		buf *bytes.Buffer
	}

	done := make(chan result, 1)
	go func() {
		buf, err := g.Get(indexURL,
			getter.WithTimeout(f.Timeout),
			getter.WithUserAgent(f.UserAgent),
		)
		done <- result{buf: buf, err: err}
	}()

	var res result

	select {
	case <-ctx.Done():
		return nil, &FetchError{URL: indexURL, Err: ctx.Err()}
	case res = <-done:
	}

	if res.err != nil {
		return nil, &FetchError{URL: indexURL, Err: res.err}
	}

	size := int64(res.buf.Len())
	if limit := f.MaxIndexSize.Value(); limit > 0 && size > limit {
		return nil, &FetchError{
			URL: indexURL,
			Err: fmt.Errorf("%w: %d bytes > %s", ErrIndexTooLarge, size, f.MaxIndexSize.String()),
		}
	}

	logger.DebugContext(ctx, "fetched index", slog.Int64("bytes", size))

	return res.buf.Bytes(), nil
}
