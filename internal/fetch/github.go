package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/queryscan/queryscan/internal/model"
)

// defaultAPIBase is the GitHub REST API base URL.
const defaultAPIBase = "https://api.github.com"

// defaultHTTPTimeout bounds each API and download request. Module files
// are small; anything slower than this indicates a network problem, not a
// large payload.
const defaultHTTPTimeout = 20 * time.Second

// githubURLPattern extracts the org and repository from a GitHub URL.
var githubURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)

// contentsEntry is the subset of the GitHub contents API response we read.
type contentsEntry struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// GitHubFetcher downloads a collection's modules from a GitHub repository
// using the contents API. It lists plugins/modules and fetches each module
// file's raw content.
type GitHubFetcher struct {
	org        string
	repo       string
	collection string
	sourceURL  string
	apiBase    string
	client     *http.Client
	logger     *slog.Logger
}

// GitHubOption configures a GitHubFetcher.
type GitHubOption func(*GitHubFetcher)

// WithAPIBase overrides the GitHub API base URL. Tests point this at an
// httptest server.
func WithAPIBase(base string) GitHubOption {
	return func(f *GitHubFetcher) {
		f.apiBase = strings.TrimSuffix(base, "/")
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) GitHubOption {
	return func(f *GitHubFetcher) {
		f.client = client
	}
}

// WithGitHubLogger sets the logger for fetch progress.
func WithGitHubLogger(logger *slog.Logger) GitHubOption {
	return func(f *GitHubFetcher) {
		f.logger = logger
	}
}

// NewGitHubFetcher creates a fetcher for the given GitHub URL. The
// collection name, when empty, is derived as "org.repo".
func NewGitHubFetcher(url, collection string, opts ...GitHubOption) (*GitHubFetcher, error) {
	m := githubURLPattern.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("%w: %q is not a GitHub URL", ErrInvalidSource, url)
	}

	org := m[1]
	repo := strings.TrimSuffix(strings.TrimSuffix(m[2], "/"), ".git")

	if collection == "" {
		collection = org + "." + repo
	}

	f := &GitHubFetcher{
		org:        org,
		repo:       repo,
		collection: collection,
		sourceURL:  url,
		apiBase:    defaultAPIBase,
		client:     &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f, nil
}

// CollectionName returns the collection's namespace.collection name.
func (f *GitHubFetcher) CollectionName() string {
	return f.collection
}

// Source returns the GitHub URL the modules come from.
func (f *GitHubFetcher) Source() string {
	return f.sourceURL
}

// Fetch lists plugins/modules through the contents API and downloads each
// module file in listing order. A module whose download fails is skipped
// with a warning rather than failing the whole fetch; per-module fetch
// failures are this fetcher's concern, and a missing module is simply
// absent from the output.
func (f *GitHubFetcher) Fetch(ctx context.Context) ([]*model.ModuleDocument, error) {
	listURL := fmt.Sprintf("%s/repos/%s/%s/contents/plugins/modules", f.apiBase, f.org, f.repo)

	body, err := f.get(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules for %s/%s: %w", f.org, f.repo, err)
	}

	var entries []contentsEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("unexpected contents API response for %s/%s: %w", f.org, f.repo, err)
	}
	f.logger.Debug("listed module directory",
		"org", f.org,
		"repo", f.repo,
		"files", len(entries),
	)

	docs := make([]*model.ModuleDocument, 0, len(entries))
	for _, entry := range entries {
		if !isModuleFile(entry.Name) {
			continue
		}

		name := moduleName(entry.Name)
		content, err := f.get(ctx, entry.DownloadURL)
		if err != nil {
			f.logger.Warn("skipping module, download failed",
				"module", name,
				"error", err,
			)
			continue
		}

		f.logger.Debug("fetched module", "module", name, "bytes", len(content))
		docs = append(docs, &model.ModuleDocument{
			Name:       name,
			SourceText: string(content),
		})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoModules, f.org, f.repo)
	}
	return docs, nil
}

// get performs one GET request and returns the response body.
func (f *GitHubFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// Ensure GitHubFetcher implements Fetcher.
var _ Fetcher = (*GitHubFetcher)(nil)
