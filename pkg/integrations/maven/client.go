package maven

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/stackforge/pkg/cache"
	"github.com/matzehuels/stackforge/pkg/integrations"
)

const (
	// DefaultSearchURL is the Maven Central Solr search endpoint.
	DefaultSearchURL = "https://search.maven.org/solrsearch/select"

	cacheNamespace = "maven"
)

// ArtifactInfo holds the latest-version answer for a Maven artifact.
//
// Zero values: All string fields are empty.
// This struct is safe for concurrent reads after construction.
type ArtifactInfo struct {
	GroupID    string `json:"group_id"`    // Maven groupId (e.g., "com.google.guava")
	ArtifactID string `json:"artifact_id"` // Maven artifactId (e.g., "guava")
	Version    string `json:"version"`     // Latest version (e.g., "32.1.3-jre", never empty in valid info)
}

// Coordinate returns the Maven coordinate string "groupId:artifactId".
func (a *ArtifactInfo) Coordinate() string {
	return a.GroupID + ":" + a.ArtifactID
}

// Client provides access to a Maven repository.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	searchURL string
	repoURL   string
	keys      cache.Keyer
}

// Option configures a [Client].
type Option func(*Client)

// WithSearchURL overrides the Solr search endpoint.
func WithSearchURL(url string) Option {
	return func(c *Client) { c.searchURL = url }
}

// WithRepository makes the client read maven-metadata.xml from the given
// repository base URL (e.g. "https://repo1.maven.org/maven2") instead of
// using the search API.
func WithRepository(url string) Option {
	return func(c *Client) { c.repoURL = strings.TrimSuffix(url, "/") }
}

// WithKeyer sets the cache keyer (for key prefixes shared across deployments).
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) { c.keys = k }
}

// NewClient creates a Maven client caching answers in c for cacheTTL.
func NewClient(c cache.Cache, cacheTTL time.Duration, opts ...Option) *Client {
	client := &Client{
		Client:    integrations.NewClient(c, cacheNamespace, cacheTTL, integrations.DefaultHeaders()),
		searchURL: DefaultSearchURL,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FetchArtifact retrieves the latest version of a Maven artifact.
//
// The coordinate parameter must be in the format "groupId:artifactId"; a
// trailing ":version" is ignored.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - ArtifactInfo populated with the latest version on success
//   - [integrations.ErrNotFound] if the artifact doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - Error if coordinate format is invalid
//
// The returned ArtifactInfo pointer is never nil if err is nil.
func (c *Client) FetchArtifact(ctx context.Context, coordinate string, refresh bool) (*ArtifactInfo, error) {
	groupID, artifactID, err := parseCoordinate(coordinate)
	if err != nil {
		return nil, err
	}

	key := c.keys.VersionKey(cacheNamespace, groupID+":"+artifactID)

	var info ArtifactInfo
	err = c.Cached(ctx, key, refresh, &info, func() error {
		if c.repoURL != "" {
			return c.fetchMetadata(ctx, groupID, artifactID, &info)
		}
		return c.search(ctx, groupID, artifactID, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) search(ctx context.Context, groupID, artifactID string, info *ArtifactInfo) error {
	query := fmt.Sprintf("g:%q AND a:%q", groupID, artifactID)
	url := fmt.Sprintf("%s?q=%s&rows=1&wt=json", c.searchURL, integrations.URLEncode(query))

	var resp searchResponse
	if err := c.Get(ctx, url, &resp); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: maven artifact %s:%s", err, groupID, artifactID)
		}
		return err
	}
	if resp.Response.NumFound == 0 || len(resp.Response.Docs) == 0 {
		return fmt.Errorf("%w: maven artifact %s:%s", integrations.ErrNotFound, groupID, artifactID)
	}

	doc := resp.Response.Docs[0]
	version := doc.LatestVersion
	if version == "" {
		version = doc.Version
	}
	if version == "" {
		return fmt.Errorf("%w: no version for maven artifact %s:%s", integrations.ErrNotFound, groupID, artifactID)
	}

	*info = ArtifactInfo{GroupID: groupID, ArtifactID: artifactID, Version: version}
	return nil
}

func (c *Client) fetchMetadata(ctx context.Context, groupID, artifactID string, info *ArtifactInfo) error {
	url := MetadataURL(c.repoURL, groupID, artifactID)

	var md Metadata
	if err := c.GetXML(ctx, url, &md); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: maven artifact %s:%s", err, groupID, artifactID)
		}
		return err
	}
	version := md.Latest(false)
	if version == "" {
		return fmt.Errorf("%w: no version for maven artifact %s:%s", integrations.ErrNotFound, groupID, artifactID)
	}

	*info = ArtifactInfo{GroupID: groupID, ArtifactID: artifactID, Version: version}
	return nil
}

func parseCoordinate(coord string) (groupID, artifactID string, err error) {
	parts := strings.Split(coord, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid maven coordinate %q (expected groupId:artifactId)", coord)
	}
	return parts[0], parts[1], nil
}

type searchResponse struct {
	Response struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	GroupID       string `json:"g"`
	ArtifactID    string `json:"a"`
	Version       string `json:"v"`
	LatestVersion string `json:"latestVersion"`
}
