package gradle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/stackforge/pkg/cache"
	"github.com/matzehuels/stackforge/pkg/integrations"
	"github.com/matzehuels/stackforge/pkg/integrations/maven"
)

// DefaultPortalURL is the Maven repository root of the Gradle Plugin Portal.
const DefaultPortalURL = "https://plugins.gradle.org/m2"

const cacheNamespace = "gradle-plugin"

// PluginInfo holds the latest-version answer for a Gradle plugin.
type PluginInfo struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// Client provides access to the Gradle Plugin Portal.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	portalURL string
	keys      cache.Keyer
}

// NewClient creates a Plugin Portal client. An empty portalURL selects
// [DefaultPortalURL].
func NewClient(c cache.Cache, cacheTTL time.Duration, portalURL string) *Client {
	if portalURL == "" {
		portalURL = DefaultPortalURL
	}
	return &Client{
		Client:    integrations.NewClient(c, cacheNamespace, cacheTTL, integrations.DefaultHeaders()),
		portalURL: strings.TrimSuffix(portalURL, "/"),
	}
}

// SetKeyer sets the cache keyer used for lookups.
func (c *Client) SetKeyer(k cache.Keyer) { c.keys = k }

// FetchPlugin retrieves the latest stable version of the plugin with the
// given id. If refresh is true the cache is bypassed.
//
// Returns [integrations.ErrNotFound] when the portal has no marker for id.
func (c *Client) FetchPlugin(ctx context.Context, id string, refresh bool) (*PluginInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/: ") {
		return nil, fmt.Errorf("invalid gradle plugin id %q", id)
	}

	var info PluginInfo
	err := c.Cached(ctx, c.keys.VersionKey(cacheNamespace, id), refresh, &info, func() error {
		return c.fetch(ctx, id, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, id string, info *PluginInfo) error {
	var md maven.Metadata
	if err := c.GetXML(ctx, MarkerURL(c.portalURL, id), &md); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: gradle plugin %s", err, id)
		}
		return err
	}
	version := md.Latest(false)
	if version == "" {
		return fmt.Errorf("%w: no version for gradle plugin %s", integrations.ErrNotFound, id)
	}
	*info = PluginInfo{ID: id, Version: version}
	return nil
}

// MarkerURL returns the maven-metadata.xml location of the plugin marker
// artifact for id.
func MarkerURL(portalURL, id string) string {
	return maven.MetadataURL(portalURL, id, id+".gradle.plugin")
}
