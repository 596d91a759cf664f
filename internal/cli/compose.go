package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackforge/pkg/compose"
	"github.com/matzehuels/stackforge/pkg/compose/buildsystems"
	"github.com/matzehuels/stackforge/pkg/errors"
)

const defaultDependencyType = "implementation"

type composeOpts struct {
	buildSystem string
	catalog     string
	request     string
	deps        []string
	plugins     []string
	sets        []string
	library     bool
	noCache     bool
	refresh     bool
	output      string
	timeout     time.Duration
}

// composeCommand creates the compose command.
func (c *CLI) composeCommand() *cobra.Command {
	var opts composeOpts

	cmd := &cobra.Command{
		Use:   "compose [features...]",
		Short: "Compose a build descriptor from selected features",
		Long: `Compose a Maven or Gradle build descriptor from the selected features.

Features are looked up in the catalog; unknown features contribute nothing.
Explicit dependencies and plugins are appended after the feature ones.
Entries without a version are resolved to the latest published version.`,
		Example: `  # Maven descriptor for a web application with tests
  stackforge compose web-server junit --catalog features.toml

  # Gradle library with an extra dependency and a property value
  stackforge compose lombok -b gradle --library \
    --dep com.google.guava:guava@implementation --set javaVersion=21

  # Full request from a file
  stackforge compose --request request.toml -o descriptor.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompose(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.buildSystem, "build-system", "b", "", "build system: "+strings.Join(buildsystems.Names(), ", ")+" (default from config)")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "feature catalog TOML file (default from config)")
	cmd.Flags().StringVar(&opts.request, "request", "", "request file (.toml or .json); arguments and flags are appended")
	cmd.Flags().StringArrayVar(&opts.deps, "dep", nil, "explicit dependency group:artifact[:version][@type] (repeatable)")
	cmd.Flags().StringArrayVar(&opts.plugins, "plugin", nil, "explicit Gradle plugin id[:version] (repeatable)")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "configuration value key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.library, "library", false, "compose a library project")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the version lookup cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached versions and refresh them")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the descriptor to a file instead of stdout")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall timeout for version lookups")

	cmd.ValidArgsFunction = c.completeFeatures
	cmd.RegisterFlagCompletionFunc("build-system", completeBuildSystems)
	cmd.RegisterFlagCompletionFunc("catalog", completeCatalogFiles)
	cmd.RegisterFlagCompletionFunc("request", completeRequestFiles)

	return cmd
}

func (c *CLI) runCompose(ctx context.Context, features []string, opts composeOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.catalog != "" {
		cfg.Catalog = opts.catalog
	}
	if opts.buildSystem != "" {
		cfg.BuildSystem = opts.buildSystem
	}

	req, err := buildRequest(features, opts)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	for _, f := range req.Features {
		if _, ok := cat.Fragment(f); !ok {
			logger.Warn("feature not in catalog, ignoring", "feature", f)
		}
	}

	store, err := openCache(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	composer, err := buildsystems.New(cfg.BuildSystem, cat, newResolver(cfg, store, opts.refresh, logger))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	prog := newProgress(logger, composer.Name())
	spin := newSpinner(ctx, uiOut, fmt.Sprintf("Resolving versions for %d features...", len(req.SelectedFeatures())))
	spin.Start()
	d, err := composer.Compose(ctx, req)
	spin.Stop()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.Wrap(errors.ErrCodeResolution, err, "compose timed out after %s", opts.timeout)
		}
		return err
	}
	prog.done(d)

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode descriptor")
	}
	data = append(data, '\n')

	if opts.output == "" {
		_, err = c.out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSummary(d)
	printFile(opts.output)
	return nil
}

// buildRequest merges the request file with positional features and flags.
func buildRequest(features []string, opts composeOpts) (compose.Request, error) {
	var req compose.Request
	if opts.request != "" {
		r, err := readRequest(opts.request)
		if err != nil {
			return compose.Request{}, err
		}
		req = r
	}

	req.Features = append(req.Features, features...)
	req.Library = req.Library || opts.library

	for _, s := range opts.deps {
		dep, err := parseDependency(s)
		if err != nil {
			return compose.Request{}, err
		}
		req.Dependencies = append(req.Dependencies, dep)
	}
	for _, s := range opts.plugins {
		req.Plugins = append(req.Plugins, parsePlugin(s))
	}
	for _, s := range opts.sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return compose.Request{}, errors.New(errors.ErrCodeInvalidInput, "invalid --set %q (expected key=value)", s)
		}
		if req.Config == nil {
			req.Config = make(map[string]any)
		}
		req.Config[key] = parseValue(value)
	}
	return req, nil
}

func readRequest(path string) (compose.Request, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return compose.Request{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "request %s", path)
	}
	if err != nil {
		return compose.Request{}, err
	}

	var req compose.Request
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &req)
	default:
		_, err = toml.Decode(string(data), &req)
	}
	if err != nil {
		return compose.Request{}, errors.Wrap(errors.ErrCodeInvalidRequest, err, "request %s", path)
	}
	return req, nil
}

// parseDependency parses group:artifact[:version][@type]. Without a version
// the latest version is resolved.
func parseDependency(s string) (compose.Dependency, error) {
	coord, typ, _ := strings.Cut(s, "@")
	if typ == "" {
		typ = defaultDependencyType
	}
	if err := errors.ValidateCoordinate(coord); err != nil {
		return compose.Dependency{}, err
	}
	parts := strings.Split(coord, ":")
	dep := compose.Dependency{Group: parts[0], Artifact: parts[1], Type: typ}
	if len(parts) == 3 {
		dep.Version = parts[2]
	} else {
		dep.LastVersion = true
	}
	return dep, nil
}

// parsePlugin parses id[:version].
func parsePlugin(s string) compose.Plugin {
	id, version, _ := strings.Cut(s, ":")
	return compose.Plugin{ID: id, Version: version, LastVersion: version == ""}
}

// parseValue keeps booleans and integers typed so properties render
// unquoted; everything else stays a string.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}
