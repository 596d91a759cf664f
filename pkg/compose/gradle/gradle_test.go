package gradle

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/stackforge/pkg/compose"
	"github.com/matzehuels/stackforge/pkg/compose/composetest"
	stferrors "github.com/matzehuels/stackforge/pkg/errors"
)

func TestCompose(t *testing.T) {
	res := &composetest.Resolver{Versions: map[string]string{
		"io.undertow:undertow-core": "2.3.10.Final",
		"org.springframework.boot":  "3.2.2",
		"com.diffplug.spotless":     "6.25.0",
	}}
	c := New(composetest.Catalog(), res)

	d, err := c.Compose(context.Background(), compose.Request{
		Features: []string{"web-server", "spring-boot", "lombok"},
		Dependencies: []compose.Dependency{
			{Group: "org.slf4j", Artifact: "slf4j-api", Version: "2.0.9", Type: "implementation",
				Exclude: []compose.Exclusion{{Group: "log4j", Artifact: "log4j"}}},
		},
		Plugins: []compose.Plugin{{ID: "com.diffplug.spotless", LastVersion: true}},
	})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	var coords []string
	for _, dep := range d.Dependencies {
		coords = append(coords, dep.Coordinate()+"@"+dep.Version+"/"+dep.Scope)
	}
	wantCoords := []string{
		"io.undertow:undertow-core@2.3.10.Final/",
		"org.projectlombok:lombok@1.18.30/",
		"org.slf4j:slf4j-api@2.0.9/",
	}
	if !reflect.DeepEqual(coords, wantCoords) {
		t.Errorf("dependencies = %v, want %v", coords, wantCoords)
	}

	if len(d.Plugins) != 2 {
		t.Fatalf("Plugins = %+v", d.Plugins)
	}
	if d.Plugins[0].ID != "org.springframework.boot" || d.Plugins[0].Version != "3.2.2" {
		t.Errorf("feature plugin = %+v", d.Plugins[0])
	}
	if d.Plugins[1].ID != "com.diffplug.spotless" || d.Plugins[1].Version != "6.25.0" {
		t.Errorf("override plugin = %+v", d.Plugins[1])
	}
	// Gradle does not resolve Maven plugin dependencies.
	if v := d.Plugins[0].Dependencies[0].Version; v != "" {
		t.Errorf("plugin dependency version = %q, want untouched", v)
	}

	wantTemplates := []compose.Template{{Template: "web.xml", Destination: "gradle/web.xml"}}
	if !reflect.DeepEqual(d.Templates, wantTemplates) {
		t.Errorf("Templates = %+v", d.Templates)
	}
	wantProps := []compose.Property{{Name: "server.port", Value: nil}}
	if !reflect.DeepEqual(d.Properties, wantProps) {
		t.Errorf("Properties = %+v, want missing config to yield nil", d.Properties)
	}
	if !reflect.DeepEqual(d.ExcludedDependencies, []compose.Exclusion{{Group: "log4j", Artifact: "log4j"}}) {
		t.Errorf("ExcludedDependencies = %+v", d.ExcludedDependencies)
	}
	if d.Parent != nil || d.BuildPlugins != nil || d.ReportingPlugins != nil {
		t.Error("gradle descriptor should not fill maven-only fields")
	}
}

func TestComposeJSONShape(t *testing.T) {
	c := New(composetest.Catalog(), composetest.Fixed("1.0"))
	d, err := c.Compose(context.Background(), compose.Request{Features: []string{"spring-boot"}, Library: true})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, key := range []string{`"buildSystem":"gradle"`, `"plugins"`, `"configurations":["withSourcesJar()"]`} {
		if !strings.Contains(s, key) {
			t.Errorf("JSON missing %s: %s", key, s)
		}
	}
	for _, key := range []string{"buildPlugins", "reportingPlugins", "parent"} {
		if strings.Contains(s, `"`+key+`"`) {
			t.Errorf("JSON should omit %s: %s", key, s)
		}
	}
}

func TestComposePluginFailure(t *testing.T) {
	res := &composetest.Resolver{
		Default: "1.0",
		Fail:    map[string]error{"org.springframework.boot": errors.New("portal down")},
	}
	c := New(composetest.Catalog(), res)

	d, err := c.Compose(context.Background(), compose.Request{Features: []string{"spring-boot", "junit"}})
	if d != nil {
		t.Errorf("descriptor = %+v, want nil", d)
	}
	if !stferrors.Is(err, stferrors.ErrCodeResolution) {
		t.Errorf("error = %v, want RESOLUTION_FAILED", err)
	}
	if !strings.Contains(err.Error(), "org.springframework.boot") {
		t.Errorf("error should name the coordinate: %v", err)
	}
}

func TestComposeEmpty(t *testing.T) {
	c := New(compose.MapCatalog{}, composetest.Fixed("1.0"))
	d, err := c.Compose(context.Background(), compose.Request{Features: []string{"nothing"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Dependencies) != 0 || len(d.Plugins) != 0 || len(d.Templates) != 0 {
		t.Errorf("expected empty descriptor, got %+v", d)
	}
}

func TestComposeInvalidRequest(t *testing.T) {
	c := New(composetest.Catalog(), composetest.Fixed("1.0"))
	_, err := c.Compose(context.Background(), compose.Request{
		Dependencies: []compose.Dependency{{Group: "no spaces", Artifact: "x"}},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
