package gradle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/stackforge/pkg/integrations"
)

const kotlinMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>org.jetbrains.kotlin.jvm</groupId>
  <artifactId>org.jetbrains.kotlin.jvm.gradle.plugin</artifactId>
  <versioning>
    <latest>2.0.0-Beta3</latest>
    <release>1.9.22</release>
    <versions>
      <version>1.9.21</version>
      <version>1.9.22</version>
      <version>2.0.0-Beta3</version>
    </versions>
  </versioning>
</metadata>`

func TestMarkerURL(t *testing.T) {
	got := MarkerURL(DefaultPortalURL, "org.jetbrains.kotlin.jvm")
	want := "https://plugins.gradle.org/m2/org/jetbrains/kotlin/jvm/org.jetbrains.kotlin.jvm.gradle.plugin/maven-metadata.xml"
	if got != want {
		t.Errorf("MarkerURL() = %q, want %q", got, want)
	}
}

func TestClient_FetchPlugin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/m2/org/jetbrains/kotlin/jvm/org.jetbrains.kotlin.jvm.gradle.plugin/maven-metadata.xml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(kotlinMetadata))
	}))
	defer server.Close()

	c := NewClient(nil, time.Hour, server.URL+"/m2/")

	info, err := c.FetchPlugin(context.Background(), "org.jetbrains.kotlin.jvm", true)
	if err != nil {
		t.Fatalf("FetchPlugin() error: %v", err)
	}
	if info.Version != "1.9.22" {
		t.Errorf("Version = %q, want 1.9.22", info.Version)
	}
	if info.ID != "org.jetbrains.kotlin.jvm" {
		t.Errorf("ID = %q", info.ID)
	}

	_, err = c.FetchPlugin(context.Background(), "com.example.missing", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("missing plugin error = %v, want ErrNotFound", err)
	}
}

func TestClient_FetchPluginInvalidID(t *testing.T) {
	c := NewClient(nil, time.Hour, "")
	for _, id := range []string{"", "a/b", "g:a"} {
		if _, err := c.FetchPlugin(context.Background(), id, false); err == nil {
			t.Errorf("FetchPlugin(%q) expected error", id)
		}
	}
}
