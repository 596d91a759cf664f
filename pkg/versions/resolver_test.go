package versions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/stackforge/pkg/compose"
	"github.com/matzehuels/stackforge/pkg/integrations/gradle"
	"github.com/matzehuels/stackforge/pkg/integrations/maven"
	"github.com/matzehuels/stackforge/pkg/observability"
)

type fakeArtifacts struct {
	versions map[string]string
	calls    atomic.Int32
	delay    time.Duration
	refresh  atomic.Bool
}

func (f *fakeArtifacts) FetchArtifact(_ context.Context, coord string, refresh bool) (*maven.ArtifactInfo, error) {
	f.calls.Add(1)
	f.refresh.Store(refresh)
	time.Sleep(f.delay)
	v, ok := f.versions[coord]
	if !ok {
		return nil, fmt.Errorf("artifact %s not found", coord)
	}
	g, a, _ := strings.Cut(coord, ":")
	return &maven.ArtifactInfo{GroupID: g, ArtifactID: a, Version: v}, nil
}

type fakePlugins map[string]string

func (f fakePlugins) FetchPlugin(_ context.Context, id string, _ bool) (*gradle.PluginInfo, error) {
	v, ok := f[id]
	if !ok {
		return nil, errors.New("plugin not found")
	}
	return &gradle.PluginInfo{ID: id, Version: v}, nil
}

type recordingHooks struct {
	mu    sync.Mutex
	kinds []string
	errs  int
}

func (h *recordingHooks) OnLookup(_ context.Context, kind, _ string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.kinds = append(h.kinds, kind)
	if err != nil {
		h.errs++
	}
}

func TestDependencyVersion(t *testing.T) {
	arts := &fakeArtifacts{versions: map[string]string{"org.projectlombok:lombok": "1.18.30"}}
	r := New(arts, nil, Options{Refresh: true})

	v, err := r.DependencyVersion(context.Background(), compose.Dependency{Group: "org.projectlombok", Artifact: "lombok", Version: "1.0"})
	if err != nil {
		t.Fatalf("DependencyVersion() error: %v", err)
	}
	if v != "1.18.30" {
		t.Errorf("DependencyVersion() = %q, want 1.18.30", v)
	}
	if !arts.refresh.Load() {
		t.Error("Refresh option not passed to the registry client")
	}

	if _, err := r.DependencyVersion(context.Background(), compose.Dependency{Group: "x", Artifact: "y"}); err == nil {
		t.Error("expected error for unknown artifact")
	}
}

func TestPluginVersion(t *testing.T) {
	arts := &fakeArtifacts{versions: map[string]string{"org.apache.maven.plugins:maven-surefire-plugin": "3.2.5"}}
	r := New(arts, fakePlugins{"org.springframework.boot": "3.2.2"}, Options{})

	tests := []struct {
		name   string
		plugin compose.Plugin
		want   string
	}{
		{"portal id", compose.Plugin{ID: "org.springframework.boot"}, "3.2.2"},
		{"maven coordinates", compose.Plugin{Group: "org.apache.maven.plugins", Artifact: "maven-surefire-plugin"}, "3.2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.PluginVersion(context.Background(), tt.plugin)
			if err != nil {
				t.Fatalf("PluginVersion() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PluginVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPluginVersionNoPortal(t *testing.T) {
	r := New(&fakeArtifacts{}, nil, Options{})
	if _, err := r.PluginVersion(context.Background(), compose.Plugin{ID: "java"}); err == nil {
		t.Error("expected error without a plugin registry")
	}
}

func TestSharedLookups(t *testing.T) {
	arts := &fakeArtifacts{
		versions: map[string]string{"g:a": "1.0.0"},
		delay:    50 * time.Millisecond,
	}
	r := New(arts, nil, Options{})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, err := r.DependencyVersion(context.Background(), compose.Dependency{Group: "g", Artifact: "a"}); err != nil || v != "1.0.0" {
				t.Errorf("DependencyVersion() = %q, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if n := arts.calls.Load(); n >= 10 {
		t.Errorf("registry calls = %d, concurrent lookups should be shared", n)
	}
}

func TestLookupHooksAndLogger(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetLookupHooks(hooks)
	defer observability.Reset()

	var lines []string
	var mu sync.Mutex
	r := New(&fakeArtifacts{versions: map[string]string{"g:a": "2.0"}}, fakePlugins{}, Options{
		Logger: func(format string, args ...any) {
			mu.Lock()
			defer mu.Unlock()
			lines = append(lines, fmt.Sprintf(format, args...))
		},
	})

	r.DependencyVersion(context.Background(), compose.Dependency{Group: "g", Artifact: "a"})
	r.PluginVersion(context.Background(), compose.Plugin{ID: "missing"})

	if len(hooks.kinds) != 2 || hooks.kinds[0] != KindDependency || hooks.kinds[1] != KindPlugin {
		t.Errorf("hook kinds = %v", hooks.kinds)
	}
	if hooks.errs != 1 {
		t.Errorf("hook errors = %d, want 1", hooks.errs)
	}
	if len(lines) != 2 || !strings.Contains(lines[0], "g:a -> 2.0") || !strings.Contains(lines[1], "failed") {
		t.Errorf("log lines = %q", lines)
	}
}

type blockingArtifacts struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingArtifacts) FetchArtifact(ctx context.Context, coord string, _ bool) (*maven.ArtifactInfo, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.release:
		return &maven.ArtifactInfo{Version: "1.0.0"}, nil
	}
}

func TestSharedLookupSurvivesCancelledCaller(t *testing.T) {
	arts := &blockingArtifacts{started: make(chan struct{}), release: make(chan struct{})}
	r := New(arts, nil, Options{})
	dep := compose.Dependency{Group: "g", Artifact: "a"}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := r.DependencyVersion(ctxA, dep)
		errA <- err
	}()
	<-arts.started

	type result struct {
		v   string
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := r.DependencyVersion(context.Background(), dep)
		resB <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("cancelled caller error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(arts.release)
	select {
	case got := <-resB:
		if got.err != nil || got.v != "1.0.0" {
			t.Errorf("second caller = %q, %v, want 1.0.0", got.v, got.err)
		}
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}
	if n := arts.calls.Load(); n != 1 {
		t.Errorf("registry calls = %d, want 1", n)
	}
}

func TestLookupTimeout(t *testing.T) {
	arts := &blockingArtifacts{started: make(chan struct{}), release: make(chan struct{})}
	r := New(arts, nil, Options{Timeout: 20 * time.Millisecond})

	_, err := r.DependencyVersion(context.Background(), compose.Dependency{Group: "g", Artifact: "a"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("DependencyVersion() error = %v, want deadline exceeded", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	if got := (Options{}).WithDefaults().Timeout; got != DefaultLookupTimeout {
		t.Errorf("default Timeout = %v, want %v", got, DefaultLookupTimeout)
	}
	if got := (Options{Timeout: time.Second}).WithDefaults().Timeout; got != time.Second {
		t.Errorf("Timeout = %v, want 1s", got)
	}
}
