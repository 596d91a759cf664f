package compose

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	stferrors "github.com/matzehuels/stackforge/pkg/errors"
	"github.com/matzehuels/stackforge/pkg/observability"
)

func TestSelectedFeatures(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{"application", Request{Features: []string{"a"}}, []string{"a"}},
		{"library", Request{Features: []string{"a"}, Library: true}, []string{"a", LibraryFeature}},
		{"library already selected", Request{Features: []string{LibraryFeature, "a"}, Library: true}, []string{LibraryFeature, "a"}},
		{"library only", Request{Library: true}, []string{LibraryFeature}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.SelectedFeatures(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectedFeatures() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"empty", Request{}, false},
		{"valid", Request{
			Features:     []string{"web-server"},
			Dependencies: []Dependency{{Group: "org.slf4j", Artifact: "slf4j-api"}},
			Plugins:      []Plugin{{ID: "org.springframework.boot"}, {Group: "org.apache", Artifact: "p"}},
		}, false},
		{"opaque feature names", Request{Features: []string{"has space", "", "web\tserver"}}, false},
		{"bad dependency", Request{Dependencies: []Dependency{{Group: "", Artifact: "a"}}}, true},
		{"bad plugin id", Request{Plugins: []Plugin{{ID: "not/an/id"}}}, true},
		{"bad plugin coordinates", Request{Plugins: []Plugin{{Group: "g"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindBuildSystem(t *testing.T) {
	systems := []*BuildSystem{{Name: "maven"}, {Name: "gradle"}}
	if bs := FindBuildSystem("gradle", systems); bs == nil || bs.Name != "gradle" {
		t.Errorf("FindBuildSystem(gradle) = %v", bs)
	}
	if FindBuildSystem("ant", systems) != nil {
		t.Error("FindBuildSystem(ant) should be nil")
	}
}

type recordingComposeHooks struct {
	mu       sync.Mutex
	started  string
	features int
	err      error
}

func (h *recordingComposeHooks) OnComposeStart(_ context.Context, bs string, features int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started, h.features = bs, features
}

func (h *recordingComposeHooks) OnComposeComplete(_ context.Context, _ string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

func TestRun(t *testing.T) {
	hooks := &recordingComposeHooks{}
	observability.SetComposeHooks(hooks)
	defer observability.Reset()

	d, err := Run(context.Background(), "gradle", Request{Features: []string{"a", "b"}},
		func(_ context.Context, d *Descriptor) error { d.Configurations = []string{"x"}; return nil },
		func(_ context.Context, d *Descriptor) error { d.Templates = []Template{{Template: "t"}}; return nil },
	)
	if err != nil {
		t.Fatal(err)
	}
	if d.BuildSystem != "gradle" || len(d.Configurations) != 1 || len(d.Templates) != 1 {
		t.Errorf("Run() = %+v", d)
	}
	if hooks.started != "gradle" || hooks.features != 2 {
		t.Errorf("start hook = %q/%d", hooks.started, hooks.features)
	}
}

func TestRunFailure(t *testing.T) {
	hooks := &recordingComposeHooks{}
	observability.SetComposeHooks(hooks)
	defer observability.Reset()

	boom := stferrors.New(stferrors.ErrCodeResolution, "boom")
	d, err := Run(context.Background(), "maven", Request{},
		func(context.Context, *Descriptor) error { return boom },
		func(ctx context.Context, _ *Descriptor) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)
	if d != nil {
		t.Errorf("Run() descriptor = %+v, want nil", d)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
	if !errors.Is(hooks.err, boom) {
		t.Errorf("complete hook error = %v", hooks.err)
	}
}
