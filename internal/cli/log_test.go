package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackforge/pkg/compose"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		verbose bool
		wantLog bool
	}{
		{"lookup line hidden by default", log.InfoLevel, false, false},
		{"lookup line shown with --verbose", log.InfoLevel, true, true},
		{"lookup line at debug level", log.DebugLevel, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, tt.level)
			if tt.verbose {
				c.SetLogLevel(LogDebug)
			}
			c.Logger.Debugf("lookup %s %s -> %s", "dependency", "io.undertow:undertow-core", "2.3.1")

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v (%q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel), "maven")

	prog.done(&compose.Descriptor{
		BuildSystem:      "maven",
		Dependencies:     []compose.Dependency{{Group: "io.undertow", Artifact: "undertow-core"}, {Group: "org.projectlombok", Artifact: "lombok"}},
		BuildPlugins:     []compose.Plugin{{Group: "org.springframework.boot", Artifact: "spring-boot-maven-plugin"}},
		ReportingPlugins: []compose.Plugin{{Group: "org.apache.maven.plugins", Artifact: "maven-project-info-reports-plugin"}},
	})

	out := buf.String()
	for _, want := range []string{"Composed maven descriptor", "dependencies=2", "plugins=2", "templates=0", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Fatal("loggerFromContext() did not return the attached logger")
	}
	loggerFromContext(ctx).Warn("feature not in catalog, ignoring", "feature", "kotlin")
	if !strings.Contains(buf.String(), "feature=kotlin") {
		t.Errorf("log output = %q", buf.String())
	}
}
