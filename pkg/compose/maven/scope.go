package maven

// Maven scopes produced by [ScopeFor].
const (
	ScopeCompile = ""
	ScopeRuntime = "runtime"
	ScopeTest    = "test"
	ScopeNone    = "none"
)

var scopes = map[string]string{
	"compile":            ScopeCompile,
	"implementation":     ScopeCompile,
	"compileOnly":        ScopeCompile,
	"runtime":            ScopeRuntime,
	"runtimeOnly":        ScopeRuntime,
	"testCompile":        ScopeTest,
	"testImplementation": ScopeTest,
	"testCompileOnly":    ScopeTest,
	"testRuntime":        ScopeTest,
	"testRuntimeOnly":    ScopeTest,
}

// ScopeFor maps a Gradle-style dependency type to a Maven scope. Compile
// types map to the empty scope (Maven's default), unknown types to "none".
func ScopeFor(typ string) string {
	if s, ok := scopes[typ]; ok {
		return s
	}
	return ScopeNone
}
