package threat

import "testing"

func TestContextKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind ContextKind
		want bool
	}{
		{"subsystem is valid", KindSubsystem, true},
		{"network is valid", KindNetwork, true},
		{"actor is valid", KindActor, true},
		{"primitive is valid", KindPrimitive, true},
		{"data is valid", KindData, true},
		{"unspecified is valid", KindUnspecified, true},
		{"empty is invalid", ContextKind(""), false},
		{"unknown is invalid", ContextKind("cloud"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("ContextKind.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseContextKind(t *testing.T) {
	kind, err := ParseContextKind("network")
	if err != nil {
		t.Fatalf("ParseContextKind() error = %v", err)
	}
	if kind != KindNetwork {
		t.Errorf("ParseContextKind() = %v, want %v", kind, KindNetwork)
	}

	if _, err := ParseContextKind("bogus"); err == nil {
		t.Error("ParseContextKind() expected error for unknown kind")
	}
}

func TestAllContextKinds(t *testing.T) {
	for _, kind := range AllContextKinds() {
		if !kind.IsValid() {
			t.Errorf("AllContextKinds() contains invalid kind %q", kind)
		}
	}
}

func TestScope_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		want  bool
	}{
		{"core is valid", ScopeCore, true},
		{"partially-core is valid", ScopePartiallyCore, true},
		{"non-core is valid", ScopeNonCore, true},
		{"unspecified is valid", ScopeUnspecified, true},
		{"empty is invalid", Scope(""), false},
		{"unknown is invalid", Scope("total"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.IsValid(); got != tt.want {
				t.Errorf("Scope.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("partially-core")
	if err != nil {
		t.Fatalf("ParseScope() error = %v", err)
	}
	if scope != ScopePartiallyCore {
		t.Errorf("ParseScope() = %v, want %v", scope, ScopePartiallyCore)
	}

	if _, err := ParseScope("bogus"); err == nil {
		t.Error("ParseScope() expected error for unknown scope")
	}
}

func TestAllScopes(t *testing.T) {
	for _, scope := range AllScopes() {
		if !scope.IsValid() {
			t.Errorf("AllScopes() contains invalid scope %q", scope)
		}
	}
}
