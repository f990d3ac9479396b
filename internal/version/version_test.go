package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()

	if !strings.HasPrefix(info, "codexmeter ") {
		t.Errorf("Info() = %q, want codexmeter prefix", info)
	}
	if !strings.Contains(info, "commit:") {
		t.Errorf("Info() = %q, missing commit", info)
	}
	if !strings.Contains(info, "built:") {
		t.Errorf("Info() = %q, missing build date", info)
	}
}

func TestInfoStable(t *testing.T) {
	// Repeated calls must not re-resolve git metadata.
	first := Info()
	second := Info()
	if first != second {
		t.Errorf("Info() not stable: %q != %q", first, second)
	}
}

func TestEnsureInitializedFillsFields(t *testing.T) {
	ensureInitialized()
	if Version == "" {
		t.Error("Version should be non-empty after initialization")
	}
	if Commit == "" {
		t.Error("Commit should be non-empty after initialization")
	}
	if Date == "" {
		t.Error("Date should be non-empty after initialization")
	}
}
