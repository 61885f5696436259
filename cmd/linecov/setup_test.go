package main_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

// linecovSetup runs every test command against the built linecov binary.
type linecovSetup struct {
	binary string
}

func (s *linecovSetup) CustomCommand(_ *test.Case, _ tig.T) test.CustomizableCommand {
	cmd := test.NewGenericCommand()
	cmd.WithBinary(s.binary)

	return cmd
}

// AmbientRequirements has nothing to check: the binary reads its report and needs no external tools.
func (s *linecovSetup) AmbientRequirements(_ *test.Case, _ tig.T) {}

// setup creates a test case running bin/linecov, skipping when it has not been built (make build).
func setup(t *testing.T) *test.Case {
	t.Helper()

	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	binaryPath := filepath.Join(projectRoot, "bin", "linecov")

	if _, err := os.Stat(binaryPath); err != nil {
		t.Skipf("%s not built: %v", binaryPath, err)
	}

	test.Customize(&linecovSetup{binary: binaryPath})

	return &test.Case{}
}
