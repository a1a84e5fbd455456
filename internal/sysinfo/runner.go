package sysinfo

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its trimmed stdout.
// It exists so parsers of smartctl/zpool/lsblk output can be unit tested
// with canned output instead of real hardware.
type Runner interface {
	Output(name string, args ...string) (string, error)
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

// Output implements Runner.
func (ExecRunner) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}
