// Package shared contains testing utilities shared between integration tests.
// It drives the real command tree against throwaway stores.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/kanote/cmd"
	"github.com/PolarWolf314/kanote/internal/configs"
	"github.com/spf13/cobra"
)

// TestIterations keeps key derivation cheap in tests.
const TestIterations = "10"

// SetupTestEnvironment isolates the user config and returns a store path
// that does not exist yet.
func SetupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalUserSettings := configs.UserKanoteSettings
	configs.UserKanoteSettings = &configs.UserSettings{
		UserConfigsPath:  filepath.Join(tempDir, "config"),
		DefaultStorePath: filepath.Join(tempDir, "data", "kanote"),
	}
	t.Setenv(configs.StoreEnvVar, "")
	t.Setenv("NO_COLOR", "1")

	t.Cleanup(func() {
		configs.UserKanoteSettings = originalUserSettings
		cmd.ResetGlobalState()
		cmd.ResetConfigState()
	})

	return filepath.Join(tempDir, "store")
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	drain := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI creates a complete CLI instance with args and piped stdin.
func CreateTestCLI(args []string, stdin string) *cobra.Command {
	cmd.ResetGlobalState()
	cmd.ResetConfigState()

	rootCmd := &cobra.Command{
		Use:           "kanote",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(cmd.GetNotesCmd())
	rootCmd.AddCommand(cmd.GetConfigCmd())
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	return rootCmd
}

// Run executes "notes <sub> --store <store> --password-stdin <args...>"
// with the given password lines on stdin.
func Run(t *testing.T, store, stdin, sub string, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"notes", sub, "--store", store, "--password-stdin"}, args...)
	return CaptureOutput(func() error {
		return CreateTestCLI(full, stdin).Execute()
	})
}

// MustRun is Run that fails the test on error.
func MustRun(t *testing.T, store, stdin, sub string, args ...string) string {
	t.Helper()
	output, err := Run(t, store, stdin, sub, args...)
	if err != nil {
		t.Fatalf("notes %s failed: %v\nOutput: %s", sub, err, output)
	}
	return output
}

// InitStore creates a store protected by password.
func InitStore(t *testing.T, store, password string) {
	t.Helper()
	MustRun(t, store, password+"\n", "init", "--iterations", TestIterations)
}

// AddNote creates a note and returns its id.
func AddNote(t *testing.T, store, password, title, body string) string {
	t.Helper()
	output := MustRun(t, store, password+"\n", "add", "--title", title, "--body", body)

	start := strings.LastIndex(output, "[")
	end := strings.LastIndex(output, "]")
	if start < 0 || end < start {
		t.Fatalf("No note id in add output: %s", output)
	}
	return output[start+1 : end]
}
