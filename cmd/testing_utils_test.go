package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/kanote/internal/configs"
	"github.com/spf13/cobra"
)

const testIterations = "10"

// setupTestEnvironment points the user config at a temp directory, clears
// $KANOTE_STORE, and returns a fresh store path that does not exist yet.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalUserSettings := configs.UserKanoteSettings
	configs.UserKanoteSettings = &configs.UserSettings{
		UserConfigsPath:  filepath.Join(tempDir, "config"),
		DefaultStorePath: filepath.Join(tempDir, "data", "kanote"),
	}
	t.Setenv(configs.StoreEnvVar, "")
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	ResetConfigState()

	t.Cleanup(func() {
		configs.UserKanoteSettings = originalUserSettings
		ResetGlobalState()
		ResetConfigState()
	})

	return filepath.Join(tempDir, "store")
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
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

// createTestCLI creates a fresh root command wired to the real command
// groups, with args and piped stdin.
func createTestCLI(args []string, stdin string) *cobra.Command {
	ResetGlobalState()
	ResetConfigState()

	rootCmd := &cobra.Command{
		Use:           "kanote",
		Short:         "Kanote - encrypted notes on your own disk.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(NotesCmd)
	rootCmd.AddCommand(ConfigCmd)

	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	return rootCmd
}

// runCLI executes args against a fresh CLI and returns the combined output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args, stdin).Execute()
	})
}

// notesArgs builds "notes <sub> --store <store> --password-stdin <args...>".
func notesArgs(store, sub string, args ...string) []string {
	return append([]string{"notes", sub, "--store", store, "--password-stdin"}, args...)
}

// initStore runs notes init with a cheap KDF.
func initStore(t *testing.T, store, password string) {
	t.Helper()
	output, err := runCLI(t, password+"\n", notesArgs(store, "init", "--iterations", testIterations)...)
	if err != nil {
		t.Fatalf("notes init failed: %v\nOutput: %s", err, output)
	}
}

// addNote runs notes add and returns the new note's id.
func addNote(t *testing.T, store, password, title, body string) string {
	t.Helper()
	output, err := runCLI(t, password+"\n", notesArgs(store, "add", "--title", title, "--body", body)...)
	if err != nil {
		t.Fatalf("notes add failed: %v\nOutput: %s", err, output)
	}

	start := strings.LastIndex(output, "[")
	end := strings.LastIndex(output, "]")
	if start < 0 || end < start {
		t.Fatalf("No note id in add output: %s", output)
	}
	return output[start+1 : end]
}
