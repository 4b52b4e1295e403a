//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Server   string
	Username string
	Password string
	AciPath  string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Server:   os.Getenv("ACI_SERVER"),
		Username: os.Getenv("ACI_USERNAME"),
		Password: os.Getenv("ACI_PASSWORD"),
		AciPath:  getAciPath(),
		Verbose:  os.Getenv("ACI_VERBOSE") == "true",
	}
}

// getAciPath determines the path to the aci binary.
func getAciPath() string {
	if path := os.Getenv("ACI_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../aci",
		"./aci",
		"../aci",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "aci"
}

// SkipIfMissingConfig skips test if required config is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Server == "" || config.Username == "" || config.Password == "" {
		t.Skip("ACI_SERVER, ACI_USERNAME and ACI_PASSWORD must be set, skipping integration test")
	}

	if _, err := exec.LookPath(config.AciPath); err != nil {
		t.Skipf("aci binary not found at %s, skipping integration test", config.AciPath)
	}
}

// CommandRunner runs the aci binary against the configured controller.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes an aci command and returns its output. Credentials are passed
// through the environment so they never show up in process listings.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes an aci command with stdin input.
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.AciPath, args...) // #nosec G204 -- test binary path
	cmd.Env = append(os.Environ(),
		"ACI_SERVER="+runner.config.Server,
		"ACI_USERNAME="+runner.config.Username,
		"ACI_PASSWORD="+runner.config.Password,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.AciPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// DeleteTenant removes a tenant created by a test.
func (runner *CommandRunner) DeleteTenant(name string) {
	document := fmt.Sprintf(`{"fvTenant":{"attributes":{"dn":"uni/tn-%s","status":"deleted"}}}`, name)

	stdout, stderr, err := runner.RunWithInput(document, "post", "-f", "-")
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for tenant %s: %s\nStderr: %s", name, stdout, stderr)
	}
}

// AssertJSONOutput verifies command output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML.
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var value interface{}
	if err := yaml.Unmarshal([]byte(output), &value); err != nil {
		t.Errorf("Output is not valid YAML: %v\n%s", err, output)
	}
}
