//go:build integration

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestServeStartStop starts the binary, quotes a package over HTTP and
// shuts it down with SIGINT.
func TestServeStartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	rulesFile := filepath.Join(tmpDir, "rules.json")
	writeTestFile(t, rulesFile, completeRules)
	configFile := filepath.Join(tmpDir, "config.yaml")
	writeTestFile(t, configFile, `
server:
  listen_address: "127.0.0.1:18090"
rules:
  path: "`+rulesFile+`"
telemetry:
  logging:
    level: "warn"
`)

	binaryPath := buildShipquoteBinary(t)

	cmd := exec.Command(binaryPath, "serve", "--config", configFile, "--env-file", "")
	cmd.Dir = tmpDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	defer func() {
		if cmd.ProcessState == nil {
			_ = cmd.Process.Kill()
		}
	}()

	if !waitForHealthy("http://127.0.0.1:18090/ready", 10*time.Second) {
		t.Fatalf("server failed to start\nStdout: %s\nStderr: %s", stdout.String(), stderr.String())
	}

	body := `{"length_cm":30,"width_cm":20,"height_cm":15,"weight_kg":10,"destination":"national"}`
	resp, err := http.Post("http://127.0.0.1:18090/api/calculate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("calculate request failed: %v", err)
	}
	var quote struct {
		Success    bool    `json:"success"`
		TotalPrice float64 `json:"total_price"`
	}
	err = json.NewDecoder(resp.Body).Decode(&quote)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !quote.Success || quote.TotalPrice != 34.0 {
		t.Errorf("quote = %+v, want success with total 34", quote)
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatalf("failed to send SIGINT: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected shutdown error: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
		}
		if !strings.Contains(stdout.String(), "Server stopped") {
			t.Errorf("expected stop message, got: %s", stdout.String())
		}
	case <-time.After(5 * time.Second):
		t.Error("server did not shut down within 5 seconds")
	}
}

// TestQuoteAndValidateCommands runs the offline commands against the binary.
func TestQuoteAndValidateCommands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	rulesFile := filepath.Join(tmpDir, "rules.json")
	writeTestFile(t, rulesFile, completeRules)
	brokenFile := filepath.Join(tmpDir, "broken.json")
	writeTestFile(t, brokenFile, `{"pricing": {}}`)

	binaryPath := buildShipquoteBinary(t)

	t.Log("Step 1: Validating rules...")
	output, err := exec.Command(binaryPath, "validate", "--rules", rulesFile, "--env-file", "").CombinedOutput()
	if err != nil {
		t.Fatalf("validate failed: %v\nOutput: %s", err, output)
	}
	if !bytes.Contains(output, []byte("is valid")) {
		t.Errorf("expected 'is valid' in output, got: %s", output)
	}

	t.Log("Step 2: Validating a broken rules file...")
	output, err = exec.Command(binaryPath, "validate", "--rules", brokenFile, "--env-file", "").CombinedOutput()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 2 {
		t.Errorf("expected exit code 2, got %v\nOutput: %s", err, output)
	}

	t.Log("Step 3: Quoting as JSON...")
	output, err = exec.Command(binaryPath, "quote",
		"--rules", rulesFile,
		"--env-file", "",
		"--length", "30", "--width", "20", "--height", "15", "--weight", "10",
		"--express", "--destination", "international",
		"--format", "json").Output()
	if err != nil {
		t.Fatalf("quote failed: %v\nOutput: %s", err, output)
	}
	var result map[string]any
	if err := json.Unmarshal(output, &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if result["total_price"] != 102.0 {
		t.Errorf("total_price = %v, want 102", result["total_price"])
	}

	t.Log("Step 4: Quoting with a missing dimension...")
	output, err = exec.Command(binaryPath, "quote", "--rules", rulesFile, "--env-file", "", "--length", "30").CombinedOutput()
	if err == nil {
		t.Fatalf("expected quote to fail\nOutput: %s", output)
	}
	if !bytes.Contains(output, []byte("Missing required fields: width_cm, height_cm, weight_kg")) {
		t.Errorf("expected missing fields message, got: %s", output)
	}
}

func buildShipquoteBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "shipquote")
	t.Log("Building shipquote binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build shipquote: %v\nOutput: %s", err, output)
	}
	return binaryPath
}

// waitForHealthy waits for a health endpoint to return 200
func waitForHealthy(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 1 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
