// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package firestoretest runs a local Firestore emulator for tests.
package firestoretest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/pkg/errors"
)

// Project is the project id tests should use against the emulator.
const Project = "test-project"

func freePort() (int, error) {
	l, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func exited(cmd *exec.Cmd) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()
	return done
}

// Start launches the gcloud Firestore emulator and points
// FIRESTORE_EMULATOR_HOST at it for the duration of the test. The test is
// skipped when gcloud is not installed. Start blocks until the emulator
// accepts connections.
func Start(ctx context.Context, t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("gcloud"); err != nil {
		t.Skip("gcloud not found; skipping firestore emulator test")
	}
	port, err := freePort()
	if err != nil {
		t.Fatalf("freePort(): %v", err)
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	t.Logf("starting firestore emulator... addr=%s", addr)
	cmd := exec.Command("gcloud", "emulators", "firestore", "start", "--host-port="+addr)
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting firestore emulator: %v", err)
	}
	done := exited(cmd)
	t.Setenv("FIRESTORE_EMULATOR_HOST", addr)
	t.Cleanup(func() { shutdown(t, addr, cmd, done) })
	if err := waitReachable(ctx, addr, done); err != nil {
		t.Fatalf("firestore emulator: %v", err)
	}
	t.Log("firestore emulator is ready")
}

func waitReachable(ctx context.Context, addr string, done <-chan struct{}) error {
	for {
		if c, err := net.Dial("tcp", addr); err == nil {
			c.Close()
			return nil
		}
		select {
		case <-time.After(300 * time.Millisecond):
		case <-done:
			return errors.New("emulator exited before accepting connections")
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for emulator")
		}
	}
}

func shutdown(t *testing.T, addr string, cmd *exec.Cmd, done <-chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("http://%s/shutdown", addr), nil)
	if resp, err := http.DefaultClient.Do(req); err != nil {
		t.Logf("sending emulator shutdown request: %v", err)
	} else {
		resp.Body.Close()
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Log("timed out waiting for emulator shutdown, killing it")
		cmd.Process.Kill()
	}
}
