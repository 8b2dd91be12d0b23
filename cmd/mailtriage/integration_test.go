package main

import (
	"context"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/csheth/mailtriage/internal/tuitest"
)

func TestMailtriageClassifiesTypedEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and drives the binary in a PTY")
	}
	server := newStubServer(t, http.StatusOK, productiveBody)

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen"},
		Dir:     t.TempDir(),
		Env: []string{
			"MAILTRIAGE_ENDPOINT=" + server.URL,
			"MAILTRIAGE_LOG_DISABLED=true",
		},
		Width:  100,
		Height: 40,
		Steps: []tuitest.Step{
			tuitest.Pause(time.Second),
			tuitest.Type("Can you send the report?"),
			tuitest.Press(200*time.Millisecond, tuitest.KeyCtrlS),
			tuitest.Pause(time.Second),
			tuitest.Press(0, tuitest.KeyCtrlC),
		},
		Timeout:        10 * time.Second,
		AllowInterrupt: true,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	for _, want := range []string{"mailtriage", "Category", "Produtivo", "Suggested Response", "Thanks, the report is attached."} {
		if !rec.Contains(want) {
			final, _ := rec.FinalFrame()
			t.Fatalf("%q never rendered; final frame:\n%s", want, final.Plain)
		}
	}
	if got := server.seen(); len(got) != 1 || got[0] != "Can you send the report?" {
		t.Fatalf("server saw %q", got)
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	tmp := t.TempDir()
	name := "mailtriage-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(tmp, name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
