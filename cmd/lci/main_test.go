package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetDebugFlags() {
	dTokens = false
	dParse = false
}

func writeTempProgram(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.lol")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write program: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestDebugFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	for _, flagName := range []string{"dtokens", "dparse"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag --%s to exist", flagName)
		}
	}
}

func TestSyntaxCheckOK(t *testing.T) {
	resetDebugFlags()
	path := writeTempProgram(t, "HAI 1.2\nVISIBLE \"hi\"\nKTHXBYE\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v\nstderr: %s", err, errOut.String())
	}
	if !strings.Contains(out.String(), "syntax ok") {
		t.Errorf("expected syntax ok, got %q", out.String())
	}
}

func TestSyntaxCheckReportsDiagnostic(t *testing.T) {
	resetDebugFlags()
	path := writeTempProgram(t, "HAI 1.2\nIM IN YR L\nIM OUTTA YR M\nKTHXBYE\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a bad program")
	}
	if !strings.Contains(errOut.String(), ":3:") {
		t.Errorf("expected diagnostic on line 3, got %q", errOut.String())
	}
}

func TestDumpTokens(t *testing.T) {
	resetDebugFlags()
	path := writeTempProgram(t, "HAI 1.2\nVISIBLE \"hi\"\nKTHXBYE\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dtokens", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v\nstderr: %s", err, errOut.String())
	}
	for _, want := range []string{"HAI", "FLOAT", "VISIBLE", "STRING", "KTHXBYE", "EOF"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("token dump missing %q:\n%s", want, out.String())
		}
	}
}

func TestDumpParse(t *testing.T) {
	resetDebugFlags()
	path := writeTempProgram(t, "HAI 1.2\nI HAS A X ITZ 5\nVISIBLE X\nKTHXBYE\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dparse", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v\nstderr: %s", err, errOut.String())
	}
	got := out.String()
	for _, want := range []string{"HAI 1.2", "I HAS A X ITZ 5", "VISIBLE X", "KTHXBYE"} {
		if !strings.Contains(got, want) {
			t.Errorf("AST dump missing %q:\n%s", want, got)
		}
	}
}

func TestMissingFile(t *testing.T) {
	resetDebugFlags()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.lol")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
