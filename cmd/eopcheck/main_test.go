package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates name in dir with content and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// execute runs the root command with args and returns its output
func execute(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	expectedFlags := []string{
		"dexpr", "dnames", "max-depth", "keyword", "nested-members",
		"jobs", "config", "watch", "verbose", "version",
	}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag --%s to exist", flagName)
		}
	}
}

func TestNoArgsPrintsHelp(t *testing.T) {
	out, _, err := execute()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "eopcheck [file...]") {
		t.Errorf("expected usage in output, got %q", out)
	}
}

func TestValidFile(t *testing.T) {
	file := writeFile(t, t.TempDir(), "ok.eop", "int main() { return 0; }")

	out, errOut, err := execute("-v", file)
	if err != nil {
		t.Fatalf("expected no error, got %v (stderr %q)", err, errOut)
	}
	if out != "" {
		t.Errorf("expected no output without dump flags, got %q", out)
	}
	if !strings.Contains(errOut, file+": ok") {
		t.Errorf("expected ok line, got %q", errOut)
	}
}

func TestSyntaxErrorReport(t *testing.T) {
	file := writeFile(t, t.TempDir(), "bad.eop", "int f(){return 0;")

	_, errOut, err := execute(file)
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}

	want := file + ":1:18: expected \"}\", found \"EOF\".\n" +
		"int f(){return 0;\n" +
		strings.Repeat(" ", 17) + "^\n"
	if errOut != want {
		t.Errorf("unexpected report:\nwant %q\ngot  %q", want, errOut)
	}
}

func TestLexicalErrorReport(t *testing.T) {
	file := writeFile(t, t.TempDir(), "lex.eop", "int f() {\n\treturn $;\n}")

	_, errOut, err := execute(file)
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
	if !strings.Contains(errOut, file+":2:9: unexpected character '$'") {
		t.Errorf("expected lexical error, got %q", errOut)
	}
	if !strings.Contains(errOut, "\treturn $;\n\t       ^\n") {
		t.Errorf("expected caret under '$', got %q", errOut)
	}
}

func TestMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.eop")

	_, errOut, err := execute(missing)
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
	if !strings.Contains(errOut, "eopcheck: error reading "+missing) {
		t.Errorf("expected read error, got %q", errOut)
	}
}

func TestDExprFlag(t *testing.T) {
	file := writeFile(t, t.TempDir(), "expr.eop", "int f(int n) { return n * 2; }")

	out, _, err := execute("--dexpr", file)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{
		file + ":1:1: int",
		file + ":1:7: int",
		file + ":1:23: n 2 *",
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestDNamesFlag(t *testing.T) {
	file := writeFile(t, t.TempDir(), "names.eop",
		"struct S; template <typename T> struct B; int f();")

	out, _, err := execute("--dnames", file)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := file + ": S\n" + file + ": B template\n" + file + ": f\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestMultipleFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.eop", "int a();")
	b := writeFile(t, dir, "b.eop", "int b(")
	c := writeFile(t, dir, "c.eop", "int c();")

	_, errOut, err := execute("-j", "2", "-v", a, b, c)
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}

	ia := strings.Index(errOut, a+": ok")
	ib := strings.Index(errOut, b+":1:7:")
	ic := strings.Index(errOut, c+": ok")
	if ia < 0 || ib < 0 || ic < 0 {
		t.Fatalf("missing results in %q", errOut)
	}
	if !(ia < ib && ib < ic) {
		t.Errorf("expected results in argument order, got %q", errOut)
	}
	if !strings.Contains(errOut, "eopcheck: 1 of 3 files failed") {
		t.Errorf("expected summary line, got %q", errOut)
	}
}

func TestMaxDepthFlag(t *testing.T) {
	src := "int f() { return " + strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20) + "; }"
	file := writeFile(t, t.TempDir(), "deep.eop", src)

	if _, errOut, err := execute(file); err != nil {
		t.Fatalf("expected no error with default depth, got %v: %s", err, errOut)
	}

	_, errOut, err := execute("--max-depth", "8", file)
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
	if !strings.Contains(errOut, "nesting too deep.") {
		t.Errorf("expected nesting error, got %q", errOut)
	}
}

func TestKeywordFlag(t *testing.T) {
	file := writeFile(t, t.TempDir(), "kw.eop", "int f() { return unless; }")

	if _, _, err := execute(file); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, _, err := execute("--keyword", "unless", file); !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed with reserved word, got %v", err)
	}
}

func TestNestedMembersFlag(t *testing.T) {
	file := writeFile(t, t.TempDir(), "nested.eop",
		"struct S { friend int g(S s); };")

	if _, _, err := execute(file); !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed without --nested-members, got %v", err)
	}
	if _, errOut, err := execute("--nested-members", file); err != nil {
		t.Fatalf("expected no error, got %v: %s", err, errOut)
	}
}
