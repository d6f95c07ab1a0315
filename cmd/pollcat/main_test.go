package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/pollio"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Concatenates(t *testing.T) {
	a := writeTemp(t, "a.txt", "hello ")
	b := writeTemp(t, "b.txt", "world")
	out := filepath.Join(t.TempDir(), "out.txt")

	n, err := run(context.Background(), options{inputs: []string{a, b}, output: out, limit: -1, bufSize: 4})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got, _ := os.ReadFile(out)
	if n != 11 || string(got) != "hello world" {
		t.Errorf("unexpected output %d %q", n, got)
	}
}

func TestRun_Limit(t *testing.T) {
	a := writeTemp(t, "a.txt", "hello ")
	b := writeTemp(t, "b.txt", "world")
	out := filepath.Join(t.TempDir(), "out.txt")

	n, err := run(context.Background(), options{inputs: []string{a, b}, output: out, limit: 8, bufSize: 3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got, _ := os.ReadFile(out)
	if n != 8 || string(got) != "hello wo" {
		t.Errorf("unexpected output %d %q", n, got)
	}
}

func TestOpenInputs_Total(t *testing.T) {
	a := writeTemp(t, "a.txt", "abc")
	b := writeTemp(t, "b.txt", "de")

	_, total, closeAll, err := openInputs([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	defer closeAll()
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}

	if _, _, _, err := openInputs([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestCountingWriter(t *testing.T) {
	var reports []int64
	w := &countingWriter{
		Writer: pollio.NewBytesWriter(),
		report: func(n int64) { reports = append(reports, n) },
	}
	w.PollWrite(pollio.NoopContext(), []byte("ab"))
	w.PollWrite(pollio.NoopContext(), []byte("cde"))
	if len(reports) != 2 || reports[1] != 5 {
		t.Errorf("unexpected reports %v", reports)
	}
}

func TestProgressModel(t *testing.T) {
	m := newProgressModel(10)
	m.Update(progressMsg(4))
	if m.copied != 4 {
		t.Fatalf("expected 4 copied, got %d", m.copied)
	}
	_, cmd := m.Update(doneMsg{n: 10})
	if !m.done || cmd == nil {
		t.Error("expected the model to finish and quit")
	}
	if v := m.View(); v == "" {
		t.Error("expected a rendered view")
	}
}
