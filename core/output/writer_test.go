package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWrite_Stdout(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Stdout: &buf}

	dest, err := w.Write("# hi")
	if err != nil {
		t.Fatal(err)
	}
	if dest != "stdout" {
		t.Errorf("dest = %q", dest)
	}
	if buf.String() != "# hi\n" {
		t.Errorf("wrote %q", buf.String())
	}
}

func TestWrite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "note.md")
	dest, err := New(path).Write("# hi")
	if err != nil {
		t.Fatal(err)
	}
	if dest != path {
		t.Errorf("dest = %q, want %q", dest, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# hi\n" {
		t.Errorf("file content %q", data)
	}
}
