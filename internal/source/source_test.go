package source

import (
	"os"
	"path/filepath"
	"testing"

	"tenderscan/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "notes.md"), "skip")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "skip dirs")

	f := NewFolder(dir)
	names, err := f.List()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a.txt", "b.txt"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestList_MissingDir(t *testing.T) {
	f := NewFolder(filepath.Join(t.TempDir(), "nope"))

	names, err := f.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
}

func TestExtractText(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "doc.txt"), "tender body")
	writeFile(t, filepath.Join(dir, "empty.txt"), "")

	f := NewFolder(dir)

	text, err := f.ExtractText("doc.txt")
	if err != nil {
		t.Fatal(err)
	}
	if text != "tender body" {
		t.Errorf("text = %q", text)
	}

	// Empty file is a valid empty document.
	text, err = f.ExtractText("empty.txt")
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}

	if _, err := f.ExtractText("missing.txt"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestLinked(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "doc.txt"), "main")
	writeFile(t, filepath.Join(dir, "doc_linked", "spec_annexure.txt"), "linked spec")
	writeFile(t, filepath.Join(dir, "doc_linked", "technical_details.txt"), "more specs")
	writeFile(t, filepath.Join(dir, "doc_linked", "brochure.txt"), "irrelevant")
	writeFile(t, filepath.Join(dir, "doc_linked", "spec_image.png"), "not text")

	f := NewFolder(dir)
	docs, err := f.Linked("doc.txt")
	if err != nil {
		t.Fatal(err)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d linked docs, want 2: %v", len(docs), docs)
	}
	if docs[0].Name != "spec_annexure.txt" || docs[1].Name != "technical_details.txt" {
		t.Errorf("docs = %v, want sorted relevant files", docs)
	}
	if docs[0].Text != "linked spec" {
		t.Errorf("Text = %q", docs[0].Text)
	}
}

func TestLinked_NoDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "doc.txt"), "main")

	f := NewFolder(dir)
	docs, err := f.Linked("doc.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Errorf("docs = %v, want none", docs)
	}
}
