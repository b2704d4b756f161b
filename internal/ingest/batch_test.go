package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/reflectall/leasegen/constants"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatcherAddInfersKindAndReadsText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fica-checklist.txt", "Company Name: Acme Trading (Pty) Ltd")

	b := NewBatcher(nil)
	res, err := b.Add(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != constants.KindIdentityFICA {
		t.Errorf("kind = %s", res.Kind)
	}
	docs := b.Drain()
	if len(docs) != 1 {
		t.Fatalf("docs = %d", len(docs))
	}
	if docs[0].Text == "" {
		t.Error("txt file must be pre-read so it bypasses OCR")
	}
}

func TestBatcherDeduplicatesByContent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "statement.pdf", "%PDF-1.4 fake content")
	bPath := writeFile(t, dir, "statement-copy.pdf", "%PDF-1.4 fake content")

	b := NewBatcher(nil)
	if _, err := b.Add(a); err != nil {
		t.Fatal(err)
	}
	res, err := b.Add(bPath)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Deduplicated {
		t.Error("identical content must deduplicate")
	}
	if b.Len() != 1 {
		t.Errorf("batch len = %d, want 1", b.Len())
	}
}

func TestBatcherRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.docx", "not supported")

	b := NewBatcher(nil)
	if _, err := b.Add(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestScanDirectorySkipsHiddenAndCounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "invoice.pdf", "one")
	writeFile(t, dir, "utility-statement.pdf", "two")
	writeFile(t, dir, ".hidden.pdf", "three")
	writeFile(t, dir, "readme.md", "ignored")

	b := NewBatcher(nil)
	_, stats, err := b.ScanDirectory(context.Background(), dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Matched != 2 || stats.Succeeded != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if b.Len() != 2 {
		t.Errorf("batch len = %d", b.Len())
	}
}

func TestDrainResetsBatchButKeepsHashes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "invoice.pdf", "contents")

	b := NewBatcher(nil)
	if _, err := b.Add(path); err != nil {
		t.Fatal(err)
	}
	if got := len(b.Drain()); got != 1 {
		t.Fatalf("first drain = %d", got)
	}
	if got := len(b.Drain()); got != 0 {
		t.Fatalf("second drain = %d", got)
	}

	res, err := b.Add(path)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Deduplicated {
		t.Error("hash memory must survive a drain")
	}
}
