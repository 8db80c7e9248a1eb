package transfer

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/store"
)

func newSession(t *testing.T) *app.Session {
	t.Helper()
	p, err := store.Load(store.StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	s, err := app.NewSession(context.Background(), p, app.Options{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "annals.yaml")

	src := newSession(t)
	if _, err := src.AddEvent(ctx, event.Draft{Name: "Maurya Empire", Start: -322, End: -185, Region: "South Asia"}, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := (&Export{Session: src, Path: path, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newSession(t)
	if _, err := dst.DeleteEvent(ctx, 1, ""); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := (&Import{Session: dst, Path: path, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(dst.Events()) != 5 {
		t.Fatalf("expected 5 imported events, got %d", len(dst.Events()))
	}
	if e, ok := dst.Event(5); !ok || e.Name != "Maurya Empire" {
		t.Fatalf("expected Maurya Empire, got %+v", e)
	}
}

func TestImportBadExtension(t *testing.T) {
	err := (&Import{Session: newSession(t), Path: "annals.txt"}).Do(context.Background())
	if err == nil {
		t.Fatal("expected error for unsupported file")
	}
}
