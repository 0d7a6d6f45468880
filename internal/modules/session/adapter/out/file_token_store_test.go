package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"endure/internal/modules/session/adapter/out"
	apperrors "endure/internal/platform/errors"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "state", "token")
	store := out.NewFileTokenStore(path)
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNoToken) {
		t.Fatalf("missing file must yield ErrNoToken, got %v", err)
	}

	if err := store.Save(ctx, "tok-123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "tok-123" {
		t.Fatalf("token round trip: %q", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("token file must be private, got %v", perm)
	}
}

func TestFileTokenStoreRefusesEmptyToken(t *testing.T) {
	t.Parallel()
	store := out.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	if err := store.Save(context.Background(), ""); err == nil {
		t.Fatal("empty token must be rejected")
	}
}

func TestFileTokenStoreTreatsBlankFileAsMissing(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("\n"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	store := out.NewFileTokenStore(path)
	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNoToken) {
		t.Fatalf("blank file must yield ErrNoToken, got %v", err)
	}
}

func TestFileTokenStoreClearIsIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "token")
	store := out.NewFileTokenStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, "tok"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear must be a no-op: %v", err)
	}
}
