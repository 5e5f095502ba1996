package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindArtwork(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	touch(t, coverPath)

	got := FindArtwork(filepath.Join(dir, "clip.mkv"))
	if got != coverPath {
		t.Errorf("FindArtwork() = %q, want %q", got, coverPath)
	}
}

func TestFindArtwork_NotFound(t *testing.T) {
	dir := t.TempDir()

	if got := FindArtwork(filepath.Join(dir, "clip.mkv")); got != "" {
		t.Errorf("FindArtwork() = %q, want empty string", got)
	}
}

func TestFindArtwork_Priority(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "folder.jpg"))
	touch(t, filepath.Join(dir, "cover.jpg"))
	sidecar := filepath.Join(dir, "clip.png")
	touch(t, sidecar)

	got := FindArtwork(filepath.Join(dir, "clip.mkv"))
	if got != sidecar {
		t.Errorf("FindArtwork() = %q, want sidecar %q", got, sidecar)
	}
}

func TestFindArtwork_Remote(t *testing.T) {
	if got := FindArtwork("https://example.com/cover/clip.mp4"); got != "" {
		t.Errorf("FindArtwork() = %q, want empty for remote", got)
	}
}
