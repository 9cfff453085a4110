package ioutils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func mkTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")

	if err := WriteFile(context.Background(), path, []byte("#EXTM3U\n")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "#EXTM3U\n" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "list.m3u")
	if err := WriteFile(ctx, path, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("WriteFile() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should not be created")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestRename(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "What?.mp3")

	oldPath := filepath.Join(root, "What?.mp3")
	newPath := filepath.Join(root, "What.mp3")
	if err := Rename(context.Background(), oldPath, newPath); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("old file still present")
	}
}

func TestRename_RefusesExistingTarget(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "a!.mp3", "a.mp3")

	err := Rename(context.Background(), filepath.Join(root, "a!.mp3"), filepath.Join(root, "a.mp3"))
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("Rename() error = %v, want ErrTargetExists", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a!.mp3")); err != nil {
		t.Error("source must be left in place")
	}
}

func TestTargetTaken(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "a!.mp3", "a.mp3", "b!.mp3")

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"existing other file", "a!.mp3", "a.mp3", true},
		{"free target", "b!.mp3", "b.mp3", false},
		{"same file", "a.mp3", "a.mp3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TargetTaken(filepath.Join(root, tt.from), filepath.Join(root, tt.to))
			if err != nil {
				t.Fatalf("TargetTaken() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TargetTaken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRename_SamePathIsNoop(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "a.mp3")
	p := filepath.Join(root, "a.mp3")
	if err := Rename(context.Background(), p, p); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
}

func TestWalk_FilesBeforeSubdirectories(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "b.mp3", "a.mp3", "Jazz/x.ogg", "Jazz/Bebop/y.mp3", "Rock/z.mp3", "Empty/")

	var visited []string
	err := Walk(root, func(dir string, dirs, files []string) ([]string, error) {
		rel, _ := filepath.Rel(root, dir)
		for _, f := range files {
			visited = append(visited, filepath.Join(rel, f))
		}
		return dirs, nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{
		"a.mp3",
		"b.mp3",
		filepath.Join("Jazz", "x.ogg"),
		filepath.Join("Jazz", "Bebop", "y.mp3"),
		filepath.Join("Rock", "z.mp3"),
	}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("visited = %v, want %v", visited, want)
	}
}

func TestWalk_DescendsIntoReturnedNames(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "Old!/song.mp3")

	var dirsSeen []string
	err := Walk(root, func(dir string, dirs, files []string) ([]string, error) {
		dirsSeen = append(dirsSeen, filepath.Base(dir))
		var next []string
		for _, d := range dirs {
			if d == "Old!" {
				if err := os.Rename(filepath.Join(dir, d), filepath.Join(dir, "Old")); err != nil {
					return nil, err
				}
				d = "Old"
			}
			next = append(next, d)
		}
		return next, nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(dirsSeen) != 2 || dirsSeen[1] != "Old" {
		t.Errorf("dirsSeen = %v, want [<root> Old]", dirsSeen)
	}
}

func TestWalk_PropagatesErrors(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "a/b.mp3")
	boom := errors.New("boom")

	err := Walk(root, func(dir string, dirs, files []string) ([]string, error) {
		if filepath.Base(dir) == "a" {
			return nil, boom
		}
		return dirs, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Walk() error = %v, want boom", err)
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	err := Walk(filepath.Join(t.TempDir(), "missing"), func(string, []string, []string) ([]string, error) {
		return nil, nil
	})
	if err == nil {
		t.Fatal("Walk() error = nil, want error for missing root")
	}
}
