package normalize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	ioutils "github.com/handiism/musiclib/internal/io"
	"github.com/handiism/musiclib/internal/progress"
)

// makeTree creates the given paths below root. Paths ending in "/" are
// directories, everything else an empty file.
func makeTree(t *testing.T, root string, paths ...string) {
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
		if err := os.WriteFile(full, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// listTree returns every path below root, relative and slash-separated.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(out)
	return out
}

func TestNormalizer_Run(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"Artist: Live/Disc 1?/01 Intro!.mp3",
		"Artist: Live/Disc 1?/02 \"Hit\".mp3",
		"Artist: Live/cover.jpg",
		"Greatest Hits.../Why?.ogg",
		"Clean/ok.mp3",
	)

	var events []progress.Event
	n := New(Options{}, nil, func(e progress.Event) { events = append(events, e) })

	result, err := n.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"Artist - Live/",
		"Artist - Live/Disc 1/",
		"Artist - Live/Disc 1/01 Intro.mp3",
		"Artist - Live/Disc 1/02 'Hit'.mp3",
		"Artist - Live/cover.jpg",
		"Clean/",
		"Clean/ok.mp3",
		"Greatest Hits/",
		"Greatest Hits/Why.ogg",
	}
	got := listTree(t, root)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("tree after Run():\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	if result.Files() != 3 || result.Folders() != 3 {
		t.Errorf("Files() = %d, Folders() = %d, want 3 and 3", result.Files(), result.Folders())
	}
	if len(events) != 6 {
		t.Fatalf("got %d events, want 6", len(events))
	}
	for _, e := range events {
		if !strings.HasPrefix(e.Message, "Renamed item: ") || !strings.Contains(e.Message, " -> ") {
			t.Errorf("unexpected event message %q", e.Message)
		}
	}
}

func TestNormalizer_FilesBeforeFolders(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "Dir!/file?.mp3")

	result, err := New(Options{}, nil, nil).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Renamed) != 2 {
		t.Fatalf("got %d renames, want 2", len(result.Renamed))
	}
	if result.Renamed[0].IsDir || !result.Renamed[1].IsDir {
		t.Errorf("renames out of order: %+v", result.Renamed)
	}
	if want := filepath.Join(root, "Dir!", "file?.mp3"); result.Renamed[0].OldPath != want {
		t.Errorf("file OldPath = %q, want %q", result.Renamed[0].OldPath, want)
	}
}

func TestNormalizer_NestedFoldersRenamedInOnePass(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a?/b?/c?/")

	if _, err := New(Options{}, nil, nil).Run(context.Background(), root); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"a/", "a/b/", "a/b/c/"}
	if got := listTree(t, root); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("tree = %v, want %v", got, want)
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"Vol. 1: Live.../Track : One.mp3",
		"Vol. 1: Live.../x:y.ogg",
		"\"Q\"/a!.mp3",
	)

	n := New(Options{}, nil, nil)
	if _, err := n.Run(context.Background(), root); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	after := listTree(t, root)

	second, err := n.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if len(second.Renamed) != 0 {
		t.Errorf("second run renamed %d items: %+v", len(second.Renamed), second.Renamed)
	}
	if got := listTree(t, root); strings.Join(got, ",") != strings.Join(after, ",") {
		t.Errorf("tree changed on second run: %v -> %v", after, got)
	}
}

func TestNormalizer_DryRun(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "Bad?/song!.mp3")
	before := listTree(t, root)

	var messages []string
	n := New(Options{DryRun: true}, nil, func(e progress.Event) { messages = append(messages, e.Message) })
	result, err := n.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := listTree(t, root); strings.Join(got, ",") != strings.Join(before, ",") {
		t.Errorf("dry run changed the tree: %v", got)
	}
	if len(result.Renamed) != 2 {
		t.Errorf("planned %d renames, want 2", len(result.Renamed))
	}
	for _, m := range messages {
		if !strings.HasPrefix(m, "Would rename item: ") {
			t.Errorf("unexpected dry-run message %q", m)
		}
	}
}

func TestNormalizer_DryRunReportsConflicts(t *testing.T) {
	tests := []struct {
		name      string
		tree      []string
		renamed   int
		conflicts int
	}{
		{"target on disk", []string{"song.mp3", "song!.mp3"}, 0, 1},
		{"two names repair alike", []string{"song!.mp3", "song?.mp3"}, 1, 1},
		{"folder onto folder", []string{"Live/", "Live?/"}, 0, 1},
		{"no conflict", []string{"a!.mp3", "b?.mp3"}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			makeTree(t, root, tt.tree...)

			var warnings []string
			n := New(Options{DryRun: true}, nil, func(e progress.Event) {
				if e.Level == progress.LevelWarning {
					warnings = append(warnings, e.Message)
				}
			})
			result, err := n.Run(context.Background(), root)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if len(result.Renamed) != tt.renamed {
				t.Errorf("Renamed = %v, want %d", result.Renamed, tt.renamed)
			}
			if len(result.Conflicts) != tt.conflicts || len(warnings) != tt.conflicts {
				t.Errorf("Conflicts = %v, warnings = %v, want %d", result.Conflicts, warnings, tt.conflicts)
			}
			for _, w := range warnings {
				if !strings.HasPrefix(w, "Would fail, target exists: ") {
					t.Errorf("unexpected warning %q", w)
				}
			}
		})
	}
}

func TestNormalizer_CollisionAborts(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/song.mp3", "a/song!.mp3", "b/z?.mp3")

	result, err := New(Options{}, nil, nil).Run(context.Background(), root)
	if !errors.Is(err, ioutils.ErrTargetExists) {
		t.Fatalf("Run() error = %v, want ErrTargetExists", err)
	}
	if len(result.Renamed) != 0 {
		t.Errorf("renamed %d items before the collision, want 0", len(result.Renamed))
	}
	if _, err := os.Stat(filepath.Join(root, "b", "z?.mp3")); err != nil {
		t.Error("walk should stop at the first failed rename")
	}
}

func TestNormalizer_SkipsEmptyNames(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "?!", ".../")

	core, logs := observer.New(zap.WarnLevel)
	var warnings int
	n := New(Options{}, zap.New(core), func(e progress.Event) {
		if e.Level == progress.LevelWarning {
			warnings++
		}
	})

	result, err := n.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Skipped) != 2 || len(result.Renamed) != 0 {
		t.Errorf("Skipped = %v, Renamed = %v", result.Skipped, result.Renamed)
	}
	if warnings != 2 {
		t.Errorf("got %d warning events, want 2", warnings)
	}
	if logs.FilterMessage("repaired name is empty, skipping").Len() != 2 {
		t.Errorf("expected 2 warning logs, got %d", logs.Len())
	}
}

func TestNormalizer_CancelledContext(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a?.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(Options{}, nil, nil).Run(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a?.mp3")); err != nil {
		t.Error("nothing should be renamed after cancellation")
	}
}
