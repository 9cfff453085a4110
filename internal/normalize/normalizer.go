package normalize

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	ioutils "github.com/handiism/musiclib/internal/io"
	"github.com/handiism/musiclib/internal/model"
	"github.com/handiism/musiclib/internal/progress"
)

// Options controls a normalizer run.
type Options struct {
	// DryRun reports the renames without touching the filesystem.
	DryRun bool
}

// Result summarises a normalizer run.
type Result struct {
	// Renamed lists every applied (or, in dry-run mode, planned) rename in
	// the order it happened: all files first, then all folders.
	Renamed []model.RenameCandidate

	// Skipped lists items whose repaired name would be empty.
	Skipped []string

	// Conflicts lists dry-run renames whose target is already taken, either
	// on disk or by an earlier planned rename. A real run aborts on the
	// first of them.
	Conflicts []model.RenameCandidate

	// planned holds the target paths of dry-run renames.
	planned map[string]bool
}

// Files returns the number of renamed files.
func (r *Result) Files() int {
	n := 0
	for _, c := range r.Renamed {
		if !c.IsDir {
			n++
		}
	}
	return n
}

// Folders returns the number of renamed folders.
func (r *Result) Folders() int {
	return len(r.Renamed) - r.Files()
}

// Normalizer repairs file and folder names below a root directory.
type Normalizer struct {
	opts       Options
	logger     *zap.Logger
	onProgress progress.Func
}

// New creates a Normalizer. A nil logger discards log output and a nil
// onProgress discards progress events.
func New(opts Options, logger *zap.Logger, onProgress progress.Func) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		opts:       opts,
		logger:     logger,
		onProgress: onProgress,
	}
}

// Run repairs every file name below root, then every folder name. The root
// folder itself is never renamed.
//
// The first failing rename aborts the run; renames already applied are kept
// and returned in the result. A repaired name that collides with an existing
// item fails with ioutils.ErrTargetExists.
func (n *Normalizer) Run(ctx context.Context, root string) (*Result, error) {
	result := &Result{}

	n.logger.Debug("repairing file names", zap.String("root", root), zap.Bool("dry_run", n.opts.DryRun))
	if err := n.repairFiles(ctx, root, result); err != nil {
		return result, err
	}

	n.logger.Debug("repairing folder names", zap.String("root", root), zap.Bool("dry_run", n.opts.DryRun))
	if err := n.repairFolders(ctx, root, result); err != nil {
		return result, err
	}

	return result, nil
}

func (n *Normalizer) repairFiles(ctx context.Context, root string, result *Result) error {
	return ioutils.Walk(root, func(dir string, dirs, files []string) ([]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, name := range files {
			if _, err := n.repair(ctx, dir, name, false, result); err != nil {
				return nil, err
			}
		}
		return dirs, nil
	})
}

func (n *Normalizer) repairFolders(ctx context.Context, root string, result *Result) error {
	return ioutils.Walk(root, func(dir string, dirs, _ []string) ([]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := make([]string, 0, len(dirs))
		for _, name := range dirs {
			current, err := n.repair(ctx, dir, name, true, result)
			if err != nil {
				return nil, err
			}
			next = append(next, current)
		}
		return next, nil
	})
}

// repair renames dir/name if it needs repairing and returns the name the item
// has afterwards.
func (n *Normalizer) repair(ctx context.Context, dir, name string, isDir bool, result *Result) (string, error) {
	if !NeedsRepair(name) {
		return name, nil
	}

	oldPath := filepath.Join(dir, name)
	newName := Repair(name)
	if newName == "" {
		result.Skipped = append(result.Skipped, oldPath)
		n.logger.Warn("repaired name is empty, skipping", zap.String("path", oldPath))
		n.onProgress.Emit(fmt.Sprintf("Skipped item with no usable name: %s", oldPath), progress.LevelWarning)
		return name, nil
	}

	candidate := model.RenameCandidate{OldPath: oldPath, NewName: newName, IsDir: isDir}
	if !candidate.Changed() {
		return name, nil
	}

	if n.opts.DryRun {
		return name, n.plan(candidate, result)
	}

	if err := ioutils.Rename(ctx, oldPath, candidate.NewPath()); err != nil {
		n.logger.Error("rename failed", zap.String("path", oldPath), zap.Error(err))
		return "", err
	}

	result.Renamed = append(result.Renamed, candidate)
	n.logger.Debug("renamed", zap.String("from", oldPath), zap.String("to", candidate.NewPath()), zap.Bool("dir", isDir))
	n.onProgress.Emit(fmt.Sprintf("Renamed item: %s -> %s", oldPath, candidate.NewPath()), progress.LevelInfo)
	return newName, nil
}

// plan records a dry-run rename, or a conflict when its target is taken on
// disk or by an earlier planned rename.
func (n *Normalizer) plan(candidate model.RenameCandidate, result *Result) error {
	newPath := candidate.NewPath()

	taken, err := ioutils.TargetTaken(candidate.OldPath, newPath)
	if err != nil {
		return err
	}
	if taken || result.planned[newPath] {
		result.Conflicts = append(result.Conflicts, candidate)
		n.logger.Warn("rename target already exists", zap.String("from", candidate.OldPath), zap.String("to", newPath))
		n.onProgress.Emit(fmt.Sprintf("Would fail, target exists: %s -> %s", candidate.OldPath, newPath), progress.LevelWarning)
		return nil
	}

	if result.planned == nil {
		result.planned = make(map[string]bool)
	}
	result.planned[newPath] = true
	result.Renamed = append(result.Renamed, candidate)
	n.onProgress.Emit(fmt.Sprintf("Would rename item: %s -> %s", candidate.OldPath, newPath), progress.LevelInfo)
	return nil
}
