package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"sculpt/internal/ast"
)

// loadWorkers bounds the concurrent file reads of LoadDirectory.
const loadWorkers = 4

// LoadDirectory walks root, reads every file whose extension matches exts
// (".ts" when exts is empty) concurrently, then parses and registers the
// results sequentially in path order. Registration stays on the calling
// goroutine so the session keeps its single-owner model; syntax errors do
// not fail the load, they are recorded on the file's diagnostics.
func (p *Project) LoadDirectory(ctx context.Context, root string, exts []string) ([]*ast.SourceFile, error) {
	if len(exts) == 0 {
		exts = []string{".ts"}
	}
	match := make(map[string]bool, len(exts))
	for _, ext := range exts {
		match[ext] = true
	}

	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && match[filepath.Ext(path)] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	sort.Strings(paths)

	contents := make([][]byte, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadWorkers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			contents[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]*ast.SourceFile, 0, len(paths))
	for i, path := range paths {
		file, err := p.CreateSourceFile(path, string(contents[i]))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
