// Package project ties manipulation sessions to the file system: it owns
// one ast.Context, tracks source files by path, loads directories, writes
// buffers back to disk and records applied edits in the journal.
package project

import (
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"sculpt/internal/ast"
	"sculpt/internal/journal"
)

// Project is a set of source files sharing one manipulation session.
// Like the session itself it is single-threaded; LoadDirectory is the one
// operation that fans out internally.
type Project struct {
	context *ast.Context
	files   map[string]*ast.SourceFile
	journal *journal.Journal
}

// New creates an empty project with the given format settings.
func New(format ast.Format) *Project {
	return &Project{
		context: ast.NewContext(format),
		files:   make(map[string]*ast.SourceFile),
	}
}

// Context returns the project's manipulation session.
func (p *Project) Context() *ast.Context {
	return p.context
}

// Close releases the session. Attached journals are owned by the caller
// and stay open.
func (p *Project) Close() {
	p.context.Close()
}

// AttachJournal records every applied edit batch in j: one edit row plus
// the file's post-edit checksum and version. Journal failures are logged,
// never surfaced; the edit itself has already been applied.
func (p *Project) AttachJournal(j *journal.Journal) {
	p.journal = j
	p.context.SetEditObserver(func(e ast.FileEdit) {
		file, ok := p.files[e.Path]
		if !ok {
			return
		}
		now := time.Now().Unix()
		record := &journal.FileRecord{
			Path:         e.Path,
			Checksum:     journal.Checksum([]byte(file.Content())),
			LastModified: now,
			Version:      e.Version,
		}
		edit := &journal.EditRecord{
			BatchID:   uuid.New().String(),
			Path:      e.Path,
			Start:     e.Start,
			OldEnd:    e.OldEnd,
			NewLen:    len(e.NewText),
			AppliedAt: now,
		}
		if err := j.RecordEdit(record, edit); err != nil {
			log.Printf("Failed to journal edit for %s: %v", e.Path, err)
		}
	})
}

// CreateSourceFile parses text into a new tracked file. The path must not
// be tracked yet.
func (p *Project) CreateSourceFile(path string, text string) (*ast.SourceFile, error) {
	if _, ok := p.files[path]; ok {
		return nil, fmt.Errorf("%w: %s is already tracked", ast.ErrInvalidOperation, path)
	}
	file, err := p.context.CreateSourceFile(path, text)
	if err != nil {
		return nil, err
	}
	p.files[path] = file
	return file, nil
}

// AddSourceFileFromDisk reads path and tracks it.
func (p *Project) AddSourceFileFromDisk(path string) (*ast.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.CreateSourceFile(path, string(content))
}

// GetSourceFile returns the tracked file at path, or nil.
func (p *Project) GetSourceFile(path string) *ast.SourceFile {
	return p.files[path]
}

// GetSourceFileOrThrow is GetSourceFile, failing with ErrNotFound when
// the path is not tracked.
func (p *Project) GetSourceFileOrThrow(path string) (*ast.SourceFile, error) {
	file, ok := p.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not tracked", ast.ErrNotFound, path)
	}
	return file, nil
}

// SourceFiles returns the tracked files ordered by path.
func (p *Project) SourceFiles() []*ast.SourceFile {
	paths := make([]string, 0, len(p.files))
	for path := range p.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	out := make([]*ast.SourceFile, len(paths))
	for i, path := range paths {
		out[i] = p.files[path]
	}
	return out
}

// RemoveSourceFile stops tracking path and disposes the file's wrapper
// tree. The file on disk and any journal history are left alone.
func (p *Project) RemoveSourceFile(path string) error {
	file, ok := p.files[path]
	if !ok {
		return fmt.Errorf("%w: %s is not tracked", ast.ErrNotFound, path)
	}
	if err := file.AsNode().Forget(); err != nil {
		return err
	}
	delete(p.files, path)
	return nil
}

// Save writes the tracked file's current buffer back to its path.
func (p *Project) Save(path string) error {
	file, err := p.GetSourceFileOrThrow(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(file.Content()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// SaveAll writes every tracked file back to disk.
func (p *Project) SaveAll() error {
	for _, file := range p.SourceFiles() {
		if err := p.Save(file.Path()); err != nil {
			return err
		}
	}
	return nil
}
