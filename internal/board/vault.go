package board

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/avelkov/focusboard/internal/models"
	"github.com/avelkov/focusboard/internal/util"
)

// ErrNoVault reports a vault directory that does not exist.
var ErrNoVault = errors.New("vault directory not found")

// Vault is the document registry over one directory of board files. It
// implements the timer engine's CardStore. The revision counter may be
// bumped from the fsnotify goroutine, but boards themselves are only read
// and written from the owning event loop, which reloads lazily when it
// observes a new revision.
type Vault struct {
	dir     string
	boards  []models.Board
	rev     atomic.Uint64
	loadRev uint64
}

// Open loads all board files under dir.
func Open(dir string) (*Vault, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoVault, dir)
	}
	v := &Vault{dir: dir}
	v.rev.Add(1)
	if err := v.load(); err != nil {
		return nil, err
	}
	return v, nil
}

// Dir returns the vault directory.
func (v *Vault) Dir() string { return v.dir }

// load reparses every .md file in the vault. Boards that fail to parse are
// skipped with a log line; cards that were assigned fresh ids are persisted
// so the ids stay stable across runs.
func (v *Vault) load() error {
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		return fmt.Errorf("read vault dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	v.boards = v.boards[:0]
	for _, name := range names {
		path := filepath.Join(v.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			util.LogError("read board", err)
			continue
		}
		b, generated, err := ParseBoard(path, data)
		if err != nil {
			util.LogError("parse board", err)
			continue
		}
		if generated {
			if err := writeFileAtomic(path, RenderBoard(b)); err != nil {
				util.LogError("persist card ids", err)
			}
			v.rev.Add(1)
		}
		v.boards = append(v.boards, b)
	}
	v.loadRev = v.rev.Load()
	return nil
}

func (v *Vault) syncIfStale() {
	if v.rev.Load() == v.loadRev {
		return
	}
	if err := v.load(); err != nil {
		util.LogError("reload vault", err)
	}
}

// Documents returns all known boards. Callers must treat them as read-only.
func (v *Vault) Documents() []models.Board {
	v.syncIfStale()
	return v.boards
}

// Revision moves whenever the set or content of documents changes.
func (v *Vault) Revision() uint64 {
	return v.rev.Load()
}

// FindCard returns the first card with the given id across all boards.
func (v *Vault) FindCard(id string) (models.Card, bool) {
	v.syncIfStale()
	for _, b := range v.boards {
		if c, ok := b.FindCard(id); ok {
			return c, true
		}
	}
	return models.Card{}, false
}

// BoardFor returns the board owning the card, for settings scope.
func (v *Vault) BoardFor(cardID string) (models.Board, bool) {
	v.syncIfStale()
	for _, b := range v.boards {
		if _, ok := b.FindCard(cardID); ok {
			return b, true
		}
	}
	return models.Board{}, false
}

// UpdateCardBody replaces the raw body of a card and persists the owning
// document. The first body line becomes the card title.
func (v *Vault) UpdateCardBody(id, body string) error {
	v.syncIfStale()
	for bi := range v.boards {
		for li := range v.boards[bi].Lists {
			for ci := range v.boards[bi].Lists[li].Cards {
				card := &v.boards[bi].Lists[li].Cards[ci]
				if card.ID != id {
					continue
				}
				card.Body = body
				card.Title = strings.SplitN(body, "\n", 2)[0]
				if err := writeFileAtomic(v.boards[bi].Path, RenderBoard(v.boards[bi])); err != nil {
					return fmt.Errorf("persist board: %w", err)
				}
				v.rev.Add(1)
				// The in-memory copy already matches the file.
				v.loadRev = v.rev.Load()
				return nil
			}
		}
	}
	return fmt.Errorf("update card body: no card %s", id)
}

// Watch bumps the revision whenever a board file changes on disk, so the
// next query reloads and the session log store reparses. The returned stop
// function releases the watcher.
func (v *Vault) Watch() (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch vault: %w", err)
	}
	if err := w.Add(v.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch vault: %w", err)
	}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if strings.HasSuffix(ev.Name, ".md") &&
					ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					v.rev.Add(1)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				util.LogError("vault watcher", err)
			}
		}
	}()
	return func() { _ = w.Close() }, nil
}

// writeFileAtomic writes via a temp file and rename so readers never see a
// half-written board.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".board-*.md.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
