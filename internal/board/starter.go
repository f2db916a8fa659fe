package board

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/avelkov/focusboard/internal/models"
)

// EnsureVault creates the vault directory and, when it holds no board files
// yet, a starter board so the dashboard has something to show.
func EnsureVault(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".md" {
			return nil
		}
	}
	starter := models.Board{
		Path: filepath.Join(dir, "board.md"),
		Lists: []models.List{
			{Title: "To Do", Cards: []models.Card{
				{ID: uuid.NewString(), Title: "Plan the week", Body: "Plan the week"},
				{ID: uuid.NewString(), Title: "First focus session", Body: "First focus session"},
			}},
			{Title: "Doing"},
			{Title: "Done"},
		},
	}
	return writeFileAtomic(starter.Path, RenderBoard(starter))
}
