// Package board implements the markdown vault the timer engine works
// against: board files with YAML frontmatter (per-board setting overrides)
// and "##"-headed lists of checkbox cards. Card ids live in trailing HTML
// comments so they survive external edits.
package board

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/avelkov/focusboard/internal/models"
)

const frontmatterFence = "---"

// cardRe matches a top-level checkbox item: "- [ ] Title" or "- [x] Title".
var cardRe = regexp.MustCompile(`^[-*] \[([ xX])\] (.*)$`)

// idRe extracts the stable card id comment from a title line.
var idRe = regexp.MustCompile(`\s*<!--\s*fb:([0-9a-fA-F-]+)\s*-->\s*`)

// ParseBoard reads one markdown board document. Cards missing an id comment
// get a fresh uuid; the second return reports whether any were generated so
// the caller can persist them.
func ParseBoard(path string, data []byte) (models.Board, bool, error) {
	b := models.Board{
		Path:     path,
		Title:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Settings: map[string]string{},
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	i := 0

	// Frontmatter: a leading fenced YAML block holding setting overrides.
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == frontmatterFence {
		end := -1
		for j := 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == frontmatterFence {
				end = j
				break
			}
		}
		if end > 0 {
			raw := strings.Join(lines[1:end], "\n")
			var fm map[string]any
			if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
				return models.Board{}, false, fmt.Errorf("parse frontmatter of %s: %w", path, err)
			}
			for k, v := range fm {
				b.Settings[k] = fmt.Sprint(v)
			}
			i = end + 1
		}
	}

	generated := false
	var curList *models.List
	var curCard *models.Card

	flushCard := func() {
		if curCard != nil && curList != nil {
			curList.Cards = append(curList.Cards, *curCard)
		}
		curCard = nil
	}
	flushList := func() {
		flushCard()
		if curList != nil {
			b.Lists = append(b.Lists, *curList)
		}
		curList = nil
	}

	for ; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "## "):
			flushList()
			curList = &models.List{Title: strings.TrimSpace(strings.TrimPrefix(line, "## "))}
		case cardRe.MatchString(line):
			flushCard()
			if curList == nil {
				curList = &models.List{Title: "Items"}
			}
			m := cardRe.FindStringSubmatch(line)
			title := m[2]
			id := ""
			if idm := idRe.FindStringSubmatch(title); idm != nil {
				id = idm[1]
				title = strings.TrimSpace(idRe.ReplaceAllString(title, " "))
			}
			if id == "" {
				id = uuid.NewString()
				generated = true
			}
			curCard = &models.Card{
				ID:    id,
				Title: title,
				Done:  m[1] != " ",
				Body:  title,
			}
		case curCard != nil && strings.HasPrefix(line, "  ") && strings.TrimSpace(line) != "":
			curCard.Body += "\n" + strings.TrimPrefix(line, "  ")
		case strings.TrimSpace(line) == "":
			// Blank lines separate blocks; bodies keep only real content.
		default:
			// Loose prose outside any card is tolerated and ignored.
		}
	}
	flushList()
	return b, generated, nil
}

// RenderBoard serializes a board back to markdown. Card bodies round-trip
// byte-for-byte: the first body line becomes the checkbox title and the rest
// are indented two spaces.
func RenderBoard(b models.Board) []byte {
	var sb strings.Builder

	if len(b.Settings) > 0 {
		fm, err := yaml.Marshal(b.Settings)
		if err == nil {
			sb.WriteString(frontmatterFence + "\n")
			sb.Write(fm)
			sb.WriteString(frontmatterFence + "\n\n")
		}
	}

	for li, l := range b.Lists {
		if li > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## " + l.Title + "\n\n")
		for _, c := range l.Cards {
			box := " "
			if c.Done {
				box = "x"
			}
			bodyLines := strings.Split(c.Body, "\n")
			sb.WriteString(fmt.Sprintf("- [%s] %s <!-- fb:%s -->\n", box, bodyLines[0], c.ID))
			for _, bl := range bodyLines[1:] {
				sb.WriteString("  " + bl + "\n")
			}
		}
	}
	return []byte(sb.String())
}
