package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// picker is a filterable selection overlay used for voices and ideas.
// Typing narrows the list with fuzzy matching; up/down move the cursor.
type picker struct {
	title  string
	items  []string // display labels, also the fuzzy corpus
	query  string
	cursor int
}

func newPicker(title string, items []string) *picker {
	return &picker{title: title, items: items}
}

// filtered returns the indices of items matching the current query, in
// match-quality order, or every index when the query is empty.
func (p *picker) filtered() []int {
	if p.query == "" {
		all := make([]int, len(p.items))
		for i := range p.items {
			all[i] = i
		}
		return all
	}
	matches := fuzzy.Find(p.query, p.items)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	return idx
}

// selected returns the item index under the cursor, -1 when the filter
// matches nothing.
func (p *picker) selected() int {
	visible := p.filtered()
	if len(visible) == 0 {
		return -1
	}
	if p.cursor >= len(visible) {
		p.cursor = len(visible) - 1
	}
	return visible[p.cursor]
}

func (p *picker) moveCursor(delta int) {
	visible := p.filtered()
	if len(visible) == 0 {
		p.cursor = 0
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(visible) {
		p.cursor = len(visible) - 1
	}
}

func (p *picker) typeRune(r rune) {
	p.query += string(r)
	p.cursor = 0
}

func (p *picker) backspace() {
	if p.query == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(p.query)
	p.query = p.query[:len(p.query)-size]
	p.cursor = 0
}

// view renders the overlay list, capped at height rows.
func (p *picker) view(height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("filter: " + p.query + "▌"))
	b.WriteString("\n\n")

	visible := p.filtered()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("no matches"))
		return b.String()
	}

	if p.cursor >= len(visible) {
		p.cursor = len(visible) - 1
	}
	start := 0
	if p.cursor >= height {
		start = p.cursor - height + 1
	}
	for row := start; row < len(visible) && row < start+height; row++ {
		label := p.items[visible[row]]
		if row == p.cursor {
			b.WriteString(selectedItemStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	return b.String()
}
