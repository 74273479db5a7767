package cmd

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"presetdeck/internal/application/commands"
	"presetdeck/internal/domain"
)

func item(category, name string) domain.Item {
	return domain.Item{ID: domain.Slug(category, name), Name: name, Category: category, Source: domain.SourceBuiltin}
}

func TestPrintTree(t *testing.T) {
	tree := []domain.CategorySnapshot{
		{Name: "Idle", Items: []domain.Item{item("Idle", "Breathe"), item("Idle", "Yawn")}},
		{Name: "Wave", Items: []domain.Item{}},
		{Name: "Sit", Items: []domain.Item{item("Sit", "Chair"), item("Sit", "Cross Legged")}},
	}

	var buf bytes.Buffer
	printTree(&buf, domain.SourceBuiltin, tree)

	g := goldie.New(t)
	g.Assert(t, "tree", buf.Bytes())
}

func TestPrintPositions(t *testing.T) {
	positions := []commands.SubjectPosition{
		{SubjectID: "left", Cursor: domain.Cursor{Current: item("Sit", "Chair"), CategoryIndex: 2}},
		{SubjectID: "right", Cursor: domain.Cursor{}},
	}

	var buf bytes.Buffer
	printPositions(&buf, positions)

	g := goldie.New(t)
	g.Assert(t, "positions", buf.Bytes())
}

func TestPrintPositions_Empty(t *testing.T) {
	var buf bytes.Buffer
	printPositions(&buf, nil)

	if buf.String() != "no subjects\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
