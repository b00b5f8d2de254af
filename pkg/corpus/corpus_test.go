package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/slotmap/internal/pdftest"
	"github.com/ccollicutt/slotmap/pkg/document"
	"github.com/ccollicutt/slotmap/pkg/extract"
	"github.com/ccollicutt/slotmap/pkg/schedule"
)

func writeText(t *testing.T, dir, name, content string) document.Document {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return document.New(path)
}

func TestBuild_TwoProgramsOverlap(t *testing.T) {
	dir := t.TempDir()
	pdftest.Write(t, dir, "A.pdf", []string{"MONDAY", "9:00 am 10:00 am"})
	pdftest.Write(t, dir, "B.pdf", []string{"MONDAY", "9:30 am 10:30 am"})

	docs, err := document.Discover(dir, []string{".pdf"})
	require.NoError(t, err)

	c, err := NewBuilder(extract.New()).Build(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, c.Programs)
	assert.Equal(t, []schedule.Record{
		{Day: schedule.Monday, Slot: "09:00"},
		{Day: schedule.Monday, Slot: "09:30"},
		{Day: schedule.Monday, Slot: "09:30"},
		{Day: schedule.Monday, Slot: "10:00"},
	}, c.Records)

	g := c.Tabulate()
	assert.Equal(t, 2, g.Count("09:30", schedule.Monday))
	assert.Equal(t, 1, g.Count("09:00", schedule.Monday))
	assert.Equal(t, 1, g.Count("10:00", schedule.Monday))
	assert.Equal(t, 0, g.Count("10:30", schedule.Monday))
	assert.Equal(t, 4, g.Total())
}

func TestBuild_ProgramsIncludeEmptyDocuments(t *testing.T) {
	dir := t.TempDir()
	docs := []document.Document{
		writeText(t, dir, "busy.txt", "FRIDAY\n1:00 pm 2:00 pm"),
		writeText(t, dir, "empty.txt", ""),
		writeText(t, dir, "notes.txt", "nothing scheduled"),
	}

	c, err := NewBuilder(extract.New()).Build(context.Background(), docs)
	require.NoError(t, err)

	assert.Len(t, c.Programs, len(docs))
	assert.Equal(t, []string{"busy", "empty", "notes"}, c.Programs)
	assert.Len(t, c.Records, 2)
	assert.Equal(t, 2, c.Stats.Records)
}

func TestBuild_DayDoesNotCarryAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	docs := []document.Document{
		writeText(t, dir, "A.txt", "MONDAY\n9:00 am 10:00 am"),
		writeText(t, dir, "B.txt", "9:00 am 10:00 am"),
	}

	c, err := NewBuilder(extract.New()).Build(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, c.Programs)
	assert.Equal(t, []schedule.Record{
		{Day: schedule.Monday, Slot: "09:00"},
		{Day: schedule.Monday, Slot: "09:30"},
	}, c.Records)
	assert.Equal(t, 1, c.Stats.OrphanTimeRanges)
	assert.Equal(t, 2, c.Stats.Records)
}

func TestBuild_OpenFailureAborts(t *testing.T) {
	dir := t.TempDir()
	docs := []document.Document{
		writeText(t, dir, "ok.txt", "MONDAY\n9:00 am 10:00 am"),
		document.New(filepath.Join(dir, "missing.pdf")),
	}

	c, err := NewBuilder(extract.New()).Build(context.Background(), docs)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, document.ErrOpen), "error %v should wrap ErrOpen", err)
	assert.Contains(t, err.Error(), "missing")
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(extract.New()).Build(ctx, []document.Document{document.New("a.txt")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_NoDocuments(t *testing.T) {
	c, err := NewBuilder(extract.New()).Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, c.Programs)
	assert.Empty(t, c.Records)
	assert.Equal(t, 0, c.Tabulate().Total())
}
