package tui

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wlerrors "github.com/mrz1836/worklog/internal/errors"
	"github.com/mrz1836/worklog/internal/worklog"
)

func TestTTYOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Success("saved")
	out.Warning("careful")
	out.Info("fyi")
	out.Error(errors.New("broken"))

	text := buf.String()
	assert.Contains(t, text, "✓ saved")
	assert.Contains(t, text, "⚠ careful")
	assert.Contains(t, text, "fyi")
	assert.Contains(t, text, "✗ broken")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf, FormatJSON)

	out.Success("ignored")
	out.Info("ignored")
	out.Warning("ignored")
	assert.Empty(t, buf.String())

	require.NoError(t, out.JSON(map[string]int{"minutes": 30}))
	assert.JSONEq(t, `{"minutes": 30}`, buf.String())

	buf.Reset()
	out.Error(errors.New("bad"))
	assert.JSONEq(t, `{"error": "bad"}`, buf.String())
}

func TestNewOutput_DefaultsToTTY(t *testing.T) {
	_, ok := NewOutput(&bytes.Buffer{}, FormatText).(*TTYOutput)
	assert.True(t, ok)
}

func TestClearScreen(t *testing.T) {
	var buf bytes.Buffer
	ClearScreen(&buf)
	assert.Equal(t, "\033c", buf.String())
}

func TestRenderTask(t *testing.T) {
	var buf bytes.Buffer
	RenderTask(&buf, worklog.Task{
		Date:        time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		Description: "deploy",
		Minutes:     30,
		Notes:       "line one\nline two\n",
	})

	text := buf.String()
	assert.Contains(t, text, "02/01/2020")
	assert.Contains(t, text, "deploy")
	assert.Contains(t, text, "30 minutes")
	assert.Contains(t, text, "line one\n              line two")
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []TableColumn{
		{Name: "ID", Width: 3, Align: AlignRight},
		{Name: "TEXT", Width: 6},
	})
	table.WriteHeader()
	table.WriteRow("7", "a much longer value")
	table.WriteRow("12")

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "ID")
	assert.Equal(t, "  7 a muc…", string(lines[1]))
	assert.Equal(t, " 12", string(lines[2]))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 5))
	assert.Equal(t, "ab", Truncate("ab", 1))
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("row 2 (line 2): %w", wlerrors.ErrMalformedRow)
	ReportError(NewTTYOutput(&buf), err)

	text := buf.String()
	assert.Contains(t, text, "✗ The work log file contains a row that cannot be read.")
	assert.Contains(t, text, "row 2 (line 2)")
	assert.Contains(t, text, "▸ Fix or remove the reported row")

	buf.Reset()
	ReportError(NewTTYOutput(&buf), nil)
	assert.Empty(t, buf.String())
}

func TestNewActionableError_NoDetailForSentinel(t *testing.T) {
	e := NewActionableError(wlerrors.ErrInvalidMenuChoice)
	assert.Equal(t, "Sorry, not in menu.", e.Error())
	assert.Empty(t, e.Suggestion)
	assert.Equal(t, "not in menu", e.Detail)
}
