package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sihproto/verifyboard/internal/datagrid"
	"github.com/sihproto/verifyboard/internal/i18n"
	"github.com/sihproto/verifyboard/internal/preferences"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newManager(t *testing.T) *i18n.Manager {
	t.Helper()
	tables, err := i18n.DefaultTables()
	require.NoError(t, err)

	m, err := i18n.New(&i18n.Config{
		Tables:          tables,
		Store:           preferences.NewMemory(),
		DefaultLanguage: "en",
	})
	require.NoError(t, err)
	return m
}

func newBoard(t *testing.T, tr Translator, records []AuditRecord, pageSize int) (*Board, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	b, err := New(&Config{
		Out:        &buf,
		Translator: tr,
		Records:    records,
		PageSize:   pageSize,
		Collation:  language.English,
	})
	require.NoError(t, err)
	return b, &buf
}

func TestNew(t *testing.T) {
	got, err := New(&Config{})
	require.Error(t, err)
	require.Nil(t, got)
	require.Equal(t, "output writer is required\ntranslator is required", err.Error())
}

func TestBoard_Render(t *testing.T) {
	m := newManager(t)
	b, buf := newBoard(t, m, SampleAudit(), 5)

	require.NoError(t, b.Render())
	out := buf.String()

	assert.Contains(t, out, "Identity Verification Dashboard | Audit Trail")
	assert.Contains(t, strings.ToUpper(out), "SUBJECT")
	assert.Contains(t, out, "Priya Sharma")
	assert.Contains(t, out, "Face match")
	assert.Contains(t, out, "0.97")
	assert.Contains(t, out, "2025-09-12 09:30")
	assert.NotContains(t, out, "Vikram Joshi")
	assert.Contains(t, out, "Page 1 of 3")
}

func TestBoard_RenderEmpty(t *testing.T) {
	m := newManager(t)
	b, buf := newBoard(t, m, nil, 5)

	require.NoError(t, b.Render())
	assert.Contains(t, buf.String(), "No records found")
	assert.Contains(t, buf.String(), "Page 1 of 0")
}

func TestBoard_SortAndPaginate(t *testing.T) {
	m := newManager(t)
	b, _ := newBoard(t, m, SampleAudit(), 4)

	b.SetPage(2)
	require.True(t, b.ToggleSort(ColumnScore))
	require.Equal(t, 0, b.View().CurrentPage)

	page := b.Page()
	require.Len(t, page.Rows, 4)
	require.Equal(t, "AV-1005", page.Rows[0].ID)
	require.Equal(t, 3, page.TotalPages)

	require.True(t, b.ToggleSort(ColumnScore))
	require.Equal(t, datagrid.SortState{Key: ColumnScore, Order: datagrid.Descending}, b.View().Sort)

	page = b.Page()
	require.Equal(t, "AV-1001", page.Rows[0].ID)

	// the id column is not sortable
	require.False(t, b.ToggleSort(ColumnID))
}

func TestBoard_StalePageAfterShrink(t *testing.T) {
	m := newManager(t)
	b, buf := newBoard(t, m, SampleAudit(), 4)

	b.SetPage(2)
	b.SetRecords(SampleAudit()[:3])

	page := b.Page()
	require.True(t, page.Empty())
	require.Equal(t, 2, page.Page)

	require.NoError(t, b.Render())
	assert.Contains(t, buf.String(), "No records found")
	assert.Contains(t, buf.String(), "Page 3 of 1")

	b.SetPageSize(20)
	require.Equal(t, 20, b.View().PageSize)
}

func TestBoard_OnLanguageChange(t *testing.T) {
	m := newManager(t)
	b, buf := newBoard(t, m, SampleAudit(), 3)
	m.AddListener(b.OnLanguageChange)

	grid := b.grid
	_ = b.Page()
	require.NoError(t, b.Render())
	require.Same(t, grid, b.grid)
	buf.Reset()

	m.SetLanguage("hi")
	require.NotSame(t, grid, b.grid)
	require.Contains(t, b.grid.Labels(), "व्यक्ति")
	out := buf.String()
	assert.Contains(t, out, "व्यक्ति")
	assert.Contains(t, out, "पहचान सत्यापन डैशबोर्ड")
	assert.Contains(t, out, "चेहरा मिलान")
	assert.Contains(t, out, "पृष्ठ 1 / 4")

	buf.Reset()
	m.SetLanguage("pa")
	out = buf.String()
	assert.Contains(t, out, "ਆਡਿਟ ਟ੍ਰੇਲ")
	// the Punjabi table has no check names, so the raw value shows
	assert.Contains(t, out, "face")
}

func TestAuditColumns(t *testing.T) {
	m := newManager(t)
	cols := AuditColumns(m)

	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	require.Equal(t, []string{ColumnID, ColumnSubject, ColumnCheck, ColumnScore, ColumnStatus, ColumnVerified, ColumnAt}, keys)

	grid, err := NewAuditGrid(m, language.English)
	require.NoError(t, err)

	record := SampleAudit()[1]
	require.Equal(t, []string{"AV-1002", "Arjun Mehta", "Liveness", "0.41", "Flagged", "No", "2025-09-12 09:33"},
		grid.Cells(record))
	require.Equal(t, "AV-1002", grid.Key(record))
}
