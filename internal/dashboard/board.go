// Package dashboard composes the audit trail view of the demo dashboard: it holds the
// caller-side table state and draws pages as terminal tables.
package dashboard

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/sihproto/verifyboard/internal/datagrid"
	"github.com/sihproto/verifyboard/internal/i18n"
	"golang.org/x/text/language"
)

// Board is the audit trail panel. It owns the view state; the data and the language come
// from its collaborators.
type Board struct {
	mu        sync.Mutex
	out       io.Writer
	tr        Translator
	records   []AuditRecord
	view      datagrid.View
	collation language.Tag
	// grid carries the translated column labels; rebuilt on language change.
	grid *datagrid.Grid[AuditRecord]
}

type Config struct {
	Out        io.Writer
	Translator Translator
	Records    []AuditRecord
	PageSize   int
	Collation  language.Tag
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Out == nil {
		errGrp = append(errGrp, errors.New("output writer is required"))
	}
	if c.Translator == nil {
		errGrp = append(errGrp, errors.New("translator is required"))
	}
	return errors.Join(errGrp...)
}

// New creates a board over cfg.Records, unsorted, on the first page.
func New(cfg *Config) (*Board, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	grid, err := NewAuditGrid(cfg.Translator, cfg.Collation)
	if err != nil {
		return nil, err
	}
	return &Board{
		out:       cfg.Out,
		tr:        cfg.Translator,
		records:   slices.Clone(cfg.Records),
		view:      datagrid.NewView(cfg.PageSize),
		collation: cfg.Collation,
		grid:      grid,
	}, nil
}

// View returns the current sort and pagination state.
func (b *Board) View() datagrid.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// SetRecords replaces the rows. The current page is kept even if it no longer exists.
func (b *Board) SetRecords(records []AuditRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = slices.Clone(records)
}

// ToggleSort handles a header click on key. Non-sortable columns are ignored.
func (b *Board) ToggleSort(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid.ToggleSort(&b.view, key)
}

// SetPage moves to page without checking it against the data.
func (b *Board) SetPage(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.SetPage(page)
}

// SetPageSize changes the rows per page.
func (b *Board) SetPageSize(size int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.SetPageSize(size)
}

// Page returns the rows currently visible.
func (b *Board) Page() datagrid.Page[AuditRecord] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid.Apply(b.view, b.records)
}

// Render draws the title, the current page and the page indicator. With no rows to show
// it draws the empty-state placeholder instead of a table.
func (b *Board) Render() error {
	b.mu.Lock()
	grid := b.grid
	page := grid.Apply(b.view, b.records)
	b.mu.Unlock()

	title := b.tr.Translate("app.title", "Dashboard") + " | " + b.tr.Translate("audit.title", "Audit Trail")
	if _, err := fmt.Fprintln(b.out, title); err != nil {
		return err
	}

	if page.Empty() {
		if _, err := fmt.Fprintln(b.out, b.tr.Translate("audit.empty", "No records")); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(b.out)
		header := make([]any, 0, len(grid.Columns()))
		for _, l := range grid.Labels() {
			header = append(header, l)
		}
		table.Header(header...)

		for _, row := range page.Rows {
			if err := table.Append(grid.Cells(row)); err != nil {
				return fmt.Errorf("append row %s: %w", grid.Key(row), err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("render audit table: %w", err)
		}
	}

	_, err := fmt.Fprintln(b.out, b.pageIndicator(page))
	return err
}

func (b *Board) pageIndicator(page datagrid.Page[AuditRecord]) string {
	text := b.tr.Translate("audit.page", "Page {page} of {pages}")
	return strings.NewReplacer(
		"{page}", strconv.Itoa(page.Page+1),
		"{pages}", strconv.Itoa(page.TotalPages),
	).Replace(text)
}

// OnLanguageChange relabels the columns and redraws the board in the new language.
// It matches i18n.Listener.
func (b *Board) OnLanguageChange(change i18n.Change) {
	log.Debug().Str("language", change.Language).Msg("redrawing audit trail")
	if err := b.relabel(); err != nil {
		log.Error().Err(err).Msg("failed to relabel audit trail")
		return
	}
	if err := b.Render(); err != nil {
		log.Error().Err(err).Msg("failed to redraw audit trail")
	}
}

func (b *Board) relabel() error {
	grid, err := NewAuditGrid(b.tr, b.collation)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.grid = grid
	b.mu.Unlock()
	return nil
}
