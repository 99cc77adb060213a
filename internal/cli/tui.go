package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/link"
	"github.com/matzehuels/menulink/pkg/registry"
)

const toastDuration = 3 * time.Second

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	toastStyles = map[toastKind]lipgloss.Style{
		toastInfo:    lipgloss.NewStyle().Foreground(colorGray),
		toastSuccess: lipgloss.NewStyle().Foreground(colorGreen),
		toastError:   lipgloss.NewStyle().Foreground(colorRed),
	}
)

// tuiCommand creates the interactive manager command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		outDir  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Manage table codes interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := c.newServices(ctx, noCache, outDir)
			if err != nil {
				return err
			}
			defer svc.Close()

			// The TUI owns the terminal; keep log lines out of the way.
			c.Logger.SetOutput(io.Discard)

			catalog := svc.cfg.Catalog()
			encode := func(scope link.Scope, label, targetID string) (*link.Record, error) {
				target, err := catalog.Target(scope, targetID, false)
				if err != nil {
					return nil, err
				}
				return svc.encoder.EncodeFor(svc.cfg.Restaurant, scope, label, target)
			}

			m := NewManagerModel(ctx, registry.New(), encode, svc.exporter, svc.cfg.Restaurant.LogoRef())
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetch cache")
	return cmd
}

// =============================================================================
// ManagerModel - Interactive code registry
// =============================================================================

// recordExporter is the subset of export.Exporter the manager uses.
type recordExporter interface {
	Download(ctx context.Context, rec *link.Record, logoRef string) (string, error)
	CopyURL(rec *link.Record) error
	Preview(rec *link.Record) error
}

// encodeFunc creates a record for a table label and optional target id.
type encodeFunc func(scope link.Scope, label, targetID string) (*link.Record, error)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

// toast is a transient status line owned by the model.
type toast struct {
	text    string
	kind    toastKind
	expires time.Time
}

// downloadDoneMsg reports a finished export. gen is the registry generation
// the download started in; results from an older generation are dropped.
type downloadDoneMsg struct {
	gen   int
	title string
	path  string
	err   error
}

type toastExpiredMsg struct{ at time.Time }

// form field indexes
const (
	fieldTable = iota
	fieldTarget
)

// ManagerModel is the bubbletea model for the code manager.
type ManagerModel struct {
	ctx      context.Context
	reg      *registry.Registry
	encode   encodeFunc
	exporter recordExporter
	logo     string

	Cursor int
	Offset int
	Height int

	// gen advances on clear and quit so in-flight downloads are discarded.
	gen      int
	inFlight int
	toast    *toast
	now      func() time.Time

	// new-code form
	editing bool
	scope   link.Scope
	field   int
	inputs  [2]string
}

// NewManagerModel creates a manager over reg.
func NewManagerModel(ctx context.Context, reg *registry.Registry, encode encodeFunc, exp recordExporter, logo string) *ManagerModel {
	return &ManagerModel{
		ctx:      ctx,
		reg:      reg,
		encode:   encode,
		exporter: exp,
		logo:     logo,
		Height:   12,
		scope:    link.ScopeTable,
		now:      time.Now,
	}
}

func (m *ManagerModel) Init() tea.Cmd {
	return nil
}

func (m *ManagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m, m.updateForm(msg)
		}
		return m, m.updateList(msg)

	case downloadDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.inFlight--
		if msg.err != nil {
			return m, m.showToast(toastError, fmt.Sprintf("%s: %s", msg.title, errors.UserMessage(msg.err)))
		}
		return m, m.showToast(toastSuccess, "Saved "+msg.path)

	case toastExpiredMsg:
		if m.toast != nil && !m.toast.expires.After(msg.at) {
			m.toast = nil
		}

	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 3)
	}
	return m, nil
}

func (m *ManagerModel) updateList(msg tea.KeyMsg) tea.Cmd {
	records := m.reg.List()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.gen++
		return tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			m.Offset = min(m.Offset, m.Cursor)
		}
	case "down", "j":
		if m.Cursor < len(records)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "n":
		m.editing = true
		m.scope = link.ScopeTable
		m.field = fieldTable
		m.inputs = [2]string{}
	case "x", "delete":
		if rec := m.selected(records); rec != nil {
			m.reg.DeleteByID(rec.ID)
			m.clampCursor()
			return m.showToast(toastInfo, "Deleted "+rec.Name)
		}
	case "C":
		m.reg.Clear()
		m.gen++
		m.inFlight = 0
		m.Cursor, m.Offset = 0, 0
		return m.showToast(toastInfo, "Cleared all codes")
	case "enter", "s":
		if rec := m.selected(records); rec != nil {
			m.inFlight++
			return tea.Batch(m.download(rec), m.showToast(toastInfo, "Rendering "+rec.Title+"..."))
		}
	case "y":
		if rec := m.selected(records); rec != nil {
			if err := m.exporter.CopyURL(rec); err != nil {
				return m.showToast(toastError, "Copy failed: "+errors.UserMessage(err))
			}
			return m.showToast(toastSuccess, "Copied link")
		}
	case "o":
		if rec := m.selected(records); rec != nil {
			if err := m.exporter.Preview(rec); err != nil {
				return m.showToast(toastError, "Open failed: "+errors.UserMessage(err))
			}
			return m.showToast(toastSuccess, "Opened "+rec.URL)
		}
	}
	return nil
}

func (m *ManagerModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.editing = false
		return nil
	case tea.KeyTab:
		m.scope = nextScope(m.scope)
		if !m.scope.NeedsTarget() {
			m.field = fieldTable
		}
		return nil
	case tea.KeyEnter:
		if m.field == fieldTable && m.scope.NeedsTarget() {
			m.field = fieldTarget
			return nil
		}
		return m.submit()
	case tea.KeyBackspace:
		in := &m.inputs[m.field]
		if r := []rune(*in); len(r) > 0 {
			*in = string(r[:len(r)-1])
		}
		return nil
	case tea.KeySpace:
		m.inputs[m.field] += " "
		return nil
	case tea.KeyRunes:
		m.inputs[m.field] += string(msg.Runes)
	}
	return nil
}

func (m *ManagerModel) submit() tea.Cmd {
	rec, err := m.encode(m.scope, m.inputs[fieldTable], m.inputs[fieldTarget])
	if err != nil {
		return m.showToast(toastError, errors.UserMessage(err))
	}
	m.reg.Insert(rec)
	m.editing = false
	m.Cursor, m.Offset = 0, 0
	return m.showToast(toastSuccess, "Created "+rec.Name)
}

func (m *ManagerModel) download(rec *link.Record) tea.Cmd {
	gen, ctx, exp, logo := m.gen, m.ctx, m.exporter, m.logo
	return func() tea.Msg {
		path, err := exp.Download(ctx, rec, logo)
		return downloadDoneMsg{gen: gen, title: rec.Title, path: path, err: err}
	}
}

func (m *ManagerModel) showToast(kind toastKind, text string) tea.Cmd {
	expires := m.now().Add(toastDuration)
	m.toast = &toast{text: text, kind: kind, expires: expires}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{at: expires}
	})
}

func (m *ManagerModel) selected(records []*link.Record) *link.Record {
	if m.Cursor < 0 || m.Cursor >= len(records) {
		return nil
	}
	return records[m.Cursor]
}

func (m *ManagerModel) clampCursor() {
	n := m.reg.Len()
	if m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
	m.Offset = min(m.Offset, m.Cursor)
}

func nextScope(s link.Scope) link.Scope {
	for i, sc := range link.Scopes {
		if sc == s {
			return link.Scopes[(i+1)%len(link.Scopes)]
		}
	}
	return link.ScopeTable
}

func (m *ManagerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Table Codes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("n new  ⏎ download  y copy  o open  x delete  C clear  q quit"))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(m.formView())
		b.WriteString("\n\n")
	}

	records := m.reg.List()
	if len(records) == 0 {
		b.WriteString(listDimStyle.Render("  No codes yet. Press n to create one."))
	} else {
		b.WriteString(m.tableView(records))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(records))))
	}

	if m.inFlight > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d rendering", m.inFlight)))
	}
	if m.toast != nil {
		b.WriteString("\n\n")
		b.WriteString(toastStyles[m.toast.kind].Render(m.toast.text))
	}
	return b.String()
}

func (m *ManagerModel) formView() string {
	field := func(label, value string, active bool) string {
		style := listNormalStyle
		cursor := ""
		if active {
			style = listSelectedStyle
			cursor = "█"
		}
		return style.Render(fmt.Sprintf("%-8s %s%s", label, value, cursor))
	}

	lines := []string{
		listDimStyle.Render("New code (tab: scope, ⏎: next/create, esc: cancel)"),
		field("Scope", string(m.scope), false),
		field("Table", m.inputs[fieldTable], m.field == fieldTable),
	}
	if m.scope.NeedsTarget() {
		lines = append(lines, field(targetLabel(m.scope), m.inputs[fieldTarget], m.field == fieldTarget))
	}
	return strings.Join(lines, "\n")
}

func targetLabel(s link.Scope) string {
	if s == link.ScopeItem {
		return "Item"
	}
	return "Category"
}

func (m *ManagerModel) tableView(records []*link.Record) string {
	end := min(m.Offset+m.Height, len(records))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.Name, string(r.Scope), r.URL})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Scope", "Link").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})
	return t.Render()
}
