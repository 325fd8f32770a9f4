package browsecmder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/render"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

// browseSource is the part of the Cogniz client the browser drives.
type browseSource interface {
	LoadView(ctx context.Context) (*cogniz.View, error)
	SelectProject(p connection.SelectedProject) error
	ForceRefresh()
}

type browseMode int

const (
	modeList browseMode = iota
	modeDetail
	modeProjects
)

// cardHeight is the number of lines one card takes in the list.
const cardHeight = 4

type browseStyles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	tag      lipgloss.Style
	warn     lipgloss.Style
	url      lipgloss.Style
}

func newBrowseStyles(r *lipgloss.Renderer) browseStyles {
	return browseStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("242")),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		tag:      r.NewStyle().Foreground(lipgloss.Color("117")),
		warn:     r.NewStyle().Foreground(lipgloss.Color("214")),
		url:      r.NewStyle().Underline(true).Foreground(lipgloss.Color("111")),
	}
}

type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Projects key.Binding
	Refresh  key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Back, k.Projects, k.Refresh, k.Copy, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up, k.Enter, k.Back}, {k.Projects, k.Refresh, k.Copy, k.Quit}}
}

func defaultKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Enter:    key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc", "h"), key.WithHelp("esc", "back")),
		Projects: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "project")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type viewLoadedMsg struct {
	view *cogniz.View
	err  error
}

type projectSelectedMsg struct {
	project connection.SelectedProject
	err     error
}

type copiedMsg struct {
	err error
}

type browseModel struct {
	ctx     context.Context
	source  browseSource
	tracker *telemetry.Tracker
	now     func() time.Time

	view  *cogniz.View
	cards []render.Card

	loading bool
	err     error
	status  string

	mode          browseMode
	cursor        int
	projectCursor int
	width         int
	height        int

	styles  browseStyles
	spinner spinner.Model
	detail  viewport.Model
	keys    browseKeyMap
	help    help.Model
}

func newBrowseModel(ctx context.Context, source browseSource, tracker *telemetry.Tracker, styles browseStyles, now func() time.Time) browseModel {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = styles.tag

	return browseModel{
		ctx:     ctx,
		source:  source,
		tracker: tracker,
		now:     now,
		loading: true,
		styles:  styles,
		spinner: spin,
		detail:  viewport.New(80, 20),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

func (m browseModel) Init() bubbletea.Cmd {
	return bubbletea.Batch(m.spinner.Tick, loadViewCmd(m.ctx, m.source, false))
}

func loadViewCmd(ctx context.Context, source browseSource, refresh bool) bubbletea.Cmd {
	return func() bubbletea.Msg {
		if refresh {
			source.ForceRefresh()
		}
		view, err := source.LoadView(ctx)
		return viewLoadedMsg{view: view, err: err}
	}
}

func selectProjectCmd(source browseSource, project connection.SelectedProject) bubbletea.Cmd {
	return func() bubbletea.Msg {
		return projectSelectedMsg{project: project, err: source.SelectProject(project)}
	}
}

func copyCmd(content string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		return copiedMsg{err: writeClipboard(content)}
	}
}

func (m browseModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-6, 1)
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd bubbletea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case viewLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.view != nil {
			m.setView(msg.view)
		}
		return m, nil
	case projectSelectedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tracker.Track(m.ctx, telemetry.EventSelectProject, map[string]any{
			"hasProjectName": msg.project.ProjectName != "",
		})
		m.mode = modeList
		m.status = "Switched to " + projectLabel(msg.project)
		return m.startLoading(false)
	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		m.tracker.Track(m.ctx, telemetry.EventInsertMemory, map[string]any{"origin": "browse"})
		m.status = "Copied memory to clipboard."
		return m, nil
	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *browseModel) setView(view *cogniz.View) {
	m.view = view
	m.cards = make([]render.Card, 0, len(view.Items))
	for _, rec := range view.Items {
		m.cards = append(m.cards, render.NewCard(rec, m.now(), render.CardLimits))
	}
	m.cursor = clamp(m.cursor, len(m.cards)-1)

	m.projectCursor = 0
	for i, p := range view.Projects {
		if p.ID == view.Active.ProjectID {
			m.projectCursor = i
		}
	}
}

func (m browseModel) startLoading(refresh bool) (bubbletea.Model, bubbletea.Cmd) {
	m.loading = true
	m.err = nil
	return m, bubbletea.Batch(m.spinner.Tick, loadViewCmd(m.ctx, m.source, refresh))
}

func (m browseModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, bubbletea.Quit
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		return m.startLoading(true)
	case key.Matches(msg, m.keys.Copy):
		if card, ok := m.selectedCard(); ok && m.mode != modeProjects {
			return m, copyCmd(card.Content)
		}
		return m, nil
	case key.Matches(msg, m.keys.Projects):
		if m.view != nil && len(m.view.Projects) > 0 {
			m.mode = modeProjects
		}
		return m, nil
	}

	switch m.mode {
	case modeDetail:
		var cmd bubbletea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case modeProjects:
		return m.handleProjectKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, len(m.cards)-1)
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, len(m.cards)-1)
	case key.Matches(msg, m.keys.Enter):
		return m.openDetail()
	}
	return m, nil
}

func (m browseModel) handleProjectKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	projects := m.view.Projects
	switch {
	case key.Matches(msg, m.keys.Down):
		m.projectCursor = clamp(m.projectCursor+1, len(projects)-1)
	case key.Matches(msg, m.keys.Up):
		m.projectCursor = clamp(m.projectCursor-1, len(projects)-1)
	case key.Matches(msg, m.keys.Enter):
		p := projects[m.projectCursor]
		if p.ID == m.view.Active.ProjectID {
			m.mode = modeList
			return m, nil
		}
		return m, selectProjectCmd(m.source, connection.SelectedProject{ProjectID: p.ID, ProjectName: p.Name})
	}
	return m, nil
}

func (m browseModel) openDetail() (bubbletea.Model, bubbletea.Cmd) {
	card, ok := m.selectedCard()
	if !ok {
		return m, nil
	}

	rendered, err := cliui.RenderMarkdown(card.Content, m.detail.Width)
	if err != nil {
		rendered = card.Content
	}
	m.detail.SetContent(rendered)
	m.detail.GotoTop()
	m.mode = modeDetail
	return m, nil
}

func (m browseModel) selectedCard() (render.Card, bool) {
	if len(m.cards) == 0 {
		return render.Card{}, false
	}
	return m.cards[m.cursor], true
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch {
	case m.view == nil && m.loading:
		fmt.Fprintf(&b, "  %s Loading memories...\n", m.spinner.View())
	case m.view == nil && m.err != nil:
		b.WriteString(m.styles.warn.Render("  "+m.err.Error()) + "\n")
	case m.view == nil:
	case !m.view.Configured:
		b.WriteString("  Cogniz is not configured. Run 'cogniz configure' to connect.\n")
	default:
		switch m.mode {
		case modeDetail:
			b.WriteString(m.viewDetail())
		case modeProjects:
			b.WriteString(m.viewProjects())
		default:
			b.WriteString(m.viewList())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m browseModel) viewHeader() string {
	header := m.styles.title.Render("Cogniz memories")
	if m.view != nil && m.view.Active.ProjectID != "" {
		header += m.styles.muted.Render(" · " + m.activeProjectName())
	}
	if m.view != nil && m.loading {
		header += " " + m.spinner.View()
	}
	return header
}

func (m browseModel) viewList() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(m.styles.warn.Render("  "+m.err.Error()) + "\n\n")
	}
	if m.view.ProjectError != "" {
		b.WriteString(m.styles.warn.Render("  Projects unavailable: "+m.view.ProjectError) + "\n\n")
	}
	if m.view.MemoryError != "" {
		b.WriteString(m.styles.warn.Render("  "+m.view.MemoryError) + "\n")
		return b.String()
	}
	if len(m.cards) == 0 {
		b.WriteString("  No memories yet. Save one with 'cogniz save'.\n")
		return b.String()
	}

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.viewCard(m.cards[i], i == m.cursor))
	}
	if end-start < len(m.cards) {
		b.WriteString(m.styles.muted.Render(fmt.Sprintf("  %d of %d", m.cursor+1, len(m.cards))) + "\n")
	}
	return b.String()
}

func (m browseModel) viewCard(card render.Card, selected bool) string {
	marker := "  "
	title := m.styles.muted.Render(card.Title)
	if selected {
		marker = m.styles.title.Render("› ")
		title = m.styles.selected.Render(card.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", marker, title)
	if card.Snippet != "" && card.Snippet != card.Title {
		fmt.Fprintf(&b, "  %s\n", m.styles.muted.Render(card.Snippet))
	}
	if len(card.Tags) > 0 {
		fmt.Fprintf(&b, "  %s\n", m.styles.tag.Render(strings.Join(card.Tags, " · ")))
	}
	b.WriteString("\n")
	return b.String()
}

// visibleRange returns the window of cards that fits the terminal, keeping
// the cursor in view.
func (m browseModel) visibleRange() (int, int) {
	total := len(m.cards)
	if m.height <= 0 {
		return 0, total
	}
	fit := max((m.height-6)/cardHeight, 1)
	if total <= fit {
		return 0, total
	}
	start := max(m.cursor-fit/2, 0)
	if start+fit > total {
		start = total - fit
	}
	return start, start + fit
}

func (m browseModel) viewDetail() string {
	card, ok := m.selectedCard()
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", m.styles.selected.Render(card.Title))
	if len(card.Tags) > 0 {
		fmt.Fprintf(&b, "  %s\n", m.styles.tag.Render(strings.Join(card.Tags, " · ")))
	}
	if card.PageURL != "" {
		label := card.PageURL
		if card.PageTitle != "" {
			label = card.PageTitle + " " + card.PageURL
		}
		fmt.Fprintf(&b, "  %s\n", m.styles.url.Render(label))
	}
	b.WriteString(m.detail.View())
	b.WriteString("\n")
	return b.String()
}

func (m browseModel) viewProjects() string {
	var b strings.Builder
	b.WriteString(m.styles.muted.Render("  Select a project") + "\n\n")
	if m.view.ProjectError != "" {
		b.WriteString(m.styles.warn.Render("  Projects unavailable: "+m.view.ProjectError) + "\n\n")
	}
	for i, p := range m.view.Projects {
		marker := "  "
		if i == m.projectCursor {
			marker = m.styles.title.Render("› ")
		}
		active := "  "
		if p.ID == m.view.Active.ProjectID {
			active = cliui.SuccessMark + " "
		}
		fmt.Fprintf(&b, "%s%s%s %s\n", marker, active, p.DisplayName(), m.styles.muted.Render("#"+p.ID))
	}
	return b.String()
}

func (m browseModel) viewFooter() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString(m.styles.muted.Render("  "+m.status) + "\n")
	}
	b.WriteString("  " + m.help.View(m.keys))
	return b.String()
}

func (m browseModel) activeProjectName() string {
	for _, p := range m.view.Projects {
		if p.ID == m.view.Active.ProjectID {
			return p.DisplayName()
		}
	}
	return projectLabel(m.view.Active)
}

func projectLabel(p connection.SelectedProject) string {
	if p.ProjectName != "" {
		return p.ProjectName
	}
	return p.ProjectID
}

func clamp(value, upper int) int {
	if upper < 0 {
		return 0
	}
	return min(max(value, 0), upper)
}
