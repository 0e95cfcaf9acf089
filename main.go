package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gstbrowse/internal/catalog"
	"gstbrowse/internal/config"
	"gstbrowse/internal/inspect"
	"gstbrowse/internal/ui"
	"gstbrowse/internal/ui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

// Persistent flags
var (
	debugMode bool
	toolPath  string // --gst-inspect override
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gstbrowse",
		Short: "Browse GStreamer plugins, elements and type-finders",
		Long: `gstbrowse inventories the plugins, elements and type-finders reported
by gst-inspect-1.0 and lets you browse them in the terminal: filter by
kind, search by name, and read the full report for any entry.

Run without arguments for the interactive browser, or use the list and
describe subcommands for scripting.`,
		Version: fmt.Sprintf("%s (built %s)", version, buildTime),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: runBrowse,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&toolPath, "gst-inspect", "", "path to the gst-inspect-1.0 binary")

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newDescribeCommand())

	return rootCmd
}

// setupLogging routes slog to stderr so it never corrupts the TUI frame
func setupLogging() {
	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config unreadable, using defaults", "error", err)
		return config.Default()
	}
	return cfg
}

func newService(cfg *config.Config) *catalog.Service {
	path := cfg.ToolPath
	if toolPath != "" {
		path = toolPath
	}

	opts, err := cfg.CatalogOptions()
	if err != nil {
		slog.Warn("bad catalog options in config, using defaults", "error", err)
		opts = catalog.Options{}
	}

	return catalog.NewService(inspect.New(path), opts, slog.Default())
}

// toolContext bounds a tool invocation with the configured timeout, if any.
func toolContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	if timeout := cfg.Timeout(); timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func newListCommand() *cobra.Command {
	var kindStr, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print catalog entries",
		Long: `List prints the catalog one entry per line, optionally narrowed by
kind (--kind) and by a case-insensitive name substring (--search),
followed by the item count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := catalog.ParseFilterKind(kindStr)
			if err != nil {
				return err
			}

			cfg := loadConfig()
			svc := newService(cfg)
			ctx, cancel := toolContext(cfg)
			defer cancel()

			cat := svc.BuildCatalog(ctx)
			matched, visible, total := catalog.FilterEntries(catalog.Entries(cat), kind, search)

			out := cmd.OutOrStdout()
			for _, e := range matched {
				if e.Description != "" {
					fmt.Fprintf(out, "%-10s %s  %s\n", e.Kind, e.Name, e.Description)
				} else {
					fmt.Fprintf(out, "%-10s %s\n", e.Kind, e.Name)
				}
			}
			fmt.Fprintln(out, components.StatusLine(visible, total, search != ""))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindStr, "kind", "all", "entry kind: all, plugins, elements or typefinders")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name substring")

	return cmd
}

func newDescribeCommand() *cobra.Command {
	var plugin bool

	cmd := &cobra.Command{
		Use:   "describe <name>",
		Short: "Print the gst-inspect report for an entry",
		Long: `Describe prints the full gst-inspect-1.0 report for an element or
type-finder, or for a plugin when --plugin is given. The report is
printed verbatim.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			svc := newService(cfg)
			ctx, cancel := toolContext(cfg)
			defer cancel()

			var text string
			if plugin {
				text = svc.PluginDetail(ctx, args[0])
			} else {
				text = svc.FeatureDetail(ctx, args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plugin, "plugin", false, "describe a plugin instead of a feature")

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	m := NewModel(cfg, newService(cfg))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Panel represents which panel is focused
type Panel int

const (
	PanelList Panel = iota
	PanelDetail
)

type catalogLoadedMsg struct {
	cat *catalog.Catalog
}

type detailLoadedMsg struct {
	name string
	kind catalog.Kind
	text string
}

// Model is the main application model
type Model struct {
	config  *config.Config
	service *catalog.Service

	catalog *catalog.Catalog
	entries []catalog.Entry // full sorted catalog, filter applied per keystroke
	filter  catalog.FilterKind
	visible int
	total   int

	// UI components
	list        *components.EntryList
	detail      *components.DetailView
	spinner     spinner.Model
	searchInput textinput.Model
	help        help.Model
	keys        ui.KeyMap

	focusedPanel Panel
	searching    bool
	loading      bool
	fetching     bool
	showHelp     bool
	status       string
	width        int
	height       int
}

// NewModel creates the application model
func NewModel(cfg *config.Config, svc *catalog.Service) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.ProgressStyle

	ti := textinput.New()
	ti.Placeholder = "search"
	ti.CharLimit = 128
	ti.Width = 30

	filter, err := cfg.FilterKind()
	if err != nil {
		slog.Warn("bad default filter in config, showing elements", "error", err)
		filter = catalog.FilterElements
	}

	return &Model{
		config:       cfg,
		service:      svc,
		filter:       filter,
		list:         components.NewEntryList(),
		detail:       components.NewDetailView(),
		spinner:      s,
		searchInput:  ti,
		help:         help.New(),
		keys:         ui.DefaultKeyMap(),
		focusedPanel: PanelList,
		loading:      true,
		status:       "Loading catalog...",
		width:        80,
		height:       24,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.buildCatalog)
}

// buildCatalog runs the external tool and parses the listing. Rebuilds
// construct a fresh catalog and swap it in on message receipt, so a
// half-built catalog is never visible.
func (m *Model) buildCatalog() tea.Msg {
	ctx, cancel := toolContext(m.config)
	defer cancel()
	return catalogLoadedMsg{cat: m.service.BuildCatalog(ctx)}
}

// fetchDetail loads the report for the selected entry.
func (m *Model) fetchDetail(e catalog.Entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := toolContext(m.config)
		defer cancel()
		return detailLoadedMsg{
			name: e.Name,
			kind: e.Kind,
			text: m.service.Detail(ctx, e),
		}
	}
}

// applyFilter re-derives the visible entries from the current kind
// filter and search text.
func (m *Model) applyFilter() {
	matched, visible, total := catalog.FilterEntries(m.entries, m.filter, m.searchInput.Value())
	m.list.SetEntries(matched)
	m.visible = visible
	m.total = total
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case catalogLoadedMsg:
		m.catalog = msg.cat
		m.entries = catalog.Entries(msg.cat)
		m.applyFilter()
		m.loading = false
		if len(m.entries) == 0 {
			m.status = "Catalog is empty - is gst-inspect-1.0 installed?"
		} else {
			m.status = fmt.Sprintf("Loaded %d plugins, %d features",
				len(msg.cat.Plugins), len(msg.cat.Features))
		}

	case detailLoadedMsg:
		m.fetching = false
		m.detail.SetContent(msg.name, msg.kind, msg.text)
		if msg.text == "" {
			m.status = "No report for " + msg.name
		} else {
			m.status = msg.name
		}

	case spinner.TickMsg:
		if m.loading || m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if m.focusedPanel == PanelDetail {
			cmds = append(cmds, m.detail.Update(msg))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.applyFilter()
		m.list.GoToFirst()

	case key.Matches(msg, m.keys.Refresh):
		if !m.loading {
			m.loading = true
			m.status = "Refreshing catalog..."
			return m, tea.Batch(m.spinner.Tick, m.buildCatalog)
		}

	case key.Matches(msg, m.keys.Tab):
		if m.focusedPanel == PanelList {
			m.focusedPanel = PanelDetail
		} else {
			m.focusedPanel = PanelList
		}
		m.list.Focused = m.focusedPanel == PanelList
		m.detail.Focused = m.focusedPanel == PanelDetail

	case key.Matches(msg, m.keys.Escape):
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.applyFilter()
		}

	case key.Matches(msg, m.keys.Enter):
		if entry, ok := m.list.Current(); ok && !m.fetching {
			m.fetching = true
			m.status = "Inspecting " + entry.Name + "..."
			return m, tea.Batch(m.spinner.Tick, m.fetchDetail(entry))
		}

	default:
		return m.handleNavKeys(msg)
	}

	return m, nil
}

func (m *Model) handleNavKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focusedPanel == PanelDetail {
		return m, m.detail.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.list.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.list.GoToLast()
	}

	return m, nil
}

// handleSearchKeys filters the list live as the search text changes.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilter()
	m.list.GoToFirst()
	return m, cmd
}

// layout distributes the window between the list and detail panels.
func (m *Model) layout() {
	contentHeight := m.height - 6 // header, status bar, help bar
	if contentHeight < 8 {
		contentHeight = 8
	}

	listWidth := m.width * 2 / 5
	if listWidth < 30 {
		listWidth = 30
	}
	detailWidth := m.width - listWidth - 4
	if detailWidth < 30 {
		detailWidth = 30
	}

	m.list.Width = listWidth
	m.list.Height = contentHeight
	m.detail.SetSize(detailWidth, contentHeight)
}

func (m *Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	var b []string
	b = append(b, m.renderHeader())
	b = append(b, lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.detail.View()))
	b = append(b, m.renderStatusBar())
	if m.showHelp {
		b = append(b, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b = append(b, m.renderHelpBar())
	}

	return ui.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, b...))
}

func (m *Model) renderLoading() string {
	content := fmt.Sprintf("%s %s", m.spinner.View(), m.status)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("gstbrowse")
	ver := ui.VersionStyle.Render("v" + version)
	filterInfo := ui.MutedStyle.Render("  filter: ") + ui.StatusTextStyle.Render(m.filter.String())

	search := ""
	if m.searching {
		search = "  " + m.searchInput.View()
	} else if m.searchInput.Value() != "" {
		search = ui.MutedStyle.Render("  search: ") + ui.StatusTextStyle.Render(m.searchInput.Value())
	}

	return ui.HeaderStyle.Render(title + "  " + ver + filterInfo + search)
}

func (m *Model) renderStatusBar() string {
	counts := components.StatusLine(m.visible, m.total, m.searchInput.Value() != "")

	status := m.status
	if m.fetching {
		status = m.spinner.View() + " " + status
	}

	return ui.StatusBarStyle.Render(
		ui.StatusTextStyle.Render(status) + "  •  " + counts,
	)
}

func (m *Model) renderHelpBar() string {
	if m.searching {
		items := []string{
			ui.RenderHelpItem("esc", "clear"),
			ui.RenderHelpItem("enter", "keep"),
		}
		return ui.HelpBarStyle.Render("Searching  " + joinHelp(items))
	}

	items := []string{
		ui.RenderHelpItem("enter", "details"),
		ui.RenderHelpItem("f", "filter: "+m.filter.String()),
		ui.RenderHelpItem("/", "search"),
		ui.RenderHelpItem("tab", "panel"),
		ui.RenderHelpItem("r", "refresh"),
		ui.RenderHelpItem("?", "help"),
		ui.RenderHelpItem("q", "quit"),
	}
	return ui.HelpBarStyle.Render(joinHelp(items))
}

func joinHelp(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += "  "
		}
		out += item
	}
	return out
}
