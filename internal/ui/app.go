package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Villa717/sf241--react--restapi/internal/collection"
	"github.com/Villa717/sf241--react--restapi/internal/logtail"
	"github.com/Villa717/sf241--react--restapi/internal/prefs"
	"github.com/Villa717/sf241--react--restapi/internal/remote"
	"github.com/Villa717/sf241--react--restapi/internal/workflow"
)

// View represents the current active view.
type View int

const (
	ViewPosts View = iota
	ViewActivity
)

// focus identifies the pane receiving keys in ViewPosts.
type focus int

const (
	focusList focus = iota
	focusTitle
	focusBody
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Workflow      *workflow.Workflow
	APIURL        string
	LogPath       string
	ThemeName     string
	PrefsPath     string
	ConfirmDelete bool
	Logger        zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	flow          *workflow.Workflow
	store         *collection.Store
	logger        zerolog.Logger
	apiHost       string
	logPath       string
	prefsPath     string
	confirmDelete bool
	keys          keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	focus       focus
	now         time.Time

	// Data state
	snapshot collection.Snapshot
	state    workflow.State

	// List state
	selectedRow int

	// Form state
	titleInput textinput.Model
	bodyInput  textarea.Model

	// Activity state
	activityViewport viewport.Model
	activityEntries  []logtail.Entry
	activityErr      error

	// Overlays
	modal    Modal
	showHelp bool
	help     help.Model

	// Transient success message
	flash   string
	flashAt time.Time

	// Change subscriptions
	storeCh     <-chan collection.Change
	flowCh      <-chan workflow.Change
	unsubscribe []func()
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Body"
	body.ShowLineNumbers = false
	body.CharLimit = 5000
	body.SetHeight(FormHeight - 6)

	m := Model{
		ctx:           ctx,
		flow:          opts.Workflow,
		store:         opts.Workflow.Store(),
		logger:        opts.Logger.With().Str("component", "ui").Logger(),
		apiHost:       hostOf(opts.APIURL),
		logPath:       opts.LogPath,
		prefsPath:     prefsPath,
		confirmDelete: opts.ConfirmDelete,
		keys:          DefaultKeyMap(),
		theme:         GetTheme(themeName),
		currentView:   ViewPosts,
		now:           time.Now(),
		titleInput:    title,
		bodyInput:     body,
		help:          help.New(),
	}

	storeCh, cancelStore := m.store.Subscribe(16)
	flowCh, cancelFlow := m.flow.Subscribe(16)
	m.storeCh, m.flowCh = storeCh, flowCh
	m.unsubscribe = []func(){cancelStore, cancelFlow}

	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(),
		waitForStoreChange(m.storeCh),
		waitForWorkflowChange(m.flowCh),
		tickCmd(DefaultUIInterval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initActivityViewport()
		}
		m.ready = true
		m.resizeForm()
		m.updateActivityViewport()
		return m, nil

	case storeChangedMsg:
		m.refresh()
		return m, waitForStoreChange(m.storeCh)

	case workflowChangedMsg:
		m.refresh()
		return m, waitForWorkflowChange(m.flowCh)

	case commandDoneMsg:
		return m.handleCommandDone(msg)

	case deleteRequestedMsg:
		return m, m.deleteCmd(msg.id)

	case tickMsg:
		m.now = time.Time(msg)
		if m.flash != "" && m.now.Sub(m.flashAt) > FlashDuration {
			m.flash = ""
		}
		cmds := []tea.Cmd{tickCmd(DefaultUIInterval)}
		if m.currentView == ViewActivity {
			cmds = append(cmds, m.loadActivityCmd())
		}
		return m, tea.Batch(cmds...)

	case activityMsg:
		m.activityEntries = msg.entries
		m.activityErr = msg.err
		m.updateActivityViewport()
		return m, nil
	}

	// Cursor blink and other input-internal messages.
	return m.updateInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// Close releases the change subscriptions.
func (m Model) Close() {
	for _, cancel := range m.unsubscribe {
		cancel()
	}
}

// refresh re-reads the collection and workflow and reseeds the form.
func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	m.state = m.flow.State()
	m.clampSelection()
	m.syncForm()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.currentView == ViewActivity {
		return m.handleActivityKey(msg)
	}

	if m.focus != focusList {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey processes keys while the post list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m, m.setFocus(focusTitle)

	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.setFocus(focusBody)

	case key.Matches(msg, m.keys.Compose):
		if m.state.Mode() == workflow.ModeEditing {
			m.flow.Cancel()
			m.refresh()
		}
		return m, m.setFocus(focusTitle)

	case key.Matches(msg, m.keys.Edit):
		post, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		m.flow.SelectForEdit(post)
		m.refresh()
		return m, m.setFocus(focusTitle)

	case key.Matches(msg, m.keys.Delete):
		post, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		if m.confirmDelete {
			m.modal = newConfirmDeleteModal(post)
			return m, nil
		}
		return m, m.deleteCmd(post.ID)

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Activity):
		m.currentView = ViewActivity
		return m, m.loadActivityCmd()

	case key.Matches(msg, m.keys.Escape):
		if m.state.Mode() == workflow.ModeEditing {
			m.flow.Cancel()
		}
		m.flow.DismissError()
		m.refresh()
		return m, nil
	}

	m.moveSelection(msg)
	return m, nil
}

// handleFormKey processes keys while the title or body input has focus.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitCmd()

	case key.Matches(msg, m.keys.Escape):
		if m.state.Mode() == workflow.ModeEditing {
			m.flow.Cancel()
			m.refresh()
		}
		return m, m.setFocus(focusList)

	case key.Matches(msg, m.keys.Tab):
		next := focusBody
		if m.focus == focusBody {
			next = focusList
		}
		return m, m.setFocus(next)

	case key.Matches(msg, m.keys.ShiftTab):
		prev := focusList
		if m.focus == focusBody {
			prev = focusTitle
		}
		return m, m.setFocus(prev)

	case msg.Type == tea.KeyEnter && m.focus == focusTitle:
		return m, m.setFocus(focusBody)
	}

	return m.updateInputs(msg)
}

// updateInputs forwards msg to the focused input and pushes any edit into
// the workflow draft.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
		title, _ := workflow.Values(m.state.Draft)
		if v := m.titleInput.Value(); v != title {
			m.flow.UpdateDraftField(workflow.FieldTitle, v)
			m.state = m.flow.State()
		}
	case focusBody:
		m.bodyInput, cmd = m.bodyInput.Update(msg)
		_, body := workflow.Values(m.state.Draft)
		if v := m.bodyInput.Value(); v != body {
			m.flow.UpdateDraftField(workflow.FieldBody, v)
			m.state = m.flow.State()
		}
	}
	return m, cmd
}

// handleActivityKey processes keys in the activity view.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Activity):
		m.currentView = ViewPosts
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		m.updateActivityViewport()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadActivityCmd()
	case key.Matches(msg, m.keys.Top):
		m.activityViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.activityViewport.GotoBottom()
	case key.Matches(msg, m.keys.Down):
		m.activityViewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.activityViewport.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.activityViewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.activityViewport.HalfViewUp()
	}
	return m, nil
}

// handleCommandDone reacts to the end of a remote command. Errors are
// already recorded by the workflow; this only moves focus and sets a flash.
func (m Model) handleCommandDone(msg commandDoneMsg) (tea.Model, tea.Cmd) {
	m.refresh()

	if msg.err != nil {
		var valErr *workflow.ValidationError
		if errors.As(msg.err, &valErr) {
			switch valErr.Field {
			case workflow.FieldTitle.String():
				return m, m.setFocus(focusTitle)
			case workflow.FieldBody.String():
				return m, m.setFocus(focusBody)
			}
		}
		return m, nil
	}

	switch msg.op {
	case opLoad:
		m.setFlash(fmt.Sprintf("loaded %d posts", m.snapshot.Len()))
	case opCreate:
		m.setFlash("post created")
		m.selectedRow = 0
		return m, m.setFocus(focusList)
	case opUpdate:
		m.setFlash(fmt.Sprintf("post #%d updated", msg.id))
		return m, m.setFocus(focusList)
	case opDelete:
		m.setFlash(fmt.Sprintf("post #%d deleted", msg.id))
	}
	return m, nil
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashAt = m.now
}

// setFocus moves keyboard focus and returns the input's blink command.
func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.titleInput.Blur()
	m.bodyInput.Blur()
	switch f {
	case focusTitle:
		return m.titleInput.Focus()
	case focusBody:
		return m.bodyInput.Focus()
	}
	return nil
}

// syncForm copies the workflow draft into the inputs when they differ, so
// mode switches and resets show up without disturbing the cursor otherwise.
func (m *Model) syncForm() {
	title, body := workflow.Values(m.state.Draft)
	if m.titleInput.Value() != title {
		m.titleInput.SetValue(title)
		m.titleInput.CursorEnd()
	}
	if m.bodyInput.Value() != body {
		m.bodyInput.SetValue(body)
	}
}

func (m *Model) resizeForm() {
	inner := maxInt(m.width-4, 10)
	m.titleInput.Width = inner - 8
	m.bodyInput.SetWidth(inner)
	m.bodyInput.SetHeight(FormHeight - 6)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ConfirmDelete: m.confirmDelete}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn().Err(err).Msg("save prefs failed")
	}
}

// selectedPost returns the post under the list cursor.
func (m Model) selectedPost() (remote.Post, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.Posts) {
		return remote.Post{}, false
	}
	return m.snapshot.Posts[m.selectedRow], true
}

func (m *Model) moveSelection(msg tea.KeyMsg) {
	count := len(m.snapshot.Posts)
	if count == 0 {
		return
	}
	half := maxInt(m.listRows()/2, 1)
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedRow++
	case key.Matches(msg, m.keys.Up):
		m.selectedRow--
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selectedRow += half
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selectedRow -= half
	}
	m.clampSelection()
}

func (m *Model) clampSelection() {
	count := len(m.snapshot.Posts)
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewActivity:
		return m.renderActivity()
	default:
		return m.renderList() + "\n" + m.renderForm()
	}
}

func hostOf(apiURL string) string {
	u, err := url.Parse(strings.TrimSpace(apiURL))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(apiURL)
	}
	return u.Host
}

// Messages

type tickMsg time.Time

type storeChangedMsg struct{}

type workflowChangedMsg struct{}

type commandDoneMsg struct {
	op  string
	id  int64
	err error
}

type deleteRequestedMsg struct {
	id int64
}

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

const (
	opLoad   = "load"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForStoreChange(ch <-chan collection.Change) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func waitForWorkflowChange(ch <-chan workflow.Change) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return workflowChangedMsg{}
	}
}

// runCommand runs fn off the update loop with a bounded context.
func (m Model) runCommand(op string, id int64, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		cctx, cancel := context.WithTimeout(ctx, CommandTimeout)
		defer cancel()
		return commandDoneMsg{op: op, id: id, err: fn(cctx)}
	}
}

func (m Model) loadCmd() tea.Cmd {
	return m.runCommand(opLoad, 0, m.flow.Load)
}

func (m Model) submitCmd() tea.Cmd {
	if edit, ok := m.state.Draft.(workflow.EditDraft); ok {
		return m.runCommand(opUpdate, edit.Post.ID, m.flow.SubmitUpdate)
	}
	return m.runCommand(opCreate, 0, m.flow.SubmitCreate)
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	flow := m.flow
	return m.runCommand(opDelete, id, func(ctx context.Context) error {
		return flow.DeletePost(ctx, id)
	})
}

func (m Model) loadActivityCmd() tea.Cmd {
	path := m.logPath
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		entries, err := logtail.Tail(path, ActivityLineLimit)
		return activityMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
