package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
)

// listWidth is the width of the chunk list column.
const listWidth = 36

// App is the annotator TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles
	keys   *keymap.KeyMap
	status *status.Bar
	help   help.Model
	text   viewport.Model

	config     domain.ChunkConfig
	exportPath string
	sessionID  string

	// annotations holds the last stored annotation per configured chunk id.
	annotations map[string]domain.ChunkAnnotation

	cursor       int
	marked       string
	relationType domain.RelationType

	showHelp bool
	err      error
	width    int
	height   int
	ready    bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the annotator for a chunk configuration. The export is
// written to exportPath.
func NewApp(ports *Ports, config domain.ChunkConfig, exportPath string) (*App, error) {
	if ports == nil {
		return nil, ErrMissingSessionService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keys:         km,
		status:       status.NewBar(s, km),
		help:         help.New(),
		text:         viewport.New(40, 10),
		config:       config,
		exportPath:   exportPath,
		annotations:  make(map[string]domain.ChunkAnnotation),
		relationType: domain.RelationReferences,
	}, nil
}

// WithContext sets the context passed to service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It starts the working session.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("annotator"),
		a.startSession(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.SessionStarted:
		if msg.Err != nil {
			a.err = msg.Err
			a.status.SetState(status.StateError, describe(msg.Err))
			return a, nil
		}
		a.sessionID = msg.Created.SessionID
		a.status.SetState(status.StateInfo, fmt.Sprintf("Session started with %d chunk(s)", msg.Created.ChunkCount))
		a.refreshText()
		return a, a.loadProgress()

	case messages.AnnotationSaved:
		if msg.Err != nil {
			a.status.SetState(status.StateError, describe(msg.Err))
			return a, nil
		}
		a.annotations[msg.ChunkID] = *msg.Annotation
		a.status.SetState(status.StateInfo, "Saved "+msg.Annotation.ChunkID)
		a.refreshText()
		return a, a.loadProgress()

	case messages.RelationAdded:
		if msg.Err != nil {
			a.status.SetState(status.StateError, describe(msg.Err))
			return a, nil
		}
		a.recordRelation(msg.Result)
		a.status.SetState(status.StateInfo, fmt.Sprintf("%s %s → %s",
			msg.Result.RelationType, msg.Result.SourceChunkID, msg.Result.TargetChunkID))
		a.refreshText()
		return a, a.loadProgress()

	case messages.ProgressLoaded:
		if msg.Err != nil {
			a.status.SetState(status.StateError, describe(msg.Err))
			return a, nil
		}
		a.status.SetProgress(*msg.Progress)
		return a, nil

	case messages.ExportWritten:
		if msg.Err != nil {
			a.status.SetState(status.StateError, describe(msg.Err))
			return a, nil
		}
		a.status.SetState(status.StateInfo, fmt.Sprintf("Exported %d chunk(s) to %s", msg.Chunks, msg.Path))
		return a, nil
	}

	var cmd tea.Cmd
	a.text, cmd = a.text.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.Quit) {
		return tea.Quit
	}
	if key.Matches(msg, a.keys.Help) {
		a.showHelp = !a.showHelp
		return nil
	}
	if a.sessionID == "" || len(a.config.Chunks) == 0 {
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
			a.refreshText()
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.config.Chunks)-1 {
			a.cursor++
			a.refreshText()
		}
	case key.Matches(msg, a.keys.Category):
		return a.cycleCategory()
	case key.Matches(msg, a.keys.Label):
		return a.cycleLabel()
	case key.Matches(msg, a.keys.Subtype):
		return a.cycleSubtype()
	case key.Matches(msg, a.keys.Mark):
		a.marked = a.current().ChunkID
		a.status.SetState(status.StateInfo, "Relation source: "+a.marked)
	case key.Matches(msg, a.keys.RelationType):
		a.relationType = next(domain.RelationTypes(), a.relationType)
		a.status.SetState(status.StateInfo, "Relation type: "+a.relationType.String())
	case key.Matches(msg, a.keys.Relate):
		if a.marked == "" {
			a.status.SetState(status.StateError, "mark a source chunk first")
			return nil
		}
		return a.addRelation(a.marked, a.current().ChunkID)
	case key.Matches(msg, a.keys.Export):
		return a.export()
	default:
		var cmd tea.Cmd
		a.text, cmd = a.text.Update(msg)
		return cmd
	}
	return nil
}

// current returns the chunk under the cursor.
func (a *App) current() domain.ConfigChunk {
	return a.config.Chunks[a.cursor]
}

// cycleCategory advances the chunk's category. A chunk that already has a
// subtype gets the new category's first subtype in the same call: a non-empty
// subtype map replaces the stored one, while an omitted map would keep a
// subtype for a category the chunk no longer has.
func (a *App) cycleCategory() tea.Cmd {
	chunk := a.current()
	ann := a.annotations[chunk.ChunkID]
	category := next(domain.Categories(), first(ann.Categories))
	input := driving.AnnotateChunkInput{
		ChunkID:    chunk.ChunkID,
		Categories: []string{category.String()},
	}
	if allowed := category.Subtypes(); len(ann.Subtypes) > 0 && len(allowed) > 0 {
		input.Subtypes = map[string]string{category.String(): allowed[0].String()}
	}
	return a.annotate(input)
}

func (a *App) cycleLabel() tea.Cmd {
	chunk := a.current()
	ann := a.annotations[chunk.ChunkID]
	label := next(domain.Labels(), first(ann.Labels))
	return a.annotate(driving.AnnotateChunkInput{
		ChunkID: chunk.ChunkID,
		Labels:  []string{label.String()},
	})
}

// cycleSubtype advances the subtype of the chunk's first category. The
// category is sent along because subtypes are checked against the same call.
func (a *App) cycleSubtype() tea.Cmd {
	chunk := a.current()
	ann := a.annotations[chunk.ChunkID]
	category := first(ann.Categories)
	if category == "" {
		a.status.SetState(status.StateError, "set a category first")
		return nil
	}
	allowed := category.Subtypes()
	if len(allowed) == 0 {
		a.status.SetState(status.StateError, category.String()+" has no subtypes")
		return nil
	}
	subtype := next(allowed, ann.Subtypes[category])
	return a.annotate(driving.AnnotateChunkInput{
		ChunkID:    chunk.ChunkID,
		Categories: []string{category.String()},
		Subtypes:   map[string]string{category.String(): subtype.String()},
	})
}

// recordRelation mirrors a stored relation on the local copy of the source annotation.
func (a *App) recordRelation(r *domain.RelationAdded) {
	ann, ok := a.annotations[r.SourceChunkID]
	if !ok {
		for _, c := range a.config.Chunks {
			if c.ChunkID == r.SourceChunkID {
				ann = domain.NewChunkAnnotation(c)
			}
		}
	}
	ann.AddRelation(r.RelationType, r.TargetChunkID)
	a.annotations[r.SourceChunkID] = ann
}

// Commands. Each runs one service call and reports it as a message.

func (a *App) startSession() tea.Cmd {
	ctx, config := a.ctx, a.config
	return func() tea.Msg {
		created, err := a.ports.Sessions.Start(ctx, config)
		return messages.SessionStarted{Created: created, Err: err}
	}
}

func (a *App) annotate(input driving.AnnotateChunkInput) tea.Cmd {
	a.status.SetState(status.StateWorking, "")
	ctx, sessionID := a.ctx, a.sessionID
	return func() tea.Msg {
		ann, err := a.ports.Annotations.AnnotateChunk(ctx, sessionID, input)
		return messages.AnnotationSaved{ChunkID: input.ChunkID, Annotation: ann, Err: err}
	}
}

func (a *App) addRelation(source, target string) tea.Cmd {
	ctx, sessionID, kind := a.ctx, a.sessionID, a.relationType.String()
	return func() tea.Msg {
		res, err := a.ports.Relations.AddRelation(ctx, sessionID, source, target, kind)
		return messages.RelationAdded{Result: res, Err: err}
	}
}

func (a *App) loadProgress() tea.Cmd {
	ctx, sessionID := a.ctx, a.sessionID
	return func() tea.Msg {
		p, err := a.ports.Reports.Progress(ctx, sessionID)
		return messages.ProgressLoaded{Progress: p, Err: err}
	}
}

func (a *App) export() tea.Cmd {
	ctx, sessionID, path := a.ctx, a.sessionID, a.exportPath
	return func() tea.Msg {
		export, err := a.ports.Reports.Export(ctx, sessionID)
		if err != nil {
			return messages.ExportWritten{Path: path, Err: err}
		}
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return messages.ExportWritten{Path: path, Err: fmt.Errorf("encoding export: %w", err)}
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
			return messages.ExportWritten{Path: path, Err: fmt.Errorf("writing export: %w", err)}
		}
		return messages.ExportWritten{Path: path, Chunks: len(export.Chunks)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.err != nil {
		return a.styles.Error.Render("Cannot start session: "+describe(a.err)) + "\n\n" +
			a.styles.Help.Render("q quit")
	}
	if a.showHelp {
		return a.styles.Title.Render("Keys") + "\n\n" + a.help.FullHelpView(a.keys.FullHelp()) + "\n\n" +
			a.styles.Help.Render("? back")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, a.viewList(), " ", a.styles.Pane.Render(a.text.View()))
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("annotator")+" "+a.styles.Muted.Render(a.sessionID),
		body,
		a.status.View(),
	)
}

func (a *App) viewList() string {
	var b strings.Builder
	for i, chunk := range a.config.Chunks {
		marker := " "
		style := a.styles.Pending
		if _, ok := a.annotations[chunk.ChunkID]; ok {
			marker = "✓"
			style = a.styles.Normal
		}
		if chunk.ChunkID == a.marked {
			style = a.styles.Marked
		}
		line := fmt.Sprintf("%s %3d %s", marker, chunk.Position, truncate(chunk.ChunkID, listWidth-7))
		if i == a.cursor {
			style = a.styles.Selected
		}
		b.WriteString(style.Width(listWidth).Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// refreshText renders the selected chunk and its annotation into the viewport.
func (a *App) refreshText() {
	if len(a.config.Chunks) == 0 {
		return
	}
	chunk := a.current()
	ann, annotated := a.annotations[chunk.ChunkID]

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(chunk.ChunkID))
	if annotated && ann.ChunkID != chunk.ChunkID {
		b.WriteString(a.styles.Muted.Render("  " + ann.ChunkID))
	}
	b.WriteString("\n\n")
	for _, c := range ann.Categories {
		b.WriteString(a.styles.Category.Render(c.String()) + " ")
		if sub, ok := ann.Subtypes[c]; ok {
			b.WriteString(a.styles.Muted.Render(sub.String()) + " ")
		}
	}
	for _, l := range ann.Labels {
		b.WriteString(a.styles.Label.Render(l.String()) + " ")
	}
	for _, kind := range domain.RelationTypes() {
		if targets := ann.Relations[kind]; len(targets) > 0 {
			b.WriteString("\n" + a.styles.Muted.Render(kind.String()+" → "+strings.Join(targets, ", ")))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(a.styles.Normal.Render(chunk.Text))

	a.text.SetContent(b.String())
	a.text.GotoTop()
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.status.SetWidth(width)
	a.help.Width = width
	a.text.Width = max(width-listWidth-5, 20)
	a.text.Height = max(height-5, 5)
	a.refreshText()
}

// Run starts the TUI program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// SessionID returns the working session id, empty until started.
func (a *App) SessionID() string {
	return a.sessionID
}

// Cursor returns the index of the selected chunk.
func (a *App) Cursor() int {
	return a.cursor
}

// Annotation returns the last stored annotation for a configured chunk id.
func (a *App) Annotation(chunkID string) (domain.ChunkAnnotation, bool) {
	ann, ok := a.annotations[chunkID]
	return ann, ok
}

// Status returns the status bar.
func (a *App) Status() *status.Bar {
	return a.status
}

// Err returns the session start error, if any.
func (a *App) Err() error {
	return a.err
}

// describe renders an error for the status bar.
func describe(err error) string {
	var e *domain.Error
	if errors.As(err, &e) {
		return fmt.Sprintf("%s: %s", e.Kind, e.Error())
	}
	return err.Error()
}

// next returns the value after cur in values, wrapping around. An absent
// cur yields the first value.
func next[T comparable](values []T, cur T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

func first[T any](values []T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[0]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
