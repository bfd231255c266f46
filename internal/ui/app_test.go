package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/state"
)

var testBooks = []catalog.Book{
	{ID: "1", Title: "Anna Karenina", Index: 0},
	{ID: "2", Title: "Beloved", Index: 1},
	{ID: "3", Title: "The Kite Runner", Index: 2},
}

// fakeLoad commits results to the store the way app.Loader does.
type fakeLoad struct {
	store   *state.Store
	results []error // consumed in order; nil commits testBooks
	calls   int
}

func (f *fakeLoad) Load(ctx context.Context) error {
	var err error
	if f.calls < len(f.results) {
		err = f.results[f.calls]
	}
	f.calls++
	if err != nil {
		f.store.Fail(err)
		return err
	}
	f.store.Load(testBooks)
	return nil
}

func newTestModel(t *testing.T, results ...error) (Model, *fakeLoad) {
	t.Helper()
	store := &state.Store{}
	loader := &fakeLoad{store: store, results: results}
	m := New(Options{Store: store, Load: loader.Load})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, loader
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func runLoad(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("load command is nil")
	}
	msg := cmd()
	if _, ok := msg.(loadedMsg); !ok {
		t.Fatalf("load command produced %T, want loadedMsg", msg)
	}
	m, _ = update(t, m, msg)
	return m
}

func press(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func titles(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View before resize = %q, want Loading...", got)
	}
}

func TestModel_LoadThenSearchScenario(t *testing.T) {
	m, loader := newTestModel(t)
	if !m.snap.Loading() || !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("model not loading before the fetch completes")
	}

	m = runLoad(t, m, m.loadCmd(m.gen))
	if loader.calls != 1 {
		t.Fatalf("load calls = %d, want 1", loader.calls)
	}
	if m.snap.Loading() || len(m.snap.Filtered) != 3 {
		t.Fatalf("after load: loading=%v filtered=%d, want false/3", m.snap.Loading(), len(m.snap.Filtered))
	}

	m = typeText(t, m, "the")
	got := titles(m.snap.Filtered)
	if len(got) != 1 || got[0] != "The Kite Runner" {
		t.Fatalf("filtered for %q = %v, want [The Kite Runner]", "the", got)
	}
	view := m.View()
	if !strings.Contains(view, "The Kite Runner") || strings.Contains(view, "Beloved") {
		t.Fatalf("view does not show exactly the match:\n%s", view)
	}
	if !strings.Contains(view, "1 of 3 books") {
		t.Fatalf("view missing count:\n%s", view)
	}

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, press(tea.KeyBackspace))
	}
	got = titles(m.snap.Filtered)
	want := titles(testBooks)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("filtered after clearing = %v, want %v", got, want)
	}
}

func TestModel_SearchBeforeLoadAppliesAfterLoad(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "BELOVED")
	m = runLoad(t, m, m.loadCmd(m.gen))

	got := titles(m.snap.Filtered)
	if len(got) != 1 || got[0] != "Beloved" {
		t.Fatalf("filtered = %v, want [Beloved]", got)
	}
}

func TestModel_FailedLoadStaysLoading(t *testing.T) {
	m, _ := newTestModel(t, errors.New("connection refused"))
	m = runLoad(t, m, m.loadCmd(m.gen))

	if !m.snap.Loading() || len(m.snap.Filtered) != 0 {
		t.Fatalf("after failure: loading=%v filtered=%d, want true/0", m.snap.Loading(), len(m.snap.Filtered))
	}
	view := m.View()
	if !strings.Contains(view, "Loading...") || !strings.Contains(view, "ctrl+r") {
		t.Fatalf("view missing loading indicator or retry hint:\n%s", view)
	}
	if !m.keys.Retry.Enabled() {
		t.Fatalf("retry binding disabled after failure")
	}

	// Navigation keys are inert while loading.
	m, _ = update(t, m, press(tea.KeyDown))
	m, _ = update(t, m, press(tea.KeyEnter))
	if m.cursor != 0 || m.search.Value() != "" {
		t.Fatalf("navigation acted while loading: cursor=%d query=%q", m.cursor, m.search.Value())
	}
}

func TestModel_RetryAfterFailure(t *testing.T) {
	m, loader := newTestModel(t, errors.New("timeout"))
	m = runLoad(t, m, m.loadCmd(m.gen))

	m, cmd := update(t, m, press(tea.KeyCtrlR))
	if cmd == nil || m.gen != 2 || !m.inFlight {
		t.Fatalf("retry: cmd=%v gen=%d inFlight=%v, want command, gen 2, in flight", cmd, m.gen, m.inFlight)
	}
	if m.keys.Retry.Enabled() {
		t.Fatalf("retry binding enabled while a load is in flight")
	}
	if !strings.Contains(m.View(), "Retrying...") {
		t.Fatalf("view missing retry state:\n%s", m.View())
	}

	// A result tagged with the first generation is stale.
	m, _ = update(t, m, loadedMsg{gen: 1})
	if !m.inFlight {
		t.Fatalf("stale result cleared the in-flight load")
	}

	m = runLoad(t, m, cmd)
	if m.snap.Loading() || len(m.snap.Filtered) != 3 {
		t.Fatalf("after retry: loading=%v filtered=%d, want false/3", m.snap.Loading(), len(m.snap.Filtered))
	}
	if loader.calls != 2 {
		t.Fatalf("load calls = %d, want 2", loader.calls)
	}
	if m.keys.Retry.Enabled() {
		t.Fatalf("retry binding enabled after load")
	}
}

func TestModel_RetryIsRateLimited(t *testing.T) {
	m, loader := newTestModel(t, errors.New("a"), errors.New("b"))
	m = runLoad(t, m, m.loadCmd(m.gen))

	m, cmd := update(t, m, press(tea.KeyCtrlR))
	m = runLoad(t, m, cmd)
	if !m.snap.Failed() || m.snap.Failures != 2 {
		t.Fatalf("failures = %d, want 2", m.snap.Failures)
	}

	m, cmd = update(t, m, press(tea.KeyCtrlR))
	if cmd != nil || m.gen != 2 {
		t.Fatalf("second retry not throttled: cmd=%v gen=%d", cmd, m.gen)
	}
	if loader.calls != 2 {
		t.Fatalf("load calls = %d, want 2", loader.calls)
	}
}

func TestModel_LoadSkippedAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &state.Store{}
	loader := &fakeLoad{store: store}
	m := New(Options{Context: ctx, Store: store, Load: loader.Load})
	cmd := m.loadCmd(m.gen)
	cancel()

	if msg := cmd(); msg != nil {
		t.Fatalf("load after cancel produced %T, want nil", msg)
	}
	if loader.calls != 0 {
		t.Fatalf("load ran after cancel")
	}
	if !store.Snapshot().Loading() {
		t.Fatalf("store left loading state")
	}
}

func TestModel_ToggleDirection(t *testing.T) {
	m, _ := newTestModel(t)
	m = runLoad(t, m, m.loadCmd(m.gen))
	m = typeText(t, m, "e")
	before := titles(m.snap.Filtered)

	m, _ = update(t, m, press(tea.KeyCtrlT))
	if !m.snap.Direction.IsRTL() {
		t.Fatalf("direction = %v, want rtl", m.snap.Direction)
	}
	if m.search.Placeholder != "کتاب کا عنوان تلاش کریں..." {
		t.Fatalf("placeholder = %q, want RTL placeholder", m.search.Placeholder)
	}
	if !strings.Contains(m.renderHeader(), "LTR") {
		t.Fatalf("RTL header button should read LTR: %q", m.renderHeader())
	}
	if m.search.Value() != "e" || strings.Join(titles(m.snap.Filtered), "|") != strings.Join(before, "|") {
		t.Fatalf("toggle changed data: value=%q filtered=%v", m.search.Value(), titles(m.snap.Filtered))
	}

	m, _ = update(t, m, press(tea.KeyCtrlT))
	if m.snap.Direction.IsRTL() || m.search.Placeholder != "Search by book title..." {
		t.Fatalf("double toggle did not restore LTR: %v %q", m.snap.Direction, m.search.Placeholder)
	}
	if strings.Join(titles(m.snap.Filtered), "|") != strings.Join(before, "|") {
		t.Fatalf("double toggle changed filtered view")
	}
}

func TestModel_PlaceholderRendersInFull(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 24})

	if view := ansi.Strip(m.View()); !strings.Contains(view, "Search by book title...") {
		t.Fatalf("LTR placeholder cut short:\n%s", view)
	}

	m, _ = update(t, m, press(tea.KeyCtrlT))
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "کتاب کا عنوان تلاش کریں...") {
		t.Fatalf("RTL placeholder cut short:\n%s", view)
	}
	if strings.Contains(view, "…") {
		t.Fatalf("RTL search line is truncated:\n%s", view)
	}

	// Typing replaces the placeholder and the input shrinks to the value.
	m = typeText(t, m, "kite")
	if !strings.Contains(ansi.Strip(m.renderSearch()), "> kite") {
		t.Fatalf("RTL search missing typed value: %q", ansi.Strip(m.renderSearch()))
	}
}

func TestModel_RTLRowsAlignRight(t *testing.T) {
	m, _ := newTestModel(t)
	m = runLoad(t, m, m.loadCmd(m.gen))
	m, _ = update(t, m, press(tea.KeyCtrlT))

	row := m.renderRow(testBooks[1], false, m.theme.Styles())
	plain := strings.TrimRight(ansi.Strip(row), " ")
	if !strings.HasSuffix(plain, "Beloved") || !strings.HasPrefix(ansi.Strip(row), "  ") {
		t.Fatalf("RTL row not right aligned: %q", ansi.Strip(row))
	}
}

func TestModel_NavigationClamps(t *testing.T) {
	m, _ := newTestModel(t)
	m = runLoad(t, m, m.loadCmd(m.gen))

	m, _ = update(t, m, press(tea.KeyUp))
	if m.cursor != 0 {
		t.Fatalf("cursor after up at top = %d, want 0", m.cursor)
	}
	m, _ = update(t, m, press(tea.KeyEnd))
	if m.cursor != 2 {
		t.Fatalf("cursor after end = %d, want 2", m.cursor)
	}
	m, _ = update(t, m, press(tea.KeyDown))
	if m.cursor != 2 {
		t.Fatalf("cursor after down at bottom = %d, want 2", m.cursor)
	}
	m, _ = update(t, m, press(tea.KeyHome))
	if m.cursor != 0 {
		t.Fatalf("cursor after home = %d, want 0", m.cursor)
	}
	if m.search.Value() != "" {
		t.Fatalf("navigation edited the query: %q", m.search.Value())
	}
}

func TestModel_ScrollKeepsCursorVisible(t *testing.T) {
	store := &state.Store{}
	books := make([]catalog.Book, 50)
	for i := range books {
		books[i] = catalog.Book{ID: string(rune('a' + i%26)), Title: "Book", Index: i}
	}
	store.Load(books)
	m := New(Options{Store: store})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})

	height := m.listHeight()
	m, _ = update(t, m, press(tea.KeyPgDown))
	if m.cursor != height || m.offset != 1 {
		t.Fatalf("after pgdown cursor=%d offset=%d, want %d/1", m.cursor, m.offset, height)
	}
	m, _ = update(t, m, press(tea.KeyEnd))
	if m.cursor != 49 || m.offset != 50-height {
		t.Fatalf("after end cursor=%d offset=%d, want 49/%d", m.cursor, m.offset, 50-height)
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != 12 {
		t.Fatalf("view has %d lines, want 12", lines)
	}
}

func TestModel_SelectStartsPulse(t *testing.T) {
	store := &state.Store{}
	metrics := catalog.NewMetrics()
	loader := &fakeLoad{store: store}
	m := New(Options{Store: store, Load: loader.Load, Metrics: metrics})
	base := time.Unix(1000, 0)
	m.now = func() time.Time { return base }
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = runLoad(t, m, m.loadCmd(m.gen))

	m, _ = update(t, m, press(tea.KeyDown))
	m, cmd := update(t, m, press(tea.KeyEnter))
	if cmd == nil {
		t.Fatalf("select returned no pulse command")
	}
	if got := testutil.ToFloat64(metrics.SelectionsTotal); got != 1 {
		t.Fatalf("selections = %v, want 1", got)
	}

	handle := m.pulses.peek("2")
	if handle == nil || handle.seq != 1 {
		t.Fatalf("pulse handle for row 2 = %#v, want started", handle)
	}

	m, cmd = update(t, m, pulseFrameMsg{key: "2", seq: 1, at: base.Add(50 * time.Millisecond)})
	if cmd == nil || !handle.Expanded() {
		t.Fatalf("pulse not running at peak: cmd=%v scale=%v", cmd, handle.Scale())
	}

	// Frames from an older run are ignored.
	m, cmd = update(t, m, pulseFrameMsg{key: "2", seq: 0, at: base.Add(100 * time.Millisecond)})
	if cmd != nil || !handle.Expanded() {
		t.Fatalf("stale frame advanced the pulse")
	}

	m, cmd = update(t, m, pulseFrameMsg{key: "2", seq: 1, at: base.Add(100 * time.Millisecond)})
	if cmd != nil || handle.Expanded() {
		t.Fatalf("pulse still running after 100ms: scale=%v", handle.Scale())
	}

	// Selecting again reuses the same handle.
	m, _ = update(t, m, press(tea.KeyEnter))
	if m.pulses.peek("2") != handle || handle.seq != 2 {
		t.Fatalf("reselect did not reuse and restart the handle")
	}
}

func TestModel_MouseSelectsAndToggles(t *testing.T) {
	m, _ := newTestModel(t)
	m = runLoad(t, m, m.loadCmd(m.gen))

	m, cmd := update(t, m, tea.MouseMsg{X: 4, Y: listTop + 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if cmd == nil || m.cursor != 2 {
		t.Fatalf("click on third row: cursor=%d cmd=%v", m.cursor, cmd)
	}
	if m.pulses.peek("3") == nil {
		t.Fatalf("click did not start the row pulse")
	}

	m, cmd = update(t, m, tea.MouseMsg{X: 4, Y: listTop + 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if cmd != nil || m.cursor != 2 {
		t.Fatalf("click below the list selected a row")
	}

	start, _ := m.directionButtonSpan()
	m, _ = update(t, m, tea.MouseMsg{X: start, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if !m.snap.Direction.IsRTL() {
		t.Fatalf("click on direction button did not toggle")
	}
	start, _ = m.directionButtonSpan()
	m, _ = update(t, m, tea.MouseMsg{X: start, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if m.snap.Direction.IsRTL() {
		t.Fatalf("second click on direction button did not toggle back")
	}
}

func TestModel_CycleThemeAndQuit(t *testing.T) {
	m, _ := newTestModel(t)
	if m.theme.Name != "Blossom" {
		t.Fatalf("default theme = %q, want Blossom", m.theme.Name)
	}
	m, _ = update(t, m, press(tea.KeyF2))
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme after f2 = %q, want Nightfox", m.theme.Name)
	}

	_, cmd := update(t, m, press(tea.KeyEsc))
	if cmd == nil {
		t.Fatalf("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("esc did not quit")
	}
}

func TestModel_HelpToggleShrinksList(t *testing.T) {
	m, _ := newTestModel(t)
	short := m.listHeight()
	m, _ = update(t, m, press(tea.KeyF1))
	if !m.help.ShowAll || m.listHeight() >= short {
		t.Fatalf("full help: ShowAll=%v height %d -> %d", m.help.ShowAll, short, m.listHeight())
	}
	if !strings.Contains(m.View(), "toggle RTL/LTR") {
		t.Fatalf("full help missing bindings:\n%s", m.View())
	}
}
