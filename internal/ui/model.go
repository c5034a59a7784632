package ui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"dirsweep/internal/config"
	"dirsweep/internal/domain"
	"dirsweep/internal/state"
)

type Model struct {
	coordinator *state.Coordinator
	cfg         config.Config
	keys        KeyMap
	spin        spinner.Model

	entries  []domain.Entry
	sortMode domain.SortMode
	cursor   int
	viewTop  int
	width    int
	height   int

	status       string
	showHelp     bool
	confirming   bool
	confirmBatch bool
	confirmPath  string
}

func NewModel(coordinator *state.Coordinator, cfg config.Config) Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	return Model{
		coordinator: coordinator,
		cfg:         cfg,
		keys:        DefaultKeyMap(),
		spin:        spin,
		sortMode:    cfg.SortMode,
		status:      fmt.Sprintf("Scanning %s", cfg.Path),
		width:       100,
		height:      30,
	}
}

// ConfigSnapshot returns the config to persist on exit.
func (model Model) ConfigSnapshot() config.Config {
	cfg := model.cfg
	cfg.SortMode = model.sortMode
	return cfg
}

func (model Model) Init() tea.Cmd {
	return tea.Batch(model.spin.Tick, tickCmd())
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.ensureCursorVisible()
		return model, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spin, cmd = model.spin.Update(typed)
		return model, cmd
	case tickMsg:
		return model.poll()
	default:
		return model, nil
	}
}

// poll folds queued worker events into the coordinator, refreshes the entry
// snapshot and kicks off size computations for newly discovered entries.
func (model Model) poll() (tea.Model, tea.Cmd) {
	model.coordinator.DrainEvents()
	model.entries = model.coordinator.Entries()
	for _, entry := range model.entries {
		if entry.SizeState == domain.SizePending {
			model.coordinator.RequestSize(entry.Path)
		}
	}
	model.sortEntries()
	model.ensureCursorVisible()
	return model, tickCmd()
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case model.confirming && key.Matches(msg, model.keys.Confirm):
		return model.executePendingDelete()
	case model.confirming && key.Matches(msg, model.keys.Cancel):
		model.confirming = false
		model.status = "Delete cancelled"
		return model, nil
	case model.confirming:
		return model, nil
	case key.Matches(msg, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
			model.ensureCursorVisible()
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		if model.cursor < len(model.entries)-1 {
			model.cursor++
			model.ensureCursorVisible()
		}
		return model, nil
	case key.Matches(msg, model.keys.PageUp):
		model.cursor -= model.listHeight()
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.PageDown):
		model.cursor += model.listHeight()
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.Select):
		if entry := model.currentEntry(); entry != nil {
			model.coordinator.ToggleSelection(entry.Path)
			model.entries = model.coordinator.Entries()
			model.sortEntries()
		}
		return model, nil
	case key.Matches(msg, model.keys.SelectAll):
		model.coordinator.SelectAll()
		model.entries = model.coordinator.Entries()
		model.sortEntries()
		return model, nil
	case key.Matches(msg, model.keys.DeselectAll):
		model.coordinator.DeselectAll()
		model.entries = model.coordinator.Entries()
		model.sortEntries()
		return model, nil
	case key.Matches(msg, model.keys.Delete):
		entry := model.currentEntry()
		if entry == nil {
			return model, nil
		}
		if !entry.Deletable() {
			model.status = "Entry is already being deleted"
			return model, nil
		}
		return model.beginDelete(false, entry.Path, 1)
	case key.Matches(msg, model.keys.DeleteSelected):
		count := model.selectedCount()
		if count == 0 {
			model.status = "Nothing selected"
			return model, nil
		}
		return model.beginDelete(true, "", count)
	case key.Matches(msg, model.keys.Rescan):
		return model.beginScan()
	case key.Matches(msg, model.keys.Sort):
		model.sortMode = nextSortMode(model.sortMode)
		model.sortEntries()
		model.ensureCursorVisible()
		model.status = fmt.Sprintf("Sorted by %s", model.sortMode)
		return model, nil
	case key.Matches(msg, model.keys.ClearDeleted):
		removed := model.coordinator.AcknowledgeDeleted()
		model.entries = model.coordinator.Entries()
		model.sortEntries()
		model.ensureCursorVisible()
		if removed > 0 {
			model.status = fmt.Sprintf("Cleared %d deleted entries", removed)
		}
		return model, nil
	default:
		return model, nil
	}
}

func (model Model) beginScan() (tea.Model, tea.Cmd) {
	err := model.coordinator.StartScan(model.cfg.Path, model.cfg.Patterns, model.cfg.IgnorePatterns)
	if err != nil {
		model.status = fmt.Sprintf("Scan error: %v", err)
		return model, nil
	}
	model.entries = nil
	model.cursor = 0
	model.viewTop = 0
	model.confirming = false
	model.status = fmt.Sprintf("Scanning %s", model.cfg.Path)
	return model, nil
}

func (model Model) beginDelete(batch bool, path string, count int) (tea.Model, tea.Cmd) {
	if !model.cfg.Confirm {
		model.confirmBatch = batch
		model.confirmPath = path
		return model.executePendingDelete()
	}
	model.confirming = true
	model.confirmBatch = batch
	model.confirmPath = path
	if batch {
		model.status = fmt.Sprintf("Delete %d selected directories? (y/n)", count)
	} else {
		model.status = fmt.Sprintf("Delete %s? (y/n)", path)
	}
	return model, nil
}

func (model Model) executePendingDelete() (tea.Model, tea.Cmd) {
	model.confirming = false
	if model.confirmBatch {
		count := model.coordinator.DeleteSelected()
		model.status = fmt.Sprintf("Deleting %d directories", count)
	} else {
		if model.coordinator.DeleteOne(model.confirmPath) {
			model.status = fmt.Sprintf("Deleting %s", model.confirmPath)
		}
	}
	model.confirmPath = ""
	model.entries = model.coordinator.Entries()
	model.sortEntries()
	return model, nil
}

func (model *Model) currentEntry() *domain.Entry {
	if model.cursor < 0 || model.cursor >= len(model.entries) {
		return nil
	}
	return &model.entries[model.cursor]
}

func (model Model) selectedCount() int {
	count := 0
	for _, entry := range model.entries {
		if entry.Selected && entry.Deletable() {
			count++
		}
	}
	return count
}

func (model *Model) sortEntries() {
	switch model.sortMode {
	case domain.SortBySize:
		sort.SliceStable(model.entries, func(i, j int) bool {
			a, b := model.entries[i], model.entries[j]
			if a.SizeKnown() != b.SizeKnown() {
				return a.SizeKnown()
			}
			if a.SizeBytes != b.SizeBytes {
				return a.SizeBytes > b.SizeBytes
			}
			return a.Path < b.Path
		})
	case domain.SortByPath:
		sort.SliceStable(model.entries, func(i, j int) bool {
			return model.entries[i].Path < model.entries[j].Path
		})
	default:
		// Discovery order, which the snapshot already carries.
	}
}

func nextSortMode(mode domain.SortMode) domain.SortMode {
	switch mode {
	case domain.SortByFound:
		return domain.SortBySize
	case domain.SortBySize:
		return domain.SortByPath
	default:
		return domain.SortByFound
	}
}

func (model *Model) ensureCursorVisible() {
	if len(model.entries) == 0 {
		model.cursor = 0
		model.viewTop = 0
		return
	}
	if model.cursor >= len(model.entries) {
		model.cursor = len(model.entries) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	listHeight := model.listHeight()
	if listHeight <= 0 {
		return
	}
	if model.cursor < model.viewTop {
		model.viewTop = model.cursor
	}
	if model.cursor >= model.viewTop+listHeight {
		model.viewTop = model.cursor - listHeight + 1
	}
	maxTop := len(model.entries) - listHeight
	if maxTop < 0 {
		maxTop = 0
	}
	if model.viewTop > maxTop {
		model.viewTop = maxTop
	}
}

func (model *Model) listHeight() int {
	height := model.height - 5
	if height < 3 {
		return 3
	}
	return height
}
