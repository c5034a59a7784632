package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"dirsweep/internal/domain"
)

type uiStyles struct {
	headerStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	statusStyle   lipgloss.Style
	warnStyle     lipgloss.Style
	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	deletedStyle  lipgloss.Style
	panelBorder   lipgloss.Style
}

func stylesFor(model Model) uiStyles {
	if strings.ToLower(model.cfg.Theme) == "light" {
		return uiStyles{
			headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			warnStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("90")).Bold(true),
			selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
			deletedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true),
			panelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		}
	}
	return uiStyles{
		headerStyle:   lipgloss.NewStyle().Bold(true),
		mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
		warnStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		deletedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		panelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (model Model) View() string {
	styles := stylesFor(model)
	if model.showHelp {
		return renderHelpView(model, styles)
	}
	header := renderHeader(model, styles)
	list := renderList(model, styles)
	footer := renderFooter(model, styles)
	return strings.Join([]string{header, list, footer}, "\n")
}

func renderHeader(model Model, styles uiStyles) string {
	title := styles.headerStyle.Render("dirsweep") + "  " + styles.mutedStyle.Render(model.cfg.Path)
	right := styles.statusStyle.Render("DONE")
	if model.coordinator.Scanning() {
		right = styles.statusStyle.Render(model.spin.View() + " SCANNING")
	}
	if errs := model.coordinator.ScanErrors(); len(errs) > 0 {
		right = right + "  " + styles.warnStyle.Render(fmt.Sprintf("%d scan errors", len(errs)))
	}
	return padLine(title, right, model.width)
}

func renderList(model Model, styles uiStyles) string {
	height := model.listHeight()
	if len(model.entries) == 0 {
		message := "No matches yet"
		if model.coordinator.Scanning() {
			message = "Searching..."
		}
		lines := []string{styles.mutedStyle.Render(message)}
		for len(lines) < height {
			lines = append(lines, "")
		}
		return strings.Join(lines, "\n")
	}

	start := model.viewTop
	if start > len(model.entries)-1 {
		start = len(model.entries) - 1
	}
	end := start + height
	if end > len(model.entries) {
		end = len(model.entries)
	}

	lines := make([]string, 0, height)
	for index := start; index < end; index++ {
		entry := model.entries[index]
		marker := "[ ]"
		if entry.Selected {
			marker = styles.selectedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%10s %14s %s %s%s", sizeLabel(entry), modLabel(entry), marker, entry.Path, statusLabel(entry, styles))
		switch {
		case entry.Status == domain.StatusDeleted:
			line = styles.deletedStyle.Render(line)
		case index == model.cursor:
			line = styles.cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func renderFooter(model Model, styles uiStyles) string {
	statusStyle := styles.mutedStyle
	lower := strings.ToLower(model.status)
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
		statusStyle = styles.warnStyle
	}
	if model.confirming {
		statusStyle = styles.statusStyle
	}
	statusLine := statusStyle.Render(trimStatus(model.status, model.width))

	selectedCount, selectedBytes := selectionSummary(model.entries)
	left := fmt.Sprintf("Selected: %d (%s)  Freed: %s  Sort: %s",
		selectedCount, humanize.Bytes(uint64(selectedBytes)),
		humanize.Bytes(uint64(freedBytes(model.entries))),
		strings.ToUpper(string(model.sortMode)))
	keys := "↑/↓ move  space select  a all  d delete  D delete selected  s rescan  o order  x clear  ? help  q quit"
	if model.confirming {
		keys = "y confirm  n cancel"
	}
	footerLine := padLine(left, keys, model.width)
	return strings.Join([]string{statusLine, styles.mutedStyle.Render(footerLine)}, "\n")
}

func renderHelpView(model Model, styles uiStyles) string {
	bindings := []key.Binding{
		model.keys.Up,
		model.keys.Down,
		model.keys.PageUp,
		model.keys.PageDown,
		model.keys.Select,
		model.keys.SelectAll,
		model.keys.DeselectAll,
		model.keys.Delete,
		model.keys.DeleteSelected,
		model.keys.Rescan,
		model.keys.Sort,
		model.keys.ClearDeleted,
		model.keys.Confirm,
		model.keys.Cancel,
		model.keys.Help,
		model.keys.Quit,
	}

	lines := []string{styles.headerStyle.Render("dirsweep Help"), ""}
	lines = append(lines, styles.headerStyle.Render("What it does"))
	lines = append(lines, "Finds directories matching the configured name patterns", "and deletes the ones you pick, subtree and all.")
	lines = append(lines, "", styles.headerStyle.Render("Safety"))
	lines = append(lines, "confirm with y, cancel with n or esc", "safe mode blocks /, $HOME, /etc, /usr, /var, /bin")
	lines = append(lines, "", styles.headerStyle.Render("Keys"))
	for _, binding := range bindings {
		keysLabel := strings.Join(binding.Keys(), ", ")
		lines = append(lines, fmt.Sprintf("%-14s %s", keysLabel, binding.Help().Desc))
	}
	lines = append(lines, "", "Press ? to close help")
	content := strings.Join(lines, "\n")
	width := model.width
	if width <= 0 {
		width = 80
	}
	return styles.panelBorder.Width(maxInt(width-2, 10)).Render(content)
}

func sizeLabel(entry domain.Entry) string {
	switch entry.SizeState {
	case domain.SizeReady:
		return humanize.Bytes(uint64(entry.SizeBytes))
	case domain.SizeFailed:
		return "?"
	default:
		return "..."
	}
}

func modLabel(entry domain.Entry) string {
	if entry.LastModified.IsZero() {
		return "-"
	}
	return humanize.Time(entry.LastModified)
}

func statusLabel(entry domain.Entry, styles uiStyles) string {
	switch entry.Status {
	case domain.StatusDeleting:
		return "  " + styles.statusStyle.Render("deleting")
	case domain.StatusDeleted:
		return "  deleted"
	case domain.StatusFailed:
		message := entry.StatusErr
		if message == "" {
			message = "failed"
		}
		return "  " + styles.warnStyle.Render(message)
	default:
		return ""
	}
}

func selectionSummary(entries []domain.Entry) (int, int64) {
	count := 0
	var bytes int64
	for _, entry := range entries {
		if entry.Selected && entry.Deletable() {
			count++
			if entry.SizeKnown() {
				bytes += entry.SizeBytes
			}
		}
	}
	return count, bytes
}

func freedBytes(entries []domain.Entry) int64 {
	var total int64
	for _, entry := range entries {
		if entry.Status == domain.StatusDeleted && entry.SizeKnown() {
			total += entry.SizeBytes
		}
	}
	return total
}

func padLine(left, right string, width int) string {
	if width <= 0 {
		return left
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", space) + right
}

func trimStatus(message string, width int) string {
	if width <= 0 {
		return message
	}
	max := width - 4
	if max <= 0 {
		return message
	}
	runes := []rune(message)
	if len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
