package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mindmend/internal/client"
)

const sliderWidth = 25

type entriesMsg struct {
	entries []client.Entry
}

type entryCreatedMsg struct {
	entry *client.Entry
}

type deleteDoneMsg struct{}

type requestFailedMsg struct {
	err error
}

// Model 是终端客户端的 bubbletea 模型。
// 视图状态全部收在 ViewState 里，Model 只负责按键分发、网络命令和渲染。
type Model struct {
	api   *client.Client
	theme Theme
	state *ViewState

	input textarea.Model
	month time.Time

	// 提交/删除期间禁用对应控件，防止并发重复请求
	submitting bool
	deleting   bool

	confirmingDelete bool
	pendingHistory   bool
	pendingHistoryID string

	// 提交成功后待确认的肯定语弹层
	affirmation string
	notice      string

	width  int
	height int
}

// NewModel 构造初始模型：Log 视图、滑块居中、日历聚焦本月。
func NewModel(api *client.Client) Model {
	now := time.Now()
	today := now.Format(calendarDateFormat)

	input := textarea.New()
	input.Placeholder = "How was your day?"
	input.CharLimit = 2000
	input.SetHeight(8)

	return Model{
		api:   api,
		theme: DefaultTheme,
		state: NewViewState(today),
		input: input,
		month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}
}

// Run 启动终端客户端。
func Run(api *client.Client) error {
	p := tea.NewProgram(NewModel(api), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.fetchEntriesCmd()
}

func (m Model) fetchEntriesCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		entries, err := api.ListEntries(context.Background())
		if err != nil {
			return requestFailedMsg{err}
		}
		return entriesMsg{entries: entries}
	}
}

func (m Model) submitEntryCmd(input client.CreateEntryInput) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		entry, err := api.CreateEntry(context.Background(), input)
		if err != nil {
			return requestFailedMsg{err}
		}
		return entryCreatedMsg{entry: entry}
	}
}

func (m Model) deleteEntryCmd(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if err := api.DeleteEntry(context.Background(), id); err != nil && !errors.Is(err, client.ErrEntryNotFound) {
			return requestFailedMsg{err}
		}
		// 未找到也视为接近成功：随后的整体重取会反映缺失
		return deleteDoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(min(msg.Width-6, 72))
		return m, nil

	case entriesMsg:
		m.state.Resync(msg.entries)
		if m.pendingHistory {
			m.state.OpenHistory(m.pendingHistoryID)
			m.pendingHistory = false
			m.pendingHistoryID = ""
		}
		return m, nil

	case entryCreatedMsg:
		m.submitting = false
		m.affirmation = msg.entry.Affirmation
		m.state.SelectDate(msg.entry.Date)
		// 新日记已落库，立刻整体重取保持缓存新鲜
		return m, m.fetchEntriesCmd()

	case deleteDoneMsg:
		m.deleting = false
		m.notice = "Entry deleted."
		return m, m.fetchEntriesCmd()

	case requestFailedMsg:
		m.submitting = false
		m.deleting = false
		// 失败的历史跳转不能残留到下一次列表刷新
		m.pendingHistory = false
		m.pendingHistoryID = ""
		m.notice = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// 肯定语弹层：任意键确认，回到 Log 并复位心情门禁
	if m.affirmation != "" {
		m.affirmation = ""
		m.input.Reset()
		m.state.CompleteSubmission()
		return m, nil
	}

	m.notice = ""

	switch m.state.Active {
	case ViewJournal:
		return m.handleJournalKey(msg)
	case ViewHistory:
		return m.handleHistoryKey(msg)
	default:
		return m.handleLogKey(msg)
	}
}

func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left":
		m.state.SetMoodValue(m.state.MoodValue - 1)
	case "right":
		m.state.SetMoodValue(m.state.MoodValue + 1)
	case "down":
		m.state.SetMoodValue(m.state.MoodValue - 5)
	case "up":
		m.state.SetMoodValue(m.state.MoodValue + 5)
	case "enter":
		m.state.CommitMood()
		m.input.Focus()
		return m, textarea.Blink
	case "2", "j":
		if err := m.state.SwitchTo(ViewJournal); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.input.Focus()
		return m, textarea.Blink
	case "3", "h":
		m.pendingHistory = true
		return m, m.fetchEntriesCmd()
	case "[":
		m.month = m.month.AddDate(0, -1, 0)
	case "]":
		m.month = m.month.AddDate(0, 1, 0)
	case "<":
		m.shiftSelectedDate(-1)
	case ">":
		m.shiftSelectedDate(1)
	case "v":
		// 日历点入：打开选中日期最近的一条日记
		if entries := m.state.EntriesForDate(m.state.SelectedDate); len(entries) > 0 {
			m.pendingHistory = true
			m.pendingHistoryID = entries[0].ID
			return m, m.fetchEntriesCmd()
		}
		m.notice = "No entries for this day."
	}
	return m, nil
}

func (m *Model) shiftSelectedDate(days int) {
	parsed, err := time.Parse(calendarDateFormat, m.state.SelectedDate)
	if err != nil {
		parsed = time.Now()
	}
	shifted := parsed.AddDate(0, 0, days)
	m.state.SelectDate(shifted.Format(calendarDateFormat))
	m.month = time.Date(shifted.Year(), shifted.Month(), 1, 0, 0, 0, 0, shifted.Location())
}

func (m Model) handleJournalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		_ = m.state.SwitchTo(ViewLog)
		return m, nil
	case tea.KeyCtrlO:
		// 文本区吃掉所有可打印按键，跳转历史只能用控制键
		m.input.Blur()
		m.pendingHistory = true
		return m, m.fetchEntriesCmd()
	case tea.KeyCtrlS:
		if m.submitting {
			// 请求在途，提交控件处于禁用状态
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if utf8.RuneCountInString(text) < 2 {
			m.notice = "Please write something first."
			return m, nil
		}
		m.submitting = true
		return m, m.submitEntryCmd(client.CreateEntryInput{
			Date:      time.Now().Format(calendarDateFormat),
			MoodValue: m.state.MoodValue,
			MoodLabel: m.state.MoodLabel(),
			Text:      text,
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmingDelete {
		switch msg.String() {
		case "y":
			m.confirmingDelete = false
			id, err := m.state.SelectionForDelete()
			if err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.deleting = true
			return m, m.deleteEntryCmd(id)
		default:
			m.confirmingDelete = false
			return m, nil
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		_ = m.state.SwitchTo(ViewLog)
	case "up", "k":
		m.state.SelectNeighbor(-1)
	case "down", "j":
		m.state.SelectNeighbor(1)
	case "r":
		return m, m.fetchEntriesCmd()
	case "x":
		if m.deleting {
			return m, nil
		}
		if _, err := m.state.SelectionForDelete(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.confirmingDelete = true
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.state.Active {
	case ViewJournal:
		body = m.journalView()
	case ViewHistory:
		body = m.historyView()
	default:
		body = m.logView()
	}

	if m.affirmation != "" {
		body = m.affirmationOverlay()
	}

	if m.notice != "" {
		body += "\n" + m.theme.Error.Render(m.notice)
	}

	return m.theme.Border.Render(body)
}

func (m Model) logView() string {
	var b strings.Builder

	primary, secondary := moodStyles(m.state.MoodValue)

	b.WriteString(m.theme.Title.Render("MindMend — Log your mood"))
	b.WriteString("\n\n")
	b.WriteString(primary.Render(m.state.MoodLabel()))
	b.WriteString(m.theme.Label.Render(fmt.Sprintf("  (%d/100)", m.state.MoodValue)))
	b.WriteString("\n")
	b.WriteString(renderSlider(m.state.MoodValue, primary, secondary))
	b.WriteString("\n\n")
	b.WriteString(renderCalendar(m.theme, m.month, m.state.SelectedDate, time.Now().Format(calendarDateFormat), m.state.HasEntryOn))

	if entries := m.state.EntriesForDate(m.state.SelectedDate); len(entries) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Label.Render(fmt.Sprintf("Entries for %s", m.state.SelectedDate)))
		b.WriteString("\n")
		for _, entry := range entries {
			b.WriteString(fmt.Sprintf("%s %s\n",
				m.theme.Hint.Render(entry.CreatedAt.Local().Format("15:04")),
				m.theme.Value.Render(previewText(entry.Text, 48))))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Hint.Render("←/→ adjust · enter log mood · [ ] month · < > day · v open day · 3 history · q quit"))
	return b.String()
}

func (m Model) journalView() string {
	var b strings.Builder

	primary, _ := moodStyles(m.state.MoodValue)

	b.WriteString(m.theme.Title.Render("Journal"))
	b.WriteString("  ")
	b.WriteString(primary.Render(fmt.Sprintf("%s (%d/100)", m.state.MoodLabel(), m.state.MoodValue)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.submitting {
		b.WriteString(m.theme.Hint.Render("Saving…"))
	} else {
		b.WriteString(m.theme.Hint.Render("ctrl+s save · ctrl+o history · esc back"))
	}
	return b.String()
}

func (m Model) historyView() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("History"))
	b.WriteString("\n\n")

	if len(m.state.Entries) == 0 {
		b.WriteString(m.theme.Value.Render("No entries yet."))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Hint.Render("esc back"))
		return b.String()
	}

	for _, entry := range m.state.Entries {
		line := fmt.Sprintf("%-8s %s  %s",
			entry.MoodLabel,
			entry.CreatedAt.Local().Format("Jan 02 15:04"),
			previewText(entry.Text, 36))
		if entry.ID == m.state.SelectedEntryID {
			b.WriteString(m.theme.Selected.Render("> " + line))
		} else {
			b.WriteString(m.theme.Value.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if selected, ok := m.state.SelectedEntry(); ok {
		primary, _ := moodStyles(selected.MoodValue)
		b.WriteString("\n")
		b.WriteString(m.theme.Label.Render(formatDateNice(selected.Date)))
		b.WriteString("\n")
		b.WriteString(primary.Render(fmt.Sprintf("Mood: %s (%d/100)", selected.MoodLabel, selected.MoodValue)))
		b.WriteString("\n")
		if selected.Affirmation != "" {
			b.WriteString(m.theme.Success.Render(fmt.Sprintf("%q", selected.Affirmation)))
			b.WriteString("\n")
		}
		b.WriteString(m.theme.Value.Render(selected.Text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirmingDelete {
		b.WriteString(m.theme.Error.Render("Delete this entry? y/n"))
	} else if m.deleting {
		b.WriteString(m.theme.Hint.Render("Deleting…"))
	} else {
		b.WriteString(m.theme.Hint.Render("↑/↓ select · x delete · r refresh · esc back"))
	}
	return b.String()
}

func (m Model) affirmationOverlay() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("A thought for you"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Success.Render(fmt.Sprintf("%q", m.affirmation)))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Hint.Render("press any key to continue"))
	return b.String()
}

func renderSlider(value int, primary, secondary lipgloss.Style) string {
	filled := value * sliderWidth / 100
	if filled > sliderWidth {
		filled = sliderWidth
	}
	return primary.Render(strings.Repeat("█", filled)) +
		secondary.Render(strings.Repeat("░", sliderWidth-filled))
}

func previewText(text string, limit int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	return string(runes[:limit]) + "…"
}

func formatDateNice(date string) string {
	parsed, err := time.Parse(calendarDateFormat, date)
	if err != nil {
		return date
	}
	return parsed.Format("Mon, Jan 2, 2006")
}
