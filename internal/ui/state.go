package ui

import (
	"errors"

	"github.com/mindmend/internal/client"
	"github.com/mindmend/internal/mood"
)

// View 标识客户端当前激活的视图。
type View int

const (
	ViewLog View = iota
	ViewJournal
	ViewHistory
)

// String 返回视图名称。
func (v View) String() string {
	switch v {
	case ViewJournal:
		return "Journal"
	case ViewHistory:
		return "History"
	default:
		return "Log"
	}
}

var (
	// ErrMoodNotLogged 在未记录心情就尝试进入 Journal 视图时返回
	ErrMoodNotLogged = errors.New("please log your mood first")
	// ErrNoSelection 在没有选中日记却请求删除/查看详情时返回
	ErrNoSelection = errors.New("no entry selected")
)

// ViewState 承载客户端全部视图状态。
// 所有变更都经由具名的转移方法，字段不做外部裸写；
// Entries 缓存只会被 Resync 整体替换，从不增量修补。
type ViewState struct {
	Active          View
	MoodLogged      bool
	MoodValue       int
	SelectedDate    string
	SelectedEntryID string
	Entries         []client.Entry
	Synced          bool
}

// NewViewState 构造页面加载时的初始状态：Log 视图、滑块居中、聚焦今天。
func NewViewState(today string) *ViewState {
	return &ViewState{
		Active:       ViewLog,
		MoodValue:    50,
		SelectedDate: today,
	}
}

// SetMoodValue 更新滑块数值并钳制在合法区间内。
func (s *ViewState) SetMoodValue(value int) {
	if value < mood.MinValue {
		value = mood.MinValue
	}
	if value > mood.MaxValue {
		value = mood.MaxValue
	}
	s.MoodValue = value
}

// MoodLabel 返回当前滑块数值对应的分级标签。
func (s *ViewState) MoodLabel() string {
	return mood.Classify(s.MoodValue)
}

// SwitchTo 切换视图。
// 未记录心情时拒绝进入 Journal：状态保持不变并返回 ErrMoodNotLogged，
// 由调用方将拒绝原因展示给用户（不是静默忽略）。
func (s *ViewState) SwitchTo(view View) error {
	if view == ViewJournal && !s.MoodLogged {
		return ErrMoodNotLogged
	}
	s.Active = view
	return nil
}

// CommitMood 记录当前心情并无条件进入 Journal 视图。
func (s *ViewState) CommitMood() {
	s.MoodLogged = true
	s.Active = ViewJournal
}

// CompleteSubmission 在提交确认完成后回到 Log 视图。
// 心情门禁复位：写下一篇前必须重新记录心情。
func (s *ViewState) CompleteSubmission() {
	s.Active = ViewLog
	s.MoodLogged = false
}

// OpenHistory 进入 History 视图并选中指定日记；
// requestedID 为空或不存在时退回最新一条。
// 调用方需要先 Resync 保证缓存是新鲜的。
func (s *ViewState) OpenHistory(requestedID string) {
	s.Active = ViewHistory
	s.SelectedEntryID = ""
	if requestedID != "" {
		for _, entry := range s.Entries {
			if entry.ID == requestedID {
				s.SelectedEntryID = requestedID
				break
			}
		}
	}
	if s.SelectedEntryID == "" && len(s.Entries) > 0 {
		s.SelectedEntryID = s.Entries[0].ID
	}
}

// Resync 用服务端的全量列表整体替换缓存。
// 之前选中的日记若已不存在，按删除后重选规则回退到最新一条；
// 集合为空时进入显式的空状态（SelectedEntryID 为空）。
func (s *ViewState) Resync(entries []client.Entry) {
	s.Entries = entries
	s.Synced = true

	if s.SelectedEntryID != "" {
		for _, entry := range entries {
			if entry.ID == s.SelectedEntryID {
				return
			}
		}
	}
	if len(entries) > 0 {
		s.SelectedEntryID = entries[0].ID
	} else {
		s.SelectedEntryID = ""
	}
}

// SelectDate 把日历焦点移到指定日期。
func (s *ViewState) SelectDate(date string) {
	if date != "" {
		s.SelectedDate = date
	}
}

// SelectEntry 选中缓存中的一条日记，不存在时保持原选择。
func (s *ViewState) SelectEntry(id string) {
	for _, entry := range s.Entries {
		if entry.ID == id {
			s.SelectedEntryID = id
			return
		}
	}
}

// SelectNeighbor 以列表顺序移动选择，delta 为正向下（更旧）。
func (s *ViewState) SelectNeighbor(delta int) {
	if len(s.Entries) == 0 {
		return
	}
	index := 0
	for i, entry := range s.Entries {
		if entry.ID == s.SelectedEntryID {
			index = i
			break
		}
	}
	index += delta
	if index < 0 {
		index = 0
	}
	if index >= len(s.Entries) {
		index = len(s.Entries) - 1
	}
	s.SelectedEntryID = s.Entries[index].ID
}

// SelectedEntry 返回当前选中的日记。
func (s *ViewState) SelectedEntry() (client.Entry, bool) {
	for _, entry := range s.Entries {
		if entry.ID == s.SelectedEntryID {
			return entry, true
		}
	}
	return client.Entry{}, false
}

// SelectionForDelete 返回待删除的日记 ID，没有选择时报告 ErrNoSelection。
func (s *ViewState) SelectionForDelete() (string, error) {
	if s.SelectedEntryID == "" {
		return "", ErrNoSelection
	}
	return s.SelectedEntryID, nil
}

// EntriesForDate 返回缓存中指定日历天的日记，保持列表自身的倒序。
func (s *ViewState) EntriesForDate(date string) []client.Entry {
	var matched []client.Entry
	for _, entry := range s.Entries {
		if entry.Date == date {
			matched = append(matched, entry)
		}
	}
	return matched
}

// HasEntryOn 判断指定日历天是否存在日记，用于日历角标。
func (s *ViewState) HasEntryOn(date string) bool {
	for _, entry := range s.Entries {
		if entry.Date == date {
			return true
		}
	}
	return false
}
