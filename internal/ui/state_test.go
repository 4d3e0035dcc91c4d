package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/mindmend/internal/client"
)

func sampleEntries() []client.Entry {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	// 服务端合同：列表按 createdAt 倒序到达
	return []client.Entry{
		{ID: "newest", Date: "2024-01-16", CreatedAt: base.Add(26 * time.Hour), MoodValue: 80, MoodLabel: "Content", Text: "third"},
		{ID: "middle", Date: "2024-01-15", CreatedAt: base.Add(2 * time.Hour), MoodValue: 50, MoodLabel: "Neutral", Text: "second"},
		{ID: "oldest", Date: "2024-01-15", CreatedAt: base, MoodValue: 20, MoodLabel: "Burdened", Text: "first"},
	}
}

func TestViewStateDefaults(t *testing.T) {
	s := NewViewState("2024-01-16")

	if s.Active != ViewLog {
		t.Fatalf("expected initial view Log, got %s", s.Active)
	}
	if s.MoodValue != 50 {
		t.Fatalf("expected default mood 50, got %d", s.MoodValue)
	}
	if s.MoodLogged {
		t.Fatal("mood must not be logged initially")
	}
	if s.SelectedDate != "2024-01-16" {
		t.Fatalf("expected selected date today, got %s", s.SelectedDate)
	}
}

func TestViewStateJournalGate(t *testing.T) {
	s := NewViewState("2024-01-16")

	err := s.SwitchTo(ViewJournal)
	if !errors.Is(err, ErrMoodNotLogged) {
		t.Fatalf("expected ErrMoodNotLogged, got %v", err)
	}
	// 拒绝转移后状态保持在 Log，而不是静默切换
	if s.Active != ViewLog {
		t.Fatalf("expected state to remain Log, got %s", s.Active)
	}

	s.CommitMood()
	if !s.MoodLogged || s.Active != ViewJournal {
		t.Fatalf("CommitMood should enter Journal, got logged=%v view=%s", s.MoodLogged, s.Active)
	}
}

func TestViewStateSubmissionCycleResetsGate(t *testing.T) {
	s := NewViewState("2024-01-16")
	s.CommitMood()

	s.CompleteSubmission()
	if s.Active != ViewLog {
		t.Fatalf("expected return to Log, got %s", s.Active)
	}
	if s.MoodLogged {
		t.Fatal("mood gate must reset after a completed submission")
	}
	if err := s.SwitchTo(ViewJournal); !errors.Is(err, ErrMoodNotLogged) {
		t.Fatalf("expected gate to be closed again, got %v", err)
	}
}

func TestViewStateMoodValueClamped(t *testing.T) {
	s := NewViewState("2024-01-16")

	s.SetMoodValue(150)
	if s.MoodValue != 100 {
		t.Fatalf("expected clamp to 100, got %d", s.MoodValue)
	}
	s.SetMoodValue(-5)
	if s.MoodValue != 0 {
		t.Fatalf("expected clamp to 0, got %d", s.MoodValue)
	}
	s.SetMoodValue(81)
	if s.MoodLabel() != "Radiant" {
		t.Fatalf("expected Radiant, got %s", s.MoodLabel())
	}
}

func TestViewStateOpenHistorySelectsMostRecent(t *testing.T) {
	s := NewViewState("2024-01-16")
	s.Resync(sampleEntries())

	s.OpenHistory("")
	if s.Active != ViewHistory {
		t.Fatalf("expected History view, got %s", s.Active)
	}
	if s.SelectedEntryID != "newest" {
		t.Fatalf("expected most recent selected, got %s", s.SelectedEntryID)
	}

	// 指定 ID（如日历点入）时优先使用
	s.OpenHistory("middle")
	if s.SelectedEntryID != "middle" {
		t.Fatalf("expected requested id selected, got %s", s.SelectedEntryID)
	}

	// 未知 ID 退回最新一条
	s.OpenHistory("ghost")
	if s.SelectedEntryID != "newest" {
		t.Fatalf("expected fallback to most recent, got %s", s.SelectedEntryID)
	}
}

func TestViewStateResyncReselectsAfterDelete(t *testing.T) {
	s := NewViewState("2024-01-16")
	s.Resync(sampleEntries())
	s.OpenHistory("middle")

	// middle 被删除后整体重新同步：选择回退到最新一条
	remaining := []client.Entry{sampleEntries()[0], sampleEntries()[2]}
	s.Resync(remaining)
	if s.SelectedEntryID != "newest" {
		t.Fatalf("expected reselection to most recent, got %s", s.SelectedEntryID)
	}

	// 集合清空后进入显式空状态
	s.Resync(nil)
	if s.SelectedEntryID != "" {
		t.Fatalf("expected empty selection, got %s", s.SelectedEntryID)
	}
	if _, ok := s.SelectedEntry(); ok {
		t.Fatal("expected no selected entry in empty state")
	}
	if _, err := s.SelectionForDelete(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestViewStateResyncKeepsExistingSelection(t *testing.T) {
	s := NewViewState("2024-01-16")
	s.Resync(sampleEntries())
	s.OpenHistory("oldest")

	s.Resync(sampleEntries())
	if s.SelectedEntryID != "oldest" {
		t.Fatalf("expected selection preserved across resync, got %s", s.SelectedEntryID)
	}
}

func TestViewStateSelectNeighbor(t *testing.T) {
	s := NewViewState("2024-01-16")
	s.Resync(sampleEntries())
	s.OpenHistory("")

	s.SelectNeighbor(1)
	if s.SelectedEntryID != "middle" {
		t.Fatalf("expected middle, got %s", s.SelectedEntryID)
	}
	s.SelectNeighbor(1)
	s.SelectNeighbor(1) // 越界保持在末尾
	if s.SelectedEntryID != "oldest" {
		t.Fatalf("expected oldest, got %s", s.SelectedEntryID)
	}
	s.SelectNeighbor(-5)
	if s.SelectedEntryID != "newest" {
		t.Fatalf("expected newest, got %s", s.SelectedEntryID)
	}
}

func TestViewStateEntriesForDate(t *testing.T) {
	s := NewViewState("2024-01-16")
	s.Resync(sampleEntries())

	matched := s.EntriesForDate("2024-01-15")
	if len(matched) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(matched))
	}
	// 同一天内仍保持创建时间倒序
	if matched[0].ID != "middle" || matched[1].ID != "oldest" {
		t.Fatalf("unexpected order: %s, %s", matched[0].ID, matched[1].ID)
	}

	if !s.HasEntryOn("2024-01-16") {
		t.Fatal("expected marker for 2024-01-16")
	}
	if s.HasEntryOn("2024-02-01") {
		t.Fatal("unexpected marker for empty day")
	}
}

func TestViewStateHistoryBackToLog(t *testing.T) {
	s := NewViewState("2024-01-16")
	s.Resync(sampleEntries())
	s.OpenHistory("")

	if err := s.SwitchTo(ViewLog); err != nil {
		t.Fatalf("back to Log should always succeed, got %v", err)
	}
	if s.Active != ViewLog {
		t.Fatalf("expected Log view, got %s", s.Active)
	}
	// 返回不应清空历史选择
	if s.SelectedEntryID == "" {
		t.Fatal("expected selection preserved on back")
	}
}
