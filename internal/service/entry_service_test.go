package service

import (
	"context"
	"testing"
	"time"

	"github.com/mindmend/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubAffirmations struct {
	calls  int
	result string
}

func (s *stubAffirmations) Generate(_ context.Context, _ AffirmationRequest) string {
	s.calls++
	if s.result == "" {
		return "You are enough."
	}
	return s.result
}

func setupEntryTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Entry{}, &db.SystemSetting{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestEntryServiceSubmitAndList(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	affirmations := &stubAffirmations{result: "Keep going."}
	svc := NewEntryService(db.DB, affirmations)

	entry, err := svc.Submit(context.Background(), EntryInput{
		Date:      "2024-01-15",
		MoodValue: 75,
		MoodLabel: "Content",
		Text:      "Had a good day",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if entry.ID == "" {
		t.Fatal("expected entry to have ID")
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("expected store-assigned CreatedAt")
	}
	if entry.Affirmation != "Keep going." {
		t.Fatalf("unexpected affirmation: %q", entry.Affirmation)
	}
	if affirmations.calls != 1 {
		t.Fatalf("expected 1 generator call, got %d", affirmations.calls)
	}

	entries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.ID != entry.ID || got.Date != "2024-01-15" || got.MoodValue != 75 ||
		got.MoodLabel != "Content" || got.Text != "Had a good day" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestEntryServiceSubmitValidation(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	affirmations := &stubAffirmations{}
	svc := NewEntryService(db.DB, affirmations)

	for _, text := range []string{"", "a", "  a  ", " \n "} {
		if _, err := svc.Submit(context.Background(), EntryInput{MoodValue: 50, Text: text}); err != ErrTextTooShort {
			t.Fatalf("Submit(%q) error = %v, want ErrTextTooShort", text, err)
		}
	}

	if _, err := svc.Submit(context.Background(), EntryInput{MoodValue: 101, Text: "ok"}); err != ErrMoodOutOfRange {
		t.Fatalf("expected ErrMoodOutOfRange, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), EntryInput{MoodValue: -1, Text: "ok"}); err != ErrMoodOutOfRange {
		t.Fatalf("expected ErrMoodOutOfRange, got %v", err)
	}

	if _, err := svc.Submit(context.Background(), EntryInput{MoodValue: 50, Text: "ok", Date: "15/01/2024"}); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	// 校验失败时不应触碰生成服务
	if affirmations.calls != 0 {
		t.Fatalf("expected no generator calls, got %d", affirmations.calls)
	}
}

func TestEntryServiceSubmitRederivesMoodLabel(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB, &stubAffirmations{})

	entry, err := svc.Submit(context.Background(), EntryInput{
		MoodValue: 81,
		MoodLabel: "Neutral",
		Text:      "  mislabeled entry  ",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if entry.MoodLabel != "Radiant" {
		t.Fatalf("expected label re-derived to Radiant, got %s", entry.MoodLabel)
	}
	if entry.Text != "mislabeled entry" {
		t.Fatalf("expected trimmed text, got %q", entry.Text)
	}
}

func TestEntryServiceListOrdering(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB, &stubAffirmations{})

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		seed := db.Entry{
			ID:        id,
			Date:      "2024-01-15",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			MoodValue: 50,
			MoodLabel: "Neutral",
			Text:      "entry " + id,
		}
		if err := db.DB.Create(&seed).Error; err != nil {
			t.Fatalf("failed to seed entry: %v", err)
		}
	}

	entries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "third" || entries[1].ID != "second" || entries[2].ID != "first" {
		t.Fatalf("unexpected order: %s, %s, %s", entries[0].ID, entries[1].ID, entries[2].ID)
	}

	// 无变更时重复查询应得到完全一致的结果
	again, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(again) != len(entries) {
		t.Fatalf("expected identical result, got %d entries", len(again))
	}
	for i := range entries {
		if entries[i].ID != again[i].ID {
			t.Fatalf("list not idempotent at index %d", i)
		}
	}
}

func TestEntryServiceListByDate(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB, &stubAffirmations{})

	base := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	seeds := []db.Entry{
		{ID: "a", Date: "2024-01-15", CreatedAt: base, MoodValue: 30, MoodLabel: "Uneasy", Text: "morning"},
		{ID: "b", Date: "2024-01-15", CreatedAt: base.Add(2 * time.Hour), MoodValue: 70, MoodLabel: "Content", Text: "noon"},
		{ID: "c", Date: "2024-01-16", CreatedAt: base.Add(24 * time.Hour), MoodValue: 50, MoodLabel: "Neutral", Text: "next day"},
	}
	for i := range seeds {
		if err := db.DB.Create(&seeds[i]).Error; err != nil {
			t.Fatalf("failed to seed entry: %v", err)
		}
	}

	entries, err := svc.ListByDate(context.Background(), "2024-01-15")
	if err != nil {
		t.Fatalf("ListByDate returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "b" || entries[1].ID != "a" {
		t.Fatalf("unexpected order within date: %s, %s", entries[0].ID, entries[1].ID)
	}

	if _, err := svc.ListByDate(context.Background(), "not-a-date"); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestEntryServiceDelete(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB, &stubAffirmations{})

	entry, err := svc.Submit(context.Background(), EntryInput{MoodValue: 40, Text: "to be removed"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), entry.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	entries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	for _, e := range entries {
		if e.ID == entry.ID {
			t.Fatal("deleted entry still present")
		}
	}

	// 删除不存在的 ID：报告未找到，但集合保持不变
	if err := svc.Delete(context.Background(), "does-not-exist"); err != ErrEntryNotFound {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	after, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(after) != len(entries) {
		t.Fatalf("collection changed by missing-id delete: %d != %d", len(after), len(entries))
	}
}

func TestEntryServiceGet(t *testing.T) {
	cleanup := setupEntryTestDB(t)
	defer cleanup()

	svc := NewEntryService(db.DB, &stubAffirmations{})

	entry, err := svc.Submit(context.Background(), EntryInput{MoodValue: 90, Text: "radiant day"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	got, err := svc.Get(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Text != "radiant day" {
		t.Fatalf("unexpected text: %q", got.Text)
	}

	if _, err := svc.Get(context.Background(), "missing"); err != ErrEntryNotFound {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
