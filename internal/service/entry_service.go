package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mindmend/internal/db"
	"github.com/mindmend/internal/mood"
	"gorm.io/gorm"
)

const entryDateFormat = "2006-01-02"

var (
	// ErrTextTooShort 在去除首尾空白后正文不足两个字符时返回
	ErrTextTooShort = errors.New("journal text too short")
	// ErrMoodOutOfRange 在心情数值超出 [0,100] 时返回
	ErrMoodOutOfRange = errors.New("mood value out of range")
	// ErrInvalidDate 在日期不是 YYYY-MM-DD 时返回
	ErrInvalidDate = errors.New("invalid entry date")
	// ErrEntryNotFound 在指定日记不存在时返回
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryInput 定义提交日记时客户端可提供的字段。
// MoodLabel 仅作参考，写入前会根据 MoodValue 重新推导，保证两者一致。
type EntryInput struct {
	Date      string
	MoodValue int
	MoodLabel string
	Text      string
}

// EntryService 负责日记的提交、查询与删除。
// 日记创建后不可修改，所以没有更新操作。
type EntryService struct {
	db           *gorm.DB
	affirmations AffirmationGenerator
}

// NewEntryService 构造 EntryService。
func NewEntryService(gdb *gorm.DB, affirmations AffirmationGenerator) *EntryService {
	return &EntryService{db: gdb, affirmations: affirmations}
}

// Submit 校验输入、生成肯定语并落库，返回完整的存储记录。
// 校验失败时不触发任何生成调用；落库失败时不保留任何状态变更。
func (s *EntryService) Submit(ctx context.Context, input EntryInput) (*db.Entry, error) {
	text := strings.TrimSpace(input.Text)
	if utf8.RuneCountInString(text) < 2 {
		return nil, ErrTextTooShort
	}

	if !mood.InRange(input.MoodValue) {
		return nil, ErrMoodOutOfRange
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = time.Now().Format(entryDateFormat)
	} else if _, err := time.Parse(entryDateFormat, date); err != nil {
		return nil, ErrInvalidDate
	}

	label := mood.Classify(input.MoodValue)
	affirmation := s.affirmations.Generate(ctx, AffirmationRequest{
		Text:      text,
		MoodLabel: label,
		MoodValue: input.MoodValue,
	})

	entry := db.Entry{
		Date:        date,
		MoodValue:   input.MoodValue,
		MoodLabel:   label,
		Text:        text,
		Affirmation: affirmation,
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	return &entry, nil
}

// List 返回全部日记，按创建时间倒序。
func (s *EntryService) List(ctx context.Context) ([]db.Entry, error) {
	var entries []db.Entry
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ListByDate 返回指定日历天的日记，按创建时间倒序。
func (s *EntryService) ListByDate(ctx context.Context, date string) ([]db.Entry, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(entryDateFormat, date); err != nil {
		return nil, ErrInvalidDate
	}

	var entries []db.Entry
	if err := s.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries by date: %w", err)
	}
	return entries, nil
}

// Get 根据 ID 获取单条日记。
func (s *EntryService) Get(ctx context.Context, id string) (*db.Entry, error) {
	var entry db.Entry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &entry, nil
}

// Delete 删除指定日记。
// ID 不存在时返回 ErrEntryNotFound，调用方自行决定是否忽略；
// 客户端无论结果如何都会重新拉取全量列表。
func (s *EntryService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&db.Entry{}, "id = ?", strings.TrimSpace(id))
	if result.Error != nil {
		return fmt.Errorf("delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteAll 清空日记集合，仅供开发模式使用。
func (s *EntryService) DeleteAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&db.Entry{}).Error; err != nil {
		return fmt.Errorf("delete all entries: %w", err)
	}
	return nil
}
