package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry 定义了一条心情日记
// Date 使用 YYYY-MM-DD 字符串，便于按日历天分组查询
// CreatedAt 由存储层写入时生成，是唯一的排序依据
// MoodLabel 是 MoodValue 的冗余快照，写入时保持一致，之后不再重算
// 日记创建后不可修改，只能删除，因此没有 UpdatedAt 之外的可变字段
type Entry struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Date        string    `gorm:"size:10;index;not null"`
	CreatedAt   time.Time `gorm:"index"`
	MoodValue   int       `gorm:"not null"`
	MoodLabel   string    `gorm:"size:20;not null"`
	Text        string    `gorm:"type:text;not null"`
	Affirmation string    `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (Entry) TableName() string {
	return "entries"
}

// BeforeCreate 在写入前分配不透明的唯一标识。
func (e *Entry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
