package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mindmend/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// AffirmationProviderHuggingFace 表示调用 Hugging Face 推理接口生成肯定语。
	AffirmationProviderHuggingFace = "huggingface"
	// AffirmationProviderLocal 表示跳过远端调用，仅使用本地回退策略。
	AffirmationProviderLocal = "local"
)

var supportedAffirmationProviders = []string{AffirmationProviderHuggingFace, AffirmationProviderLocal}

// ErrHFAPIKeyMissing 表示未提供必需的 Hugging Face API Key。
var ErrHFAPIKeyMissing = errors.New("hugging face api key is required")

// SystemSettings 描述可配置的系统信息。
type SystemSettings struct {
	AffirmationProvider string
	HFAPIKey            string
	HFModel             string
	HFEndpoint          string
}

// SystemSettingsInput 用于更新系统设置。
type SystemSettingsInput struct {
	AffirmationProvider string
	HFAPIKey            string
	HFModel             string
	HFEndpoint          string
}

// SystemSettingService 提供系统设置的读取与更新能力。
// 未入库的键回退到构造时注入的默认值（通常来自环境变量）。
type SystemSettingService struct {
	db       *gorm.DB
	defaults SystemSettings
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB, defaults SystemSettings) *SystemSettingService {
	if defaults.AffirmationProvider == "" {
		defaults.AffirmationProvider = AffirmationProviderHuggingFace
	}
	return &SystemSettingService{db: gdb, defaults: defaults}
}

var settingKeys = []string{
	db.SettingKeyAffirmationProvider,
	db.SettingKeyHFAPIKey,
	db.SettingKeyHFModel,
	db.SettingKeyHFEndpoint,
}

// GetSettings 读取系统设置，如未设置将返回默认值。
func (s *SystemSettingService) GetSettings() (SystemSettings, error) {
	result := s.defaults

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		if value == "" {
			continue
		}
		switch record.Key {
		case db.SettingKeyAffirmationProvider:
			if provider := normalizeAffirmationProvider(value); provider != "" {
				result.AffirmationProvider = provider
			}
		case db.SettingKeyHFAPIKey:
			result.HFAPIKey = value
		case db.SettingKeyHFModel:
			result.HFModel = value
		case db.SettingKeyHFEndpoint:
			result.HFEndpoint = value
		}
	}

	return result, nil
}

// UpdateSettings 保存系统设置，未填写提供方时回退默认值。
func (s *SystemSettingService) UpdateSettings(input SystemSettingsInput) (SystemSettings, error) {
	provider := normalizeAffirmationProvider(input.AffirmationProvider)
	if provider == "" {
		provider = s.defaults.AffirmationProvider
	}

	sanitized := SystemSettings{
		AffirmationProvider: provider,
		HFAPIKey:            strings.TrimSpace(input.HFAPIKey),
		HFModel:             strings.TrimSpace(input.HFModel),
		HFEndpoint:          strings.TrimSpace(input.HFEndpoint),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, db.SettingKeyAffirmationProvider, sanitized.AffirmationProvider); err != nil {
			return err
		}
		if err := upsertSetting(tx, db.SettingKeyHFAPIKey, sanitized.HFAPIKey); err != nil {
			return err
		}
		if err := upsertSetting(tx, db.SettingKeyHFModel, sanitized.HFModel); err != nil {
			return err
		}
		return upsertSetting(tx, db.SettingKeyHFEndpoint, sanitized.HFEndpoint)
	})
	if err != nil {
		return SystemSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func normalizeAffirmationProvider(provider string) string {
	trimmed := strings.ToLower(strings.TrimSpace(provider))
	for _, candidate := range supportedAffirmationProviders {
		if trimmed == candidate {
			return candidate
		}
	}
	return ""
}
