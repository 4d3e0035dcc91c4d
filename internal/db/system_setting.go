package db

import "gorm.io/gorm"

// SystemSetting 存储可配置的系统级键值对。
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeyAffirmationProvider 表示肯定语生成所使用的提供方。
	SettingKeyAffirmationProvider = "affirmation_provider"
	// SettingKeyHFAPIKey 表示 Hugging Face API Key。
	SettingKeyHFAPIKey = "hf_api_key"
	// SettingKeyHFModel 表示 Hugging Face 模型名称。
	SettingKeyHFModel = "hf_model"
	// SettingKeyHFEndpoint 表示 Hugging Face 推理接口地址。
	SettingKeyHFEndpoint = "hf_endpoint"
)
