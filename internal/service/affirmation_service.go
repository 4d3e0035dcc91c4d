package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"
)

const maxPromptEntryRuneCount = 2000

// AffirmationRequest 描述一次肯定语生成所需的上下文。
type AffirmationRequest struct {
	Text      string
	MoodLabel string
	MoodValue int
}

// AffirmationGenerator 定义肯定语生成能力，便于在业务层注入不同实现。
// Generate 对调用方永不失败，任何内部错误都会被回退策略吸收。
type AffirmationGenerator interface {
	Generate(ctx context.Context, req AffirmationRequest) string
}

// affirmationStrategy 是一个不会抛错的生成策略，返回空串表示放弃，
// 由链上的下一个策略接手。
type affirmationStrategy func(ctx context.Context, req AffirmationRequest) string

// AffirmationService 按顺序尝试远端生成、关键词回退、随机回退。
// 单个实例会被所有并发请求共享，策略实现不得持有非并发安全的状态。
type AffirmationService struct {
	client     *hfClient
	settings   *SystemSettingService
	timeout    time.Duration
	strategies []affirmationStrategy
}

// NewAffirmationService 构造默认的 AffirmationService。
func NewAffirmationService(settings *SystemSettingService, timeout time.Duration) *AffirmationService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s := &AffirmationService{
		client:   newHFClient(settings),
		settings: settings,
		timeout:  timeout,
	}
	s.strategies = []affirmationStrategy{
		s.remoteStrategy,
		s.keywordStrategy,
		s.randomStrategy,
	}
	return s
}

// SetHTTPClient 覆盖远端调用所用的 HTTP 客户端，主要用于测试。
func (s *AffirmationService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetEndpoint 覆盖默认的推理接口地址。
func (s *AffirmationService) SetEndpoint(endpoint string) {
	s.client.SetEndpoint(endpoint)
}

// SetModel 指定远端生成所使用的模型名称。
func (s *AffirmationService) SetModel(model string) {
	s.client.SetModel(model)
}

// Generate 返回一条肯定语，保证非空。
// 日记提交永远不应被第三方生成服务拖垮，所以这里不向上传递任何错误。
func (s *AffirmationService) Generate(ctx context.Context, req AffirmationRequest) string {
	for _, strategy := range s.strategies {
		if result := strategy(ctx, req); result != "" {
			return result
		}
	}
	// randomStrategy 永远命中，这里只是兜底。
	return genericFallbacks[0]
}

func (s *AffirmationService) remoteStrategy(ctx context.Context, req AffirmationRequest) string {
	settings, err := s.settings.GetSettings()
	if err != nil {
		log.Printf("[affirmation] load settings failed: %v", err)
		return ""
	}
	if settings.AffirmationProvider != AffirmationProviderHuggingFace {
		return ""
	}

	prompt := buildAffirmationPrompt(req)
	logAffirmationExchange("prompt", prompt)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	generated, err := s.client.call(callCtx, prompt)
	if err != nil {
		log.Printf("[affirmation] remote generation failed: %v", err)
		return ""
	}

	logAffirmationExchange("response", generated)
	return strings.TrimSpace(generated)
}

func (s *AffirmationService) keywordStrategy(_ context.Context, req AffirmationRequest) string {
	lowered := strings.ToLower(req.Text)
	for _, category := range fallbackCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(lowered, keyword) {
				// 顶层 rand 自带锁，可被并发请求安全共享
				return category.affirmations[rand.Intn(len(category.affirmations))]
			}
		}
	}
	return ""
}

func (s *AffirmationService) randomStrategy(_ context.Context, _ AffirmationRequest) string {
	return genericFallbacks[rand.Intn(len(genericFallbacks))]
}

func buildAffirmationPrompt(req AffirmationRequest) string {
	entry := truncateRunes(strings.TrimSpace(req.Text), maxPromptEntryRuneCount)
	return fmt.Sprintf(
		"You are gentle. User mood: %s (%d/100). Entry: %q. Produce one short affirmation, one sentence, no quotes.",
		req.MoodLabel, req.MoodValue, entry,
	)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
