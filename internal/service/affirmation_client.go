package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHFEndpoint          = "https://router.huggingface.co/models"
	defaultHFModel             = "google/gemma-2-2b-it"
	defaultGenerationMaxTokens = 120
	defaultGenerationTemp      = 0.8
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceResult struct {
	GeneratedText string `json:"generated_text"`
}

type inferenceError struct {
	Error string `json:"error"`
}

// hfClient 封装 Hugging Face 文本生成接口的调用细节。
type hfClient struct {
	settings *SystemSettingService
	http     httpDoer
	endpoint string
	model    string
}

func newHFClient(settings *SystemSettingService) *hfClient {
	return &hfClient{
		settings: settings,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (c *hfClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
		return
	}
	c.http = client
}

// SetEndpoint 覆盖默认的推理接口地址。
func (c *hfClient) SetEndpoint(endpoint string) {
	c.endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
}

// SetModel 指定生成所使用的模型名称。
func (c *hfClient) SetModel(model string) {
	model = strings.TrimSpace(model)
	if model == "" {
		return
	}
	c.model = model
}

// call 发送生成请求并提取首条生成文本。
func (c *hfClient) call(ctx context.Context, prompt string) (string, error) {
	settings, err := c.settings.GetSettings()
	if err != nil {
		return "", err
	}

	apiKey := strings.TrimSpace(settings.HFAPIKey)
	if apiKey == "" {
		return "", ErrHFAPIKeyMissing
	}

	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = strings.TrimRight(strings.TrimSpace(settings.HFEndpoint), "/")
	}
	if endpoint == "" {
		endpoint = defaultHFEndpoint
	}

	model := c.model
	if model == "" {
		model = strings.TrimSpace(settings.HFModel)
	}
	if model == "" {
		model = defaultHFModel
	}

	payload := inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxNewTokens:   defaultGenerationMaxTokens,
			Temperature:    defaultGenerationTemp,
			ReturnFullText: false,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w", err)
	}

	url := endpoint + "/" + model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("创建 Hugging Face 请求失败: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "mindmend-ai/1.0")

	client := c.http
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("请求 Hugging Face 接口失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("读取 Hugging Face 响应失败: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr inferenceError
		_ = json.Unmarshal(respBody, &apiErr)
		msg := strings.TrimSpace(apiErr.Error)
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("Hugging Face 接口返回错误：%s", msg)
	}

	var results []inferenceResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", fmt.Errorf("解析 Hugging Face 响应失败: %w", err)
	}

	if len(results) == 0 {
		return "", fmt.Errorf("Hugging Face 接口未返回结果")
	}

	generated := strings.TrimSpace(results[0].GeneratedText)
	if generated == "" {
		return "", fmt.Errorf("Hugging Face 接口返回空文本")
	}

	return generated, nil
}
