// Package client 封装与 MindMend 服务端的 HTTP 交互。
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrEntryNotFound 表示服务端没有对应的日记。
// 删除场景下调用方通常把它当作"接近成功"处理：无论如何都会重新同步。
var ErrEntryNotFound = errors.New("entry not found")

// Entry 是服务端日记记录的客户端镜像。
type Entry struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	MoodValue   int       `json:"moodValue"`
	MoodLabel   string    `json:"moodLabel"`
	Text        string    `json:"text"`
	Affirmation string    `json:"affirmation"`
}

// CreateEntryInput 定义提交日记所需的字段。
type CreateEntryInput struct {
	Date      string `json:"date"`
	MoodValue int    `json:"moodValue"`
	MoodLabel string `json:"moodLabel"`
	Text      string `json:"text"`
}

type apiError struct {
	Error string `json:"error"`
}

// Client 是 MindMend API 的 HTTP 客户端。
type Client struct {
	http *resty.Client
}

// New 构造指向给定服务地址的客户端。
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(baseURL), "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{http: c}
}

// ListEntries 拉取全部日记，服务端保证按创建时间倒序。
// 这是客户端唯一的读路径：每次变更后都整体替换本地缓存。
func (c *Client) ListEntries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&entries).
		SetError(&apiError{}).
		Get("/entries")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list entries: %s", errorMessage(resp))
	}
	return entries, nil
}

// CreateEntry 提交一条新日记，返回包含生成字段的完整记录。
func (c *Client) CreateEntry(ctx context.Context, input CreateEntryInput) (*Entry, error) {
	var entry Entry
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&entry).
		SetError(&apiError{}).
		Post("/entries")
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create entry: %s", errorMessage(resp))
	}
	return &entry, nil
}

// DeleteEntry 删除指定日记。
// 服务端返回 404 时报告 ErrEntryNotFound，由调用方决定是否忽略。
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete("/entries/" + id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if resp.StatusCode() == 404 {
		return ErrEntryNotFound
	}
	if resp.IsError() {
		return fmt.Errorf("delete entry: %s", errorMessage(resp))
	}
	return nil
}

func errorMessage(resp *resty.Response) string {
	if apiErr, ok := resp.Error().(*apiError); ok && strings.TrimSpace(apiErr.Error) != "" {
		return apiErr.Error
	}
	return resp.Status()
}
