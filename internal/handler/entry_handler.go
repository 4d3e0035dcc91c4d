package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mindmend/internal/db"
	"github.com/mindmend/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type entryPayload struct {
	Date      string `json:"date"`
	MoodValue int    `json:"moodValue"`
	MoodLabel string `json:"moodLabel"`
	Text      string `json:"text"`
}

type entryView struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	MoodValue   int       `json:"moodValue"`
	MoodLabel   string    `json:"moodLabel"`
	Text        string    `json:"text"`
	Affirmation string    `json:"affirmation"`
}

type entryDetailView struct {
	entryView
	TextHTML string `json:"textHtml"`
}

func newEntryView(entry db.Entry) entryView {
	return entryView{
		ID:          entry.ID,
		Date:        entry.Date,
		CreatedAt:   entry.CreatedAt,
		MoodValue:   entry.MoodValue,
		MoodLabel:   entry.MoodLabel,
		Text:        entry.Text,
		Affirmation: entry.Affirmation,
	}
}

func newEntryViews(entries []db.Entry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newEntryView(entry))
	}
	return views
}

// renderEntryHTML 将日记正文按 Markdown 渲染并消毒，供详情接口使用。
func renderEntryHTML(text string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &buf); err != nil {
		return sanitizer.Sanitize(text)
	}
	return sanitizer.Sanitize(buf.String())
}

// GetEntries 返回全部日记，按创建时间倒序。
func (a *API) GetEntries(c *gin.Context) {
	entries, err := a.entries.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch entries")
		return
	}
	c.JSON(http.StatusOK, newEntryViews(entries))
}

// GetEntriesByDate 返回指定日历天的日记。
func (a *API) GetEntriesByDate(c *gin.Context) {
	entries, err := a.entries.ListByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to fetch entries")
		return
	}
	c.JSON(http.StatusOK, newEntryViews(entries))
}

// GetEntry 返回单条日记详情，附带渲染后的正文 HTML。
func (a *API) GetEntry(c *gin.Context) {
	entry, err := a.entries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "entry not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to fetch entry")
		return
	}

	c.JSON(http.StatusOK, entryDetailView{
		entryView: newEntryView(*entry),
		TextHTML:  renderEntryHTML(entry.Text),
	})
}

// CreateEntry 校验并保存一条新日记，肯定语在服务端生成。
func (a *API) CreateEntry(c *gin.Context) {
	var payload entryPayload
	if !bindJSON(c, &payload, "invalid entry payload") {
		return
	}

	entry, err := a.entries.Submit(c.Request.Context(), service.EntryInput{
		Date:      payload.Date,
		MoodValue: payload.MoodValue,
		MoodLabel: payload.MoodLabel,
		Text:      payload.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTextTooShort):
			respondError(c, http.StatusBadRequest, "text required")
		case errors.Is(err, service.ErrMoodOutOfRange):
			respondError(c, http.StatusBadRequest, "mood value must be between 0 and 100")
		case errors.Is(err, service.ErrInvalidDate):
			respondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		default:
			respondError(c, http.StatusInternalServerError, "failed to save entry")
		}
		return
	}

	c.JSON(http.StatusCreated, newEntryView(*entry))
}

// DeleteEntry 删除指定日记。
// ID 不存在时返回 404，客户端会照常重新同步，不视为硬错误。
func (a *API) DeleteEntry(c *gin.Context) {
	if err := a.entries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "entry not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// WipeEntries 清空日记集合，仅在开发模式注册。
func (a *API) WipeEntries(c *gin.Context) {
	if err := a.entries.DeleteAll(c.Request.Context()); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clear entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database cleared."})
}
