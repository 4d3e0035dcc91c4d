package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindmend/internal/mood"
	"github.com/mindmend/internal/service"
)

type affirmationPayload struct {
	Text      string `json:"text"`
	MoodValue *int   `json:"moodValue"`
	MoodLabel string `json:"moodLabel"`
}

// GenerateAffirmation 为给定正文生成一条肯定语。
// 生成服务对调用方永不失败，这个接口同样总是返回一条非空字符串。
func (a *API) GenerateAffirmation(c *gin.Context) {
	var payload affirmationPayload
	if !bindJSON(c, &payload, "invalid affirmation payload") {
		return
	}

	moodValue := 50
	if payload.MoodValue != nil && mood.InRange(*payload.MoodValue) {
		moodValue = *payload.MoodValue
	}

	moodLabel := payload.MoodLabel
	if moodLabel == "" {
		moodLabel = mood.Classify(moodValue)
	}

	affirmation := a.affirmations.Generate(c.Request.Context(), service.AffirmationRequest{
		Text:      payload.Text,
		MoodLabel: moodLabel,
		MoodValue: moodValue,
	})

	c.JSON(http.StatusOK, gin.H{"affirmation": affirmation})
}
