package service

// fallbackCategory 将一组触发关键词映射到同主题的预置肯定语。
type fallbackCategory struct {
	name         string
	keywords     []string
	affirmations []string
}

// fallbackCategories 按固定优先级排列，命中多类时取最靠前的一类。
// 顺序：压力 > 悲伤 > 感恩 > 喜悦 > 目标 > 爱。调整顺序会改变同一段
// 文字得到的肯定语，属于行为变更。
var fallbackCategories = []fallbackCategory{
	{
		name:     "stress",
		keywords: []string{"stress", "stressed", "anxious", "anxiety", "overwhelmed", "pressure", "worried", "worry", "tense", "panic"},
		affirmations: []string{
			"You are allowed to pause; the weight you carry is not yours to hold all at once.",
			"Breathe slowly — this pressure is temporary, and you have moved through hard days before.",
			"One thing at a time is still forward motion.",
		},
	},
	{
		name:     "sadness",
		keywords: []string{"sad", "sadness", "hurt", "pain", "lonely", "loss", "grief", "cry", "crying", "down"},
		affirmations: []string{
			"It is okay to feel this fully; heavy feelings pass through you, they do not define you.",
			"Be as gentle with yourself as you would be with a friend in pain.",
			"Even on the dimmest days, you are still worth caring for.",
		},
	},
	{
		name:     "gratitude",
		keywords: []string{"grateful", "gratitude", "thankful", "thanks", "appreciate", "blessed"},
		affirmations: []string{
			"Noticing what you have is its own quiet kind of joy — keep noticing.",
			"Gratitude like yours turns ordinary days into enough.",
		},
	},
	{
		name:     "joy",
		keywords: []string{"happy", "happiness", "joy", "excited", "wonderful", "great day", "amazing", "fun"},
		affirmations: []string{
			"Let yourself enjoy this without waiting for it to end.",
			"You earned this lightness — carry it with you.",
		},
	},
	{
		name:     "goals",
		keywords: []string{"goal", "goals", "plan", "dream", "ambition", "progress", "project", "future"},
		affirmations: []string{
			"Every small step you take is quietly compounding.",
			"You do not need the whole path to be visible to keep walking it.",
		},
	},
	{
		name:     "love",
		keywords: []string{"love", "loved", "partner", "family", "friend", "friends", "together"},
		affirmations: []string{
			"The care you give others also lives inside you — save some for yourself.",
			"You are easy to love, even on the days you doubt it.",
		},
	},
}

// genericFallbacks 在没有关键词命中时随机取用。
var genericFallbacks = []string{
	"Gentle reminder: breathe — you are enough in this moment.",
	"You are allowed to rest and still be proud of the progress you've made.",
	"One small step counts; you are moving forward.",
	"Peace comes from within. Do not seek it without.",
	"This moment is all there is.",
	"You are the sky. Everything else is just the weather.",
	"Inhale the future, exhale the past.",
}
