// Package mood 提供心情数值的分级与渐变取色，纯函数、无副作用。
package mood

import (
	"fmt"
	"math"
)

// 心情分级标签，按数值从低到高排列。
const (
	LabelBurdened = "Burdened"
	LabelUneasy   = "Uneasy"
	LabelNeutral  = "Neutral"
	LabelContent  = "Content"
	LabelRadiant  = "Radiant"
)

// Labels 按分级顺序列出全部标签。
var Labels = []string{LabelBurdened, LabelUneasy, LabelNeutral, LabelContent, LabelRadiant}

// MinValue/MaxValue 界定滑块取值范围。
const (
	MinValue = 0
	MaxValue = 100
)

// InRange 判断心情数值是否落在合法区间内。
func InRange(value int) bool {
	return value >= MinValue && value <= MaxValue
}

// Classify 将 [0,100] 的心情数值映射到五个分级之一。
// 每个区间的上边界包含在内：20 仍是 Burdened，21 进入 Uneasy。
func Classify(value int) string {
	switch {
	case value <= 20:
		return LabelBurdened
	case value <= 40:
		return LabelUneasy
	case value <= 60:
		return LabelNeutral
	case value <= 80:
		return LabelContent
	default:
		return LabelRadiant
	}
}

// Color 表示 HSL 颜色，H 取角度，S/L 取百分数。
type Color struct {
	H float64
	S float64
	L float64
}

// HSL 输出 hsl(h, s%, l%) 形式的字符串。
func (c Color) HSL() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", trimFloat(c.H), trimFloat(c.S), trimFloat(c.L))
}

// Hex 输出 #rrggbb 形式的颜色值，供终端渲染使用。
func (c Color) Hex() string {
	r, g, b := hslToRGB(c.H, c.S/100, c.L/100)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Gradient 返回给定心情数值对应的两个渐变端点颜色。
// 以 50 为中点分两段线性插值，同一数值永远得到同一对颜色。
func Gradient(value int) (Color, Color) {
	v := float64(value)
	if v < 50 {
		p := v / 50
		return Color{H: 230 + (170-230)*p, S: 60, L: 40},
			Color{H: 260 + (200-260)*p, S: 70, L: 45}
	}

	p := (v - 50) / 50
	return Color{H: 170 + (340-170)*p, S: 60 + 20*p, L: 40 + 10*p},
		Color{H: 200 + (40-200)*p, S: 70 + 20*p, L: 45 + 10*p}
}

func trimFloat(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int(f))
	}
	return fmt.Sprintf("%g", f)
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)),
		uint8(math.Round((g + m) * 255)),
		uint8(math.Round((b + m) * 255))
}
