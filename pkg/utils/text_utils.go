package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 优先在空格处断行；单个单词超宽时独占一行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if font == nil {
		return []string{textStr}
	}
	return WrapWords(textStr, maxWidth, func(s string) float64 {
		w, _ := text.Measure(s, font, 0)
		return w
	})
}

// WrapWords 按单词换行，measure 返回字符串的像素宽度
func WrapWords(textStr string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(textStr)
	if len(words) == 0 || maxWidth <= 0 || measure == nil {
		return []string{strings.TrimSpace(textStr)}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
