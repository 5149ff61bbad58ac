package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - face: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
func WrapText(textStr string, face *text.GoTextFace, maxWidth float64) []string {
	if face == nil || face.Source == nil {
		return []string{textStr}
	}
	return WrapWords(textStr, func(s string) float64 {
		w, _ := text.Measure(s, face, 0)
		return w
	}, maxWidth)
}

// WrapWords 按单词换行，宽度由 measure 给出
//
// 换行规则:
//   - 在空白处断行
//   - 单个单词超过最大宽度时按字符强制断行
//   - maxWidth <= 0 或文本已足够短时原样返回
func WrapWords(textStr string, measure func(string) float64, maxWidth float64) []string {
	if textStr == "" || maxWidth <= 0 || measure(textStr) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""

	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
		}

		// 单词本身过长：按字符拆分
		current = ""
		for len(word) > 0 {
			_, size := utf8.DecodeRuneInString(word)
			if current != "" && measure(current+word[:size]) > maxWidth {
				lines = append(lines, current)
				current = ""
			}
			current += word[:size]
			word = word[size:]
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}
