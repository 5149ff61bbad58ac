package utils

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// monoWidth 每个字符 10 像素的等宽测量
func monoWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * 10
}

// TestWrapWords 测试按单词换行
func TestWrapWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{
			name:     "短文本不换行",
			input:    "Hello",
			maxWidth: 100,
			want:     []string{"Hello"},
		},
		{
			name:     "按空格换行",
			input:    "Hello, I'm SOHAM",
			maxWidth: 100,
			want:     []string{"Hello, I'm", "SOHAM"},
		},
		{
			name:     "超长单词强制断行",
			input:    "abcdefghijkl",
			maxWidth: 50,
			want:     []string{"abcde", "fghij", "kl"},
		},
		{
			name:     "空文本",
			input:    "",
			maxWidth: 100,
			want:     []string{""},
		},
		{
			name:     "非法宽度",
			input:    "some long text here",
			maxWidth: 0,
			want:     []string{"some long text here"},
		},
		{
			name:     "多字节字符",
			input:    "粒子文字动画",
			maxWidth: 30,
			want:     []string{"粒子文", "字动画"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapWords(tt.input, monoWidth, tt.maxWidth)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("WrapWords(%q, %.0f) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

// TestWrapText 测试使用真实字体的换行
func TestWrapText(t *testing.T) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	face := &text.GoTextFace{Source: source, Size: 22}

	lines := WrapText("Hello, I'm SOHAM and this line is long", face, 150)
	if len(lines) < 2 {
		t.Errorf("期望至少 2 行，实际得到 %d 行", len(lines))
	}
	for _, line := range lines {
		if w, _ := text.Measure(line, face, 0); w > 150 && strings.Contains(line, " ") {
			t.Errorf("行 %q 宽度 %.1f 超过最大宽度", line, w)
		}
	}

	// nil 字体原样返回
	if got := WrapText("测试", nil, 100); len(got) != 1 || got[0] != "测试" {
		t.Errorf("nil font: got %q", got)
	}
}
