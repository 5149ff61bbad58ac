package app

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gonewx/glyphfield/pkg/config"
	"github.com/gonewx/glyphfield/pkg/embedded"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// TestLoadFieldConfig 测试配置加载优先级
func TestLoadFieldConfig(t *testing.T) {
	defer embedded.Init(nil)

	// 未初始化：默认配置
	embedded.Init(nil)
	cfg, err := loadFieldConfig("")
	if err != nil {
		t.Fatalf("default config failed: %v", err)
	}
	if cfg.Message != config.DefaultFieldConfig().Message {
		t.Errorf("message = %q, want default", cfg.Message)
	}

	// 内嵌配置
	embedded.Init(fstest.MapFS{
		"data/field.yaml": &fstest.MapFile{Data: []byte("message: \"embedded\"\n")},
	})
	cfg, err = loadFieldConfig("")
	if err != nil {
		t.Fatalf("embedded config failed: %v", err)
	}
	if cfg.Message != "embedded" {
		t.Errorf("message = %q, want embedded", cfg.Message)
	}

	// 文件优先于内嵌
	path := filepath.Join(t.TempDir(), "field.yaml")
	if err := os.WriteFile(path, []byte("message: \"from file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadFieldConfig(path)
	if err != nil {
		t.Fatalf("file config failed: %v", err)
	}
	if cfg.Message != "from file" {
		t.Errorf("message = %q, want from file", cfg.Message)
	}

	// 文件不存在
	if _, err := loadFieldConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing config file")
	}
}

// TestApplyMessage 测试命令行文字覆盖
func TestApplyMessage(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		message   string
		wantMsg   string
		wantTitle string
	}{
		{name: "不覆盖", title: "Hello, I'm SOHAM", message: "", wantMsg: "Hello, I'm SOHAM", wantTitle: "Hello, I'm SOHAM"},
		{name: "标题跟随文字", title: "Hello, I'm SOHAM", message: "Hi", wantMsg: "Hi", wantTitle: "Hi"},
		{name: "空标题", title: "", message: "Hi", wantMsg: "Hi", wantTitle: "Hi"},
		{name: "自定义标题保留", title: "Welcome", message: "Hi", wantMsg: "Hi", wantTitle: "Welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := config.DefaultFieldConfig()
			fc.Hero.Title = tt.title
			applyMessage(fc, tt.message)
			if fc.Message != tt.wantMsg || fc.Hero.Title != tt.wantTitle {
				t.Errorf("got message %q / title %q, want %q / %q", fc.Message, fc.Hero.Title, tt.wantMsg, tt.wantTitle)
			}
		})
	}
}
