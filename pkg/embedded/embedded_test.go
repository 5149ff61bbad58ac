package embedded

import (
	"testing"
	"testing/fstest"
)

// reset 重置包状态以避免影响其他测试
func reset() {
	dataFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// nil 文件系统视为未初始化
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false after Init(nil)")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	reset()

	_, err := ReadFile("data/field.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestExistsNotInitialized 测试未初始化时调用 Exists
func TestExistsNotInitialized(t *testing.T) {
	reset()

	if Exists("data/field.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试读取与路径标准化
func TestReadFile(t *testing.T) {
	reset()
	defer reset()

	Init(fstest.MapFS{
		"data/field.yaml": &fstest.MapFile{Data: []byte("message: hi\n")},
	})

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/field.yaml", false},
		{"带 ./ 前缀", "./data/field.yaml", false},
		{"未知前缀", "assets/field.yaml", true},
		{"文件不存在", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) unexpected error: %v", tt.path, err)
			}
			if string(data) != "message: hi\n" {
				t.Errorf("ReadFile(%q) = %q", tt.path, data)
			}
		})
	}

	if !Exists("data/field.yaml") {
		t.Error("Expected Exists() to return true for data/field.yaml")
	}
	if Exists("data/missing.yaml") {
		t.Error("Expected Exists() to return false for data/missing.yaml")
	}
}
