package embedded

import (
	"os"
	"testing"
	"testing/fstest"
)

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
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	reset()

	_, err := ReadFile("data/ride.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestPathPrefix 测试路径前缀校验与标准化
func TestPathPrefix(t *testing.T) {
	reset()
	defer reset()

	Init(fstest.MapFS{
		"data/ride.yaml": &fstest.MapFile{Data: []byte("ride: {}")},
	})

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "data/ride.yaml", false},
		{"dot slash", "./data/ride.yaml", false},
		{"wrong prefix", "assets/ride.yaml", true},
		{"missing", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}

	if !Exists("data/ride.yaml") {
		t.Error("Exists(data/ride.yaml) = false, want true")
	}
	if Exists("data/nope.yaml") {
		t.Error("Exists(data/nope.yaml) = true, want false")
	}
}

// TestProjectDataFiles 使用项目根目录的真实数据文件
func TestProjectDataFiles(t *testing.T) {
	reset()
	defer reset()

	Init(os.DirFS("../.."))

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob error: %v", err)
	}
	if len(matches) < 2 {
		t.Errorf("Expected at least alphabet.yaml and ride.yaml, got %v", matches)
	}
}
