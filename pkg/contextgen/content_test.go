package contextgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLanguageTag(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.py", "python"},
		{"config.json", "json"},
		{"README.md", "markdown"},
		{"notes.MD", "markdown"},
		{"main.go", "text"},
		{".gitignore", "text"},
		{"Makefile", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := languageTag(tt.path); got != tt.want {
				t.Errorf("languageTag(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoadFileContentText(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "app.py", "print('hi')\n")

	content, lang, err := loadFileContent(filepath.Join(root, "app.py"), "app.py", zap.NewNop())
	if err != nil {
		t.Fatalf("loadFileContent() error = %v", err)
	}
	if content != "print('hi')\n" {
		t.Errorf("content = %q", content)
	}
	if lang != "python" {
		t.Errorf("lang = %q, want python", lang)
	}
}

func TestLoadFileContentBinary(t *testing.T) {
	root := t.TempDir()
	binPath := filepath.Join(root, "blob.bin")
	if err := os.WriteFile(binPath, []byte{0x00, 0x01, 0xff, 0xfe, 'a'}, 0o644); err != nil {
		t.Fatal(err)
	}

	content, lang, err := loadFileContent(binPath, "blob.bin", zap.NewNop())
	if err != nil {
		t.Fatalf("loadFileContent() error = %v", err)
	}
	if content != binaryPlaceholder {
		t.Errorf("content = %q, want the binary placeholder", content)
	}
	if lang != "text" {
		t.Errorf("lang = %q, want text", lang)
	}
}

func TestLoadFileContentInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "latin1.txt")
	if err := os.WriteFile(p, []byte{'c', 'a', 'f', 0xe9}, 0o644); err != nil {
		t.Fatal(err)
	}

	content, lang, err := loadFileContent(p, "latin1.txt", zap.NewNop())
	if err != nil {
		t.Fatalf("loadFileContent() error = %v", err)
	}
	if content != binaryPlaceholder || lang != "text" {
		t.Errorf("got (%q, %q), want placeholder with text tag", content, lang)
	}
}

func TestLoadFileContentControlCharacters(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "garbled.txt")
	// Valid UTF-8 with no null bytes, but half the bytes are control
	// characters: the non-printable ratio must flag it as binary.
	if err := os.WriteFile(p, []byte(strings.Repeat("a\x01", 256)), 0o644); err != nil {
		t.Fatal(err)
	}

	content, lang, err := loadFileContent(p, "garbled.txt", zap.NewNop())
	if err != nil {
		t.Fatalf("loadFileContent() error = %v", err)
	}
	if content != binaryPlaceholder {
		t.Errorf("content = %q, want the binary placeholder", content)
	}
	if lang != "text" {
		t.Errorf("lang = %q, want text", lang)
	}
}

func TestLoadFileContentMissing(t *testing.T) {
	_, _, err := loadFileContent(filepath.Join(t.TempDir(), "gone.txt"), "gone.txt", zap.NewNop())
	if err == nil {
		t.Fatal("loadFileContent() on a missing file must return an error")
	}
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}
