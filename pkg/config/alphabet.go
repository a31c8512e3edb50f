package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// StationCount 字母站点数量（A-Z）
const StationCount = 26

// RGB 显示颜色
type RGB struct {
	R, G, B uint8
}

// ParseHexColor 解析 "#RRGGBB" 格式的颜色
func ParseHexColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// UnmarshalYAML 从 "#RRGGBB" 字符串解码
func (c *RGB) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML 编码为 "#RRGGBB" 字符串
func (c RGB) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// Hex 返回 "#RRGGBB" 形式
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBA 转换为带透明度的 color.RGBA
func (c RGB) RGBA(alpha uint8) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Lerp 在两个颜色之间线性插值，t 会被限制在 [0,1]
func (c RGB) Lerp(to RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB{R: mix(c.R, to.R), G: mix(c.G, to.G), B: mix(c.B, to.B)}
}

// AlphabetEntry 一个字母站点：字母、单词、表情符号和显示颜色
type AlphabetEntry struct {
	Letter string `yaml:"letter"`
	Word   string `yaml:"word"`
	Emoji  string `yaml:"emoji"`
	Color  RGB    `yaml:"color"`
}

// Intro 返回 "<Letter> is for <Word>." 语句
func (e AlphabetEntry) Intro() string {
	return fmt.Sprintf("%s is for %s.", e.Letter, e.Word)
}

// Alphabet 有序的字母表，下标即站点序号
// 进程启动时加载一次，之后只读
type Alphabet []AlphabetEntry

type alphabetFile struct {
	Entries []AlphabetEntry `yaml:"entries"`
}

// Len 返回站点数量
func (a Alphabet) Len() int {
	return len(a)
}

// LastIndex 返回最后一个站点的序号
func (a Alphabet) LastIndex() int {
	return len(a) - 1
}

// At 返回指定序号的条目，越界时限制到合法范围
func (a Alphabet) At(index int) AlphabetEntry {
	if index < 0 {
		index = 0
	}
	if index > a.LastIndex() {
		index = a.LastIndex()
	}
	return a[index]
}

// ParseAlphabet 从 YAML 数据解析字母表
func ParseAlphabet(data []byte) (Alphabet, error) {
	var file alphabetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse alphabet YAML: %w", err)
	}

	alphabet := Alphabet(file.Entries)
	if err := validateAlphabet(alphabet); err != nil {
		return nil, fmt.Errorf("invalid alphabet: %w", err)
	}
	return alphabet, nil
}

// LoadAlphabet 从 YAML 文件加载字母表
func LoadAlphabet(filePath string) (Alphabet, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read alphabet file: %w", err)
	}
	return ParseAlphabet(data)
}

// validateAlphabet 验证条目数量、字母顺序和必填字段
func validateAlphabet(a Alphabet) error {
	if len(a) != StationCount {
		return fmt.Errorf("expected %d entries, got %d", StationCount, len(a))
	}
	for i, entry := range a {
		want := string(rune('A' + i))
		if entry.Letter != want {
			return fmt.Errorf("entry %d: letter %q, want %q", i, entry.Letter, want)
		}
		if strings.TrimSpace(entry.Word) == "" {
			return fmt.Errorf("entry %d (%s): word cannot be empty", i, entry.Letter)
		}
		if !strings.HasPrefix(strings.ToUpper(entry.Word), entry.Letter) {
			return fmt.Errorf("entry %d: word %q does not start with %s", i, entry.Word, entry.Letter)
		}
		if entry.Emoji == "" {
			return fmt.Errorf("entry %d (%s): emoji cannot be empty", i, entry.Letter)
		}
	}
	return nil
}
