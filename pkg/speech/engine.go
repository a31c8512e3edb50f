package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// 常见语音合成命令，按优先级排列
var engineBinaries = []string{"espeak-ng", "espeak", "spd-say", "say"}

// DetectEngine 在 PATH 中查找可用的语音合成命令，找不到时返回 nil
func DetectEngine() Engine {
	for _, bin := range engineBinaries {
		path, err := exec.LookPath(bin)
		if err != nil {
			continue
		}
		if e := NewCommandEngine(bin, path); e != nil {
			return e
		}
	}
	return nil
}

// NewCommandEngine 为已知命令 kind（如 "espeak-ng"）创建引擎，path 为可执行文件路径
func NewCommandEngine(kind, path string) Engine {
	switch kind {
	case "espeak-ng", "espeak":
		return &commandEngine{name: kind, path: path, args: espeakArgs, voicesArgs: []string{"--voices"}, parseVoices: parseEspeakVoices}
	case "spd-say":
		return &commandEngine{name: kind, path: path, args: spdSayArgs, voicesArgs: []string{"-L"}, parseVoices: parseSpdSayVoices, stopArgs: []string{"-C"}}
	case "say":
		return &commandEngine{name: kind, path: path, args: sayArgs, voicesArgs: []string{"-v", "?"}, parseVoices: parseSayVoices}
	}
	return nil
}

// commandEngine 调用外部命令朗读
type commandEngine struct {
	name        string
	path        string
	args        func(Utterance) []string
	voicesArgs  []string
	parseVoices func([]byte) []Voice
	// stopArgs 取消时额外执行的命令参数（语音守护进程不会随客户端退出而停止）
	// 停止命令在 Say 返回前执行完毕，Speaker 据此保证它先于下一句到达
	stopArgs []string
}

func (e *commandEngine) Name() string { return e.name }

func (e *commandEngine) Voices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, e.path, e.voicesArgs...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s voice list: %w", e.name, err)
	}
	return e.parseVoices(out), nil
}

func (e *commandEngine) Say(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, e.path, e.args(u)...)
	if len(e.stopArgs) > 0 {
		cmd.Cancel = func() error {
			_ = exec.Command(e.path, e.stopArgs...).Run()
			return cmd.Process.Kill()
		}
	}
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", e.name, err)
	}
	return nil
}

// espeak: -p 音高 0..99（默认 50），-s 语速 词/分钟（默认 175）
func espeakArgs(u Utterance) []string {
	pitch := clampInt(int(math.Round(50*u.Pitch)), 0, 99)
	speed := clampInt(int(math.Round(175*u.Rate)), 80, 450)
	args := []string{"-p", strconv.Itoa(pitch), "-s", strconv.Itoa(speed)}
	if u.Voice != "" {
		args = append(args, "-v", u.Voice)
	}
	return append(args, "--", u.Text)
}

// spd-say: -p/-r 取值 -100..100，0 为默认；-w 等待读完
func spdSayArgs(u Utterance) []string {
	pitch := clampInt(int(math.Round((u.Pitch-1)*100)), -100, 100)
	rate := clampInt(int(math.Round((u.Rate-1)*100)), -100, 100)
	args := []string{"-w", "-p", strconv.Itoa(pitch), "-r", strconv.Itoa(rate)}
	if u.Voice != "" {
		args = append(args, "-y", u.Voice)
	}
	return append(args, "--", u.Text)
}

// say: -r 语速 词/分钟（默认约 175），音高通过内嵌命令 [[pbas]] 调整
func sayArgs(u Utterance) []string {
	speed := clampInt(int(math.Round(175*u.Rate)), 80, 450)
	args := []string{"-r", strconv.Itoa(speed)}
	if u.Voice != "" {
		args = append(args, "-v", u.Voice)
	}
	text := u.Text
	if u.Pitch != 1 {
		text = fmt.Sprintf("[[pbas %d]] %s", clampInt(int(math.Round(50*u.Pitch)), 0, 127), text)
	}
	return append(args, "--", text)
}

// parseEspeakVoices 解析 `espeak-ng --voices` 输出
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US            (en 10)
func parseEspeakVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}
		gender := "Male"
		if strings.HasSuffix(fields[2], "F") {
			gender = "Female"
		}
		voices = append(voices, Voice{
			ID:   fields[1],
			Name: fmt.Sprintf("%s %s", strings.ReplaceAll(fields[3], "_", " "), gender),
			Lang: fields[1],
		})
	}
	return voices
}

// parseSpdSayVoices 解析 `spd-say -L` 输出
//
//	NAME                 LANGUAGE  VARIANT
//	English (America)+Female1  en-US  none
func parseSpdSayVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "NAME") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := strings.Join(fields[:len(fields)-2], " ")
		voices = append(voices, Voice{ID: name, Name: name, Lang: fields[len(fields)-2]})
	}
	return voices
}

// parseSayVoices 解析 `say -v ?` 输出
//
//	Samantha            en_US    # Hello, my name is Samantha.
func parseSayVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		left, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(left)
		if len(fields) < 2 {
			continue
		}
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, Voice{ID: name, Name: name, Lang: fields[len(fields)-1]})
	}
	return voices
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
