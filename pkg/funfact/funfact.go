// Package funfact 为到达的字母站点生成一句简短的趣味知识
//
// 有可用密钥时通过 Gemini 生成；密钥缺失、请求失败或返回为空时
// 使用固定的兜底句子。FunFact 从不返回错误，也不会返回空字符串。
package funfact

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/decker502/alphacoaster/pkg/config"
	"github.com/decker502/alphacoaster/pkg/logging"
	"google.golang.org/genai"
)

// DefaultModel 默认模型
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout 单次请求超时
const DefaultTimeout = 10 * time.Second

// minKeyLength 短于该长度的密钥视为占位符
const minKeyLength = 10

// generator 文本生成后端
type generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Options 构造 Provider 的参数
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	// BaseURL 覆盖 API 地址（测试或代理使用），为空时使用默认地址
	BaseURL    string
	HTTPClient *http.Client
}

// Provider 趣味知识提供者
type Provider struct {
	model   string
	timeout time.Duration
	gen     generator // nil 表示没有可用密钥
}

// NewProvider 创建 Provider
// 密钥不可用时不创建网络客户端，FunFact 直接返回兜底句子
func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	p := &Provider{
		model:   opts.Model,
		timeout: opts.Timeout,
	}
	if p.model == "" {
		p.model = DefaultModel
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}

	if !HasUsableKey(opts.APIKey) {
		logging.L().Infof("[FunFact] no usable API key, using offline facts")
		return p, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	p.gen = &genaiGenerator{client: client}
	logging.L().Infof("[FunFact] using model %s", p.model)
	return p, nil
}

// Online 是否会发起网络请求
func (p *Provider) Online() bool {
	return p.gen != nil
}

// FunFact 返回站点 entry 的一句趣味知识
func (p *Provider) FunFact(ctx context.Context, entry config.AlphabetEntry) string {
	if p.gen == nil {
		return OfflineFact(entry)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.gen.Generate(ctx, p.model, BuildPrompt(entry))
	if err != nil {
		logging.L().Warnf("[FunFact] request for %s failed: %v", entry.Letter, err)
		return FailureFact(entry)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return EmptyFact(entry)
	}
	return text
}

// HasUsableKey 判断密钥是否像一个真实的密钥
// 空串、字面量 "undefined" 和过短的值都视为缺失
func HasUsableKey(key string) bool {
	return key != "" && key != "undefined" && len(key) >= minKeyLength
}

// OfflineFact 没有密钥时的句子
func OfflineFact(entry config.AlphabetEntry) string {
	return fmt.Sprintf("Did you know? %s starts with the letter %s! It's amazing!", entry.Word, entry.Letter)
}

// EmptyFact 模型返回空文本时的句子
func EmptyFact(entry config.AlphabetEntry) string {
	return fmt.Sprintf("%s starts with %s! Wow!", entry.Word, entry.Letter)
}

// FailureFact 请求失败时的句子
func FailureFact(entry config.AlphabetEntry) string {
	return fmt.Sprintf("Look! It's a %s. %s is for %s!", entry.Word, entry.Letter, entry.Word)
}

// BuildPrompt 构造提示词
func BuildPrompt(entry config.AlphabetEntry) string {
	var b strings.Builder
	b.WriteString("You are a cute, energetic little bird character in a game for 5-year-old kids.\n")
	fmt.Fprintf(&b, "The kid has just arrived at the letter %q which stands for %q.\n", entry.Letter, entry.Word)
	fmt.Fprintf(&b, "The visual shows a %s (%s).\n\n", entry.Word, entry.Emoji)
	fmt.Fprintf(&b, "Write a VERY short, 1-sentence fun fact or a rhyme about the %s.\n", entry.Word)
	b.WriteString("Keep it simple, encouraging, and under 15 words.\n")
	b.WriteString("Do not use complex words.\n")
	b.WriteString("Do not include \"Bird:\" prefix.\n")
	return b.String()
}
