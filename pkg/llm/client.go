package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/echo-insight/echo-insight-backend/internal/platform/config"
)

// Client 是外部大模型补全服务的抽象。
// 核心逻辑只依赖这一个单次调用：系统指令 + 用户上下文 -> 自由文本。
// 任何失败（超时、空响应、格式错误）对调用方而言都等价于"回退到模板"。
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
	// Provider 返回用于响应payload的提供方标签，例如 "dashscope:qwen-plus"。
	Provider() string
}

// ErrNotConfigured 表示缺少API密钥等必要配置，调用方应直接走模板回退。
var ErrNotConfigured = errors.New("llm: 未配置API密钥")

// httpClient 是OpenAI兼容协议（dashscope compatible-mode）的chat completions客户端。
type httpClient struct {
	baseURL string
	model   string
	apiKey  string
	label   string
	client  *http.Client
}

// NewClient 根据配置构造HTTP客户端。
// API密钥从cfg.APIKeyEnv指定的环境变量读取，密钥缺失不视为错误，
// 调用时会返回ErrNotConfigured并由上层回退。
func NewClient(cfg config.LLMConfig) Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  strings.TrimSpace(os.Getenv(cfg.APIKeyEnv)),
		label:   cfg.Provider + ":" + cfg.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) Provider() string {
	return c.label
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete 执行一次chat completions调用。
// 不做重试：重试策略（若需要）属于外部协作方，核心只要单发边界。
func (c *httpClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm: http %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("llm: 解析响应失败: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("llm: 响应中没有choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("llm: 空响应")
	}
	return text, nil
}
