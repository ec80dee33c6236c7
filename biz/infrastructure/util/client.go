package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/mitchellh/mapstructure"
)

var client *HttpClient

// LLMClient 下游模型服务的调用面，便于测试替换
type LLMClient interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	EmbedContent(ctx context.Context, text string) ([]float64, error)
	PredictDifficulty(ctx context.Context, marks map[string][]float64) ([]string, error)
}

// HttpClient 是一个简单的 HTTP 客户端
type HttpClient struct {
	Client *http.Client
	Config *config.Config
}

// NewHttpClient 创建一个新的 HttpClient 实例
func NewHttpClient() *HttpClient {
	return &HttpClient{
		Client: &http.Client{},
	}
}

func GetHttpClient() *HttpClient {
	if client == nil {
		client = NewHttpClient()
	}
	return client
}

// NewLLMClient 提供LLMClient实现
func NewLLMClient() LLMClient {
	return GetHttpClient()
}

// SendRequest 发送 HTTP 请求
func (c *HttpClient) SendRequest(ctx context.Context, method, url string, headers map[string]string, body interface{}) (map[string]interface{}, error) {
	// 将 body 序列化为 JSON
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("请求体序列化失败: %w", err)
	}

	// 创建新的请求
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	// 设置请求头
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// 发送请求
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error("关闭响应体失败: %v", closeErr)
		}
	}()

	// 读取响应
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 检查响应状态码
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, responseBody)
	}

	// 反序列化响应体
	var responseMap map[string]interface{}
	if err := json.Unmarshal(responseBody, &responseMap); err != nil {
		return nil, fmt.Errorf("反序列化响应失败: %w", err)
	}

	return responseMap, nil
}

func (c *HttpClient) buildHeader() map[string]string {
	header := make(map[string]string)
	header["Content-Type"] = consts.ContentTypeJson
	header["Charset"] = consts.CharSetUTF8
	header["Authorization"] = config.GetConfig().Api.AuthHeader
	return header
}

// ChatCompletion 调用生成式文本服务，返回单条补全文本
func (c *HttpClient) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := make(map[string]interface{})
	body["temperature"] = 0.8
	body["messages"] = []map[string]string{
		{"role": "system", "content": systemPrompt},
		{"role": "user", "content": userPrompt},
	}
	body["model"] = config.GetConfig().Api.ChatModel
	body["stream"] = false
	body["penalty"] = 0
	body["max_tokens"] = 900

	resp, err := c.SendRequest(ctx, consts.Post, config.GetConfig().Api.ChatCompletionURL, c.buildHeader(), body)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `mapstructure:"content"`
			} `mapstructure:"message"`
		} `mapstructure:"choices"`
	}
	if err := mapstructure.Decode(resp, &parsed); err != nil {
		return "", fmt.Errorf("下游响应格式错误: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("下游响应缺少choices字段")
	}
	return parsed.Choices[0].Message.Content, nil
}

// EmbedContent 调用向量化服务，返回定长向量
func (c *HttpClient) EmbedContent(ctx context.Context, text string) ([]float64, error) {
	body := make(map[string]interface{})
	body["model"] = config.GetConfig().Api.EmbeddingModel
	body["content"] = text
	body["task_type"] = "semantic_similarity"

	resp, err := c.SendRequest(ctx, consts.Post, config.GetConfig().Api.EmbeddingURL, c.buildHeader(), body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Embedding []float64 `mapstructure:"embedding"`
	}
	if err := mapstructure.Decode(resp, &parsed); err != nil {
		return nil, fmt.Errorf("下游响应格式错误: %w", err)
	}
	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("下游响应缺少embedding字段")
	}
	return parsed.Embedding, nil
}

// PredictDifficulty 调用难度预测服务，根据学生历史成绩预测各档难度
func (c *HttpClient) PredictDifficulty(ctx context.Context, marks map[string][]float64) ([]string, error) {
	body := make(map[string]interface{})
	body["students_assignment_marks"] = marks

	resp, err := c.SendRequest(ctx, consts.Post, config.GetConfig().Api.DifficultyURL, c.buildHeader(), body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		DifficultyLevels []string `mapstructure:"difficulty_levels"`
	}
	if err := mapstructure.Decode(resp, &parsed); err != nil {
		return nil, fmt.Errorf("下游响应格式错误: %w", err)
	}
	if len(parsed.DifficultyLevels) == 0 {
		return nil, fmt.Errorf("下游响应缺少difficulty_levels字段")
	}
	return parsed.DifficultyLevels, nil
}

// FetchText 拉取预签名URL指向的纯文本内容
func (c *HttpClient) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, consts.Get, url, nil)
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %w", err)
	}
	return string(data), nil
}

// FetchBytes 拉取附件原始字节
func (c *HttpClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, consts.Get, url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
