package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/repository/embedding"
	"edu-hub/biz/infrastructure/util"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/wire"
)

type IChatService interface {
	ChatWithMaterial(ctx context.Context, req *eduhub.ChatWithMaterialReq) (*eduhub.ChatResp, error)
	ChatWithRecording(ctx context.Context, req *eduhub.ChatWithRecordingReq) (*eduhub.ChatResp, error)
}

// ChatService 基于已入库向量的检索增强问答
type ChatService struct {
	LLM                      util.LLMClient
	EmbeddingMapper          *embedding.MongoMapper
	RecordingEmbeddingMapper *embedding.RecordingMongoMapper
	CounterCacheMapper       *cache.CounterCacheMapper
	ConversationCacheMapper  *cache.ConversationCacheMapper
}

var ChatServiceSet = wire.NewSet(
	wire.Struct(new(ChatService), "*"),
	wire.Bind(new(IChatService), new(*ChatService)),
)

// ChatWithMaterial 围绕某个附件的内容问答
func (s *ChatService) ChatWithMaterial(ctx context.Context, req *eduhub.ChatWithMaterialReq) (*eduhub.ChatResp, error) {
	return s.chat(ctx, req.Query,
		s.CounterCacheMapper.AttachmentEmbeddingsKey(req.AttachmentId),
		s.ConversationCacheMapper.AttachmentKey(req.AttachmentId),
		func(ctx context.Context, vector []float64, limit int64) ([]string, error) {
			results, err := s.EmbeddingMapper.SearchByAttachment(ctx, req.AttachmentId, vector, limit)
			if err != nil {
				return nil, err
			}
			texts := make([]string, 0, len(results))
			for _, r := range results {
				texts = append(texts, r.TextContent)
			}
			return texts, nil
		})
}

// ChatWithRecording 围绕一场录播的转写内容问答
func (s *ChatService) ChatWithRecording(ctx context.Context, req *eduhub.ChatWithRecordingReq) (*eduhub.ChatResp, error) {
	return s.chat(ctx, req.Query,
		s.CounterCacheMapper.RoomEmbeddingsKey(req.RoomId),
		s.ConversationCacheMapper.RoomKey(req.RoomId),
		func(ctx context.Context, vector []float64, limit int64) ([]string, error) {
			results, err := s.RecordingEmbeddingMapper.SearchByRoom(ctx, req.RoomId, vector, limit)
			if err != nil {
				return nil, err
			}
			texts := make([]string, 0, len(results))
			for _, r := range results {
				texts = append(texts, r.TextContent)
			}
			return texts, nil
		})
}

// chat 检索增强问答的公共主干
// 检索规模随语料量做平方根缩放，历史对话只取窗口内的尾部
func (s *ChatService) chat(ctx context.Context, query, counterKey, conversationKey string,
	search func(ctx context.Context, vector []float64, limit int64) ([]string, error)) (*eduhub.ChatResp, error) {

	vector, err := s.LLM.EmbedContent(ctx, query)
	if err != nil {
		log.CtxError(ctx, "查询向量化失败: %v", err)
		return nil, consts.ErrEmbed
	}

	count, err := s.CounterCacheMapper.Get(ctx, counterKey)
	if err != nil {
		log.CtxError(ctx, "读取向量计数失败: %v", err)
		return nil, consts.ErrChat
	}
	limit := ResultLimit(count)
	if limit == 0 {
		return nil, consts.ErrChat
	}

	texts, err := search(ctx, vector, limit)
	if err != nil {
		log.CtxError(ctx, "向量检索失败: %v", err)
		return nil, consts.ErrChat
	}
	retrievedContext := strings.Join(texts, "")

	history, err := s.ConversationCacheMapper.Get(ctx, conversationKey)
	if err != nil {
		log.CtxError(ctx, "读取历史对话失败: %v", err)
		return nil, consts.ErrChat
	}

	prompt := BuildChatPrompt(query, retrievedContext, history)
	answer, err := s.LLM.ChatCompletion(ctx, "", prompt)
	if err != nil {
		log.CtxError(ctx, "问答调用失败: %v", err)
		return nil, consts.ErrChat
	}

	// 写回有已知的并发竞态，同一范围的并发问答可能互相覆盖
	if err := s.ConversationCacheMapper.Append(ctx, conversationKey, query, answer); err != nil {
		log.CtxError(ctx, "写回历史对话失败: %v", err)
	}

	return &eduhub.ChatResp{Answer: answer}, nil
}

// ResultLimit 检索条数随语料量平方根增长，至少1条
func ResultLimit(embeddingCount int64) int64 {
	if embeddingCount <= 0 {
		return 0
	}
	limit := int64(math.Ceil(math.Sqrt(float64(embeddingCount))))
	if limit < 1 {
		limit = 1
	}
	return limit
}

// BuildChatPrompt 拼装问答提示词并整体做尾部硬截断
func BuildChatPrompt(query, retrievedContext, history string) string {
	history = cache.TruncateTail(history, consts.ConversationWindowChars)

	prompt := fmt.Sprintf(`Instruction: Please provide an informative response to the following question based on the Retrieved Context and the Previous Conversation.

Question: %s

Retrieved Context: %s

Previous Conversation: %s

If the Retrieved Context and the Previous Conversation are not sufficient to answer the question, fall back to your own knowledge and explicitly state that you are doing so.`,
		query, retrievedContext, history)

	// 朴素的尾部截断，上下文过长时最先被挤掉的是检索内容
	return cache.TruncateTail(prompt, consts.PromptMaxChars)
}
