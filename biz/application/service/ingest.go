package service

import (
	"context"
	"fmt"

	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/mq"
	"edu-hub/biz/infrastructure/repository/embedding"
	"edu-hub/biz/infrastructure/util"
	"edu-hub/biz/infrastructure/util/extract"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/wire"
)

type IIngestService interface {
	ProcessAttachment(ctx context.Context, payload *mq.PostIngestPayload) error
	ProcessTranscript(ctx context.Context, payload *mq.RecordingTranscriptPayload) error
}

// IngestService 把附件和转写文本切片、向量化并入库
type IngestService struct {
	LLM                      util.LLMClient
	HTTP                     *util.HttpClient
	EmbeddingMapper          *embedding.MongoMapper
	RecordingEmbeddingMapper *embedding.RecordingMongoMapper
	CounterCacheMapper       *cache.CounterCacheMapper
}

var IngestServiceSet = wire.NewSet(
	wire.Struct(new(IngestService), "*"),
	wire.Bind(new(IIngestService), new(*IngestService)),
)

// ProcessAttachment 拉取附件、按MIME类型提取文本并逐片向量化
// 不支持的类型直接失败，由队列按策略重试后放弃
func (s *IngestService) ProcessAttachment(ctx context.Context, payload *mq.PostIngestPayload) error {
	data, err := s.HTTP.FetchBytes(ctx, payload.Url)
	if err != nil {
		return fmt.Errorf("拉取附件失败: %w", err)
	}

	text, err := extract.Text(data, payload.MimeType)
	if err != nil {
		return fmt.Errorf("提取附件文本失败: %w", err)
	}

	docs, err := s.embedChunks(ctx, text, func(chunk string, batchNo int64, vector []float64) *embedding.Embedding {
		return &embedding.Embedding{
			HubID:        payload.HubId,
			PostID:       payload.PostId,
			AttachmentID: payload.AttachmentId,
			BatchNo:      batchNo,
			TextContent:  chunk,
			Embeddings:   vector,
		}
	})
	if err != nil {
		return err
	}

	if err := s.EmbeddingMapper.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("写入向量失败: %w", err)
	}

	countKey := s.CounterCacheMapper.AttachmentEmbeddingsKey(payload.AttachmentId)
	if err := s.CounterCacheMapper.Set(ctx, countKey, int64(len(docs))); err != nil {
		log.CtxError(ctx, "写入向量计数失败: %v", err)
	}

	log.CtxInfo(ctx, "附件 %s 摄取完成，共%d片", payload.AttachmentId, len(docs))
	return nil
}

// ProcessTranscript 拉取转写文本并入库，计数累加而不是覆盖
// 同一房间可能有多段录制，各段的向量都归并到房间名下
func (s *IngestService) ProcessTranscript(ctx context.Context, payload *mq.RecordingTranscriptPayload) error {
	text, err := s.HTTP.FetchText(ctx, payload.TranscriptUrl)
	if err != nil {
		return fmt.Errorf("拉取转写文本失败: %w", err)
	}

	chunks := extract.Chunk(text, consts.ChunkSize)
	docs := make([]*embedding.RecordingEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := s.LLM.EmbedContent(ctx, chunk)
		if err != nil {
			return fmt.Errorf("向量化第%d片失败: %w", i+1, err)
		}
		docs = append(docs, &embedding.RecordingEmbedding{
			RoomID:      payload.RoomId,
			BatchNo:     int64(i + 1),
			TextContent: chunk,
			Embeddings:  vector,
		})
	}

	if err := s.RecordingEmbeddingMapper.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("写入向量失败: %w", err)
	}

	countKey := s.CounterCacheMapper.RoomEmbeddingsKey(payload.RoomId)
	if err := s.CounterCacheMapper.Incr(ctx, countKey, int64(len(docs))); err != nil {
		log.CtxError(ctx, "累加向量计数失败: %v", err)
	}

	log.CtxInfo(ctx, "房间 %s 转写摄取完成，共%d片", payload.RoomId, len(docs))
	return nil
}

// embedChunks 切片并逐片调用向量化服务，批次号从1开始
func (s *IngestService) embedChunks(ctx context.Context, text string,
	build func(chunk string, batchNo int64, vector []float64) *embedding.Embedding) ([]*embedding.Embedding, error) {

	chunks := extract.Chunk(text, consts.ChunkSize)
	docs := make([]*embedding.Embedding, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := s.LLM.EmbedContent(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("向量化第%d片失败: %w", i+1, err)
		}
		docs = append(docs, build(chunk, int64(i+1), vector))
	}
	return docs, nil
}
