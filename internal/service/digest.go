package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/avolkov/daily-digest-bot/internal/repository"
)

// Sender delivers a message to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// DigestService owns the scheduled delivery of the daily digest.
type DigestService struct {
	subscribers repository.SubscriberRepository
	sources     *SourceService
	report      *ReportService
	news        *NewsService
	sender      Sender
	logger      zerolog.Logger
}

func NewDigestService(subscribers repository.SubscriberRepository, sources *SourceService, report *ReportService, news *NewsService, sender Sender, logger zerolog.Logger) *DigestService {
	return &DigestService{
		subscribers: subscribers,
		sources:     sources,
		report:      report,
		news:        news,
		sender:      sender,
		logger:      logger,
	}
}

// BuildFor composes the personalized digest for one user: the shared market
// report plus a summary of the user's news channels. When nothing could be
// collected from the channels the base report is returned as is.
func (s *DigestService) BuildFor(ctx context.Context, userID int64, base string) string {
	channels := s.sources.GetSources(ctx, userID)
	items := s.news.Collect(ctx, channels)
	if len(items) == 0 {
		s.logger.Warn().Int64("user_id", userID).Msg("no news collected, sending base report only")
		return base
	}
	return base + "\n\n📰 *Новости:*\n" + s.news.Summarize(ctx, items)
}

// DeliverDaily sends the digest to every subscriber. A failure for one
// recipient is logged and never aborts the batch.
func (s *DigestService) DeliverDaily(ctx context.Context) {
	ids, err := s.subscribers.Snapshot(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load subscribers")
		return
	}
	if len(ids) == 0 {
		s.logger.Info().Msg("no subscribers, skipping daily digest")
		return
	}

	base := s.report.Generate(ctx)
	sent := 0
	for _, id := range ids {
		if err := s.sender.SendMessage(ctx, id, s.BuildFor(ctx, id, base)); err != nil {
			s.logger.Error().Err(err).Int64("chat_id", id).Msg("failed to deliver digest")
			continue
		}
		sent++
	}
	s.logger.Info().Int("sent", sent).Int("subscribers", len(ids)).Msg("daily digest delivered")
}
