package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avolkov/daily-digest-bot/internal/model"
)

const (
	newsUnavailableMsg = "Новости недоступны"
	keyMissingMsg      = "API ключ не настроен"
	summaryFailedMsg   = "Ошибка получения сводки новостей"

	summaryTemperature = 0.6
	newsSystemPrompt   = "Ты новостной редактор. Сделай краткую сводку главных новостей " +
		"на русском языке. Выдели ключевые события и темы. Формат: короткие пункты с эмодзи. " +
		"Не добавляй вступление и заключение."
)

// ChannelFeed fetches recent posts from a public channel.
type ChannelFeed interface {
	RecentPosts(ctx context.Context, channel string) ([]string, error)
}

// Completions is the part of the chat-completions client the service uses.
type Completions interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// NewsService collects channel posts and condenses them into a short digest.
// A nil summarizer means no API credential is configured.
type NewsService struct {
	feed       ChannelFeed
	summarizer Completions
	logger     zerolog.Logger
}

func NewNewsService(feed ChannelFeed, summarizer Completions, logger zerolog.Logger) *NewsService {
	return &NewsService{feed: feed, summarizer: summarizer, logger: logger}
}

// Collect fetches recent posts from every channel, preserving channel order.
// A channel that cannot be fetched is logged and contributes nothing.
func (s *NewsService) Collect(ctx context.Context, channels []string) []model.NewsItem {
	var items []model.NewsItem
	for _, channel := range channels {
		posts, err := s.feed.RecentPosts(ctx, channel)
		if err != nil {
			s.logger.Error().Err(err).Str("channel", channel).Msg("failed to fetch channel posts")
			continue
		}
		for _, text := range posts {
			items = append(items, model.NewsItem{Channel: channel, Text: text})
		}
	}
	return items
}

// Summarize condenses the collected items. It degrades to fixed messages
// instead of failing.
func (s *NewsService) Summarize(ctx context.Context, items []model.NewsItem) string {
	if len(items) == 0 {
		return newsUnavailableMsg
	}
	if s.summarizer == nil {
		return keyMissingMsg
	}

	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. [%s] %s\n\n", i+1, item.Channel, item.Text)
	}
	user := "Сделай краткую сводку этих новостей:\n\n" + strings.TrimRight(b.String(), "\n")

	summary, err := s.summarizer.Complete(ctx, newsSystemPrompt, user, summaryTemperature)
	if err != nil {
		s.logger.Error().Err(err).Int("items", len(items)).Msg("summarization failed")
		return summaryFailedMsg
	}
	return summary
}

// Digest is Collect followed by Summarize for the given channels.
func (s *NewsService) Digest(ctx context.Context, channels []string) string {
	return s.Summarize(ctx, s.Collect(ctx, channels))
}
