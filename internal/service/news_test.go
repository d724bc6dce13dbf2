package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avolkov/daily-digest-bot/internal/model"
)

type stubFeed struct {
	posts map[string][]string
	errs  map[string]error
}

func (s stubFeed) RecentPosts(ctx context.Context, channel string) ([]string, error) {
	if err := s.errs[channel]; err != nil {
		return nil, err
	}
	return s.posts[channel], nil
}

type countingCompletions struct {
	calls    int
	lastUser string
	reply    string
	err      error
}

func (c *countingCompletions) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	c.calls++
	c.lastUser = user
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func TestNewsService_Collect(t *testing.T) {
	feed := stubFeed{
		posts: map[string][]string{"second": {"пост один", "пост два"}},
		errs:  map[string]error{"first": errors.New("503")},
	}
	svc := NewNewsService(feed, nil, zerolog.Nop())

	items := svc.Collect(context.Background(), []string{"first", "second"})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Channel != "second" || items[0].Text != "пост один" {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if items[1].Text != "пост два" {
		t.Fatalf("unexpected second item %+v", items[1])
	}
}

func TestNewsService_SummarizeEmpty(t *testing.T) {
	ai := &countingCompletions{reply: "сводка"}
	svc := NewNewsService(stubFeed{}, ai, zerolog.Nop())

	got := svc.Summarize(context.Background(), nil)
	if got != "Новости недоступны" {
		t.Fatalf("unexpected message %q", got)
	}
	if ai.calls != 0 {
		t.Fatalf("summarizer called %d times for empty input", ai.calls)
	}
}

func TestNewsService_SummarizeNoCredential(t *testing.T) {
	svc := NewNewsService(stubFeed{}, nil, zerolog.Nop())

	got := svc.Summarize(context.Background(), []model.NewsItem{{Channel: "rbc_news", Text: "что-то"}})
	if got != "API ключ не настроен" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestNewsService_Summarize(t *testing.T) {
	ai := &countingCompletions{reply: "• главное событие"}
	svc := NewNewsService(stubFeed{}, ai, zerolog.Nop())

	items := []model.NewsItem{
		{Channel: "rbc_news", Text: "первая новость"},
		{Channel: "meduzalive", Text: "вторая новость"},
	}
	got := svc.Summarize(context.Background(), items)
	if got != "• главное событие" {
		t.Fatalf("unexpected summary %q", got)
	}
	if ai.calls != 1 {
		t.Fatalf("expected 1 call, got %d", ai.calls)
	}
	if !strings.Contains(ai.lastUser, "1. [rbc_news] первая новость") ||
		!strings.Contains(ai.lastUser, "2. [meduzalive] вторая новость") {
		t.Fatalf("items not numbered and tagged in prompt:\n%s", ai.lastUser)
	}
}

func TestNewsService_SummarizeFailure(t *testing.T) {
	ai := &countingCompletions{err: errors.New("429")}
	svc := NewNewsService(stubFeed{}, ai, zerolog.Nop())

	got := svc.Summarize(context.Background(), []model.NewsItem{{Channel: "rbc_news", Text: "что-то"}})
	if got != "Ошибка получения сводки новостей" {
		t.Fatalf("unexpected message %q", got)
	}
}
