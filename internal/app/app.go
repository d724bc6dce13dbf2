package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/avolkov/daily-digest-bot/internal/config"
	"github.com/avolkov/daily-digest-bot/internal/repository"
	"github.com/avolkov/daily-digest-bot/internal/service"
	"github.com/avolkov/daily-digest-bot/pkg/coingecko"
	"github.com/avolkov/daily-digest-bot/pkg/deepseek"
	"github.com/avolkov/daily-digest-bot/pkg/openmeteo"
	"github.com/avolkov/daily-digest-bot/pkg/tgchannel"
	"github.com/avolkov/daily-digest-bot/pkg/tradingeconomics"
	"github.com/avolkov/daily-digest-bot/pkg/vtb"
)

// App wires the Telegram bot, the services and the daily scheduler.
type App struct {
	cfg         *config.Config
	logger      zerolog.Logger
	bot         *tgbot.Bot
	subscribers repository.SubscriberRepository
	sources     *service.SourceService
	report      *service.ReportService
	news        *service.NewsService
	digest      *service.DigestService
}

func New(cfg *config.Config, logger zerolog.Logger, subscribers repository.SubscriberRepository, sourceRepo repository.SourceRepository) (*App, error) {
	a := &App{
		cfg:         cfg,
		logger:      logger,
		subscribers: subscribers,
	}

	a.sources = service.NewSourceService(sourceRepo, logger)
	a.report = service.NewReportService(
		vtb.NewClient(),
		coingecko.NewClient(),
		service.NewMarketService(tradingeconomics.NewClient(), logger),
		openmeteo.NewClient(),
		logger,
	)

	var summarizer service.Completions
	if cfg.DeepSeekAPIKey != "" {
		summarizer = deepseek.NewClient(cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL, cfg.DeepSeekModel)
	} else {
		logger.Warn().Msg("DEEPSEEK_API_KEY is not set, news summarization disabled")
	}
	a.news = service.NewNewsService(tgchannel.NewClient(), summarizer, logger)

	b, err := tgbot.New(cfg.TelegramToken, tgbot.WithDefaultHandler(a.handleDefault))
	if err != nil {
		return nil, err
	}
	a.bot = b
	a.registerHandlers()

	a.digest = service.NewDigestService(subscribers, a.sources, a.report, a.news, a, logger)
	return a, nil
}

// SendMessage implements service.Sender.
func (a *App) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := a.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	return err
}

// Run starts update polling and the daily scheduler and blocks until the
// context is cancelled or an interrupt arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.setCommands(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.runScheduler(ctx)
	}()

	a.logger.Info().
		Int("hour", a.cfg.ReportHour).
		Int("minute", a.cfg.ReportMinute).
		Msg("bot started")

	a.bot.Start(ctx)
	wg.Wait()
	return nil
}

func (a *App) setCommands(ctx context.Context) {
	_, err := a.bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "Подписаться на ежедневные сводки"},
			{Command: "report", Description: "Получить сводку сейчас"},
			{Command: "news", Description: "Сводка новостей"},
			{Command: "sources", Description: "Мои источники новостей"},
			{Command: "addsource", Description: "Добавить источник"},
			{Command: "removesource", Description: "Удалить источник"},
			{Command: "resetsources", Description: "Сбросить источники"},
			{Command: "stop", Description: "Отписаться"},
			{Command: "help", Description: "Справка"},
		},
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to set bot commands")
	}
}
