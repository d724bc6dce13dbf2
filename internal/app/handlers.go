package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/avolkov/daily-digest-bot/internal/service"
)

const removeSourcePrefix = "rmsrc:"

const helpText = `Ежедневный дайджест: курсы валют, крипта, котировки, погода и новости.

/start — подписаться на ежедневную рассылку
/stop — отписаться
/report — получить сводку сейчас
/news — сводка новостей по вашим источникам
/sources — список ваших источников
/addsource <канал> — добавить источник (ссылка, @имя или имя канала)
/removesource — удалить источник
/resetsources — сбросить источники к стандартным`

func (a *App) registerHandlers() {
	b := a.bot
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, a.handleStart)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/stop", tgbot.MatchTypeExact, a.handleStop)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/report", tgbot.MatchTypeExact, a.handleReport)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/news", tgbot.MatchTypeExact, a.handleNews)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/sources", tgbot.MatchTypeExact, a.handleSources)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/addsource", tgbot.MatchTypePrefix, a.handleAddSource)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/removesource", tgbot.MatchTypeExact, a.handleRemoveSource)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/resetsources", tgbot.MatchTypeExact, a.handleResetSources)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypeExact, a.handleHelp)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, removeSourcePrefix, tgbot.MatchTypePrefix, a.handleRemoveSourceCallback)
}

func (a *App) reply(ctx context.Context, chatID int64, text string) {
	if _, err := a.bot.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func (a *App) scheduleHint() string {
	return fmt.Sprintf("📅 Рассылка в %02d:%02d МСК\n/report — получить сводку сейчас\n/stop — отписаться",
		a.cfg.ReportHour, a.cfg.ReportMinute)
}

func (a *App) handleStart(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	subscribed, err := a.subscribers.Contains(ctx, chatID)
	if err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("subscription check failed")
		a.reply(ctx, chatID, "❌ Произошла ошибка, попробуйте позже")
		return
	}
	if subscribed {
		a.reply(ctx, chatID, "✅ Вы уже подписаны на ежедневные сводки.\n\n"+a.scheduleHint())
		return
	}
	if err := a.subscribers.Add(ctx, chatID); err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to subscribe")
		a.reply(ctx, chatID, "❌ Произошла ошибка, попробуйте позже")
		return
	}
	a.logger.Info().Int64("chat_id", chatID).Msg("new subscriber")
	a.reply(ctx, chatID, "👋 Привет! Вы подписались на ежедневные сводки.\n\n"+a.scheduleHint())
}

func (a *App) handleStop(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	subscribed, err := a.subscribers.Contains(ctx, chatID)
	if err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("subscription check failed")
		a.reply(ctx, chatID, "❌ Произошла ошибка, попробуйте позже")
		return
	}
	if !subscribed {
		a.reply(ctx, chatID, "Вы не были подписаны.\n/start — подписаться")
		return
	}
	if err := a.subscribers.Remove(ctx, chatID); err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to unsubscribe")
		a.reply(ctx, chatID, "❌ Произошла ошибка, попробуйте позже")
		return
	}
	a.logger.Info().Int64("chat_id", chatID).Msg("subscriber left")
	a.reply(ctx, chatID, "🔕 Вы отписались от ежедневных сводок.\n/start — подписаться снова")
}

func (a *App) handleReport(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	a.reply(ctx, chatID, "⏳ Собираю данные...")

	base := a.report.Generate(ctx)
	text := a.digest.BuildFor(ctx, chatID, base)
	if err := a.SendMessage(ctx, chatID, text); err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send report")
		a.reply(ctx, chatID, "❌ Ошибка при получении данных")
	}
}

func (a *App) handleNews(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	a.reply(ctx, chatID, "⏳ Собираю новости...")

	summary := a.news.Digest(ctx, a.sources.GetSources(ctx, chatID))
	if err := a.SendMessage(ctx, chatID, "📰 *Новости:*\n"+summary); err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send news digest")
		a.reply(ctx, chatID, "❌ Ошибка при получении новостей")
	}
}

func (a *App) handleSources(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	var sb strings.Builder
	sb.WriteString("📋 Ваши источники новостей:\n")
	for i, channel := range a.sources.GetSources(ctx, chatID) {
		fmt.Fprintf(&sb, "%d. @%s\n", i+1, channel)
	}
	sb.WriteString("\n/addsource — добавить\n/removesource — удалить")
	a.reply(ctx, chatID, sb.String())
}

func (a *App) handleAddSource(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/addsource"))
	if arg == "" {
		a.reply(ctx, chatID, "Укажите канал: /addsource https://t.me/s/channel или /addsource @channel")
		return
	}

	channel, err := a.sources.AddSource(ctx, chatID, arg)
	switch {
	case errors.Is(err, service.ErrInvalidFormat):
		a.reply(ctx, chatID, "Неверный формат. Используйте: https://t.me/s/channel или @channel")
	case errors.Is(err, service.ErrLimitExceeded):
		a.reply(ctx, chatID, fmt.Sprintf("Максимум %d источников. Удалите лишние через /removesource", service.MaxSources))
	case errors.Is(err, service.ErrDuplicate):
		a.reply(ctx, chatID, fmt.Sprintf("Канал @%s уже добавлен", channel))
	case err != nil:
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to add source")
		a.reply(ctx, chatID, "❌ Не удалось добавить источник")
	default:
		a.reply(ctx, chatID, fmt.Sprintf("Канал @%s добавлен", channel))
	}
}

func (a *App) handleRemoveSource(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	channels := a.sources.GetSources(ctx, chatID)
	keyboard := make([][]models.InlineKeyboardButton, 0, len(channels))
	for _, channel := range channels {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: "@" + channel, CallbackData: removeSourcePrefix + channel},
		})
	}

	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Выберите канал для удаления:",
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: keyboard},
	})
	if err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send source keyboard")
	}
}

func (a *App) handleRemoveSourceCallback(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil {
		return
	}
	channel := strings.TrimPrefix(cb.Data, removeSourcePrefix)
	userID := cb.From.ID

	if _, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: cb.ID}); err != nil {
		a.logger.Error().Err(err).Int64("chat_id", userID).Msg("failed to answer callback")
	}

	err := a.sources.RemoveSource(ctx, userID, channel)
	switch {
	case errors.Is(err, service.ErrNotFound):
		a.reply(ctx, userID, fmt.Sprintf("Канал @%s не найден в вашем списке", channel))
	case err != nil:
		a.logger.Error().Err(err).Int64("chat_id", userID).Msg("failed to remove source")
		a.reply(ctx, userID, "❌ Не удалось удалить источник")
	default:
		a.reply(ctx, userID, fmt.Sprintf("Канал @%s удалён", channel))
	}
}

func (a *App) handleResetSources(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	if err := a.sources.ClearSources(ctx, chatID); err != nil {
		a.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to reset sources")
		a.reply(ctx, chatID, "❌ Не удалось сбросить источники")
		return
	}
	a.reply(ctx, chatID, "Источники сброшены к стандартным")
}

func (a *App) handleHelp(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	a.reply(ctx, update.Message.Chat.ID, helpText)
}

func (a *App) handleDefault(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	a.reply(ctx, update.Message.Chat.ID, "🤖 Используйте команды для взаимодействия с ботом. Напишите /help для списка команд.")
}
