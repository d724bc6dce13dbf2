package service

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avolkov/daily-digest-bot/internal/repository"
)

// MaxSources caps how many channels a user may follow.
const MaxSources = 5

var (
	ErrInvalidFormat = errors.New("invalid source format")
	ErrLimitExceeded = errors.New("source limit exceeded")
	ErrDuplicate     = errors.New("source already added")
	ErrNotFound      = errors.New("source not found")
)

var (
	channelURLRe  = regexp.MustCompile(`t\.me/(?:s/)?([A-Za-z0-9_]+)`)
	channelNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// DefaultSources returns the channel list used for users without their own.
func DefaultSources() []string {
	return []string{"rbc_news"}
}

// ExtractChannelName normalizes a user-supplied channel reference into a bare
// channel name. Accepted forms: https://t.me/s/name, https://t.me/name,
// t.me/name, @name and a bare name. Returns "" when nothing matches.
func ExtractChannelName(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := channelURLRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if name, ok := strings.CutPrefix(raw, "@"); ok && channelNameRe.MatchString(name) {
		return name
	}
	if channelNameRe.MatchString(raw) {
		return raw
	}
	return ""
}

// SourceService manages per-user news channel lists.
type SourceService struct {
	repo   repository.SourceRepository
	logger zerolog.Logger
}

func NewSourceService(repo repository.SourceRepository, logger zerolog.Logger) *SourceService {
	return &SourceService{repo: repo, logger: logger}
}

// GetSources returns the user's channel list or the default one. It never
// fails: a repository error degrades to the default list.
func (s *SourceService) GetSources(ctx context.Context, userID int64) []string {
	channels, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to load sources")
		}
		return DefaultSources()
	}
	return channels
}

// AddSource normalizes the reference and appends it to the user's list. The
// canonical channel name is returned whenever normalization succeeded, even
// alongside ErrDuplicate.
func (s *SourceService) AddSource(ctx context.Context, userID int64, raw string) (string, error) {
	channel := ExtractChannelName(raw)
	if channel == "" {
		return "", ErrInvalidFormat
	}

	channels, err := s.repo.Get(ctx, userID)
	if errors.Is(err, os.ErrNotExist) {
		channels = DefaultSources()
	} else if err != nil {
		return channel, err
	}

	if len(channels) >= MaxSources {
		return channel, ErrLimitExceeded
	}
	for _, c := range channels {
		if c == channel {
			return channel, ErrDuplicate
		}
	}

	channels = append(channels, channel)
	if err := s.repo.Save(ctx, userID, channels); err != nil {
		return channel, err
	}
	return channel, nil
}

// RemoveSource deletes the channel from the user's list. Removing the last
// entry resets the list to the default so it is never empty.
func (s *SourceService) RemoveSource(ctx context.Context, userID int64, channel string) error {
	channels, err := s.repo.Get(ctx, userID)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	kept := channels[:0]
	for _, c := range channels {
		if c != channel {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(channels) {
		return ErrNotFound
	}
	if len(kept) == 0 {
		kept = DefaultSources()
	}
	return s.repo.Save(ctx, userID, kept)
}

// ClearSources resets the user's list to the default.
func (s *SourceService) ClearSources(ctx context.Context, userID int64) error {
	return s.repo.Save(ctx, userID, DefaultSources())
}
