package main

import (
	"context"
	"log"

	"github.com/avolkov/daily-digest-bot/internal/app"
	"github.com/avolkov/daily-digest-bot/internal/config"
	"github.com/avolkov/daily-digest-bot/internal/logger"
	"github.com/avolkov/daily-digest-bot/internal/repository"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New(cfg.LogLevel)

	var (
		subscribers repository.SubscriberRepository
		sources     repository.SourceRepository
	)
	if cfg.DBConnString != "" {
		subscribers, err = repository.NewPostgresSubscriberRepository(cfg.DBConnString)
		if err != nil {
			log.Fatal(err)
		}
		sources, err = repository.NewPostgresSourceRepository(cfg.DBConnString)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		subscribers, err = repository.NewFileSubscriberRepository(cfg.SubscribersFile)
		if err != nil {
			log.Fatal(err)
		}
		sources, err = repository.NewFileSourceRepository(cfg.SourcesFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	application, err := app.New(cfg, logg, subscribers, sources)
	if err != nil {
		log.Fatal(err)
	}
	if err := application.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
