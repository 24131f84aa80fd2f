package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"quiz-console/internal/config"
	"quiz-console/internal/logger"
	"quiz-console/internal/repository"
	"quiz-console/internal/seed"
	"quiz-console/internal/service"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const defaultSeedFile = "configs/seed_data/questions.yaml"

func main() {
	seedFile := flag.String("file", defaultSeedFile, "YAML file with sections, themes and questions")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		// logger is not initialized yet
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting question seeding", zap.String("file", *seedFile), zap.String("bank", cfg.Storage.QuestionsPath))

	fs := afero.NewOsFs()
	f, err := fs.Open(*seedFile)
	if err != nil {
		log.Fatal("Failed to open seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	doc, err := seed.Load(f)
	f.Close()
	if err != nil {
		log.Fatal("Failed to parse seed file", zap.String("path", *seedFile), zap.Error(err))
	}

	repo := repository.NewJSONQuestionBankRepository(fs, cfg.Storage.QuestionsPath)
	bank, err := service.NewQuestionBankService(repo, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		log.Fatal("Failed to load question bank", zap.Error(err))
	}

	result, err := seed.Apply(bank, doc)
	if err != nil {
		log.Error("Seeding stopped", zap.Error(err))
	}
	log.Info("Question seeding completed",
		zap.Int("groups_added", result.GroupsAdded),
		zap.Int("groups_skipped", result.GroupsSkipped),
		zap.Int("questions", result.Questions),
		zap.Int("last_id", bank.LastID()))
	if err != nil {
		logger.Sync()
		os.Exit(1)
	}
}
