package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeroginaca/threads/internal/database"
	"github.com/jeroginaca/threads/internal/logger"
	"github.com/jeroginaca/threads/internal/seed"
)

var (
	userCount   int
	threadCount int
	replyCount  int
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the threads database with development data",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system environment variables")
		}
		if err := logger.Initialize(os.Getenv("LOG_LEVEL"), "seed.log"); err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
	},
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Seed realistic users, threads, and reply chains",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect()
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		seeder := seed.NewSeeder(db)
		if err := seeder.SeedDev(userCount, threadCount, replyCount); err != nil {
			return err
		}

		logger.Log.Info("database seeded",
			zap.Int("users", userCount),
			zap.Int("threads", threadCount),
			zap.Int("replies", replyCount),
		)
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all seeded data",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect()
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer database.Close(db)

		seeder := seed.NewSeeder(db)
		if err := seeder.Clean(); err != nil {
			return err
		}

		logger.Log.Info("seed data removed")
		return nil
	},
}

func init() {
	devCmd.Flags().IntVar(&userCount, "users", 20, "number of users to create")
	devCmd.Flags().IntVar(&threadCount, "threads", 50, "number of top-level threads to create")
	devCmd.Flags().IntVar(&replyCount, "replies", 100, "number of replies to create")

	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(cleanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
