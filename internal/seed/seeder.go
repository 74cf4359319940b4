// Package seed populates the database with realistic development data.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jeroginaca/threads/internal/logger"
	"github.com/jeroginaca/threads/internal/models"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev fills the database with users, threads, and reply chains sized for
// local development.
func (s *Seeder) SeedDev(userCount, threadCount, replyCount int) error {
	logger.Log.Info("creating users", zap.Int("count", userCount))
	users, err := s.seedUsers(userCount)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Log.Info("creating threads", zap.Int("count", threadCount))
	threads, err := s.seedThreads(users, threadCount)
	if err != nil {
		return fmt.Errorf("failed to seed threads: %w", err)
	}

	logger.Log.Info("creating replies", zap.Int("count", replyCount))
	if err := s.seedReplies(users, threads, replyCount); err != nil {
		return fmt.Errorf("failed to seed replies: %w", err)
	}

	return nil
}

// Clean removes every seeded row. Replies go first so parent references
// never dangle mid-delete.
func (s *Seeder) Clean() error {
	if err := s.db.Where("parent_id IS NOT NULL").Delete(&models.Thread{}).Error; err != nil {
		return fmt.Errorf("failed to delete replies: %w", err)
	}
	if err := s.db.Where("1 = 1").Delete(&models.Thread{}).Error; err != nil {
		return fmt.Errorf("failed to delete threads: %w", err)
	}
	if err := s.db.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	for i := 0; i < count; i++ {
		// Suffix keeps generated usernames unique across runs
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)))

		user := models.User{
			ID:         uuid.New().String(),
			ExternalID: fmt.Sprintf("seed_%s", gofakeit.UUID()),
			Username:   username,
			Name:       gofakeit.Name(),
			Bio:        gofakeit.Sentence(12),
			Image:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
			Onboarded:  true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (s *Seeder) seedThreads(users []models.User, count int) ([]models.Thread, error) {
	threads := make([]models.Thread, 0, count)

	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		thread := models.Thread{
			ID:       uuid.New().String(),
			Text:     gofakeit.Paragraph(1, 3, 12, " "),
			AuthorID: author.ID,
		}
		if err := s.db.Create(&thread).Error; err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}

	return threads, nil
}

func (s *Seeder) seedReplies(users []models.User, threads []models.Thread, count int) error {
	// Replies can land on earlier replies too, producing multi-level trees
	targets := make([]models.Thread, len(threads))
	copy(targets, threads)

	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		parent := targets[rand.Intn(len(targets))]

		reply := models.Thread{
			ID:       uuid.New().String(),
			Text:     gofakeit.Sentence(10),
			AuthorID: author.ID,
			ParentID: &parent.ID,
		}
		if err := s.db.Create(&reply).Error; err != nil {
			return err
		}
		targets = append(targets, reply)
	}

	return nil
}
