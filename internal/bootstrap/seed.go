package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"vitacoin.app/rewardsplatform/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RewardRule{},
		&model.Transaction{},
		&model.Task{},
		&model.CompletedTask{},
		&model.ActivityEvent{},
	)
}

func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@vitacoin.com").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Name:         "Admin",
		Email:        "admin@vitacoin.com",
		PasswordHash: string(hashedPasswordBytes),
		Role:         "admin",
		Coins:        1000,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@vitacoin.com")
	log.Println("   Password: admin123")

	return nil
}

func SeedRewardRules(db *gorm.DB) error {
	cooldown := 24
	defaultRules := []model.RewardRule{
		{Key: "daily_login", Description: "Daily login reward", Points: 10, Active: true, CooldownHours: &cooldown},
		{Key: "task_daily", Description: "Daily task completion", Points: 5, Active: true},
		{Key: "task_weekly", Description: "Weekly task completion", Points: 25, Active: true},
		{Key: "task_achievement", Description: "Achievement task completion", Points: 50, Active: true},
		{Key: "task_special", Description: "Special task completion", Points: 20, Active: true},
	}

	for _, rule := range defaultRules {
		var count int64
		if err := db.Model(&model.RewardRule{}).
			Where("key = ?", rule.Key).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&rule).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedTasks(db *gorm.DB) error {
	defaultTasks := []model.Task{
		{
			Title:       "First Login",
			Description: "Complete your first login to the platform",
			Category:    model.TaskCategoryDaily,
			CoinsReward: 5,
			Difficulty:  "easy",
			Kind:        model.TaskKindLogin,
		},
		{
			Title:           "Profile Explorer",
			Description:     "View your profile and transaction history",
			Category:        model.TaskCategoryDaily,
			CoinsReward:     10,
			Difficulty:      "easy",
			Kind:            model.TaskKindMultiAction,
			RequiredActions: []string{model.ActionProfileViewed, model.ActionTransactionsViewed},
		},
		{
			Title:           "Social Butterfly",
			Description:     "Check the leaderboard and see other players",
			Category:        model.TaskCategoryDaily,
			CoinsReward:     15,
			Difficulty:      "easy",
			Kind:            model.TaskKindMultiAction,
			RequiredActions: []string{model.ActionLeaderboardViewed},
		},
		{
			Title:        "Task Master",
			Description:  "Complete 3 different tasks in one day",
			Category:     model.TaskCategoryWeekly,
			CoinsReward:  50,
			Difficulty:   "medium",
			Kind:         model.TaskKindCountWithinWindow,
			TargetValue:  3,
			WindowAction: model.ActionTaskCompleted,
		},
		{
			Title:       "Coin Collector",
			Description: "Accumulate 100 total coins",
			Category:    model.TaskCategoryAchievement,
			CoinsReward: 25,
			Difficulty:  "medium",
			Kind:        model.TaskKindThreshold,
			TargetValue: 100,
		},
		{
			Title:       "Leaderboard Climber",
			Description: "Reach top 3 on the leaderboard",
			Category:    model.TaskCategoryAchievement,
			CoinsReward: 100,
			Difficulty:  "hard",
		},
		{
			Title:       "Weekly Warrior",
			Description: "Complete daily login for 7 consecutive days",
			Category:    model.TaskCategoryWeekly,
			CoinsReward: 75,
			Difficulty:  "medium",
		},
		{
			Title:       "Community Member",
			Description: "Welcome to the Vitacoin community! Claim this bonus.",
			Category:    model.TaskCategorySpecial,
			CoinsReward: 20,
			Difficulty:  "easy",
		},
	}

	for _, task := range defaultTasks {
		var count int64
		if err := db.Model(&model.Task{}).
			Where("title = ?", task.Title).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			task.Active = true
			if err := db.Create(&task).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
