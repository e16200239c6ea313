package database

import (
	"fmt"
	"log"
	"plugga_backend/internal/catalog"
	"plugga_backend/internal/config"
	"plugga_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release deployments migrate only when asked to.
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Course{},
		&model.Enrollment{},
		&model.QuizExercise{},
		&model.HogskoleprovetQuestion{},
		&model.HogskoleprovetAttempt{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the course catalog from the static program data.
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count == 0 {
		for _, t := range catalog.AllCourses() {
			course := &model.Course{
				Code:    t.Code,
				Name:    t.Name,
				Subject: t.Subject,
				Points:  t.Points,
			}
			db.Create(course)
		}
	}

	return db, nil
}
