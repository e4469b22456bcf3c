package database

import (
	"fmt"
	"log"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbc := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.DBName,
		dbc.Charset,
		dbc.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Schema migration runs automatically outside release mode; in release mode
	// it must be requested explicitly with -migrate or -migrate-only.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.Role{},
			&model.User{},
			&model.Topic{},
			&model.Question{},
			&model.Exam{},
			&model.ExamSession{},
			&model.ExamSessionAnswer{},
			&model.Comment{},
			&model.ContactMessage{},
		)
		if err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	// Default roles. Role assignment validates against these rows.
	var roleCount int64
	db.Model(&model.Role{}).Count(&roleCount)
	if roleCount == 0 {
		for _, name := range []string{model.RoleAdmin, model.RoleUser} {
			db.Create(&model.Role{Name: name})
		}
	}

	return db, nil
}
