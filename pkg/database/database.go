package database

import (
	"fmt"
	"growthpath_backend/internal/config"
	"growthpath_backend/internal/model"
	"log"

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

	// migrations run in debug mode and on explicit request in release mode
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Questionnaire{},
			&model.AssessmentAssignment{},
			&model.Assessment{},
			&model.AssessmentMessage{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		seedQuestionnaires(db)
	}

	return db, nil
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// seedQuestionnaires installs the default assessment catalog on first boot.
func seedQuestionnaires(db *gorm.DB) {
	var count int64
	db.Model(&model.Questionnaire{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Questionnaire{
		{
			Title:         "آزمون تیپ شخصیتی",
			Description:   "گفتگوی ارزیابی ویژگی‌های شخصیتی",
			Category:      strPtr("شخصیت"),
			MaxScore:      f64Ptr(100),
			DisplayOrder:  1,
			Enabled:       true,
			PromptContext: "شما یک روانشناس ارزیاب هستید. با پرسش‌های کوتاه ویژگی‌های شخصیتی کاربر را بسنجید.",
		},
		{
			Title:         "آزمون هوش و استعداد",
			Description:   "ارزیابی توانایی‌های شناختی و استعدادهای فردی",
			Category:      strPtr("هوش و استعداد"),
			MaxScore:      f64Ptr(100),
			DisplayOrder:  2,
			Enabled:       true,
			PromptContext: "شما یک ارزیاب استعداد هستید. توانایی‌های شناختی کاربر را با پرسش‌های هدفمند بسنجید.",
		},
		{
			Title:         "آزمون رغبت‌سنجی",
			Description:   "شناسایی علاقه‌مندی‌های شغلی و تحصیلی",
			Category:      strPtr("رغبت و علاقه"),
			MaxScore:      f64Ptr(50),
			DisplayOrder:  3,
			Enabled:       true,
			PromptContext: "شما یک مشاور شغلی هستید. علاقه‌مندی‌های کاربر را در گفتگو شناسایی کنید.",
		},
		{
			Title:         "آزمون مهارت‌های نرم",
			Description:   "سنجش مهارت‌های ارتباطی و مدیریتی",
			Category:      strPtr("مهارت‌ها"),
			MaxScore:      f64Ptr(100),
			DisplayOrder:  4,
			Enabled:       true,
			PromptContext: "شما یک ارزیاب منابع انسانی هستید. مهارت‌های نرم کاربر را بسنجید.",
		},
	}

	for _, q := range defaults {
		db.Create(&q)
	}
}
