package config

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"trackly-server/models"
)

// DB is the primary GORM handle.
var DB *gorm.DB

func InitDB() {
	var err error
	DB, err = gorm.Open(mysql.Open(Cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		Log.Fatal().Err(err).Msg("database connect failed")
	}

	// Optional read replica; reads route there, writes stay on the primary.
	if Cfg.Database.ReplicaDSN != "" {
		err = DB.Use(dbresolver.Register(dbresolver.Config{
			Sources:  []gorm.Dialector{mysql.Open(Cfg.Database.DSN)},
			Replicas: []gorm.Dialector{mysql.Open(Cfg.Database.ReplicaDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			Log.Warn().Err(err).Msg("read replica registration failed, using primary only")
		}
	}

	if err := DB.AutoMigrate(&models.User{}, &models.Entity{}, &models.Entry{}); err != nil {
		Log.Fatal().Err(err).Msg("migration failed")
	}

	Log.Info().Msg("database ready")
}
