package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pharmalitics/backend/internal/infrastructure/config"
	"github.com/pharmalitics/backend/internal/infrastructure/logger"
	"github.com/pharmalitics/backend/internal/infrastructure/migration"
	"github.com/pharmalitics/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		drop = flag.Bool("drop", false, "drop all tables instead of migrating")
		yes  = flag.Bool("yes", false, "skip confirmation for destructive operations")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	migrator := migration.New(db.DB, log)

	if *drop {
		if cfg.App.Env == "production" {
			log.Fatal("Refusing to drop tables in production")
		}
		if !*yes {
			fmt.Print("This drops ALL tables. Type 'yes' to continue: ")
			var answer string
			if _, err := fmt.Scanln(&answer); err != nil || answer != "yes" {
				fmt.Println("Aborted")
				return
			}
		}
		if err := migrator.Drop(); err != nil {
			log.Fatal("Drop failed", zap.Error(err))
		}
		log.Info("All tables dropped")
		return
	}

	if err := migrator.Up(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Migration complete")
}
