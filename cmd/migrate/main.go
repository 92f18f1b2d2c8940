// Command migrate applies the schema to a target database. Two modes:
//
//	migrate -offline            emit the full DDL script to stdout (or -out)
//	migrate                     connect and apply pending migrations
//
// Connection parameters come from the environment (or a .env file), the same
// DB_* variables the API server uses.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dukalink/duka_api/internal/config"
	"github.com/dukalink/duka_api/internal/database"
	"github.com/dukalink/duka_api/internal/migrations"
	"github.com/dukalink/duka_api/internal/models"
)

func main() {
	offline := flag.Bool("offline", false, "emit the migration script instead of applying it")
	out := flag.String("out", "-", "offline mode output file, '-' for stdout")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	registry := models.NewRegistry()

	if *offline {
		if err := runOffline(registry, *out); err != nil {
			log.Error().Err(err).Msg("offline migration failed")
			fmt.Fprintf(os.Stderr, "offline migration failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runOnline(registry); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")
}

// runOffline renders the transactional DDL script without touching any
// database, for review or manual application.
func runOffline(registry *models.SchemaRegistry, out string) error {
	script, err := migrations.Script(registry)
	if err != nil {
		return err
	}

	if out == "-" || out == "" {
		_, err = os.Stdout.WriteString(script)
		return err
	}
	return os.WriteFile(out, []byte(script), 0o644)
}

// runOnline connects once and applies all pending migrations. The driver
// runs each migration in a transaction, so a failure rolls back cleanly.
func runOnline(registry *models.SchemaRegistry) error {
	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrations.Apply(db.DB, registry)
}
