package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/2beens/fitplan/internal/db"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	migrationsDir := flag.String("dir", "./migrations", "path for the SQL migrations directory")
	dbHost := flag.String("host", "localhost", "postgres host")
	dbPort := flag.String("port", "5432", "postgres port")
	dbName := flag.String("db", "fitplan", "postgres database name")
	dbUser := flag.String("user", "postgres", "postgres user")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debugln("no .env file found")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		dbURL = db.ConnString(db.NewDBPoolParams{
			DBHost:     *dbHost,
			DBPort:     *dbPort,
			DBName:     *dbName,
			DBUser:     *dbUser,
			DBPassword: os.Getenv("FITPLAN_POSTGRES_PASS"),
		}) + "?sslmode=disable"
	}

	absMigrationsDir, err := filepath.Abs(*migrationsDir)
	if err != nil {
		log.Fatalf("migrations dir: %s", err)
	}

	m, err := migrate.New("file://"+absMigrationsDir, dbURL)
	if err != nil {
		log.Fatalf("new migrate: %s", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Errorf("close migrate: source: %v, db: %v", srcErr, dbErr)
		}
	}()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatalf("unknown command: %s (use up | down)", cmd)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migrate %s: %s", cmd, err)
	}

	log.Infof("migrate %s done", cmd)
}
