// migrate aplica o revierte el esquema embebido en migrations/.
//
// Uso: go run ./cmd/migrate [up|down|version|force N]
// Toma la conexión de DATABASE_URL o de DB_HOST, DB_PORT, etc.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/DenisZev/wildberries-bot/internal/infrastructure/postgres"
	"github.com/DenisZev/wildberries-bot/pkg/config"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.DB.Enabled() {
		fmt.Fprintln(os.Stderr, "Defina DATABASE_URL o DB_HOST")
		os.Exit(1)
	}

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migrador: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Uso: migrate force <versión>")
			os.Exit(2)
		}
		v, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			fmt.Fprintf(os.Stderr, "Versión inválida: %v\n", convErr)
			os.Exit(2)
		}
		err = m.Force(v)
	case "version":
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q (up|down|version|force N)\n", cmd)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", cmd, err)
		os.Exit(1)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("Sin migraciones aplicadas")
	case err != nil:
		fmt.Fprintf(os.Stderr, "Versión: %v\n", err)
		os.Exit(1)
	default:
		fmt.Printf("Versión %d (dirty=%t)\n", version, dirty)
	}
}
