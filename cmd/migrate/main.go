package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"gocapacity/config"
	"gocapacity/internal/pkg/database"
	"gocapacity/internal/pkg/logger"
	migrations "gocapacity/sql"
)

// gooseLogger encaminha as mensagens do goose para o logger da aplicação.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(fmt.Sprintf(format, v...), nil)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal("goose", fmt.Errorf(format, v...))
}

func main() {
	dir := flag.String("dir", "", "diretório de migrações no disco (padrão: migrações embutidas)")
	timeout := flag.Duration("timeout", 2*time.Minute, "tempo limite para aplicar as migrações")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "uso: migrate [flags] <up|down|status|version|redo|reset> [args]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	appLog := logger.Named(logger.NewLogger(cfg.LogLevel), "migrate")
	defer logger.Sync(appLog)

	goose.SetLogger(gooseLogger{log: appLog})
	if *dir == "" {
		goose.SetBaseFS(migrations.FS)
		*dir = "."
	}
	if err := goose.SetDialect("postgres"); err != nil {
		appLog.Fatal("Dialeto goose inválido.", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.PoolConfig{MaxOpenConns: 1})
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	command, args := "up", []string(nil)
	if flag.NArg() > 0 {
		command, args = flag.Arg(0), flag.Args()[1:]
	}

	if err := goose.RunContext(ctx, command, db, *dir, args...); err != nil {
		appLog.Error("Migração falhou.", err)
		os.Exit(1)
	}
	appLog.Info("Migração concluída.", map[string]interface{}{"command": command})
}
