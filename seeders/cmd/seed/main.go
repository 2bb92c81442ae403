package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"service-order-system/pkg/config"
	"service-order-system/pkg/database/postgresql"
	"service-order-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runAdmin := flag.Bool("admin", false, "Создать учётную запись руководителя (MANAGER)")
	runDemo := flag.Bool("demo", false, "Загрузить демо-техников и заявки")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -admin -demo)")

	flag.Parse()

	if !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		log.Fatalf("❌ Нет соединения с БД: %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.UpMigrations(ctx, dbPool, logger); err != nil {
		log.Fatalf("❌ Ошибка миграций: %v", err)
	}
	log.Println("======================================================")

	if *runAll || *runAdmin {
		seeders.SeedAdmin(ctx, dbPool, cfg)
		log.Println("======================================================")
	}
	if *runAll || *runDemo {
		seeders.SeedDemo(ctx, dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
