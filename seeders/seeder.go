package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-order-system/pkg/config"
)

// SeedAdmin создаёт учётную запись руководителя (MANAGER) и печатает токен для отладки.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) {
	log.Println("▶️  Запуск создания администратора...")

	if err := seedManager(ctx, db, cfg); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Администратор готов!")
}

// SeedDemo наполняет БД техниками и заявками во всех статусах.
func SeedDemo(ctx context.Context, db *pgxpool.Pool) {
	log.Println("▶️  Запуск наполнения демо-данными...")

	technicians, err := seedTechnicians(ctx, db)
	if err != nil {
		log.Fatalf("❌ Ошибка наполнения Техников: %v", err)
	}
	if err := seedOrders(ctx, db, technicians); err != nil {
		log.Fatalf("❌ Ошибка наполнения Заявок: %v", err)
	}
	log.Println("✅ Демо-данные загружены!")
}
