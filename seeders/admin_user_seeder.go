package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-order-system/internal/authz"
	"service-order-system/pkg/config"
	"service-order-system/pkg/service"
	"service-order-system/pkg/utils"
)

func seedManager(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	email := strings.ToLower(cfg.Seed.AdminEmail)
	log.Printf("  - Создание пользователя %q...", email)

	var userID uuid.UUID
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	switch {
	case err == nil:
		log.Println("    - Пользователь уже существует. Пропускаем.")
	case errors.Is(err, pgx.ErrNoRows):
		hashedPassword, err := utils.HashPassword(cfg.Seed.AdminPassword)
		if err != nil {
			return err
		}
		err = db.QueryRow(ctx,
			`INSERT INTO users (id, fio, email, role, password) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			uuid.New(), cfg.Seed.AdminName, email, string(authz.RoleManager), hashedPassword,
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("не удалось создать пользователя: %w", err)
		}
		log.Println("    - Пользователь создан.")
	default:
		return fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	token, err := jwtSvc.GenerateToken(userID.String(), string(authz.RoleManager))
	if err != nil {
		return fmt.Errorf("не удалось выпустить токен: %w", err)
	}
	log.Printf("    - Токен для отладки (%s): %s", cfg.JWT.AccessTokenTTL, token)
	return nil
}
