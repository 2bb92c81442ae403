package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-order-system/pkg/constants"
)

func seedTechnicians(ctx context.Context, db *pgxpool.Pool) ([]uuid.UUID, error) {
	log.Println("  - Наполнение техников...")

	ids := make([]uuid.UUID, 0, len(demoTechnicians))
	for _, t := range demoTechnicians {
		var id uuid.UUID
		err := db.QueryRow(ctx, "SELECT id FROM technicians WHERE name = $1", t.Name).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			err = db.QueryRow(ctx,
				"INSERT INTO technicians (id, name, specialty) VALUES ($1, $2, $3) RETURNING id",
				uuid.New(), t.Name, t.Specialty,
			).Scan(&id)
		}
		if err != nil {
			return nil, fmt.Errorf("техник %q: %w", t.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedOrders(ctx context.Context, db *pgxpool.Pool, technicians []uuid.UUID) error {
	log.Println("  - Наполнение заявок...")

	now := time.Now()
	batch := &pgx.Batch{}
	for _, o := range demoOrders {
		openedAt := now.AddDate(0, 0, -o.AgeDays)

		var technicianID *uuid.UUID
		if o.Technician >= 0 && o.Technician < len(technicians) {
			technicianID = &technicians[o.Technician]
		}

		var closedAt, invoicedAt *time.Time
		if constants.IsFinalStatus(o.Status) || o.Status == constants.StatusCompleted {
			closed := openedAt.AddDate(0, 0, o.AgeDays/2)
			closedAt = &closed
		}
		if o.Status == constants.StatusInvoiced {
			invoicedAt = closedAt
		}

		batch.Queue(`INSERT INTO service_orders
			(id, order_number, type, status, opened_at, closed_at, invoiced_at, technician_id,
			 client_name, machine_model, chassis, labor_value, parts_value, travel_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (order_number) DO NOTHING`,
			uuid.New(), o.Number, string(o.Type), string(o.Status), openedAt, closedAt, invoicedAt, technicianID,
			o.Client, o.Machine, o.Chassis, mustDecimal(o.Labor), mustDecimal(o.Parts), mustDecimal(o.Travel),
		)
	}

	results := db.SendBatch(ctx, batch)
	defer results.Close()
	for _, o := range demoOrders {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("заявка %s: %w", o.Number, err)
		}
	}
	return nil
}
