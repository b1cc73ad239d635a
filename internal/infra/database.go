package infra

import (
	"fmt"

	"pasteleria/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the full schema, then applies the SQL pieces AutoMigrate cannot express
// (the pgcrypto extension for gen_random_uuid and the quote number sequence).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on PostgreSQL < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("create extension pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.Sucursal{},
		&model.Usuario{},
		&model.TortaBase{},
		&model.Cobertura{},
		&model.Decoracion{},
		&model.ElementoDecorativo{},
		&model.Extra{},
		&model.MiniTorta{},
		&model.Postre{},
		&model.OtroProducto{},
		&model.PrecioPorcionTortaBase{},
		&model.PrecioPorcionCobertura{},
		&model.PrecioPorcionDecoracion{},
		&model.PrecioPorcionMiniTorta{},
		&model.Cotizacion{},
		&model.ItemCotizacion{},
		&model.HistorialEstado{},
		&model.DetalleTorta{},
		&model.ElementoPorTorta{},
		&model.ExtraPorTorta{},
		&model.DecoracionPorTorta{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Quote numbers come from a dedicated sequence so concurrent creates never
	// collide.
	if err := db.Exec(`CREATE SEQUENCE IF NOT EXISTS cotizaciones_numero_seq START 1`).Error; err != nil {
		return fmt.Errorf("create sequence cotizaciones_numero_seq: %w", err)
	}
	return nil
}
