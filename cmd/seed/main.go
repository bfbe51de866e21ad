// Comando seed: pobla los datos maestros mínimos (categorías, productos,
// bodegas, usuarios) para levantar un entorno de desarrollo. El ledger no
// administra estos catálogos, así que sin seed no hay contra qué operar.
// Es idempotente: correrlo dos veces no duplica filas.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodegas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodegas-api/pkg/config"
	"github.com/jhoicas/bodegas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryID := uuid.NewString()
	_, err = pool.Exec(ctx, `
		INSERT INTO categories (id, name) VALUES ($1, 'Ferretería')
		ON CONFLICT (name) DO NOTHING`, categoryID)
	if err != nil {
		log.Fatal().Err(err).Msg("seed categorías")
	}

	products := []struct {
		sku, name string
	}{
		{"SKU-0001", "Tornillo 3mm"},
		{"SKU-0002", "Tuerca 3mm"},
		{"SKU-0003", "Arandela plana"},
	}
	for _, p := range products {
		_, err = pool.Exec(ctx, `
			INSERT INTO products (id, sku, name, category_id)
			SELECT $1, $2, $3, c.id FROM categories c WHERE c.name = 'Ferretería'
			ON CONFLICT (sku) DO NOTHING`, uuid.NewString(), p.sku, p.name)
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("seed productos")
		}
	}

	for _, name := range []string{"Bodega Norte", "Bodega Sur"} {
		_, err = pool.Exec(ctx, `
			INSERT INTO warehouses (id, name) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`, uuid.NewString(), name)
		if err != nil {
			log.Fatal().Err(err).Str("warehouse", name).Msg("seed bodegas")
		}
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email) VALUES ($1, 'Operador Demo', 'operador@example.com')
		ON CONFLICT (email) DO NOTHING`, uuid.NewString())
	if err != nil {
		log.Fatal().Err(err).Msg("seed usuarios")
	}

	// Saldo inicial por producto en Bodega Norte. El saldo sembrado antecede
	// al ledger: no lleva entrada de auditoría.
	initial := decimal.NewFromInt(100)
	rows, err := pool.Query(ctx, `SELECT id FROM products ORDER BY sku`)
	if err != nil {
		log.Fatal().Err(err).Msg("leer productos")
	}
	var productIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			log.Fatal().Err(err).Msg("scan producto")
		}
		productIDs = append(productIDs, id)
	}
	rows.Close()

	for _, productID := range productIDs {
		_, err = pool.Exec(ctx, `
			INSERT INTO stock (product_id, warehouse_id, quantity)
			SELECT $1, w.id, $2 FROM warehouses w WHERE w.name = 'Bodega Norte'
			ON CONFLICT (product_id, warehouse_id) DO NOTHING`,
			productID, initial)
		if err != nil {
			log.Fatal().Err(err).Str("product", productID).Msg("seed stock")
		}
	}

	log.Info().
		Int("products", len(productIDs)).
		Str("initial_quantity", initial.String()).
		Msg("seed aplicado")
}
