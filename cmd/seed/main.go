// seed puebla la base con datos de demostración: un usuario, unos artículos de
// inventario y un par de ventas. Pensado para entornos de desarrollo.
//
// Uso: go run ./cmd/seed
// Requiere la misma configuración de DB que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tradetrack-api/internal/application/auth"
	"github.com/jhoicas/tradetrack-api/internal/application/dto"
	"github.com/jhoicas/tradetrack-api/internal/application/inventory"
	"github.com/jhoicas/tradetrack-api/internal/application/sales"
	"github.com/jhoicas/tradetrack-api/internal/domain"
	"github.com/jhoicas/tradetrack-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tradetrack-api/pkg/config"
	"github.com/jhoicas/tradetrack-api/pkg/logger"
)

const (
	demoEmail    = "demo@tradetrack.local"
	demoPassword = "demo-password-123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	itemUC := inventory.NewItemUseCase(txRunner, itemRepo)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, itemRepo, sales.DeleteHistoricalOnly)

	// Usuario demo (idempotente: si ya existe se reutiliza).
	var ownerID string
	user, err := authUC.RegisterUser(dto.RegisterRequest{Email: demoEmail, Password: demoPassword, Name: "Demo"})
	switch {
	case err == nil:
		ownerID = user.ID
		log.Info().Str("email", demoEmail).Msg("usuario demo creado")
	case err == domain.ErrEmailAlreadyExists:
		existing, ferr := userRepo.FindByEmail(demoEmail)
		if ferr != nil || existing == nil {
			log.Fatal().Err(ferr).Msg("recuperar usuario demo existente")
		}
		ownerID = existing.ID
		log.Info().Str("email", demoEmail).Msg("usuario demo ya existía")
	default:
		log.Fatal().Err(err).Msg("crear usuario demo")
	}

	// Artículos de ejemplo. Volver a correr el seed fusiona los lotes con
	// costo promedio ponderado, igual que la API.
	sellingUnit := "botella"
	factor := decimal.NewFromInt(24)
	sellPrice := decimal.NewFromFloat(2.5)
	batches := []dto.AddStockRequest{
		{
			ItemName:  "Arroz",
			Quantity:  decimal.NewFromInt(50),
			Price:     decimal.NewFromFloat(1.20),
			StockUnit: "kg",
		},
		{
			ItemName:            "Gaseosa",
			Quantity:            decimal.NewFromInt(10),
			Price:               decimal.NewFromInt(18),
			StockUnit:           "caja",
			SellingUnit:         &sellingUnit,
			ConversionFactor:    &factor,
			DefaultSellingPrice: &sellPrice,
		},
	}
	itemIDs := make([]string, 0, len(batches))
	for _, b := range batches {
		item, created, err := itemUC.AddOrMergeStock(ctx, ownerID, b)
		if err != nil {
			log.Fatal().Err(err).Str("item", b.ItemName).Msg("sembrar artículo")
		}
		itemIDs = append(itemIDs, item.ID)
		log.Info().Str("item", item.ItemName).Bool("created", created).
			Str("quantity", item.Quantity.String()).Msg("artículo sembrado")
	}

	// Un par de ventas para que el resumen de analytics tenga datos.
	demoSales := []dto.RecordSaleRequest{
		{ItemID: itemIDs[0], QuantitySold: decimal.NewFromInt(5), SellingPrice: decimal.NewFromFloat(1.80)},
		{ItemID: itemIDs[1], QuantitySold: decimal.NewFromInt(12), SellingPrice: decimal.NewFromFloat(2.50)},
	}
	for _, s := range demoSales {
		sale, err := saleUC.RecordSale(ctx, ownerID, s)
		if err != nil {
			log.Fatal().Err(err).Str("item_id", s.ItemID).Msg("sembrar venta")
		}
		log.Info().Str("item", sale.ItemName).Str("profit", sale.Profit.String()).Msg("venta sembrada")
	}

	log.Info().Msg("seed completado")
}
