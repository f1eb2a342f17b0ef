// migrate ejecuta la migración única del snapshot heredado del navegador
// hacia PostgreSQL. El snapshot es el JSON exportado del localStorage de la
// aplicación vieja (adminCategories, adminBrands, adminProducts,
// servicosRecebidos).
//
// Uso: go run ./cmd/migrate [ruta/snapshot.json]
// Por defecto busca snapshot.json en el directorio actual.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/application/usecase"
	"github.com/nmendes/servicos-api/internal/infrastructure/postgres"
	"github.com/nmendes/servicos-api/pkg/config"
	"github.com/nmendes/servicos-api/pkg/dates"
	"github.com/nmendes/servicos-api/pkg/logger"
)

func main() {
	snapshotPath := "snapshot.json"
	if len(os.Args) > 1 {
		snapshotPath = os.Args[1]
	}

	raw, err := os.ReadFile(snapshotPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer snapshot: %v\n", err)
		os.Exit(1)
	}
	var snapshot dto.LegacySnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "decodificar snapshot: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	formatter, err := dates.New(cfg.App.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zona horaria inválida: %v\n", err)
		os.Exit(1)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	uc := usecase.NewMigrationUseCase(
		postgres.NewCategoryRepository(pool),
		postgres.NewBrandRepository(pool),
		postgres.NewProductRepository(pool),
		postgres.NewServiceRepository(pool),
		postgres.NewServiceProductRepository(pool),
		formatter,
		log,
	)

	resp := uc.Run(snapshot)
	failed := false
	for _, step := range resp.Steps {
		if step.Completed {
			fmt.Printf("  %-12s OK\n", step.Name)
			continue
		}
		failed = true
		fmt.Printf("  %-12s FALLÓ: %s\n", step.Name, step.Error)
	}
	if failed {
		fmt.Fprintln(os.Stderr, "migración incompleta; los pasos completados quedan aplicados (no hay rollback)")
		os.Exit(1)
	}
	fmt.Println("migración completa")
}
