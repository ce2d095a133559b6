// Command seed populates the database with sample inventory data. Each
// generated item goes through the ledger service so its init movement carries
// the same snapshots a live registration would.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/castello-soft/stock-ledger/internal/config"
	"github.com/castello-soft/stock-ledger/internal/db"
	"github.com/castello-soft/stock-ledger/internal/ledger"
	"github.com/castello-soft/stock-ledger/internal/repo"
)

var categories = []string{
	"Matéria-prima",
	"Componente",
	"Produto acabado",
	"Consumível",
	"Embalagem",
}

var baseItems = []string{
	"Parafuso aço",
	"Arruela inox",
	"Chapa aço carbono",
	"Tubo PVC",
	"Fio cobre",
	"Óleo lubrificante",
	"Caixa papelão",
	"Película termoencolhível",
}

var units = []string{"un", "kg", "L", "m", "caixa(s)"}

var colors = []string{"azul", "verde", "cinza", "preto", "branco", "vermelho", "amarelo"}

var words = []string{"suporte", "adaptador", "conector", "rolamento", "filtro", "cabo", "painel", "perfil"}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func generateItem(rng *rand.Rand) ledger.ItemInput {
	var name string
	if rng.Float64() < 0.3 {
		name = baseItems[rng.Intn(len(baseItems))]
	} else {
		name = strings.ToLower(colors[rng.Intn(len(colors))] + " " + words[rng.Intn(len(words))])
	}

	category := categories[rng.Intn(len(categories))]
	unit := units[rng.Intn(len(units))]

	var quantity float64
	switch unit {
	case "kg", "L":
		quantity = round2(1 + rng.Float64()*119)
	case "m":
		quantity = round2(1 + rng.Float64()*499)
	case "caixa(s)":
		quantity = float64(1 + rng.Intn(40))
	default:
		quantity = float64(1 + rng.Intn(800))
	}

	var unitPrice float64
	switch category {
	case "Matéria-prima":
		unitPrice = round2(5 + rng.Float64()*115)
	case "Componente":
		unitPrice = round2(1 + rng.Float64()*34)
	case "Embalagem":
		unitPrice = round2(0.2 + rng.Float64()*7.8)
	default:
		unitPrice = round2(2 + rng.Float64()*198)
	}

	return ledger.ItemInput{
		Name:      name,
		Category:  category,
		Unit:      unit,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

func main() {
	itemCount := flag.Int("items", 5, "how many items to generate")
	force := flag.Bool("force", false, "clear existing data before seeding")
	seed := flag.Int64("seed", 0, "optional random seed for reproducible data")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *itemCount <= 0 {
		log.Fatal().Msg("-items must be greater than zero")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer database.Close()
	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("could not apply schema")
	}

	items := repo.NewPostgresItemRepository(database)
	movements := repo.NewPostgresMovementRepository(database)
	svc := ledger.NewService(items, movements, repo.NewPostgresTxRunner(database))

	existing, err := items.GetAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("could not inspect existing items")
	}
	if len(existing) > 0 && !*force {
		fmt.Println("The database already contains items. Use -force to reseed.")
		return
	}
	if *force {
		for _, it := range existing {
			if err := svc.DeleteItem(ctx, it.ID); err != nil {
				log.Fatal().Err(err).Int("item_id", it.ID).Msg("could not clear item")
			}
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	for i := 0; i < *itemCount; i++ {
		input := generateItem(rng)
		item, _, err := svc.CreateItem(ctx, input)
		if err != nil {
			log.Fatal().Err(err).Str("name", input.Name).Msg("could not insert item")
		}
		log.Info().Int("item_id", item.ID).Str("name", item.Name).Float64("quantity", item.Quantity).Msg("seeded item")
	}
	fmt.Printf("Inserted %d items\n", *itemCount)
}
