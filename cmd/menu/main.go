// Command menu is a small interactive console for the inventory: list items,
// register a new one, or delete one by ID or name.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/castello-soft/stock-ledger/internal/config"
	"github.com/castello-soft/stock-ledger/internal/db"
	"github.com/castello-soft/stock-ledger/internal/ledger"
	"github.com/castello-soft/stock-ledger/internal/models"
	"github.com/castello-soft/stock-ledger/internal/repo"
)

var stdin = bufio.NewScanner(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	if !stdin.Scan() {
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(stdin.Text())
}

func promptNonEmpty(label string) string {
	for {
		if v := prompt(label); v != "" {
			return v
		}
		fmt.Println("Invalid value, try again.")
	}
}

func promptFloat(label string, min float64) float64 {
	for {
		raw := strings.ReplaceAll(prompt(label), ",", ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Println("Enter a valid number.")
			continue
		}
		if v < min {
			fmt.Printf("The minimum value is %g.\n", min)
			continue
		}
		return v
	}
}

func printItemRow(item models.Item) {
	flag := ""
	if item.LowStock() {
		flag = " (LOW STOCK)"
	}
	fmt.Printf("ID: %d | Name: %s | Category: %s | Price: %.2f | Quantity: %g %s | Total: %.2f%s\n",
		item.ID, item.Name, item.Category, item.UnitPrice, item.Quantity, item.Unit, item.TotalValue(), flag)
}

func listItems(ctx context.Context, svc *ledger.Service) {
	items, err := svc.Items(ctx)
	if err != nil {
		fmt.Println("Could not list items:", err)
		return
	}
	if len(items) == 0 {
		fmt.Println("No items registered.")
		return
	}
	for _, item := range items {
		printItemRow(item)
	}
}

func registerItem(ctx context.Context, svc *ledger.Service) {
	fmt.Println("\nRegister new item")
	input := ledger.ItemInput{
		Name:      promptNonEmpty("Name: "),
		Category:  promptNonEmpty("Category: "),
		Unit:      promptNonEmpty("Unit (e.g. un, kg, L): "),
		Quantity:  promptFloat("Initial quantity: ", 0),
		UnitPrice: promptFloat("Unit price: ", 0),
	}
	item, _, err := svc.CreateItem(ctx, input)
	if err != nil {
		fmt.Println("Could not register item:", err)
		return
	}
	fmt.Println("\nItem registered:")
	printItemRow(item)
}

// selectItemByName resolves a name to an item ID, asking the user to pick when
// more than one item shares the name.
func selectItemByName(ctx context.Context, svc *ledger.Service, name string) (int, bool) {
	all, err := svc.Items(ctx)
	if err != nil {
		fmt.Println("Could not list items:", err)
		return 0, false
	}
	var matches []models.Item
	for _, item := range all {
		if strings.EqualFold(item.Name, name) {
			matches = append(matches, item)
		}
	}
	if len(matches) == 0 {
		return 0, false
	}
	if len(matches) == 1 {
		return matches[0].ID, true
	}
	fmt.Println("\nSeveral items share this name:")
	for idx, item := range matches {
		fmt.Printf("%d) ", idx+1)
		printItemRow(item)
	}
	for {
		raw := prompt("Pick a number to delete (or Enter to cancel): ")
		if raw == "" {
			return 0, false
		}
		i, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Println("Pick a valid number.")
			continue
		}
		if i >= 1 && i <= len(matches) {
			return matches[i-1].ID, true
		}
		fmt.Println("Choice out of range.")
	}
}

func deleteItem(ctx context.Context, svc *ledger.Service) {
	fmt.Println("\nDelete item")
	fmt.Println("1) By ID")
	fmt.Println("2) By name")
	opt := prompt("Choose (1/2): ")

	var itemID int
	switch opt {
	case "1":
		raw := prompt("Item ID: ")
		id, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Println("Invalid ID.")
			return
		}
		if _, err := svc.Item(ctx, id); err != nil {
			fmt.Println("Item not found.")
			return
		}
		itemID = id
	case "2":
		name := promptNonEmpty("Item name: ")
		id, ok := selectItemByName(ctx, svc, name)
		if !ok {
			fmt.Println("No item selected or found.")
			return
		}
		itemID = id
	default:
		fmt.Println("Invalid option.")
		return
	}

	confirm := strings.ToLower(prompt(fmt.Sprintf("Confirm deletion of ID %d? (y/N): ", itemID)))
	if confirm != "y" {
		fmt.Println("Operation cancelled.")
		return
	}
	if err := svc.DeleteItem(ctx, itemID); err != nil {
		fmt.Println("Could not delete item:", err)
		return
	}
	fmt.Println("Item deleted.")
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

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

	for {
		fmt.Println("\n=== Inventory Menu ===")
		fmt.Println("1) Register item")
		fmt.Println("2) Delete item (ID or name)")
		fmt.Println("3) List items")
		fmt.Println("4) Quit")

		switch prompt("Choose an option: ") {
		case "1":
			registerItem(ctx, svc)
		case "2":
			deleteItem(ctx, svc)
		case "3":
			listItems(ctx, svc)
		case "4":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Invalid option, try again.")
		}
	}
}
