package main

import (
	"fmt"
	"log"

	"housing-connect-bot/bot"
	"housing-connect-bot/browser"
	"housing-connect-bot/config"
	"housing-connect-bot/models"
	"housing-connect-bot/storage"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	br, err := browser.Launch(browser.Options{
		Headless:    cfg.Headless,
		UserDataDir: cfg.UserDataDir,
	})
	if err != nil {
		log.Fatalf("Failed to launch browser: %v", err)
	}
	defer br.Close()

	b := bot.New(cfg, br.Page())

	rentals, err := b.CollectListings(models.CategoryRental)
	if err != nil {
		log.Fatalf("Failed to collect rental lotteries: %v", err)
	}
	sales, err := b.CollectListings(models.CategorySale)
	if err != nil {
		log.Fatalf("Failed to collect sale lotteries: %v", err)
	}

	printListings("RENTALS", rentals)
	printListings("SALES", sales)

	if err := storage.WriteIDFile("rental_ids.txt", rentals); err != nil {
		log.Fatalf("%v", err)
	}
	if err := storage.WriteIDFile("sale_ids.txt", sales); err != nil {
		log.Fatalf("%v", err)
	}
	if err := storage.WriteCatalog("all_lotteries.json", rentals, sales); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("✓ Wrote rental_ids.txt (%d), sale_ids.txt (%d), all_lotteries.json", len(rentals), len(sales))

	if storage.Configured() {
		store, err := storage.NewStore()
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()

		saved, err := store.SaveListings(models.CategoryRental, rentals)
		if err != nil {
			log.Fatalf("Failed to save rentals: %v", err)
		}
		n, err := store.SaveListings(models.CategorySale, sales)
		if err != nil {
			log.Fatalf("Failed to save sales: %v", err)
		}
		log.Printf("✓ Saved %d lotteries to database", saved+n)
	}
}

func printListings(header string, listings []models.Listing) {
	fmt.Printf("\n=== %s (%d) ===\n", header, len(listings))
	for _, l := range listings {
		line := fmt.Sprintf("%s  %s", l.ID, l.Title)
		if l.DaysUntilClosing != nil {
			line += fmt.Sprintf("  (%d days left)", *l.DaysUntilClosing)
		}
		if l.IsApplied {
			line += "  [applied]"
		}
		fmt.Println(line)
	}
}
