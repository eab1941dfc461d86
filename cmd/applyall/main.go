package main

import (
	"fmt"
	"log"

	"housing-connect-bot/bot"
	"housing-connect-bot/browser"
	"housing-connect-bot/config"
	"housing-connect-bot/models"
	"housing-connect-bot/notify"
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

	if !b.Login() {
		log.Fatal("✗ Login failed, aborting")
	}

	var all []models.ApplicationOutcome
	for _, category := range []models.Category{models.CategoryRental, models.CategorySale} {
		log.Printf("=== Applying to all %s lotteries ===", category)
		outcomes, err := b.ApplyToAll(category)
		if err != nil {
			log.Printf("✗ %s run failed: %v", category, err)
		}
		all = append(all, outcomes...)
	}

	summary := bot.BuildSummary(all)
	fmt.Println(summary.Format())

	notifier, err := notify.NewNotifier()
	if err != nil {
		log.Printf("⚠ Telegram notifier unavailable: %v", err)
		return
	}
	if notifier != nil {
		if err := notifier.SendSummary(summary.Format()); err != nil {
			log.Printf("⚠ Failed to send summary: %v", err)
		}
	}
}
