package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"housing-connect-bot/models"
)

// Catalog holds every scraped listing grouped by category. It is the
// document written to all_lotteries.json.
type Catalog struct {
	Rentals []models.Listing `json:"rentals"`
	Sales   []models.Listing `json:"sales"`
}

// WriteIDFile writes the lottery ids of the given listings to path,
// one id per line.
func WriteIDFile(path string, listings []models.Listing) error {
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	data := strings.Join(ids, "\n")
	if len(ids) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteCatalog writes the full listing catalog to path as indented JSON.
func WriteCatalog(path string, rentals, sales []models.Listing) error {
	if rentals == nil {
		rentals = []models.Listing{}
	}
	if sales == nil {
		sales = []models.Listing{}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Catalog{Rentals: rentals, Sales: sales}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}
