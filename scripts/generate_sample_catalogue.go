package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"dishes-api/internal/auth"
	"dishes-api/internal/model"
	"dishes-api/internal/seed"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fixed ids so tokens printed by one run stay valid against a store seeded
// by another.
const (
	adminID = "5c2e3a1f9c1d4b2a3c4d5e6f"
	guestID = "5c2e3a1f9c1d4b2a3c4d5e70"
)

// generateSampleCatalogue writes a gzipped seed catalogue with two users
// and four dishes, and prints a development token for each user when a
// secret is given.
func main() {
	out := flag.String("out", "data/catalogue.json.gz", "catalogue file to write")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "secret used to sign development tokens")
	flag.Parse()

	admin := mustID(adminID)
	guest := mustID(guestID)

	catalogue := seed.Catalogue{
		Users: []model.User{
			{ID: admin, Username: "admin", Firstname: "Ada", Lastname: "Admin", Admin: true},
			{ID: guest, Username: "guest", Firstname: "Gus", Lastname: "Guest"},
		},
		Dishes: []model.Dish{
			{
				Name:        "Uthappizza",
				Description: "A unique combination of Indian Uthappam (pancake) and Italian pizza.",
				Image:       "images/uthappizza.png",
				Category:    "mains",
				Label:       "Hot",
				Price:       4.99,
				Featured:    true,
				Comments: model.Comments{
					{Rating: 5, Comment: "Imagine all the eatables, living in conFusion!", Author: guest},
					{Rating: 4, Comment: "Sends anyone to heaven.", Author: admin},
				},
			},
			{
				Name:        "Zucchipakoda",
				Description: "Deep fried Zucchini coated with mildly spiced Chickpea flour batter.",
				Image:       "images/zucchipakoda.png",
				Category:    "appetizer",
				Price:       1.99,
			},
			{
				Name:        "Vadonut",
				Description: "A quintessential ConFusion experience, is it a vada or is it a donut?",
				Image:       "images/vadonut.png",
				Category:    "appetizer",
				Label:       "New",
				Price:       1.99,
			},
			{
				Name:        "ElaiCheese Cake",
				Description: "A delectable, semi-sweet New York Style Cheese Cake.",
				Image:       "images/elaicheesecake.png",
				Category:    "dessert",
				Price:       2.99,
			},
		},
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := writeCatalogue(*out, &catalogue); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d users and %d dishes\n", *out, len(catalogue.Users), len(catalogue.Dishes))

	if *secret == "" {
		fmt.Println("\nSet JWT_SECRET or -secret to print development tokens.")
		return
	}

	fmt.Println("\nDevelopment tokens (valid for 24h):")
	for _, u := range catalogue.Users {
		token, err := auth.IssueToken(*secret, u.ID.Hex(), 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to sign token for %s: %v", u.Username, err)
		}
		fmt.Printf("  - %-6s %s\n", u.Username, token)
	}
}

func writeCatalogue(filePath string, catalogue *seed.Catalogue) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	defer gzWriter.Close()

	enc := json.NewEncoder(gzWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalogue); err != nil {
		return fmt.Errorf("failed to encode catalogue: %w", err)
	}

	return nil
}

func mustID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		log.Fatalf("Invalid object id %s: %v", hex, err)
	}
	return id
}
