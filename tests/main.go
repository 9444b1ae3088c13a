// Seed utility: populates the sitters collection with simulated
// candidates so the recommendation and auto-assignment paths can be
// exercised against a local MongoDB.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"pawfolio/config"
	"pawfolio/database"
	"pawfolio/models"

	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	config.LoadConfig()
	database.InitDB()
	coll := database.DB().Collection("sitters")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear sitters collection: %v", err)
	}

	petTypePool := [][]string{
		{"dog"},
		{"cat"},
		{"dog", "cat"},
		{"dog", "cat", "bird"},
		{"dog", "cat", "reptile"},
		{"cat", "small_mammal"},
	}

	const totalSitters = 30
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var sitters []interface{}
	for i := 1; i <= totalSitters; i++ {
		rating := 2.5 + rng.Float64()*2.5
		sitters = append(sitters, models.SitterCandidate{
			ID:              fmt.Sprintf("sitter-%03d", i),
			DisplayName:     fmt.Sprintf("Test Sitter %d", i),
			Rating:          float64(int(rating*10)) / 10,
			TotalBookings:   rng.Intn(150),
			IsActive:        i%7 != 0, // leave a few inactive to exercise filtering
			HasLocationData: i%4 != 0,
			Preferred:       i%10 == 0,
			PetTypes:        petTypePool[rng.Intn(len(petTypePool))],
		})
	}

	res, err := coll.InsertMany(ctx, sitters)
	if err != nil {
		log.Fatalf("Failed to insert sitters: %v", err)
	}
	log.Printf("Seeded %d sitter candidates", len(res.InsertedIDs))
}
