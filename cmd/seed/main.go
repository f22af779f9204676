package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/avoronova/sympathy/internal/config"
	"github.com/avoronova/sympathy/internal/domain"
	"github.com/avoronova/sympathy/internal/infrastructure/database"
	"github.com/avoronova/sympathy/internal/logger"
	"github.com/avoronova/sympathy/internal/repository/postgres"
)

// seedUser is one demo account. All accounts share the password below so
// the API can be exercised by hand after seeding.
type seedUser struct {
	email     string
	firstName string
	lastName  string
	gender    string
	lat, lon  float64
}

const seedPassword = "password123"

var seedUsers = []seedUser{
	{"alice@example.com", "Alice", "Anderson", domain.GenderFemale, 55.7558, 37.6173},
	{"bob@example.com", "Bob", "Brown", domain.GenderMale, 55.7512, 37.6184},
	{"carol@example.com", "Carol", "Clark", domain.GenderFemale, 55.7601, 37.6205},
	{"dave@example.com", "Dave", "Davis", domain.GenderMale, 55.7489, 37.6090},
	{"erin@example.com", "Erin", "Evans", domain.GenderFemale, 59.9343, 30.3351},
	{"frank@example.com", "Frank", "Foster", domain.GenderMale, 59.9311, 30.3609},
	{"grace@example.com", "Grace", "Green", domain.GenderFemale, 56.8389, 60.6057},
	{"henry@example.com", "Henry", "Hill", domain.GenderMale, 56.8431, 60.6454},
	{"irene@example.com", "Irene", "Ivanova", domain.GenderFemale, 55.0084, 82.9357},
	{"jack@example.com", "Jack", "Jones", domain.GenderMale, 55.0302, 82.9204},
	{"kate@example.com", "Kate", "King", domain.GenderFemale, 55.7522, 37.6156},
	{"leo@example.com", "Leo", "Lewis", domain.GenderMale, 55.7539, 37.6208},
	{"mary@example.com", "Mary", "Moore", domain.GenderFemale, 55.7987, 37.5377},
	{"nick@example.com", "Nick", "Nelson", domain.GenderMale, 55.7033, 37.5302},
	{"olga@example.com", "Olga", "Orlova", domain.GenderFemale, 55.7440, 37.5660},
	{"pete@example.com", "Pete", "Parker", domain.GenderMale, 55.7915, 37.7495},
	{"rita@example.com", "Rita", "Reed", domain.GenderFemale, 55.6500, 37.6200},
	{"sam@example.com", "Sam", "Smith", domain.GenderMale, 55.8000, 37.7000},
	{"tina@example.com", "Tina", "Turner", domain.GenderFemale, 55.7700, 37.6300},
	{"victor@example.com", "Victor", "Volkov", domain.GenderMale, 55.7300, 37.6000},
}

// likes seeds the coincidence ledger by index into seedUsers. The first
// three rows produce mutual pairs.
var likes = [][2]int{
	{0, 1}, {1, 0},
	{2, 3}, {3, 2},
	{4, 5}, {5, 4},
	{6, 7},
	{8, 9},
	{10, 11},
	{12, 13},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(&cfg.Logging)

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.L().Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := postgres.NewUserRepository(db)
	coincidenceRepo := postgres.NewCoincidenceRepository(db)

	if err := coincidenceRepo.DeleteAll(ctx); err != nil {
		logger.L().Error("failed to clear coincidences", "err", err)
		os.Exit(1)
	}
	if err := userRepo.DeleteAll(ctx); err != nil {
		logger.L().Error("failed to clear users", "err", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.L().Error("failed to hash password", "err", err)
		os.Exit(1)
	}

	ids := make([]int, len(seedUsers))
	for i, su := range seedUsers {
		gender := su.gender
		lat, lon := su.lat, su.lon
		user := &domain.User{
			Email:     su.email,
			Password:  string(hash),
			FirstName: su.firstName,
			LastName:  su.lastName,
			Gender:    &gender,
			Latitude:  &lat,
			Longitude: &lon,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.L().Error("failed to create user", "email", su.email, "err", err)
			os.Exit(1)
		}
		ids[i] = user.ID
	}
	logger.L().Info("seeded users", "count", len(ids))

	mutual := 0
	for _, pair := range likes {
		isMutual, err := coincidenceRepo.RecordLike(ctx, ids[pair[0]], ids[pair[1]])
		if err != nil {
			logger.L().Error("failed to record like", "err", err)
			os.Exit(1)
		}
		if isMutual {
			mutual++
		}
	}
	logger.L().Info("seeded likes", "count", len(likes), "mutual", mutual)
}
