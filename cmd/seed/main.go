package main

import (
	"fmt"
	"log"
	"time"

	"cinebook/internal/catalog"
	"cinebook/internal/concessions"
	"cinebook/internal/coupons"
	"cinebook/internal/customers"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/theaters"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Cinebook database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"session_coupons",
		"session_concessions",
		"session_seats",
		"booking_sessions",
		"coupon_redemptions",
		"coupons",
		"concession_items",
		"showtimes",
		"movies",
		"seats",
		"auditoriums",
		"theaters",
		"customers",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedCustomers(); err != nil {
		return err
	}
	theater, err := s.seedTheater()
	if err != nil {
		return err
	}
	auditorium, err := s.seedAuditorium(theater)
	if err != nil {
		return err
	}
	movies, err := s.seedMovies()
	if err != nil {
		return err
	}
	if err := s.seedShowtimes(movies, auditorium); err != nil {
		return err
	}
	if err := s.seedConcessions(); err != nil {
		return err
	}
	return s.seedCoupons()
}

func (s *Seeder) seedCustomers() error {
	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	list := []customers.Customer{
		{FirstName: "Ava", LastName: "Admin", Email: "admin@cinebook.dev", Password: string(password), Role: customers.RoleAdmin, Tier: customers.TierBase},
		{FirstName: "Ben", LastName: "Base", Email: "ben@example.com", Password: string(password), Role: customers.RoleCustomer, Tier: customers.TierBase},
		{FirstName: "Mia", LastName: "Member", Email: "mia@example.com", Password: string(password), Role: customers.RoleCustomer, Tier: customers.TierMember, LoyaltyPoints: 50},
		{FirstName: "Vik", LastName: "VIP", Email: "vik@example.com", Password: string(password), Role: customers.RoleCustomer, Tier: customers.TierVIP, LoyaltyPoints: 250},
		{FirstName: "Vera", LastName: "VVIP", Email: "vera@example.com", Password: string(password), Role: customers.RoleCustomer, Tier: customers.TierVVIP, LoyaltyPoints: 1000},
	}

	if err := s.db.GetPostgreSQL().Create(&list).Error; err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}
	fmt.Printf("  seeded %d customers\n", len(list))
	return nil
}

func (s *Seeder) seedTheater() (*theaters.Theater, error) {
	theater := &theaters.Theater{
		Name:    "Cinebook Grand Central",
		City:    "Jakarta",
		Address: "1 Example Plaza",
	}
	if err := s.db.GetPostgreSQL().Create(theater).Error; err != nil {
		return nil, fmt.Errorf("failed to seed theater: %w", err)
	}
	fmt.Println("  seeded 1 theater")
	return theater, nil
}

func (s *Seeder) seedAuditorium(theater *theaters.Theater) (*theaters.Auditorium, error) {
	rows := []struct {
		label string
		seats int
		class theaters.SeatClass
	}{
		{"A", 10, theaters.SeatStandard},
		{"B", 10, theaters.SeatStandard},
		{"C", 10, theaters.SeatStandard},
		{"D", 10, theaters.SeatPremium},
		{"E", 10, theaters.SeatPremium},
		{"F", 5, theaters.SeatDouble},
	}

	auditorium := &theaters.Auditorium{
		TheaterID: theater.ID,
		Name:      "Screen 1",
	}
	if err := s.db.GetPostgreSQL().Create(auditorium).Error; err != nil {
		return nil, fmt.Errorf("failed to seed auditorium: %w", err)
	}

	var seats []theaters.Seat
	for _, row := range rows {
		for col := 1; col <= row.seats; col++ {
			seats = append(seats, theaters.Seat{
				AuditoriumID: auditorium.ID,
				Label:        theaters.SeatLabel(row.label, col),
				RowLabel:     row.label,
				Column:       col,
				Class:        row.class,
			})
		}
	}
	if err := s.db.GetPostgreSQL().CreateInBatches(seats, 200).Error; err != nil {
		return nil, fmt.Errorf("failed to seed seats: %w", err)
	}
	fmt.Printf("  seeded 1 auditorium with %d seats\n", len(seats))
	return auditorium, nil
}

func (s *Seeder) seedMovies() ([]catalog.Movie, error) {
	movies := []catalog.Movie{
		{Title: "Midnight Orbit", Genre: "Sci-Fi", Rating: "PG-13", DurationMin: 142, Status: catalog.MovieNowShowing},
		{Title: "The Last Reel", Genre: "Drama", Rating: "R", DurationMin: 118, Status: catalog.MovieNowShowing},
		{Title: "Paper Lanterns", Genre: "Animation", Rating: "G", DurationMin: 96, Status: catalog.MovieComingSoon},
	}
	if err := s.db.GetPostgreSQL().Create(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to seed movies: %w", err)
	}
	fmt.Printf("  seeded %d movies\n", len(movies))
	return movies, nil
}

func (s *Seeder) seedShowtimes(movies []catalog.Movie, auditorium *theaters.Auditorium) error {
	var showtimes []catalog.Showtime
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	for i, movie := range movies {
		if movie.Status != catalog.MovieNowShowing {
			continue
		}
		for j := 0; j < 3; j++ {
			showtimes = append(showtimes, catalog.Showtime{
				MovieID:      movie.ID,
				AuditoriumID: auditorium.ID,
				StartsAt:     base.Add(time.Duration(i*8+j*3) * time.Hour),
				BasePrice:    100000,
				Status:       catalog.ShowtimeScheduled,
			})
		}
	}
	if err := s.db.GetPostgreSQL().Create(&showtimes).Error; err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}
	fmt.Printf("  seeded %d showtimes\n", len(showtimes))
	return nil
}

func (s *Seeder) seedConcessions() error {
	items := []concessions.Item{
		{Name: "Large Popcorn", Category: "Snacks", Price: 45000, Available: true},
		{Name: "Caramel Popcorn", Category: "Snacks", Price: 55000, Available: true},
		{Name: "Nachos", Category: "Snacks", Price: 50000, Available: true},
		{Name: "Cola", Category: "Drinks", Price: 30000, Available: true},
		{Name: "Iced Tea", Category: "Drinks", Price: 25000, Available: true},
		{Name: "Combo: Popcorn + Cola", Category: "Combos", Price: 65000, Available: true},
	}
	if err := s.db.GetPostgreSQL().Create(&items).Error; err != nil {
		return fmt.Errorf("failed to seed concession items: %w", err)
	}
	fmt.Printf("  seeded %d concession items\n", len(items))
	return nil
}

func (s *Seeder) seedCoupons() error {
	nextMonth := time.Now().Add(30 * 24 * time.Hour)
	lastWeek := time.Now().Add(-7 * 24 * time.Hour)

	list := []coupons.Coupon{
		{Code: "WELCOME10", Type: coupons.TypePercentage, Value: 10, MinPurchase: 100000, ExpiresAt: &nextMonth, Active: true},
		{Code: "FLAT50K", Type: coupons.TypeFixed, Value: 50000, MinPurchase: 200000, ExpiresAt: &nextMonth, Active: true},
		{Code: "GIFTCARD", Type: coupons.TypeStoredBalance, Balance: 150000, Active: true},
		{Code: "EXPIRED25", Type: coupons.TypePercentage, Value: 25, ExpiresAt: &lastWeek, Active: true},
	}
	if err := s.db.GetPostgreSQL().Create(&list).Error; err != nil {
		return fmt.Errorf("failed to seed coupons: %w", err)
	}
	fmt.Printf("  seeded %d coupons\n", len(list))
	return nil
}
