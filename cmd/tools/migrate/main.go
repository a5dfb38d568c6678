package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/admins"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/adventures"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/bookings"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/consultations"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/customers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/email"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/levels"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/payments"
)

// Schema sync for dev and CI. Production changes go through reviewed
// migrations.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&levels.Level{},
		&customers.Customer{},
		&customers.PointsEvent{},
		&admins.Admin{},
		&coupons.Coupon{},
		&adventures.Adventure{},
		&adventures.Image{},
		&adventures.AddOn{},
		&consultations.Package{},
		&bookings.Booking{},
		&bookings.BookingEvent{},
		&bookings.Invoice{},
		&payments.Payment{},
		&payments.ProviderEvent{},
		&email.Outbox{},
	)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	log.Println("schema up to date")
}
