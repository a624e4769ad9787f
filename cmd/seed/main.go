package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"leadflow/internal/database"
	"leadflow/internal/domain"
	"leadflow/internal/repository"
)

// Fills the local database with demo leads and orders.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "leadflow.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db, repository.LeadModel(), repository.OrderModel()); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (orders first, they reference leads)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM leads")

	ctx := context.Background()
	leads := repository.NewLeadRepository(db)
	orders := repository.NewOrderRepository(db)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	date := func(daysFromToday int) *time.Time {
		d := today.AddDate(0, 0, daysFromToday)
		return &d
	}

	log.Println("Creating leads...")
	seedLeads := []domain.Lead{
		{Name: "Aigerim Bekova", Contact: "aigerim@akbarys.kz", Company: "Akbarys LLP", ProductInterest: "Packaging line", Stage: domain.StageNew, FollowUpDate: date(2), CreatedAt: now},
		{Name: "Daniyar Seitkali", Contact: "+7 701 555 0187", Company: "SteppeAgro", ProductInterest: "Grain dryers", Stage: domain.StageContacted, FollowUpDate: date(5), Notes: "Prefers calls after 15:00", CreatedAt: now},
		{Name: "Olga Kim", Contact: "o.kim@trandex.example", Company: "Trandex", Stage: domain.StageQualified, FollowUpDate: date(-3), Notes: "Waiting for budget approval", CreatedAt: now},
		{Name: "Marat Zhunusov", Contact: "marat.zh@gmail.com", ProductInterest: "Conveyor belts", Stage: domain.StageWon, FollowUpDate: date(-10), CreatedAt: now},
		{Name: "Elena Petrova", Contact: "+7 777 204 9911", Company: "NordBak", Stage: domain.StageLost, FollowUpDate: date(-20), Notes: "Went with a competitor", CreatedAt: now},
		{Name: "Timur Akhmetov", Contact: "t.akhmetov@qazpack.kz", Company: "QazPack", ProductInterest: "Labeling machine", Stage: domain.StageNew, CreatedAt: now},
	}
	for i := range seedLeads {
		if err := leads.Create(ctx, &seedLeads[i]); err != nil {
			log.Fatal("seed lead:", err)
		}
	}

	log.Println("Creating orders...")
	statuses := []domain.OrderStatus{
		domain.OrderReceived,
		domain.OrderInDevelopment,
		domain.OrderReadyToDispatch,
		domain.OrderDispatched,
	}
	products := []string{"Packaging line PL-200", "Grain dryer GD-5", "Conveyor belt CB-12", "Labeling machine LM-3"}

	for i := 0; i < 8; i++ {
		l := seedLeads[rand.Intn(len(seedLeads))]
		o := domain.Order{
			LeadID:      l.ID,
			ProductName: products[rand.Intn(len(products))],
			Quantity:    1 + rand.Intn(5),
			OrderDate:   *date(-rand.Intn(14)),
			Status:      statuses[rand.Intn(len(statuses))],
			CreatedAt:   now,
		}
		if o.Status == domain.OrderDispatched {
			o.TrackingNumber = "KZ" + time.Now().Format("20060102") + "X"
			o.DeliveryDate = date(3)
		}
		if err := orders.Create(ctx, &o); err != nil {
			log.Fatal("seed order:", err)
		}
	}

	log.Println("Seed complete")
}
