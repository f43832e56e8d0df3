// Command seed loads a demo catalog into the database and prints session
// tokens for each role.
package main

import (
	"context"
	"fmt"
	"time"

	"welfare/internal/config"
	"welfare/internal/ledger"
	"welfare/internal/models"
	"welfare/internal/repositories"
	"welfare/internal/utils"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := repositories.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repositories.Close(db)

	if err := repositories.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	companyID := config.GetEnv("SEED_COMPANY_ID", "cmp_1")
	cat := demoCatalog(companyID, time.Now())

	// Refuse to seed a catalog the ledger itself would reject on startup.
	if err := ledger.New(ledger.Options{}).Load(cat); err != nil {
		log.Fatalf("Seed catalog is inconsistent: %v", err)
	}
	if err := repositories.SaveCatalog(context.Background(), db, cat); err != nil {
		log.Fatalf("Failed to save catalog: %v", err)
	}
	log.WithFields(log.Fields{
		"companies": len(cat.Companies),
		"employees": len(cat.Employees),
		"partners":  len(cat.Partners),
		"services":  len(cat.Services),
	}).Info("catalog seeded")

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, skipping development tokens")
		return
	}

	ttl := time.Duration(config.GetIntEnv("SEED_TOKEN_TTL_HOURS", 24)) * time.Hour
	sessions := []models.SessionClaims{
		{ActorID: "adm_1", Role: models.RoleCompanyAdmin, CompanyID: companyID},
		{ActorID: "emp_1", Role: models.RoleEmployee, CompanyID: companyID, EmployeeID: "emp_1"},
		{ActorID: "prt_1", Role: models.RolePartner, PartnerID: "prt_1"},
	}
	for _, claims := range sessions {
		token, err := utils.GenerateSessionToken(cfg.JWTSecret, claims, ttl)
		if err != nil {
			log.Fatalf("Failed to sign %s token: %v", claims.Role, err)
		}
		fmt.Printf("%-14s %s\n", claims.Role, token)
	}
}

func demoCatalog(companyID string, now time.Time) ledger.Catalog {
	company := models.Company{
		ID:           companyID,
		Name:         "Acme Corp",
		TotalCredits: 20000,
		UsedCredits:  8500,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	company.Rebalance()

	return ledger.Catalog{
		Companies: []models.Company{company},
		Employees: []models.Employee{
			{
				ID:              "emp_1",
				CompanyID:       companyID,
				FirstName:       "Marie",
				LastName:        "Dupont",
				Email:           "marie.dupont@acme.example",
				Department:      "Engineering",
				AvailablePoints: 750,
				UsedPoints:      250,
				TotalPoints:     1000,
				Active:          true,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
			{
				ID:              "emp_2",
				CompanyID:       companyID,
				FirstName:       "Lucas",
				LastName:        "Martin",
				Email:           "lucas.martin@acme.example",
				Department:      "Sales",
				AvailablePoints: 300,
				TotalPoints:     300,
				Active:          true,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
		},
		Partners: []models.Partner{
			{
				ID:        "prt_1",
				Name:      "Zen Spa",
				Category:  models.CategoryWellness,
				Email:     "contact@zenspa.example",
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		Services: []models.Service{
			{
				ID:              "srv_1",
				PartnerID:       "prt_1",
				Name:            "Massage 60min",
				Description:     "Relaxing full-body massage",
				Category:        models.CategoryWellness,
				PointsRequired:  200,
				OriginalPrice:   decimal.RequireFromString("80.00"),
				DiscountedPrice: decimal.RequireFromString("60.00"),
				Metadata:        datatypes.JSON(`{"duration_minutes":60}`),
				Active:          true,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
			{
				ID:              "srv_2",
				PartnerID:       "prt_1",
				Name:            "Yoga class",
				Category:        models.CategorySport,
				PointsRequired:  50,
				OriginalPrice:   decimal.RequireFromString("20.00"),
				DiscountedPrice: decimal.RequireFromString("15.00"),
				Active:          true,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
		},
	}
}
