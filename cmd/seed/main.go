package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/infrastructure/config"
	"github.com/pharmalitics/backend/internal/infrastructure/logger"
	"github.com/pharmalitics/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// seedProduct pairs a product with a realistic price band
type seedProduct struct {
	name     string
	category string
	code     string
	minPrice float64
	maxPrice float64
}

var products = []seedProduct{
	{"Amoxicillin 500mg", "Antibiotic", "AMX-500", 8, 18},
	{"Azithromycin 250mg", "Antibiotic", "AZM-250", 12, 25},
	{"Ciprofloxacin 500mg", "Antibiotic", "CIP-500", 10, 22},
	{"Ibuprofen 400mg", "Analgesic", "IBU-400", 3, 9},
	{"Paracetamol 500mg", "Analgesic", "PCM-500", 2, 6},
	{"Diclofenac 50mg", "Analgesic", "DCF-050", 4, 11},
	{"Vitamin C 1000mg", "Vitamin", "VTC-1000", 5, 14},
	{"Vitamin D3 2000IU", "Vitamin", "VTD-2000", 7, 16},
	{"Multivitamin Complex", "Vitamin", "MVC-001", 9, 20},
	{"Hydrocortisone Cream 1%", "Dermatology", "HCC-010", 6, 15},
	{"Clotrimazole Cream 2%", "Dermatology", "CTZ-020", 5, 13},
	{"Atorvastatin 20mg", "Cardiovascular", "ATV-020", 15, 35},
	{"Amlodipine 5mg", "Cardiovascular", "AML-005", 8, 19},
	{"Lisinopril 10mg", "Cardiovascular", "LSP-010", 9, 21},
	{"Salbutamol Inhaler", "Respiratory", "SLB-100", 14, 30},
	{"Loratadine 10mg", "Respiratory", "LRT-010", 4, 10},
}

var customerTypes = []string{"retail", "hospital", "clinic", "wholesale"}
var paymentMethods = []string{"cash", "card", "transfer", "credit"}

func main() {
	var (
		pharmacyCount = flag.Int("pharmacies", 25, "number of pharmacies to create")
		saleCount     = flag.Int("sales", 5000, "number of sales to create")
		days          = flag.Int("days", 365, "how far back sale dates reach")
		seed          = flag.Uint64("seed", 0, "random seed (0 = random)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if cfg.App.Env == "production" {
		log.Fatal("Refusing to seed a production database")
	}

	faker := gofakeit.New(*seed)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()
	productRepo := persistence.NewGormProductRepository(db.DB)
	pharmacyRepo := persistence.NewGormPharmacyRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	for _, p := range products {
		product, err := ledger.NewProduct(ledger.NewProductInput{
			Name:         p.name,
			Code:         p.code,
			Category:     p.category,
			Manufacturer: faker.Company(),
			UnitCost:     decimal.NewFromFloat(p.minPrice * 0.6),
		})
		if err != nil {
			log.Fatal("Invalid seed product", zap.String("name", p.name), zap.Error(err))
		}
		if err := productRepo.Save(ctx, product); err != nil {
			log.Fatal("Failed to save product", zap.String("name", p.name), zap.Error(err))
		}
	}
	log.Info("Products seeded", zap.Int("count", len(products)))

	pharmacies := make([]*ledger.Pharmacy, 0, *pharmacyCount)
	for i := 0; i < *pharmacyCount; i++ {
		pharmacy, err := ledger.NewPharmacy(ledger.NewPharmacyInput{
			Name:          fmt.Sprintf("%s Pharmacy", faker.LastName()),
			Location:      faker.City(),
			City:          faker.City(),
			State:         faker.State(),
			Type:          faker.RandomString(customerTypes),
			ContactPerson: faker.Name(),
			Phone:         faker.Phone(),
			Email:         faker.Email(),
		})
		if err != nil {
			log.Fatal("Invalid seed pharmacy", zap.Error(err))
		}
		if err := pharmacyRepo.Save(ctx, pharmacy); err != nil {
			log.Fatal("Failed to save pharmacy", zap.Error(err))
		}
		pharmacies = append(pharmacies, pharmacy)
	}
	log.Info("Pharmacies seeded", zap.Int("count", len(pharmacies)))

	now := time.Now()
	for i := 0; i < *saleCount; i++ {
		p := products[faker.Number(0, len(products)-1)]
		pharmacy := pharmacies[faker.Number(0, len(pharmacies)-1)]

		quantity := faker.Number(1, 200)
		unitPrice := faker.Float64Range(p.minPrice, p.maxPrice)
		discount := 0.0
		if faker.Bool() {
			discount = faker.Float64Range(0, float64(quantity)*unitPrice*0.15)
		}
		// Keep stored money values at two decimal places
		unitPriceDec := decimal.NewFromFloat(unitPrice).Round(2)
		discountDec := decimal.NewFromFloat(discount).Round(2)
		saleDate := now.AddDate(0, 0, -faker.Number(0, *days-1)).
			Add(-time.Duration(faker.Number(0, 23)) * time.Hour)

		sale, err := ledger.NewSale(ledger.NewSaleInput{
			ProductName:      p.name,
			ProductCategory:  p.category,
			ProductCode:      p.code,
			Quantity:         quantity,
			UnitPrice:        unitPriceDec,
			Discount:         discountDec,
			PharmacyName:     pharmacy.Name,
			PharmacyLocation: pharmacy.Location,
			CustomerType:     pharmacy.Type,
			SaleDate:         saleDate,
			PaymentMethod:    faker.RandomString(paymentMethods),
			SalesRep:         faker.Name(),
		})
		if err != nil {
			log.Fatal("Invalid seed sale", zap.Error(err))
		}
		if err := saleRepo.Save(ctx, sale); err != nil {
			log.Fatal("Failed to save sale", zap.Error(err))
		}
	}
	log.Info("Sales seeded", zap.Int("count", *saleCount))
}
