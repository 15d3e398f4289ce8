package main

import (
	"context"
	"log"
	"time"

	"nexbe-contract/internal/models"
	"nexbe-contract/internal/repository"
	"nexbe-contract/pkg/config"
	"nexbe-contract/pkg/logger"
	"nexbe-contract/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.InitSchema(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to initialize database schema", zap.Error(err))
	}

	catalogRepo := repository.NewCatalogRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	if err := seedCatalog(ctx, catalogRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed catalog", zap.Error(err))
	}
	if err := seedKnowledgeBase(ctx, knowledgeRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed knowledge base", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

func seedCatalog(ctx context.Context, repo *repository.CatalogRepository, appLogger *zap.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		appLogger.Info("Catalog already seeded, skipping", zap.Int("products", len(existing)))
		return nil
	}

	now := time.Now()
	products := []*models.CatalogProduct{
		{
			Name:                  "Zestaw Deye 5 kW / 10 kWh",
			Brand:                 "Deye",
			BatteryModel:          "Deye SE-G5.1 Pro x2",
			BatteryCapacityKWh:    10.2,
			InverterModel:         "Deye SUN-5K-SG04LP1-EU",
			InverterPowerKW:       5,
			Type:                  models.ProductTypeDCHybrid,
			Segment:               "Dom jednorodzinny",
			PriceGrossA:           29900,
			PriceGrossB:           33900,
			WarrantyBatteryYears:  10,
			WarrantyInverterYears: 10,
		},
		{
			Name:                  "Zestaw Deye 8 kW / 15 kWh",
			Brand:                 "Deye",
			BatteryModel:          "Deye SE-G5.1 Pro x3",
			BatteryCapacityKWh:    15.3,
			InverterModel:         "Deye SUN-8K-SG01LP1-EU",
			InverterPowerKW:       8,
			Type:                  models.ProductTypeDCHybrid,
			Segment:               "Dom jednorodzinny",
			PriceGrossA:           39900,
			PriceGrossB:           44500,
			WarrantyBatteryYears:  10,
			WarrantyInverterYears: 10,
		},
		{
			Name:                  "Zestaw FoxESS 10 kW / 17 kWh",
			Brand:                 "FoxESS",
			BatteryModel:          "FoxESS ECS4100 x6",
			BatteryCapacityKWh:    17.4,
			InverterModel:         "FoxESS H3-10.0-E",
			InverterPowerKW:       10,
			Type:                  models.ProductTypeDCHybrid,
			Segment:               "Dom jednorodzinny / mała firma",
			PriceGrossA:           49900,
			PriceGrossB:           55900,
			WarrantyBatteryYears:  10,
			WarrantyInverterYears: 12,
		},
		{
			Name:                  "Zestaw Growatt AC 5 kW / 10 kWh (retrofit)",
			Brand:                 "Growatt",
			BatteryModel:          "Growatt APX 10.0P",
			BatteryCapacityKWh:    10,
			InverterModel:         "Growatt WIT 5000-XH",
			InverterPowerKW:       5,
			Type:                  models.ProductTypeACRetrofit,
			Segment:               "Rozbudowa istniejącej instalacji PV",
			PriceGrossA:           27500,
			PriceGrossB:           31500,
			WarrantyBatteryYears:  10,
			WarrantyInverterYears: 10,
		},
		{
			Name:                  "Zestaw Huawei 6 kW / 15 kWh",
			Brand:                 "Huawei",
			BatteryModel:          "Huawei LUNA2000-15-S0",
			BatteryCapacityKWh:    15,
			InverterModel:         "Huawei SUN2000-6KTL-L1",
			InverterPowerKW:       6,
			Type:                  models.ProductTypeDCHybrid,
			Segment:               "Dom jednorodzinny",
			PriceGrossA:           42900,
			PriceGrossB:           47900,
			WarrantyBatteryYears:  10,
			WarrantyInverterYears: 10,
		},
	}

	for _, p := range products {
		p.ID = uuid.New()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
	}

	appLogger.Info("Catalog seeded", zap.Int("products", len(products)))
	return nil
}

func seedKnowledgeBase(ctx context.Context, repo *repository.KnowledgeRepository, appLogger *zap.Logger) error {
	existing, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		appLogger.Info("Knowledge base already seeded, skipping", zap.Int("entries", len(existing)))
		return nil
	}

	now := time.Now()
	entries := []*models.KnowledgeEntry{
		{
			Position: 1,
			Keywords: []string{"magazyn", "energii", "co", "to", "jest", "jak", "dziala", "bateria"},
			Answer:   "Magazyn energii to bateria, która przechowuje prąd z Twojej fotowoltaiki albo tani prąd z taryfy nocnej. Dzięki temu zużywasz własną energię wtedy, kiedy jej potrzebujesz, a nie oddajesz jej do sieci za grosze.",
			FollowUp: "Chcesz zobaczyć, jaki zestaw pasuje do Twojego domu?",
			Emotion:  "happy", Costume: "naukowiec",
			SuggestConfigurator: true,
		},
		{
			Position: 2,
			Keywords: []string{"cena", "koszt", "ile", "kosztuje", "zaplace", "cennik", "zl"},
			Answer:   "Ceny zestawów zaczynają się od około 27 500 zł brutto za magazyn 10 kWh z falownikiem. Dokładna cena zależy od pojemności, mocy falownika i wariantu zasilania awaryjnego.",
			FollowUp: "Skonfiguruj swój zestaw, a pokażę Ci dokładną wycenę.",
			Emotion:  "happy", Costume: "doradca",
			ScrollTarget:        "#konfigurator",
			SuggestConfigurator: true,
		},
		{
			Position: 3,
			Keywords: []string{"dotacja", "dofinansowanie", "moj", "prad", "czyste", "powietrze", "program", "zwrot"},
			Answer:   "Na magazyn energii możesz dostać dofinansowanie z programu Mój Prąd (do 16 000 zł na magazyn) albo Czyste Powietrze. Pomagamy w przygotowaniu wniosku i kompletujemy dokumenty za Ciebie.",
			FollowUp: "Zostaw numer, a doradca policzy Twoją dotację.",
			Emotion:  "excited", Costume: "doradca",
			ShowLeadPrompt: true,
		},
		{
			Position: 4,
			Keywords: []string{"montaz", "instalacja", "jak", "dlugo", "czas", "termin", "ekipa"},
			Answer:   "Montaż magazynu energii zajmuje zwykle jeden dzień roboczy. Po podpisaniu umowy ustalamy termin, a nasza ekipa przyjeżdża z kompletem urządzeń i uruchamia system tego samego dnia.",
			Emotion:  "happy", Costume: "inzynier",
		},
		{
			Position: 5,
			Keywords: []string{"gwarancja", "lat", "bateria", "falownik", "serwis", "awaria"},
			Answer:   "Baterie objęte są 10-letnią gwarancją producenta, falowniki 10 lub 12 lat w zależności od marki. Serwisujemy wszystkie montowane przez nas systemy.",
			Emotion:  "happy", Costume: "inzynier",
		},
		{
			Position: 6,
			Keywords: []string{"przerwa", "pradu", "zasilanie", "awaryjne", "backup", "blackout", "eps", "szr"},
			Answer:   "Tak, magazyn może zasilać dom podczas przerwy w dostawie prądu. Wariant A (EPS) podtrzymuje wybrane obwody, wariant B z przełącznikiem SZR przejmuje zasilanie całego domu automatycznie.",
			FollowUp: "Powiedz doradcy, które urządzenia mają działać podczas awarii.",
			Emotion:  "excited", Costume: "superhero",
		},
		{
			Position: 7,
			Keywords: []string{"fotowoltaika", "pv", "panele", "mam", "juz", "rozbudowa", "podlaczyc"},
			Answer:   "Jeśli masz już fotowoltaikę, dobierzemy magazyn w wersji AC retrofit, który podłącza się do istniejącej instalacji bez wymiany falownika PV.",
			Emotion:  "happy", Costume: "inzynier",
			SuggestConfigurator: true,
		},
		{
			Position: 8,
			Keywords: []string{"raty", "finansowanie", "kredyt", "leasing", "platnosc", "transze"},
			Answer:   "Płatność dzielimy na trzy transze: 30% zaliczki przy podpisaniu umowy, 60% przed montażem i 10% po uruchomieniu systemu. Dostępne jest też finansowanie ratalne przez bank współpracujący.",
			Emotion:  "happy", Costume: "doradca",
		},
		{
			Position: 9,
			Keywords: []string{"kontakt", "telefon", "doradca", "oddzwonic", "rozmowa", "spotkanie"},
			Answer:   "Chętnie połączę Cię z doradcą. Zostaw swój numer telefonu, a oddzwonimy jeszcze dziś w godzinach pracy.",
			Emotion:  "happy", Costume: "doradca",
			ShowLeadPrompt: true,
		},
		{
			Position: 10,
			Keywords: []string{"oszczednosci", "oplaca", "sie", "zwrot", "inwestycji", "rachunek", "taryfa"},
			Answer:   "Magazyn energii zwraca się zwykle w 6-8 lat, a z dotacją nawet szybciej. Ładujesz baterię tanią energią i nie kupujesz drogiej w szczycie, więc rachunki spadają nawet o 70%.",
			FollowUp: "Chcesz wyliczenie dla swojego rachunku?",
			Emotion:  "excited", Costume: "ekolog",
			ShowLeadPrompt: true,
		},
	}

	for _, e := range entries {
		e.ID = uuid.New()
		e.CreatedAt = now
		e.UpdatedAt = now
		if err := repo.Create(ctx, e); err != nil {
			return err
		}
	}

	appLogger.Info("Knowledge base seeded", zap.Int("entries", len(entries)))
	return nil
}
