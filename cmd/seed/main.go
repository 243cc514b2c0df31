package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"eduhub/internal/config"
	"eduhub/internal/db"
	"eduhub/internal/model"
	"eduhub/internal/repository"
)

const defaultSeedFile = "seed/programs.json"

// SeedUniversity is a university record in the seed file.
type SeedUniversity struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website"`
}

// SeedProgram is a program record in the seed file. Fee is free text
// such as "USD 20,000 per year".
type SeedProgram struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Duration     string `json:"duration"`
	UniversityID uint   `json:"university_id"`
	DegreeLevel  string `json:"degree_level"`
	Mode         string `json:"mode"`
	Fee          string `json:"fee"`
	Requirements string `json:"requirements"`
	Scholarships string `json:"scholarships"`
	AreaOfStudy  string `json:"area_of_study"`
}

// SeedData is the top level shape of the seed file.
type SeedData struct {
	Universities []SeedUniversity `json:"universities"`
	Programs     []SeedProgram    `json:"programs"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.University{}, &model.Program{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	data, err := loadSeedData(cfg.SeedDataURL)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}
	log.Printf("Loaded %d universities and %d programs", len(data.Universities), len(data.Programs))

	programRepo := repository.NewProgramRepository(gormDB)
	ctx := context.Background()

	for i := range data.Universities {
		item := data.Universities[i]
		university := model.University{
			ID:      item.ID,
			Name:    item.Name,
			Email:   item.Email,
			Phone:   item.Phone,
			Address: item.Address,
			Website: item.Website,
		}
		if err := programRepo.UpsertUniversity(ctx, &university); err != nil {
			log.Fatalf("Failed to seed university %q: %v", item.Name, err)
		}
	}

	skipped := 0
	for i := range data.Programs {
		item := data.Programs[i]
		fee, err := parseFee(item.Fee)
		if err != nil {
			log.Printf("Skipping program %q with unparseable fee %q: %v", item.Name, item.Fee, err)
			skipped++
			continue
		}
		program := model.Program{
			ID:           item.ID,
			Name:         item.Name,
			Duration:     item.Duration,
			UniversityID: item.UniversityID,
			DegreeLevel:  item.DegreeLevel,
			Mode:         item.Mode,
			Fee:          fee,
			Requirements: item.Requirements,
			Scholarships: item.Scholarships,
			AreaOfStudy:  item.AreaOfStudy,
		}
		if err := programRepo.UpsertProgram(ctx, &program); err != nil {
			log.Fatalf("Failed to seed program %q: %v", item.Name, err)
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Universities: %d", len(data.Universities))
	log.Printf("  - Programs: %d (skipped %d)", len(data.Programs)-skipped, skipped)
}

// loadSeedData reads the seed file from SEED_DATA_URL when set, falling
// back to the local seed/programs.json file.
func loadSeedData(url string) (*SeedData, error) {
	var raw []byte
	var err error

	if url != "" {
		log.Printf("Fetching seed data from: %s", url)
		raw, err = fetchSeedData(url)
	} else {
		log.Printf("Reading seed data from: %s", defaultSeedFile)
		raw, err = os.ReadFile(defaultSeedFile)
	}
	if err != nil {
		return nil, err
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

func fetchSeedData(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseFee extracts the first numeric amount from a free text fee string
// such as "USD 20,000 per year" or "$15,500".
func parseFee(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	started := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			started = true
		case r == '.' && started:
			b.WriteRune(r)
		case r == ',' && started:
			// thousands separator
		case started:
			return decimal.NewFromString(b.String())
		}
	}
	if !started {
		return decimal.Zero, fmt.Errorf("no numeric amount in %q", raw)
	}
	return decimal.NewFromString(b.String())
}
