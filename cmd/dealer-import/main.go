package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"prequal_backend/internal/dealers/repository"
	"prequal_backend/platform/config"
	"prequal_backend/platform/db"
	"prequal_backend/platform/logger"
	"prequal_backend/platform/phone"
)

// dealerSeed mirrors one entry in the dealer seed file.
type dealerSeed struct {
	ID             string   `yaml:"id"`
	DealerName     string   `yaml:"dealer_name"`
	Phone          string   `yaml:"phone"`
	Email          string   `yaml:"email"`
	State          string   `yaml:"state"`
	Zip            string   `yaml:"zip"`
	ReferralToken  string   `yaml:"referral_token"`
	PriorityWeight int      `yaml:"priority_weight"`
	Active         *bool    `yaml:"active"`
	CoverageZips   []string `yaml:"coverage_zips"`
}

type seedFile struct {
	Dealers []dealerSeed `yaml:"dealers"`
}

func main() {
	path := flag.String("file", "dealers.yaml", "path to the dealer seed file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting dealer import", "file", *path)

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Error("failed to read seed file", "error", err)
		panic("failed to read seed file: " + err.Error())
	}

	var seeds seedFile
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		log.Error("failed to parse seed file", "error", err)
		panic("failed to parse seed file: " + err.Error())
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := repository.New(pool)

	var imported, failed int
	for _, seed := range seeds.Dealers {
		if err := importDealer(ctx, repo, seed); err != nil {
			failed++
			log.Error("failed to import dealer", "dealer", seed.DealerName, "error", err)
			continue
		}
		imported++
		log.Info("dealer imported", "dealer", seed.DealerName, "coverageZips", len(seed.CoverageZips))
	}

	log.Info("dealer import finished", "imported", imported, "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func importDealer(ctx context.Context, repo *repository.Repository, seed dealerSeed) error {
	// Stable ids make reruns idempotent; a missing id derives one from the
	// dealer name.
	id, err := uuid.Parse(seed.ID)
	if err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed.DealerName))
	}

	number := seed.Phone
	if normalized, ok := phone.Valid(number); ok {
		number = normalized
	}

	var token *string
	if seed.ReferralToken != "" {
		token = &seed.ReferralToken
	}

	active := true
	if seed.Active != nil {
		active = *seed.Active
	}

	if err := repo.Upsert(ctx, repository.UpsertDealerParams{
		ID:             id,
		Name:           seed.DealerName,
		Phone:          number,
		Email:          seed.Email,
		State:          seed.State,
		Zip:            seed.Zip,
		ReferralToken:  token,
		PriorityWeight: seed.PriorityWeight,
		Active:         active,
	}); err != nil {
		return err
	}

	return repo.ReplaceCoverage(ctx, id, seed.State, seed.CoverageZips, seed.PriorityWeight)
}
