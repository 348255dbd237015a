package main

// Generate period summaries for every campaign. Intended for cron:
//   go run ./cmd/summaries            # yesterday's dailies (+ prior month on the 1st)
//   go run ./cmd/summaries -date 2026-03-01
//   go run ./cmd/summaries -month 2026-02

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"feedback-backend/internal/bootstrap"
	"feedback-backend/internal/shared/config"
	"feedback-backend/internal/summaries"
)

func main() {
	dateFlag := flag.String("date", "", "generate the daily summary for this date (YYYY-MM-DD); default yesterday")
	monthFlag := flag.String("month", "", "generate the monthly summary for this month (YYYY-MM)")
	flag.Parse()

	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	ctx := context.Background()
	now := time.Now().UTC()

	day := now.AddDate(0, 0, -1)
	if *dateFlag != "" {
		if day, err = time.Parse("2006-01-02", *dateFlag); err != nil {
			log.Fatalf("invalid -date %q: %v", *dateFlag, err)
		}
	}

	var month time.Time
	runMonthly := false
	switch {
	case *monthFlag != "":
		if month, err = time.Parse("2006-01", *monthFlag); err != nil {
			log.Fatalf("invalid -month %q: %v", *monthFlag, err)
		}
		runMonthly = true
	case *dateFlag == "" && now.Day() == 1:
		// First of the month: roll up the month that just ended.
		month = now.AddDate(0, -1, 0)
		runMonthly = true
	}

	list, err := app.CampaignsRepo.List(ctx)
	if err != nil {
		log.Fatalf("list campaigns: %v", err)
	}

	failures := 0
	for _, campaign := range list {
		if _, err := app.SummaryService.GenerateDaily(ctx, campaign.ID, day); err != nil && !errors.Is(err, summaries.ErrResultNotSaved) {
			log.Printf("daily summary failed for campaign %s: %v", campaign.ID, err)
			failures++
		}
		if runMonthly {
			if _, err := app.SummaryService.GenerateMonthly(ctx, campaign.ID, month); err != nil && !errors.Is(err, summaries.ErrResultNotSaved) {
				log.Printf("monthly summary failed for campaign %s: %v", campaign.ID, err)
				failures++
			}
		}
	}

	log.Printf("summary run complete: %d campaigns, %d failures", len(list), failures)
	if failures > 0 {
		os.Exit(1)
	}
}
