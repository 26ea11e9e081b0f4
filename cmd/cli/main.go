package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/corpgraph/kindred/internal/adapter/provider"
	"github.com/corpgraph/kindred/internal/config"
	"github.com/corpgraph/kindred/internal/core/domain"
)

func main() {
	exportFile := flag.String("file", "officers.json", "Path to the officer export (company number -> officer list)")
	configFile := flag.String("config", "", "Optional scoring config YAML")
	company := flag.String("company", "", "Analyze a single company instead of the whole export")
	minConfidence := flag.String("min-confidence", "medium", "Lowest confidence tier to report (low, medium, high)")
	flag.Parse()

	scoringCfg, err := config.LoadScoringConfig(*configFile)
	if err != nil {
		log.Fatalf("❌ error loading scoring config: %v", err)
	}
	scorer, err := domain.NewScorer(scoringCfg)
	if err != nil {
		log.Fatalf("❌ invalid scoring config: %v", err)
	}

	source := provider.NewJSONFileProvider(*exportFile)

	companies := []string{*company}
	if *company == "" {
		companies, err = source.Companies()
		if err != nil {
			log.Fatalf("❌ error reading export: %v", err)
		}
		sort.Strings(companies)
	}

	fmt.Printf("🔍 Analyzing %d companies from %s...\n\n", len(companies), *exportFile)

	ctx := context.Background()
	highFindings := 0
	reported := 0

	for _, number := range companies {
		officers, err := source.FetchOfficers(ctx, number)
		if err != nil {
			log.Printf("⚠️ error loading company %s: %v", number, err)
			continue
		}

		scores := scorer.ScoreGroup(officers)
		for _, score := range scores {
			if !meetsFloor(score.Confidence, *minConfidence) {
				continue
			}
			reported++
			if score.Confidence == domain.ConfidenceHigh {
				highFindings++
			}
			printScore(number, score)
		}
	}

	fmt.Println("------------------------------------------------")
	if highFindings > 0 {
		color.Red("❌ %d high-confidence family connections found (%d reported in total).", highFindings, reported)
		os.Exit(1)
	}

	color.Green("✅ No high-confidence connections. %d pairs reported.", reported)
}

func meetsFloor(confidence domain.Confidence, floor string) bool {
	rank := map[domain.Confidence]int{
		domain.ConfidenceLow:    0,
		domain.ConfidenceMedium: 1,
		domain.ConfidenceHigh:   2,
	}
	floorRank, ok := rank[domain.Confidence(floor)]
	if !ok {
		floorRank = 1
	}
	return rank[confidence] >= floorRank
}

func printScore(companyNumber string, score domain.ConnectionScore) {
	header := fmt.Sprintf("[%s] %s ~ %s — %.0f points", companyNumber, score.OfficerA, score.OfficerB, score.TotalScore)

	switch score.Confidence {
	case domain.ConfidenceHigh:
		color.Red("🚨 %s (HIGH)", header)
	case domain.ConfidenceMedium:
		color.Yellow("⚠️  %s (MEDIUM)", header)
	default:
		color.White("   %s (low)", header)
	}

	for _, reason := range score.Reasons {
		fmt.Printf("     • %s\n", reason)
	}
	fmt.Println()
}
