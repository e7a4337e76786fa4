package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/modules/dashboard"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/sales-dashboard-be/internal/shared/utils"
)

func main() {
	chartFlag := flag.String("chart", "all", "Chart ID, comma-separated IDs, or 'all'")
	formatFlag := flag.String("format", "pdf", "Output format: pdf or excel")
	outFlag := flag.String("out", "", "Write the report to this file instead of publishing it")
	listFlag := flag.Bool("list", false, "List chart IDs and exit")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)

	mod, err := dashboard.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize dashboard: %v", err)
	}

	if *listFlag {
		for _, m := range mod.Charts.Registry().List() {
			log.Printf("📊 %-32s %s", m.ID, m.Title)
		}
		return
	}

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	var ids []string
	if *chartFlag != "all" {
		for _, id := range strings.Split(*chartFlag, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.SourceTimeout)
	defer cancel()

	if *outFlag != "" {
		file, err := mod.Reports.Build(ctx, ids, format)
		if err != nil {
			log.Fatalf("❌ Report failed: %v", err)
		}
		if err := os.WriteFile(*outFlag, file.Data, 0644); err != nil {
			log.Fatalf("❌ Failed to write %s: %v", *outFlag, err)
		}
		log.Printf("✅ Wrote %d chart(s) to %s (cycle %s)", len(file.Charts), *outFlag, file.CycleID)
		return
	}

	result, err := mod.Reports.Run(ctx, ids, format)
	if err != nil {
		log.Fatalf("❌ Report failed: %v", err)
	}
	log.Printf("✅ Published %d chart(s): %s", len(result.Charts), result.File.URL)
}
