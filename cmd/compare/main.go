package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spectralens/commonground/pkg/analysis"
	"github.com/spectralens/commonground/pkg/config"
	"github.com/spectralens/commonground/pkg/generator"
	"github.com/spectralens/commonground/pkg/logger"
	"github.com/spectralens/commonground/pkg/model"
)

// compare runs the comparison engine against a JSON file of article
// records and prints the result, without standing up the HTTP service.
func main() {
	var (
		configPath   = flag.String("config", "config.yaml", "config file path")
		articlesPath = flag.String("articles", "", "JSON file holding an array of article records")
		analytical   = flag.Bool("analytical", false, "emit the richer analytical comparison shape")
		remote       = flag.Bool("remote", false, "try the remote generator before the local engine")
	)
	flag.Parse()

	if *articlesPath == "" {
		fmt.Fprintln(os.Stderr, "usage: compare -articles articles.json [-analytical] [-remote]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "cannot init logger: %v\n", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*articlesPath)
	if err != nil {
		logger.Log.Fatalf("cannot read articles: %v", err)
	}
	var articles []model.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		logger.Log.Fatalf("cannot parse articles: %v", err)
	}
	if len(articles) < 2 {
		logger.Log.Fatal("need at least 2 articles to compare")
	}

	var out any
	switch {
	case *analytical:
		out = analysis.Analyze(articles)
	case *remote:
		out = remoteCompare(cfg, articles)
	default:
		out = analysis.Compare(articles)
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Log.Fatalf("cannot encode result: %v", err)
	}
	fmt.Println(string(encoded))
}

// remoteCompare mirrors the service path: remote generation first,
// local engine on any failure. The raw remote object is printed as-is;
// normalization belongs to the service layer.
func remoteCompare(cfg *config.Config, articles []model.Article) any {
	ctx := context.Background()
	client, err := generator.New(ctx, generator.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		QPS:     cfg.Concurrency.QPS,
		RPM:     cfg.Concurrency.RPM,
	})
	if err != nil {
		logger.Log.Fatalf("cannot build generator client: %v", err)
	}

	obj, failure := client.AnalyzeComparison(ctx, articles)
	if failure != nil {
		logger.Log.Warnf("remote comparison failed (%s), using local engine: %v", failure.Reason, failure.Err)
		return analysis.Compare(articles)
	}
	return obj
}
