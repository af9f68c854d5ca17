package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"skill-match/internal/app"
	"skill-match/internal/config"
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/usecase"
)

func main() {
	skills := flag.String("skills", "", "comma separated skills")
	preference := flag.String("preference", "", "free text job preference")
	jobID := flag.String("job", "", "job id for a skill gap report")
	suggest := flag.String("suggest", "", "skill autocomplete query")
	text := flag.String("text", "", `free text to extract known skills from ("-" reads stdin)`)
	catalogPath := flag.String("catalog", "", "catalog TOML file (defaults to the embedded catalog)")
	cleanup := flag.Bool("cleanup", false, "delete sessions older than SESSION_RETENTION and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if p := strings.TrimSpace(*catalogPath); p != "" {
		cfg.Catalog.Path = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	var out any
	switch {
	case *cleanup:
		n, err := usecase.NewSessionUsecase(c.Sessions, c.Catalog, c.Logger).Cleanup(ctx, cfg.App.SessionRetention)
		if err != nil {
			log.Fatalf("cleanup failed: %v", err)
		}
		out = map[string]int64{"removed": n}
	case strings.TrimSpace(*suggest) != "":
		items, err := usecase.NewSkillUsecase(c.Engine, c.Extractor, c.Redis, cfg.Redis.TTL, c.Logger).Suggestions(ctx, *suggest)
		if err != nil {
			log.Fatalf("suggestions failed: %v", err)
		}
		out = items
	case strings.TrimSpace(*text) != "":
		input := *text
		if input == "-" {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatalf("read stdin: %v", err)
			}
			input = string(b)
		}
		items, err := usecase.NewSkillUsecase(c.Engine, c.Extractor, c.Redis, cfg.Redis.TTL, c.Logger).Extract(ctx, input)
		if err != nil {
			log.Fatalf("extract failed: %v", err)
		}
		out = dto.SkillExtractResponse{Skills: items}
	case strings.TrimSpace(*jobID) != "":
		uc := usecase.NewSkillGapUsecase(c.Engine, c.Courses, c.Sessions, c.Metrics, c.Logger)
		res, err := uc.Analyze(ctx, usecase.SkillGapInput{JobID: *jobID, Skills: splitSkills(*skills)})
		if err != nil {
			log.Fatalf("skill gap failed: %v", err)
		}
		out = dto.NewSkillGapResponse(res.Report, res.Courses)
	default:
		uc := usecase.NewMatchUsecase(c.Engine, c.Sessions, c.Metrics, c.Logger)
		res, err := uc.FindMatches(ctx, usecase.MatchInput{Skills: splitSkills(*skills), JobPreference: *preference})
		if err != nil {
			log.Fatalf("match failed: %v", err)
		}
		out = dto.MatchResponse{JobMatches: dto.NewJobMatchResponses(res.Matches), SessionID: res.SessionID}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}

func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
