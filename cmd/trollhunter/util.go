package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/fediwatch/trollhunter/indicators"
	"github.com/fediwatch/trollhunter/indicators/keyword"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v2"
)

const keywordsConfigFile = "trollhunter/keywords.json"

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// Path of the keyword list file to load, or "" to use the built-in lists.
// An explicit flag wins; otherwise the XDG config location is used if a file exists there.
func keywordsPath(cctx *cli.Context) string {
	if p := cctx.String("keywords-file"); p != "" {
		return p
	}
	p, err := xdg.SearchConfigFile(keywordsConfigFile)
	if err != nil {
		// not present in any config dir
		return ""
	}
	return p
}

func loadRules(cctx *cli.Context, logger *slog.Logger) (*indicators.Rules, error) {
	cfg := indicators.DefaultConfig()
	if p := keywordsPath(cctx); p != "" {
		lists, err := keyword.LoadListsJSON(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("keywords file not found: %s", p)
			}
			return nil, fmt.Errorf("loading keywords file: %w", err)
		}
		logger.Info("loaded keyword lists", "path", p, "lists", len(lists))
		cfg = cfg.WithLists(lists)
	}
	return indicators.NewRules(cfg), nil
}

