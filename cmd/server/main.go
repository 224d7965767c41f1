package main

import (
	"net/http"

	"github.com/Jimmysmirlies/cheerbase/internal/config"
	"github.com/Jimmysmirlies/cheerbase/internal/db"
	"github.com/Jimmysmirlies/cheerbase/internal/logging"
	"github.com/Jimmysmirlies/cheerbase/internal/store"
	"github.com/Jimmysmirlies/cheerbase/internal/web"
)

func main() {
	logger := logging.New("info")

	cfg := config.Load(logger)
	logger = logging.New(cfg.LogLevel)

	if err := db.Init(cfg.DBPath, logger); err != nil {
		logger.Fatal().Err(err).Msg("db init failed")
	}

	repo := store.NewGorm(db.Conn())
	r := web.Router(db.Conn(), repo, logger)

	logger.Info().Str("addr", cfg.Addr).Msg("cheerbase listening")
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
