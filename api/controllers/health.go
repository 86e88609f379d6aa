package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/warmpaws/warmpaws-backend/api/responses"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Liveness answers as long as the process can serve requests at all.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Health reports process liveness plus dependency reachability.
func Health(db pinger, cache pinger) http.HandlerFunc {
	check := func(ctx context.Context, p pinger) string {
		if p == nil {
			return "disabled"
		}
		if err := p.Ping(ctx); err != nil {
			return "down"
		}
		return "up"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbState := check(ctx, db)
		cacheState := check(ctx, cache)

		status := http.StatusOK
		if dbState == "down" {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccess(w, status, map[string]string{
			"status": "ok",
			"db":     dbState,
			"redis":  cacheState,
		})
	}
}
