package service

import (
	"context"
	"fmt"
	"time"

	"flashcards/internal/repository"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ProbeResult describes what the probe found in the foreign database
type ProbeResult struct {
	Table   string
	Present bool
	Rows    int
}

// ProbeService checks that an unrelated data source is reachable and logs its size.
// It has no effect on card sessions.
type ProbeService struct {
	probeRepo repository.ProbeRepository
	table     string
	breaker   *gobreaker.CircuitBreaker
	logger    *zap.Logger
}

// NewProbeService creates a new probe service
func NewProbeService(probeRepo repository.ProbeRepository, table string, logger *zap.Logger) *ProbeService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "probe:" + table,
		Timeout: 5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Probe breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &ProbeService{
		probeRepo: probeRepo,
		table:     table,
		breaker:   breaker,
		logger:    logger,
	}
}

// Check looks for the table and counts its rows. A missing table is not an error.
func (s *ProbeService) Check(ctx context.Context) (ProbeResult, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		exists, err := s.probeRepo.TableExists(ctx, s.table)
		if err != nil {
			return nil, fmt.Errorf("failed to look up table %s: %w", s.table, err)
		}
		if !exists {
			return ProbeResult{Table: s.table}, nil
		}

		count, err := s.probeRepo.CountRows(ctx, s.table)
		if err != nil {
			return nil, fmt.Errorf("failed to count rows in %s: %w", s.table, err)
		}
		return ProbeResult{Table: s.table, Present: true, Rows: count}, nil
	})
	if err != nil {
		s.logger.Error("Probe failed", zap.String("table", s.table), zap.Error(err))
		return ProbeResult{Table: s.table}, err
	}

	result := res.(ProbeResult)
	if !result.Present {
		s.logger.Info("Probe table not found", zap.String("table", s.table))
		return result, nil
	}

	s.logger.Info("Probe table found",
		zap.String("table", s.table),
		zap.Int("rows", result.Rows),
	)
	return result, nil
}
