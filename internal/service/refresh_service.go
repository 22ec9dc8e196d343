package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/repository"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/valuation"
)

// RefreshResult summarizes one bulk refresh pass.
type RefreshResult struct {
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// RefreshService pulls the latest NAV data for every stored position. At
// most one bulk refresh is in flight at a time: concurrent callers join the
// running pass and share its result instead of hammering the vendor.
type RefreshService struct {
	positionRepo *repository.PositionRepository
	market       MarketClient
	concurrency  int
	group        singleflight.Group
}

// NewRefreshService creates a new RefreshService. concurrency bounds the
// number of parallel vendor requests per pass; values below 1 mean serial.
func NewRefreshService(positionRepo *repository.PositionRepository, market MarketClient, concurrency int) *RefreshService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &RefreshService{
		positionRepo: positionRepo,
		market:       market,
		concurrency:  concurrency,
	}
}

// RefreshAll refreshes the NAV data of all positions, deduplicating
// concurrent invocations.
func (s *RefreshService) RefreshAll(ctx context.Context) (RefreshResult, error) {
	result, err, shared := s.group.Do("refresh-all", func() (any, error) {
		return s.refreshAll(ctx)
	})
	if err != nil {
		return RefreshResult{}, err
	}
	if shared {
		log.Debug().Msg("Joined in-flight refresh")
	}
	return result.(RefreshResult), nil
}

func (s *RefreshService) refreshAll(ctx context.Context) (RefreshResult, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{})
	if err != nil {
		return RefreshResult{}, err
	}

	// One fetch per distinct fund code; the update is fanned out to every
	// position holding that fund.
	byCode := make(map[string][]model.Position)
	for _, p := range positions {
		byCode[p.Code] = append(byCode[p.Code], p)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	// Workers record outcomes under the mutex; every position holding a
	// fund can fail independently, so counts are unbounded per code.
	var mu sync.Mutex
	var result RefreshResult

	fail := func(code string, err error) {
		mu.Lock()
		result.Failed++
		result.Errors = append(result.Errors, code+": "+err.Error())
		mu.Unlock()
		log.Warn().Str("code", code).Err(err).Msg("Position refresh failed")
	}

	for code, holders := range byCode {
		g.Go(func() error {
			common, err := s.market.GetCommonData(gctx, code)
			if err != nil {
				fail(code, err)
				return nil // one stale fund must not abort the whole pass
			}

			navDate, err := time.Parse("2006-01-02", common.NavDate)
			if err != nil {
				navDate = time.Now().UTC()
			}

			for _, p := range holders {
				marketValue := p.HoldingShares * common.Nav
				update := model.NavUpdate{
					PositionID:   p.ID,
					CurrentNav:   common.Nav,
					LastUpdate:   navDate,
					DayChangePct: common.NavChangePercent,
					// Derived from the same pct that gets stored, so the
					// absolute and percent day changes cannot drift apart.
					DayChangeVal: valuation.DayGainValue(marketValue, common.NavChangePercent),
				}
				if err := s.positionRepo.UpdateNav(update); err != nil {
					fail(code, err)
					continue
				}
				mu.Lock()
				result.Updated++
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RefreshResult{}, err
	}

	log.Info().
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Msg("Bulk NAV refresh finished")

	return result, nil
}

// Name implements the scheduler job interface.
func (s *RefreshService) Name() string { return "nav-refresh" }

// Run implements the scheduler job interface.
func (s *RefreshService) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	_, err := s.RefreshAll(ctx)
	return err
}
