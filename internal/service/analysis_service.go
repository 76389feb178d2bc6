package service

import (
	"errors"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/analysis"
	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// AnalysisService loads a workspace's records and active vehicle and runs the
// analysis engine over them. Analyses are recomputed on every call.
type AnalysisService struct {
	recordRepo domain.DailyRecordRepository
	configRepo domain.CarConfigRepository
	policy     analysis.Policy
}

// NewAnalysisService creates a new AnalysisService using the given cost rules
func NewAnalysisService(recordRepo domain.DailyRecordRepository, configRepo domain.CarConfigRepository, policy analysis.Policy) *AnalysisService {
	return &AnalysisService{
		recordRepo: recordRepo,
		configRepo: configRepo,
		policy:     policy,
	}
}

// CategoryBreakdown lists a period's expense and extra earning categories,
// largest first
type CategoryBreakdown struct {
	Period   domain.Period
	Expenses []analysis.CategoryAmount
	Earnings []analysis.CategoryAmount
}

// load fetches every record and the active vehicle concurrently. Extra
// earnings count on their own date, which may fall outside their record's
// period, so records are not filtered by date here.
func (s *AnalysisService) load(workspaceID int32) ([]*domain.DailyRecord, *domain.CarConfig, error) {
	var (
		records []*domain.DailyRecord
		config  *domain.CarConfig
		g       errgroup.Group
	)

	g.Go(func() error {
		var err error
		records, err = s.recordRepo.GetAll(workspaceID, nil)
		return err
	})
	g.Go(func() error {
		active, err := s.configRepo.GetActive(workspaceID)
		if errors.Is(err, domain.ErrNoActiveCarConfig) {
			return nil
		}
		config = active
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to load analysis inputs")
		return nil, nil, err
	}
	return records, config, nil
}

// AnalyzeDay returns the analysis of a single date, nil when nothing was
// recorded that day
func (s *AnalysisService) AnalyzeDay(workspaceID int32, date time.Time) (*domain.PerformanceAnalysis, error) {
	records, config, err := s.load(workspaceID)
	if err != nil {
		return nil, err
	}
	return analysis.AnalyzeDay(date, records, config, s.policy), nil
}

// AnalyzePeriod returns the week or month analysis containing the anchor date
func (s *AnalysisService) AnalyzePeriod(workspaceID int32, kind domain.PeriodKind, anchor time.Time) (*domain.PerformanceAnalysis, error) {
	if kind != domain.PeriodWeek && kind != domain.PeriodMonth {
		return nil, domain.ErrInvalidPeriod
	}

	records, config, err := s.load(workspaceID)
	if err != nil {
		return nil, err
	}
	return analysis.AnalyzePeriod(anchor, kind, records, config, s.policy), nil
}

// Categories returns the sorted category totals of the week or month
// containing the anchor date
func (s *AnalysisService) Categories(workspaceID int32, kind domain.PeriodKind, anchor time.Time) (*CategoryBreakdown, error) {
	a, err := s.AnalyzePeriod(workspaceID, kind, anchor)
	if err != nil {
		return nil, err
	}
	return &CategoryBreakdown{
		Period:   a.Period,
		Expenses: analysis.SortedCategories(a.ExpensesByCategory),
		Earnings: analysis.SortedCategories(a.EarningsByCategory),
	}, nil
}
