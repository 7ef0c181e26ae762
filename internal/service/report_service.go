package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"growthpath_backend/internal/config"
	"growthpath_backend/internal/model"
	"growthpath_backend/internal/report"
	"growthpath_backend/internal/repository"
	"growthpath_backend/internal/util"
	"growthpath_backend/pkg/logger"
	"growthpath_backend/pkg/monitoring"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportService assembles the aggregated final report from a user's plan and
// completed attempts. Built reports are cached in redis; a nil redis client
// disables caching rather than failing.
type ReportService struct {
	UserRepo       *repository.UserRepository
	AssignmentRepo *repository.AssignmentRepository
	AssessmentRepo *repository.AssessmentRepository
	Redis          *redis.Client

	mu          sync.RWMutex
	taxonomy    report.Taxonomy
	cacheTTL    time.Duration
	maxInsights int
}

func NewReportService(
	userRepo *repository.UserRepository,
	assignmentRepo *repository.AssignmentRepository,
	assessmentRepo *repository.AssessmentRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *ReportService {
	s := &ReportService{
		UserRepo:       userRepo,
		AssignmentRepo: assignmentRepo,
		AssessmentRepo: assessmentRepo,
		Redis:          rdb,
	}
	s.ApplyConfig(cfg)
	return s
}

// ApplyConfig installs the taxonomy and cache TTL from config. It is also the
// hot-reload entry point used by the config watcher.
func (s *ReportService) ApplyConfig(cfg *config.Config) {
	tax := taxonomyFromConfig(cfg.Report)

	ttl := time.Duration(cfg.Report.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	maxInsights := cfg.Report.MaxInsights
	if maxInsights <= 0 {
		maxInsights = report.DefaultMaxInsights
	}

	s.mu.Lock()
	s.taxonomy = tax
	s.cacheTTL = ttl
	s.maxInsights = maxInsights
	s.mu.Unlock()
}

func taxonomyFromConfig(rc config.ReportConfig) report.Taxonomy {
	if len(rc.Categories) == 0 {
		return report.DefaultTaxonomy()
	}

	tax := report.Taxonomy{
		Aliases:    rc.Aliases,
		OtherKey:   rc.OtherKey,
		OtherLabel: rc.OtherLabel,
	}
	for _, c := range rc.Categories {
		tax.Categories = append(tax.Categories, report.Category{Key: c.Key, Label: c.Label})
	}
	return tax
}

func (s *ReportService) snapshot() (report.Taxonomy, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taxonomy, s.cacheTTL
}

func reportCacheKey(userID uint) string {
	return fmt.Sprintf("report:final:%d", userID)
}

// GetUserReport returns the aggregated final report, serving from cache when
// possible. ErrNoReportData is returned when the user has neither a plan nor
// any completed attempt.
func (s *ReportService) GetUserReport(ctx context.Context, userID uint) (*report.AggregatedFinalReport, error) {
	tax, ttl := s.snapshot()

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, reportCacheKey(userID)).Bytes()
		if err == nil {
			var r report.AggregatedFinalReport
			if json.Unmarshal(cached, &r) == nil {
				monitoring.ReportBuildCounter.WithLabelValues("cache").Inc()
				return &r, nil
			}
		}
	}

	r, err := s.buildReport(userID, tax)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(r); err == nil {
			if err := s.Redis.Set(ctx, reportCacheKey(userID), data, ttl).Err(); err != nil {
				logger.Log.Warn("report cache write failed", zap.Uint("userId", userID), zap.Error(err))
			}
		}
	}

	return r, nil
}

func (s *ReportService) buildReport(userID uint, tax report.Taxonomy) (*report.AggregatedFinalReport, error) {
	start := time.Now()

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	assignments, err := s.AssignmentRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.AssessmentRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	limit := s.maxInsights
	s.mu.RUnlock()

	r := report.BuildReport(
		report.UserBasicInfo{ID: user.ID, Name: user.Name, Email: user.Email, Avatar: user.Avatar},
		toReportAssignments(assignments),
		parseCompletions(completed, tax),
		tax,
		limit,
	)
	if r == nil {
		return nil, util.ErrNoReportData
	}

	monitoring.ReportBuildCounter.WithLabelValues("build").Inc()
	monitoring.ReportBuildDuration.Observe(time.Since(start).Seconds())

	return r, nil
}

func toReportAssignments(assignments []model.AssessmentAssignment) []report.Assignment {
	out := make([]report.Assignment, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, report.Assignment{
			UserID:             a.UserID,
			QuestionnaireID:    a.QuestionnaireID,
			QuestionnaireTitle: a.Questionnaire.Title,
			DisplayOrder:       a.DisplayOrder,
			Category:           a.Questionnaire.Category,
			MaxScore:           a.Questionnaire.MaxScore,
		})
	}
	return out
}

func parseCompletions(assessments []model.Assessment, tax report.Taxonomy) []report.ParsedCompletion {
	out := make([]report.ParsedCompletion, 0, len(assessments))
	for _, a := range assessments {
		var raw interface{}
		if len(a.Results) > 0 {
			if err := json.Unmarshal(a.Results, &raw); err != nil {
				// a malformed blob degrades to an empty analysis
				logger.Log.Warn("unparseable analysis blob",
					zap.String("assessmentId", a.ID),
					zap.Error(err))
				raw = nil
			}
		}

		order := a.Questionnaire.DisplayOrder
		out = append(out, report.ParseCompletion(report.CompletionRow{
			AssessmentID:              a.ID,
			UserID:                    a.UserID,
			QuestionnaireID:           a.QuestionnaireID,
			QuestionnaireTitle:        a.Questionnaire.Title,
			QuestionnaireDisplayOrder: &order,
			Category:                  a.Questionnaire.Category,
			CompletedAt:               a.CompletedAt,
			RawAnalysis:               raw,
			MaxScore:                  a.Questionnaire.MaxScore,
		}, tax))
	}
	return out
}

// InvalidateUserReport drops the cached report after anything that changes
// its inputs: a completed attempt or a plan update.
func (s *ReportService) InvalidateUserReport(userID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), reportCacheKey(userID)).Err(); err != nil {
		logger.Log.Warn("report cache invalidation failed", zap.Uint("userId", userID), zap.Error(err))
	}
}

// UserReportSummary is one row of the admin cohort listing.
type UserReportSummary struct {
	User            report.UserBasicInfo `json:"user"`
	HasData         bool                 `json:"hasData"`
	IsReady         bool                 `json:"isReady"`
	AssignedCount   int                  `json:"assignedCount"`
	CompletedCount  int                  `json:"completedCount"`
	CompletionRate  float64              `json:"completionRate"`
	OverallScore    float64              `json:"overallScore"`
	LastCompletedAt *time.Time           `json:"lastCompletedAt"`
}

// ListUserReports builds a cohort overview for admins. Users with data come
// first, ready reports before partial ones, then by completion rate and
// recency.
func (s *ReportService) ListUserReports(ctx context.Context, page, limit int) ([]UserReportSummary, int64, error) {
	tax, _ := s.snapshot()

	users, total, err := s.UserRepo.ListActiveUsers(page, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]UserReportSummary, 0, len(users))
	for _, u := range users {
		summary := UserReportSummary{
			User: report.UserBasicInfo{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar},
		}

		r, err := s.buildReport(u.ID, tax)
		if err == nil {
			summary.HasData = true
			summary.IsReady = r.IsReady
			summary.AssignedCount = r.AssignedCount
			summary.CompletedCount = r.CompletedCount
			summary.CompletionRate = r.CompletionRate
			summary.OverallScore = r.OverallNormalized
			summary.LastCompletedAt = r.LastCompletedAt
		} else if !errors.Is(err, util.ErrNoReportData) {
			return nil, 0, err
		}

		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.HasData != b.HasData {
			return a.HasData
		}
		if a.IsReady != b.IsReady {
			return a.IsReady
		}
		if a.CompletionRate != b.CompletionRate {
			return a.CompletionRate > b.CompletionRate
		}
		at, bt := a.LastCompletedAt, b.LastCompletedAt
		if at != nil && bt != nil && !at.Equal(*bt) {
			return at.After(*bt)
		}
		return at != nil && bt == nil
	})

	return summaries, total, nil
}
