package service

import (
	"context"
	"encoding/json"
	"fmt"
	"growthpath_backend/internal/config"
	"growthpath_backend/internal/model"
	"growthpath_backend/internal/repository"
	"growthpath_backend/internal/util"
	"growthpath_backend/pkg/logger"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Questionnaire{},
		&model.AssessmentAssignment{},
		&model.Assessment{},
		&model.AssessmentMessage{},
	))
	return db
}

func newTestReportService(t *testing.T, db *gorm.DB) *ReportService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Report = config.ReportConfig{
		CacheTTLMinutes: 15,
		OtherKey:        "other",
		OtherLabel:      "سایر",
		Categories: []config.ReportCategory{
			{Key: "personality", Label: "شخصیت"},
			{Key: "skills", Label: "مهارت‌ها"},
		},
		Aliases: map[string]string{"تیپ شخصیتی": "شخصیت"},
	}

	return NewReportService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewAssessmentRepository(db),
		nil, // caching off in tests
		cfg,
	)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{
		Name:      name,
		Email:     name + "@example.com",
		Password:  "x",
		Role:      model.RoleUser,
		LastLogin: time.Now(),
		LastSeen:  time.Now(),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedQuestionnaire(t *testing.T, db *gorm.DB, title, category string, maxScore float64, order int) *model.Questionnaire {
	t.Helper()
	q := &model.Questionnaire{
		Title:        title,
		Category:     &category,
		MaxScore:     &maxScore,
		DisplayOrder: order,
		Enabled:      true,
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func seedAssignment(t *testing.T, db *gorm.DB, userID, questionnaireID uint, order int) {
	t.Helper()
	require.NoError(t, db.Create(&model.AssessmentAssignment{
		UserID:          userID,
		QuestionnaireID: questionnaireID,
		DisplayOrder:    &order,
	}).Error)
}

func seedCompletedAssessment(t *testing.T, db *gorm.DB, userID, questionnaireID uint, results string, completedAt time.Time) *model.Assessment {
	t.Helper()
	a := &model.Assessment{
		UserID:          userID,
		QuestionnaireID: questionnaireID,
		Status:          model.AssessmentCompleted,
		Results:         json.RawMessage(results),
		CompletedAt:     &completedAt,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestGetUserReportNoData(t *testing.T) {
	db := openTestDB(t)
	svc := newTestReportService(t, db)
	user := seedUser(t, db, "empty")

	_, err := svc.GetUserReport(context.Background(), user.ID)
	assert.ErrorIs(t, err, util.ErrNoReportData)
}

func TestGetUserReportUnknownUser(t *testing.T) {
	db := openTestDB(t)
	svc := newTestReportService(t, db)

	_, err := svc.GetUserReport(context.Background(), 9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGetUserReportEndToEnd(t *testing.T) {
	db := openTestDB(t)
	svc := newTestReportService(t, db)

	user := seedUser(t, db, "sara")
	q1 := seedQuestionnaire(t, db, "آزمون تیپ شخصیتی", "تیپ شخصیتی", 100, 1)
	q2 := seedQuestionnaire(t, db, "آزمون مهارت", "مهارت‌ها", 50, 2)
	seedAssignment(t, db, user.ID, q1.ID, 1)
	seedAssignment(t, db, user.ID, q2.ID, 2)

	completedAt := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	seedCompletedAssessment(t, db, user.ID, q1.ID, `{
		"score": "۸۰",
		"max_score": 100,
		"summary": "نتیجه مطلوب",
		"strengths": ["خلاقیت", "پشتکار"],
		"recommendations": "• مطالعه روزانه"
	}`, completedAt)

	r, err := svc.GetUserReport(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, r.User.ID)
	assert.Equal(t, 2, r.AssignedCount)
	assert.Equal(t, 1, r.CompletedCount)
	assert.Equal(t, 0.5, r.CompletionRate)
	assert.False(t, r.IsReady)
	assert.InDelta(t, 80.0, r.OverallNormalized, 1e-9)
	require.NotNil(t, r.LastCompletedAt)
	assert.True(t, r.LastCompletedAt.Equal(completedAt))

	// the alias collapses the questionnaire category into the fixed bucket
	require.NotEmpty(t, r.Categories)
	assert.Equal(t, "شخصیت", r.Categories[0].Label)
	assert.InDelta(t, 80.0, r.Categories[0].NormalizedScore, 1e-9)

	assert.Equal(t, []string{"خلاقیت", "پشتکار"}, r.Strengths)
	assert.Equal(t, []string{"مطالعه روزانه"}, r.Recommendations)

	require.Len(t, r.PendingAssignments, 1)
	assert.Equal(t, q2.ID, r.PendingAssignments[0].QuestionnaireID)
}

func TestGetUserReportRetakeUsesLatest(t *testing.T) {
	db := openTestDB(t)
	svc := newTestReportService(t, db)

	user := seedUser(t, db, "retaker")
	q := seedQuestionnaire(t, db, "آزمون", "مهارت‌ها", 100, 1)
	seedAssignment(t, db, user.ID, q.ID, 1)

	seedCompletedAssessment(t, db, user.ID, q.ID, `{"score": 40, "max_score": 100}`,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	seedCompletedAssessment(t, db, user.ID, q.ID, `{"score": 90, "max_score": 100}`,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	r, err := svc.GetUserReport(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, r.CompletedCount)
	assert.InDelta(t, 90.0, r.OverallNormalized, 1e-9)
}

func TestGetUserReportMalformedAnalysis(t *testing.T) {
	db := openTestDB(t)
	svc := newTestReportService(t, db)

	user := seedUser(t, db, "broken")
	q := seedQuestionnaire(t, db, "آزمون", "مهارت‌ها", 100, 1)
	seedAssignment(t, db, user.ID, q.ID, 1)

	seedCompletedAssessment(t, db, user.ID, q.ID, `{not json`, time.Now())

	r, err := svc.GetUserReport(context.Background(), user.ID)
	require.NoError(t, err)

	// the attempt still counts as completed, its score degrades to zero
	assert.Equal(t, 1, r.CompletedCount)
	assert.True(t, r.IsReady)
	assert.Equal(t, 0.0, r.OverallNormalized)
}

func TestListUserReportsOrdering(t *testing.T) {
	db := openTestDB(t)
	svc := newTestReportService(t, db)

	q := seedQuestionnaire(t, db, "آزمون", "مهارت‌ها", 100, 1)

	noData := seedUser(t, db, "nodata")
	partial := seedUser(t, db, "partial")
	ready := seedUser(t, db, "ready")

	q2 := seedQuestionnaire(t, db, "آزمون دوم", "شخصیت", 100, 2)
	seedAssignment(t, db, partial.ID, q.ID, 1)
	seedAssignment(t, db, partial.ID, q2.ID, 2)
	seedCompletedAssessment(t, db, partial.ID, q.ID, `{"score": 50, "max_score": 100}`, time.Now())

	seedAssignment(t, db, ready.ID, q.ID, 1)
	seedCompletedAssessment(t, db, ready.ID, q.ID, `{"score": 70, "max_score": 100}`, time.Now())

	summaries, total, err := svc.ListUserReports(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, summaries, 3)

	assert.Equal(t, ready.ID, summaries[0].User.ID)
	assert.True(t, summaries[0].IsReady)
	assert.Equal(t, partial.ID, summaries[1].User.ID)
	assert.Equal(t, noData.ID, summaries[2].User.ID)
	assert.False(t, summaries[2].HasData)

}

func TestGetUserReportConfiguredInsightLimit(t *testing.T) {
	db := openTestDB(t)
	svc := newTestReportService(t, db)

	cfg := &config.Config{}
	cfg.Report = config.ReportConfig{MaxInsights: 14}
	svc.ApplyConfig(cfg)

	user := seedUser(t, db, "insightful")
	q1 := seedQuestionnaire(t, db, "آزمون اول", "مهارت‌ها", 100, 1)
	q2 := seedQuestionnaire(t, db, "آزمون دوم", "مهارت‌ها", 100, 2)
	seedAssignment(t, db, user.ID, q1.ID, 1)
	seedAssignment(t, db, user.ID, q2.ID, 2)

	strengths := func(prefix string) string {
		items := make([]string, 0, 8)
		for i := 0; i < 8; i++ {
			items = append(items, fmt.Sprintf("%q", fmt.Sprintf("%s %d", prefix, i)))
		}
		return "[" + strings.Join(items, ",") + "]"
	}
	seedCompletedAssessment(t, db, user.ID, q1.ID,
		`{"score": 50, "max_score": 100, "strengths": `+strengths("توانایی الف")+`}`, time.Now())
	seedCompletedAssessment(t, db, user.ID, q2.ID,
		`{"score": 50, "max_score": 100, "strengths": `+strengths("توانایی ب")+`}`, time.Now())

	r, err := svc.GetUserReport(context.Background(), user.ID)
	require.NoError(t, err)

	// 16 distinct strengths trimmed to the configured 14, not the default 12
	assert.Len(t, r.Strengths, 14)
}

func TestInvalidateWithoutRedisIsNoop(t *testing.T) {
	db := openTestDB(t)
	svc := newTestReportService(t, db)
	svc.InvalidateUserReport(1)
}
