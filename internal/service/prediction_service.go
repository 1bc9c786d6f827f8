package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fatiguelens/internal/advisor"
	"fatiguelens/internal/audit"
	"fatiguelens/internal/cache"
	"fatiguelens/internal/classifier"
	"fatiguelens/internal/metrics"
	"fatiguelens/internal/models"
	"fatiguelens/internal/redisstore"
	"fatiguelens/internal/scoring"
)

// PredictionService runs the inference pipeline: oracle, classifier, advisor,
// then hands the trace to the async audit logger and the last-result cache.
type PredictionService struct {
	oracle     scoring.Oracle
	ladder     classifier.Ladder
	policy     advisor.Policy
	auditLog   *audit.Logger
	lastResult *cache.LastResult
	mirror     *redisstore.Store
	metrics    *metrics.Metrics
	logger     *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewPredictionService builds the service. mirror may be nil when redis is not
// configured.
func NewPredictionService(
	oracle scoring.Oracle,
	ladder classifier.Ladder,
	policy advisor.Policy,
	auditLog *audit.Logger,
	lastResult *cache.LastResult,
	mirror *redisstore.Store,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PredictionService {
	return &PredictionService{
		oracle:     oracle,
		ladder:     ladder,
		policy:     policy,
		auditLog:   auditLog,
		lastResult: lastResult,
		mirror:     mirror,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Predict scores a normalized telemetry record. On oracle failure nothing is
// cached or audited; the error propagates to the handler. On success the audit
// submission has already been dispatched and cannot delay or fail the caller.
func (s *PredictionService) Predict(ctx context.Context, rec models.TelemetryRecord) (models.Prediction, error) {
	score, err := s.oracle.Score(rec)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("predict: %w", err)
	}

	category := s.ladder.Classify(score)
	recommendations := s.policy.Recommend(rec, score)

	now := s.now().UTC()
	rounded := round2(score)
	prediction := models.Prediction{
		Score:           rounded,
		Category:        category,
		Recommendations: recommendations,
		GeneratedAt:     now,
	}

	s.auditLog.Submit(models.AuditRecord{
		ID:              s.newID(),
		Age:             rec.Age,
		SocialMediaTime: rec.SocialMediaTimeHours,
		ScreenTime:      rec.ScreenTimeHours,
		Platform:        rec.PrimaryPlatform,
		Prediction:      rounded,
		Category:        category,
		CreatedAt:       now,
	})

	snapshot := models.Snapshot{Input: rec, Output: prediction}
	s.lastResult.Set(snapshot)

	if s.mirror != nil {
		if err := s.mirror.Save(ctx, snapshot); err != nil {
			s.logger.Warn("failed to mirror last prediction", zap.Error(err))
		}
	}

	s.metrics.Predictions.Inc()
	return prediction, nil
}

// Latest returns the most recent snapshot for the read-only fallback. The
// in-process slot wins; the redis mirror only answers after a restart.
func (s *PredictionService) Latest(ctx context.Context) (models.Snapshot, bool) {
	if snap, ok := s.lastResult.Get(); ok {
		s.metrics.FallbackReads.Inc()
		return snap, true
	}

	if s.mirror != nil {
		snap, err := s.mirror.Get(ctx)
		if err == nil && snap != nil {
			s.lastResult.Set(*snap)
			s.metrics.FallbackReads.Inc()
			return *snap, true
		}
		if err != nil && err != redis.Nil {
			s.logger.Warn("failed to read mirrored prediction", zap.Error(err))
		}
	}

	s.metrics.FallbackMisses.Inc()
	return models.Snapshot{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
