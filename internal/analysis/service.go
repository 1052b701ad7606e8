package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dermalyze/dermalyze/internal/scoring"
)

var (
	// ErrEmptyUpload is returned when the staged upload contains no bytes.
	ErrEmptyUpload = errors.New("uploaded file is empty")
	// ErrScoringFailed wraps any failure from the scoring service. No record
	// exists when this is returned.
	ErrScoringFailed = errors.New("scoring failed")
	// ErrPersistFailed wraps a record-store failure after a successful score.
	// The scoring cost is not refunded and the stale result is never reused;
	// the caller resubmits the whole request.
	ErrPersistFailed = errors.New("persisting analysis failed")
)

// ScoringMetrics records predict workflow outcomes.
type ScoringMetrics interface {
	RecordScoring(outcome string)
}

// Outcome values reported to ScoringMetrics.
const (
	OutcomeSuccess       = "success"
	OutcomeScoringFailed = "scoring_failed"
	OutcomePersistFailed = "persist_failed"
)

// Service runs the predict workflow: stage the upload, score it, persist the
// result under the caller's identity, and release the staged file on every
// path.
type Service struct {
	repo      Repository
	scorer    scoring.Scorer
	uploadDir string
	logger    *slog.Logger
	metrics   ScoringMetrics
}

// NewService builds the predict orchestrator. metrics may be nil.
func NewService(repo Repository, scorer scoring.Scorer, uploadDir string, logger *slog.Logger, metrics ScoringMetrics) *Service {
	return &Service{repo: repo, scorer: scorer, uploadDir: uploadDir, logger: logger, metrics: metrics}
}

// Predict stages the upload, invokes the scorer exactly once and persists the
// outcome for userID. The staged file is deleted before returning, whether
// the workflow succeeds, scoring fails, persistence fails, or the context is
// cancelled mid-flight.
func (s *Service) Predict(ctx context.Context, userID string, upload io.Reader, filename string) (Record, error) {
	staged, err := s.stage(upload, filename)
	if err != nil {
		return Record{}, err
	}
	defer s.release(staged)

	result, err := s.scorer.Score(ctx, staged)
	if err != nil {
		s.record(OutcomeScoringFailed)
		return Record{}, fmt.Errorf("%w: %w", ErrScoringFailed, err)
	}

	image, err := os.ReadFile(staged)
	if err != nil {
		s.record(OutcomePersistFailed)
		return Record{}, fmt.Errorf("%w: reread staged image: %w", ErrPersistFailed, err)
	}

	record := Record{
		ID:         uuid.New().String(),
		UserID:     userID,
		Label:      result.Label,
		Confidence: result.Confidence,
		ImageName:  filename,
		Image:      image,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.record(OutcomePersistFailed)
		return Record{}, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	s.record(OutcomeSuccess)
	return record, nil
}

// History returns the user's analysis records, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Record, error) {
	return s.repo.ListByUser(ctx, userID)
}

// stage copies the upload to a uniquely named file under the upload
// directory and returns its path.
func (s *Service) stage(upload io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.uploadDir, uuid.NewString()+filepath.Ext(filename))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}

	written, err := io.Copy(file, upload)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.release(path)
		return "", fmt.Errorf("stage upload: %w", err)
	}
	if written == 0 {
		s.release(path)
		return "", ErrEmptyUpload
	}
	return path, nil
}

func (s *Service) release(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) && s.logger != nil {
		s.logger.Warn("release staged upload", "path", path, "error", err)
	}
}

func (s *Service) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordScoring(outcome)
	}
}
