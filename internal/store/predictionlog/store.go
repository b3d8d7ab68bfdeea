package predictionlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Record is one served (non-cached) prediction, kept for diagnosis and
// model-quality review. The full result is stored as a JSON document.
type Record struct {
	TraceID        string         `json:"trace_id"`
	Fingerprint    string         `json:"fingerprint"`
	SignalType     string         `json:"signal_type"`
	SignalStrength float64        `json:"signal_strength"`
	AdvisorySource string         `json:"advisory_source,omitempty"`
	Result         map[string]any `json:"result"`
	CreatedAt      time.Time      `json:"created_at"`
}

type predictionModel struct {
	ID             int64          `gorm:"primaryKey;autoIncrement"`
	TraceID        string         `gorm:"index;size:64"`
	Fingerprint    string         `gorm:"index;size:128"`
	SignalType     string         `gorm:"size:16"`
	SignalStrength float64
	AdvisorySource string         `gorm:"size:64"`
	Result         datatypes.JSON `gorm:"type:json"`
	CreatedAt      time.Time      `gorm:"index"`
}

func (predictionModel) TableName() string { return "prediction_log" }

// Store appends prediction records to a local SQLite file via gorm.
// Failures here never fail a prediction request; callers log and move on.
type Store struct {
	db *gorm.DB
}

func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("prediction log path cannot be empty")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&predictionModel{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite + WAL: keep write contention low, allow concurrent HTTP reads.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(2)
	return &Store{db: db}, nil
}

func (s *Store) Save(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal prediction result: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m := predictionModel{
		TraceID:        rec.TraceID,
		Fingerprint:    rec.Fingerprint,
		SignalType:     rec.SignalType,
		SignalStrength: rec.SignalStrength,
		AdvisorySource: rec.AdvisorySource,
		Result:         datatypes.JSON(payload),
		CreatedAt:      rec.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(&m).Error
}

// Recent returns the newest records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var models []predictionModel
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(models))
	for _, m := range models {
		rec := Record{
			TraceID:        m.TraceID,
			Fingerprint:    m.Fingerprint,
			SignalType:     m.SignalType,
			SignalStrength: m.SignalStrength,
			AdvisorySource: m.AdvisorySource,
			CreatedAt:      m.CreatedAt,
		}
		if len(m.Result) > 0 {
			_ = json.Unmarshal(m.Result, &rec.Result)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
