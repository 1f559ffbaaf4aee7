package sheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prtrack/internal/pr"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// row is the GORM mapping for one stored record.
type row struct {
	ID          string `gorm:"primaryKey"`
	PRNumber    string `gorm:"column:pr_number;not null"`
	Date        string `gorm:"not null"`
	RequestedBy string `gorm:"not null"`
	Vendor      string
	Description string
	Timestamp   int64 `gorm:"not null;default:0"`
}

func (row) TableName() string { return "pr_records" }

// DB is the Postgres-backed protocol Backend. Unlike the clients' advisory
// read-then-check, uniqueness is held by a database index, so concurrent
// writers cannot slip a duplicate past it.
type DB struct {
	gdb *gorm.DB
}

func Open(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&row{}); err != nil {
		return nil, err
	}
	// Case-insensitive uniqueness on the PR number.
	if err := gdb.Exec(`create unique index if not exists uq_pr_records_number on pr_records (lower(pr_number));`).Error; err != nil {
		return nil, err
	}

	return &DB{gdb: gdb}, nil
}

func (d *DB) All(ctx context.Context) ([]pr.Record, error) {
	var rows []row
	if err := d.gdb.WithContext(ctx).Order("timestamp desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]pr.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, pr.Record{
			ID:          r.ID,
			PRNumber:    r.PRNumber,
			Date:        r.Date,
			RequestedBy: r.RequestedBy,
			Vendor:      r.Vendor,
			Description: r.Description,
			Timestamp:   r.Timestamp,
		})
	}
	return out, nil
}

func (d *DB) Add(ctx context.Context, rec pr.Record) error {
	err := d.gdb.WithContext(ctx).Create(&row{
		ID:          rec.ID,
		PRNumber:    rec.PRNumber,
		Date:        rec.Date,
		RequestedBy: rec.RequestedBy,
		Vendor:      rec.Vendor,
		Description: rec.Description,
		Timestamp:   rec.Timestamp,
	}).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", pr.ErrDuplicatePR, rec.PRNumber)
	}
	return err
}

func (d *DB) Update(ctx context.Context, rec pr.Record) error {
	// A missing id updates zero rows, which is the protocol's no-op.
	err := d.gdb.WithContext(ctx).Model(&row{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"pr_number":    rec.PRNumber,
		"date":         rec.Date,
		"requested_by": rec.RequestedBy,
		"vendor":       rec.Vendor,
		"description":  rec.Description,
		"timestamp":    rec.Timestamp,
	}).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", pr.ErrDuplicatePR, rec.PRNumber)
	}
	return err
}

func (d *DB) Delete(ctx context.Context, id string) error {
	return d.gdb.WithContext(ctx).Delete(&row{}, "id = ?", id).Error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
