package database

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/go-clickhouse/ch"

	"techcommerce/frontend/config"
	"techcommerce/frontend/domain"
)

type ClickHouseDB struct {
	*ch.DB
}

// InitClickHouse opens the ClickHouse connection and makes sure the access_log table exists
func InitClickHouse(ctx context.Context, cfg *config.ClickHouseConfig) (ClickHouseDB, error) {
	// native protocol, no TLS
	db := ch.Connect(
		ch.WithDSN(cfg.GetClickHouseDSN()),
		ch.WithInsecure(true),
	)

	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return ClickHouseDB{}, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := InitAccessLogTable(ctx, db); err != nil {
		_ = db.Close()
		return ClickHouseDB{}, fmt.Errorf("failed to initialize access_log table: %w", err)
	}

	return ClickHouseDB{db}, nil
}

// InitAccessLogTable creates the access_log table if it doesn't exist
func InitAccessLogTable(ctx context.Context, db *ch.DB) error {
	_, err := db.NewCreateTable().
		Model((*AccessLogEntry)(nil)).
		Engine("MergeTree").
		Order("time, path").
		IfNotExists().
		Exec(ctx)

	return err
}

// Close closes the ClickHouse connection
func (c ClickHouseDB) Close() error {
	if c.DB == nil {
		return nil
	}
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("failed to close ClickHouse connection: %w", err)
	}
	return nil
}

// AccessLogEntry is the access_log table structure
type AccessLogEntry struct {
	ch.CHModel `ch:"table:access_log,partition:toYYYYMMDD(time)"`
	Service    string    `ch:"service,lc"`
	Method     string    `ch:"method,lc"`
	Path       string    `ch:"path"`
	Status     uint16    `ch:"status"`
	DurationUS int64     `ch:"duration_us"`
	Time       time.Time `ch:"time"`

	IngestedAt time.Time `ch:"ingested_at,default:now()"`
}

// AccessLogColumnar holds access_log rows in columnar format for batch inserts
type AccessLogColumnar struct {
	ch.CHModel `ch:"table:access_log,partition:toYYYYMMDD(time),columnar"`
	Service    []string    `ch:"service,lc"`
	Method     []string    `ch:"method,lc"`
	Path       []string    `ch:"path"`
	Status     []uint16    `ch:"status"`
	DurationUS []int64     `ch:"duration_us"`
	Time       []time.Time `ch:"time"`

	IngestedAt []time.Time `ch:"ingested_at,default:now()"`
}

// SaveAccessRecords inserts records column by column in a single insert
func (c ClickHouseDB) SaveAccessRecords(ctx context.Context, records []domain.AccessRecord) error {
	if c.DB == nil {
		return fmt.Errorf("database connection is nil")
	}
	if len(records) == 0 {
		return nil
	}

	_, err := c.DB.NewInsert().
		Model(toColumnar(records, time.Now())).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to columnar insert access records: %w", err)
	}
	return nil
}

func toColumnar(records []domain.AccessRecord, ingestedAt time.Time) *AccessLogColumnar {
	n := len(records)
	model := &AccessLogColumnar{
		Service:    make([]string, 0, n),
		Method:     make([]string, 0, n),
		Path:       make([]string, 0, n),
		Status:     make([]uint16, 0, n),
		DurationUS: make([]int64, 0, n),
		Time:       make([]time.Time, 0, n),
		IngestedAt: make([]time.Time, 0, n),
	}
	for _, r := range records {
		model.Service = append(model.Service, domain.ServiceName)
		model.Method = append(model.Method, r.Method)
		model.Path = append(model.Path, r.Path)
		model.Status = append(model.Status, uint16(r.Status))
		model.DurationUS = append(model.DurationUS, r.Duration.Microseconds())
		model.Time = append(model.Time, r.Time.UTC())
		model.IngestedAt = append(model.IngestedAt, ingestedAt)
	}
	return model
}
