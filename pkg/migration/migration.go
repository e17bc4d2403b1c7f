// Package migration provides a batch-tracked database migration runner.
//
// Usage (in database/migrations):
//
//	func init() {
//	    migration.Register("20260101000000_create_customer_table", &CreateCustomerTable{})
//	}
//
//	type CreateCustomerTable struct{}
//	func (m *CreateCustomerTable) Up(db *gorm.DB) error {
//	    return db.AutoMigrate(&models.Customer{})
//	}
//	func (m *CreateCustomerTable) Down(db *gorm.DB) error {
//	    return db.Migrator().DropTable("customer")
//	}
//
// Run from CLI:
//
//	storefront migrate             // run all pending
//	storefront migrate:rollback    // rollback last batch
//	storefront migrate:status      // list ran / pending
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// Entry pairs a migration with its timestamp-prefixed name.
type Entry struct {
	Name      string
	Migration Migration
}

// record is the row stored in the tracking table.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "storefront_migrations" }

// StatusLine describes one migration in Status output.
type StatusLine struct {
	Name  string
	Ran   bool
	Batch int
}

// ErrNoMigrations is returned when a runner has nothing registered.
var ErrNoMigrations = errors.New("no migrations registered")

// ------------------- Registry -------------------

var (
	mu       sync.Mutex
	registry []Entry
)

// Register adds a migration to the process registry. Call it from init()
// in each migration file; names must sort chronologically.
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, Entry{Name: name, Migration: m})
}

// Registered returns a copy of the process registry.
func Registered() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db         *gorm.DB
	out        io.Writer
	migrations []Entry
}

// New creates a Runner over the given migrations. A nil out discards the
// progress output.
func New(db *gorm.DB, out io.Writer, migrations []Entry) *Runner {
	if out == nil {
		out = io.Discard
	}
	sorted := make([]Entry, len(migrations))
	copy(sorted, migrations)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Runner{db: db, out: out, migrations: sorted}
}

// NewDefault creates a Runner over everything passed to Register.
func NewDefault(db *gorm.DB, out io.Writer) *Runner {
	return New(db, out, Registered())
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&record{})
}

// Pending returns the migrations that have not yet been run, by name.
func (r *Runner) Pending() ([]Entry, error) {
	ran, err := r.ranSet()
	if err != nil {
		return nil, err
	}
	var pending []Entry
	for _, e := range r.migrations {
		if _, ok := ran[e.Name]; !ok {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// Run executes all pending migrations as one batch and returns how many ran.
func (r *Runner) Run() (int, error) {
	if len(r.migrations) == 0 {
		return 0, ErrNoMigrations
	}
	if err := r.EnsureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.Pending()
	if err != nil {
		return 0, fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	batch++

	for _, e := range pending {
		logger.Info("migration: running", "name", e.Name, "batch", batch)
		fmt.Fprintf(r.out, "  Migrating: %s\n", e.Name)

		if err := e.Migration.Up(r.db); err != nil {
			return 0, fmt.Errorf("migration: %s up: %w", e.Name, err)
		}
		if err := r.db.Create(&record{Name: e.Name, Batch: batch}).Error; err != nil {
			return 0, fmt.Errorf("migration: record %s: %w", e.Name, err)
		}

		fmt.Fprintf(r.out, "  Migrated:  %s\n", e.Name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return len(pending), nil
}

// Rollback reverses every migration of the most recent batch, newest first,
// and returns how many were rolled back.
func (r *Runner) Rollback() (int, error) {
	if err := r.EnsureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var records []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return 0, fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	known := make(map[string]Migration, len(r.migrations))
	for _, e := range r.migrations {
		known[e.Name] = e.Migration
	}

	for _, rec := range records {
		m, ok := known[rec.Name]
		if !ok {
			return 0, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "  Rolling back: %s\n", rec.Name)
		logger.Info("migration: rolling back", "name", rec.Name, "batch", batch)

		if err := m.Down(r.db); err != nil {
			return 0, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&record{}, rec.ID).Error; err != nil {
			return 0, fmt.Errorf("migration: forget %s: %w", rec.Name, err)
		}

		fmt.Fprintf(r.out, "  Rolled back:  %s\n", rec.Name)
	}
	return len(records), nil
}

// Status reports every known migration and prints a table to the runner's
// output.
func (r *Runner) Status() ([]StatusLine, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, err
	}
	ran, err := r.ranSet()
	if err != nil {
		return nil, err
	}

	lines := make([]StatusLine, 0, len(r.migrations))
	fmt.Fprintf(r.out, "%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Fprintln(r.out, strings.Repeat("-", 80))
	for _, e := range r.migrations {
		line := StatusLine{Name: e.Name}
		if b, ok := ran[e.Name]; ok {
			line.Ran, line.Batch = true, b
			fmt.Fprintf(r.out, "%-60s  %-8s  %d\n", e.Name, "Ran", b)
		} else {
			fmt.Fprintf(r.out, "%-60s  %-8s  -\n", e.Name, "Pending")
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *Runner) ranSet() (map[string]int, error) {
	var ran []record
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, err
	}
	set := make(map[string]int, len(ran))
	for _, rec := range ran {
		set[rec.Name] = rec.Batch
	}
	return set, nil
}

func (r *Runner) lastBatch() (int, error) {
	var last sql.NullInt64
	if err := r.db.Model(&record{}).Select("MAX(batch)").Row().Scan(&last); err != nil {
		return 0, err
	}
	return int(last.Int64), nil
}
