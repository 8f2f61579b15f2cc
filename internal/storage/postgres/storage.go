package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/model"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage depends on.
// Narrowed to an interface so tests can substitute pgxmock.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type configRepository struct {
	storage *Storage
}

type adminRepository struct {
	storage *Storage
}

// New creates storage with schema initialization and config seeding.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Config() repository.ConfigRepository {
	return &configRepository{storage: s}
}

func (s *Storage) Admins() repository.AdminRepository {
	return &adminRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            udid TEXT NOT NULL,
            image_url TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            download_link TEXT NOT NULL DEFAULT '#',
            price TEXT NOT NULL DEFAULT 'N/A',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS config (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS admins (
            id SERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, id DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return s.seedConfig(ctx)
}

func (s *Storage) seedConfig(ctx context.Context) error {
	defaults := map[string]string{
		model.ConfigKeyPublicImage: model.DefaultPublicImageURL,
	}
	for i := 1; i <= model.GallerySlots; i++ {
		defaults[model.GalleryKey(i)] = fmt.Sprintf("%s %d", model.DefaultGalleryImage, i)
	}

	const insert = `INSERT INTO config (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`
	for key, value := range defaults {
		if _, err := s.pool.Exec(ctx, insert, key, value); err != nil {
			return fmt.Errorf("seed config: %w", err)
		}
	}
	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, draft repository.OrderDraft) (*model.Order, error) {
	const query = `INSERT INTO orders (name, udid, image_url, price, download_link, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at`
	order := model.Order{
		Name:         draft.Name,
		UDID:         draft.UDID,
		ImageURL:     draft.ImageURL,
		Price:        draft.Price,
		DownloadLink: draft.DownloadLink,
		Status:       model.OrderStatusPending,
	}
	if order.DownloadLink == "" {
		order.DownloadLink = model.DefaultDownloadLink
	}
	err := r.storage.pool.QueryRow(ctx, query,
		order.Name, order.UDID, order.ImageURL, order.Price, order.DownloadLink, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

const orderColumns = `id, name, udid, image_url, status, download_link, price, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Name, &o.UDID, &o.ImageURL, &o.Status, &o.DownloadLink, &o.Price, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR udid ILIKE $%d)", len(args), len(args)))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderSQL := " ORDER BY id DESC"
	if filter.SortAsc {
		orderSQL = " ORDER BY id ASC"
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)
	query := fmt.Sprintf(`SELECT %s FROM orders%s%s LIMIT $%d OFFSET $%d`,
		orderColumns, whereSQL, orderSQL, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Name, &o.UDID, &o.ImageURL, &o.Status, &o.DownloadLink, &o.Price, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	const query = `UPDATE orders SET name=$1, udid=$2, image_url=$3, download_link=$4 WHERE id=$5`
	tag, err := r.storage.pool.Exec(ctx, query, order.Name, order.UDID, order.ImageURL, order.DownloadLink, order.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// UpdateStatus enforces the single pending -> approved|rejected transition.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1 WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, id, model.OrderStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrOrderDecided
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ConfigRepository implementation ---

func (r *configRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.storage.pool.QueryRow(ctx, `SELECT value FROM config WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *configRepository) Put(ctx context.Context, key, value string) error {
	const query = `INSERT INTO config (key, value) VALUES ($1, $2)
                   ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.storage.pool.Exec(ctx, query, key, value)
	return err
}

// --- AdminRepository implementation ---

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	const query = `SELECT id, username, password_hash FROM admins WHERE username=$1`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) Ensure(ctx context.Context, username, passwordHash string) error {
	const query = `INSERT INTO admins (username, password_hash) VALUES ($1, $2)
                   ON CONFLICT (username) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, username, passwordHash)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
