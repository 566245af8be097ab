package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/washpoint/washpoint/internal/domain/errors"
	"github.com/washpoint/washpoint/internal/domain/model"
	"github.com/washpoint/washpoint/internal/domain/repository"
)

// pgxPool abstracts *pgxpool.Pool so storage can run against pgxmock in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type rewardRepository struct {
	storage *Storage
}

type transactionRepository struct {
	storage *Storage
}

type serviceRepository struct {
	storage *Storage
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	p, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: p, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		p.Close()
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
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Rewards() repository.RewardRepository {
	return &rewardRepository{storage: s}
}

func (s *Storage) Transactions() repository.TransactionRepository {
	return &transactionRepository{storage: s}
}

func (s *Storage) Services() repository.ServiceRepository {
	return &serviceRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            phone TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS service_items (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            unit TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            placed_by BIGINT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            pickup_address TEXT NOT NULL,
            pickup_lat DOUBLE PRECISION NOT NULL,
            pickup_lon DOUBLE PRECISION NOT NULL,
            dropoff_address TEXT NOT NULL,
            dropoff_lat DOUBLE PRECISION NOT NULL,
            dropoff_lon DOUBLE PRECISION NOT NULL,
            payment_method TEXT NOT NULL,
            total DOUBLE PRECISION NOT NULL,
            original_total DOUBLE PRECISION NOT NULL DEFAULT 0,
            reward_discount DOUBLE PRECISION NOT NULL DEFAULT 0,
            is_reward_order BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            service_item_id BIGINT NOT NULL REFERENCES service_items(id),
            name TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id BIGSERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            order_id BIGINT REFERENCES orders(id),
            amount DOUBLE PRECISION NOT NULL,
            phone_number TEXT NOT NULL,
            reference TEXT NOT NULL,
            operator TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reward_ledgers (
            customer_id BIGINT PRIMARY KEY REFERENCES users(id),
            total_orders_count INT NOT NULL DEFAULT 0,
            is_eligible BOOLEAN NOT NULL DEFAULT FALSE,
            next_discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            total_rewards_earned DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reward_cycle_entries (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES reward_ledgers(customer_id),
            order_id BIGINT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reward_cycles (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES reward_ledgers(customer_id),
            order_ids BIGINT[] NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            average_amount DOUBLE PRECISION NOT NULL,
            discount_applied DOUBLE PRECISION NOT NULL,
            discount_order_id BIGINT NOT NULL,
            completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_cycle_entries_customer ON reward_cycle_entries(customer_id, id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.UserRole, phone string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role, phone) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role, phone).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	u.Phone = phone
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, phone, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, phone, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (customer_id, placed_by, status, pickup_address, pickup_lat, pickup_lon,
             dropoff_address, dropoff_lat, dropoff_lon, payment_method,
             total, original_total, reward_discount, is_reward_order)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
            RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.CustomerID, order.PlacedBy, order.Status,
			order.Pickup.Address, order.Pickup.Latitude, order.Pickup.Longitude,
			order.Dropoff.Address, order.Dropoff.Latitude, order.Dropoff.Longitude,
			order.PaymentMethod, order.Total, order.OriginalTotal, order.RewardDiscount, order.IsRewardOrder,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, service_item_id, name, quantity, unit_price)
            VALUES ($1, $2, $3, $4, $5)`
		for _, item := range order.Items {
			if _, err := tx.Exec(ctx, insertItem, created.ID, item.ServiceItemID, item.Name, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, customer_id, placed_by, status,
        pickup_address, pickup_lat, pickup_lon, dropoff_address, dropoff_lat, dropoff_lon,
        payment_method, total, original_total, reward_discount, is_reward_order, created_at, updated_at
        FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.PlacedBy, &o.Status,
		&o.Pickup.Address, &o.Pickup.Latitude, &o.Pickup.Longitude,
		&o.Dropoff.Address, &o.Dropoff.Latitude, &o.Dropoff.Longitude,
		&o.PaymentMethod, &o.Total, &o.OriginalTotal, &o.RewardDiscount, &o.IsRewardOrder,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.itemsOf(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *orderRepository) itemsOf(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT service_item_id, name, quantity, unit_price FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ServiceItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	const query = `SELECT id, customer_id, placed_by, status,
        pickup_address, pickup_lat, pickup_lon, dropoff_address, dropoff_lat, dropoff_lon,
        payment_method, total, original_total, reward_discount, is_reward_order, created_at, updated_at
        FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.PlacedBy, &o.Status,
			&o.Pickup.Address, &o.Pickup.Latitude, &o.Pickup.Longitude,
			&o.Dropoff.Address, &o.Dropoff.Latitude, &o.Dropoff.Longitude,
			&o.PaymentMethod, &o.Total, &o.OriginalTotal, &o.RewardDiscount, &o.IsRewardOrder,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ApplyDiscount(ctx context.Context, orderID int64, originalTotal, discount, finalTotal float64) error {
	const query = `UPDATE orders
        SET original_total=$1, reward_discount=$2, total=$3, is_reward_order=TRUE, updated_at=NOW()
        WHERE id=$4`
	tag, err := r.storage.pool.Exec(ctx, query, originalTotal, discount, finalTotal, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- RewardRepository implementation ---

func (r *rewardRepository) Get(ctx context.Context, customerID int64) (*model.RewardLedger, error) {
	const query = `SELECT customer_id, total_orders_count, is_eligible, next_discount_amount,
        total_rewards_earned, created_at, updated_at
        FROM reward_ledgers WHERE customer_id=$1`
	var l model.RewardLedger
	err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(
		&l.CustomerID, &l.TotalOrdersCount, &l.IsEligibleForDiscount,
		&l.NextDiscountAmount, &l.TotalRewardsEarned, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	entries, err := cycleEntries(ctx, r.storage.pool, customerID)
	if err != nil {
		return nil, err
	}
	l.CurrentCycle = entries

	cycles, err := completedCycles(ctx, r.storage.pool, customerID)
	if err != nil {
		return nil, err
	}
	l.CompletedCycles = cycles
	return &l, nil
}

// querier is the subset shared by pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func cycleEntries(ctx context.Context, q querier, customerID int64) ([]model.CycleOrder, error) {
	const query = `SELECT order_id, amount, recorded_at FROM reward_cycle_entries
        WHERE customer_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.CycleOrder
	for rows.Next() {
		var e model.CycleOrder
		if err := rows.Scan(&e.OrderID, &e.Amount, &e.RecordedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func completedCycles(ctx context.Context, q querier, customerID int64) ([]model.CompletedCycle, error) {
	const query = `SELECT order_ids, total_amount, average_amount, discount_applied, discount_order_id, completed_at
        FROM reward_cycles WHERE customer_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []model.CompletedCycle
	for rows.Next() {
		var c model.CompletedCycle
		if err := rows.Scan(&c.OrderIDs, &c.TotalAmount, &c.AverageAmount, &c.DiscountApplied, &c.DiscountOrderID, &c.CompletedAt); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cycles, nil
}

// WithLedger loads the ledger under a row lock, runs fn and persists the
// mutated aggregate. The FOR UPDATE lock serializes concurrent reward
// operations per customer.
func (r *rewardRepository) WithLedger(ctx context.Context, customerID int64, fn func(*model.RewardLedger) error) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const ensure = `INSERT INTO reward_ledgers (customer_id) VALUES ($1)
            ON CONFLICT (customer_id) DO NOTHING`
		if _, err := tx.Exec(ctx, ensure, customerID); err != nil {
			return err
		}

		const lock = `SELECT customer_id, total_orders_count, is_eligible, next_discount_amount,
            total_rewards_earned, created_at, updated_at
            FROM reward_ledgers WHERE customer_id=$1 FOR UPDATE`
		var l model.RewardLedger
		if err := tx.QueryRow(ctx, lock, customerID).Scan(
			&l.CustomerID, &l.TotalOrdersCount, &l.IsEligibleForDiscount,
			&l.NextDiscountAmount, &l.TotalRewardsEarned, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return err
		}

		entries, err := cycleEntries(ctx, tx, customerID)
		if err != nil {
			return err
		}
		l.CurrentCycle = entries

		cycles, err := completedCycles(ctx, tx, customerID)
		if err != nil {
			return err
		}
		l.CompletedCycles = cycles
		knownCycles := len(cycles)

		if err := fn(&l); err != nil {
			return err
		}

		const update = `UPDATE reward_ledgers
            SET total_orders_count=$1, is_eligible=$2, next_discount_amount=$3,
                total_rewards_earned=$4, updated_at=NOW()
            WHERE customer_id=$5`
		if _, err := tx.Exec(ctx, update,
			l.TotalOrdersCount, l.IsEligibleForDiscount, l.NextDiscountAmount,
			l.TotalRewardsEarned, customerID,
		); err != nil {
			return err
		}

		const clearEntries = `DELETE FROM reward_cycle_entries WHERE customer_id=$1`
		if _, err := tx.Exec(ctx, clearEntries, customerID); err != nil {
			return err
		}
		const insertEntry = `INSERT INTO reward_cycle_entries (customer_id, order_id, amount, recorded_at)
            VALUES ($1, $2, $3, $4)`
		for _, e := range l.CurrentCycle {
			recordedAt := e.RecordedAt
			if recordedAt.IsZero() {
				recordedAt = time.Now()
			}
			if _, err := tx.Exec(ctx, insertEntry, customerID, e.OrderID, e.Amount, recordedAt); err != nil {
				return err
			}
		}

		const insertCycle = `INSERT INTO reward_cycles
            (customer_id, order_ids, total_amount, average_amount, discount_applied, discount_order_id, completed_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, c := range l.CompletedCycles[knownCycles:] {
			completedAt := c.CompletedAt
			if completedAt.IsZero() {
				completedAt = time.Now()
			}
			if _, err := tx.Exec(ctx, insertCycle,
				customerID, c.OrderIDs, c.TotalAmount, c.AverageAmount,
				c.DiscountApplied, c.DiscountOrderID, completedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// --- TransactionRepository implementation ---

func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	const query = `INSERT INTO transactions
        (code, customer_id, order_id, amount, phone_number, reference, operator, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`
	created := *t
	err := r.storage.pool.QueryRow(ctx, query,
		t.Code, t.CustomerID, t.OrderID, t.Amount, t.PhoneNumber, t.Reference, t.Operator, t.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *transactionRepository) LinkOrder(ctx context.Context, transactionID, orderID int64) error {
	const query = `UPDATE transactions SET order_id=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, transactionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Transaction, error) {
	const query = `SELECT id, code, customer_id, order_id, amount, phone_number, reference, operator, status, created_at, updated_at
        FROM transactions WHERE customer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Code, &t.CustomerID, &t.OrderID, &t.Amount, &t.PhoneNumber, &t.Reference, &t.Operator, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *transactionRepository) SelectBatchForPolling(ctx context.Context, limit int) ([]model.Transaction, error) {
	const selectQuery = `SELECT id, code, customer_id, order_id, amount, phone_number, reference, operator, status, created_at, updated_at
        FROM transactions
        WHERE status='PENDING'
        ORDER BY created_at
        LIMIT $1
        FOR UPDATE SKIP LOCKED`

	var result []model.Transaction
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var t model.Transaction
			if err := rows.Scan(&t.ID, &t.Code, &t.CustomerID, &t.OrderID, &t.Amount, &t.PhoneNumber, &t.Reference, &t.Operator, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
				return err
			}
			result = append(result, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error {
	const query = `UPDATE transactions SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, transactionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ServiceRepository implementation ---

func (r *serviceRepository) Create(ctx context.Context, item *model.ServiceItem) (*model.ServiceItem, error) {
	const query = `INSERT INTO service_items (name, unit, price, active)
        VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	created := *item
	err := r.storage.pool.QueryRow(ctx, query, item.Name, item.Unit, item.Price, item.Active).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *serviceRepository) Update(ctx context.Context, item *model.ServiceItem) (*model.ServiceItem, error) {
	const query = `UPDATE service_items
        SET name=$1, unit=$2, price=$3, active=$4, updated_at=NOW()
        WHERE id=$5 RETURNING created_at, updated_at`
	updated := *item
	err := r.storage.pool.QueryRow(ctx, query, item.Name, item.Unit, item.Price, item.Active, item.ID).
		Scan(&updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id int64) (*model.ServiceItem, error) {
	const query = `SELECT id, name, unit, price, active, created_at, updated_at FROM service_items WHERE id=$1`
	var item model.ServiceItem
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Unit, &item.Price, &item.Active, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *serviceRepository) List(ctx context.Context, activeOnly bool) ([]model.ServiceItem, error) {
	query := `SELECT id, name, unit, price, active, created_at, updated_at FROM service_items ORDER BY name`
	if activeOnly {
		query = `SELECT id, name, unit, price, active, created_at, updated_at FROM service_items WHERE active ORDER BY name`
	}
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ServiceItem
	for rows.Next() {
		var item model.ServiceItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Unit, &item.Price, &item.Active, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
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
