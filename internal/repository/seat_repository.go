package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/train-booking/internal/fare"
	"github.com/iliyamo/train-booking/internal/model"
)

// DecrementStrategy selects how SeatRepo.Decrement serialises concurrent
// decrements of the same (train, class) counter.
type DecrementStrategy string

const (
	// StrategyAtomic issues one UPDATE whose SET clause computes
	// max(count-1, 0) inside the store.
	StrategyAtomic DecrementStrategy = "atomic"
	// StrategyCAS reads the counter and writes it back with
	// WHERE count = observed, retrying when another writer got there first.
	StrategyCAS DecrementStrategy = "cas"
)

// DefaultMaxRetries bounds the compare-and-swap loop.
const DefaultMaxRetries = 5

// SeatRepo owns the per-class seat counters of train_schedule. The
// bookable counter of a train is the one on its origin stop (lowest
// stop_number); every write in this repository targets that row.
type SeatRepo struct {
	db         *sql.DB
	strategy   DecrementStrategy
	maxRetries int

	// beforeSwap runs between the read and the conditional write of a
	// CAS attempt. Tests use it to inject a competing writer.
	beforeSwap func()
}

// NewSeatRepo returns a SeatRepo using the given strategy. Unknown
// strategies fall back to StrategyAtomic and a non-positive retry limit
// falls back to DefaultMaxRetries.
func NewSeatRepo(db *sql.DB, strategy DecrementStrategy, maxRetries int) *SeatRepo {
	if strategy != StrategyCAS {
		strategy = StrategyAtomic
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &SeatRepo{db: db, strategy: strategy, maxRetries: maxRetries}
}

// Strategy reports the configured decrement strategy.
func (r *SeatRepo) Strategy() DecrementStrategy { return r.strategy }

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// originStopID resolves the row holding a train's bookable counters.
func originStopID(ctx context.Context, q querier, trainNumber string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM train_schedule WHERE train_number = ? ORDER BY stop_number ASC LIMIT 1`,
		trainNumber).Scan(&id)
	if err != nil {
		return 0, storageErr("train "+trainNumber, err)
	}
	return id, nil
}

func validateSeatKey(trainNumber string, c fare.Class) error {
	if trainNumber == "" {
		return fmt.Errorf("%w: train_number is required", model.ErrValidation)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: invalid class %q", model.ErrValidation, string(c))
	}
	return nil
}

// Decrement lowers the counter for (trainNumber, c) by one, flooring at
// zero. Decrementing a zero counter succeeds without change. Concurrent
// calls never lose an update: N calls against a counter of N leave it at
// exactly zero.
func (r *SeatRepo) Decrement(ctx context.Context, trainNumber string, c fare.Class) error {
	if err := validateSeatKey(trainNumber, c); err != nil {
		return err
	}
	id, err := originStopID(ctx, r.db, trainNumber)
	if err != nil {
		return err
	}
	if r.strategy == StrategyCAS {
		return r.decrementCAS(ctx, id, c)
	}
	return r.decrementAtomic(ctx, id, c)
}

func (r *SeatRepo) decrementAtomic(ctx context.Context, stopID int64, c fare.Class) error {
	col := c.Column()
	q := `UPDATE train_schedule SET ` + col + ` = CASE WHEN ` + col + ` > 0 THEN ` + col + ` - 1 ELSE 0 END WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, stopID); err != nil {
		return storageErr("decrement seats", err)
	}
	return nil
}

func (r *SeatRepo) decrementCAS(ctx context.Context, stopID int64, c fare.Class) error {
	col := c.Column()
	read := `SELECT ` + col + ` FROM train_schedule WHERE id = ?`
	swap := `UPDATE train_schedule SET ` + col + ` = ? WHERE id = ? AND ` + col + ` = ?`

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		var current sql.NullInt64
		if err := r.db.QueryRowContext(ctx, read, stopID).Scan(&current); err != nil {
			return storageErr("read seats", err)
		}
		if !current.Valid || current.Int64 <= 0 {
			return nil
		}
		if r.beforeSwap != nil {
			r.beforeSwap()
		}
		res, err := r.db.ExecContext(ctx, swap, current.Int64-1, stopID, current.Int64)
		if err != nil {
			return storageErr("swap seats", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storageErr("swap seats", err)
		}
		if n == 1 {
			return nil
		}
		// lost the race; back off a little before re-reading
		select {
		case <-ctx.Done():
			return storageErr("swap seats", ctx.Err())
		case <-time.After(time.Duration(attempt+1) * 2 * time.Millisecond):
		}
	}
	return fmt.Errorf("%w: seat counter %s on stop %d still contended after %d attempts",
		model.ErrConcurrency, col, stopID, r.maxRetries)
}

// Remaining returns the bookable counter for (trainNumber, c). A null
// counter reads as zero.
func (r *SeatRepo) Remaining(ctx context.Context, trainNumber string, c fare.Class) (int, error) {
	if err := validateSeatKey(trainNumber, c); err != nil {
		return 0, err
	}
	var n sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT `+c.Column()+` FROM train_schedule WHERE train_number = ? ORDER BY stop_number ASC LIMIT 1`,
		trainNumber).Scan(&n)
	if err != nil {
		return 0, storageErr("train "+trainNumber, err)
	}
	return int(n.Int64), nil
}

// TakeTx claims one seat inside the caller's transaction. Unlike
// Decrement it refuses to touch a zero counter and reports
// model.ErrSoldOut instead, so a booking can never be recorded without a
// seat behind it.
func (r *SeatRepo) TakeTx(ctx context.Context, tx *sql.Tx, trainNumber string, c fare.Class) error {
	if err := validateSeatKey(trainNumber, c); err != nil {
		return err
	}
	id, err := originStopID(ctx, tx, trainNumber)
	if err != nil {
		return err
	}
	col := c.Column()
	res, err := tx.ExecContext(ctx,
		`UPDATE train_schedule SET `+col+` = `+col+` - 1 WHERE id = ? AND `+col+` > 0`, id)
	if err != nil {
		return storageErr("take seat", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("take seat", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: class %s on train %s", model.ErrSoldOut, c, trainNumber)
	}
	return nil
}
