package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/washpoint/washpoint/internal/adapter/payments"
	"github.com/washpoint/washpoint/internal/domain/model"
)

// LaundryFacade exposes the subset of application functionality required by the poller.
type LaundryFacade interface {
	TransactionsForPolling(ctx context.Context, limit int) ([]model.Transaction, error)
	CheckPayment(ctx context.Context, reference string) (*payments.PaymentStatus, error)
	UpdateTransactionStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error
}

// PaymentPoller reconciles pending mobile-money transactions with the
// collector, using a dispatcher feeding a worker pool.
type PaymentPoller struct {
	facade       LaundryFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Transaction
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentPoller constructs the payment reconciliation worker pool.
func NewPaymentPoller(facade LaundryFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentPoller{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Transaction, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentPoller) fetchAndDispatch(ctx context.Context) {
	transactions, err := p.facade.TransactionsForPolling(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch transactions for polling failed", slog.String("error", err.Error()))
		return
	}
	for _, tx := range transactions {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- tx:
		}
	}
}

func (p *PaymentPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case tx, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleTransaction(ctx, tx)
		}
	}
}

func (p *PaymentPoller) handleTransaction(ctx context.Context, tx model.Transaction) {
	result, err := p.facade.CheckPayment(ctx, tx.Reference)
	if err != nil {
		switch e := err.(type) {
		case payments.TooManyRequestsError:
			p.logger.Warn("payment collector rate limited", slog.Duration("retry_after", e.RetryAfter))
			backoff := time.NewTimer(e.RetryAfter)
			select {
			case <-ctx.Done():
				backoff.Stop()
			case <-backoff.C:
			}
		default:
			if errors.Is(err, payments.ErrUnknownReference) {
				p.logger.Warn("collector does not know transaction", slog.String("reference", tx.Reference))
				return
			}
			p.logger.Error("payment status fetch failed", slog.String("reference", tx.Reference), slog.String("error", err.Error()))
		}
		return
	}

	if result.Status == model.TransactionStatusPending {
		return
	}

	if err := p.facade.UpdateTransactionStatus(ctx, tx.ID, result.Status); err != nil {
		p.logger.Error("update transaction status failed", slog.String("reference", tx.Reference), slog.String("error", err.Error()))
	}
}
