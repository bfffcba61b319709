package dbretry

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/m04kA/SMC-LabReservationService/pkg/pgerr"
)

// Policy ограниченный повтор запросов на чтение при временных ошибках БД
// Пишущие операции через Policy не выполняются: повтор неоднозначного INSERT может создать дубль
type Policy struct {
	maxRetries  uint64
	baseDelay   time.Duration
	isRetryable func(error) bool
}

// New создает политику: maxRetries повторов с экспоненциальной задержкой от baseDelay
func New(maxRetries int, baseDelay time.Duration) *Policy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 50 * time.Millisecond
	}
	return &Policy{
		maxRetries:  uint64(maxRetries),
		baseDelay:   baseDelay,
		isRetryable: pgerr.IsTransient,
	}
}

// NoRetry политика без повторов
func NoRetry() *Policy {
	return New(0, time.Millisecond)
}

// Read выполняет fn, повторяя его при временных ошибках
// Возвращает последнюю ошибку fn без обёрток go-retry
func (p *Policy) Read(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(p.maxRetries, retry.NewExponential(p.baseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && p.isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
