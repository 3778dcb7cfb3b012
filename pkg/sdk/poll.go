package sdk

import (
	"context"
	"fmt"
	"time"

	"github.com/bazik-io/bazik-sdk-go/pkg/apierr"
	"github.com/bazik-io/bazik-sdk-go/pkg/model"
	"go.uber.org/zap"
)

// PollOptions controls WaitForCompletion. Zero fields fall back to
// Config.Timeouts.PollInterval and Config.Timeouts.PollTimeout.
type PollOptions struct {
	Interval time.Duration
	Timeout  time.Duration
}

// WaitForCompletion verifies orderID, then keeps verifying every Interval
// until the status is no longer model.StatusPending. The deadline is checked
// before every sleep and a sleep never extends past it; once it has passed the
// call fails with a KindGeneric error coded "timeout". Errors from Verify end
// polling immediately, and ctx cancellation interrupts the sleep.
func (p *paymentsClient) WaitForCompletion(ctx context.Context, orderID string, opts PollOptions) (*model.Payment, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = p.cfg.Timeouts.PollInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = p.cfg.Timeouts.PollTimeout
	}

	deadline := time.Now().Add(timeout)

	for attempt := 1; ; attempt++ {
		payment, err := p.Verify(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if !payment.IsPending() {
			p.logger.Debug("payment settled",
				zap.String("order_id", orderID),
				zap.String("status", payment.Status),
				zap.Int("attempts", attempt))
			return payment, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, apierr.Generic(0, apierr.CodeTimeout,
				fmt.Sprintf("Payment %s still pending after %s", orderID, timeout),
				map[string]any{"orderId": orderID, "attempts": attempt, "status": payment.Status})
		}

		wait := time.NewTimer(min(interval, remaining))
		select {
		case <-wait.C:
		case <-ctx.Done():
			wait.Stop()
			return nil, apierr.FromTransport(ctx.Err())
		}
	}
}
