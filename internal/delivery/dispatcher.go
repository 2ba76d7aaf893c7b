package delivery

import (
	"context"

	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/common/metrics"
)

// Dispatcher validates the input, delegates to the configured provider and
// normalizes failures into the delivery error code. It never retries; the
// caller decides whether to try again.
type Dispatcher struct {
	provider Provider
	log      logger.Logger
}

func NewDispatcher(provider Provider, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Dispatcher{provider: provider, log: log}
}

func (d *Dispatcher) Send(ctx context.Context, input *Input) error {
	if err := input.validate(); err != nil {
		return errors.NewInvalidInputError(err.Error())
	}

	name := d.provider.Name()
	if err := d.provider.Send(ctx, input); err != nil {
		metrics.DeliveryAttempts.WithLabelValues(name, "failure").Inc()
		d.log.WithError(err).Error("report delivery failed", map[string]interface{}{
			"provider":  name,
			"recipient": input.RecipientEmail,
		})
		return errors.NewDeliveryError(name, err)
	}

	metrics.DeliveryAttempts.WithLabelValues(name, "success").Inc()
	d.log.Info("report delivered", map[string]interface{}{
		"provider":  name,
		"recipient": input.RecipientEmail,
		"pdf_bytes": len(input.PDF),
	})
	return nil
}
