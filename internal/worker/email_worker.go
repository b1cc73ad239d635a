package worker

// email_worker.go
// Processes quote email jobs from QueueEmail: renders the quote PDF and sends
// it to the customer via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"pasteleria/internal/infra"
	"pasteleria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailCotizacionPayload is the job envelope enqueued by the quote service.
type EmailCotizacionPayload struct {
	CotizacionID string `json:"cotizacion_id"`
	Email        string `json:"email"`
}

type EmailCotizacionWorker struct {
	repo        repository.CotizacionRepository
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
	storagePath string
}

func NewEmailCotizacionWorker(repo repository.CotizacionRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker, storagePath string) *EmailCotizacionWorker {
	return &EmailCotizacionWorker{repo: repo, mailer: mailer, cb: cb, storagePath: storagePath}
}

// Process regenerates the quote PDF and mails it. The quote is reloaded here
// so the document reflects the state at send time, not at enqueue time.
func (w *EmailCotizacionWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailCotizacionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.Email == "" {
		return fmt.Errorf("email_worker: empty destination email")
	}
	id, err := uuid.Parse(payload.CotizacionID)
	if err != nil {
		return fmt.Errorf("email_worker: invalid cotizacion_id %q: %w", payload.CotizacionID, err)
	}

	cotizacion, err := w.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("email_worker: load cotizacion: %w", err)
	}

	pdfPath, err := infra.GenerateCotizacionPDF(cotizacion, w.storagePath)
	if err != nil {
		return fmt.Errorf("email_worker: generate pdf: %w", err)
	}

	subject := fmt.Sprintf("Cotización %s", cotizacion.NumeroCotizacion)
	body := fmt.Sprintf(
		"Hola,\n\nAdjuntamos la cotización %s por un total de $%s.\n\nGracias por su consulta.",
		cotizacion.NumeroCotizacion, cotizacion.Total.StringFixed(2))

	// SMTP goes through the circuit breaker: while the relay is down the job
	// fails fast into the DLQ and the retry cron re-enqueues it later.
	err = w.cb.Execute(func() error {
		return w.mailer.SendCotizacion(payload.Email, subject, body, pdfPath)
	})
	if err != nil {
		return fmt.Errorf("email_worker: send: %w", err)
	}

	log.Info().
		Str("to", payload.Email).
		Str("cotizacion", cotizacion.NumeroCotizacion).
		Msg("email_worker: cotización enviada")
	return nil
}
