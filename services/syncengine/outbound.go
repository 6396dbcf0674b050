package syncengine

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"salonsync-backend/lib/timezone"
	"salonsync-backend/services/salonboard"
	"salonsync-backend/services/syncengine/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	PushSynced = "synced"
	PushFailed = "failed"
)

var PushNotFound = errors.New("no recorded push for this reservation")

// PushRequest carries one locally created reservation to the portal.
// LocalRef is the caller's own identifier for it; push outcomes are
// keyed by it so retries overwrite rather than duplicate.
type PushRequest struct {
	LocalRef string
	Booking  salonboard.Booking
}

// PushReservation writes one reservation through the portal's booking
// form and records the outcome, success or failure, against LocalRef.
func (s *Service) PushReservation(ctx context.Context, owner string, req PushRequest) (db.ReservationPush, error) {
	ctx, span := tracer.Start(ctx, "PushReservation")
	defer span.End()
	span.SetAttributes(
		attribute.String("owner", owner),
		attribute.String("local_ref", req.LocalRef),
	)

	portal, sessErr := s.sessions(ctx, owner, s.salonTypeFor(owner))

	var result salonboard.BookingResult
	pushErr := sessErr
	if sessErr == nil {
		defer portal.Close()
		result, pushErr = portal.PushReservation(ctx, req.Booking)
	}

	record := db.UpsertReservationPushParams{
		Owner:    owner,
		LocalRef: req.LocalRef,
		PortalID: result.PortalID,
		Status:   PushSynced,
		PushedAt: timezone.Now().Unix(),
	}
	if pushErr != nil {
		record.Status = PushFailed
		record.Error = pushErr.Error()
	}
	if err := s.qry.UpsertReservationPush(ctx, record); err != nil {
		// the push itself already happened (or failed); losing the
		// record is worth a warning, not a second error
		slog.WarnContext(ctx, "failed to record push outcome",
			"owner", owner, "local_ref", req.LocalRef, "err", err)
	}

	if pushErr != nil {
		span.RecordError(pushErr)
		span.SetStatus(codes.Error, "push failed")
		return db.ReservationPush{}, pushErr
	}
	return db.ReservationPush{
		Owner:    record.Owner,
		LocalRef: record.LocalRef,
		PortalID: record.PortalID,
		Status:   record.Status,
		PushedAt: record.PushedAt,
	}, nil
}

// PushStatus reports the recorded outcome of the last push for a
// local reservation.
func (s *Service) PushStatus(ctx context.Context, owner, localRef string) (db.ReservationPush, error) {
	row, err := s.qry.GetReservationPush(ctx, db.GetReservationPushParams{
		Owner:    owner,
		LocalRef: localRef,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return db.ReservationPush{}, PushNotFound
	}
	return row, err
}
