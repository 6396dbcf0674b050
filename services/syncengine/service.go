package syncengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"salonsync-backend/lib/timezone"
	"salonsync-backend/services/salonboard"
	"salonsync-backend/services/syncengine/db"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/syncengine")

// Kind names one category of portal data a sync run covers.
type Kind string

const (
	KindReservations Kind = "reservations"
	KindMenus        Kind = "menus"
	KindStaff        Kind = "staff"
	KindCoupons      Kind = "coupons"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindReservations, KindMenus, KindStaff, KindCoupons:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown sync kind: %q", s)
}

// Portal is the authenticated portal surface a sync run drives.
type Portal interface {
	FetchReservations(ctx context.Context, start, end time.Time, lastSeenID string) ([]salonboard.Reservation, error)
	FetchMenus(ctx context.Context) ([]salonboard.MenuItem, error)
	FetchStaff(ctx context.Context) ([]salonboard.StaffMember, error)
	FetchCoupons(ctx context.Context) ([]salonboard.Coupon, error)
	PushReservation(ctx context.Context, b salonboard.Booking) (salonboard.BookingResult, error)
	Close()
}

// SessionSource hands out a logged-in portal for an owner. The service
// closes every portal it obtains.
type SessionSource func(ctx context.Context, owner string, salonType salonboard.SalonType) (Portal, error)

type Options struct {
	Sessions SessionSource
	// owners missing from the map default to the hair skin
	SalonTypes map[string]salonboard.SalonType
	// how far back the first reservation sync reaches
	Backfill time.Duration
	// how far ahead of now reservation syncs look
	Lookahead time.Duration
}

type Service struct {
	db        *sql.DB
	qry       *db.Queries
	sessions  SessionSource
	salonType map[string]salonboard.SalonType
	backfill  time.Duration
	lookahead time.Duration

	mu       sync.Mutex
	inflight map[jobKey]struct{}
}

func NewService(database *sql.DB, opts Options) (*Service, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("syncengine: a session source is required")
	}
	if opts.Backfill == 0 {
		opts.Backfill = time.Hour * 24 * 30
	}
	if opts.Lookahead == 0 {
		opts.Lookahead = time.Hour * 24 * 90
	}
	return &Service{
		db:        database,
		qry:       db.New(database),
		sessions:  opts.Sessions,
		salonType: opts.SalonTypes,
		backfill:  opts.Backfill,
		lookahead: opts.Lookahead,
		inflight:  map[jobKey]struct{}{},
	}, nil
}

func (s *Service) salonTypeFor(owner string) salonboard.SalonType {
	if t, ok := s.salonType[owner]; ok {
		return t
	}
	return salonboard.SalonTypeHair
}

// Outcome summarizes one sync run.
type Outcome struct {
	Kind        Kind
	Fetched     int
	Inserted    int
	Updated     int
	Deactivated int
	// the snapshot hashed identically to the previous run; the
	// reconciliation still ran, this is recorded for auditing only
	Unchanged bool
	Hash      string
}

// Sync pulls one category from the portal and reconciles it into the
// local store. Every run, successful or not, leaves a sync log row.
func (s *Service) Sync(ctx context.Context, owner string, kind Kind) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()
	span.SetAttributes(
		attribute.String("owner", owner),
		attribute.String("kind", string(kind)),
	)

	started := timezone.Now()
	outcome, err := s.run(ctx, owner, kind)
	s.recordRun(ctx, owner, kind, started, outcome, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return outcome, err
	}
	span.SetAttributes(
		attribute.Int("inserted", outcome.Inserted),
		attribute.Int("updated", outcome.Updated),
		attribute.Int("deactivated", outcome.Deactivated),
	)
	slog.InfoContext(ctx, "sync run finished",
		"owner", owner,
		"kind", kind,
		"fetched", outcome.Fetched,
		"inserted", outcome.Inserted,
		"updated", outcome.Updated,
		"deactivated", outcome.Deactivated,
	)
	return outcome, nil
}

func (s *Service) run(ctx context.Context, owner string, kind Kind) (Outcome, error) {
	portal, err := s.sessions(ctx, owner, s.salonTypeFor(owner))
	if err != nil {
		return Outcome{Kind: kind}, err
	}
	defer portal.Close()

	switch kind {
	case KindMenus:
		return s.syncMenus(ctx, portal, owner)
	case KindStaff:
		return s.syncStaff(ctx, portal, owner)
	case KindCoupons:
		return s.syncCoupons(ctx, portal, owner)
	case KindReservations:
		return s.syncReservations(ctx, portal, owner)
	}
	return Outcome{Kind: kind}, fmt.Errorf("unknown sync kind: %q", kind)
}

// a failure to append the log never fails the run it describes
func (s *Service) recordRun(ctx context.Context, owner string, kind Kind, started time.Time, out Outcome, runErr error) {
	status := "ok"
	message := ""
	if runErr != nil {
		status = "error"
		message = runErr.Error()
	}
	err := s.qry.InsertSyncLog(ctx, db.InsertSyncLogParams{
		Owner:       owner,
		Kind:        string(kind),
		StartedAt:   started.Unix(),
		FinishedAt:  timezone.Now().Unix(),
		Status:      status,
		ContentHash: out.Hash,
		Fetched:     int64(out.Fetched),
		Inserted:    int64(out.Inserted),
		Updated:     int64(out.Updated),
		Deactivated: int64(out.Deactivated),
		Error:       message,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record sync run", "owner", owner, "kind", kind, "err", err)
	}
}

func (s *Service) applyTx(ctx context.Context, fn func(qtx *db.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(s.qry.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Service) priorHash(ctx context.Context, owner string, kind Kind) (string, error) {
	cursor, err := s.qry.GetSyncCursor(ctx, db.GetSyncCursorParams{Owner: owner, Kind: string(kind)})
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cursor.ContentHash, nil
}

func (s *Service) syncMenus(ctx context.Context, portal Portal, owner string) (Outcome, error) {
	out := Outcome{Kind: KindMenus}

	remote, err := portal.FetchMenus(ctx)
	if err != nil {
		return out, err
	}
	out.Fetched = len(remote)
	out.Hash = Fingerprint(remote)

	prior, err := s.priorHash(ctx, owner, KindMenus)
	if err != nil {
		return out, err
	}
	out.Unchanged = prior != "" && prior == out.Hash

	rows, err := s.qry.ListMenuItems(ctx, owner)
	if err != nil {
		return out, err
	}
	local := make(map[string]salonboard.MenuItem)
	for _, r := range rows {
		if r.Active {
			local[r.Name] = menuFromRow(r)
		}
	}

	plan := DiffSnapshot(remote, local)
	now := timezone.Now().Unix()
	err = s.applyTx(ctx, func(qtx *db.Queries) error {
		for _, m := range append(plan.Inserts, plan.Updates...) {
			err := qtx.UpsertMenuItem(ctx, db.UpsertMenuItemParams{
				Owner:          owner,
				Name:           m.Name,
				Category:       m.Category,
				Description:    m.Description,
				Price:          int64(m.Price),
				DurationMin:    int64(m.DurationMin),
				Reservable:     m.Reservable,
				Published:      m.Published,
				SearchCategory: m.SearchCategory,
				UpdatedAt:      now,
			})
			if err != nil {
				return err
			}
		}
		for _, key := range plan.DeactivateKeys {
			err := qtx.DeactivateMenuItem(ctx, db.DeactivateMenuItemParams{
				UpdatedAt: now,
				Owner:     owner,
				Name:      key,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return out, WriteError{Kind: KindMenus, Err: err}
	}

	out.Inserted = len(plan.Inserts)
	out.Updated = len(plan.Updates)
	out.Deactivated = len(plan.DeactivateKeys)

	err = s.qry.SetSyncCursor(ctx, db.SetSyncCursorParams{
		Owner:        owner,
		Kind:         string(KindMenus),
		LastSyncTime: now,
		ContentHash:  out.Hash,
	})
	if err != nil {
		return out, err
	}
	return out, nil
}

func (s *Service) syncStaff(ctx context.Context, portal Portal, owner string) (Outcome, error) {
	out := Outcome{Kind: KindStaff}

	remote, err := portal.FetchStaff(ctx)
	if err != nil {
		return out, err
	}
	out.Fetched = len(remote)
	out.Hash = Fingerprint(remote)

	prior, err := s.priorHash(ctx, owner, KindStaff)
	if err != nil {
		return out, err
	}
	out.Unchanged = prior != "" && prior == out.Hash

	rows, err := s.qry.ListStaffMembers(ctx, owner)
	if err != nil {
		return out, err
	}
	local := make(map[string]salonboard.StaffMember)
	for _, r := range rows {
		if r.Active {
			local[r.Name] = staffFromRow(r)
		}
	}

	plan := DiffSnapshot(remote, local)
	now := timezone.Now().Unix()
	err = s.applyTx(ctx, func(qtx *db.Queries) error {
		for _, m := range append(plan.Inserts, plan.Updates...) {
			err := qtx.UpsertStaffMember(ctx, db.UpsertStaffMemberParams{
				Owner:           owner,
				Name:            m.Name,
				Role:            m.Role,
				YearsExperience: staffExperience(m),
				Published:       m.Published,
				PhotoUrl:        m.PhotoURL,
				Description:     m.Description,
				UpdatedAt:       now,
			})
			if err != nil {
				return err
			}
		}
		for _, key := range plan.DeactivateKeys {
			err := qtx.DeactivateStaffMember(ctx, db.DeactivateStaffMemberParams{
				UpdatedAt: now,
				Owner:     owner,
				Name:      key,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return out, WriteError{Kind: KindStaff, Err: err}
	}

	out.Inserted = len(plan.Inserts)
	out.Updated = len(plan.Updates)
	out.Deactivated = len(plan.DeactivateKeys)

	err = s.qry.SetSyncCursor(ctx, db.SetSyncCursorParams{
		Owner:        owner,
		Kind:         string(KindStaff),
		LastSyncTime: now,
		ContentHash:  out.Hash,
	})
	if err != nil {
		return out, err
	}
	return out, nil
}

func (s *Service) syncCoupons(ctx context.Context, portal Portal, owner string) (Outcome, error) {
	out := Outcome{Kind: KindCoupons}

	remote, err := portal.FetchCoupons(ctx)
	if err != nil {
		return out, err
	}
	out.Fetched = len(remote)
	out.Hash = Fingerprint(remote)

	prior, err := s.priorHash(ctx, owner, KindCoupons)
	if err != nil {
		return out, err
	}
	out.Unchanged = prior != "" && prior == out.Hash

	rows, err := s.qry.ListCoupons(ctx, owner)
	if err != nil {
		return out, err
	}
	local := make(map[string]salonboard.Coupon)
	for _, r := range rows {
		if r.Active {
			local[r.PortalID] = couponFromRow(r)
		}
	}

	plan := DiffSnapshot(remote, local)
	now := timezone.Now().Unix()
	err = s.applyTx(ctx, func(qtx *db.Queries) error {
		for _, c := range append(plan.Inserts, plan.Updates...) {
			err := qtx.UpsertCoupon(ctx, db.UpsertCouponParams{
				Owner:       owner,
				PortalID:    c.PortalID,
				Name:        c.Name,
				Description: c.Description,
				Price:       int64(c.Price),
				Reservable:  c.Reservable,
				Published:   c.Published,
				UpdatedAt:   now,
			})
			if err != nil {
				return err
			}
		}
		for _, key := range plan.DeactivateKeys {
			err := qtx.DeactivateCoupon(ctx, db.DeactivateCouponParams{
				UpdatedAt: now,
				Owner:     owner,
				PortalID:  key,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return out, WriteError{Kind: KindCoupons, Err: err}
	}

	out.Inserted = len(plan.Inserts)
	out.Updated = len(plan.Updates)
	out.Deactivated = len(plan.DeactivateKeys)

	err = s.qry.SetSyncCursor(ctx, db.SetSyncCursorParams{
		Owner:        owner,
		Kind:         string(KindCoupons),
		LastSyncTime: now,
		ContentHash:  out.Hash,
	})
	if err != nil {
		return out, err
	}
	return out, nil
}

// Reservations append rather than mirror: the portal hides rows past
// their visit date, so absence never deactivates anything. The cursor
// tracks the latest start time already stored; only strictly newer
// reservations are written, and the id of the newest one short-circuits
// pagination on the next run.
func (s *Service) syncReservations(ctx context.Context, portal Portal, owner string) (Outcome, error) {
	out := Outcome{Kind: KindReservations}

	cursor, err := s.qry.GetSyncCursor(ctx, db.GetSyncCursorParams{
		Owner: owner,
		Kind:  string(KindReservations),
	})
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return out, err
	}

	now := timezone.Now()
	since := now.Add(-s.backfill)
	if last := time.Unix(cursor.LastSyncTime, 0).In(timezone.Location); cursor.LastSyncTime > 0 && last.After(since) {
		since = last
	}
	end := now.Add(s.lookahead)

	remote, err := portal.FetchReservations(ctx, since, end, cursor.LastSeenReservationID)
	if err != nil {
		return out, err
	}
	out.Fetched = len(remote)

	maxStart := cursor.LastSyncTime
	lastID := cursor.LastSeenReservationID
	var fresh []salonboard.Reservation
	for _, r := range remote {
		at, ok := r.StartsAt()
		if !ok {
			slog.WarnContext(ctx, "skipping reservation with unparseable start",
				"owner", owner, "portal_id", r.PortalID, "date", r.Date, "time", r.Time)
			continue
		}
		if cursor.LastSyncTime > 0 && !at.After(time.Unix(cursor.LastSyncTime, 0)) {
			continue
		}
		fresh = append(fresh, r)
		if at.Unix() > maxStart {
			maxStart = at.Unix()
			lastID = r.PortalID
		}
	}
	out.Hash = Fingerprint(fresh)

	err = s.applyTx(ctx, func(qtx *db.Queries) error {
		for _, r := range fresh {
			at, _ := r.StartsAt()
			err := qtx.UpsertReservation(ctx, db.UpsertReservationParams{
				Owner:         owner,
				PortalID:      r.PortalID,
				Date:          r.Date,
				Time:          r.Time,
				Status:        r.Status,
				CustomerName:  r.CustomerName,
				StaffName:     r.StaffName,
				Channel:       r.Channel,
				Menu:          r.Menu,
				PointsUsed:    int64(r.PointsUsed),
				PaymentMethod: r.PaymentMethod,
				Amount:        int64(r.Amount),
				StartsAt:      at.Unix(),
				UpdatedAt:     now.Unix(),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return out, WriteError{Kind: KindReservations, Err: err}
	}
	out.Inserted = len(fresh)

	err = s.qry.SetSyncCursor(ctx, db.SetSyncCursorParams{
		Owner:                 owner,
		Kind:                  string(KindReservations),
		LastSyncTime:          maxStart,
		LastSeenReservationID: lastID,
		ContentHash:           out.Hash,
	})
	if err != nil {
		return out, err
	}
	return out, nil
}

// SyncLog returns the most recent runs for an owner, newest first.
func (s *Service) SyncLog(ctx context.Context, owner string, limit int) ([]db.SyncLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.qry.ListSyncLogs(ctx, db.ListSyncLogsParams{Owner: owner, Limit: int64(limit)})
}

// Reservations returns stored reservations starting at or after since.
func (s *Service) Reservations(ctx context.Context, owner string, since time.Time) ([]db.Reservation, error) {
	return s.qry.ListReservationsSince(ctx, db.ListReservationsSinceParams{
		Owner:    owner,
		StartsAt: since.Unix(),
	})
}
