package syncengine

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"salonsync-backend/lib/timezone"
	"salonsync-backend/services/syncengine/db"

	"github.com/google/uuid"
)

const (
	JobRunning = "running"
	JobOk      = "ok"
	JobError   = "error"
)

type jobKey struct {
	owner string
	kind  Kind
}

// StartSync launches a sync run in the background and returns a job id
// the caller can poll. At most one run per owner and kind may be in
// flight; a second trigger gets SyncInFlight instead of piling on the
// portal.
func (s *Service) StartSync(ctx context.Context, owner string, kind Kind) (string, error) {
	key := jobKey{owner: owner, kind: kind}

	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return "", SyncInFlight
	}
	s.inflight[key] = struct{}{}
	s.mu.Unlock()

	release := func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}

	id := uuid.NewString()
	err := s.qry.CreateSyncJob(ctx, db.CreateSyncJobParams{
		ID:        id,
		Owner:     owner,
		Kind:      string(kind),
		Status:    JobRunning,
		CreatedAt: timezone.Now().Unix(),
	})
	if err != nil {
		release()
		return "", err
	}

	// the run outlives the request that triggered it
	jobCtx := context.WithoutCancel(ctx)
	go func() {
		defer release()

		_, runErr := s.Sync(jobCtx, owner, kind)
		status := JobOk
		message := ""
		if runErr != nil {
			status = JobError
			message = runErr.Error()
		}

		err := s.qry.FinishSyncJob(jobCtx, db.FinishSyncJobParams{
			Status:     status,
			FinishedAt: sql.NullInt64{Int64: timezone.Now().Unix(), Valid: true},
			Error:      message,
			ID:         id,
		})
		if err != nil {
			slog.WarnContext(jobCtx, "failed to finalize sync job", "job_id", id, "err", err)
		}
	}()

	return id, nil
}

func (s *Service) JobStatus(ctx context.Context, id string) (db.SyncJob, error) {
	job, err := s.qry.GetSyncJob(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return db.SyncJob{}, UnknownJob
	}
	return job, err
}
