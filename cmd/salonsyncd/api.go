package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"salonsync-backend/lib/serviceutil"
	"salonsync-backend/lib/timezone"
	"salonsync-backend/services/keychain"
	"salonsync-backend/services/salonboard"
	"salonsync-backend/services/syncengine"
	"salonsync-backend/services/syncengine/db"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type api struct {
	keychain keychain.Service
	engine   *syncengine.Service
}

func newRouter(config Config, kc keychain.Service, engine *syncengine.Service) http.Handler {
	a := api{keychain: kc, engine: engine}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(serviceutil.VerifyAccessToken(config.AccessToken))

	r.Route("/api/v1/owners/{owner}", func(r chi.Router) {
		r.Post("/sync/{kind}", a.triggerSync)
		r.Get("/jobs/{jobID}", a.jobStatus)
		r.Get("/synclog", a.syncLog)
		r.Get("/reservations", a.listReservations)
		r.Post("/reservations/{localRef}/push", a.pushReservation)
		r.Get("/reservations/{localRef}/push", a.pushStatus)
		r.Put("/credentials", a.putCredentials)
		r.Delete("/credentials", a.deleteCredentials)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func jst(unix int64) string {
	return time.Unix(unix, 0).In(timezone.Location).Format(time.RFC3339)
}

func (a api) triggerSync(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	kind, err := syncengine.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID, err := a.engine.StartSync(r.Context(), owner, kind)
	if errors.Is(err, syncengine.SyncInFlight) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to start sync", "owner", owner, "kind", kind, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to start sync")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

type jobResponse struct {
	ID         string `json:"id"`
	Owner      string `json:"owner"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (a api) jobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := a.engine.JobStatus(r.Context(), chi.URLParam(r, "jobID"))
	if errors.Is(err, syncengine.UnknownJob) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}

	res := jobResponse{
		ID:        job.ID,
		Owner:     job.Owner,
		Kind:      job.Kind,
		Status:    job.Status,
		CreatedAt: jst(job.CreatedAt),
		Error:     job.Error,
	}
	if job.FinishedAt.Valid {
		res.FinishedAt = jst(job.FinishedAt.Int64)
	}
	writeJSON(w, http.StatusOK, res)
}

type syncLogEntry struct {
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at"`
	FinishedAt  string `json:"finished_at"`
	ContentHash string `json:"content_hash,omitempty"`
	Fetched     int64  `json:"fetched"`
	Inserted    int64  `json:"inserted"`
	Updated     int64  `json:"updated"`
	Deactivated int64  `json:"deactivated"`
	Error       string `json:"error,omitempty"`
}

func (a api) syncLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := a.engine.SyncLog(r.Context(), chi.URLParam(r, "owner"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load sync log")
		return
	}

	entries := make([]syncLogEntry, len(logs))
	for i, entry := range logs {
		entries[i] = syncLogEntry{
			Kind:        entry.Kind,
			Status:      entry.Status,
			StartedAt:   jst(entry.StartedAt),
			FinishedAt:  jst(entry.FinishedAt),
			ContentHash: entry.ContentHash,
			Fetched:     entry.Fetched,
			Inserted:    entry.Inserted,
			Updated:     entry.Updated,
			Deactivated: entry.Deactivated,
			Error:       entry.Error,
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

type reservationResponse struct {
	PortalID      string `json:"portal_id"`
	StartsAt      string `json:"starts_at"`
	Status        string `json:"status"`
	CustomerName  string `json:"customer_name"`
	StaffName     string `json:"staff_name"`
	Channel       string `json:"channel,omitempty"`
	Menu          string `json:"menu,omitempty"`
	PointsUsed    int64  `json:"points_used"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Amount        int64  `json:"amount"`
}

func (a api) listReservations(w http.ResponseWriter, r *http.Request) {
	since := timezone.Now().Add(-time.Hour * 24 * 30)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be RFC3339")
			return
		}
		since = parsed
	}

	rows, err := a.engine.Reservations(r.Context(), chi.URLParam(r, "owner"), since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reservations")
		return
	}

	out := make([]reservationResponse, len(rows))
	for i, row := range rows {
		out[i] = reservationResponse{
			PortalID:      row.PortalID,
			StartsAt:      jst(row.StartsAt),
			Status:        row.Status,
			CustomerName:  row.CustomerName,
			StaffName:     row.StaffName,
			Channel:       row.Channel,
			Menu:          row.Menu,
			PointsUsed:    row.PointsUsed,
			PaymentMethod: row.PaymentMethod,
			Amount:        row.Amount,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type pushRequestBody struct {
	StaffName    string    `json:"staff_name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	CustomerName string    `json:"customer_name"`
	CustomerKana string    `json:"customer_kana"`
	Phone        string    `json:"phone"`
	Memo         string    `json:"memo"`
}

type pushResponse struct {
	LocalRef string `json:"local_ref"`
	PortalID string `json:"portal_id,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	PushedAt string `json:"pushed_at"`
}

func pushToResponse(row db.ReservationPush) pushResponse {
	return pushResponse{
		LocalRef: row.LocalRef,
		PortalID: row.PortalID,
		Status:   row.Status,
		Error:    row.Error,
		PushedAt: jst(row.PushedAt),
	}
}

func (a api) pushReservation(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	localRef := chi.URLParam(r, "localRef")

	var body pushRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.StaffName == "" || body.Start.IsZero() || body.End.IsZero() {
		writeError(w, http.StatusBadRequest, "staff_name, start and end are required")
		return
	}

	record, err := a.engine.PushReservation(r.Context(), owner, syncengine.PushRequest{
		LocalRef: localRef,
		Booking: salonboard.Booking{
			StaffName:    body.StaffName,
			Start:        body.Start,
			End:          body.End,
			CustomerName: body.CustomerName,
			CustomerKana: body.CustomerKana,
			Phone:        body.Phone,
			Memo:         body.Memo,
		},
	})

	var staffMiss salonboard.StaffNotFound
	if errors.As(err, &staffMiss) {
		writeError(w, http.StatusUnprocessableEntity, staffMiss.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "push failed", "owner", owner, "local_ref", localRef, "err", err)
		writeError(w, http.StatusBadGateway, "failed to push reservation to the portal")
		return
	}
	writeJSON(w, http.StatusOK, pushToResponse(record))
}

func (a api) pushStatus(w http.ResponseWriter, r *http.Request) {
	record, err := a.engine.PushStatus(r.Context(), chi.URLParam(r, "owner"), chi.URLParam(r, "localRef"))
	if errors.Is(err, syncengine.PushNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load push status")
		return
	}
	writeJSON(w, http.StatusOK, pushToResponse(record))
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a api) putCredentials(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Username == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	err := a.keychain.SetCredentials(r.Context(), owner, keychain.Credentials{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store credentials")
		return
	}
	// rotated credentials invalidate whatever session the old ones bought
	if err := a.keychain.DeleteSession(r.Context(), owner); err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.WarnContext(r.Context(), "failed to drop session after credential change", "owner", owner, "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a api) deleteCredentials(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	if err := a.keychain.DeleteCredentials(r.Context(), owner); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete credentials")
		return
	}
	if err := a.keychain.DeleteSession(r.Context(), owner); err != nil {
		slog.WarnContext(r.Context(), "failed to drop session", "owner", owner, "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
