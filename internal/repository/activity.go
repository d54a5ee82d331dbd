// Package repository bridges the in-memory document store to the
// backend document and to schema validation, presenting record-level
// CRUD to the HTTP handlers.
//
// Every operation runs the same cycle: validate the payload (create
// and update only), fetch a fresh snapshot from the backend, mutate it
// in memory, persist it whole, and return the resulting record. The
// snapshot is never cached across requests; if persisting fails the
// in-memory mutation is simply discarded.
//
// Two concurrent writers can both fetch the same snapshot and the
// second persist overwrites the first — last writer wins on the whole
// document. A conditional write on last_update would turn that into a
// detectable conflict, but the backend contract has no compare-and-swap
// today.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"

	"github.com/sag-insper/schedule-api/internal/apperror"
	"github.com/sag-insper/schedule-api/internal/backend"
	"github.com/sag-insper/schedule-api/internal/model"
	"github.com/sag-insper/schedule-api/internal/store"
)

// Sanitized messages for backend failures. The underlying cause is
// logged server-side and never reaches the client.
const (
	msgSyncFailed    = "there was an error accessing the database during synchronization"
	msgNotSynced     = "data could not be synchronized with the database"
	msgPersistFailed = "there was an error accessing the database while sending data to the database"
)

// Activities is the synchronizing repository for the activity
// collection.
type Activities struct {
	doc    backend.Document
	logger *slog.Logger
}

// NewActivities creates a repository over the given backend document.
func NewActivities(doc backend.Document, logger *slog.Logger) *Activities {
	return &Activities{
		doc:    doc,
		logger: logger,
	}
}

// List fetches the collection and returns every record that still
// parses under the activity schema. Records that fail to parse are
// dropped and logged rather than failing the whole listing — the read
// path stays usable even if a bad record ever makes it into the
// document.
func (r *Activities) List(ctx context.Context) ([]model.Activity, error) {
	st, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	records := st.List()
	activities := make([]model.Activity, 0, len(records))
	for _, record := range records {
		activity, err := decodeRecord(record)
		if err != nil {
			r.logger.Warn("dropping unparsable record from listing",
				slog.Any("id", record["id"]),
				slog.String("error", err.Error()),
			)
			continue
		}
		activities = append(activities, activity)
	}

	return activities, nil
}

// Create validates the payload, then fetches, inserts, and persists.
// Validation runs before any backend I/O so bad input never costs a
// remote round trip.
func (r *Activities) Create(ctx context.Context, activity model.Activity) (model.Activity, error) {
	if err := activity.Validate(); err != nil {
		return model.Activity{}, err
	}

	st, err := r.fetch(ctx)
	if err != nil {
		return model.Activity{}, err
	}

	fields, err := encodeRecord(activity)
	if err != nil {
		r.logger.Error("encoding activity", slog.String("error", err.Error()))
		return model.Activity{}, apperror.Internal(msgPersistFailed)
	}
	stored := st.Add(fields)

	if err := r.persist(ctx, st); err != nil {
		return model.Activity{}, err
	}

	created, err := decodeRecord(stored)
	if err != nil {
		r.logger.Error("decoding stored activity", slog.String("error", err.Error()))
		return model.Activity{}, apperror.Internal(msgPersistFailed)
	}

	r.logger.Info("activity created",
		slog.String("id", created.ID),
		slog.String("cod_turma", created.CodTurma),
	)
	return created, nil
}

// Update validates the patch shape, fetches, merges the set fields
// into the stored record, re-validates the merged record against the
// full activity rules (the time interval is re-checked and cod_turma
// recomputed), and persists.
func (r *Activities) Update(ctx context.Context, id string, patch model.ActivityPatch) (model.Activity, error) {
	if err := patch.Validate(); err != nil {
		return model.Activity{}, err
	}

	st, err := r.fetch(ctx)
	if err != nil {
		return model.Activity{}, err
	}

	record, ok := st.Get(id)
	if !ok {
		return model.Activity{}, apperror.NotFound("ID not found")
	}

	merged, err := decodeRecord(record)
	if err != nil {
		r.logger.Error("decoding stored activity",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return model.Activity{}, apperror.Internal(msgSyncFailed)
	}

	patch.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return model.Activity{}, err
	}
	merged.ID = id

	fields, err := encodeRecord(merged)
	if err != nil {
		r.logger.Error("encoding activity", slog.String("error", err.Error()))
		return model.Activity{}, apperror.Internal(msgPersistFailed)
	}
	if _, err := st.Update(id, fields); err != nil {
		return model.Activity{}, apperror.NotFound("ID not found")
	}

	if err := r.persist(ctx, st); err != nil {
		return model.Activity{}, err
	}

	r.logger.Info("activity updated", slog.String("id", id))
	return merged, nil
}

// Delete fetches, removes the record, and persists.
func (r *Activities) Delete(ctx context.Context, id string) error {
	st, err := r.fetch(ctx)
	if err != nil {
		return err
	}

	if err := st.Delete(id); err != nil {
		return apperror.NotFound("ID not found")
	}

	if err := r.persist(ctx, st); err != nil {
		return err
	}

	r.logger.Info("activity deleted", slog.String("id", id))
	return nil
}

// Initialize seeds an empty collection document if none exists.
// The embedded backend starts from a blank database, unlike the
// original hosted document which was created by hand.
func (r *Activities) Initialize(ctx context.Context) error {
	_, exists, err := r.doc.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("repository: checking collection document: %w", err)
	}
	if exists {
		return nil
	}

	fields, err := store.New().Document()
	if err != nil {
		return fmt.Errorf("repository: encoding empty snapshot: %w", err)
	}
	if err := r.doc.Store(ctx, fields); err != nil {
		return fmt.Errorf("repository: seeding collection document: %w", err)
	}

	r.logger.Info("collection document seeded")
	return nil
}

// fetch reads the backend document and builds a fresh snapshot.
func (r *Activities) fetch(ctx context.Context) (*store.Store, error) {
	fields, exists, err := r.doc.Fetch(ctx)
	if err != nil {
		r.logger.Error("backend fetch failed", slog.String("error", err.Error()))
		return nil, apperror.Internal(msgSyncFailed)
	}
	if !exists {
		r.logger.Error("collection document does not exist")
		return nil, apperror.Internal(msgNotSynced)
	}

	st, err := store.Parse(fields)
	if err != nil {
		r.logger.Error("parsing backend document", slog.String("error", err.Error()))
		return nil, apperror.Internal(msgSyncFailed)
	}
	return st, nil
}

// persist writes the snapshot back as the whole backend document.
func (r *Activities) persist(ctx context.Context, st *store.Store) error {
	fields, err := st.Document()
	if err != nil {
		r.logger.Error("serializing snapshot", slog.String("error", err.Error()))
		return apperror.Internal(msgPersistFailed)
	}
	if err := r.doc.Store(ctx, fields); err != nil {
		r.logger.Error("backend store failed", slog.String("error", err.Error()))
		return apperror.Internal(msgPersistFailed)
	}
	return nil
}

// encodeRecord converts an activity into the raw field map the store
// keeps. Going through JSON keeps the wire names as the single source
// of field naming.
func encodeRecord(activity model.Activity) (store.Record, error) {
	raw, err := json.Marshal(activity)
	if err != nil {
		return nil, err
	}
	var fields store.Record
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// decodeRecord parses a raw field map back into a validated activity.
func decodeRecord(record store.Record) (model.Activity, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return model.Activity{}, err
	}
	var activity model.Activity
	if err := json.Unmarshal(raw, &activity); err != nil {
		return model.Activity{}, err
	}
	if err := activity.Validate(); err != nil {
		return model.Activity{}, err
	}
	return activity, nil
}
