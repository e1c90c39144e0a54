package flagset

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/randalmurphal/flagset/pkg/flagset/observability"
	"github.com/randalmurphal/flagset/pkg/flagset/persist"
)

// Document snapshots every canonical flag for persistence. Aliases are
// never included.
func (r *Registry) Document() persist.Document {
	doc := persist.Document{Records: make([]persist.Record, 0, r.byID.Len())}
	r.byID.Range(func(_ uuid.UUID, slot *Slot) bool {
		f := slot.Get()
		doc.Records = append(doc.Records, persist.Record{Name: f.Name, ID: f.ID, Enabled: f.Enabled})
		return true
	})
	return doc
}

// Load overlays persisted state onto the registry's flags. Records are
// matched by case-insensitive name; records naming an alias or an unknown
// flag are skipped. It returns false if there is no store, nothing has been
// stored, or the stored data cannot be read. Load never saves.
func (r *Registry) Load() bool {
	store := r.cfg.store
	if store == nil {
		return false
	}

	ctx, span := r.cfg.spans.StartPersistSpan(context.Background(), "load", store.Name())
	done := observability.TimedOperation()
	doc, err := store.Load()
	r.cfg.metrics.RecordPersist(ctx, "load", store.Name(), done(), err)
	r.cfg.spans.EndSpanWithError(span, err)

	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			observability.LogNothingStored(r.cfg.logger, store.Name())
		} else {
			observability.LogPersistError(r.cfg.logger, "load", store.Name(), err)
		}
		return false
	}

	applied, skipped := 0, 0
	for _, rec := range doc.Records {
		e, ok := r.lookup(rec.Name)
		if !ok {
			observability.LogRecordSkipped(r.cfg.logger, rec.Name, "unknown")
			skipped++
			continue
		}
		slot, ok := e.(*Slot)
		if !ok {
			observability.LogRecordSkipped(r.cfg.logger, rec.Name, "alias")
			skipped++
			continue
		}
		if rec.ID != uuid.Nil && rec.ID != slot.value.ID {
			observability.LogIDMismatch(r.cfg.logger, rec.Name, rec.ID, slot.value.ID)
		}
		slot.value = slot.value.With(rec.Enabled)
		applied++
	}

	observability.LogLoaded(r.cfg.logger, store.Name(), applied, skipped)
	return true
}

// Save writes every canonical flag to the store. Failures are logged and
// otherwise ignored; in-memory state is never rolled back.
func (r *Registry) Save() {
	store := r.cfg.store
	if store == nil {
		return
	}

	ctx, span := r.cfg.spans.StartPersistSpan(context.Background(), "save", store.Name())
	done := observability.TimedOperation()
	err := store.Save(r.Document())
	r.cfg.metrics.RecordPersist(ctx, "save", store.Name(), done(), err)
	r.cfg.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogPersistError(r.cfg.logger, "save", store.Name(), err)
	}
}

// Close closes the store, if any.
func (r *Registry) Close() error {
	if r.cfg.store == nil {
		return nil
	}
	return r.cfg.store.Close()
}

func (r *Registry) recordMutation(name string, enabled, ok bool) {
	r.cfg.metrics.RecordMutation(context.Background(), name, enabled, ok)
}
