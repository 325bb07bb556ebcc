package memory

import (
	"context"
	"time"

	"github.com/sandevgo/anjali/pkg/log"
)

const defaultReconcileInterval = 6 * time.Hour

type ReconcileReport struct {
	Orphans    int
	Reindexed  int
	Reembedded int
}

func (r ReconcileReport) changed() bool {
	return r.Orphans > 0 || r.Reindexed > 0 || r.Reembedded > 0
}

// Reconciler repairs drift between the two stores. Semantic entries with
// no structured row are removed, structured rows with no entry are indexed,
// and entries left over from another embedding model are re-embedded.
type Reconciler struct {
	mem      *Memory
	Interval time.Duration
}

func NewReconciler(mem *Memory) *Reconciler {
	return &Reconciler{
		mem:      mem,
		Interval: defaultReconcileInterval,
	}
}

func (r *Reconciler) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("starting memory reconciler")

	r.run(ctx)
	if r.Interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.run(ctx)
		}
	}
}

func (r *Reconciler) Shutdown(ctx context.Context) error {
	return nil
}

func (r *Reconciler) run(ctx context.Context) {
	report, err := r.Reconcile(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("memory reconciliation failed")
		return
	}
	if report.changed() {
		log.FromCtx(ctx).Warn().
			Int("orphans", report.Orphans).
			Int("reindexed", report.Reindexed).
			Int("reembedded", report.Reembedded).
			Msg("repaired memory stores")
	}
}

// Reconcile holds the memory lock for the whole pass so that no save or
// clear lands between listing the two stores and repairing them.
func (r *Reconciler) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()

	repo, index := r.mem.repo, r.mem.index
	lister, ok := index.(indexLister)
	if !ok {
		return report, nil
	}

	records, err := repo.ListMemories(ctx, 0)
	if err != nil {
		return report, err
	}
	ids, err := lister.IDs(ctx)
	if err != nil {
		return report, err
	}

	known := make(map[string]struct{}, len(records))
	for _, rec := range records {
		known[rec.ID] = struct{}{}
	}
	indexed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		indexed[id] = struct{}{}
		if _, ok := known[id]; ok {
			continue
		}
		if err := index.Delete(ctx, id); err != nil {
			return report, err
		}
		report.Orphans++
	}

	var stale map[string]struct{}
	if sl, ok := index.(staleLister); ok {
		ids, err := sl.Stale(ctx)
		if err != nil {
			return report, err
		}
		stale = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			stale[id] = struct{}{}
		}
	}

	for _, rec := range records {
		_, present := indexed[rec.ID]
		_, outdated := stale[rec.ID]
		if present && !outdated {
			continue
		}
		if err := index.Index(ctx, rec.ID, rec.Content, metadataOf(rec)); err != nil {
			return report, err
		}
		if present {
			report.Reembedded++
		} else {
			report.Reindexed++
		}
	}

	return report, nil
}
