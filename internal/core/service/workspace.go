package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/buzzhire/recruit-mailer/internal/core/compose"
	"github.com/buzzhire/recruit-mailer/internal/core/domain"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
)

// loadConcurrency bounds the selection fetches issued by Load.
const loadConcurrency = 8

// Workspace is the application state shared by every operator request: a read
// cache of candidates and their selections in front of the external store.
// The cache only changes after the store has accepted a write.
type Workspace struct {
	candidates ports.CandidateStore
	selections ports.SelectionStore
	guard      ports.InflightGuard
	logger     zerolog.Logger

	mu      sync.RWMutex
	loaded  bool
	ids     []string // store order
	byID    map[string]domain.Candidate
	selByID map[string]domain.RecipientSelections
}

func NewWorkspace(candidates ports.CandidateStore, selections ports.SelectionStore, guard ports.InflightGuard, logger zerolog.Logger) *Workspace {
	return &Workspace{
		candidates: candidates,
		selections: selections,
		guard:      guard,
		logger:     logger,
		byID:       make(map[string]domain.Candidate),
		selByID:    make(map[string]domain.RecipientSelections),
	}
}

// Load fetches every candidate and then every candidate's selections. Missing
// selections are defaulted and persisted. Per-candidate failures are joined
// into the returned error; the affected candidates are retried on access.
func (w *Workspace) Load(ctx context.Context) error {
	list, err := w.refreshCandidates(ctx)
	if err != nil {
		return err
	}

	var (
		g      errgroup.Group
		errMu  sync.Mutex
		errs   []error
		loaded int
	)
	g.SetLimit(loadConcurrency)
	for _, c := range list {
		g.Go(func() error {
			sel, err := w.loadOrDefault(ctx, c)
			errMu.Lock()
			defer errMu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("candidate %s: %w", c.ID, err))
				return nil
			}
			w.putSelections(sel)
			loaded++
			return nil
		})
	}
	_ = g.Wait()

	w.logger.Info().
		Int("candidates", len(list)).
		Int("selections", loaded).
		Int("failed", len(errs)).
		Msg("workspace loaded")
	return errors.Join(errs...)
}

// ListCandidates returns cached candidates in store order, filtered by search.
func (w *Workspace) ListCandidates(ctx context.Context, search string) ([]domain.Candidate, error) {
	if err := w.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]domain.Candidate, 0, len(w.ids))
	for _, id := range w.ids {
		c := w.byID[id]
		if c.Matches(search) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Candidate returns the cached candidate, fetching it on a miss.
func (w *Workspace) Candidate(ctx context.Context, id string) (domain.Candidate, error) {
	if id == "" {
		return domain.Candidate{}, domain.NewValidationError("id", "candidate id is required")
	}

	w.mu.RLock()
	c, ok := w.byID[id]
	w.mu.RUnlock()
	if ok {
		return c, nil
	}

	c, err := w.candidates.GetCandidate(ctx, id)
	if err != nil {
		return domain.Candidate{}, err
	}
	w.putCandidate(c)
	return c, nil
}

// CreateCandidate validates and stores c, then persists its default selections.
// A failed selections write is logged and retried the next time the
// candidate's selections are read.
func (w *Workspace) CreateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	c.ID = ""
	if err := c.Validate(); err != nil {
		return domain.Candidate{}, err
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}

	created, err := w.candidates.CreateCandidate(ctx, c)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("create candidate: %w", err)
	}
	w.putCandidate(created)

	saved, err := w.selections.SaveSelections(ctx, domain.NewDefaultSelections(created))
	if err != nil {
		w.logger.Warn().Err(err).Str("candidate_id", created.ID).Msg("default selections not persisted")
		return created, nil
	}
	w.putSelections(saved)

	w.logger.Info().Str("candidate_id", created.ID).Msg("candidate created")
	return created, nil
}

// UpdateCandidate replaces the stored candidate.
func (w *Workspace) UpdateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	if c.ID == "" {
		return domain.Candidate{}, domain.NewValidationError("id", "candidate id is required")
	}
	if err := c.Validate(); err != nil {
		return domain.Candidate{}, err
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}

	release, err := w.guard.Acquire(ctx, "candidate:"+c.ID)
	if err != nil {
		return domain.Candidate{}, err
	}
	defer release()

	updated, err := w.candidates.UpdateCandidate(ctx, c)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("update candidate: %w", err)
	}
	w.putCandidate(updated)
	return updated, nil
}

// DeleteCandidate removes the candidate and forgets its cached selections.
func (w *Workspace) DeleteCandidate(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id", "candidate id is required")
	}
	release, err := w.guard.Acquire(ctx, "candidate:"+id)
	if err != nil {
		return err
	}
	defer release()

	if err := w.candidates.DeleteCandidate(ctx, id); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.byID, id)
	delete(w.selByID, id)
	for i, cid := range w.ids {
		if cid == id {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			break
		}
	}
	w.logger.Info().Str("candidate_id", id).Msg("candidate deleted")
	return nil
}

// Stats reports the size of the candidate pool and today's additions.
func (w *Workspace) Stats(ctx context.Context) (domain.Stats, error) {
	if err := w.ensureLoaded(ctx); err != nil {
		return domain.Stats{}, err
	}
	today, err := w.candidates.CountCreatedToday(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count today: %w", err)
	}

	w.mu.RLock()
	total := len(w.ids)
	w.mu.RUnlock()
	return domain.Stats{Total: total, Today: today}, nil
}

// Selections returns the candidate's selections, loading or defaulting them
// on a cache miss.
func (w *Workspace) Selections(ctx context.Context, candidateID string) (domain.RecipientSelections, error) {
	w.mu.RLock()
	sel, ok := w.selByID[candidateID]
	w.mu.RUnlock()
	if ok {
		return sel.Clone(), nil
	}

	c, err := w.Candidate(ctx, candidateID)
	if err != nil {
		return domain.RecipientSelections{}, err
	}
	sel, err = w.loadOrDefault(ctx, c)
	if err != nil {
		return domain.RecipientSelections{}, err
	}
	w.putSelections(sel)
	return sel.Clone(), nil
}

// SaveSelections replaces the stored selections after checking every key
// against the candidate's catalog. Keys of removed custom fields that are
// still stored are dropped rather than rejected, so a loaded value can always
// be saved back.
func (w *Workspace) SaveSelections(ctx context.Context, s domain.RecipientSelections) (domain.RecipientSelections, error) {
	return w.mutate(ctx, s.CandidateID, func(c domain.Candidate, cur domain.RecipientSelections) (domain.RecipientSelections, error) {
		return s.Reconcile(domain.CatalogFor(c), cur)
	})
}

// ToggleField flips the visibility of one field for one recipient.
func (w *Workspace) ToggleField(ctx context.Context, candidateID string, key domain.FieldKey, r domain.RecipientType) (domain.RecipientSelections, error) {
	if !r.Valid() {
		return domain.RecipientSelections{}, domain.NewValidationError("recipient", "unknown recipient %q", r)
	}
	return w.mutate(ctx, candidateID, func(c domain.Candidate, cur domain.RecipientSelections) (domain.RecipientSelections, error) {
		catalog := domain.CatalogFor(c)
		if err := domain.CheckInCatalog(catalog, key); err != nil {
			return domain.RecipientSelections{}, err
		}
		cur = cur.Prune(catalog)
		cur.FieldVisibility = cur.FieldVisibility.Toggle(key, r)
		return cur, nil
	})
}

// SetAllForRecipient shows or hides every known field for one recipient.
func (w *Workspace) SetAllForRecipient(ctx context.Context, candidateID string, r domain.RecipientType, visible bool) (domain.RecipientSelections, error) {
	if !r.Valid() {
		return domain.RecipientSelections{}, domain.NewValidationError("recipient", "unknown recipient %q", r)
	}
	return w.mutate(ctx, candidateID, func(c domain.Candidate, cur domain.RecipientSelections) (domain.RecipientSelections, error) {
		catalog := domain.CatalogFor(c)
		cur = cur.Prune(catalog)
		cur.FieldVisibility = cur.FieldVisibility.SetAllForRecipient(catalog, r, visible)
		return cur, nil
	})
}

// ReorderFields moves one entry of the effective order and stores the result
// as the explicit order.
func (w *Workspace) ReorderFields(ctx context.Context, candidateID string, from, to int) (domain.RecipientSelections, error) {
	return w.mutate(ctx, candidateID, func(c domain.Candidate, cur domain.RecipientSelections) (domain.RecipientSelections, error) {
		catalog := domain.CatalogFor(c)
		cur = cur.Prune(catalog)
		order, err := domain.EffectiveOrder(cur.FieldOrder, catalog).Reorder(from, to)
		if err != nil {
			return domain.RecipientSelections{}, err
		}
		cur.FieldOrder = order
		return cur, nil
	})
}

// Compose renders the candidate's email for r.
func (w *Workspace) Compose(ctx context.Context, candidateID string, r domain.RecipientType, order domain.FieldOrder) (domain.Email, error) {
	if !r.Valid() {
		return domain.Email{}, domain.NewValidationError("recipient", "unknown recipient %q", r)
	}
	c, sel, err := w.candidateWithSelections(ctx, candidateID)
	if err != nil {
		return domain.Email{}, err
	}

	if len(order) == 0 {
		order = sel.FieldOrder
	} else {
		catalog := domain.CatalogFor(c)
		for _, k := range order {
			if err := domain.CheckInCatalog(catalog, k); err != nil {
				return domain.Email{}, err
			}
		}
	}
	return compose.Generate(c, r, sel.FieldVisibility, order), nil
}

// mutate runs edit against the current selections under the candidate's save
// guard and persists the result. The cache is only updated with the store's echo.
func (w *Workspace) mutate(ctx context.Context, candidateID string, edit func(domain.Candidate, domain.RecipientSelections) (domain.RecipientSelections, error)) (domain.RecipientSelections, error) {
	if candidateID == "" {
		return domain.RecipientSelections{}, domain.NewValidationError("candidateId", "candidate id is required")
	}
	release, err := w.guard.Acquire(ctx, "save:"+candidateID)
	if err != nil {
		return domain.RecipientSelections{}, err
	}
	defer release()

	c, cur, err := w.candidateWithSelections(ctx, candidateID)
	if err != nil {
		return domain.RecipientSelections{}, err
	}
	next, err := edit(c, cur)
	if err != nil {
		return domain.RecipientSelections{}, err
	}
	next.CandidateID = candidateID

	saved, err := w.selections.SaveSelections(ctx, next)
	if err != nil {
		return domain.RecipientSelections{}, fmt.Errorf("save selections: %w", err)
	}
	if saved.CandidateID == "" {
		saved.CandidateID = candidateID
	}
	w.putSelections(saved)

	w.logger.Debug().Str("candidate_id", candidateID).Msg("selections saved")
	return saved.Clone(), nil
}

// loadOrDefault fetches c's selections and, only on a genuine not-found,
// persists and returns the all-visible default.
func (w *Workspace) loadOrDefault(ctx context.Context, c domain.Candidate) (domain.RecipientSelections, error) {
	sel, err := w.selections.LoadSelections(ctx, c.ID)
	if err == nil {
		if sel.CandidateID == "" {
			sel.CandidateID = c.ID
		}
		return sel, nil
	}
	if !errors.Is(err, domain.ErrSelectionsNotFound) {
		return domain.RecipientSelections{}, fmt.Errorf("load selections: %w", err)
	}

	saved, err := w.selections.SaveSelections(ctx, domain.NewDefaultSelections(c))
	if err != nil {
		return domain.RecipientSelections{}, fmt.Errorf("save default selections: %w", err)
	}
	w.logger.Info().Str("candidate_id", c.ID).Msg("default selections created")
	return saved, nil
}

func (w *Workspace) candidateWithSelections(ctx context.Context, id string) (domain.Candidate, domain.RecipientSelections, error) {
	c, err := w.Candidate(ctx, id)
	if err != nil {
		return domain.Candidate{}, domain.RecipientSelections{}, err
	}
	sel, err := w.Selections(ctx, id)
	if err != nil {
		return domain.Candidate{}, domain.RecipientSelections{}, err
	}
	return c, sel, nil
}

func (w *Workspace) ensureLoaded(ctx context.Context) error {
	w.mu.RLock()
	loaded := w.loaded
	w.mu.RUnlock()
	if loaded {
		return nil
	}
	_, err := w.refreshCandidates(ctx)
	return err
}

func (w *Workspace) refreshCandidates(ctx context.Context) ([]domain.Candidate, error) {
	list, err := w.candidates.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.ids = w.ids[:0]
	w.byID = make(map[string]domain.Candidate, len(list))
	for _, c := range list {
		if _, dup := w.byID[c.ID]; !dup {
			w.ids = append(w.ids, c.ID)
		}
		w.byID[c.ID] = c
	}
	w.loaded = true
	return list, nil
}

func (w *Workspace) putCandidate(c domain.Candidate) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byID[c.ID]; !ok {
		w.ids = append(w.ids, c.ID)
	}
	w.byID[c.ID] = c
}

func (w *Workspace) putSelections(s domain.RecipientSelections) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selByID[s.CandidateID] = s.Clone()
}
