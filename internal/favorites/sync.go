package favorites

import (
	"context"
	"fmt"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/service"
)

// Trigger names the moments a screen must re-synchronize.
type Trigger int

const (
	// TriggerFocus fires when a screen becomes visible again.
	TriggerFocus Trigger = iota
	// TriggerMutation fires after a mutation issued by the same screen completes.
	TriggerMutation
)

func (t Trigger) String() string {
	switch t {
	case TriggerFocus:
		return "focus"
	case TriggerMutation:
		return "mutation"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// Snapshot is the favorite set as of one refresh.
type Snapshot struct {
	ids     map[string]struct{}
	Entries model.FavoriteSet
}

// NewSnapshot indexes set for membership queries.
func NewSnapshot(set model.FavoriteSet) Snapshot {
	ids := make(map[string]struct{}, len(set))
	for _, e := range set {
		ids[e.ID] = struct{}{}
	}
	return Snapshot{ids: ids, Entries: set}
}

// IsFavorite reports membership of id.
func (s Snapshot) IsFavorite(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns identifiers in display order.
func (s Snapshot) IDs() []string {
	return s.Entries.IDs()
}

// Len returns the number of favorites.
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// Synchronizer is the refresh entry point screens use instead of a push
// channel. It holds no state of its own.
type Synchronizer struct {
	repo     *Repository
	notifier service.Notifier
}

// NewSynchronizer wires a synchronizer to repo. notifier may be nil.
func NewSynchronizer(repo *Repository, notifier service.Notifier) *Synchronizer {
	if notifier == nil {
		notifier = service.NotifierFunc(func(string) {})
	}
	return &Synchronizer{repo: repo, notifier: notifier}
}

// Repository exposes the underlying repository.
func (s *Synchronizer) Repository() *Repository {
	return s.repo
}

// Refresh returns the current favorite identifiers.
func (s *Synchronizer) Refresh(ctx context.Context) []string {
	return s.repo.Load(ctx).IDs()
}

// Snapshot loads the current favorites for rendering.
func (s *Synchronizer) Snapshot(ctx context.Context) Snapshot {
	return NewSnapshot(s.repo.Load(ctx))
}

// Toggle flips entry and returns the set the write confirmed. On failure the
// caller keeps its previous snapshot.
func (s *Synchronizer) Toggle(ctx context.Context, entry model.FavoriteEntry) (Snapshot, error) {
	set, err := s.repo.Toggle(ctx, entry)
	if err != nil {
		s.notifier.Notify(common.UserMessage(err, fmt.Sprintf("Could not update favorites for %s", entry.ArtName)))
		return Snapshot{}, err
	}

	if set.Contains(entry.ID) {
		s.notifier.Notify(fmt.Sprintf("Added %s to favorites", entry.ArtName))
	} else {
		s.notifier.Notify(fmt.Sprintf("Removed %s from favorites", entry.ArtName))
	}

	return NewSnapshot(set), nil
}

// Add favorites entry without ever removing it, for callers that must not
// flip an existing favorite off.
func (s *Synchronizer) Add(ctx context.Context, entry model.FavoriteEntry) (Snapshot, error) {
	set, added, err := s.repo.Add(ctx, entry)
	if err != nil {
		s.notifier.Notify(common.UserMessage(err, fmt.Sprintf("Could not update favorites for %s", entry.ArtName)))
		return Snapshot{}, err
	}

	if added {
		s.notifier.Notify(fmt.Sprintf("Added %s to favorites", entry.ArtName))
	} else {
		s.notifier.Notify(fmt.Sprintf("%s is already a favorite", entry.ArtName))
	}
	return NewSnapshot(set), nil
}

// View is one screen's local copy of favorite state. Results are applied in
// request order; a refresh that resolves after a newer one is dropped.
// A View is owned by a single goroutine.
type View struct {
	snapshot Snapshot
	name     string
	issued   uint64
	applied  uint64
}

// NewView creates an empty view for the named screen.
func NewView(name string) *View {
	return &View{name: name, snapshot: NewSnapshot(nil)}
}

// Begin records a refresh request and returns its sequence number.
func (v *View) Begin(trigger Trigger) uint64 {
	v.issued++
	common.LogDebug("Refreshing favorites", common.Fields{
		"view":    v.name,
		"trigger": trigger.String(),
		"seq":     v.issued,
	})
	return v.issued
}

// Apply installs snap if seq is newer than the last applied refresh.
func (v *View) Apply(seq uint64, snap Snapshot) bool {
	if seq <= v.applied {
		return false
	}
	v.applied = seq
	v.snapshot = snap
	return true
}

// IsFavorite reports membership according to the last applied refresh.
func (v *View) IsFavorite(id string) bool {
	return v.snapshot.IsFavorite(id)
}

// Snapshot returns the last applied refresh.
func (v *View) Snapshot() Snapshot {
	return v.snapshot
}

// Name returns the screen name.
func (v *View) Name() string {
	return v.name
}
