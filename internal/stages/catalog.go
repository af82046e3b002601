package stages

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ats-backend/internal/shared/storage/kv"
)

// CollectionKey is the store key holding the pipeline.
const CollectionKey = "stages"

// MinStages is the smallest pipeline the catalog accepts.
const MinStages = 2

// Catalog is the ordered, user-editable set of pipeline stages.
type Catalog struct {
	items *kv.Collection[Stage]
}

// NewCatalog binds a catalog to store. An absent key reads as Defaults().
func NewCatalog(store kv.Store) *Catalog {
	return &Catalog{items: kv.NewCollection(store, CollectionKey, Defaults)}
}

// Collection exposes the underlying collection for seeding.
func (c *Catalog) Collection() *kv.Collection[Stage] { return c.items }

// List returns the stages sorted by order.
func (c *Catalog) List(ctx context.Context) ([]Stage, error) {
	all, err := c.items.Load(ctx)
	if err != nil {
		return nil, err
	}
	return normalize(all), nil
}

// Get returns the stage with id.
func (c *Catalog) Get(ctx context.Context, id string) (Stage, error) {
	all, err := c.List(ctx)
	if err != nil {
		return Stage{}, err
	}
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return Stage{}, ErrNotFound
}

// First returns the order-0 stage, or the lowest-order stage when none has order 0.
func (c *Catalog) First(ctx context.Context) (Stage, error) {
	all, err := c.List(ctx)
	if err != nil {
		return Stage{}, err
	}
	for _, s := range all {
		if s.Order == 0 {
			return s, nil
		}
	}
	return all[0], nil
}

// FirstOfType returns the lowest-order stage of type t.
func (c *Catalog) FirstOfType(ctx context.Context, t Type) (Stage, error) {
	all, err := c.List(ctx)
	if err != nil {
		return Stage{}, err
	}
	for _, s := range all {
		if s.Type == t {
			return s, nil
		}
	}
	return Stage{}, ErrNotFound
}

// Save validates the list, reassigns Order to each stage's position, and
// replaces the stored pipeline in one write.
func (c *Catalog) Save(ctx context.Context, list []Stage) ([]Stage, error) {
	next, err := Check(list)
	if err != nil {
		return nil, err
	}
	if err := c.items.Replace(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Reset restores Defaults(), discarding customizations.
// Applications keep whatever stage snapshots they already hold.
func (c *Catalog) Reset(ctx context.Context) ([]Stage, error) {
	defaults := Defaults()
	if err := c.items.Replace(ctx, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// Draft loads the current pipeline into an editable draft.
func (c *Catalog) Draft(ctx context.Context) (*Draft, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Draft{catalog: c, stages: all}, nil
}

// Edit applies fn to a draft of the stored pipeline and commits it, holding the
// collection lock so concurrent edits do not overwrite each other.
func (c *Catalog) Edit(ctx context.Context, fn func(d *Draft) error) ([]Stage, error) {
	var saved []Stage
	err := c.items.Update(ctx, func(all []Stage) ([]Stage, error) {
		d := &Draft{catalog: c, stages: normalize(all)}
		if err := fn(d); err != nil {
			return nil, err
		}
		next, err := Check(d.stages)
		if err != nil {
			return nil, err
		}
		saved = next
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Check validates a pipeline and returns a copy with Order = index.
func Check(list []Stage) ([]Stage, error) {
	if len(list) < MinStages {
		return nil, ErrMinStages
	}
	seenNames := make(map[string]struct{}, len(list))
	seenIDs := make(map[string]struct{}, len(list))
	out := make([]Stage, len(list))
	for i, s := range list {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return nil, fmt.Errorf("%w: stage %d has an empty name", ErrInvalidInput, i)
		}
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("%w: stage %q has no id", ErrInvalidInput, s.Name)
		}
		if !s.Type.Valid() {
			return nil, fmt.Errorf("%w: stage %q has unknown type %q", ErrInvalidInput, s.Name, s.Type)
		}
		key := strings.ToLower(s.Name)
		if _, dup := seenNames[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, s.Name)
		}
		if _, dup := seenIDs[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidInput, s.ID)
		}
		seenNames[key] = struct{}{}
		seenIDs[s.ID] = struct{}{}
		s.Order = i
		out[i] = s
	}
	return out, nil
}

func normalize(all []Stage) []Stage {
	if len(all) == 0 {
		return Defaults()
	}
	out := append([]Stage(nil), all...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
