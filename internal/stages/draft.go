package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ats-backend/internal/shared/validation"
)

// Draft holds pipeline edits in memory until Commit.
type Draft struct {
	catalog *Catalog
	stages  []Stage
}

// Stages returns the draft's current list.
func (d *Draft) Stages() []Stage {
	return append([]Stage(nil), d.stages...)
}

// Add appends a new stage at the end of the pipeline.
func (d *Draft) Add(in Input) (Stage, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return Stage{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if d.hasName(in.Name, "") {
		return Stage{}, fmt.Errorf("%w: %s", ErrDuplicateName, in.Name)
	}
	if in.Type == "" {
		in.Type = TypeScreening
	}
	if in.Color == "" {
		in.Color = "#6b7280"
	}
	s := Stage{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Type:  in.Type,
		Order: len(d.stages),
		Color: in.Color,
	}
	d.stages = append(d.stages, s)
	return s, nil
}

// Remove drops a stage, refusing to go below MinStages.
func (d *Draft) Remove(id string) error {
	i := d.index(id)
	if i < 0 {
		return ErrNotFound
	}
	if len(d.stages)-1 < MinStages {
		return ErrMinStages
	}
	d.stages = append(d.stages[:i:i], d.stages[i+1:]...)
	d.reorder()
	return nil
}

// Rename changes a stage's name.
func (d *Draft) Rename(id, name string) error {
	i := d.index(id)
	if i < 0 {
		return ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if d.hasName(name, id) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	d.stages[i].Name = name
	return nil
}

// Recolor changes a stage's display color.
func (d *Draft) Recolor(id, color string) error {
	i := d.index(id)
	if i < 0 {
		return ErrNotFound
	}
	if err := validation.Validator().Var(color, "required,hexcolor"); err != nil {
		return fmt.Errorf("%w: color must be a hex color", ErrInvalidInput)
	}
	d.stages[i].Color = color
	return nil
}

// SetType changes a stage's type.
func (d *Draft) SetType(id string, t Type) error {
	i := d.index(id)
	if i < 0 {
		return ErrNotFound
	}
	if !t.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, t)
	}
	d.stages[i].Type = t
	return nil
}

// Move places a stage at position, clamped to the list bounds.
func (d *Draft) Move(id string, position int) error {
	i := d.index(id)
	if i < 0 {
		return ErrNotFound
	}
	if position < 0 {
		position = 0
	}
	if position >= len(d.stages) {
		position = len(d.stages) - 1
	}
	s := d.stages[i]
	rest := append(d.stages[:i:i], d.stages[i+1:]...)
	out := make([]Stage, 0, len(d.stages))
	out = append(out, rest[:position]...)
	out = append(out, s)
	out = append(out, rest[position:]...)
	d.stages = out
	d.reorder()
	return nil
}

// Commit validates and saves the draft through its catalog.
func (d *Draft) Commit(ctx context.Context) ([]Stage, error) {
	saved, err := d.catalog.Save(ctx, d.stages)
	if err != nil {
		return nil, err
	}
	d.stages = saved
	return d.Stages(), nil
}

func (d *Draft) index(id string) int {
	for i := range d.stages {
		if d.stages[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Draft) hasName(name, exceptID string) bool {
	for _, s := range d.stages {
		if s.ID != exceptID && strings.EqualFold(strings.TrimSpace(s.Name), name) {
			return true
		}
	}
	return false
}

func (d *Draft) reorder() {
	for i := range d.stages {
		d.stages[i].Order = i
	}
}
