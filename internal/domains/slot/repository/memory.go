package repository

import (
	"bilateral/infras/memdb"
	"bilateral/infras/otel"
	"bilateral/internal/domains/slot/model"
	"bilateral/shared/constant"
	"context"
	"fmt"
	"slices"
)

// MemoryTable returns the shared slots table with its (date, start_time) unique index.
// Every memory repository touching slots goes through here so the index is always declared.
func MemoryTable(mem *memdb.DB) *memdb.Table[model.Slot] {
	return memdb.Use(mem, model.TableName,
		func(slot model.Slot) string { return slot.ID },
		memdb.Index[model.Slot]{
			Name: model.IndexDateStart,
			Value: func(slot model.Slot) string {
				return slot.DateString() + " " + slot.StartTime
			},
		},
	)
}

type memoryImpl struct {
	mem   *memdb.DB
	slots *memdb.Table[model.Slot]
	otel  otel.Otel
}

func NewMemory(mem *memdb.DB, otel otel.Otel) Slot {
	return &memoryImpl{
		mem:   mem,
		slots: MemoryTable(mem),
		otel:  otel,
	}
}

// InsertBulk is all or nothing, like the single multi-row INSERT it stands in for.
func (r *memoryImpl) InsertBulk(ctx context.Context, slots []model.Slot) error {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.memory.InsertBulk")
	defer scope.End()

	return r.mem.Update(func() error {
		for idx, slot := range slots {
			if err := r.slots.Insert(slot); err != nil {
				inserted := slots[:idx]
				r.slots.Delete(func(row model.Slot) bool {
					return slices.ContainsFunc(inserted, func(s model.Slot) bool { return s.ID == row.ID })
				})

				scope.TraceError(err)

				return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
			}
		}

		return nil
	})
}

func (r *memoryImpl) GetAll(ctx context.Context) (slots []model.Slot, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.memory.GetAll")
	defer scope.End()

	_ = r.mem.View(func() error {
		slots = r.slots.All()

		return nil
	})

	slices.SortStableFunc(slots, model.Less)

	return slots, nil
}

func (r *memoryImpl) Count(ctx context.Context) (count int, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.memory.Count")
	defer scope.End()

	_ = r.mem.View(func() error {
		count = r.slots.Len()

		return nil
	})

	return count, nil
}

func (r *memoryImpl) DeleteAll(ctx context.Context) (removed int64, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.memory.DeleteAll")
	defer scope.End()

	_ = r.mem.Update(func() error {
		removed = int64(r.slots.Delete(func(model.Slot) bool { return true }))

		return nil
	})

	return removed, nil
}
