package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bilateral/config"
	"bilateral/infras/memdb"
	"bilateral/infras/otel"
	"bilateral/infras/postgres"
	"bilateral/internal/domains/slot/model"
	"bilateral/shared/constant"
	gDto "bilateral/shared/dto"
	gRepo "bilateral/shared/repository"
	"context"
	"fmt"
)

type Slot interface {
	InsertBulk(ctx context.Context, slots []model.Slot) error
	GetAll(ctx context.Context) ([]model.Slot, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// New picks the store matching the configured driver.
func New(cfg *config.Config, db *postgres.Connection, mem *memdb.DB, otel otel.Otel) Slot {
	if cfg.DB.Driver == constant.DBDriverMemory {
		return NewMemory(mem, otel)
	}

	return NewPostgres(db, otel)
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func orderByDateAndStart() gDto.QueryParams {
	return gDto.QueryParams{
		Sort: []gDto.Sort{
			{Column: model.TableName + "." + model.FieldDate, Dir: gDto.SortDirAsc},
			{Column: model.TableName + "." + model.FieldStartTime, Dir: gDto.SortDirAsc},
		},
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) ([]model.Slot, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.GetAll")
	defer scope.End()

	slots, err := r.Repository.GetAll(ctx, orderByDateAndStart(), gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	return slots, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (int, error) {
	return r.Repository.Count(ctx, gDto.FilterGroup{}) //nolint:wrapcheck
}

func (r *repositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	return r.Repository.Delete(ctx, gDto.FilterGroup{ //nolint:wrapcheck
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterIsNotNull, Table: model.TableName},
		},
	})
}
