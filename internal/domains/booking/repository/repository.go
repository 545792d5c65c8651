package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bilateral/config"
	"bilateral/infras/memdb"
	"bilateral/infras/otel"
	"bilateral/infras/postgres"
	"bilateral/internal/domains/booking/model"
	slotModel "bilateral/internal/domains/slot/model"
	"bilateral/shared"
	"bilateral/shared/constant"
	gDto "bilateral/shared/dto"
	gRepo "bilateral/shared/repository"
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Booking is the booking store. Reads return one row per slot and booking pair, so a slot
// without a booking comes back once with NULL booking columns and an unknown slot comes
// back as no rows at all.
type Booking interface {
	ListSlotBookings(ctx context.Context) ([]model.SlotBooking, error)
	GetSlotBookings(ctx context.Context, slotID string) ([]model.SlotBooking, error)
	// Insert fails with ErrDuplicateBooking when the slot is taken and ErrUnknownSlot when
	// the slot does not exist.
	Insert(ctx context.Context, booking model.Booking) error
	// Delete fails with ErrBookingNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// New picks the store matching the configured driver.
func New(cfg *config.Config, db *postgres.Connection, mem *memdb.DB, otel otel.Otel) Booking {
	if cfg.DB.Driver == constant.DBDriverMemory {
		return NewMemory(mem, otel)
	}

	return NewPostgres(db, otel)
}

type repositoryImpl struct {
	bookings    gRepo.Repository[model.Booking]
	slotJoined  gRepo.Repository[model.SlotBooking]
	otel        otel.Otel
	slotOrdered gDto.QueryParams
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		bookings:   gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		slotJoined: gRepo.NewRepository[model.SlotBooking](slotModel.EntityName, slotModel.TableName, slotModel.FieldID, db, otel),
		otel:       otel,
		slotOrdered: gDto.QueryParams{
			Sort: []gDto.Sort{
				{Column: slotModel.TableName + "." + slotModel.FieldDate, Dir: gDto.SortDirAsc},
				{Column: slotModel.TableName + "." + slotModel.FieldStartTime, Dir: gDto.SortDirAsc},
				{Column: model.TableName + ".created_at", Dir: gDto.SortDirAsc},
			},
		},
	}
}

func (r *repositoryImpl) ListSlotBookings(ctx context.Context) ([]model.SlotBooking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListSlotBookings")
	defer scope.End()

	rows, err := r.slotJoined.GetAll(ctx, r.slotOrdered, gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to list slots with bookings: %w", err)
	}

	return rows, nil
}

func (r *repositoryImpl) GetSlotBookings(ctx context.Context, slotID string) ([]model.SlotBooking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetSlotBookings")
	defer scope.End()

	scope.SetAttribute(constant.OtelSlotIDAttribute, slotID)

	rows, err := r.slotJoined.GetAll(ctx, r.slotOrdered, shared.FilterByID(slotID, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get slot with bookings: %w", err)
	}

	return rows, nil
}

func (r *repositoryImpl) Insert(ctx context.Context, booking model.Booking) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Insert")
	defer scope.End()

	err := r.bookings.Insert(ctx, booking)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case constant.PqErrorCodeUniqueViolation:
			return fmt.Errorf("%w: %s", model.ErrDuplicateBooking, pqErr.Constraint)
		case constant.PqErrorCodeFkViolation:
			return fmt.Errorf("%w: %s", model.ErrUnknownSlot, pqErr.Constraint)
		}
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Delete")
	defer scope.End()

	removed, err := r.bookings.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return err //nolint:wrapcheck
	}

	scope.SetAttribute("rows.affected", removed)

	if removed == 0 {
		return model.ErrBookingNotFound
	}

	return nil
}

func (r *repositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	return r.bookings.Delete(ctx, gDto.FilterGroup{ //nolint:wrapcheck
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterIsNotNull, Table: model.TableName},
		},
	})
}
