package service_test

import (
	"bilateral/infras/memdb"
	otelMocks "bilateral/infras/otel/mocks"
	"bilateral/internal/domains/booking/model"
	"bilateral/internal/domains/booking/model/dto"
	"bilateral/internal/domains/booking/notifier"
	bookingRepo "bilateral/internal/domains/booking/repository"
	"bilateral/internal/domains/booking/service"
	slotModel "bilateral/internal/domains/slot/model"
	slotRepo "bilateral/internal/domains/slot/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryFixture struct {
	svc      service.Booking
	notifier *notifier.Dispatcher
	slots    []slotModel.Slot
}

// newMemoryFixture runs the service against the in-memory store with slots inserted out
// of order.
func newMemoryFixture(t *testing.T) memoryFixture {
	t.Helper()

	otl := otelMocks.NewOtel()
	mem := memdb.New()

	slots := []slotModel.Slot{
		slotOn(uuid.NewString(), "2025-01-28", "09:00"),
		slotOn(uuid.NewString(), "2025-01-26", "15:30"),
		slotOn(uuid.NewString(), "2025-01-27", "14:00"),
		slotOn(uuid.NewString(), "2025-01-26", "14:00"),
	}

	require.NoError(t, slotRepo.NewMemory(mem, otl).InsertBulk(context.Background(), slots))

	dispatcher := notifier.NewDispatcher(otl, notifier.NewLogChannel())

	return memoryFixture{
		svc:      service.New(bookingRepo.NewMemory(mem, otl), dispatcher, otl),
		notifier: dispatcher,
		slots:    slots,
	}
}

func (f memoryFixture) view(t *testing.T, id string) dto.SlotViewResponse {
	t.Helper()

	views, err := f.svc.List(context.Background())
	require.NoError(t, err)

	for _, view := range views {
		if view.ID == id {
			return view
		}
	}

	t.Fatalf("slot %s not listed", id)

	return dto.SlotViewResponse{}
}

func TestMemoryStore_ConcurrentCreateAllowsOneWinner(t *testing.T) {
	f := newMemoryFixture(t)
	target := f.slots[0].ID

	const attempts = 32

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		wins        int
		unavailable int
	)

	for i := range attempts {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
				SlotID:  target,
				Name:    fmt.Sprintf("Delegate %d", i),
				Email:   fmt.Sprintf("delegate%d@x.com", i),
				Country: "Chile",
			})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				wins++
			case errors.Is(err, model.ErrSlotUnavailable):
				unavailable++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()
	f.notifier.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, unavailable)
	assert.False(t, f.view(t, target).IsAvailable)
}

func TestMemoryStore_CreateThenCancelRoundTrip(t *testing.T) {
	f := newMemoryFixture(t)
	target := f.slots[1].ID
	before := f.view(t, target)

	created, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		SlotID: target, Name: "Ana", Email: "ana@x.com", Country: "Chile",
	})
	require.NoError(t, err)

	assert.False(t, created.IsAvailable)
	assert.Equal(t, "Ana", *created.Name)
	assert.Equal(t, "ana@x.com", *created.Email)
	assert.Equal(t, "Chile", *created.Country)
	assert.Equal(t, created, f.view(t, target))

	cancelled, err := f.svc.Cancel(context.Background(), dto.CancelBookingRequest{
		SlotID: target, Name: "Ana", Email: "ana@x.com",
	})
	require.NoError(t, err)

	f.notifier.Wait()

	assert.Equal(t, before, cancelled)
	assert.Equal(t, before, f.view(t, target))
}

func TestMemoryStore_PaddedIdentityRoundTrip(t *testing.T) {
	f := newMemoryFixture(t)
	target := f.slots[3].ID
	before := f.view(t, target)

	created, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		SlotID: target, Name: "Ana ", Email: " ana@x.com", Country: "Chile",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", *created.Name)
	assert.Equal(t, "ana@x.com", *created.Email)

	cancelled, err := f.svc.Cancel(context.Background(), dto.CancelBookingRequest{
		SlotID: target, Name: "Ana ", Email: " ana@x.com",
	})
	require.NoError(t, err)

	f.notifier.Wait()

	assert.Equal(t, before, cancelled)
}

func TestMemoryStore_CancelIsCaseSensitive(t *testing.T) {
	f := newMemoryFixture(t)
	target := f.slots[0].ID

	_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		SlotID: target, Name: "Ana", Email: "ana@x.com", Country: "Chile",
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), dto.CancelBookingRequest{
		SlotID: target, Name: "ana", Email: "ana@x.com",
	})
	assert.ErrorIs(t, err, model.ErrNotBookingOwner)

	f.notifier.Wait()

	assert.False(t, f.view(t, target).IsAvailable)
}

func TestMemoryStore_CancelWithWrongEmailKeepsBooking(t *testing.T) {
	f := newMemoryFixture(t)
	target := f.slots[2].ID

	_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		SlotID: target, Name: "Ana", Email: "ana@x.com", Country: "Chile",
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), dto.CancelBookingRequest{
		SlotID: target, Name: "Ana", Email: "someone@x.com",
	})
	assert.ErrorIs(t, err, model.ErrNotBookingOwner)

	f.notifier.Wait()

	view := f.view(t, target)
	assert.False(t, view.IsAvailable)
	assert.Equal(t, "ana@x.com", *view.Email)
}

func TestMemoryStore_RejectedCreateLeavesStoreUnchanged(t *testing.T) {
	f := newMemoryFixture(t)

	before, err := f.svc.List(context.Background())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), dto.CreateBookingRequest{
		SlotID: f.slots[0].ID, Name: "", Email: "ana@x.com", Country: "Chile",
	})
	assert.ErrorIs(t, err, model.ErrMissingFields)

	after, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMemoryStore_ListOrdersByDateThenStart(t *testing.T) {
	f := newMemoryFixture(t)

	views, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 4)

	got := make([]string, 0, len(views))
	for _, view := range views {
		got = append(got, view.Date+" "+view.StartTime)
	}

	assert.Equal(t, []string{
		"2025-01-26 14:00",
		"2025-01-26 15:30",
		"2025-01-27 14:00",
		"2025-01-28 09:00",
	}, got)
}

func TestMemoryStore_CancelWithoutBooking(t *testing.T) {
	f := newMemoryFixture(t)

	_, err := f.svc.Cancel(context.Background(), dto.CancelBookingRequest{
		SlotID: f.slots[3].ID, Name: "Ana", Email: "ana@x.com",
	})
	assert.ErrorIs(t, err, model.ErrNoBookingForSlot)

	_, err = f.svc.Cancel(context.Background(), dto.CancelBookingRequest{
		SlotID: uuid.NewString(), Name: "Ana", Email: "ana@x.com",
	})
	assert.ErrorIs(t, err, model.ErrSlotNotFound)
}
