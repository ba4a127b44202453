package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/train-booking/internal/fare"
	"github.com/iliyamo/train-booking/internal/model"
	"github.com/iliyamo/train-booking/internal/queue"
	"github.com/iliyamo/train-booking/internal/repository"
	"github.com/iliyamo/train-booking/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.TicketBookedEvent
	err    error
}

func (p *recordingPublisher) PublishTicketBooked(_ context.Context, ev queue.TicketBookedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func newTrainService(db *sql.DB) *TrainService {
	return NewTrainService(
		repository.NewStationRepo(db),
		repository.NewTrainRepo(db),
		repository.NewScheduleRepo(db),
		repository.NewSeatRepo(db, repository.StrategyAtomic, 0),
	)
}

func TestStationsLookup(t *testing.T) {
	svc := newTrainService(testutil.Seeded(t))
	ctx := context.Background()

	got, err := svc.StationsLookup(ctx, "CHEN")
	require.NoError(t, err)
	codes := []string{}
	for _, s := range got {
		codes = append(codes, s.StationCode)
	}
	assert.ElementsMatch(t, []string{"MAS", "MS"}, codes)

	empty, err := svc.StationsLookup(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSearch(t *testing.T) {
	svc := newTrainService(testutil.Seeded(t))
	ctx := context.Background()

	res, err := svc.Search(ctx, "Delhi", "Mumbai")
	require.NoError(t, err)
	require.Len(t, res.Trains, 2)
	assert.Equal(t, "12951", res.Trains[0].TrainNumber)
	assert.Equal(t, "99999", res.Trains[1].TrainNumber)
	assert.Len(t, res.Schedule, 4)
	for _, st := range res.Schedule {
		assert.Equal(t, "12951", st.TrainNumber)
	}

	res, err = svc.Search(ctx, "Delhi", "Pune")
	require.NoError(t, err)
	require.Len(t, res.Trains, 1)
	assert.Equal(t, "11078", res.Trains[0].TrainNumber)

	res, err = svc.Search(ctx, "Delhi", "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, res.Trains)
	assert.Empty(t, res.Schedule)

	_, err = svc.Search(ctx, "Delhi", " ")
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestSearchTrimsStationNames(t *testing.T) {
	svc := newTrainService(testutil.Seeded(t))

	res, err := svc.Search(context.Background(), " Delhi ", "Pune\t")
	require.NoError(t, err)
	require.Len(t, res.Trains, 1)
	assert.Equal(t, "11078", res.Trains[0].TrainNumber)

	// inner text still compares exactly
	res, err = svc.Search(context.Background(), "delhi", "Pune")
	require.NoError(t, err)
	assert.Empty(t, res.Trains)
}

func TestDirectoryStorageFailure(t *testing.T) {
	db := testutil.Seeded(t)
	svc := newTrainService(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := svc.StationsLookup(ctx, "chen")
	assert.True(t, errors.Is(err, model.ErrStorage), err)
	_, err = svc.Search(ctx, "Delhi", "Pune")
	assert.True(t, errors.Is(err, model.ErrStorage), err)
	_, err = svc.Details(ctx, "12951")
	assert.True(t, errors.Is(err, model.ErrStorage), err)
	err = svc.DecrementSeat(ctx, "12951", "1A")
	assert.True(t, errors.Is(err, model.ErrStorage), err)
}

func TestDetails(t *testing.T) {
	svc := newTrainService(testutil.Seeded(t))
	ctx := context.Background()

	d, err := svc.Details(ctx, "12951")
	require.NoError(t, err)
	assert.Equal(t, "12951", d.Train.TrainNumber)
	require.Len(t, d.Schedule, 4)
	for i, st := range d.Schedule {
		assert.Equal(t, i+1, st.StopNumber)
	}
	assert.Equal(t, fare.Availability{FirstAC: 4, SecondAC: 13, ThirdAC: 25, Sleeper: 15}, d.SeatAvailability)
	require.Len(t, d.Fares, 4)
	assert.Equal(t, 4056, d.Fares[0].Price)

	d, err = svc.Details(ctx, "99999")
	require.NoError(t, err)
	assert.Empty(t, d.Schedule)
	assert.Equal(t, fare.Availability{}, d.SeatAvailability)

	_, err = svc.Details(ctx, "00000")
	assert.True(t, errors.Is(err, model.ErrNotFound))
	_, err = svc.Details(ctx, "")
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestFares(t *testing.T) {
	svc := newTrainService(testutil.Seeded(t))
	ctx := context.Background()

	q, err := svc.Fares(ctx, "12951")
	require.NoError(t, err)
	prices := map[fare.Class]int{}
	for _, x := range q {
		prices[x.Class] = x.Price
	}
	assert.Equal(t, map[fare.Class]int{"1A": 4056, "2A": 2263, "3A": 1270, "SL": 471}, prices)

	_, err = svc.Fares(ctx, "00000")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestDecrementSeat(t *testing.T) {
	db := testutil.Seeded(t)
	svc := newTrainService(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, svc.DecrementSeat(ctx, "12951", "1A"))
	}
	n, err := svc.Seats.Remaining(ctx, "12951", fare.Class1A)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.True(t, errors.Is(svc.DecrementSeat(ctx, "12951", "2S"), model.ErrValidation))
	assert.True(t, errors.Is(svc.DecrementSeat(ctx, "", "SL"), model.ErrValidation))
	assert.True(t, errors.Is(svc.DecrementSeat(ctx, "00000", "SL"), model.ErrNotFound))
}

func newBookingService(t *testing.T, pub EventPublisher) (*BookingService, string) {
	t.Helper()
	db := testutil.Seeded(t)
	u, err := repository.NewUserRepo(db).Create(context.Background(), repository.NewUser{
		Email: "rider@example.com", Password: "pw", Role: model.RoleCustomer,
	}, bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewBookingService(
		repository.NewTrainRepo(db),
		repository.NewSeatRepo(db, repository.StrategyAtomic, 0),
		repository.NewTicketRepo(db),
		pub,
	)
	return svc, u.ID
}

func validRequest() TicketRequest {
	return TicketRequest{TrainNumber: "12951", Class: "SL", Name: "Asha Rao", Age: 31, AadharNumber: "1234 5678 9012"}
}

func TestCreateTicket(t *testing.T) {
	pub := &recordingPublisher{}
	svc, uid := newBookingService(t, pub)
	ctx := context.Background()

	tk, err := svc.CreateTicket(ctx, uid, validRequest())
	require.NoError(t, err)
	assert.NotZero(t, tk.ID)
	assert.Equal(t, 471, tk.Price)
	assert.Equal(t, "123456789012", tk.AadharNumber)
	assert.False(t, tk.BookedAt.IsZero())

	left, err := svc.Seats.Remaining(ctx, "12951", fare.ClassSL)
	require.NoError(t, err)
	assert.Equal(t, 9, left)

	require.Len(t, pub.events, 1)
	assert.Equal(t, tk.ID, pub.events[0].TicketID)
	assert.Equal(t, "Mumbai Rajdhani", pub.events[0].TrainName)

	list, err := svc.ListTickets(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tk.ID, list[0].ID)
}

func TestCreateTicketPublishFailureKeepsBooking(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc, uid := newBookingService(t, pub)

	tk, err := svc.CreateTicket(context.Background(), uid, validRequest())
	require.NoError(t, err)
	assert.NotZero(t, tk.ID)
}

func TestCreateTicketSoldOutRollsBack(t *testing.T) {
	svc, uid := newBookingService(t, nil)
	ctx := context.Background()

	req := validRequest()
	req.TrainNumber = "12622"
	_, err := svc.CreateTicket(ctx, uid, req)
	assert.True(t, errors.Is(err, model.ErrSoldOut))

	list, err := svc.ListTickets(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateTicketLastSeats(t *testing.T) {
	svc, uid := newBookingService(t, nil)
	ctx := context.Background()

	req := validRequest()
	req.TrainNumber = "11078"
	_, err := svc.CreateTicket(ctx, uid, req)
	require.NoError(t, err)
	_, err = svc.CreateTicket(ctx, uid, req)
	assert.True(t, errors.Is(err, model.ErrSoldOut))

	list, err := svc.ListTickets(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateTicketValidation(t *testing.T) {
	svc, uid := newBookingService(t, nil)
	ctx := context.Background()

	cases := map[string]func(r *TicketRequest){
		"no train":    func(r *TicketRequest) { r.TrainNumber = "" },
		"bad class":   func(r *TicketRequest) { r.Class = "CC" },
		"no name":     func(r *TicketRequest) { r.Name = "  " },
		"age zero":    func(r *TicketRequest) { r.Age = 0 },
		"age too old": func(r *TicketRequest) { r.Age = 126 },
		"short id":    func(r *TicketRequest) { r.AadharNumber = "12345" },
		"letters":     func(r *TicketRequest) { r.AadharNumber = "12345678901A" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := svc.CreateTicket(ctx, uid, req)
			assert.True(t, errors.Is(err, model.ErrValidation), err)
		})
	}

	_, err := svc.CreateTicket(ctx, "", validRequest())
	assert.True(t, errors.Is(err, model.ErrValidation))

	req := validRequest()
	req.TrainNumber = "00000"
	_, err = svc.CreateTicket(ctx, uid, req)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
