package market

import (
	"sync"
	"testing"
	"time"

	"github.com/iipratte/stuber/internal/events"
	"github.com/iipratte/stuber/internal/models"
)

// fakeScheduler collects deferred functions and fires them on demand.
type fakeScheduler struct {
	mu  sync.Mutex
	fns []func()
}

func (f *fakeScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.fns)
	f.fns = append(f.fns, fn)
	return func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.fns[idx] == nil {
			return false
		}
		f.fns[idx] = nil
		return true
	}
}

// Fire runs every pending function once.
func (f *fakeScheduler) Fire() {
	f.mu.Lock()
	pending := make([]func(), 0, len(f.fns))
	for i, fn := range f.fns {
		if fn != nil {
			pending = append(pending, fn)
			f.fns[i] = nil
		}
	}
	f.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

type capturePublisher struct {
	mu  sync.Mutex
	evs []events.Event
}

func (c *capturePublisher) Publish(ev events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evs = append(c.evs, ev)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func (c *capturePublisher) types() []events.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]events.Type, len(c.evs))
	for i, ev := range c.evs {
		out[i] = ev.Type
	}
	return out
}

func newTestStore(t *testing.T, rides []models.RideOffer) (*Store, *fakeScheduler, *capturePublisher) {
	t.Helper()
	sched := &fakeScheduler{}
	pub := &capturePublisher{}
	s := New(Options{Scheduler: sched, Publisher: pub, Rides: rides})
	t.Cleanup(s.Close)
	return s, sched, pub
}

func TestBookingLifecycle(t *testing.T) {
	s, sched, pub := newTestStore(t, nil)

	before, _ := s.RideFor(1)
	b := s.RequestBooking(1)
	if b.Status != models.BookingPending {
		t.Fatalf("expected pending, got %s", b.Status)
	}
	if got, ok := s.BookingFor(1); !ok || got.Status != models.BookingPending {
		t.Fatalf("expected pending booking visible immediately, got %+v ok=%v", got, ok)
	}

	sched.Fire()

	got, ok := s.BookingFor(1)
	if !ok || got.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed booking, got %+v ok=%v", got, ok)
	}
	after, _ := s.RideFor(1)
	if after.AvailableSeats != before.AvailableSeats-1 {
		t.Fatalf("expected seats %d, got %d", before.AvailableSeats-1, after.AvailableSeats)
	}

	types := pub.types()
	if len(types) != 2 || types[0] != events.BookingRequested || types[1] != events.BookingConfirmed {
		t.Fatalf("unexpected event sequence: %v", types)
	}
}

func TestRebookingSoldOutRide(t *testing.T) {
	rides := []models.RideOffer{
		{ID: 5, DriverID: "d-1", FromLocationID: "loc-1", ToLocationID: "loc-2", DepartureTime: "10:00 AM", Date: "2026-02-10", TotalSeats: 4, AvailableSeats: 1},
	}
	s, sched, _ := newTestStore(t, rides)

	s.RequestBooking(5)
	sched.Fire()

	r, _ := s.RideFor(5)
	if r.AvailableSeats != 0 {
		t.Fatalf("expected 0 seats, got %d", r.AvailableSeats)
	}

	// a rider who already holds the booking may re-request; the record
	// resets to pending and confirms again without touching the seat count
	b := s.RequestBooking(5)
	if b.Status != models.BookingPending {
		t.Fatalf("expected pending overwrite, got %s", b.Status)
	}
	sched.Fire()

	got, _ := s.BookingFor(5)
	if got.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", got.Status)
	}
	r, _ = s.RideFor(5)
	if r.AvailableSeats != 0 {
		t.Fatalf("seats must never go negative, got %d", r.AvailableSeats)
	}
}

func TestConfirmBookingImmediate(t *testing.T) {
	s, _, _ := newTestStore(t, nil)

	s.ConfirmBooking(1) // no booking yet: no-op
	if _, ok := s.BookingFor(1); ok {
		t.Fatal("expected no booking record")
	}

	before, _ := s.RideFor(1)
	s.RequestBooking(1)
	s.ConfirmBooking(1)
	got, _ := s.BookingFor(1)
	if got.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", got.Status)
	}
	after, _ := s.RideFor(1)
	if after.AvailableSeats != before.AvailableSeats {
		t.Fatal("direct confirm must not touch seats")
	}
}

func TestCloseCancelsPendingConfirmations(t *testing.T) {
	sched := &fakeScheduler{}
	s := New(Options{Scheduler: sched})

	s.RequestBooking(1)
	s.Close()
	sched.Fire()

	got, _ := s.BookingFor(1)
	if got.Status != models.BookingPending {
		t.Fatalf("expected booking frozen as pending after close, got %s", got.Status)
	}
}

func TestAddRide(t *testing.T) {
	s, _, _ := newTestStore(t, nil)

	created, err := s.AddRide(models.RideOffer{
		DriverID: "d-2", FromLocationID: "loc-3", ToLocationID: "loc-4",
		DepartureTime: "2:00 PM", Date: "2026-02-11", TotalSeats: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.AvailableSeats != 3 || created.TotalSeats != 3 {
		t.Fatalf("expected full availability, got %d/%d", created.AvailableSeats, created.TotalSeats)
	}

	found := false
	for _, r := range s.VisibleRides("", SortByTime) {
		if r.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created ride missing from listing")
	}

	if _, err := s.AddRide(models.RideOffer{TotalSeats: 0}); err != ErrInvalidSeats {
		t.Fatalf("expected ErrInvalidSeats, got %v", err)
	}
}

func TestAddRideIDsUnique(t *testing.T) {
	frozen := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	s := New(Options{
		Scheduler: &fakeScheduler{},
		Now:       func() time.Time { return frozen },
		Rides:     []models.RideOffer{},
	})
	defer s.Close()

	in := models.RideOffer{DriverID: "d-1", FromLocationID: "loc-1", ToLocationID: "loc-2", DepartureTime: "3:00 PM", Date: "2026-02-11", TotalSeats: 2}
	a, _ := s.AddRide(in)
	b, _ := s.AddRide(in)
	c, _ := s.AddRide(in)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Fatalf("expected distinct ids under a frozen clock, got %d %d %d", a.ID, b.ID, c.ID)
	}
}

func TestVisibleRidesHidesSoldOutUnlessBooked(t *testing.T) {
	rides := []models.RideOffer{
		{ID: 1, DriverID: "d-1", FromLocationID: "loc-1", ToLocationID: "loc-2", DepartureTime: "10:00 AM", TotalSeats: 4, AvailableSeats: 0},
		{ID: 2, DriverID: "d-2", FromLocationID: "loc-3", ToLocationID: "loc-4", DepartureTime: "10:15 AM", TotalSeats: 4, AvailableSeats: 2},
	}
	s, _, _ := newTestStore(t, rides)

	for _, r := range s.VisibleRides("", SortByTime) {
		if r.ID == 1 {
			t.Fatal("sold-out ride without booking should be hidden")
		}
	}

	s.RequestBooking(1)
	found := false
	for _, r := range s.VisibleRides("", SortByTime) {
		if r.ID == 1 {
			found = true
		}
	}
	if !found {
		t.Fatal("sold-out ride with booking should stay visible")
	}
}

func TestVisibleRidesQueryFilter(t *testing.T) {
	s, _, _ := newTestStore(t, nil)

	// "village" only matches ride 1 (from The Village)
	got := s.VisibleRides("village", SortByTime)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only ride 1, got %+v", got)
	}

	// driver name matching, case-insensitive
	got = s.VisibleRides("SARAH", SortByTime)
	if len(got) != 1 || got[0].DriverID != "d-2" {
		t.Fatalf("expected Sarah Kim's ride, got %+v", got)
	}

	if got = s.VisibleRides("no such place", SortByTime); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestVisibleRidesUnknownRefsUsePlaceholder(t *testing.T) {
	rides := []models.RideOffer{
		{ID: 1, DriverID: "ghost", FromLocationID: "nowhere", ToLocationID: "loc-2", DepartureTime: "10:00 AM", TotalSeats: 4, AvailableSeats: 2},
	}
	s, _, _ := newTestStore(t, rides)

	got := s.VisibleRides("unknown", SortByTime)
	if len(got) != 1 {
		t.Fatalf("expected dangling refs to resolve to the placeholder, got %+v", got)
	}
}

func TestSortBySeatsDescendingStable(t *testing.T) {
	rides := []models.RideOffer{
		{ID: 1, DriverID: "d-1", FromLocationID: "loc-1", ToLocationID: "loc-2", DepartureTime: "10:00 AM", TotalSeats: 4, AvailableSeats: 2},
		{ID: 2, DriverID: "d-2", FromLocationID: "loc-3", ToLocationID: "loc-4", DepartureTime: "10:15 AM", TotalSeats: 4, AvailableSeats: 4},
		{ID: 3, DriverID: "d-3", FromLocationID: "loc-5", ToLocationID: "loc-6", DepartureTime: "10:30 AM", TotalSeats: 4, AvailableSeats: 2},
	}
	s, _, _ := newTestStore(t, rides)

	got := s.VisibleRides("", SortBySeats)
	for i := 0; i+1 < len(got); i++ {
		if got[i].AvailableSeats < got[i+1].AvailableSeats {
			t.Fatalf("not descending at %d: %+v", i, got)
		}
	}
	// equal keys keep input order: 1 before 3
	if got[1].ID != 1 || got[2].ID != 3 {
		t.Fatalf("expected stable order for equal seats, got %+v", got)
	}
}

func TestSortByRatingMissingDriverLast(t *testing.T) {
	rides := []models.RideOffer{
		{ID: 1, DriverID: "ghost", FromLocationID: "loc-1", ToLocationID: "loc-2", DepartureTime: "10:00 AM", TotalSeats: 4, AvailableSeats: 2},
		{ID: 2, DriverID: "d-3", FromLocationID: "loc-3", ToLocationID: "loc-4", DepartureTime: "10:15 AM", TotalSeats: 4, AvailableSeats: 2},
		{ID: 3, DriverID: "d-7", FromLocationID: "loc-5", ToLocationID: "loc-6", DepartureTime: "10:30 AM", TotalSeats: 4, AvailableSeats: 2},
	}
	s, _, _ := newTestStore(t, rides)

	got := s.VisibleRides("", SortByRating)
	if got[0].DriverID != "d-3" || got[1].DriverID != "d-7" || got[2].DriverID != "ghost" {
		t.Fatalf("expected rating order d-3, d-7, ghost; got %+v", got)
	}
}

func TestSortByTimeIsLexicographic(t *testing.T) {
	rides := []models.RideOffer{
		{ID: 1, DriverID: "d-1", FromLocationID: "loc-1", ToLocationID: "loc-2", DepartureTime: "9:00 AM", TotalSeats: 4, AvailableSeats: 2},
		{ID: 2, DriverID: "d-2", FromLocationID: "loc-3", ToLocationID: "loc-4", DepartureTime: "10:00 AM", TotalSeats: 4, AvailableSeats: 2},
	}
	s, _, _ := newTestStore(t, rides)

	// display strings compare as strings: "10:00 AM" sorts before "9:00 AM"
	got := s.VisibleRides("", SortByTime)
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("expected lexicographic ordering, got %+v", got)
	}
}

func TestLiveRideCount(t *testing.T) {
	rides := []models.RideOffer{
		{ID: 1, AvailableSeats: 0, TotalSeats: 4},
		{ID: 2, AvailableSeats: 1, TotalSeats: 4},
		{ID: 3, AvailableSeats: 3, TotalSeats: 4},
	}
	s, _, _ := newTestStore(t, rides)
	if n := s.LiveRideCount(); n != 2 {
		t.Fatalf("expected 2 live rides, got %d", n)
	}
}
