package market

import (
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iipratte/stuber/internal/events"
	"github.com/iipratte/stuber/internal/models"
	"github.com/iipratte/stuber/internal/observability"
)

// SortMode selects the ordering of VisibleRides.
type SortMode string

const (
	SortByTime   SortMode = "time"
	SortBySeats  SortMode = "seats"
	SortByRating SortMode = "rating"
)

// ErrInvalidSeats rejects ride offers posted with fewer than one seat.
var ErrInvalidSeats = errors.New("market: total seats must be at least 1")

// unknownName stands in for dangling driver/location references.
const unknownName = "Unknown"

// Store holds the ride marketplace: offers, bookings, and the static
// driver/location reference data. All mutation goes through the single
// mutex, so readers always observe a consistent snapshot.
//
// Bookings confirm on a delay. Each request schedules its own deferred
// transition; the transition is idempotent against missing rides or
// exhausted seats and simply skips the parts that no longer apply.
type Store struct {
	mu        sync.Mutex
	rides     []models.RideOffer
	bookings  map[int64]models.Booking
	drivers   map[string]models.Driver
	locations map[string]models.Location

	confirmDelay time.Duration
	sched        Scheduler
	pub          events.Publisher
	logger       *slog.Logger
	now          func() time.Time

	timerSeq int64
	timers   map[int64]func() bool
	closed   bool
}

// Options configures a Store. Zero values fall back to production defaults:
// 2s confirmation delay, time.AfterFunc scheduling, no event publishing,
// and the campus seed dataset.
type Options struct {
	ConfirmDelay time.Duration
	Scheduler    Scheduler
	Publisher    events.Publisher
	Logger       *slog.Logger
	Now          func() time.Time

	Locations []models.Location
	Drivers   []models.Driver
	Rides     []models.RideOffer
}

func New(opts Options) *Store {
	if opts.ConfirmDelay <= 0 {
		opts.ConfirmDelay = 2 * time.Second
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Locations == nil {
		opts.Locations = DefaultLocations()
	}
	if opts.Drivers == nil {
		opts.Drivers = DefaultDrivers()
	}
	if opts.Rides == nil {
		opts.Rides = DefaultRides()
	}

	s := &Store{
		rides:        append([]models.RideOffer(nil), opts.Rides...),
		bookings:     make(map[int64]models.Booking),
		drivers:      make(map[string]models.Driver, len(opts.Drivers)),
		locations:    make(map[string]models.Location, len(opts.Locations)),
		confirmDelay: opts.ConfirmDelay,
		sched:        opts.Scheduler,
		pub:          opts.Publisher,
		logger:       opts.Logger,
		now:          opts.Now,
		timers:       make(map[int64]func() bool),
	}
	for _, d := range opts.Drivers {
		s.drivers[d.ID] = d
	}
	for _, l := range opts.Locations {
		s.locations[l.ID] = l
	}
	return s
}

// Close cancels every outstanding confirmation timer. Bookings already
// confirmed stay confirmed; pending ones are frozen as pending.
func (s *Store) Close() {
	s.mu.Lock()
	cancels := make([]func() bool, 0, len(s.timers))
	for _, c := range s.timers {
		cancels = append(cancels, c)
	}
	s.timers = make(map[int64]func() bool)
	s.closed = true
	s.mu.Unlock()

	for _, c := range cancels {
		c()
	}
}

// RequestBooking records (or overwrites) the booking for rideID as pending
// and schedules its confirmation. The pending record is visible immediately.
// Re-requesting a ride that already has a booking is allowed even with zero
// seats left; each request schedules its own confirmation.
func (s *Store) RequestBooking(rideID int64) models.Booking {
	s.mu.Lock()
	b := models.Booking{RideID: rideID, Status: models.BookingPending, Timestamp: s.now()}
	s.bookings[rideID] = b

	if !s.closed {
		s.timerSeq++
		seq := s.timerSeq
		s.timers[seq] = s.sched.AfterFunc(s.confirmDelay, func() { s.confirm(rideID, seq) })
	}
	s.mu.Unlock()

	observability.BookingsRequestedTotal.Inc()
	s.publish(events.BookingRequested, rideID)
	return b
}

// confirm is the deferred transition: mark the booking confirmed if one
// still exists, and separately take one seat if any are left. A missing
// ride or an exhausted seat count does not block confirmation.
func (s *Store) confirm(rideID int64, seq int64) {
	s.mu.Lock()
	delete(s.timers, seq)

	confirmed := false
	if b, ok := s.bookings[rideID]; ok {
		b.Status = models.BookingConfirmed
		s.bookings[rideID] = b
		confirmed = true
	}
	for i := range s.rides {
		if s.rides[i].ID == rideID && s.rides[i].AvailableSeats > 0 {
			s.rides[i].AvailableSeats--
			break
		}
	}
	s.mu.Unlock()

	if confirmed {
		observability.BookingsConfirmedTotal.Inc()
		s.publish(events.BookingConfirmed, rideID)
	}
}

// ConfirmBooking flips an existing booking to confirmed right away, without
// seat accounting. No-op when no booking exists for rideID.
func (s *Store) ConfirmBooking(rideID int64) {
	s.mu.Lock()
	b, ok := s.bookings[rideID]
	if ok {
		b.Status = models.BookingConfirmed
		s.bookings[rideID] = b
	}
	s.mu.Unlock()

	if ok {
		observability.BookingsConfirmedTotal.Inc()
		s.publish(events.BookingConfirmed, rideID)
	}
}

// AddRide appends a new offer with every seat open. The id is derived from
// the wall clock and bumped past any collision, so ids stay unique for the
// process lifetime.
func (s *Store) AddRide(ride models.RideOffer) (models.RideOffer, error) {
	if ride.TotalSeats < 1 {
		return models.RideOffer{}, ErrInvalidSeats
	}
	ride.AvailableSeats = ride.TotalSeats

	s.mu.Lock()
	ride.ID = s.nextRideID()
	s.rides = append(s.rides, ride)
	s.mu.Unlock()

	observability.RidesPostedTotal.Inc()
	s.publish(events.RidePosted, ride.ID)
	return ride, nil
}

// nextRideID must be called with the lock held.
func (s *Store) nextRideID() int64 {
	id := s.now().UnixMilli()
	for s.rideIndex(id) >= 0 {
		id++
	}
	return id
}

// rideIndex must be called with the lock held.
func (s *Store) rideIndex(id int64) int {
	for i := range s.rides {
		if s.rides[i].ID == id {
			return i
		}
	}
	return -1
}

// VisibleRides derives the browse listing: rides with seats left, plus
// rides the caller already holds a booking for (so a just-booked ride does
// not vanish from the screen), text-filtered and sorted.
//
// The time sort compares the display strings lexicographically, matching
// the listing's historical ordering.
func (s *Store) VisibleRides(query string, mode SortMode) []models.RideOffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.RideOffer, 0, len(s.rides))
	q := strings.ToLower(query)
	for _, r := range s.rides {
		if r.AvailableSeats <= 0 {
			if _, booked := s.bookings[r.ID]; !booked {
				continue
			}
		}
		if q != "" && !s.matches(r, q) {
			continue
		}
		out = append(out, r)
	}

	switch mode {
	case SortBySeats:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AvailableSeats > out[j].AvailableSeats })
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool { return s.driverRating(out[i].DriverID) > s.driverRating(out[j].DriverID) })
	default: // SortByTime
		sort.SliceStable(out, func(i, j int) bool { return out[i].DepartureTime < out[j].DepartureTime })
	}
	return out
}

// matches must be called with the lock held.
func (s *Store) matches(r models.RideOffer, q string) bool {
	return strings.Contains(strings.ToLower(s.locationName(r.FromLocationID)), q) ||
		strings.Contains(strings.ToLower(s.locationName(r.ToLocationID)), q) ||
		strings.Contains(strings.ToLower(s.driverName(r.DriverID)), q)
}

func (s *Store) locationName(id string) string {
	if l, ok := s.locations[id]; ok {
		return l.Name
	}
	return unknownName
}

func (s *Store) driverName(id string) string {
	if d, ok := s.drivers[id]; ok {
		return d.Name
	}
	return unknownName
}

func (s *Store) driverRating(id string) float64 {
	if d, ok := s.drivers[id]; ok {
		return d.Rating
	}
	return 0
}

// Driver looks up static driver reference data.
func (s *Store) Driver(id string) (models.Driver, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	return d, ok
}

// Location looks up static location reference data.
func (s *Store) Location(id string) (models.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locations[id]
	return l, ok
}

// BookingFor returns the booking for rideID, if any.
func (s *Store) BookingFor(rideID int64) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[rideID]
	return b, ok
}

// RideFor returns the offer with the given id, if any.
func (s *Store) RideFor(rideID int64) (models.RideOffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.rideIndex(rideID); i >= 0 {
		return s.rides[i], true
	}
	return models.RideOffer{}, false
}

// LiveRideCount counts offers that still have open seats.
func (s *Store) LiveRideCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rides {
		if r.AvailableSeats > 0 {
			n++
		}
	}
	return n
}

func (s *Store) publish(t events.Type, rideID int64) {
	ev := events.Event{Type: t, RideID: rideID, At: s.now()}
	if err := s.pub.Publish(ev); err != nil {
		s.logger.Warn("event publish failed", "type", string(t), "ride_id", rideID, "error", err)
	}
}
