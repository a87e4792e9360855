package models

import "time"

// User is a row in the users table. Username is the only mutable field
// exposed by the API; email edits are out of scope.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LocationCategory string

const (
	LocationCampus      LocationCategory = "campus"
	LocationResidential LocationCategory = "residential"
	LocationTransit     LocationCategory = "transit"
)

// Location is static reference data for pickup/dropoff points.
type Location struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category LocationCategory `json:"category"`
}

type Vehicle struct {
	Year         int    `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	LicensePlate string `json:"licensePlate"`
}

// Driver is static reference data; never mutated at runtime.
type Driver struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Handle     string  `json:"handle"`
	Rating     float64 `json:"rating"` // 0..5
	TotalRides int     `json:"totalRides"`
	Verified   bool    `json:"verified"`
	Vehicle    Vehicle `json:"vehicle"`
}

// RideOffer is a driver's published trip with seat capacity.
// DepartureTime is a display string ("10:00 AM"); Date is an ISO date.
type RideOffer struct {
	ID             int64  `json:"id"`
	DriverID       string `json:"driverId"`
	FromLocationID string `json:"fromLocationId"`
	ToLocationID   string `json:"toLocationId"`
	DepartureTime  string `json:"departureTime"`
	Date           string `json:"date"`
	TotalSeats     int    `json:"totalSeats"`
	AvailableSeats int    `json:"availableSeats"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a rider's claim against a ride offer, keyed by ride id.
// At most one booking exists per ride.
type Booking struct {
	RideID    int64         `json:"rideId"`
	Status    BookingStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}
