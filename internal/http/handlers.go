package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iipratte/stuber/internal/directory"
	"github.com/iipratte/stuber/internal/market"
	"github.com/iipratte/stuber/internal/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.directory.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.directory.GetUser(r.Context(), pathID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	user, err := s.directory.UpdateUsername(r.Context(), pathID(r), body.Username)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListRides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	mode := market.SortMode(r.URL.Query().Get("sort"))
	switch mode {
	case market.SortBySeats, market.SortByRating:
	default:
		mode = market.SortByTime
	}
	s.writeJSON(w, http.StatusOK, s.market.VisibleRides(q, mode))
}

func (s *Server) handleCreateRide(w http.ResponseWriter, r *http.Request) {
	var ride models.RideOffer
	if err := json.NewDecoder(r.Body).Decode(&ride); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	created, err := s.market.AddRide(ride)
	if err != nil {
		if errors.Is(err, market.ErrInvalidSeats) {
			s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "Total seats must be at least 1"})
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRequestBooking(w http.ResponseWriter, r *http.Request) {
	rideID := pathID(r)
	ride, ok := s.market.RideFor(rideID)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: "Ride not found"})
		return
	}
	// A sold-out ride stays bookable only for a rider who already holds a
	// booking on it; re-requests there just reset the pending state.
	if ride.AvailableSeats == 0 {
		if _, booked := s.market.BookingFor(rideID); !booked {
			s.writeJSON(w, http.StatusConflict, errorBody{Error: "No seats available"})
			return
		}
	}
	booking := s.market.RequestBooking(rideID)
	s.writeJSON(w, http.StatusAccepted, booking)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch directory.KindOf(err) {
	case directory.KindNotFound:
		status = http.StatusNotFound
	case directory.KindInvalidArgument:
		status = http.StatusBadRequest
	case directory.KindConflict:
		status = http.StatusConflict
	}
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}

// pathID pulls the numeric id path variable. Routes constrain it to digits,
// so parsing only fails on overflow.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}
