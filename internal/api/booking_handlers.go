package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/models"
)

type createBookingRequest struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID <= 0 || req.Start.IsZero() || req.End.IsZero() {
		writeError(w, http.StatusBadRequest, "item_id, start and end are required")
		return
	}

	view, err := s.deps.Bookings.CreateBooking(r.Context(), actor, req.ItemID, req.Start, req.End)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *HTTPServer) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}

	view, err := s.deps.Bookings.SetApproval(r.Context(), actor, bookingID, approved)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.deps.Bookings.GetBooking(r.Context(), actor, bookingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListBookingsForBooker(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, false)
}

func (s *HTTPServer) handleListBookingsForOwner(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, true)
}

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request, ownerScope bool) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, limit, err := s.pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := r.URL.Query().Get("state")

	var views []*models.BookingView
	if ownerScope {
		views, err = s.deps.Bookings.ListForOwner(r.Context(), actor, state, offset, limit)
	} else {
		views, err = s.deps.Bookings.ListForBooker(r.Context(), actor, state, offset, limit)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if views == nil {
		views = []*models.BookingView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start := now.AddDate(0, -models.DefaultExportRangeMonthsBefore, 0)
	end := now.AddDate(0, models.DefaultExportRangeMonthsAfter, 0)

	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date; expected YYYY-MM-DD")
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date; expected YYYY-MM-DD")
			return
		}
		end = parsed
	}

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := s.deps.Exporter.Write(r.Context(), w, start, end); err != nil {
		s.log.Error().Err(err).Msg("export failed")
	}
}
