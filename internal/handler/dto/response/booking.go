package response

import (
	"time"

	"tripd/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID           `json:"id"`
	ScheduleID  uuid.UUID           `json:"scheduleId"`
	RouteFrom   string              `json:"routeFrom"`
	RouteTo     string              `json:"routeTo"`
	DepartureAt time.Time           `json:"departureAt"`
	Seats       []string            `json:"seats"`
	Passengers  []PassengerResponse `json:"passengers,omitempty"`
	TotalCents  int64               `json:"totalCents"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type PassengerResponse struct {
	SeatCode string `json:"seatCode"`
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Gender   string `json:"gender,omitempty"`
	Contact  string `json:"contact,omitempty"`
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	ScheduleID  uuid.UUID `json:"scheduleId"`
	RouteFrom   string    `json:"routeFrom"`
	RouteTo     string    `json:"routeTo"`
	DepartureAt time.Time `json:"departureAt"`
	SeatCount   int       `json:"seatCount"`
	TotalCents  int64     `json:"totalCents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ReserveSeatsResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	passengers := make([]PassengerResponse, 0, len(rm.Passengers))
	for _, p := range rm.Passengers {
		passengers = append(passengers, PassengerResponse{
			SeatCode: p.SeatCode,
			FullName: p.FullName,
			Age:      p.Age,
			Gender:   p.Gender,
			Contact:  p.Contact,
		})
	}
	return &BookingResponse{
		ID:          rm.ID,
		ScheduleID:  rm.ScheduleID,
		RouteFrom:   rm.RouteFrom,
		RouteTo:     rm.RouteTo,
		DepartureAt: rm.DepartureAt,
		Seats:       rm.Seats,
		Passengers:  passengers,
		TotalCents:  rm.TotalCents,
		Status:      rm.Status,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:          rm.ID,
		ScheduleID:  rm.ScheduleID,
		RouteFrom:   rm.RouteFrom,
		RouteTo:     rm.RouteTo,
		DepartureAt: rm.DepartureAt,
		SeatCount:   rm.SeatCount,
		TotalCents:  rm.TotalCents,
		Status:      rm.Status,
		CreatedAt:   rm.CreatedAt,
	}
}
