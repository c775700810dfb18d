package request

import (
	"github.com/google/uuid"
)

type ReserveSeatsRequest struct {
	ScheduleID uuid.UUID          `json:"schedule_id" binding:"required"`
	Seats      []string           `json:"seats" binding:"required"`
	Passengers []PassengerRequest `json:"passengers,omitempty"`
}

type PassengerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Age      int    `json:"age"`
	Gender   string `json:"gender,omitempty"`
	Contact  string `json:"contact,omitempty"`
}
