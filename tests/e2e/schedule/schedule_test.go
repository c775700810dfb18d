//go:build e2e

package schedule_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"tripd/internal/handler/dto/response"
	"tripd/tests/common/authtest"
	"tripd/tests/common/builder"
	"tripd/tests/common/dbtest"
	"tripd/tests/common/httptest"
	"tripd/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	schedulesURL    = "/api/schedules"
	availabilityURL = "/api/schedules/%s/availability"
)

type ScheduleSuite struct {
	e2e.SharedSuite
}

func (s *ScheduleSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestScheduleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ScheduleSuite))
}

func (s *ScheduleSuite) TestSearchSchedules() {
	s.Run("Normal case: search filters by route legs and day", func() {
		t := s.T()

		departure := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
		match := builder.NewScheduleBuilder().WithDepartureAt(departure)
		dbtest.CreateTestSchedule(t, s.DB, match)

		otherRoute := builder.NewScheduleBuilder().WithDepartureAt(departure)
		otherRoute.RouteTo = "Nashik"
		dbtest.CreateTestSchedule(t, s.DB, otherRoute)

		otherDay := builder.NewScheduleBuilder().WithDepartureAt(departure.Add(72 * time.Hour))
		dbtest.CreateTestSchedule(t, s.DB, otherDay)

		url := fmt.Sprintf("%s?from=Mumbai&to=Pune&date=%s",
			schedulesURL, departure.Format("2006-01-02"))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list []response.ScheduleResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 1)
		require.Equal(t, match.ID, list[0].ID)
		require.Equal(t, "Pune", list[0].RouteTo)
	})

	s.Run("Normal case: omitted legs match any route", func() {
		t := s.T()

		departure := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
		dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder().WithDepartureAt(departure))
		nashik := builder.NewScheduleBuilder().WithDepartureAt(departure)
		nashik.RouteTo = "Nashik"
		dbtest.CreateTestSchedule(t, s.DB, nashik)

		url := fmt.Sprintf("%s?date=%s", schedulesURL, departure.Format("2006-01-02"))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var list []response.ScheduleResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 2)
	})

	s.Run("Error case: malformed date returns 400", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			schedulesURL+"?date=28-08-2026", nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *ScheduleSuite) TestGetSchedule() {
	s.Run("Normal case: detail returns catalog fields", func() {
		t := s.T()

		sched := builder.NewScheduleBuilder().WithPriceCents(49999)
		dbtest.CreateTestSchedule(t, s.DB, sched)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			schedulesURL+"/"+sched.ID.String(), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var detail response.ScheduleResponse
		httptest.DecodeResponseBody(t, w.Body, &detail)
		require.Equal(t, sched.ID, detail.ID)
		require.Equal(t, int64(49999), detail.PriceCents)
		require.Equal(t, 40, detail.SeatCapacity)
	})

	s.Run("Error case: unknown schedule returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			schedulesURL+"/"+uuid.NewString(), nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *ScheduleSuite) TestGetAvailability() {
	s.Run("Property: availability counts only confirmed holds", func() {
		t := s.T()

		sched := builder.NewScheduleBuilder().WithSeatCapacity(40)
		scheduleID := dbtest.CreateTestSchedule(t, s.DB, sched)

		reqBuilder := builder.NewBookingBuilder().WithSeats("1A", "1B")
		reqBuilder.ScheduleID = scheduleID
		token := authtest.BearerToken(t, s.Config, reqBuilder.UserID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings",
			reqBuilder.BuildReserveRequestDTO(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReserveSeatsResponse
		httptest.DecodeResponseBody(t, w.Body, &created)

		aw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, scheduleID), nil, "")
		require.Equal(t, http.StatusOK, aw.Code, aw.Body.String())

		var avail response.AvailabilityResponse
		httptest.DecodeResponseBody(t, aw.Body, &avail)
		require.Equal(t, []string{"1A", "1B"}, avail.HeldSeats)
		require.Equal(t, 38, avail.AvailableCount)

		// cancelling releases the hold
		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("/api/bookings/%s/cancel", created.BookingID), nil, token)
		require.Equal(t, http.StatusOK, cw.Code)

		aw2 := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, scheduleID), nil, "")
		require.Equal(t, http.StatusOK, aw2.Code)

		var after response.AvailabilityResponse
		httptest.DecodeResponseBody(t, aw2.Body, &after)
		require.Empty(t, after.HeldSeats)
		require.Equal(t, 40, after.AvailableCount)
	})

	s.Run("Error case: unknown schedule returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, uuid.New()), nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
