//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"tripd/internal/handler/dto/response"
	"tripd/internal/usecase/commands"
	"tripd/tests/common/authtest"
	"tripd/tests/common/builder"
	"tripd/tests/common/dbtest"
	"tripd/tests/common/httptest"
	"tripd/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL = "/api/bookings"
	cancelURL   = "/api/bookings/%s/cancel"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) reserve(t *testing.T, token string, b *builder.BookingBuilder) *response.ReserveSeatsResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, b.BuildReserveRequestDTO(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.ReserveSeatsResponse
	httptest.DecodeResponseBody(t, w.Body, &created)
	require.NotEqual(t, uuid.Nil, created.BookingID)
	return &created
}

// =============================================================================
// TestReserveSeats - seat reservation API tests
// =============================================================================

func (s *BookingSuite) TestReserveSeats() {
	s.Run("Normal case: reserving two seats charges price per seat", func() {
		t := s.T()

		sched := builder.NewScheduleBuilder().WithPriceCents(50000)
		scheduleID := dbtest.CreateTestSchedule(t, s.DB, sched)

		userID := uuid.New()
		token := authtest.BearerToken(t, s.Config, userID)

		reqBuilder := builder.NewBookingBuilder().WithSeats("1A", "1B")
		reqBuilder.ScheduleID = scheduleID
		created := s.reserve(t, token, reqBuilder)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+created.BookingID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var detail response.BookingResponse
		httptest.DecodeResponseBody(t, w.Body, &detail)

		expected := &response.BookingResponse{
			ID:         created.BookingID,
			ScheduleID: scheduleID,
			RouteFrom:  "Mumbai",
			RouteTo:    "Pune",
			Seats:      []string{"1A", "1B"},
			TotalCents: 100000,
			Status:     "confirmed",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "DepartureAt", "Passengers", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &detail, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}

		require.Equal(t, "confirmed", dbtest.BookingStatus(t, s.DB, created.BookingID))
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "booking_confirmed"))
	})

	s.Run("Normal case: passenger roster is persisted per seat", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		userID := uuid.New()
		token := authtest.BearerToken(t, s.Config, userID)

		reqBuilder := builder.NewBookingBuilder().
			WithSeats("2A", "2B").
			WithPassengers(
				commands.PassengerParams{FullName: "Asha Rao", Age: 34, Gender: "F", Contact: "asha@example.com"},
				commands.PassengerParams{FullName: "Vikram Rao", Age: 36, Gender: "M"},
			)
		reqBuilder.ScheduleID = scheduleID

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqBuilder.BuildReserveRequestDTO(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReserveSeatsResponse
		httptest.DecodeResponseBody(t, w.Body, &created)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+created.BookingID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)

		var detail response.BookingResponse
		httptest.DecodeResponseBody(t, dw.Body, &detail)
		require.Len(t, detail.Passengers, 2)
		require.Equal(t, "2A", detail.Passengers[0].SeatCode)
		require.Equal(t, "Asha Rao", detail.Passengers[0].FullName)
		require.Equal(t, "2B", detail.Passengers[1].SeatCode)
	})

	s.Run("Error case: conflicting request names the first unavailable seat", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		firstUser := builder.NewBookingBuilder().WithSeats("1A", "1B")
		firstUser.ScheduleID = scheduleID
		s.reserve(t, authtest.BearerToken(t, s.Config, firstUser.UserID), firstUser)

		// 2C is free; 1B is the first held seat in request order
		secondUser := builder.NewBookingBuilder().WithSeats("2C", "1B", "1A")
		secondUser.ScheduleID = scheduleID
		token := authtest.BearerToken(t, s.Config, secondUser.UserID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			secondUser.BuildReserveRequestDTO(), token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		var body map[string]any
		httptest.DecodeResponseBody(t, w.Body, &body)
		require.Equal(t, "1B", body["seat"])
	})

	s.Run("Error case: unknown schedule returns 404", func() {
		t := s.T()

		reqBuilder := builder.NewBookingBuilder()
		token := authtest.BearerToken(t, s.Config, reqBuilder.UserID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqBuilder.BuildReserveRequestDTO(), token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Error case: duplicate seats in one request are rejected", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		reqBuilder := builder.NewBookingBuilder().WithSeats("1A", "1A")
		reqBuilder.ScheduleID = scheduleID
		token := authtest.BearerToken(t, s.Config, reqBuilder.UserID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqBuilder.BuildReserveRequestDTO(), token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Auth test: reservation requires a bearer token", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())
		reqBuilder := builder.NewBookingBuilder()
		reqBuilder.ScheduleID = scheduleID

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqBuilder.BuildReserveRequestDTO(), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestConcurrentReservations - overlapping requests race for the same seats
// =============================================================================

func (s *BookingSuite) TestConcurrentReservations() {
	s.Run("Property: each seat has at most one confirmed holder", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		const contenders = 8
		codes := make([]int, contenders)
		var wg sync.WaitGroup
		wg.Add(contenders)

		// every contender wants 3A and 3B
		for i := 0; i < contenders; i++ {
			go func(idx int) {
				defer wg.Done()

				reqBuilder := builder.NewBookingBuilder().WithSeats("3A", "3B")
				reqBuilder.ScheduleID = scheduleID
				token := authtest.BearerToken(t, s.Config, reqBuilder.UserID)

				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
					reqBuilder.BuildReserveRequestDTO(), token)
				codes[idx] = w.Code
			}(i)
		}
		wg.Wait()

		winners, conflicts := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				winners++
			case http.StatusConflict, http.StatusServiceUnavailable:
				conflicts++
			default:
				t.Fatalf("unexpected status %d", code)
			}
		}
		require.Equal(t, 1, winners, "exactly one contender should win the seats")
		require.Equal(t, contenders-1, conflicts)

		var held int
		err := s.DB.QueryRow(t.Context(),
			`SELECT COUNT(*) FROM booking_seats bs
			   JOIN bookings b ON b.id = bs.booking_id
			  WHERE bs.schedule_id = $1 AND b.status = 'confirmed'`,
			scheduleID).Scan(&held)
		require.NoError(t, err)
		require.Equal(t, 2, held, "only the winner's two seats may be held")
	})

	s.Run("Property: disjoint seat sets all succeed concurrently", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		const contenders = 6
		codes := make([]int, contenders)
		var wg sync.WaitGroup
		wg.Add(contenders)

		for i := 0; i < contenders; i++ {
			go func(idx int) {
				defer wg.Done()

				seat := fmt.Sprintf("%dA", idx+1)
				reqBuilder := builder.NewBookingBuilder().WithSeats(seat)
				reqBuilder.ScheduleID = scheduleID
				token := authtest.BearerToken(t, s.Config, reqBuilder.UserID)

				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
					reqBuilder.BuildReserveRequestDTO(), token)
				codes[idx] = w.Code
			}(i)
		}
		wg.Wait()

		for idx, code := range codes {
			require.Equal(t, http.StatusCreated, code, "contender %d should win its own seat", idx)
		}
	})
}

// =============================================================================
// TestCancelBooking - cancellation lifecycle tests
// =============================================================================

func (s *BookingSuite) TestCancelBooking() {
	s.Run("Normal case: cancelled seats can be rebooked by another user", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		first := builder.NewBookingBuilder().WithSeats("4A", "4B")
		first.ScheduleID = scheduleID
		firstToken := authtest.BearerToken(t, s.Config, first.UserID)
		created := s.reserve(t, firstToken, first)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(cancelURL, created.BookingID), nil, firstToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, "cancelled", dbtest.BookingStatus(t, s.DB, created.BookingID))
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "booking_cancelled"))

		// the released seats are free again
		second := builder.NewBookingBuilder().WithSeats("4A", "4B")
		second.ScheduleID = scheduleID
		s.reserve(t, authtest.BearerToken(t, s.Config, second.UserID), second)
	})

	s.Run("Error case: cancelling twice returns conflict", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		reqBuilder := builder.NewBookingBuilder()
		reqBuilder.ScheduleID = scheduleID
		token := authtest.BearerToken(t, s.Config, reqBuilder.UserID)
		created := s.reserve(t, token, reqBuilder)

		url := fmt.Sprintf(cancelURL, created.BookingID)
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, token)
		require.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, token)
		require.Equal(t, http.StatusConflict, w2.Code, w2.Body.String())
	})

	s.Run("Error case: departed trips cannot be cancelled", func() {
		t := s.T()

		sched := builder.NewScheduleBuilder().WithDepartureAt(time.Now().Add(time.Second))
		scheduleID := dbtest.CreateTestSchedule(t, s.DB, sched)

		reqBuilder := builder.NewBookingBuilder()
		reqBuilder.ScheduleID = scheduleID
		token := authtest.BearerToken(t, s.Config, reqBuilder.UserID)
		created := s.reserve(t, token, reqBuilder)

		time.Sleep(1100 * time.Millisecond)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(cancelURL, created.BookingID), nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.Equal(t, "confirmed", dbtest.BookingStatus(t, s.DB, created.BookingID))
	})

	s.Run("Error case: cancelling another user's booking looks like missing", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		owner := builder.NewBookingBuilder()
		owner.ScheduleID = scheduleID
		created := s.reserve(t, authtest.BearerToken(t, s.Config, owner.UserID), owner)

		otherToken := authtest.BearerToken(t, s.Config, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(cancelURL, created.BookingID), nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Error case: malformed booking id returns 400", func() {
		t := s.T()

		token := authtest.BearerToken(t, s.Config, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/bookings/not-a-uuid/cancel", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// TestBookingQueries - read side tests
// =============================================================================

func (s *BookingSuite) TestBookingQueries() {
	s.Run("Normal case: listing shows own bookings newest first", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())
		userID := uuid.New()
		token := authtest.BearerToken(t, s.Config, userID)

		older := builder.NewBookingBuilder().WithSeats("5A")
		older.UserID = userID
		older.ScheduleID = scheduleID
		s.reserve(t, token, older)

		newer := builder.NewBookingBuilder().WithSeats("5B")
		newer.UserID = userID
		newer.ScheduleID = scheduleID
		newerCreated := s.reserve(t, token, newer)

		// another user's booking must not appear
		stranger := builder.NewBookingBuilder().WithSeats("5C")
		stranger.ScheduleID = scheduleID
		s.reserve(t, authtest.BearerToken(t, s.Config, stranger.UserID), stranger)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list []response.BookingListResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 2)
		require.Equal(t, newerCreated.BookingID, list[0].ID)
	})

	s.Run("Error case: another user's booking detail is not found", func() {
		t := s.T()

		scheduleID := dbtest.CreateTestSchedule(t, s.DB, builder.NewScheduleBuilder())

		owner := builder.NewBookingBuilder()
		owner.ScheduleID = scheduleID
		created := s.reserve(t, authtest.BearerToken(t, s.Config, owner.UserID), owner)

		otherToken := authtest.BearerToken(t, s.Config, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+created.BookingID.String(), nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
