package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"dragon-roster.backend/internal/config"
	"dragon-roster.backend/internal/infrastructure/datasources/sqlite"
	"dragon-roster.backend/internal/infrastructure/repositories"
	"dragon-roster.backend/internal/interfaces/http/middleware"
	"dragon-roster.backend/internal/usecases"
	"dragon-roster.backend/pkg/jwt"
)

const testSecret = "test-secret"

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

// newTestServer wires the real repositories and usecases over an in-memory
// SQLite database.
func newTestServer(t *testing.T, rules config.RosterConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano()))
	require.NoError(t, err)

	personRepo := repositories.NewPersonRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	trainingRepo := repositories.NewTrainingRepository(db)
	lineupRepo := repositories.NewLineupRepository(db)
	seatRepo := repositories.NewLineupSeatRepository(db)
	uow := repositories.NewUnitOfWork(db)

	person := NewPersonHandler(usecases.NewPersonUsecase(personRepo))
	team := NewTeamHandler(usecases.NewTeamUsecase(teamRepo, rules.DefaultMaxMembers))
	membership := NewMembershipHandler(usecases.NewMembershipUsecase(membershipRepo, personRepo, teamRepo, uow))
	location := NewLocationHandler(usecases.NewLocationUsecase(locationRepo, teamRepo, trainingRepo, uow))
	training := NewTrainingHandler(usecases.NewTrainingUsecase(trainingRepo, teamRepo, locationRepo, uow))
	lineup := NewLineupHandler(usecases.NewLineupUsecase(lineupRepo, trainingRepo, seatRepo, rules))
	seat := NewLineupSeatHandler(usecases.NewLineupSeatUsecase(seatRepo, lineupRepo, personRepo, uow))

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwt.NewJWTService(testSecret, time.Minute, time.Hour), false))

	api.GET("/person", person.ListPersons)
	api.POST("/person", person.CreatePerson)
	api.GET("/person/:id", person.GetPerson)
	api.PUT("/person/:id", person.UpdatePerson(false))
	api.PATCH("/person/:id", person.UpdatePerson(true))
	api.DELETE("/person/:id", person.DeletePerson)

	api.GET("/team", team.ListTeams)
	api.POST("/team", team.CreateTeam)
	api.GET("/team/:id", team.GetTeam)
	api.PATCH("/team/:id", team.UpdateTeam(true))
	api.DELETE("/team/:id", team.DeleteTeam)

	api.GET("/membership", membership.ListMemberships)
	api.POST("/membership", membership.CreateMembership)
	api.GET("/membership/:id", membership.GetMembership)
	api.PATCH("/membership/:id", membership.UpdateMembership(true))
	api.DELETE("/membership/:id", membership.DeleteMembership)

	api.GET("/location", location.ListLocations)
	api.POST("/location", location.CreateLocation)
	api.GET("/location/:id", location.GetLocation)
	api.PATCH("/location/:id", location.UpdateLocation(true))
	api.DELETE("/location/:id", location.DeleteLocation)

	api.GET("/training", training.ListTrainings)
	api.POST("/training", training.CreateTraining)
	api.GET("/training/:id", training.GetTraining)
	api.PATCH("/training/:id", training.UpdateTraining(true))
	api.DELETE("/training/:id", training.DeleteTraining)

	api.GET("/lineup", lineup.ListLineups)
	api.POST("/lineup", lineup.CreateLineup)
	api.GET("/lineup/:id", lineup.GetLineup)
	api.GET("/lineup/:id/seats", lineup.GetLineupSeats)
	api.PUT("/lineup/:id", lineup.UpdateLineup(false))
	api.PATCH("/lineup/:id", lineup.UpdateLineup(true))
	api.DELETE("/lineup/:id", lineup.DeleteLineup)

	api.GET("/lineup-seat", seat.ListSeats)
	api.POST("/lineup-seat", seat.CreateSeat)
	api.POST("/lineup-seat/swap", seat.SwapSeats)
	api.GET("/lineup-seat/:id", seat.GetSeat)
	api.PATCH("/lineup-seat/:id", seat.UpdateSeat(true))
	api.POST("/lineup-seat/:id/assign", seat.AssignSeat)
	api.DELETE("/lineup-seat/:id", seat.DeleteSeat)

	api.GET("/auth/me", NewAuthHandler().GetMe)

	return &testServer{t: t, router: r}
}

func (s *testServer) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// mustCreate posts body and returns the decoded 201 response.
func (s *testServer) mustCreate(path string, body interface{}) map[string]interface{} {
	s.t.Helper()
	rec := s.do(http.MethodPost, path, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, "POST %s: %s", path, rec.Body.String())
	return decodeObject(s.t, rec)
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) ([]interface{}, map[string]interface{}) {
	t.Helper()
	body := decodeObject(t, rec)
	results, _ := body["results"].([]interface{})
	meta, _ := body["meta"].(map[string]interface{})
	return results, meta
}

func decodeArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// rosterFixture is one team with a location, a training and a lineup.
type rosterFixture struct {
	teamID     string
	locationID float64
	trainingID float64
	lineupID   float64
}

func (s *testServer) person(name string) string {
	s.t.Helper()
	return s.mustCreate("/person", map[string]interface{}{"name": name, "phone": "+49" + name})["id"].(string)
}

func (s *testServer) seedRoster(maxMembers int) rosterFixture {
	s.t.Helper()
	team := s.mustCreate("/team", map[string]interface{}{"name": "Dragons", "max_members": maxMembers})
	teamID := team["id"].(string)
	location := s.mustCreate("/location", map[string]interface{}{"team": teamID, "name": "Harbour", "lat": 52.5, "lon": 13.4})
	training := s.mustCreate("/training", map[string]interface{}{
		"team": teamID, "location": location["id"], "start_at": "2026-05-04T18:00:00Z",
	})
	lineup := s.mustCreate("/lineup", map[string]interface{}{"training": training["id"]})
	return rosterFixture{
		teamID:     teamID,
		locationID: location["id"].(float64),
		trainingID: training["id"].(float64),
		lineupID:   lineup["id"].(float64),
	}
}

func (s *testServer) seat(lineupID float64, side string, n int, personID string) map[string]interface{} {
	s.t.Helper()
	body := map[string]interface{}{"lineup": lineupID, "side": side, "seat_number": n}
	if personID != "" {
		body["person"] = personID
	}
	return s.mustCreate("/lineup-seat", body)
}
