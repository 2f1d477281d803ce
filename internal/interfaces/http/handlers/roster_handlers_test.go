package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragon-roster.backend/internal/config"
	"dragon-roster.backend/pkg/jwt"
)

func defaultRules() config.RosterConfig {
	return config.RosterConfig{DefaultMaxMembers: 22, SeatsPerSide: 10}
}

func TestPersonHandlers_CRUD(t *testing.T) {
	s := newTestServer(t, defaultRules())

	created := s.mustCreate("/person", map[string]interface{}{"name": "Anna", "phone": "+4915100001", "height": 172, "side": 1})
	id := created["id"].(string)
	assert.Equal(t, "Anna", created["name"])
	assert.Equal(t, 172.0, created["height"])
	assert.Nil(t, created["weight"])

	rec := s.do(http.MethodPatch, "/person/"+id, map[string]interface{}{"height": nil, "weight": 64})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decodeObject(t, rec)
	assert.Nil(t, patched["height"])
	assert.Equal(t, 64.0, patched["weight"])
	assert.Equal(t, "Anna", patched["name"])

	rec = s.do(http.MethodPut, "/person/"+id, map[string]interface{}{"name": "Anna B"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"phone":["This field is required."]}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/person/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/person/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/person/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, rec.Body.String())
}

func TestPersonHandlers_InputErrors(t *testing.T) {
	s := newTestServer(t, defaultRules())

	rec := s.do(http.MethodPost, "/person", map[string]interface{}{"name": strings.Repeat("x", 51), "phone": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"name":["Ensure this field has no more than 50 characters."]}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/person", map[string]interface{}{"name": "A", "phone": "1", "side": "left"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"side":["Invalid value."]}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/person", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeObject(t, rec), "non_field_errors")

	rec = s.do(http.MethodGet, "/person/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/person?side=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"side":["Enter a number."]}`, rec.Body.String())
}

func TestPersonHandlers_ListEnvelope(t *testing.T) {
	s := newTestServer(t, defaultRules())
	for _, name := range []string{"Carla", "Anna", "Bert"} {
		s.person(name)
	}

	rec := s.do(http.MethodGet, "/person?ordering=name&page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results, meta := decodeList(t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "Carla", results[0].(map[string]interface{})["name"])
	assert.Equal(t, map[string]interface{}{"page": 2.0, "limit": 2.0, "totalCount": 3.0, "totalPages": 2.0}, meta)

	rec = s.do(http.MethodGet, "/person?search=ber", nil)
	results, meta = decodeList(t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, meta["totalCount"])
}

func TestTeamHandlers_DuplicateNameAndMemberCount(t *testing.T) {
	s := newTestServer(t, defaultRules())
	team := s.mustCreate("/team", map[string]interface{}{"name": "Dragons", "city": "Berlin"})
	assert.Equal(t, 22.0, team["max_members"])
	assert.Equal(t, 0.0, team["active_member_count"])

	rec := s.do(http.MethodPost, "/team", map[string]interface{}{"name": "Dragons"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeObject(t, rec), "non_field_errors")

	s.mustCreate("/membership", map[string]interface{}{"person": s.person("Anna"), "team": team["id"]})
	rec = s.do(http.MethodGet, "/team/"+team["id"].(string), nil)
	assert.Equal(t, 1.0, decodeObject(t, rec)["active_member_count"])

	rec = s.do(http.MethodGet, "/team?city=Berlin", nil)
	results, _ := decodeList(t, rec)
	assert.Len(t, results, 1)
}

func TestMembershipHandlers_CapacityScenario(t *testing.T) {
	s := newTestServer(t, defaultRules())
	team := s.mustCreate("/team", map[string]interface{}{"name": "Small boat", "max_members": 2})
	teamID := team["id"].(string)

	first := s.mustCreate("/membership", map[string]interface{}{"person": s.person("A"), "team": teamID})
	assert.Equal(t, 1.0, first["role"])
	assert.Equal(t, teamID, first["team"].(map[string]interface{})["id"])
	assert.Equal(t, "A", first["person"].(map[string]interface{})["name"])

	s.mustCreate("/membership", map[string]interface{}{"person": s.person("B"), "team": teamID, "role": 2})

	rec := s.do(http.MethodPost, "/membership", map[string]interface{}{"person": s.person("C"), "team": teamID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"team":["Team is at capacity (2). Cannot add another member."]}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/membership?team="+teamID, nil)
	results, _ := decodeList(t, rec)
	assert.Len(t, results, 2)

	rec = s.do(http.MethodPatch, "/membership/"+first["id"].(string), map[string]interface{}{"role": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3.0, decodeObject(t, rec)["role"])

	rec = s.do(http.MethodDelete, "/membership/"+first["id"].(string), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	s.mustCreate("/membership", map[string]interface{}{"person": s.person("D"), "team": teamID})
}

func TestMembershipHandlers_DuplicateAndMissingRefs(t *testing.T) {
	s := newTestServer(t, defaultRules())
	team := s.mustCreate("/team", map[string]interface{}{"name": "Dragons"})
	personID := s.person("Anna")

	s.mustCreate("/membership", map[string]interface{}{"person": personID, "team": team["id"]})
	rec := s.do(http.MethodPost, "/membership", map[string]interface{}{"person": personID, "team": team["id"]})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"non_field_errors":["This person is already a member of the specified team."]}`, rec.Body.String())

	missing := "0190a5c8-0000-7000-8000-000000000000"
	rec = s.do(http.MethodPost, "/membership", map[string]interface{}{"person": missing})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeObject(t, rec)
	assert.Equal(t, []interface{}{`Invalid pk "` + missing + `" - object does not exist.`}, body["person"])
	assert.Equal(t, []interface{}{"This field is required."}, body["team"])
}

func TestTrainingHandlers_LocationMustBelongToTeam(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)
	other := s.mustCreate("/team", map[string]interface{}{"name": "Tigers"})

	rec := s.do(http.MethodPost, "/training", map[string]interface{}{
		"team": other["id"], "location": fx.locationID, "start_at": "2026-05-05T18:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"location":["Location must belong to the same team."]}`, rec.Body.String())

	rec = s.do(http.MethodPatch, fmt.Sprintf("/training/%v", fx.trainingID), map[string]interface{}{"team": other["id"]})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeObject(t, rec), "location")

	rec = s.do(http.MethodGet, fmt.Sprintf("/training/%v", fx.trainingID), nil)
	training := decodeObject(t, rec)
	assert.Equal(t, fx.teamID, training["team"].(map[string]interface{})["id"])
	assert.Equal(t, "Harbour", training["location"].(map[string]interface{})["name"])
}

func TestTrainingHandlers_ListWindow(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)
	s.mustCreate("/training", map[string]interface{}{"team": fx.teamID, "location": fx.locationID, "start_at": "2026-06-01T18:00:00Z"})

	rec := s.do(http.MethodGet, "/training?start_at_gte=2026-05-10T00:00:00Z", nil)
	results, _ := decodeList(t, rec)
	assert.Len(t, results, 1)

	rec = s.do(http.MethodGet, "/training?team="+fx.teamID, nil)
	results, _ = decodeList(t, rec)
	require.Len(t, results, 2)
	assert.Equal(t, "2026-06-01T18:00:00Z", results[0].(map[string]interface{})["start_at"], "newest first")

	rec = s.do(http.MethodGet, "/training?start_at_lte=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocationHandlers_ProtectedWhileUsed(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)

	rec := s.do(http.MethodDelete, fmt.Sprintf("/location/%v", fx.locationID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	other := s.mustCreate("/team", map[string]interface{}{"name": "Tigers"})
	rec = s.do(http.MethodPatch, fmt.Sprintf("/location/%v", fx.locationID), map[string]interface{}{"team": other["id"]})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeObject(t, rec), "team")

	rec = s.do(http.MethodPost, "/location", map[string]interface{}{"team": fx.teamID, "name": "Lake", "lat": 95, "lon": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeObject(t, rec), "lat")

	rec = s.do(http.MethodDelete, fmt.Sprintf("/training/%v", fx.trainingID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodDelete, fmt.Sprintf("/location/%v", fx.locationID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLineupHandlers_OnePerTraining(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)

	rec := s.do(http.MethodGet, fmt.Sprintf("/lineup/%v", fx.lineupID), nil)
	lineup := decodeObject(t, rec)
	assert.Equal(t, 1.0, lineup["state"])
	assert.Equal(t, "Draft", lineup["state_display"])

	rec = s.do(http.MethodPost, "/lineup", map[string]interface{}{"training": fx.trainingID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"non_field_errors":["A lineup already exists for this training."]}`, rec.Body.String())
}

func TestLineupSeatHandlers_SeatRules(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)
	anna, bert := s.person("Anna"), s.person("Bert")

	s.seat(fx.lineupID, "L", 1, anna)

	rec := s.do(http.MethodPost, "/lineup-seat", map[string]interface{}{"lineup": fx.lineupID, "side": "L", "seat_number": 1, "person": bert})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"non_field_errors":["Seat already occupied."]}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/lineup-seat", map[string]interface{}{"lineup": fx.lineupID, "side": "R", "seat_number": 1, "person": anna})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"non_field_errors":["Person already seated in this lineup."]}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/lineup-seat", map[string]interface{}{"lineup": fx.lineupID, "side": "X", "seat_number": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeObject(t, rec)
	assert.Contains(t, body, "side")
	assert.Contains(t, body, "seat_number")

	s.seat(fx.lineupID, "L", 2, "")
	s.seat(fx.lineupID, "L", 3, "")
	rec = s.do(http.MethodGet, fmt.Sprintf("/lineup-seat?lineup=%v&side=L", fx.lineupID), nil)
	results, meta := decodeList(t, rec)
	assert.Len(t, results, 3)
	assert.Equal(t, 3.0, meta["totalCount"])

	rec = s.do(http.MethodGet, "/lineup-seat?side=Q", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLineupSeatHandlers_SmallIntBoundsAndMalformedPerson(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)

	rec := s.do(http.MethodPost, "/lineup-seat", map[string]interface{}{"lineup": fx.lineupID, "side": "L", "seat_number": 40000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"seat_number":["Ensure this value is less than or equal to 32767."]}`, rec.Body.String())

	seat := s.seat(fx.lineupID, "L", 32767, "")
	assert.Equal(t, 32767.0, seat["seat_number"])

	rec = s.do(http.MethodPost, "/lineup-seat", map[string]interface{}{"lineup": fx.lineupID, "side": "R", "seat_number": 1, "person": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"person":["Must be a valid UUID."]}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/membership", map[string]interface{}{"person": "not-a-uuid", "team": fx.teamID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"person":["Must be a valid UUID."]}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/person", map[string]interface{}{"name": "Anna", "phone": "1", "height": 32768})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"height":["Ensure this value is less than or equal to 32767."]}`, rec.Body.String())
}

func TestLineupHandlers_SeatOrderAndStateRoundTrip(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)

	s.seat(fx.lineupID, "R", 2, s.person("D"))
	s.seat(fx.lineupID, "L", 3, s.person("B"))
	s.seat(fx.lineupID, "R", 1, s.person("C"))
	s.seat(fx.lineupID, "L", 1, s.person("A"))

	chart := func() []string {
		rec := s.do(http.MethodGet, fmt.Sprintf("/lineup/%v/seats", fx.lineupID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var out []string
		for _, seat := range decodeArray(t, rec) {
			out = append(out, fmt.Sprintf("%s%v:%s", seat["side"], seat["seat_number"], seat["person"].(map[string]interface{})["name"]))
		}
		return out
	}
	before := chart()
	assert.Equal(t, []string{"L1:A", "L3:B", "R1:C", "R2:D"}, before)

	rec := s.do(http.MethodPatch, fmt.Sprintf("/lineup/%v", fx.lineupID), map[string]interface{}{"state": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Published", decodeObject(t, rec)["state_display"])

	rec = s.do(http.MethodPut, fmt.Sprintf("/lineup/%v", fx.lineupID), map[string]interface{}{"training": fx.trainingID, "state": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1.0, decodeObject(t, rec)["state"])
	assert.Equal(t, before, chart())

	rec = s.do(http.MethodPatch, fmt.Sprintf("/lineup/%v", fx.lineupID), map[string]interface{}{"state": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/lineup/999/seats", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLineupHandlers_PublishNeedsFullChartWhenConfigured(t *testing.T) {
	s := newTestServer(t, config.RosterConfig{DefaultMaxMembers: 22, SeatsPerSide: 1, RequireFullOnPublish: true})
	fx := s.seedRoster(22)
	s.seat(fx.lineupID, "L", 1, s.person("A"))

	rec := s.do(http.MethodPatch, fmt.Sprintf("/lineup/%v", fx.lineupID), map[string]interface{}{"state": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"state":["Cannot publish: 1 seat(s) are missing or empty."]}`, rec.Body.String())

	s.seat(fx.lineupID, "R", 1, s.person("B"))
	rec = s.do(http.MethodPatch, fmt.Sprintf("/lineup/%v", fx.lineupID), map[string]interface{}{"state": 2})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTrainingDelete_CascadesLineupOnly(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)
	personID := s.person("Anna")
	s.mustCreate("/membership", map[string]interface{}{"person": personID, "team": fx.teamID})
	s.seat(fx.lineupID, "L", 1, personID)
	s.seat(fx.lineupID, "L", 2, "")
	s.seat(fx.lineupID, "R", 1, "")
	s.seat(fx.lineupID, "R", 2, "")

	rec := s.do(http.MethodDelete, fmt.Sprintf("/training/%v", fx.trainingID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("/lineup/%v", fx.lineupID), nil).Code)
	results, _ := decodeList(t, s.do(http.MethodGet, fmt.Sprintf("/lineup-seat?lineup=%v", fx.lineupID), nil))
	assert.Empty(t, results)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/person/"+personID, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/team/"+fx.teamID, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, fmt.Sprintf("/location/%v", fx.locationID), nil).Code)
}

func TestLineupSeatHandlers_AssignAndSwap(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)
	anna, bert := s.person("Anna"), s.person("Bert")

	first := s.seat(fx.lineupID, "L", 1, anna)
	second := s.seat(fx.lineupID, "R", 1, bert)
	empty := s.seat(fx.lineupID, "L", 2, "")

	rec := s.do(http.MethodPost, "/lineup-seat/swap", map[string]interface{}{"first": first["id"], "second": second["id"]})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	swapped := decodeArray(t, rec)
	require.Len(t, swapped, 2)
	assert.Equal(t, bert, swapped[0]["person"].(map[string]interface{})["id"])
	assert.Equal(t, anna, swapped[1]["person"].(map[string]interface{})["id"])

	rec = s.do(http.MethodPost, fmt.Sprintf("/lineup-seat/%v/assign", empty["id"]), map[string]interface{}{"person": anna})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, anna, decodeObject(t, rec)["person"].(map[string]interface{})["id"])

	rec = s.do(http.MethodGet, fmt.Sprintf("/lineup-seat/%v", second["id"]), nil)
	assert.Nil(t, decodeObject(t, rec)["person"], "previous seat was vacated")

	rec = s.do(http.MethodPost, fmt.Sprintf("/lineup-seat/%v/assign", empty["id"]), map[string]interface{}{"person": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeObject(t, rec)["person"])

	rec = s.do(http.MethodPost, fmt.Sprintf("/lineup-seat/%v/assign", empty["id"]), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"person":["This field is required."]}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/lineup-seat/swap", map[string]interface{}{"first": first["id"], "second": first["id"]})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLineupSeatHandlers_PatchClearsPerson(t *testing.T) {
	s := newTestServer(t, defaultRules())
	fx := s.seedRoster(22)
	seat := s.seat(fx.lineupID, "L", 1, s.person("Anna"))

	rec := s.do(http.MethodPatch, fmt.Sprintf("/lineup-seat/%v", seat["id"]), map[string]interface{}{"person": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decodeObject(t, rec)["person"])

	rec = s.do(http.MethodDelete, fmt.Sprintf("/lineup-seat/%v", seat["id"]), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	s := newTestServer(t, defaultRules())

	rec := s.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	pair, err := jwt.NewJWTService(testSecret, time.Minute, time.Hour).GenerateTokenPair(jwt.Identity{UserID: "42", Username: "coach", IsStaff: true})
	require.NoError(t, err)
	rec = s.do(http.MethodGet, "/auth/me", nil, "Authorization", "Bearer "+pair.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeObject(t, rec)
	assert.Equal(t, "42", me["id"])
	assert.Equal(t, "coach", me["username"])
	assert.Equal(t, true, me["is_staff"])
}
