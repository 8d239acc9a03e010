package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/stepstats/internal/adapters/http/api"
	"github.com/okian/stepstats/internal/app"
	"github.com/okian/stepstats/internal/domain/gamify"
	"github.com/okian/stepstats/internal/domain/model"
)

// Mock implementations for testing.
type mockDeps struct {
	submitErr    error
	submitted    []model.Submission
	submittedKey string

	rankingInfo app.RankingInfo
	rankingErr  error

	config    model.Credentials
	configErr error

	totals         []model.PlayerTotal
	leaderboardErr error
	requestedLimit int
}

func (m *mockDeps) SubmitScore(ctx context.Context, apiKey string, sub model.Submission) error {
	if m.submitErr != nil {
		return m.submitErr
	}
	m.submittedKey = apiKey
	m.submitted = append(m.submitted, sub)
	return nil
}

func (m *mockDeps) RankingInfo(ctx context.Context, apiKey string) (app.RankingInfo, error) {
	return m.rankingInfo, m.rankingErr
}

func (m *mockDeps) StoredConfig(ctx context.Context, apiKey string) (model.Credentials, error) {
	return m.config, m.configErr
}

func (m *mockDeps) Leaderboard(ctx context.Context, n int) ([]model.PlayerTotal, error) {
	m.requestedLimit = n
	return m.totals, m.leaderboardErr
}

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps *mockDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, mockStats{}, 100).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	var decoded map[string]any
	So(json.NewDecoder(resp.Body).Decode(&decoded), ShouldBeNil)
	return resp, decoded
}

const submitBody = `{
	"api_key": "key-1",
	"song_dir": "Songs/Pack/Anthem",
	"difficulty": "Challenge",
	"steps_type": "dance-single",
	"grade": "Tier02",
	"score": 120000,
	"percent_dp": 0.93,
	"max_combo": 250,
	"date_time": "2025-05-01 20:15:00",
	"player_guid": "guid-ada",
	"player_name": "Ada"
}`

func TestSubmitEndpoint(t *testing.T) {
	Convey("Given the submit endpoint", t, func() {
		Convey("When posting a valid submission", func() {
			deps := &mockDeps{}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, body := postJSON(t, srv.URL+"/api/submit_stats", submitBody)

			Convey("Then it succeeds and forwards the decoded payload", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["status"], ShouldEqual, "success")
				So(deps.submittedKey, ShouldEqual, "key-1")
				So(deps.submitted, ShouldHaveLength, 1)
				So(deps.submitted[0].Score, ShouldEqual, 120000)
				So(deps.submitted[0].PercentDP, ShouldAlmostEqual, 0.93, 1e-9)
				So(deps.submitted[0].PlayerGUID, ShouldEqual, "guid-ada")
			})
		})

		Convey("When the body is not JSON", func() {
			deps := &mockDeps{}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, body := postJSON(t, srv.URL+"/api/submit_stats", "not json")
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["status"], ShouldEqual, "error")
		})

		Convey("When the service reports a missing api key", func() {
			deps := &mockDeps{submitErr: app.ErrMissingAPIKey}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, _ := postJSON(t, srv.URL+"/api/submit_stats", `{}`)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the service reports an unauthorized key", func() {
			deps := &mockDeps{submitErr: app.ErrUnauthorized}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, _ := postJSON(t, srv.URL+"/api/submit_stats", submitBody)
			So(resp.StatusCode, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("When the service reports missing fields", func() {
			deps := &mockDeps{submitErr: &app.ValidationError{Fields: []string{"song_dir", "score"}}}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, body := postJSON(t, srv.URL+"/api/submit_stats", submitBody)

			Convey("Then the exact field list is in the message", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(body["message"], ShouldContainSubstring, "song_dir, score")
			})
		})

		Convey("When the service reports a duplicate", func() {
			deps := &mockDeps{submitErr: app.ErrDuplicate}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, body := postJSON(t, srv.URL+"/api/submit_stats", submitBody)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["message"], ShouldContainSubstring, "duplicate")
		})

		Convey("When the service fails unexpectedly", func() {
			deps := &mockDeps{submitErr: context.DeadlineExceeded}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, _ := postJSON(t, srv.URL+"/api/submit_stats", submitBody)
			So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When using the wrong method", func() {
			deps := &mockDeps{}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/api/submit_stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRankingEndpoint(t *testing.T) {
	Convey("Given the ranking endpoint", t, func() {
		Convey("When the key resolves", func() {
			deps := &mockDeps{rankingInfo: app.RankingInfo{
				Summary: gamify.Summary{
					TotalPoints:     2_340_000,
					AvgPercentDP:    0.91,
					Tier:            "Sapphire",
					Level:           1,
					FormattedPoints: "2.34M",
				},
				DisplayName: "Ada",
			}}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, body := postJSON(t, srv.URL+"/api/get_ranking_info", `{"api_key":"key-1"}`)

			Convey("Then the aggregate view is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["status"], ShouldEqual, "success")
				So(body["total_points"], ShouldEqual, 2_340_000)
				So(body["tier"], ShouldEqual, "Sapphire")
				So(body["formatted_points"], ShouldEqual, "2.34M")
				So(body["display_name"], ShouldEqual, "Ada")
			})
		})

		Convey("When the key is unknown", func() {
			deps := &mockDeps{rankingErr: app.ErrUnknownUser}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, _ := postJSON(t, srv.URL+"/api/get_ranking_info", `{"api_key":"bogus"}`)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the key is missing", func() {
			deps := &mockDeps{rankingErr: app.ErrMissingAPIKey}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, _ := postJSON(t, srv.URL+"/api/get_ranking_info", `{}`)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestConfigEndpoint(t *testing.T) {
	Convey("Given the config endpoint", t, func() {
		Convey("When the key resolves", func() {
			deps := &mockDeps{config: model.Credentials{
				Username:    "ada",
				ProfilePath: "/opt/stepmania",
				ProfileID:   "profile-ada",
			}}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, body := postJSON(t, srv.URL+"/api/get_config", `{"api_key":"key-1"}`)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(body["profile_path"], ShouldEqual, "/opt/stepmania")
			So(body["profile_id"], ShouldEqual, "profile-ada")
		})

		Convey("When the key is unknown", func() {
			deps := &mockDeps{configErr: app.ErrUnknownUser}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, _ := postJSON(t, srv.URL+"/api/get_config", `{"api_key":"bogus"}`)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given the leaderboard endpoint", t, func() {
		totals := []model.PlayerTotal{
			{Rank: 1, PlayerName: "Bob", TotalScore: 9000},
			{Rank: 2, PlayerName: "Ada", TotalScore: 5000},
		}

		Convey("When fetching without a limit", func() {
			deps := &mockDeps{totals: totals}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/leaderboard")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the configured maximum applies", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.requestedLimit, ShouldEqual, 100)

				var decoded []model.PlayerTotal
				So(json.NewDecoder(resp.Body).Decode(&decoded), ShouldBeNil)
				So(decoded, ShouldResemble, totals)
			})
		})

		Convey("When fetching with a valid limit", func() {
			deps := &mockDeps{totals: totals[:1]}
			srv := newTestServer(deps)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/leaderboard?limit=1")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(deps.requestedLimit, ShouldEqual, 1)
		})

		Convey("When the limit is malformed or out of range", func() {
			deps := &mockDeps{totals: totals}
			srv := newTestServer(deps)
			defer srv.Close()

			for _, q := range []string{"limit=abc", "limit=0", "limit=101"} {
				resp, err := http.Get(srv.URL + "/leaderboard?" + q)
				So(err, ShouldBeNil)
				resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			}
		})
	})
}
