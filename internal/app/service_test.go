package app_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/stepstats/internal/adapters/repository"
	"github.com/okian/stepstats/internal/app"
	"github.com/okian/stepstats/internal/domain/model"
	"github.com/okian/stepstats/pkg/logger"
)

func newTestService(store *repository.MemStore) *app.Service {
	_ = logger.Init()
	return app.New(
		app.WithLogger(logger.Get()),
		app.WithScoreStore(store),
		app.WithCredentialStore(store),
	)
}

func validSubmission() model.Submission {
	return model.Submission{
		SongDir:    "Songs/Pack/Anthem",
		Difficulty: "Challenge",
		StepsType:  "dance-single",
		Grade:      "Tier02",
		Score:      120_000,
		PercentDP:  0.93,
		MaxCombo:   250,
		DateTime:   "2025-05-01 20:15:00",
		PlayerGUID: "guid-ada",
		PlayerName: "Ada",
	}
}

func TestService_SubmitScore(t *testing.T) {
	Convey("Given a started service with one configured user", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		key := store.AddUser("ada", "/opt/stepmania", "profile-ada")
		svc := newTestService(store)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When submitting a valid score", func() {
			err := svc.SubmitScore(ctx, key, validSubmission())

			Convey("Then it is accepted and stored against the profile", func() {
				So(err, ShouldBeNil)
				total, _, aggErr := store.ProfileAggregate(ctx, "profile-ada")
				So(aggErr, ShouldBeNil)
				So(total, ShouldEqual, 120_000)
			})
		})

		Convey("When the api key is missing", func() {
			err := svc.SubmitScore(ctx, "  ", validSubmission())
			So(err, ShouldEqual, app.ErrMissingAPIKey)
			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("When the api key resolves to nobody", func() {
			err := svc.SubmitScore(ctx, "bogus-key", validSubmission())
			So(err, ShouldEqual, app.ErrUnauthorized)
			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("When the user has no profile configured", func() {
			bare, err := store.CreateUser(ctx, "bob", "pw")
			So(err, ShouldBeNil)
			So(svc.SubmitScore(ctx, bare, validSubmission()), ShouldEqual, app.ErrNoProfile)
		})

		Convey("When several fields are missing", func() {
			sub := validSubmission()
			sub.SongDir = ""
			sub.Score = 0
			sub.PlayerName = ""
			err := svc.SubmitScore(ctx, key, sub)

			Convey("Then every violation is named in one error", func() {
				verr, ok := err.(*app.ValidationError)
				So(ok, ShouldBeTrue)
				So(verr.Fields, ShouldResemble, []string{"song_dir", "score", "player_name"})
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When percent_dp is outside its domain", func() {
			sub := validSubmission()
			sub.PercentDP = 1.2
			err := svc.SubmitScore(ctx, key, sub)

			verr, ok := err.(*app.ValidationError)
			So(ok, ShouldBeTrue)
			So(verr.Fields, ShouldResemble, []string{"percent_dp"})
		})

		Convey("When resubmitting into an occupied bucket", func() {
			So(svc.SubmitScore(ctx, key, validSubmission()), ShouldBeNil)

			Convey("Then an equal score is a duplicate and writes nothing", func() {
				err := svc.SubmitScore(ctx, key, validSubmission())
				So(err, ShouldEqual, app.ErrDuplicate)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then a lower score is a duplicate", func() {
				sub := validSubmission()
				sub.Score = 90_000
				So(svc.SubmitScore(ctx, key, sub), ShouldEqual, app.ErrDuplicate)
			})

			Convey("Then a better score lands as an additional row", func() {
				sub := validSubmission()
				sub.Score = 150_000
				So(svc.SubmitScore(ctx, key, sub), ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 2)

				total, _, err := store.ProfileAggregate(ctx, "profile-ada")
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 270_000) // both rows count
			})
		})
	})
}

func TestService_RankingInfo(t *testing.T) {
	Convey("Given a service with stored scores", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		key := store.AddUser("ada", "", "profile-ada")
		svc := newTestService(store)
		So(svc.Start(ctx), ShouldBeNil)

		sub := validSubmission()
		sub.PercentDP = 0.96
		So(svc.SubmitScore(ctx, key, sub), ShouldBeNil)

		Convey("When fetching ranking info", func() {
			info, err := svc.RankingInfo(ctx, key)

			Convey("Then aggregates and derived metrics line up", func() {
				So(err, ShouldBeNil)
				So(info.TotalPoints, ShouldEqual, 120_000)
				So(info.AvgPercentDP, ShouldAlmostEqual, 0.96, 1e-9)
				So(info.Tier, ShouldEqual, "Diamond")
				So(info.Level, ShouldEqual, 1)
				So(info.FormattedPoints, ShouldEqual, "120.0K")
				// No display-name file configured; the id passes through.
				So(info.DisplayName, ShouldEqual, "profile-ada")
			})
		})

		Convey("When the key is unknown", func() {
			_, err := svc.RankingInfo(ctx, "bogus")
			So(err, ShouldEqual, app.ErrUnknownUser)
		})

		Convey("When the key is missing", func() {
			_, err := svc.RankingInfo(ctx, "")
			So(err, ShouldEqual, app.ErrMissingAPIKey)
		})

		Convey("When the profile has no rows", func() {
			empty := store.AddUser("carl", "", "profile-carl")
			info, err := svc.RankingInfo(ctx, empty)

			Convey("Then everything reports the floor values", func() {
				So(err, ShouldBeNil)
				So(info.TotalPoints, ShouldEqual, 0)
				So(info.Tier, ShouldEqual, "Quartz")
				So(info.Level, ShouldEqual, 1)
				So(info.FormattedPoints, ShouldEqual, "0")
			})
		})
	})
}

func TestService_StoredConfig(t *testing.T) {
	Convey("Given a service with a configured user", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		key := store.AddUser("ada", "/opt/stepmania", "profile-ada")
		svc := newTestService(store)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then the stored configuration is returned", func() {
			creds, err := svc.StoredConfig(ctx, key)
			So(err, ShouldBeNil)
			So(creds.ProfilePath, ShouldEqual, "/opt/stepmania")
			So(creds.ProfileID, ShouldEqual, "profile-ada")
		})

		Convey("Then an unknown key is not found", func() {
			_, err := svc.StoredConfig(ctx, "bogus")
			So(err, ShouldEqual, app.ErrUnknownUser)
		})
	})
}

func TestService_Leaderboard(t *testing.T) {
	Convey("Given a service with scores from several players", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		key := store.AddUser("ada", "", "profile-ada")
		svc := newTestService(store)
		So(svc.Start(ctx), ShouldBeNil)

		players := []struct {
			guid  string
			name  string
			score int64
		}{
			{"g1", "Ada", 5000},
			{"g2", "Bob", 9000},
			{"g3", "Cleo", 7000},
		}
		for _, p := range players {
			sub := validSubmission()
			sub.PlayerGUID = p.guid
			sub.PlayerName = p.name
			sub.Score = p.score
			So(svc.SubmitScore(ctx, key, sub), ShouldBeNil)
		}

		Convey("Then totals come back best first", func() {
			totals, err := svc.Leaderboard(ctx, 0)
			So(err, ShouldBeNil)
			So(totals, ShouldHaveLength, 3)
			So(totals[0].PlayerName, ShouldEqual, "Bob")
			So(totals[1].PlayerName, ShouldEqual, "Cleo")
			So(totals[2].PlayerName, ShouldEqual, "Ada")
		})

		Convey("Then a positive limit truncates the result", func() {
			totals, err := svc.Leaderboard(ctx, 2)
			So(err, ShouldBeNil)
			So(totals, ShouldHaveLength, 2)
			So(totals[0].PlayerName, ShouldEqual, "Bob")
		})
	})
}
