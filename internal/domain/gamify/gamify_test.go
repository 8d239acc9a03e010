package gamify_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/stepstats/internal/domain/gamify"
)

func TestTier(t *testing.T) {
	Convey("Given the tier step function", t, func() {
		Convey("Then averages map to their gemstone tiers", func() {
			So(gamify.Tier(0.0), ShouldEqual, gamify.TierQuartz)
			So(gamify.Tier(0.69), ShouldEqual, gamify.TierQuartz)
			So(gamify.Tier(0.70), ShouldEqual, gamify.TierAmethyst)
			So(gamify.Tier(0.74), ShouldEqual, gamify.TierAmethyst)
			So(gamify.Tier(0.75), ShouldEqual, gamify.TierTopaz)
			So(gamify.Tier(0.80), ShouldEqual, gamify.TierEmerald)
			So(gamify.Tier(0.85), ShouldEqual, gamify.TierRuby)
			So(gamify.Tier(0.90), ShouldEqual, gamify.TierSapphire)
			So(gamify.Tier(0.9499), ShouldEqual, gamify.TierSapphire)
			So(gamify.Tier(0.95), ShouldEqual, gamify.TierDiamond)
			So(gamify.Tier(1.0), ShouldEqual, gamify.TierDiamond)
		})

		Convey("Then a profile with no records lands in the lowest tier", func() {
			// No rows means the average is reported as zero.
			So(gamify.Tier(0), ShouldEqual, gamify.TierQuartz)
		})
	})
}

func TestLevel(t *testing.T) {
	Convey("Given the level progression function", t, func() {
		Convey("Then every ten million points is one level", func() {
			So(gamify.Level(0), ShouldEqual, 1)
			So(gamify.Level(9_999_999), ShouldEqual, 1)
			So(gamify.Level(10_000_000), ShouldEqual, 2)
			So(gamify.Level(25_000_001), ShouldEqual, 3)
		})

		Convey("Then the level never drops below one", func() {
			So(gamify.Level(-5), ShouldEqual, 1)
		})
	})
}

func TestFormatPoints(t *testing.T) {
	Convey("Given the point formatter", t, func() {
		Convey("Then small totals render as plain integers", func() {
			So(gamify.FormatPoints(0), ShouldEqual, "0")
			So(gamify.FormatPoints(950), ShouldEqual, "950")
			So(gamify.FormatPoints(999), ShouldEqual, "999")
		})

		Convey("Then thousands render with one decimal and a K", func() {
			So(gamify.FormatPoints(1_000), ShouldEqual, "1.0K")
			So(gamify.FormatPoints(1_500), ShouldEqual, "1.5K")
			So(gamify.FormatPoints(999_999), ShouldEqual, "1000.0K")
		})

		Convey("Then millions render with two decimals and an M", func() {
			So(gamify.FormatPoints(1_000_000), ShouldEqual, "1.00M")
			So(gamify.FormatPoints(2_340_000), ShouldEqual, "2.34M")
			So(gamify.FormatPoints(25_000_001), ShouldEqual, "25.00M")
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given the aggregate summarizer", t, func() {
		Convey("When summarizing a mid-tier profile", func() {
			s := gamify.Summarize(12_345_678, 0.88)

			Convey("Then every derived metric is consistent", func() {
				So(s.TotalPoints, ShouldEqual, 12_345_678)
				So(s.AvgPercentDP, ShouldEqual, 0.88)
				So(s.Tier, ShouldEqual, gamify.TierRuby)
				So(s.Level, ShouldEqual, 2)
				So(s.FormattedPoints, ShouldEqual, "12.35M")
			})
		})

		Convey("When summarizing an empty profile", func() {
			s := gamify.Summarize(0, 0)

			Convey("Then everything reports the floor values", func() {
				So(s.TotalPoints, ShouldEqual, 0)
				So(s.Tier, ShouldEqual, gamify.TierQuartz)
				So(s.Level, ShouldEqual, 1)
				So(s.FormattedPoints, ShouldEqual, "0")
			})
		})

		Convey("Then repeated calls give identical results", func() {
			So(gamify.Summarize(5_000, 0.72), ShouldResemble, gamify.Summarize(5_000, 0.72))
		})
	})
}
