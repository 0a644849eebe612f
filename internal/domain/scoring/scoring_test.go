package scoring_test

import (
	"testing"

	scoring "github.com/okian/stride/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer with the default policy", t, func() {
		scorer, err := scoring.New()
		So(err, ShouldBeNil)

		Convey("When scoring below the baseline", func() {
			Convey("Then the score equals the raw steps", func() {
				So(scorer.Score(0), ShouldEqual, 0)
				So(scorer.Score(1), ShouldEqual, 1)
				So(scorer.Score(4500), ShouldEqual, 4500)
				So(scorer.Score(7999), ShouldEqual, 7999)
			})
		})

		Convey("When scoring exactly at the baseline", func() {
			Convey("Then the score jumps to the ramp base", func() {
				// Crossing 8000 jumps the score by 8001, which is the
				// intended incentive cliff, not a smooth transition.
				So(scorer.Score(8000), ShouldEqual, 16000)
			})
		})

		Convey("When scoring on the ramp", func() {
			Convey("Then the score is ramp base plus the excess over baseline", func() {
				So(scorer.Score(8001), ShouldEqual, 16001)
				So(scorer.Score(10000), ShouldEqual, 18000)
				So(scorer.Score(14999), ShouldEqual, 22999)
			})
		})

		Convey("When scoring at or past the cap threshold", func() {
			Convey("Then the score saturates at the cap", func() {
				So(scorer.Score(15000), ShouldEqual, 23000)
				So(scorer.Score(15001), ShouldEqual, 23000)
				So(scorer.Score(40000), ShouldEqual, 23000)
				So(scorer.Score(1_000_000), ShouldEqual, 23000)
			})
		})

		Convey("When scoring the same input twice", func() {
			Convey("Then both calls return the same value", func() {
				So(scorer.Score(9137), ShouldEqual, scorer.Score(9137))
			})
		})

		Convey("When walking the whole sub-cap domain", func() {
			Convey("Then the score never decreases", func() {
				prev := scorer.Score(0)
				for steps := 1; steps < 15000; steps++ {
					cur := scorer.Score(steps)
					So(cur, ShouldBeGreaterThanOrEqualTo, prev)
					prev = cur
				}
			})
		})
	})
}

func TestScorer_Options(t *testing.T) {
	Convey("Given scorer construction with options", t, func() {
		Convey("When overriding the whole policy", func() {
			scorer, err := scoring.New(scoring.WithPolicy(scoring.Policy{
				BaselineMax:  5000,
				CapThreshold: 10000,
				RampBase:     9000,
				CapScore:     14000,
			}))

			Convey("Then the new tiers apply", func() {
				So(err, ShouldBeNil)
				So(scorer.Score(4999), ShouldEqual, 4999)
				So(scorer.Score(5000), ShouldEqual, 9000)
				So(scorer.Score(9999), ShouldEqual, 13999)
				So(scorer.Score(10000), ShouldEqual, 14000)
				So(scorer.Baseline(), ShouldEqual, 5000)
			})
		})

		Convey("When the cap threshold does not exceed the baseline", func() {
			_, err := scoring.New(scoring.WithPolicy(scoring.Policy{
				BaselineMax:  9000,
				CapThreshold: 9000,
			}))

			Convey("Then construction fails with ErrInvalidPolicy", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "invalid scoring policy")
			})
		})

		Convey("When the ramp base is below the baseline", func() {
			_, err := scoring.New(scoring.WithPolicy(scoring.Policy{
				BaselineMax: 8000,
				RampBase:    7000,
			}))

			Convey("Then construction fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When using WithBaseline and WithCap", func() {
			scorer, err := scoring.New(
				scoring.WithBaseline(6000),
				scoring.WithCap(12000, 23000),
			)

			Convey("Then the boundaries move accordingly", func() {
				So(err, ShouldBeNil)
				So(scorer.Score(5999), ShouldEqual, 5999)
				So(scorer.Score(6000), ShouldEqual, 16000)
				So(scorer.Score(11999), ShouldEqual, 21999)
				So(scorer.Score(12000), ShouldEqual, 23000)
			})
		})
	})
}
