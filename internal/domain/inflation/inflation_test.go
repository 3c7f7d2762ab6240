package inflation_test

import (
	"math"
	"testing"

	"github.com/okian/finsim/internal/domain/inflation"
	"github.com/okian/finsim/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMonthlyInflation(t *testing.T) {
	Convey("Given a 3% annual rate", t, func() {
		Convey("Then the monthly rate is a twelfth of it", func() {
			So(inflation.AnnualToMonthly(0.03), ShouldAlmostEqual, 0.0025, 1e-12)
		})

		Convey("When applying one month to 1000.00", func() {
			So(inflation.ApplyMonthly(100000, 0.03), ShouldEqual, 100250)
		})

		Convey("When compounding for a year", func() {
			got := inflation.ApplyCumulative(100000, 0.03, 12)
			So(got, ShouldBeBetweenOrEqual, 103041, 103043)
		})

		Convey("When compounding for zero or negative months", func() {
			for _, base := range []int64{0, 1, 99999, -500} {
				So(inflation.ApplyCumulative(base, 0.03, 0), ShouldEqual, base)
				So(inflation.ApplyCumulative(base, 0.05, -4), ShouldEqual, base)
			}
		})

		Convey("When compounding far past the int64 range", func() {
			So(inflation.ApplyCumulative(1e12, 0.05, 6000), ShouldEqual, int64(math.MaxInt64))
		})

		Convey("Then the raw factor is unrounded", func() {
			So(inflation.CumulativeFactor(0.03, 12), ShouldAlmostEqual, 1.030415957, 1e-9)
			So(inflation.CumulativeFactor(0.03, 0), ShouldEqual, 1.0)
		})
	})
}

func TestInflateRecurringBills(t *testing.T) {
	Convey("Given a list of recurring bills", t, func() {
		bills := []inflation.Bill{
			{Name: "rent", Amount: 150000},
			{Name: "phone", Amount: 4000},
		}

		out := inflation.InflateRecurringBills(bills, 0.03)

		Convey("Then every amount is inflated in order", func() {
			So(out, ShouldResemble, []inflation.Bill{
				{Name: "rent", Amount: 150375},
				{Name: "phone", Amount: 4010},
			})
		})

		Convey("And the input slice is untouched", func() {
			So(bills[0].Amount, ShouldEqual, 150000)
			So(bills[1].Amount, ShouldEqual, 4000)
		})

		Convey("And an empty input yields an empty result", func() {
			So(inflation.InflateRecurringBills(nil, 0.03), ShouldBeEmpty)
		})
	})
}

func TestRateFor(t *testing.T) {
	Convey("Given the difficulty rate table", t, func() {
		So(inflation.RateFor(types.DifficultyEasy), ShouldEqual, 0.015)
		So(inflation.RateFor(types.DifficultyNormal), ShouldEqual, 0.03)
		So(inflation.RateFor(types.DifficultyHard), ShouldEqual, 0.05)
		So(inflation.RateFor(types.ParseDifficulty("unknown")), ShouldEqual, 0.03)

		Convey("When the table is overridden", func() {
			table := inflation.Table{Easy: 0.01, Normal: 0.02, Hard: 0.08}
			So(table.Rate(types.DifficultyHard), ShouldEqual, 0.08)
			So(table.Rate(types.Difficulty("bogus")), ShouldEqual, 0.02)
		})
	})
}
