package money_test

import (
	"math"
	"testing"

	"github.com/okian/finsim/internal/domain/money"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoundMonetary(t *testing.T) {
	Convey("Given fractional minor-unit amounts", t, func() {
		Convey("When the fraction is exactly one half", func() {
			Convey("Then it rounds to the nearest even integer", func() {
				So(money.RoundMonetary(0.5), ShouldEqual, 0)
				So(money.RoundMonetary(1.5), ShouldEqual, 2)
				So(money.RoundMonetary(2.5), ShouldEqual, 2)
				So(money.RoundMonetary(3.5), ShouldEqual, 4)
				So(money.RoundMonetary(-2.5), ShouldEqual, -2)
				So(money.RoundMonetary(-3.5), ShouldEqual, -4)
				So(money.RoundMonetary(100250.5), ShouldEqual, 100250)
			})
		})

		Convey("When the fraction is not a tie", func() {
			So(money.RoundMonetary(2.49), ShouldEqual, 2)
			So(money.RoundMonetary(2.51), ShouldEqual, 3)
			So(money.RoundMonetary(-2.51), ShouldEqual, -3)
			So(money.RoundMonetary(79.99999999999997), ShouldEqual, 80)
		})

		Convey("When the value is already integral", func() {
			So(money.RoundMonetary(0), ShouldEqual, 0)
			So(money.RoundMonetary(120000), ShouldEqual, 120000)
		})

		Convey("When the value is not finite", func() {
			So(money.RoundMonetary(math.NaN()), ShouldEqual, 0)
			So(money.RoundMonetary(math.Inf(1)), ShouldEqual, int64(math.MaxInt64))
			So(money.RoundMonetary(math.Inf(-1)), ShouldEqual, int64(math.MinInt64))
		})

		Convey("When a finite value does not fit in int64", func() {
			So(money.RoundMonetary(math.MaxFloat64), ShouldEqual, int64(math.MaxInt64))
			So(money.RoundMonetary(0x1p63), ShouldEqual, int64(math.MaxInt64))
			So(money.RoundMonetary(1e19), ShouldEqual, int64(math.MaxInt64))
			So(money.RoundMonetary(-1e19), ShouldEqual, int64(math.MinInt64))
			So(money.RoundMonetary(-math.MaxFloat64), ShouldEqual, int64(math.MinInt64))
		})

		Convey("When a value sits on the int64 bounds", func() {
			So(money.RoundMonetary(-0x1p63), ShouldEqual, int64(math.MinInt64))
			So(money.RoundMonetary(0x1p62), ShouldEqual, int64(1)<<62)
		})
	})
}

func TestPercent(t *testing.T) {
	Convey("Given an amount and a rate", t, func() {
		So(money.Percent(150000, 0.80), ShouldEqual, 120000)
		So(money.Percent(45000, 0.10), ShouldEqual, 4500)
		So(money.Percent(25, 0.10), ShouldEqual, 2) // 2.5 rounds to even

		Convey("When the product overflows", func() {
			So(money.Percent(9e18, 1.5), ShouldEqual, int64(math.MaxInt64))
			So(money.Percent(-9e18, 1.5), ShouldEqual, int64(math.MinInt64))
		})
	})
}

func TestFormatMinorUnits(t *testing.T) {
	Convey("Given amounts in minor units", t, func() {
		Convey("When the currency is a known ISO code with a symbol", func() {
			s := money.FormatMinorUnits(123456, "usd")
			So(s, ShouldStartWith, "$")
			So(s, ShouldContainSubstring, "1,234.56")
		})

		Convey("When the amount is negative", func() {
			So(money.FormatMinorUnits(-500, "USD"), ShouldStartWith, "-$")
		})

		Convey("When the amount exceeds float64 precision", func() {
			So(money.FormatMinorUnits(9007199254740993, "USD"), ShouldEqual, "$90,071,992,547,409.93")
			So(money.FormatMinorUnits(math.MaxInt64, "USD"), ShouldEqual, "$92,233,720,368,547,758.07")
		})

		Convey("When the amount is the smallest int64", func() {
			So(money.FormatMinorUnits(math.MinInt64, "USD"), ShouldEqual, "-$92,233,720,368,547,758.08")
			So(money.FormatMinorUnits(math.MinInt64, "JPY"), ShouldEqual, "-¥9,223,372,036,854,775,808")
		})

		Convey("When the minor part needs zero padding", func() {
			So(money.FormatMinorUnits(100005, "USD"), ShouldEqual, "$1,000.05")
			So(money.FormatMinorUnits(0, "USD"), ShouldEqual, "$0.00")
		})

		Convey("When the code is not an ISO currency", func() {
			Convey("Then the raw amount passes through with the code suffix", func() {
				So(money.FormatMinorUnits(1500, "coins"), ShouldEqual, "1500 coins")
			})
		})
	})
}
