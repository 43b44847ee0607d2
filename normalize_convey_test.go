package qdd

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeVectorBehavior(t *testing.T) {
	Convey("Given a fresh complex-number arena", t, func() {
		cn := newComplexNumbers(1e-9, 32, 1000)

		Convey("When one outgoing edge carries a unit-norm weight and the other is zero", func() {
			half := cn.getCachedValues(0.6, 0.8)
			edges := []Edge{
				{Node: TerminalNode, Weight: half},
				{Node: TerminalNode, Weight: cn.getCachedValues(0, 0)},
			}

			Convey("It should not collapse to all-zero", func() {
				result := normalizeVector(cn, edges, true)
				So(result.allZero, ShouldBeFalse)
			})

			Convey("Its outward weight should carry the full norm", func() {
				result := normalizeVector(cn, edges, true)
				So(cn.normSq(result.outWeight), ShouldAlmostEqual, 1, 1e-9)
			})
		})

		Convey("When both outgoing edges are zero", func() {
			edges := []Edge{zeroEdge(), zeroEdge()}

			Convey("It should collapse to all-zero", func() {
				result := normalizeVector(cn, edges, true)
				So(result.allZero, ShouldBeTrue)
			})
		})
	})
}
