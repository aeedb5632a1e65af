package anim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dotsprite/internal/anim"
	"github.com/san-kum/dotsprite/internal/grid"
)

// blinkTable switches a column on and back off: a closed two-step loop.
func blinkTable() anim.Table {
	col := []grid.Coord{grid.C(0, 0), grid.C(1, 0), grid.C(2, 0), grid.C(3, 0)}
	return anim.Table{
		{Add: col},
		{Remove: col},
	}
}

// walkTable moves a single dot right three times and back.
func walkTable() anim.Table {
	step := func(from, to int) grid.Delta {
		return grid.Delta{Remove: []grid.Coord{grid.C(0, from)}, Add: []grid.Coord{grid.C(0, to)}}
	}
	return anim.Table{step(0, 1), step(1, 2), step(2, 3), step(3, 0)}
}

var _ = Describe("Animator", func() {
	var initial []grid.Coord

	BeforeEach(func() {
		initial = []grid.Coord{grid.C(0, 0)}
	})

	Describe("construction", func() {
		It("starts running when animate is set", func() {
			a := anim.New(initial, walkTable(), true)
			Expect(a.Phase()).To(Equal(anim.Running))
			Expect(a.Cursor()).To(Equal(0))
			Expect(a.Len()).To(Equal(4))
			Expect(a.Snapshot()).To(Equal(initial))
		})

		It("stays idle forever when animate is off", func() {
			a := anim.New(initial, walkTable(), false)
			Expect(a.Phase()).To(Equal(anim.Stopped))
			for i := 0; i < 10; i++ {
				Expect(a.Tick()).To(BeFalse())
			}
			Expect(a.Snapshot()).To(Equal(initial))
			Expect(a.Cursor()).To(Equal(0))
		})

		It("treats an empty table as idle", func() {
			a := anim.New(initial, nil, true)
			Expect(a.Running()).To(BeFalse())
			Expect(a.Tick()).To(BeFalse())
		})

		It("does not alias the caller's initial slice", func() {
			a := anim.New(initial, walkTable(), true)
			initial[0] = grid.C(5, 5)
			Expect(a.Snapshot()).To(Equal([]grid.Coord{grid.C(0, 0)}))
		})
	})

	Describe("Tick", func() {
		It("applies the delta at the cursor and wraps", func() {
			a := anim.New(initial, walkTable(), true)

			Expect(a.Tick()).To(BeTrue())
			Expect(a.Snapshot()).To(Equal([]grid.Coord{grid.C(0, 1)}))
			Expect(a.Cursor()).To(Equal(1))

			a.Tick()
			a.Tick()
			Expect(a.Cursor()).To(Equal(3))
			Expect(a.Tick()).To(BeTrue())
			Expect(a.Cursor()).To(Equal(0))
			Expect(a.Snapshot()).To(Equal(initial))
		})

		It("returns to the initial pose after each full loop", func() {
			a := anim.New(nil, blinkTable(), true)
			for loop := 0; loop < 3; loop++ {
				for i := 0; i < a.Len(); i++ {
					a.Tick()
				}
				Expect(a.Snapshot()).To(BeEmpty())
				Expect(a.Cursor()).To(Equal(0))
			}
		})
	})

	Describe("RequestFreeze", func() {
		DescribeTable("stops on the loop boundary from any cursor",
			func(startTicks int) {
				a := anim.New(initial, walkTable(), true)
				for i := 0; i < startTicks; i++ {
					a.Tick()
				}
				a.RequestFreeze()
				Expect(a.FreezeRequested()).To(BeTrue())

				applied := 0
				for a.Running() {
					if a.Tick() {
						applied++
					}
					Expect(applied).To(BeNumerically("<=", a.Len()))
				}

				Expect(applied).To(Equal((a.Len() - startTicks%a.Len()) % a.Len()))
				Expect(a.Phase()).To(Equal(anim.Stopped))
				Expect(a.Cursor()).To(Equal(0))
				Expect(a.Snapshot()).To(Equal(initial))
			},
			Entry("cursor 0", 0),
			Entry("cursor 1", 1),
			Entry("cursor 3", 3),
			Entry("after a full loop and one", 5),
		)

		It("emits no mutation on the stopping tick", func() {
			a := anim.New(initial, walkTable(), true)
			a.RequestFreeze()
			Expect(a.Tick()).To(BeFalse())
			Expect(a.Phase()).To(Equal(anim.Stopped))
			Expect(a.Snapshot()).To(Equal(initial))
		})

		It("is idempotent", func() {
			once := anim.New(initial, walkTable(), true)
			many := anim.New(initial, walkTable(), true)
			once.Tick()
			many.Tick()

			once.RequestFreeze()
			many.RequestFreeze()
			many.RequestFreeze()
			many.RequestFreeze()

			for i := 0; i < 10; i++ {
				Expect(many.Tick()).To(Equal(once.Tick()))
				Expect(many.Snapshot()).To(Equal(once.Snapshot()))
				Expect(many.Phase()).To(Equal(once.Phase()))
			}
		})

		It("never resumes once stopped", func() {
			a := anim.New(initial, walkTable(), true)
			a.RequestFreeze()
			a.Tick()
			for i := 0; i < 8; i++ {
				Expect(a.Tick()).To(BeFalse())
			}
			Expect(a.Phase().String()).To(Equal("stopped"))
		})
	})
})

var _ = Describe("Ticker", func() {
	It("delivers ticks until stopped", func() {
		t := anim.NewTicker(time.Millisecond)
		defer t.Stop()
		Eventually(t.C()).Should(Receive())
	})

	It("tolerates repeated Stop calls", func() {
		t := anim.NewTicker(0)
		t.Stop()
		Expect(t.Stop).NotTo(Panic())
		Expect(t.Done()).To(BeClosed())
	})
})
