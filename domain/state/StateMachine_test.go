package state_test

import (
	"lemonworks/domain/state"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("StateMachine", func() {
	var (
		stateMachine *state.StateMachine
		pending      = state.State{Name: "pending", Category: state.InBacklog}
		inProgress   = state.State{Name: "in_progress", Category: state.InProcess}
		completed    = state.State{Name: "completed", Category: state.Done}
	)

	BeforeEach(func() {
		//              pending      in_progress   completed
		// pending      -            V (begin)     X
		// in_progress  V (pause)    -             V (finish)
		// completed    X            X             -
		stateMachine = state.NewStateMachine(
			[]state.State{pending, inProgress, completed},
			[]state.Transition{
				{Name: "begin", From: pending, To: inProgress},
				{Name: "pause", From: inProgress, To: pending},
				{Name: "finish", From: inProgress, To: completed},
			})
	})

	Describe("NewStateMachine", func() {
		It("should create new State Machine successfully", func() {
			Expect(stateMachine).NotTo(BeZero())
			Expect(stateMachine.States).Should(Equal([]state.State{pending, inProgress, completed}))
			Expect(len(stateMachine.Transitions)).Should(Equal(3))
		})
	})

	Describe("AvailableTransitions", func() {
		It("should return transitions leaving a state", func() {
			Ω(stateMachine.AvailableTransitions("pending", "")).Should(Equal([]state.Transition{
				{Name: "begin", From: pending, To: inProgress},
			}))
			Ω(stateMachine.AvailableTransitions("in_progress", "")).Should(Equal([]state.Transition{
				{Name: "pause", From: inProgress, To: pending},
				{Name: "finish", From: inProgress, To: completed},
			}))
			Ω(len(stateMachine.AvailableTransitions("completed", ""))).Should(Equal(0))
			Ω(len(stateMachine.AvailableTransitions("unknown", ""))).Should(Equal(0))
		})

		It("should filter by target state", func() {
			Ω(stateMachine.AvailableTransitions("", "completed")).Should(Equal([]state.Transition{
				{Name: "finish", From: inProgress, To: completed},
			}))
			Ω(len(stateMachine.AvailableTransitions("pending", "completed"))).Should(Equal(0))
		})
	})

	Describe("FindState", func() {
		It("should find known states only", func() {
			s, found := stateMachine.FindState("in_progress")
			Expect(found).To(BeTrue())
			Expect(s).To(Equal(inProgress))

			_, found = stateMachine.FindState("cancelled")
			Expect(found).To(BeFalse())
		})
	})
})
