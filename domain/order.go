package domain

import "lemonworks/domain/state"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

const (
	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
)

// OrderStateMachine describes how the server moves an order through its statuses.
var OrderStateMachine = state.NewStateMachine(
	[]state.State{
		{Name: OrderPending, Category: state.InBacklog},
		{Name: OrderInProgress, Category: state.InProcess},
		{Name: OrderCompleted, Category: state.Done},
	},
	[]state.Transition{
		{Name: "begin", From: state.State{Name: OrderPending, Category: state.InBacklog}, To: state.State{Name: OrderInProgress, Category: state.InProcess}},
		{Name: "pause", From: state.State{Name: OrderInProgress, Category: state.InProcess}, To: state.State{Name: OrderPending, Category: state.InBacklog}},
		{Name: "finish", From: state.State{Name: OrderInProgress, Category: state.InProcess}, To: state.State{Name: OrderCompleted, Category: state.Done}},
	})

// Order is a customer production request. The client never mutates it.
type Order struct {
	ID       ID       `json:"id"`
	Client   string   `json:"client"`
	Quantity int      `json:"quantity"`
	DueDate  string   `json:"dueDate"`
	Priority Priority `json:"priority"`
	Status   string   `json:"status"`
}

// Selectable reports whether the order may become the current order.
// Orders without a status are treated as pending.
func (o *Order) Selectable() bool {
	if o.Status == "" {
		return true
	}
	s, found := OrderStateMachine.FindState(o.Status)
	return found && s.Category != state.Done
}

// Resumable reports whether a "continue" action applies to the order.
func (o *Order) Resumable() bool {
	return len(OrderStateMachine.AvailableTransitions(o.Status, OrderCompleted)) > 0
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
