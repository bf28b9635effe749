package domain

type ProductionMetrics struct {
	DailyProduction int     `json:"dailyProduction"`
	Efficiency      float64 `json:"efficiency"`
	AverageTime     float64 `json:"averageTime"`
}

type ProductionState struct {
	Inventory      int               `json:"inventory"`
	CurrentOrder   *Order            `json:"currentOrder"`
	IsProducing    bool              `json:"isProducing"`
	ProducedAmount int               `json:"producedAmount"`
	Metrics        ProductionMetrics `json:"metrics"`
}

// Clone returns a deep copy, the current order included.
func (s ProductionState) Clone() ProductionState {
	s.CurrentOrder = s.CurrentOrder.Clone()
	return s
}
