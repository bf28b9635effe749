package domain

type LineWorker struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	UID              string `json:"uid"`
	ProductionLineID int    `json:"fk_production_line"`
}

type ProductionLine struct {
	ID               int          `json:"id"`
	LiquidCapacity   float64      `json:"liquid_capacity"`
	SolidCapacity    float64      `json:"solid_capacity"`
	ProductionFactor float64      `json:"production_factor"`
	Workers          []LineWorker `json:"workers"`
}

type LineStatus string

const (
	LineOperating   LineStatus = "operating"
	LineMaintenance LineStatus = "maintenance"
	LineAttention   LineStatus = "attention"
)

func (l *ProductionLine) Status() LineStatus {
	switch {
	case l.LiquidCapacity > 0:
		return LineOperating
	case l.LiquidCapacity == 0:
		return LineMaintenance
	default:
		return LineAttention
	}
}
