package domain

import "time"

// UtilizationReport resume a ocupação prevista dos armazéns para um horizonte de dias.
type UtilizationReport struct {
	ID                 string          `json:"id" bson:"_id"`
	GeneratedAt        time.Time       `json:"generated_at" bson:"generated_at"`
	StartDate          time.Time       `json:"start_date" bson:"start_date"`
	EndDate            time.Time       `json:"end_date" bson:"end_date"`
	WarehouseCount     int             `json:"warehouse_count" bson:"warehouse_count"`
	TotalCapacity      float64         `json:"total_capacity" bson:"total_capacity"`
	Daily              []DailyCapacity `json:"daily" bson:"daily"`
	FullyUtilizedDates []time.Time     `json:"fully_utilized_dates" bson:"fully_utilized_dates"`
	OverbookedDates    []time.Time     `json:"overbooked_dates" bson:"overbooked_dates"`
	LeastUsedWarehouse int             `json:"least_used_warehouse" bson:"least_used_warehouse"`
}
