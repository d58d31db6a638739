package domain

// CreateWarehouseRequest é o payload para cadastrar um armazém no registro.
// O ID é atribuído pelo chamador e define a identidade usada nas consultas de capacidade.
type CreateWarehouseRequest struct {
	ID       int        `json:"id" example:"1"`
	Name     string     `json:"name" example:"Armazém Central"`
	Capacity ThreeDRoom `json:"capacity"`
}

// AddItemRequest é o payload para alocar um item em um armazém.
// As datas usam o formato YYYY-MM-DD.
type AddItemRequest struct {
	ID         int        `json:"id" example:"10"`
	Name       string     `json:"name" example:"Pallet de grãos"`
	Dimensions ThreeDRoom `json:"dimensions"`
	StartDate  string     `json:"start_date" example:"2025-01-10"`
	EndDate    string     `json:"end_date" example:"2025-01-12"`
}

// AvailableWarehouseResponse é a resposta da busca de armazém disponível.
// WarehouseID vale -1 quando nenhum armazém comporta o item.
type AvailableWarehouseResponse struct {
	WarehouseID int  `json:"warehouse_id"`
	Found       bool `json:"found"`
}

// LeastUsedWarehouseResponse é a resposta da consulta de armazém menos usado.
type LeastUsedWarehouseResponse struct {
	WarehouseID int  `json:"warehouse_id"`
	Found       bool `json:"found"`
}

// FullyUtilizedResponse lista os dias totalmente utilizados (YYYY-MM-DD).
type FullyUtilizedResponse struct {
	Dates []string `json:"dates"`
}

// AvailableCapacityEntry é uma linha da resposta de capacidade disponível.
type AvailableCapacityEntry struct {
	Date      string  `json:"date" example:"2025-01-10"`
	Available float64 `json:"available" example:"60"`
}
