package domain

import (
	"time"
)

// NotFound é o sentinela devolvido pelas consultas de alocação quando nenhum armazém se qualifica.
// Não é um erro: distingue "pedido válido sem resposta" de "pedido inválido".
const NotFound = -1

// ThreeDRoom descreve um volume retangular (altura x largura x comprimento).
// É usado tanto para a capacidade total de um armazém quanto para o espaço ocupado por um item.
type ThreeDRoom struct {
	Height float64 `json:"height" example:"10"`
	Width  float64 `json:"width" example:"10"`
	Length float64 `json:"length" example:"10"`
}

// Volume retorna altura * largura * comprimento.
func (r ThreeDRoom) Volume() float64 {
	return r.Height * r.Width * r.Length
}

// IsValid indica se todas as dimensões são estritamente positivas.
func (r ThreeDRoom) IsValid() bool {
	return r.Height > 0 && r.Width > 0 && r.Length > 0
}

// Item representa uma reserva de espaço dentro de um armazém para um intervalo de datas.
// O item ocupa todo o seu volume em cada dia de StartDate até EndDate (inclusive) enquanto IsActive.
type Item struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Dimensions ThreeDRoom `json:"dimensions"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Volume retorna o volume ocupado pelo item.
func (i Item) Volume() float64 {
	return i.Dimensions.Volume()
}

// ActiveOn indica se o item contribui para a ocupação no dia informado.
// A comparação é feita no nível de dia de calendário.
func (i Item) ActiveOn(day time.Time) bool {
	if !i.IsActive {
		return false
	}
	d := Day(day)
	return !d.Before(Day(i.StartDate)) && !d.After(Day(i.EndDate))
}

// Warehouse representa um armazém físico com capacidade volumétrica e os itens alocados nele.
type Warehouse struct {
	ID        int        `json:"id" example:"1"`
	Name      string     `json:"name" example:"Armazém Central"`
	Capacity  ThreeDRoom `json:"capacity"`
	Items     []Item     `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Volume retorna a capacidade total do armazém.
func (w Warehouse) Volume() float64 {
	return w.Capacity.Volume()
}

// OccupiedOn soma o volume de todos os itens ativos no dia informado.
func (w Warehouse) OccupiedOn(day time.Time) float64 {
	volume := 0.0
	for _, item := range w.Items {
		if item.ActiveOn(day) {
			volume += item.Volume()
		}
	}
	return volume
}

// UsageBetween soma a ocupação diária (volume-dias) entre start e end, inclusive.
func (w Warehouse) UsageBetween(start, end time.Time) float64 {
	usage := 0.0
	for day := range Days(start, end) {
		usage += w.OccupiedOn(day)
	}
	return usage
}

// DailyCapacity é uma entrada do resultado de capacidade disponível.
// Available pode ser negativo quando o dia está com excesso de reservas.
type DailyCapacity struct {
	Date      time.Time `json:"date"`
	Available float64   `json:"available"`
}
