package domain

import (
	"iter"
	"time"
)

// DateLayout é o formato de data aceito e produzido pela API (dia de calendário).
const DateLayout = "2006-01-02"

// Day descarta a parte de horário de t e retorna a data de calendário à meia-noite UTC.
// Ano, mês e dia são lidos no fuso de t, então 2025-01-10T23:30-03:00 continua sendo 2025-01-10.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days gera cada dia de calendário de start até end, inclusive.
// A sequência é preguiçosa e pode ser percorrida mais de uma vez; se start for depois de end ela é vazia.
func Days(start, end time.Time) iter.Seq[time.Time] {
	first, last := Day(start), Day(end)
	return func(yield func(time.Time) bool) {
		for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
			if !yield(day) {
				return
			}
		}
	}
}

// ParseDay converte uma string YYYY-MM-DD em dia de calendário.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// DaysBetween conta os dias de calendário de start até end, inclusive. Retorna 0 se start for depois de end.
func DaysBetween(start, end time.Time) int {
	first, last := Day(start), Day(end)
	if first.After(last) {
		return 0
	}
	// Unix evita a saturação de time.Duration em intervalos de séculos.
	return int((last.Unix()-first.Unix())/(24*60*60)) + 1
}
