// Package report implementa el motor analítico de ventas: resolución de
// periodos, filtrado de pedidos, agregación financiera, rankings y análisis de
// ajustes de inventario. Todas las funciones son puras y operan sobre copias
// locales; ningún estado se comparte entre invocaciones.
package report

import (
	"fmt"
	"time"

	"github.com/jhoicas/Tpv-api/internal/domain"
)

// Period selector de rango temporal de un informe.
type Period string

const (
	PeriodLast7d  Period = "last7d"
	PeriodLast30d Period = "last30d"
	PeriodLast3m  Period = "last3m"
	PeriodLast6m  Period = "last6m"
	PeriodLast1y  Period = "last1y"
	PeriodCustom  Period = "custom"
)

// duraciones fijas en días por selector.
var fixedDays = map[Period]int{
	PeriodLast7d:  7,
	PeriodLast30d: 30,
	PeriodLast3m:  90,
	PeriodLast6m:  180,
	PeriodLast1y:  365,
}

// DateRange rango temporal resuelto, ambos extremos incluidos.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ResolvePeriod traduce el selector a un rango concreto. Para los periodos
// fijos, To = ahora y From = ahora − N días. Para custom ambos extremos son
// obligatorios y From no puede superar a To.
func ResolvePeriod(now time.Time, p Period, customFrom, customTo *time.Time) (DateRange, error) {
	if days, ok := fixedDays[p]; ok {
		return DateRange{From: now.AddDate(0, 0, -days), To: now}, nil
	}
	if p != PeriodCustom {
		return DateRange{}, fmt.Errorf("%w: periodo %q desconocido", domain.ErrInvalidRange, p)
	}
	if customFrom == nil || customTo == nil {
		return DateRange{}, fmt.Errorf("%w: el periodo custom exige ambos extremos", domain.ErrInvalidRange)
	}
	if customFrom.After(*customTo) {
		return DateRange{}, fmt.Errorf("%w: from %s posterior a to %s",
			domain.ErrInvalidRange, customFrom.Format(time.RFC3339), customTo.Format(time.RFC3339))
	}
	return DateRange{From: *customFrom, To: *customTo}, nil
}
