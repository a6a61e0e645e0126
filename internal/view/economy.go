package view

import (
	"context"
	"strconv"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// Summary aggregates a set of movements
type Summary struct {
	Income   types.Cents
	Expenses types.Cents
	Count    int
	Pending  int
	Grant    types.Cents
}

// Balance is income minus expenses
func (s Summary) Balance() types.Cents {
	return s.Income - s.Expenses
}

// Summarize totals movements by type and state
func Summarize(movements []types.EconomicMovement) Summary {
	var s Summary
	for _, m := range movements {
		s.Count++
		switch m.Type {
		case types.MovementIncome:
			s.Income += m.Amount
		case types.MovementExpense:
			s.Expenses += m.Amount
		}
		if types.MovementState(m.State) == types.MovementPendingReview {
			s.Pending++
		}
		if m.GrantChargeable {
			s.Grant += m.Amount
		}
	}
	return s
}

var movementHeaders = []string{"ID", "Fecha", "Concepto", "Tipo", "Cantidad", "Estado", "Subvención"}

func movementRows(movements []types.EconomicMovement) [][]string {
	rows := make([][]string, len(movements))
	for i, m := range movements {
		rows[i] = []string{
			strconv.Itoa(m.ID),
			m.CreatedAt.String(),
			m.Concept,
			m.Type.String(),
			m.Amount.String(),
			m.StateLabel(),
			yesNo(m.GrantChargeable),
		}
	}
	return rows
}

// EconomyView is the economy dashboard: a summary of the latest movements
type EconomyView struct {
	Base
	movements []types.EconomicMovement
}

// NewEconomyView creates the economy dashboard
func NewEconomyView(m router.Mount, opts Options) (router.View, error) {
	return &EconomyView{Base: NewBase(m, opts)}, nil
}

// Show loads the latest movements and draws the summary
func (v *EconomyView) Show(ctx context.Context) error {
	movements, _ := SafeCall(ctx, &v.Base, v.Services.Economic.LastMovements, "Cargando movimientos recientes...", "")
	v.movements = movements

	v.Header(ctx, "Economía")

	s := Summarize(v.movements)
	v.Surface.Text("Resumen de los últimos movimientos")
	v.Surface.Fields(
		surface.Field{Label: "Ingresos Totales", Value: s.Income.String()},
		surface.Field{Label: "Gastos Totales", Value: s.Expenses.String()},
		surface.Field{Label: "Balance", Value: s.Balance().String()},
		surface.Field{Label: "Movimientos", Value: strconv.Itoa(s.Count)},
		surface.Field{Label: "Pendientes de revisión", Value: strconv.Itoa(s.Pending)},
		surface.Field{Label: "Imputable a subvención", Value: s.Grant.String()},
	)

	actions := []surface.Action{
		{Key: "m", Label: "Ver Movimientos", Run: func(ctx context.Context) { v.Go(ctx, router.EconomyMovements, nil) }},
	}
	if v.Can(ctx, permission.MovementsManage) {
		actions = append(actions, surface.Action{
			Key: "n", Label: "Crear Movimiento",
			Run: func(ctx context.Context) { v.Go(ctx, router.EconomyMovementCreate, nil) },
		})
	}
	v.Surface.Actions(actions...)

	v.Surface.Table(surface.Table{
		Headers: movementHeaders,
		Rows:    movementRows(v.movements),
		Select: func(ctx context.Context, row int) {
			if row >= 0 && row < len(v.movements) {
				v.Go(ctx, router.EconomyMovementDetail, router.Params{"movement_id": v.movements[row].ID})
			}
		},
	})
	if len(v.movements) == 0 {
		v.Surface.Text("No hay actividad reciente")
	}
	return nil
}
