package adjusting

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/pkg/currency"
)

// Adjustment é um ajuste uniforme já interpretado e com sinal aplicado
type Adjustment struct {
	Operation domain.PriceOperation
	Percent   decimal.Decimal
	Amount    domain.Cents
	Magnitude string
}

// Next calcula o novo valor de uma célula, entre zero e currency.MaxCents
func (a Adjustment) Next(current domain.Cents) domain.Cents {
	switch a.Operation {
	case domain.OperationPercentage:
		return currency.ApplyPercentage(current, a.Percent)
	case domain.OperationFixed:
		return currency.ClampCents(current + a.Amount)
	}
	return current
}

// ParseAdjustment interpreta a magnitude digitada. "decrease" inverte o sinal, assim como um "-" inicial.
// Valor fixo segue as regras de ParseInputToCents: "5" são R$ 5,00.
func ParseAdjustment(operation domain.PriceOperation, raw string, direction domain.AdjustDirection) (Adjustment, error) {
	switch direction {
	case "", domain.DirectionIncrease, domain.DirectionDecrease:
	default:
		return Adjustment{}, newError(ErrInvalidMagnitude, "direção deve ser increase ou decrease")
	}

	text := strings.TrimSpace(raw)
	negative := direction == domain.DirectionDecrease

	switch operation {
	case domain.OperationPercentage:
		pct, err := currency.ParsePercentage(text)
		if err != nil {
			return Adjustment{}, newError(ErrInvalidMagnitude, err.Error())
		}
		if pct.IsZero() {
			return Adjustment{}, newError(ErrInvalidMagnitude, "o percentual deve ser diferente de zero")
		}
		if negative {
			pct = pct.Neg()
		}
		return Adjustment{
			Operation: operation,
			Percent:   pct,
			Magnitude: pct.String() + "%",
		}, nil

	case domain.OperationFixed:
		if strings.HasPrefix(text, "-") {
			negative = !negative
			text = strings.TrimSpace(strings.TrimPrefix(text, "-"))
		}
		if !currency.IsValidCurrencyInput(text) {
			return Adjustment{}, newError(ErrInvalidMagnitude, "valor fixo inválido")
		}
		amount := currency.ParseInputToCents(text)
		if amount == 0 {
			return Adjustment{}, newError(ErrInvalidMagnitude, "o valor deve ser maior que zero")
		}
		if negative {
			amount = -amount
		}
		return Adjustment{
			Operation: operation,
			Amount:    amount,
			Magnitude: currency.Format(amount),
		}, nil
	}

	return Adjustment{}, newError(ErrInvalidOperation, string(operation))
}

// ComputeChanges percorre entidades × campos × lojas e calcula o novo valor de cada célula existente.
// Células ausentes não são criadas. Campos sem escopo de loja usam a célula global.
func ComputeChanges(kind domain.EntityKind, entityIDs []string, fields []domain.FieldSpec, storeIDs []string, adj Adjustment, lookup LookupFunc) []domain.PriceChange {
	changes := make([]domain.PriceChange, 0)

	for _, entityID := range entityIDs {
		for _, field := range fields {
			stores := storeIDs
			if !field.StoreScoped {
				stores = []string{""}
			}

			for _, storeID := range stores {
				key := domain.CellKey{Kind: kind, EntityID: entityID, Field: field.Name, StoreID: storeID}
				current, ok := lookup(key)
				if !ok {
					continue
				}

				changes = append(changes, domain.PriceChange{
					CellKey:   key,
					Before:    current,
					After:     adj.Next(current),
					Existed:   true,
					Operation: adj.Operation,
					Magnitude: adj.Magnitude,
				})
			}
		}
	}

	return changes
}

// countEntities conta entidades distintas em um lote de alterações
func countEntities(changes []domain.PriceChange) int {
	seen := make(map[string]struct{})
	for _, change := range changes {
		seen[change.EntityID] = struct{}{}
	}
	return len(seen)
}
