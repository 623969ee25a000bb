// Package simulating calcula o valor de venda de um aparelho com troca, entrada e parcelamento na maquininha
package simulating

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/currency"
	"github.com/vfg2006/phone-retail-admin-api/pkg/utils"
)

var (
	ErrMissingRequiredData = errors.New("modelo, loja e maquininha são obrigatórios")
	ErrNotFound            = errors.New("registro não encontrado")
	ErrPriceNotSet         = errors.New("modelo sem preço na loja")
	ErrInvalidDownPayment  = errors.New("entrada inválida")
	ErrDatabaseOperation   = errors.New("erro ao realizar operação no banco de dados")
)

type SimulationError struct {
	Err     error
	Code    string
	Details string
}

func (e *SimulationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Err
}

func (e *SimulationError) APICode() string {
	return e.Code
}

// PriceLookup lê o valor atual de uma célula
type PriceLookup interface {
	Lookup(ctx context.Context, key domain.CellKey) (domain.Cents, bool, error)
}

type Simulator interface {
	Simulate(ctx context.Context, req *domain.SimulationRequest) (*domain.SimulationResult, error)
}

type Service struct {
	catalog repository.CatalogRepository
	stores  repository.StoreRepository
	prices  PriceLookup
}

func NewService(catalog repository.CatalogRepository, stores repository.StoreRepository, prices PriceLookup) *Service {
	return &Service{
		catalog: catalog,
		stores:  stores,
		prices:  prices,
	}
}

func (s *Service) Simulate(ctx context.Context, req *domain.SimulationRequest) (*domain.SimulationResult, error) {
	if req.ModelID == "" || req.StoreID == "" || req.CardMachineID == "" {
		return nil, &SimulationError{Err: ErrMissingRequiredData, Code: apiErrors.ErrMissingRequiredData}
	}

	store, err := s.stores.GetStore(ctx, req.StoreID)
	if err != nil {
		return nil, dbError(err)
	}
	if store == nil || !store.Active {
		return nil, notFound("loja", req.StoreID)
	}

	model, err := s.catalog.GetPhoneModel(ctx, req.ModelID)
	if err != nil {
		return nil, dbError(err)
	}
	if model == nil || !model.Active {
		return nil, notFound("modelo", req.ModelID)
	}

	machine, err := s.catalog.GetCardMachine(ctx, req.CardMachineID)
	if err != nil {
		return nil, dbError(err)
	}
	if machine == nil || !machine.Active {
		return nil, notFound("maquininha", req.CardMachineID)
	}

	price, found, err := s.prices.Lookup(ctx, domain.CellKey{
		Kind: domain.KindPhoneModel, EntityID: req.ModelID, Field: domain.FieldPrice, StoreID: req.StoreID,
	})
	if err != nil {
		return nil, dbError(err)
	}
	if !found {
		return nil, &SimulationError{Err: ErrPriceNotSet, Code: apiErrors.ErrNotFound, Details: req.ModelID}
	}

	var downPayment domain.Cents
	if req.DownPayment != "" {
		if currency.IsNegativeInput(req.DownPayment) {
			return nil, &SimulationError{Err: ErrInvalidDownPayment, Code: apiErrors.ErrNegativeValue, Details: req.DownPayment}
		}
		if !currency.IsValidCurrencyInput(req.DownPayment) {
			return nil, &SimulationError{Err: ErrInvalidDownPayment, Code: apiErrors.ErrInvalidFormat, Details: req.DownPayment}
		}
		downPayment = currency.ParseInputToCents(req.DownPayment)
	}

	credit, discount, err := s.tradeInCredit(ctx, req)
	if err != nil {
		return nil, err
	}

	net := currency.ClampNonNegative(price - credit - downPayment)

	result := &domain.SimulationResult{
		ModelID:             req.ModelID,
		StoreID:             req.StoreID,
		PriceCents:          price,
		TradeInCreditCents:  credit,
		DamageDiscountCents: discount,
		DownPaymentCents:    downPayment,
		NetCents:            net,
		PriceDisplay:        currency.Format(price),
		NetDisplay:          currency.Format(net),
		Options:             Installments(net, machine.Rates),
	}

	return result, nil
}

// tradeInCredit é o valor máximo do aparelho na loja menos os descontos das avarias, nunca negativo
func (s *Service) tradeInCredit(ctx context.Context, req *domain.SimulationRequest) (credit, discount domain.Cents, err error) {
	if req.TradeInDeviceID == "" {
		return 0, 0, nil
	}

	device, err := s.catalog.GetTradeInDevice(ctx, req.TradeInDeviceID)
	if err != nil {
		return 0, 0, dbError(err)
	}
	if device == nil || !device.Active {
		return 0, 0, notFound("aparelho de troca", req.TradeInDeviceID)
	}

	maxValue, _, err := s.prices.Lookup(ctx, domain.CellKey{
		Kind: domain.KindTradeIn, EntityID: device.ID, Field: domain.FieldMaxValue, StoreID: req.StoreID,
	})
	if err != nil {
		return 0, 0, dbError(err)
	}

	for _, damageTypeID := range utils.Dedupe(req.DamageTypeIDs) {
		damageType, err := s.catalog.GetDamageType(ctx, damageTypeID)
		if err != nil {
			return 0, 0, dbError(err)
		}
		if damageType == nil {
			return 0, 0, notFound("tipo de avaria", damageTypeID)
		}

		cents, _, err := s.prices.Lookup(ctx, domain.CellKey{
			Kind:     domain.KindDamageMatrix,
			EntityID: domain.DamageMatrixEntityID(device.SubcategoryID, damageTypeID),
			Field:    domain.FieldDiscount,
		})
		if err != nil {
			return 0, 0, dbError(err)
		}
		discount += cents
	}

	return currency.ClampNonNegative(maxValue - discount), discount, nil
}

// Installments calcula total e parcela para cada taxa, arredondando meio centavo para cima
func Installments(net domain.Cents, rates []domain.InstallmentRate) []domain.InstallmentOption {
	hundred := decimal.NewFromInt(100)
	base := decimal.NewFromInt(net)

	options := make([]domain.InstallmentOption, 0, len(rates))
	for _, rate := range rates {
		if rate.Installments < 1 {
			continue
		}

		factor := decimal.NewFromInt(1).Add(rate.RatePercent.Div(hundred))
		total := base.Mul(factor).Round(0)
		installment := total.Div(decimal.NewFromInt(int64(rate.Installments))).Round(0)

		options = append(options, domain.InstallmentOption{
			Installments:       rate.Installments,
			RatePercent:        rate.RatePercent.String(),
			TotalCents:         total.IntPart(),
			InstallmentCents:   installment.IntPart(),
			TotalDisplay:       currency.Format(total.IntPart()),
			InstallmentDisplay: currency.Format(installment.IntPart()),
		})
	}
	return options
}

func dbError(err error) *SimulationError {
	return &SimulationError{Err: ErrDatabaseOperation, Code: apiErrors.ErrDatabaseOperation, Details: err.Error()}
}

func notFound(entity, id string) *SimulationError {
	return &SimulationError{Err: ErrNotFound, Code: apiErrors.ErrNotFound, Details: entity + " " + id}
}
