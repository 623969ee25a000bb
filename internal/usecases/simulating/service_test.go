package simulating

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/memory"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/adjusting"
)

func newSeededService(t *testing.T) *Service {
	t.Helper()

	store, err := memory.NewSeeded("Senha@Forte1", true)
	require.NoError(t, err)
	return NewService(store, store, adjusting.NewService(store, store, store))
}

func TestService_Simulate_ComTrocaEEntrada(t *testing.T) {
	service := newSeededService(t)

	result, err := service.Simulate(context.Background(), &domain.SimulationRequest{
		ModelID:         "md0001",
		StoreID:         "lj0001",
		CardMachineID:   "cm0001",
		TradeInDeviceID: "tr0001",
		DamageTypeIDs:   []string{"dm0001", "dm0002", "dm0001"},
		DownPayment:     "500",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(429900), result.PriceCents)
	assert.Equal(t, domain.Cents(85000), result.DamageDiscountCents, "avaria repetida conta uma vez")
	assert.Equal(t, domain.Cents(135000), result.TradeInCreditCents)
	assert.Equal(t, domain.Cents(50000), result.DownPaymentCents)
	assert.Equal(t, domain.Cents(244900), result.NetCents)
	assert.Equal(t, "R$ 2.449,00", result.NetDisplay)

	require.Len(t, result.Options, 3)
	assert.Equal(t, domain.InstallmentOption{
		Installments: 12, RatePercent: "14.5",
		TotalCents: 280411, InstallmentCents: 23368,
		TotalDisplay: "R$ 2.804,11", InstallmentDisplay: "R$ 233,68",
	}, result.Options[2])
}

func TestService_Simulate_CreditoMaiorQuePreco(t *testing.T) {
	service := newSeededService(t)

	result, err := service.Simulate(context.Background(), &domain.SimulationRequest{
		ModelID:         "md0003",
		StoreID:         "lj0001",
		CardMachineID:   "cm0001",
		TradeInDeviceID: "tr0002",
		DownPayment:     "3.000",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(180000), result.TradeInCreditCents)
	assert.Equal(t, domain.Cents(0), result.NetCents, "valor líquido nunca fica negativo")
	for _, option := range result.Options {
		assert.Equal(t, domain.Cents(0), option.TotalCents)
	}
}

func TestService_Simulate_Erros(t *testing.T) {
	service := newSeededService(t)

	tests := []struct {
		name    string
		req     domain.SimulationRequest
		wantErr error
	}{
		{name: "Sem maquininha", req: domain.SimulationRequest{ModelID: "md0001", StoreID: "lj0001"}, wantErr: ErrMissingRequiredData},
		{name: "Loja inativa", req: domain.SimulationRequest{ModelID: "md0002", StoreID: "lj0003", CardMachineID: "cm0001"}, wantErr: ErrNotFound},
		{name: "Modelo inexistente", req: domain.SimulationRequest{ModelID: "md9999", StoreID: "lj0001", CardMachineID: "cm0001"}, wantErr: ErrNotFound},
		{name: "Modelo sem preço na loja", req: domain.SimulationRequest{ModelID: "md0003", StoreID: "lj0002", CardMachineID: "cm0001"}, wantErr: ErrPriceNotSet},
		{name: "Entrada negativa", req: domain.SimulationRequest{ModelID: "md0001", StoreID: "lj0001", CardMachineID: "cm0001", DownPayment: "-10"}, wantErr: ErrInvalidDownPayment},
		{name: "Avaria inexistente", req: domain.SimulationRequest{ModelID: "md0001", StoreID: "lj0001", CardMachineID: "cm0001", TradeInDeviceID: "tr0001", DamageTypeIDs: []string{"dm9999"}}, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := service.Simulate(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Simulate_ModeloInativo(t *testing.T) {
	ctx := context.Background()
	store, err := memory.NewSeeded("Senha@Forte1", true)
	require.NoError(t, err)
	service := NewService(store, store, adjusting.NewService(store, store, store))

	model, err := store.GetPhoneModel(ctx, "md0001")
	require.NoError(t, err)
	require.NotNil(t, model)
	model.Active = false
	require.NoError(t, store.UpdatePhoneModel(ctx, model))

	// o preço da loja continua gravado, mas o modelo inativo não é simulado
	_, err = service.Simulate(ctx, &domain.SimulationRequest{ModelID: "md0001", StoreID: "lj0001", CardMachineID: "cm0001"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInstallments(t *testing.T) {
	rates := []domain.InstallmentRate{
		{Installments: 1, RatePercent: decimal.Zero},
		{Installments: 3, RatePercent: decimal.RequireFromString("5")},
		{Installments: 0, RatePercent: decimal.RequireFromString("5")},
	}

	options := Installments(10000, rates)
	require.Len(t, options, 2, "parcela zero é ignorada")

	assert.Equal(t, domain.Cents(10000), options[0].TotalCents)
	assert.Equal(t, domain.Cents(10500), options[1].TotalCents)
	assert.Equal(t, domain.Cents(3500), options[1].InstallmentCents)
}
