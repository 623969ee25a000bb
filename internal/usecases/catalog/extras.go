package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/utils"
)

const maxInstallments = 24

func (s *Service) ListDamageTypes(ctx context.Context) ([]*domain.DamageType, error) {
	damageTypes, err := s.catalog.ListDamageTypes(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar tipos de avaria")
	}
	return damageTypes, nil
}

func (s *Service) CreateDamageType(ctx context.Context, req *domain.CreateDamageTypeRequest) (*domain.DamageType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome do tipo de avaria é obrigatório")
	}

	existing, err := s.catalog.ListDamageTypes(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar tipos de avaria")
	}
	for _, damageType := range existing {
		if strings.EqualFold(damageType.Name, name) {
			return nil, NewCatalogError(ErrAlreadyExists, apiErrors.ErrInvalidRequest, "Tipo de avaria já cadastrado")
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrInternalServer, "Erro ao gerar id")
	}

	damageType := &domain.DamageType{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.catalog.CreateDamageType(ctx, damageType); err != nil {
		return nil, dbError(err, "Erro ao criar tipo de avaria")
	}

	return damageType, nil
}

func (s *Service) UpdateDamageType(ctx context.Context, req *domain.UpdateDamageTypeRequest) error {
	return notImplemented("editar tipo de avaria")
}

func (s *Service) DeleteDamageType(ctx context.Context, id string) error {
	return notImplemented("excluir tipo de avaria")
}

// ListDamageMatrix cruza subcategorias e tipos de avaria. Combinação sem célula sai com desconto zero.
func (s *Service) ListDamageMatrix(ctx context.Context) ([]*domain.DamageMatrixRow, error) {
	subcategories, err := s.catalog.ListSubcategories(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar subcategorias")
	}
	damageTypes, err := s.catalog.ListDamageTypes(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar tipos de avaria")
	}

	rows := make([]*domain.DamageMatrixRow, 0, len(subcategories)*len(damageTypes))
	for _, sub := range subcategories {
		for _, damageType := range damageTypes {
			key := domain.CellKey{
				Kind:     domain.KindDamageMatrix,
				EntityID: domain.DamageMatrixEntityID(sub.ID, damageType.ID),
				Field:    domain.FieldDiscount,
			}
			cents, _, err := s.prices.Lookup(ctx, key)
			if err != nil {
				return nil, err
			}
			rows = append(rows, &domain.DamageMatrixRow{
				SubcategoryID: sub.ID,
				DamageTypeID:  damageType.ID,
				DiscountCents: cents,
			})
		}
	}

	return rows, nil
}

func (s *Service) ListCardMachines(ctx context.Context) ([]*domain.CardMachine, error) {
	machines, err := s.catalog.ListCardMachines(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar maquininhas")
	}
	return machines, nil
}

func (s *Service) CreateCardMachine(ctx context.Context, req *domain.CreateCardMachineRequest) (*domain.CardMachine, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome da maquininha é obrigatório")
	}

	rates, err := normalizeRates(req.Rates)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrInternalServer, "Erro ao gerar id")
	}

	now := s.now().UTC()
	machine := &domain.CardMachine{
		ID:        id,
		Name:      name,
		Active:    true,
		Rates:     rates,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.catalog.CreateCardMachine(ctx, machine); err != nil {
		return nil, dbError(err, "Erro ao criar maquininha")
	}

	return machine, nil
}

func (s *Service) UpdateCardMachine(ctx context.Context, req *domain.UpdateCardMachineRequest) (*domain.CardMachine, error) {
	machine, err := s.catalog.GetCardMachine(ctx, req.ID)
	if err != nil {
		return nil, dbError(err, "Erro ao consultar maquininha")
	}
	if machine == nil {
		return nil, notFound("maquininha", req.ID)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome da maquininha é obrigatório")
		}
		machine.Name = strings.TrimSpace(*req.Name)
	}
	if req.Active != nil {
		machine.Active = *req.Active
	}
	if req.Rates != nil {
		rates, err := normalizeRates(*req.Rates)
		if err != nil {
			return nil, err
		}
		machine.Rates = rates
	}

	machine.UpdatedAt = s.now().UTC()
	if err := s.catalog.UpdateCardMachine(ctx, machine); err != nil {
		return nil, dbError(err, "Erro ao atualizar maquininha")
	}

	return machine, nil
}

// normalizeRates ordena as taxas por número de parcelas e recusa parcela repetida ou taxa fora de 0 a 100
func normalizeRates(rates []domain.InstallmentRate) ([]domain.InstallmentRate, error) {
	hundred := decimal.NewFromInt(100)
	seen := make(map[int]bool, len(rates))

	out := make([]domain.InstallmentRate, 0, len(rates))
	for _, rate := range rates {
		if rate.Installments < 1 || rate.Installments > maxInstallments {
			return nil, NewCatalogError(ErrInvalidRate, apiErrors.ErrInvalidRequest, "número de parcelas fora do intervalo")
		}
		if rate.RatePercent.IsNegative() || rate.RatePercent.GreaterThan(hundred) {
			return nil, NewCatalogError(ErrInvalidRate, apiErrors.ErrInvalidRequest, "taxa fora do intervalo")
		}
		if seen[rate.Installments] {
			return nil, NewCatalogError(ErrInvalidRate, apiErrors.ErrInvalidRequest, "parcela repetida")
		}
		seen[rate.Installments] = true
		out = append(out, rate)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Installments < out[j].Installments })
	return out, nil
}
