// Package backup exporta e importa o catálogo completo em um documento JSON versionado
package backup

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reloader descarta valores em cache depois que o catálogo é substituído
type Reloader interface {
	Reload()
}

type Backuper interface {
	Export(ctx context.Context) (*domain.BackupDocument, error)
	ExportJSON(ctx context.Context) ([]byte, error)
	Validate(raw []byte) *domain.BackupValidationResult
	Import(ctx context.Context, raw []byte) (*domain.BackupImportResponse, error)
}

type Service struct {
	repo     repository.BackupRepository
	reloader Reloader
	version  string
	now      func() time.Time
}

func NewService(repo repository.BackupRepository, reloader Reloader, version string) *Service {
	return &Service{
		repo:     repo,
		reloader: reloader,
		version:  version,
		now:      time.Now,
	}
}

// Export carimba versão e horário atuais. Senhas nunca saem no arquivo e
// os descontos por avaria vão na tabela damage_matrix, fora de price_cells.
func (s *Service) Export(ctx context.Context) (*domain.BackupDocument, error) {
	data, err := s.repo.Snapshot(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gerar snapshot para exportação")
		return nil, NewBackupError(ErrSnapshot, apiErrors.ErrDatabaseOperation, err.Error())
	}

	for _, user := range data.Users {
		user.PasswordHash = ""
	}

	cells := make([]*domain.PriceCell, 0, len(data.PriceCells))
	matrix := make([]*domain.DamageMatrixRow, 0)
	for _, cell := range data.PriceCells {
		if cell.Kind != domain.KindDamageMatrix {
			cells = append(cells, cell)
			continue
		}

		subcategoryID, damageTypeID, ok := domain.SplitDamageMatrixEntityID(cell.EntityID)
		if !ok {
			log.ForContext(ctx).Warnf("Célula de avaria com id inválido ignorada: %s", cell.EntityID)
			continue
		}
		matrix = append(matrix, &domain.DamageMatrixRow{
			SubcategoryID: subcategoryID,
			DamageTypeID:  damageTypeID,
			DiscountCents: cell.Cents,
		})
	}
	sort.Slice(matrix, func(i, j int) bool { return matrix[i].SelectionID() < matrix[j].SelectionID() })

	data.PriceCells = cells
	data.DamageMatrix = matrix

	return &domain.BackupDocument{
		Version:   s.version,
		Timestamp: s.now().UTC().Truncate(time.Second),
		Data:      data,
	}, nil
}

func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, NewBackupError(err, apiErrors.ErrInternalServer, "Erro ao serializar backup")
	}
	return raw, nil
}

// Validate confere a estrutura do documento sem decodificar as entidades.
// Cada problema vira uma entrada própria; versão diferente é só aviso.
func (s *Service) Validate(raw []byte) *domain.BackupValidationResult {
	result := &domain.BackupValidationResult{
		Errors:   []string{},
		Warnings: []string{},
		Counts:   map[string]int{},
	}

	var doc map[string]jsoniter.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		result.Errors = append(result.Errors, "documento não é um objeto JSON válido")
		return result
	}

	var version string
	if rawVersion, ok := doc["version"]; !ok {
		result.Errors = append(result.Errors, "campo obrigatório ausente: version")
	} else if err := json.Unmarshal(rawVersion, &version); err != nil || version == "" {
		result.Errors = append(result.Errors, "campo version deve ser um texto não vazio")
	} else if version != s.version {
		result.Warnings = append(result.Warnings, fmt.Sprintf("versão do arquivo (%s) difere da versão atual (%s)", version, s.version))
	}

	var timestamp string
	if rawTimestamp, ok := doc["timestamp"]; !ok {
		result.Errors = append(result.Errors, "campo obrigatório ausente: timestamp")
	} else if err := json.Unmarshal(rawTimestamp, &timestamp); err != nil {
		result.Errors = append(result.Errors, "campo timestamp deve ser um texto")
	} else if _, err := time.Parse(time.RFC3339, timestamp); err != nil {
		result.Errors = append(result.Errors, "campo timestamp não está no formato ISO-8601")
	}

	rawData, ok := doc["data"]
	if !ok {
		result.Errors = append(result.Errors, "campo obrigatório ausente: data")
		return result
	}

	var tables map[string]jsoniter.RawMessage
	if err := json.Unmarshal(rawData, &tables); err != nil || tables == nil {
		result.Errors = append(result.Errors, "campo data deve ser um objeto")
		return result
	}

	for _, table := range domain.RequiredBackupTables {
		rawTable, ok := tables[table]
		if !ok {
			result.Errors = append(result.Errors, "tabela obrigatória ausente: "+table)
			continue
		}
		count, err := countRows(rawTable)
		if err != nil {
			result.Errors = append(result.Errors, "tabela "+table+" deve ser uma lista")
			continue
		}
		result.Counts[table] = count
	}

	if rawCells, ok := tables[domain.TablePriceCells]; ok {
		count, err := countRows(rawCells)
		if err != nil {
			result.Errors = append(result.Errors, "tabela "+domain.TablePriceCells+" deve ser uma lista")
		} else {
			result.Counts[domain.TablePriceCells] = count
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func countRows(raw jsoniter.RawMessage) (int, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, fmt.Errorf("tabela não é uma lista")
	}

	var rows []jsoniter.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Import substitui o catálogo inteiro pelo conteúdo do documento.
// Documento inválido não altera nada e volta com o resultado da validação.
func (s *Service) Import(ctx context.Context, raw []byte) (*domain.BackupImportResponse, error) {
	validation := s.Validate(raw)
	response := &domain.BackupImportResponse{Validation: validation}
	if !validation.Valid {
		return response, nil
	}

	var doc domain.BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		validation.Valid = false
		validation.Errors = append(validation.Errors, "conteúdo das tabelas inválido: "+err.Error())
		return response, nil
	}

	data := doc.Data
	if len(data.Users) > 0 {
		validation.Warnings = append(validation.Warnings, "usuários não são restaurados a partir do backup")
	}
	data.Users = nil
	data.PriceCells = composeCells(data, s.now().UTC())

	if err := s.repo.Restore(ctx, data); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao restaurar backup")
		return nil, NewBackupError(ErrRestore, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if s.reloader != nil {
		s.reloader.Reload()
	}

	log.ForContext(ctx).Infof("Backup versão %s importado: %d modelos, %d células", doc.Version, len(data.Models), len(data.PriceCells))
	response.Imported = true
	return response, nil
}

// composeCells junta price_cells e a matriz de avarias; a linha da matriz prevalece sobre célula repetida
func composeCells(data *domain.BackupData, now time.Time) []*domain.PriceCell {
	byKey := make(map[domain.CellKey]*domain.PriceCell, len(data.PriceCells)+len(data.DamageMatrix))
	order := make([]domain.CellKey, 0, len(data.PriceCells)+len(data.DamageMatrix))

	put := func(cell *domain.PriceCell) {
		if _, exists := byKey[cell.CellKey]; !exists {
			order = append(order, cell.CellKey)
		}
		if cell.UpdatedAt.IsZero() {
			cell.UpdatedAt = now
		}
		byKey[cell.CellKey] = cell
	}

	for _, cell := range data.PriceCells {
		if cell != nil && cell.Cents >= 0 {
			put(cell)
		}
	}
	for _, row := range data.DamageMatrix {
		if row == nil || row.DiscountCents < 0 {
			continue
		}
		put(&domain.PriceCell{
			CellKey: domain.CellKey{
				Kind:     domain.KindDamageMatrix,
				EntityID: row.SelectionID(),
				Field:    domain.FieldDiscount,
			},
			Cents: row.DiscountCents,
		})
	}

	cells := make([]*domain.PriceCell, 0, len(order))
	for _, key := range order {
		cells = append(cells, byKey[key])
	}
	return cells
}
