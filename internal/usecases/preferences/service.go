// Package preferences guarda preferências de tela e buscas recentes de cada usuário
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/kvstore"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/selecting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	preferencesKey      = "preferences"
	recentSearchesKey   = "recent_searches."
	maxSearchTermLength = 100
)

var (
	ErrInvalidPreference = errors.New("preferência inválida")
	ErrInvalidScope      = errors.New("escopo de busca inválido")
	ErrStore             = errors.New("erro ao acessar preferências")
)

var themes = map[string]bool{"light": true, "dark": true, "system": true}

type PreferencesError struct {
	Err     error
	Code    string
	Details string
}

func (e *PreferencesError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PreferencesError) Unwrap() error {
	return e.Err
}

func (e *PreferencesError) APICode() string {
	return e.Code
}

type Preferencer interface {
	Get(ctx context.Context, userID int) (domain.UserPreferences, error)
	Update(ctx context.Context, userID int, prefs domain.UserPreferences, origin string) (domain.UserPreferences, error)
	RecentSearches(ctx context.Context, userID int, scope string) ([]string, error)
	AddRecentSearch(ctx context.Context, userID int, scope, term, origin string) ([]string, error)
	ClearRecentSearches(ctx context.Context, userID int, scope, origin string) error
	Subscribe(ctx context.Context, userID int) (<-chan domain.PreferenceChange, error)
}

type Service struct {
	store kvstore.Store
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store}
}

// Namespace isola as chaves de cada usuário
func Namespace(userID int) string {
	return "user-" + strconv.Itoa(userID)
}

func (s *Service) Get(ctx context.Context, userID int) (domain.UserPreferences, error) {
	prefs := domain.DefaultUserPreferences()

	raw, found, err := s.store.Get(ctx, Namespace(userID), preferencesKey)
	if err != nil {
		return prefs, storeError(err)
	}
	if !found {
		return prefs, nil
	}

	if err := json.Unmarshal(raw, &prefs); err != nil {
		log.ForContext(ctx).WithError(err).Warnf("Preferências corrompidas do usuário %d, usando padrão", userID)
		return domain.DefaultUserPreferences(), nil
	}
	return prefs, nil
}

func (s *Service) Update(ctx context.Context, userID int, prefs domain.UserPreferences, origin string) (domain.UserPreferences, error) {
	if prefs.PageSize == 0 {
		prefs.PageSize = selecting.DefaultPageSize
	}
	if prefs.PageSize < 1 || prefs.PageSize > selecting.MaxPageSize {
		return prefs, &PreferencesError{Err: ErrInvalidPreference, Code: apiErrors.ErrInvalidRequest, Details: "page_size fora do intervalo"}
	}

	prefs.Theme = strings.ToLower(strings.TrimSpace(prefs.Theme))
	if prefs.Theme == "" {
		prefs.Theme = domain.DefaultUserPreferences().Theme
	}
	if !themes[prefs.Theme] {
		return prefs, &PreferencesError{Err: ErrInvalidPreference, Code: apiErrors.ErrInvalidRequest, Details: "tema " + prefs.Theme}
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		return prefs, &PreferencesError{Err: err, Code: apiErrors.ErrInternalServer}
	}

	if err := s.store.Set(ctx, Namespace(userID), preferencesKey, raw, origin); err != nil {
		return prefs, storeError(err)
	}
	return prefs, nil
}

// RecentSearches devolve as buscas do escopo, da mais recente para a mais antiga
func (s *Service) RecentSearches(ctx context.Context, userID int, scope string) ([]string, error) {
	key, err := searchKey(scope)
	if err != nil {
		return nil, err
	}

	raw, found, err := s.store.Get(ctx, Namespace(userID), key)
	if err != nil {
		return nil, storeError(err)
	}
	if !found {
		return []string{}, nil
	}

	var terms []string
	if err := json.Unmarshal(raw, &terms); err != nil {
		log.ForContext(ctx).WithError(err).Warnf("Buscas recentes corrompidas do usuário %d", userID)
		return []string{}, nil
	}
	return terms, nil
}

// AddRecentSearch coloca o termo no topo, remove repetição ignorando maiúsculas e corta em MaxRecentSearches
func (s *Service) AddRecentSearch(ctx context.Context, userID int, scope, term, origin string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.RecentSearches(ctx, userID, scope)
	}
	if len([]rune(term)) > maxSearchTermLength {
		term = string([]rune(term)[:maxSearchTermLength])
	}

	current, err := s.RecentSearches(ctx, userID, scope)
	if err != nil {
		return nil, err
	}

	terms := PushRecent(current, term, domain.MaxRecentSearches)

	raw, err := json.Marshal(terms)
	if err != nil {
		return nil, &PreferencesError{Err: err, Code: apiErrors.ErrInternalServer}
	}

	key, _ := searchKey(scope)
	if err := s.store.Set(ctx, Namespace(userID), key, raw, origin); err != nil {
		return nil, storeError(err)
	}
	return terms, nil
}

func (s *Service) ClearRecentSearches(ctx context.Context, userID int, scope, origin string) error {
	key, err := searchKey(scope)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, Namespace(userID), key, origin); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Service) Subscribe(ctx context.Context, userID int) (<-chan domain.PreferenceChange, error) {
	changes, err := s.store.Subscribe(ctx, Namespace(userID))
	if err != nil {
		return nil, storeError(err)
	}
	return changes, nil
}

// PushRecent devolve uma nova lista com term no início, sem repetições e com no máximo limit itens
func PushRecent(terms []string, term string, limit int) []string {
	out := make([]string, 0, limit)
	out = append(out, term)
	for _, existing := range terms {
		if len(out) == limit {
			break
		}
		if strings.EqualFold(existing, term) {
			continue
		}
		out = append(out, existing)
	}
	return out
}

func searchKey(scope string) (string, error) {
	switch domain.EntityKind(scope) {
	case domain.KindPhoneModel, domain.KindTradeIn, domain.KindDamageMatrix:
		return recentSearchesKey + scope, nil
	}
	if scope == "stores" || scope == "users" {
		return recentSearchesKey + scope, nil
	}
	return "", &PreferencesError{Err: ErrInvalidScope, Code: apiErrors.ErrInvalidRequest, Details: scope}
}

func storeError(err error) *PreferencesError {
	if errors.Is(err, kvstore.ErrInvalidKey) {
		return &PreferencesError{Err: err, Code: apiErrors.ErrInvalidRequest}
	}
	return &PreferencesError{Err: ErrStore, Code: apiErrors.ErrExternalService, Details: err.Error()}
}
