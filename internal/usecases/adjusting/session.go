package adjusting

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/selecting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/utils"
)

// Session é uma edição em massa aberta por um usuário. O editor é modal: enquanto aplica, nada mais muda.
type Session struct {
	mu sync.Mutex

	id        string
	userID    int
	kind      domain.EntityKind
	state     domain.SessionState
	operation domain.PriceOperation
	fields    []domain.FieldSpec
	storeIDs  []string
	selection *selecting.Selection
	filter    selecting.Filter
	magnitude string
	direction domain.AdjustDirection
	preview   *domain.BulkPreview
	lastError string
	createdAt time.Time
	updatedAt time.Time
}

func (s *Session) ID() string { return s.id }

// response precisa ser chamado com o lock da sessão
func (s *Session) response() *domain.BulkSessionResponse {
	fields := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		fields = append(fields, field.Name)
	}

	return &domain.BulkSessionResponse{
		ID:          s.id,
		Kind:        s.kind,
		State:       s.state,
		Operation:   s.operation,
		Fields:      fields,
		StoreIDs:    append([]string{}, s.storeIDs...),
		SelectedIDs: s.selection.IDs(),
		Filter:      s.filter.ToDomain(),
		Preview:     s.preview,
		Error:       s.lastError,
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
}

// editable rejeita alterações enquanto uma aplicação está em andamento
func (s *Session) editable() error {
	if s.state == domain.SessionApplying {
		return newError(ErrApplyInProgress, s.id)
	}
	return nil
}

type sessionKey struct {
	userID int
	kind   domain.EntityKind
}

// SessionManager guarda as sessões abertas; cada usuário tem no máximo uma por tipo de entidade
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	byOwner  map[sessionKey]string
	now      func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		byOwner:  make(map[sessionKey]string),
		now:      time.Now,
	}
}

// Open cria a sessão já em configuração, substituindo a anterior do mesmo usuário e tipo
func (m *SessionManager) Open(userID int, kind domain.EntityKind) (*Session, error) {
	id, err := utils.GenerateSessionID()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	owner := sessionKey{userID: userID, kind: kind}
	if previousID, ok := m.byOwner[owner]; ok {
		if previous, exists := m.sessions[previousID]; exists {
			previous.mu.Lock()
			applying := previous.state == domain.SessionApplying
			previous.mu.Unlock()
			if applying {
				return nil, newError(ErrApplyInProgress, previousID)
			}
			delete(m.sessions, previousID)
		}
	}

	now := m.now()
	session := &Session{
		id:        id,
		userID:    userID,
		kind:      kind,
		state:     domain.SessionConfiguring,
		selection: selecting.NewSelection(),
		createdAt: now,
		updatedAt: now,
	}

	m.sessions[id] = session
	m.byOwner[owner] = id

	return session, nil
}

// Get só devolve a sessão ao próprio dono
func (m *SessionManager) Get(id string, userID int) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok || session.userID != userID {
		return nil, newError(ErrSessionNotFound, id)
	}
	return session, nil
}

func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return
	}
	delete(m.sessions, id)

	owner := sessionKey{userID: session.userID, kind: session.kind}
	if m.byOwner[owner] == id {
		delete(m.byOwner, owner)
	}
}

// Expire remove sessões paradas há mais que ttl; sessões aplicando nunca expiram
func (m *SessionManager) Expire(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	removed := 0
	for id, session := range m.sessions {
		session.mu.Lock()
		stale := session.state != domain.SessionApplying && session.updatedAt.Before(cutoff)
		session.mu.Unlock()
		if !stale {
			continue
		}

		delete(m.sessions, id)
		owner := sessionKey{userID: session.userID, kind: session.kind}
		if m.byOwner[owner] == id {
			delete(m.byOwner, owner)
		}
		removed++
		logrus.Debugf("Sessão de edição em massa %s expirada", id)
	}

	return removed
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) touch(s *Session) {
	s.updatedAt = m.now()
}
