package preferences

import (
	"api/schemas"
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrInvalidTheme  = errors.New("tema inválido")
	ErrInvalidPeriod = errors.New("período inválido")
	ErrInvalidColumn = errors.New("coluna inválida")
)

// Modal identifica qual sobreposição está aberta. É estado transitório:
// nunca vai para o banco e toda carga começa sem modal.
type Modal interface {
	modal()
}

type NewLeadModal struct{}

type EditLeadModal struct {
	LeadID string
}

type SellerModal struct {
	UserID string
}

type HelpModal struct{}

func (NewLeadModal) modal()  {}
func (EditLeadModal) modal() {}
func (SellerModal) modal()   {}
func (HelpModal) modal()     {}

// Store persiste as preferências de um usuário. O bool do Load indica se
// havia registro salvo.
type Store interface {
	Load(ctx context.Context, userID bson.ObjectID) (schemas.UIPreferences, bool, error)
	Save(ctx context.Context, prefs schemas.UIPreferences) error
}

// Shell guarda o estado de interface de um usuário: a parte persistente
// (tema, filtros, colunas) passa pelo Store a cada mudança; a parte
// transitória (modal e gaveta de chat) vive só em memória.
type Shell struct {
	store  Store
	userID bson.ObjectID

	mu           sync.RWMutex
	prefs        schemas.UIPreferences
	modal        Modal
	drawerLeadID string
}

func NewShell(store Store, userID bson.ObjectID) *Shell {
	return &Shell{store: store, userID: userID}
}

// Load carrega o que está salvo ou os padrões, e zera o transitório.
func (s *Shell) Load(ctx context.Context) error {
	prefs, found, err := s.store.Load(ctx, s.userID)
	if err != nil {
		return err
	}
	if !found {
		prefs = defaultPreferences(s.userID)
	}
	if prefs.Theme == "" {
		prefs.Theme = schemas.THEME_DARK
	}
	if prefs.PeriodFilter == "" {
		prefs.PeriodFilter = schemas.PERIOD_TOTAL
	}
	if len(prefs.KanbanColumns) == 0 {
		prefs.KanbanColumns = schemas.DefaultKanbanColumns()
	}
	prefs.UserID = s.userID

	s.mu.Lock()
	s.prefs = prefs
	s.modal = nil
	s.drawerLeadID = ""
	s.mu.Unlock()

	return nil
}

func defaultPreferences(userID bson.ObjectID) schemas.UIPreferences {
	return schemas.UIPreferences{
		UserID:        userID,
		Theme:         schemas.THEME_DARK,
		PeriodFilter:  schemas.PERIOD_TOTAL,
		KanbanColumns: schemas.DefaultKanbanColumns(),
	}
}

func (s *Shell) SetTheme(ctx context.Context, theme string) error {
	if theme != schemas.THEME_DARK && theme != schemas.THEME_LIGHT {
		return ErrInvalidTheme
	}
	return s.mutate(ctx, func(prefs *schemas.UIPreferences) {
		prefs.Theme = theme
	})
}

func (s *Shell) ToggleSidebar(ctx context.Context) error {
	return s.mutate(ctx, func(prefs *schemas.UIPreferences) {
		prefs.SidebarCollapsed = !prefs.SidebarCollapsed
	})
}

// SetPeriodFilter troca o recorte de período. O intervalo customizado só
// vale com as duas pontas preenchidas.
func (s *Shell) SetPeriodFilter(ctx context.Context, period string, custom schemas.CustomRange) error {
	if !schemas.IsValidPeriodFilter(period) {
		return ErrInvalidPeriod
	}
	if period == schemas.PERIOD_CUSTOM && (custom.From == nil || custom.To == nil) {
		return ErrInvalidPeriod
	}
	return s.mutate(ctx, func(prefs *schemas.UIPreferences) {
		prefs.PeriodFilter = period
		if period == schemas.PERIOD_CUSTOM {
			prefs.CustomRange = custom
		} else {
			prefs.CustomRange = schemas.CustomRange{}
		}
	})
}

func (s *Shell) SetSearchQuery(ctx context.Context, query string) error {
	return s.mutate(ctx, func(prefs *schemas.UIPreferences) {
		prefs.SearchQuery = query
	})
}

// SetKanbanColumns aceita só colunas mapeadas para status conhecidos.
func (s *Shell) SetKanbanColumns(ctx context.Context, columns []schemas.KanbanColumn) error {
	for _, column := range columns {
		if !schemas.IsValidLeadStatus(column.ID) {
			return ErrInvalidColumn
		}
	}
	return s.mutate(ctx, func(prefs *schemas.UIPreferences) {
		prefs.KanbanColumns = columns
	})
}

func (s *Shell) OpenModal(modal Modal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = modal
}

func (s *Shell) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = nil
}

func (s *Shell) Modal() Modal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modal
}

func (s *Shell) OpenDrawer(leadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerLeadID = leadID
}

func (s *Shell) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerLeadID = ""
}

func (s *Shell) DrawerLeadID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drawerLeadID
}

func (s *Shell) Preferences() schemas.UIPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// mutate aplica a mudança e grava. Falha na gravação desfaz a mudança em
// memória para o estado não divergir do banco.
func (s *Shell) mutate(ctx context.Context, apply func(*schemas.UIPreferences)) error {
	s.mu.Lock()
	previous := s.prefs
	apply(&s.prefs)
	s.prefs.UpdatedAt = time.Now()
	snapshot := s.prefs
	s.mu.Unlock()

	if err := s.store.Save(ctx, snapshot); err != nil {
		s.mu.Lock()
		s.prefs = previous
		s.mu.Unlock()
		return err
	}
	return nil
}
