package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	THEME_DARK  = "dark"
	THEME_LIGHT = "light"

	PERIOD_HOJE   = "hoje"
	PERIOD_7D     = "7d"
	PERIOD_30D    = "30d"
	PERIOD_TOTAL  = "total"
	PERIOD_CUSTOM = "custom"
)

func IsValidPeriodFilter(period string) bool {
	switch period {
	case PERIOD_HOJE, PERIOD_7D, PERIOD_30D, PERIOD_TOTAL, PERIOD_CUSTOM:
		return true
	}
	return false
}

type CustomRange struct {
	From *time.Time `json:"from,omitempty" bson:"from,omitempty"`
	To   *time.Time `json:"to,omitempty" bson:"to,omitempty"`
}

// UIPreferences é o estado de interface persistido por usuário. Campos
// transitórios (modal aberto, drawer aberto) ficam fora daqui de propósito:
// são zerados a cada carga.
type UIPreferences struct {
	ID               bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID           bson.ObjectID  `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Theme            string         `json:"theme,omitempty" bson:"theme,omitempty"`
	PeriodFilter     string         `json:"period_filter,omitempty" bson:"period_filter,omitempty"`
	CustomRange      CustomRange    `json:"custom_range,omitempty" bson:"custom_range,omitempty"`
	SearchQuery      string         `json:"search_query,omitempty" bson:"search_query,omitempty"`
	SidebarCollapsed bool           `json:"sidebar_collapsed" bson:"sidebar_collapsed"`
	KanbanColumns    []KanbanColumn `json:"kanban_columns,omitempty" bson:"kanban_columns,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at" bson:"updated_at,omitempty"`
}
