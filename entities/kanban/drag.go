package kanban

import (
	"context"
	"errors"
	"sync"
)

var ErrNoActiveDrag = errors.New("nenhum arrasto em andamento")

// StatusUpdater aplica a mudança de coluna no banco.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, leadID string, status string) error
}

type activeDrag struct {
	leadID     string
	fromColumn string
}

// DragTracker acompanha o arrasto de um cartão por conexão. Soltar na
// mesma coluna não toca o banco; soltar em outra dispara exatamente uma
// atualização. Em qualquer caso o tracker volta ao repouso, inclusive
// quando a atualização falha (o quadro se corrige na próxima recarga).
type DragTracker struct {
	updater StatusUpdater

	mu      sync.Mutex
	current *activeDrag
}

func NewDragTracker(updater StatusUpdater) *DragTracker {
	return &DragTracker{updater: updater}
}

// StartDrag inicia um arrasto. Um arrasto já em andamento é descartado.
func (t *DragTracker) StartDrag(leadID string, fromColumn string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = &activeDrag{leadID: leadID, fromColumn: fromColumn}
}

// EndDrag cancela o arrasto sem soltar o cartão.
func (t *DragTracker) EndDrag() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = nil
}

func (t *DragTracker) Dragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current != nil
}

// Drop solta o cartão na coluna de destino.
func (t *DragTracker) Drop(ctx context.Context, toColumn string) error {
	t.mu.Lock()
	drag := t.current
	t.current = nil
	t.mu.Unlock()

	if drag == nil {
		return ErrNoActiveDrag
	}
	if drag.fromColumn == toColumn {
		return nil
	}

	return t.updater.UpdateStatus(ctx, drag.leadID, toColumn)
}
