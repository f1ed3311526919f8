package kanban

import (
	"api/schemas"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingUpdater struct {
	calls []string
	err   error
}

func (u *recordingUpdater) UpdateStatus(ctx context.Context, leadID string, status string) error {
	u.calls = append(u.calls, leadID+"->"+status)
	return u.err
}

func TestDragTracker(t *testing.T) {
	ctx := context.Background()

	t.Run("Soltar na mesma coluna não toca o banco", func(t *testing.T) {
		updater := &recordingUpdater{}
		tracker := NewDragTracker(updater)

		tracker.StartDrag("lead1", schemas.LEAD_STATUS_NOVO)
		assert.NoError(t, tracker.Drop(ctx, schemas.LEAD_STATUS_NOVO))
		assert.Empty(t, updater.calls)
		assert.False(t, tracker.Dragging())
	})

	t.Run("Soltar em outra coluna dispara uma atualização", func(t *testing.T) {
		updater := &recordingUpdater{}
		tracker := NewDragTracker(updater)

		tracker.StartDrag("lead1", schemas.LEAD_STATUS_NOVO)
		assert.NoError(t, tracker.Drop(ctx, schemas.LEAD_STATUS_ATENDIMENTO))
		assert.Equal(t, []string{"lead1->Atendimento"}, updater.calls)
		assert.False(t, tracker.Dragging())
	})

	t.Run("Novo arrasto descarta o anterior", func(t *testing.T) {
		updater := &recordingUpdater{}
		tracker := NewDragTracker(updater)

		tracker.StartDrag("lead1", schemas.LEAD_STATUS_NOVO)
		tracker.StartDrag("lead2", schemas.LEAD_STATUS_ORCAMENTO)
		assert.NoError(t, tracker.Drop(ctx, schemas.LEAD_STATUS_FECHADO))
		assert.Equal(t, []string{"lead2->Fechado"}, updater.calls)
	})

	t.Run("Cancelar arrasto volta ao repouso", func(t *testing.T) {
		updater := &recordingUpdater{}
		tracker := NewDragTracker(updater)

		tracker.StartDrag("lead1", schemas.LEAD_STATUS_NOVO)
		tracker.EndDrag()
		assert.False(t, tracker.Dragging())
		assert.ErrorIs(t, tracker.Drop(ctx, schemas.LEAD_STATUS_FECHADO), ErrNoActiveDrag)
		assert.Empty(t, updater.calls)
	})

	t.Run("Falha na atualização ainda volta ao repouso", func(t *testing.T) {
		updater := &recordingUpdater{err: errors.New("mongo fora do ar")}
		tracker := NewDragTracker(updater)

		tracker.StartDrag("lead1", schemas.LEAD_STATUS_NOVO)
		assert.Error(t, tracker.Drop(ctx, schemas.LEAD_STATUS_FECHADO))
		assert.False(t, tracker.Dragging())
	})

	t.Run("Soltar sem arrasto é erro", func(t *testing.T) {
		tracker := NewDragTracker(&recordingUpdater{})
		assert.ErrorIs(t, tracker.Drop(ctx, schemas.LEAD_STATUS_NOVO), ErrNoActiveDrag)
	})
}
