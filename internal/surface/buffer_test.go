package surface

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferDrawing(t *testing.T) {
	b := NewBuffer()
	b.Reset("Usuarios")
	b.Text("3 usuarios")
	b.Table(Table{Headers: []string{"Nombre"}, Rows: [][]string{{"Ana"}, {"Luis"}}})
	b.Fields(Field{Label: "Email", Value: "a@b.es"})
	b.Actions(Action{Key: "n", Label: "Nuevo"})
	b.Form(Form{Title: "Alta"})

	frame := b.Snapshot()
	assert.Equal(t, "Usuarios", frame.Title)
	require.Len(t, frame.Blocks, 5)
	assert.Equal(t, BlockText, frame.Blocks[0].Kind)
	assert.Len(t, frame.Tables(), 1)
	assert.Len(t, frame.Actions(), 1)
	assert.Len(t, frame.Forms(), 1)
}

func TestBufferResetKeepsNotifications(t *testing.T) {
	b := NewBuffer()
	b.Notify(LevelError, "boom")
	b.Reset("Inicio")

	frame := b.Snapshot()
	assert.Empty(t, frame.Blocks)
	n, ok := frame.LastNotification()
	require.True(t, ok)
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "boom", n.Message)
}

func TestBufferLoadingNests(t *testing.T) {
	b := NewBuffer()
	b.HideLoading()
	assert.False(t, b.Snapshot().Loading)

	b.ShowLoading("Cargando...")
	b.ShowLoading("Guardando...")
	b.HideLoading()
	assert.True(t, b.Snapshot().Loading)

	b.HideLoading()
	frame := b.Snapshot()
	assert.False(t, frame.Loading)
	assert.Empty(t, frame.LoadingLabel)
}

func TestBufferVersionAdvances(t *testing.T) {
	b := NewBuffer()
	v0 := b.Snapshot().Version
	b.Text("x")
	assert.Greater(t, b.Snapshot().Version, v0)
}

func TestBufferNotificationCap(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < maxNotifications+10; i++ {
		b.Notify(LevelInfo, "n")
	}
	assert.Len(t, b.Snapshot().Notifications, maxNotifications)
}

func TestBufferConcurrentAccess(t *testing.T) {
	b := NewBuffer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Text("x")
			b.Notify(LevelInfo, "y")
		}()
		go func() {
			defer wg.Done()
			_ = b.Snapshot()
		}()
	}
	wg.Wait()
	assert.Len(t, b.Snapshot().Blocks, 8)
}

func TestTableSelect(t *testing.T) {
	b := NewBuffer()
	picked := -1
	b.Table(Table{Rows: [][]string{{"a"}, {"b"}}, Select: func(ctx context.Context, row int) { picked = row }})

	b.Snapshot().Tables()[0].Select(context.Background(), 1)
	assert.Equal(t, 1, picked)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
}
