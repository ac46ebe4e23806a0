package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gurpreet/minishop/internal/config"
	"github.com/gurpreet/minishop/internal/storage"
)

type recordingNotifier struct {
	msgs []Notification
}

func (r *recordingNotifier) Success(text string) {
	r.msgs = append(r.msgs, Notification{Text: text})
}

func (r *recordingNotifier) Error(text string) {
	r.msgs = append(r.msgs, Notification{Err: true, Text: text})
}

func (r *recordingNotifier) lastError() string {
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Err {
			return r.msgs[i].Text
		}
	}
	return ""
}

func newTestCart(t *testing.T) (*CartStore, *recordingNotifier, storage.Store) {
	t.Helper()
	st, err := storage.Open(config.StorageConfig{Backend: "file", Path: t.TempDir()})
	require.NoError(t, err)
	notify := &recordingNotifier{}
	return NewCartStore(st.Slot(CartSlotName), notify), notify, st
}

var phone = Product{ID: "p1", Name: "Phone", PriceCents: 1000, Inventory: 2}

func TestAddRejectsOverInventoryOnEmptyCart(t *testing.T) {
	cart, notify, _ := newTestCart(t)
	ctx := context.Background()

	ok := cart.Add(ctx, phone, 3)
	require.False(t, ok)
	require.Empty(t, cart.Lines())
	require.Equal(t, "Cannot add more than 2 of Phone.", notify.lastError())
}

func TestAddNewLine(t *testing.T) {
	cart, notify, _ := newTestCart(t)
	ctx := context.Background()

	require.True(t, cart.Add(ctx, phone, 2))
	lines := cart.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
	require.Equal(t, int64(2000), lines[0].TotalCents)
	require.Empty(t, notify.msgs)
}

func TestAddMergesExistingLine(t *testing.T) {
	cart, notify, _ := newTestCart(t)
	ctx := context.Background()
	wide := Product{ID: "p2", Name: "Monitor", PriceCents: 25000, Inventory: 5}

	require.True(t, cart.Add(ctx, wide, 2))
	require.True(t, cart.Add(ctx, wide, 2))
	lines := cart.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 4, lines[0].Quantity)
	require.Equal(t, int64(100000), lines[0].TotalCents)

	// one more pair would cross the ceiling
	require.False(t, cart.Add(ctx, wide, 2))
	require.Equal(t, 4, cart.Lines()[0].Quantity)
	require.Equal(t, "Cannot add more than 5 of Monitor.", notify.lastError())
}

func TestIncrementAtCeilingRejected(t *testing.T) {
	cart, notify, _ := newTestCart(t)
	ctx := context.Background()

	require.True(t, cart.Add(ctx, phone, 2))
	require.False(t, cart.Increment(ctx, "p1"))
	require.Equal(t, 2, cart.Lines()[0].Quantity)
	require.Equal(t, "Cannot add more than 2 of Phone.", notify.lastError())
}

func TestQuantityStaysWithinBounds(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()
	p := Product{ID: "p3", Name: "Cable", PriceCents: 500, Inventory: 3}
	require.True(t, cart.Add(ctx, p, 1))

	steps := []func() bool{
		func() bool { return cart.Increment(ctx, "p3") }, // 2
		func() bool { return cart.Increment(ctx, "p3") }, // 3
		func() bool { return cart.Increment(ctx, "p3") }, // rejected, 3
		func() bool { return cart.Decrement(ctx, "p3") }, // 2
		func() bool { return cart.Decrement(ctx, "p3") }, // 1
		func() bool { return cart.Decrement(ctx, "p3") }, // floor, 1
	}
	for _, step := range steps {
		step()
		l := cart.Lines()[0]
		require.GreaterOrEqual(t, l.Quantity, 1)
		require.LessOrEqual(t, l.Quantity, 3)
		require.Equal(t, int64(l.Quantity)*l.PriceCents, l.TotalCents)
	}
	require.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestIncrementAbsentLineIsNoop(t *testing.T) {
	cart, notify, _ := newTestCart(t)
	require.False(t, cart.Increment(context.Background(), "ghost"))
	require.Empty(t, cart.Lines())
	require.Empty(t, notify.msgs)
}

func TestRemoveIsIdempotent(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	require.True(t, cart.Add(ctx, phone, 1))
	cart.Remove(ctx, "p1")
	require.Empty(t, cart.Lines())
	cart.Remove(ctx, "p1") // second call is a no-op
	require.Empty(t, cart.Lines())
}

func TestClearAlwaysEmpties(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	cart.Clear(ctx) // empty cart stays empty
	require.Empty(t, cart.Lines())

	require.True(t, cart.Add(ctx, phone, 2))
	require.True(t, cart.Add(ctx, Product{ID: "p4", Name: "Case", PriceCents: 900, Inventory: 9}, 1))
	cart.Clear(ctx)
	require.Empty(t, cart.Lines())
	require.Zero(t, cart.SubtotalCents())
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := storage.Open(config.StorageConfig{Backend: "file", Path: dir})
	require.NoError(t, err)
	notify := &recordingNotifier{}

	cart := NewCartStore(st.Slot(CartSlotName), notify)
	require.True(t, cart.Add(ctx, Product{ID: "a", Name: "Alpha", PriceCents: 100, Inventory: 10}, 2))
	require.True(t, cart.Add(ctx, Product{ID: "b", Name: "Beta", PriceCents: 250, Inventory: 4}, 1))
	require.True(t, cart.Increment(ctx, "b"))
	want := cart.Lines()

	// simulate a process restart over the same storage dir
	st2, err := storage.Open(config.StorageConfig{Backend: "file", Path: dir})
	require.NoError(t, err)
	cart2 := NewCartStore(st2.Slot(CartSlotName), notify)
	cart2.Load(ctx)
	require.Equal(t, want, cart2.Lines())
}

func TestLoadMalformedDataMeansEmptyCart(t *testing.T) {
	ctx := context.Background()
	st, err := storage.Open(config.StorageConfig{Backend: "file", Path: t.TempDir()})
	require.NoError(t, err)
	slot := st.Slot(CartSlotName)
	require.NoError(t, slot.Save(ctx, []byte("{not json")))

	cart := NewCartStore(slot, &recordingNotifier{})
	cart.Load(ctx)
	require.Empty(t, cart.Lines())
}

func TestSubtotal(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()
	require.True(t, cart.Add(ctx, Product{ID: "a", Name: "Alpha", PriceCents: 100, Inventory: 10}, 3))
	require.True(t, cart.Add(ctx, Product{ID: "b", Name: "Beta", PriceCents: 250, Inventory: 4}, 2))
	require.Equal(t, int64(800), cart.SubtotalCents())
}
