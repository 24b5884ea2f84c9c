package loader_test

import (
	"errors"
	"testing"

	"milvus-server/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	a := &stubFeature{name: "a", enabled: true}
	b := &stubFeature{name: "b", enabled: false}
	c := &stubFeature{name: "c", enabled: true}

	mgr := loader.NewManager()
	mgr.Register(a)
	mgr.Register(b)
	mgr.Register(c)

	loaded, err := mgr.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, loaded)
	assert.False(t, b.loaded)
}

func TestManager_LoadAllError(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(&stubFeature{name: "ok", enabled: true})
	mgr.Register(&stubFeature{name: "broken", enabled: true, err: errors.New("boom")})

	loaded, err := mgr.LoadAll(fiber.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []string{"ok"}, loaded)
}
