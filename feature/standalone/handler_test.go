package standalone_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"milvus-server/core/loader"
	"milvus-server/feature/standalone"
	"milvus-server/feature/standalone/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Reporter) {
	app := fiber.New()
	reporter := new(mocks.Reporter)
	manager := loader.NewManager()
	manager.Register(standalone.NewFeature(reporter, zap.NewNop(), true))
	loaded, err := manager.LoadAll(app)
	require.NoError(t, err)
	require.Equal(t, []string{"standalone"}, loaded)
	return app, reporter
}

func TestHandleStatus(t *testing.T) {
	app, reporter := setupTestApp(t)
	reporter.On("Status").Return(standalone.Status{
		Session:    "abc",
		State:      "Running",
		Running:    true,
		PID:        42,
		Address:    "127.0.0.1",
		ListenPort: 19530,
	})

	req := httptest.NewRequest("GET", "/server/status", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Running", body["state"])
	assert.Equal(t, true, body["running"])
	assert.Equal(t, float64(19530), body["listen_port"])
	assert.NotContains(t, body, "started_at")
	reporter.AssertExpectations(t)
}

func TestHandleConfig(t *testing.T) {
	app, reporter := setupTestApp(t)
	reporter.On("ConfigItems").Return([]standalone.ConfigItem{
		{Name: "proxy_port", Type: "integer", Value: 19530},
		{Name: "etcd_root_path", Type: "string", Value: "by-dev"},
	})

	req := httptest.NewRequest("GET", "/server/config", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Items []standalone.ConfigItem `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, "etcd_root_path", body.Items[1].Name)
	assert.Equal(t, "by-dev", body.Items[1].Value)
}

func TestFeature_Disabled(t *testing.T) {
	f := standalone.NewFeature(new(mocks.Reporter), nil, false)
	assert.Equal(t, "standalone", f.Name())
	assert.False(t, f.IsEnabled())

	manager := loader.NewManager()
	manager.Register(f)
	loaded, err := manager.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
