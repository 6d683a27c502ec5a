package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent-server/auth"
	"rent-server/cache"
	"rent-server/confs"
	"rent-server/entities"
	"rent-server/repositories"
	"rent-server/server"
	"rent-server/services"
)

var fixedNow = func() time.Time { return time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC) }

func testModel() model {
	m := initialModel(newAPIClient("http://localhost"))
	m.now = fixedNow
	m.step = stepDashboard
	return m
}

func loaded(m model, snap snapshot) model {
	s := seqs{tenants: m.tenants.Begin(), accounts: m.accounts.Begin(), expenses: m.expenses.Begin()}
	next, _ := m.Update(loadedMsg{seqs: s, snap: snap})
	return next.(model)
}

func TestLoadedSnapshotDrivesAlerts(t *testing.T) {
	m := loaded(testModel(), snapshot{
		tenants: []entities.Tenant{
			{ID: "t1", Name: "Ann", Unit: "1A", Status: entities.TenantLatePayment},
			{ID: "t2", Name: "Ben", Unit: "1B", Status: entities.TenantActive, LeaseEnd: "2030-01-01"},
		},
		accounts: []entities.UtilityAccount{{ID: "u1", Type: entities.UtilityWater, Provider: "City"}},
	})

	require.Len(t, m.alerts, 2)
	assert.Equal(t, "util-u1", m.alerts[0].Key)
	assert.Equal(t, "tenant-t1", m.alerts[1].Key)
	assert.Contains(t, m.View(), "Water payment overdue for City")
}

func TestEnterOnTenantAlertOpensDetail(t *testing.T) {
	m := loaded(testModel(), snapshot{
		tenants: []entities.Tenant{{ID: "t1", Name: "Ann", Unit: "1A", Status: entities.TenantLatePayment, Rent: decimal.NewFromInt(800)}},
	})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	assert.Equal(t, stepTenantDetail, m.step)
	assert.Equal(t, "t1", m.detailID)
	assert.Contains(t, m.View(), "$800.00")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stepDashboard, next.(model).step)
}

func TestStaleTenantSaveIsDropped(t *testing.T) {
	m := loaded(testModel(), snapshot{
		tenants: []entities.Tenant{{ID: "t1", Name: "Ann", Unit: "1A", Status: entities.TenantActive, LeaseEnd: "2030-01-01"}},
	})
	slow := m.tenants.Begin()
	fast := m.tenants.Begin()

	next, _ := m.Update(tenantSavedMsg{seq: fast, tenant: entities.Tenant{ID: "t1", Name: "Ann", Unit: "1A", Status: entities.TenantLatePayment}})
	m = next.(model)
	require.Len(t, m.alerts, 1)

	next, _ = m.Update(tenantSavedMsg{seq: slow, tenant: entities.Tenant{ID: "t1", Name: "Ann", Unit: "1A", Status: entities.TenantActive, LeaseEnd: "2030-01-01"}})
	m = next.(model)
	got, _ := m.tenants.Get("t1")
	assert.Equal(t, entities.TenantLatePayment, got.Status)
	assert.Len(t, m.alerts, 1)
}

func TestTabSwitching(t *testing.T) {
	m := testModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	m = next.(model)
	assert.Equal(t, tabFinance, m.tab)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabHome, next.(model).tab)
}

func TestLoginInput(t *testing.T) {
	m := initialModel(newAPIClient("http://localhost"))
	for _, r := range "ann" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	assert.Equal(t, "ann", m.username)
	assert.Equal(t, stepEnteringPassword, m.step)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pw")})
	m = next.(model)
	assert.NotContains(t, m.View(), "pw")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stepLoggingIn, next.(model).step)
	assert.NotNil(t, cmd)
}

func TestShiftMonth(t *testing.T) {
	opts := services.MonthOptions(fixedNow())
	assert.Equal(t, "2024-05", shiftMonth(opts, "2024-06", true))
	assert.Equal(t, "2024-07", shiftMonth(opts, "2024-06", false))
	assert.Equal(t, "2024-01", shiftMonth(opts, "2024-01", true))
	assert.Equal(t, "nope", shiftMonth(opts, "nope", true))
}

func TestClientAgainstServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := repositories.NewMemoryStore(cache.MockData())
	cfg := &confs.Config{AlertInterval: time.Hour}
	settings := confs.NewSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	srv := server.NewServer(cfg, repositories.StaticSource{Store: store}, func() *repositories.Store { return store }, settings)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx := context.Background()
	_, err := auth.NewService(store.Users).Register(ctx, "ann", "ann@example.com", "pw")
	require.NoError(t, err)

	api := newAPIClient(ts.URL)
	_, err = api.fetchAll(ctx, "2024-03")
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	require.Error(t, api.login(ctx, "ann", "wrong"))
	require.NoError(t, api.login(ctx, "ann", "pw"))

	snap, err := api.fetchAll(ctx, "2024-03")
	require.NoError(t, err)
	assert.Len(t, snap.tenants, 1)
	assert.Len(t, snap.accounts, 2)
	assert.Len(t, snap.properties, 2)
	assert.True(t, decimal.NewFromInt(370).Equal(snap.summary.TotalExpenses))

	tenant, err := api.setTenantStatus(ctx, snap.tenants[0].ID, entities.TenantLatePayment)
	require.NoError(t, err)
	assert.Equal(t, entities.TenantLatePayment, tenant.Status)

	conn, err := api.dial(ctx)
	require.NoError(t, err)
	defer conn.Close()
	msg := waitForAlerts(conn)()
	event, ok := msg.(wsEventMsg)
	require.True(t, ok, "%T", msg)
	assert.Equal(t, 3, event.msg.Count)
}
