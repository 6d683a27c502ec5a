package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"rent-server/entities"
	"rent-server/localstate"
	"rent-server/services"
)

const requestTimeout = 10 * time.Second

type step int

const (
	stepEnteringUsername step = iota
	stepEnteringPassword
	stepLoggingIn
	stepDashboard
	stepTenantDetail
)

type tab int

const (
	tabHome tab = iota
	tabTenants
	tabProperties
	tabFinance
)

var tabNames = []string{"Home", "Tenants", "Properties", "Finance"}

type model struct {
	api *apiClient

	step         step
	tab          tab
	cursor       int
	username     string
	currentInput string
	message      string
	quitting     bool

	tenants    *localstate.List[entities.Tenant]
	accounts   *localstate.List[entities.UtilityAccount]
	expenses   *localstate.List[entities.Expense]
	properties []entities.Property
	summary    services.MonthSummary
	month      string
	months     []services.MonthOption

	alerts       []services.Alert
	serverAlerts int
	detailID     string
	live         bool
	now          func() time.Time
}

// seqs are the reducer sequence numbers a refresh was issued under.
type seqs struct {
	tenants, accounts, expenses uint64
}

type loginSuccessMsg struct{}
type loadedMsg struct {
	seqs seqs
	snap snapshot
}
type tenantSavedMsg struct {
	seq    uint64
	tenant entities.Tenant
}
type wsConnectedMsg struct{ conn *websocket.Conn }
type wsEventMsg struct {
	conn *websocket.Conn
	msg  services.AlertMessage
}
type wsClosedMsg struct{ err error }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(api *apiClient) model {
	now := time.Now
	return model{
		api:      api,
		step:     stepEnteringUsername,
		tenants:  localstate.New(func(t entities.Tenant) string { return t.ID }),
		accounts: localstate.New(func(a entities.UtilityAccount) string { return a.ID }),
		expenses: localstate.New(func(e entities.Expense) string { return e.ID }),
		month:    now().Format("2006-01"),
		months:   services.MonthOptions(now()),
		now:      now,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func loginUser(api *apiClient, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := api.login(ctx, username, password); err != nil {
			return errMsg{err}
		}
		return loginSuccessMsg{}
	}
}

func (m model) refresh() tea.Cmd {
	s := seqs{
		tenants:  m.tenants.Begin(),
		accounts: m.accounts.Begin(),
		expenses: m.expenses.Begin(),
	}
	api, month := m.api, m.month
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		snap, err := api.fetchAll(ctx, month)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{seqs: s, snap: snap}
	}
}

func (m model) saveTenantStatus(id string, status entities.TenantStatus) tea.Cmd {
	seq := m.tenants.Begin()
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tenant, err := api.setTenantStatus(ctx, id, status)
		if err != nil {
			return errMsg{err}
		}
		return tenantSavedMsg{seq: seq, tenant: tenant}
	}
}

func connectFeed(api *apiClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		conn, err := api.dial(ctx)
		if err != nil {
			return wsClosedMsg{err}
		}
		return wsConnectedMsg{conn}
	}
}

func waitForAlerts(conn *websocket.Conn) tea.Cmd {
	return func() tea.Msg {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return wsClosedMsg{err}
			}
			var msg services.AlertMessage
			if err := json.Unmarshal(data, &msg); err != nil || msg.Type != services.MessageNotifications {
				continue
			}
			return wsEventMsg{conn: conn, msg: msg}
		}
	}
}

// evaluate re-derives the alerts from the local lists.
func (m *model) evaluate() {
	m.alerts = services.Evaluate(m.tenants.Items(), m.accounts.Items(), m.expenses.Items(), m.now())
}

func (m model) listLen() int {
	switch m.tab {
	case tabHome:
		return len(m.alerts)
	case tabTenants:
		return len(m.tenants.Items())
	case tabProperties:
		return len(m.properties)
	case tabFinance:
		return len(m.summary.Expenses)
	}
	return 0
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginSuccessMsg:
		m.step = stepDashboard
		m.message = successStyle.Render("✓ Logged in as " + m.username)
		return m, tea.Batch(m.refresh(), connectFeed(m.api))

	case loadedMsg:
		m.tenants.Apply(msg.seqs.tenants, localstate.Refresh(msg.snap.tenants))
		m.accounts.Apply(msg.seqs.accounts, localstate.Refresh(msg.snap.accounts))
		m.expenses.Apply(msg.seqs.expenses, localstate.Refresh(msg.snap.expenses))
		m.properties = msg.snap.properties
		m.summary = msg.snap.summary
		m.evaluate()
		if m.cursor >= m.listLen() {
			m.cursor = 0
		}

	case tenantSavedMsg:
		if m.tenants.Apply(msg.seq, localstate.Replace(msg.tenant)) {
			m.evaluate()
			m.message = successStyle.Render("✓ Saved " + msg.tenant.Name)
		}

	case wsConnectedMsg:
		m.live = true
		return m, waitForAlerts(msg.conn)

	case wsEventMsg:
		// the server saw a change; pull the lists it was computed from
		m.serverAlerts = msg.msg.Count
		return m, tea.Batch(m.refresh(), waitForAlerts(msg.conn))

	case wsClosedMsg:
		m.live = false

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		var apiErr *apiError
		if m.step == stepLoggingIn || (errors.As(msg.err, &apiErr) && apiErr.Status == 401) {
			m.step = stepEnteringUsername
			m.currentInput = ""
		}
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.step {
	case stepEnteringUsername, stepEnteringPassword:
		switch key {
		case "enter":
			if m.currentInput == "" {
				return m, nil
			}
			if m.step == stepEnteringUsername {
				m.username = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringPassword
				return m, nil
			}
			password := m.currentInput
			m.currentInput = ""
			m.step = stepLoggingIn
			m.message = "Logging in..."
			return m, loginUser(m.api, m.username, password)
		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}
		default:
			if msg.Type == tea.KeyRunes {
				m.currentInput += string(msg.Runes)
			}
		}
		return m, nil

	case stepTenantDetail:
		switch key {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "esc", "backspace":
			m.step = stepDashboard
		case "l":
			tenant, ok := m.tenants.Get(m.detailID)
			if !ok {
				return m, nil
			}
			next := entities.TenantLatePayment
			if tenant.Status == entities.TenantLatePayment {
				next = entities.TenantActive
			}
			return m, m.saveTenantStatus(tenant.ID, next)
		}
		return m, nil
	}

	if m.step != stepDashboard {
		return m, nil
	}
	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab", "right":
		m.tab = (m.tab + 1) % tab(len(tabNames))
		m.cursor = 0
	case "shift+tab", "left":
		m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		m.cursor = 0
	case "1", "2", "3", "4":
		m.tab = tab(key[0] - '1')
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
	case "r":
		return m, m.refresh()
	case "[", "]":
		if m.tab == tabFinance {
			m.month = shiftMonth(m.months, m.month, key == "[")
			return m, m.refresh()
		}
	case "enter":
		switch m.tab {
		case tabHome:
			if m.cursor < len(m.alerts) && m.alerts[m.cursor].TargetID != "" {
				m.detailID = m.alerts[m.cursor].TargetID
				m.step = stepTenantDetail
			}
		case tabTenants:
			if tenants := m.tenants.Items(); m.cursor < len(tenants) {
				m.detailID = tenants[m.cursor].ID
				m.step = stepTenantDetail
			}
		}
	}
	return m, nil
}

// shiftMonth moves through options (newest first); older means further down.
func shiftMonth(options []services.MonthOption, current string, older bool) string {
	for i, o := range options {
		if o.Value != current {
			continue
		}
		if older && i+1 < len(options) {
			return options[i+1].Value
		}
		if !older && i > 0 {
			return options[i-1].Value
		}
		return current
	}
	return current
}
