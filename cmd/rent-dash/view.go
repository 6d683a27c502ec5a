package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rent-server/entities"
	"rent-server/services"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("196")).
			Bold(true).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Rent Dashboard"))
	s.WriteString("\n")

	switch m.step {
	case stepEnteringUsername:
		s.WriteString(promptStyle.Render("Enter your username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")
		if m.message != "" {
			s.WriteString("\n" + m.message + "\n")
		}

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn:
		s.WriteString(m.message + "\n")

	case stepDashboard:
		s.WriteString(m.tabBar() + "\n\n")
		switch m.tab {
		case tabHome:
			m.viewHome(&s)
		case tabTenants:
			m.viewTenants(&s)
		case tabProperties:
			m.viewProperties(&s)
		case tabFinance:
			m.viewFinance(&s)
		}
		if m.message != "" {
			s.WriteString("\n" + m.message + "\n")
		}
		s.WriteString(mutedStyle.Render("\ntab/1-4 switch · ↑/↓ move · enter open · r refresh · q quit\n"))

	case stepTenantDetail:
		m.viewTenantDetail(&s)
		if m.message != "" {
			s.WriteString("\n" + m.message + "\n")
		}
		s.WriteString(mutedStyle.Render("\nl toggle late payment · esc back · q quit\n"))
	}

	return s.String()
}

func (m model) tabBar() string {
	parts := make([]string, 0, len(tabNames)+2)
	for i, name := range tabNames {
		style := tabStyle
		if tab(i) == m.tab {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d %s", i+1, name)))
	}
	if n := len(m.alerts); n > 0 {
		parts = append(parts, badgeStyle.Render(fmt.Sprintf("%d", n)))
	}
	if m.live {
		parts = append(parts, successStyle.Render(" ● live"))
	} else {
		parts = append(parts, mutedStyle.Render(" ○ offline"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) row(i int, text string) string {
	if i == m.cursor {
		return fmt.Sprintf("> %s\n", selectedStyle.Render(text))
	}
	return fmt.Sprintf("  %s\n", normalStyle.Render(text))
}

func (m model) viewHome(s *strings.Builder) {
	s.WriteString(promptStyle.Render("Notifications") + "\n\n")
	if len(m.alerts) == 0 {
		s.WriteString(normalStyle.Render("All caught up.") + "\n")
		return
	}
	for i, a := range m.alerts {
		icon := "⚡"
		if a.Category == services.AlertTenant {
			icon = "👤"
		}
		s.WriteString(m.row(i, icon+" "+a.Message))
	}
	if m.serverAlerts != 0 && m.serverAlerts != len(m.alerts) {
		s.WriteString(mutedStyle.Render(fmt.Sprintf("\nserver reports %d alerts, refreshing...", m.serverAlerts)) + "\n")
	}
}

func (m model) viewTenants(s *strings.Builder) {
	tenants := m.tenants.Items()
	s.WriteString(promptStyle.Render(fmt.Sprintf("Tenants (%d)", len(tenants))) + "\n\n")
	for i, t := range tenants {
		s.WriteString(m.row(i, fmt.Sprintf("%-20s %-6s %-12s $%s", t.Name, t.Unit, t.Status, t.Rent.StringFixed(2))))
	}
}

func (m model) viewProperties(s *strings.Builder) {
	s.WriteString(promptStyle.Render(fmt.Sprintf("Properties (%d)", len(m.properties))) + "\n\n")
	expenses := m.expenses.Items()
	for i, p := range m.properties {
		rooms := make([]string, 0, len(p.Rooms))
		for _, r := range p.Rooms {
			rooms = append(rooms, r.Number)
		}
		s.WriteString(m.row(i, fmt.Sprintf("%s · %s", p.Name, p.Address)))
		s.WriteString(mutedStyle.Render(fmt.Sprintf("      rooms: %s · last cleaning: %s",
			strings.Join(rooms, ", "), services.LastCleaningDate(p.ID, expenses))) + "\n")
	}
}

func (m model) viewFinance(s *strings.Builder) {
	label := m.month
	for _, o := range m.months {
		if o.Value == m.month {
			label = o.Label
		}
	}
	s.WriteString(promptStyle.Render(label) + mutedStyle.Render("  ([ older · ] newer)") + "\n\n")
	s.WriteString(fmt.Sprintf("  Income   %s\n", successStyle.Render("$"+m.summary.TotalIncome.StringFixed(2))))
	s.WriteString(fmt.Sprintf("  Expenses %s\n", errorStyle.Render("$"+m.summary.TotalExpenses.StringFixed(2))))
	s.WriteString(fmt.Sprintf("  Net      $%s\n\n", m.summary.NetBalance.StringFixed(2)))
	for i, e := range m.summary.Expenses {
		sign := "-"
		if e.Type == entities.EntryIncome {
			sign = "+"
		}
		s.WriteString(m.row(i, fmt.Sprintf("%s %-28s %-12s %s$%s", e.Date, e.Title, e.Category, sign, e.Amount.StringFixed(2))))
	}

	expenses := m.expenses.Items()
	accounts := m.accounts.Items()
	if len(accounts) > 0 {
		s.WriteString("\n" + promptStyle.Render("Utilities") + "\n")
	}
	for _, a := range accounts {
		paid, last := services.UtilityStatus(a.ID, expenses, m.now())
		state := errorStyle.Render("unpaid")
		if paid {
			state = successStyle.Render("paid")
		}
		s.WriteString(fmt.Sprintf("    %-12s %-20s %s (last: %s)\n", a.Type, a.Provider, state, last))
	}
}

func (m model) viewTenantDetail(s *strings.Builder) {
	t, ok := m.tenants.Get(m.detailID)
	if !ok {
		s.WriteString(errorStyle.Render("Tenant no longer exists.") + "\n")
		return
	}
	s.WriteString(promptStyle.Render(t.Name) + "\n\n")
	fields := [][2]string{
		{"Unit", t.Unit},
		{"Property", t.Property},
		{"Status", string(t.Status)},
		{"Lease", t.LeaseStart + " → " + t.LeaseEnd},
		{"Rent", "$" + t.Rent.StringFixed(2)},
		{"Deposit", "$" + t.Deposit.StringFixed(2)},
		{"Notes", t.Notes},
	}
	for _, f := range fields {
		s.WriteString(fmt.Sprintf("  %-9s %s\n", f[0]+":", f[1]))
	}
	if services.LeaseExpired(t, m.now()) {
		s.WriteString("\n" + errorStyle.Render("Lease expired") + "\n")
	}
}
