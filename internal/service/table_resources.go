package service

import (
	"strconv"
	"strings"

	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/repository"
	"github.com/spec-kit/helpdesk-admin/internal/table"
)

var (
	statusTones = map[string]table.Tone{
		string(domain.TicketStatusOpen):        table.ToneInfo,
		string(domain.TicketStatusInProgress):  table.ToneWarning,
		string(domain.TicketStatusPendingUser): table.ToneDefault,
		string(domain.TicketStatusResolved):    table.ToneSuccess,
		string(domain.TicketStatusClosed):      table.ToneDefault,
	}
	priorityTones = map[string]table.Tone{
		string(domain.TicketPriorityLow):    table.ToneDefault,
		string(domain.TicketPriorityMedium): table.ToneInfo,
		string(domain.TicketPriorityHigh):   table.ToneWarning,
		string(domain.TicketPriorityUrgent): table.ToneDanger,
	}
	roleTones = map[string]table.Tone{
		string(domain.AgentRoleAdmin):      table.ToneDanger,
		string(domain.AgentRoleSupervisor): table.ToneWarning,
		string(domain.AgentRoleAgent):      table.ToneInfo,
	}
	activeTones = map[string]table.Tone{"Yes": table.ToneSuccess, "No": table.ToneDefault}
)

func editActions[T any](protected func(T) bool) func(T, int) []table.Action {
	return func(row T, _ int) []table.Action {
		locked := protected != nil && protected(row)
		return []table.Action{
			{Key: "edit", Label: "Edit", Icon: "edit"},
			{Key: "delete", Label: "Delete", Icon: "delete", Disabled: locked},
		}
	}
}

func formatMinutes(v any) string {
	n, ok := v.(int)
	if !ok {
		return table.Placeholder
	}
	if n%60 == 0 {
		return strconv.Itoa(n/60) + "h"
	}
	return strconv.Itoa(n) + "m"
}

func ticketTable(repo repository.TicketRepository) resourceTable {
	cols := table.MustColumns(
		table.Column[domain.Ticket]{Key: "key", Title: "Key", DataIndex: "ExternalKey", Width: 110, Fixed: table.FixedLeft},
		table.Column[domain.Ticket]{Key: "title", Title: "Title", DataIndex: "Title", Ellipsis: true},
		table.Column[domain.Ticket]{Key: "status", Title: "Status", DataIndex: "Status", Kind: table.CellBadge, Tones: statusTones},
		table.Column[domain.Ticket]{Key: "priority", Title: "Priority", DataIndex: "Priority", Kind: table.CellBadge, Tones: priorityTones},
		table.Column[domain.Ticket]{Key: "customer", Title: "Customer", DataIndex: "CustomerName"},
		table.Column[domain.Ticket]{Key: "department", Title: "Department", DataIndex: "DepartmentName"},
		table.Column[domain.Ticket]{Key: "assignee", Title: "Assignee", DataIndex: "AssigneeName"},
		table.Column[domain.Ticket]{Key: "tags", Title: "Tags", DataIndex: "Tags", Sortable: table.Bool(false)},
		table.Column[domain.Ticket]{Key: "sla_due", Title: "SLA due", DataIndex: "SLADueAt", Kind: table.CellDate},
		table.Column[domain.Ticket]{Key: "updated", Title: "Updated", DataIndex: "UpdatedAt", Kind: table.CellDate},
		table.Column[domain.Ticket]{Key: table.ActionsColumnKey, Kind: table.CellActions, Fixed: table.FixedRight,
			Actions: func(t domain.Ticket, _ int) []table.Action {
				return []table.Action{
					{Key: "view", Label: "View", Icon: "eye"},
					{Key: "assign", Label: "Assign", Icon: "user", Disabled: t.Status == domain.TicketStatusClosed},
				}
			}},
	)
	return &tableResource[domain.Ticket]{
		name:        "tickets",
		title:       "Tickets",
		columns:     cols,
		rowKey:      func(t domain.Ticket) string { return t.ID },
		repo:        repo,
		defaultSort: table.SortState{OrderBy: "updated", Order: table.OrderDesc},
	}
}

func agentTable(repo repository.AgentRepository) resourceTable {
	protected := domain.Agent.Protected
	cols := table.MustColumns(
		table.Column[domain.Agent]{Key: "name", Title: "Name", DataIndex: "Name"},
		table.Column[domain.Agent]{Key: "email", Title: "Email", DataIndex: "Email", Ellipsis: true},
		table.Column[domain.Agent]{Key: "role", Title: "Role", DataIndex: "Role", Kind: table.CellBadge, Tones: roleTones},
		table.Column[domain.Agent]{Key: "department", Title: "Department", DataIndex: "DepartmentName"},
		table.Column[domain.Agent]{Key: "active", Title: "Active", DataIndex: "Active", Kind: table.CellBadge, Tones: activeTones},
		table.Column[domain.Agent]{Key: "last_login", Title: "Last login", DataIndex: "LastLoginAt", Kind: table.CellDate},
		table.Column[domain.Agent]{Key: table.ActionsColumnKey, Kind: table.CellActions, Actions: editActions(protected)},
	)
	return &tableResource[domain.Agent]{
		name:        "agents",
		title:       "Agents",
		columns:     cols,
		rowKey:      func(a domain.Agent) string { return a.ID },
		disabled:    protected,
		repo:        repo,
		defaultSort: table.SortState{OrderBy: "name", Order: table.OrderAsc},
	}
}

func customerTable(repo repository.CustomerRepository) resourceTable {
	cols := table.MustColumns(
		table.Column[domain.Customer]{Key: "name", Title: "Name", DataIndex: "Name"},
		table.Column[domain.Customer]{Key: "email", Title: "Email", DataIndex: "Email", Ellipsis: true},
		table.Column[domain.Customer]{Key: "company", Title: "Company", DataIndex: "Company"},
		table.Column[domain.Customer]{Key: "status", Title: "Status", DataIndex: "Status", Kind: table.CellBadge,
			Tones: map[string]table.Tone{
				string(domain.CustomerStatusActive):    table.ToneSuccess,
				string(domain.CustomerStatusSuspended): table.ToneDanger,
			}},
		table.Column[domain.Customer]{Key: "open_tickets", Title: "Open tickets", DataIndex: "OpenTickets", Align: table.AlignRight, Sortable: table.Bool(false)},
		table.Column[domain.Customer]{Key: "created", Title: "Created", DataIndex: "CreatedAt", Kind: table.CellDate},
		table.Column[domain.Customer]{Key: table.ActionsColumnKey, Kind: table.CellActions, Actions: editActions[domain.Customer](nil)},
	)
	return &tableResource[domain.Customer]{
		name:        "customers",
		title:       "Customers",
		columns:     cols,
		rowKey:      func(c domain.Customer) string { return c.ID },
		repo:        repo,
		defaultSort: table.SortState{OrderBy: "created", Order: table.OrderDesc},
	}
}

func roleTable(repo repository.RoleRepository) resourceTable {
	system := func(r domain.Role) bool { return r.System }
	cols := table.MustColumns(
		table.Column[domain.Role]{Key: "name", Title: "Name", DataIndex: "Name"},
		table.Column[domain.Role]{Key: "description", Title: "Description", DataIndex: "Description", Ellipsis: true, Sortable: table.Bool(false)},
		table.Column[domain.Role]{Key: "permissions", Title: "Permissions", Sortable: table.Bool(false),
			Accessor: func(r domain.Role) any { return len(r.Permissions) },
			Render: func(_ any, r domain.Role, _ int) string {
				if len(r.Permissions) == 0 {
					return "none"
				}
				return strings.Join(r.Permissions, ", ")
			}},
		table.Column[domain.Role]{Key: "system", Title: "System", DataIndex: "System", Kind: table.CellBadge,
			Tones: map[string]table.Tone{"Yes": table.ToneWarning}},
		table.Column[domain.Role]{Key: table.ActionsColumnKey, Kind: table.CellActions, Actions: editActions(system)},
	)
	return &tableResource[domain.Role]{
		name:     "roles",
		title:    "Roles",
		columns:  cols,
		rowKey:   func(r domain.Role) string { return r.ID },
		disabled: system,
		repo:     repo,
	}
}

func departmentTable(repo repository.DepartmentRepository) resourceTable {
	cols := table.MustColumns(
		table.Column[domain.Department]{Key: "name", Title: "Name", DataIndex: "Name"},
		table.Column[domain.Department]{Key: "description", Title: "Description", DataIndex: "Description", Ellipsis: true, Sortable: table.Bool(false)},
		table.Column[domain.Department]{Key: "email", Title: "Email", DataIndex: "Email"},
		table.Column[domain.Department]{Key: "agents", Title: "Agents", DataIndex: "AgentCount", Align: table.AlignRight, Sortable: table.Bool(false)},
		table.Column[domain.Department]{Key: "active", Title: "Active", DataIndex: "IsActive", Kind: table.CellBadge, Tones: activeTones},
		table.Column[domain.Department]{Key: table.ActionsColumnKey, Kind: table.CellActions, Actions: editActions[domain.Department](nil)},
	)
	return &tableResource[domain.Department]{
		name:        "departments",
		title:       "Departments",
		columns:     cols,
		rowKey:      func(d domain.Department) string { return d.ID },
		repo:        repo,
		defaultSort: table.SortState{OrderBy: "name", Order: table.OrderAsc},
	}
}

func slaPolicyTable(repo repository.SLAPolicyRepository) resourceTable {
	cols := table.MustColumns(
		table.Column[domain.SLAPolicy]{Key: "name", Title: "Name", DataIndex: "Name"},
		table.Column[domain.SLAPolicy]{Key: "priority", Title: "Priority", DataIndex: "Priority", Kind: table.CellBadge, Tones: priorityTones},
		table.Column[domain.SLAPolicy]{Key: "first_response", Title: "First response", DataIndex: "FirstResponseMinutes", Align: table.AlignRight,
			Render: func(v any, _ domain.SLAPolicy, _ int) string { return formatMinutes(v) }},
		table.Column[domain.SLAPolicy]{Key: "resolution", Title: "Resolution", DataIndex: "ResolutionMinutes", Align: table.AlignRight,
			Render: func(v any, _ domain.SLAPolicy, _ int) string { return formatMinutes(v) }},
		table.Column[domain.SLAPolicy]{Key: "business_hours", Title: "Business hours", DataIndex: "BusinessHoursOnly", Sortable: table.Bool(false)},
		table.Column[domain.SLAPolicy]{Key: "active", Title: "Active", DataIndex: "Active", Kind: table.CellBadge, Tones: activeTones},
		table.Column[domain.SLAPolicy]{Key: table.ActionsColumnKey, Kind: table.CellActions, Actions: editActions[domain.SLAPolicy](nil)},
	)
	return &tableResource[domain.SLAPolicy]{
		name:        "sla_policies",
		title:       "SLA policies",
		columns:     cols,
		rowKey:      func(p domain.SLAPolicy) string { return p.ID },
		repo:        repo,
		defaultSort: table.SortState{OrderBy: "first_response", Order: table.OrderAsc},
	}
}

func emailSettingTable(repo repository.EmailSettingRepository) resourceTable {
	cols := table.MustColumns(
		table.Column[domain.EmailSetting]{Key: "mailbox", Title: "Mailbox", DataIndex: "Mailbox"},
		table.Column[domain.EmailSetting]{Key: "host", Title: "Host", Accessor: func(e domain.EmailSetting) any {
			return e.Host + ":" + strconv.Itoa(e.Port)
		}},
		table.Column[domain.EmailSetting]{Key: "protocol", Title: "Protocol", DataIndex: "Protocol", Kind: table.CellBadge},
		table.Column[domain.EmailSetting]{Key: "tls", Title: "TLS", DataIndex: "UseTLS", Sortable: table.Bool(false)},
		table.Column[domain.EmailSetting]{Key: "active", Title: "Active", DataIndex: "Active", Kind: table.CellBadge, Tones: activeTones},
		table.Column[domain.EmailSetting]{Key: "last_checked", Title: "Last checked", DataIndex: "LastCheckedAt", Kind: table.CellDate},
		table.Column[domain.EmailSetting]{Key: table.ActionsColumnKey, Kind: table.CellActions, Actions: editActions[domain.EmailSetting](nil)},
	)
	return &tableResource[domain.EmailSetting]{
		name:        "email_settings",
		title:       "Email settings",
		columns:     cols,
		rowKey:      func(e domain.EmailSetting) string { return e.ID },
		repo:        repo,
		defaultSort: table.SortState{OrderBy: "mailbox", Order: table.OrderAsc},
	}
}
