// Package rbac holds the static role-permission matrix consulted before any
// mutating entry point. The matrix itself is managed elsewhere; this package
// only answers "may this role perform this action on this module".
package rbac

import "debentra/internal/models"

// Action is one of the four permission verbs.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Module names a permissioned area of the platform.
type Module string

const (
	ModuleSeries     Module = "series"
	ModuleInvestors  Module = "investors"
	ModuleLedger     Module = "ledger"
	ModuleCompliance Module = "compliance"
	ModuleDashboard  Module = "dashboard"
)

type permission struct {
	module Module
	action Action
}

// matrix maps each role to its allowed {module, action} pairs. Viewer roles
// get view everywhere; operations can move money and update compliance but
// cannot delete series or investors; admin can do everything.
var matrix = map[models.Role]map[permission]bool{
	models.RoleAdmin:      buildAll(),
	models.RoleOperations: buildOperations(),
	models.RoleViewer:     buildViewOnly(),
}

func allModules() []Module {
	return []Module{ModuleSeries, ModuleInvestors, ModuleLedger, ModuleCompliance, ModuleDashboard}
}

func buildAll() map[permission]bool {
	perms := make(map[permission]bool)
	for _, m := range allModules() {
		for _, a := range []Action{ActionView, ActionCreate, ActionEdit, ActionDelete} {
			perms[permission{m, a}] = true
		}
	}
	return perms
}

func buildOperations() map[permission]bool {
	perms := buildViewOnly()
	perms[permission{ModuleInvestors, ActionCreate}] = true
	perms[permission{ModuleLedger, ActionCreate}] = true
	perms[permission{ModuleLedger, ActionDelete}] = true
	perms[permission{ModuleCompliance, ActionEdit}] = true
	return perms
}

func buildViewOnly() map[permission]bool {
	perms := make(map[permission]bool)
	for _, m := range allModules() {
		perms[permission{m, ActionView}] = true
	}
	return perms
}

// Can reports whether role may perform action on module. Unknown roles have
// no permissions.
func Can(role models.Role, module Module, action Action) bool {
	return matrix[role][permission{module, action}]
}
