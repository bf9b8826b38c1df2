// Package access описывает, какие страницы и действия доступны каждой роли.
package access

import (
	"slices"

	"github.com/mmeshcher/flora-console/internal/model"
)

// Page — раздел консоли.
type Page string

const (
	PageHome     Page = "home"
	PageSales    Page = "sales"
	PageOrders   Page = "orders"
	PageProducts Page = "products"
	PageRefill   Page = "refill"
	PageReports  Page = "reports"
	PageUsers    Page = "users"
)

// Action обозначает действие внутри раздела, доступное не всем ролям.
type Action string

const (
	ActionRefillView     Action = "refill.view"
	ActionRefillEdit     Action = "refill.edit"
	ActionProductsManage Action = "products.manage"
	ActionUsersManage    Action = "users.manage"
	ActionReportsView    Action = "reports.view"
)

var everyone = model.Roles

var (
	admin      = []model.Role{model.RoleAdmin}
	management = []model.Role{model.RoleAdmin, model.RoleSupervisor}
	refillers  = []model.Role{model.RoleAdmin, model.RoleSupervisor, model.RoleRefill}
)

// MenuItem описывает пункт бокового меню.
type MenuItem struct {
	Page  Page   `json:"page"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type pageRule struct {
	item  MenuItem
	roles []model.Role
}

// Порядок совпадает с порядком пунктов меню.
var pages = []pageRule{
	{item: MenuItem{Page: PageHome, Label: "Inicio", Path: "/"}, roles: everyone},
	{item: MenuItem{Page: PageSales, Label: "Ventas", Path: "/sales"}, roles: everyone},
	{item: MenuItem{Page: PageOrders, Label: "Pedidos", Path: "/orders"}, roles: everyone},
	{item: MenuItem{Page: PageProducts, Label: "Productos", Path: "/products"}, roles: management},
	{item: MenuItem{Page: PageRefill, Label: "Reposición", Path: "/refill"}, roles: refillers},
	{item: MenuItem{Page: PageReports, Label: "Reportes", Path: "/reports"}, roles: admin},
	{item: MenuItem{Page: PageUsers, Label: "Usuarios", Path: "/users"}, roles: admin},
}

var actions = map[Action][]model.Role{
	ActionRefillView:     refillers,
	ActionRefillEdit:     management,
	ActionProductsManage: management,
	ActionUsersManage:    admin,
	ActionReportsView:    admin,
}

// CanVisit сообщает, может ли роль открыть страницу. Неизвестные страницы закрыты.
func CanVisit(role model.Role, page Page) bool {
	for _, p := range pages {
		if p.item.Page == page {
			return slices.Contains(p.roles, role)
		}
	}
	return false
}

// Can сообщает, доступно ли роли действие.
func Can(role model.Role, action Action) bool {
	return slices.Contains(actions[action], role)
}

// Menu возвращает пункты меню, видимые роли.
func Menu(role model.Role) []MenuItem {
	items := make([]MenuItem, 0, len(pages))
	for _, p := range pages {
		if slices.Contains(p.roles, role) {
			items = append(items, p.item)
		}
	}
	return items
}

// Permissions возвращает список действий, доступных роли, в фиксированном порядке.
func Permissions(role model.Role) []Action {
	var res []Action
	for _, a := range []Action{ActionRefillView, ActionRefillEdit, ActionProductsManage, ActionUsersManage, ActionReportsView} {
		if Can(role, a) {
			res = append(res, a)
		}
	}
	return res
}
