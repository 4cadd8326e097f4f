// Package rbac resolves role-gated navigation. Resolution must never
// block a layout from rendering: unknown roles yield an empty menu and
// malformed entries are dropped, not surfaced as errors.
package rbac

import (
	"github.com/planbookai/planbook/internal/models"
)

// menusByRole holds the ordered navigation entries per role.
var menusByRole = map[models.Role][]models.MenuItem{
	models.RoleAdmin: {
		{Name: "Tổng quan", Href: "/admin", Icon: "FiHome"},
		{Name: "Quản lý người dùng", Href: "/admin/users", Icon: "FiUsers"},
		{Name: "Ngân hàng câu hỏi", Href: "/admin/questions", Icon: "FiBook"},
		{Name: "Đề thi", Href: "/admin/exams", Icon: "FiFileText"},
		{Name: "Giáo án", Href: "/admin/lessons", Icon: "FiBookOpen"},
		{Name: "Khung chương trình", Href: "/admin/curriculum", Icon: "FiLayers"},
		{Name: "Template", Href: "/admin/templates", Icon: "FiGrid"},
		{Name: "Gói dịch vụ", Href: "/admin/packages", Icon: "FiPackage"},
		{Name: "Thống kê", Href: "/admin/analytics", Icon: "FiBarChart"},
		{Name: "Cài đặt", Href: "/admin/settings", Icon: "FiSettings"},
	},
	models.RoleManager: {
		{Name: "Tổng quan", Href: "/admin", Icon: "FiHome"},
		{Name: "Gói dịch vụ", Href: "/admin/packages", Icon: "FiPackage"},
		{Name: "Khung chương trình", Href: "/admin/curriculum", Icon: "FiLayers"},
		{Name: "Template", Href: "/admin/templates", Icon: "FiGrid"},
		{Name: "Thống kê", Href: "/admin/analytics", Icon: "FiBarChart"},
	},
	models.RoleStaff: {
		{Name: "Tổng quan", Href: "/admin", Icon: "FiHome"},
		{Name: "Ngân hàng câu hỏi", Href: "/admin/questions", Icon: "FiBook"},
		{Name: "Đề thi", Href: "/admin/exams", Icon: "FiFileText"},
		{Name: "Khung chương trình", Href: "/admin/curriculum", Icon: "FiLayers"},
		{Name: "Template", Href: "/admin/templates", Icon: "FiGrid"},
	},
	models.RoleTeacher: {
		{Name: "Tổng quan", Href: "/teacher", Icon: "FiHome"},
		{Name: "Giáo án", Href: "/teacher/lessons", Icon: "FiBookOpen"},
		{Name: "Ngân hàng câu hỏi", Href: "/teacher/questions", Icon: "FiBook"},
		{Name: "Đề thi", Href: "/teacher/exams", Icon: "FiFileText"},
		{Name: "Chấm điểm OCR", Href: "/teacher/ocr", Icon: "FiCheckSquare"},
		{Name: "Tài liệu", Href: "/teacher/materials", Icon: "FiFolder"},
		{Name: "Thống kê", Href: "/teacher/analytics", Icon: "FiBarChart"},
		{Name: "Cài đặt", Href: "/teacher/settings", Icon: "FiSettings"},
	},
}

// MenuItemsByRole returns the ordered navigation entries for a role. The
// role is lower-cased before lookup; unknown roles yield an empty slice.
// Every returned entry has passed the shape check.
func MenuItemsByRole(role string) []models.MenuItem {
	items := menusByRole[models.ParseRole(role)]
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if m, ok := ParseMenuItem(item); ok {
			out = append(out, m)
		}
	}
	return out
}

// ParseMenuItem shape-checks a navigation entry of unknown provenance.
// Entries without a non-empty string name and href are rejected; a partial
// menu is always preferable to a failed render.
func ParseMenuItem(raw any) (models.MenuItem, bool) {
	switch v := raw.(type) {
	case models.MenuItem:
		if v.Name == "" || v.Href == "" {
			return models.MenuItem{}, false
		}
		return v, true
	case map[string]any:
		name, _ := v["name"].(string)
		href, _ := v["href"].(string)
		if name == "" || href == "" {
			return models.MenuItem{}, false
		}
		icon, _ := v["icon"].(string)
		return models.MenuItem{Name: name, Href: href, Icon: icon}, true
	default:
		return models.MenuItem{}, false
	}
}

// IsAdminRole reports whether the role may use the administration portal.
func IsAdminRole(role string) bool {
	switch models.ParseRole(role) {
	case models.RoleAdmin, models.RoleManager, models.RoleStaff:
		return true
	}
	return false
}
