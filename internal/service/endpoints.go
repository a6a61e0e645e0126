package service

import "github.com/lasatanica/backoffice/internal/contract"

// Endpoints lists every API operation the services call
func Endpoints() []contract.Endpoint {
	return []contract.Endpoint{
		{Method: "POST", Path: "/auth/login"},
		{Method: "GET", Path: "/user/me"},
		{Method: "POST", Path: "/user/change_password"},
		{Method: "GET", Path: "/user/my_permissions"},
		{Method: "GET", Path: "/user/users_list"},
		{Method: "GET", Path: "/user/user_details"},
		{Method: "POST", Path: "/user/create_user"},
		{Method: "POST", Path: "/user/user_update"},
		{Method: "DELETE", Path: "/user/delete_user"},
		{Method: "POST", Path: "/user/deactivate_user"},
		{Method: "POST", Path: "/user/create_user_link"},
		{Method: "GET", Path: "/economic_movement/get_last_economic_movements"},
		{Method: "GET", Path: "/economic_movement/economic_movements_list"},
		{Method: "GET", Path: "/economic_movement/economic_movement_detail"},
		{Method: "POST", Path: "/economic_movement/create_economic_movement"},
		{Method: "POST", Path: "/economic_movement/update_economic_movement"},
		{Method: "DELETE", Path: "/economic_movement/delete_economic_movement"},
		{Method: "GET", Path: "/categories/categories_list"},
		{Method: "GET", Path: "/accounting_docs/accounting_docs_list"},
		{Method: "DELETE", Path: "/accounting_docs/delete_accounting_doc"},
		{Method: "POST", Path: "/accounting_docs/update_accounting_doc"},
		{Method: "POST", Path: "/accounting_docs/upload_accounting_doc"},
		{Method: "GET", Path: "/accounting_docs/download_accounting_doc"},
		{Method: "GET", Path: "/organization/organizations_list"},
		{Method: "GET", Path: "/organization/organization_details"},
		{Method: "POST", Path: "/organization/create_organization"},
		{Method: "POST", Path: "/organization/organization_update"},
		{Method: "GET", Path: "/home/notifications"},
		{Method: "GET", Path: "/event/events_list"},
		{Method: "GET", Path: "/event/event_details"},
		{Method: "POST", Path: "/event/create_event"},
		{Method: "POST", Path: "/event/update_event"},
		{Method: "GET", Path: "/invoices/get_invoices_by_movement"},
		{Method: "POST", Path: "/invoices/create_invoice"},
		{Method: "POST", Path: "/invoices/update_invoice_data"},
		{Method: "POST", Path: "/invoices/update_invoice_file"},
		{Method: "GET", Path: "/invoices/download_invoice"},
		{Method: "DELETE", Path: "/invoices/delete_invoice"},
		{Method: "GET", Path: "/roles/roles_list"},
		{Method: "GET", Path: "/roles/get_user_roles"},
		{Method: "POST", Path: "/roles/add_role_to_user"},
		{Method: "DELETE", Path: "/roles/remove_role_from_user"},
	}
}
