package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/peoplehub/internal/audit"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
	"github.com/dropDatabas3/peoplehub/internal/http/middlewares"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// RBACAdmin agrupa los endpoints de administración de grants. Las mutaciones
// pegan directo al store: la próxima verificación de cualquier sesión ya ve
// el cambio, sin invalidar nada.
type RBACAdmin struct {
	store    core.RBACStore
	recorder *audit.Recorder
}

func NewRBACAdmin(store core.RBACStore, recorder *audit.Recorder) *RBACAdmin {
	return &RBACAdmin{store: store, recorder: recorder}
}

type rbacGrantRequest struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Role           string `json:"role,omitempty"`
	Permission     string `json:"permission,omitempty"`
}

func (h *RBACAdmin) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "rol o permiso no existe")
	case errors.Is(err, core.ErrInvalid):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "datos inválidos")
	case errors.Is(err, core.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", "el grant ya existe")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "error aplicando el cambio")
	}
}

func (h *RBACAdmin) record(r *http.Request, action string, detail map[string]any) {
	if h.recorder == nil {
		return
	}
	actor := ""
	if view := middlewares.GetSession(r.Context()); view != nil {
		actor = view.ID
	}
	h.recorder.Record(r.Context(), actor, action, detail)
}

// AssignRole: POST /v1/admin/rbac/roles/assign
func (h *RBACAdmin) AssignRole(w http.ResponseWriter, r *http.Request) {
	var in rbacGrantRequest
	if !httpx.ReadJSON(w, r, &in) {
		return
	}
	if in.UserID == "" || in.OrganizationID == "" || in.Role == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "user_id, organization_id y role son obligatorios")
		return
	}
	if err := h.store.AssignRole(r.Context(), in.UserID, in.OrganizationID, in.Role); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.record(r, audit.ActionRoleAssigned, map[string]any{
		"target_user_id": in.UserID, "organization_id": in.OrganizationID, "role": in.Role,
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// RevokeRole: POST /v1/admin/rbac/roles/revoke
func (h *RBACAdmin) RevokeRole(w http.ResponseWriter, r *http.Request) {
	var in rbacGrantRequest
	if !httpx.ReadJSON(w, r, &in) {
		return
	}
	if in.UserID == "" || in.OrganizationID == "" || in.Role == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "user_id, organization_id y role son obligatorios")
		return
	}
	if err := h.store.RevokeRole(r.Context(), in.UserID, in.OrganizationID, in.Role); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.record(r, audit.ActionRoleRevoked, map[string]any{
		"target_user_id": in.UserID, "organization_id": in.OrganizationID, "role": in.Role,
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// GrantPermission: POST /v1/admin/rbac/permissions/grant
func (h *RBACAdmin) GrantPermission(w http.ResponseWriter, r *http.Request) {
	var in rbacGrantRequest
	if !httpx.ReadJSON(w, r, &in) {
		return
	}
	if in.UserID == "" || in.OrganizationID == "" || in.Permission == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "user_id, organization_id y permission son obligatorios")
		return
	}
	if err := h.store.GrantPermission(r.Context(), in.UserID, in.OrganizationID, in.Permission); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.record(r, audit.ActionPermGranted, map[string]any{
		"target_user_id": in.UserID, "organization_id": in.OrganizationID, "permission": in.Permission,
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// RevokePermission: POST /v1/admin/rbac/permissions/revoke
func (h *RBACAdmin) RevokePermission(w http.ResponseWriter, r *http.Request) {
	var in rbacGrantRequest
	if !httpx.ReadJSON(w, r, &in) {
		return
	}
	if in.UserID == "" || in.OrganizationID == "" || in.Permission == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "user_id, organization_id y permission son obligatorios")
		return
	}
	if err := h.store.RevokePermission(r.Context(), in.UserID, in.OrganizationID, in.Permission); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.record(r, audit.ActionPermRevoked, map[string]any{
		"target_user_id": in.UserID, "organization_id": in.OrganizationID, "permission": in.Permission,
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// AddRolePermissions: POST /v1/admin/rbac/roles/permissions
func (h *RBACAdmin) AddRolePermissions(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OrganizationID string   `json:"organization_id"`
		Role           string   `json:"role"`
		Permissions    []string `json:"permissions"`
	}
	if !httpx.ReadJSON(w, r, &in) {
		return
	}
	if in.OrganizationID == "" || in.Role == "" || len(in.Permissions) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "organization_id, role y permissions son obligatorios")
		return
	}
	if err := h.store.AddRolePermissions(r.Context(), in.OrganizationID, in.Role, in.Permissions); err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// UserGrants: GET /v1/admin/rbac/users/{id}/grants?organization_id=...
// Devuelve la resolución fresca, útil para depurar accesos.
func (h *RBACAdmin) UserGrants(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	orgID := r.URL.Query().Get("organization_id")
	if userID == "" || orgID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "faltan id de usuario u organization_id")
		return
	}
	perms, err := h.store.ResolvePermissions(r.Context(), userID, orgID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	roles, err := h.store.ResolveRoles(r.Context(), userID, orgID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if perms == nil {
		perms = []string{}
	}
	if roles == nil {
		roles = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user_id":         userID,
		"organization_id": orgID,
		"permissions":     perms,
		"roles":           roles,
	})
}
