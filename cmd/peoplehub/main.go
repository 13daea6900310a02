package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func (c *client) call(verb, method, path string, payload any) error {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	status, respBody, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("%s falló: status=%d body=%s", verb, status, string(respBody))
	}
	c.print(status, respBody)
	return nil
}

func main() {
	var (
		baseURL = envOr("PEOPLEHUB_URL", "http://localhost:8080")
		token   = envOr("PEOPLEHUB_TOKEN", "")
		out     = envOr("PEOPLEHUB_OUT", "text")
	)

	root := &cobra.Command{
		Use:   "peoplehub",
		Short: "CLI admin para PeopleHub (solo /v1/admin)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("falta el token de sesión (flag --token o env PEOPLEHUB_TOKEN)")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del servicio (env PEOPLEHUB_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Token de sesión con permisos admin (env PEOPLEHUB_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, Token: token, OutFormat: out, HTTP: &http.Client{Timeout: 30 * time.Second}}

	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Operaciones administrativas (vía /v1/admin)",
	}

	// sesiones
	sweepCmd := &cobra.Command{
		Use:   "sweep-sessions",
		Short: "Borrar sesiones vencidas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("sweep-sessions", "POST", "/v1/admin/sessions/sweep", nil)
		},
	}

	// usuarios
	usersCmd := &cobra.Command{Use: "users", Short: "Bloqueo y desbloqueo de cuentas"}
	shorts := map[string]string{
		"disable": "Bloquear una cuenta (revoca todas sus sesiones)",
		"enable":  "Desbloquear una cuenta",
	}
	for _, op := range []string{"disable", "enable"} {
		op := op
		c := &cobra.Command{
			Use:   op + " <user-id>",
			Short: shorts[op],
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cl.call("users "+op, "POST", "/v1/admin/users/"+args[0]+"/"+op, nil)
			},
		}
		usersCmd.AddCommand(c)
	}

	// rbac
	rbacCmd := &cobra.Command{Use: "rbac", Short: "Roles y permisos por organización"}

	var userID, orgID, role, perm string
	addGrantFlags := func(c *cobra.Command, withRole, withPerm bool) {
		c.Flags().StringVar(&userID, "user", "", "ID del usuario")
		c.Flags().StringVar(&orgID, "org", "", "ID de la organización")
		if withRole {
			c.Flags().StringVar(&role, "role", "", "Nombre del rol")
		}
		if withPerm {
			c.Flags().StringVar(&perm, "perm", "", "Key del permiso")
		}
	}

	grantRoleCmd := &cobra.Command{
		Use:   "grant-role",
		Short: "Asignar un rol a un usuario en una organización",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" || orgID == "" || role == "" {
				return fmt.Errorf("--user, --org y --role son requeridos")
			}
			return cl.call("grant-role", "POST", "/v1/admin/rbac/roles/assign",
				map[string]string{"user_id": userID, "organization_id": orgID, "role": role})
		},
	}
	addGrantFlags(grantRoleCmd, true, false)

	revokeRoleCmd := &cobra.Command{
		Use:   "revoke-role",
		Short: "Quitar un rol a un usuario en una organización",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" || orgID == "" || role == "" {
				return fmt.Errorf("--user, --org y --role son requeridos")
			}
			return cl.call("revoke-role", "POST", "/v1/admin/rbac/roles/revoke",
				map[string]string{"user_id": userID, "organization_id": orgID, "role": role})
		},
	}
	addGrantFlags(revokeRoleCmd, true, false)

	grantPermCmd := &cobra.Command{
		Use:   "grant-perm",
		Short: "Dar un permiso directo a un usuario en una organización",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" || orgID == "" || perm == "" {
				return fmt.Errorf("--user, --org y --perm son requeridos")
			}
			return cl.call("grant-perm", "POST", "/v1/admin/rbac/permissions/grant",
				map[string]string{"user_id": userID, "organization_id": orgID, "permission": perm})
		},
	}
	addGrantFlags(grantPermCmd, false, true)

	revokePermCmd := &cobra.Command{
		Use:   "revoke-perm",
		Short: "Quitar un permiso directo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" || orgID == "" || perm == "" {
				return fmt.Errorf("--user, --org y --perm son requeridos")
			}
			return cl.call("revoke-perm", "POST", "/v1/admin/rbac/permissions/revoke",
				map[string]string{"user_id": userID, "organization_id": orgID, "permission": perm})
		},
	}
	addGrantFlags(revokePermCmd, false, true)

	grantsCmd := &cobra.Command{
		Use:   "grants <user-id>",
		Short: "Ver la resolución fresca de un usuario en una organización",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if orgID == "" {
				return fmt.Errorf("--org es requerido")
			}
			return cl.call("grants", "GET",
				"/v1/admin/rbac/users/"+args[0]+"/grants?organization_id="+orgID, nil)
		},
	}
	grantsCmd.Flags().StringVar(&orgID, "org", "", "ID de la organización")

	rbacCmd.AddCommand(grantRoleCmd, revokeRoleCmd, grantPermCmd, revokePermCmd, grantsCmd)

	adminCmd.AddCommand(sweepCmd, usersCmd, rbacCmd)
	root.AddCommand(adminCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
