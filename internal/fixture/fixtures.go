package fixture

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Canned controller responses shared by package tests.
const (
	LoginTokenBody  = `{"imdata":[{"aaaLogin":{"attributes":{"token":"TOKEN","userName":"admin","version":"5.2(7f)","refreshTimeoutSeconds":"600"}}}]}`
	LoginNullBody   = `{"imdata":[{"aaaLogin":{"attributes":{"token":null}}}]}`
	LoginDeniedBody = `{"totalCount":"1","imdata":[{"error":{"attributes":{"code":"401","text":"Username or password is incorrect"}}}]}`
	AckBody         = `{"totalCount":"0","imdata":[]}`
	NoImdataBody    = `{"totalCount":"0"}`
)

// Login answers aaaLogin.json with body.
func Login(body string) Route {
	return Post("aaaLogin.json", "aaaUser", body)
}

// LoginWithToken answers aaaLogin.json with a successful login for token.
func LoginWithToken(token string) Route {
	encoded, _ := json.Marshal(token)

	return Login(fmt.Sprintf(`{"imdata":[{"aaaLogin":{"attributes":{"token":%s}}}]}`, encoded))
}

// Tenants renders a class/fvTenant.json response listing names.
func Tenants(names ...string) string {
	items := make([]map[string]interface{}, 0, len(names))

	for _, name := range names {
		items = append(items, map[string]interface{}{
			"fvTenant": map[string]interface{}{
				"attributes": map[string]interface{}{
					"dn":   "uni/tn-" + name,
					"name": name,
				},
			},
		})
	}

	body, _ := json.Marshal(map[string]interface{}{
		"totalCount": fmt.Sprint(len(names)),
		"imdata":     items,
	})

	return string(body)
}

// TenantList answers class/fvTenant.json with the given tenants.
func TenantList(names ...string) Route {
	return Get("class/fvTenant.json", Tenants(names...))
}

// Unauthorized answers path with the controller's 403 token error.
func Unauthorized(method, path string) Route {
	return Route{
		Method: method,
		Path:   path,
		Status: http.StatusForbidden,
		Body:   []byte(`{"totalCount":"1","imdata":[{"error":{"attributes":{"code":"403","text":"Token was invalid (Error: Token timeout)"}}}]}`),
	}
}
