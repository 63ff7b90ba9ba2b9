package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"graspnest.app/api-server/core/config"
	"graspnest.app/api-server/internal/identity"
)

// fakeKeycloak is a minimal stand-in for the admin and OIDC endpoints
// the client touches.
type fakeKeycloak struct {
	server *httptest.Server

	userCreates  int
	roleMappings []string
	userDeletes  []string
	actionEmails []string
	knownEmails  map[string]string // email -> user id
	rejectLogin  bool
}

func newFakeKeycloak() *fakeKeycloak {
	f := &fakeKeycloak{knownEmails: map[string]string{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /realms/master/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "admin-token"})
	})

	mux.HandleFunc("POST /realms/graspnest/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectLogin {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "user-token",
			"refresh_token": "user-refresh",
			"token_type":    "Bearer",
			"expires_in":    300,
		})
	})

	mux.HandleFunc("POST /admin/realms/graspnest/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.userCreates++
		w.Header().Set("Location", f.server.URL+"/admin/realms/graspnest/users/kc-user-1")
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("GET /admin/realms/graspnest/clients", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("clientId") != "GraspNestClient" {
			json.NewEncoder(w).Encode([]any{})
			return
		}
		json.NewEncoder(w).Encode([]map[string]string{{"id": "client-internal-id"}})
	})

	mux.HandleFunc("GET /admin/realms/graspnest/clients/client-internal-id/roles/", func(w http.ResponseWriter, r *http.Request) {
		role := strings.TrimPrefix(r.URL.Path, "/admin/realms/graspnest/clients/client-internal-id/roles/")
		json.NewEncoder(w).Encode(map[string]string{"id": "role-" + role, "name": role})
	})

	mux.HandleFunc("POST /admin/realms/graspnest/users/kc-user-1/role-mappings/clients/client-internal-id", func(w http.ResponseWriter, r *http.Request) {
		var roles []map[string]string
		json.NewDecoder(r.Body).Decode(&roles)
		for _, rr := range roles {
			f.roleMappings = append(f.roleMappings, rr["name"])
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("DELETE /admin/realms/graspnest/users/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/admin/realms/graspnest/users/")
		f.userDeletes = append(f.userDeletes, id)
		if id == "already-gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /admin/realms/graspnest/users", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if id, ok := f.knownEmails[email]; ok {
			json.NewEncoder(w).Encode([]map[string]string{{"id": id}})
			return
		}
		json.NewEncoder(w).Encode([]any{})
	})

	mux.HandleFunc("PUT /admin/realms/graspnest/users/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/realms/graspnest/users/")
		id := strings.TrimSuffix(path, "/execute-actions-email")
		f.actionEmails = append(f.actionEmails, id)
		w.WriteHeader(http.StatusNoContent)
	})

	f.server = httptest.NewServer(mux)
	return f
}

var _ = Describe("KeycloakClient", func() {
	var (
		fake   *fakeKeycloak
		client *identity.KeycloakClient
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = newFakeKeycloak()
		DeferCleanup(fake.server.Close)

		client = identity.NewKeycloakClient(config.KeycloakConfig{
			BaseURL:       fake.server.URL,
			Realm:         "graspnest",
			ClientID:      "GraspNestClient",
			AdminClientID: "admin-cli",
			AdminUsername: "admin",
			AdminPassword: "admin",
			RedirectURI:   "https://app.graspnest.test",
		}, fake.server.Client())
	})

	Describe("CreateUser", func() {
		It("returns the id from the Location header and assigns client roles", func() {
			id, err := client.CreateUser(ctx, identity.CreateUserParams{
				Username:  "ada@acme.io",
				FirstName: "Ada",
				Roles:     []string{"OrgAdmin"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("kc-user-1"))
			Expect(fake.userCreates).To(Equal(1))
			Expect(fake.roleMappings).To(ConsistOf("OrgAdmin"))
		})
	})

	Describe("DeleteUser", func() {
		It("deletes and tolerates an already-removed identity", func() {
			Expect(client.DeleteUser(ctx, "kc-user-1")).To(Succeed())
			Expect(client.DeleteUser(ctx, "already-gone")).To(Succeed())
			Expect(fake.userDeletes).To(Equal([]string{"kc-user-1", "already-gone"}))
		})
	})

	Describe("SendPasswordResetEmail", func() {
		It("reports false for unknown users without an error", func() {
			sent, err := client.SendPasswordResetEmail(ctx, "ghost@acme.io")
			Expect(err).NotTo(HaveOccurred())
			Expect(sent).To(BeFalse())
			Expect(fake.actionEmails).To(BeEmpty())
		})

		It("triggers the update-password email for known users", func() {
			fake.knownEmails["ada@acme.io"] = "kc-user-1"

			sent, err := client.SendPasswordResetEmail(ctx, "ada@acme.io")
			Expect(err).NotTo(HaveOccurred())
			Expect(sent).To(BeTrue())
			Expect(fake.actionEmails).To(Equal([]string{"kc-user-1"}))
		})
	})

	Describe("Authenticate", func() {
		It("returns the token pair on success", func() {
			pair, err := client.Authenticate(ctx, "ada@acme.io", "secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(pair.AccessToken).To(Equal("user-token"))
			Expect(pair.RefreshToken).To(Equal("user-refresh"))
		})

		It("maps a provider rejection to ErrAuthFailed", func() {
			fake.rejectLogin = true

			_, err := client.Authenticate(ctx, "ada@acme.io", "wrong")
			Expect(err).To(MatchError(identity.ErrAuthFailed))
		})
	})

	Describe("SendCredentialSetupEmail", func() {
		It("puts the execute-actions-email request", func() {
			Expect(client.SendCredentialSetupEmail(ctx, "kc-user-1")).To(Succeed())
			Expect(fake.actionEmails).To(Equal([]string{"kc-user-1"}))
		})
	})
})
