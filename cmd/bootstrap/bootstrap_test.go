package bootstrap

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"telesalud-admin/config"
	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/infrastructure/cache"
	"telesalud-admin/internal/infrastructure/memory"
	"telesalud-admin/internal/infrastructure/reniec"
	"telesalud-admin/internal/service"
	"telesalud-admin/pkg/jwt"

	"github.com/sirupsen/logrus"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type apiClient struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (c *apiClient) do(method, path string, body interface{}) (int, envelope, *http.Response) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			c.t.Fatalf("%s %s: invalid json %s", method, path, raw)
		}
	}
	return resp.StatusCode, env, resp
}

func newTestServer(t *testing.T) *apiClient {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("numero") != "44556677" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"dni no encontrado"}`))
			return
		}
		w.Write([]byte(`{"nombres":"ROSA","apellidoPaterno":"HUAMAN","apellidoMaterno":"TORRES","tipoDocumento":"1","numeroDocumento":"44556677","digitoVerificador":"3"}`))
	}))
	t.Cleanup(registry.Close)

	cfg := &config.Config{
		App:     config.AppConfig{Env: "development", CORSAllowedOrigin: "http://localhost:5173"},
		JWT:     config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour},
		Reniec:  config.ReniecConfig{BaseURL: registry.URL, APIToken: "token"},
		Cache:   config.CacheConfig{QueryTTL: time.Minute},
		Session: config.SessionConfig{CookieName: "sid", TTL: time.Hour},
	}

	tables, err := NewMemoryTables()
	if err != nil {
		t.Fatal(err)
	}
	tokens := jwt.NewJWTService(cfg.JWT)
	infra := &Infrastructure{
		Tables:     tables,
		Tokens:     tokens,
		Auth:       service.NewLocalAuthService(log, memory.NewUserRepository(), tokens),
		Identity:   reniec.NewClient(cfg.Reniec, time.Second, log),
		QueryCache: cache.NewMemoryQueryCache(cfg.Cache.QueryTTL),
		Sessions:   cache.NewMemorySessionStore(cfg.Session.TTL),
	}

	server := httptest.NewServer(NewHandler(cfg, log, infra))
	t.Cleanup(server.Close)

	jar, _ := cookiejar.New(nil)
	return &apiClient{
		t:    t,
		base: server.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func TestAdminFlow(t *testing.T) {
	api := newTestServer(t)

	// Guarded before sign-in.
	status, _, resp := api.do(http.MethodGet, "/api/v1/admin/pacientes", nil)
	if status != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", status, resp.Header.Get("Location"))
	}

	status, env, _ := api.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "admin@telesalud.pe", "password": "secret1", "username": "admin",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: %d %s", status, env.Message)
	}

	status, env, _ = api.do(http.MethodGet, "/api/v1/auth/me", nil)
	var me entity.CurrentUser
	json.Unmarshal(env.Data, &me)
	if status != http.StatusOK || me.Username != "admin" {
		t.Fatalf("me: %d %+v", status, me)
	}

	// Validation happens before any store call.
	status, env, _ = api.do(http.MethodPost, "/api/v1/admin/pacientes", map[string]string{"dni": "123"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected validation error, got %d", status)
	}
	var fieldErrs map[string]string
	json.Unmarshal(env.Error, &fieldErrs)
	if fieldErrs["dni"] == "" || fieldErrs["sexo"] == "" {
		t.Errorf("expected per-field errors, got %v", fieldErrs)
	}

	for _, p := range []map[string]string{
		{"dni": "11111111", "nombre": "Juan", "apellido": "Perez", "sexo": "Masculino", "direccion": "Av. Grau 123", "fecha_nacimiento": "1980-01-01", "telefono": "987654321"},
		{"dni": "22222222", "nombre": "Maria", "apellido": "Lopez", "sexo": "Femenino", "direccion": "Jr. Puno 456", "fecha_nacimiento": "1990-02-02", "telefono": "912345678"},
	} {
		if status, env, _ := api.do(http.MethodPost, "/api/v1/admin/pacientes", p); status != http.StatusCreated {
			t.Fatalf("create patient: %d %s", status, env.Message)
		}
	}

	status, env, _ = api.do(http.MethodGet, "/api/v1/admin/pacientes?nombre=JUA", nil)
	var patients []entity.Patient
	json.Unmarshal(env.Data, &patients)
	if status != http.StatusOK || len(patients) != 1 || patients[0].FirstName != "JUAN" {
		t.Fatalf("filtered list: %d %+v", status, patients)
	}

	// Edit modal: select the row, submit, and the target resets.
	status, _, _ = api.do(http.MethodPost, "/api/v1/admin/pacientes/edit-target/submit", map[string]string{
		"dni": "11111111", "nombre": "Juan", "apellido": "Perez", "sexo": "Masculino", "direccion": "Av. Grau 123", "fecha_nacimiento": "1980-01-01", "telefono": "987654321",
	})
	if status != http.StatusConflict {
		t.Errorf("submit without target: %d", status)
	}

	if status, _, _ := api.do(http.MethodPut, "/api/v1/admin/pacientes/edit-target", patients[0]); status != http.StatusOK {
		t.Fatalf("set edit target: %d", status)
	}
	status, env, _ = api.do(http.MethodPost, "/api/v1/admin/pacientes/edit-target/submit", map[string]string{
		"dni": "11111111", "nombre": "Juan Carlos", "apellido": "Perez", "sexo": "Masculino", "direccion": "Av. Grau 123", "fecha_nacimiento": "1980-01-01", "telefono": "987654321",
	})
	if status != http.StatusOK {
		t.Fatalf("submit edit: %d %s", status, env.Message)
	}

	_, env, _ = api.do(http.MethodGet, "/api/v1/admin/pacientes/edit-target", nil)
	var target entity.Patient
	json.Unmarshal(env.Data, &target)
	if target.ID != 0 || target.Gender != entity.GenderMale {
		t.Errorf("edit target not reset: %+v", target)
	}

	_, env, _ = api.do(http.MethodGet, "/api/v1/admin/pacientes?dni=11111111", nil)
	json.Unmarshal(env.Data, &patients)
	if len(patients) != 1 || patients[0].FirstName != "JUAN CARLOS" {
		t.Errorf("update not visible: %+v", patients)
	}

	// Reference data and equipment.
	_, env, _ = api.do(http.MethodGet, "/api/v1/admin/tipos-equipo", nil)
	var types []entity.EquipmentType
	json.Unmarshal(env.Data, &types)
	if len(types) != 4 {
		t.Fatalf("expected 4 equipment types, got %+v", types)
	}

	status, _, _ = api.do(http.MethodPost, "/api/v1/admin/equipos", map[string]interface{}{
		"nombre": "Pulsioximetro", "marca": "Beurer", "modelo": "PO30", "numero_serie": "BR-30", "tipo_equipo_id": types[0].ID,
	})
	if status != http.StatusCreated {
		t.Fatalf("create equipment: %d", status)
	}
	_, env, _ = api.do(http.MethodGet, "/api/v1/admin/equipos?disponible=true", nil)
	var equipment []entity.Equipment
	json.Unmarshal(env.Data, &equipment)
	if len(equipment) != 1 || equipment[0].EquipmentType == nil || equipment[0].EquipmentType.Name != "Monitoreo" {
		t.Fatalf("equipment list: %+v", equipment)
	}

	status, _, _ = api.do(http.MethodPost, "/api/v1/admin/asignaciones", map[string]interface{}{
		"equipo_id": equipment[0].ID, "paciente_id": patients[0].ID, "fecha_asignacion": "2024-06-01", "direccion": "Av. Grau 123",
	})
	if status != http.StatusCreated {
		t.Fatalf("create assignment: %d", status)
	}
	_, env, _ = api.do(http.MethodGet, "/api/v1/admin/asignaciones?paciente_id=1", nil)
	var assignments []entity.EquipmentAssignment
	json.Unmarshal(env.Data, &assignments)
	if len(assignments) != 1 || assignments[0].Equipment == nil {
		t.Fatalf("assignment list: %+v", assignments)
	}

	// DNI prefill, found and missing.
	status, env, _ = api.do(http.MethodGet, "/api/v1/admin/pacientes/dni/44556677", nil)
	var lookup struct {
		Prefill struct{ Nombre, Apellido string } `json:"prefill"`
	}
	json.Unmarshal(env.Data, &lookup)
	if status != http.StatusOK || lookup.Prefill.Nombre != "ROSA" || lookup.Prefill.Apellido != "HUAMAN" {
		t.Errorf("dni lookup: %d %+v", status, lookup)
	}
	if status, _, _ := api.do(http.MethodGet, "/api/v1/admin/pacientes/dni/00000000", nil); status != http.StatusBadGateway {
		t.Errorf("missing dni: %d", status)
	}

	// Sign out closes the admin area again.
	status, env, _ = api.do(http.MethodPost, "/api/v1/auth/logout", nil)
	if status != http.StatusOK {
		t.Fatalf("logout: %d", status)
	}
	if status, _, _ := api.do(http.MethodGet, "/api/v1/admin/pacientes", nil); status != http.StatusFound {
		t.Errorf("expected redirect after logout, got %d", status)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	api := newTestServer(t)

	api.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "a@telesalud.pe", "password": "secret1", "username": "a"})
	api.do(http.MethodPost, "/api/v1/auth/logout", nil)

	status, env, _ := api.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "a@telesalud.pe", "password": "wrong"})
	if status != http.StatusUnauthorized || env.Message != "Invalid login credentials" {
		t.Errorf("bad password: %d %q", status, env.Message)
	}

	status, env, _ = api.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "a@telesalud.pe", "password": "secret1"})
	var data struct {
		RedirectTo string `json:"redirect_to"`
	}
	json.Unmarshal(env.Data, &data)
	if status != http.StatusOK || data.RedirectTo != "/admin/" {
		t.Errorf("login: %d %+v", status, data)
	}
}

func TestPreflightAndHealth(t *testing.T) {
	api := newTestServer(t)

	status, _, resp := api.do(http.MethodOptions, "/api/v1/admin/pacientes", nil)
	if status != http.StatusOK || resp.Header.Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("preflight: %d %v", status, resp.Header)
	}

	req, _ := http.NewRequest(http.MethodGet, api.base+"/api/v1/health", nil)
	resp, err := api.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health: %d", resp.StatusCode)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	if got := NewLogger("debug").GetLevel(); got != logrus.DebugLevel {
		t.Errorf("level = %v", got)
	}
	if got := NewLogger("nonsense").GetLevel(); got != logrus.InfoLevel {
		t.Errorf("fallback level = %v", got)
	}
}
