package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"telesalud-admin/config"
	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/query"
	"telesalud-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(config.SupabaseConfig{URL: srv.URL + "/", AnonKey: "anon"}, 5*time.Second, log)
}

func TestEncodeSelect(t *testing.T) {
	sel := query.Equipment().Where(query.ILike("nombre", "JUA"), query.Eq("disponible", "false"))
	values, err := url.ParseQuery(EncodeSelect(sel))
	if err != nil {
		t.Fatal(err)
	}

	if got := values.Get("select"); got != "*,tipo_equipo(*)" {
		t.Errorf("select = %q", got)
	}
	if got := values.Get("nombre"); got != "ilike.*JUA*" {
		t.Errorf("nombre = %q", got)
	}
	if got := values.Get("disponible"); got != "eq.false" {
		t.Errorf("disponible = %q", got)
	}
}

func TestRestSelectSendsHeadersAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/paciente" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon" {
			t.Errorf("apikey = %q", r.Header.Get("apikey"))
		}
		if r.Header.Get("Authorization") != "Bearer user-token" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("dni") != "eq.12345678" {
			t.Errorf("dni = %q", r.URL.Query().Get("dni"))
		}
		w.Write([]byte(`[{"id":1,"dni":"12345678","nombre":"JUAN","fecha_nacimiento":"1990-01-02"}]`))
	})

	ctx := repository.WithAccessToken(context.Background(), "user-token")
	var got []entity.Patient
	err := NewRestClient(c).Select(ctx, query.Patients().Where(query.Eq("dni", "12345678")), &got)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].FirstName != "JUAN" || got[0].BirthDate.String() != "1990-01-02" {
		t.Errorf("unexpected rows %+v", got)
	}
}

func TestRestSelectFallsBackToAnonKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer anon" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`[]`))
	})

	var got []entity.EquipmentType
	if err := NewRestClient(c).Select(context.Background(), query.EquipmentTypes(), &got); err != nil {
		t.Fatal(err)
	}
}

func TestRestErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid input syntax for type bigint","code":"22P02","details":null,"hint":null}`))
	})

	err := NewRestClient(c).Select(context.Background(), query.Patients(), &[]entity.Patient{})
	var storeErr *repository.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if storeErr.Status != 400 || storeErr.Code != "22P02" || storeErr.Message != "invalid input syntax for type bigint" {
		t.Errorf("unexpected error %+v", storeErr)
	}
}

func TestRestInsertAndUpdate(t *testing.T) {
	var lastBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Prefer") != "return=minimal,count=exact" {
			t.Errorf("prefer = %q", r.Header.Get("Prefer"))
		}
		json.NewDecoder(r.Body).Decode(&lastBody)
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Content-Range", "*/1")
			w.WriteHeader(http.StatusCreated)
		case http.MethodPatch:
			if r.URL.Query().Get("id") != "eq.7" {
				t.Errorf("id = %q", r.URL.Query().Get("id"))
			}
			w.Header().Set("Content-Range", "0-0/1")
			w.WriteHeader(http.StatusNoContent)
		}
	})
	rest := NewRestClient(c)

	ack, err := rest.Insert(context.Background(), "equipos", &entity.Equipment{Name: "Oximetro", Available: true})
	if err != nil || ack.Count != 1 || ack.Table != "equipos" {
		t.Fatalf("insert: %+v %v", ack, err)
	}
	if _, ok := lastBody["id"]; ok {
		t.Error("insert body must not carry an id")
	}

	ack, err = rest.Update(context.Background(), "equipos", &entity.Equipment{Name: "Oximetro"}, query.Eq("id", int64(7)))
	if err != nil || ack.Count != 1 {
		t.Fatalf("update: %+v %v", ack, err)
	}
	if v, ok := lastBody["disponible"]; !ok || v != false {
		t.Errorf("update body must carry disponible=false, got %v", lastBody)
	}
}

func TestAuthSignIn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected url %s", r.URL)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "admin@salud.pe" || body["password"] != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"user":{"email":"admin@salud.pe","user_metadata":{"username":"admin"}}}`))
	})
	auth := NewAuthClient(c)

	session, err := auth.SignInWithPassword(context.Background(), "admin@salud.pe", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if session.AccessToken != "at" || session.User.Username != "admin" {
		t.Errorf("unexpected session %+v", session)
	}

	_, err = auth.SignInWithPassword(context.Background(), "admin@salud.pe", "wrong")
	var authErr *repository.AuthError
	if !errors.As(err, &authErr) || authErr.Message != "Invalid login credentials" {
		t.Errorf("expected AuthError, got %v", err)
	}
}

func TestAuthSignUpWithoutSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		data, _ := body["data"].(map[string]interface{})
		if data["username"] != "enfermera" {
			t.Errorf("missing username metadata: %v", body)
		}
		w.Write([]byte(`{"id":"u1","email":"e@salud.pe","user_metadata":{"username":"enfermera"}}`))
	})

	session, err := NewAuthClient(c).SignUp(context.Background(), "e@salud.pe", "secret", "enfermera")
	if err != nil || session != nil {
		t.Errorf("expected nil session pending confirmation, got %+v %v", session, err)
	}
}

func TestAuthOAuthURLAndGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		w.Write([]byte(`{"email":"admin@salud.pe","user_metadata":{"username":"admin"}}`))
	})
	auth := NewAuthClient(c)

	link, err := auth.OAuthURL("google", "http://localhost:5173/admin/")
	if err != nil {
		t.Fatal(err)
	}
	u, _ := url.Parse(link)
	if u.Path != "/auth/v1/authorize" || u.Query().Get("provider") != "google" {
		t.Errorf("unexpected link %s", link)
	}

	user, err := auth.GetUser(context.Background(), "at")
	if err != nil || user.Email != "admin@salud.pe" {
		t.Errorf("got %+v %v", user, err)
	}
	if _, err := auth.GetUser(context.Background(), "bad"); err == nil || err.Error() != "invalid JWT" {
		t.Errorf("expected invalid JWT, got %v", err)
	}
}

func TestAuthRefreshSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "refresh_token" {
			t.Errorf("unexpected url %s", r.URL)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["refresh_token"] != "rt" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid Refresh Token: Refresh Token Not Found"}`))
			return
		}
		w.Write([]byte(`{"access_token":"at-2","refresh_token":"rt-2","expires_in":3600,"expires_at":1714550400,"user":{"email":"admin@salud.pe"}}`))
	})
	auth := NewAuthClient(c)

	session, err := auth.RefreshSession(context.Background(), "rt")
	if err != nil {
		t.Fatal(err)
	}
	if session.AccessToken != "at-2" || session.RefreshToken != "rt-2" || session.ExpiresAt != 1714550400 {
		t.Errorf("unexpected session %+v", session)
	}

	_, err = auth.RefreshSession(context.Background(), "revoked")
	var authErr *repository.AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("expected AuthError, got %v", err)
	}
}
