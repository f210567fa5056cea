package reniec

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"telesalud-admin/config"
	"telesalud-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

func newTestLookup(t *testing.T, token string, handler http.HandlerFunc) repository.IdentityLookup {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(config.ReniecConfig{BaseURL: srv.URL, APIToken: token}, 5*time.Second, log)
}

func TestLookupDNI(t *testing.T) {
	lookup := newTestLookup(t, "apis-token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/reniec/dni" || r.URL.Query().Get("numero") != "46027897" {
			t.Errorf("unexpected url %s", r.URL)
		}
		if r.Header.Get("Authorization") != "Bearer apis-token" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"nombres":"ROXANA KARINA","apellidoPaterno":"DELGADO","apellidoMaterno":"HUAMAN","tipoDocumento":"1","numeroDocumento":"46027897","digitoVerificador":"1"}`))
	})

	persona, err := lookup.LookupDNI(context.Background(), "46027897")
	if err != nil {
		t.Fatal(err)
	}
	if persona.Nombres != "ROXANA KARINA" || persona.ApellidoPaterno != "DELGADO" {
		t.Errorf("unexpected persona %+v", persona)
	}
}

func TestLookupDNIKeepsExplicitBearer(t *testing.T) {
	lookup := newTestLookup(t, "Bearer already", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer already" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{}`))
	})
	if _, err := lookup.LookupDNI(context.Background(), "1"); err != nil {
		t.Fatal(err)
	}
}

func TestLookupDNIFailure(t *testing.T) {
	lookup := newTestLookup(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"dni no valido"}`))
	})

	_, err := lookup.LookupDNI(context.Background(), "123")
	var lookupErr *repository.ExternalLookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected ExternalLookupError, got %v", err)
	}
	if lookupErr.StatusCode != 422 || lookupErr.Message != "dni no valido" {
		t.Errorf("unexpected error %+v", lookupErr)
	}
}
