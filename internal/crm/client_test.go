package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/logger"
)

func TestUpsertContactCreatesWhenAbsent(t *testing.T) {
	var created bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/contacts/search":
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/contacts":
			created = true
			var payload map[string]any
			json.NewDecoder(r.Body).Decode(&payload)
			if payload["email"] != "jane@acme.com" {
				t.Fatalf("expected normalized email, got %v", payload["email"])
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": "c-123"}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, "key", logger.NewNop())
	res, err := cli.UpsertContact(context.Background(), &domain.Lead{Email: "Jane@Acme.com"})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if !created {
		t.Fatal("expected a create call")
	}
	if res.ID != "c-123" || res.Existing {
		t.Fatalf("expected new contact c-123, got %+v", res)
	}
}

func TestUpsertContactUpdatesWhenFound(t *testing.T) {
	var updated bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/contacts/search":
			w.Write([]byte(`{"id": "c-9"}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/v1/contacts/c-9":
			updated = true
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, "key", logger.NewNop())
	res, err := cli.UpsertContact(context.Background(), &domain.Lead{Email: "jane@acme.com"})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if !updated {
		t.Fatal("expected an update call")
	}
	if res.ID != "c-9" || !res.Existing {
		t.Fatalf("expected existing contact c-9, got %+v", res)
	}
}

func TestUpsertContactConflictResolvesToExisting(t *testing.T) {
	searches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/contacts/search":
			searches++
			if searches == 1 {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"id": "c-race"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/contacts":
			w.WriteHeader(http.StatusConflict)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, "key", logger.NewNop())
	res, err := cli.UpsertContact(context.Background(), &domain.Lead{Email: "jane@acme.com"})
	if err != nil {
		t.Fatalf("conflict must not surface as error, got %v", err)
	}
	if res.ID != "c-race" || !res.Existing {
		t.Fatalf("expected conflict resolved to existing record, got %+v", res)
	}
}

func TestCreateDeal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/deals" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["contactId"] != "c-1" {
			t.Fatalf("expected contactId c-1, got %v", payload["contactId"])
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "d-1"}`))
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, "key", logger.NewNop())
	lead := &domain.Lead{Email: "jane@acme.com", Company: "Acme", FirstName: "Jane"}
	id, err := cli.CreateDeal(context.Background(), lead, "c-1", 2_500_000)
	if err != nil {
		t.Fatalf("create deal failed: %v", err)
	}
	if id != "d-1" {
		t.Fatalf("expected deal d-1, got %s", id)
	}
}

func TestMockDeduplicatesByEmail(t *testing.T) {
	mock := NewMock(logger.NewNop())
	ctx := context.Background()

	first, err := mock.UpsertContact(ctx, &domain.Lead{Email: "jane@acme.com"})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if first.Existing {
		t.Fatal("first upsert must create")
	}

	second, err := mock.UpsertContact(ctx, &domain.Lead{Email: "JANE@acme.com"})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if !second.Existing || second.ID != first.ID {
		t.Fatalf("expected dedup to existing %s, got %+v", first.ID, second)
	}
}
