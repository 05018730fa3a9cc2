package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pazarglobal/pazarglobal-mcp-server/internal/supabase"
)

type recorded struct {
	method string
	query  map[string][]string
	body   map[string]any
}

// fixture backs the tools with a fake PostgREST endpoint.
func fixture(t *testing.T, status int, respBody string) (*supabase.Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.query = r.URL.Query()
		rec.body = nil
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return supabase.NewClient(srv.URL, "key", time.Second), rec
}

func TestInsertListingRequiresTitle(t *testing.T) {
	client, _ := fixture(t, http.StatusCreated, `[]`)
	tool := InsertListing(client)

	for _, args := range []string{`{}`, `{"title":""}`, ``} {
		if _, err := tool.Invoke(context.Background(), json.RawMessage(args)); err == nil {
			t.Fatalf("args %q: expected title error", args)
		}
	}
}

func TestInsertListingDefaultsStatusActive(t *testing.T) {
	client, rec := fixture(t, http.StatusCreated, `[{"id":"l1","title":"iPhone 13","status":"active"}]`)
	tool := InsertListing(client)

	v, err := tool.Invoke(context.Background(), json.RawMessage(`{"title":"iPhone 13","price":30000,"metadata":{"type":"phone"}}`))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	out := v.(supabase.Outcome)
	if !out.Success || out.Status != http.StatusCreated {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if rec.body["status"] != "active" {
		t.Fatalf("status not forced: %v", rec.body)
	}
	if rec.body["price"] != float64(30000) {
		t.Fatalf("price lost: %v", rec.body)
	}
	if _, ok := rec.body["user_id"]; ok {
		t.Fatalf("user_id sent without being supplied: %v", rec.body)
	}
}

func TestUpdateListingRequiresID(t *testing.T) {
	client, _ := fixture(t, http.StatusOK, `[]`)
	if _, err := UpdateListing(client).Invoke(context.Background(), json.RawMessage(`{"price":100}`)); err == nil {
		t.Fatalf("expected listing_id error")
	}
}

func TestUpdateListingPartialPatch(t *testing.T) {
	client, rec := fixture(t, http.StatusOK, `[{"id":"l1","price":900}]`)

	v, err := UpdateListing(client).Invoke(context.Background(), json.RawMessage(`{"listing_id":"l1","price":900}`))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !v.(supabase.Outcome).Success {
		t.Fatalf("unexpected outcome: %+v", v)
	}
	if rec.method != http.MethodPatch {
		t.Fatalf("method = %s", rec.method)
	}
	if rec.query["id"][0] != "eq.l1" {
		t.Fatalf("id filter = %v", rec.query["id"])
	}
	if len(rec.body) != 1 {
		t.Fatalf("patch body must carry only supplied fields: %v", rec.body)
	}
}

func TestUpdateListingChangesStatus(t *testing.T) {
	// A listing is marked sold through update; the status must reach
	// the PATCH body instead of being dropped.
	client, rec := fixture(t, http.StatusOK, `[{"id":"l1","status":"sold"}]`)

	v, err := UpdateListing(client).Invoke(context.Background(), json.RawMessage(`{"listing_id":"l1","status":"sold"}`))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !v.(supabase.Outcome).Success {
		t.Fatalf("unexpected outcome: %+v", v)
	}
	if len(rec.body) != 1 || rec.body["status"] != "sold" {
		t.Fatalf("status change dropped from patch body: %v", rec.body)
	}
}

func TestDeleteListing(t *testing.T) {
	client, rec := fixture(t, http.StatusNoContent, "")

	v, err := DeleteListing(client).Invoke(context.Background(), json.RawMessage(`{"listing_id":"l1"}`))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	out := v.(supabase.Outcome)
	if !out.Success || rec.method != http.MethodDelete {
		t.Fatalf("unexpected: %+v via %s", out, rec.method)
	}

	if _, err := DeleteListing(client).Invoke(context.Background(), json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected listing_id error")
	}
}

func TestSearchListingsForwardsFilters(t *testing.T) {
	client, rec := fixture(t, http.StatusOK, `[{"id":"1"},{"id":"2"}]`)

	v, err := SearchListings(client).Invoke(context.Background(),
		json.RawMessage(`{"query":"laptop","min_price":1000,"max_price":5000,"condition":"used","metadata_type":"part"}`))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	out := v.(supabase.SearchOutcome)
	if !out.Success || out.Count != 2 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(rec.query["price"]) != 2 {
		t.Fatalf("price range collapsed: %v", rec.query["price"])
	}
	if rec.query["condition"][0] != "eq.used" || rec.query["metadata->>type"][0] != "eq.part" {
		t.Fatalf("filters wrong: %v", rec.query)
	}
	if rec.query["order"][0] != "created_at.desc" {
		t.Fatalf("ordering lost: %v", rec.query)
	}
}

func TestSearchListingsUpstreamFailure(t *testing.T) {
	client, _ := fixture(t, http.StatusBadRequest, `{"message":"bad filter"}`)

	v, err := SearchListings(client).Invoke(context.Background(), json.RawMessage(`{"query":"x"}`))
	if err != nil {
		t.Fatalf("tool-level failures must not be invoke errors: %v", err)
	}
	out := v.(supabase.SearchOutcome)
	if out.Success || out.Status != http.StatusBadRequest {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestListUserListings(t *testing.T) {
	client, rec := fixture(t, http.StatusOK, `[{"id":"1","user_id":"u1"}]`)

	v, err := ListUserListings(client).Invoke(context.Background(), json.RawMessage(`{"user_id":"u1","status":"active"}`))
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	out := v.(supabase.ListOutcome)
	if !out.Success || out.Count != 1 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if rec.query["user_id"][0] != "eq.u1" || rec.query["status"][0] != "eq.active" {
		t.Fatalf("filters wrong: %v", rec.query)
	}

	if _, err := ListUserListings(client).Invoke(context.Background(), json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected user_id error")
	}
}

func TestDescriptorsDeclareRequirements(t *testing.T) {
	client, _ := fixture(t, http.StatusOK, `[]`)

	required := map[string][]string{
		"clean_price_tool":        {"price_text"},
		"search_listings_tool":    nil,
		"insert_listing_tool":     {"title"},
		"update_listing_tool":     {"listing_id"},
		"delete_listing_tool":     {"listing_id"},
		"list_user_listings_tool": {"user_id"},
	}

	check := func(name string, got []string) {
		want := required[name]
		if len(want) != len(got) {
			t.Fatalf("%s required = %v, want %v", name, got, want)
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("%s required = %v, want %v", name, got, want)
			}
		}
	}

	check("clean_price_tool", CleanPrice().Descriptor().InputSchema.Required)
	check("search_listings_tool", SearchListings(client).Descriptor().InputSchema.Required)
	check("insert_listing_tool", InsertListing(client).Descriptor().InputSchema.Required)
	check("update_listing_tool", UpdateListing(client).Descriptor().InputSchema.Required)
	check("delete_listing_tool", DeleteListing(client).Descriptor().InputSchema.Required)
	check("list_user_listings_tool", ListUserListings(client).Descriptor().InputSchema.Required)
}
