package repository

import (
	"strings"
	"testing"
)

// Every column a re-run search may overwrite. created_at stays fixed
// so a re-upserted lead keeps its original capture time.
var mutableLeadColumns = []string{
	"owner_id", "agent_id", "name", "title", "company", "location",
	"email", "phone", "linkedin_url", "tags", "match_score", "bio",
	"skills", "industry", "company_size", "company_website",
	"company_linkedin", "company_founded", "company_revenue",
	"specialties", "pain_points", "budget_info", "timeframe",
	"status", "source",
}

func TestUpsertQueryUpdatesEveryMutableColumnOnConflict(t *testing.T) {
	query := strings.ToLower(upsertLeadQuery)

	if !strings.Contains(query, "on conflict (id) do update set") {
		t.Fatal("upsert query must resolve id conflicts with an update")
	}

	for _, column := range mutableLeadColumns {
		fragment := column + " = excluded." + column
		if !strings.Contains(query, fragment) {
			t.Errorf("expected conflict update fragment %q to be present", fragment)
		}
	}

	if !strings.Contains(query, "updated_at = now()") {
		t.Error("conflict update must refresh updated_at")
	}
	if strings.Contains(query, "created_at = excluded") {
		t.Error("conflict update must not overwrite created_at")
	}
}

func TestReadAndWriteQueriesAreOwnerScoped(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"get", getLeadQuery},
		{"delete", deleteLeadQuery},
		{"update status", updateLeadStatusQuery},
	}

	for _, tc := range cases {
		if !strings.Contains(strings.ToLower(tc.query), "owner_id = $") {
			t.Errorf("%s query is not owner-scoped: %s", tc.name, tc.query)
		}
	}
}

func TestWorkerLookupIsNotOwnerScoped(t *testing.T) {
	if strings.Contains(strings.ToLower(getAnyLeadQuery), "owner_id") {
		t.Fatal("worker lookup query must not filter on owner_id")
	}
}
