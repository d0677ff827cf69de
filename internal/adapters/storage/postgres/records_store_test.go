package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"pet-health-record/internal/domain/records"
)

func TestListQuery(t *testing.T) {
	tests := []struct {
		name     string
		f        records.Filter
		extra    string
		wantSQL  []string
		wantArgs int
	}{
		{
			name:     "sin límite",
			f:        records.Filter{PetIDs: []string{"a", "b"}},
			wantSQL:  []string{"WHERE pet_id = ANY($1)"},
			wantArgs: 1,
		},
		{
			name:     "con límite",
			f:        records.Filter{PetIDs: []string{"a"}, Limit: 5},
			wantSQL:  []string{"ORDER BY COALESCE(created_at, date_given) DESC NULLS LAST", "LIMIT $2"},
			wantArgs: 2,
		},
		{
			name:     "solo activos",
			f:        records.Filter{PetIDs: []string{"a"}, Limit: 1},
			extra:    "is_active = TRUE",
			wantSQL:  []string{"AND is_active = TRUE ORDER BY"},
			wantArgs: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := listQuery("SELECT id FROM vaccinations", "COALESCE(created_at, date_given)", tt.f, tt.extra)
			for _, frag := range tt.wantSQL {
				if !strings.Contains(q, frag) {
					t.Errorf("expected %q in query %q", frag, q)
				}
			}
			if len(args) != tt.wantArgs {
				t.Fatalf("expected %d args, got %d", tt.wantArgs, len(args))
			}
			if ids, ok := args[0].([]string); !ok || len(ids) != len(tt.f.PetIDs) {
				t.Fatalf("first arg must be the pet id slice, got %#v", args[0])
			}
			if tt.f.Limit == 0 && strings.Contains(q, "ORDER BY") {
				t.Fatalf("unexpected ORDER BY without limit: %q", q)
			}
		})
	}
}

func TestTimePtr(t *testing.T) {
	if timePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil for NULL")
	}
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	got := timePtr(sql.NullTime{Time: now, Valid: true})
	if got == nil || !got.Equal(now) {
		t.Fatalf("expected %v, got %v", now, got)
	}
}

func TestIsDateColumn(t *testing.T) {
	got := isDateColumn("visit_date")
	if got != "(pg_typeof(visit_date) = 'date'::regtype)" {
		t.Fatalf("unexpected expression %q", got)
	}
}
