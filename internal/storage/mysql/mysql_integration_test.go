//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"obp_engine/internal/domain"
	mysqlrepo "obp_engine/internal/storage/mysql"
)

// ---------- small helpers ----------
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=obp",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "obp")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_RoundTrip(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	rt := domain.RoomType{
		ID:      501,
		HotelID: 9,
		Name:    "Deluxe Sea View",
		Occupancy: domain.OccupancyConfig{
			MinAdults: 1, MaxAdults: 3, MaxChildren: 2, TotalMaxGuests: 4, BaseOccupancy: 2,
		},
		RoundingRule: "nearest5",
		BaseRate:     150,
	}
	if err := repo.UpsertRoomType(ctx, rt); err != nil {
		t.Fatalf("UpsertRoomType: %v", err)
	}
	groups := []domain.AgeGroup{
		{Code: "infant", Names: map[string]string{"tr": "Bebek", "en": "Infant"}},
		{Code: "child", Names: map[string]string{"tr": "Çocuk", "en": "Child"}},
	}
	if err := repo.UpsertAgeGroups(ctx, 9, groups); err != nil {
		t.Fatalf("UpsertAgeGroups: %v", err)
	}

	table := []domain.CombinationEntry{
		{Key: "2", Adults: 2, Calculated: 1.0, IsActive: true},
		{Key: "2+1_infant", Adults: 2, Children: []domain.ChildSlot{{Order: 1, AgeGroup: "infant"}},
			Calculated: 1.0, Override: pfloat(0), IsActive: true},
		{Key: "3", Adults: 3, Calculated: 1.2, IsActive: false},
	}
	if err := repo.ReplaceTable(ctx, rt.ID, table); err != nil {
		t.Fatalf("ReplaceTable: %v", err)
	}

	// Assert — room type
	got, err := repo.GetRoomType(ctx, rt.ID)
	if err != nil {
		t.Fatalf("GetRoomType: %v", err)
	}
	if got.Occupancy != rt.Occupancy || got.RoundingRule != "nearest5" || got.BaseRate != 150 {
		t.Fatalf("unexpected room type: %+v", got)
	}

	// Assert — age groups keep catalog order
	ags, err := repo.ListAgeGroups(ctx, 9)
	if err != nil {
		t.Fatalf("ListAgeGroups: %v", err)
	}
	if len(ags) != 2 || ags[0].Code != "infant" || ags[0].Names["tr"] != "Bebek" {
		t.Fatalf("unexpected age groups: %+v", ags)
	}

	// Assert — table round-trips, including the zero override and nil children
	entries, err := repo.GetTable(ctx, rt.ID)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	byKey := map[string]domain.CombinationEntry{}
	for _, e := range entries {
		byKey[e.Key] = e
	}
	if ov := byKey["2+1_infant"].Override; ov == nil || *ov != 0 {
		t.Fatalf("zero override lost in round-trip: %v", ov)
	}
	if kids := byKey["2+1_infant"].Children; len(kids) != 1 || kids[0].AgeGroup != "infant" {
		t.Fatalf("children lost in round-trip: %+v", kids)
	}
	if byKey["3"].IsActive {
		t.Fatal("inactive flag lost in round-trip")
	}

	// Replace is wholesale: a second call drops rows that are gone.
	if err := repo.ReplaceTable(ctx, rt.ID, table[:1]); err != nil {
		t.Fatalf("ReplaceTable(2): %v", err)
	}
	entries, err = repo.GetTable(ctx, rt.ID)
	if err != nil {
		t.Fatalf("GetTable(2): %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "2" {
		t.Fatalf("expected wholesale replace, got %+v", entries)
	}

	// Unknown id maps to the domain sentinel.
	if _, err := repo.GetRoomType(ctx, 999999); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
