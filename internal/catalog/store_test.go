package catalog

import (
	"context"
	"strings"
	"testing"

	"parms/internal/database"
	"parms/internal/models"
	"parms/internal/testutil"
)

func TestLabelsAreUniqueIgnoringCase(t *testing.T) {
	testutil.OpenDB(t)

	cases := []struct {
		d     Descriptor
		first string
		again string
	}{
		{Locations, "Annex", "annex"},
		{Conditions, "Serviceable", "SERVICEABLE"},
	}
	for _, tc := range cases {
		if _, err := Create(context.Background(), tc.d, tc.first); err != nil {
			t.Fatalf("create %s: %v", tc.first, err)
		}
		// skips Taken, as two concurrent requests would
		rec := tc.d.New()
		rec.SetLabel(tc.again)
		if err := database.DB.Create(rec).Error; err == nil {
			t.Errorf("%s: %q and %q must not both be stored", tc.d.Plural, tc.first, tc.again)
		}
	}
}

func TestStoreErrorsNameTheRow(t *testing.T) {
	testutil.OpenDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, "Ada Admin", "ada@parms.test", models.RoleAdmin)
	loc := testutil.CreateLocation(t, "Annex")
	other := testutil.CreateLocation(t, "Warehouse")
	testutil.CreateProperty(t, "Laptop", loc, testutil.CreateCondition(t, "Serviceable"), owner)

	err := Delete(ctx, Locations, loc)
	if err == nil {
		t.Fatal("deleting a referenced location should fail")
	}
	if !strings.HasPrefix(err.Error(), "delete location ") {
		t.Errorf("unexpected error %q", err)
	}

	err = Update(ctx, Locations, other, "annex")
	if err == nil {
		t.Fatal("renaming onto an existing name should fail")
	}
	if !strings.HasPrefix(err.Error(), "update location ") {
		t.Errorf("unexpected error %q", err)
	}
}
