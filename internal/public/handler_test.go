package public_test

import (
	"net/http"
	"strings"
	"testing"

	"parms/internal/models"
	"parms/internal/server"
	"parms/internal/sticker"
	"parms/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

func TestPublicLookupNeedsNoSignIn(t *testing.T) {
	testutil.OpenDB(t)
	app := server.New(testutil.Config(), sticker.NewQRGenerator(nil, 0))
	owner := testutil.CreateUser(t, "Sam Staff", "sam@parms.test", models.RoleStaff)
	p := testutil.CreateProperty(t, "Projector", testutil.CreateLocation(t, "AV Room"), testutil.CreateCondition(t, "Serviceable"), owner)

	resp, body := testutil.Do(t, app, testutil.PageRequest("/p/"+p.PublicID))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{"Projector", p.PropertyNumber, "AV Room", "Sam Staff"} {
		if !strings.Contains(body, want) {
			t.Errorf("public page should show %q", want)
		}
	}
	if strings.Contains(body, "Sign out") {
		t.Error("public page must not show account chrome")
	}

	resp, body = testutil.Do(t, app, testutil.JSONRequest(t, http.MethodGet, "/p/"+p.PublicID, nil))
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(body, `"item_name":"Projector"`) {
		t.Fatalf("unexpected JSON %d %s", resp.StatusCode, body)
	}
	if strings.Contains(body, "acquisition_cost") {
		t.Error("cost is not part of the public snapshot")
	}
}

func TestPublicLookupUnknown(t *testing.T) {
	testutil.OpenDB(t)
	app := server.New(testutil.Config(), sticker.NewQRGenerator(nil, 0))

	resp, body := testutil.Do(t, app, testutil.PageRequest("/p/does-not-exist"))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Property not found") {
		t.Error("404 page should explain what is missing")
	}
}
