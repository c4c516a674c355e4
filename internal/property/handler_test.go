package property_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"parms/internal/config"
	"parms/internal/database"
	"parms/internal/models"
	"parms/internal/server"
	"parms/internal/sticker"
	"parms/internal/testutil"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	app  *fiber.App
	cfg  *config.Config
	user *models.User
	loc  *models.Location
	cond *models.Condition
}

func setup(t *testing.T) fixture {
	t.Helper()
	testutil.OpenDB(t)
	cfg := testutil.Config()
	return fixture{
		app:  server.New(cfg, sticker.NewQRGenerator(nil, 0)),
		cfg:  cfg,
		user: testutil.CreateUser(t, "Sam Staff", "sam@parms.test", models.RoleStaff),
		loc:  testutil.CreateLocation(t, "Annex"),
		cond: testutil.CreateCondition(t, "Serviceable"),
	}
}

func (f fixture) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	return testutil.Do(t, f.app, testutil.Authorize(t, f.cfg, req, f.user))
}

func (f fixture) payload() map[string]any {
	return map[string]any{
		"item_name":        "Dell Latitude 5420",
		"serial_no":        "SN-123",
		"acquisition_cost": "45999.90",
		"acquisition_date": "2024-02-14",
		"quantity":         1,
		"fund":             "General Fund",
		"location_id":      f.loc.ID,
		"user_id":          f.user.ID,
		"condition_id":     f.cond.ID,
	}
}

type response struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Data    models.Property   `json:"data"`
}

func TestCreateGeneratesNumberAndLookupURL(t *testing.T) {
	f := setup(t)

	resp, body := f.do(t, testutil.JSONRequest(t, http.MethodPost, "/properties", f.payload()))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	var got response
	testutil.DecodeJSON(t, body, &got)
	p := got.Data
	if got.Message != "Property created successfully!" {
		t.Errorf("unexpected message %q", got.Message)
	}
	if want := fmt.Sprintf("PARMS-%d-%05d", p.CreatedAt.Year(), p.ID); p.PropertyNumber != want {
		t.Errorf("property number = %q, want %q", p.PropertyNumber, want)
	}
	if p.PublicID == "" || p.QRCodeURL != "http://parms.test/p/"+p.PublicID {
		t.Errorf("unexpected lookup URL %q for %q", p.QRCodeURL, p.PublicID)
	}
	if p.AcquisitionCost.StringFixed(2) != "45999.90" {
		t.Errorf("unexpected cost %s", p.AcquisitionCost)
	}
}

func TestCreateValidation(t *testing.T) {
	f := setup(t)

	resp, body := f.do(t, testutil.JSONRequest(t, http.MethodPost, "/properties", map[string]any{"quantity": 1}))
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	var got response
	testutil.DecodeJSON(t, body, &got)
	for _, field := range []string{"item_name", "location_id", "user_id", "condition_id"} {
		if got.Errors[field] == "" {
			t.Errorf("expected an error on %s, got %v", field, got.Errors)
		}
	}

	bad := f.payload()
	bad["location_id"] = 999
	resp, body = f.do(t, testutil.JSONRequest(t, http.MethodPost, "/properties", bad))
	testutil.DecodeJSON(t, body, &got)
	if resp.StatusCode != fiber.StatusUnprocessableEntity || got.Errors["location_id"] != "The selected location is invalid." {
		t.Fatalf("unknown location should be rejected, got %d %v", resp.StatusCode, got.Errors)
	}

	var n int64
	database.DB.Model(&models.Property{}).Count(&n)
	if n != 0 {
		t.Fatalf("nothing should be stored, found %d", n)
	}
}

func TestEditFailureKeepsOtherFields(t *testing.T) {
	f := setup(t)
	p := testutil.CreateProperty(t, "Laptop", f.loc, f.cond, f.user)

	form := url.Values{
		"item_name":    {""},
		"serial_no":    {"SN-KEEP-ME"},
		"location_id":  {fmt.Sprint(f.loc.ID)},
		"user_id":      {fmt.Sprint(f.user.ID)},
		"condition_id": {fmt.Sprint(f.cond.ID)},
		"quantity":     {"3"},
	}
	resp, body := f.do(t, testutil.FormRequest(http.MethodPost, fmt.Sprintf("/properties/%d", p.ID), form))
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `id="edit-dialog"`) {
		t.Fatal("edit dialog should stay open")
	}
	if !strings.Contains(body, "The item name field is required.") {
		t.Error("erroring field should be annotated")
	}
	if !strings.Contains(body, `value="SN-KEEP-ME"`) || !strings.Contains(body, `value="3"`) {
		t.Error("other typed values should be kept")
	}
}

func TestUpdateKeepsNumberWhenBlank(t *testing.T) {
	f := setup(t)
	p := testutil.CreateProperty(t, "Laptop", f.loc, f.cond, f.user)

	body := f.payload()
	body["item_name"] = "Laptop (reissued)"
	resp, out := f.do(t, testutil.JSONRequest(t, http.MethodPut, fmt.Sprintf("/properties/%d", p.ID), body))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, out)
	}
	var got response
	testutil.DecodeJSON(t, out, &got)
	if got.Data.ItemName != "Laptop (reissued)" || got.Data.PropertyNumber != p.PropertyNumber {
		t.Fatalf("unexpected update result %+v", got.Data)
	}
	if got.Data.PublicID != p.PublicID {
		t.Error("public id must not change on update")
	}
}

func TestDeleteRemovesFromSelection(t *testing.T) {
	f := setup(t)
	a := testutil.CreateProperty(t, "Laptop", f.loc, f.cond, f.user)
	b := testutil.CreateProperty(t, "Printer", f.loc, f.cond, f.user)

	req := testutil.FormRequest(http.MethodPost, fmt.Sprintf("/properties/%d/delete", a.ID), url.Values{})
	req.AddCookie(&http.Cookie{Name: web.SelectionCookie, Value: fmt.Sprintf("%d.%d", a.ID, b.ID)})
	resp, _ := f.do(t, req)
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if ck := testutil.Cookie(resp, web.SelectionCookie); ck == nil || ck.Value != fmt.Sprint(b.ID) {
		t.Fatalf("deleted property should leave the selection, got %+v", ck)
	}
	var n int64
	database.DB.Model(&models.Property{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 property left, got %d", n)
	}
}

func TestIndexListsAndFilters(t *testing.T) {
	f := setup(t)
	testutil.CreateProperty(t, "Dell Laptop", f.loc, f.cond, f.user)
	testutil.CreateProperty(t, "Office Chair", f.loc, f.cond, f.user)

	resp, body := f.do(t, testutil.PageRequest("/properties?q=laptop&create=1"))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Dell Laptop") || strings.Contains(body, "Office Chair") {
		t.Error("filter should match item name only")
	}
	if !strings.Contains(body, `id="create-dialog"`) || !strings.Contains(body, "General Fund") || !strings.Contains(body, "Annex") {
		t.Error("create dialog should list the option sets")
	}
}

func TestExport(t *testing.T) {
	f := setup(t)
	testutil.CreateProperty(t, "Dell Laptop", f.loc, f.cond, f.user)

	resp, body := f.do(t, testutil.PageRequest("/properties/export"))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Fatalf("expected an xlsx attachment, got %q", cd)
	}

	book, err := excelize.OpenReader(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer book.Close()
	rows, err := book.GetRows("Properties")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0][1] != "Item Name" || rows[1][1] != "Dell Laptop" || rows[1][9] != "Annex" {
		t.Fatalf("unexpected sheet %v", rows)
	}
}
