package validation

import "testing"

type sampleForm struct {
	ItemName string `json:"item_name" validate:"required,max=5"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

func TestStruct_KeysErrorsByJSONName(t *testing.T) {
	errs := Struct(&sampleForm{Email: "nope", Role: "root", Quantity: -1})

	want := map[string]string{
		"item_name": "The item name field is required.",
		"email":     "The email must be a valid email address.",
		"role":      "The selected role is invalid.",
		"quantity":  "The quantity must be at least 0.",
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(errs), errs)
	}
	for field, msg := range want {
		if got := errs.Get(field); got != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, got)
		}
	}
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(&sampleForm{ItemName: "Desk", Role: "staff"})
	if errs.Any() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestStruct_MaxOnString(t *testing.T) {
	errs := Struct(&sampleForm{ItemName: "Laptop", Role: "admin"})
	if got := errs.Get("item_name"); got != "The item name may not be greater than 5 characters." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestErrors_AddKeepsFirstMessage(t *testing.T) {
	errs := Errors{}
	errs.Add("name", "first")
	errs.Add("name", "second")
	if errs.Get("name") != "first" {
		t.Errorf("expected first message to win, got %q", errs.Get("name"))
	}
	if !errs.Has("name") || errs.Has("other") {
		t.Error("Has reported the wrong fields")
	}
}
