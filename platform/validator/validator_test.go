package validator

import "testing"

func TestPlaceTypeTag(t *testing.T) {
	val := New()

	valid := []string{"restaurant", "beauty_salon", "car_repair", "establishment"}
	for _, v := range valid {
		if err := val.Var(v, "placetype"); err != nil {
			t.Fatalf("expected %q to be a valid place type, got %v", v, err)
		}
	}

	invalid := []string{"", "Restaurant", "car repair", "1store", "bar;drop"}
	for _, v := range invalid {
		if err := val.Var(v, "placetype"); err == nil {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}
