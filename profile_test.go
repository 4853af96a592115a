package main

import (
	"net/http"
	"testing"

	"lg/smartbite-go-api/internal/energy"
)

func TestProfile_NotFoundBeforeCalculation(t *testing.T) {
	router, _, _ := setupTest(t)

	w := doJSON(router, "GET", "/api/profile", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProfile_PutThenGet(t *testing.T) {
	router, _, _ := setupTest(t)

	w := doJSON(router, "PUT", "/api/profile", adultProfile)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	p := decode[energy.Profile](t, w)
	if p.BMR != 1649 || p.TDEE != 2556 || p.TargetCalories != 2556 {
		t.Errorf("unexpected energy figures: bmr=%d tdee=%d target=%d", p.BMR, p.TDEE, p.TargetCalories)
	}
	if p.BMI != 22.9 || p.BMICategory != energy.NormalWeight {
		t.Errorf("unexpected bmi %.1f (%s)", p.BMI, p.BMICategory)
	}

	w = doJSON(router, "GET", "/api/profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decode[energy.Profile](t, w); got != p {
		t.Errorf("stored profile differs: %+v vs %+v", got, p)
	}
}

func TestProfile_FeetInches(t *testing.T) {
	router, _, _ := setupTest(t)

	w := doJSON(router, "PUT", "/api/profile",
		`{"age":25,"gender":"female","heightUnit":"ft","feet":5,"inches":6,"weightKg":60,"activityLevel":"very_active","goal":"loss"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	p := decode[energy.Profile](t, w)
	if p.HeightUnit != energy.FeetInches {
		t.Errorf("expected heightUnit ft, got %s", p.HeightUnit)
	}
	if p.HeightCm < 167.63 || p.HeightCm > 167.65 {
		t.Errorf("expected heightCm 167.64, got %f", p.HeightCm)
	}
	if p.ActivityLevel != energy.VeryActive {
		t.Errorf("expected veryActive, got %s", p.ActivityLevel)
	}
	if p.TargetCalories != p.TDEE-500 {
		t.Errorf("expected target = tdee-500, got %d vs %d", p.TargetCalories, p.TDEE)
	}
}

func TestProfile_Validation(t *testing.T) {
	router, _, _ := setupTest(t)

	cases := map[string]string{
		"zero age":      `{"age":0,"gender":"male","heightCm":175,"weightKg":70,"activityLevel":"moderate","goal":"maintain"}`,
		"no height":     `{"age":30,"gender":"male","heightUnit":"cm","weightKg":70,"activityLevel":"moderate","goal":"maintain"}`,
		"bad activity":  `{"age":30,"gender":"male","heightCm":175,"weightKg":70,"activityLevel":"couch","goal":"maintain"}`,
		"not json":      `{"age":`,
		"wrong type":    `{"age":"thirty"}`,
		"missing feet":  `{"age":30,"gender":"male","heightUnit":"ft","inches":4,"weightKg":70,"activityLevel":"moderate","goal":"maintain"}`,
		"unknown goals": `{"age":30,"gender":"male","heightCm":175,"weightKg":70,"activityLevel":"moderate","goal":"bulk"}`,
	}
	for name, body := range cases {
		w := doJSON(router, "PUT", "/api/profile", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d: %s", name, w.Code, w.Body.String())
		}
	}

	// Nothing was stored.
	if w := doJSON(router, "GET", "/api/profile", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after rejected input, got %d", w.Code)
	}
}

func TestPatchGoal(t *testing.T) {
	router, _, _ := setupTest(t)

	w := doJSON(router, "PATCH", "/api/profile/goal", `{"goal":"loss"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 before profile exists, got %d: %s", w.Code, w.Body.String())
	}

	doJSON(router, "PUT", "/api/profile", adultProfile)

	w = doJSON(router, "PATCH", "/api/profile/goal", `{"goal":"loss"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	p := decode[energy.Profile](t, w)
	if p.Goal != energy.Loss || p.TargetCalories != 2056 || p.TDEE != 2556 {
		t.Errorf("unexpected profile after toggle: goal=%s target=%d tdee=%d", p.Goal, p.TargetCalories, p.TDEE)
	}

	w = doJSON(router, "PATCH", "/api/profile/goal", `{"goal":"shred"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
