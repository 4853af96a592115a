package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"lg/smartbite-go-api/internal/session"
	"lg/smartbite-go-api/internal/store"
)

// resetFlags puts every flag back to its default; rootCmd and its flag
// variables are shared across tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, dbFile string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--db", dbFile}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustRun(t *testing.T, dbFile string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dbFile, args...)
	if err != nil {
		t.Fatalf("%s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	out := mustRun(t, filepath.Join(t.TempDir(), "s.db"), "--help")
	if !strings.Contains(out, "profile") || !strings.Contains(out, "meal") {
		t.Fatalf("expected subcommands in help output:\n%s", out)
	}
}

func TestDayFlow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "smartbite.db")

	out := mustRun(t, db, "today")
	if !strings.Contains(out, "Goal: not set") {
		t.Errorf("expected no-goal message, got:\n%s", out)
	}

	out = mustRun(t, db, "profile", "set", "--age", "30", "--gender", "male", "--height-cm", "175", "--weight", "70")
	if !strings.Contains(out, "Daily target: 2556 kcal (maintain)") {
		t.Errorf("unexpected profile output:\n%s", out)
	}
	if !strings.Contains(out, "BMI: 22.9 (Normal Weight)") {
		t.Errorf("expected BMI line, got:\n%s", out)
	}

	out = mustRun(t, db, "meal", "add", "--name", "Pasta", "--calories", "700")
	var id int64
	if _, err := fmt.Sscanf(out, "Logged meal %d:", &id); err != nil {
		t.Fatalf("could not parse meal id from %q: %v", out, err)
	}

	out = mustRun(t, db, "meal", "list")
	if !strings.Contains(out, "Pasta") || !strings.Contains(out, "Manual entry") {
		t.Errorf("expected meal in list:\n%s", out)
	}

	out = mustRun(t, db, "goal", "set", "loss")
	if !strings.Contains(out, "Daily target: 2056 kcal") {
		t.Errorf("unexpected goal output:\n%s", out)
	}

	out = mustRun(t, db, "today")
	if !strings.Contains(out, "Intake: 700 / 2056 kcal") || !strings.Contains(out, "1356 cal remaining") {
		t.Errorf("unexpected today output:\n%s", out)
	}
	if !strings.Contains(out, "Plenty of room") {
		t.Errorf("expected decision support in today output:\n%s", out)
	}

	idArg := fmt.Sprint(id)
	if out := mustRun(t, db, "meal", "rm", idArg); !strings.Contains(out, "Removed meal") {
		t.Errorf("unexpected rm output: %s", out)
	}
	if out := mustRun(t, db, "meal", "rm", idArg); !strings.Contains(out, "No meal") {
		t.Errorf("second rm should be a no-op, got: %s", out)
	}
}

func TestProfileSet_FeetInches(t *testing.T) {
	db := filepath.Join(t.TempDir(), "smartbite.db")
	mustRun(t, db, "profile", "set", "--age", "30", "--gender", "male", "--feet", "5", "--inches", "9", "--weight", "70")

	out := mustRun(t, db, "profile", "show")
	if !strings.Contains(out, "Healthy weight:") {
		t.Errorf("unexpected profile show output:\n%s", out)
	}
}

func TestProfileSet_Invalid(t *testing.T) {
	db := filepath.Join(t.TempDir(), "smartbite.db")

	_, err := runCLI(t, db, "profile", "set", "--age", "0", "--gender", "male", "--height-cm", "175", "--weight", "70")
	if err == nil || !strings.Contains(err.Error(), "age") {
		t.Fatalf("expected age validation error, got %v", err)
	}
	_, err = runCLI(t, db, "profile", "set", "--age", "30", "--gender", "male", "--height-cm", "175", "--feet", "5", "--weight", "70")
	if err == nil {
		t.Fatal("expected error for both --height-cm and --feet")
	}
	_, err = runCLI(t, db, "profile", "set", "--age", "30", "--gender", "male", "--height-cm", "175", "--weight", "NaN")
	if err == nil || !strings.Contains(err.Error(), "weightKg") {
		t.Fatalf("expected weight validation error, got %v", err)
	}
	_, err = runCLI(t, db, "profile", "set", "--age", "30", "--gender", "male", "--height-cm", "Inf", "--weight", "70")
	if err == nil || !strings.Contains(err.Error(), "heightCm") {
		t.Fatalf("expected height validation error, got %v", err)
	}
	if out := mustRun(t, db, "profile", "show"); strings.Contains(out, "BMR") {
		t.Errorf("rejected input must not save a profile:\n%s", out)
	}
}

func TestGoalSet_WithoutProfile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "smartbite.db")
	if _, err := runCLI(t, db, "goal", "set", "gain"); err == nil {
		t.Fatal("expected error without a profile")
	}
}

func TestMealEstimate(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": `{"calories": 390, "portion": "1 bowl"}`}},
			},
		})
	}))
	defer mock.Close()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", mock.URL)

	dir := t.TempDir()
	photo := filepath.Join(dir, "bowl.png")
	if err := os.WriteFile(photo, []byte("\x89PNG\r\n\x1a\nrest"), 0o644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "smartbite.db")

	out := mustRun(t, db, "meal", "estimate", "--name", "Poke bowl", "--image", photo)
	if !strings.Contains(out, "Poke bowl (390 kcal, 1 bowl)") {
		t.Errorf("unexpected estimate output: %s", out)
	}

	t.Setenv("OPENAI_API_KEY", "")
	if _, err := runCLI(t, db, "meal", "estimate", "--name", "Soup", "--image", photo); err == nil {
		t.Fatal("expected estimate to fail without an API key")
	}
	out = mustRun(t, db, "meal", "list")
	if strings.Contains(out, "Soup") {
		t.Errorf("failed estimate must not log a meal:\n%s", out)
	}
}

func TestMealAdd_WithPhoto(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "toast.png")
	if err := os.WriteFile(photo, []byte("\x89PNG\r\n\x1a\nrest"), 0o644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "smartbite.db")

	out := mustRun(t, db, "meal", "add", "--name", "Toast", "--calories", "90", "--image", photo)
	if !strings.Contains(out, "Toast (90 kcal)") {
		t.Errorf("unexpected add output: %s", out)
	}

	kv, err := store.OpenSQLite(db)
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()
	s, err := session.Load(context.Background(), kv)
	if err != nil {
		t.Fatal(err)
	}
	meals := s.Meals()
	if len(meals) != 1 || meals[0].Image == "" {
		t.Fatalf("expected one meal with a photo, got %+v", meals)
	}
	img, found, err := s.Image(context.Background(), meals[0].Image)
	if err != nil || !found {
		t.Fatalf("photo not stored: found=%v err=%v", found, err)
	}
	if img.MIMEType != "image/png" {
		t.Errorf("expected image/png, got %q", img.MIMEType)
	}

	notImage := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notImage, []byte("just text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, db, "meal", "add", "--name", "Soup", "--calories", "200", "--image", notImage); err == nil {
		t.Fatal("expected error for a non-image file")
	}
}
