// Package session owns one user's profile and meal log. Every mutation is
// computed first, persisted, and only then applied in memory, so a failed
// save leaves the session exactly as it was.
//
// A Session is not safe for concurrent use; callers serialise access.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"lg/smartbite-go-api/internal/energy"
	"lg/smartbite-go-api/internal/ledger"
	"lg/smartbite-go-api/internal/store"
	"lg/smartbite-go-api/internal/vision"
)

// Storage keys.
const (
	ProfileKey  = "user-profile"
	MealsKey    = "meals-data"
	imageKeyPfx = "images/"
)

// ErrNoProfile is returned by operations that need a calorie budget before
// one has been calculated.
var ErrNoProfile = errors.New("no profile: calculate one first")

// Session holds the loaded state for one user.
type Session struct {
	kv      store.KV
	profile *energy.Profile
	meals   []ledger.Meal
	now     func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Load reads the profile and meal log from kv. Missing keys mean "no data
// yet". Stored text that no longer parses is logged and treated as missing.
func Load(ctx context.Context, kv store.KV, opts ...Option) (*Session, error) {
	s := &Session{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	var p energy.Profile
	found, err := s.loadJSON(ctx, ProfileKey, &p)
	if err != nil {
		return nil, err
	}
	if found {
		s.profile = &p
	}

	var meals []ledger.Meal
	found, err = s.loadJSON(ctx, MealsKey, &meals)
	if err != nil {
		return nil, err
	}
	if found {
		s.meals = meals
	}
	return s, nil
}

// Profile returns a copy of the current profile, or nil.
func (s *Session) Profile() *energy.Profile {
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Meals returns a copy of the meal log, most recent first.
func (s *Session) Meals() []ledger.Meal {
	out := make([]ledger.Meal, len(s.meals))
	copy(out, s.meals)
	return out
}

// Recalculate replaces the profile with one computed from in.
func (s *Session) Recalculate(ctx context.Context, in energy.BiometricInput) (*energy.Profile, error) {
	p, err := energy.Compute(in)
	if err != nil {
		return nil, err
	}
	if err := s.saveJSON(ctx, ProfileKey, p); err != nil {
		return nil, err
	}
	s.profile = p
	return s.Profile(), nil
}

// SetGoal switches the goal on the existing profile, recomputing only the
// calorie budget.
func (s *Session) SetGoal(ctx context.Context, g energy.Goal) (*energy.Profile, error) {
	if s.profile == nil {
		return nil, ErrNoProfile
	}
	next := *s.profile
	if err := next.SetGoal(g); err != nil {
		return nil, err
	}
	if err := s.saveJSON(ctx, ProfileKey, &next); err != nil {
		return nil, err
	}
	s.profile = &next
	return s.Profile(), nil
}

// AddMeal logs a meal and returns it.
func (s *Session) AddMeal(ctx context.Context, in ledger.MealInput) (ledger.Meal, error) {
	meal, err := ledger.NewMeal(in, s.meals, s.now())
	if err != nil {
		return ledger.Meal{}, err
	}
	return s.commitMeal(ctx, meal, nil)
}

// AddMealWithPhoto logs a meal like AddMeal and stores img alongside it. The
// meal's Image field holds the photo reference.
func (s *Session) AddMealWithPhoto(ctx context.Context, in ledger.MealInput, img vision.Image) (ledger.Meal, error) {
	if len(img.Data) == 0 {
		return ledger.Meal{}, &ledger.ValidationError{Field: "image", Msg: "is empty"}
	}
	in.Image = uuid.NewString()
	meal, err := ledger.NewMeal(in, s.meals, s.now())
	if err != nil {
		return ledger.Meal{}, err
	}
	return s.commitMeal(ctx, meal, &img)
}

// AddEstimatedMeal asks est for the calories in img and logs the result as a
// meal named label. The photo is stored and referenced from the meal. If the
// estimate fails nothing is saved.
func (s *Session) AddEstimatedMeal(ctx context.Context, est vision.Estimator, img vision.Image, label string) (ledger.Meal, error) {
	if strings.TrimSpace(label) == "" {
		return ledger.Meal{}, &ledger.ValidationError{Field: "name", Msg: "is required"}
	}
	e, err := est.Estimate(ctx, img, label)
	if err != nil {
		var eerr *vision.EstimationError
		if !errors.As(err, &eerr) {
			err = &vision.EstimationError{Reason: "estimator failed", Err: err}
		}
		return ledger.Meal{}, err
	}

	meal, err := ledger.NewMeal(ledger.MealInput{
		Name:     label,
		Calories: e.Calories,
		Portion:  e.Portion,
		Image:    uuid.NewString(),
		Source:   ledger.SourceEstimate,
	}, s.meals, s.now())
	if err != nil {
		// Only the estimate can be wrong here; the label was checked above.
		return ledger.Meal{}, &vision.EstimationError{Reason: "unusable estimate", Err: err}
	}
	return s.commitMeal(ctx, meal, &img)
}

// commitMeal persists meal (and its photo under meal.Image, when img is set)
// and then adds it to the in-memory log.
func (s *Session) commitMeal(ctx context.Context, meal ledger.Meal, img *vision.Image) (ledger.Meal, error) {
	// Photo before meal list: a saved meal never points at a missing photo.
	if img != nil {
		if err := s.kv.Set(ctx, imageKeyPfx+meal.Image, img.DataURL()); err != nil {
			return ledger.Meal{}, fmt.Errorf("save image: %w", err)
		}
	}
	next := ledger.Add(s.meals, meal)
	if err := s.saveJSON(ctx, MealsKey, next); err != nil {
		return ledger.Meal{}, err
	}
	s.meals = next
	return meal, nil
}

// RemoveMeal deletes the meal with id. It reports whether a meal was removed;
// an unknown id is not an error and writes nothing.
func (s *Session) RemoveMeal(ctx context.Context, id int64) (bool, error) {
	next, ok := ledger.Remove(s.meals, id)
	if !ok {
		return false, nil
	}
	if err := s.saveJSON(ctx, MealsKey, next); err != nil {
		return false, err
	}
	s.meals = next
	return true, nil
}

// Image returns a stored meal photo by reference.
func (s *Session) Image(ctx context.Context, ref string) (vision.Image, bool, error) {
	v, found, err := s.kv.Get(ctx, imageKeyPfx+ref)
	if err != nil {
		return vision.Image{}, false, fmt.Errorf("load image: %w", err)
	}
	if !found {
		return vision.Image{}, false, nil
	}
	img, err := vision.ParseDataURL(v)
	if err != nil {
		log.Printf("[session] unreadable image %s: %v", ref, err)
		return vision.Image{}, false, nil
	}
	return img, true, nil
}

func (s *Session) loadJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Printf("[session] ignoring unreadable %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *Session) saveJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
