package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/errs"
	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

// newTestClient wires the full executor+surface stack against a local server.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	gw, err := gateway.New(ts.URL, "anon", staticTokens("tok"), zap.NewNop())
	require.NoError(t, err)
	gw.HTTP = ts.Client()

	client, err := New(gw, zap.NewNop())
	require.NoError(t, err)
	return client, &calls
}

func jsonReply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestSaveGoalsRejectsBadMacroSplitLocally(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `{}`)
	}))

	err := client.SaveGoals(context.Background(), model.Goals{
		Calories: 2000, CarbsPct: 45, ProteinPct: 30, FatPct: 30,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Zero(t, atomic.LoadInt32(calls), "invalid goals must never reach the network")
}

func TestSaveGoalsSendsOpenRows(t *testing.T) {
	t.Parallel()

	var got struct {
		Goals []goalRow `json:"goals"`
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "save-goals", r.URL.Query().Get("action"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		jsonReply(w, http.StatusOK, `{}`)
	}))

	err := client.SaveGoals(context.Background(), model.Goals{
		Calories: 2100, CarbsPct: 40, ProteinPct: 30, FatPct: 30,
		WeightKg: 74, WaterCups: 10, WorkoutDays: 4,
	})
	require.NoError(t, err)
	require.Len(t, got.Goals, 7)
	require.Equal(t, goalRow{GoalType: "calories", TargetValue: 2100, Unit: "kcal"}, got.Goals[0])
}

func TestGoalsMergesServerRowsOverDefaults(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `{"goals":[
			{"goal_type":"calories","target_value":1850,"unit":"kcal"},
			{"goal_type":"weight","target_value":70,"unit":"kg"}
		]}`)
	}))

	g, err := client.Goals(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1850.0, g.Calories)
	require.Equal(t, 70.0, g.WeightKg)
	// Untouched fields keep their defaults.
	require.Equal(t, model.DefaultGoals().WaterCups, g.WaterCups)
}

func TestGoalsAbsentEndpointYieldsDefaults(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusBadRequest, `{"error":"Unknown action: goals"}`)
	}))

	g, err := client.Goals(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.DefaultGoals(), g)
}

func TestSearchFoodsShortQuerySkipsNetwork(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `{"products":[]}`)
	}))

	for _, q := range []string{"", "a", " b ", "  "} {
		products, err := client.SearchFoods(context.Background(), q, 25)
		require.NoError(t, err)
		require.Empty(t, products)
	}
	require.Zero(t, atomic.LoadInt32(calls))
}

func TestSearchFoodsCachesRepeatedQueries(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "oats", r.URL.Query().Get("q"))
		jsonReply(w, http.StatusOK, `{"products":[{"name":"Oats","nutrients":{"calories":380}}]}`)
	}))

	first, err := client.SearchFoods(context.Background(), "oats", 25)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Same normalized query: served from cache.
	second, err := client.SearchFoods(context.Background(), "  oats ", 25)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int32(1), atomic.LoadInt32(calls))

	// A different limit is a different cache key.
	_, err = client.SearchFoods(context.Background(), "oats", 10)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestSearchFoodsSupersededQueryAborts(t *testing.T) {
	t.Parallel()

	firstStarted := make(chan struct{})
	firstAborted := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "chick" {
			close(firstStarted)
			<-r.Context().Done()
			close(firstAborted)
			return
		}
		jsonReply(w, http.StatusOK, `{"products":[{"name":"Chicken Breast"}]}`)
	}))

	ctx1, cancel1 := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := client.SearchFoods(ctx1, "chick", 25)
		errCh <- err
	}()

	<-firstStarted
	cancel1() // user kept typing; abandon the stale query

	err := <-errCh
	require.Error(t, err)
	require.True(t, errs.IsAborted(err), "superseded search must classify as aborted, got %v", err)

	select {
	case <-firstAborted:
	case <-time.After(2 * time.Second):
		t.Fatal("transport never observed the abort of the first request")
	}

	// The fresh query still works and the aborted one poisoned no cache.
	products, err := client.SearchFoods(context.Background(), "chicken", 25)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Chicken Breast", products[0].Name)
}

func TestStepsTodayUnknownActionResolvesToAbsent(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusBadRequest, `{"error":"Unknown action: steps-today"}`)
	}))

	steps, err := client.StepsToday(context.Background())
	require.NoError(t, err)
	require.Nil(t, steps)
}

func TestMealsTodayDecodesEnvelope(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "meals-today", r.URL.Query().Get("action"))
		jsonReply(w, http.StatusOK, `{"meals":[
			{"id":"m1","meal_type":"breakfast","meal_items":[{"id":"i1","meal_id":"m1","food_name":"Eggs","calories":155}]}
		]}`)
	}))

	meals, err := client.MealsToday(context.Background())
	require.NoError(t, err)
	require.Len(t, meals, 1)
	require.Equal(t, model.MealBreakfast, meals[0].MealType)
	require.Len(t, meals[0].Items, 1)
	require.Equal(t, "Eggs", meals[0].Items[0].FoodName)
}

func TestWeightsToleratesEnvelopeDrift(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"weights":[{"id":"w1","weight_kg":81.2}]}`,
		`{"items":[{"id":"w1","weight_kg":81.2}]}`,
		`[{"id":"w1","weight_kg":81.2}]`,
	} {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jsonReply(w, http.StatusOK, body)
		}))
		entries, err := client.Weights(context.Background(), 1)
		require.NoError(t, err, "body %s", body)
		require.Len(t, entries, 1)
		require.Equal(t, 81.2, entries[0].WeightKg)
	}
}

func TestWeightOnDateFallsBackToClientFilter(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("before") != "" {
			// Older backend without the filter.
			jsonReply(w, http.StatusInternalServerError, `{"error":"before not supported"}`)
			return
		}
		jsonReply(w, http.StatusOK, `{"weights":[
			{"id":"new","weight_kg":79,"recorded_at":"2025-05-20T08:00:00Z"},
			{"id":"match","weight_kg":80,"recorded_at":"2025-05-09T08:00:00Z"},
			{"id":"older","weight_kg":82,"recorded_at":"2025-05-01T08:00:00Z"}
		]}`)
	}))

	entry, err := client.WeightOnDate(context.Background(), day)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "match", entry.ID)
}

func TestLastWorkoutResolverChainStopsAtFirstHit(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		actions []string
	)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action := r.URL.Query().Get("action")
		mu.Lock()
		actions = append(actions, action)
		mu.Unlock()
		switch action {
		case "last-workout", "dashboard":
			jsonReply(w, http.StatusBadRequest, `{"error":"Unknown action: `+action+`"}`)
		case "workouts":
			jsonReply(w, http.StatusOK, `{"workouts":[
				{"id":"a","ended_at":"2025-05-01T10:00:00Z"},
				{"id":"b","ended_at":"2025-05-03T10:00:00Z"}
			]}`)
		default:
			jsonReply(w, http.StatusBadRequest, `{"error":"unexpected action"}`)
		}
	}))

	w, err := client.LastWorkout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, w)
	require.Equal(t, "b", w.ID)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"last-workout", "dashboard", "workouts"}, actions)
}

func TestLastWorkoutPrefersDedicatedEndpoint(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		actions []string
	)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		actions = append(actions, r.URL.Query().Get("action"))
		mu.Unlock()
		jsonReply(w, http.StatusOK, `{"workout":{"id":"lw1","name":"Push Day","ended_at":"2025-05-04T10:00:00Z"}}`)
	}))

	w, err := client.LastWorkout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, w)
	require.Equal(t, "lw1", w.ID)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"last-workout"}, actions)
}

func TestAddMealItemFromProductForwardsBaseline(t *testing.T) {
	t.Parallel()

	var got productItemRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		jsonReply(w, http.StatusOK, `{"item":{"id":"i9","meal_id":"m1","food_name":"Oats","calories":570}}`)
	}))

	product := model.Product{
		Name:      "Oats",
		Nutrients: model.Nutrients{Calories: 380, ProteinG: 13, CarbsG: 68, FatG: 7},
	}
	item, err := client.AddMealItemFromProduct(context.Background(), "m1", product, 150, "g")
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, 570.0, item.Calories)

	require.Equal(t, "m1", got.MealID)
	require.Equal(t, 150.0, got.Qty)
	require.Equal(t, "g", got.Unit)
	require.Equal(t, 380.0, got.Product.Nutrients.Calories)
}

func TestAddWeightValidatesLocally(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusOK, `{}`)
	}))

	var verr *ValidationError
	require.ErrorAs(t, client.AddWeight(context.Background(), 0, time.Now()), &verr)
	require.ErrorAs(t, client.AddWeight(context.Background(), -3, time.Now()), &verr)
	require.Zero(t, atomic.LoadInt32(calls))
}

func TestLookupEANAbsentBackend(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, http.StatusNotFound, `{"error":"function not found"}`)
	}))

	p, err := client.LookupEAN(context.Background(), "4006381333931")
	require.NoError(t, err)
	require.Nil(t, p)

	var verr *ValidationError
	_, err = client.LookupEAN(context.Background(), "  ")
	require.ErrorAs(t, err, &verr)
}

func TestLookupEANDecodesProduct(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "4006381333931", r.URL.Query().Get("ean"))
		jsonReply(w, http.StatusOK, `{"product":{"ean":"4006381333931","name":"Dark Chocolate","brand":"Choco","nutrients":{"calories":546,"protein_g":5.5,"carbs_g":61,"fat_g":31}}}`)
	}))

	p, err := client.LookupEAN(context.Background(), "4006381333931")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "Dark Chocolate", p.Name)
	require.Equal(t, 546.0, p.Nutrients.Calories)
}
