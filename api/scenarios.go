/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Pre-built scenarios that populate the active period with realistic data
  for demos and manual testing. Each loader drives the tracker through its
  public operations, so seeded data flows through the same reconcile-and-
  persist path as user edits.

AVAILABLE SCENARIOS:
  lean-week:      Weekly groceries under a small budget, all tiers normal
  overspent-week: A week past its budget (danger tier, clamped remaining)
  family-month:   A month with a note, mixed categories, caution tier

NOTE:
  Loading a scenario overwrites the record stored under the scenario's
  period key. Use in development/demo environments.

SEE ALSO:
  - handlers.go: ListScenarios/LoadScenario routing targets
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alanrss/budget"
	"github.com/alanrss/budget/period"
	"github.com/alanrss/budget/tracker"
)

var scenarios = []ScenarioDTO{
	{
		ID:          "lean-week",
		Name:        "Lean Week",
		Description: "A frugal grocery week comfortably under budget",
	},
	{
		ID:          "overspent-week",
		Name:        "Overspent Week",
		Description: "A week past its budget: danger tier, remaining clamped at zero",
	},
	{
		ID:          "family-month",
		Name:        "Family Month",
		Description: "A month of mixed spending approaching its budget",
	},
}

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario seeds the requested scenario and returns the resulting
// period state.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var (
		st  tracker.State
		err error
	)
	switch req.ScenarioID {
	case "lean-week":
		st, err = h.loadLeanWeek(r.Context())
	case "overspent-week":
		st, err = h.loadOverspentWeek(r.Context())
	case "family-month":
		st, err = h.loadFamilyMonth(r.Context())
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.Log.Info().Str("scenario", req.ScenarioID).Str("key", st.Key).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, toStateDTO(st))
}

func (h *Handler) seed(ctx context.Context, date time.Time, typ period.Type, budgetAmt int64, note string, entries []budget.Entry) (tracker.State, error) {
	if _, err := h.Tracker.SelectPeriod(ctx, date, typ); err != nil {
		return tracker.State{}, err
	}
	if _, err := h.Tracker.SetBudget(ctx, decimal.NewFromInt(budgetAmt)); err != nil {
		return tracker.State{}, err
	}
	if note != "" {
		if _, err := h.Tracker.SetNote(ctx, note); err != nil {
			return tracker.State{}, err
		}
	}
	return h.Tracker.ReplaceEntries(ctx, entries)
}

func seedEntry(day time.Time, desc string, cat budget.Category, pay budget.PaymentMethod, amount float64) budget.Entry {
	return budget.Entry{
		Day:           day,
		Description:   desc,
		Category:      cat,
		PaymentMethod: pay,
		Amount:        decimal.NewFromFloat(amount),
	}
}

func (h *Handler) loadLeanWeek(ctx context.Context) (tracker.State, error) {
	now := time.Now()
	monday := period.BoundaryOf(now, period.Week)
	return h.seed(ctx, now, period.Week, 120, "", []budget.Entry{
		seedEntry(monday, "weekly groceries", budget.CategoryFood, budget.PayCard, 38.20),
		seedEntry(monday.AddDate(0, 0, 2), "bus pass", budget.CategoryTransport, budget.PayTransfer, 12),
		seedEntry(monday.AddDate(0, 0, 5), "coffee with Ana", budget.CategoryFood, budget.PayCash, 6.50),
	})
}

func (h *Handler) loadOverspentWeek(ctx context.Context) (tracker.State, error) {
	now := time.Now()
	monday := period.BoundaryOf(now, period.Week)
	return h.seed(ctx, now, period.Week, 80, "concert week", []budget.Entry{
		seedEntry(monday, "groceries", budget.CategoryFood, budget.PayCard, 35),
		seedEntry(monday.AddDate(0, 0, 3), "concert tickets", budget.CategoryEntertainment, budget.PayCard, 60),
		seedEntry(monday.AddDate(0, 0, 4), "late-night taxi", budget.CategoryTransport, budget.PayCash, 18),
	})
}

func (h *Handler) loadFamilyMonth(ctx context.Context) (tracker.State, error) {
	now := time.Now()
	first := period.BoundaryOf(now, period.Month)
	return h.seed(ctx, now, period.Month, 1500, "school term starts", []budget.Entry{
		seedEntry(first, "rent share", budget.CategoryHousing, budget.PayTransfer, 700),
		seedEntry(first.AddDate(0, 0, 4), "big grocery run", budget.CategoryFood, budget.PayCard, 210.45),
		seedEntry(first.AddDate(0, 0, 9), "pharmacy", budget.CategoryHealth, budget.PayCard, 32.90),
		seedEntry(first.AddDate(0, 0, 14), "kids' shoes", budget.CategoryShopping, budget.PayCard, 85),
		seedEntry(first.AddDate(0, 0, 20), "cinema night", budget.CategoryEntertainment, budget.PayCash, 44),
	})
}
