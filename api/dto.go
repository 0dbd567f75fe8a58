/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal domain model from the wire contract. Amounts cross the wire as
  strings so decimal exactness survives serialization; dates are plain
  YYYY-MM-DD.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - tracker/tracker.go: The State these DTOs project
*/
package api

import (
	"time"

	"github.com/alanrss/budget"
	"github.com/alanrss/budget/tracker"
)

const dateLayout = "2006-01-02"

// EntryDTO represents one spend line on the wire.
type EntryDTO struct {
	Day         string `json:"day"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Method      string `json:"method"`
	Amount      string `json:"amount"`
}

// MetricsDTO carries the derived summary for the active period.
type MetricsDTO struct {
	Total               string `json:"total"`
	Count               int    `json:"count"`
	ActiveDays          int    `json:"active_days"`
	AveragePerActiveDay string `json:"average_per_active_day"`
	Remaining           string `json:"remaining"`
	PercentOfBudget     int    `json:"percent_of_budget"`
	Tier                string `json:"tier"`
}

// StateDTO is the full presentation snapshot returned by every operation.
type StateDTO struct {
	Key         string     `json:"key"`
	Type        string     `json:"type"`
	PeriodStart string     `json:"period_start"`
	Label       string     `json:"label"`
	Currency    string     `json:"currency"`
	Budget      string     `json:"budget"`
	Note        string     `json:"note"`
	Entries     []EntryDTO `json:"entries"`
	Metrics     MetricsDTO `json:"metrics"`
	DayChoices  []string   `json:"day_choices"`
	SaveFailed  bool       `json:"save_failed"`
}

// EntryRequest is the body for appending an entry. All fields are lenient:
// bad amounts coerce to zero, unknown tags fall back to "other", and an
// out-of-period day snaps to the period start.
type EntryRequest struct {
	Day         string `json:"day"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Method      string `json:"method"`
	Amount      string `json:"amount"`
}

// UpdateEntryRequest is the body for a partial in-place update; absent
// fields leave the row untouched.
type UpdateEntryRequest struct {
	Day         *string `json:"day,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Method      *string `json:"method,omitempty"`
	Amount      *string `json:"amount,omitempty"`
}

// SetBudgetRequest updates the period budget.
type SetBudgetRequest struct {
	Budget string `json:"budget"`
}

// SetCurrencyRequest updates the period currency.
type SetCurrencyRequest struct {
	Currency string `json:"currency"`
}

// SetNoteRequest updates the period note.
type SetNoteRequest struct {
	Note string `json:"note"`
}

// ScenarioDTO describes one loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to seed.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toEntryDTO(e budget.Entry) EntryDTO {
	return EntryDTO{
		Day:         e.Day.Format(dateLayout),
		Description: e.Description,
		Category:    string(e.Category),
		Method:      string(e.PaymentMethod),
		Amount:      e.Amount.String(),
	}
}

func toStateDTO(st tracker.State) StateDTO {
	entries := make([]EntryDTO, len(st.Record.Entries))
	for i, e := range st.Record.Entries {
		entries[i] = toEntryDTO(e)
	}
	days := make([]string, len(st.DayChoices))
	for i, d := range st.DayChoices {
		days[i] = d.Format(dateLayout)
	}
	return StateDTO{
		Key:         st.Key,
		Type:        string(st.Record.Type),
		PeriodStart: st.Record.PeriodStart.Format(dateLayout),
		Label:       st.Label,
		Currency:    st.Record.Currency,
		Budget:      st.Record.Budget.String(),
		Note:        st.Record.Note,
		Entries:     entries,
		Metrics: MetricsDTO{
			Total:               st.Metrics.Total.String(),
			Count:               st.Metrics.Count,
			ActiveDays:          st.Metrics.ActiveDays,
			AveragePerActiveDay: st.Metrics.AveragePerActiveDay.StringFixed(2),
			Remaining:           st.Metrics.Remaining.String(),
			PercentOfBudget:     st.Metrics.PercentOfBudget,
			Tier:                string(st.Metrics.Tier),
		},
		DayChoices: days,
		SaveFailed: st.SaveFailed,
	}
}

func (r EntryRequest) toEntry() budget.Entry {
	day, err := time.Parse(dateLayout, r.Day)
	if err != nil {
		day = time.Time{} // the ledger snaps this to the period start
	}
	return budget.Entry{
		Day:           day,
		Description:   r.Description,
		Category:      budget.ParseCategory(r.Category),
		PaymentMethod: budget.ParsePaymentMethod(r.Method),
		Amount:        budget.ParseAmount(r.Amount),
	}
}

func (r UpdateEntryRequest) toPatch() budget.Patch {
	var p budget.Patch
	if r.Day != nil {
		if day, err := time.Parse(dateLayout, *r.Day); err == nil {
			p.Day = &day
		}
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.Category != nil {
		c := budget.ParseCategory(*r.Category)
		p.Category = &c
	}
	if r.Method != nil {
		m := budget.ParsePaymentMethod(*r.Method)
		p.PaymentMethod = &m
	}
	if r.Amount != nil {
		a := budget.ParseAmount(*r.Amount)
		p.Amount = &a
	}
	return p
}
