// Package notify formats plan reminders and fans them out over WhatsApp.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"veg-meal-planner/internal/planner"
)

// MessageSender delivers one message to one recipient.
type MessageSender interface {
	Send(to, body string) error
}

// Dispatcher builds daily/weekly/monthly reminders from the stored plan and
// sends each one unchanged to every configured recipient.
type Dispatcher struct {
	store      planner.PlanStore
	sender     MessageSender
	recipients []string
	now        func() time.Time
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(store planner.PlanStore, sender MessageSender, recipients []string) *Dispatcher {
	return &Dispatcher{
		store:      store,
		sender:     sender,
		recipients: recipients,
		now:        time.Now,
	}
}

// SendDaily sends today's meals plus tomorrow's prep. A day without a plan is
// logged and sends nothing.
func (d *Dispatcher) SendDaily(ctx context.Context) {
	plan := d.store.Load(ctx)
	today := d.now()

	body, ok := BuildDailyMessage(plan, today)
	if !ok {
		log.Println("No plan found for today.")
		return
	}
	d.fanOut(body)
}

// SendWeekly sends the prep items of the current week bucket.
func (d *Dispatcher) SendWeekly(ctx context.Context) {
	plan := d.store.Load(ctx)

	body, ok := BuildWeeklyMessage(plan, d.now())
	if !ok {
		log.Println("No groceries found for this week.")
		return
	}
	d.fanOut(body)
}

// SendMonthly sends every prep item in the plan.
func (d *Dispatcher) SendMonthly(ctx context.Context) {
	plan := d.store.Load(ctx)

	body, ok := BuildMonthlyMessage(plan)
	if !ok {
		log.Println("No groceries found for this month.")
		return
	}
	d.fanOut(body)
}

// fanOut sends body to every recipient. A per-recipient failure is logged and
// does not block the remaining recipients.
func (d *Dispatcher) fanOut(body string) {
	sent := 0
	for _, to := range d.recipients {
		if err := d.sender.Send(to, body); err != nil {
			log.Printf("Error sending message to %s: %v", to, err)
			continue
		}
		sent++
	}
	log.Printf("Message sent to %d of %d recipient(s)", sent, len(d.recipients))
}

// BuildDailyMessage formats today's entries and tomorrow's prep items.
// Returns false when there is nothing planned for today.
func BuildDailyMessage(plan planner.Plan, today time.Time) (string, bool) {
	todayEntries := plan.ForDate(today)
	if len(todayEntries) == 0 {
		return "", false
	}

	lines := []string{fmt.Sprintf("🥗 *Today's Plan* (%s)", today.Format("02 January 2006"))}
	for _, e := range todayEntries {
		msg := fmt.Sprintf("🍽 %s: %s\n📋 Method: %s", titleCase(e.MealType), orNA(e.Item), orNA(e.Method))
		if e.Prep != "" {
			msg += fmt.Sprintf("\n🛠 Prep: %s", e.Prep)
		}
		lines = append(lines, msg)
	}

	var preps []string
	for _, e := range plan.ForDate(today.AddDate(0, 0, 1)) {
		if e.Prep != "" {
			preps = append(preps, e.Prep)
		}
	}
	if len(preps) > 0 {
		lines = append(lines, fmt.Sprintf("🌙 *Evening Prep for Tomorrow*: %s", strings.Join(preps, ", ")))
	}

	return strings.Join(lines, "\n\n"), true
}

// BuildWeeklyMessage formats the grocery/prep list for the week bucket that
// contains the given date.
func BuildWeeklyMessage(plan planner.Plan, today time.Time) (string, bool) {
	weekKey, _ := planner.Partition(today)
	items := plan.PrepItemsForWeek(weekKey)
	if len(items) == 0 {
		return "", false
	}
	return bulletList("🛒 *Weekly Grocery List*", items), true
}

// BuildMonthlyMessage formats the grocery/prep list across the whole plan.
func BuildMonthlyMessage(plan planner.Plan) (string, bool) {
	items := plan.PrepItems()
	if len(items) == 0 {
		return "", false
	}
	return bulletList("📦 *Monthly Grocery List*", items), true
}

func bulletList(title string, items []string) string {
	var sb strings.Builder
	sb.WriteString(title)
	for _, item := range items {
		sb.WriteString("\n- ")
		sb.WriteString(item)
	}
	return sb.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// titleCase capitalizes the first rune. meal_type is unvalidated model output,
// so it must survive multibyte input.
func titleCase(s string) string {
	if s == "" {
		return "Meal"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
