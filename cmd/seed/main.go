// Command seed wipes the tasks table and repopulates it with sample data.
package main

import (
	"context"
	"log"
	"time"

	"github.com/Manasa-Gp/task-management/internal/app"
	"github.com/Manasa-Gp/task-management/internal/config"
	dom "github.com/Manasa-Gp/task-management/internal/domain"
	"github.com/Manasa-Gp/task-management/internal/repo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := app.NewPostgres(cfg.PG.DSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	if err := app.RunMigrations(cfg.PG.DSN, "./migrations"); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	ctx := context.Background()
	if _, err := db.Exec(ctx, `TRUNCATE tasks RESTART IDENTITY`); err != nil {
		log.Fatalf("truncate: %v", err)
	}

	tasks := sampleTasks(time.Now().UTC())
	r := repo.NewPGTaskRepo(db)
	for _, t := range tasks {
		if _, err := r.Create(ctx, t); err != nil {
			log.Fatalf("insert %q: %v", t.Title, err)
		}
	}
	log.Printf("seeded %d tasks", len(tasks))

	rows, err := db.Query(ctx, `SELECT status, count(*) FROM tasks GROUP BY status ORDER BY status`)
	if err != nil {
		log.Fatalf("count: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			log.Fatalf("scan: %v", err)
		}
		log.Printf("  %-12s %d", status, n)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("rows: %v", err)
	}
}

func sampleTasks(today time.Time) []dom.Task {
	day := func(offset int) time.Time {
		d := today.AddDate(0, 0, offset)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return []dom.Task{
		{Title: "Buy groceries", Description: "Milk, eggs, bread, fruits, vegetables",
			Status: dom.StatusPending, Priority: dom.PriorityHigh, Category: "personal", DueDate: day(1)},
		{Title: "Schedule dentist appointment", Description: "Call dental clinic for cleaning appointment",
			Status: dom.StatusPending, Priority: dom.PriorityMedium, Category: "personal", DueDate: day(3)},
		{Title: "Plan weekend trip", Description: "Research destinations and book accommodations",
			Status: dom.StatusInProgress, Priority: dom.PriorityLow, Category: "personal", DueDate: day(7)},
		{Title: "Renew gym membership", Description: "Membership expires end of month",
			Status: dom.StatusPending, Priority: dom.PriorityMedium, Category: "personal", DueDate: day(10)},
		{Title: "Clean garage", Description: "Organize tools and donate unused items",
			Status: dom.StatusCompleted, Priority: dom.PriorityLow, Category: "personal", DueDate: day(-2)},
		{Title: "Complete project proposal", Description: "Draft proposal for Q2 project including budget and timeline",
			Status: dom.StatusInProgress, Priority: dom.PriorityHigh, Category: "work", DueDate: day(2)},
		{Title: "Review team code submissions", Description: "Review and approve pull requests from team members",
			Status: dom.StatusPending, Priority: dom.PriorityHigh, Category: "work", DueDate: day(0)},
		{Title: "Prepare presentation slides", Description: "Create slides for Friday's client meeting",
			Status: dom.StatusInProgress, Priority: dom.PriorityHigh, Category: "work", DueDate: day(3)},
		{Title: "Update project documentation", Description: "Document new API endpoints and usage examples",
			Status: dom.StatusPending, Priority: dom.PriorityMedium, Category: "work", DueDate: day(5)},
		{Title: "Attend team standup", Description: "Daily standup meeting at 9 AM",
			Status: dom.StatusCompleted, Priority: dom.PriorityHigh, Category: "work", DueDate: day(0)},
		{Title: "Schedule one-on-one meetings", Description: "Set up meetings with direct reports",
			Status: dom.StatusPending, Priority: dom.PriorityMedium, Category: "work", DueDate: day(4)},
		{Title: "Fix bug in production", Description: "Address critical bug reported by customer",
			Status: dom.StatusInProgress, Priority: dom.PriorityHigh, Category: "urgent", DueDate: day(1)},
	}
}
