package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"callcenter-analysis-be/internal/entity"
	"callcenter-analysis-be/internal/model"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/internal/repository/unitofwork"
	"callcenter-analysis-be/pkg/admin/dashboard"
	"callcenter-analysis-be/pkg/database"
)

const seedDays = 8 // the last seven days plus today

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error: begin: %v", err)
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().DeleteAll(ctx); err != nil {
		log.Fatalf("Error: clearing conversations: %v", err)
	}
	if err := uow.DailyReportRepository().DeleteAll(ctx); err != nil {
		log.Fatalf("Error: clearing reports: %v", err)
	}
	log.Println("Cleared existing archive")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	aggregator := dashboard.NewAggregator(logger.NewNopLogger())
	start := time.Now().AddDate(0, 0, -(seedDays - 1))

	total, resolved := 0, 0
	for day := 0; day < seedDays; day++ {
		date := start.AddDate(0, 0, day)
		perDay := 5 + rng.Intn(11)
		for i := 0; i < perDay; i++ {
			conv := build(rng, date, day, i)
			if err := uow.ConversationRepository().Create(ctx, conv); err != nil {
				log.Fatalf("Error: creating conversation: %v", err)
			}
			total++
			if conv.IsResolved {
				resolved++
			}
		}
		if _, err := aggregator.RefreshDailyReport(ctx, uow, date); err != nil {
			log.Fatalf("Error: daily report for %s: %v", date.Format("2006-01-02"), err)
		}
	}

	if err := uow.Commit(); err != nil {
		log.Fatalf("Error: commit: %v", err)
	}

	log.Printf("Seeded %d conversations over %d days (%d resolved, %d pending)", total, seedDays, resolved, total-resolved)
}

func build(rng *rand.Rand, date time.Time, day, i int) *entity.Conversation {
	s := samples[rng.Intn(len(samples))]
	at := time.Date(date.Year(), date.Month(), date.Day(), 9+rng.Intn(12), rng.Intn(60), 0, 0, date.Location())

	var customer, agent []string
	turns := make([]protocol.Turn, 0, len(s.messages))
	for n, m := range s.messages {
		role := protocol.RoleAgent
		if m.customer {
			role = protocol.RoleCustomer
			customer = append(customer, m.text)
		} else {
			agent = append(agent, m.text)
		}
		turns = append(turns, protocol.Turn{
			Seq:        n + 1,
			Role:       role,
			Text:       m.text,
			OccurredAt: at.Add(time.Duration(n*30) * time.Second),
		})
	}

	return &entity.Conversation{
		SessionId:        fmt.Sprintf("session_%d_%d_%d", 1000+rng.Intn(9000), day, i),
		Turns:            turns,
		CustomerMessage:  strings.Join(customer, " | "),
		AgentMessage:     strings.Join(agent, " | "),
		Timestamp:        at,
		SentimentScore:   s.sentiment,
		ResolutionScore:  clamp(s.sentiment + 0.05 + rng.Float64()*0.10),
		AgentPerformance: 0.70 + rng.Float64()*0.25,
		OverallScore:     s.sentiment,
		IsResolved:       s.resolved,
		CustomerEmotion:  s.emotion,
		ResponseTime:     fmt.Sprintf("%ds", 30+rng.Intn(271)),
		EmpathyLevel:     []string{"high", "medium", "low"}[rng.Intn(3)],
		Category:         s.category,
		Keywords:         s.tags,
	}
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
