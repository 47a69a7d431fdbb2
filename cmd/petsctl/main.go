package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	notifymem "pets-app/internal/adapters/notify/memory"
	"pets-app/internal/adapters/remote"
	"pets-app/internal/adapters/storage/localstore"
	"pets-app/internal/platform/config"
	"pets-app/internal/platform/logger"
	"pets-app/internal/store"
)

const usage = `petsctl: inspección del store local de la app

Comandos:
  status    resumen de colecciones y último error de sync
  pets      lista las mascotas
  upcoming  eventos próximos
  overdue   vacunas vencidas
  reset     borra el estado local y vuelve a sembrar
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = ".pets-data"
	}

	local, err := localstore.OpenDir(dataDir)
	if err != nil {
		log.Fatalf("localstore error: %v", err)
	}
	defer local.Close()

	logg := logger.NewFromEnv()

	rc, err := remote.NewClient(remote.Config{BaseURL: cfg.BaseURL(), Timeout: cfg.Timeout()})
	if err != nil {
		log.Fatalf("remote client error: %v", err)
	}

	s := store.New(store.Options{
		Remote:    rc,
		Local:     local,
		Scheduler: notifymem.NewScheduler(logg),
		Log:       logg,
	})

	ctx := context.Background()
	s.Start(ctx)
	s.WaitSyncs()

	switch os.Args[1] {
	case "status":
		runStatus(s)
	case "pets":
		runPets(s)
	case "upcoming":
		runUpcoming(s)
	case "overdue":
		runOverdue(s)
	case "reset":
		s.ClearAll(ctx)
		fmt.Println("estado local reiniciado")
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runStatus(s *store.Store) {
	fmt.Printf("mascotas:      %d\n", len(s.Pets()))
	fmt.Printf("eventos:       %d\n", len(s.Events()))
	fmt.Printf("noticias:      %d\n", len(s.News()))
	fmt.Printf("posts:         %d\n", len(s.AllPosts()))
	if msg := s.LastError(); msg != "" {
		fmt.Printf("último error:  %s\n", msg)
	}
}

func runPets(s *store.Store) {
	now := time.Now()
	for _, p := range s.Pets() {
		fmt.Printf("%s  %s (%s, %s)  %d año(s)  dueño: %s\n",
			p.ID, p.Name, p.Species, p.Breed, p.Age(now), p.OwnerName)
	}
}

func runUpcoming(s *store.Store) {
	now := time.Now()
	for _, e := range s.UpcomingEvents(now) {
		fmt.Printf("%s  %s  en %d día(s)\n",
			e.Date.Format("2006-01-02"), e.Title, e.DaysUntilEvent(now))
	}
}

func runOverdue(s *store.Store) {
	now := time.Now()
	for _, pv := range s.OverdueVaccinations(now) {
		fmt.Printf("%s: %s vencida desde %s\n",
			pv.Pet.Name, pv.Vaccination.Name, pv.Vaccination.NextDueDate.Format("2006-01-02"))
	}
}
