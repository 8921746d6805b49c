package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joeshaw/envdecode"

	"github.com/republica-game/republica/deck"
	"github.com/republica-game/republica/engine"
	"github.com/republica-game/republica/server"
	"github.com/republica-game/republica/store"
)

type config struct {
	Port   string `env:"PORT,default=8000"`
	DBPath string `env:"DB_PATH,default=republica.db"`
}

func main() {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil {
		log.Fatal(err.Error())
	}

	if err := deck.ValidateCatalog(); err != nil {
		log.Fatal(err.Error())
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer st.Close()

	seeds := []store.CardSeed{}
	for _, s := range deck.Seeds() {
		seeds = append(seeds, store.CardSeed{ID: s.ID, Role: s.Role})
	}
	if err := st.SeedCatalog(context.Background(), seeds); err != nil {
		log.Fatal(err.Error())
	}

	eng, err := engine.New(engine.Opts{Store: st})
	if err != nil {
		log.Fatal(err.Error())
	}

	s := server.NewServer(eng)
	log.Println("Listening on port " + cfg.Port + "...")
	log.Fatal(http.ListenAndServe(":"+cfg.Port, s))
}
