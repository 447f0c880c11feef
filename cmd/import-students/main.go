package main

import (
	"flag"
	"log"
	"os"

	"github.com/SmartAcademic/SA-Backend/internal/rosterimport"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load(".env.local")

	var (
		csvPath   = flag.String("csv", "", "path to registrar CSV export")
		dbURL     = flag.String("db", os.Getenv("DATABASE_URL"), "DATABASE_URL")
		namespace = flag.String("namespace", "", "UUID namespace (required, stable forever)")
		password  = flag.String("password", "", "initial password for imported accounts")
	)
	flag.Parse()

	if *csvPath == "" || *dbURL == "" || *namespace == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := rosterimport.Config{
		CSVPath:         *csvPath,
		DatabaseURL:     *dbURL,
		Namespace:       *namespace,
		InitialPassword: *password,
	}

	if err := rosterimport.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
