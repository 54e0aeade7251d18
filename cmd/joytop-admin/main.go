package main

import (
	"log"

	"joytop-admin-service/internal"
)

// joytop-admin - бэкенд административной панели маркетплейса недвижимости
func main() {
	app, err := internal.NewApp()
	if err != nil {
		log.Fatalf("joytop-admin: init failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("joytop-admin: %v", err)
	}
}
