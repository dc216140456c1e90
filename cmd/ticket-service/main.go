package main

import (
	"log"

	"github.com/helpdesk-demo/ticket-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
