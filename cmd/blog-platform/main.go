package main

import (
	"log"

	"github.com/psds-microservice/blog-platform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
