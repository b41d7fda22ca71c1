package main

import (
	"fmt"
	"log"
	"os"

	"github.com/avtonomer/platemarket/internal/pkg/uploadmock"
)

func main() {
	host := os.Getenv("UPLOADMOCK_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("UPLOADMOCK_PORT")
	if port == "" {
		port = "8000"
	}

	app := uploadmock.NewServer(uploadmock.NewMemoryStore())
	log.Fatal(app.Listen(fmt.Sprintf("%s:%s", host, port)))
}
